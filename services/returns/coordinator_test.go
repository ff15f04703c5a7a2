package returns

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/jackiechen20262026/marketing/apperrors"
	httpServices "github.com/jackiechen20262026/marketing/httpServices/courier"
	leadModel "github.com/jackiechen20262026/marketing/models/lead"
	shipmentModel "github.com/jackiechen20262026/marketing/models/shipment"
	userModel "github.com/jackiechen20262026/marketing/models/user"
	"github.com/jackiechen20262026/marketing/utils"
)

// fakeCourier records every push and answers with a configured result.
type fakeCourier struct {
	result httpServices.Result
	pushes []httpServices.ReturnOrder
}

func (f *fakeCourier) PushReturnOrder(order httpServices.ReturnOrder) httpServices.Result {
	f.pushes = append(f.pushes, order)
	return f.result
}

func openReturnsTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&userModel.User{},
		&leadModel.Lead{},
		&shipmentModel.Shipment{},
		&shipmentModel.Event{},
	))
	return db
}

func seedShipment(t *testing.T, db *gorm.DB, ownerID string) shipmentModel.Shipment {
	t.Helper()
	l := leadModel.Lead{
		ID:          utils.NewID("l"),
		CompanyName: "Acme Trading Co",
		Country:     "China",
		Source:      "Amazon",
		Priority:    "M",
		OwnerID:     ownerID,
		Stage:       leadModel.StageTracking,
	}
	require.NoError(t, db.Create(&l).Error)

	name := "Wang Li"
	phone := "+86 130 0000 0001"
	address := "88 Nanjing Road, Shanghai"
	country := "China"
	sh := shipmentModel.Shipment{
		ID:              utils.NewID("s"),
		LeadID:          l.ID,
		Carrier:         "YTO",
		WaybillNo:       utils.NewWaybillNo(),
		PushStatus:      "Pushed",
		LogisticsStatus: shipmentModel.LogisticsInTransit,
		ReceiverName:    &name,
		ReceiverPhone:   &phone,
		ReceiverAddress: &address,
		ReceiverCountry: &country,
	}
	require.NoError(t, db.Create(&sh).Error)
	return sh
}

func TestMarkReturnedPushesAndRecordsEvent(t *testing.T) {
	db := openReturnsTestDB(t)
	admin := userModel.User{ID: "u_admin_1", Username: "admin", Role: userModel.RoleAdmin, Status: "active"}
	require.NoError(t, db.Create(&admin).Error)
	sh := seedShipment(t, db, "u_emp_1")

	courier := &fakeCourier{result: httpServices.Result{OK: true}}
	coord := NewCoordinator(db, courier)

	require.NoError(t, coord.MarkReturned(admin, sh.ID))

	var reloaded shipmentModel.Shipment
	require.NoError(t, db.First(&reloaded, "id = ?", sh.ID).Error)
	assert.Equal(t, shipmentModel.LogisticsReturned, reloaded.LogisticsStatus)

	require.Len(t, courier.pushes, 1)
	assert.Equal(t, sh.ID, courier.pushes[0].BizID)
	assert.Equal(t, sh.WaybillNo, courier.pushes[0].WaybillNo)
	assert.Equal(t, "Wang Li", courier.pushes[0].ReceiverName)

	var events []shipmentModel.Event
	require.NoError(t, db.Find(&events, "shipment_id = ?", sh.ID).Error)
	require.Len(t, events, 1)
	assert.Equal(t, shipmentModel.EventReturnPushed, events[0].Status)
}

func TestMarkReturnedKeepsStatusWhenPushFails(t *testing.T) {
	db := openReturnsTestDB(t)
	admin := userModel.User{ID: "u_admin_1", Username: "admin", Role: userModel.RoleAdmin, Status: "active"}
	require.NoError(t, db.Create(&admin).Error)
	sh := seedShipment(t, db, "u_emp_1")

	courier := &fakeCourier{result: httpServices.Result{OK: false, Error: "YTO integration disabled"}}
	coord := NewCoordinator(db, courier)

	require.NoError(t, coord.MarkReturned(admin, sh.ID))

	var reloaded shipmentModel.Shipment
	require.NoError(t, db.First(&reloaded, "id = ?", sh.ID).Error)
	assert.Equal(t, shipmentModel.LogisticsReturned, reloaded.LogisticsStatus)

	var events []shipmentModel.Event
	require.NoError(t, db.Find(&events, "shipment_id = ?", sh.ID).Error)
	require.Len(t, events, 1)
	assert.Equal(t, shipmentModel.EventReturnPushFailed, events[0].Status)
	assert.Contains(t, events[0].Description, "YTO integration disabled")
}

func TestRetryReturnPushAppendsOneEventPerAttempt(t *testing.T) {
	db := openReturnsTestDB(t)
	admin := userModel.User{ID: "u_admin_1", Username: "admin", Role: userModel.RoleAdmin, Status: "active"}
	require.NoError(t, db.Create(&admin).Error)
	sh := seedShipment(t, db, "u_emp_1")

	courier := &fakeCourier{result: httpServices.Result{OK: false, Error: "timeout"}}
	coord := NewCoordinator(db, courier)

	require.NoError(t, coord.RetryReturnPush(admin, sh.ID))
	courier.result = httpServices.Result{OK: true}
	require.NoError(t, coord.RetryReturnPush(admin, sh.ID))

	assert.Len(t, courier.pushes, 2)

	var events []shipmentModel.Event
	require.NoError(t, db.Order("id ASC").Find(&events, "shipment_id = ?", sh.ID).Error)
	require.Len(t, events, 2)
	assert.Equal(t, shipmentModel.EventReturnRetryFail, events[0].Status)
	assert.Equal(t, shipmentModel.EventReturnRetryOK, events[1].Status)
}

func TestReturnFlowOutOfScopeShipmentIsNotFound(t *testing.T) {
	db := openReturnsTestDB(t)
	emp := userModel.User{ID: "u_emp_1", Username: "emp", Role: userModel.RoleSalesperson, Status: "active"}
	require.NoError(t, db.Create(&emp).Error)
	sh := seedShipment(t, db, "u_emp_2")

	courier := &fakeCourier{result: httpServices.Result{OK: true}}
	coord := NewCoordinator(db, courier)

	err := coord.MarkReturned(emp, sh.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Empty(t, courier.pushes)

	err = coord.RetryReturnPush(emp, sh.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
