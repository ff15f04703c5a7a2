package campaign

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/jackiechen20262026/marketing/apperrors"
	campaignModel "github.com/jackiechen20262026/marketing/models/campaign"
	leadModel "github.com/jackiechen20262026/marketing/models/lead"
	shipmentModel "github.com/jackiechen20262026/marketing/models/shipment"
	userModel "github.com/jackiechen20262026/marketing/models/user"
	"github.com/jackiechen20262026/marketing/utils"
)

func openDispatcherTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&userModel.User{},
		&leadModel.Lead{},
		&leadModel.StageHistory{},
		&leadModel.Activity{},
		&campaignModel.Batch{},
		&campaignModel.BatchItem{},
		&shipmentModel.Shipment{},
		&shipmentModel.Event{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, id string, role userModel.Role) userModel.User {
	t.Helper()
	u := userModel.User{ID: id, Username: id, Role: role, Status: "active"}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func seedLead(t *testing.T, db *gorm.DB, ownerID string, stage leadModel.Stage, brochuresSent int) leadModel.Lead {
	t.Helper()
	contact := "Wang Li"
	phone := "+86 130 0000 0001"
	address := "88 Nanjing Road, Shanghai"
	l := leadModel.Lead{
		ID:                 utils.NewID("l"),
		CompanyName:        "Acme Trading Co",
		ContactName:        &contact,
		Phone:              &phone,
		Address:            &address,
		Country:            "China",
		Source:             "Amazon",
		Priority:           "M",
		OwnerID:            ownerID,
		Stage:              stage,
		BrochureSentCount:  brochuresSent,
		BrochureLimitCount: 3,
	}
	require.NoError(t, db.Create(&l).Error)
	return l
}

func TestCreateBatchDedupsAndAdvancesLeads(t *testing.T) {
	db := openDispatcherTestDB(t)
	supervisor := seedUser(t, db, "u_super_1", userModel.RoleSupervisor)
	l := seedLead(t, db, "u_emp_1", leadModel.StageQualified, 1)
	d := NewDispatcher(db)

	batchID, err := d.CreateBatch(supervisor, []string{l.ID, l.ID, " ", l.ID}, "Autumn brochures", "", "")
	require.NoError(t, err)
	require.NotEmpty(t, batchID)

	var itemCount int64
	db.Model(&campaignModel.BatchItem{}).Where("batch_id = ?", batchID).Count(&itemCount)
	assert.EqualValues(t, 1, itemCount)

	var reloaded leadModel.Lead
	require.NoError(t, db.First(&reloaded, "id = ?", l.ID).Error)
	assert.Equal(t, leadModel.StageBrochureSent, reloaded.Stage)
	assert.Equal(t, 2, reloaded.BrochureSentCount)

	var history leadModel.StageHistory
	require.NoError(t, db.First(&history, "lead_id = ?", l.ID).Error)
	assert.Equal(t, leadModel.StageQualified, history.FromStage)
	assert.Equal(t, leadModel.StageBrochureSent, history.ToStage)
	require.NotNil(t, history.Note)
	assert.Contains(t, *history.Note, batchID)

	var activity leadModel.Activity
	require.NoError(t, db.First(&activity, "lead_id = ?", l.ID).Error)
	assert.Equal(t, leadModel.ActivityBrochureSent, activity.Type)

	var batch campaignModel.Batch
	require.NoError(t, db.First(&batch, "id = ?", batchID).Error)
	assert.Equal(t, campaignModel.BatchStatusDraft, batch.Status)
	assert.Equal(t, "standard", batch.TemplateName)
}

func TestCreateBatchSkipsOverLimitLeads(t *testing.T) {
	db := openDispatcherTestDB(t)
	supervisor := seedUser(t, db, "u_super_1", userModel.RoleSupervisor)
	exhausted := seedLead(t, db, "u_emp_1", leadModel.StageTracking, 3)
	fresh := seedLead(t, db, "u_emp_1", leadModel.StageQualified, 0)
	d := NewDispatcher(db)

	batchID, err := d.CreateBatch(supervisor, []string{exhausted.ID, fresh.ID}, "Retry wave", "", "")
	require.NoError(t, err)

	var items []campaignModel.BatchItem
	require.NoError(t, db.Find(&items, "batch_id = ?", batchID).Error)
	require.Len(t, items, 1)
	assert.Equal(t, fresh.ID, items[0].LeadID)

	var reloaded leadModel.Lead
	require.NoError(t, db.First(&reloaded, "id = ?", exhausted.ID).Error)
	assert.Equal(t, 3, reloaded.BrochureSentCount)
	assert.Equal(t, leadModel.StageTracking, reloaded.Stage)
}

func TestCreateBatchAdminOverridesBrochureLimit(t *testing.T) {
	db := openDispatcherTestDB(t)
	admin := seedUser(t, db, "u_admin_1", userModel.RoleAdmin)
	exhausted := seedLead(t, db, "u_emp_1", leadModel.StageTracking, 3)
	d := NewDispatcher(db)

	batchID, err := d.CreateBatch(admin, []string{exhausted.ID}, "Exception wave", "", "")
	require.NoError(t, err)

	var itemCount int64
	db.Model(&campaignModel.BatchItem{}).Where("batch_id = ?", batchID).Count(&itemCount)
	assert.EqualValues(t, 1, itemCount)

	var reloaded leadModel.Lead
	require.NoError(t, db.First(&reloaded, "id = ?", exhausted.ID).Error)
	assert.Equal(t, 4, reloaded.BrochureSentCount)
}

func TestCreateBatchSkipsLeadsOutsideScope(t *testing.T) {
	db := openDispatcherTestDB(t)
	emp := seedUser(t, db, "u_emp_1", userModel.RoleSalesperson)
	mine := seedLead(t, db, emp.ID, leadModel.StageQualified, 0)
	theirs := seedLead(t, db, "u_emp_2", leadModel.StageQualified, 0)
	d := NewDispatcher(db)

	batchID, err := d.CreateBatch(emp, []string{mine.ID, theirs.ID}, "Own pool", "", "")
	require.NoError(t, err)

	var items []campaignModel.BatchItem
	require.NoError(t, db.Find(&items, "batch_id = ?", batchID).Error)
	require.Len(t, items, 1)
	assert.Equal(t, mine.ID, items[0].LeadID)
}

func TestCreateBatchValidation(t *testing.T) {
	db := openDispatcherTestDB(t)
	supervisor := seedUser(t, db, "u_super_1", userModel.RoleSupervisor)
	d := NewDispatcher(db)

	_, err := d.CreateBatch(supervisor, nil, "No leads", "", "")
	assert.True(t, apperrors.IsValidation(err))

	l := seedLead(t, db, "u_emp_1", leadModel.StageQualified, 0)
	_, err = d.CreateBatch(supervisor, []string{l.ID}, "", "", "")
	assert.True(t, apperrors.IsValidation(err))
}

func TestPushBatchGeneratesShipmentsOnce(t *testing.T) {
	db := openDispatcherTestDB(t)
	supervisor := seedUser(t, db, "u_super_1", userModel.RoleSupervisor)
	l := seedLead(t, db, "u_emp_1", leadModel.StageQualified, 0)
	d := NewDispatcher(db)

	batchID, err := d.CreateBatch(supervisor, []string{l.ID}, "Autumn brochures", "", "")
	require.NoError(t, err)

	require.NoError(t, d.PushBatch(supervisor, batchID))

	var batch campaignModel.Batch
	require.NoError(t, db.First(&batch, "id = ?", batchID).Error)
	assert.Equal(t, campaignModel.BatchStatusSent, batch.Status)

	var item campaignModel.BatchItem
	require.NoError(t, db.First(&item, "batch_id = ?", batchID).Error)
	assert.Equal(t, campaignModel.ItemPushed, item.PushStatus)
	require.NotNil(t, item.ShipmentID)

	var sh shipmentModel.Shipment
	require.NoError(t, db.First(&sh, "id = ?", *item.ShipmentID).Error)
	assert.Equal(t, l.ID, sh.LeadID)
	assert.Equal(t, CarrierYTO, sh.Carrier)
	assert.NotEmpty(t, sh.WaybillNo)
	assert.Equal(t, shipmentModel.LogisticsPending, sh.LogisticsStatus)
	require.NotNil(t, sh.ReceiverName)
	assert.Equal(t, "Wang Li", *sh.ReceiverName)
	require.NotNil(t, sh.ReceiverCountry)
	assert.Equal(t, "China", *sh.ReceiverCountry)

	// second push is rejected and creates nothing
	err = d.PushBatch(supervisor, batchID)
	assert.True(t, apperrors.IsValidation(err))

	var shipmentCount int64
	db.Model(&shipmentModel.Shipment{}).Count(&shipmentCount)
	assert.EqualValues(t, 1, shipmentCount)
}

func TestPushBatchForeignBatchIsNotFound(t *testing.T) {
	db := openDispatcherTestDB(t)
	supervisor := seedUser(t, db, "u_super_1", userModel.RoleSupervisor)
	emp := seedUser(t, db, "u_emp_1", userModel.RoleSalesperson)
	foreign := seedLead(t, db, "u_emp_2", leadModel.StageQualified, 0)
	d := NewDispatcher(db)

	batchID, err := d.CreateBatch(supervisor, []string{foreign.ID}, "Supervisor wave", "", "")
	require.NoError(t, err)

	err = d.PushBatch(emp, batchID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	var shipmentCount int64
	db.Model(&shipmentModel.Shipment{}).Count(&shipmentCount)
	assert.Zero(t, shipmentCount)

	var batch campaignModel.Batch
	require.NoError(t, db.First(&batch, "id = ?", batchID).Error)
	assert.Equal(t, campaignModel.BatchStatusDraft, batch.Status)

	var item campaignModel.BatchItem
	require.NoError(t, db.First(&item, "batch_id = ?", batchID).Error)
	assert.Equal(t, campaignModel.ItemNotPushed, item.PushStatus)
	assert.Nil(t, item.ShipmentID)
}

func TestPushBatchSalespersonPushesOwnBatch(t *testing.T) {
	db := openDispatcherTestDB(t)
	emp := seedUser(t, db, "u_emp_1", userModel.RoleSalesperson)
	mine := seedLead(t, db, emp.ID, leadModel.StageQualified, 0)
	d := NewDispatcher(db)

	batchID, err := d.CreateBatch(emp, []string{mine.ID}, "Own wave", "", "")
	require.NoError(t, err)
	require.NoError(t, d.PushBatch(emp, batchID))

	var batch campaignModel.Batch
	require.NoError(t, db.First(&batch, "id = ?", batchID).Error)
	assert.Equal(t, campaignModel.BatchStatusSent, batch.Status)
}

func TestRefreshTrackingForeignBatchIsNotFound(t *testing.T) {
	db := openDispatcherTestDB(t)
	supervisor := seedUser(t, db, "u_super_1", userModel.RoleSupervisor)
	emp := seedUser(t, db, "u_emp_1", userModel.RoleSalesperson)
	foreign := seedLead(t, db, "u_emp_2", leadModel.StageQualified, 0)
	d := NewDispatcher(db)

	batchID, err := d.CreateBatch(supervisor, []string{foreign.ID}, "Supervisor wave", "", "")
	require.NoError(t, err)
	require.NoError(t, d.PushBatch(supervisor, batchID))

	err = d.RefreshTracking(emp, batchID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	var eventCount int64
	db.Model(&shipmentModel.Event{}).Count(&eventCount)
	assert.Zero(t, eventCount)
}

func TestPushBatchUnknownIsNotFound(t *testing.T) {
	db := openDispatcherTestDB(t)
	supervisor := seedUser(t, db, "u_super_1", userModel.RoleSupervisor)
	d := NewDispatcher(db)

	err := d.PushBatch(supervisor, "cb_missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRefreshTrackingAppendsEvents(t *testing.T) {
	db := openDispatcherTestDB(t)
	supervisor := seedUser(t, db, "u_super_1", userModel.RoleSupervisor)
	l := seedLead(t, db, "u_emp_1", leadModel.StageQualified, 0)
	d := NewDispatcher(db)

	batchID, err := d.CreateBatch(supervisor, []string{l.ID}, "Autumn brochures", "", "")
	require.NoError(t, err)
	require.NoError(t, d.PushBatch(supervisor, batchID))

	require.NoError(t, d.RefreshTracking(supervisor, batchID))
	require.NoError(t, d.RefreshTracking(supervisor, batchID))

	var events []shipmentModel.Event
	require.NoError(t, db.Find(&events, "status = ?", shipmentModel.EventTrackRefresh).Error)
	assert.Len(t, events, 2)
}
