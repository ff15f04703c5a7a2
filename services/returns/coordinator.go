package returns

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/jackiechen20262026/marketing/apperrors"
	httpServices "github.com/jackiechen20262026/marketing/httpServices/courier"
	shipmentModel "github.com/jackiechen20262026/marketing/models/shipment"
	userModel "github.com/jackiechen20262026/marketing/models/user"
	"github.com/jackiechen20262026/marketing/services"
)

// CourierClient is the slice of the courier service the coordinator needs.
type CourierClient interface {
	PushReturnOrder(order httpServices.ReturnOrder) httpServices.Result
}

// Coordinator drives the return sub-flow: marking a shipment returned,
// pushing the return order to the courier, and manual retries of failed
// pushes. The local Returned status is authoritative; whether the courier
// acknowledged is tracked separately through shipment events.
type Coordinator struct {
	DB      *gorm.DB
	Courier CourierClient
}

func NewCoordinator(db *gorm.DB, courier CourierClient) *Coordinator {
	return &Coordinator{DB: db, Courier: courier}
}

// MarkReturned sets the shipment's logistics status to Returned and pushes
// the return order. The status update stands regardless of the push
// outcome; exactly one event records whether the push went through.
func (c *Coordinator) MarkReturned(actor userModel.User, shipmentID string) error {
	sh, err := c.findShipment(actor, shipmentID)
	if err != nil {
		return err
	}

	updates := map[string]interface{}{
		"logistics_status": shipmentModel.LogisticsReturned,
		"updated_at":       time.Now(),
	}
	if err := c.DB.Model(&shipmentModel.Shipment{}).Where("id = ?", sh.ID).Updates(updates).Error; err != nil {
		return err
	}

	result := c.Courier.PushReturnOrder(returnOrderFor(sh))
	return c.appendPushEvent(sh.ID, result, shipmentModel.EventReturnPushed, shipmentModel.EventReturnPushFailed,
		"return order pushed to courier", "return order push failed")
}

// RetryReturnPush re-submits the return order from the stored receiver
// snapshot. Every attempt appends its own event; there is no attempt cap
// and no deduplication of identical pushes.
func (c *Coordinator) RetryReturnPush(actor userModel.User, shipmentID string) error {
	sh, err := c.findShipment(actor, shipmentID)
	if err != nil {
		return err
	}

	result := c.Courier.PushReturnOrder(returnOrderFor(sh))
	return c.appendPushEvent(sh.ID, result, shipmentModel.EventReturnRetryOK, shipmentModel.EventReturnRetryFail,
		"return order retry succeeded", "return order retry failed")
}

func (c *Coordinator) findShipment(actor userModel.User, shipmentID string) (*shipmentModel.Shipment, error) {
	var sh shipmentModel.Shipment
	err := c.DB.Scopes(services.ShipmentScope(actor)).First(&sh, "shipments.id = ?", shipmentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sh, nil
}

func (c *Coordinator) appendPushEvent(shipmentID string, result httpServices.Result, okStatus, failStatus, okDesc, failDesc string) error {
	now := time.Now()
	event := shipmentModel.Event{
		ShipmentID: shipmentID,
		EventTime:  &now,
		Location:   "SYSTEM",
	}
	if result.OK {
		event.Status = okStatus
		event.Description = okDesc
	} else {
		event.Status = failStatus
		event.Description = fmt.Sprintf("%s: %s", failDesc, result.Error)
	}
	return c.DB.Create(&event).Error
}

func returnOrderFor(sh *shipmentModel.Shipment) httpServices.ReturnOrder {
	return httpServices.ReturnOrder{
		BizID:           sh.ID,
		WaybillNo:       sh.WaybillNo,
		ReceiverName:    deref(sh.ReceiverName),
		ReceiverPhone:   deref(sh.ReceiverPhone),
		ReceiverCountry: deref(sh.ReceiverCountry),
		ReceiverAddress: deref(sh.ReceiverAddress),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
