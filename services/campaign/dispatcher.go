package campaign

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/jackiechen20262026/marketing/apperrors"
	"github.com/jackiechen20262026/marketing/logger"
	campaignModel "github.com/jackiechen20262026/marketing/models/campaign"
	leadModel "github.com/jackiechen20262026/marketing/models/lead"
	shipmentModel "github.com/jackiechen20262026/marketing/models/shipment"
	userModel "github.com/jackiechen20262026/marketing/models/user"
	"github.com/jackiechen20262026/marketing/services"
	"github.com/jackiechen20262026/marketing/services/stage"
	"github.com/jackiechen20262026/marketing/utils"
)

// CarrierYTO is the carrier identifier stamped on generated shipments.
const CarrierYTO = "YTO"

// Dispatcher groups leads into campaign batches and fans out brochure and
// shipment side effects.
type Dispatcher struct {
	DB *gorm.DB
}

func NewDispatcher(db *gorm.DB) *Dispatcher {
	return &Dispatcher{DB: db}
}

// CreateBatch creates a Draft batch with one item per admitted lead.
// A lead whose brochure allowance is used up is skipped silently unless
// the actor holds an unrestricted role. Admitted leads get their brochure
// counter bumped and their stage advanced to brochure-sent, with the batch
// id recorded in the stage history note.
func (d *Dispatcher) CreateBatch(actor userModel.User, leadIDs []string, name, templateName, note string) (string, error) {
	leadIDs = utils.DedupIDs(leadIDs)
	if len(leadIDs) == 0 {
		return "", apperrors.Validationf("at least one lead id is required")
	}
	if name == "" {
		return "", apperrors.Validationf("batch name is required")
	}
	if templateName == "" {
		templateName = "standard"
	}

	batchID := utils.NewID("cb")
	err := d.DB.Transaction(func(tx *gorm.DB) error {
		batch := campaignModel.Batch{
			ID:           batchID,
			Name:         name,
			TemplateName: templateName,
			Status:       campaignModel.BatchStatusDraft,
			OperatorID:   actor.ID,
		}
		if note != "" {
			batch.Note = &note
		}
		if err := tx.Create(&batch).Error; err != nil {
			return err
		}

		admitted := 0
		for _, leadID := range leadIDs {
			var l leadModel.Lead
			if err := tx.Scopes(services.LeadScope(actor)).First(&l, "leads.id = ?", leadID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue
				}
				return err
			}
			if l.BrochureLimitReached() && !actor.Role.Unrestricted() {
				continue
			}

			item := campaignModel.BatchItem{
				ID:         utils.NewID("cbi"),
				BatchID:    batchID,
				LeadID:     l.ID,
				PushStatus: campaignModel.ItemNotPushed,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}

			updates := map[string]interface{}{
				"brochure_sent_count": gorm.Expr("brochure_sent_count + 1"),
				"stage":               leadModel.StageBrochureSent,
				"updated_at":          time.Now(),
			}
			if err := tx.Model(&leadModel.Lead{}).Where("id = ?", l.ID).Updates(updates).Error; err != nil {
				return err
			}
			if err := stage.AdvanceForBrochure(tx, &l, actor.ID, batchID); err != nil {
				return err
			}

			activityNote := fmt.Sprintf("batch %s", batchID)
			activity := leadModel.Activity{
				LeadID:     l.ID,
				Type:       leadModel.ActivityBrochureSent,
				Note:       &activityNote,
				OperatorID: actor.ID,
			}
			if err := tx.Create(&activity).Error; err != nil {
				return err
			}
			admitted++
		}

		logger.Printf("Campaign batch %s created with %d of %d leads", batchID, admitted, len(leadIDs))
		return nil
	})
	if err != nil {
		return "", err
	}
	return batchID, nil
}

// PushBatch generates one shipment per item, snapshotting each lead's
// receiver details, and marks the batch Sent. The transition happens
// exactly once; pushing an already sent batch is rejected. A batch
// outside the actor's scope, or one holding a lead outside it, reads as
// not found and nothing is pushed. Shipment
// creation is local, the courier is only contacted later by the return
// flow.
func (d *Dispatcher) PushBatch(actor userModel.User, batchID string) error {
	return d.DB.Transaction(func(tx *gorm.DB) error {
		var batch campaignModel.Batch
		if err := tx.Scopes(services.BatchScope(actor)).
			First(&batch, "campaign_batches.id = ?", batchID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound
			}
			return err
		}
		if batch.Status == campaignModel.BatchStatusSent {
			return apperrors.Validationf("batch %s has already been pushed", batchID)
		}

		var items []campaignModel.BatchItem
		if err := tx.Find(&items, "batch_id = ?", batchID).Error; err != nil {
			return err
		}

		for _, item := range items {
			var l leadModel.Lead
			if err := tx.Scopes(services.LeadScope(actor)).First(&l, "leads.id = ?", item.LeadID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.ErrNotFound
				}
				return err
			}

			sh := shipmentModel.Shipment{
				ID:              utils.NewID("s"),
				LeadID:          l.ID,
				Carrier:         CarrierYTO,
				WaybillNo:       utils.NewWaybillNo(),
				PushStatus:      string(campaignModel.ItemPushed),
				LogisticsStatus: shipmentModel.LogisticsPending,
				ReceiverName:    l.ContactName,
				ReceiverPhone:   l.Phone,
				ReceiverAddress: l.Address,
			}
			country := l.Country
			sh.ReceiverCountry = &country
			if err := tx.Create(&sh).Error; err != nil {
				return err
			}

			updates := map[string]interface{}{
				"shipment_id": sh.ID,
				"push_status": campaignModel.ItemPushed,
				"push_error":  nil,
			}
			if err := tx.Model(&campaignModel.BatchItem{}).Where("id = ?", item.ID).Updates(updates).Error; err != nil {
				return err
			}
		}

		return tx.Model(&campaignModel.Batch{}).Where("id = ?", batchID).
			Updates(map[string]interface{}{
				"status":     campaignModel.BatchStatusSent,
				"updated_at": time.Now(),
			}).Error
	})
}

// RefreshTracking appends a TrackRefresh event for every shipment linked
// to the batch. Courier events arrive by polling; this is the manual poll
// trigger. Batches outside the actor's scope read as not found.
func (d *Dispatcher) RefreshTracking(actor userModel.User, batchID string) error {
	var batch campaignModel.Batch
	if err := d.DB.Scopes(services.BatchScope(actor)).
		First(&batch, "campaign_batches.id = ?", batchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound
		}
		return err
	}

	var items []campaignModel.BatchItem
	if err := d.DB.Find(&items, "batch_id = ? AND shipment_id IS NOT NULL", batchID).Error; err != nil {
		return err
	}

	now := time.Now()
	for _, item := range items {
		if item.ShipmentID == nil {
			continue
		}
		event := shipmentModel.Event{
			ShipmentID:  *item.ShipmentID,
			EventTime:   &now,
			Status:      shipmentModel.EventTrackRefresh,
			Description: "batch tracking refresh",
			Location:    CarrierYTO,
		}
		if err := d.DB.Create(&event).Error; err != nil {
			return err
		}
	}
	return nil
}
