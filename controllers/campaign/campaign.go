package campaign

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/jackiechen20262026/marketing/apperrors"
	"github.com/jackiechen20262026/marketing/logger"
	"github.com/jackiechen20262026/marketing/middleware"
	campaignModel "github.com/jackiechen20262026/marketing/models/campaign"
	"github.com/jackiechen20262026/marketing/services"
	campaignService "github.com/jackiechen20262026/marketing/services/campaign"
	"github.com/jackiechen20262026/marketing/types"
	campaignTypes "github.com/jackiechen20262026/marketing/types/campaign"
	"github.com/jackiechen20262026/marketing/utils"
)

// CampaignController handles campaign batch HTTP requests
type CampaignController struct {
	DB         *gorm.DB
	Logger     *logger.AsyncLogger
	Dispatcher *campaignService.Dispatcher
}

// NewCampaignController creates a new campaign controller
func NewCampaignController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *CampaignController {
	return &CampaignController{
		DB:         db,
		Logger:     asyncLogger,
		Dispatcher: campaignService.NewDispatcher(db),
	}
}

func (cc *CampaignController) logRequest(c *fiber.Ctx) {
	cc.Logger.Log(utils.CreateSanitizedLogEntry(c))
}

// batchSummary is a batch row enriched with item counts.
type batchSummary struct {
	campaignModel.Batch
	LeadCount   int64 `json:"lead_count"`
	FailedCount int64 `json:"failed_count"`
}

// Index lists the batches visible to the actor, with item counts.
func (cc *CampaignController) Index(c *fiber.Ctx) error {
	actor, _ := middleware.GetActor(c)

	var batches []campaignModel.Batch
	if err := cc.DB.Scopes(services.BatchScope(actor)).
		Order("created_at DESC").Limit(200).Find(&batches).Error; err != nil {
		logger.Error("Failed to list campaign batches", err)
		return apperrors.Respond(c, err)
	}

	out := make([]batchSummary, 0, len(batches))
	for _, b := range batches {
		summary := batchSummary{Batch: b}
		cc.DB.Model(&campaignModel.BatchItem{}).Where("batch_id = ?", b.ID).Count(&summary.LeadCount)
		cc.DB.Model(&campaignModel.BatchItem{}).
			Where("batch_id = ? AND push_status = ?", b.ID, campaignModel.ItemFailed).
			Count(&summary.FailedCount)
		out = append(out, summary)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Campaign batches retrieved successfully",
		Data:    out,
	})
}

// Store creates a new campaign batch from selected leads.
func (cc *CampaignController) Store(c *fiber.Ctx) error {
	defer cc.logRequest(c)
	actor, _ := middleware.GetActor(c)

	var req campaignTypes.CreateBatchRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	batchID, err := cc.Dispatcher.CreateBatch(actor, req.LeadIDs, req.Name, req.TemplateName, req.Note)
	if err != nil {
		return apperrors.Respond(c, err)
	}

	logger.Success(fmt.Sprintf("Campaign batch created successfully with ID: %s", batchID))
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Campaign batch created successfully",
		Data:    fiber.Map{"batch_id": batchID},
	})
}

// itemDetail joins a batch item with its lead and shipment columns.
type itemDetail struct {
	ID              string  `json:"id"`
	LeadID          string  `json:"lead_id"`
	ShipmentID      *string `json:"shipment_id,omitempty"`
	PushStatus      string  `json:"push_status"`
	PushError       *string `json:"push_error,omitempty"`
	CompanyName     string  `json:"company_name"`
	ContactName     *string `json:"contact_name,omitempty"`
	WaybillNo       *string `json:"waybill_no,omitempty"`
	LogisticsStatus *string `json:"logistics_status,omitempty"`
}

// Show returns one batch with its items, leads and linked shipments. The
// batch and its lead columns both pass through the actor's scope.
func (cc *CampaignController) Show(c *fiber.Ctx) error {
	actor, _ := middleware.GetActor(c)
	batchID := c.Params("batchId")

	var batch campaignModel.Batch
	if err := cc.DB.Scopes(services.BatchScope(actor)).
		First(&batch, "campaign_batches.id = ?", batchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.Respond(c, apperrors.ErrNotFound)
		}
		return apperrors.Respond(c, err)
	}

	var items []itemDetail
	err := cc.DB.Table("campaign_batch_items").
		Select(`campaign_batch_items.id, campaign_batch_items.lead_id, campaign_batch_items.shipment_id,
			campaign_batch_items.push_status, campaign_batch_items.push_error,
			leads.company_name, leads.contact_name,
			shipments.waybill_no, shipments.logistics_status`).
		Joins("INNER JOIN leads ON leads.id = campaign_batch_items.lead_id").
		Joins("LEFT JOIN shipments ON shipments.id = campaign_batch_items.shipment_id").
		Scopes(services.LeadScope(actor)).
		Where("campaign_batch_items.batch_id = ?", batchID).
		Order("campaign_batch_items.created_at DESC").
		Scan(&items).Error
	if err != nil {
		logger.Error("Failed to load batch items", err)
		return apperrors.Respond(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Campaign batch retrieved successfully",
		Data: fiber.Map{
			"batch": batch,
			"items": items,
		},
	})
}

// Push generates shipments for every item and marks the batch Sent.
func (cc *CampaignController) Push(c *fiber.Ctx) error {
	defer cc.logRequest(c)
	actor, _ := middleware.GetActor(c)
	batchID := c.Params("batchId")

	if err := cc.Dispatcher.PushBatch(actor, batchID); err != nil {
		return apperrors.Respond(c, err)
	}

	logger.Success(fmt.Sprintf("Campaign batch %s pushed", batchID))
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Campaign batch pushed successfully",
	})
}

// RefreshTracking appends a tracking refresh event per linked shipment.
func (cc *CampaignController) RefreshTracking(c *fiber.Ctx) error {
	defer cc.logRequest(c)
	actor, _ := middleware.GetActor(c)
	batchID := c.Params("batchId")

	if err := cc.Dispatcher.RefreshTracking(actor, batchID); err != nil {
		logger.Error("Failed to refresh tracking", err)
		return apperrors.Respond(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Tracking refreshed successfully",
	})
}
