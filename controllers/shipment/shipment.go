package shipment

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/jackiechen20262026/marketing/apperrors"
	"github.com/jackiechen20262026/marketing/logger"
	"github.com/jackiechen20262026/marketing/middleware"
	shipmentModel "github.com/jackiechen20262026/marketing/models/shipment"
	"github.com/jackiechen20262026/marketing/services"
	"github.com/jackiechen20262026/marketing/services/returns"
	"github.com/jackiechen20262026/marketing/types"
	"github.com/jackiechen20262026/marketing/utils"
)

// ShipmentController handles shipment tracking and return HTTP requests
type ShipmentController struct {
	DB      *gorm.DB
	Logger  *logger.AsyncLogger
	Returns *returns.Coordinator
}

// NewShipmentController creates a new shipment controller
func NewShipmentController(db *gorm.DB, asyncLogger *logger.AsyncLogger, coordinator *returns.Coordinator) *ShipmentController {
	return &ShipmentController{
		DB:      db,
		Logger:  asyncLogger,
		Returns: coordinator,
	}
}

func (sc *ShipmentController) logRequest(c *fiber.Ctx) {
	sc.Logger.Log(utils.CreateSanitizedLogEntry(c))
}

// shipmentRow is a shipment joined with its lead's company name.
type shipmentRow struct {
	shipmentModel.Shipment
	CompanyName string `json:"company_name"`
}

// Index lists shipments visible to the actor, optionally filtered by
// logistics status or waybill number.
func (sc *ShipmentController) Index(c *fiber.Ctx) error {
	actor, _ := middleware.GetActor(c)

	query := sc.DB.Table("shipments").
		Select("shipments.*, leads.company_name").
		Joins("INNER JOIN leads ON leads.id = shipments.lead_id").
		Scopes(services.LeadScope(actor))

	if status := c.Query("status"); status != "" {
		query = query.Where("shipments.logistics_status = ?", status)
	}
	if waybill := c.Query("waybill_no"); waybill != "" {
		query = query.Where("shipments.waybill_no = ?", waybill)
	}
	if leadID := c.Query("lead_id"); leadID != "" {
		query = query.Where("shipments.lead_id = ?", leadID)
	}

	var rows []shipmentRow
	if err := query.Order("shipments.created_at DESC").Limit(200).Scan(&rows).Error; err != nil {
		logger.Error("Failed to list shipments", err)
		return apperrors.Respond(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Shipments retrieved successfully",
		Data:    rows,
	})
}

// Show returns one shipment with its event trail, newest first.
func (sc *ShipmentController) Show(c *fiber.Ctx) error {
	actor, _ := middleware.GetActor(c)
	shipmentID := c.Params("shipmentId")

	var sh shipmentModel.Shipment
	err := sc.DB.Scopes(services.ShipmentScope(actor)).First(&sh, "shipments.id = ?", shipmentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.Respond(c, apperrors.ErrNotFound)
		}
		return apperrors.Respond(c, err)
	}

	var events []shipmentModel.Event
	if err := sc.DB.Where("shipment_id = ?", sh.ID).
		Order("COALESCE(event_time, created_at) DESC, id DESC").Find(&events).Error; err != nil {
		logger.Error("Failed to load shipment events", err)
		return apperrors.Respond(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Shipment retrieved successfully",
		Data: fiber.Map{
			"shipment": sh,
			"events":   events,
		},
	})
}

// MarkReturned flags the shipment as returned and pushes the return order
// to the courier.
func (sc *ShipmentController) MarkReturned(c *fiber.Ctx) error {
	defer sc.logRequest(c)
	actor, _ := middleware.GetActor(c)
	shipmentID := c.Params("shipmentId")

	if err := sc.Returns.MarkReturned(actor, shipmentID); err != nil {
		return apperrors.Respond(c, err)
	}

	logger.Success(fmt.Sprintf("Shipment %s marked as returned", shipmentID))
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Shipment marked as returned",
	})
}

// RetryReturnPush re-submits the return order to the courier.
func (sc *ShipmentController) RetryReturnPush(c *fiber.Ctx) error {
	defer sc.logRequest(c)
	actor, _ := middleware.GetActor(c)
	shipmentID := c.Params("shipmentId")

	if err := sc.Returns.RetryReturnPush(actor, shipmentID); err != nil {
		return apperrors.Respond(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Return push retried",
	})
}
