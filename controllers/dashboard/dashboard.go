package dashboard

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/jackiechen20262026/marketing/apperrors"
	"github.com/jackiechen20262026/marketing/logger"
	"github.com/jackiechen20262026/marketing/middleware"
	campaignModel "github.com/jackiechen20262026/marketing/models/campaign"
	leadModel "github.com/jackiechen20262026/marketing/models/lead"
	logModel "github.com/jackiechen20262026/marketing/models/log"
	shipmentModel "github.com/jackiechen20262026/marketing/models/shipment"
	userModel "github.com/jackiechen20262026/marketing/models/user"
	"github.com/jackiechen20262026/marketing/services"
	"github.com/jackiechen20262026/marketing/types"
	"github.com/jackiechen20262026/marketing/utils"
)

// DashboardController serves scoped analytics for the portal home page
type DashboardController struct {
	DB *gorm.DB
}

// NewDashboardController creates a new dashboard controller
func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db}
}

type bucket struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

// Stats returns the headline counters for the acting user: total leads,
// leads per funnel stage, reminders due today and overdue, draft batches
// and shipments in flight. All lead-derived numbers respect the actor's
// visibility scope.
func (dc *DashboardController) Stats(c *fiber.Ctx) error {
	actor, _ := middleware.GetActor(c)

	var totalLeads int64
	if err := dc.DB.Model(&leadModel.Lead{}).Scopes(services.LeadScope(actor)).Count(&totalLeads).Error; err != nil {
		logger.Error("Failed to count leads", err)
		return apperrors.Respond(c, err)
	}

	funnel := make([]bucket, 0, len(leadModel.AllStages()))
	for _, s := range leadModel.AllStages() {
		var n int64
		dc.DB.Model(&leadModel.Lead{}).Scopes(services.LeadScope(actor)).
			Where("leads.stage = ?", s).Count(&n)
		funnel = append(funnel, bucket{Key: string(s), Count: n})
	}

	dueToday := dc.reminderCount(actor, "today")
	overdue := dc.reminderCount(actor, "overdue")

	var draftBatches int64
	dc.DB.Model(&campaignModel.Batch{}).
		Where("status = ?", campaignModel.BatchStatusDraft).Count(&draftBatches)

	var convertedLeads int64
	dc.DB.Model(&leadModel.Lead{}).Scopes(services.LeadScope(actor)).
		Where("leads.stage = ?", leadModel.StageConverted).Count(&convertedLeads)

	var shipmentsInFlight int64
	dc.DB.Table("shipments").
		Joins("INNER JOIN leads ON leads.id = shipments.lead_id").
		Scopes(services.LeadScope(actor)).
		Where("shipments.logistics_status IN ?", []shipmentModel.LogisticsStatus{
			shipmentModel.LogisticsPending, shipmentModel.LogisticsInTransit,
		}).
		Count(&shipmentsInFlight)

	var shipmentsReturned int64
	dc.DB.Table("shipments").
		Joins("INNER JOIN leads ON leads.id = shipments.lead_id").
		Scopes(services.LeadScope(actor)).
		Where("shipments.logistics_status = ?", shipmentModel.LogisticsReturned).
		Count(&shipmentsReturned)

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Dashboard stats retrieved successfully",
		Data: fiber.Map{
			"total_leads":         totalLeads,
			"converted_leads":     convertedLeads,
			"funnel":              funnel,
			"reminders_due_today": dueToday,
			"reminders_overdue":   overdue,
			"draft_batches":       draftBatches,
			"shipments_in_flight": shipmentsInFlight,
			"shipments_returned":  shipmentsReturned,
		},
	})
}

// Activities lists recent lead activity entries visible to the actor.
func (dc *DashboardController) Activities(c *fiber.Ctx) error {
	actor, _ := middleware.GetActor(c)

	var activities []leadModel.Activity
	err := dc.DB.Model(&leadModel.Activity{}).
		Joins("INNER JOIN leads ON leads.id = lead_activity_logs.lead_id").
		Scopes(services.LeadScope(actor)).
		Order("lead_activity_logs.created_at DESC").
		Limit(100).
		Find(&activities).Error
	if err != nil {
		logger.Error("Failed to list activities", err)
		return apperrors.Respond(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Activities retrieved successfully",
		Data:    activities,
	})
}

func (dc *DashboardController) reminderCount(actor userModel.User, window string) int64 {
	from, to, ok := utils.ReminderWindow(window)
	if !ok {
		return 0
	}
	query := dc.DB.Model(&leadModel.Lead{}).Scopes(services.LeadScope(actor))
	if !from.IsZero() {
		query = query.Where("leads.next_visit_reminder >= ?", from)
	}
	var n int64
	query.Where("leads.next_visit_reminder <= ?", to).Count(&n)
	return n
}

// Countries returns the lead distribution by country.
func (dc *DashboardController) Countries(c *fiber.Ctx) error {
	actor, _ := middleware.GetActor(c)

	var rows []bucket
	err := dc.DB.Model(&leadModel.Lead{}).Scopes(services.LeadScope(actor)).
		Select("leads.country AS key, COUNT(*) AS count").
		Group("leads.country").
		Order("count DESC").
		Scan(&rows).Error
	if err != nil {
		logger.Error("Failed to aggregate countries", err)
		return apperrors.Respond(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Country distribution retrieved successfully",
		Data:    rows,
	})
}

// Logistics returns the shipment distribution by logistics status,
// scoped through lead ownership.
func (dc *DashboardController) Logistics(c *fiber.Ctx) error {
	actor, _ := middleware.GetActor(c)

	var rows []bucket
	err := dc.DB.Table("shipments").
		Joins("INNER JOIN leads ON leads.id = shipments.lead_id").
		Scopes(services.LeadScope(actor)).
		Select("shipments.logistics_status AS key, COUNT(*) AS count").
		Group("shipments.logistics_status").
		Order("count DESC").
		Scan(&rows).Error
	if err != nil {
		logger.Error("Failed to aggregate logistics statuses", err)
		return apperrors.Respond(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Logistics distribution retrieved successfully",
		Data:    rows,
	})
}

// RequestLogs lists recent persisted HTTP audit entries.
func (dc *DashboardController) RequestLogs(c *fiber.Ctx) error {
	var entries []logModel.Log
	if err := dc.DB.Order("created_at DESC").Limit(100).Find(&entries).Error; err != nil {
		logger.Error("Failed to list request logs", err)
		return apperrors.Respond(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Request logs retrieved successfully",
		Data:    entries,
	})
}
