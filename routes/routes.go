package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/jackiechen20262026/marketing/constants"
	campaignController "github.com/jackiechen20262026/marketing/controllers/campaign"
	courierController "github.com/jackiechen20262026/marketing/controllers/courier"
	dashboardController "github.com/jackiechen20262026/marketing/controllers/dashboard"
	leadController "github.com/jackiechen20262026/marketing/controllers/lead"
	shipmentController "github.com/jackiechen20262026/marketing/controllers/shipment"
	userController "github.com/jackiechen20262026/marketing/controllers/user"
	httpServices "github.com/jackiechen20262026/marketing/httpServices/courier"
	"github.com/jackiechen20262026/marketing/logger"
	"github.com/jackiechen20262026/marketing/middleware"
	"github.com/jackiechen20262026/marketing/services/returns"
	"github.com/jackiechen20262026/marketing/types"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	asyncLogger := logger.NewAsyncLogger(db)
	courierService := httpServices.NewService(db)
	returnsCoordinator := returns.NewCoordinator(db, courierService)

	leads := leadController.NewLeadController(db, asyncLogger)
	campaigns := campaignController.NewCampaignController(db, asyncLogger)
	shipments := shipmentController.NewShipmentController(db, asyncLogger, returnsCoordinator)
	couriers := courierController.NewCourierController(db, asyncLogger, courierService)
	users := userController.NewUserController(db, asyncLogger)
	dashboard := dashboardController.NewDashboardController(db)

	// Start the async logger processing goroutine
	go asyncLogger.ProcessLog()

	// Index route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
			Status:  fiber.StatusOK,
			Message: "Marketing portal API",
		})
	})

	api := app.Group("/api").Use(middleware.ResolveActor(db))

	/*=============================================================================
	| Lead Routes
	===============================================================================*/
	leadGroup := api.Group("/leads")

	leadGroup.Get("/", middleware.RequirePermissions(
		constants.PermLeadView,
	), leads.Index)
	leadGroup.Get("/template", middleware.RequirePermissions(
		constants.PermLeadImport,
	), leads.Template)
	leadGroup.Get("/export", middleware.RequirePermissions(
		constants.PermLeadExport,
	), leads.Export)
	leadGroup.Get("/recommendations", middleware.RequirePermissions(
		constants.PermLeadView,
	), leads.Recommendations)
	leadGroup.Post("/", middleware.RequirePermissions(
		constants.PermLeadEdit,
	), leads.Store)
	leadGroup.Post("/import", middleware.RequirePermissions(
		constants.PermLeadImport,
	), leads.Import)
	leadGroup.Get("/:id", middleware.RequirePermissions(
		constants.PermLeadView,
	), leads.Show)
	leadGroup.Put("/:id", middleware.RequirePermissions(
		constants.PermLeadEdit,
	), leads.Update)
	leadGroup.Post("/:id/stage", middleware.RequirePermissions(
		constants.PermLeadEdit,
	), leads.MoveStage)
	leadGroup.Post("/:id/reminder", middleware.RequirePermissions(
		constants.PermLeadReminder,
	), leads.SetReminder)
	leadGroup.Post("/:id/visit", middleware.RequirePermissions(
		constants.PermLeadEdit,
	), leads.RecordVisit)
	leadGroup.Post("/:id/followups", middleware.RequirePermissions(
		constants.PermLeadEdit,
	), leads.AddFollowup)
	leadGroup.Post("/:id/files", middleware.RequirePermissions(
		constants.PermLeadUpload,
	), leads.UploadFile)

	/*=============================================================================
	| Campaign Routes
	===============================================================================*/
	campaignGroup := api.Group("/campaigns")

	campaignGroup.Get("/", middleware.RequirePermissions(
		constants.PermCampaignView,
	), campaigns.Index)
	campaignGroup.Post("/", middleware.RequirePermissions(
		constants.PermCampaignCreate,
	), campaigns.Store)
	campaignGroup.Get("/:batchId", middleware.RequirePermissions(
		constants.PermCampaignDetail,
	), campaigns.Show)
	campaignGroup.Post("/:batchId/push", middleware.RequirePermissions(
		constants.PermCampaignCreate,
	), campaigns.Push)
	campaignGroup.Post("/:batchId/refresh-track", middleware.RequirePermissions(
		constants.PermCampaignTrack,
	), campaigns.RefreshTracking)

	/*=============================================================================
	| Shipment Routes
	===============================================================================*/
	shipmentGroup := api.Group("/shipments")

	shipmentGroup.Get("/", middleware.RequirePermissions(
		constants.PermCampaignTrack,
	), shipments.Index)
	shipmentGroup.Get("/:shipmentId", middleware.RequirePermissions(
		constants.PermCampaignTrack,
	), shipments.Show)
	shipmentGroup.Post("/:shipmentId/mark-returned", middleware.RequirePermissions(
		constants.PermCampaignTrack,
	), shipments.MarkReturned)
	shipmentGroup.Post("/:shipmentId/retry-return", middleware.RequirePermissions(
		constants.PermCampaignTrack,
	), shipments.RetryReturnPush)

	/*=============================================================================
	| Courier Settings Routes
	===============================================================================*/
	settingsGroup := api.Group("/settings/courier")

	settingsGroup.Get("/", middleware.RequirePermissions(
		constants.PermSettingsCourierView,
	), couriers.Settings)
	settingsGroup.Put("/", middleware.RequirePermissions(
		constants.PermSettingsCourierEdit,
	), couriers.Save)
	settingsGroup.Post("/test", middleware.RequirePermissions(
		constants.PermSettingsCourierEdit,
	), couriers.Test)

	/*=============================================================================
	| User Management Routes
	===============================================================================*/
	userGroup := api.Group("/users")

	userGroup.Get("/", middleware.RequirePermissions(
		constants.PermUserView,
	), users.Index)
	userGroup.Post("/", middleware.RequirePermissions(
		constants.PermUserEdit,
	), users.Store)
	userGroup.Put("/:userId", middleware.RequirePermissions(
		constants.PermUserEdit, constants.PermUserRole,
	), users.Update)

	/*=============================================================================
	| Dashboard Routes
	===============================================================================*/
	dashboardGroup := api.Group("/dashboard")

	dashboardGroup.Get("/stats", middleware.RequirePermissions(
		constants.PermLeadView,
	), dashboard.Stats)
	dashboardGroup.Get("/countries", middleware.RequirePermissions(
		constants.PermReportView,
	), dashboard.Countries)
	dashboardGroup.Get("/logistics", middleware.RequirePermissions(
		constants.PermReportView,
	), dashboard.Logistics)
	dashboardGroup.Get("/activities", middleware.RequirePermissions(
		constants.PermLeadView,
	), dashboard.Activities)
	dashboardGroup.Get("/request-logs", middleware.RequirePermissions(
		constants.PermReportView,
	), dashboard.RequestLogs)
}
