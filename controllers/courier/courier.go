package courier

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/jackiechen20262026/marketing/apperrors"
	httpServices "github.com/jackiechen20262026/marketing/httpServices/courier"
	"github.com/jackiechen20262026/marketing/logger"
	courierModel "github.com/jackiechen20262026/marketing/models/courier"
	"github.com/jackiechen20262026/marketing/types"
	courierTypes "github.com/jackiechen20262026/marketing/types/courier"
	"github.com/jackiechen20262026/marketing/utils"
)

// CourierController handles courier integration settings HTTP requests
type CourierController struct {
	DB      *gorm.DB
	Logger  *logger.AsyncLogger
	Service *httpServices.Service
}

// NewCourierController creates a new courier controller
func NewCourierController(db *gorm.DB, asyncLogger *logger.AsyncLogger, service *httpServices.Service) *CourierController {
	return &CourierController{
		DB:      db,
		Logger:  asyncLogger,
		Service: service,
	}
}

func (cc *CourierController) logRequest(c *fiber.Ctx) {
	cc.Logger.Log(utils.CreateSanitizedLogEntry(c))
}

// Settings returns the masked integration settings together with recent
// API log rows. The secret never appears in the response.
func (cc *CourierController) Settings(c *fiber.Ctx) error {
	masked, err := cc.Service.MaskedConfig()
	if err != nil {
		logger.Error("Failed to load courier settings", err)
		return apperrors.Respond(c, err)
	}

	var apiLogs []courierModel.APILog
	if err := cc.DB.Order("created_at DESC").Limit(50).Find(&apiLogs).Error; err != nil {
		logger.Error("Failed to load courier API logs", err)
		return apperrors.Respond(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Courier settings retrieved successfully",
		Data: fiber.Map{
			"settings": masked,
			"api_logs": apiLogs,
		},
	})
}

// Save upserts the integration settings and echoes back the masked view.
func (cc *CourierController) Save(c *fiber.Ctx) error {
	defer cc.logRequest(c)

	var req courierTypes.SaveSettingsRequest
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

	masked, err := cc.Service.SaveConfig(httpServices.SaveConfigInput{
		BaseURL:      req.BaseURL,
		AppKey:       req.AppKey,
		AppSecret:    req.AppSecret,
		CustomerCode: req.CustomerCode,
		Enabled:      req.Enabled,
	})
	if err != nil {
		logger.Error("Failed to save courier settings", err)
		return apperrors.Respond(c, err)
	}

	logger.Success("Courier settings saved")
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Courier settings saved successfully",
		Data:    masked,
	})
}

// Test fires a connectivity check against the configured endpoint. The
// call outcome comes back in the payload; a failed check is not an HTTP
// error.
func (cc *CourierController) Test(c *fiber.Ctx) error {
	defer cc.logRequest(c)

	result := cc.Service.HealthCheck()
	message := "Courier connectivity test passed"
	if !result.OK {
		message = "Courier connectivity test failed"
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: message,
		Data:    result,
	})
}
