package lead

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/jackiechen20262026/marketing/apperrors"
	"github.com/jackiechen20262026/marketing/logger"
	"github.com/jackiechen20262026/marketing/middleware"
	leadModel "github.com/jackiechen20262026/marketing/models/lead"
	"github.com/jackiechen20262026/marketing/services"
	stageService "github.com/jackiechen20262026/marketing/services/stage"
	"github.com/jackiechen20262026/marketing/types"
	leadTypes "github.com/jackiechen20262026/marketing/types/lead"
	"github.com/jackiechen20262026/marketing/utils"
)

// LeadController handles lead pool HTTP requests
type LeadController struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
	Stage  *stageService.Engine
}

// NewLeadController creates a new lead controller
func NewLeadController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *LeadController {
	return &LeadController{
		DB:     db,
		Logger: asyncLogger,
		Stage:  stageService.NewEngine(db),
	}
}

func (lc *LeadController) logRequest(c *fiber.Ctx) {
	lc.Logger.Log(utils.CreateSanitizedLogEntry(c))
}

// Index lists leads visible to the actor, with optional filters.
func (lc *LeadController) Index(c *fiber.Ctx) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Missing acting user",
		})
	}

	query := lc.DB.Model(&leadModel.Lead{}).Scopes(services.LeadScope(actor))

	if q := strings.TrimSpace(c.Query("q", c.Query("company_name"))); q != "" {
		like := "%" + q + "%"
		query = query.Where("company_name LIKE ? OR contact_name LIKE ? OR phone LIKE ?", like, like, like)
	}
	if owner := strings.TrimSpace(c.Query("owner")); owner != "" {
		query = query.Where("owner_id = ?", owner)
	}
	if city := strings.TrimSpace(c.Query("city")); city != "" {
		query = query.Where("city = ?", city)
	}
	if country := strings.TrimSpace(c.Query("country")); country != "" {
		query = query.Where("country = ?", country)
	}
	if stage := strings.TrimSpace(c.Query("stage")); stage != "" {
		query = query.Where("stage = ?", stage)
	}
	if reminder := strings.TrimSpace(c.Query("next_visit_reminder")); reminder != "" {
		from, to, ok := utils.ReminderWindow(reminder)
		if ok {
			if from.IsZero() {
				query = query.Where("next_visit_reminder < ?", to)
			} else {
				query = query.Where("next_visit_reminder BETWEEN ? AND ?", from, to)
			}
		}
	}

	var leads []leadModel.Lead
	if err := query.Order("updated_at DESC").Limit(300).Find(&leads).Error; err != nil {
		logger.Error("Failed to list leads", err)
		return apperrors.Respond(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Leads retrieved successfully",
		Data:    leads,
	})
}

// Show returns one lead with its history, activities, followups and files.
func (lc *LeadController) Show(c *fiber.Ctx) error {
	actor, _ := middleware.GetActor(c)
	id := c.Params("id")

	var l leadModel.Lead
	if err := lc.DB.Scopes(services.LeadScope(actor)).First(&l, "leads.id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.Respond(c, apperrors.ErrNotFound)
		}
		logger.Error("Failed to load lead", err)
		return apperrors.Respond(c, err)
	}

	var history []leadModel.StageHistory
	lc.DB.Where("lead_id = ?", id).Order("created_at DESC").Limit(200).Find(&history)

	var activities []leadModel.Activity
	lc.DB.Where("lead_id = ?", id).Order("created_at DESC").Limit(200).Find(&activities)

	var followups []leadModel.Followup
	lc.DB.Where("lead_id = ?", id).Order("created_at DESC").Limit(100).Find(&followups)

	var files []leadModel.File
	lc.DB.Where("lead_id = ?", id).Order("created_at DESC").Limit(100).Find(&files)

	limitStatus := "ok"
	if l.BrochureLimitReached() {
		limitStatus = "over"
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Lead retrieved successfully",
		Data: fiber.Map{
			"lead":           l,
			"stage_history":  history,
			"activities":     activities,
			"followups":      followups,
			"files":          files,
			"brochure_limit": limitStatus,
		},
	})
}

// Store creates a new lead owned by the actor.
func (lc *LeadController) Store(c *fiber.Ctx) error {
	defer lc.logRequest(c)
	actor, _ := middleware.GetActor(c)

	var req leadTypes.LeadCreateRequest
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

	l := leadFromRequest(&req)
	l.ID = utils.NewID("l")
	l.OwnerID = actor.ID
	l.Stage = leadModel.StageImported

	err := lc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&l).Error; err != nil {
			return err
		}
		note := "lead created"
		return tx.Create(&leadModel.Activity{
			LeadID:     l.ID,
			Type:       leadModel.ActivityLeadCreated,
			Note:       &note,
			OperatorID: actor.ID,
		}).Error
	})
	if err != nil {
		logger.Error("Failed to create lead", err)
		return apperrors.Respond(c, err)
	}

	logger.Success(fmt.Sprintf("Lead created successfully with ID: %s", l.ID))
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Lead created successfully",
		Data:    l,
	})
}

// Update edits a lead's contact and company fields. Owner and stage are
// untouched.
func (lc *LeadController) Update(c *fiber.Ctx) error {
	defer lc.logRequest(c)
	actor, _ := middleware.GetActor(c)
	id := c.Params("id")

	var req leadTypes.LeadUpdateRequest
	if err := c.BodyParser(&req); err != nil {
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

	var l leadModel.Lead
	if err := lc.DB.Scopes(services.LeadScope(actor)).First(&l, "leads.id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.Respond(c, apperrors.ErrNotFound)
		}
		return apperrors.Respond(c, err)
	}

	updated := leadFromRequest(&req)
	updated.ID = l.ID
	updated.OwnerID = l.OwnerID
	updated.Stage = l.Stage
	updated.BrochureSentCount = l.BrochureSentCount
	updated.BrochureLimitCount = l.BrochureLimitCount
	updated.VisitCount = l.VisitCount
	updated.LastVisitAt = l.LastVisitAt
	updated.NextVisitReminder = l.NextVisitReminder
	updated.CreatedAt = l.CreatedAt

	err := lc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&updated).Error; err != nil {
			return err
		}
		note := "lead updated"
		return tx.Create(&leadModel.Activity{
			LeadID:     l.ID,
			Type:       leadModel.ActivityLeadUpdated,
			Note:       &note,
			OperatorID: actor.ID,
		}).Error
	})
	if err != nil {
		logger.Error("Failed to update lead", err)
		return apperrors.Respond(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Lead updated successfully",
		Data:    updated,
	})
}

// MoveStage applies a stage transition through the stage engine.
func (lc *LeadController) MoveStage(c *fiber.Ctx) error {
	defer lc.logRequest(c)
	actor, _ := middleware.GetActor(c)
	id := c.Params("id")

	var req leadTypes.MoveStageRequest
	if err := c.BodyParser(&req); err != nil {
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

	entry, err := lc.Stage.MoveStage(actor, id, leadModel.Stage(req.ToStage), req.Note)
	if err != nil {
		return apperrors.Respond(c, err)
	}

	logger.Success(fmt.Sprintf("Lead %s moved from %s to %s", id, entry.FromStage, entry.ToStage))
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Stage updated successfully",
		Data:    entry,
	})
}

// SetReminder sets or clears the next visit reminder.
func (lc *LeadController) SetReminder(c *fiber.Ctx) error {
	defer lc.logRequest(c)
	actor, _ := middleware.GetActor(c)
	id := c.Params("id")

	var req leadTypes.ReminderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	var l leadModel.Lead
	if err := lc.DB.Scopes(services.LeadScope(actor)).First(&l, "leads.id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.Respond(c, apperrors.ErrNotFound)
		}
		return apperrors.Respond(c, err)
	}

	var reminder *time.Time
	if req.NextVisitReminder != "" {
		parsed, err := time.Parse(time.RFC3339, req.NextVisitReminder)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: "next_visit_reminder must be RFC 3339",
			})
		}
		reminder = &parsed
	}

	err := lc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&leadModel.Lead{}).Where("id = ?", id).
			Updates(map[string]interface{}{"next_visit_reminder": reminder, "updated_at": time.Now()}).Error; err != nil {
			return err
		}
		note := fmt.Sprintf("reminder set %s", req.NextVisitReminder)
		return tx.Create(&leadModel.Activity{
			LeadID:     id,
			Type:       leadModel.ActivityReminderSet,
			Note:       &note,
			OperatorID: actor.ID,
		}).Error
	})
	if err != nil {
		logger.Error("Failed to set reminder", err)
		return apperrors.Respond(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Reminder updated successfully",
	})
}

// RecordVisit bumps the visit counter and logs the visit.
func (lc *LeadController) RecordVisit(c *fiber.Ctx) error {
	defer lc.logRequest(c)
	actor, _ := middleware.GetActor(c)
	id := c.Params("id")

	var req leadTypes.VisitRequest
	_ = c.BodyParser(&req)
	if req.Note == "" {
		req.Note = "visit recorded"
	}

	var l leadModel.Lead
	if err := lc.DB.Scopes(services.LeadScope(actor)).First(&l, "leads.id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.Respond(c, apperrors.ErrNotFound)
		}
		return apperrors.Respond(c, err)
	}

	err := lc.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"visit_count":   gorm.Expr("visit_count + 1"),
			"last_visit_at": time.Now(),
			"updated_at":    time.Now(),
		}
		if err := tx.Model(&leadModel.Lead{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}
		return tx.Create(&leadModel.Activity{
			LeadID:     id,
			Type:       leadModel.ActivityVisit,
			Note:       &req.Note,
			OperatorID: actor.ID,
		}).Error
	})
	if err != nil {
		logger.Error("Failed to record visit", err)
		return apperrors.Respond(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Visit recorded successfully",
	})
}

// AddFollowup records a follow-up touch point on a lead.
func (lc *LeadController) AddFollowup(c *fiber.Ctx) error {
	defer lc.logRequest(c)
	actor, _ := middleware.GetActor(c)
	id := c.Params("id")

	var req leadTypes.FollowupRequest
	if err := c.BodyParser(&req); err != nil {
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

	var l leadModel.Lead
	if err := lc.DB.Scopes(services.LeadScope(actor)).First(&l, "leads.id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.Respond(c, apperrors.ErrNotFound)
		}
		return apperrors.Respond(c, err)
	}

	followup := leadModel.Followup{
		LeadID:     id,
		Channel:    req.Channel,
		Content:    req.Content,
		OperatorID: actor.ID,
	}
	if req.Result != "" {
		followup.Result = &req.Result
	}
	if err := lc.DB.Create(&followup).Error; err != nil {
		logger.Error("Failed to create followup", err)
		return apperrors.Respond(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Followup recorded successfully",
		Data:    followup,
	})
}

// UploadFile attaches an externally stored file to a lead by URL.
func (lc *LeadController) UploadFile(c *fiber.Ctx) error {
	defer lc.logRequest(c)
	actor, _ := middleware.GetActor(c)
	id := c.Params("id")

	var req leadTypes.FileUploadRequest
	if err := c.BodyParser(&req); err != nil {
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
	if req.FileName == "" {
		req.FileName = "image"
	}

	var l leadModel.Lead
	if err := lc.DB.Scopes(services.LeadScope(actor)).First(&l, "leads.id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.Respond(c, apperrors.ErrNotFound)
		}
		return apperrors.Respond(c, err)
	}

	err := lc.DB.Transaction(func(tx *gorm.DB) error {
		file := leadModel.File{
			LeadID:     id,
			FileName:   req.FileName,
			FileURL:    req.FileURL,
			FileType:   "image/url",
			OperatorID: actor.ID,
		}
		if err := tx.Create(&file).Error; err != nil {
			return err
		}
		note := fmt.Sprintf("file uploaded %s", req.FileName)
		return tx.Create(&leadModel.Activity{
			LeadID:     id,
			Type:       leadModel.ActivityFileUpload,
			Note:       &note,
			OperatorID: actor.ID,
		}).Error
	})
	if err != nil {
		logger.Error("Failed to attach file", err)
		return apperrors.Respond(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "File attached successfully",
	})
}

func leadFromRequest(req *leadTypes.LeadCreateRequest) leadModel.Lead {
	l := leadModel.Lead{
		CompanyName: strings.TrimSpace(req.CompanyName),
		Country:     "China",
		Source:      "Amazon",
		Priority:    "M",
	}
	if req.Country != "" {
		l.Country = req.Country
	}
	setOptional(&l.ContactName, req.ContactName)
	setOptional(&l.Email, req.Email)
	setOptional(&l.Phone, req.Phone)
	setOptional(&l.Street, req.Street)
	setOptional(&l.HouseNumber, req.HouseNumber)
	setOptional(&l.PostalCode, req.PostalCode)
	setOptional(&l.City, req.City)
	setOptional(&l.SocialCreditCode, req.SocialCreditCode)
	setOptional(&l.Website, req.Website)
	setOptional(&l.CompanyProfile, req.CompanyProfile)

	brands := []string{}
	for _, b := range strings.Split(req.Brand, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brands = append(brands, b)
		}
	}
	if encoded, err := json.Marshal(brands); err == nil {
		s := string(encoded)
		l.BrandJSON = &s
	}

	if addr := strings.TrimSpace(req.Street + " " + req.HouseNumber); addr != "" {
		l.Address = &addr
	}
	return l
}

func setOptional(dst **string, value string) {
	if value = strings.TrimSpace(value); value != "" {
		*dst = &value
	}
}
