package user

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/jackiechen20262026/marketing/apperrors"
	"github.com/jackiechen20262026/marketing/logger"
	userModel "github.com/jackiechen20262026/marketing/models/user"
	"github.com/jackiechen20262026/marketing/types"
	userTypes "github.com/jackiechen20262026/marketing/types/user"
	"github.com/jackiechen20262026/marketing/utils"
)

// UserController handles portal user management HTTP requests
type UserController struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
}

// NewUserController creates a new user controller
func NewUserController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *UserController {
	return &UserController{DB: db, Logger: asyncLogger}
}

func (uc *UserController) logRequest(c *fiber.Ctx) {
	uc.Logger.Log(utils.CreateSanitizedLogEntry(c))
}

// Index lists portal users.
func (uc *UserController) Index(c *fiber.Ctx) error {
	var users []userModel.User
	if err := uc.DB.Order("created_at ASC").Find(&users).Error; err != nil {
		logger.Error("Failed to list users", err)
		return apperrors.Respond(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Users retrieved successfully",
		Data:    users,
	})
}

// Store creates a new portal user.
func (uc *UserController) Store(c *fiber.Ctx) error {
	defer uc.logRequest(c)

	var req userTypes.UserRequest
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

	role := userModel.Role(req.Role)
	if !role.IsValid() {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid role",
		})
	}

	u := userModel.User{
		ID:       utils.NewID("u"),
		Username: strings.TrimSpace(req.Username),
		Role:     role,
		Status:   "active",
	}
	if req.Password != "" {
		hash := hashPassword(req.Password)
		u.PasswordHash = &hash
	}
	if req.Status != "" {
		u.Status = req.Status
	}

	if err := uc.DB.Create(&u).Error; err != nil {
		logger.Error("Failed to create user", err)
		return apperrors.Respond(c, err)
	}

	logger.Success(fmt.Sprintf("User created successfully with ID: %s", u.ID))
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "User created successfully",
		Data:    u,
	})
}

// Update modifies an existing portal user's role, status or password.
func (uc *UserController) Update(c *fiber.Ctx) error {
	defer uc.logRequest(c)
	userID := c.Params("userId")

	var u userModel.User
	if err := uc.DB.First(&u, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.Respond(c, apperrors.ErrNotFound)
		}
		return apperrors.Respond(c, err)
	}

	var req userTypes.UserRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	if username := strings.TrimSpace(req.Username); username != "" {
		u.Username = username
	}
	if req.Role != "" {
		role := userModel.Role(req.Role)
		if !role.IsValid() {
			return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: "Invalid role",
			})
		}
		u.Role = role
	}
	if req.Status != "" {
		u.Status = req.Status
	}
	if req.Password != "" {
		hash := hashPassword(req.Password)
		u.PasswordHash = &hash
	}

	if err := uc.DB.Save(&u).Error; err != nil {
		logger.Error("Failed to update user", err)
		return apperrors.Respond(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "User updated successfully",
		Data:    u,
	})
}

func hashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
