package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/jackiechen20262026/marketing/constants"
	"github.com/jackiechen20262026/marketing/logger"
	userModel "github.com/jackiechen20262026/marketing/models/user"
	"github.com/jackiechen20262026/marketing/types"
)

// Stand-in portal users, one per role. Session/login handling lives in a
// separate identity service; the portal selects the acting role via the
// X-Act-As header or the "as" query parameter.
const (
	StandInAdminID       = "u_admin_001"
	StandInSupervisorID  = "u_super_001"
	StandInSalespersonID = "u_emp_001"
)

// ResolveActor loads the acting user for the request and stores it in
// Locals("actor"). Unknown role keys fall back to Admin, matching the
// portal's default session.
func ResolveActor(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roleKey := c.Get("X-Act-As")
		if roleKey == "" {
			roleKey = c.Query("as")
		}

		var id string
		switch strings.ToLower(roleKey) {
		case "supervisor":
			id = StandInSupervisorID
		case "employee", "salesperson":
			id = StandInSalespersonID
		default:
			id = StandInAdminID
		}

		var actor userModel.User
		if err := db.First(&actor, "id = ?", id).Error; err != nil {
			logger.Error("Failed to resolve acting user", err)
			return c.Status(fiber.StatusServiceUnavailable).JSON(types.ApiResponse{
				Status:  fiber.StatusServiceUnavailable,
				Message: "Service unavailable",
			})
		}

		c.Locals("actor", actor)
		return c.Next()
	}
}

// GetActor returns the acting user stored by ResolveActor.
func GetActor(c *fiber.Ctx) (userModel.User, bool) {
	actor, ok := c.Locals("actor").(userModel.User)
	return actor, ok
}

// RequirePermissions rejects the request unless the actor's role grants
// every listed permission.
func RequirePermissions(permissions ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := GetActor(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Status:  fiber.StatusUnauthorized,
				Message: "Missing acting user",
			})
		}
		for _, p := range permissions {
			if !constants.HasPermission(actor.Role, p) {
				return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
					Status:  fiber.StatusForbidden,
					Message: "Insufficient permissions",
				})
			}
		}
		return c.Next()
	}
}
