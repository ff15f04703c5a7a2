package services

import (
	"gorm.io/gorm"

	"github.com/jackiechen20262026/marketing/models/user"
)

// LeadScope returns the row-level filter for lead queries as a GORM scope.
// Admin and Supervisor see the whole pool; a Salesperson only sees leads
// they own. The scope must also be applied to joins that reach leads from
// shipments or campaign items, so a scoped actor cannot observe another
// owner's data through a secondary entity.
func LeadScope(actor user.User) func(*gorm.DB) *gorm.DB {
	if actor.Role == user.RoleAdmin || actor.Role == user.RoleSupervisor {
		return func(db *gorm.DB) *gorm.DB {
			return db
		}
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("leads.owner_id = ?", actor.ID)
	}
}

// BatchScope returns the row-level filter for campaign batch queries. A
// Salesperson only ever admits their own leads into a batch, so their
// batch visibility is the batches they created; Admin and Supervisor see
// every batch. Out-of-scope batches read as not found, the same as leads.
func BatchScope(actor user.User) func(*gorm.DB) *gorm.DB {
	if actor.Role == user.RoleAdmin || actor.Role == user.RoleSupervisor {
		return func(db *gorm.DB) *gorm.DB {
			return db
		}
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("campaign_batches.operator_id = ?", actor.ID)
	}
}

// ShipmentScope filters shipment queries through their lead's owner. It
// joins the leads table, so callers must not alias it away.
func ShipmentScope(actor user.User) func(*gorm.DB) *gorm.DB {
	if actor.Role == user.RoleAdmin || actor.Role == user.RoleSupervisor {
		return func(db *gorm.DB) *gorm.DB {
			return db
		}
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.Joins("INNER JOIN leads ON leads.id = shipments.lead_id").
			Where("leads.owner_id = ?", actor.ID)
	}
}
