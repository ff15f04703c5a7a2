package constants

import (
	"github.com/jackiechen20262026/marketing/models/user"
)

// Portal permissions
const (
	// Lead permissions
	PermLeadView     = "lead.view"
	PermLeadEdit     = "lead.edit"
	PermLeadImport   = "lead.import"
	PermLeadExport   = "lead.export"
	PermLeadUpload   = "lead.upload"
	PermLeadReminder = "lead.reminder"

	// Campaign permissions
	PermCampaignView   = "campaign.view"
	PermCampaignCreate = "campaign.create"
	PermCampaignDetail = "campaign.detail"
	PermCampaignTrack  = "campaign.track"

	// Courier settings permissions
	PermSettingsCourierView = "settings.yto.view"
	PermSettingsCourierEdit = "settings.yto.edit"

	// User management permissions
	PermUserView = "user.view"
	PermUserEdit = "user.edit"
	PermUserRole = "user.role"

	// Reporting permissions
	PermReportView = "report.view"
)

// RolePermissions maps each portal role to its permission set.
var RolePermissions = map[user.Role][]string{
	user.RoleAdmin: {
		PermLeadView, PermLeadEdit, PermLeadImport, PermLeadExport,
		PermLeadUpload, PermLeadReminder,
		PermCampaignView, PermCampaignCreate, PermCampaignDetail, PermCampaignTrack,
		PermSettingsCourierView, PermSettingsCourierEdit,
		PermUserView, PermUserEdit, PermUserRole,
		PermReportView,
	},
	user.RoleSupervisor: {
		PermLeadView, PermLeadEdit, PermLeadImport, PermLeadUpload, PermLeadReminder,
		PermCampaignView, PermCampaignCreate, PermCampaignDetail, PermCampaignTrack,
		PermSettingsCourierView,
		PermReportView,
	},
	user.RoleSalesperson: {
		PermLeadView, PermLeadEdit, PermLeadUpload, PermLeadReminder,
		PermCampaignView, PermCampaignCreate, PermCampaignDetail,
	},
}

// HasPermission reports whether the role grants the given permission.
func HasPermission(role user.Role, permission string) bool {
	for _, p := range RolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}
