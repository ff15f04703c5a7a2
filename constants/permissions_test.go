package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jackiechen20262026/marketing/models/user"
)

func TestRolePermissionBoundaries(t *testing.T) {
	assert.True(t, HasPermission(user.RoleAdmin, PermSettingsCourierEdit))
	assert.True(t, HasPermission(user.RoleAdmin, PermUserRole))

	assert.True(t, HasPermission(user.RoleSupervisor, PermSettingsCourierView))
	assert.False(t, HasPermission(user.RoleSupervisor, PermSettingsCourierEdit))
	assert.False(t, HasPermission(user.RoleSupervisor, PermUserEdit))
	assert.False(t, HasPermission(user.RoleSupervisor, PermLeadExport))

	assert.True(t, HasPermission(user.RoleSalesperson, PermLeadView))
	assert.False(t, HasPermission(user.RoleSalesperson, PermLeadExport))
	assert.False(t, HasPermission(user.RoleSalesperson, PermReportView))
	assert.False(t, HasPermission(user.RoleSalesperson, PermSettingsCourierView))
}

func TestUnknownRoleHasNoPermissions(t *testing.T) {
	assert.False(t, HasPermission(user.Role("Intern"), PermLeadView))
}
