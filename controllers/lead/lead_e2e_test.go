package lead_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/jackiechen20262026/marketing/database"
	"github.com/jackiechen20262026/marketing/middleware"
	leadModel "github.com/jackiechen20262026/marketing/models/lead"
	userModel "github.com/jackiechen20262026/marketing/models/user"
	"github.com/jackiechen20262026/marketing/routes"
	"github.com/jackiechen20262026/marketing/utils"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	for id, role := range map[string]userModel.Role{
		middleware.StandInAdminID:       userModel.RoleAdmin,
		middleware.StandInSupervisorID:  userModel.RoleSupervisor,
		middleware.StandInSalespersonID: userModel.RoleSalesperson,
	} {
		require.NoError(t, db.Create(&userModel.User{
			ID: id, Username: id, Role: role, Status: "active",
		}).Error)
	}

	app := fiber.New()
	routes.SetupRoutes(app, db)
	return app, db
}

func seedLead(t *testing.T, db *gorm.DB, ownerID string, stage leadModel.Stage) leadModel.Lead {
	t.Helper()
	l := leadModel.Lead{
		ID:          utils.NewID("l"),
		CompanyName: "Acme Trading Co",
		Country:     "China",
		Source:      "Amazon",
		Priority:    "M",
		OwnerID:     ownerID,
		Stage:       stage,
	}
	require.NoError(t, db.Create(&l).Error)
	return l
}

func doJSON(t *testing.T, app *fiber.App, method, path, actAs string, body interface{}) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if actAs != "" {
		req.Header.Set("X-Act-As", actAs)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeData(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var envelope map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return envelope
}

func TestLeadListIsScopedByActor(t *testing.T) {
	app, db := newTestApp(t)
	seedLead(t, db, middleware.StandInSalespersonID, leadModel.StageImported)
	seedLead(t, db, "someone_else", leadModel.StageImported)

	resp := doJSON(t, app, http.MethodGet, "/api/leads/", "employee", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	envelope := decodeData(t, resp)
	assert.Len(t, envelope["data"], 1)

	resp = doJSON(t, app, http.MethodGet, "/api/leads/", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	envelope = decodeData(t, resp)
	assert.Len(t, envelope["data"], 2)
}

func TestCreateLeadAssignsOwnerAndStage(t *testing.T) {
	app, db := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/leads/", "employee", map[string]interface{}{
		"company_name": "Shenzhen Gadgets Ltd",
		"contact_name": "Chen Wei",
		"country":      "China",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var l leadModel.Lead
	require.NoError(t, db.First(&l, "company_name = ?", "Shenzhen Gadgets Ltd").Error)
	assert.Equal(t, middleware.StandInSalespersonID, l.OwnerID)
	assert.Equal(t, leadModel.StageImported, l.Stage)

	var activityCount int64
	db.Model(&leadModel.Activity{}).Where("lead_id = ?", l.ID).Count(&activityCount)
	assert.EqualValues(t, 1, activityCount)
}

func TestCreateLeadRequiresCompanyName(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/leads/", "employee", map[string]interface{}{
		"contact_name": "Chen Wei",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMoveStageSkipAheadRejected(t *testing.T) {
	app, db := newTestApp(t)
	l := seedLead(t, db, middleware.StandInSalespersonID, leadModel.StageImported)

	resp := doJSON(t, app, http.MethodPost, "/api/leads/"+l.ID+"/stage", "employee", map[string]interface{}{
		"to_stage": "signed",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestShowOutOfScopeLeadIsNotFound(t *testing.T) {
	app, db := newTestApp(t)
	l := seedLead(t, db, "someone_else", leadModel.StageImported)

	resp := doJSON(t, app, http.MethodGet, "/api/leads/"+l.ID, "employee", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestImportCreatesLeadsFromRawLines(t *testing.T) {
	app, db := newTestApp(t)

	raw := "Hamburg Imports GmbH,Hans Meyer,+49 40 000001,Hamburg,Germany,Acme\n" +
		",missing company\n" +
		"Lyon Distribution SA,,,Lyon,France,"
	resp := doJSON(t, app, http.MethodPost, "/api/leads/import", "supervisor", map[string]interface{}{
		"raw_data": raw,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	envelope := decodeData(t, resp)
	data := envelope["data"].(map[string]interface{})
	assert.EqualValues(t, 2, data["imported"])
	assert.EqualValues(t, 1, data["failed"])

	var l leadModel.Lead
	require.NoError(t, db.First(&l, "company_name = ?", "Hamburg Imports GmbH").Error)
	assert.Equal(t, "Germany", l.Country)
	assert.Equal(t, middleware.StandInSupervisorID, l.OwnerID)
	assert.Equal(t, leadModel.StageImported, l.Stage)
	require.NotNil(t, l.BrandJSON)
	assert.Contains(t, *l.BrandJSON, "Acme")
}

func TestPermissionGates(t *testing.T) {
	app, _ := newTestApp(t)

	// salesperson has no reporting permission
	resp := doJSON(t, app, http.MethodGet, "/api/dashboard/countries", "employee", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// supervisor may view but not edit courier settings
	resp = doJSON(t, app, http.MethodGet, "/api/settings/courier/", "supervisor", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPut, "/api/settings/courier/", "supervisor", map[string]interface{}{
		"base_url": "https://openapi.example.com",
		"app_key":  "AK123456789",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// salesperson cannot export the pool
	resp = doJSON(t, app, http.MethodGet, "/api/leads/export", "employee", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
