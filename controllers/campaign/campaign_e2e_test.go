package campaign_test

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
	campaignService "github.com/jackiechen20262026/marketing/services/campaign"
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

func seedLead(t *testing.T, db *gorm.DB, ownerID string) leadModel.Lead {
	t.Helper()
	contact := "Wang Li"
	l := leadModel.Lead{
		ID:          utils.NewID("l"),
		CompanyName: "Acme Trading Co",
		ContactName: &contact,
		Country:     "China",
		Source:      "Amazon",
		Priority:    "M",
		OwnerID:     ownerID,
		Stage:       leadModel.StageQualified,
	}
	require.NoError(t, db.Create(&l).Error)
	return l
}

func seedBatch(t *testing.T, db *gorm.DB, operator userModel.User, leadIDs []string) string {
	t.Helper()
	batchID, err := campaignService.NewDispatcher(db).CreateBatch(operator, leadIDs, "Autumn brochures", "", "")
	require.NoError(t, err)
	return batchID
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

func decodeEnvelope(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var envelope map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return envelope
}

func TestForeignBatchDetailIsNotFound(t *testing.T) {
	app, db := newTestApp(t)
	var supervisor userModel.User
	require.NoError(t, db.First(&supervisor, "id = ?", middleware.StandInSupervisorID).Error)
	foreign := seedLead(t, db, "u_emp_other")
	batchID := seedBatch(t, db, supervisor, []string{foreign.ID})

	resp := doJSON(t, app, http.MethodGet, "/api/campaigns/"+batchID, "employee", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// the supervisor still sees it, leads included
	resp = doJSON(t, app, http.MethodGet, "/api/campaigns/"+batchID, "supervisor", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := decodeEnvelope(t, resp)["data"].(map[string]interface{})
	assert.Len(t, data["items"], 1)
}

func TestBatchListIsScopedByActor(t *testing.T) {
	app, db := newTestApp(t)
	var supervisor userModel.User
	require.NoError(t, db.First(&supervisor, "id = ?", middleware.StandInSupervisorID).Error)
	var emp userModel.User
	require.NoError(t, db.First(&emp, "id = ?", middleware.StandInSalespersonID).Error)

	seedBatch(t, db, supervisor, []string{seedLead(t, db, "u_emp_other").ID})
	seedBatch(t, db, emp, []string{seedLead(t, db, emp.ID).ID})

	resp := doJSON(t, app, http.MethodGet, "/api/campaigns/", "employee", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decodeEnvelope(t, resp)["data"], 1)

	resp = doJSON(t, app, http.MethodGet, "/api/campaigns/", "supervisor", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decodeEnvelope(t, resp)["data"], 2)
}

func TestForeignBatchPushIsNotFound(t *testing.T) {
	app, db := newTestApp(t)
	var supervisor userModel.User
	require.NoError(t, db.First(&supervisor, "id = ?", middleware.StandInSupervisorID).Error)
	foreign := seedLead(t, db, "u_emp_other")
	batchID := seedBatch(t, db, supervisor, []string{foreign.ID})

	resp := doJSON(t, app, http.MethodPost, "/api/campaigns/"+batchID+"/push", "employee", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
