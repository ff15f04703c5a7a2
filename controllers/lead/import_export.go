package lead

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jackiechen20262026/marketing/apperrors"
	"github.com/jackiechen20262026/marketing/logger"
	"github.com/jackiechen20262026/marketing/middleware"
	leadModel "github.com/jackiechen20262026/marketing/models/lead"
	"github.com/jackiechen20262026/marketing/services"
	"github.com/jackiechen20262026/marketing/types"
	leadTypes "github.com/jackiechen20262026/marketing/types/lead"
	"github.com/jackiechen20262026/marketing/utils"
)

const exportHeader = "company_name,contact_name,phone,city,country,brochure_sent_count,visit_count,next_visit_reminder"

// Import bulk-creates leads from raw CSV-style lines:
// company,contact,phone,city,country,brand. Lines without a company name
// are counted as failures; the rest are imported as owned by the actor.
func (lc *LeadController) Import(c *fiber.Ctx) error {
	defer lc.logRequest(c)
	actor, _ := middleware.GetActor(c)

	var req leadTypes.ImportRequest
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

	imported := 0
	failed := 0
	for _, line := range strings.Split(req.RawData, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		fields := strings.Split(line, ",")
		get := func(i int) string {
			if i < len(fields) {
				return strings.TrimSpace(fields[i])
			}
			return ""
		}

		company := get(0)
		if company == "" {
			failed++
			continue
		}

		l := leadModel.Lead{
			ID:          utils.NewID("l"),
			CompanyName: company,
			Country:     "China",
			Source:      "Amazon",
			Priority:    "M",
			OwnerID:     actor.ID,
			Stage:       leadModel.StageImported,
		}
		setOptional(&l.ContactName, get(1))
		setOptional(&l.Phone, get(2))
		setOptional(&l.City, get(3))
		if country := get(4); country != "" {
			l.Country = country
		}
		brands := []string{}
		if brand := get(5); brand != "" {
			brands = append(brands, brand)
		}
		if encoded, err := json.Marshal(brands); err == nil {
			s := string(encoded)
			l.BrandJSON = &s
		}

		if err := lc.DB.Create(&l).Error; err != nil {
			logger.Error("Failed to import lead line", err)
			failed++
			continue
		}
		imported++
	}

	logger.Success(fmt.Sprintf("Lead import finished: %d ok, %d failed", imported, failed))
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Import completed",
		Data: fiber.Map{
			"imported": imported,
			"failed":   failed,
		},
	})
}

// Export streams the visible lead pool as CSV.
func (lc *LeadController) Export(c *fiber.Ctx) error {
	actor, _ := middleware.GetActor(c)

	var leads []leadModel.Lead
	if err := lc.DB.Scopes(services.LeadScope(actor)).
		Order("created_at DESC").Limit(1000).Find(&leads).Error; err != nil {
		logger.Error("Failed to export leads", err)
		return apperrors.Respond(c, err)
	}

	var sb strings.Builder
	sb.WriteString(exportHeader + "\n")
	for _, l := range leads {
		reminder := ""
		if l.NextVisitReminder != nil {
			reminder = l.NextVisitReminder.Format("2006-01-02 15:04:05")
		}
		cells := []string{
			l.CompanyName,
			strValue(l.ContactName),
			strValue(l.Phone),
			strValue(l.City),
			l.Country,
			fmt.Sprintf("%d", l.BrochureSentCount),
			fmt.Sprintf("%d", l.VisitCount),
			reminder,
		}
		quoted := make([]string, len(cells))
		for i, cell := range cells {
			quoted[i] = utils.CSVQuote(cell)
		}
		sb.WriteString(strings.Join(quoted, ",") + "\n")
	}

	c.Set("Content-Type", "text/csv; charset=utf-8")
	c.Set("Content-Disposition", "attachment; filename=leads_export.csv")
	return c.SendString(sb.String())
}

// Template returns the CSV import template with one sample row.
func (lc *LeadController) Template(c *fiber.Ctx) error {
	header := "company_name,contact_name,phone,city,country,brand,social_credit_code,website,street,house_number,postal_code,company_profile\n"
	sample := "Example Co,Zhang San,13800000000,Shenzhen,China,BrandA,9144XXXX,www.example.com,Nanshan,88,518000,cross-border retail\n"

	c.Set("Content-Type", "text/csv; charset=utf-8")
	c.Set("Content-Disposition", "attachment; filename=lead_import_template.csv")
	return c.SendString(header + sample)
}

// Recommendations lists leads ranked by how much attention they need.
func (lc *LeadController) Recommendations(c *fiber.Ctx) error {
	actor, _ := middleware.GetActor(c)

	var leads []leadModel.Lead
	if err := lc.DB.Scopes(services.LeadScope(actor)).
		Order("brochure_sent_count ASC, visit_count DESC, updated_at DESC").
		Limit(100).Find(&leads).Error; err != nil {
		logger.Error("Failed to list recommendations", err)
		return apperrors.Respond(c, err)
	}

	type recommendation struct {
		Lead   leadModel.Lead `json:"lead"`
		Reason string         `json:"reason"`
	}
	out := make([]recommendation, 0, len(leads))
	for _, l := range leads {
		reason := "suggest follow-up"
		switch {
		case l.BrochureSentCount == 0:
			reason = "brochure never sent"
		case l.LastVisitAt == nil:
			reason = "never visited"
		case l.NextVisitReminder == nil:
			reason = "no reminder set"
		}
		out = append(out, recommendation{Lead: l, Reason: reason})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Recommendations retrieved successfully",
		Data:    out,
	})
}

func strValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
