package campaign

import (
	"errors"
	"strings"
)

// CreateBatchRequest creates a campaign batch from selected lead ids.
type CreateBatchRequest struct {
	LeadIDs      []string `json:"lead_ids"`
	Name         string   `json:"name"`
	TemplateName string   `json:"template_name"`
	Note         string   `json:"note"`
}

func (r *CreateBatchRequest) Validate() error {
	if len(r.LeadIDs) == 0 {
		return errors.New("lead_ids is required")
	}
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required")
	}
	return nil
}
