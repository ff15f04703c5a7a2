package courier

import (
	"errors"
	"strings"
)

// SaveSettingsRequest updates the courier integration. Leaving app_secret
// blank keeps the stored secret.
type SaveSettingsRequest struct {
	BaseURL      string `json:"base_url"`
	AppKey       string `json:"app_key"`
	AppSecret    string `json:"app_secret"`
	CustomerCode string `json:"customer_code"`
	Enabled      bool   `json:"enabled"`
}

func (r *SaveSettingsRequest) Validate() error {
	if strings.TrimSpace(r.BaseURL) == "" {
		return errors.New("base_url is required")
	}
	if strings.TrimSpace(r.AppKey) == "" {
		return errors.New("app_key is required")
	}
	return nil
}
