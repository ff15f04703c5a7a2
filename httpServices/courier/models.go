package httpServices

// RequestInput describes one call to the courier open API. BizType and
// BizID tie the audit log row back to the business record that caused the
// call.
type RequestInput struct {
	APIPath string
	Method  string
	BizType string
	BizID   string
	Payload map[string]interface{}
}

// Result is the structured outcome of a courier call. Configuration and
// transport failures both surface here rather than as errors, so callers
// decide whether to retry.
type Result struct {
	OK    bool        `json:"ok"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// ReturnOrder carries the stored receiver snapshot of a shipment into the
// return-order push. The snapshot, not the live lead, is authoritative.
type ReturnOrder struct {
	BizID           string
	WaybillNo       string
	ReceiverName    string
	ReceiverPhone   string
	ReceiverCountry string
	ReceiverAddress string
}

// SaveConfigInput updates the courier integration settings. A blank
// AppSecret keeps the stored secret.
type SaveConfigInput struct {
	BaseURL      string `json:"base_url"`
	AppKey       string `json:"app_key"`
	AppSecret    string `json:"app_secret"`
	CustomerCode string `json:"customer_code"`
	Enabled      bool   `json:"enabled"`
}

// MaskedConfig is the settings view safe to hand to presentation layers:
// the key is masked and the secret is never included.
type MaskedConfig struct {
	ID            uint    `json:"id"`
	CourierCode   string  `json:"courier_code"`
	Name          string  `json:"name"`
	BaseURL       string  `json:"base_url"`
	AppKeyMask    string  `json:"app_key_mask"`
	AppSecretMask string  `json:"app_secret_mask"`
	CustomerCode  *string `json:"customer_code,omitempty"`
	Enabled       bool    `json:"enabled"`
}
