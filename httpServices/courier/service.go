package httpServices

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/jackiechen20262026/marketing/logger"
	courierModel "github.com/jackiechen20262026/marketing/models/courier"
)

const protocolVersion = "1.0"

// Service is the client for the courier open API. Every attempted call is
// written to the courier_api_logs table, success or failure, with
// credentials masked. The client never retries on its own.
type Service struct {
	db         *gorm.DB
	httpClient *http.Client
}

func NewService(db *gorm.DB) *Service {
	return &Service{
		db: db,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// GetConfig loads the YTO integration settings, or nil when none exist.
func (s *Service) GetConfig() (*courierModel.Config, error) {
	var cfg courierModel.Config
	err := s.db.First(&cfg, "courier_code = ?", courierModel.CodeYTO).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SaveConfig upserts the integration settings. A blank secret in the input
// keeps the previously stored secret, so the settings form never has to
// round-trip it.
func (s *Service) SaveConfig(input SaveConfigInput) (*MaskedConfig, error) {
	existing, err := s.GetConfig()
	if err != nil {
		return nil, err
	}

	secret := strings.TrimSpace(input.AppSecret)
	if secret == "" && existing != nil {
		secret = existing.AppSecret
	}

	cfg := courierModel.Config{
		CourierCode: courierModel.CodeYTO,
		Name:        "YTO Express",
		BaseURL:     strings.TrimSpace(input.BaseURL),
		AppKey:      strings.TrimSpace(input.AppKey),
		AppSecret:   secret,
		Enabled:     input.Enabled,
	}
	if cc := strings.TrimSpace(input.CustomerCode); cc != "" {
		cfg.CustomerCode = &cc
	}
	if existing != nil {
		cfg.ID = existing.ID
		cfg.CreatedAt = existing.CreatedAt
	}

	if err := s.db.Save(&cfg).Error; err != nil {
		return nil, err
	}
	return s.MaskedConfig()
}

// MaskedConfig returns the settings with the key masked and the secret
// withheld, or nil when nothing is configured.
func (s *Service) MaskedConfig() (*MaskedConfig, error) {
	cfg, err := s.GetConfig()
	if err != nil || cfg == nil {
		return nil, err
	}
	return &MaskedConfig{
		ID:            cfg.ID,
		CourierCode:   cfg.CourierCode,
		Name:          cfg.Name,
		BaseURL:       cfg.BaseURL,
		AppKeyMask:    Mask(cfg.AppKey),
		AppSecretMask: Mask(cfg.AppSecret),
		CustomerCode:  cfg.CustomerCode,
		Enabled:       cfg.Enabled,
	}, nil
}

// Request signs and sends one call to the courier API. Missing or disabled
// configuration short-circuits with a business failure before any network
// activity and before any log row is written: that is a configuration gate,
// not a call attempt. Transport failures of an attempted call are captured
// into the result and the audit log; they never escape as errors.
func (s *Service) Request(input RequestInput) Result {
	cfg, err := s.GetConfig()
	if err != nil {
		return Result{OK: false, Error: "failed to load courier configuration: " + err.Error()}
	}
	if cfg == nil || !cfg.Enabled {
		return Result{OK: false, Error: "YTO integration disabled"}
	}

	sign, err := Sign(input.Payload, input.Method, protocolVersion, cfg.AppSecret, cfg.AppKey)
	if err != nil {
		return Result{OK: false, Error: "failed to sign payload: " + err.Error()}
	}

	param, err := json.Marshal(input.Payload)
	if err != nil {
		return Result{OK: false, Error: "failed to encode payload: " + err.Error()}
	}

	url := strings.TrimRight(cfg.BaseURL, "/") + input.APIPath
	body := map[string]interface{}{
		"method":  input.Method,
		"v":       protocolVersion,
		"app_key": cfg.AppKey,
		"sign":    sign,
		"param":   string(param),
	}
	if cfg.CustomerCode != nil && *cfg.CustomerCode != "" {
		body["customer_code"] = *cfg.CustomerCode
	}

	var (
		httpStatus   *int
		responseBody *string
		success      = 0
		errorMessage *string
	)

	encoded, _ := json.Marshal(body)
	resp, err := s.httpClient.Post(url, "application/json", bytes.NewReader(encoded))
	if err != nil {
		msg := err.Error()
		errorMessage = &msg
	} else {
		defer resp.Body.Close()
		httpStatus = &resp.StatusCode
		if raw, readErr := io.ReadAll(resp.Body); readErr == nil && len(raw) > 0 {
			text := string(raw)
			responseBody = &text
		}
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			success = 1
		} else {
			msg := fmt.Sprintf("HTTP %d", resp.StatusCode)
			errorMessage = &msg
		}
	}

	s.writeLog(input, url, body, cfg, httpStatus, responseBody, success, errorMessage)

	if success == 1 {
		return Result{OK: true, Data: decodeResponse(responseBody)}
	}
	msg := "request failed"
	if errorMessage != nil {
		msg = *errorMessage
	}
	return Result{OK: false, Error: msg, Data: decodeResponse(responseBody)}
}

// writeLog appends one audit row per attempted call with the key masked
// and the signature replaced by a placeholder. A failed insert is logged
// but does not alter the call outcome.
func (s *Service) writeLog(input RequestInput, url string, body map[string]interface{}, cfg *courierModel.Config, httpStatus *int, responseBody *string, success int, errorMessage *string) {
	masked := make(map[string]interface{}, len(body))
	for k, v := range body {
		masked[k] = v
	}
	masked["app_key"] = Mask(cfg.AppKey)
	masked["sign"] = "***"
	requestBody, _ := json.Marshal(masked)

	entry := courierModel.APILog{
		CourierCode:  courierModel.CodeYTO,
		BizType:      input.BizType,
		BizID:        input.BizID,
		RequestURL:   url,
		RequestBody:  string(requestBody),
		ResponseBody: responseBody,
		HTTPStatus:   httpStatus,
		Success:      success,
		ErrorMessage: errorMessage,
	}
	if err := s.db.Create(&entry).Error; err != nil {
		logger.Error("Failed to write courier API log", err)
	}
}

func decodeResponse(body *string) interface{} {
	if body == nil {
		return nil
	}
	var data interface{}
	if err := json.Unmarshal([]byte(*body), &data); err != nil {
		return *body
	}
	return data
}

// PushReturnOrder submits a return order for a shipment using its stored
// receiver snapshot. Retries are driven by the caller; repeated pushes are
// each logged as separate attempts.
func (s *Service) PushReturnOrder(order ReturnOrder) Result {
	payload := map[string]interface{}{
		"orderNo":         order.BizID,
		"waybillNo":       order.WaybillNo,
		"receiverName":    order.ReceiverName,
		"receiverPhone":   order.ReceiverPhone,
		"receiverAddress": order.ReceiverAddress,
		"receiverCountry": order.ReceiverCountry,
		"reason":          "customer return",
	}
	return s.Request(RequestInput{
		Method:  "yto.return.order.push",
		BizType: "return_order",
		BizID:   order.BizID,
		Payload: payload,
	})
}

// HealthCheck issues a connectivity test call, used by the settings page.
func (s *Service) HealthCheck() Result {
	return s.Request(RequestInput{
		Method:  "yto.open.health.check",
		BizType: "connectivity_test",
		BizID:   fmt.Sprintf("test_%d", time.Now().UnixMilli()),
		Payload: map[string]interface{}{"ts": time.Now().UnixMilli()},
	})
}
