package utils

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jinzhu/now"

	"github.com/jackiechen20262026/marketing/types"
)

// NewID returns a prefixed identifier for a new entity, e.g. "l_9f2c1b...".
func NewID(prefix string) string {
	return prefix + "_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// NewWaybillNo generates a YTO-style waybill number. Real waybill ranges are
// allocated by the courier; this shape matches their format for local records.
func NewWaybillNo() string {
	ts := fmt.Sprintf("%d", time.Now().UnixMilli())
	return "YT" + ts[len(ts)-8:] + fmt.Sprintf("%02d", rand.Intn(90)+10)
}

// ParseIDs splits a comma-separated id list, trimming blanks and dropping
// empty entries. Duplicates are removed preserving first occurrence.
func ParseIDs(input string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, part := range strings.Split(input, ",") {
		id := strings.TrimSpace(part)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// DedupIDs removes duplicate and blank ids preserving order.
func DedupIDs(ids []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, raw := range ids {
		id := strings.TrimSpace(raw)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// CSVQuote escapes a value for a CSV cell.
func CSVQuote(v string) string {
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}

// ReminderWindow resolves a reminder filter keyword into a [from, to) time
// range: "today", "week" or "overdue" (from is the zero time for overdue,
// meaning everything before now).
func ReminderWindow(kind string) (time.Time, time.Time, bool) {
	n := now.New(time.Now())
	switch kind {
	case "today":
		return n.BeginningOfDay(), n.EndOfDay(), true
	case "week":
		return n.BeginningOfWeek(), n.EndOfWeek(), true
	case "overdue":
		return time.Time{}, time.Now(), true
	default:
		return time.Time{}, time.Time{}, false
	}
}

// sanitizeRequestBody keeps large or file-bearing payloads out of the audit
// log while preserving regular JSON bodies verbatim.
func sanitizeRequestBody(c *fiber.Ctx) string {
	contentType := c.Get("Content-Type")
	if strings.Contains(contentType, "multipart/form-data") {
		formData := make(map[string]interface{})
		if form, err := c.MultipartForm(); err == nil {
			for key, values := range form.Value {
				if len(values) > 0 {
					formData[key] = values[0]
				}
			}
			for key, files := range form.File {
				fileInfo := make([]map[string]interface{}, len(files))
				for i, file := range files {
					fileInfo[i] = map[string]interface{}{
						"filename": file.Filename,
						"size":     file.Size,
						"content":  "[FILE_CONTENT_REMOVED]",
					}
				}
				formData[key] = fileInfo
			}
		}
		if jsonBytes, err := json.Marshal(formData); err == nil {
			return string(jsonBytes)
		}
		return "[MULTIPART_FORM_DATA]"
	}

	body := string(c.Body())
	if len(body) > 10000 {
		return "[LARGE_REQUEST_BODY_TRUNCATED]"
	}
	return body
}

// CreateSanitizedLogEntry creates a deep copied and sanitized log entry for
// the async request logger.
func CreateSanitizedLogEntry(c *fiber.Ctx) types.LogEntry {
	method := string([]byte(c.Method()))
	url := string([]byte(c.OriginalURL()))
	requestBody := sanitizeRequestBody(c)
	responseBody := string(append([]byte(nil), c.Response().Body()...))

	requestHeaders := make([]byte, len(c.Request().Header.Header()))
	copy(requestHeaders, c.Request().Header.Header())

	responseHeaders := make([]byte, len(c.Response().Header.Header()))
	copy(responseHeaders, c.Response().Header.Header())

	return types.LogEntry{
		Method:          method,
		URL:             url,
		RequestBody:     requestBody,
		ResponseBody:    responseBody,
		RequestHeaders:  string(requestHeaders),
		ResponseHeaders: string(responseHeaders),
		StatusCode:      c.Response().StatusCode(),
		CreatedAt:       time.Now(),
	}
}
