package recaptcha

import (
	"fmt"
	"sort"
	"strings"
)

// Config is the risk configuration for one page render or one submission.
// It is built per request from persisted settings and passed by value.
type Config struct {
	SiteKey       string
	APIKey        string
	ProjectID     string
	RiskThreshold float64
	InputIDPrefix string
}

// Prefix returns the input id prefix, falling back to DefaultInputIDPrefix.
func (c Config) Prefix() string {
	if c.InputIDPrefix == "" {
		return DefaultInputIDPrefix
	}
	return c.InputIDPrefix
}

// Validate checks that the credentials are present and the threshold is in [0,1].
func (c Config) Validate() error {
	var missing []string
	if strings.TrimSpace(c.SiteKey) == "" {
		missing = append(missing, "site_key")
	}
	if strings.TrimSpace(c.APIKey) == "" {
		missing = append(missing, "api_key")
	}
	if strings.TrimSpace(c.ProjectID) == "" {
		missing = append(missing, "project_id")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing %s", strings.Join(missing, ", "))
	}
	if c.RiskThreshold < 0 || c.RiskThreshold > 1 {
		return fmt.Errorf("risk score must be between 0 and 1, got %v", c.RiskThreshold)
	}
	return nil
}

// VerificationRequest is the event sent to the assessment API.
type VerificationRequest struct {
	Token          string `json:"token"`
	SiteKey        string `json:"siteKey"`
	UserIPAddress  string `json:"userIpAddress"`
	UserAgent      string `json:"userAgent"`
	ExpectedAction string `json:"expectedAction"`
}

type assessmentRequest struct {
	Event VerificationRequest `json:"event"`
}

// VerificationResponse is what was read from the assessment API answer.
// Fields the response did not carry keep their zero value; HasScore tells a
// missing score apart from 0.
type VerificationResponse struct {
	Valid         bool
	Action        string
	InvalidReason string
	Score         float64
	HasScore      bool
	ErrorMessage  string
}

// Widget is the markup inserted into a form at render time. InputID is the
// name the token field is submitted under.
type Widget struct {
	InputID     string
	HiddenInput string
	Script      string
}

// HTML returns the hidden input followed by the script.
func (w Widget) HTML() string {
	return w.HiddenInput + w.Script
}

// Field is a single submitted form field. Submissions are kept as ordered
// slices because the extractor takes the first match.
type Field struct {
	Key   string
	Value string
}

// FieldsFromMap converts an unordered map into fields sorted by key.
func FieldsFromMap(m map[string]string) []Field {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fields := make([]Field, 0, len(keys))
	for _, k := range keys {
		fields = append(fields, Field{Key: k, Value: m[k]})
	}
	return fields
}

// ClientInfo is the request metadata forwarded with the token.
type ClientInfo struct {
	IP        string
	UserAgent string
}
