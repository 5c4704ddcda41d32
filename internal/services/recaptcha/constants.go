package recaptcha

import "time"

// ExpectedAction is the action every token must be bound to.
const ExpectedAction = "submit"

// Endpoints
const (
	DefaultAssessmentURL = "https://recaptchaenterprise.googleapis.com/v1/projects"
	EnterpriseScriptURL  = "https://www.google.com/recaptcha/enterprise.js"
)

// Default configuration values
const (
	DefaultInputIDPrefix = "recaptcha_enterprise_"
	DefaultRiskThreshold = 0.5
	DefaultHTTPTimeout   = 5 * time.Second
	TokenRefreshInterval = 60 * time.Second
)

const (
	// UnknownIP is sent when no address could be resolved for the client.
	UnknownIP = "UNKNOWN"

	logPrefix        = "Recaptcha Enterprise: "
	maxResponseBytes = 1 << 20
)
