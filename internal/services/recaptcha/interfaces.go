package recaptcha

import (
	"context"
	"net/http"
	"time"
)

// Verifier assesses a token against the remote API.
type Verifier interface {
	Verify(ctx context.Context, token string, cfg Config, client ClientInfo) (*VerificationResponse, error)
}

// Renderer produces the widget markup for a form.
type Renderer interface {
	Render(siteKey, inputIDPrefix string) (Widget, error)
}

// HTTPClient is satisfied by *http.Client.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// MetricsCollector records assessment outcomes.
type MetricsCollector interface {
	RecordAssessment(outcome string, duration time.Duration)
	RecordScore(score float64)
}
