package recaptcha

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	apperrors "formguard/internal/errors"
)

// Assessor verifies tokens against the reCAPTCHA Enterprise assessment API.
type Assessor struct {
	client  HTTPClient
	baseURL string
	logger  *log.Logger
	metrics MetricsCollector
}

type AssessorOption func(*Assessor)

// WithHTTPClient replaces the default client, which times out after DefaultHTTPTimeout.
func WithHTTPClient(client HTTPClient) AssessorOption {
	return func(a *Assessor) { a.client = client }
}

// WithBaseURL points the assessor at another projects endpoint.
func WithBaseURL(baseURL string) AssessorOption {
	return func(a *Assessor) { a.baseURL = strings.TrimRight(baseURL, "/") }
}

func WithLogger(logger *log.Logger) AssessorOption {
	return func(a *Assessor) { a.logger = logger }
}

func WithMetrics(metrics MetricsCollector) AssessorOption {
	return func(a *Assessor) { a.metrics = metrics }
}

func NewAssessor(opts ...AssessorOption) *Assessor {
	a := &Assessor{
		client:  &http.Client{Timeout: DefaultHTTPTimeout},
		baseURL: DefaultAssessmentURL,
		logger:  log.Default(),
		metrics: &NoopMetricsCollector{},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Verify makes exactly one assessment call and returns nil error only when the
// token is valid, bound to ExpectedAction, and scored above cfg.RiskThreshold.
// Failures are logged and returned as *errors.DomainError values. The
// response is returned whenever the body could be parsed.
func (a *Assessor) Verify(ctx context.Context, token string, cfg Config, client ClientInfo) (*VerificationResponse, error) {
	start := time.Now()

	res, err := a.verify(ctx, token, cfg, client)
	if err != nil {
		var de *apperrors.DomainError
		if errors.As(err, &de) {
			a.logger.Print(logPrefix + de.Detail())
		} else {
			a.logger.Print(logPrefix + err.Error())
		}
		a.metrics.RecordAssessment(outcome(err), time.Since(start))
		return res, err
	}

	a.metrics.RecordAssessment("pass", time.Since(start))
	return res, nil
}

func (a *Assessor) verify(ctx context.Context, token string, cfg Config, client ClientInfo) (*VerificationResponse, error) {
	payload, err := json.Marshal(assessmentRequest{Event: VerificationRequest{
		Token:          token,
		SiteKey:        cfg.SiteKey,
		UserIPAddress:  client.IP,
		UserAgent:      client.UserAgent,
		ExpectedAction: ExpectedAction,
	}})
	if err != nil {
		return nil, apperrors.ErrNetwork.Wrap(fmt.Errorf("failed to encode request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint(cfg), bytes.NewReader(payload))
	if err != nil {
		return nil, apperrors.ErrNetwork.Wrap(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, apperrors.ErrNetwork.Wrap(redactKey(err, cfg.APIKey))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, apperrors.ErrNetwork.Wrap(fmt.Errorf("failed to read response: %w", err))
	}

	res, err := Evaluate(body, cfg.RiskThreshold)
	if res != nil && res.HasScore {
		a.metrics.RecordScore(res.Score)
	}
	return res, err
}

func (a *Assessor) endpoint(cfg Config) string {
	return fmt.Sprintf("%s/%s/assessments?key=%s",
		a.baseURL, url.PathEscape(cfg.ProjectID), url.QueryEscape(cfg.APIKey))
}

// Evaluate maps an assessment response body to a verdict. The first failing
// check wins, in this order: JSON object, provider error, token validity,
// action, score.
func Evaluate(body []byte, threshold float64) (*VerificationResponse, error) {
	var doc map[string]any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, apperrors.ErrInvalidResponse.Wrap(err)
	}
	if doc == nil {
		return nil, apperrors.ErrInvalidResponse.Wrap(errors.New("response is not a JSON object"))
	}

	res := &VerificationResponse{}

	if e, ok := doc["error"].(map[string]any); ok {
		if msg, _ := e["message"].(string); msg != "" {
			res.ErrorMessage = msg
			return res, apperrors.ErrProviderError.Wrap(errors.New(msg))
		}
	}

	props, ok := doc["tokenProperties"].(map[string]any)
	if !ok {
		return res, apperrors.ErrInvalidToken.Wrap(errors.New("response has no tokenProperties"))
	}
	res.Valid, _ = props["valid"].(bool)
	res.InvalidReason, _ = props["invalidReason"].(string)
	res.Action, _ = props["action"].(string)

	if !res.Valid {
		reason := res.InvalidReason
		if reason == "" {
			reason = "invalid"
		}
		return res, apperrors.ErrInvalidToken.
			WithMessage(fmt.Sprintf("Refresh the form and try again (%s).", reason))
	}

	if res.Action != ExpectedAction {
		return res, apperrors.ErrActionMismatch.
			Wrap(fmt.Errorf("token action %q, want %q", res.Action, ExpectedAction))
	}

	if analysis, ok := doc["riskAnalysis"].(map[string]any); ok {
		res.Score, res.HasScore = analysis["score"].(float64)
	}
	if !res.HasScore {
		return res, apperrors.ErrBelowThreshold.WithMessage("Verification failed (no score).")
	}
	if res.Score <= threshold {
		return res, apperrors.ErrBelowThreshold.
			WithMessage(fmt.Sprintf("Verification failed (%s).", strconv.FormatFloat(res.Score, 'f', -1, 64))).
			Wrap(fmt.Errorf("score %v <= threshold %v", res.Score, threshold))
	}

	return res, nil
}

// outcome is the metrics label for a failed verification.
func outcome(err error) string {
	if code := apperrors.CodeOf(err); code != "" {
		return strings.ToLower(code)
	}
	return "error"
}

// redactKey keeps the API key out of logged transport errors, which quote the URL.
func redactKey(err error, apiKey string) error {
	if apiKey == "" {
		return err
	}
	msg := err.Error()
	if !strings.Contains(msg, apiKey) {
		return err
	}
	return errors.New(strings.ReplaceAll(msg, apiKey, "REDACTED"))
}
