package recaptcha

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	apperrors "formguard/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testConfig = Config{
	SiteKey:       "site-key",
	APIKey:        "secret-api-key",
	ProjectID:     "my-project",
	RiskThreshold: 0.5,
}

var testClient = ClientInfo{IP: "203.0.113.7", UserAgent: "Mozilla/5.0"}

// newAssessmentServer answers every call with body and counts the calls.
func newAssessmentServer(t *testing.T, body string) (*httptest.Server, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func newTestAssessor(baseURL string, logs *bytes.Buffer) *Assessor {
	return NewAssessor(
		WithBaseURL(baseURL+"/v1/projects"),
		WithLogger(log.New(logs, "", 0)),
	)
}

func TestAssessor_Verify_SendsAssessmentRequest(t *testing.T) {
	var got struct {
		method, path, key, contentType string
		body                           assessmentRequest
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.method = r.Method
		got.path = r.URL.Path
		got.key = r.URL.Query().Get("key")
		got.contentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got.body))
		_, _ = io.WriteString(w, `{"tokenProperties":{"valid":true,"action":"submit"},"riskAnalysis":{"score":0.9}}`)
	}))
	defer srv.Close()

	var logs bytes.Buffer
	_, err := newTestAssessor(srv.URL, &logs).Verify(context.Background(), "tok-123", testConfig, testClient)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "/v1/projects/my-project/assessments", got.path)
	assert.Equal(t, "secret-api-key", got.key)
	assert.Equal(t, "application/json", got.contentType)
	assert.Equal(t, VerificationRequest{
		Token:          "tok-123",
		SiteKey:        "site-key",
		UserIPAddress:  "203.0.113.7",
		UserAgent:      "Mozilla/5.0",
		ExpectedAction: "submit",
	}, got.body.Event)
	assert.Empty(t, logs.String())
}

func TestAssessor_Verify_Decisions(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr *apperrors.DomainError
		wantMsg string
	}{
		{
			name: "score above threshold passes",
			body: `{"tokenProperties":{"valid":true,"action":"submit"},"riskAnalysis":{"score":0.7}}`,
		},
		{
			name:    "score equal to threshold fails",
			body:    `{"tokenProperties":{"valid":true,"action":"submit"},"riskAnalysis":{"score":0.5}}`,
			wantErr: apperrors.ErrBelowThreshold,
			wantMsg: "Verification failed (0.5).",
		},
		{
			name:    "empty object is an invalid token",
			body:    `{}`,
			wantErr: apperrors.ErrInvalidToken,
			wantMsg: "Refresh the form and try again (invalid).",
		},
		{
			name:    "provider reason is surfaced",
			body:    `{"tokenProperties":{"valid":false,"invalidReason":"EXPIRED","action":"submit"}}`,
			wantErr: apperrors.ErrInvalidToken,
			wantMsg: "Refresh the form and try again (EXPIRED).",
		},
		{
			name:    "other action fails even with a high score",
			body:    `{"tokenProperties":{"valid":true,"action":"other"},"riskAnalysis":{"score":0.99}}`,
			wantErr: apperrors.ErrActionMismatch,
			wantMsg: "Something went wrong (action).",
		},
		{
			name:    "provider error wins over everything else",
			body:    `{"error":{"code":403,"message":"API key not valid."},"tokenProperties":{"valid":true,"action":"submit"},"riskAnalysis":{"score":0.9}}`,
			wantErr: apperrors.ErrProviderError,
			wantMsg: "Form is unavailable at this time.",
		},
		{
			name:    "non JSON body",
			body:    `<html>bad gateway</html>`,
			wantErr: apperrors.ErrInvalidResponse,
			wantMsg: "There was an error validating the form. Try again later.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, calls := newAssessmentServer(t, tt.body)
			var logs bytes.Buffer

			_, err := newTestAssessor(srv.URL, &logs).Verify(context.Background(), "tok", testConfig, testClient)

			assert.Equal(t, int32(1), atomic.LoadInt32(calls))
			if tt.wantErr == nil {
				assert.NoError(t, err)
				assert.Empty(t, logs.String())
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantMsg, err.Error())
			assert.Contains(t, logs.String(), "Recaptcha Enterprise: "+tt.wantMsg)
		})
	}
}

func TestAssessor_Verify_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	baseURL := srv.URL
	srv.Close()

	var logs bytes.Buffer
	res, err := newTestAssessor(baseURL, &logs).Verify(context.Background(), "tok", testConfig, testClient)

	assert.Nil(t, res)
	assert.ErrorIs(t, err, apperrors.ErrNetwork)
	assert.Equal(t, "There was an error. Try again later.", err.Error())
	assert.Contains(t, logs.String(), "Recaptcha Enterprise: There was an error. Try again later.: ")
	assert.NotContains(t, logs.String(), "secret-api-key")
}

func TestAssessor_Verify_ProviderErrorStatusStillEvaluated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":{"code":400,"message":"Request contains an invalid argument."}}`)
	}))
	defer srv.Close()

	var logs bytes.Buffer
	res, err := newTestAssessor(srv.URL, &logs).Verify(context.Background(), "tok", testConfig, testClient)

	assert.ErrorIs(t, err, apperrors.ErrProviderError)
	require.NotNil(t, res)
	assert.Equal(t, "Request contains an invalid argument.", res.ErrorMessage)
	assert.Contains(t, logs.String(), "Request contains an invalid argument.")
}

type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) RecordAssessment(outcome string, duration time.Duration) {
	m.Called(outcome, duration)
}

func (m *MockMetrics) RecordScore(score float64) {
	m.Called(score)
}

func TestAssessor_Verify_RecordsMetrics(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		setupMock func(*MockMetrics)
	}{
		{
			name: "pass",
			body: `{"tokenProperties":{"valid":true,"action":"submit"},"riskAnalysis":{"score":0.8}}`,
			setupMock: func(m *MockMetrics) {
				m.On("RecordScore", 0.8).Return()
				m.On("RecordAssessment", "pass", mock.Anything).Return()
			},
		},
		{
			name: "below threshold",
			body: `{"tokenProperties":{"valid":true,"action":"submit"},"riskAnalysis":{"score":0.1}}`,
			setupMock: func(m *MockMetrics) {
				m.On("RecordScore", 0.1).Return()
				m.On("RecordAssessment", "below_threshold", mock.Anything).Return()
			},
		},
		{
			name: "invalid token has no score",
			body: `{"tokenProperties":{"valid":false}}`,
			setupMock: func(m *MockMetrics) {
				m.On("RecordAssessment", "invalid_token", mock.Anything).Return()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newAssessmentServer(t, tt.body)
			metrics := new(MockMetrics)
			tt.setupMock(metrics)

			a := NewAssessor(
				WithBaseURL(srv.URL),
				WithLogger(log.New(io.Discard, "", 0)),
				WithMetrics(metrics),
			)
			_, _ = a.Verify(context.Background(), "tok", testConfig, testClient)

			metrics.AssertExpectations(t)
		})
	}
}

func TestEvaluate_ThresholdIsExclusive(t *testing.T) {
	thresholds := []float64{0, 0.1, 0.3, 0.5, 0.7, 0.9, 1}
	scores := []float64{0, 0.1, 0.3, 0.5, 0.7, 0.9, 1}

	for _, threshold := range thresholds {
		for _, score := range scores {
			body, err := json.Marshal(map[string]any{
				"tokenProperties": map[string]any{"valid": true, "action": "submit"},
				"riskAnalysis":    map[string]any{"score": score},
			})
			require.NoError(t, err)

			_, err = Evaluate(body, threshold)
			if score > threshold {
				assert.NoError(t, err, "score %v threshold %v", score, threshold)
			} else {
				assert.ErrorIs(t, err, apperrors.ErrBelowThreshold, "score %v threshold %v", score, threshold)
			}
		}
	}
}

func TestEvaluate_EdgeCases(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr *apperrors.DomainError
		wantMsg string
	}{
		{"null body", `null`, apperrors.ErrInvalidResponse, ""},
		{"array body", `[1,2]`, apperrors.ErrInvalidResponse, ""},
		{"empty body", ``, apperrors.ErrInvalidResponse, ""},
		{"empty provider message is ignored", `{"error":{"message":""}}`, apperrors.ErrInvalidToken, ""},
		{"valid must be boolean true", `{"tokenProperties":{"valid":"true","action":"submit"}}`, apperrors.ErrInvalidToken, ""},
		{"missing action", `{"tokenProperties":{"valid":true},"riskAnalysis":{"score":0.9}}`, apperrors.ErrActionMismatch, ""},
		{"missing score", `{"tokenProperties":{"valid":true,"action":"submit"}}`, apperrors.ErrBelowThreshold, "Verification failed (no score)."},
		{"string score", `{"tokenProperties":{"valid":true,"action":"submit"},"riskAnalysis":{"score":"0.9"}}`, apperrors.ErrBelowThreshold, "Verification failed (no score)."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Evaluate([]byte(tt.body), 0.5)
			assert.ErrorIs(t, err, tt.wantErr)
			if tt.wantMsg != "" {
				assert.EqualError(t, err, tt.wantMsg)
			}
		})
	}
}

func TestEvaluate_ReturnsParsedFields(t *testing.T) {
	res, err := Evaluate([]byte(`{"tokenProperties":{"valid":true,"action":"submit"},"riskAnalysis":{"score":0.9}}`), 0.5)

	require.NoError(t, err)
	assert.Equal(t, &VerificationResponse{Valid: true, Action: "submit", Score: 0.9, HasScore: true}, res)
}
