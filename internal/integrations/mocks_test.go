package integrations

import (
	"context"

	"formguard/internal/models"
	"formguard/internal/services/recaptcha"

	"github.com/stretchr/testify/mock"
)

type MockLoader struct {
	mock.Mock
}

func (m *MockLoader) Load(ctx context.Context) (recaptcha.Config, error) {
	args := m.Called(ctx)
	return args.Get(0).(recaptcha.Config), args.Error(1)
}

type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) Verify(ctx context.Context, token string, cfg recaptcha.Config, client recaptcha.ClientInfo) (*recaptcha.VerificationResponse, error) {
	args := m.Called(ctx, token, cfg, client)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recaptcha.VerificationResponse), args.Error(1)
}

type MockSubmissions struct {
	mock.Mock
}

func (m *MockSubmissions) Create(ctx context.Context, submission *models.FormSubmission) error {
	args := m.Called(ctx, submission)
	return args.Error(0)
}

type stubRenderer struct{}

func (stubRenderer) Render(siteKey, prefix string) (recaptcha.Widget, error) {
	return recaptcha.Widget{
		InputID:     prefix + "fixed",
		HiddenInput: `<input type="hidden" name="` + prefix + `fixed">`,
		Script:      `<script>/* ` + siteKey + ` */</script>`,
	}, nil
}

var gateConfig = recaptcha.Config{
	SiteKey:       "site-key",
	APIKey:        "api-key",
	ProjectID:     "project",
	RiskThreshold: 0.5,
}
