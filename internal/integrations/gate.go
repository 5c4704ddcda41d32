// Package integrations connects the risk gate to form handlers.
//
// Every adapter follows the same contract: at render time it inserts the
// Gate's markup at the submit button, and before it stores a submission it
// calls BeforeInsertSubmission and drops the submission on error.
package integrations

import (
	"context"
	"errors"
	"log"

	apperrors "formguard/internal/errors"
	"formguard/internal/services/recaptcha"
)

const logPrefix = "Recaptcha Enterprise: "

// ConfigLoader supplies the risk configuration for one request.
type ConfigLoader interface {
	Load(ctx context.Context) (recaptcha.Config, error)
}

// FormMarkup is what a form needs at render time: the enterprise.js URL to
// load in the page and the widget to insert at the submit button.
type FormMarkup struct {
	ScriptSrc string
	Widget    recaptcha.Widget
}

// Gate is the host independent part of the adapter contract.
type Gate struct {
	settings ConfigLoader
	renderer recaptcha.Renderer
	verifier recaptcha.Verifier
	logger   *log.Logger
}

func NewGate(settings ConfigLoader, renderer recaptcha.Renderer, verifier recaptcha.Verifier, logger *log.Logger) *Gate {
	if logger == nil {
		logger = log.Default()
	}
	return &Gate{
		settings: settings,
		renderer: renderer,
		verifier: verifier,
		logger:   logger,
	}
}

// Render returns the markup for one form render. Each call gets a new input id.
func (g *Gate) Render(ctx context.Context) (*FormMarkup, error) {
	cfg, err := g.config(ctx)
	if err != nil {
		return nil, err
	}

	widget, err := g.renderer.Render(cfg.SiteKey, cfg.Prefix())
	if err != nil {
		g.logger.Print(logPrefix + err.Error())
		return nil, apperrors.ErrNotConfigured.Wrap(err)
	}

	return &FormMarkup{
		ScriptSrc: recaptcha.ScriptSrc(cfg.SiteKey),
		Widget:    widget,
	}, nil
}

// BeforeInsertSubmission decides whether a submission may be stored. A nil
// error allows it; otherwise the submission must be rejected with
// PublicMessage(err).
func (g *Gate) BeforeInsertSubmission(ctx context.Context, fields []recaptcha.Field, client recaptcha.ClientInfo) (*recaptcha.VerificationResponse, error) {
	cfg, err := g.config(ctx)
	if err != nil {
		return nil, err
	}

	token := recaptcha.Extract(fields, cfg.Prefix())
	if token == "" {
		g.logger.Print(logPrefix + "Missing recaptcha token")
		return nil, apperrors.ErrMissingToken
	}

	return g.verifier.Verify(ctx, token, cfg, client)
}

func (g *Gate) config(ctx context.Context) (recaptcha.Config, error) {
	cfg, err := g.settings.Load(ctx)
	if err == nil {
		return cfg, nil
	}

	// Settings failures all look the same to users; the cause is only logged.
	if !errors.Is(err, apperrors.ErrNotConfigured) {
		err = apperrors.ErrNotConfigured.Wrap(err)
	}
	g.logger.Print(logPrefix + detail(err))
	return recaptcha.Config{}, err
}

func detail(err error) string {
	var de *apperrors.DomainError
	if errors.As(err, &de) {
		return de.Detail()
	}
	return err.Error()
}

// PublicMessage is the text a rejected user sees. Only domain error messages
// are shown; anything else becomes a generic message.
func PublicMessage(err error) string {
	var de *apperrors.DomainError
	if errors.As(err, &de) {
		return de.Message
	}
	return apperrors.ErrInternal.Message
}
