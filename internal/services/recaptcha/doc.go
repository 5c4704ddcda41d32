/*
Package recaptcha gates form submissions with reCAPTCHA Enterprise.

The package has three parts:
- Injector renders the hidden token field and the client script that keeps it fresh
- Extract finds the token among the submitted fields
- Assessor posts the token to the assessment API and turns the answer into a verdict

Usage:

	widget, err := recaptcha.NewInjector().Render(cfg.SiteKey, cfg.Prefix())

	token := recaptcha.Extract(fields, cfg.Prefix())

	assessor := recaptcha.NewAssessor(recaptcha.WithMetrics(metrics))
	res, err := assessor.Verify(ctx, token, cfg, client)

Decision order:

Verify stops at the first failing check and returns it as a *errors.DomainError:
- ErrNetwork: the assessment call could not be completed
- ErrInvalidResponse: the body is not a JSON object
- ErrProviderError: the body carries error.message
- ErrInvalidToken: tokenProperties is missing or not valid
- ErrActionMismatch: tokenProperties.action is not "submit"
- ErrBelowThreshold: no numeric score, or score <= threshold

A submission passes only when the score is strictly greater than the threshold.
Verdicts are never cached and the call is never retried; tokens are single use.
*/
package recaptcha
