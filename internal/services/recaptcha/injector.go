package recaptcha

import (
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

var hiddenInputTmpl = template.Must(template.New("hidden").Parse(
	`<input type="hidden" name="{{.InputID}}" id="{{.InputID}}" value="">`))

var scriptTmpl = template.Must(template.New("script").Parse(`
<script>
    (function() {
        var grecaptchaSiteKey = {{.SiteKey}};
        var grecaptchaHiddenId = {{.InputID}};
        grecaptcha.enterprise.ready(function () {
            function refreshToken() {
                grecaptcha.enterprise.execute(grecaptchaSiteKey, { action: {{.Action}} })
                .then(function (token) {
                    document.getElementById(grecaptchaHiddenId).value = token;
                })
                .catch(function (error) {
                    console.error("Error getting reCAPTCHA token:", error);
                });
            }

            refreshToken();
            setInterval(function () {
                refreshToken();
            }, {{.RefreshMillis}});
        });
    })();
</script>
`))

type widgetData struct {
	SiteKey       string
	InputID       string
	Action        string
	RefreshMillis int64
}

// Injector renders the token widget. It keeps no state between renders.
type Injector struct {
	newSuffix func() string
}

func NewInjector() *Injector {
	return &Injector{newSuffix: randomSuffix}
}

func randomSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Render returns a widget whose input id is inputIDPrefix plus a fresh suffix.
func (i *Injector) Render(siteKey, inputIDPrefix string) (Widget, error) {
	data := widgetData{
		SiteKey:       siteKey,
		InputID:       inputIDPrefix + i.newSuffix(),
		Action:        ExpectedAction,
		RefreshMillis: TokenRefreshInterval.Milliseconds(),
	}

	var input, script strings.Builder
	if err := hiddenInputTmpl.Execute(&input, data); err != nil {
		return Widget{}, fmt.Errorf("failed to render hidden input: %w", err)
	}
	if err := scriptTmpl.Execute(&script, data); err != nil {
		return Widget{}, fmt.Errorf("failed to render token script: %w", err)
	}

	return Widget{
		InputID:     data.InputID,
		HiddenInput: input.String(),
		Script:      script.String(),
	}, nil
}

// ScriptSrc is the enterprise.js URL a page must load before the widget script runs.
func ScriptSrc(siteKey string) string {
	return EnterpriseScriptURL + "?render=" + url.QueryEscape(siteKey)
}
