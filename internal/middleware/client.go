// Package middleware provides HTTP middleware components for the application.
package middleware

import (
	"formguard/internal/services/recaptcha"

	"github.com/gofiber/fiber/v2"
)

const clientInfoKey = "clientInfo"

// ClientInfo resolves the client address and user agent once per request and
// stores them in the request context for the form adapters.
func ClientInfo() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(clientInfoKey, resolveClient(c))
		return c.Next()
	}
}

// Client returns the ClientInfo stored by the middleware, resolving it on the
// spot when the middleware did not run.
func Client(c *fiber.Ctx) recaptcha.ClientInfo {
	if info, ok := c.Locals(clientInfoKey).(recaptcha.ClientInfo); ok {
		return info
	}
	return resolveClient(c)
}

func resolveClient(c *fiber.Ctx) recaptcha.ClientInfo {
	remoteAddr := ""
	if ip := c.Context().RemoteIP(); ip != nil && !ip.IsUnspecified() {
		remoteAddr = ip.String()
	}
	return recaptcha.ClientInfo{
		IP:        recaptcha.ClientIP(func(name string) string { return c.Get(name) }, remoteAddr),
		UserAgent: c.Get(fiber.HeaderUserAgent),
	}
}
