package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CurrentAPIVersion is the version served when a request does not name one
const CurrentAPIVersion = "1.0.0"

// versionAliases maps shorthand header values onto full versions
var versionAliases = map[string]string{
	"1":   CurrentAPIVersion,
	"1.0": CurrentAPIVersion,
}

// VersionMiddleware negotiates the X-Api-Version request header. The
// resolved version is echoed on the response and exposed to handlers
// through Locals.
func VersionMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		version := strings.TrimSpace(c.Get("X-Api-Version"))
		if version == "" {
			version = CurrentAPIVersion
		} else if full, ok := versionAliases[version]; ok {
			version = full
		}

		c.Locals("apiVersion", version)
		c.Set("X-Api-Version", version)

		return c.Next()
	}
}

// RequestedVersion returns the version negotiated for the request, falling
// back to the current version when the middleware did not run.
func RequestedVersion(c *fiber.Ctx) string {
	if version, ok := c.Locals("apiVersion").(string); ok && version != "" {
		return version
	}
	return CurrentAPIVersion
}
