package device

import (
	"context"
	"strings"

	"github.com/mssola/useragent"

	dErrors "verifid/pkg/domain-errors"
	"verifid/pkg/requestcontext"
)

// CheckEnvironment verifies the execution context can host a capture
// session: the request must come from a secure origin and from a client
// that exposes camera APIs. Bots and headless agents are rejected.
func CheckEnvironment(ctx context.Context) error {
	if !requestcontext.SecureContext(ctx) {
		return dErrors.New(dErrors.CodeUnsupportedEnvironment, "camera access requires a secure origin").
			WithHint("Open the verification page over HTTPS")
	}
	ua := requestcontext.UserAgent(ctx)
	if ua == "" {
		return dErrors.New(dErrors.CodeUnsupportedEnvironment, "client did not identify itself")
	}
	parsed := useragent.New(ua)
	if parsed.Bot() {
		return dErrors.New(dErrors.CodeUnsupportedEnvironment, "automated clients cannot run identity capture")
	}
	return nil
}

// DisplayName builds a human-readable device label from the client
// user-agent, shown next to session audit entries.
func DisplayName(ua string) string {
	if ua == "" {
		return "Unknown Device"
	}
	parsed := useragent.New(ua)
	browser, _ := parsed.Browser()
	platform := parsed.Platform()
	if parsed.Mobile() && parsed.Model() != "" {
		platform = parsed.Model()
	}
	name := strings.TrimSpace(browser + " on " + platform)
	if name == "on" || name == "" {
		return "Unknown Device"
	}
	return name
}
