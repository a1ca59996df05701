package testutil

import (
	"net/http"
	"testing"

	id "verifid/pkg/domain"
	"verifid/pkg/requestcontext"
)

// BrowserUA is a desktop user agent that passes the capture environment
// check.
const BrowserUA = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// AuthedRequest builds a browser-like authenticated request: bearer token,
// desktop user agent, and a secure forwarded proto so the environment
// check passes behind the usual proxy setup.
func AuthedRequest(t *testing.T, method, path, token string) *http.Request {
	t.Helper()
	req := NewRequest(t, method, path)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("User-Agent", BrowserUA)
	req.Header.Set("X-Forwarded-Proto", "https")
	return req
}

// WithUserID injects an authenticated user into the request context,
// simulating what the auth middleware does. Invalid IDs are silently
// ignored so table tests can exercise the unauthenticated path.
func WithUserID(req *http.Request, userID string) *http.Request {
	parsed, err := id.ParseUserID(userID)
	if err != nil {
		return req
	}
	return req.WithContext(requestcontext.WithUserID(req.Context(), parsed))
}
