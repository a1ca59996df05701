package upload

import (
	"context"
	"net/http"
	"time"
)

// Connectivity answers "are we online right now". The workflow consults it
// before attempting submission; offline submissions degrade to
// saved-locally instead of failing outright.
type Connectivity interface {
	Online(ctx context.Context) bool
}

// ProbeChecker reports connectivity by probing the intake service with a
// short HEAD request.
type ProbeChecker struct {
	url        string
	httpClient *http.Client
}

// NewProbeChecker builds a connectivity probe against the given URL.
func NewProbeChecker(url string) *ProbeChecker {
	return &ProbeChecker{
		url:        url,
		httpClient: &http.Client{Timeout: 3 * time.Second},
	}
}

func (p *ProbeChecker) Online(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, p.url, nil)
	if err != nil {
		return false
	}
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	// Any response at all means the network path is up; the probe is not
	// an endpoint health check.
	return true
}

// StaticChecker is a fixed-answer Connectivity for tests and forced
// offline mode.
type StaticChecker bool

func (s StaticChecker) Online(context.Context) bool { return bool(s) }
