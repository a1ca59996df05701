package test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"verifid/internal/artifact"
	"verifid/internal/device/sim"
	jwttoken "verifid/internal/jwt_token"
	"verifid/internal/progress"
	httptransport "verifid/internal/transport/http"
	"verifid/internal/upload"
	"verifid/internal/workflow"
	"verifid/pkg/testutil"
)

// newServer assembles the real stack end to end: sim camera, in-memory
// stores, and an httptest intake service.
func newServer(t *testing.T) (http.Handler, string) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	intake := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "doc-e2e", "status": "accepted"})
	}))
	t.Cleanup(intake.Close)

	sequencer := progress.NewSequencer(progress.NewMemoryStore(), logger)
	service := workflow.NewService(
		sim.New(),
		artifact.NewMemoryStore(),
		sequencer,
		upload.New(intake.URL, logger),
		upload.NewProbeChecker(intake.URL),
		nil,
		logger,
		workflow.WithDetectionInterval(20*time.Millisecond),
	)
	t.Cleanup(service.Shutdown)

	jwtService := jwttoken.NewJWTService("test-signing-key", "verifid", "verifid-clients")
	router := httptransport.NewRouter(httptransport.RouterConfig{
		Logger:  logger,
		Capture: httptransport.NewCaptureHandler(service, logger, jwttoken.NewJWTServiceAdapter(jwtService)),
	})

	token, err := jwtService.GenerateAccessToken(uuid.New(), time.Hour)
	require.NoError(t, err)
	return router, token
}

func TestCaptureFlow(t *testing.T) {
	router, token := newServer(t)

	testutil.Given(t, "an authenticated user on the front document stage", func(t *testing.T) {
		rec := testutil.DoRequest(router, testutil.AuthedRequest(t, http.MethodPost, "/capture/front/session", token))
		testutil.AssertStatusOK(t, rec)
		testutil.AssertJSONContains(t, rec, "state", "live")

		testutil.When(t, "the subject aligns and the shutter fires", func(t *testing.T) {
			var captured *httptest.ResponseRecorder
			require.Eventually(t, func() bool {
				rec := testutil.DoRequest(router, testutil.AuthedRequest(t, http.MethodPost, "/capture/front/frame", token))
				if rec.Code != http.StatusCreated {
					return false
				}
				captured = rec
				return true
			}, 5*time.Second, 10*time.Millisecond)

			testutil.AssertJSONContains(t, captured, "stage", "front")

			testutil.Then(t, "submitting confirms the stage and advances progress", func(t *testing.T) {
				rec := testutil.DoRequest(router, testutil.AuthedRequest(t, http.MethodPost, "/capture/front/submit", token))
				testutil.AssertStatusOK(t, rec)
				testutil.AssertJSONContains(t, rec, "state", "confirmed")

				rec = testutil.DoRequest(router, testutil.AuthedRequest(t, http.MethodGet, "/verification/resume", token))
				testutil.AssertStatusOK(t, rec)
				testutil.AssertJSONContains(t, rec, "stage", "back")
			})
		})
	})
}

func TestCaptureFlowRejectsAnonymous(t *testing.T) {
	router, _ := newServer(t)

	req := testutil.NewRequest(t, http.MethodPost, "/capture/front/session")
	rec := testutil.DoRequest(router, req)
	testutil.AssertStatus(t, rec, http.StatusUnauthorized)
}

func TestCaptureFlowStatusSurvivesReload(t *testing.T) {
	router, token := newServer(t)

	rec := testutil.DoRequest(router, testutil.AuthedRequest(t, http.MethodPost, "/capture/selfie/session", token))
	testutil.AssertStatusOK(t, rec)

	require.Eventually(t, func() bool {
		rec := testutil.DoRequest(router, testutil.AuthedRequest(t, http.MethodPost, "/capture/selfie/frame", token))
		return rec.Code == http.StatusCreated
	}, 5*time.Second, 10*time.Millisecond)

	// A status read from a "fresh tab" lands back on the captured still.
	rec = testutil.DoRequest(router, testutil.AuthedRequest(t, http.MethodGet, "/capture/selfie", token))
	testutil.AssertStatusOK(t, rec)
	testutil.AssertJSONContains(t, rec, "state", "captured")
}
