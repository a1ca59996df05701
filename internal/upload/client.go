// Package upload talks to the document intake service: the primary
// multipart asset endpoint, the best-effort metadata endpoint, and the
// selfie liveness pre-check. Failures are classified so the workflow can
// distinguish a rejected upload from a degraded network.
package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	dErrors "verifid/pkg/domain-errors"
	"verifid/pkg/platform/circuit"
)

var (
	uploadDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "verifid_document_upload_duration_seconds",
		Help:    "Latency of document uploads by endpoint and outcome",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"endpoint", "outcome"})

	breakerTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "verifid_upload_breaker_transitions_total",
		Help: "Circuit breaker transitions for the upload client",
	}, []string{"transition"})
)

// Client posts captured documents to the intake service.
type Client struct {
	baseURL        string
	selfieCheckURL string
	httpClient     *http.Client
	breaker        *circuit.Breaker
	logger         *slog.Logger
	tracer         trace.Tracer
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithSelfieCheckURL sets the liveness pre-check endpoint. Empty disables
// the pre-check.
func WithSelfieCheckURL(url string) Option {
	return func(c *Client) { c.selfieCheckURL = url }
}

// WithBreaker overrides the circuit breaker, mainly for tests.
func WithBreaker(b *circuit.Breaker) Option {
	return func(c *Client) { c.breaker = b }
}

// New creates an upload client against the intake base URL.
func New(baseURL string, logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		breaker:    circuit.New("document-intake", circuit.WithFailureThreshold(5), circuit.WithSuccessThreshold(2)),
		logger:     logger,
		tracer:     otel.Tracer("verifid/upload"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// UploadDocument posts the raw asset plus its descriptive fields as a
// multipart payload. Any non-success HTTP status is an UploadRejected;
// transport failures are NetworkUnavailable. Both leave the artifact
// intact for retry — duplicates on retry are tolerated server-side, not
// deduplicated here.
func (c *Client) UploadDocument(ctx context.Context, doc DocumentUpload) (*Receipt, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	if !c.breaker.Allow() {
		return nil, dErrors.New(dErrors.CodeNetworkUnavailable, "document intake temporarily unavailable").
			WithHint("Your document is kept locally; retry in a moment")
	}

	ctx, span := c.tracer.Start(ctx, "upload.document",
		trace.WithAttributes(
			attribute.String("document.type", doc.DocumentType),
			attribute.Int("document.size_bytes", len(doc.Data)),
		))
	defer span.End()

	body, contentType, err := encodeMultipart(doc)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "encode multipart payload", err)
	}

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/documents", body)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "build upload request", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.recordFailure("documents", start)
		span.RecordError(err)
		return nil, dErrors.Wrap(dErrors.CodeNetworkUnavailable, "document upload failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.recordFailure("documents", start)
		return nil, dErrors.New(dErrors.CodeUploadRejected,
			fmt.Sprintf("document intake rejected upload with status %d", resp.StatusCode))
	}

	c.recordSuccess("documents", start)

	var receipt Receipt
	if err := json.NewDecoder(resp.Body).Decode(&receipt); err != nil {
		// An accepted upload with an unreadable body still counts; the
		// server holds the asset even if we lost the identifier.
		c.logger.WarnContext(ctx, "upload accepted but receipt unreadable", "error", err)
		return &Receipt{}, nil
	}
	return &receipt, nil
}

// RecordMetadata posts the document's descriptive record to the secondary
// endpoint. Callers treat failures as soft warnings.
func (c *Client) RecordMetadata(ctx context.Context, record MetadataRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return dErrors.Wrap(dErrors.CodeInternal, "encode metadata record", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/documents/metadata", bytes.NewReader(payload))
	if err != nil {
		return dErrors.Wrap(dErrors.CodeInternal, "build metadata request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return dErrors.Wrap(dErrors.CodeNetworkUnavailable, "metadata record failed", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return dErrors.New(dErrors.CodeUploadRejected,
			fmt.Sprintf("metadata endpoint returned status %d", resp.StatusCode))
	}
	return nil
}

// SelfieCheck posts the raw selfie asset to the liveness pre-check. The
// response is informational only and never gates stage completion.
func (c *Client) SelfieCheck(ctx context.Context, data []byte) error {
	if c.selfieCheckURL == "" {
		return nil
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.selfieCheckURL, bytes.NewReader(data))
	if err != nil {
		return dErrors.Wrap(dErrors.CodeInternal, "build selfie check request", err)
	}
	req.Header.Set("Content-Type", "image/jpeg")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return dErrors.Wrap(dErrors.CodeNetworkUnavailable, "selfie check failed", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return dErrors.New(dErrors.CodeUploadRejected,
			fmt.Sprintf("selfie check returned status %d", resp.StatusCode))
	}
	return nil
}

func (c *Client) recordFailure(endpoint string, start time.Time) {
	uploadDuration.WithLabelValues(endpoint, "failure").Observe(time.Since(start).Seconds())
	if _, change := c.breaker.RecordFailure(); change.Opened {
		breakerTransitions.WithLabelValues("opened").Inc()
		c.logger.Warn("upload circuit breaker opened", "breaker", c.breaker.Name())
	}
}

func (c *Client) recordSuccess(endpoint string, start time.Time) {
	uploadDuration.WithLabelValues(endpoint, "success").Observe(time.Since(start).Seconds())
	if _, change := c.breaker.RecordSuccess(); change.Closed {
		breakerTransitions.WithLabelValues("closed").Inc()
		c.logger.Info("upload circuit breaker closed", "breaker", c.breaker.Name())
	}
}

func encodeMultipart(doc DocumentUpload) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	fields := map[string]string{
		"document_name":   doc.DocumentName,
		"status":          doc.Status,
		"uploaded_by":     doc.UploadedBy,
		"document_type":   doc.DocumentType,
		"submission_date": doc.SubmissionDate.UTC().Format(time.RFC3339),
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, "", err
		}
	}

	part, err := w.CreateFormFile("file", doc.FileName)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(doc.Data); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return body, w.FormDataContentType(), nil
}
