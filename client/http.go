// client/http.go
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/cenkalti/backoff/v4"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"go.uber.org/zap"

	"github.com/vre-platform/portal-bff/config"
	bff_errors "github.com/vre-platform/portal-bff/errors"
	logger "github.com/vre-platform/portal-bff/logging"
)

const correlationIDKey = "correlationID"

// Response is a raw downstream response used by pass-through endpoints.
type Response struct {
	Status int
	Body   []byte
}

// ResponseError is a downstream 4xx carrying a well-formed body that
// should be forwarded to the portal verbatim.
type ResponseError struct {
	Status int
	Body   []byte
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("downstream returned %d", e.Status)
}

// HTTPClient is the shared pooled client for downstream service calls.
type HTTPClient struct {
	client  *http.Client
	retries uint64
}

func NewHTTPClient() *HTTPClient {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 20,
	}
	return &HTTPClient{
		client: &http.Client{
			Timeout:   config.GetDuration("client.timeout"),
			Transport: transport,
		},
		retries: 2,
	}
}

// Do performs a downstream call. Network failures and downstream 5xx
// become ErrDownstream; 4xx become *ResponseError with the body kept
// for pass-through.
func (h *HTTPClient) Do(ctx context.Context, method, rawURL string, query url.Values, body any) (*Response, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
	}

	if len(query) > 0 {
		separator := "?"
		if parsed, err := url.Parse(rawURL); err == nil && parsed.RawQuery != "" {
			separator = "&"
		}
		rawURL = rawURL + separator + query.Encode()
	}

	resp, err := h.execute(ctx, method, rawURL, payload)
	if err != nil {
		logger.Error("Downstream call failed",
			zap.String("method", method),
			zap.String("url", rawURL),
			zap.String("correlation_id", correlationIDFrom(ctx)),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %s %s", bff_errors.ErrDownstream, method, rawURL)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response from %s", bff_errors.ErrDownstream, rawURL)
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		logger.Error("Downstream returned server error",
			zap.String("method", method),
			zap.String("url", rawURL),
			zap.Int("status", resp.StatusCode),
			zap.String("correlation_id", correlationIDFrom(ctx)))
		return nil, fmt.Errorf("%w: %s returned %d", bff_errors.ErrDownstream, rawURL, resp.StatusCode)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &ResponseError{Status: resp.StatusCode, Body: responseBody}
	}

	return &Response{Status: resp.StatusCode, Body: responseBody}, nil
}

func (h *HTTPClient) execute(ctx context.Context, method, rawURL string, payload []byte) (*http.Response, error) {
	send := func() (*http.Response, error) {
		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")
		if id := correlationIDFrom(ctx); id != "" {
			req.Header.Set("X-Request-Id", id)
		}
		injectSpan(ctx, req)
		return h.client.Do(req)
	}

	// Only idempotent reads are retried.
	if method != http.MethodGet {
		return send()
	}

	var resp *http.Response
	operation := func() error {
		var err error
		resp, err = send()
		if err != nil {
			return err
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			resp.Body.Close()
			return fmt.Errorf("retryable status %d", resp.StatusCode)
		}
		return nil
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), h.retries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}
	return resp, nil
}

// Get performs a GET and decodes the response body into out.
func (h *HTTPClient) Get(ctx context.Context, rawURL string, query url.Values, out any) error {
	resp, err := h.Do(ctx, http.MethodGet, rawURL, query, nil)
	if err != nil {
		return err
	}
	return decode(resp.Body, out)
}

// Post performs a POST and decodes the response body into out.
func (h *HTTPClient) Post(ctx context.Context, rawURL string, body any, out any) error {
	resp, err := h.Do(ctx, http.MethodPost, rawURL, nil, body)
	if err != nil {
		return err
	}
	return decode(resp.Body, out)
}

// Put performs a PUT and decodes the response body into out.
func (h *HTTPClient) Put(ctx context.Context, rawURL string, body any, out any) error {
	resp, err := h.Do(ctx, http.MethodPut, rawURL, nil, body)
	if err != nil {
		return err
	}
	return decode(resp.Body, out)
}

// Patch performs a PATCH and decodes the response body into out.
func (h *HTTPClient) Patch(ctx context.Context, rawURL string, body any, out any) error {
	resp, err := h.Do(ctx, http.MethodPatch, rawURL, nil, body)
	if err != nil {
		return err
	}
	return decode(resp.Body, out)
}

// Delete performs a DELETE and decodes the response body into out.
func (h *HTTPClient) Delete(ctx context.Context, rawURL string, body any, out any) error {
	resp, err := h.Do(ctx, http.MethodDelete, rawURL, nil, body)
	if err != nil {
		return err
	}
	return decode(resp.Body, out)
}

func decode(body []byte, out any) error {
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: malformed downstream response", bff_errors.ErrDownstream)
	}
	return nil
}

func injectSpan(ctx context.Context, req *http.Request) {
	span := opentracing.SpanFromContext(ctx)
	if span == nil {
		return
	}
	ext.HTTPMethod.Set(span, req.Method)
	ext.HTTPUrl.Set(span, req.URL.String())
	_ = opentracing.GlobalTracer().Inject(
		span.Context(),
		opentracing.HTTPHeaders,
		opentracing.HTTPHeadersCarrier(req.Header),
	)
}

func correlationIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(correlationIDKey).(string); ok {
		return id
	}
	return ""
}
