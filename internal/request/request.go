// Package request executes one HTTP call against a provider and normalizes
// every outcome into an envelope. Nothing in this package panics or returns
// a bare error: failures are envelope values.
package request

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lepinkainen/reelmeta/internal/envelope"
	rmerrors "github.com/lepinkainen/reelmeta/internal/errors"
)

// Doer is the transport: anything that can execute an *http.Request.
// *http.Client satisfies it.
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

// Request outcome labels reported to an Observer.
const (
	OutcomeJSON       = "json"
	OutcomeText       = "text"
	OutcomeInvalid    = "invalid_request"
	OutcomeTransport  = "transport_error"
	OutcomeDecodeFail = "decode_error"
)

// Observer receives one notification per executed request.
type Observer interface {
	ObserveRequest(host, method, outcome string, status int, elapsed time.Duration)
}

// Request describes a single provider call. The context passed to Do plays
// the role of the abort signal.
type Request struct {
	Method  string
	Headers map[string]string
	// Body is sent verbatim when it is a string or []byte and JSON-encoded
	// otherwise.
	Body    any
	Query   Query
	Address string
	// Transport overrides the executor's Doer for this call.
	Transport Doer
}

// Executor carries the defaults shared by many requests.
type Executor struct {
	doer     Doer
	observer Observer
}

// Option configures an Executor.
type Option func(*Executor)

// WithObserver reports every request outcome to o.
func WithObserver(o Observer) Option {
	return func(e *Executor) {
		e.observer = o
	}
}

// NewExecutor creates an Executor using doer as the default transport. A
// nil doer falls back to http.DefaultClient.
func NewExecutor(doer Doer, opts ...Option) *Executor {
	e := &Executor{doer: doer}
	if e.doer == nil {
		e.doer = http.DefaultClient
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Do executes req and decodes the response body into T. The response is
// decoded as JSON first; when that fails and T can hold text (string or
// any) the raw body is returned instead. Both successes carry the HTTP
// status as their code.
func Do[T any](ctx context.Context, ex *Executor, req Request) envelope.Response[T] {
	if ex == nil {
		ex = NewExecutor(nil)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	requestID := uuid.NewString()
	started := time.Now()
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	u, err := buildURL(req.Address, req.Query)
	if err != nil {
		ex.observe("", method, OutcomeInvalid, 0, started)
		return envelope.Failure[T](rmerrors.NewTransportError(err), http.StatusInternalServerError)
	}

	body, contentType, err := encodeBody(req.Body)
	if err != nil {
		ex.observe(u.Host, method, OutcomeInvalid, 0, started)
		return envelope.Failure[T](rmerrors.NewTransportError(err), http.StatusInternalServerError)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		ex.observe(u.Host, method, OutcomeInvalid, 0, started)
		return envelope.Failure[T](rmerrors.NewTransportError(err), http.StatusInternalServerError)
	}
	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}
	if contentType != "" && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	doer := req.Transport
	if doer == nil {
		doer = ex.doer
	}

	slog.Debug("Provider request", "request_id", requestID, "method", method, "url", redact(u))

	resp, err := doer.Do(httpReq)
	if err != nil {
		slog.Debug("Provider request failed", "request_id", requestID, "error", err)
		ex.observe(u.Host, method, OutcomeTransport, 0, started)
		return envelope.Failure[T](rmerrors.NewTransportError(err), http.StatusInternalServerError)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		ex.observe(u.Host, method, OutcomeDecodeFail, resp.StatusCode, started)
		return envelope.Failure[T](rmerrors.NewTransportError(err), resp.StatusCode)
	}

	var data T
	jsonErr := json.Unmarshal(raw, &data)
	if jsonErr == nil {
		slog.Debug("Provider response", "request_id", requestID, "status", resp.StatusCode, "bytes", len(raw))
		ex.observe(u.Host, method, OutcomeJSON, resp.StatusCode, started)
		return envelope.Success(data, resp.StatusCode)
	}

	if text, ok := asText[T](raw); ok {
		slog.Debug("Provider response is not JSON, returning text", "request_id", requestID, "status", resp.StatusCode)
		ex.observe(u.Host, method, OutcomeText, resp.StatusCode, started)
		return envelope.Success(text, resp.StatusCode)
	}

	ex.observe(u.Host, method, OutcomeDecodeFail, resp.StatusCode, started)
	code := resp.StatusCode
	if code == 0 {
		code = http.StatusInternalServerError
	}
	return envelope.Failure[T](rmerrors.NewTransportError(fmt.Errorf("decode response: %w", jsonErr)), code)
}

func (e *Executor) observe(host, method, outcome string, status int, started time.Time) {
	if e.observer == nil {
		return
	}
	e.observer.ObserveRequest(host, method, outcome, status, time.Since(started))
}

func buildURL(address string, q Query) (*url.URL, error) {
	u, err := url.Parse(address)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid URL %q: scheme and host are required", address)
	}
	return Encode(u, q), nil
}

func encodeBody(body any) (io.Reader, string, error) {
	switch b := body.(type) {
	case nil:
		return nil, "", nil
	case string:
		return strings.NewReader(b), "", nil
	case []byte:
		return bytes.NewReader(b), "", nil
	}

	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, "", fmt.Errorf("encode request body: %w", err)
	}
	return bytes.NewReader(encoded), "application/json", nil
}

func asText[T any](raw []byte) (T, bool) {
	var out T
	switch target := any(&out).(type) {
	case *string:
		*target = string(raw)
		return out, true
	case *any:
		*target = string(raw)
		return out, true
	default:
		return out, false
	}
}

// redact hides credentials carried in the query string before logging.
func redact(u *url.URL) string {
	q := u.Query()
	if q.Has("api_key") {
		q.Set("api_key", "REDACTED")
	}
	clone := *u
	clone.RawQuery = q.Encode()
	return clone.Redacted()
}

// RequireSuccess turns a decoded response with a non-2xx status into a
// failure, so that provider error bodies never flow onward as data. The
// message is taken from the body when the provider included one.
func RequireSuccess[T any](r envelope.Response[T]) envelope.Response[T] {
	if r.HasError() || r.Code() == 0 || (r.Code() >= 200 && r.Code() < 300) {
		return r
	}
	return envelope.Failure[T](rmerrors.NewStatusError(r.Code(), statusMessage(r.Data(), r.Code())), r.Code())
}

var messageKeys = []string{"status_message", "error message", "message", "error"}

func statusMessage(data any, code int) string {
	switch body := data.(type) {
	case map[string]any:
		for _, key := range messageKeys {
			if msg, ok := body[key].(string); ok && msg != "" {
				return msg
			}
		}
	case string:
		if trimmed := strings.TrimSpace(body); trimmed != "" && len(trimmed) <= 512 {
			return trimmed
		}
	}
	return http.StatusText(code)
}

// IsCanceled reports whether a failure was caused by context cancellation.
func IsCanceled[T any](r envelope.Response[T]) bool {
	return errors.Is(r.Err(), context.Canceled) || errors.Is(r.Err(), context.DeadlineExceeded)
}
