package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

const (
	defaultUserAgent = "fblive/0.1"
	defaultLogLabel  = "API Request"
	requestIDHeader  = "X-Request-ID"
)

// Doer sends HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Request describes one API call.
type Request struct {
	Method string
	Path   string
	Body   any
	Header http.Header
}

// Hooks are optional per-call callbacks. Notify asks the executor to raise the
// configured notifier on failure.
type Hooks struct {
	OnSuccess func(payload json.RawMessage)
	OnError   func(err *Error)
	Notify    bool
}

// Outcome is the result of Execute. Exactly one of Payload and Err is set;
// a successful empty body is reported as JSON null.
type Outcome struct {
	Payload json.RawMessage
	Err     *Error
}

// OK reports whether the call succeeded.
func (o Outcome) OK() bool {
	return o.Err == nil
}

// Decode unmarshals the payload into dest, returning the call error first.
func (o Outcome) Decode(dest any) error {
	if o.Err != nil {
		return o.Err
	}
	if dest == nil {
		return nil
	}
	if err := json.Unmarshal(o.Payload, dest); err != nil {
		return Classify(DecodeFailure{Err: err})
	}
	return nil
}

// Executor performs API calls, classifies failures and tracks the in-flight
// and current-error state observed by the UI.
type Executor struct {
	resolver Resolver
	http     Doer
	logger   *log.Logger
	label    string
	notify   func(*Error)

	mu       sync.Mutex
	inFlight int
	lastErr  *Error
}

// Option configures an Executor.
type Option func(*Executor)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(d Doer) Option {
	return func(x *Executor) {
		if d != nil {
			x.http = d
		}
	}
}

// WithLogger sets the logger used for classified failures.
func WithLogger(l *log.Logger) Option {
	return func(x *Executor) {
		if l != nil {
			x.logger = l
		}
	}
}

// WithLabel sets the context label attached to failure log records.
func WithLabel(label string) Option {
	return func(x *Executor) {
		if strings.TrimSpace(label) != "" {
			x.label = label
		}
	}
}

// WithNotifier sets the callback raised for failures of calls that ask for it.
func WithNotifier(fn func(*Error)) Option {
	return func(x *Executor) {
		x.notify = fn
	}
}

// NewExecutor builds an Executor for the given resolver.
func NewExecutor(resolver Resolver, opts ...Option) *Executor {
	x := &Executor{
		resolver: resolver,
		http:     &http.Client{Timeout: 30 * time.Second},
		logger:   log.New(io.Discard),
		label:    defaultLogLabel,
	}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// Resolver returns the endpoint resolver in use.
func (x *Executor) Resolver() Resolver {
	return x.resolver
}

// InFlight reports whether any call is outstanding.
func (x *Executor) InFlight() bool {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.inFlight > 0
}

// Err returns the error stored by the most recent failed call, or nil once a
// later call has started.
func (x *Executor) Err() *Error {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.lastErr
}

// ClearError drops the stored error.
func (x *Executor) ClearError() {
	x.mu.Lock()
	x.lastErr = nil
	x.mu.Unlock()
}

// Execute performs req. Failures are classified exactly once, logged, stored
// as the current error, passed to hooks and returned in the Outcome.
func (x *Executor) Execute(ctx context.Context, req Request, hooks *Hooks) Outcome {
	x.begin()
	defer x.end()

	if hooks == nil {
		hooks = &Hooks{}
	}
	if req.Method == "" {
		req.Method = http.MethodGet
	}
	requestID := uuid.NewString()

	payload, raw := x.send(ctx, req, requestID)
	if raw != nil {
		apiErr := Classify(raw)
		x.logError(apiErr, req, requestID)
		x.storeError(apiErr)
		if hooks.OnError != nil {
			hooks.OnError(apiErr)
		}
		if hooks.Notify && x.notify != nil {
			x.notify(apiErr)
		}
		return Outcome{Err: apiErr}
	}

	if hooks.OnSuccess != nil {
		hooks.OnSuccess(payload)
	}
	return Outcome{Payload: payload}
}

func (x *Executor) begin() {
	x.mu.Lock()
	x.inFlight++
	x.lastErr = nil
	x.mu.Unlock()
}

func (x *Executor) end() {
	x.mu.Lock()
	x.inFlight--
	x.mu.Unlock()
}

func (x *Executor) storeError(e *Error) {
	x.mu.Lock()
	x.lastErr = e
	x.mu.Unlock()
}

// send returns either the payload or a tagged raw failure.
func (x *Executor) send(ctx context.Context, req Request, requestID string) (json.RawMessage, any) {
	if ctx == nil {
		ctx = context.Background()
	}
	var body io.Reader
	if req.Body != nil {
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, x.resolver.Resolve(req.Path), body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", defaultUserAgent)
	httpReq.Header.Set(requestIDHeader, requestID)
	for key, values := range req.Header {
		httpReq.Header.Del(key)
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}

	resp, err := x.http.Do(httpReq)
	if err != nil {
		return nil, TransportFailure{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, responseFailure(resp, data)
	}
	if err != nil {
		return nil, TransportFailure{Err: fmt.Errorf("read response: %w", err)}
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return json.RawMessage("null"), nil
	}
	if !json.Valid(data) {
		var probe any
		return nil, DecodeFailure{Err: json.Unmarshal(data, &probe)}
	}
	return json.RawMessage(data), nil
}

func responseFailure(resp *http.Response, data []byte) ResponseFailure {
	var body struct {
		Error string `json:"error"`
	}
	// Undecodable error bodies are treated as empty.
	_ = json.Unmarshal(data, &body)
	return ResponseFailure{
		Status:     resp.StatusCode,
		StatusText: statusText(resp),
		Message:    body.Error,
	}
}

// statusText returns the reason phrase without the leading code.
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, fmt.Sprintf("%d", resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}

func (x *Executor) logError(e *Error, req Request, requestID string) {
	x.logger.Error(x.label,
		"message", e.Message,
		"kind", string(e.Kind),
		"status", e.Status,
		"details", e.Details,
		"method", req.Method,
		"path", req.Path,
		"request_id", requestID,
	)
}
