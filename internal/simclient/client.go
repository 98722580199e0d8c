// Package simclient talks to an external simulator service that compiles and executes circuits,
// typically a Qiskit/Aer sidecar. A Client implements qbench.Backend for one compilation target.
package simclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/TomTonic/qbench"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Target selects the compilation path on the service.
type Target string

const (
	// TargetAer compiles for the Aer state-vector simulator.
	TargetAer Target = "aer"
	// TargetGeneric compiles without backend-specific annotations.
	TargetGeneric Target = "generic"
)

// RequestIDHeader carries a per-request UUID so service logs can be correlated.
const RequestIDHeader = "X-Request-ID"

// maxResponseBytes bounds a response body; a 24-qubit state vector in JSON stays well below it.
const maxResponseBytes = 1 << 30

// Handle is the artifact returned by Compile. It refers to a compiled circuit held by the service.
type Handle struct {
	ID        string
	Target    Target
	NumQubits int
	Depth     int
	Size      int
}

// Client is an HTTP client for one compilation target of a simulator service.
type Client struct {
	baseURL string
	target  Target
	codec   Codec
	client  *http.Client
	limiter *rate.Limiter
	log     zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option { return func(c *Client) { c.client = hc } }

// WithTimeout sets the timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option { return func(c *Client) { c.client.Timeout = d } }

// WithCodec selects the wire encoding. The default is JSON.
func WithCodec(codec Codec) Option { return func(c *Client) { c.codec = codec } }

// WithRateLimit caps outgoing requests at rps per second with the given burst. rps <= 0 disables the limit.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), max(burst, 1))
	}
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option { return func(c *Client) { c.log = l } }

// New creates a client for the service at baseURL compiling for target.
func New(baseURL string, target Target, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		target:  target,
		codec:   JSON,
		client:  &http.Client{Timeout: 60 * time.Second},
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With().Str("client", "simulator").Str("target", string(target)).Logger()
	return c
}

var _ qbench.Backend = (*Client)(nil)

// Name identifies the backend in logs and errors.
func (c *Client) Name() string { return string(c.target) + "@" + c.baseURL }

type compileRequest struct {
	Target            Target            `json:"target" msgpack:"target"`
	OptimizationLevel int               `json:"optimization_level" msgpack:"optimization_level"`
	Circuit           qbench.CircuitDoc `json:"circuit" msgpack:"circuit"`
}

type compileResponse struct {
	Success    bool   `json:"success" msgpack:"success"`
	Error      string `json:"error,omitempty" msgpack:"error,omitempty"`
	ArtifactID string `json:"artifact_id" msgpack:"artifact_id"`
	Depth      int    `json:"depth" msgpack:"depth"`
	Size       int    `json:"size" msgpack:"size"`
}

type executeRequest struct {
	ArtifactID string `json:"artifact_id" msgpack:"artifact_id"`
}

type executeResponse struct {
	Success    bool         `json:"success" msgpack:"success"`
	Error      string       `json:"error,omitempty" msgpack:"error,omitempty"`
	Amplitudes [][2]float64 `json:"amplitudes" msgpack:"amplitudes"`
}

// Compile asks the service to compile circuit at the given optimization level.
func (c *Client) Compile(ctx context.Context, circuit *qbench.Circuit, optLevel int) (qbench.Artifact, error) {
	req := compileRequest{Target: c.target, OptimizationLevel: optLevel, Circuit: circuit.Doc()}
	var resp compileResponse
	if err := c.post(ctx, "/v1/compile", req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, serviceError("compile", resp.Error)
	}
	if resp.ArtifactID == "" {
		return nil, errors.New("compile: response without artifact_id")
	}
	return &Handle{
		ID:        resp.ArtifactID,
		Target:    c.target,
		NumQubits: circuit.NumQubits,
		Depth:     resp.Depth,
		Size:      resp.Size,
	}, nil
}

// Execute runs a compiled circuit and returns its final state vector.
func (c *Client) Execute(ctx context.Context, a qbench.Artifact) ([]complex128, error) {
	h, ok := a.(*Handle)
	if !ok {
		return nil, fmt.Errorf("execute: artifact of type %T was not produced by a simulator client", a)
	}
	if h.Target != c.target {
		return nil, fmt.Errorf("execute: artifact compiled for %s, client targets %s", h.Target, c.target)
	}
	var resp executeResponse
	if err := c.post(ctx, "/v1/execute", executeRequest{ArtifactID: h.ID}, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, serviceError("execute", resp.Error)
	}
	if want := 1 << h.NumQubits; len(resp.Amplitudes) != want {
		return nil, fmt.Errorf("execute: got %d amplitudes, want %d", len(resp.Amplitudes), want)
	}
	amps := make([]complex128, len(resp.Amplitudes))
	for i, a := range resp.Amplitudes {
		amps[i] = complex(a[0], a[1])
	}
	return amps, nil
}

func (c *Client) post(ctx context.Context, endpoint string, request, response interface{}) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit: %w", err)
		}
	}
	body, err := c.codec.Marshal(request)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	requestID := uuid.NewString()
	httpReq.Header.Set("Content-Type", c.codec.ContentType())
	httpReq.Header.Set("Accept", c.codec.ContentType())
	httpReq.Header.Set(RequestIDHeader, requestID)

	c.log.Debug().
		Str("endpoint", endpoint).
		Str("request_id", requestID).
		Msg("calling simulator service")

	start := time.Now()
	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return fmt.Errorf("%s: status %d: %s", endpoint, httpResp.StatusCode, summarizeBody(data))
	}
	if err := c.codec.Unmarshal(data, response); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	c.log.Debug().
		Str("endpoint", endpoint).
		Str("request_id", requestID).
		Dur("elapsed", time.Since(start)).
		Msg("simulator service responded")
	return nil
}

func serviceError(op, msg string) error {
	if msg == "" {
		msg = "unknown error"
	}
	return fmt.Errorf("%s failed: %s", op, msg)
}

func summarizeBody(data []byte) string {
	const limit = 256
	s := strings.TrimSpace(string(data))
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}
