package indexer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"zkattest/internal/platform/metrics"
	"zkattest/internal/sentinel"
	"zkattest/pkg/platform/circuit"
	"zkattest/pkg/platform/tracer"
)

const (
	instanceStateQuery = `query ($address: String!) { instanceState(address: $address) { data } }`
	transactionQuery   = `query ($txId: String!) { transaction(txId: $txId) { block { height } } }`
)

// Client queries a GraphQL-style indexer endpoint. It is immutable after
// construction and safe for concurrent use; network state snapshots may hand
// the same instance to many readers.
type Client struct {
	baseURL string
	httpc   *http.Client
	timeout time.Duration
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  tracer.Tracer
	breaker *circuit.Breaker
}

// Option configures the Client.
type Option func(*Client)

// WithTimeout overrides the per-query timeout. Default is 10s, deliberately
// larger than the availability probe budget.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the logger for transport-level diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithTracer sets the tracer for query spans.
func WithTracer(t tracer.Tracer) Option {
	return func(c *Client) {
		c.tracer = t
	}
}

// WithHTTPClient injects a custom HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.httpc = h
	}
}

// WithBreaker installs a circuit breaker. When the breaker is open, queries
// fail fast with sentinel.ErrUnavailable instead of issuing requests.
func WithBreaker(b *circuit.Breaker) Option {
	return func(c *Client) {
		c.breaker = b
	}
}

// New returns a Client bound to the given indexer endpoint.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpc:   &http.Client{},
		timeout: 10 * time.Second,
		logger:  slog.Default(),
		tracer:  tracer.Noop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the endpoint this client is bound to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphqlResponse struct {
	Data json.RawMessage `json:"data"`
}

// InstanceState fetches the current on-chain state for a deployed attestation
// instance. Returns sentinel.ErrNotFound when the instance does not exist or
// the indexer could not be reached.
func (c *Client) InstanceState(ctx context.Context, address string) (*InstanceState, error) {
	ctx, span := c.tracer.Start(ctx, "indexer.InstanceState", tracer.String("address", address))

	raw, err := c.query(ctx, "instance_state", instanceStateQuery, map[string]any{"address": address})
	if err != nil {
		span.End(err)
		return nil, err
	}

	var payload struct {
		InstanceState *struct {
			Data map[string]any `json:"data"`
		} `json:"instanceState"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		c.logger.Warn("indexer returned malformed instance state", "address", address, "error", err)
		span.End(err)
		return nil, sentinel.ErrNotFound
	}
	if payload.InstanceState == nil || payload.InstanceState.Data == nil {
		span.End(nil)
		return nil, sentinel.ErrNotFound
	}

	state := &InstanceState{
		Address: address,
		Data:    payload.InstanceState.Data,
	}
	if v, ok := payload.InstanceState.Data["verified"].(bool); ok {
		state.Verified = v
	}
	span.SetAttributes(tracer.Bool("verified", state.Verified))
	span.End(nil)
	return state, nil
}

// Transaction fetches the ledger confirmation for a transaction ID. Returns
// sentinel.ErrNotFound when unknown or unreachable.
func (c *Client) Transaction(ctx context.Context, txID string) (*Transaction, error) {
	ctx, span := c.tracer.Start(ctx, "indexer.Transaction", tracer.String("tx_id", txID))

	raw, err := c.query(ctx, "transaction", transactionQuery, map[string]any{"txId": txID})
	if err != nil {
		span.End(err)
		return nil, err
	}

	var payload struct {
		Transaction *struct {
			Block struct {
				Height int64 `json:"height"`
			} `json:"block"`
		} `json:"transaction"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		c.logger.Warn("indexer returned malformed transaction", "tx_id", txID, "error", err)
		span.End(err)
		return nil, sentinel.ErrNotFound
	}
	if payload.Transaction == nil {
		span.End(nil)
		return nil, sentinel.ErrNotFound
	}

	span.End(nil)
	return &Transaction{TxID: txID, BlockHeight: payload.Transaction.Block.Height}, nil
}

// query runs one GraphQL operation. All transport-level failures are logged
// and reported as sentinel.ErrNotFound; an open breaker short-circuits to
// sentinel.ErrUnavailable without I/O.
func (c *Client) query(ctx context.Context, operation, query string, variables map[string]any) (json.RawMessage, error) {
	if c.breaker != nil && c.breaker.IsOpen() {
		c.logger.Debug("indexer breaker open, skipping query", "operation", operation)
		c.metrics.ObserveIndexerQuery(operation, "short_circuit", 0)
		return nil, sentinel.ErrUnavailable
	}

	start := time.Now()
	raw, err := c.post(ctx, query, variables)
	elapsed := time.Since(start)

	if err != nil {
		c.logger.Warn("indexer query failed",
			"operation", operation,
			"endpoint", c.baseURL,
			"error", err,
		)
		c.metrics.ObserveIndexerQuery(operation, "transport_error", elapsed)
		if c.breaker != nil && c.breaker.RecordFailure() {
			c.logger.Warn("indexer breaker opened", "breaker", c.breaker.Name())
			c.metrics.ObserveBreakerTransition(c.breaker.Name(), "open")
		}
		return nil, sentinel.ErrNotFound
	}

	c.metrics.ObserveIndexerQuery(operation, "ok", elapsed)
	if c.breaker != nil && c.breaker.RecordSuccess() {
		c.logger.Info("indexer breaker closed", "breaker", c.breaker.Name())
		c.metrics.ObserveBreakerTransition(c.breaker.Name(), "closed")
	}
	return raw, nil
}

func (c *Client) post(ctx context.Context, query string, variables map[string]any) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("indexer returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var envelope graphqlResponse
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return envelope.Data, nil
}
