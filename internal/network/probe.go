package network

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"zkattest/internal/platform/config"
)

// liveness query sent to the indexer; any 2xx answer counts as reachable.
const indexerPingQuery = `{"query":"{ __typename }"}`

// Probe reports whether the remote proving network is reachable. It checks
// both the proof-computation service and the state indexer with independent
// concurrent requests and returns true only if both answer within the
// configured budget. It never returns an error: every transport failure
// collapses to false. When cfg.SkipNetworkCheck is set it returns false
// before any request is issued.
func Probe(ctx context.Context, cfg config.Network, logger *slog.Logger) bool {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.SkipNetworkCheck {
		logger.Debug("network probe skipped by configuration")
		return false
	}

	timeout := cfg.ProbeTimeout
	if timeout <= 0 {
		timeout = config.DefaultProbeTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	httpc := &http.Client{}
	g, ctx := errgroup.WithContext(ctx)

	// The sub-checks run concurrently so the total probe latency is bounded
	// by the slower of the two, not their sum.
	g.Go(func() error {
		return checkProofService(ctx, httpc, cfg.ProofServiceURL)
	})
	g.Go(func() error {
		return checkIndexer(ctx, httpc, cfg.IndexerURL)
	})

	if err := g.Wait(); err != nil {
		logger.Info("proving network unreachable, falling back to offline mode",
			"error", err,
			"proof_service_url", cfg.ProofServiceURL,
			"indexer_url", cfg.IndexerURL,
		)
		return false
	}
	return true
}

func checkProofService(ctx context.Context, httpc *http.Client, baseURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("proof service: %w", err)
	}
	resp, err := httpc.Do(req)
	if err != nil {
		return fmt.Errorf("proof service: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("proof service: status %d", resp.StatusCode)
	}
	return nil
}

func checkIndexer(ctx context.Context, httpc *http.Client, baseURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL, bytes.NewReader([]byte(indexerPingQuery)))
	if err != nil {
		return fmt.Errorf("indexer: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := httpc.Do(req)
	if err != nil {
		return fmt.Errorf("indexer: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("indexer: status %d", resp.StatusCode)
	}
	return nil
}
