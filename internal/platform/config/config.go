package config

import (
	"os"
	"time"
)

// Default endpoints for a locally running standalone proving network.
const (
	DefaultProofServiceURL = "http://localhost:6300"
	DefaultIndexerURL      = "http://localhost:8088/api/v1/graphql"
	DefaultNodeURL         = "http://localhost:9944"
)

// Default timeouts. The probe budget is deliberately short: a slow network is
// treated as an offline network. Indexer queries during verification get a
// much larger budget.
const (
	DefaultProbeTimeout = 1000 * time.Millisecond
	DefaultQueryTimeout = 10 * time.Second
)

// Network captures proving-network connectivity configuration.
type Network struct {
	ProofServiceURL string
	IndexerURL      string
	NodeURL         string
	// NetworkID labels the target network, e.g. "standalone" or "testnet".
	NetworkID string
	// SkipNetworkCheck forces offline mode without attempting any probe I/O.
	SkipNetworkCheck bool
	ProbeTimeout     time.Duration
	QueryTimeout     time.Duration
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr        string
	Environment string
	Network     Network
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	return Server{
		Addr:        envOr("ZKATTEST_ADDR", ":8080"),
		Environment: envOr("ZKATTEST_ENV", "development"),
		Network: Network{
			ProofServiceURL:  envOr("PROOF_SERVICE_URL", DefaultProofServiceURL),
			IndexerURL:       envOr("INDEXER_URL", DefaultIndexerURL),
			NodeURL:          envOr("NODE_URL", DefaultNodeURL),
			NetworkID:        envOr("NETWORK_ID", "standalone"),
			SkipNetworkCheck: os.Getenv("SKIP_NETWORK_CHECK") == "true",
			ProbeTimeout:     durationOr("NETWORK_PROBE_TIMEOUT", DefaultProbeTimeout),
			QueryTimeout:     durationOr("INDEXER_QUERY_TIMEOUT", DefaultQueryTimeout),
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}
