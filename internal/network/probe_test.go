package network

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"zkattest/internal/platform/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func okServer() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func TestProbeBothServicesUp(t *testing.T) {
	proofs := okServer()
	defer proofs.Close()
	idx := okServer()
	defer idx.Close()

	cfg := config.Network{
		ProofServiceURL: proofs.URL,
		IndexerURL:      idx.URL,
		ProbeTimeout:    time.Second,
	}
	assert.True(t, Probe(context.Background(), cfg, discardLogger()))
}

func TestProbeRequiresBothServices(t *testing.T) {
	up := okServer()
	defer up.Close()

	t.Run("proof service down", func(t *testing.T) {
		cfg := config.Network{
			ProofServiceURL: "http://127.0.0.1:1",
			IndexerURL:      up.URL,
			ProbeTimeout:    500 * time.Millisecond,
		}
		assert.False(t, Probe(context.Background(), cfg, discardLogger()))
	})

	t.Run("indexer down", func(t *testing.T) {
		cfg := config.Network{
			ProofServiceURL: up.URL,
			IndexerURL:      "http://127.0.0.1:1",
			ProbeTimeout:    500 * time.Millisecond,
		}
		assert.False(t, Probe(context.Background(), cfg, discardLogger()))
	})

	t.Run("non-2xx is unavailable", func(t *testing.T) {
		down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer down.Close()

		cfg := config.Network{
			ProofServiceURL: down.URL,
			IndexerURL:      up.URL,
			ProbeTimeout:    500 * time.Millisecond,
		}
		assert.False(t, Probe(context.Background(), cfg, discardLogger()))
	})
}

func TestProbeSkipIssuesNoRequests(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	cfg := config.Network{
		ProofServiceURL:  srv.URL,
		IndexerURL:       srv.URL,
		SkipNetworkCheck: true,
		ProbeTimeout:     time.Second,
	}

	assert.False(t, Probe(context.Background(), cfg, discardLogger()))
	assert.Equal(t, int32(0), hits.Load(), "skip must short-circuit before any I/O")
}

func TestProbeTimeoutCollapsesToFalse(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer slow.Close()

	cfg := config.Network{
		ProofServiceURL: slow.URL,
		IndexerURL:      slow.URL,
		ProbeTimeout:    100 * time.Millisecond,
	}

	start := time.Now()
	assert.False(t, Probe(context.Background(), cfg, discardLogger()))
	assert.Less(t, time.Since(start), time.Second, "sub-checks must run concurrently within the budget")
}
