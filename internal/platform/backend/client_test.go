package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/colonyctl/internal/config"
	"github.com/imamik/colonyctl/internal/gateway"
	"github.com/imamik/colonyctl/internal/model"
)

func testTimeouts() *config.Timeouts {
	return &config.Timeouts{
		NodeImport:         200 * time.Millisecond,
		NodeImportInterval: 5 * time.Millisecond,
		API:                2 * time.Second,
		RetryMaxAttempts:   2,
		RetryInitialDelay:  time.Millisecond,
	}
}

func newTestClient(t *testing.T, mux *http.ServeMux, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	opts = append([]Option{WithTimeouts(testTimeouts())}, opts...)
	return New(srv.URL+"/", opts...)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestClient_SendsTokenAndDecodes(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /clusters/{id}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, model.Cluster{ID: r.PathValue("id"), Name: "training", Status: model.ClusterStatusReady})
	})
	c := newTestClient(t, mux, WithToken("secret"))

	cluster, err := c.GetCluster(context.Background(), "c1")

	require.NoError(t, err)
	assert.Equal(t, "c1", cluster.ID)
	assert.Equal(t, model.ClusterStatusReady, cluster.Status)
}

func TestClient_ClientErrorIsNotRetried(t *testing.T) {
	t.Parallel()
	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /clusters/{id}/nodes/{node}", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeJSON(w, http.StatusConflict, map[string]string{"detail": "node is running jobs"})
	})
	c := newTestClient(t, mux)

	_, err := c.RemoveNodeFromCluster(context.Background(), "c1", "n2")

	require.Error(t, err)
	var cmdErr *gateway.CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, http.StatusConflict, cmdErr.StatusCode)
	assert.Equal(t, "remove node rejected (HTTP 409): node is running jobs", cmdErr.Error())
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_ServerErrorIsRetried(t *testing.T) {
	t.Parallel()
	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("GET /nodes", func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "upstream unavailable", http.StatusServiceUnavailable)
			return
		}
		writeJSON(w, http.StatusOK, []model.ClusterNode{{ID: "n1", Status: model.NodeStatusAvailable}})
	})
	c := newTestClient(t, mux)

	nodes, err := c.ListNodes(context.Background())

	require.NoError(t, err)
	assert.Len(t, nodes, 1)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_RetriesExhausted(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /nodes", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusTooManyRequests)
	})
	c := newTestClient(t, mux)

	_, err := c.ListNodes(context.Background())

	require.Error(t, err)
	assert.True(t, gateway.IsCommandError(err))
	assert.Contains(t, err.Error(), "giving up after 3 attempts")
	assert.Contains(t, err.Error(), "overloaded")
}

func TestClient_CommandNotRepeatedAfterServerError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		status int
	}{
		{"bad gateway", http.StatusBadGateway},
		{"internal error", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var calls atomic.Int32
			mux := http.NewServeMux()
			mux.HandleFunc("POST /clusters", func(w http.ResponseWriter, r *http.Request) {
				if calls.Add(1) == 1 {
					http.Error(w, "proxy error", tt.status)
					return
				}
				writeJSON(w, http.StatusCreated, map[string]string{"id": "c2"})
			})
			c := newTestClient(t, mux)

			_, err := c.CreateCluster(context.Background(), model.CreateClusterParams{Name: "gpu"})

			var cmdErr *gateway.CommandError
			require.ErrorAs(t, err, &cmdErr)
			assert.Equal(t, tt.status, cmdErr.StatusCode)
			assert.Equal(t, int32(1), calls.Load())
		})
	}
}

func TestClient_CommandRetriedWhenRateLimited(t *testing.T) {
	t.Parallel()
	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("POST /nodes/import", func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "slow down", http.StatusTooManyRequests)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"nodes": []any{}})
	})
	c := newTestClient(t, mux)

	_, err := c.ImportNodes(context.Background(), []model.NodeSpecification{{Hostname: "gpu-1"}}, false)

	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_DeleteRetriedAfterServerError(t *testing.T) {
	t.Parallel()
	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /clusters/{id}", func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "proxy error", http.StatusBadGateway)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"id": r.PathValue("id")})
	})
	c := newTestClient(t, mux)

	id, err := c.DeleteCluster(context.Background(), "c1")

	require.NoError(t, err)
	assert.Equal(t, "c1", id)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_HonoursRetryAfter(t *testing.T) {
	t.Parallel()
	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("GET /nodes", func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "0")
			http.Error(w, "slow down", http.StatusTooManyRequests)
			return
		}
		writeJSON(w, http.StatusOK, []model.ClusterNode{})
	})
	c := newTestClient(t, mux)

	_, err := c.ListNodes(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestRetryAfter(t *testing.T) {
	t.Parallel()
	tests := []struct {
		header string
		want   time.Duration
	}{
		{"", 0},
		{"3", 3 * time.Second},
		{"-1", 0},
		{"soon", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, retryAfter(tt.header), "header %q", tt.header)
	}
}

func TestClient_NotFound(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, http.NewServeMux())

	_, err := c.GetCluster(context.Background(), "missing")
	assert.True(t, gateway.IsNotFound(err))
}

func TestClient_Metrics(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /clusters/{id}/dashboard", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"url": "https://dash.example/c1"})
	})
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	c := newTestClient(t, mux, WithMetrics(metrics))

	url, err := c.GetDashboardURL(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "https://dash.example/c1", url)
	_, err = c.GetKubeconfig(context.Background(), "c1")
	require.Error(t, err)

	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.apiCallsTotal.WithLabelValues("get dashboard url", "success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.apiCallsTotal.WithLabelValues("get kubeconfig", "error")))
}

func TestErrorMessage(t *testing.T) {
	t.Parallel()
	tests := []struct {
		raw  string
		want string
	}{
		{`{"detail":"bad node"}`, "bad node"},
		{`{"message":"quota"}`, "quota"},
		{`{"error":"nope"}`, "nope"},
		{"plain text\n", "plain text"},
		{"", "502 Bad Gateway"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, errorMessage([]byte(tt.raw), "502 Bad Gateway"))
	}
}
