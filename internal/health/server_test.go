package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

type fakeSnapshots struct{ ready bool }

func (f fakeSnapshots) Ready() bool { return f.ready }

func serve(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	s := NewServer(Config{ServiceName: "racemarks", Version: "1.2.0", Port: "0"})

	rec := serve(t, s, "/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var body HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "1.2.0", body.Version)
}

func TestReadyEndpoint(t *testing.T) {
	tests := []struct {
		name       string
		ready      bool
		dbErr      error
		snapshots  bool
		wantStatus int
		wantCheck  map[string]string
	}{
		{
			name: "all healthy", ready: true, snapshots: true,
			wantStatus: http.StatusOK,
			wantCheck:  map[string]string{"service": "ok", "database": "ok", "stats": "ok"},
		},
		{
			name: "snapshot missing", ready: true, snapshots: false,
			wantStatus: http.StatusServiceUnavailable,
			wantCheck:  map[string]string{"stats": "not_loaded"},
		},
		{
			name: "database down", ready: true, snapshots: true, dbErr: errors.New("refused"),
			wantStatus: http.StatusServiceUnavailable,
			wantCheck:  map[string]string{"database": "error: refused"},
		},
		{
			name: "not marked ready", ready: false, snapshots: true,
			wantStatus: http.StatusServiceUnavailable,
			wantCheck:  map[string]string{"service": "not_ready"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewServer(Config{
				ServiceName: "racemarks",
				Port:        "0",
				DB:          fakePinger{err: tt.dbErr},
				Snapshots:   fakeSnapshots{ready: tt.snapshots},
			})
			s.SetReady(tt.ready)

			rec := serve(t, s, "/ready")
			assert.Equal(t, tt.wantStatus, rec.Code)

			var body ReadyResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			for k, v := range tt.wantCheck {
				assert.Equal(t, v, body.Checks[k], k)
			}
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("racemarks_races_scored_total 1\n"))
	})
	s := NewServer(Config{ServiceName: "racemarks", Port: "0", Metrics: metrics})

	rec := serve(t, s, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "racemarks_races_scored_total")

	bare := NewServer(Config{ServiceName: "racemarks", Port: "0"})
	assert.Equal(t, http.StatusNotFound, serve(t, bare, "/metrics").Code)
}
