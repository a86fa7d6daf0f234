package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/lcalzada-xor/s1gap/internal/adapters/web"
	"github.com/lcalzada-xor/s1gap/internal/adapters/web/server"
	"github.com/lcalzada-xor/s1gap/internal/core/domain"
	"github.com/lcalzada-xor/s1gap/internal/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// setupServer helper creates a server handler backed by a mock service
func setupServer(t *testing.T) (http.Handler, *web.MockAPService) {
	t.Helper()
	telemetry.InitMetrics()
	mockService := new(web.MockAPService)
	srv := server.NewServer(":0", mockService, nil)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return srv.Handler(ctx), mockService
}

func do(h http.Handler, method, target string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestServer_GetInterface(t *testing.T) {
	h, svc := setupServer(t)
	svc.On("Interface").Return(domain.InterfaceStatus{
		InterfaceConfig: domain.InterfaceConfig{
			Name: "wlan0", HwMode: domain.ModeIEEE80211AH, Channel: 17, S1GOperChannel: 18,
			S1GEnabled: true, S1GPrimaryWidth: domain.Width1MHz, S1GOperWidth: domain.Width2MHz,
		},
		S1GState: "Active",
	})

	rec := do(h, http.MethodGet, "/api/interface", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "ah", got["hw_mode"])
	assert.Equal(t, "Active", got["s1g_state"])
	assert.EqualValues(t, 1, got["s1g_primary_width"])
	assert.EqualValues(t, 2, got["s1g_oper_width"])
}

func TestServer_Stations(t *testing.T) {
	h, svc := setupServer(t)
	sta := domain.StationSnapshot{Addr: "02:00:00:00:00:01", S1G: true, S1GCap: "0f"}
	svc.On("Stations").Return([]domain.StationSnapshot{sta})
	svc.On("Station", mock.Anything, "02:00:00:00:00:01").Return(sta, nil)
	svc.On("Station", mock.Anything, "02:00:00:00:00:02").
		Return(domain.StationSnapshot{}, domain.ErrStationNotFound)
	svc.On("Station", mock.Anything, "02:00:00:00:00:03").
		Return(domain.StationSnapshot{}, assert.AnError)

	rec := do(h, http.MethodGet, "/api/stations", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"s1g_cap":"0f"`)

	tests := []struct {
		name   string
		addr   string
		status int
	}{
		{"known", "02:00:00:00:00:01", http.StatusOK},
		{"dash form is normalized", "02-00-00-00-00-01", http.StatusOK},
		{"unknown", "02:00:00:00:00:02", http.StatusNotFound},
		{"storage failure", "02:00:00:00:00:03", http.StatusInternalServerError},
		{"invalid", "not-a-mac", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(h, http.MethodGet, "/api/stations/"+tt.addr, nil)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestServer_StoredStations(t *testing.T) {
	h, svc := setupServer(t)
	svc.On("StoredStations", mock.Anything).Return([]domain.StationSnapshot(nil), nil)

	rec := do(h, http.MethodGet, "/api/stations/stored", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestServer_Negotiate(t *testing.T) {
	h, svc := setupServer(t)

	var negotiated domain.S1GCapabilities
	negotiated[0] = 0x0E
	svc.On("Negotiate", mock.Anything).Return(negotiated)

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"valid", `{"peer":"0f0000000000000000000000000000"}`, http.StatusOK},
		{"short", `{"peer":"0f00"}`, http.StatusBadRequest},
		{"not hex", `{"peer":"zz"}`, http.StatusBadRequest},
		{"not json", `peer`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(h, http.MethodPost, "/api/negotiate", []byte(tt.body))
			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusOK {
				assert.Contains(t, rec.Body.String(), `"negotiated":"0e0000000000000000000000000000"`)
				assert.Contains(t, rec.Body.String(), `"chan_width":2`)
			}
		})
	}
}

func TestServer_PostOnlyRoutesRejectGet(t *testing.T) {
	h, _ := setupServer(t)

	for _, path := range []string{"/api/negotiate", "/api/config/persistence"} {
		t.Run(path, func(t *testing.T) {
			rec := do(h, http.MethodGet, path, nil)
			assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
			assert.Equal(t, http.MethodPost, rec.Header().Get("Allow"))
		})
	}

	rec := do(h, http.MethodGet, "/api/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_PersistenceToggle(t *testing.T) {
	h, svc := setupServer(t)
	svc.On("SetPersistenceEnabled", false).Return()
	svc.On("IsPersistenceEnabled").Return(false)

	rec := do(h, http.MethodPost, "/api/config/persistence?enabled=false", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(h, http.MethodPost, "/api/config/persistence?enabled=maybe", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(h, http.MethodGet, "/api/config", nil)
	assert.JSONEq(t, `{"persistenceEnabled":false,"wsClients":0}`, rec.Body.String())
	svc.AssertCalled(t, "SetPersistenceEnabled", false)
}

func TestServer_ConfigCountsStreamClients(t *testing.T) {
	telemetry.InitMetrics()
	svc := new(web.MockAPService)
	svc.On("Stations").Return([]domain.StationSnapshot{})
	svc.On("IsPersistenceEnabled").Return(true)
	srv := server.NewServer(":0", svc, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h := srv.Handler(ctx)
	ts := httptest.NewServer(h)
	defer ts.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return srv.WSManager.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	rec := do(h, http.MethodGet, "/api/config", nil)
	assert.JSONEq(t, `{"persistenceEnabled":true,"wsClients":1}`, rec.Body.String())
}

func TestServer_Metrics(t *testing.T) {
	h, _ := setupServer(t)

	rec := do(h, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "s1gap_")
}
