package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/reolink-tools/fwcheck/pkg/checker"
	"github.com/reolink-tools/fwcheck/pkg/device"
	"github.com/reolink-tools/fwcheck/pkg/errors"
	"github.com/reolink-tools/fwcheck/pkg/reolink"
)

type fakeSource struct {
	fw    *reolink.Firmware
	err   error
	calls int
}

func (f *fakeSource) LatestFirmware(_ context.Context, _, _ int) (*reolink.Firmware, error) {
	f.calls++
	return f.fw, f.err
}

func testDevice() device.Device {
	return device.Device{
		Model:           "RLN8-410",
		HardwareVersion: "N2MB02",
		Firmware:        "v3.5.1.368_25010324",
	}
}

func newTestServer(t *testing.T, src checker.FirmwareSource) *Server {
	t.Helper()
	chk := checker.New(
		checker.WithSource(src),
		checker.WithRateLimit(rate.Inf, 1),
	)
	cfg := NewConfig()
	cfg.Version = "test"
	return NewServer(cfg, chk, testDevice())
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t, &fakeSource{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.handleHealth(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
}

func TestHandleReady(t *testing.T) {
	s := newTestServer(t, &fakeSource{})

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	rec := httptest.NewRecorder()
	s.handleReady(rec, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	s.SetReady(true)
	rec = httptest.NewRecorder()
	s.handleReady(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleCheckOnDemand(t *testing.T) {
	src := &fakeSource{fw: &reolink.Firmware{
		Version: "v3.5.1.368_25010326",
		URL:     "https://example.com/fw.zip",
	}}
	s := newTestServer(t, src)

	req := httptest.NewRequest(http.MethodGet, "/v1/check", nil)
	rec := httptest.NewRecorder()
	s.handleCheck(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var res checker.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.True(t, res.UpdateAvailable)
	assert.Equal(t, "v3.5.1.368_25010326", res.Latest)
	assert.Equal(t, 1, src.calls)
}

func TestHandleCheckServesCachedResult(t *testing.T) {
	src := &fakeSource{fw: &reolink.Firmware{Version: "v3.5.1.368_25010326"}}
	s := newTestServer(t, src)

	req := httptest.NewRequest(http.MethodGet, "/v1/check", nil)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		s.handleCheck(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	// First request performs the check, the rest are served from cache.
	assert.Equal(t, 1, src.calls)
}

func TestHandleCheckRefreshBypassesCache(t *testing.T) {
	src := &fakeSource{fw: &reolink.Firmware{Version: "v3.5.1.368_25010326"}}
	s := newTestServer(t, src)

	req := httptest.NewRequest(http.MethodGet, "/v1/check", nil)
	rec := httptest.NewRecorder()
	s.handleCheck(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/v1/check?refresh=true", nil)
	rec = httptest.NewRecorder()
	s.handleCheck(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, 2, src.calls)
}

func TestHandleCheckMethodNotAllowed(t *testing.T) {
	s := newTestServer(t, &fakeSource{})

	req := httptest.NewRequest(http.MethodPost, "/v1/check", nil)
	rec := httptest.NewRecorder()
	s.handleCheck(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, string(errors.ErrCodeMethodNotAllowed), resp.Code)
}

func TestHandleCheckVendorFailure(t *testing.T) {
	src := &fakeSource{err: errors.New(errors.ErrCodeUnavailable, "vendor api returned status 502")}
	s := newTestServer(t, src)

	req := httptest.NewRequest(http.MethodGet, "/v1/check", nil)
	rec := httptest.NewRecorder()
	s.handleCheck(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, string(errors.ErrCodeUnavailable), resp.Code)
	assert.True(t, resp.Retryable)
}

func TestHandleDefault(t *testing.T) {
	s := newTestServer(t, &fakeSource{})
	s.SetReady(true)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	s.handleDefault(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "fwcheckd", resp["name"])
	assert.Equal(t, true, resp["ready"])
	assert.Contains(t, resp["routes"], "GET /v1/check")
}

func TestNewConfigEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "5")

	cfg := NewConfig()
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
}

func TestStartFailedBindStaysNotReady(t *testing.T) {
	// Occupy a port so the server's bind fails.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	src := &fakeSource{fw: &reolink.Firmware{Version: "v3.5.1.368_25010326"}}
	s := newTestServer(t, src)
	s.httpServer.Addr = ln.Addr().String()

	err = s.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to bind")

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	rec := httptest.NewRecorder()
	s.handleReady(rec, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestCheckLoopStopsOnCancel(t *testing.T) {
	src := &fakeSource{fw: &reolink.Firmware{Version: "v3.5.1.368_25010326"}}
	s := newTestServer(t, src)
	s.config.CheckOnStartup = true
	s.config.CheckInterval = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.checkLoop(ctx) }()

	// Startup check should populate the cache before we cancel.
	require.Eventually(t, func() bool {
		s.mu.RLock()
		defer s.mu.RUnlock()
		return s.last != nil
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("checkLoop did not stop after cancel")
	}
}
