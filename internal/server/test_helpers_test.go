package server

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

// newTestServer starts a Server over httptest and returns it with the
// test endpoint URL.
func newTestServer(t *testing.T, cfg *Config) (*Server, *httptest.Server) {
	t.Helper()

	if cfg == nil {
		cfg = DefaultConfig()
	}
	s := NewServer(cfg, testLogger())
	go s.run()

	ts := httptest.NewServer(s.routes())
	t.Cleanup(func() {
		ts.Close()
		_ = s.Stop()
	})
	return s, ts
}

// wsURL rewrites an httptest URL to the websocket endpoint.
func wsURL(ts *httptest.Server) string {
	return "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
}
