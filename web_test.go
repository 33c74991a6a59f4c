/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func get(t *testing.T, h http.Handler, path string) *http.Response {
	t.Helper()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec.Result()
}

func TestRoutes(t *testing.T) {
	cfg := newTestConfig(t)
	router := newRouter(cfg, make(chan error, 16))

	tests := []struct {
		path        string
		status      int
		contentType string
		contains    string
	}{
		{"/", http.StatusOK, "text/html", "Start a new game"},
		{"/healthz", http.StatusOK, "text/plain", "Ok"},
		{"/version", http.StatusOK, "text/plain", "reputations v" + releaseVersion},
		{"/robots.txt", http.StatusOK, "text/plain", "Disallow: /reputations/"},
		{"/assets/reputations/app.css", http.StatusOK, "text/css", ""},
		{"/assets/reputations/app.js", http.StatusOK, "text/javascript", ""},
		{"/assets/reputations/missing.js", http.StatusNotFound, "", ""},
		{"/favicon.svg", http.StatusOK, "image/svg+xml", "<svg"},
		{"/favicons/site.webmanifest", http.StatusOK, "application/manifest+json", "Reputations"},
		{"/reputations/abcdEFGH", http.StatusOK, "text/html", "assets/reputations/app.js"},
		{"/reputations/abcdEFGH/qr", http.StatusOK, "image/png", "PNG"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp := get(t, router, tt.path)
			defer resp.Body.Close()

			if resp.StatusCode != tt.status {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, tt.contentType) {
				t.Errorf("Content-Type = %q, want prefix %q", ct, tt.contentType)
			}

			body, _ := io.ReadAll(resp.Body)
			if !strings.Contains(string(body), tt.contains) {
				t.Errorf("body does not contain %q", tt.contains)
			}

			if tt.status == http.StatusOK && resp.Header.Get("Content-Security-Policy") == "" {
				t.Error("missing security headers")
			}
		})
	}
}

func TestNewGameRedirect(t *testing.T) {
	cfg := newTestConfig(t)
	router := newRouter(cfg, make(chan error, 16))

	resp := get(t, router, "/reputations")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusTemporaryRedirect {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusTemporaryRedirect)
	}

	loc := resp.Header.Get("Location")
	id, ok := strings.CutPrefix(loc, "/reputations/")
	if !ok || len(id) != 8 {
		t.Errorf("Location = %q, want /reputations/<8 char id>", loc)
	}
}

func TestClientSetsPlayerCookie(t *testing.T) {
	cfg := newTestConfig(t)
	router := newRouter(cfg, make(chan error, 16))

	resp := get(t, router, "/reputations/abcdEFGH")
	defer resp.Body.Close()

	var found bool
	for _, c := range resp.Cookies() {
		if c.Name == playerCookieName && c.Value != "" && c.HttpOnly {
			found = true
		}
	}
	if !found {
		t.Errorf("no %s cookie set", playerCookieName)
	}
}

func TestPrefixedRoutes(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.prefix = "/games"
	router := newRouter(cfg, make(chan error, 16))

	for path, want := range map[string]int{
		"/games/healthz":                    http.StatusOK,
		"/games/assets/reputations/app.css": http.StatusOK,
		"/games/reputations/abcdEFGH":       http.StatusOK,
		"/healthz":                          http.StatusNotFound,
	} {
		resp := get(t, router, path)
		resp.Body.Close()

		if resp.StatusCode != want {
			t.Errorf("%s: status = %d, want %d", path, resp.StatusCode, want)
		}
	}
}

func TestRealIP(t *testing.T) {
	tests := []struct {
		name    string
		remote  string
		headers map[string]string
		want    string
	}{
		{"remote addr", "192.0.2.1:1234", nil, "192.0.2.1:1234"},
		{"cloudflare", "192.0.2.1:1234", map[string]string{"CF-Connecting-IP": "198.51.100.7"}, "198.51.100.7:1234"},
		{"x-real-ip", "192.0.2.1:1234", map[string]string{"X-Real-IP": "2001:db8::1"}, "[2001:db8::1]:1234"},
		{"bogus header", "192.0.2.1:1234", map[string]string{"X-Real-IP": "nope"}, "192.0.2.1:1234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}

			if got := realIP(r); got != tt.want {
				t.Errorf("realIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestServePageReturnsListenError(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer l.Close()

	cfg := newTestConfig(t)
	cfg.bind = "127.0.0.1"
	cfg.port = l.Addr().(*net.TCPAddr).Port

	done := make(chan error, 1)
	go func() {
		done <- ServePage(context.Background(), cfg, nil)
	}()

	select {
	case err := <-done:
		if err == nil {
			t.Error("ServePage() on a busy port returned nil")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("ServePage() did not return on a busy port")
	}
}

func TestServePageStopsOnCancel(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.bind = "127.0.0.1"
	cfg.port = 0

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- ServePage(ctx, cfg, nil)
	}()

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("ServePage() error = %v, want nil after cancel", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("ServePage() did not return after cancel")
	}
}
