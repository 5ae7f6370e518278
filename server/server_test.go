package server

import (
	"context"
	"math"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/AnkushinDaniil/diffraction/entity/parameters"
)

func newServer(t *testing.T) *Server {
	t.Helper()
	p := parameters.Default()
	p.Samples = 101
	p.Resolution = 21
	s, err := New(p)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	return s
}

func TestHandlePage(t *testing.T) {
	s := newServer(t)
	req := httptest.NewRequest(http.MethodGet, "/?slit=3.04e-6&wavelength=6.5e-7", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, `<form method="get"`) || !strings.Contains(body, "echarts") {
		t.Fatalf("page missing form or charts")
	}
	if !strings.Contains(body, "3.0 µm") || !strings.Contains(body, "650 nm") {
		t.Fatalf("page does not show snapped parameters")
	}

	snap := s.sess.Snapshot()
	if snap.Wavelength != parameters.WavelengthRange.Snap(6.5e-7) || snap.SlitWidth != parameters.SlitWidthRange.Snap(3.04e-6) {
		t.Fatalf("session got slit=%g wavelength=%g", snap.SlitWidth, snap.Wavelength)
	}
}

func TestHandlePage_Defaults(t *testing.T) {
	s := newServer(t)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d", rec.Code)
	}
	if snap := s.sess.Snapshot(); math.Abs(snap.SlitWidth-parameters.DefaultSlitWidth) > 1e-15 {
		t.Fatalf("slit=%g", snap.SlitWidth)
	}
}

func TestHandlePage_BadQuery(t *testing.T) {
	s := newServer(t)
	for _, q := range []string{"slit=wide", "wavelength=red"} {
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?"+q, nil))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: status=%d", q, rec.Code)
		}
	}
}

func TestHandleCSV(t *testing.T) {
	s := newServer(t)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/data.csv?wavelength=4e-7", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/csv" {
		t.Fatalf("content type=%q", ct)
	}
	if !strings.HasPrefix(rec.Body.String(), "angle,intensity\n") {
		t.Fatalf("body starts %q", rec.Body.String()[:20])
	}
}

func TestRevisionAdvancesPerUpdate(t *testing.T) {
	s := newServer(t)
	tests := []struct {
		path string
		want string
	}{
		{"/", "1"},
		{"/data.csv?slit=2e-6", "2"},
		{"/?wavelength=x", ""},
		{"/", "3"},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
		if got := rec.Header().Get(revisionHeader); got != tt.want {
			t.Fatalf("%s: revision=%q want %q", tt.path, got, tt.want)
		}
	}
}

func TestNotFound(t *testing.T) {
	s := newServer(t)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status=%d", rec.Code)
	}
}

func TestListenAndServe_Shutdown(t *testing.T) {
	s := newServer(t)
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := l.Addr().String()
	l.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx, addr) }()

	var resp *http.Response
	for i := 0; i < 50; i++ {
		resp, err = http.Get("http://" + addr + "/data.csv")
		if err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("listen: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("server did not stop")
	}
}

func TestInjectAfterBody(t *testing.T) {
	got := string(injectAfterBody([]byte("<html><body><div></div></body></html>"), []byte("<form></form>")))
	if got != "<html><body><form></form><div></div></body></html>" {
		t.Fatalf("got=%s", got)
	}
	if got := string(injectAfterBody([]byte("<div></div>"), []byte("<p>"))); got != "<p><div></div>" {
		t.Fatalf("got=%s", got)
	}
}
