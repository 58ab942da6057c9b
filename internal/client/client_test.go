package client

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/SubhojitGuin/jalshakti-data-visualizer/internal/charts"
	"github.com/SubhojitGuin/jalshakti-data-visualizer/internal/config"
	"github.com/SubhojitGuin/jalshakti-data-visualizer/internal/server"
	"github.com/SubhojitGuin/jalshakti-data-visualizer/internal/session"
)

func newTestAPI(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := &config.Config{
		MaxUploadMB: 1,
		SessionTTL:  time.Minute,
		ChartWidth:  640,
		ChartHeight: 480,
		PageTitle:   "test",
	}
	srv, err := server.NewServer(cfg, session.NewStore(cfg.SessionTTL))
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func TestRender(t *testing.T) {
	ts := newTestAPI(t)
	c := New(ts.URL + "/")

	png, err := c.Render(context.Background(), "levels.csv", []byte("a,b\n1,10\n2,20\n3,15\n"), "a", "b", "Line Plot")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !bytes.HasPrefix(png, charts.PNGSignature) {
		t.Error("Expected PNG bytes")
	}
}

func TestRenderAPIError(t *testing.T) {
	ts := newTestAPI(t)
	c := New(ts.URL)

	tests := []struct {
		name     string
		filename string
		data     string
		status   int
		code     string
	}{
		{"unsupported", "levels.txt", "a,b\n1,2\n", http.StatusUnsupportedMediaType, "unsupported_format"},
		{"empty", "levels.csv", "", http.StatusUnprocessableEntity, "empty_dataset"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Render(context.Background(), tt.filename, []byte(tt.data), "a", "b", "line")
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("Expected *APIError, got %v", err)
			}
			if apiErr.Status != tt.status || apiErr.Code != tt.code {
				t.Errorf("Expected %d %s, got %d %s", tt.status, tt.code, apiErr.Status, apiErr.Code)
			}
		})
	}
}

func TestRenderUnexpectedResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gateway down", http.StatusBadGateway)
	}))
	defer ts.Close()

	_, err := New(ts.URL).Render(context.Background(), "a.csv", []byte("a\n1\n"), "a", "a", "line")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected *APIError, got %v", err)
	}
	if apiErr.Code != "unexpected_response" || apiErr.Message != "gateway down" {
		t.Errorf("Unexpected error %+v", apiErr)
	}
}

func TestHealth(t *testing.T) {
	ts := newTestAPI(t)
	h, err := New(ts.URL).Health(context.Background())
	if err != nil {
		t.Fatalf("Health failed: %v", err)
	}
	if h.Status != "healthy" || h.Version == "" {
		t.Errorf("Unexpected health %+v", h)
	}
}

func TestRenderRetrySendsWholeFile(t *testing.T) {
	data := []byte("a,b\n1,10\n2,20\n")
	var calls int32

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			// drop the connection without answering
			conn, _, err := w.(http.Hijacker).Hijack()
			if err == nil {
				conn.Close()
			}
			return
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer file.Close()
		got, _ := io.ReadAll(file)
		if !bytes.Equal(got, data) {
			http.Error(w, "file arrived truncated", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(charts.PNGSignature)
	}))
	defer ts.Close()

	png, err := New(ts.URL).Render(context.Background(), "levels.csv", data, "a", "b", "Line")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !bytes.Equal(png, charts.PNGSignature) {
		t.Errorf("Unexpected body %q", png)
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Errorf("Expected one retry, got %d requests", n)
	}
}
