package server

import (
	"encoding/base64"
	"encoding/json"
	"html/template"
	"net/http"
	"time"

	"github.com/SubhojitGuin/jalshakti-data-visualizer/internal/logger"
)

// DownloadFilename is the name offered when saving a plot
const DownloadFilename = "plot.png"

// GetContentType returns the content type for a rendered output format
func GetContentType(format string) string {
	switch format {
	case "png":
		return "image/png"
	case "html":
		return "text/html; charset=utf-8"
	case "json":
		return "application/json"
	}
	return "application/octet-stream"
}

// pngDataURI embeds PNG bytes for <img src> and download links
func pngDataURI(data []byte) template.URL {
	return template.URL("data:" + GetContentType("png") + ";base64," + base64.StdEncoding.EncodeToString(data))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", GetContentType("json"))
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// statusRecorder captures the status code written by a handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		fields := logger.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      rec.status,
			"duration_ms": time.Since(start).Milliseconds(),
		}
		if rec.status >= http.StatusInternalServerError {
			s.log.Warn("Request failed", fields)
			return
		}
		s.log.Debug("Request served", fields)
	})
}
