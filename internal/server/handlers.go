package server

import (
	"bytes"
	"errors"
	"html/template"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SubhojitGuin/jalshakti-data-visualizer/internal/charts"
	"github.com/SubhojitGuin/jalshakti-data-visualizer/internal/dataset"
	"github.com/SubhojitGuin/jalshakti-data-visualizer/internal/logger"
	"github.com/SubhojitGuin/jalshakti-data-visualizer/internal/session"
)

// SessionCookie holds the id of the browser's session
const SessionCookie = "jalsarthi_session"

// multipartMemory is how much of a multipart body is kept in memory
const multipartMemory = 32 << 20

type columnOption struct {
	Name string
	Type string
}

type kindOption struct {
	Value    string
	Label    string
	Selected bool
}

type plotView struct {
	Title       string
	ImageURI    template.URL
	Filename    string
	Width       int
	Height      int
	Interactive string
}

// pageData is everything the page template shows
type pageData struct {
	Title       string
	Subtitle    string
	Version     string
	Accept      string
	MaxUploadMB int64
	Help        template.HTML

	Filename string
	Rows     int
	Columns  []columnOption
	Kinds    []kindOption

	SelectedX string
	SelectedY string

	Error string
	Plot  *plotView
}

// HandleRoot serves the upload form and, once a file is loaded, the plot form
func (s *Server) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := s.session(w, r)
	page := s.newPage()
	status := http.StatusOK
	if _, err := s.loadSessionDataset(id, &page); err != nil && !errors.Is(err, errNoUpload) {
		status = s.pageError(&page, err, "Stored upload could not be loaded")
	}
	s.renderPage(w, status, page)
}

// HandleUpload validates the uploaded file and keeps it for the session
func (s *Server) HandleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := s.session(w, r)
	filename, data, err := s.readUpload(w, r)
	if err == nil {
		_, err = dataset.Load(data, filename)
	}
	if err != nil {
		page := s.newPage()
		// the previous upload, if any, stays usable
		s.loadSessionDataset(id, &page)
		status := s.pageError(&page, err, "Upload rejected", logger.Fields{"file": filename})
		s.renderPage(w, status, page)
		return
	}

	s.Sessions.Put(id, session.Upload{Filename: filename, Data: data})
	s.log.Info("File uploaded", logger.Fields{
		"file":  filename,
		"bytes": len(data),
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandlePlot renders the selected columns of the session's file
func (s *Server) HandlePlot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := s.session(w, r)
	page := s.newPage()

	if err := r.ParseForm(); err != nil {
		s.renderPage(w, s.pageError(&page, badRequest("invalid form: %v", err), "Plot rejected"), page)
		return
	}
	x, y := r.PostFormValue("x"), r.PostFormValue("y")
	page.SelectedX, page.SelectedY = x, y

	ds, err := s.loadSessionDataset(id, &page)
	if err != nil {
		s.renderPage(w, s.pageError(&page, err, "Plot rejected"), page)
		return
	}
	// loading resets the selection to the first column
	page.SelectedX, page.SelectedY = x, y

	kind, err := charts.ParseKind(r.PostFormValue("kind"))
	if err != nil {
		s.renderPage(w, s.pageError(&page, badRequest("%v", err), "Plot rejected"), page)
		return
	}
	page.Kinds = kindOptions(kind)

	start := time.Now()
	chart, err := s.Renderer.Render(ds, x, y, kind)
	if err != nil {
		s.renderPage(w, s.pageError(&page, err, "Plot failed", logger.Fields{"x": x, "y": y, "kind": kind.String()}), page)
		return
	}
	png, err := charts.Encode(chart)
	if err != nil {
		s.renderPage(w, s.pageError(&page, err, "Plot failed", logger.Fields{"x": x, "y": y, "kind": kind.String()}), page)
		return
	}

	interactive, err := charts.Interactive(chart)
	if err != nil {
		s.log.Warn("Interactive view unavailable", logger.Fields{"error": err.Error()})
	}

	page.Plot = &plotView{
		Title:       chart.Title,
		ImageURI:    pngDataURI(png),
		Filename:    DownloadFilename,
		Width:       s.Config.ChartWidth,
		Height:      s.Config.ChartHeight,
		Interactive: interactive,
	}
	s.log.Info("Plot generated", logger.Fields{
		"kind":        kind.String(),
		"x":           x,
		"y":           y,
		"bytes":       len(png),
		"duration_ms": time.Since(start).Milliseconds(),
	})
	s.renderPage(w, http.StatusOK, page)
}

// HandleReset forgets the session's file
func (s *Server) HandleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := s.session(w, r)
	s.Sessions.Clear(id)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleRenderAPI loads, renders and encodes in one stateless request and
// returns the PNG as an attachment.
func (s *Server) HandleRenderAPI(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	png, err := s.renderUpload(w, r)
	if err != nil {
		f := userMessage(err)
		s.log.Warn("Render request failed", logger.Fields{
			"error":  f.Code,
			"status": f.Status,
			"cause":  err.Error(),
		})
		writeJSON(w, f.Status, f)
		return
	}

	w.Header().Set("Content-Type", GetContentType("png"))
	w.Header().Set("Content-Disposition", `attachment; filename="`+DownloadFilename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

func (s *Server) renderUpload(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	filename, data, err := s.readUpload(w, r)
	if err != nil {
		return nil, err
	}
	ds, err := dataset.Load(data, filename)
	if err != nil {
		return nil, err
	}
	kind, err := charts.ParseKind(r.FormValue("kind"))
	if err != nil {
		return nil, badRequest("%v", err)
	}
	chart, err := s.Renderer.Render(ds, r.FormValue("x"), r.FormValue("y"), kind)
	if err != nil {
		return nil, err
	}
	return charts.Encode(chart)
}

// HandleHealth provides health check endpoint
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"version":   s.Version,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"sessions":  s.Sessions.Len(),
	})
}

// session resolves the request's session and refreshes its cookie
func (s *Server) session(w http.ResponseWriter, r *http.Request) uuid.UUID {
	raw := ""
	if c, err := r.Cookie(SessionCookie); err == nil {
		raw = c.Value
	}
	id, _ := s.Sessions.Resolve(raw)
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id.String(),
		Path:     "/",
		MaxAge:   int(s.Config.SessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// readUpload returns the "file" form field. The extension is checked before
// the body is read.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (string, []byte, error) {
	limit := s.Config.MaxUploadBytes()
	if r.ContentLength > limit {
		return "", nil, &http.MaxBytesError{Limit: limit}
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return "", nil, err
		}
		return "", nil, badRequest("expected a multipart form with a file")
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil, badRequest("choose a CSV or XLSX file to upload")
		}
		return "", nil, badRequest("invalid upload: %v", err)
	}
	defer file.Close()

	if _, err := dataset.DetectFormat(header.Filename); err != nil {
		return header.Filename, nil, err
	}
	data, err := readAll(file, header)
	if err != nil {
		return header.Filename, nil, err
	}
	return header.Filename, data, nil
}

func readAll(file multipart.File, header *multipart.FileHeader) ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, header.Size))
	if _, err := io.Copy(buf, file); err != nil {
		return nil, badRequest("failed to read upload: %v", err)
	}
	return buf.Bytes(), nil
}

// loadSessionDataset loads the session's upload and fills the column and
// kind selectors.
func (s *Server) loadSessionDataset(id uuid.UUID, page *pageData) (*dataset.Dataset, error) {
	upload, ok := s.Sessions.Get(id)
	if !ok {
		return nil, errNoUpload
	}
	page.Filename = upload.Filename

	ds, err := dataset.Load(upload.Data, upload.Filename)
	if err != nil {
		return nil, err
	}

	page.Rows = ds.NumRows()
	page.Columns = make([]columnOption, 0, ds.NumColumns())
	for _, name := range ds.Columns() {
		col, _ := ds.Column(name)
		page.Columns = append(page.Columns, columnOption{Name: name, Type: col.Type.String()})
	}
	if len(page.Columns) > 0 {
		page.SelectedX = page.Columns[0].Name
		page.SelectedY = page.Columns[0].Name
	}
	page.Kinds = kindOptions(charts.Line)
	return ds, nil
}

func (s *Server) newPage() pageData {
	return pageData{
		Title:       s.Config.PageTitle,
		Subtitle:    "Visualize your data with JalSarthi",
		Version:     s.Version,
		Accept:      strings.Join(dataset.Extensions, ","),
		MaxUploadMB: s.Config.MaxUploadMB,
		Help:        s.help,
	}
}

func kindOptions(selected charts.Kind) []kindOption {
	kinds := charts.Kinds()
	options := make([]kindOption, len(kinds))
	for i, k := range kinds {
		options[i] = kindOption{Value: k.Label(), Label: k.Label(), Selected: k == selected}
	}
	return options
}

// pageError logs err with its kind and puts the user message on the page
func (s *Server) pageError(page *pageData, err error, msg string, fields ...logger.Fields) int {
	f := userMessage(err)
	logFields := logger.Fields{
		"error":  f.Code,
		"status": f.Status,
		"cause":  err.Error(),
	}
	for _, extra := range fields {
		for k, v := range extra {
			logFields[k] = v
		}
	}
	if f.Status >= http.StatusInternalServerError {
		s.log.Error(msg, err, logFields)
	} else {
		s.log.Warn(msg, logFields)
	}
	page.Error = f.Message
	return f.Status
}

func (s *Server) renderPage(w http.ResponseWriter, status int, page pageData) {
	var buf bytes.Buffer
	if err := s.page.Execute(&buf, page); err != nil {
		s.log.Error("Failed to render page", err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", GetContentType("html"))
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}
