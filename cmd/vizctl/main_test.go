package main

import (
	"bytes"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/SubhojitGuin/jalshakti-data-visualizer/internal/charts"
	"github.com/SubhojitGuin/jalshakti-data-visualizer/internal/config"
	"github.com/SubhojitGuin/jalshakti-data-visualizer/internal/dataset"
	"github.com/SubhojitGuin/jalshakti-data-visualizer/internal/server"
	"github.com/SubhojitGuin/jalshakti-data-visualizer/internal/session"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestColumnsCommand(t *testing.T) {
	path := writeFile(t, "levels.csv", "station,level,date\nPune,3.2,2024-06-01\nNagpur,,2024-06-02\n")

	out, err := execute(t, "columns", path)
	if err != nil {
		t.Fatalf("columns failed: %v", err)
	}
	for _, want := range []string{"levels.csv: 2 rows, 3 columns", "station", "text", "number", "time"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestColumnsCommandErrors(t *testing.T) {
	if _, err := execute(t, "columns"); err == nil {
		t.Error("Expected an error without a file argument")
	}

	path := writeFile(t, "notes.txt", "a\n1\n")
	_, err := execute(t, "columns", path)
	if !errors.Is(err, dataset.ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestPlotCommandLocal(t *testing.T) {
	path := writeFile(t, "levels.csv", "a,b\n1,10\n2,20\n3,15\n")
	out := filepath.Join(t.TempDir(), "plot.png")

	stdout, err := execute(t, "plot", path, "--x", "a", "--y", "b", "--kind", "Bar Plot", "--out", out, "--width", "320", "--height", "240")
	if err != nil {
		t.Fatalf("plot failed: %v", err)
	}
	if !strings.Contains(stdout, "Wrote "+out) {
		t.Errorf("Unexpected output %q", stdout)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, charts.PNGSignature) {
		t.Error("Expected a PNG file")
	}
}

func TestPlotCommandErrors(t *testing.T) {
	path := writeFile(t, "levels.csv", "a,b\n1,10\n")
	out := filepath.Join(t.TempDir(), "plot.png")

	if _, err := execute(t, "plot", path, "--x", "a", "--y", "b", "--kind", "pie", "--out", out); err == nil {
		t.Error("Expected an error for an unknown kind")
	}
	if _, err := execute(t, "plot", path, "--y", "b", "--out", out); err == nil {
		t.Error("Expected an error without --x")
	}
	_, err := execute(t, "plot", path, "--x", "a", "--y", "missing", "--out", out)
	if !errors.Is(err, charts.ErrInvalidColumnSelection) {
		t.Errorf("Expected ErrInvalidColumnSelection, got %v", err)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("No file must be written on failure")
	}
}

func TestPlotCommandRemote(t *testing.T) {
	cfg := &config.Config{
		MaxUploadMB: 1,
		SessionTTL:  time.Minute,
		ChartWidth:  640,
		ChartHeight: 480,
	}
	srv, err := server.NewServer(cfg, session.NewStore(cfg.SessionTTL))
	if err != nil {
		t.Fatal(err)
	}
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	path := writeFile(t, "levels.csv", "a,b\n1,10\n2,20\n")
	out := filepath.Join(t.TempDir(), "remote.png")

	if _, err := execute(t, "plot", path, "--x", "a", "--y", "b", "--kind", "scatter", "--out", out, "--server", ts.URL); err != nil {
		t.Fatalf("remote plot failed: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, charts.PNGSignature) {
		t.Error("Expected a PNG file from the server")
	}
}
