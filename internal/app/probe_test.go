package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/probelabs/hookprobe/internal/config"
	"github.com/probelabs/hookprobe/internal/domain"
	"github.com/probelabs/hookprobe/internal/logger"
	"github.com/probelabs/hookprobe/internal/probe"
	"github.com/probelabs/hookprobe/pkg/sinks"
)

func testConfig(outputDir string) *config.Config {
	return &config.Config{
		AppName:        "hookprobe",
		LogLevel:       "error",
		FieldName:      domain.DefaultFieldName,
		OutputDir:      outputDir,
		RequestTimeout: 2 * time.Second,
	}
}

func testProbe(t *testing.T, cfg *config.Config, panel *strings.Builder, in string) *Probe {
	t.Helper()
	built := []sinks.Sink{
		sinks.NewTerminal("panel", panel),
		sinks.NewFile("downloads", cfg.OutputDir, nil),
	}
	return &Probe{
		cfg:     cfg,
		log:     logger.NopLogger{},
		session: probe.NewSession(nil),
		fanout:  sinks.NewFanout(built),
		in:      strings.NewReader(in),
		notify:  &strings.Builder{},
	}
}

func uploadFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "payload.txt")
	if err := os.WriteFile(path, []byte("payload"), 0o644); err != nil {
		t.Fatalf("write upload file: %v", err)
	}
	return path
}

func TestRunOnceRendersJSONResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	var panel strings.Builder
	p := testProbe(t, testConfig(t.TempDir()), &panel, "")

	if err := p.RunOnce(context.Background(), srv.URL, uploadFile(t)); err != nil {
		t.Fatalf("RunOnce: %v", err)
	}
	got := panel.String()
	if !strings.Contains(got, "Status: 200 OK") || !strings.Contains(got, `"ok": true`) {
		t.Fatalf("panel output wrong:\n%s", got)
	}
}

func TestRunOnceSavesBinaryDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="x.pdf"`)
		_, _ = w.Write([]byte("%PDF-fake"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	var panel strings.Builder
	p := testProbe(t, testConfig(dir), &panel, "")

	if err := p.RunOnce(context.Background(), srv.URL, uploadFile(t)); err != nil {
		t.Fatalf("RunOnce: %v", err)
	}

	saved, err := os.ReadFile(filepath.Join(dir, "x.pdf"))
	if err != nil {
		t.Fatalf("download not saved: %v", err)
	}
	if string(saved) != "%PDF-fake" {
		t.Fatalf("saved body mismatch: %q", saved)
	}
}

func TestRunOnceValidationFailsFast(t *testing.T) {
	var panel strings.Builder
	p := testProbe(t, testConfig(t.TempDir()), &panel, "")

	err := p.RunOnce(context.Background(), "http://example.com/hook", "")
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if panel.Len() != 0 {
		t.Fatalf("validation failure must not render a result")
	}
}

func TestRunInteractiveSubmitsAndExits(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("accepted"))
	}))
	defer srv.Close()

	upload := uploadFile(t)
	// one submission, then end of input stops the loop
	input := srv.URL + "\n" + upload + "\n"

	var panel strings.Builder
	p := testProbe(t, testConfig(t.TempDir()), &panel, input)

	if err := p.RunInteractive(context.Background(), ""); err != nil {
		t.Fatalf("RunInteractive: %v", err)
	}
	if !strings.Contains(panel.String(), "accepted") {
		t.Fatalf("interactive run did not render the result:\n%s", panel.String())
	}
}

func TestRunInteractiveRecoversFromFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("second try"))
	}))
	defer srv.Close()

	upload := uploadFile(t)
	// first submission points at a missing file, second succeeds
	input := srv.URL + "\nno-such-file.bin\n" + srv.URL + "\n" + upload + "\n"

	var panel strings.Builder
	p := testProbe(t, testConfig(t.TempDir()), &panel, input)

	if err := p.RunInteractive(context.Background(), ""); err != nil {
		t.Fatalf("RunInteractive: %v", err)
	}
	if !strings.Contains(panel.String(), "second try") {
		t.Fatalf("loop did not recover after a failed submission:\n%s", panel.String())
	}
}

func TestNewProbeRequiresConfig(t *testing.T) {
	if _, err := NewProbe(context.Background(), nil, nil); err == nil {
		t.Fatalf("expected error for nil config")
	}
}
