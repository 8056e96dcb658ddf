package sinks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/probelabs/hookprobe/internal/classify"
	"github.com/probelabs/hookprobe/internal/domain"
)

// fileSink materializes binary results as files on disk, the download action
// of the result panel. Non-binary results are skipped.
type fileSink struct {
	id  string
	typ string
	dir string
	log Logger
}

func newFileSink(_ context.Context, cfg SinkConfig, log Logger) (Sink, error) {
	dir := "."
	if cfg.File != nil && cfg.File.Dir != "" {
		dir = cfg.File.Dir
	}
	return NewFile(cfg.ID, dir, log), nil
}

// NewFile builds a file sink saving binary bodies under dir.
func NewFile(id, dir string, log Logger) Sink {
	if id == "" {
		id = TypeFile
	}
	if dir == "" {
		dir = "."
	}
	return &fileSink{id: id, typ: TypeFile, dir: dir, log: ensureLogger(log)}
}

func (f *fileSink) ID() string   { return f.id }
func (f *fileSink) Type() string { return f.typ }

// Deliver writes the binary body under the suggested (or default) file name
// and closes the handle immediately, so repeated saves never accumulate open
// descriptors.
func (f *fileSink) Deliver(_ context.Context, res *domain.WebhookResult) error {
	if !res.IsBinary() {
		f.log.DebugObj("file sink skipping non-binary result", "file_sink_skip", map[string]any{
			"sink_id": f.id,
			"kind":    res.Kind.String(),
		})
		return nil
	}

	name := res.SuggestedFileName
	if name == "" {
		name = classify.DefaultFileName
	}
	// strip any path components a hostile disposition header may carry
	name = filepath.Base(name)

	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	path := filepath.Join(f.dir, name)
	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	if _, err := out.Write(res.Binary); err != nil {
		out.Close()
		return fmt.Errorf("write file: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close file: %w", err)
	}

	f.log.InfoObj("binary body saved", "file_sink_saved", map[string]any{
		"sink_id": f.id,
		"path":    path,
		"bytes":   len(res.Binary),
	})
	return nil
}
