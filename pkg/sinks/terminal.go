package sinks

import (
	"context"
	"io"
	"os"

	"github.com/probelabs/hookprobe/internal/domain"
	"github.com/probelabs/hookprobe/internal/render"
)

// terminalSink renders the result panel to a writer. It is the default sink
// when no sinks file is configured.
type terminalSink struct {
	id       string
	typ      string
	renderer *render.Renderer
}

func newTerminalSink(_ context.Context, cfg SinkConfig, _ Logger) (Sink, error) {
	return NewTerminal(cfg.ID, os.Stdout), nil
}

// NewTerminal builds a terminal sink writing the result panel to out.
func NewTerminal(id string, out io.Writer) Sink {
	if id == "" {
		id = TypeTerminal
	}
	return &terminalSink{
		id:       id,
		typ:      TypeTerminal,
		renderer: render.New(out),
	}
}

func (t *terminalSink) ID() string   { return t.id }
func (t *terminalSink) Type() string { return t.typ }

func (t *terminalSink) Deliver(_ context.Context, res *domain.WebhookResult) error {
	return t.renderer.Result(res)
}
