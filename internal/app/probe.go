package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/probelabs/hookprobe/internal/config"
	"github.com/probelabs/hookprobe/internal/domain"
	"github.com/probelabs/hookprobe/internal/logger"
	"github.com/probelabs/hookprobe/internal/probe"
	"github.com/probelabs/hookprobe/pkg/httpclient"
	"github.com/probelabs/hookprobe/pkg/sinks"
)

// Probe is the application runtime. It owns the single-request session and
// the sink fanout that presents each resolved result.
type Probe struct {
	cfg     *config.Config
	log     logger.Logger
	session *probe.Session
	fanout  *sinks.Fanout

	in     io.Reader
	notify io.Writer
}

// NewProbe builds the runtime from config: transport, session, and sinks.
// Without a sinks file the result goes to the terminal panel and binary
// bodies are saved under the configured output directory.
func NewProbe(ctx context.Context, cfg *config.Config, log logger.Logger) (*Probe, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	client := httpclient.NewRestyClient(cfg.RequestTimeout)
	session := probe.NewSession(probe.NewSubmitter(client))

	built, err := buildSinks(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	log.InfoObj("sinks ready", "sinks_meta", map[string]any{
		"count": len(built),
	})

	return &Probe{
		cfg:     cfg,
		log:     log,
		session: session,
		fanout:  sinks.NewFanout(built),
		in:      os.Stdin,
		notify:  os.Stderr,
	}, nil
}

func buildSinks(ctx context.Context, cfg *config.Config, log logger.Logger) ([]sinks.Sink, error) {
	if cfg.SinksFile == "" {
		return []sinks.Sink{
			sinks.NewTerminal("panel", os.Stdout),
			sinks.NewFile("downloads", cfg.OutputDir, log),
		}, nil
	}

	reg, err := sinks.LoadRegistry(cfg.SinksFile)
	if err != nil {
		return nil, fmt.Errorf("load sinks registry: %w", err)
	}
	built, err := sinks.BuildAll(ctx, sinks.DefaultRegistry(), reg.Enabled(), log)
	if err != nil {
		return nil, fmt.Errorf("build sinks: %w", err)
	}
	if len(built) == 0 {
		return nil, fmt.Errorf("no sinks enabled")
	}
	return built, nil
}

// Close releases sinks holding external connections.
func (p *Probe) Close() error {
	return p.fanout.Close()
}

// RunOnce performs a single submission and delivers the result.
func (p *Probe) RunOnce(ctx context.Context, url, filePath string) error {
	ref, err := probe.LoadFileRef(filePath)
	if err != nil {
		return err
	}

	req := domain.PendingRequest{
		TargetURL: url,
		File:      ref,
		Field:     p.cfg.FieldName,
	}
	result, err := p.session.Submit(ctx, req)
	if err != nil {
		return err
	}

	count, err := p.fanout.Deliver(ctx, result)
	p.log.DebugObj("result delivered", "delivery_meta", map[string]any{
		"sinks_ok": count,
		"status":   result.StatusCode,
	})
	if err != nil {
		return fmt.Errorf("deliver result: %w", err)
	}
	return nil
}

// RunInteractive replays the submit loop: prompt for URL and file, submit,
// render, repeat. A blank URL ends the loop. Errors are surfaced as
// transient notices; the loop continues.
func (p *Probe) RunInteractive(ctx context.Context, defaultURL string) error {
	scanner := bufio.NewScanner(p.in)
	lastURL := defaultURL

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		url, ok := p.prompt(scanner, promptLabel("url", lastURL))
		if !ok {
			return nil
		}
		if url == "" {
			url = lastURL
		}
		if url == "" {
			return nil
		}

		file, ok := p.prompt(scanner, "file> ")
		if !ok {
			return nil
		}

		if err := p.RunOnce(ctx, url, file); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			p.report(err)
			continue
		}
		lastURL = url
	}
}

func (p *Probe) prompt(scanner *bufio.Scanner, label string) (string, bool) {
	fmt.Fprint(p.notify, label)
	if !scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(scanner.Text()), true
}

func promptLabel(name, current string) string {
	if current == "" {
		return name + "> "
	}
	return fmt.Sprintf("%s [%s]> ", name, current)
}

// report surfaces a submission failure as a transient user notice, by error
// class: validation and parse failures carry their own wording, transport
// failures stay generic since no status code exists.
func (p *Probe) report(err error) {
	switch {
	case errors.Is(err, domain.ErrInFlight):
		fmt.Fprintln(p.notify, "notice: a submission is already in flight, wait for it to finish")
	case domain.IsValidation(err):
		fmt.Fprintf(p.notify, "notice: %v\n", err)
	case domain.IsParse(err):
		fmt.Fprintf(p.notify, "notice: %v\n", err)
	case domain.IsNetwork(err):
		fmt.Fprintf(p.notify, "notice: request failed before a response was received: %v\n", err)
	default:
		fmt.Fprintf(p.notify, "notice: %v\n", err)
	}
	p.log.WarnObj("submission failed", "submit_error", map[string]any{
		"error": err.Error(),
	})
}
