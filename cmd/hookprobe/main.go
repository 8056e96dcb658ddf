package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/probelabs/hookprobe/internal/app"
	"github.com/probelabs/hookprobe/internal/config"
	"github.com/probelabs/hookprobe/internal/logger"
)

const longHelp = `
hookprobe posts a single file to a webhook endpoint and shows the raw
response: status code, every header, and the body. Binary responses are
saved to disk under the name the server suggests.

Highlights:
  - One multipart POST per run, no retries, no state kept between runs.
  - JSON bodies are parsed and pretty-printed; anything else renders verbatim.
  - Extra result sinks (file, http, sqs, sns, pubsub) via a YAML sinks file.
`

var exampleUsage = strings.TrimSpace(`
  hookprobe --url https://hooks.example.com/ingest --file ./payload.bin
  hookprobe --url https://hooks.example.com/ingest --file report.pdf --output-dir ./downloads
  hookprobe --interactive
`)

type rootOptions struct {
	url         string
	file        string
	field       string
	sinksFile   string
	outputDir   string
	logLevel    string
	interactive bool
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "hookprobe: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "hookprobe",
		Short:         "Post a file to a webhook endpoint and inspect the raw response",
		Long:          strings.TrimSpace(longHelp),
		Example:       exampleUsage,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), cmd.Flags(), opts)
		},
	}

	flags := root.Flags()
	flags.StringVarP(&opts.url, "url", "u", "", "target webhook URL")
	flags.StringVarP(&opts.file, "file", "f", "", "file to upload")
	flags.StringVar(&opts.field, "field", "", "multipart field name (default \"file\")")
	flags.StringVar(&opts.sinksFile, "sinks", "", "path to a sinks YAML/JSON file")
	flags.StringVarP(&opts.outputDir, "output-dir", "o", "", "directory for saved binary responses (default \".\")")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.BoolVarP(&opts.interactive, "interactive", "i", false, "prompt for URL and file repeatedly")

	return root
}

func run(ctx context.Context, flags *pflag.FlagSet, opts *rootOptions) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyFlags(cfg, flags, opts)

	if _, err := logger.Init(cfg); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	logger.DebugObj("hookprobe starting", "config", cfg)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	probe, err := app.NewProbe(ctx, cfg, logger.Default())
	if err != nil {
		logger.ErrorObj("failed to initialize probe", "error", err)
		return err
	}
	defer probe.Close()

	if opts.interactive {
		return probe.RunInteractive(ctx, opts.url)
	}
	return probe.RunOnce(ctx, opts.url, opts.file)
}

// applyFlags lets explicitly set flags override file/env configuration.
func applyFlags(cfg *config.Config, flags *pflag.FlagSet, opts *rootOptions) {
	if flags.Changed("field") {
		cfg.FieldName = opts.field
	}
	if flags.Changed("sinks") {
		cfg.SinksFile = opts.sinksFile
	}
	if flags.Changed("output-dir") {
		cfg.OutputDir = opts.outputDir
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
}
