package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/normdoc"
	"github.com/fwojciec/normdoc/crawl"
	"github.com/fwojciec/normdoc/goquery"
	"github.com/fwojciec/normdoc/htmltomarkdown"
	normdochttp "github.com/fwojciec/normdoc/http"
	normdocprom "github.com/fwojciec/normdoc/prometheus"
	normdocslog "github.com/fwojciec/normdoc/slog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Stdin is read by the mcp command. Set before calling Run().
	Stdin io.Reader

	// Fetcher replaces the HTTP fetcher for end-to-end testing. It is still
	// wrapped with retries, logging and metrics.
	Fetcher normdoc.Fetcher

	// Service replaces the whole document service for end-to-end testing.
	Service normdoc.DocumentService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Stdin: os.Stdin,
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("normdoc"),
		kong.Description("Query fire safety regulatory documents published on meganorm.ru"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'normdoc --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger, err := newLogger(stderr, cli.LogLevel, cli.LogFormat)
	if err != nil {
		return err
	}
	deps.Logger = logger

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	deps.Registry = registry
	deps.Metrics = normdocprom.NewMetrics(registry)

	svc := m.Service
	if svc == nil {
		fetcher := m.newFetcher(cli, deps)
		defer fetcher.Close()

		catalog := crawl.NewCatalog(fetcher, goquery.NewListingExtractor(), goquery.NewDetailExtractor())
		catalog.Origin = cli.Origin
		catalog.Converter = htmltomarkdown.NewConverter()
		catalog.Logger = logger
		svc = catalog
	}
	deps.Service = normdocslog.NewLoggingDocumentService(svc, logger)

	return kongCtx.Run(deps)
}

// newFetcher builds the upstream fetch chain: rate-limited HTTP requests,
// counted per attempt, retried, and logged once per call.
func (m *Main) newFetcher(cli *CLI, deps *Dependencies) normdoc.Fetcher {
	var f normdoc.Fetcher = m.Fetcher
	if f == nil {
		opts := []normdochttp.Option{normdochttp.WithTimeout(cli.Timeout)}
		if cli.RPS > 0 {
			opts = append(opts, normdochttp.WithLimiter(crawl.NewDomainLimiterBurst(cli.RPS, cli.Burst)))
		}
		f = normdochttp.NewFetcher(opts...)
	}
	f = normdocprom.NewInstrumentedFetcher(f, deps.Metrics)

	retry := crawl.NewRetryFetcher(f)
	retry.Attempts = cli.Attempts
	retry.Delay = cli.RetryDelay
	retry.OnRetry = func(url string, attempt int, err error) {
		deps.Logger.Warn("fetch attempt failed", "url", url, "attempt", attempt, "err", err)
	}

	return normdocslog.NewLoggingFetcher(retry, deps.Logger)
}

func newLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	opts := &slog.HandlerOptions{Level: lvl}

	switch strings.ToLower(format) {
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case "text", "":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}
}
