package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/sitescrape"
	"github.com/fwojciec/sitescrape/gemini"
	"github.com/fwojciec/sitescrape/goquery"
	"github.com/fwojciec/sitescrape/htmltomarkdown"
	schttp "github.com/fwojciec/sitescrape/http"
	"github.com/fwojciec/sitescrape/readability"
	"github.com/fwojciec/sitescrape/rod"
	"github.com/fwojciec/sitescrape/scrape"
	scslog "github.com/fwojciec/sitescrape/slog"
	"github.com/fwojciec/sitescrape/sqlite"
	"github.com/fwojciec/sitescrape/trafilatura"
	"google.golang.org/genai"
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
	// Default database path. Overridden by --db or SITESCRAPE_DB.
	DBPath string

	// SQLite database, opened only by commands that need history.
	DB *sqlite.DB

	// Fetcher opened for the current command.
	Fetcher sitescrape.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close releases the browser and the database.
func (m *Main) Close() error {
	var firstErr error
	if m.Fetcher != nil {
		if err := m.Fetcher.Close(); err != nil {
			firstErr = err
		}
		m.Fetcher = nil
	}
	if m.DB != nil {
		if err := m.DB.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		m.DB = nil
	}
	return firstErr
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("sitescrape"),
		kong.Description("Extract structured fields from web pages and classify business websites."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Vars{
			"db_path": m.DBPath,
			"model":   gemini.DefaultModel,
		},
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'sitescrape --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	level := slog.LevelWarn
	if cli.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Logger = logger

	defer m.Close()

	if (cmd == "scrape" && cli.Scrape.Save) || cmd == "history" {
		if err := os.MkdirAll(filepath.Dir(cli.DB), 0o755); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
		m.DB = sqlite.NewDB(cli.DB)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set SITESCRAPE_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", cli.DB, err)
		}
		deps.Extractions = sqlite.NewExtractionService(m.DB)
	}

	switch cmd {
	case "scrape":
		strategy, err := sitescrape.ParseStrategy(cli.Scrape.Strategy)
		if err != nil {
			return err
		}
		if strategy == sitescrape.StrategyStatic && cli.Scrape.Wait != "" {
			fmt.Fprintln(stderr, "Warning: --wait is ignored with --strategy static; use --strategy browser")
		}
		fetcher, err := newFetcher(strategy, cli.Scrape)
		if err != nil {
			if strategy == sitescrape.StrategyBrowser {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			}
			return fmt.Errorf("failed to create fetcher: %w", err)
		}
		m.Fetcher = fetcher
		deps.Scraper = m.newScraper(strategy, cli.Debug, logger)
		if cli.Scrape.Save {
			deps.Scraper.Extractions = deps.Extractions
		}

	case "prompt", "classify":
		if cli.Prompt.URL != "" || cli.Classify.URL != "" {
			m.Fetcher = schttp.NewFetcher()
			deps.Scraper = m.newScraper(sitescrape.StrategyStatic, cli.Debug, logger)
		}
	}

	if cmd == "classify" {
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}

		var classifier sitescrape.Classifier = gemini.NewClassifier(client, cli.Classify.Model)
		if cli.Debug {
			classifier = scslog.NewLoggingClassifier(classifier, logger)
		}
		deps.Classifier = classifier
	}

	return kongCtx.Run(deps)
}

// newScraper wires the opened fetcher to the extraction adapters.
func (m *Main) newScraper(strategy sitescrape.Strategy, debug bool, logger *slog.Logger) *scrape.Scraper {
	fetcher := m.Fetcher
	if debug {
		fetcher = scslog.NewLoggingFetcher(fetcher, logger)
	}
	return &scrape.Scraper{
		Fetcher:   fetcher,
		Strategy:  strategy,
		Fields:    goquery.NewExtractor(logger),
		Content:   trafilatura.NewExtractor(),
		Fallback:  readability.NewExtractor(),
		Converter: htmltomarkdown.NewConverter(),
		Logger:    logger,
	}
}

func newFetcher(strategy sitescrape.Strategy, c ScrapeCmd) (sitescrape.Fetcher, error) {
	if strategy == sitescrape.StrategyBrowser {
		opts := []rod.Option{rod.WithWaitTimeout(c.WaitTimeout)}
		if c.Timeout > 0 {
			opts = append(opts, rod.WithFetchTimeout(c.Timeout))
		}
		f, err := rod.NewFetcher(opts...)
		if err != nil {
			return nil, err
		}
		return f, nil
	}
	var opts []schttp.Option
	if c.Timeout > 0 {
		opts = append(opts, schttp.WithTimeout(c.Timeout))
	}
	return schttp.NewFetcher(opts...), nil
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "sitescrape.db"
	}
	return filepath.Join(home, ".sitescrape", "sitescrape.db")
}
