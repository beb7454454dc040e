// Command docdex converts documentation websites into locally queryable
// knowledge bases and serves them to AI assistants over MCP.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/adrg/xdg"
	"github.com/alecthomas/kong"
	"github.com/fwojciec/docdex"
	"github.com/fwojciec/docdex/crawl"
	"github.com/fwojciec/docdex/gemini"
	"github.com/fwojciec/docdex/goquery"
	docdexhttp "github.com/fwojciec/docdex/http"
	"github.com/fwojciec/docdex/process"
	"github.com/fwojciec/docdex/rod"
	docslog "github.com/fwojciec/docdex/slog"
	"github.com/fwojciec/docdex/sqlite"
	"google.golang.org/genai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by the storage services.
	DB *sqlite.DB

	closers []io.Closer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program, closing the browser before the
// database.
func (m *Main) Close() error {
	var first error
	for i := len(m.closers) - 1; i >= 0; i-- {
		if err := m.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	if m.DB != nil {
		if err := m.DB.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	logger := slog.New(slog.NewTextHandler(stderr, nil))

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: logger,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docdex"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'docdex --help' to see available commands")
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

	// Validate inputs before touching the database or the network.
	if cmd == "generate" {
		if err := docdex.ValidateProjectName(cli.Generate.Name); err != nil {
			return err
		}
		if err := docdex.ValidateURL(cli.Generate.URL); err != nil {
			return err
		}
	}

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintln(stderr, "Hint: Set DOCDEX_DB to use a different database path")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	deps.DB = m.DB
	deps.Projects = sqlite.NewProjectService(m.DB)
	deps.Groups = sqlite.NewGroupService(m.DB)
	deps.Embeddings = sqlite.NewEmbeddingService(m.DB)

	switch cmd {
	case "generate":
		if err := m.wireGenerate(ctx, cli, deps, logger, stderr); err != nil {
			return err
		}
	case "serve":
		embedder, err := queryEmbedder(ctx, logger)
		if err != nil {
			return err
		}
		deps.Search = sqlite.NewSearchService(ctx, m.DB, embedder, logger)
	}

	return kongCtx.Run(deps)
}

// wireGenerate assembles the discovery, crawl, and processing pipeline.
func (m *Main) wireGenerate(ctx context.Context, cli *CLI, deps *Dependencies, logger *slog.Logger, stderr io.Writer) error {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
		return fmt.Errorf("GEMINI_API_KEY not set")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
		return fmt.Errorf("failed to connect to Gemini API: %w", err)
	}

	staticFetcher := docslog.NewLoggingFetcher(docdexhttp.NewFetcher(), logger)
	extractor := docslog.NewLoggingExtractor(goquery.NewExtractor(), logger)
	sitemaps := docslog.NewLoggingSitemapSource(docdexhttp.NewSitemapSource(nil), logger)

	var renderer docdex.RenderFetcher
	if !cli.Generate.Static {
		browser, err := rod.NewFetcher()
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed, or pass --static")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		m.closers = append(m.closers, browser)
		renderer = browser
	}

	deps.Discoverer = &crawl.Discoverer{
		Fetcher:   staticFetcher,
		Renderer:  renderer,
		Extractor: extractor,
		Navigator: gemini.NewNavigator(client),
		Sitemap:   sitemaps,
		Logger:    logger,
	}
	deps.Crawler = &crawl.Crawler{
		Fetcher: staticFetcher,
		Parser:  goquery.NewParser(),
		Config:  docdex.DefaultCrawlConfig(),
		Logger:  logger,
	}
	deps.Processor = &process.Processor{
		Grouper:    gemini.NewGrouper(client),
		Summarizer: gemini.NewSummarizer(client),
		Logger:     logger,
	}
	if cli.Generate.Vector {
		deps.Processor.Embedder = gemini.NewEmbedder(client, docdex.DefaultEmbeddingConfig())
	}
	return nil
}

// queryEmbedder builds the embedder used for search queries. Without an API
// key search degrades to keyword matching.
func queryEmbedder(ctx context.Context, logger *slog.Logger) (docdex.Embedder, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		logger.Warn("GEMINI_API_KEY not set; search degrades to keyword matching")
		return nil, nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
	}
	return gemini.NewEmbedder(client, docdex.DefaultEmbeddingConfig()), nil
}

func defaultDBPath() string {
	if path := os.Getenv("DOCDEX_DB"); path != "" {
		return path
	}
	path, err := xdg.DataFile("docdex/docdex.db")
	if err != nil {
		return "docdex.db"
	}
	return path
}
