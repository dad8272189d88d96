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
	"github.com/fwojciec/pagekeep"
	"github.com/fwojciec/pagekeep/bloom"
	"github.com/fwojciec/pagekeep/capture"
	"github.com/fwojciec/pagekeep/fs"
	"github.com/fwojciec/pagekeep/goquery"
	pkhttp "github.com/fwojciec/pagekeep/http"
	"github.com/fwojciec/pagekeep/readability"
	"github.com/fwojciec/pagekeep/rod"
	pkslog "github.com/fwojciec/pagekeep/slog"
	"github.com/fwojciec/pagekeep/sqlite"
	"github.com/fwojciec/pagekeep/trafilatura"
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
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by the settings store.
	DB *sqlite.DB

	// Services for end-to-end testing.
	SettingsService pagekeep.SettingsService
	ContentService  pagekeep.ContentService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pagekeep"),
		kong.Description("Capture readable content from whitelisted pages and manage it on a local content server."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'pagekeep --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	if cli.DB != "" {
		m.DBPath = cli.DB
	}
	deps.Logger = newLogger(stderr, cmd, cli.Verbose)

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set PAGEKEEP_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	settings := sqlite.NewSettingsService(m.DB)
	if err := settings.Install(ctx); err != nil {
		return fmt.Errorf("failed to install default settings: %w", err)
	}

	// Wire core services into dependencies
	m.SettingsService = settings
	m.ContentService = pkslog.NewLoggingContentService(pkhttp.NewClient(settings), deps.Logger)
	deps.DB = m.DB
	deps.Settings = m.SettingsService
	deps.Content = m.ContentService

	// Wire command-specific dependencies based on command
	switch cmd {
	case "watch":
		browser, err := rod.NewBrowser(rod.WithRemoteURL(cli.Watch.RemoteURL), rod.WithHeadless(cli.Watch.Headless))
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed, or pass --remote-url")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		defer browser.Close()

		deps.Watcher = rod.NewWatcher(browser, rod.WithLogger(deps.Logger))
		deps.Dispatcher = &capture.Dispatcher{
			Settings:  m.SettingsService,
			Extractor: newExtractor(cli.Watch.Extractor, deps.Logger),
			Content:   m.ContentService,
			Logger:    deps.Logger,
		}
		if cli.Watch.Dedupe {
			deps.Dispatcher.Seen = bloom.NewFilter(seenCapacity, seenFalsePositiveRate)
		}

	case "capture":
		if cli.Capture.Browser {
			browser, err := rod.NewBrowser(rod.WithRemoteURL(cli.Capture.RemoteURL))
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed, or drop --browser")
				return fmt.Errorf("failed to start browser: %w", err)
			}
			deps.Opener = rod.NewNavigator(browser)
		} else {
			fetcher := pkslog.NewLoggingFetcher(pkhttp.NewFetcher(), deps.Logger)
			deps.Opener = &pagekeep.FetchOpener{Fetcher: fetcher}
		}
		defer deps.Opener.Close()

		deps.Dispatcher = &capture.Dispatcher{
			Settings:  m.SettingsService,
			Extractor: newExtractor(cli.Capture.Extractor, deps.Logger),
			Content:   m.ContentService,
			DryRun:    cli.Capture.DryRun,
			Logger:    deps.Logger,
		}
		if cli.Capture.Out != "" {
			deps.Dispatcher.Content = fs.NewWriter(cli.Capture.Out)
		}
	}

	return kongCtx.Run(deps)
}

// Seen-filter sizing for one watch session.
const (
	seenCapacity          = 100_000
	seenFalsePositiveRate = 0.001
)

// newExtractor returns the extractor named by the --extractor flag. The
// library-backed extractors fall back to the rule extractor.
func newExtractor(name string, logger *slog.Logger) pagekeep.Extractor {
	rules := goquery.NewExtractor()

	var ext pagekeep.Extractor
	switch name {
	case "trafilatura":
		ext = trafilatura.NewExtractor(rules)
	case "readability":
		ext = readability.NewExtractor(rules)
	default:
		ext = rules
	}
	return pkslog.NewLoggingExtractor(ext, logger)
}

// newLogger logs to stderr. Long-running commands log at info level, the
// rest only warnings, unless verbose.
func newLogger(w io.Writer, cmd string, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case verbose:
		level = slog.LevelDebug
	case cmd == "watch" || cmd == "ui":
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func defaultDBPath() string {
	if path := os.Getenv("PAGEKEEP_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "pagekeep.db"
	}
	dir := filepath.Join(home, ".pagekeep")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "pagekeep.db")
}
