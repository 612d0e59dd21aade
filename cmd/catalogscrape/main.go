package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/use-agent/catalogscrape/api/handler"
	"github.com/use-agent/catalogscrape/config"
	"github.com/use-agent/catalogscrape/scraper"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// NewRunner builds the extraction runner from the final configuration.
	NewRunner func(cfg *config.Config) handler.Runner
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		NewRunner: func(cfg *config.Config) handler.Runner {
			return scraper.NewRodScraper(cfg.Browser, cfg.Scraper)
		},
	}
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Mode       string        `help:"Extraction mode: snapshot or live (default from CATALOG_EXTRACT_MODE)"`
	NavTimeout time.Duration `name:"nav-timeout" help:"Navigation and network-idle timeout (default from CATALOG_NAV_TIMEOUT)"`
	LogLevel   string        `name:"log-level" help:"Log level: debug, info, warn, error"`

	Serve ServeCmd `cmd:"" help:"Run the HTTP extraction service"`
	Fetch FetchCmd `cmd:"" help:"Extract one catalog page and print the blocks as JSON"`
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("catalogscrape"),
		kong.Description("Extract titles, descriptions and product cards from rendered catalog pages"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle no arguments
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command provided")
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg := config.Load()
	if err := cli.apply(cfg); err != nil {
		return err
	}

	switch kctx.Command() {
	case "serve":
		initLogger(cfg.Log, stdout)
		return cli.Serve.Run(ctx, cfg, m.NewRunner(cfg))
	case "fetch <url>":
		// stdout carries the JSON result.
		initLogger(cfg.Log, stderr)
		return cli.Fetch.Run(ctx, m.NewRunner(cfg), stdout)
	default:
		return fmt.Errorf("unknown command %q", kctx.Command())
	}
}

// apply overlays the global flags on the environment configuration.
func (c *CLI) apply(cfg *config.Config) error {
	switch c.Mode {
	case "":
	case config.ModeSnapshot, config.ModeLive:
		cfg.Scraper.ExtractMode = c.Mode
	default:
		return fmt.Errorf("invalid mode %q: want %s or %s", c.Mode, config.ModeSnapshot, config.ModeLive)
	}
	if c.NavTimeout < 0 {
		return fmt.Errorf("invalid nav-timeout %s", c.NavTimeout)
	}
	if c.NavTimeout > 0 {
		cfg.Scraper.NavigationTimeout = c.NavTimeout
	}
	if c.LogLevel != "" {
		cfg.Log.Level = c.LogLevel
	}
	return nil
}

// initLogger configures slog based on the LogConfig.
func initLogger(cfg config.LogConfig, w io.Writer) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	if cfg.Format == "text" {
		h = slog.NewTextHandler(w, opts)
	} else {
		h = slog.NewJSONHandler(w, opts)
	}

	slog.SetDefault(slog.New(h))
}
