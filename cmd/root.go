package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/humanlog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/viper"

	"github.com/lepinkainen/reelmeta/internal/artwork"
	"github.com/lepinkainen/reelmeta/internal/config"
	"github.com/lepinkainen/reelmeta/internal/fileutil"
	"github.com/lepinkainen/reelmeta/internal/metrics"
	"github.com/lepinkainen/reelmeta/internal/ratelimit"
	"github.com/lepinkainen/reelmeta/internal/tmdb"
)

// CLI represents the complete command structure for the reelmeta application
type CLI struct {
	// Global flags
	Verbose  bool   `short:"v" help:"Enable debug logging"`
	Language string `short:"l" help:"Preferred ISO 639-1 language (overrides config)"`
	Country  string `short:"c" help:"Preferred ISO 3166-1 country (overrides config)"`
	Format   string `help:"Output format: table, json, yaml or markdown (defaults to config)"`
	Metrics  bool   `help:"Print provider request metrics to stderr on exit"`

	Output    string `short:"o" help:"Write the result to this file instead of stdout" type:"path"`
	Overwrite bool   `help:"Replace the output file if it already exists"`

	Movie   MovieCmd   `cmd:"" help:"Show TMDB details for a movie"`
	Show    ShowCmd    `cmd:"" help:"Show TMDB details for a TV show"`
	Search  SearchCmd  `cmd:"" help:"Search TMDB for movies, shows or people"`
	Artwork ArtworkCmd `cmd:"" help:"Collect and rank artwork from TMDB, fanart.tv and Apple TV"`
}

// Validate rejects unknown output formats before any command runs.
func (c *CLI) Validate() error {
	if c.Format != "" && !validFormat(c.Format) {
		return fmt.Errorf("unknown format %q (want table, json, yaml or markdown)", c.Format)
	}
	return nil
}

// App carries the clients and output settings shared by every command.
type App struct {
	Ctx       context.Context
	TMDB      *tmdb.Client
	Artwork   *artwork.Client
	Out       io.Writer
	Format    string
	Language  string
	Country   string
	TMDBKey   string
	FanartKey string
}

// artworkInterval spaces out fanart.tv and Apple store requests.
const artworkInterval = 250 * time.Millisecond

// newApp wires the provider clients from the global config. Tests replace it
// to point the clients at httptest servers.
var newApp = func(out io.Writer, reg prometheus.Registerer) *App {
	observer := metrics.NewProvider(reg)

	return &App{
		Ctx: context.Background(),
		TMDB: tmdb.NewClient(config.TMDBAPIKey,
			tmdb.WithRateLimiter(ratelimit.New("TMDB", config.RateLimit)),
			tmdb.WithObserver(observer),
		),
		Artwork: artwork.NewClient(
			artwork.WithRateLimiter(ratelimit.Every("artwork", artworkInterval)),
			artwork.WithObserver(observer),
		),
		Out: out,
	}
}

// Execute runs the Kong-based CLI
func Execute() {
	var cli CLI

	ctx := kong.Parse(&cli,
		kong.Name("reelmeta"),
		kong.Description("Fetch movie and TV metadata from TMDB and rank artwork from several sources."),
		kong.UsageOnError(),
	)

	initLogging(cli.Verbose)
	if err := initConfig(); err != nil {
		slog.Error("Fatal error config file", "error", err)
		os.Exit(1)
	}
	updateGlobalConfig(&cli)

	reg := prometheus.NewRegistry()
	app := newApp(os.Stdout, reg)
	app.Format = config.Format
	app.Language = config.Language
	app.Country = config.Country
	app.TMDBKey = config.TMDBAPIKey
	app.FanartKey = config.FanartAPIKey

	err := run(ctx, app, cli.Output, cli.Overwrite)

	if cli.Metrics {
		if werr := metrics.WriteText(os.Stderr, reg); werr != nil {
			slog.Warn("Failed to write metrics", "error", werr)
		}
	}

	if err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

// run executes the selected command. With output set, the rendered result
// goes to that file instead of the app's writer.
func run(ctx *kong.Context, app *App, output string, overwrite bool) error {
	if output == "" {
		return ctx.Run(app)
	}

	var buf bytes.Buffer
	app.Out = &buf
	if err := ctx.Run(app); err != nil {
		return err
	}

	written, err := fileutil.WriteFile(output, buf.Bytes(), overwrite)
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if !written {
		slog.Info("Output exists, use --overwrite to replace it", "filename", output)
		return nil
	}
	slog.Info("Wrote output", "filename", output)
	return nil
}

func initConfig() error {
	config.SetDefaults()

	// Enable environment variable support. The prefix keeps keys such as
	// Language away from the LANGUAGE locale variable.
	viper.SetEnvPrefix("REELMETA")
	viper.AutomaticEnv()
	// Bind specific environment variables to config keys
	for key, env := range map[string]string{
		"TMDBAPIKey":   "TMDB_API_KEY",
		"FanartAPIKey": "FANART_API_KEY",
	} {
		if err := viper.BindEnv(key, env); err != nil {
			slog.Error("Failed to bind environment variable", "key", key, "error", err)
		}
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
		slog.Debug("Config file not found, using environment and defaults")
	}

	// Initialize global config
	config.InitConfig()
	return nil
}

func updateGlobalConfig(cli *CLI) {
	// Update config based on CLI flags
	config.SetLanguage(cli.Language)
	config.SetCountry(cli.Country)
	if cli.Format != "" {
		config.Format = cli.Format
	}
}

func initLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	// Create a human-readable handler for logging. Command output goes to
	// stdout, so logs use stderr.
	handler := humanlog.NewHandler(os.Stderr, &humanlog.Options{
		Level: level,
	})

	// Set the default logger
	slog.SetDefault(slog.New(handler))
}

func (a *App) requireTMDBKey() error {
	if a.TMDBKey == "" {
		return fmt.Errorf("TMDB API key is required (set TMDB_API_KEY or TMDBAPIKey in config)")
	}
	return nil
}
