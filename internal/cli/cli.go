// Package cli implements the utxo-intelligence command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/MorningRevolution/utxo-intelligence-sub000/pkg/buildinfo"
	"github.com/MorningRevolution/utxo-intelligence-sub000/pkg/cache"
	"github.com/MorningRevolution/utxo-intelligence-sub000/pkg/pipeline"
	"github.com/MorningRevolution/utxo-intelligence-sub000/pkg/store"
	"github.com/MorningRevolution/utxo-intelligence-sub000/pkg/wallet"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "utxo-intelligence"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config
}

// New creates a new CLI instance with a default logger and configuration
// loaded from the standard config path.
func New(w io.Writer, level log.Level) *CLI {
	c := &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
	cfg, err := LoadConfig("")
	if err != nil {
		c.Logger.Warn("failed to load config, using defaults", "error", err)
		cfg = DefaultConfig()
	}
	c.Config = cfg
	return c
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "UTXO Intelligence scores coin privacy risk and maps wallet composition",
		Long:         `UTXO Intelligence is a CLI tool for Bitcoin coin control: it scores the privacy risk of spending combinations, lays out wallet composition as squarified treemaps, and renders address-linkage diagrams.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.importCommand())
	root.AddCommand(c.walletCommand())
	root.AddCommand(c.assessCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.linkageCommand())
	root.AddCommand(c.reportCommand())
	root.AddCommand(c.simulateCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner and Store Factories
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := c.newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

func (c *CLI) newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir := c.Config.CacheDir
	if dir == "" {
		var err error
		dir, err = cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
	}
	return cache.NewFileCache(dir)
}

// newStore opens the configured wallet store: MongoDB when a URI is
// configured, the file store otherwise.
func (c *CLI) newStore(ctx context.Context) (store.Store, error) {
	if c.Config.Mongo.URI != "" {
		return store.NewMongoStore(ctx, c.Config.Mongo.URI, c.Config.Mongo.Database)
	}
	return store.NewFileStore(c.Config.WalletDir)
}

// loadWallet resolves a wallet argument: a path to a JSON file when it
// exists on disk, otherwise a named wallet from the store.
func (c *CLI) loadWallet(ctx context.Context, arg string) (*wallet.Wallet, error) {
	if _, err := os.Stat(arg); err == nil {
		return wallet.ImportJSON(arg)
	}

	st, err := c.newStore(ctx)
	if err != nil {
		return nil, err
	}
	defer st.Close(ctx)
	return st.Load(ctx, arg)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/utxo-intelligence/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

// parseList parses a comma-separated string into trimmed non-empty parts.
func parseList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
