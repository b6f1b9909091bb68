package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"cardgallery/cmd/cards/gallery"
	"cardgallery/internal/cards"
	"cardgallery/internal/config"
	"cardgallery/internal/logging"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose    bool
	configPath string
	baseURL    string
	timeout    time.Duration

	// Effective configuration, loaded in PersistentPreRunE
	cfg *config.Config

	// Logger
	logger    *zap.Logger
	startedAt time.Time
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "cards",
	Short: "Browse, search and upload scanned business cards",
	Long: `cards is a terminal client for the visiting card webhook service.

Run without arguments to open the interactive gallery: a paginated grid of
cards with server-side search and an upload dialog. The subcommands do the
same operations one shot at a time for scripts.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return err
		}

		if err := logging.Initialize(cfg.Logging.Dir, logging.Options{
			DebugMode:  cfg.Logging.DebugMode,
			Level:      cfg.Logging.Level,
			Format:     cfg.Logging.Format,
			Categories: cfg.Logging.Categories,
		}); err != nil {
			return fmt.Errorf("failed to initialize logging: %w", err)
		}
		logging.Boot("config loaded from %s (base_url=%s)", configPath, cfg.API.BaseURL)

		if err := logging.InitAudit(uuid.NewString()); err != nil {
			return err
		}
		startedAt = time.Now()
		logging.Audit().SessionStart(cmd.CommandPath())

		// The TUI owns the terminal; only one-shot commands log to stderr.
		if cmd == cmd.Root() {
			logger = zap.NewNop()
			return nil
		}

		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		logging.Audit().SessionEnd(cmd.CommandPath(), time.Since(startedAt))
		logging.CloseAudit()
		logging.CloseAll()
	},
	RunE: runGallery,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultConfigPath, "Config file path")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "Webhook base URL (or set CARDS_BASE_URL)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "Per-request timeout (default from config, 30s)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig builds the effective configuration: defaults, then the YAML
// file, then .env and environment, then command line flags.
func loadConfig() error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if baseURL != "" {
		loaded.API.BaseURL = baseURL
	}
	if timeout > 0 {
		loaded.API.Timeout = timeout.String()
	}
	if verbose {
		loaded.Logging.DebugMode = true
		loaded.Logging.Level = "debug"
	}
	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	cfg = loaded
	return nil
}

// newClient creates a webhook client from the effective configuration.
func newClient() *cards.Client {
	cc := cards.DefaultClientConfig(cfg.API.BaseURL)
	cc.Timeout = cfg.GetTimeout()
	return cards.NewClient(cc)
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// runGallery starts the interactive interface
func runGallery(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	startDir, _ := os.Getwd()
	if home, err := os.UserHomeDir(); err == nil && startDir == "" {
		startDir = home
	}

	return gallery.Run(ctx, newClient(), gallery.Config{
		PageSize:       cfg.GetPageSize(),
		MinColumnWidth: cfg.UI.MinColumnWidth,
		ShowImageURL:   cfg.UI.ShowImageURL,
		Theme:          cfg.UI.Theme,
		Extensions:     cfg.Upload.Extensions,
		StartDir:       filepath.Clean(startDir),
	})
}
