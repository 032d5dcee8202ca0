// Package cmd implements the bizdash CLI commands.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/theirongolddev/bizdash/internal/api"
	"github.com/theirongolddev/bizdash/internal/config"
	"github.com/theirongolddev/bizdash/internal/dashboard"
	"github.com/theirongolddev/bizdash/internal/logging"
	"github.com/theirongolddev/bizdash/internal/mutation"
	"github.com/theirongolddev/bizdash/internal/notify"
	"github.com/theirongolddev/bizdash/internal/query"
	"github.com/theirongolddev/bizdash/internal/status"
	"github.com/theirongolddev/bizdash/internal/store"
	"github.com/theirongolddev/bizdash/internal/tui/theme"
)

var (
	flagAPIURL  string
	flagToken   string
	flagNoCache bool
	flagVerbose bool
	flagQuiet   bool
)

var (
	cfg    config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:           "bizdash",
	Short:         "Business dashboard for the terminal",
	Long:          "Track revenue, billing, partners and projects against the bizdash API.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}

		level := cfg.Logging.Level
		if flagQuiet {
			level = "error"
		}
		logger, err = logging.New(level, flagVerbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		theme.SetActive(cfg.Appearance.Theme)
		logger.Debug("config loaded", zap.String("path", config.Path()), zap.Bool("exists", config.Exists()))
		return nil
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		_ = logger.Sync()
	},
	RunE: runDashboard,
}

// Execute is the main entry point called from main.go.
func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// Failed writes were already reported by the notifier.
		var mErr *mutation.Error
		if !errors.As(err, &mErr) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", "", "Backend base URL (overrides config and "+config.EnvAPIURL+")")
	rootCmd.PersistentFlags().StringVar(&flagToken, "token", "", "API bearer token (overrides config and "+config.EnvAPIToken+")")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "Skip the on-disk query cache")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Only print errors")
}

// effectiveConfig applies command-line overrides on top of env and file.
func effectiveConfig() (config.Config, error) {
	c := cfg
	c.API.BaseURL = config.GetAPIURL(c)
	c.API.Token = config.GetAPIToken(c)
	if flagAPIURL != "" {
		c.API.BaseURL = flagAPIURL
	}
	if flagToken != "" {
		c.API.Token = flagToken
	}
	if flagNoCache {
		c.Cache.Persistent = false
	}
	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("invalid configuration: %w", err)
	}
	return c, nil
}

// session is everything a command needs to talk to the backend.
type session struct {
	svc        *dashboard.Service
	classifier *status.Classifier
	notes      *notify.Recorder
	baseURL    string
	close      func() error
}

// openCache returns the SQLite cache when enabled, falling back to memory.
func openCache(c config.Config) (query.Cache, func() error) {
	if !c.Cache.Persistent {
		return query.NewMemory(), func() error { return nil }
	}
	db, err := store.Open(c.CachePath())
	if err != nil {
		logger.Warn("cache unavailable, using memory", zap.String("path", c.CachePath()), zap.Error(err))
		return query.NewMemory(), func() error { return nil }
	}
	return db, db.Close
}

func newClassifier(c config.Config) *status.Classifier {
	if c.Logging.StatusDiagnostics {
		return status.New(logging.StatusSink(logger.Named("status")))
	}
	return status.New(nil)
}

// openSession wires the API client, cache and notifiers. printed controls
// whether notifications are echoed to stderr.
func openSession(printed bool) (*session, error) {
	return newSession(printed, &notify.Recorder{})
}

// newSession is openSession recording notifications into rec.
func newSession(printed bool, rec *notify.Recorder) (*session, error) {
	c, err := effectiveConfig()
	if err != nil {
		return nil, err
	}

	client := api.NewClient(c.API.BaseURL,
		api.WithToken(c.API.Token),
		api.WithTimeout(c.Timeout()),
	)
	cache, closeCache := openCache(c)

	notifiers := notify.Multi{rec, notify.NewLogged(logger.Named("notify"))}
	if printed && !flagQuiet {
		notifiers = append(notifiers, notify.NewPrinter(os.Stderr))
	}

	svc := dashboard.New(dashboard.Options{
		Backend:    client,
		Cache:      cache,
		Notifier:   notifiers,
		Logger:     logger,
		StaleAfter: c.StaleAfter(),
	})
	return &session{
		svc:        svc,
		classifier: newClassifier(c),
		notes:      rec,
		baseURL:    c.API.BaseURL,
		close:      closeCache,
	}, nil
}
