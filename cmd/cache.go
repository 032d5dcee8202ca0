package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/theirongolddev/bizdash/internal/cli"
	"github.com/theirongolddev/bizdash/internal/store"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the on-disk query cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cache size",
	Args:  cobra.NoArgs,
	RunE:  runCacheStats,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop every cached response",
	Args:  cobra.NoArgs,
	RunE:  runCacheClear,
}

func init() {
	cacheCmd.AddCommand(cacheStatsCmd, cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}

func runCacheStats(_ *cobra.Command, _ []string) error {
	db, err := store.Open(cfg.CachePath())
	if err != nil {
		return err
	}
	defer db.Close()

	total, stale, err := db.Stats()
	if err != nil {
		return err
	}
	fmt.Println(cli.KV("Path", cfg.CachePath()))
	fmt.Println(cli.KV("Entries", cli.FormatNumber(int64(total))))
	fmt.Println(cli.KV("Stale", cli.FormatNumber(int64(stale))))
	if !cfg.Cache.Persistent {
		fmt.Println("    " + cli.Muted("Persistent caching is disabled in config."))
	}
	return nil
}

func runCacheClear(_ *cobra.Command, _ []string) error {
	db, err := store.Open(cfg.CachePath())
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Clear(); err != nil {
		return err
	}
	logger.Info("cache cleared", zap.String("path", cfg.CachePath()))
	fmt.Println("  Cache cleared.")
	return nil
}
