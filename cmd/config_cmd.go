package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/bizdash/internal/cli"
	"github.com/theirongolddev/bizdash/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [API]")
	url := config.GetAPIURL(cfg)
	source := ""
	if os.Getenv(config.EnvAPIURL) != "" {
		source = " (from " + config.EnvAPIURL + ")"
	}
	fmt.Println(cli.KV("Base URL", url+source))
	fmt.Println(cli.KV("Token", config.MaskToken(config.GetAPIToken(cfg))))
	fmt.Println(cli.KV("Timeout", cfg.Timeout()))
	fmt.Println()

	fmt.Println("  [Cache]")
	fmt.Println(cli.KV("Persistent", cfg.Cache.Persistent))
	fmt.Println(cli.KV("Path", cfg.CachePath()))
	fmt.Println(cli.KV("Stale after", cfg.StaleAfter()))
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Println(cli.KV("Theme", cfg.Appearance.Theme))
	fmt.Println(cli.KV("Chart height", cfg.Appearance.ChartHeight))
	fmt.Println()

	fmt.Println("  [Logging]")
	fmt.Println(cli.KV("Level", cfg.Logging.Level))
	fmt.Println(cli.KV("Status diagnostics", cfg.Logging.StatusDiagnostics))

	if err := cfg.Validate(); err != nil {
		fmt.Println()
		fmt.Printf("  Problems:\n    %v\n", err)
	}
	fmt.Println()
	fmt.Println("  Run `bizdash setup` to reconfigure.")
	return nil
}
