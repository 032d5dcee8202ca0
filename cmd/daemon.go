package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/bizdash/internal/daemon"
)

var (
	flagDaemonAddr     string
	flagDaemonInterval time.Duration
	flagDaemonEvents   int
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Poll the backend and serve the latest summary over HTTP",
	Long: "Runs in the foreground, refreshing the dashboard on an interval and serving\n" +
		"/healthz, /v1/status, /v1/events and an SSE stream at /v1/stream.",
	Args: cobra.NoArgs,
	RunE: runDaemon,
}

func init() {
	daemonCmd.Flags().StringVar(&flagDaemonAddr, "addr", "127.0.0.1:8787", "HTTP listen address")
	daemonCmd.Flags().DurationVar(&flagDaemonInterval, "interval", 30*time.Second, "Poll interval")
	daemonCmd.Flags().IntVar(&flagDaemonEvents, "events-buffer", 200, "Events kept for /v1/events")
	rootCmd.AddCommand(daemonCmd)
}

func runDaemon(cmd *cobra.Command, _ []string) error {
	s, err := openSession(false)
	if err != nil {
		return err
	}
	defer func() { _ = s.close() }()

	svc := daemon.New(daemon.Config{
		Source:       s.svc,
		Logger:       logger.Named("daemon"),
		BaseURL:      s.baseURL,
		Interval:     flagDaemonInterval,
		Addr:         flagDaemonAddr,
		EventsBuffer: flagDaemonEvents,
	})
	return svc.Run(cmd.Context())
}
