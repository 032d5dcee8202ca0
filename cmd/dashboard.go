package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/bizdash/internal/chart"
	"github.com/theirongolddev/bizdash/internal/cli"
	"github.com/theirongolddev/bizdash/internal/dashboard"
	"github.com/theirongolddev/bizdash/internal/status"
	"github.com/theirongolddev/bizdash/internal/trend"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Print the business summary",
	RunE:  runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	s, err := openSession(false)
	if err != nil {
		return err
	}
	defer s.close()

	snap, err := s.svc.Load(cmd.Context())
	if err != nil {
		return err
	}
	printDashboard(snap, s.classifier)
	return nil
}

func printDashboard(snap dashboard.Snapshot, c *status.Classifier) {
	fmt.Println()
	fmt.Println(cli.RenderTitle("BUSINESS DASHBOARD"))
	fmt.Println()

	metrics := snap.Summary.Metrics()
	rows := make([][]string, 0, len(metrics))
	for _, m := range metrics {
		rows = append(rows, []string{
			m.Label,
			cli.FormatValue(m.Value, m.IsCount),
			cli.TrendText(m.Change, m.IsCount, m.HigherIsBetter),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:      "Summary",
		Headers:    []string{"Metric", "Value", "Change"},
		Rows:       rows,
		RightAlign: []bool{false, true, true},
	}))

	if len(snap.Revenue) > 0 {
		values := make([]float64, len(snap.Revenue))
		for i, e := range snap.Revenue {
			values[i] = e.Revenue
		}
		first, last := snap.Revenue[0], snap.Revenue[len(snap.Revenue)-1]
		fmt.Println()
		fmt.Printf("  Revenue  %s  %s .. %s\n", cli.RenderSparkline(values), first.Period, last.Period)
		if len(snap.Revenue) > 1 {
			change := trend.Change(last.Revenue, snap.Revenue[len(snap.Revenue)-2].Revenue)
			fmt.Printf("  Latest   %s  %s\n", cli.FormatCurrency(last.Revenue), cli.TrendText(change, false, true))
		}
	}

	if len(snap.Profit) > 0 {
		total := chart.Total(chart.ProfitDistributionPoints(snap.Profit))
		prow := make([][]string, 0, len(snap.Profit))
		for _, p := range snap.Profit {
			share := 0.0
			if total > 0 {
				share = p.Amount / total * 100
			}
			prow = append(prow, []string{p.PartnerName, cli.FormatCurrency(p.Amount), cli.FormatPercent(share)})
		}
		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:      "Profit Distribution",
			Headers:    []string{"Partner", "Amount", "Share"},
			Rows:       prow,
			RightAlign: []bool{false, true, true},
		}))
	}

	var attention [][]string
	for _, b := range snap.Billing {
		switch c.Classify(b.Status) {
		case status.Error, status.Warning:
			attention = append(attention, []string{
				fmt.Sprintf("#%d", b.ID),
				b.PartnerName,
				cli.FormatCurrency(b.Amount),
				b.DueDate,
				cli.StatusText(c, b.Status),
			})
		}
	}
	fmt.Println()
	if len(attention) == 0 {
		fmt.Println("  " + cli.Muted("No invoices need attention."))
	} else {
		fmt.Print(cli.RenderTable(cli.Table{
			Title:      "Needs Attention",
			Headers:    []string{"ID", "Partner", "Amount", "Due", "Status"},
			Rows:       attention,
			RightAlign: []bool{true, false, true, false, false},
		}))
	}
	fmt.Println()
	fmt.Println("  " + cli.Muted(fmt.Sprintf("Loaded %s", snap.LoadedAt.Format("2006-01-02 15:04:05"))))
	fmt.Println()
}
