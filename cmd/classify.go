package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/bizdash/internal/cli"
	"github.com/theirongolddev/bizdash/internal/status"
	"github.com/theirongolddev/bizdash/internal/trend"
)

var (
	flagCount         bool
	flagLowerIsBetter bool
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Show how labels, changes and values are displayed",
}

var classifyStatusCmd = &cobra.Command{
	Use:   "status <label>...",
	Short: "Classify status labels",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runClassifyStatus,
}

var classifyTrendCmd = &cobra.Command{
	Use:   "trend <change>",
	Short: "Classify a period-over-period change",
	Args:  cobra.ExactArgs(1),
	RunE:  runClassifyTrend,
}

var classifyValueCmd = &cobra.Command{
	Use:   "value <value>",
	Short: "Format a metric value",
	Args:  cobra.ExactArgs(1),
	RunE:  runClassifyValue,
}

func init() {
	classifyTrendCmd.Flags().BoolVar(&flagCount, "count", false, "Treat the change as an absolute count")
	classifyTrendCmd.Flags().BoolVar(&flagLowerIsBetter, "lower-is-better", false, "A decrease is good news")
	classifyValueCmd.Flags().BoolVar(&flagCount, "count", false, "Format as a count instead of currency")
	classifyCmd.AddCommand(classifyStatusCmd, classifyTrendCmd, classifyValueCmd)
	rootCmd.AddCommand(classifyCmd)
}

func runClassifyStatus(_ *cobra.Command, args []string) error {
	c := newClassifier(cfg)
	rows := make([][]string, len(args))
	for i, label := range args {
		rows[i] = []string{label, string(status.Classify(label)), cli.StatusText(c, label)}
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Label", "Category", "Rendered"},
		Rows:    rows,
	}))
	return nil
}

func runClassifyTrend(_ *cobra.Command, args []string) error {
	delta, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid change %q: %w", args[0], err)
	}
	r, ok := trend.Classify(&delta, !flagLowerIsBetter)
	fmt.Println(cli.KV("Direction", r.Direction))
	fmt.Println(cli.KV("Category", trend.CategoryOf(r, ok)))
	fmt.Println(cli.KV("Rendered", cli.TrendText(&delta, flagCount, !flagLowerIsBetter)))
	return nil
}

func runClassifyValue(_ *cobra.Command, args []string) error {
	fmt.Println(cli.FormatValue(args[0], flagCount))
	return nil
}
