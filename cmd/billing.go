package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/bizdash/internal/cli"
	"github.com/theirongolddev/bizdash/internal/resource"
)

var (
	flagBillPartner int64
	flagBillAmount  float64
	flagBillDesc    string
	flagBillStatus  string
	flagBillDue     string
)

var billingCmd = &cobra.Command{
	Use:     "billing",
	Aliases: []string{"bills", "invoices"},
	Short:   "List and edit billing records",
	RunE:    runBillingList,
}

var billingListCmd = &cobra.Command{
	Use:   "list",
	Short: "List billing records",
	Args:  cobra.NoArgs,
	RunE:  runBillingList,
}

var billingCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a billing record",
	Args:  cobra.NoArgs,
	RunE:  runBillingCreate,
}

var billingUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update fields on a billing record",
	Args:  cobra.ExactArgs(1),
	RunE:  runBillingUpdate,
}

var billingDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a billing record",
	Args:  cobra.ExactArgs(1),
	RunE:  runBillingDelete,
}

var billingPayCmd = &cobra.Command{
	Use:   "pay <id>",
	Short: "Mark a billing record as paid",
	Args:  cobra.ExactArgs(1),
	RunE:  runBillingPay,
}

func init() {
	for _, c := range []*cobra.Command{billingCreateCmd, billingUpdateCmd} {
		c.Flags().Int64Var(&flagBillPartner, "partner-id", 0, "Partner the invoice belongs to")
		c.Flags().Float64Var(&flagBillAmount, "amount", 0, "Invoice amount")
		c.Flags().StringVar(&flagBillDesc, "description", "", "Free-form description")
		c.Flags().StringVar(&flagBillStatus, "status", "", "Paid, Pending, Overdue or Draft")
		c.Flags().StringVar(&flagBillDue, "due", "", "Due date (YYYY-MM-DD)")
	}
	billingCmd.AddCommand(billingListCmd, billingCreateCmd, billingUpdateCmd, billingDeleteCmd, billingPayCmd)
	rootCmd.AddCommand(billingCmd)
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

// billingInput builds a payload from the flags the user actually set.
func billingInput(cmd *cobra.Command) resource.BillingInput {
	var in resource.BillingInput
	f := cmd.Flags()
	if f.Changed("partner-id") {
		in.PartnerID = resource.Int(flagBillPartner)
	}
	if f.Changed("amount") {
		in.Amount = resource.Float(flagBillAmount)
	}
	if f.Changed("description") {
		in.Description = resource.String(flagBillDesc)
	}
	if f.Changed("status") {
		in.Status = resource.String(flagBillStatus)
	}
	if f.Changed("due") {
		in.DueDate = resource.String(flagBillDue)
	}
	return in
}

func runBillingList(cmd *cobra.Command, _ []string) error {
	s, err := openSession(false)
	if err != nil {
		return err
	}
	defer s.close()

	bills, err := s.svc.ListBilling(cmd.Context())
	if err != nil {
		return err
	}
	if len(bills) == 0 {
		fmt.Println("\n  " + cli.Muted("No billing records yet.") + "\n")
		return nil
	}

	rows := make([][]string, 0, len(bills)+2)
	var total, outstanding float64
	for _, b := range bills {
		rows = append(rows, []string{
			strconv.FormatInt(b.ID, 10),
			b.PartnerName,
			cli.Truncate(b.Description, 32),
			cli.FormatCurrency(b.Amount),
			b.DueDate,
			cli.StatusText(s.classifier, b.Status),
		})
		total += b.Amount
		if b.Status != resource.StatusPaid {
			outstanding += b.Amount
		}
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{"", "Outstanding", "", cli.FormatCurrency(outstanding), "", ""})
	rows = append(rows, []string{"", "Total", "", cli.FormatCurrency(total), "", ""})

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:      fmt.Sprintf("Billing  %s records", cli.FormatNumber(int64(len(bills)))),
		Headers:    []string{"ID", "Partner", "Description", "Amount", "Due", "Status"},
		Rows:       rows,
		RightAlign: []bool{true, false, false, true, false, false},
	}))
	fmt.Println()
	return nil
}

func runBillingCreate(cmd *cobra.Command, _ []string) error {
	s, err := openSession(true)
	if err != nil {
		return err
	}
	defer s.close()

	b, err := s.svc.Billing.Create(cmd.Context(), billingInput(cmd))
	if err != nil {
		return err
	}
	fmt.Println(cli.KV("ID", b.ID))
	return nil
}

func runBillingUpdate(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	s, err := openSession(true)
	if err != nil {
		return err
	}
	defer s.close()

	b, err := s.svc.Billing.Update(cmd.Context(), id, billingInput(cmd))
	if err != nil {
		return err
	}
	fmt.Println(cli.KV("Status", cli.StatusText(s.classifier, b.Status)))
	return nil
}

func runBillingDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	s, err := openSession(true)
	if err != nil {
		return err
	}
	defer s.close()

	return s.svc.Billing.Delete(cmd.Context(), id)
}

func runBillingPay(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	s, err := openSession(true)
	if err != nil {
		return err
	}
	defer s.close()

	_, err = s.svc.MarkPaid(cmd.Context(), id)
	return err
}
