package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/bizdash/internal/cli"
	"github.com/theirongolddev/bizdash/internal/resource"
)

var (
	flagCompanyName string
	flagCurrency    string
	flagFiscalStart string
	flagTaxRate     float64
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or update company settings",
	RunE:  runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show company settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update company settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsUpdate,
}

func init() {
	f := settingsUpdateCmd.Flags()
	f.StringVar(&flagCompanyName, "company-name", "", "Company name")
	f.StringVar(&flagCurrency, "currency", "", "ISO 4217 currency code")
	f.StringVar(&flagFiscalStart, "fiscal-year-start", "", "Fiscal year start (MM-DD)")
	f.Float64Var(&flagTaxRate, "tax-rate", 0, "Tax rate percentage")
	settingsCmd.AddCommand(settingsShowCmd, settingsUpdateCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	s, err := openSession(false)
	if err != nil {
		return err
	}
	defer s.close()

	cs, err := s.svc.CompanySettings(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Println(cli.RenderTitle("COMPANY SETTINGS"))
	fmt.Println()
	fmt.Println(cli.KV("Company", cs.CompanyName))
	fmt.Println(cli.KV("Currency", cs.Currency))
	fmt.Println(cli.KV("Fiscal year start", cs.FiscalYearStart))
	fmt.Println(cli.KV("Tax rate", cli.FormatPercent(cs.TaxRate)))
	fmt.Println()
	return nil
}

func runSettingsUpdate(cmd *cobra.Command, _ []string) error {
	var in resource.CompanySettingsInput
	f := cmd.Flags()
	if f.Changed("company-name") {
		in.CompanyName = resource.String(flagCompanyName)
	}
	if f.Changed("currency") {
		in.Currency = resource.String(flagCurrency)
	}
	if f.Changed("fiscal-year-start") {
		in.FiscalYearStart = resource.String(flagFiscalStart)
	}
	if f.Changed("tax-rate") {
		in.TaxRate = resource.Float(flagTaxRate)
	}

	s, err := openSession(true)
	if err != nil {
		return err
	}
	defer s.close()

	// The settings record is a singleton; its id comes from the backend.
	cs, err := s.svc.CompanySettings(cmd.Context())
	if err != nil {
		return err
	}
	_, err = s.svc.Settings.Update(cmd.Context(), cs.ID, in)
	return err
}
