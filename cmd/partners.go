package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/bizdash/internal/cli"
	"github.com/theirongolddev/bizdash/internal/resource"
)

var (
	flagPartnerName    string
	flagPartnerEmail   string
	flagPartnerCompany string
	flagPartnerStatus  string
	flagPartnerShare   float64
)

var partnersCmd = &cobra.Command{
	Use:   "partners",
	Short: "List and edit partners",
	RunE:  runPartnersList,
}

var partnersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List partners",
	Args:  cobra.NoArgs,
	RunE:  runPartnersList,
}

var partnersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Add a partner",
	Args:  cobra.NoArgs,
	RunE:  runPartnersCreate,
}

var partnersUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update fields on a partner",
	Args:  cobra.ExactArgs(1),
	RunE:  runPartnersUpdate,
}

var partnersDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a partner",
	Args:  cobra.ExactArgs(1),
	RunE:  runPartnersDelete,
}

func init() {
	for _, c := range []*cobra.Command{partnersCreateCmd, partnersUpdateCmd} {
		c.Flags().StringVar(&flagPartnerName, "name", "", "Partner name")
		c.Flags().StringVar(&flagPartnerEmail, "email", "", "Contact email")
		c.Flags().StringVar(&flagPartnerCompany, "company", "", "Company")
		c.Flags().StringVar(&flagPartnerStatus, "status", "", "Active, Inactive or On Leave")
		c.Flags().Float64Var(&flagPartnerShare, "share", 0, "Profit share percentage (0-100)")
	}
	partnersCmd.AddCommand(partnersListCmd, partnersCreateCmd, partnersUpdateCmd, partnersDeleteCmd)
	rootCmd.AddCommand(partnersCmd)
}

func partnerInput(cmd *cobra.Command) resource.PartnerInput {
	var in resource.PartnerInput
	f := cmd.Flags()
	if f.Changed("name") {
		in.Name = resource.String(flagPartnerName)
	}
	if f.Changed("email") {
		in.Email = resource.String(flagPartnerEmail)
	}
	if f.Changed("company") {
		in.Company = resource.String(flagPartnerCompany)
	}
	if f.Changed("status") {
		in.Status = resource.String(flagPartnerStatus)
	}
	if f.Changed("share") {
		in.SharePercent = resource.Float(flagPartnerShare)
	}
	return in
}

func runPartnersList(cmd *cobra.Command, _ []string) error {
	s, err := openSession(false)
	if err != nil {
		return err
	}
	defer s.close()

	partners, err := s.svc.ListPartners(cmd.Context())
	if err != nil {
		return err
	}
	if len(partners) == 0 {
		fmt.Println("\n  " + cli.Muted("No partners yet.") + "\n")
		return nil
	}

	rows := make([][]string, len(partners))
	for i, p := range partners {
		rows[i] = []string{
			strconv.FormatInt(p.ID, 10),
			p.Name,
			p.Company,
			p.Email,
			cli.FormatPercent(p.SharePercent),
			cli.StatusText(s.classifier, p.Status),
		}
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:      "Partners",
		Headers:    []string{"ID", "Name", "Company", "Email", "Share", "Status"},
		Rows:       rows,
		RightAlign: []bool{true, false, false, false, true, false},
	}))
	fmt.Println()
	return nil
}

func runPartnersCreate(cmd *cobra.Command, _ []string) error {
	s, err := openSession(true)
	if err != nil {
		return err
	}
	defer s.close()

	p, err := s.svc.Partners.Create(cmd.Context(), partnerInput(cmd))
	if err != nil {
		return err
	}
	fmt.Println(cli.KV("ID", p.ID))
	return nil
}

func runPartnersUpdate(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	s, err := openSession(true)
	if err != nil {
		return err
	}
	defer s.close()

	_, err = s.svc.Partners.Update(cmd.Context(), id, partnerInput(cmd))
	return err
}

func runPartnersDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	s, err := openSession(true)
	if err != nil {
		return err
	}
	defer s.close()

	return s.svc.Partners.Delete(cmd.Context(), id)
}
