package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/fernwood-labs/donorpulse/internal/cli"
	"github.com/fernwood-labs/donorpulse/internal/model"
	"github.com/fernwood-labs/donorpulse/internal/service"
)

func donorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "donors",
		Short: "Manage donors",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List donors of an organization",
		RunE:  runDonorsList,
	}
	list.Flags().StringP("org", "o", "", "Organization ID (required)")
	list.Flags().Int("limit", 0, "Maximum donors to list (0 = all)")
	_ = list.MarkFlagRequired("org")

	add := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a donor",
		Args:  cobra.ExactArgs(1),
		RunE:  runDonorsAdd,
	}
	add.Flags().StringP("org", "o", "", "Organization ID (required)")
	add.Flags().String("email", "", "Donor email")
	_ = add.MarkFlagRequired("org")

	cmd.AddCommand(list)
	cmd.AddCommand(add)
	return cmd
}

func runDonorsList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	orgID, _ := cmd.Flags().GetString("org")
	limit, _ := cmd.Flags().GetInt("limit")

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	donors, err := store.ListDonors(ctx, service.DonorFilter{
		OrganizationID: orgID,
		Limit:          limit,
	})
	if err != nil {
		return err
	}

	if len(donors) == 0 {
		fmt.Println(cli.FormatWarning("No donors found"))
		return nil
	}

	for _, donor := range donors {
		email := donor.Email
		if email == "" {
			email = "-"
		}
		fmt.Printf("%-36s  %-30s  %s\n", donor.ID, donor.DisplayName, email)
	}
	return nil
}

func runDonorsAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	orgID, _ := cmd.Flags().GetString("org")
	email, _ := cmd.Flags().GetString("email")

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if _, err := store.GetOrganization(ctx, orgID); err != nil {
		return err
	}

	donor := model.Donor{
		ID:             uuid.NewString(),
		OrganizationID: orgID,
		DisplayName:    args[0],
		Email:          email,
	}
	if err := store.SaveDonors(ctx, []model.Donor{donor}); err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added donor %s (%s)", donor.DisplayName, donor.ID)))
	return nil
}
