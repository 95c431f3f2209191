package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/fernwood-labs/donorpulse/internal/cli"
	"github.com/fernwood-labs/donorpulse/internal/model"
)

func organizationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "organizations",
		Aliases: []string{"orgs"},
		Short:   "Manage organizations",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List organizations",
		RunE:  runOrganizationsList,
	}

	add := &cobra.Command{
		Use:   "add [name]",
		Short: "Add an organization",
		Args:  cobra.ExactArgs(1),
		RunE:  runOrganizationsAdd,
	}
	add.Flags().String("id", "", "Organization ID (default: generated)")

	cmd.AddCommand(list)
	cmd.AddCommand(add)
	return cmd
}

func runOrganizationsList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	orgs, err := store.ListOrganizations(ctx)
	if err != nil {
		return err
	}

	if len(orgs) == 0 {
		fmt.Println(cli.FormatWarning("No organizations found"))
		return nil
	}

	for _, org := range orgs {
		fmt.Printf("%-36s  %s\n", org.ID, org.Name)
	}
	return nil
}

func runOrganizationsAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	id, _ := cmd.Flags().GetString("id")
	if id == "" {
		id = uuid.NewString()
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	org := model.Organization{ID: id, Name: args[0]}
	if err := store.SaveOrganization(ctx, &org); err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added organization %s (%s)", org.Name, org.ID)))
	return nil
}
