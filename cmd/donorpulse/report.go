package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fernwood-labs/donorpulse/internal/cli"
	"github.com/fernwood-labs/donorpulse/internal/export"
	"github.com/fernwood-labs/donorpulse/internal/lifecycle"
	"github.com/fernwood-labs/donorpulse/internal/sheets"
	"github.com/fernwood-labs/donorpulse/internal/tui"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Build the donor lifecycle report",
		Long: `Evaluate the full donor base of an organization: lifecycle stages,
churn-risk scores with explainable factors, acquisition-year cohorts, and
the ranked at-risk roster.

The evaluation instant defaults to now; pass --as-of to replay a past
snapshot.`,
		RunE: runReport,
	}

	cmd.Flags().StringP("org", "o", "", "Organization ID (required)")
	cmd.Flags().String("as-of", "", "Evaluation date (YYYY-MM-DD, default: today)")
	cmd.Flags().Bool("interactive", false, "Browse the at-risk roster interactively")
	cmd.Flags().String("csv", "", "Also write the at-risk roster to a CSV file")
	cmd.Flags().Bool("sheets", false, "Also publish the roster to Google Sheets")
	_ = cmd.MarkFlagRequired("org")

	return cmd
}

func runReport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	orgID, _ := cmd.Flags().GetString("org")
	asOf, _ := cmd.Flags().GetString("as-of")
	interactive, _ := cmd.Flags().GetBool("interactive")
	csvPath, _ := cmd.Flags().GetString("csv")
	toSheets, _ := cmd.Flags().GetBool("sheets")

	now, err := parseAsOf(asOf)
	if err != nil {
		return err
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	engine, err := lifecycle.NewWithConfig(store, engineConfig())
	if err != nil {
		return err
	}

	report, err := engine.BuildReport(ctx, orgID, now)
	if err != nil {
		return err
	}

	fmt.Println(cli.RenderReport(report))

	if csvPath != "" {
		f, createErr := os.Create(csvPath)
		if createErr != nil {
			return fmt.Errorf("failed to create %s: %w", csvPath, createErr)
		}
		defer func() { _ = f.Close() }()

		if writeErr := export.WriteRoster(f, report); writeErr != nil {
			return writeErr
		}
		fmt.Println(cli.FormatSuccess(fmt.Sprintf("Wrote at-risk roster to %s", csvPath)))
	}

	if toSheets {
		sheetsCfg := sheets.DefaultConfig()
		if envErr := sheetsCfg.LoadFromEnv(); envErr != nil {
			return envErr
		}
		if id := viper.GetString("sheets.spreadsheet_id"); id != "" {
			sheetsCfg.SpreadsheetID = id
		}

		writer, writerErr := sheets.NewWriter(ctx, sheetsCfg, slog.Default())
		if writerErr != nil {
			return writerErr
		}
		if writeErr := writer.Write(ctx, report); writeErr != nil {
			return writeErr
		}
		fmt.Println(cli.FormatSuccess("Published roster to Google Sheets"))
	}

	if interactive {
		return tui.Run(report.AtRiskDonors)
	}

	return nil
}
