package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fernwood-labs/donorpulse/internal/cli"
	"github.com/fernwood-labs/donorpulse/internal/export"
	"github.com/fernwood-labs/donorpulse/internal/lifecycle"
	"github.com/fernwood-labs/donorpulse/internal/model"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the at-risk donor roster as CSV",
		Long: `Run a fresh evaluation and write the flattened at-risk roster as CSV,
suitable for hand-off to stewardship teams or a mail-merge tool.

Writes to stdout unless --out is given.`,
		RunE: runExport,
	}

	cmd.Flags().StringP("org", "o", "", "Organization ID (required)")
	cmd.Flags().String("as-of", "", "Evaluation date (YYYY-MM-DD, default: today)")
	cmd.Flags().String("out", "", "Output file (default: stdout)")
	cmd.Flags().String("risk-threshold", "", "Minimum risk tier to include (low, medium, high, critical)")
	_ = cmd.MarkFlagRequired("org")

	return cmd
}

func runExport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	orgID, _ := cmd.Flags().GetString("org")
	asOf, _ := cmd.Flags().GetString("as-of")
	outPath, _ := cmd.Flags().GetString("out")
	threshold, _ := cmd.Flags().GetString("risk-threshold")

	now, err := parseAsOf(asOf)
	if err != nil {
		return err
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	cfg := engineConfig()
	if threshold != "" {
		cfg.RiskThreshold = model.RiskTier(threshold)
	}

	engine, err := lifecycle.NewWithConfig(store, cfg)
	if err != nil {
		return err
	}

	report, err := engine.BuildReport(ctx, orgID, now)
	if err != nil {
		return err
	}

	out := os.Stdout
	if outPath != "" {
		f, createErr := os.Create(outPath)
		if createErr != nil {
			return fmt.Errorf("failed to create %s: %w", outPath, createErr)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	if err := export.WriteRoster(out, report); err != nil {
		return err
	}

	if outPath != "" {
		fmt.Fprintln(os.Stderr, cli.FormatSuccess(fmt.Sprintf(
			"Exported %d at-risk donors to %s", len(report.AtRiskDonors), outPath)))
	}

	return nil
}
