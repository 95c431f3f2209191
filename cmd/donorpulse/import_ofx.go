package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/fernwood-labs/donorpulse/internal/cli"
	"github.com/fernwood-labs/donorpulse/internal/common"
	"github.com/fernwood-labs/donorpulse/internal/model"
	"github.com/fernwood-labs/donorpulse/internal/ofx"
)

func importOFXCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ofx [files...]",
		Short: "Import donations from OFX/QFX bank statements",
		Long: `Import donations from OFX or QFX files exported from the organization's
bank. Only credit-side transactions are considered; each is matched to a
donor by payer name, creating the donor if needed.

Examples:
  # Import a single statement
  donorpulse import ofx --org acme ~/Downloads/jan_2026.qfx

  # Import a whole directory of statements
  donorpulse import ofx --org acme ~/Downloads/*.qfx`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImportOFX,
	}

	cmd.Flags().StringP("org", "o", "", "Organization ID (required)")
	cmd.Flags().BoolP("dry-run", "d", false, "Preview import without saving")
	_ = cmd.MarkFlagRequired("org")

	return cmd
}

func runImportOFX(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	orgID, _ := cmd.Flags().GetString("org")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	// Expand globs and collect all files
	var allFiles []string
	for _, pattern := range args {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			if _, err := os.Stat(pattern); err == nil {
				allFiles = append(allFiles, pattern)
			} else {
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
		} else {
			allFiles = append(allFiles, matches...)
		}
	}

	if len(allFiles) == 0 {
		return fmt.Errorf("no files found to import")
	}

	parser := ofx.NewParser()
	var allGifts []ofx.Gift

	for _, filePath := range allFiles {
		slog.Info("Processing file", "file", filepath.Base(filePath))

		f, err := os.Open(filePath)
		if err != nil {
			slog.Error("Failed to open file", "file", filePath, "error", err)
			continue
		}

		gifts, err := parser.ParseFile(ctx, f)
		_ = f.Close()
		if err != nil {
			slog.Error("Failed to parse file", "file", filePath, "error", err)
			continue
		}

		allGifts = append(allGifts, gifts...)
	}

	if len(allGifts) == 0 {
		return common.ErrNoDonations
	}

	if dryRun {
		fmt.Println(cli.FormatWarning(fmt.Sprintf(
			"Dry run: %d candidate donations parsed from %d files, nothing saved",
			len(allGifts), len(allFiles))))
		return nil
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if _, err := store.GetOrganization(ctx, orgID); err != nil {
		return err
	}

	donorIDs := make(map[string]string)
	var donations []model.Donation
	for _, gift := range allGifts {
		if gift.PayerName == "" {
			slog.Warn("Skipping gift with no payer name",
				"fitid", gift.FiTID,
				"amount", gift.Amount)
			continue
		}

		donorID, ok := donorIDs[gift.PayerName]
		if !ok {
			donor, lookupErr := store.GetDonorByName(ctx, orgID, gift.PayerName)
			switch {
			case lookupErr == nil:
				donorID = donor.ID
			case !errors.Is(lookupErr, common.ErrNotFound):
				return lookupErr
			default:
				donorID = uuid.NewString()
				saveErr := store.SaveDonors(ctx, []model.Donor{{
					ID:             donorID,
					OrganizationID: orgID,
					DisplayName:    gift.PayerName,
				}})
				if saveErr != nil {
					return saveErr
				}
			}
			donorIDs[gift.PayerName] = donorID
		}

		donation := model.Donation{
			ID:         uuid.NewString(),
			DonorID:    donorID,
			ReceivedAt: gift.PostedAt,
			Amount:     gift.Amount,
			Source:     "ofx",
		}
		donation.Hash = donation.GenerateHash()
		donations = append(donations, donation)
	}

	if len(donations) == 0 {
		return common.ErrNoDonations
	}

	if err := store.SaveDonations(ctx, donations); err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf(
		"Imported %d donations across %d donors from %d files",
		len(donations), len(donorIDs), len(allFiles))))
	return nil
}
