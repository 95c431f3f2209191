package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/fernwood-labs/donorpulse/internal/cli"
	"github.com/fernwood-labs/donorpulse/internal/common"
	"github.com/fernwood-labs/donorpulse/internal/model"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import donation histories",
	}

	cmd.AddCommand(importCSVCmd())
	cmd.AddCommand(importOFXCmd())

	return cmd
}

func importCSVCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "csv [file]",
		Short: "Import donations from a CSV export",
		Long: `Import donations from a CSV file with a header row and the columns:

  donor_name, email, date, amount

Dates use YYYY-MM-DD. Donors are deduplicated by display name within the
organization; duplicate gifts (same donor, date, amount) are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: runImportCSV,
	}

	cmd.Flags().StringP("org", "o", "", "Organization ID (required)")
	cmd.Flags().BoolP("dry-run", "d", false, "Preview import without saving")
	_ = cmd.MarkFlagRequired("org")

	return cmd
}

type csvGift struct {
	receivedAt time.Time
	donorName  string
	email      string
	amount     float64
}

func runImportCSV(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	orgID, _ := cmd.Flags().GetString("org")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", args[0], err)
	}
	defer func() { _ = f.Close() }()

	gifts, err := parseGiftCSV(f)
	if err != nil {
		return err
	}
	if len(gifts) == 0 {
		return common.ErrNoDonations
	}

	if dryRun {
		fmt.Println(cli.FormatWarning(fmt.Sprintf(
			"Dry run: %d donations parsed from %s, nothing saved", len(gifts), args[0])))
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

	bar := progressbar.Default(int64(len(gifts)), "importing")

	// Donors first so every gift has a target; dedup by display name.
	donorIDs := make(map[string]string)
	var donations []model.Donation
	for _, gift := range gifts {
		donorID, ok := donorIDs[gift.donorName]
		if !ok {
			donor, lookupErr := store.GetDonorByName(ctx, orgID, gift.donorName)
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
					DisplayName:    gift.donorName,
					Email:          gift.email,
				}})
				if saveErr != nil {
					return saveErr
				}
			}
			donorIDs[gift.donorName] = donorID
		}

		donation := model.Donation{
			ID:         uuid.NewString(),
			DonorID:    donorID,
			ReceivedAt: gift.receivedAt,
			Amount:     gift.amount,
			Source:     "csv",
		}
		donation.Hash = donation.GenerateHash()
		donations = append(donations, donation)
		_ = bar.Add(1)
	}

	if err := store.SaveDonations(ctx, donations); err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf(
		"Imported %d donations across %d donors", len(donations), len(donorIDs))))
	return nil
}

// parseGiftCSV reads the donor_name,email,date,amount format.
func parseGiftCSV(r io.Reader) ([]csvGift, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: missing header row", common.ErrMalformedFile)
	}
	if len(header) < 4 {
		return nil, fmt.Errorf("%w: want donor_name,email,date,amount", common.ErrMalformedFile)
	}

	var gifts []csvGift
	line := 1
	for {
		record, readErr := reader.Read()
		if readErr == io.EOF {
			break
		}
		line++
		if readErr != nil {
			return nil, fmt.Errorf("%w: line %d: %v", common.ErrMalformedFile, line, readErr)
		}

		name := strings.TrimSpace(record[0])
		if name == "" {
			return nil, fmt.Errorf("%w: line %d: empty donor name", common.ErrMalformedFile, line)
		}

		receivedAt, parseErr := time.Parse("2006-01-02", strings.TrimSpace(record[2]))
		if parseErr != nil {
			return nil, fmt.Errorf("%w: line %d: bad date %q", common.ErrMalformedFile, line, record[2])
		}

		amount, parseErr := strconv.ParseFloat(strings.TrimSpace(record[3]), 64)
		if parseErr != nil || amount < 0 {
			return nil, fmt.Errorf("%w: line %d: bad amount %q", common.ErrMalformedFile, line, record[3])
		}

		gifts = append(gifts, csvGift{
			donorName:  name,
			email:      strings.TrimSpace(record[1]),
			receivedAt: receivedAt,
			amount:     amount,
		})
	}

	return gifts, nil
}
