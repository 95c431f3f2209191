// Package export produces the flattened tabular projection of the at-risk
// roster for delimited-text export. Column order and cell formatting are
// part of the contract with downstream spreadsheet consumers, so changes
// here are breaking.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fernwood-labs/donorpulse/internal/model"
)

// RosterHeader is the fixed column order of the at-risk export.
var RosterHeader = []string{
	"Donor Name",
	"Email",
	"Last Donation Date",
	"Days Since Last Donation",
	"Total Donations",
	"Lifetime Value",
	"Current Stage",
	"Risk Level",
	"Risk Factors",
	"Recommended Action",
}

// RosterRow flattens one at-risk donor into export cells.
func RosterRow(d model.AtRiskDonor) []string {
	email := d.Email
	if email == "" {
		email = "N/A"
	}

	lastDonation := "Never"
	if !d.LastDonationAt.IsZero() {
		lastDonation = d.LastDonationAt.Format("2006-01-02")
	}

	return []string{
		d.DonorName,
		email,
		lastDonation,
		strconv.Itoa(d.DaysSinceLastDonation),
		strconv.Itoa(d.TotalDonations),
		FormatCurrency(d.LifetimeValue),
		string(d.Stage),
		strings.ToUpper(string(d.Assessment.Tier)),
		strings.Join(d.Assessment.RiskFactors, "; "),
		d.Assessment.RecommendedAction,
	}
}

// WriteRoster writes the at-risk roster of a report as CSV.
func WriteRoster(w io.Writer, report *model.LifecycleReport) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(RosterHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, donor := range report.AtRiskDonors {
		if err := writer.Write(RosterRow(donor)); err != nil {
			return fmt.Errorf("failed to write row for %s: %w", donor.DonorName, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

// FormatCurrency renders an amount as dollars with thousands separators and
// two decimals, e.g. 6000 -> "$6,000.00".
func FormatCurrency(amount float64) string {
	s := strconv.FormatFloat(amount, 'f', 2, 64)

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	whole, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	out := "$" + b.String() + "." + frac
	if neg {
		out = "-" + out
	}
	return out
}
