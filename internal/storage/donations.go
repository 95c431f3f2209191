package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fernwood-labs/donorpulse/internal/model"
)

// SaveDonations saves multiple donations to the database. Duplicate gifts
// (same donor, date, and amount) are silently skipped via the hash column.
func (s *SQLiteStorage) SaveDonations(ctx context.Context, donations []model.Donation) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateDonations(donations); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO donations (id, donor_id, hash, received_at, amount, source)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, donation := range donations {
		if donation.Hash == "" {
			donation.Hash = donation.GenerateHash()
		}
		source := donation.Source
		if source == "" {
			source = "manual"
		}
		_, err := stmt.ExecContext(ctx,
			donation.ID,
			donation.DonorID,
			donation.Hash,
			donation.ReceivedAt,
			donation.Amount,
			source,
		)
		if err != nil {
			return fmt.Errorf("failed to save donation %s: %w", donation.ID, err)
		}
	}

	return tx.Commit()
}

// GetDonationsByDonor returns a donor's donations ordered by received date.
func (s *SQLiteStorage) GetDonationsByDonor(ctx context.Context, donorID string) ([]model.Donation, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(donorID, "donorID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, donor_id, hash, received_at, amount, source
		FROM donations WHERE donor_id = ? ORDER BY received_at
	`, donorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get donations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var donations []model.Donation
	for rows.Next() {
		var donation model.Donation
		if err := rows.Scan(
			&donation.ID,
			&donation.DonorID,
			&donation.Hash,
			&donation.ReceivedAt,
			&donation.Amount,
			&donation.Source,
		); err != nil {
			return nil, fmt.Errorf("failed to scan donation: %w", err)
		}
		donations = append(donations, donation)
	}
	return donations, rows.Err()
}

// GetDonorHistories returns every donor of the organization with their full
// ordered donation history. Donors with no gifts appear with an empty
// history; the LEFT JOIN keeps them in the evaluation feed so they can be
// classified as prospects.
func (s *SQLiteStorage) GetDonorHistories(ctx context.Context, organizationID string) ([]model.DonorHistory, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(organizationID, "organizationID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT
			d.id, d.organization_id, d.display_name, COALESCE(d.email, ''), d.created_at,
			g.id, g.hash, g.received_at, g.amount, g.source
		FROM donors d
		LEFT JOIN donations g ON g.donor_id = d.id
		WHERE d.organization_id = ?
		ORDER BY d.display_name, g.received_at
	`, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query donor histories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var histories []model.DonorHistory
	index := make(map[string]int)

	for rows.Next() {
		var donor model.Donor
		var giftID, giftHash, giftSource sql.NullString
		var receivedAt sql.NullTime
		var amount sql.NullFloat64

		if err := rows.Scan(
			&donor.ID, &donor.OrganizationID, &donor.DisplayName, &donor.Email, &donor.CreatedAt,
			&giftID, &giftHash, &receivedAt, &amount, &giftSource,
		); err != nil {
			return nil, fmt.Errorf("failed to scan donor history row: %w", err)
		}

		i, ok := index[donor.ID]
		if !ok {
			i = len(histories)
			index[donor.ID] = i
			histories = append(histories, model.DonorHistory{Donor: donor})
		}

		if !giftID.Valid {
			continue // prospect row from the LEFT JOIN
		}

		histories[i].Donations = append(histories[i].Donations, model.Donation{
			ID:         giftID.String,
			DonorID:    donor.ID,
			Hash:       giftHash.String,
			ReceivedAt: receivedAt.Time,
			Amount:     amount.Float64,
			Source:     giftSource.String,
		})
	}

	return histories, rows.Err()
}
