package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fernwood-labs/donorpulse/internal/common"
	"github.com/fernwood-labs/donorpulse/internal/model"
	"github.com/fernwood-labs/donorpulse/internal/service"
)

// SaveDonors saves multiple donors to the database. On a display-name
// collision within the organization, the email is refreshed if the new row
// carries one.
func (s *SQLiteStorage) SaveDonors(ctx context.Context, donors []model.Donor) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateDonors(donors); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO donors (id, organization_id, display_name, email)
		VALUES (?, ?, ?, NULLIF(?, ''))
		ON CONFLICT(organization_id, display_name) DO UPDATE SET
			email = COALESCE(NULLIF(excluded.email, ''), donors.email)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, donor := range donors {
		if _, err := stmt.ExecContext(ctx, donor.ID, donor.OrganizationID, donor.DisplayName, donor.Email); err != nil {
			return fmt.Errorf("failed to save donor %s: %w", donor.DisplayName, err)
		}
	}

	return tx.Commit()
}

// GetDonorByID retrieves a donor by ID.
func (s *SQLiteStorage) GetDonorByID(ctx context.Context, id string) (*model.Donor, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	return s.scanDonor(s.db.QueryRowContext(ctx, `
		SELECT id, organization_id, display_name, COALESCE(email, ''), created_at
		FROM donors WHERE id = ?
	`, id), id)
}

// GetDonorByName retrieves a donor by display name within an organization.
func (s *SQLiteStorage) GetDonorByName(ctx context.Context, organizationID, displayName string) (*model.Donor, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(organizationID, "organizationID"); err != nil {
		return nil, err
	}
	if err := validateString(displayName, "displayName"); err != nil {
		return nil, err
	}

	return s.scanDonor(s.db.QueryRowContext(ctx, `
		SELECT id, organization_id, display_name, COALESCE(email, ''), created_at
		FROM donors WHERE organization_id = ? AND display_name = ?
	`, organizationID, displayName), displayName)
}

func (s *SQLiteStorage) scanDonor(row *sql.Row, key string) (*model.Donor, error) {
	var donor model.Donor
	err := row.Scan(&donor.ID, &donor.OrganizationID, &donor.DisplayName, &donor.Email, &donor.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("donor %s: %w", key, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get donor: %w", err)
	}
	return &donor, nil
}

// ListDonors returns donors matching the filter, ordered by display name.
func (s *SQLiteStorage) ListDonors(ctx context.Context, filter service.DonorFilter) ([]model.Donor, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(filter.OrganizationID, "organizationID"); err != nil {
		return nil, err
	}

	query := `
		SELECT id, organization_id, display_name, COALESCE(email, ''), created_at
		FROM donors WHERE organization_id = ? ORDER BY display_name
	`
	args := []any{filter.OrganizationID}
	if filter.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list donors: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var donors []model.Donor
	for rows.Next() {
		var donor model.Donor
		if err := rows.Scan(&donor.ID, &donor.OrganizationID, &donor.DisplayName, &donor.Email, &donor.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan donor: %w", err)
		}
		donors = append(donors, donor)
	}
	return donors, rows.Err()
}
