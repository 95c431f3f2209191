package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fernwood-labs/donorpulse/internal/common"
	"github.com/fernwood-labs/donorpulse/internal/model"
)

// SaveOrganization inserts or updates an organization.
func (s *SQLiteStorage) SaveOrganization(ctx context.Context, org *model.Organization) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateOrganization(org); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO organizations (id, name) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name
	`, org.ID, org.Name)
	if err != nil {
		return fmt.Errorf("failed to save organization: %w", err)
	}
	return nil
}

// GetOrganization retrieves an organization by ID.
func (s *SQLiteStorage) GetOrganization(ctx context.Context, id string) (*model.Organization, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	var org model.Organization
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, created_at FROM organizations WHERE id = ?
	`, id).Scan(&org.ID, &org.Name, &org.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("organization %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}
	return &org, nil
}

// ListOrganizations returns all organizations ordered by name.
func (s *SQLiteStorage) ListOrganizations(ctx context.Context) ([]model.Organization, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, created_at FROM organizations ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var orgs []model.Organization
	for rows.Next() {
		var org model.Organization
		if err := rows.Scan(&org.ID, &org.Name, &org.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan organization: %w", err)
		}
		orgs = append(orgs, org)
	}
	return orgs, rows.Err()
}
