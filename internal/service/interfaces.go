// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/fernwood-labs/donorpulse/internal/model"
)

// DonorFilter defines filtering options for donor queries.
type DonorFilter struct {
	OrganizationID string
	Limit          int
	Offset         int
}

// Storage defines the contract for our persistence layer.
type Storage interface {
	// Organization operations
	SaveOrganization(ctx context.Context, org *model.Organization) error
	GetOrganization(ctx context.Context, id string) (*model.Organization, error)
	ListOrganizations(ctx context.Context) ([]model.Organization, error)

	// Donor operations
	SaveDonors(ctx context.Context, donors []model.Donor) error
	GetDonorByID(ctx context.Context, id string) (*model.Donor, error)
	GetDonorByName(ctx context.Context, organizationID, displayName string) (*model.Donor, error)
	ListDonors(ctx context.Context, filter DonorFilter) ([]model.Donor, error)

	// Donation operations
	SaveDonations(ctx context.Context, donations []model.Donation) error
	GetDonationsByDonor(ctx context.Context, donorID string) ([]model.Donation, error)

	// Evaluation feed: every donor of the organization with their full
	// ordered donation history, including donors with no gifts at all.
	GetDonorHistories(ctx context.Context, organizationID string) ([]model.DonorHistory, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// ReportWriter exports a finished lifecycle report to an external destination.
type ReportWriter interface {
	Write(ctx context.Context, report *model.LifecycleReport) error
}
