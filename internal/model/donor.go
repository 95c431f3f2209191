// Package model defines the core domain models used throughout the application.
package model

import "time"

// Organization represents a nonprofit whose donor base is being analyzed.
type Organization struct {
	CreatedAt time.Time
	ID        string
	Name      string
}

// Donor represents a giving (or prospective) party belonging to an organization.
type Donor struct {
	CreatedAt      time.Time
	ID             string
	OrganizationID string
	DisplayName    string
	Email          string // empty when no email contact point is on file
}

// DonorHistory pairs a donor with their full ordered donation history.
// It is the unit of input to the lifecycle engine: one evaluation run
// consumes a slice of these, all sharing the same evaluation instant.
type DonorHistory struct {
	Donor     Donor
	Donations []Donation
}
