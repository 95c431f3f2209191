package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fernwood-labs/donorpulse/internal/model"
)

// Validation errors.
var (
	ErrNilContext     = errors.New("context cannot be nil")
	ErrEmptyString    = errors.New("string parameter cannot be empty")
	ErrNilParameter   = errors.New("parameter cannot be nil")
	ErrEmptySlice     = errors.New("slice cannot be empty")
	ErrInvalidDonor   = errors.New("invalid donor")
	ErrInvalidGift    = errors.New("invalid donation")
	ErrInvalidOrg     = errors.New("invalid organization")
	ErrNegativeAmount = errors.New("donation amount cannot be negative")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateOrganization validates an organization.
func validateOrganization(org *model.Organization) error {
	if org == nil {
		return fmt.Errorf("%w: organization", ErrNilParameter)
	}
	if strings.TrimSpace(org.ID) == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidOrg)
	}
	if strings.TrimSpace(org.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidOrg)
	}
	return nil
}

// validateDonors validates a slice of donors.
func validateDonors(donors []model.Donor) error {
	if donors == nil {
		return fmt.Errorf("%w: donors", ErrNilParameter)
	}
	if len(donors) == 0 {
		return fmt.Errorf("%w: donors", ErrEmptySlice)
	}

	for i, donor := range donors {
		if err := validateDonor(&donor); err != nil {
			return fmt.Errorf("donor at index %d: %w", i, err)
		}
	}
	return nil
}

// validateDonor validates a single donor.
func validateDonor(donor *model.Donor) error {
	if donor == nil {
		return fmt.Errorf("%w: donor", ErrNilParameter)
	}
	if donor.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidDonor)
	}
	if donor.OrganizationID == "" {
		return fmt.Errorf("%w: missing organization ID", ErrInvalidDonor)
	}
	if strings.TrimSpace(donor.DisplayName) == "" {
		return fmt.Errorf("%w: missing display name", ErrInvalidDonor)
	}
	return nil
}

// validateDonations validates a slice of donations.
func validateDonations(donations []model.Donation) error {
	if donations == nil {
		return fmt.Errorf("%w: donations", ErrNilParameter)
	}
	if len(donations) == 0 {
		return fmt.Errorf("%w: donations", ErrEmptySlice)
	}

	for i, donation := range donations {
		if err := validateDonation(&donation); err != nil {
			return fmt.Errorf("donation at index %d: %w", i, err)
		}
	}
	return nil
}

// validateDonation validates a single donation.
func validateDonation(donation *model.Donation) error {
	if donation == nil {
		return fmt.Errorf("%w: donation", ErrNilParameter)
	}
	if donation.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidGift)
	}
	if donation.DonorID == "" {
		return fmt.Errorf("%w: missing donor ID", ErrInvalidGift)
	}
	if donation.ReceivedAt.IsZero() {
		return fmt.Errorf("%w: missing received date", ErrInvalidGift)
	}
	if donation.Amount < 0 {
		return fmt.Errorf("%w: %.2f", ErrNegativeAmount, donation.Amount)
	}
	return nil
}
