// Package lifecycle implements the donor lifecycle classification and
// churn-risk scoring engine. Every function in this package is a pure
// function of its inputs: the evaluation instant is always passed in
// explicitly, never sampled from the wall clock.
package lifecycle

import (
	"time"

	"github.com/fernwood-labs/donorpulse/internal/model"
)

// NeverDonatedDays is the recency value assigned to donors with no gifts.
// A very large finite integer rather than infinity so that every threshold
// comparison stays well-defined; it sorts after every real recency gap.
const NeverDonatedDays = 999999

// DonorAggregate is the compact per-donor summary the classifier and scorer
// operate on. It is ephemeral: rebuilt from the donation history on every
// evaluation run.
type DonorAggregate struct {
	LastDonationAt          time.Time // zero when the donor has never given
	FirstDonationAt         time.Time // zero when the donor has never given
	DonorID                 string
	DonationCount           int
	DaysSinceLastDonation   int
	LifetimeValue           float64
	AvgDonationIntervalDays float64
}

// HasDonated reports whether the donor has at least one gift on record.
func (a DonorAggregate) HasDonated() bool {
	return a.DonationCount > 0
}

// BuildAggregate reduces a donor's donation history to a DonorAggregate.
// The recency gap is measured against the supplied evaluation instant so
// that all donors in one report share the same reference point.
//
// The average interval is span/(count-1), an approximation of gift cadence
// from total span and count rather than a mean of individual gaps.
func BuildAggregate(donorID string, donations []model.Donation, now time.Time) DonorAggregate {
	agg := DonorAggregate{
		DonorID:               donorID,
		DonationCount:         len(donations),
		DaysSinceLastDonation: NeverDonatedDays,
	}

	for _, d := range donations {
		agg.LifetimeValue += d.Amount
		if agg.FirstDonationAt.IsZero() || d.ReceivedAt.Before(agg.FirstDonationAt) {
			agg.FirstDonationAt = d.ReceivedAt
		}
		if d.ReceivedAt.After(agg.LastDonationAt) {
			agg.LastDonationAt = d.ReceivedAt
		}
	}

	if !agg.LastDonationAt.IsZero() {
		agg.DaysSinceLastDonation = daysBetween(agg.LastDonationAt, now)
	}

	if agg.DonationCount > 1 {
		span := daysBetween(agg.FirstDonationAt, agg.LastDonationAt)
		agg.AvgDonationIntervalDays = float64(span) / float64(agg.DonationCount-1)
	}

	return agg
}

// daysBetween returns the number of whole days from a to b.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
