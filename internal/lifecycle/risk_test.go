package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fernwood-labs/donorpulse/internal/model"
)

func TestScoreChurnRisk(t *testing.T) {
	tests := []struct {
		name        string
		agg         DonorAggregate
		wantScore   int
		wantTier    model.RiskTier
		wantFactors []string
	}{
		{
			name:        "active repeat donor scores zero",
			agg:         DonorAggregate{DonationCount: 3, DaysSinceLastDonation: 10, AvgDonationIntervalDays: 195, LifetimeValue: 6000},
			wantScore:   0,
			wantTier:    model.RiskLow,
			wantFactors: nil,
		},
		{
			name:      "single gift gone silent for over a year",
			agg:       DonorAggregate{DonationCount: 1, DaysSinceLastDonation: 800, LifetimeValue: 100},
			wantScore: 55,
			wantTier:  model.RiskHigh,
			wantFactors: []string{
				"No donation in 800 days (12+ months)",
				"Limited giving history (< 3 donations)",
			},
		},
		{
			name:      "never donated prospect",
			agg:       DonorAggregate{DonationCount: 0, DaysSinceLastDonation: NeverDonatedDays},
			wantScore: 55,
			wantTier:  model.RiskHigh,
			wantFactors: []string{
				"No donation in 999999 days (12+ months)",
				"Limited giving history (< 3 donations)",
			},
		},
		{
			name:      "six month band with overdue pattern",
			agg:       DonorAggregate{DonationCount: 6, DaysSinceLastDonation: 200, AvgDonationIntervalDays: 60, LifetimeValue: 900},
			wantScore: 45,
			wantTier:  model.RiskMedium,
			wantFactors: []string{
				"No donation in 200 days (6+ months)",
				"Overdue based on donation pattern",
			},
		},
		{
			name:      "high value donor going quiet stacks every applicable rule",
			agg:       DonorAggregate{DonationCount: 2, DaysSinceLastDonation: 400, AvgDonationIntervalDays: 100, LifetimeValue: 8000},
			wantScore: 100,
			wantTier:  model.RiskCritical,
			wantFactors: []string{
				"No donation in 400 days (12+ months)",
				"Overdue based on donation pattern",
				"Limited giving history (< 3 donations)",
				"High-value donor showing inactivity",
			},
		},
		{
			name:        "overdue rule needs a real interval",
			agg:         DonorAggregate{DonationCount: 3, DaysSinceLastDonation: 89, AvgDonationIntervalDays: 0, LifetimeValue: 100},
			wantScore:   0,
			wantTier:    model.RiskLow,
			wantFactors: nil,
		},
		{
			name:      "overdue only fires past one and a half intervals",
			agg:       DonorAggregate{DonationCount: 4, DaysSinceLastDonation: 89, AvgDonationIntervalDays: 50, LifetimeValue: 100},
			wantScore: 25,
			wantTier:  model.RiskLow,
			wantFactors: []string{
				"Overdue based on donation pattern",
			},
		},
		{
			name:        "high value but still active",
			agg:         DonorAggregate{DonationCount: 10, DaysSinceLastDonation: 179, AvgDonationIntervalDays: 500, LifetimeValue: 50000},
			wantScore:   10,
			wantTier:    model.RiskLow,
			wantFactors: []string{"No donation in 179 days (3+ months)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreChurnRisk(tt.agg, DefaultMajorGiftThreshold)

			assert.Equal(t, tt.wantScore, got.Score)
			assert.Equal(t, tt.wantTier, got.Tier)
			assert.Equal(t, tt.wantFactors, got.RiskFactors)
		})
	}
}

func TestScoreChurnRisk_InactivityBandBoundaries(t *testing.T) {
	// Fixed donor shape so only the recency gap varies. The interval is
	// large enough that the overdue rule never fires.
	score := func(days int) int {
		agg := DonorAggregate{
			DonationCount:           5,
			DaysSinceLastDonation:   days,
			AvgDonationIntervalDays: 1000,
			LifetimeValue:           100,
		}
		return ScoreChurnRisk(agg, DefaultMajorGiftThreshold).Score
	}

	assert.Equal(t, 0, score(89))
	assert.Equal(t, 10, score(90))
	assert.Equal(t, 10, score(179))
	assert.Equal(t, 20, score(180))
	assert.Equal(t, 20, score(364))
	assert.Equal(t, 40, score(365))

	// A longer gap never scores lower.
	prev := 0
	for days := 0; days <= 800; days += 7 {
		s := score(days)
		assert.GreaterOrEqual(t, s, prev, "score regressed at %d days", days)
		prev = s
	}
}

func TestScoreChurnRisk_ExactlyOneInactivityBand(t *testing.T) {
	agg := DonorAggregate{
		DonationCount:           5,
		DaysSinceLastDonation:   400,
		AvgDonationIntervalDays: 1000,
		LifetimeValue:           100,
	}

	got := ScoreChurnRisk(agg, DefaultMajorGiftThreshold)

	// Only the 12+ month band fires, never the 6+ or 3+ bands underneath it.
	assert.Equal(t, 40, got.Score)
	assert.Len(t, got.RiskFactors, 1)
}

func TestTierForScore(t *testing.T) {
	tests := []struct {
		score int
		want  model.RiskTier
	}{
		{0, model.RiskLow},
		{29, model.RiskLow},
		{30, model.RiskMedium},
		{49, model.RiskMedium},
		{50, model.RiskHigh},
		{69, model.RiskHigh},
		{70, model.RiskCritical},
		{100, model.RiskCritical},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tierForScore(tt.score), "score %d", tt.score)
	}
}
