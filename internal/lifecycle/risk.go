package lifecycle

import (
	"fmt"

	"github.com/fernwood-labs/donorpulse/internal/model"
)

// Risk rule weights. Scoring is strictly additive over independent rules;
// the three inactivity bands are mutually exclusive, everything else can
// stack.
const (
	weightLongInactivity      = 40
	weightMediumInactivity    = 20
	weightShortInactivity     = 10
	weightOverdueVsPattern    = 25
	weightThinHistory         = 15
	weightHighValueInactivity = 20
)

// Tier thresholds, boundary-inclusive.
const (
	scoreCritical = 70
	scoreHigh     = 50
	scoreMedium   = 30
)

// ScoreChurnRisk computes the additive churn-risk score for one donor and
// maps it to a tier. Each triggered rule appends its own factor string, in
// rule-evaluation order, so the score is fully explainable.
//
// Donors who have never given carry the sentinel recency gap and therefore
// trigger the long-inactivity and thin-history rules, landing at high risk
// even though they have never churned. That keeps never-converted prospects
// visible on the at-risk roster; callers who want to exempt them can filter
// on DonorAggregate.HasDonated.
func ScoreChurnRisk(agg DonorAggregate, highValueThreshold float64) model.ChurnRiskAssessment {
	var factors []string
	score := 0

	// Inactivity period
	switch {
	case agg.DaysSinceLastDonation >= 365:
		factors = append(factors, fmt.Sprintf("No donation in %d days (12+ months)", agg.DaysSinceLastDonation))
		score += weightLongInactivity
	case agg.DaysSinceLastDonation >= 180:
		factors = append(factors, fmt.Sprintf("No donation in %d days (6+ months)", agg.DaysSinceLastDonation))
		score += weightMediumInactivity
	case agg.DaysSinceLastDonation >= 90:
		factors = append(factors, fmt.Sprintf("No donation in %d days (3+ months)", agg.DaysSinceLastDonation))
		score += weightShortInactivity
	}

	// Donation pattern deviation
	if agg.AvgDonationIntervalDays > 0 {
		expectedNext := agg.AvgDonationIntervalDays * 1.5
		if float64(agg.DaysSinceLastDonation) > expectedNext {
			factors = append(factors, "Overdue based on donation pattern")
			score += weightOverdueVsPattern
		}
	}

	// Limited engagement
	if agg.DonationCount < 3 {
		factors = append(factors, "Limited giving history (< 3 donations)")
		score += weightThinHistory
	}

	// High-value donor risk
	if agg.LifetimeValue >= highValueThreshold && agg.DaysSinceLastDonation >= 180 {
		factors = append(factors, "High-value donor showing inactivity")
		score += weightHighValueInactivity
	}

	return model.ChurnRiskAssessment{
		Tier:        tierForScore(score),
		Score:       score,
		RiskFactors: factors,
	}
}

func tierForScore(score int) model.RiskTier {
	switch {
	case score >= scoreCritical:
		return model.RiskCritical
	case score >= scoreHigh:
		return model.RiskHigh
	case score >= scoreMedium:
		return model.RiskMedium
	default:
		return model.RiskLow
	}
}
