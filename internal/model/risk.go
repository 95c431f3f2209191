package model

import "time"

// RiskTier is an ordinal churn-risk category derived from an additive
// rule-based score.
type RiskTier string

// Risk tier constants in ascending order of severity.
const (
	RiskLow      RiskTier = "low"
	RiskMedium   RiskTier = "medium"
	RiskHigh     RiskTier = "high"
	RiskCritical RiskTier = "critical"
)

// Rank returns the tier's ordinal position (low=1 .. critical=4), used for
// threshold filtering and roster ordering. Unknown tiers rank 0, below low.
func (t RiskTier) Rank() int {
	switch t {
	case RiskLow:
		return 1
	case RiskMedium:
		return 2
	case RiskHigh:
		return 3
	case RiskCritical:
		return 4
	default:
		return 0
	}
}

// Valid reports whether the tier is one of the four defined constants.
func (t RiskTier) Valid() bool {
	return t.Rank() > 0
}

// ChurnRiskAssessment is the scorer's output for a single donor: the tier,
// the raw additive score, and one explanation string per triggered rule in
// rule-evaluation order.
type ChurnRiskAssessment struct {
	Tier              RiskTier
	RecommendedAction string
	RiskFactors       []string
	Score             int
}

// AtRiskDonor is one entry of the ranked at-risk roster.
type AtRiskDonor struct {
	LastDonationAt        time.Time // zero when the donor has never given
	DonorID               string
	DonorName             string
	Email                 string
	Stage                 LifecycleStage
	Assessment            ChurnRiskAssessment
	LifetimeValue         float64
	DaysSinceLastDonation int
	TotalDonations        int
}
