package model

import "time"

// StageSummary aggregates the donors currently in one lifecycle stage.
type StageSummary struct {
	Stage                    LifecycleStage
	DonorCount               int
	AvgDaysSinceLastDonation float64
	AvgLifetimeValue         float64
}

// CohortSummary describes one acquisition-year cohort: donors whose first
// gift fell in that year, with retention checked at fixed offsets from each
// donor's own first gift.
type CohortSummary struct {
	Period           string // acquisition year, e.g. "2024"
	InitialCount     int
	RetainedMonth1   int
	RetainedMonth3   int
	RetainedMonth6   int
	RetainedMonth12  int
	RetentionRate12M float64
	AvgCohortValue   float64
}

// SummaryMetrics holds the organization-wide rollup for one evaluation.
type SummaryMetrics struct {
	TotalDonors       int
	ActiveDonors      int // repeat + major
	AtRiskCount       int
	CriticalRiskCount int
	MajorDonors       int
	LapsedDonors      int
	LostDonors        int
	RetentionRate     float64 // active/total as a percentage, 0 when no donors
}

// LifecycleReport is the immutable output of one full evaluation run, tied
// to its snapshot instant.
type LifecycleReport struct {
	SnapshotAt     time.Time
	OrganizationID string
	Stages         []StageSummary
	Cohorts        []CohortSummary
	AtRiskDonors   []AtRiskDonor
	Summary        SummaryMetrics
}
