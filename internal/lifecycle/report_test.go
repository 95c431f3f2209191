package lifecycle

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fernwood-labs/donorpulse/internal/common"
	"github.com/fernwood-labs/donorpulse/internal/model"
)

var reportNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func donorHistory(id, name string, gifts ...model.Donation) model.DonorHistory {
	return model.DonorHistory{
		Donor: model.Donor{
			ID:             id,
			OrganizationID: "org-1",
			DisplayName:    name,
			Email:          id + "@example.org",
		},
		Donations: gifts,
	}
}

func giftAt(donorID string, at time.Time, amount float64) model.Donation {
	return model.Donation{
		ID:         donorID + at.Format("20060102"),
		DonorID:    donorID,
		ReceivedAt: at,
		Amount:     amount,
	}
}

func giftDaysAgo(donorID string, daysAgo int, amount float64) model.Donation {
	return giftAt(donorID, reportNow.AddDate(0, 0, -daysAgo), amount)
}

func TestCompute_SingleLostDonor(t *testing.T) {
	// One $100 gift 800 days ago: lost stage, high risk at score 55.
	snap := Snapshot{
		Now:            reportNow,
		OrganizationID: "org-1",
		Donors: []model.DonorHistory{
			donorHistory("d1", "Alice Adams", giftDaysAgo("d1", 800, 100)),
		},
	}

	report, err := Compute(snap, DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, 1, report.Summary.TotalDonors)
	assert.Equal(t, 0, report.Summary.ActiveDonors)
	assert.Equal(t, 1, report.Summary.LostDonors)
	assert.InDelta(t, 0.0, report.Summary.RetentionRate, 0.001)

	require.Len(t, report.AtRiskDonors, 1)
	entry := report.AtRiskDonors[0]
	assert.Equal(t, "Alice Adams", entry.DonorName)
	assert.Equal(t, model.StageLost, entry.Stage)
	assert.Equal(t, model.RiskHigh, entry.Assessment.Tier)
	assert.Equal(t, 55, entry.Assessment.Score)
	assert.Equal(t, 800, entry.DaysSinceLastDonation)
}

func TestCompute_SingleMajorDonor(t *testing.T) {
	// Three $2000 gifts ending 10 days ago: major stage, low risk, and low
	// sits below the default threshold so the roster stays empty.
	snap := Snapshot{
		Now:            reportNow,
		OrganizationID: "org-1",
		Donors: []model.DonorHistory{
			donorHistory("d1", "Grace Park",
				giftDaysAgo("d1", 400, 2000),
				giftDaysAgo("d1", 200, 2000),
				giftDaysAgo("d1", 10, 2000),
			),
		},
	}

	report, err := Compute(snap, DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, 1, report.Summary.MajorDonors)
	assert.Equal(t, 1, report.Summary.ActiveDonors)
	assert.InDelta(t, 100.0, report.Summary.RetentionRate, 0.001)
	assert.Empty(t, report.AtRiskDonors)
	assert.Equal(t, 0, report.Summary.AtRiskCount)

	for _, stage := range report.Stages {
		if stage.Stage == model.StageMajor {
			assert.Equal(t, 1, stage.DonorCount)
			assert.InDelta(t, 10.0, stage.AvgDaysSinceLastDonation, 0.001)
			assert.InDelta(t, 6000.0, stage.AvgLifetimeValue, 0.001)
		}
	}
}

func TestCompute_ProspectIsFlagged(t *testing.T) {
	// A donor record with no gifts lands on the roster as a high-risk
	// prospect.
	snap := Snapshot{
		Now:            reportNow,
		OrganizationID: "org-1",
		Donors: []model.DonorHistory{
			donorHistory("d1", "Newly Imported"),
		},
	}

	report, err := Compute(snap, DefaultConfig())
	require.NoError(t, err)

	require.Len(t, report.AtRiskDonors, 1)
	entry := report.AtRiskDonors[0]
	assert.Equal(t, model.StageProspect, entry.Stage)
	assert.Equal(t, model.RiskHigh, entry.Assessment.Tier)
	assert.Equal(t, 55, entry.Assessment.Score)
	assert.Equal(t, NeverDonatedDays, entry.DaysSinceLastDonation)
	assert.True(t, entry.LastDonationAt.IsZero())
	assert.Equal(t, DefaultAction, entry.Assessment.RecommendedAction)
}

func TestCompute_EmptySnapshot(t *testing.T) {
	snap := Snapshot{Now: reportNow, OrganizationID: "org-1"}

	report, err := Compute(snap, DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, 0, report.Summary.TotalDonors)
	assert.InDelta(t, 0.0, report.Summary.RetentionRate, 0.001)
	assert.Empty(t, report.AtRiskDonors)
	assert.Empty(t, report.Cohorts)

	// All six stages present and zero-filled even with no donors.
	require.Len(t, report.Stages, len(model.AllStages()))
	for i, stage := range model.AllStages() {
		assert.Equal(t, stage, report.Stages[i].Stage)
		assert.Equal(t, 0, report.Stages[i].DonorCount)
	}
}

func TestCompute_RosterOrderingAndCap(t *testing.T) {
	// Donors engineered onto specific tiers:
	//   critical: thin history, overdue, long-silent, high value
	//   high:     single old gift (score 55)
	//   medium:   silent 6+ months with history
	var donors []model.DonorHistory
	donors = append(donors, donorHistory("crit-low-value",
		"Critical Small",
		giftDaysAgo("crit-low-value", 500, 6000),
		giftDaysAgo("crit-low-value", 600, 1000),
	))
	donors = append(donors, donorHistory("crit-high-value",
		"Critical Big",
		giftDaysAgo("crit-high-value", 500, 9000),
		giftDaysAgo("crit-high-value", 600, 1000),
	))
	donors = append(donors, donorHistory("high-1",
		"High One",
		giftDaysAgo("high-1", 800, 100),
	))
	donors = append(donors, donorHistory("med-1",
		"Medium One",
		giftDaysAgo("med-1", 200, 50),
		giftDaysAgo("med-1", 300, 50),
		giftDaysAgo("med-1", 405, 50),
	))

	report, err := Compute(Snapshot{Now: reportNow, OrganizationID: "org-1", Donors: donors}, DefaultConfig())
	require.NoError(t, err)

	require.Len(t, report.AtRiskDonors, 4)
	// Tier rank descends, and within the critical pair the bigger lifetime
	// value comes first.
	assert.Equal(t, "crit-high-value", report.AtRiskDonors[0].DonorID)
	assert.Equal(t, "crit-low-value", report.AtRiskDonors[1].DonorID)
	assert.Equal(t, "high-1", report.AtRiskDonors[2].DonorID)
	assert.Equal(t, "med-1", report.AtRiskDonors[3].DonorID)

	for i := 1; i < len(report.AtRiskDonors); i++ {
		prev, cur := report.AtRiskDonors[i-1], report.AtRiskDonors[i]
		assert.GreaterOrEqual(t, prev.Assessment.Tier.Rank(), cur.Assessment.Tier.Rank())
	}
	assert.Equal(t, 2, report.Summary.CriticalRiskCount)
}

func TestCompute_CapKeepsHighestPriority(t *testing.T) {
	// 5 critical donors and 5 high donors with a cap of 4: the roster must
	// hold only critical entries, while the totals still count all ten.
	var donors []model.DonorHistory
	for i := 0; i < 5; i++ {
		id := fmt.Sprintf("crit-%d", i)
		donors = append(donors, donorHistory(id, "Critical "+id,
			giftDaysAgo(id, 500, 6000),
			giftDaysAgo(id, 600, 1000),
		))
	}
	for i := 0; i < 5; i++ {
		id := fmt.Sprintf("high-%d", i)
		donors = append(donors, donorHistory(id, "High "+id,
			giftDaysAgo(id, 800, 100),
		))
	}

	cfg := DefaultConfig()
	cfg.RosterCap = 4

	report, err := Compute(Snapshot{Now: reportNow, OrganizationID: "org-1", Donors: donors}, cfg)
	require.NoError(t, err)

	require.Len(t, report.AtRiskDonors, 4)
	for _, entry := range report.AtRiskDonors {
		assert.Equal(t, model.RiskCritical, entry.Assessment.Tier)
	}

	// Counts reflect the full population, not the truncated roster.
	assert.Equal(t, 10, report.Summary.AtRiskCount)
	assert.Equal(t, 5, report.Summary.CriticalRiskCount)
}

func TestCompute_ThresholdFiltersRoster(t *testing.T) {
	donors := []model.DonorHistory{
		donorHistory("high-1", "High One", giftDaysAgo("high-1", 800, 100)),
		donorHistory("med-1", "Medium One",
			giftDaysAgo("med-1", 200, 50),
			giftDaysAgo("med-1", 300, 50),
			giftDaysAgo("med-1", 405, 50),
		),
	}

	cfg := DefaultConfig()
	cfg.RiskThreshold = model.RiskHigh

	report, err := Compute(Snapshot{Now: reportNow, OrganizationID: "org-1", Donors: donors}, cfg)
	require.NoError(t, err)

	require.Len(t, report.AtRiskDonors, 1)
	assert.Equal(t, "high-1", report.AtRiskDonors[0].DonorID)
	assert.Equal(t, 1, report.Summary.AtRiskCount)
}

func TestCompute_RetentionRate(t *testing.T) {
	// Two active (repeat, major) out of three donors: 66.7 after rounding.
	donors := []model.DonorHistory{
		donorHistory("repeat-1", "Repeat",
			giftDaysAgo("repeat-1", 100, 50),
			giftDaysAgo("repeat-1", 200, 50),
		),
		donorHistory("major-1", "Major",
			giftDaysAgo("major-1", 30, 6000),
			giftDaysAgo("major-1", 90, 1000),
		),
		donorHistory("lost-1", "Lost",
			giftDaysAgo("lost-1", 800, 100),
		),
	}

	report, err := Compute(Snapshot{Now: reportNow, OrganizationID: "org-1", Donors: donors}, DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, 3, report.Summary.TotalDonors)
	assert.Equal(t, 2, report.Summary.ActiveDonors)
	assert.InDelta(t, 66.7, report.Summary.RetentionRate, 0.001)
}

func TestCompute_Cohorts(t *testing.T) {
	y2025 := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	y2024 := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	donors := []model.DonorHistory{
		// First gift Feb 2025, came back within a month and again within a
		// year: retained at every checkpoint.
		donorHistory("fast", "Fast Returner",
			giftAt("fast", y2025, 100),
			giftAt("fast", y2025.AddDate(0, 0, 20), 100),
			giftAt("fast", y2025.AddDate(0, 11, 0), 100),
		),
		// First gift Feb 2025, never returned.
		donorHistory("one-shot", "One Shot",
			giftAt("one-shot", y2025, 250),
		),
		// First gift May 2024, returned after five months: retained at 6
		// and 12 months but not 1 or 3.
		donorHistory("slow", "Slow Returner",
			giftAt("slow", y2024, 40),
			giftAt("slow", y2024.AddDate(0, 5, 0), 60),
		),
		// No gifts at all: excluded from every cohort.
		donorHistory("prospect", "Prospect"),
	}

	report, err := Compute(Snapshot{Now: reportNow, OrganizationID: "org-1", Donors: donors}, DefaultConfig())
	require.NoError(t, err)

	require.Len(t, report.Cohorts, 2)

	c2024 := report.Cohorts[0]
	assert.Equal(t, "2024", c2024.Period)
	assert.Equal(t, 1, c2024.InitialCount)
	assert.Equal(t, 0, c2024.RetainedMonth1)
	assert.Equal(t, 0, c2024.RetainedMonth3)
	assert.Equal(t, 1, c2024.RetainedMonth6)
	assert.Equal(t, 1, c2024.RetainedMonth12)
	assert.InDelta(t, 100.0, c2024.RetentionRate12M, 0.001)
	assert.InDelta(t, 100.0, c2024.AvgCohortValue, 0.001)

	c2025 := report.Cohorts[1]
	assert.Equal(t, "2025", c2025.Period)
	assert.Equal(t, 2, c2025.InitialCount)
	assert.Equal(t, 1, c2025.RetainedMonth1)
	assert.Equal(t, 1, c2025.RetainedMonth12)
	assert.InDelta(t, 50.0, c2025.RetentionRate12M, 0.001)
	assert.InDelta(t, 275.0, c2025.AvgCohortValue, 0.001)
}

func TestCompute_CohortLookbackWindow(t *testing.T) {
	old := time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)
	donors := []model.DonorHistory{
		donorHistory("ancient", "Ancient Donor", giftAt("ancient", old, 500)),
	}

	report, err := Compute(Snapshot{Now: reportNow, OrganizationID: "org-1", Donors: donors}, DefaultConfig())
	require.NoError(t, err)

	// Acquired outside the three-year lookback, so no cohort rows at all.
	assert.Empty(t, report.Cohorts)
}

func TestCompute_Deterministic(t *testing.T) {
	donors := []model.DonorHistory{
		donorHistory("d1", "Alice", giftDaysAgo("d1", 800, 100)),
		donorHistory("d2", "Bob",
			giftDaysAgo("d2", 500, 6000),
			giftDaysAgo("d2", 600, 1000),
		),
		donorHistory("d3", "Carol"),
	}
	snap := Snapshot{Now: reportNow, OrganizationID: "org-1", Donors: donors}

	first, err := Compute(snap, DefaultConfig())
	require.NoError(t, err)
	second, err := Compute(snap, DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCompute_InvalidInput(t *testing.T) {
	t.Run("invalid config", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.RosterCap = 0

		_, err := Compute(Snapshot{Now: reportNow}, cfg)
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrInvalidConfig)
	})

	t.Run("missing evaluation instant", func(t *testing.T) {
		_, err := Compute(Snapshot{OrganizationID: "org-1"}, DefaultConfig())
		require.Error(t, err)
	})
}
