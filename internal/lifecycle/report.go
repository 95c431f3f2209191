package lifecycle

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/fernwood-labs/donorpulse/internal/model"
)

// Snapshot is the immutable input to one evaluation run: every donor of an
// organization with their full donation history, plus the single instant
// all recency math is measured against.
type Snapshot struct {
	Now            time.Time
	OrganizationID string
	Donors         []model.DonorHistory
}

// Compute runs the full pipeline over a snapshot: aggregate, classify,
// score, and recommend per donor, then fold everything into stage
// summaries, the ranked at-risk roster, acquisition-year cohorts, and the
// organization-wide summary metrics.
//
// Compute is deterministic: the same snapshot and config always produce an
// identical report.
func Compute(snap Snapshot, cfg Config) (*model.LifecycleReport, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if snap.Now.IsZero() {
		return nil, fmt.Errorf("evaluation instant is required")
	}

	byStage := make(map[model.LifecycleStage][]DonorAggregate)
	var atRisk []model.AtRiskDonor

	for _, h := range snap.Donors {
		agg := BuildAggregate(h.Donor.ID, h.Donations, snap.Now)
		stage := ClassifyStage(agg, cfg.MajorGiftThreshold)
		assessment := ScoreChurnRisk(agg, cfg.MajorGiftThreshold)
		assessment.RecommendedAction = RecommendAction(assessment.Tier, stage)

		byStage[stage] = append(byStage[stage], agg)

		if assessment.Tier.Rank() >= cfg.RiskThreshold.Rank() {
			atRisk = append(atRisk, model.AtRiskDonor{
				DonorID:               h.Donor.ID,
				DonorName:             h.Donor.DisplayName,
				Email:                 h.Donor.Email,
				LastDonationAt:        agg.LastDonationAt,
				DaysSinceLastDonation: agg.DaysSinceLastDonation,
				TotalDonations:        agg.DonationCount,
				LifetimeValue:         agg.LifetimeValue,
				Stage:                 stage,
				Assessment:            assessment,
			})
		}
	}

	// Highest risk first; within equal risk, highest lifetime value first.
	// The cap is applied after sorting so it always keeps the
	// highest-priority entries.
	sort.SliceStable(atRisk, func(i, j int) bool {
		ri, rj := atRisk[i].Assessment.Tier.Rank(), atRisk[j].Assessment.Tier.Rank()
		if ri != rj {
			return ri > rj
		}
		return atRisk[i].LifetimeValue > atRisk[j].LifetimeValue
	})
	atRiskTotal := len(atRisk)
	criticalCount := 0
	for _, d := range atRisk {
		if d.Assessment.Tier == model.RiskCritical {
			criticalCount++
		}
	}
	if len(atRisk) > cfg.RosterCap {
		atRisk = atRisk[:cfg.RosterCap]
	}

	// Per-stage summaries, all six stages zero-filled.
	stages := make([]model.StageSummary, 0, len(model.AllStages()))
	totalDonors := 0
	for _, stage := range model.AllStages() {
		group := byStage[stage]
		totalDonors += len(group)

		summary := model.StageSummary{Stage: stage, DonorCount: len(group)}
		if len(group) > 0 {
			var daysSum, valueSum float64
			for _, agg := range group {
				daysSum += float64(agg.DaysSinceLastDonation)
				valueSum += agg.LifetimeValue
			}
			summary.AvgDaysSinceLastDonation = round1(daysSum / float64(len(group)))
			summary.AvgLifetimeValue = round2(valueSum / float64(len(group)))
		}
		stages = append(stages, summary)
	}

	activeDonors := len(byStage[model.StageRepeat]) + len(byStage[model.StageMajor])

	summary := model.SummaryMetrics{
		TotalDonors:       totalDonors,
		ActiveDonors:      activeDonors,
		AtRiskCount:       atRiskTotal,
		CriticalRiskCount: criticalCount,
		MajorDonors:       len(byStage[model.StageMajor]),
		LapsedDonors:      len(byStage[model.StageLapsed]),
		LostDonors:        len(byStage[model.StageLost]),
	}
	if totalDonors > 0 {
		summary.RetentionRate = round1(float64(activeDonors) / float64(totalDonors) * 100)
	}

	return &model.LifecycleReport{
		SnapshotAt:     snap.Now,
		OrganizationID: snap.OrganizationID,
		Stages:         stages,
		Cohorts:        computeCohorts(snap, cfg),
		AtRiskDonors:   atRisk,
		Summary:        summary,
	}, nil
}

// computeCohorts buckets donors by the year of their first gift within the
// lookback window and measures real retention: a donor counts as retained
// at N months when any further gift lands within N months of their first.
// Cohort years with no acquisitions are omitted.
func computeCohorts(snap Snapshot, cfg Config) []model.CohortSummary {
	type cohortDonor struct {
		first         time.Time
		donations     []model.Donation
		lifetimeValue float64
	}

	byYear := make(map[int][]cohortDonor)
	for _, h := range snap.Donors {
		if len(h.Donations) == 0 {
			continue
		}
		first := h.Donations[0].ReceivedAt
		var value float64
		for _, d := range h.Donations {
			value += d.Amount
			if d.ReceivedAt.Before(first) {
				first = d.ReceivedAt
			}
		}
		byYear[first.Year()] = append(byYear[first.Year()], cohortDonor{
			first:         first,
			donations:     h.Donations,
			lifetimeValue: value,
		})
	}

	currentYear := snap.Now.Year()
	var cohorts []model.CohortSummary
	for year := currentYear - cfg.CohortLookbackYears + 1; year <= currentYear; year++ {
		members := byYear[year]
		if len(members) == 0 {
			continue
		}

		summary := model.CohortSummary{
			Period:       fmt.Sprintf("%d", year),
			InitialCount: len(members),
		}

		var valueSum float64
		for _, m := range members {
			valueSum += m.lifetimeValue
			if retainedWithin(m.first, m.donations, 1) {
				summary.RetainedMonth1++
			}
			if retainedWithin(m.first, m.donations, 3) {
				summary.RetainedMonth3++
			}
			if retainedWithin(m.first, m.donations, 6) {
				summary.RetainedMonth6++
			}
			if retainedWithin(m.first, m.donations, 12) {
				summary.RetainedMonth12++
			}
		}
		summary.RetentionRate12M = round1(float64(summary.RetainedMonth12) / float64(len(members)) * 100)
		summary.AvgCohortValue = round2(valueSum / float64(len(members)))

		cohorts = append(cohorts, summary)
	}

	return cohorts
}

// retainedWithin reports whether any gift after the first one landed within
// the given number of months of it.
func retainedWithin(first time.Time, donations []model.Donation, months int) bool {
	deadline := first.AddDate(0, months, 0)
	for _, d := range donations {
		if d.ReceivedAt.After(first) && !d.ReceivedAt.After(deadline) {
			return true
		}
	}
	return false
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
