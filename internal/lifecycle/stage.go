package lifecycle

import "github.com/fernwood-labs/donorpulse/internal/model"

// DefaultMajorGiftThreshold is the lifetime value (in currency units) at
// which a recently active donor qualifies as a major donor.
const DefaultMajorGiftThreshold = 5000

// ClassifyStage maps a donor aggregate to exactly one lifecycle stage.
// Rules are checked in order and the first match wins:
//
//  1. No gifts ever: prospect.
//  2. Exactly one gift: lost if it aged past a year, otherwise first_time.
//     A single lifetime gift never makes a donor lapsed; lapsed implies
//     prior repeat engagement.
//  3. Two years or more since the last gift: lost.
//  4. A year or more since the last gift: lapsed.
//  5. Lifetime value at or above the major-gift threshold: major.
//     Value-based segmentation is layered on top of recency here, so a
//     recently active high-value donor is major regardless of gift count.
//  6. Otherwise: repeat.
func ClassifyStage(agg DonorAggregate, majorGiftThreshold float64) model.LifecycleStage {
	if agg.DonationCount == 0 {
		return model.StageProspect
	}

	if agg.DonationCount == 1 {
		if agg.DaysSinceLastDonation > 365 {
			return model.StageLost
		}
		return model.StageFirstTime
	}

	if agg.DaysSinceLastDonation >= 730 {
		return model.StageLost
	}
	if agg.DaysSinceLastDonation >= 365 {
		return model.StageLapsed
	}

	if agg.LifetimeValue >= majorGiftThreshold {
		return model.StageMajor
	}

	return model.StageRepeat
}
