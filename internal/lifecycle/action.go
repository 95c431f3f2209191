package lifecycle

import "github.com/fernwood-labs/donorpulse/internal/model"

// DefaultAction is the fallback recommendation for every (tier, stage)
// combination without a bespoke message.
const DefaultAction = "Standard stewardship communication"

// RecommendAction maps a (risk tier, lifecycle stage) pair to a prioritized
// outreach recommendation. The decision table is intentionally sparse: only
// high-value combinations carry a bespoke message, and the fallback is the
// correct answer for everything else.
func RecommendAction(tier model.RiskTier, stage model.LifecycleStage) string {
	switch {
	case tier == model.RiskCritical && stage == model.StageMajor:
		return "URGENT: Personal call from Executive Director within 48 hours"
	case tier == model.RiskCritical && stage == model.StageRepeat:
		return "High-touch re-engagement campaign, offer exclusive event invite"
	case tier == model.RiskHigh && stage == model.StageMajor:
		return "Schedule coffee meeting, share insider updates"
	case tier == model.RiskHigh && stage == model.StageRepeat:
		return "Multi-channel re-engagement, highlight recent impact"
	case tier == model.RiskMedium && stage == model.StageRepeat:
		return "Include in next newsletter, light touch"
	default:
		return DefaultAction
	}
}
