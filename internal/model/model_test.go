package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRiskTierRank(t *testing.T) {
	assert.Equal(t, 1, RiskLow.Rank())
	assert.Equal(t, 2, RiskMedium.Rank())
	assert.Equal(t, 3, RiskHigh.Rank())
	assert.Equal(t, 4, RiskCritical.Rank())
	assert.Equal(t, 0, RiskTier("severe").Rank())

	assert.True(t, RiskMedium.Valid())
	assert.False(t, RiskTier("").Valid())
}

func TestAllStages(t *testing.T) {
	stages := AllStages()
	assert.Len(t, stages, 6)
	assert.Equal(t, StageProspect, stages[0])
	assert.Equal(t, StageLost, stages[5])

	for _, stage := range stages {
		assert.True(t, stage.Valid(), "%s", stage)
	}
	assert.False(t, LifecycleStage("churned").Valid())
}

func TestDonationGenerateHash(t *testing.T) {
	received := time.Date(2025, 3, 15, 14, 30, 0, 0, time.UTC)
	gift := Donation{DonorID: "d1", ReceivedAt: received, Amount: 250}

	hash := gift.GenerateHash()
	assert.Len(t, hash, 64)

	// Same donor, day, and amount always collide, even at different times
	// of day.
	sameDay := Donation{DonorID: "d1", ReceivedAt: received.Add(3 * time.Hour), Amount: 250}
	assert.Equal(t, hash, sameDay.GenerateHash())

	differentAmount := Donation{DonorID: "d1", ReceivedAt: received, Amount: 250.01}
	assert.NotEqual(t, hash, differentAmount.GenerateHash())

	differentDonor := Donation{DonorID: "d2", ReceivedAt: received, Amount: 250}
	assert.NotEqual(t, hash, differentDonor.GenerateHash())
}
