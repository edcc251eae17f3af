package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarunbommali/nxtgen-arena-sub000/model"
)

func regWithCompleted(t *testing.T, days ...int) *model.ChallengeRegistration {
	t.Helper()

	set := map[int]bool{}
	for _, d := range days {
		set[d] = true
	}

	reg := &model.ChallengeRegistration{
		Status:     string(model.RegistrationActive),
		CurrentDay: 1,
	}
	require.NoError(t, reg.SetCompletedDays(set))
	return reg
}

func TestDeriveStats_Empty(t *testing.T) {
	reg := regWithCompleted(t)

	stats, err := DeriveStats(reg, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.CompletedCount)
	assert.Equal(t, float64(0), stats.CompletionPercentage)
	assert.Equal(t, 0, stats.CurrentStreak)
}

func TestDeriveStats_StreakStopsAtGap(t *testing.T) {
	reg := regWithCompleted(t, 1, 2, 3, 5, 6)

	stats, err := DeriveStats(reg, 10)
	require.NoError(t, err)
	assert.Equal(t, 5, stats.CompletedCount)
	assert.Equal(t, float64(50), stats.CompletionPercentage)
	assert.Equal(t, 3, stats.CurrentStreak)
}

func TestDeriveStats_NoStreakWithoutDayOne(t *testing.T) {
	reg := regWithCompleted(t, 2, 3, 4)

	stats, err := DeriveStats(reg, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.CurrentStreak)
}

func TestDeriveStats_FullCompletion(t *testing.T) {
	reg := regWithCompleted(t, 1, 2, 3, 4)
	reg.Status = string(model.RegistrationCompleted)
	reg.CurrentDay = 4

	stats, err := DeriveStats(reg, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.CompletedCount)
	assert.Equal(t, float64(100), stats.CompletionPercentage)
	assert.Equal(t, 4, stats.CurrentStreak)
	assert.Equal(t, string(model.RegistrationCompleted), stats.Status)
}

func TestDeriveStats_CorruptPayload(t *testing.T) {
	reg := &model.ChallengeRegistration{
		Status:        string(model.RegistrationActive),
		CompletedDays: []byte("{not json"),
	}

	_, err := DeriveStats(reg, 10)
	assert.Error(t, err)
}
