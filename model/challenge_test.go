package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDayStatus(t *testing.T) {
	for _, s := range []string{"locked", "unlocked", "in_progress", "completed"} {
		status, err := ParseDayStatus(s)
		require.NoError(t, err)
		assert.Equal(t, s, string(status))
	}

	_, err := ParseDayStatus("paused")
	assert.Error(t, err)

	_, err = ParseDayStatus("")
	assert.Error(t, err)
}

func TestDayStatus_Before(t *testing.T) {
	assert.True(t, DayLocked.Before(DayUnlocked))
	assert.True(t, DayUnlocked.Before(DayInProgress))
	assert.True(t, DayInProgress.Before(DayCompleted))
	assert.False(t, DayCompleted.Before(DayLocked))
	assert.False(t, DayUnlocked.Before(DayUnlocked))
}

func TestParseRegistrationStatus(t *testing.T) {
	_, err := ParseRegistrationStatus("active")
	assert.NoError(t, err)
	_, err = ParseRegistrationStatus("completed")
	assert.NoError(t, err)
	_, err = ParseRegistrationStatus("archived")
	assert.Error(t, err)
}

func TestCompletedDaySet_RoundTrip(t *testing.T) {
	reg := &ChallengeRegistration{}

	set, err := reg.CompletedDaySet()
	require.NoError(t, err)
	assert.Empty(t, set)

	require.NoError(t, reg.SetCompletedDays(map[int]bool{3: true, 1: true, 2: true}))
	assert.JSONEq(t, "[1,2,3]", string(reg.CompletedDays))

	set, err = reg.CompletedDaySet()
	require.NoError(t, err)
	assert.Len(t, set, 3)
	assert.True(t, set[1] && set[2] && set[3])
}

func TestCompletedDaySet_Corrupt(t *testing.T) {
	reg := &ChallengeRegistration{CompletedDays: []byte("oops")}

	_, err := reg.CompletedDaySet()
	assert.Error(t, err)
}
