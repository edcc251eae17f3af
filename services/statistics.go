package services

import (
	"github.com/tarunbommali/nxtgen-arena-sub000/model"
)

// ProgressStats is derived, never stored. Recomputing from the registration
// record keeps it consistent with whatever the cascade last wrote.
type ProgressStats struct {
	CompletedCount       int
	CompletionPercentage float64
	CurrentStreak        int
	CurrentDay           int
	Status               string
}

// DeriveStats computes the progress statistics for one registration.
func DeriveStats(reg *model.ChallengeRegistration, totalDays int) (ProgressStats, error) {
	completed, err := reg.CompletedDaySet()
	if err != nil {
		return ProgressStats{}, err
	}

	stats := ProgressStats{
		CompletedCount: len(completed),
		CurrentStreak:  currentStreak(completed),
		CurrentDay:     reg.CurrentDay,
		Status:         reg.Status,
	}
	if totalDays > 0 {
		stats.CompletionPercentage = float64(len(completed)) * 100 / float64(totalDays)
	}
	return stats, nil
}

// currentStreak counts the unbroken run of completed days starting at day 1.
// Completed days beyond the first gap do not extend the streak.
func currentStreak(completed map[int]bool) int {
	streak := 0
	for completed[streak+1] {
		streak++
	}
	return streak
}
