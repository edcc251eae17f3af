// model/challenge.go
package model

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// RegistrationStatus is the lifecycle of one user x challenge registration.
type RegistrationStatus string

const (
	RegistrationActive    RegistrationStatus = "active"
	RegistrationCompleted RegistrationStatus = "completed"
)

// ParseRegistrationStatus rejects unknown stored values instead of defaulting.
func ParseRegistrationStatus(s string) (RegistrationStatus, error) {
	switch RegistrationStatus(s) {
	case RegistrationActive, RegistrationCompleted:
		return RegistrationStatus(s), nil
	}
	return "", fmt.Errorf("unknown registration status %q", s)
}

// DayStatus is the per-day state machine: locked -> unlocked -> in_progress
// -> completed. Transitions only move forward; completed is terminal.
type DayStatus string

const (
	DayLocked     DayStatus = "locked"
	DayUnlocked   DayStatus = "unlocked"
	DayInProgress DayStatus = "in_progress"
	DayCompleted  DayStatus = "completed"
)

func ParseDayStatus(s string) (DayStatus, error) {
	switch DayStatus(s) {
	case DayLocked, DayUnlocked, DayInProgress, DayCompleted:
		return DayStatus(s), nil
	}
	return "", fmt.Errorf("unknown day status %q", s)
}

// rank orders statuses along the forward-only lifecycle.
func (s DayStatus) rank() int {
	switch s {
	case DayLocked:
		return 0
	case DayUnlocked:
		return 1
	case DayInProgress:
		return 2
	case DayCompleted:
		return 3
	}
	return -1
}

// Before reports whether s comes strictly earlier in the lifecycle than other.
func (s DayStatus) Before(other DayStatus) bool {
	return s.rank() < other.rank()
}

// Challenge is a fixed-length, day-by-day challenge definition.
type Challenge struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	Slug        string    `json:"slug" gorm:"unique;not null"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description" gorm:"type:text"`
	TotalDays   int       `json:"total_days" gorm:"not null"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ChallengeRegistration is one user's enrollment in a challenge. CurrentDay
// is the lowest day not yet completed, capped at TotalDays; CompletedDays is
// a sorted, monotonically growing JSON array of day numbers.
type ChallengeRegistration struct {
	ID             string          `json:"id" gorm:"primaryKey"`
	UserID         string          `json:"user_id" gorm:"not null;uniqueIndex:idx_user_challenge"`
	ChallengeID    string          `json:"challenge_id" gorm:"not null;uniqueIndex:idx_user_challenge"`
	Status         string          `json:"status" gorm:"not null"`
	CurrentDay     int             `json:"current_day" gorm:"not null;default:1"`
	CompletedDays  json.RawMessage `json:"completed_days" gorm:"type:text"`
	Version        int64           `json:"-" gorm:"not null;default:0"`
	RegisteredAt   time.Time       `json:"registered_at" gorm:"not null"`
	LastActivityAt time.Time       `json:"last_activity_at" gorm:"not null"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// CompletedDaySet decodes CompletedDays into a set.
func (r *ChallengeRegistration) CompletedDaySet() (map[int]bool, error) {
	days := map[int]bool{}
	if len(r.CompletedDays) == 0 {
		return days, nil
	}
	var list []int
	if err := json.Unmarshal(r.CompletedDays, &list); err != nil {
		return nil, fmt.Errorf("corrupt completed_days payload: %w", err)
	}
	for _, d := range list {
		days[d] = true
	}
	return days, nil
}

// SetCompletedDays encodes the set back as a sorted JSON array.
func (r *ChallengeRegistration) SetCompletedDays(days map[int]bool) error {
	list := make([]int, 0, len(days))
	for d := range days {
		list = append(list, d)
	}
	sort.Ints(list)
	raw, err := json.Marshal(list)
	if err != nil {
		return err
	}
	r.CompletedDays = raw
	return nil
}

// DayProgress is one day's record within a registration, created eagerly at
// enrollment. Timestamps are set once and never cleared.
type DayProgress struct {
	ID                string     `json:"id" gorm:"primaryKey"`
	UserID            string     `json:"user_id" gorm:"not null;uniqueIndex:idx_user_challenge_day"`
	ChallengeID       string     `json:"challenge_id" gorm:"not null;uniqueIndex:idx_user_challenge_day"`
	DayNumber         int        `json:"day_number" gorm:"not null;uniqueIndex:idx_user_challenge_day"`
	Status            string     `json:"status" gorm:"not null"`
	UnlockedAt        *time.Time `json:"unlocked_at"`
	StartedAt         *time.Time `json:"started_at"`
	CompletedAt       *time.Time `json:"completed_at"`
	SubmissionType    string     `json:"submission_type"`
	SubmissionContent string     `json:"submission_content" gorm:"type:text"`
	Version           int64      `json:"-" gorm:"not null;default:0"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// DayStatusValue parses the stored status, surfacing corruption explicitly.
func (p *DayProgress) DayStatusValue() (DayStatus, error) {
	return ParseDayStatus(p.Status)
}
