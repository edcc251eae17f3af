package dto

import "time"

// Challenge catalog DTOs
type ChallengeResponse struct {
	ID          string `json:"id"`
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description"`
	TotalDays   int    `json:"total_days"`
	IsActive    bool   `json:"is_active"`
}

type ChallengeCollectionResponse struct {
	Challenges []ChallengeResponse `json:"challenges"`
	Total      int                 `json:"total"`
}

type CreateChallengeRequest struct {
	Slug        string `json:"slug" validate:"required,min=3,max=64"`
	Title       string `json:"title" validate:"required,min=3,max=160"`
	Description string `json:"description"`
	TotalDays   int    `json:"total_days" validate:"required,min=1,max=366"`
}

// Registration / progression DTOs
type RegistrationResponse struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	ChallengeID    string    `json:"challenge_id"`
	Status         string    `json:"status"`
	CurrentDay     int       `json:"current_day"`
	CompletedDays  []int     `json:"completed_days"`
	RegisteredAt   time.Time `json:"registered_at"`
	LastActivityAt time.Time `json:"last_activity_at"`
}

type DayProgressResponse struct {
	DayNumber         int        `json:"day_number"`
	Status            string     `json:"status"`
	UnlockedAt        *time.Time `json:"unlocked_at,omitempty"`
	StartedAt         *time.Time `json:"started_at,omitempty"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
	SubmissionType    string     `json:"submission_type,omitempty"`
	SubmissionContent string     `json:"submission_content,omitempty"`
}

type ProgressStatsResponse struct {
	CompletedCount       int     `json:"completed_count"`
	CompletionPercentage float64 `json:"completion_percentage"`
	CurrentStreak        int     `json:"current_streak"`
	CurrentDay           int     `json:"current_day"`
	Status               string  `json:"status"`
}

type ChallengeProgressResponse struct {
	Registration RegistrationResponse  `json:"registration"`
	Days         []DayProgressResponse `json:"days"`
	Stats        ProgressStatsResponse `json:"stats"`
}

type DayAccessResponse struct {
	DayNumber int  `json:"day_number"`
	CanAccess bool `json:"can_access"`
}

type CompleteDayRequest struct {
	SubmissionType    string `json:"submission_type" validate:"required,oneof=text link image"`
	SubmissionContent string `json:"submission_content" validate:"required,max=10000"`
}
