package dto

import "time"

// Event DTOs
type EventResponse struct {
	ID              string     `json:"id"`
	Slug            string     `json:"slug"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Location        string     `json:"location"`
	Mode            string     `json:"mode"`
	StartsAt        time.Time  `json:"starts_at"`
	EndsAt          *time.Time `json:"ends_at,omitempty"`
	RegistrationURL string     `json:"registration_url"`
}

type EventCollectionResponse struct {
	Events []EventResponse `json:"events"`
	Total  int             `json:"total"`
}

type CreateEventRequest struct {
	Slug            string     `json:"slug" validate:"required,min=3,max=64"`
	Title           string     `json:"title" validate:"required,min=3,max=160"`
	Description     string     `json:"description"`
	Location        string     `json:"location"`
	Mode            string     `json:"mode" validate:"required,oneof=online offline hybrid"`
	StartsAt        time.Time  `json:"starts_at" validate:"required"`
	EndsAt          *time.Time `json:"ends_at"`
	RegistrationURL string     `json:"registration_url" validate:"omitempty,url"`
	IsPublished     bool       `json:"is_published"`
}

// Roadmap DTOs
type RoadmapStepResponse struct {
	Order       int    `json:"order"`
	Title       string `json:"title"`
	Summary     string `json:"summary"`
	ResourceURL string `json:"resource_url"`
}

type RoadmapResponse struct {
	ID          string                `json:"id"`
	Slug        string                `json:"slug"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Domain      string                `json:"domain"`
	Steps       []RoadmapStepResponse `json:"steps,omitempty"`
}

type RoadmapCollectionResponse struct {
	Roadmaps []RoadmapResponse `json:"roadmaps"`
	Total    int               `json:"total"`
}

type CreateRoadmapRequest struct {
	Slug        string                 `json:"slug" validate:"required,min=3,max=64"`
	Title       string                 `json:"title" validate:"required,min=3,max=160"`
	Description string                 `json:"description"`
	Domain      string                 `json:"domain" validate:"required"`
	IsPublished bool                   `json:"is_published"`
	Steps       []CreateRoadmapStepReq `json:"steps" validate:"dive"`
}

type CreateRoadmapStepReq struct {
	Order       int    `json:"order" validate:"required,min=1"`
	Title       string `json:"title" validate:"required"`
	Summary     string `json:"summary"`
	ResourceURL string `json:"resource_url" validate:"omitempty,url"`
}

// Problem sheet DTOs
type ProblemResponse struct {
	Order      int    `json:"order"`
	Title      string `json:"title"`
	Difficulty string `json:"difficulty"`
	LinkURL    string `json:"link_url"`
}

type ProblemSheetResponse struct {
	ID          string            `json:"id"`
	Slug        string            `json:"slug"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Difficulty  string            `json:"difficulty"`
	Problems    []ProblemResponse `json:"problems,omitempty"`
}

type ProblemSheetCollectionResponse struct {
	Sheets []ProblemSheetResponse `json:"sheets"`
	Total  int                    `json:"total"`
}

type CreateProblemSheetRequest struct {
	Slug        string             `json:"slug" validate:"required,min=3,max=64"`
	Title       string             `json:"title" validate:"required,min=3,max=160"`
	Description string             `json:"description"`
	Difficulty  string             `json:"difficulty" validate:"required,oneof=easy medium hard mixed"`
	IsPublished bool               `json:"is_published"`
	Problems    []CreateProblemReq `json:"problems" validate:"dive"`
}

type CreateProblemReq struct {
	Order      int    `json:"order" validate:"required,min=1"`
	Title      string `json:"title" validate:"required"`
	Difficulty string `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	LinkURL    string `json:"link_url" validate:"omitempty,url"`
}
