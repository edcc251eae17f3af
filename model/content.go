// model/content.go
package model

import "time"

// Event is a portal event listing (hackathons, meetups, workshops).
type Event struct {
	ID              string     `json:"id" gorm:"primaryKey"`
	Slug            string     `json:"slug" gorm:"unique;not null"`
	Title           string     `json:"title" gorm:"not null"`
	Description     string     `json:"description" gorm:"type:text"`
	Location        string     `json:"location"`
	Mode            string     `json:"mode"` // online, offline, hybrid
	StartsAt        time.Time  `json:"starts_at"`
	EndsAt          *time.Time `json:"ends_at"`
	RegistrationURL string     `json:"registration_url"`
	IsPublished     bool       `json:"is_published" gorm:"default:false"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// Roadmap is a curated learning path.
type Roadmap struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	Slug        string    `json:"slug" gorm:"unique;not null"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description" gorm:"type:text"`
	Domain      string    `json:"domain"` // frontend, backend, dsa, ...
	IsPublished bool      `json:"is_published" gorm:"default:false"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Steps []RoadmapStep `json:"steps" gorm:"foreignKey:RoadmapID"`
}

type RoadmapStep struct {
	ID          string `json:"id" gorm:"primaryKey"`
	RoadmapID   string `json:"roadmap_id" gorm:"not null;index"`
	Order       int    `json:"order" gorm:"column:sort_order;not null"`
	Title       string `json:"title" gorm:"not null"`
	Summary     string `json:"summary" gorm:"type:text"`
	ResourceURL string `json:"resource_url"`
}

// ProblemSheet is a curated set of practice problems.
type ProblemSheet struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	Slug        string    `json:"slug" gorm:"unique;not null"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description" gorm:"type:text"`
	Difficulty  string    `json:"difficulty"` // easy, medium, hard, mixed
	IsPublished bool      `json:"is_published" gorm:"default:false"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Problems []Problem `json:"problems" gorm:"foreignKey:SheetID"`
}

type Problem struct {
	ID         string `json:"id" gorm:"primaryKey"`
	SheetID    string `json:"sheet_id" gorm:"not null;index"`
	Order      int    `json:"order" gorm:"column:sort_order;not null"`
	Title      string `json:"title" gorm:"not null"`
	Difficulty string `json:"difficulty"`
	LinkURL    string `json:"link_url"`
}

// SheetAsset is an object-store attachment for a problem sheet (PDFs etc).
type SheetAsset struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	SheetID     string    `json:"sheet_id" gorm:"not null;index"`
	ObjectName  string    `json:"object_name" gorm:"not null"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	CreatedAt   time.Time `json:"created_at"`
}
