package seeders

import (
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tarunbommali/nxtgen-arena-sub000/model"
)

// ChallengeSeeder handles seeding the challenge catalog
type ChallengeSeeder struct {
	db *gorm.DB
}

// NewChallengeSeeder creates a new challenge seeder
func NewChallengeSeeder(db *gorm.DB) *ChallengeSeeder {
	return &ChallengeSeeder{db: db}
}

// SeedChallenges creates the demo challenge catalog
func (s *ChallengeSeeder) SeedChallenges() error {
	challenges := []model.Challenge{
		{
			Slug:        "30-days-of-dsa",
			Title:       "30 Days of DSA",
			Description: "One data structures and algorithms problem set per day for a month. Each day unlocks only after the previous one is completed.",
			TotalDays:   30,
			IsActive:    true,
		},
		{
			Slug:        "14-days-of-sql",
			Title:       "14 Days of SQL",
			Description: "Two weeks of hands-on SQL, from SELECT basics to window functions.",
			TotalDays:   14,
			IsActive:    true,
		},
		{
			Slug:        "7-days-of-git",
			Title:       "7 Days of Git",
			Description: "A one week crash course on version control workflows.",
			TotalDays:   7,
			IsActive:    true,
		},
	}

	for i := range challenges {
		var existing model.Challenge
		if err := s.db.Where("slug = ?", challenges[i].Slug).First(&existing).Error; err == nil {
			log.Printf("Challenge %s already exists, skipping", challenges[i].Slug)
			continue
		}

		challenges[i].ID = uuid.Must(uuid.NewV7()).String()
		if err := s.db.Create(&challenges[i]).Error; err != nil {
			return err
		}
		log.Printf("Created challenge: %s (%d days)", challenges[i].Title, challenges[i].TotalDays)
	}

	return nil
}
