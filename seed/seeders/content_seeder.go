package seeders

import (
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tarunbommali/nxtgen-arena-sub000/model"
	"github.com/tarunbommali/nxtgen-arena-sub000/shared"
)

// ContentSeeder handles seeding events, roadmaps and problem sheets
type ContentSeeder struct {
	db *gorm.DB
}

// NewContentSeeder creates a new content seeder
func NewContentSeeder(db *gorm.DB) *ContentSeeder {
	return &ContentSeeder{db: db}
}

// SeedContent creates demo portal content
func (s *ContentSeeder) SeedContent() error {
	if err := s.seedEvents(); err != nil {
		return err
	}
	if err := s.seedRoadmaps(); err != nil {
		return err
	}
	return s.seedSheets()
}

func (s *ContentSeeder) seedEvents() error {
	nextMonth := time.Now().AddDate(0, 1, 0)
	end := nextMonth.Add(48 * time.Hour)

	events := []model.Event{
		{
			Slug:            "arena-hack-night",
			Title:           "Arena Hack Night",
			Description:     "An overnight hackathon for student teams. Bring a laptop and an idea.",
			Location:        "Online",
			Mode:            shared.EventModeOnline,
			StartsAt:        nextMonth,
			EndsAt:          &end,
			RegistrationURL: "https://nxtgenarena.dev/events/arena-hack-night",
			IsPublished:     true,
		},
		{
			Slug:        "system-design-meetup",
			Title:       "System Design Meetup",
			Description: "Monthly meetup walking through a real production architecture.",
			Location:    "Hyderabad",
			Mode:        shared.EventModeHybrid,
			StartsAt:    nextMonth.AddDate(0, 0, 7),
			IsPublished: true,
		},
	}

	for i := range events {
		var existing model.Event
		if err := s.db.Where("slug = ?", events[i].Slug).First(&existing).Error; err == nil {
			continue
		}

		events[i].ID = uuid.Must(uuid.NewV7()).String()
		if err := s.db.Create(&events[i]).Error; err != nil {
			return err
		}
		log.Printf("Created event: %s", events[i].Title)
	}
	return nil
}

func (s *ContentSeeder) seedRoadmaps() error {
	var existing model.Roadmap
	if err := s.db.Where("slug = ?", "backend-developer").First(&existing).Error; err == nil {
		return nil
	}

	roadmap := model.Roadmap{
		ID:          uuid.Must(uuid.NewV7()).String(),
		Slug:        "backend-developer",
		Title:       "Backend Developer Roadmap",
		Description: "From language basics to deploying a production service.",
		Domain:      "backend",
		IsPublished: true,
	}
	steps := []model.RoadmapStep{
		{Order: 1, Title: "Pick a language", Summary: "Get fluent in one backend language before touching frameworks.", ResourceURL: "https://roadmap.sh/backend"},
		{Order: 2, Title: "HTTP and REST", Summary: "Verbs, status codes, headers, idempotency."},
		{Order: 3, Title: "Databases", Summary: "Relational modelling, indexes, transactions."},
		{Order: 4, Title: "Deploy something", Summary: "Ship a small service behind a reverse proxy."},
	}
	for i := range steps {
		steps[i].ID = uuid.Must(uuid.NewV7()).String()
		steps[i].RoadmapID = roadmap.ID
	}
	roadmap.Steps = steps

	if err := s.db.Create(&roadmap).Error; err != nil {
		return err
	}
	log.Printf("Created roadmap: %s", roadmap.Title)
	return nil
}

func (s *ContentSeeder) seedSheets() error {
	var existing model.ProblemSheet
	if err := s.db.Where("slug = ?", "arrays-essentials").First(&existing).Error; err == nil {
		return nil
	}

	sheet := model.ProblemSheet{
		ID:          uuid.Must(uuid.NewV7()).String(),
		Slug:        "arrays-essentials",
		Title:       "Arrays Essentials",
		Description: "The core array problems every interview loop expects.",
		Difficulty:  "mixed",
		IsPublished: true,
	}
	problems := []model.Problem{
		{Order: 1, Title: "Two Sum", Difficulty: "easy", LinkURL: "https://leetcode.com/problems/two-sum/"},
		{Order: 2, Title: "Best Time to Buy and Sell Stock", Difficulty: "easy", LinkURL: "https://leetcode.com/problems/best-time-to-buy-and-sell-stock/"},
		{Order: 3, Title: "Product of Array Except Self", Difficulty: "medium", LinkURL: "https://leetcode.com/problems/product-of-array-except-self/"},
		{Order: 4, Title: "Maximum Subarray", Difficulty: "medium", LinkURL: "https://leetcode.com/problems/maximum-subarray/"},
		{Order: 5, Title: "Trapping Rain Water", Difficulty: "hard", LinkURL: "https://leetcode.com/problems/trapping-rain-water/"},
	}
	for i := range problems {
		problems[i].ID = uuid.Must(uuid.NewV7()).String()
		problems[i].SheetID = sheet.ID
	}
	sheet.Problems = problems

	if err := s.db.Create(&sheet).Error; err != nil {
		return err
	}
	log.Printf("Created problem sheet: %s", sheet.Title)
	return nil
}
