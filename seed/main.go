package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tarunbommali/nxtgen-arena-sub000/model"
	"github.com/tarunbommali/nxtgen-arena-sub000/seed/seeders"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	var (
		seedType = flag.String("type", "all", "Type of seeding: all, challenges, content, admin")
		help     = flag.Bool("help", false, "Show help message")
	)
	flag.Parse()

	if *help {
		showHelp()
		return
	}

	db, err := openDatabase()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.Challenge{},
		&model.ChallengeRegistration{},
		&model.DayProgress{},
		&model.Event{},
		&model.Roadmap{},
		&model.RoadmapStep{},
		&model.ProblemSheet{},
		&model.Problem{},
		&model.SheetAsset{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	mainSeeder := seeders.NewMainSeeder(db)

	switch *seedType {
	case "all":
		log.Println("Running complete database seeding...")
		if err := mainSeeder.SeedAll(); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
	case "challenges":
		log.Println("Seeding challenges only...")
		if err := mainSeeder.SeedChallengesOnly(); err != nil {
			log.Fatalf("Failed to seed challenges: %v", err)
		}
	case "content":
		log.Println("Seeding portal content only...")
		if err := mainSeeder.SeedContentOnly(); err != nil {
			log.Fatalf("Failed to seed content: %v", err)
		}
	case "admin":
		log.Println("Seeding admin user only...")
		if err := mainSeeder.SeedAdminOnly(); err != nil {
			log.Fatalf("Failed to seed admin: %v", err)
		}
	default:
		log.Fatalf("Unknown seed type: %s. Use 'all', 'challenges', 'content', or 'admin'", *seedType)
	}

	log.Println("Seeding operation completed successfully!")
}

func openDatabase() (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	}

	if os.Getenv("DB_DRIVER") == "sqlite" {
		path := os.Getenv("DB_DATABASE")
		if path == "" {
			path = "arena.db"
		}
		return gorm.Open(sqlite.Open(path), cfg)
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			envOr("DB_HOST", "localhost"),
			envOr("DB_USER", "postgres"),
			envOr("DB_PASSWORD", "postgres"),
			envOr("DB_NAME", "nxtgen_arena"),
			envOr("DB_PORT", "5432"),
			envOr("DB_SSLMODE", "disable"))
	}
	return gorm.Open(postgres.Open(dsn), cfg)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func showHelp() {
	log.Println(`
Database Seeding Tool for NxtGen Arena

Usage: go run seed/main.go [flags]

Flags:
  -type string
        Type of seeding to perform (default "all")
        Options: all, challenges, content, admin
  -help
        Show this help message

Examples:
  # Seed everything
  go run seed/main.go

  # Seed only the challenge catalog
  go run seed/main.go -type=challenges

  # Seed only portal content (events, roadmaps, sheets)
  go run seed/main.go -type=content

Environment Variables:
  DB_DRIVER    - "postgres" (default) or "sqlite"
  DATABASE_URL - Full postgres DSN (overrides DB_* vars)
  DB_DATABASE  - SQLite file path (default: arena.db)`)
}
