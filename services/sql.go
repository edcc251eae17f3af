package services

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tarunbommali/nxtgen-arena-sub000/model"
	"github.com/tarunbommali/nxtgen-arena-sub000/shared"
)

// SqlService owns the gorm connection and implements the record store
// consumed by the progression engine. Postgres in production; sqlite when
// DB_DRIVER=sqlite for local runs.
type SqlService struct {
	context.DefaultService
	db *gorm.DB

	driver string
	dsn    string
}

const SQL_SVC = "sql_svc"

func (ds SqlService) Id() string {
	return SQL_SVC
}

// Db Access to the raw gorm handle
func (ds SqlService) Db() *gorm.DB {
	return ds.db
}

func (ds *SqlService) Configure(ctx *context.Context) error {
	ds.driver = os.Getenv("DB_DRIVER")
	if ds.driver == "" {
		ds.driver = "postgres"
	}

	if ds.driver == "sqlite" {
		ds.dsn = os.Getenv("DB_DATABASE")
		if ds.dsn == "" {
			ds.dsn = "arena.db"
		}
		return ds.DefaultService.Configure(ctx)
	}

	ds.dsn = os.Getenv("DATABASE_URL")
	if ds.dsn == "" {
		host := os.Getenv("DB_HOST")
		if host == "" {
			host = "localhost"
		}
		port := os.Getenv("DB_PORT")
		if port == "" {
			port = "5432"
		}
		user := os.Getenv("DB_USER")
		if user == "" {
			user = "postgres"
		}
		password := os.Getenv("DB_PASSWORD")
		if password == "" {
			password = "postgres"
		}
		dbname := os.Getenv("DB_NAME")
		if dbname == "" {
			dbname = "nxtgen_arena"
		}
		sslmode := os.Getenv("DB_SSLMODE")
		if sslmode == "" {
			sslmode = "disable"
		}

		ds.dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			host, user, password, dbname, port, sslmode)
	}

	return ds.DefaultService.Configure(ctx)
}

func (ds *SqlService) Start() (err error) {
	maxRetries := 10
	retryDelay := time.Second

	for attempt := 1; attempt <= maxRetries; attempt++ {
		ds.db, err = ds.open()
		if err == nil {
			sqlDB, dbErr := ds.db.DB()
			if dbErr == nil {
				if pingErr := sqlDB.Ping(); pingErr == nil {
					break
				} else {
					err = pingErr
				}
			} else {
				err = dbErr
			}
		}

		if attempt == maxRetries {
			log.Printf("Failed to connect to database after %d attempts: %v", maxRetries, err)
			return err
		}

		log.Printf("Database connection failed: %v. Retrying in %v...", err, retryDelay)
		time.Sleep(retryDelay)

		retryDelay *= 2
		if retryDelay > 10*time.Second {
			retryDelay = 10 * time.Second
		}
	}

	models := []interface{}{
		&model.User{},

		// Catalog + progression
		&model.Challenge{},
		&model.ChallengeRegistration{},
		&model.DayProgress{},

		// Portal content
		&model.Event{},
		&model.Roadmap{},
		&model.RoadmapStep{},
		&model.ProblemSheet{},
		&model.Problem{},
		&model.SheetAsset{},
	}

	if err = ds.db.AutoMigrate(models...); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		return err
	}

	log.Println("Database connected and migrated successfully")
	return nil
}

func (ds *SqlService) open() (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	}
	if ds.driver == "sqlite" {
		return gorm.Open(sqlite.Open(ds.dsn), cfg)
	}
	return gorm.Open(postgres.Open(ds.dsn), cfg)
}

func (ds *SqlService) Shutdown() {
}

// translateError maps gorm failures onto the engine's error taxonomy.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", shared.ErrStoreConflict, err)
	}

	if strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "duplicate key value") {
		return fmt.Errorf("%w: %v", shared.ErrStoreConflict, err)
	}

	return fmt.Errorf("%w: %v", shared.ErrStoreUnavailable, err)
}

// ==================== CHALLENGE CATALOG ====================

func (ds *SqlService) GetChallenge(id string) (*model.Challenge, error) {
	var challenge model.Challenge
	if err := ds.db.Where("id = ?", id).First(&challenge).Error; err != nil {
		return nil, translateError(err)
	}
	return &challenge, nil
}

func (ds *SqlService) GetChallengeBySlug(slug string) (*model.Challenge, error) {
	var challenge model.Challenge
	if err := ds.db.Where("slug = ?", slug).First(&challenge).Error; err != nil {
		return nil, translateError(err)
	}
	return &challenge, nil
}

func (ds *SqlService) GetActiveChallenges() ([]model.Challenge, error) {
	var challenges []model.Challenge
	if err := ds.db.Where("is_active = ?", true).Order("created_at DESC").Find(&challenges).Error; err != nil {
		return nil, translateError(err)
	}
	return challenges, nil
}

func (ds *SqlService) CreateChallenge(challenge *model.Challenge) (*model.Challenge, error) {
	if err := ds.db.Create(challenge).Error; err != nil {
		return nil, translateError(err)
	}
	return challenge, nil
}

// ==================== RECORD STORE: REGISTRATIONS ====================

func (ds *SqlService) GetRegistration(userID, challengeID string) (*model.ChallengeRegistration, error) {
	var reg model.ChallengeRegistration
	err := ds.db.Where("user_id = ? AND challenge_id = ?", userID, challengeID).First(&reg).Error
	if err != nil {
		return nil, translateError(err)
	}
	if _, err := model.ParseRegistrationStatus(reg.Status); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrStoreUnavailable, err)
	}
	return &reg, nil
}

// PutRegistration inserts when Version is zero, otherwise performs a
// conditional update guarded by the version token. A failed guard surfaces
// as ErrStoreConflict; the caller re-reads and retries.
func (ds *SqlService) PutRegistration(reg *model.ChallengeRegistration) error {
	now := time.Now()

	if reg.Version == 0 {
		reg.Version = 1
		reg.CreatedAt = now
		reg.UpdatedAt = now
		if err := ds.db.Create(reg).Error; err != nil {
			reg.Version = 0
			return translateError(err)
		}
		return nil
	}

	res := ds.db.Model(&model.ChallengeRegistration{}).
		Where("id = ? AND version = ?", reg.ID, reg.Version).
		Updates(map[string]interface{}{
			"status":           reg.Status,
			"current_day":      reg.CurrentDay,
			"completed_days":   reg.CompletedDays,
			"last_activity_at": reg.LastActivityAt,
			"version":          reg.Version + 1,
			"updated_at":       now,
		})
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return shared.ErrStoreConflict
	}

	reg.Version++
	reg.UpdatedAt = now
	return nil
}

// ==================== RECORD STORE: DAY PROGRESS ====================

func (ds *SqlService) GetDayProgress(userID, challengeID string, day int) (*model.DayProgress, error) {
	var dp model.DayProgress
	err := ds.db.Where("user_id = ? AND challenge_id = ? AND day_number = ?", userID, challengeID, day).
		First(&dp).Error
	if err != nil {
		return nil, translateError(err)
	}
	if _, err := dp.DayStatusValue(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrStoreUnavailable, err)
	}
	return &dp, nil
}

func (ds *SqlService) PutDayProgress(dp *model.DayProgress) error {
	now := time.Now()

	if dp.Version == 0 {
		dp.Version = 1
		dp.CreatedAt = now
		dp.UpdatedAt = now
		if err := ds.db.Create(dp).Error; err != nil {
			dp.Version = 0
			return translateError(err)
		}
		return nil
	}

	res := ds.db.Model(&model.DayProgress{}).
		Where("id = ? AND version = ?", dp.ID, dp.Version).
		Updates(map[string]interface{}{
			"status":             dp.Status,
			"unlocked_at":        dp.UnlockedAt,
			"started_at":         dp.StartedAt,
			"completed_at":       dp.CompletedAt,
			"submission_type":    dp.SubmissionType,
			"submission_content": dp.SubmissionContent,
			"version":            dp.Version + 1,
			"updated_at":         now,
		})
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return shared.ErrStoreConflict
	}

	dp.Version++
	dp.UpdatedAt = now
	return nil
}

func (ds *SqlService) QueryDayProgress(userID, challengeID string) ([]model.DayProgress, error) {
	var days []model.DayProgress
	err := ds.db.Where("user_id = ? AND challenge_id = ?", userID, challengeID).
		Order("day_number ASC").Find(&days).Error
	if err != nil {
		return nil, translateError(err)
	}
	for i := range days {
		if _, err := days[i].DayStatusValue(); err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrStoreUnavailable, err)
		}
	}
	return days, nil
}

// ==================== EVENTS ====================

func (ds *SqlService) GetPublishedEvents() ([]model.Event, error) {
	var events []model.Event
	if err := ds.db.Where("is_published = ?", true).Order("starts_at ASC").Find(&events).Error; err != nil {
		return nil, translateError(err)
	}
	return events, nil
}

func (ds *SqlService) GetEventBySlug(slug string) (*model.Event, error) {
	var event model.Event
	if err := ds.db.Where("slug = ? AND is_published = ?", slug, true).First(&event).Error; err != nil {
		return nil, translateError(err)
	}
	return &event, nil
}

func (ds *SqlService) CreateEvent(event *model.Event) (*model.Event, error) {
	if err := ds.db.Create(event).Error; err != nil {
		return nil, translateError(err)
	}
	return event, nil
}

// ==================== ROADMAPS ====================

func (ds *SqlService) GetPublishedRoadmaps() ([]model.Roadmap, error) {
	var roadmaps []model.Roadmap
	if err := ds.db.Where("is_published = ?", true).Order("title ASC").Find(&roadmaps).Error; err != nil {
		return nil, translateError(err)
	}
	return roadmaps, nil
}

func (ds *SqlService) GetRoadmapBySlug(slug string) (*model.Roadmap, error) {
	var roadmap model.Roadmap
	err := ds.db.Preload("Steps", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC")
	}).Where("slug = ? AND is_published = ?", slug, true).First(&roadmap).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &roadmap, nil
}

func (ds *SqlService) CreateRoadmap(roadmap *model.Roadmap) (*model.Roadmap, error) {
	if err := ds.db.Create(roadmap).Error; err != nil {
		return nil, translateError(err)
	}
	return roadmap, nil
}

// ==================== PROBLEM SHEETS ====================

func (ds *SqlService) GetPublishedSheets() ([]model.ProblemSheet, error) {
	var sheets []model.ProblemSheet
	if err := ds.db.Where("is_published = ?", true).Order("title ASC").Find(&sheets).Error; err != nil {
		return nil, translateError(err)
	}
	return sheets, nil
}

func (ds *SqlService) GetSheetBySlug(slug string) (*model.ProblemSheet, error) {
	var sheet model.ProblemSheet
	err := ds.db.Preload("Problems", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC")
	}).Where("slug = ? AND is_published = ?", slug, true).First(&sheet).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &sheet, nil
}

func (ds *SqlService) GetSheet(id string) (*model.ProblemSheet, error) {
	var sheet model.ProblemSheet
	if err := ds.db.Where("id = ?", id).First(&sheet).Error; err != nil {
		return nil, translateError(err)
	}
	return &sheet, nil
}

func (ds *SqlService) CreateSheet(sheet *model.ProblemSheet) (*model.ProblemSheet, error) {
	if err := ds.db.Create(sheet).Error; err != nil {
		return nil, translateError(err)
	}
	return sheet, nil
}

// ==================== SHEET ASSETS ====================

func (ds *SqlService) CreateSheetAsset(asset *model.SheetAsset) error {
	return translateError(ds.db.Create(asset).Error)
}

func (ds *SqlService) GetSheetAsset(id string) (*model.SheetAsset, error) {
	var asset model.SheetAsset
	if err := ds.db.Where("id = ?", id).First(&asset).Error; err != nil {
		return nil, translateError(err)
	}
	return &asset, nil
}

func (ds *SqlService) GetSheetAssets(sheetID string) ([]model.SheetAsset, error) {
	var assets []model.SheetAsset
	if err := ds.db.Where("sheet_id = ?", sheetID).Order("created_at DESC").Find(&assets).Error; err != nil {
		return nil, translateError(err)
	}
	return assets, nil
}

func (ds *SqlService) DeleteSheetAsset(id string) error {
	return translateError(ds.db.Delete(&model.SheetAsset{}, "id = ?", id).Error)
}

// ==================== USERS ====================

func (ds *SqlService) GetUserByID(id string) (*model.User, error) {
	var user model.User
	if err := ds.db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}
