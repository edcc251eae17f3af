package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/tarunbommali/nxtgen-arena-sub000/model"
	"github.com/tarunbommali/nxtgen-arena-sub000/shared"
)

// ChallengeStore is the persistence contract the progression engine runs
// against. SqlService implements it in production; tests swap in an
// in-memory implementation.
type ChallengeStore interface {
	GetChallenge(id string) (*model.Challenge, error)
	GetRegistration(userID, challengeID string) (*model.ChallengeRegistration, error)
	PutRegistration(reg *model.ChallengeRegistration) error
	GetDayProgress(userID, challengeID string, day int) (*model.DayProgress, error)
	PutDayProgress(dp *model.DayProgress) error
	QueryDayProgress(userID, challengeID string) ([]model.DayProgress, error)
}

// dayLocker serializes mutating operations on one registration.
type dayLocker interface {
	WithLock(key string, fn func() error) error
}

// ChallengeService is the sequential progression engine: registration,
// day access checks, the day state machine and the completion cascade.
//
// Writes go through version-guarded puts; on ErrStoreConflict the engine
// re-reads and re-derives the transition, up to storeRetryAttempts times.
// The cascade is written in resumable steps, so a crash between the day
// write and the registration write is repaired by the next CompleteDay.
type ChallengeService struct {
	context.DefaultService

	sqlSvc     *SqlService
	monitoring *MonitoringService

	store ChallengeStore
	lock  dayLocker
}

const CHALLENGE_SVC = "challenge_svc"

const storeRetryAttempts = 3

func (svc ChallengeService) Id() string {
	return CHALLENGE_SVC
}

func (svc *ChallengeService) Start() error {
	svc.sqlSvc = svc.Service(SQL_SVC).(*SqlService)
	svc.monitoring = svc.Service(MONITORING_SVC).(*MonitoringService)
	svc.store = svc.sqlSvc
	svc.lock = svc.Service(LOCK_SVC).(*LockService)
	return nil
}

func registrationKey(userID, challengeID string) string {
	return fmt.Sprintf("challenge:%s:%s", challengeID, userID)
}

// ==================== CATALOG ====================

func (svc *ChallengeService) GetChallenges() ([]model.Challenge, error) {
	return svc.sqlSvc.GetActiveChallenges()
}

func (svc *ChallengeService) GetChallengeBySlug(slug string) (*model.Challenge, error) {
	return svc.sqlSvc.GetChallengeBySlug(slug)
}

func (svc *ChallengeService) CreateChallenge(challenge *model.Challenge) (*model.Challenge, error) {
	challenge.ID = uuid.Must(uuid.NewV7()).String()
	challenge.IsActive = true
	return svc.sqlSvc.CreateChallenge(challenge)
}

// ==================== REGISTRATION ====================

// Register enrolls the user: one registration row plus one progress row per
// day, day 1 unlocked and the rest locked. Re-registering returns
// ErrAlreadyRegistered, but first repairs any day rows a crashed earlier
// attempt failed to create.
func (svc *ChallengeService) Register(userID, challengeID string) (*model.ChallengeRegistration, error) {
	challenge, err := svc.store.GetChallenge(challengeID)
	if err != nil {
		return nil, err
	}
	if !challenge.IsActive {
		// Retired challenges stay readable but take no new registrations.
		return nil, shared.ErrNotFound
	}

	var reg *model.ChallengeRegistration
	err = svc.lock.WithLock(registrationKey(userID, challengeID), func() error {
		existing, err := svc.store.GetRegistration(userID, challengeID)
		if err == nil {
			if repairErr := svc.repairDayRows(existing, challenge); repairErr != nil {
				return repairErr
			}
			return shared.ErrAlreadyRegistered
		}
		if !errors.Is(err, shared.ErrNotFound) {
			return err
		}

		now := time.Now()
		reg = &model.ChallengeRegistration{
			ID:             uuid.Must(uuid.NewV7()).String(),
			UserID:         userID,
			ChallengeID:    challengeID,
			Status:         string(model.RegistrationActive),
			CurrentDay:     1,
			CompletedDays:  []byte("[]"),
			RegisteredAt:   now,
			LastActivityAt: now,
		}
		if err := svc.store.PutRegistration(reg); err != nil {
			if errors.Is(err, shared.ErrStoreConflict) {
				// Lost a race with another instance; surface as a duplicate.
				return shared.ErrAlreadyRegistered
			}
			return err
		}

		return svc.repairDayRows(reg, challenge)
	})
	if err != nil {
		return nil, err
	}

	svc.recordRegistration()
	log.WithFields(log.Fields{
		"user_id":      userID,
		"challenge_id": challengeID,
	}).Info("User registered for challenge")
	return reg, nil
}

// repairDayRows creates any missing day rows for a registration. Rows are
// derived from the registration record, so a crash mid-creation converges
// to the same state on the next call.
func (svc *ChallengeService) repairDayRows(reg *model.ChallengeRegistration, challenge *model.Challenge) error {
	days, err := svc.store.QueryDayProgress(reg.UserID, reg.ChallengeID)
	if err != nil {
		return err
	}

	existing := make(map[int]bool, len(days))
	for _, d := range days {
		existing[d.DayNumber] = true
	}
	if len(existing) == challenge.TotalDays {
		return nil
	}

	completed, err := reg.CompletedDaySet()
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrStoreUnavailable, err)
	}

	now := time.Now()
	for day := 1; day <= challenge.TotalDays; day++ {
		if existing[day] {
			continue
		}

		dp := &model.DayProgress{
			ID:          uuid.Must(uuid.NewV7()).String(),
			UserID:      reg.UserID,
			ChallengeID: reg.ChallengeID,
			DayNumber:   day,
			Status:      string(model.DayLocked),
		}
		switch {
		case completed[day]:
			dp.Status = string(model.DayCompleted)
			dp.UnlockedAt = &now
			dp.CompletedAt = &now
		case day == reg.CurrentDay && reg.Status == string(model.RegistrationActive):
			dp.Status = string(model.DayUnlocked)
			dp.UnlockedAt = &now
		}

		if err := svc.store.PutDayProgress(dp); err != nil {
			// Another writer got there first; the row exists, which is
			// all the repair needs.
			if errors.Is(err, shared.ErrStoreConflict) {
				continue
			}
			return err
		}
	}
	return nil
}

// ==================== ACCESS GUARD ====================

// CanAccessDay reports whether the user may view a day's content. Days
// outside the challenge range and days with no progress row are treated as
// locked.
func (svc *ChallengeService) CanAccessDay(userID, challengeID string, day int) (bool, error) {
	challenge, err := svc.store.GetChallenge(challengeID)
	if err != nil {
		return false, err
	}
	if day < 1 || day > challenge.TotalDays {
		return false, nil
	}

	if _, err := svc.store.GetRegistration(userID, challengeID); err != nil {
		return false, err
	}

	dp, err := svc.store.GetDayProgress(userID, challengeID, day)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	status, err := dp.DayStatusValue()
	if err != nil {
		return false, fmt.Errorf("%w: %v", shared.ErrStoreUnavailable, err)
	}
	return status != model.DayLocked, nil
}

// ==================== DAY STATE MACHINE ====================

// StartDay moves an unlocked day to in_progress. Starting a day already
// in_progress or completed is a no-op returning the current row; starting a
// locked day is ErrInvalidTransition.
func (svc *ChallengeService) StartDay(userID, challengeID string, day int) (*model.DayProgress, error) {
	challenge, err := svc.store.GetChallenge(challengeID)
	if err != nil {
		return nil, err
	}
	if day < 1 || day > challenge.TotalDays {
		return nil, fmt.Errorf("%w: day %d out of range", shared.ErrNotFound, day)
	}

	if _, err := svc.store.GetRegistration(userID, challengeID); err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt < storeRetryAttempts; attempt++ {
		dp, err := svc.store.GetDayProgress(userID, challengeID, day)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, fmt.Errorf("%w: day %d is locked", shared.ErrInvalidTransition, day)
			}
			return nil, err
		}

		status, err := dp.DayStatusValue()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrStoreUnavailable, err)
		}

		switch status {
		case model.DayLocked:
			return nil, fmt.Errorf("%w: day %d is locked", shared.ErrInvalidTransition, day)
		case model.DayInProgress, model.DayCompleted:
			return dp, nil
		}

		now := time.Now()
		dp.Status = string(model.DayInProgress)
		dp.StartedAt = &now
		if err := svc.store.PutDayProgress(dp); err != nil {
			if errors.Is(err, shared.ErrStoreConflict) {
				svc.recordStoreConflict()
				lastErr = err
				continue
			}
			return nil, err
		}
		return dp, nil
	}
	return nil, lastErr
}

// ==================== COMPLETION CASCADE ====================

// CompleteDay records a submission for the user's current day and runs the
// completion cascade: mark the day completed, fold it into the
// registration, then unlock the following day (or complete the
// registration after the final day).
//
// Completing an already-completed day whose cascade fully applied is
// ErrInvalidTransition. If the cascade only partially applied, the call
// resumes it and succeeds, so retried requests converge.
func (svc *ChallengeService) CompleteDay(userID, challengeID string, day int, submissionType, submissionContent string) (*model.ChallengeRegistration, error) {
	challenge, err := svc.store.GetChallenge(challengeID)
	if err != nil {
		return nil, err
	}
	if day < 1 || day > challenge.TotalDays {
		return nil, fmt.Errorf("%w: day %d out of range", shared.ErrNotFound, day)
	}

	var reg *model.ChallengeRegistration
	err = svc.lock.WithLock(registrationKey(userID, challengeID), func() error {
		var err error
		reg, err = svc.store.GetRegistration(userID, challengeID)
		if err != nil {
			return err
		}

		dp, err := svc.store.GetDayProgress(userID, challengeID, day)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return fmt.Errorf("%w: day %d is locked", shared.ErrInvalidTransition, day)
			}
			return err
		}

		status, err := dp.DayStatusValue()
		if err != nil {
			return fmt.Errorf("%w: %v", shared.ErrStoreUnavailable, err)
		}

		switch status {
		case model.DayLocked:
			return fmt.Errorf("%w: day %d is locked", shared.ErrInvalidTransition, day)

		case model.DayCompleted:
			applied, err := svc.cascadeApplied(reg, challenge, day)
			if err != nil {
				return err
			}
			if applied {
				return fmt.Errorf("%w: day %d already completed", shared.ErrInvalidTransition, day)
			}

			// Day row persisted but the cascade didn't finish; pick it
			// back up instead of rejecting the retry.
			svc.recordCascadeResume()
			log.WithFields(log.Fields{
				"user_id":      userID,
				"challenge_id": challengeID,
				"day":          day,
			}).Warn("Resuming interrupted completion cascade")
			reg, err = svc.runCascade(reg, challenge, day)
			return err
		}

		if err := svc.markDayCompleted(dp, submissionType, submissionContent); err != nil {
			return err
		}

		reg, err = svc.runCascade(reg, challenge, day)
		return err
	})
	if err != nil {
		return nil, err
	}

	svc.recordDayCompletion()
	return reg, nil
}

func (svc *ChallengeService) markDayCompleted(dp *model.DayProgress, submissionType, submissionContent string) error {
	var lastErr error
	for attempt := 0; attempt < storeRetryAttempts; attempt++ {
		now := time.Now()
		dp.Status = string(model.DayCompleted)
		dp.CompletedAt = &now
		if dp.StartedAt == nil {
			dp.StartedAt = &now
		}
		dp.SubmissionType = submissionType
		dp.SubmissionContent = submissionContent

		err := svc.store.PutDayProgress(dp)
		if err == nil {
			return nil
		}
		if !errors.Is(err, shared.ErrStoreConflict) {
			return err
		}

		svc.recordStoreConflict()
		lastErr = err

		fresh, err := svc.store.GetDayProgress(dp.UserID, dp.ChallengeID, dp.DayNumber)
		if err != nil {
			return err
		}
		status, err := fresh.DayStatusValue()
		if err != nil {
			return fmt.Errorf("%w: %v", shared.ErrStoreUnavailable, err)
		}
		if status == model.DayCompleted {
			*dp = *fresh
			return nil
		}
		*dp = *fresh
	}
	return lastErr
}

// cascadeApplied reports whether the registration and unlock effects of
// completing day are already in place.
func (svc *ChallengeService) cascadeApplied(reg *model.ChallengeRegistration, challenge *model.Challenge, day int) (bool, error) {
	completed, err := reg.CompletedDaySet()
	if err != nil {
		return false, fmt.Errorf("%w: %v", shared.ErrStoreUnavailable, err)
	}
	if !completed[day] {
		return false, nil
	}
	if day == challenge.TotalDays {
		return reg.Status == string(model.RegistrationCompleted), nil
	}

	next, err := svc.store.GetDayProgress(reg.UserID, reg.ChallengeID, day+1)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	status, err := next.DayStatusValue()
	if err != nil {
		return false, fmt.Errorf("%w: %v", shared.ErrStoreUnavailable, err)
	}
	return status != model.DayLocked, nil
}

// runCascade folds a completed day into the registration record, then
// unlocks the next day. Every step is idempotent.
func (svc *ChallengeService) runCascade(reg *model.ChallengeRegistration, challenge *model.Challenge, day int) (*model.ChallengeRegistration, error) {
	var lastErr error
	for attempt := 0; attempt < storeRetryAttempts; attempt++ {
		completed, err := reg.CompletedDaySet()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrStoreUnavailable, err)
		}

		if !completed[day] || reg.CurrentDay < nextCurrentDay(day, completed, challenge.TotalDays) {
			completed[day] = true
			if err := reg.SetCompletedDays(completed); err != nil {
				return nil, fmt.Errorf("%w: %v", shared.ErrStoreUnavailable, err)
			}
			reg.CurrentDay = nextCurrentDay(day, completed, challenge.TotalDays)
			reg.LastActivityAt = time.Now()
			if len(completed) == challenge.TotalDays {
				reg.Status = string(model.RegistrationCompleted)
			}

			err = svc.store.PutRegistration(reg)
			if errors.Is(err, shared.ErrStoreConflict) {
				svc.recordStoreConflict()
				lastErr = err
				reg, err = svc.store.GetRegistration(reg.UserID, reg.ChallengeID)
				if err != nil {
					return nil, err
				}
				continue
			}
			if err != nil {
				return nil, err
			}
		}

		if day < challenge.TotalDays {
			if err := svc.unlockDay(reg.UserID, reg.ChallengeID, day+1); err != nil {
				return nil, err
			}
		}
		return reg, nil
	}
	return nil, lastErr
}

// nextCurrentDay keeps current_day monotonic: the day after the completed
// one, capped at the challenge length, never moving backwards.
func nextCurrentDay(day int, completed map[int]bool, totalDays int) int {
	next := day + 1
	for completed[next] && next < totalDays {
		next++
	}
	if next > totalDays {
		next = totalDays
	}
	return next
}

func (svc *ChallengeService) unlockDay(userID, challengeID string, day int) error {
	var lastErr error
	for attempt := 0; attempt < storeRetryAttempts; attempt++ {
		dp, err := svc.store.GetDayProgress(userID, challengeID, day)
		if errors.Is(err, shared.ErrNotFound) {
			// Row lost to a crashed registration; recreate it unlocked.
			now := time.Now()
			dp = &model.DayProgress{
				ID:          uuid.Must(uuid.NewV7()).String(),
				UserID:      userID,
				ChallengeID: challengeID,
				DayNumber:   day,
				Status:      string(model.DayUnlocked),
				UnlockedAt:  &now,
			}
			err = svc.store.PutDayProgress(dp)
			if err == nil {
				return nil
			}
			if errors.Is(err, shared.ErrStoreConflict) {
				// Someone else created the row; re-read it.
				lastErr = err
				continue
			}
			return err
		}
		if err != nil {
			return err
		}

		status, err := dp.DayStatusValue()
		if err != nil {
			return fmt.Errorf("%w: %v", shared.ErrStoreUnavailable, err)
		}
		if status != model.DayLocked {
			return nil
		}

		now := time.Now()
		dp.Status = string(model.DayUnlocked)
		dp.UnlockedAt = &now
		err = svc.store.PutDayProgress(dp)
		if err == nil {
			return nil
		}
		if !errors.Is(err, shared.ErrStoreConflict) {
			return err
		}
		svc.recordStoreConflict()
		lastErr = err
	}
	return lastErr
}

// ==================== PROGRESS ====================

// GetProgress returns the registration, all day rows in order and the
// derived statistics.
func (svc *ChallengeService) GetProgress(userID, challengeID string) (*model.ChallengeRegistration, []model.DayProgress, ProgressStats, error) {
	challenge, err := svc.store.GetChallenge(challengeID)
	if err != nil {
		return nil, nil, ProgressStats{}, err
	}

	reg, err := svc.store.GetRegistration(userID, challengeID)
	if err != nil {
		return nil, nil, ProgressStats{}, err
	}

	days, err := svc.store.QueryDayProgress(userID, challengeID)
	if err != nil {
		return nil, nil, ProgressStats{}, err
	}

	stats, err := DeriveStats(reg, challenge.TotalDays)
	if err != nil {
		return nil, nil, ProgressStats{}, fmt.Errorf("%w: %v", shared.ErrStoreUnavailable, err)
	}
	return reg, days, stats, nil
}

// ==================== METRICS ====================

func (svc *ChallengeService) recordRegistration() {
	if svc.monitoring != nil {
		svc.monitoring.RecordChallengeRegistration()
	}
}

func (svc *ChallengeService) recordDayCompletion() {
	if svc.monitoring != nil {
		svc.monitoring.RecordDayCompletion()
	}
}

func (svc *ChallengeService) recordCascadeResume() {
	if svc.monitoring != nil {
		svc.monitoring.RecordCascadeResume()
	}
}

func (svc *ChallengeService) recordStoreConflict() {
	if svc.monitoring != nil {
		svc.monitoring.RecordStoreConflict()
	}
}
