package services

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarunbommali/nxtgen-arena-sub000/model"
	"github.com/tarunbommali/nxtgen-arena-sub000/shared"
)

// memStore is an in-memory ChallengeStore that mirrors the version-guard
// protocol of SqlService: insert when Version is zero, conditional update
// otherwise, ErrStoreConflict on a stale token. Put failures can be
// injected to exercise the engine's retry paths.
type memStore struct {
	mu         sync.Mutex
	challenges map[string]model.Challenge
	regs       map[string]model.ChallengeRegistration
	days       map[string]model.DayProgress

	regPutFailures int
	dayPutFailures int
}

func newMemStore() *memStore {
	return &memStore{
		challenges: map[string]model.Challenge{},
		regs:       map[string]model.ChallengeRegistration{},
		days:       map[string]model.DayProgress{},
	}
}

func regKey(userID, challengeID string) string {
	return userID + "|" + challengeID
}

func dayKey(userID, challengeID string, day int) string {
	return fmt.Sprintf("%s|%s|%d", userID, challengeID, day)
}

func (s *memStore) GetChallenge(id string) (*model.Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.challenges[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &c, nil
}

func (s *memStore) GetRegistration(userID, challengeID string) (*model.ChallengeRegistration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.regs[regKey(userID, challengeID)]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &r, nil
}

func (s *memStore) PutRegistration(reg *model.ChallengeRegistration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.regPutFailures > 0 {
		s.regPutFailures--
		return shared.ErrStoreConflict
	}

	key := regKey(reg.UserID, reg.ChallengeID)
	existing, ok := s.regs[key]

	if reg.Version == 0 {
		if ok {
			return shared.ErrStoreConflict
		}
		reg.Version = 1
		s.regs[key] = *reg
		return nil
	}

	if !ok || existing.Version != reg.Version {
		return shared.ErrStoreConflict
	}
	reg.Version++
	s.regs[key] = *reg
	return nil
}

func (s *memStore) GetDayProgress(userID, challengeID string, day int) (*model.DayProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.days[dayKey(userID, challengeID, day)]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &d, nil
}

func (s *memStore) PutDayProgress(dp *model.DayProgress) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dayPutFailures > 0 {
		s.dayPutFailures--
		return shared.ErrStoreConflict
	}

	key := dayKey(dp.UserID, dp.ChallengeID, dp.DayNumber)
	existing, ok := s.days[key]

	if dp.Version == 0 {
		if ok {
			return shared.ErrStoreConflict
		}
		dp.Version = 1
		s.days[key] = *dp
		return nil
	}

	if !ok || existing.Version != dp.Version {
		return shared.ErrStoreConflict
	}
	dp.Version++
	s.days[key] = *dp
	return nil
}

func (s *memStore) QueryDayProgress(userID, challengeID string) ([]model.DayProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.DayProgress
	for day := 1; ; day++ {
		d, ok := s.days[dayKey(userID, challengeID, day)]
		if !ok {
			break
		}
		out = append(out, d)
	}
	return out, nil
}

func (s *memStore) deleteDay(userID, challengeID string, day int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.days, dayKey(userID, challengeID, day))
}

type localLocker struct {
	mu sync.Mutex
}

func (l *localLocker) WithLock(key string, fn func() error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return fn()
}

func newTestEngine(totalDays int) (*ChallengeService, *memStore) {
	st := newMemStore()
	st.challenges["ch1"] = model.Challenge{
		ID:        "ch1",
		Slug:      "test-challenge",
		Title:     "Test Challenge",
		TotalDays: totalDays,
		IsActive:  true,
	}

	svc := &ChallengeService{
		store: st,
		lock:  &localLocker{},
	}
	return svc, st
}

func dayStatus(t *testing.T, st *memStore, day int) model.DayStatus {
	t.Helper()
	dp, err := st.GetDayProgress("u1", "ch1", day)
	require.NoError(t, err)
	status, err := dp.DayStatusValue()
	require.NoError(t, err)
	return status
}

func TestRegister_CreatesRegistrationAndDayRows(t *testing.T) {
	svc, st := newTestEngine(5)

	reg, err := svc.Register("u1", "ch1")
	require.NoError(t, err)
	require.NotNil(t, reg)

	assert.Equal(t, string(model.RegistrationActive), reg.Status)
	assert.Equal(t, 1, reg.CurrentDay)

	completed, err := reg.CompletedDaySet()
	require.NoError(t, err)
	assert.Empty(t, completed)

	assert.Equal(t, model.DayUnlocked, dayStatus(t, st, 1))
	for day := 2; day <= 5; day++ {
		assert.Equal(t, model.DayLocked, dayStatus(t, st, day))
	}
}

func TestRegister_UnknownChallenge(t *testing.T) {
	svc, _ := newTestEngine(5)

	_, err := svc.Register("u1", "missing")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestRegister_InactiveChallenge(t *testing.T) {
	svc, st := newTestEngine(5)
	st.challenges["ch-retired"] = model.Challenge{
		ID:        "ch-retired",
		Slug:      "retired-challenge",
		Title:     "Retired Challenge",
		TotalDays: 5,
	}

	_, err := svc.Register("u1", "ch-retired")
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = st.GetRegistration("u1", "ch-retired")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestRegister_Duplicate(t *testing.T) {
	svc, _ := newTestEngine(5)

	_, err := svc.Register("u1", "ch1")
	require.NoError(t, err)

	_, err = svc.Register("u1", "ch1")
	assert.ErrorIs(t, err, shared.ErrAlreadyRegistered)
}

func TestRegister_RepairsMissingDayRows(t *testing.T) {
	svc, st := newTestEngine(5)

	_, err := svc.Register("u1", "ch1")
	require.NoError(t, err)

	// Simulate a crash that lost a day row mid-creation.
	st.deleteDay("u1", "ch1", 3)

	_, err = svc.Register("u1", "ch1")
	assert.ErrorIs(t, err, shared.ErrAlreadyRegistered)

	assert.Equal(t, model.DayLocked, dayStatus(t, st, 3))
}

func TestCanAccessDay(t *testing.T) {
	svc, _ := newTestEngine(5)

	_, err := svc.Register("u1", "ch1")
	require.NoError(t, err)

	ok, err := svc.CanAccessDay("u1", "ch1", 1)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.CanAccessDay("u1", "ch1", 2)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.CanAccessDay("u1", "ch1", 0)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.CanAccessDay("u1", "ch1", 6)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = svc.CanAccessDay("u2", "ch1", 1)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestStartDay(t *testing.T) {
	svc, _ := newTestEngine(5)

	_, err := svc.Register("u1", "ch1")
	require.NoError(t, err)

	dp, err := svc.StartDay("u1", "ch1", 1)
	require.NoError(t, err)
	assert.Equal(t, string(model.DayInProgress), dp.Status)
	assert.NotNil(t, dp.StartedAt)

	// Starting again is a no-op.
	again, err := svc.StartDay("u1", "ch1", 1)
	require.NoError(t, err)
	assert.Equal(t, string(model.DayInProgress), again.Status)

	_, err = svc.StartDay("u1", "ch1", 2)
	assert.ErrorIs(t, err, shared.ErrInvalidTransition)

	_, err = svc.StartDay("u1", "ch1", 9)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestCompleteDay_Cascade(t *testing.T) {
	svc, st := newTestEngine(5)

	_, err := svc.Register("u1", "ch1")
	require.NoError(t, err)

	_, err = svc.StartDay("u1", "ch1", 1)
	require.NoError(t, err)

	reg, err := svc.CompleteDay("u1", "ch1", 1, shared.SubmissionTypeText, "done")
	require.NoError(t, err)

	assert.Equal(t, 2, reg.CurrentDay)
	assert.Equal(t, string(model.RegistrationActive), reg.Status)

	completed, err := reg.CompletedDaySet()
	require.NoError(t, err)
	assert.True(t, completed[1])
	assert.Len(t, completed, 1)

	assert.Equal(t, model.DayCompleted, dayStatus(t, st, 1))
	assert.Equal(t, model.DayUnlocked, dayStatus(t, st, 2))
	assert.Equal(t, model.DayLocked, dayStatus(t, st, 3))

	dp, err := st.GetDayProgress("u1", "ch1", 1)
	require.NoError(t, err)
	assert.Equal(t, shared.SubmissionTypeText, dp.SubmissionType)
	assert.Equal(t, "done", dp.SubmissionContent)
	assert.NotNil(t, dp.CompletedAt)
}

func TestCompleteDay_FromUnlockedWithoutStart(t *testing.T) {
	svc, st := newTestEngine(5)

	_, err := svc.Register("u1", "ch1")
	require.NoError(t, err)

	_, err = svc.CompleteDay("u1", "ch1", 1, shared.SubmissionTypeLink, "https://example.com/solution")
	require.NoError(t, err)

	dp, err := st.GetDayProgress("u1", "ch1", 1)
	require.NoError(t, err)
	assert.Equal(t, string(model.DayCompleted), dp.Status)
	assert.NotNil(t, dp.StartedAt)
}

func TestCompleteDay_LockedDay(t *testing.T) {
	svc, _ := newTestEngine(5)

	_, err := svc.Register("u1", "ch1")
	require.NoError(t, err)

	_, err = svc.CompleteDay("u1", "ch1", 2, shared.SubmissionTypeText, "skip ahead")
	assert.ErrorIs(t, err, shared.ErrInvalidTransition)
}

func TestCompleteDay_Duplicate(t *testing.T) {
	svc, _ := newTestEngine(5)

	_, err := svc.Register("u1", "ch1")
	require.NoError(t, err)

	_, err = svc.CompleteDay("u1", "ch1", 1, shared.SubmissionTypeText, "done")
	require.NoError(t, err)

	_, err = svc.CompleteDay("u1", "ch1", 1, shared.SubmissionTypeText, "done again")
	assert.ErrorIs(t, err, shared.ErrInvalidTransition)
}

func TestCompleteDay_ResumesPartialCascade(t *testing.T) {
	svc, st := newTestEngine(5)

	_, err := svc.Register("u1", "ch1")
	require.NoError(t, err)

	// Simulate a crash after the day write but before the cascade: day 1
	// completed in the store, registration untouched, day 2 still locked.
	dp, err := st.GetDayProgress("u1", "ch1", 1)
	require.NoError(t, err)
	now := time.Now()
	dp.Status = string(model.DayCompleted)
	dp.CompletedAt = &now
	require.NoError(t, st.PutDayProgress(dp))

	reg, err := svc.CompleteDay("u1", "ch1", 1, shared.SubmissionTypeText, "retry")
	require.NoError(t, err)

	assert.Equal(t, 2, reg.CurrentDay)
	completed, err := reg.CompletedDaySet()
	require.NoError(t, err)
	assert.True(t, completed[1])

	assert.Equal(t, model.DayUnlocked, dayStatus(t, st, 2))

	// A further retry now sees the cascade fully applied.
	_, err = svc.CompleteDay("u1", "ch1", 1, shared.SubmissionTypeText, "retry again")
	assert.ErrorIs(t, err, shared.ErrInvalidTransition)
}

func TestCompleteDay_RetriesOnConflict(t *testing.T) {
	svc, st := newTestEngine(5)

	_, err := svc.Register("u1", "ch1")
	require.NoError(t, err)

	st.dayPutFailures = 1
	st.regPutFailures = 1

	reg, err := svc.CompleteDay("u1", "ch1", 1, shared.SubmissionTypeText, "done")
	require.NoError(t, err)
	assert.Equal(t, 2, reg.CurrentDay)
	assert.Equal(t, model.DayUnlocked, dayStatus(t, st, 2))
}

func TestCompleteDay_FinalDay(t *testing.T) {
	svc, st := newTestEngine(3)

	_, err := svc.Register("u1", "ch1")
	require.NoError(t, err)

	for day := 1; day <= 3; day++ {
		_, err := svc.CompleteDay("u1", "ch1", day, shared.SubmissionTypeText, "done")
		require.NoError(t, err)
	}

	reg, err := st.GetRegistration("u1", "ch1")
	require.NoError(t, err)
	assert.Equal(t, string(model.RegistrationCompleted), reg.Status)
	assert.Equal(t, 3, reg.CurrentDay)

	stats, err := DeriveStats(reg, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.CompletedCount)
	assert.Equal(t, float64(100), stats.CompletionPercentage)
	assert.Equal(t, 3, stats.CurrentStreak)
}

// Walks a five day challenge end to end, checking the gap-free invariant
// after every step.
func TestFiveDayScenario(t *testing.T) {
	svc, st := newTestEngine(5)

	_, err := svc.Register("u1", "ch1")
	require.NoError(t, err)

	for day := 1; day <= 5; day++ {
		// Days past the frontier stay sealed.
		for future := day + 1; future <= 5; future++ {
			ok, err := svc.CanAccessDay("u1", "ch1", future)
			require.NoError(t, err)
			assert.False(t, ok, "day %d should be inaccessible while day %d is open", future, day)
		}

		ok, err := svc.CanAccessDay("u1", "ch1", day)
		require.NoError(t, err)
		assert.True(t, ok)

		_, err = svc.StartDay("u1", "ch1", day)
		require.NoError(t, err)

		reg, err := svc.CompleteDay("u1", "ch1", day, shared.SubmissionTypeText, "done")
		require.NoError(t, err)

		completed, err := reg.CompletedDaySet()
		require.NoError(t, err)
		assert.Len(t, completed, day)
		for d := 1; d <= day; d++ {
			assert.True(t, completed[d], "day %d missing from completed set", d)
		}

		if day < 5 {
			assert.Equal(t, day+1, reg.CurrentDay)
			assert.Equal(t, string(model.RegistrationActive), reg.Status)
		} else {
			assert.Equal(t, 5, reg.CurrentDay)
			assert.Equal(t, string(model.RegistrationCompleted), reg.Status)
		}
	}

	_, days, stats, err := svc.GetProgress("u1", "ch1")
	require.NoError(t, err)
	assert.Len(t, days, 5)
	assert.Equal(t, 5, stats.CompletedCount)
	assert.Equal(t, float64(100), stats.CompletionPercentage)
	assert.Equal(t, 5, stats.CurrentStreak)

	_ = st
}

func TestGetProgress_Unregistered(t *testing.T) {
	svc, _ := newTestEngine(5)

	_, _, _, err := svc.GetProgress("ghost", "ch1")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
