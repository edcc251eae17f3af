package services

import (
	"encoding/json"

	"github.com/tarunbommali/nxtgen-arena-sub000/dto"
	"github.com/tarunbommali/nxtgen-arena-sub000/model"
	"github.com/tarunbommali/nxtgen-arena-sub000/shared"
)

// DTO-level wrappers around the engine operations, consumed by the HTTP
// handlers.

func (svc *ChallengeService) GetChallengesResponse() (*dto.ChallengeCollectionResponse, error) {
	challenges, err := svc.GetChallenges()
	if err != nil {
		return nil, err
	}

	resp := &dto.ChallengeCollectionResponse{
		Challenges: make([]dto.ChallengeResponse, 0, len(challenges)),
		Total:      len(challenges),
	}
	for i := range challenges {
		resp.Challenges = append(resp.Challenges, toChallengeResponse(&challenges[i]))
	}
	return resp, nil
}

func (svc *ChallengeService) GetChallengeResponse(slug string) (*dto.ChallengeResponse, error) {
	challenge, err := svc.GetChallengeBySlug(slug)
	if err != nil {
		return nil, err
	}

	resp := toChallengeResponse(challenge)
	return &resp, nil
}

func (svc *ChallengeService) CreateChallengeFromRequest(req *dto.CreateChallengeRequest) (*dto.ChallengeResponse, error) {
	challenge, err := svc.CreateChallenge(&model.Challenge{
		Slug:        req.Slug,
		Title:       req.Title,
		Description: req.Description,
		TotalDays:   req.TotalDays,
	})
	if err != nil {
		return nil, err
	}

	resp := toChallengeResponse(challenge)
	return &resp, nil
}

func (svc *ChallengeService) RegisterResponse(userID, challengeID string) (*dto.RegistrationResponse, error) {
	reg, err := svc.Register(userID, challengeID)
	if err != nil {
		return nil, err
	}
	return toRegistrationResponse(reg)
}

func (svc *ChallengeService) GetDayAccessResponse(userID, challengeID string, day int) (*dto.DayAccessResponse, error) {
	canAccess, err := svc.CanAccessDay(userID, challengeID, day)
	if err != nil {
		return nil, err
	}
	return &dto.DayAccessResponse{DayNumber: day, CanAccess: canAccess}, nil
}

func (svc *ChallengeService) StartDayResponse(userID, challengeID string, day int) (*dto.DayProgressResponse, error) {
	dp, err := svc.StartDay(userID, challengeID, day)
	if err != nil {
		return nil, err
	}

	resp := toDayProgressResponse(dp)
	return &resp, nil
}

func (svc *ChallengeService) CompleteDayResponse(userID, challengeID string, day int, req *dto.CompleteDayRequest) (*dto.RegistrationResponse, error) {
	reg, err := svc.CompleteDay(userID, challengeID, day, req.SubmissionType, req.SubmissionContent)
	if err != nil {
		return nil, err
	}
	return toRegistrationResponse(reg)
}

func (svc *ChallengeService) GetProgressResponse(userID, challengeID string) (*dto.ChallengeProgressResponse, error) {
	reg, days, stats, err := svc.GetProgress(userID, challengeID)
	if err != nil {
		return nil, err
	}

	regResp, err := toRegistrationResponse(reg)
	if err != nil {
		return nil, err
	}

	resp := &dto.ChallengeProgressResponse{
		Registration: *regResp,
		Days:         make([]dto.DayProgressResponse, 0, len(days)),
		Stats: dto.ProgressStatsResponse{
			CompletedCount:       stats.CompletedCount,
			CompletionPercentage: stats.CompletionPercentage,
			CurrentStreak:        stats.CurrentStreak,
			CurrentDay:           stats.CurrentDay,
			Status:               stats.Status,
		},
	}
	for i := range days {
		resp.Days = append(resp.Days, toDayProgressResponse(&days[i]))
	}
	return resp, nil
}

func toChallengeResponse(challenge *model.Challenge) dto.ChallengeResponse {
	return dto.ChallengeResponse{
		ID:          challenge.ID,
		Slug:        challenge.Slug,
		Title:       challenge.Title,
		Description: challenge.Description,
		TotalDays:   challenge.TotalDays,
		IsActive:    challenge.IsActive,
	}
}

func toRegistrationResponse(reg *model.ChallengeRegistration) (*dto.RegistrationResponse, error) {
	days := []int{}
	if len(reg.CompletedDays) > 0 {
		if err := json.Unmarshal(reg.CompletedDays, &days); err != nil {
			return nil, shared.NewInternalError(err, "Corrupt registration record")
		}
	}

	return &dto.RegistrationResponse{
		ID:             reg.ID,
		UserID:         reg.UserID,
		ChallengeID:    reg.ChallengeID,
		Status:         reg.Status,
		CurrentDay:     reg.CurrentDay,
		CompletedDays:  days,
		RegisteredAt:   reg.RegisteredAt,
		LastActivityAt: reg.LastActivityAt,
	}, nil
}

func toDayProgressResponse(dp *model.DayProgress) dto.DayProgressResponse {
	return dto.DayProgressResponse{
		DayNumber:         dp.DayNumber,
		Status:            dp.Status,
		UnlockedAt:        dp.UnlockedAt,
		StartedAt:         dp.StartedAt,
		CompletedAt:       dp.CompletedAt,
		SubmissionType:    dp.SubmissionType,
		SubmissionContent: dp.SubmissionContent,
	}
}
