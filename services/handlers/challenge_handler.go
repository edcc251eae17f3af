package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/tarunbommali/nxtgen-arena-sub000/dto"
	"github.com/tarunbommali/nxtgen-arena-sub000/shared"
)

type ChallengeHandler struct {
	challengeSvc ChallengeServiceInterface
}

func NewChallengeHandler(challengeSvc ChallengeServiceInterface) *ChallengeHandler {
	return &ChallengeHandler{
		challengeSvc: challengeSvc,
	}
}

// @Summary List Challenges
// @Description Get all active challenges
// @Tags challenges
// @Accept json
// @Produce json
// @Success 200 {object} shared.Response{data=dto.ChallengeCollectionResponse}
// @Router /api/v1/challenges [get]
func (h *ChallengeHandler) GetChallenges(c *fiber.Ctx) error {
	challenges, err := h.challengeSvc.GetChallengesResponse()
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", challenges)
}

// @Summary Get Challenge
// @Description Get a challenge by slug
// @Tags challenges
// @Accept json
// @Produce json
// @Param slug path string true "Challenge slug"
// @Success 200 {object} shared.Response{data=dto.ChallengeResponse}
// @Router /api/v1/challenges/{slug} [get]
func (h *ChallengeHandler) GetChallenge(c *fiber.Ctx) error {
	slug := c.Params("slug")

	challenge, err := h.challengeSvc.GetChallengeResponse(slug)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", challenge)
}

// @Summary Create Challenge
// @Description Create a new challenge (admin only)
// @Tags challenges
// @Accept json
// @Produce json
// @Param request body dto.CreateChallengeRequest true "Challenge definition"
// @Success 201 {object} shared.Response{data=dto.ChallengeResponse}
// @Router /api/v1/admin/challenges [post]
func (h *ChallengeHandler) CreateChallenge(c *fiber.Ctx) error {
	var req dto.CreateChallengeRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request body")
	}
	if err := dto.GetValidator().Struct(&req); err != nil {
		return shared.ResponseJSON(c, fiber.StatusBadRequest, "Validation failed", dto.FormatValidationErrors(err))
	}

	challenge, err := h.challengeSvc.CreateChallengeFromRequest(&req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusCreated, "Created", challenge)
}

// @Summary Register For Challenge
// @Description Enroll the authenticated user in a challenge
// @Tags challenges
// @Accept json
// @Produce json
// @Param challengeId path string true "Challenge ID"
// @Success 201 {object} shared.Response{data=dto.RegistrationResponse}
// @Router /api/v1/challenges/{challengeId}/register [post]
func (h *ChallengeHandler) Register(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	challengeID := c.Params("challengeId")

	reg, err := h.challengeSvc.RegisterResponse(userID, challengeID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusCreated, "Registered", reg)
}

// @Summary Get Progress
// @Description Get the authenticated user's progress in a challenge
// @Tags challenges
// @Accept json
// @Produce json
// @Param challengeId path string true "Challenge ID"
// @Success 200 {object} shared.Response{data=dto.ChallengeProgressResponse}
// @Router /api/v1/challenges/{challengeId}/progress [get]
func (h *ChallengeHandler) GetProgress(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	challengeID := c.Params("challengeId")

	progress, err := h.challengeSvc.GetProgressResponse(userID, challengeID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", progress)
}

// @Summary Check Day Access
// @Description Check whether the authenticated user can access a day's content
// @Tags challenges
// @Accept json
// @Produce json
// @Param challengeId path string true "Challenge ID"
// @Param day path int true "Day number"
// @Success 200 {object} shared.Response{data=dto.DayAccessResponse}
// @Router /api/v1/challenges/{challengeId}/days/{day}/access [get]
func (h *ChallengeHandler) GetDayAccess(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	challengeID := c.Params("challengeId")

	day, err := strconv.Atoi(c.Params("day"))
	if err != nil {
		return shared.NewBadRequestError(err, "Invalid day number")
	}

	access, err := h.challengeSvc.GetDayAccessResponse(userID, challengeID, day)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", access)
}

// @Summary Start Day
// @Description Move an unlocked day to in_progress
// @Tags challenges
// @Accept json
// @Produce json
// @Param challengeId path string true "Challenge ID"
// @Param day path int true "Day number"
// @Success 200 {object} shared.Response{data=dto.DayProgressResponse}
// @Router /api/v1/challenges/{challengeId}/days/{day}/start [post]
func (h *ChallengeHandler) StartDay(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	challengeID := c.Params("challengeId")

	day, err := strconv.Atoi(c.Params("day"))
	if err != nil {
		return shared.NewBadRequestError(err, "Invalid day number")
	}

	dp, err := h.challengeSvc.StartDayResponse(userID, challengeID, day)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", dp)
}

// @Summary Complete Day
// @Description Submit work for a day and run the completion cascade
// @Tags challenges
// @Accept json
// @Produce json
// @Param challengeId path string true "Challenge ID"
// @Param day path int true "Day number"
// @Param request body dto.CompleteDayRequest true "Submission"
// @Success 200 {object} shared.Response{data=dto.RegistrationResponse}
// @Router /api/v1/challenges/{challengeId}/days/{day}/complete [post]
func (h *ChallengeHandler) CompleteDay(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	challengeID := c.Params("challengeId")

	day, err := strconv.Atoi(c.Params("day"))
	if err != nil {
		return shared.NewBadRequestError(err, "Invalid day number")
	}

	var req dto.CompleteDayRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request body")
	}
	if err := dto.GetValidator().Struct(&req); err != nil {
		return shared.ResponseJSON(c, fiber.StatusBadRequest, "Validation failed", dto.FormatValidationErrors(err))
	}

	reg, err := h.challengeSvc.CompleteDayResponse(userID, challengeID, day, &req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", reg)
}
