package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tarunbommali/nxtgen-arena-sub000/dto"
	"github.com/tarunbommali/nxtgen-arena-sub000/shared"
)

type ContentHandler struct {
	contentSvc ContentServiceInterface
}

func NewContentHandler(contentSvc ContentServiceInterface) *ContentHandler {
	return &ContentHandler{
		contentSvc: contentSvc,
	}
}

// @Summary List Events
// @Description Get all published events
// @Tags content
// @Accept json
// @Produce json
// @Success 200 {object} shared.Response{data=dto.EventCollectionResponse}
// @Router /api/v1/events [get]
func (h *ContentHandler) GetEvents(c *fiber.Ctx) error {
	events, err := h.contentSvc.GetEvents()
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", dto.EventCollectionResponse{
		Events: events,
		Total:  len(events),
	})
}

// @Summary Get Event
// @Description Get a published event by slug
// @Tags content
// @Accept json
// @Produce json
// @Param slug path string true "Event slug"
// @Success 200 {object} shared.Response{data=dto.EventResponse}
// @Router /api/v1/events/{slug} [get]
func (h *ContentHandler) GetEvent(c *fiber.Ctx) error {
	event, err := h.contentSvc.GetEventBySlug(c.Params("slug"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", event)
}

// @Summary Create Event
// @Description Create an event (admin only)
// @Tags content
// @Accept json
// @Produce json
// @Param request body dto.CreateEventRequest true "Event definition"
// @Success 201 {object} shared.Response{data=dto.EventResponse}
// @Router /api/v1/admin/events [post]
func (h *ContentHandler) CreateEvent(c *fiber.Ctx) error {
	var req dto.CreateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request body")
	}
	if err := dto.GetValidator().Struct(&req); err != nil {
		return shared.ResponseJSON(c, fiber.StatusBadRequest, "Validation failed", dto.FormatValidationErrors(err))
	}

	event, err := h.contentSvc.CreateEvent(&req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusCreated, "Created", event)
}

// @Summary List Roadmaps
// @Description Get all published learning roadmaps
// @Tags content
// @Accept json
// @Produce json
// @Success 200 {object} shared.Response{data=dto.RoadmapCollectionResponse}
// @Router /api/v1/roadmaps [get]
func (h *ContentHandler) GetRoadmaps(c *fiber.Ctx) error {
	roadmaps, err := h.contentSvc.GetRoadmaps()
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", dto.RoadmapCollectionResponse{
		Roadmaps: roadmaps,
		Total:    len(roadmaps),
	})
}

// @Summary Get Roadmap
// @Description Get a published roadmap with its steps
// @Tags content
// @Accept json
// @Produce json
// @Param slug path string true "Roadmap slug"
// @Success 200 {object} shared.Response{data=dto.RoadmapResponse}
// @Router /api/v1/roadmaps/{slug} [get]
func (h *ContentHandler) GetRoadmap(c *fiber.Ctx) error {
	roadmap, err := h.contentSvc.GetRoadmapBySlug(c.Params("slug"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", roadmap)
}

// @Summary Create Roadmap
// @Description Create a roadmap (admin only)
// @Tags content
// @Accept json
// @Produce json
// @Param request body dto.CreateRoadmapRequest true "Roadmap definition"
// @Success 201 {object} shared.Response{data=dto.RoadmapResponse}
// @Router /api/v1/admin/roadmaps [post]
func (h *ContentHandler) CreateRoadmap(c *fiber.Ctx) error {
	var req dto.CreateRoadmapRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request body")
	}
	if err := dto.GetValidator().Struct(&req); err != nil {
		return shared.ResponseJSON(c, fiber.StatusBadRequest, "Validation failed", dto.FormatValidationErrors(err))
	}

	roadmap, err := h.contentSvc.CreateRoadmap(&req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusCreated, "Created", roadmap)
}

// @Summary List Problem Sheets
// @Description Get all published problem sheets
// @Tags content
// @Accept json
// @Produce json
// @Success 200 {object} shared.Response{data=dto.ProblemSheetCollectionResponse}
// @Router /api/v1/sheets [get]
func (h *ContentHandler) GetSheets(c *fiber.Ctx) error {
	sheets, err := h.contentSvc.GetSheets()
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", dto.ProblemSheetCollectionResponse{
		Sheets: sheets,
		Total:  len(sheets),
	})
}

// @Summary Get Problem Sheet
// @Description Get a published problem sheet with its problems
// @Tags content
// @Accept json
// @Produce json
// @Param slug path string true "Sheet slug"
// @Success 200 {object} shared.Response{data=dto.ProblemSheetResponse}
// @Router /api/v1/sheets/{slug} [get]
func (h *ContentHandler) GetSheet(c *fiber.Ctx) error {
	sheet, err := h.contentSvc.GetSheetBySlug(c.Params("slug"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", sheet)
}

// @Summary Create Problem Sheet
// @Description Create a problem sheet (admin only)
// @Tags content
// @Accept json
// @Produce json
// @Param request body dto.CreateProblemSheetRequest true "Sheet definition"
// @Success 201 {object} shared.Response{data=dto.ProblemSheetResponse}
// @Router /api/v1/admin/sheets [post]
func (h *ContentHandler) CreateSheet(c *fiber.Ctx) error {
	var req dto.CreateProblemSheetRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request body")
	}
	if err := dto.GetValidator().Struct(&req); err != nil {
		return shared.ResponseJSON(c, fiber.StatusBadRequest, "Validation failed", dto.FormatValidationErrors(err))
	}

	sheet, err := h.contentSvc.CreateSheet(&req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusCreated, "Created", sheet)
}
