package services

import (
	"github.com/alphabatem/common/context"
	"github.com/google/uuid"

	"github.com/tarunbommali/nxtgen-arena-sub000/dto"
	"github.com/tarunbommali/nxtgen-arena-sub000/model"
)

// ContentService serves the portal catalog: events, roadmaps and problem
// sheets. Reads are public and return published rows only; writes come from
// the admin routes.
type ContentService struct {
	context.DefaultService
	sqlSvc *SqlService
}

const CONTENT_SVC = "content_svc"

func (svc ContentService) Id() string {
	return CONTENT_SVC
}

func (svc *ContentService) Start() error {
	svc.sqlSvc = svc.Service(SQL_SVC).(*SqlService)
	return nil
}

// ==================== EVENTS ====================

func (svc *ContentService) GetEvents() ([]dto.EventResponse, error) {
	events, err := svc.sqlSvc.GetPublishedEvents()
	if err != nil {
		return nil, err
	}

	out := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		out = append(out, svc.toEventResponse(&events[i]))
	}
	return out, nil
}

func (svc *ContentService) GetEventBySlug(slug string) (*dto.EventResponse, error) {
	event, err := svc.sqlSvc.GetEventBySlug(slug)
	if err != nil {
		return nil, err
	}

	resp := svc.toEventResponse(event)
	return &resp, nil
}

func (svc *ContentService) CreateEvent(req *dto.CreateEventRequest) (*dto.EventResponse, error) {
	event := &model.Event{
		ID:              uuid.Must(uuid.NewV7()).String(),
		Slug:            req.Slug,
		Title:           req.Title,
		Description:     req.Description,
		Location:        req.Location,
		Mode:            req.Mode,
		StartsAt:        req.StartsAt,
		EndsAt:          req.EndsAt,
		RegistrationURL: req.RegistrationURL,
		IsPublished:     req.IsPublished,
	}

	created, err := svc.sqlSvc.CreateEvent(event)
	if err != nil {
		return nil, err
	}

	resp := svc.toEventResponse(created)
	return &resp, nil
}

func (svc *ContentService) toEventResponse(event *model.Event) dto.EventResponse {
	return dto.EventResponse{
		ID:              event.ID,
		Slug:            event.Slug,
		Title:           event.Title,
		Description:     event.Description,
		Location:        event.Location,
		Mode:            event.Mode,
		StartsAt:        event.StartsAt,
		EndsAt:          event.EndsAt,
		RegistrationURL: event.RegistrationURL,
	}
}

// ==================== ROADMAPS ====================

func (svc *ContentService) GetRoadmaps() ([]dto.RoadmapResponse, error) {
	roadmaps, err := svc.sqlSvc.GetPublishedRoadmaps()
	if err != nil {
		return nil, err
	}

	out := make([]dto.RoadmapResponse, 0, len(roadmaps))
	for i := range roadmaps {
		out = append(out, svc.toRoadmapResponse(&roadmaps[i]))
	}
	return out, nil
}

func (svc *ContentService) GetRoadmapBySlug(slug string) (*dto.RoadmapResponse, error) {
	roadmap, err := svc.sqlSvc.GetRoadmapBySlug(slug)
	if err != nil {
		return nil, err
	}

	resp := svc.toRoadmapResponse(roadmap)
	return &resp, nil
}

func (svc *ContentService) CreateRoadmap(req *dto.CreateRoadmapRequest) (*dto.RoadmapResponse, error) {
	roadmap := &model.Roadmap{
		ID:          uuid.Must(uuid.NewV7()).String(),
		Slug:        req.Slug,
		Title:       req.Title,
		Description: req.Description,
		Domain:      req.Domain,
		IsPublished: req.IsPublished,
	}
	for _, step := range req.Steps {
		roadmap.Steps = append(roadmap.Steps, model.RoadmapStep{
			ID:          uuid.Must(uuid.NewV7()).String(),
			RoadmapID:   roadmap.ID,
			Order:       step.Order,
			Title:       step.Title,
			Summary:     step.Summary,
			ResourceURL: step.ResourceURL,
		})
	}

	created, err := svc.sqlSvc.CreateRoadmap(roadmap)
	if err != nil {
		return nil, err
	}

	resp := svc.toRoadmapResponse(created)
	return &resp, nil
}

func (svc *ContentService) toRoadmapResponse(roadmap *model.Roadmap) dto.RoadmapResponse {
	resp := dto.RoadmapResponse{
		ID:          roadmap.ID,
		Slug:        roadmap.Slug,
		Title:       roadmap.Title,
		Description: roadmap.Description,
		Domain:      roadmap.Domain,
	}
	for _, step := range roadmap.Steps {
		resp.Steps = append(resp.Steps, dto.RoadmapStepResponse{
			Order:       step.Order,
			Title:       step.Title,
			Summary:     step.Summary,
			ResourceURL: step.ResourceURL,
		})
	}
	return resp
}

// ==================== PROBLEM SHEETS ====================

func (svc *ContentService) GetSheets() ([]dto.ProblemSheetResponse, error) {
	sheets, err := svc.sqlSvc.GetPublishedSheets()
	if err != nil {
		return nil, err
	}

	out := make([]dto.ProblemSheetResponse, 0, len(sheets))
	for i := range sheets {
		out = append(out, svc.toSheetResponse(&sheets[i]))
	}
	return out, nil
}

func (svc *ContentService) GetSheetBySlug(slug string) (*dto.ProblemSheetResponse, error) {
	sheet, err := svc.sqlSvc.GetSheetBySlug(slug)
	if err != nil {
		return nil, err
	}

	resp := svc.toSheetResponse(sheet)
	return &resp, nil
}

func (svc *ContentService) CreateSheet(req *dto.CreateProblemSheetRequest) (*dto.ProblemSheetResponse, error) {
	sheet := &model.ProblemSheet{
		ID:          uuid.Must(uuid.NewV7()).String(),
		Slug:        req.Slug,
		Title:       req.Title,
		Description: req.Description,
		Difficulty:  req.Difficulty,
		IsPublished: req.IsPublished,
	}
	for _, problem := range req.Problems {
		sheet.Problems = append(sheet.Problems, model.Problem{
			ID:         uuid.Must(uuid.NewV7()).String(),
			SheetID:    sheet.ID,
			Order:      problem.Order,
			Title:      problem.Title,
			Difficulty: problem.Difficulty,
			LinkURL:    problem.LinkURL,
		})
	}

	created, err := svc.sqlSvc.CreateSheet(sheet)
	if err != nil {
		return nil, err
	}

	resp := svc.toSheetResponse(created)
	return &resp, nil
}

func (svc *ContentService) toSheetResponse(sheet *model.ProblemSheet) dto.ProblemSheetResponse {
	resp := dto.ProblemSheetResponse{
		ID:          sheet.ID,
		Slug:        sheet.Slug,
		Title:       sheet.Title,
		Description: sheet.Description,
		Difficulty:  sheet.Difficulty,
	}
	for _, problem := range sheet.Problems {
		resp.Problems = append(resp.Problems, dto.ProblemResponse{
			Order:      problem.Order,
			Title:      problem.Title,
			Difficulty: problem.Difficulty,
			LinkURL:    problem.LinkURL,
		})
	}
	return resp
}
