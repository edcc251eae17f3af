package handlers

import (
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"github.com/tarunbommali/nxtgen-arena-sub000/dto"
	"github.com/tarunbommali/nxtgen-arena-sub000/model"
)

type ChallengeServiceInterface interface {
	GetChallengesResponse() (*dto.ChallengeCollectionResponse, error)
	GetChallengeResponse(slug string) (*dto.ChallengeResponse, error)
	CreateChallengeFromRequest(req *dto.CreateChallengeRequest) (*dto.ChallengeResponse, error)
	RegisterResponse(userID, challengeID string) (*dto.RegistrationResponse, error)
	GetDayAccessResponse(userID, challengeID string, day int) (*dto.DayAccessResponse, error)
	StartDayResponse(userID, challengeID string, day int) (*dto.DayProgressResponse, error)
	CompleteDayResponse(userID, challengeID string, day int, req *dto.CompleteDayRequest) (*dto.RegistrationResponse, error)
	GetProgressResponse(userID, challengeID string) (*dto.ChallengeProgressResponse, error)
}

type ContentServiceInterface interface {
	GetEvents() ([]dto.EventResponse, error)
	GetEventBySlug(slug string) (*dto.EventResponse, error)
	CreateEvent(req *dto.CreateEventRequest) (*dto.EventResponse, error)
	GetRoadmaps() ([]dto.RoadmapResponse, error)
	GetRoadmapBySlug(slug string) (*dto.RoadmapResponse, error)
	CreateRoadmap(req *dto.CreateRoadmapRequest) (*dto.RoadmapResponse, error)
	GetSheets() ([]dto.ProblemSheetResponse, error)
	GetSheetBySlug(slug string) (*dto.ProblemSheetResponse, error)
	CreateSheet(req *dto.CreateProblemSheetRequest) (*dto.ProblemSheetResponse, error)
}

type MediaServiceInterface interface {
	UploadSheetAsset(sheetID string, file *multipart.FileHeader) (*dto.MediaUploadResponse, error)
	GetSheetAssets(sheetID string) ([]model.SheetAsset, error)
	GetSheetAssetURL(assetID string) (*dto.MediaURLResponse, error)
	DeleteSheetAsset(assetID string) error
}

type AuthMiddlewareInterface interface {
	RequiredAuth() fiber.Handler
	RequireRole(role string) fiber.Handler
}
