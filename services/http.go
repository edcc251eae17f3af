package services

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	log "github.com/sirupsen/logrus"

	"github.com/tarunbommali/nxtgen-arena-sub000/services/handlers"
	"github.com/tarunbommali/nxtgen-arena-sub000/shared"
)

type HttpService struct {
	context.DefaultService

	challengeSvc  *ChallengeService
	contentSvc    *ContentService
	mediaSvc      *MediaService
	monitoringSvc *MonitoringService
	authSvc       *AuthMiddleware

	port int
	app  *fiber.App
}

const HTTP_SVC = "http_svc"

func (svc HttpService) Id() string {
	return HTTP_SVC
}

func (svc *HttpService) Configure(ctx *context.Context) error {
	if port := os.Getenv("HTTP_PORT"); port != "" {
		var err error
		if svc.port, err = strconv.Atoi(port); err != nil {
			return err
		}
	} else {
		svc.port = 8000
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *HttpService) Start() error {
	svc.challengeSvc = svc.Service(CHALLENGE_SVC).(*ChallengeService)
	svc.contentSvc = svc.Service(CONTENT_SVC).(*ContentService)
	svc.mediaSvc = svc.Service(MEDIA_SVC).(*MediaService)
	svc.monitoringSvc = svc.Service(MONITORING_SVC).(*MonitoringService)
	svc.authSvc = svc.Service(AUTH_MIDDLEWARE_SVC).(*AuthMiddleware)

	svc.app = fiber.New(fiber.Config{
		ErrorHandler: svc.errorHandler,
	})

	svc.app.Use(recover.New())
	svc.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	svc.app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
	}))
	svc.app.Use(MonitoringMiddleware(svc.monitoringSvc))

	svc.registerRoutes()

	log.Printf("HTTP server listening on :%v", svc.port)
	return svc.app.Listen(fmt.Sprintf(":%v", svc.port))
}

func (svc *HttpService) Shutdown() {
	if svc.app != nil {
		_ = svc.app.Shutdown()
	}
}

func (svc *HttpService) registerRoutes() {
	challengeHandler := handlers.NewChallengeHandler(svc.challengeSvc)
	contentHandler := handlers.NewContentHandler(svc.contentSvc)
	mediaHandler := handlers.NewMediaHandler(svc.mediaSvc)

	svc.app.Get("/ping", svc.ping)

	v1 := svc.app.Group("/api/v1")
	v1.Get("/ping", svc.ping)

	// Public catalog
	v1.Get("/challenges", challengeHandler.GetChallenges)
	v1.Get("/challenges/:slug", challengeHandler.GetChallenge)
	v1.Get("/events", contentHandler.GetEvents)
	v1.Get("/events/:slug", contentHandler.GetEvent)
	v1.Get("/roadmaps", contentHandler.GetRoadmaps)
	v1.Get("/roadmaps/:slug", contentHandler.GetRoadmap)
	v1.Get("/sheets", contentHandler.GetSheets)
	v1.Get("/sheets/:slug", contentHandler.GetSheet)
	v1.Get("/sheets/:sheetId/assets", mediaHandler.GetSheetAssets)
	v1.Get("/assets/:assetId/url", mediaHandler.GetSheetAssetURL)

	// Progression engine, authenticated
	authed := v1.Group("", svc.authSvc.RequiredAuth())
	authed.Post("/challenges/:challengeId/register", challengeHandler.Register)
	authed.Get("/challenges/:challengeId/progress", challengeHandler.GetProgress)
	authed.Get("/challenges/:challengeId/days/:day/access", challengeHandler.GetDayAccess)
	authed.Post("/challenges/:challengeId/days/:day/start", challengeHandler.StartDay)
	authed.Post("/challenges/:challengeId/days/:day/complete", challengeHandler.CompleteDay)

	// Admin
	admin := v1.Group("/admin", svc.authSvc.RequiredAuth(), svc.authSvc.RequireRole(shared.RoleAdmin))
	admin.Post("/challenges", challengeHandler.CreateChallenge)
	admin.Post("/events", contentHandler.CreateEvent)
	admin.Post("/roadmaps", contentHandler.CreateRoadmap)
	admin.Post("/sheets", contentHandler.CreateSheet)
	admin.Post("/sheets/:sheetId/assets", mediaHandler.UploadSheetAsset)
	admin.Delete("/assets/:assetId", mediaHandler.DeleteSheetAsset)
}

// @Summary Ping
// @Description This endpoint checks the health of the service
// @Tags health
// @Accept  json
// @Produce json
// @Success 200 {object} shared.Response{data=string}
// @Router /ping [get]
func (svc *HttpService) ping(c *fiber.Ctx) error {
	c.Set("Cache-Control", "max-age=10")

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", "pong")
}

func (svc *HttpService) errorHandler(c *fiber.Ctx, err error) error {
	appErr := shared.ToAppError(err)
	if appErr.StatusCode >= 500 {
		log.WithError(err).WithFields(log.Fields{
			"path":   c.Path(),
			"method": c.Method(),
		}).Error("Request failed")
	}

	return shared.ResponseJSON(c, appErr.StatusCode, appErr.Message, appErr.Data)
}
