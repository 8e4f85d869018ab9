package routes

import (
	"log"

	"coursecms/backend/config"
	"coursecms/backend/controllers"
	"coursecms/backend/middleware"
	"coursecms/backend/services"
	"coursecms/backend/store"
	"coursecms/backend/utils"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// NewApp builds the fiber application with the JSON codec shared by every handler.
func NewApp() *fiber.App {
	return fiber.New(fiber.Config{
		AppName:      "course-content",
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
		ErrorHandler: errorHandler,
	})
}

func errorHandler(c *fiber.Ctx, err error) error {
	if fe, ok := err.(*fiber.Error); ok {
		return utils.PlainError(c, fe.Code, fe.Message)
	}
	return utils.PlainError(c, fiber.StatusInternalServerError, "Internal server error")
}

func SetupRoutes(app *fiber.App, st store.Store, cfg *config.Config, logger *log.Logger) {
	app.Use(recover.New())
	app.Use(middleware.RequestContext(cfg.QueryTimeout))
	app.Use(middleware.SessionMiddleware(cfg))

	contentService := services.NewContentService(st, logger)
	catalogService := services.NewCatalogService(st, logger, cfg.CascadeDeletes)
	dashboardService := services.NewDashboardService(st, logger)

	// Public read API
	contentController := controllers.NewContentController(contentService)
	app.Get("/units", etag.New(), contentController.GetUnits)
	app.Get("/api/units", etag.New(), contentController.GetUnits)

	// Auth routes
	authController := controllers.NewAuthController(cfg, logger)
	auth := app.Group("/auth")
	auth.Post("/login", authController.Login)
	auth.Post("/logout", authController.Logout)
	auth.Get("/session", authController.Session)

	dashboardController := controllers.NewDashboardController(dashboardService, st, cfg)
	app.Get("/health", dashboardController.Health)
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service":       "course-content",
			"authenticated": utils.IsAuthenticated(c, cfg),
			"login":         "/auth/login",
		})
	})

	// Admin API, behind SessionMiddleware
	admin := app.Group("/admin/api")
	admin.Get("/dashboard", dashboardController.GetStats)

	unitsController := controllers.NewUnitsController(catalogService, contentService, logger)
	units := admin.Group("/units")
	units.Get("/", unitsController.ListUnits)
	units.Post("/", unitsController.CreateUnit)
	units.Get("/:id", unitsController.GetUnit)
	units.Put("/:id", unitsController.UpdateUnit)
	units.Delete("/:id", unitsController.DeleteUnit)
	units.Get("/:id/export", unitsController.ExportUnit)

	topicsController := controllers.NewTopicsController(catalogService, logger)
	topics := admin.Group("/topics")
	topics.Get("/", topicsController.ListTopics)
	topics.Post("/", topicsController.CreateTopic)
	topics.Get("/:id", topicsController.GetTopic)
	topics.Put("/:id", topicsController.UpdateTopic)
	topics.Delete("/:id", topicsController.DeleteTopic)

	mediaController := controllers.NewMediaController(catalogService, logger)
	videos := admin.Group("/videos")
	videos.Get("/", mediaController.ListVideos)
	videos.Post("/", mediaController.CreateVideo)
	videos.Get("/:id", mediaController.GetVideo)
	videos.Put("/:id", mediaController.UpdateVideo)
	videos.Delete("/:id", mediaController.DeleteVideo)

	notes := admin.Group("/notes")
	notes.Get("/", mediaController.ListNotes)
	notes.Post("/", mediaController.CreateNote)
	notes.Get("/:id", mediaController.GetNote)
	notes.Put("/:id", mediaController.UpdateNote)
	notes.Delete("/:id", mediaController.DeleteNote)

	questionsController := controllers.NewQuestionsController(catalogService, logger)
	questions := admin.Group("/questions")
	questions.Get("/", questionsController.ListQuestions)
	questions.Post("/", questionsController.CreateQuestion)
	questions.Get("/:id", questionsController.GetQuestion)
	questions.Put("/:id", questionsController.UpdateQuestion)
	questions.Delete("/:id", questionsController.DeleteQuestion)
}
