package handler

import (
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"

	"documind/internal/service"
)

// AppConfig is the Fiber configuration the API runs with. Immutable makes
// params, paths and bodies safe to keep after the handler returns; chat replies
// and metric labels outlive their request.
func AppConfig(bodyLimit int) fiber.Config {
	return fiber.Config{
		ErrorHandler:          ErrorHandler(),
		BodyLimit:             bodyLimit,
		Immutable:             true,
		DisableStartupMessage: true,
	}
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay thin: parse, validate, call the service, map errors.
func RegisterRoutes(app *fiber.App, db *sql.DB, docSvc service.DocumentService, chatSvc service.ChatService) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	docs := app.Group("/documents")
	docs.Get("/", ListDocuments(docSvc))
	docs.Post("/", UploadDocument(docSvc))
	docs.Delete("/", ResetDocuments(docSvc))
	// Registered before /:id so "handoff" is not parsed as an id.
	docs.Get("/handoff", TakeHandoff(docSvc, time.Now))
	docs.Get("/:id", GetDocument(docSvc))
	docs.Get("/:id/insights", DocumentInsights(docSvc))
	docs.Get("/:id/source", DocumentSource(docSvc))

	runs := app.Group("/runs")
	runs.Get("/", ListRuns(docSvc))
	runs.Get("/:id", GetRun(docSvc))
	runs.Post("/:id/retry", RetryRun(docSvc))
	runs.Delete("/:id", CancelRun(docSvc))

	app.Post("/classify", Classify(docSvc))

	chat := app.Group("/chat/sessions/:session")
	chat.Post("/messages", SendMessage(chatSvc))
	chat.Get("/messages", ChatHistory(chatSvc))
	chat.Delete("/", ResetChat(chatSvc))
}
