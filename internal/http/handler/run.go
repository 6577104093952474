package handler

import (
	"github.com/gofiber/fiber/v2"

	"documind/internal/service"
)

// ListRuns returns every tracked pipeline run, newest first.
//
// @Summary List pipeline runs
// @Tags runs
// @Produce json
// @Success 200 {array} pipeline.Run
// @Router /runs [get]
func ListRuns(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"data": docSvc.Runs()})
	}
}

// GetRun returns one pipeline run.
//
// @Summary Get a pipeline run
// @Tags runs
// @Produce json
// @Param id path string true "run id"
// @Success 200 {object} pipeline.Run
// @Failure 404 {object} errorPayload
// @Router /runs/{id} [get]
func GetRun(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		run, err := docSvc.Run(c.Params("id"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(run)
	}
}

// RetryRun restarts a failed run from Fetching.
//
// @Summary Retry a failed run
// @Tags runs
// @Produce json
// @Param id path string true "run id"
// @Success 202 {object} pipeline.Run
// @Failure 404 {object} errorPayload
// @Failure 409 {object} errorPayload
// @Router /runs/{id}/retry [post]
func RetryRun(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		run, err := docSvc.RetryRun(c.Params("id"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusAccepted).JSON(run)
	}
}

// CancelRun stops and forgets a run.
//
// @Summary Cancel a run
// @Tags runs
// @Param id path string true "run id"
// @Success 204
// @Failure 404 {object} errorPayload
// @Router /runs/{id} [delete]
func CancelRun(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := docSvc.CancelRun(c.Params("id")); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
