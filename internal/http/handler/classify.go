package handler

import (
	"github.com/gofiber/fiber/v2"

	"documind/internal/model"
	"documind/internal/service"
)

type classifyRequest struct {
	Text string `json:"text" validate:"required"`
}

type classifyResponse struct {
	Category model.Category `json:"category"`
}

// Classify routes free text to a category.
//
// @Summary Classify text
// @Tags classify
// @Accept json
// @Produce json
// @Param body body classifyRequest true "text to route"
// @Success 200 {object} classifyResponse
// @Failure 400 {object} errorPayload
// @Router /classify [post]
func Classify(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req classifyRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", validationMessage(err))
		}
		return c.JSON(classifyResponse{Category: docSvc.Classify(req.Text)})
	}
}
