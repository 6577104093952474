package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"documind/internal/service"
)

type chatRequest struct {
	Text       string `json:"text" validate:"required"`
	DocumentID string `json:"document_id" validate:"omitempty,uuid"`
	Scope      string `json:"scope" validate:"omitempty,oneof=document assistant"`
}

// sessionParam copies the session id out of the request buffer; the chat
// service keeps it for the delayed reply.
func sessionParam(c *fiber.Ctx) string {
	return utils.CopyString(c.Params("session"))
}

// SendMessage records a user turn; the assistant turn follows after the reply delay.
//
// @Summary Send a chat message
// @Tags chat
// @Accept json
// @Produce json
// @Param session path string true "session id"
// @Param body body chatRequest true "message"
// @Success 202 {object} model.Turn
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /chat/sessions/{session}/messages [post]
func SendMessage(chatSvc service.ChatService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req chatRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", validationMessage(err))
		}

		turn, err := chatSvc.Send(c.UserContext(), sessionParam(c), service.ChatMessage{
			Text:       req.Text,
			DocumentID: req.DocumentID,
			Scope:      req.Scope,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusAccepted).JSON(turn)
	}
}

// ChatHistory returns a session's turns, oldest first.
//
// @Summary Chat history
// @Tags chat
// @Produce json
// @Param session path string true "session id"
// @Success 200 {array} model.Turn
// @Router /chat/sessions/{session}/messages [get]
func ChatHistory(chatSvc service.ChatService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		turns, err := chatSvc.History(c.UserContext(), sessionParam(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"data": turns})
	}
}

// ResetChat clears a session.
//
// @Summary Clear a chat session
// @Tags chat
// @Param session path string true "session id"
// @Success 200 {object} map[string]int64
// @Router /chat/sessions/{session} [delete]
func ResetChat(chatSvc service.ChatService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		n, err := chatSvc.Reset(c.UserContext(), sessionParam(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"deleted": n})
	}
}
