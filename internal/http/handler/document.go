package handler

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"documind/internal/model"
	"documind/internal/service"
)

type listQuery struct {
	Query      string
	Type       string
	Department string
	Language   string
	Urgency    string `validate:"omitempty,oneof=Critical Review Info"`
	Category   string `validate:"omitempty,oneof=Financial Auction Compliance HR Other"`
	Sort       string `validate:"omitempty,oneof=date title urgency type"`
	Limit      int    `validate:"gte=0,lte=100"`
	Offset     int    `validate:"gte=0"`
}

// ListDocuments returns a filtered, sorted page of records.
//
// @Summary List documents
// @Tags documents
// @Produce json
// @Param q query string false "text over title, summary and tags"
// @Param type query string false "document type"
// @Param department query string false "department"
// @Param language query string false "language"
// @Param urgency query string false "Critical, Review or Info"
// @Param category query string false "Financial, Auction, Compliance, HR or Other"
// @Param sort query string false "date, title, urgency or type"
// @Param limit query int false "page size" default(10)
// @Param offset query int false "page offset" default(0)
// @Success 200 {object} service.DocumentListResult
// @Failure 400 {object} errorPayload
// @Router /documents [get]
func ListDocuments(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		q := listQuery{
			Query:      c.Query("q"),
			Type:       c.Query("type"),
			Department: c.Query("department"),
			Language:   c.Query("language"),
			Urgency:    c.Query("urgency"),
			Category:   c.Query("category"),
			Sort:       c.Query("sort"),
			Limit:      limit,
			Offset:     offset,
		}
		if err := validate.Struct(q); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_QUERY", validationMessage(err))
		}

		res, err := docSvc.List(c.UserContext(), service.ListParams{
			Query:      q.Query,
			Type:       q.Type,
			Department: q.Department,
			Language:   q.Language,
			Urgency:    model.Urgency(q.Urgency),
			Category:   model.Category(q.Category),
			Sort:       q.Sort,
			Limit:      q.Limit,
			Offset:     q.Offset,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// UploadDocument stores a file and starts a pipeline run for it.
//
// @Summary Upload a document for processing
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PDF or text file"
// @Success 202 {object} pipeline.Run
// @Failure 400 {object} errorPayload
// @Failure 415 {object} errorPayload
// @Router /documents [post]
func UploadDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		run, err := docSvc.Upload(c.UserContext(), f, fh.Filename, ct, fh.Size)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusAccepted).JSON(run)
	}
}

// GetDocument returns one record.
//
// @Summary Get a document
// @Tags documents
// @Produce json
// @Param id path string true "document id"
// @Success 200 {object} model.Document
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /documents/{id} [get]
func GetDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		doc, err := docSvc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(doc)
	}
}

// DocumentInsights picks the category dashboard for a record.
//
// @Summary Dashboard routing for a document
// @Tags documents
// @Produce json
// @Param id path string true "document id"
// @Success 200 {object} service.Insights
// @Failure 404 {object} errorPayload
// @Router /documents/{id}/insights [get]
func DocumentInsights(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		ins, err := docSvc.Insights(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(ins)
	}
}

type sourceResponse struct {
	URL       string `json:"url"`
	ExpiresIn int    `json:"expires_in"`
}

// DocumentSource returns a presigned link to the file a record was built from.
//
// @Summary Download link for a document source
// @Tags documents
// @Produce json
// @Param id path string true "document id"
// @Success 200 {object} sourceResponse
// @Failure 404 {object} errorPayload
// @Router /documents/{id}/source [get]
func DocumentSource(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		u, err := docSvc.SourceURL(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(sourceResponse{URL: u, ExpiresIn: int(service.SourceURLExpiry.Seconds())})
	}
}

// handoffResponse is the record taken from the handoff slot.
type handoffResponse struct {
	Document       model.Document `json:"document"`
	HighlightUntil string         `json:"highlight_until"`
	Highlighted    bool           `json:"highlighted"`
}

// TakeHandoff returns and clears the record waiting to be shown.
//
// @Summary Take the newly processed document
// @Tags documents
// @Produce json
// @Success 200 {object} handoffResponse
// @Success 204
// @Router /documents/handoff [get]
func TakeHandoff(docSvc service.DocumentService, now func() time.Time) fiber.Handler {
	return func(c *fiber.Ctx) error {
		entry, err := docSvc.TakeHandoff(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		if entry == nil {
			return c.SendStatus(fiber.StatusNoContent)
		}
		return c.JSON(handoffResponse{
			Document:       entry.Document,
			HighlightUntil: entry.HighlightUntil.Format(time.RFC3339Nano),
			Highlighted:    now().Before(entry.HighlightUntil),
		})
	}
}

// ResetDocuments clears the registry.
//
// @Summary Remove every document
// @Tags documents
// @Produce json
// @Success 200 {object} map[string]int64
// @Router /documents [delete]
func ResetDocuments(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		n, err := docSvc.Reset(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"deleted": n})
	}
}
