package http

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"cv-generator/internal/model"
	"cv-generator/internal/render"
	"cv-generator/internal/store"
	"cv-generator/internal/usecase"
)

type Handler struct {
	extractor  *usecase.Extractor
	store      store.SessionStore
	layout     render.LayoutEngine
	renderOpts render.Options
	log        zerolog.Logger
}

func NewHandler(e *usecase.Extractor, s store.SessionStore, layout render.LayoutEngine,
	opts render.Options, log zerolog.Logger) *Handler {
	return &Handler{extractor: e, store: s, layout: layout, renderOpts: opts, log: log}
}

// Register wires every route onto the app. Field-read routes are derived
// from the canonical field list so the two can't drift apart.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/health", h.Health)
	app.Get("/scrape/*", h.Scrape)
	app.Post("/generate-pdf", h.GeneratePDF)

	g := app.Group("/genpdf")
	g.Post("/process-cv", h.ProcessCV)
	g.Get("/all-fields", h.AllFields)
	for _, name := range model.FieldNames {
		g.Get("/"+strings.ReplaceAll(name, "_", "-"), h.fieldHandler(name))
	}
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Scrape runs the extraction pipeline on the wildcard URL. ?format=pdf
// streams the rendered document; otherwise the parsed record (or the raw
// reply when parsing failed) comes back as JSON.
func (h *Handler) Scrape(c *fiber.Ctx) error {
	target := c.Params("*")
	if target == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing target url"})
	}
	sessionID := c.Query("session", store.DefaultSessionID)

	res, err := h.extractor.ExtractFromURL(c.UserContext(), target, sessionID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": err.Error()})
	}
	if !res.Parsed {
		// Downstream parsing failed but both upstreams answered: degrade to
		// a success response carrying the raw reply.
		return c.JSON(fiber.Map{
			"message":      "CV data extracted but parsing failed",
			"error":        res.ParseError,
			"error_offset": res.ParseOffset,
			"raw_content":  res.RawContent,
			"note":         "Use /genpdf/process-cv to re-submit this data manually",
		})
	}

	if strings.EqualFold(c.Query("format", "json"), "pdf") {
		return h.sendPDF(c, res.CV, "")
	}
	return c.JSON(fiber.Map{
		"message":          "CV data extracted and stored successfully",
		"session_id":       res.SessionID,
		"raw_content":      res.RawContent,
		"parsed_data":      res.CV,
		"parsed_fields":    res.CV.PresentFields(),
		"access_endpoints": accessEndpoints(),
	})
}

type generatePDFRequest struct {
	CVData   json.RawMessage `json:"cv_data"`
	Filename string          `json:"filename"`
}

// GeneratePDF renders a caller-supplied CV record and streams it as a
// downloadable attachment.
func (h *Handler) GeneratePDF(c *fiber.Ctx) error {
	var req generatePDFRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	if len(req.CVData) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "cv_data is required"})
	}
	cv, perr := model.ParseCVRecord(req.CVData)
	if perr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid cv_data: " + perr.Error()})
	}
	return h.sendPDF(c, cv, req.Filename)
}

type processCVRequest struct {
	RawText   string `json:"raw_text"`
	SessionID string `json:"session_id"`
}

// ProcessCV accepts pasted model output, cleans and parses it, and stores
// the record — the manual fallback when a scrape reply failed to parse.
func (h *Handler) ProcessCV(c *fiber.Ctx) error {
	var req processCVRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	if req.RawText == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "raw_text is required"})
	}

	res := h.extractor.ProcessReply(req.RawText, req.SessionID)
	if !res.Parsed {
		return c.JSON(fiber.Map{
			"message":      "CV data could not be parsed",
			"error":        res.ParseError,
			"error_offset": res.ParseOffset,
			"raw_content":  res.RawContent,
		})
	}
	return c.JSON(fiber.Map{
		"message":          "CV data processed and stored successfully",
		"session_id":       res.SessionID,
		"parsed_data":      res.CV,
		"parsed_fields":    res.CV.PresentFields(),
		"access_endpoints": accessEndpoints(),
	})
}

// AllFields returns the whole stored record for a session.
func (h *Handler) AllFields(c *fiber.Ctx) error {
	sessionID := c.Query("session", store.DefaultSessionID)
	entry, ok := h.store.Get(sessionID)
	if !ok {
		return sessionNotFound(c, sessionID)
	}
	return c.JSON(fiber.Map{
		"session_id": sessionID,
		"data":       entry.CV,
		"timestamp":  entry.StoredAt.Format(time.RFC3339),
	})
}

func (h *Handler) fieldHandler(field string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := c.Query("session", store.DefaultSessionID)
		entry, ok := h.store.Get(sessionID)
		if !ok {
			return sessionNotFound(c, sessionID)
		}
		value, _ := entry.CV.Field(field)
		return c.JSON(fiber.Map{
			"session_id": sessionID,
			"field":      field,
			"data":       value,
			"timestamp":  entry.StoredAt.Format(time.RFC3339),
		})
	}
}

func (h *Handler) sendPDF(c *fiber.Ctx, cv *model.CVRecord, requestedName string) error {
	pdf, err := render.PDF(c.UserContext(), h.layout, cv, h.renderOpts)
	if err != nil {
		h.log.Error().Err(err).Msg("pdf generation failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": err.Error()})
	}
	filename := render.DeriveFilename(cv, requestedName)
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename=`+filename)
	return c.Send(pdf)
}

func sessionNotFound(c *fiber.Ctx, sessionID string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"detail": "no CV data stored for session " + sessionID,
	})
}

func accessEndpoints() map[string]string {
	out := make(map[string]string, len(model.FieldNames)+1)
	for _, name := range model.FieldNames {
		out[name] = "/genpdf/" + strings.ReplaceAll(name, "_", "-")
	}
	out["all_fields"] = "/genpdf/all-fields"
	return out
}
