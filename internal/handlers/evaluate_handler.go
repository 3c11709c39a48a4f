package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/ats-resume-checker/internal/models"
	"alfredoptarigan/ats-resume-checker/internal/repositories"
	"alfredoptarigan/ats-resume-checker/internal/services"
)

type EvaluationHandler struct {
	sessionRepo repositories.SessionRepository
	pipeline    services.EvaluationPipeline
	reports     services.ReportGenerator
}

func NewEvaluationHandler(
	sessionRepo repositories.SessionRepository,
	pipeline services.EvaluationPipeline,
	reports services.ReportGenerator,
) *EvaluationHandler {
	return &EvaluationHandler{
		sessionRepo: sessionRepo,
		pipeline:    pipeline,
		reports:     reports,
	}
}

// HandleListActions handles GET /actions
func (h *EvaluationHandler) HandleListActions(c *fiber.Ctx) error {
	templates := services.Catalog()
	actions := make([]models.ActionInfo, 0, len(templates))
	for _, t := range templates {
		actions = append(actions, models.ActionInfo{
			Name:       string(t.Action),
			Title:      t.Title,
			Structured: t.Structured(),
		})
	}

	return c.JSON(fiber.Map{
		"actions": actions,
	})
}

// HandleAction handles POST /sessions/:id/actions/:action
func (h *EvaluationHandler) HandleAction(c *fiber.Ctx) error {
	session, err := lookupSession(c, h.sessionRepo)
	if err != nil {
		return respondError(c, err)
	}

	action, err := services.ParseAction(c.Params("action"))
	if err != nil {
		return respondError(c, err)
	}

	result, err := h.pipeline.RunAction(c.UserContext(), session, action)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(result)
}

// HandleAsk handles POST /sessions/:id/ask
func (h *EvaluationHandler) HandleAsk(c *fiber.Ctx) error {
	session, err := lookupSession(c, h.sessionRepo)
	if err != nil {
		return respondError(c, err)
	}

	var req models.QuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	result, err := h.pipeline.Ask(c.UserContext(), session, req.Question)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(result)
}

// HandleReport handles GET /sessions/:id/report
func (h *EvaluationHandler) HandleReport(c *fiber.Ctx) error {
	session, err := lookupSession(c, h.sessionRepo)
	if err != nil {
		return respondError(c, err)
	}

	pdfBytes, err := h.reports.Export(c.UserContext(), session)
	if err != nil {
		return respondError(c, err)
	}

	c.Attachment(services.ReportFilename)
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(pdfBytes)
}
