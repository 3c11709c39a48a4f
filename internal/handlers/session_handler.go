package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/ats-resume-checker/internal/models"
	"alfredoptarigan/ats-resume-checker/internal/repositories"
	"alfredoptarigan/ats-resume-checker/internal/services"
)

type SessionHandler struct {
	sessionRepo repositories.SessionRepository
}

func NewSessionHandler(sessionRepo repositories.SessionRepository) *SessionHandler {
	return &SessionHandler{
		sessionRepo: sessionRepo,
	}
}

// HandleCreate handles POST /sessions
func (h *SessionHandler) HandleCreate(c *fiber.Ctx) error {
	session := models.NewSession()
	if err := h.sessionRepo.Create(session); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create session",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(session.View())
}

// HandleGet handles GET /sessions/:id
func (h *SessionHandler) HandleGet(c *fiber.Ctx) error {
	session, err := lookupSession(c, h.sessionRepo)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(session.View())
}

// HandleDelete handles DELETE /sessions/:id
func (h *SessionHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, errInvalidSessionID)
	}

	if err := h.sessionRepo.Delete(id); err != nil {
		return respondError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// HandleSetJobDescription handles PUT /sessions/:id/job-description
func (h *SessionHandler) HandleSetJobDescription(c *fiber.Ctx) error {
	session, err := lookupSession(c, h.sessionRepo)
	if err != nil {
		return respondError(c, err)
	}

	var req models.JobDescriptionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if strings.TrimSpace(req.JobDescription) == "" {
		return respondError(c, &services.MissingInputError{Input: "job_description"})
	}

	session.SetJobDescription(req.JobDescription)
	return c.JSON(session.View())
}

// HandleAnalytics handles GET /sessions/:id/analytics
func (h *SessionHandler) HandleAnalytics(c *fiber.Ctx) error {
	session, err := lookupSession(c, h.sessionRepo)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(services.BuildDashboard(session.Analytics))
}

var errInvalidSessionID = errors.New("invalid session ID format")

// lookupSession resolves the :id route param to a stored session.
func lookupSession(c *fiber.Ctx, repo repositories.SessionRepository) (*models.Session, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, errInvalidSessionID
	}

	return repo.FindByID(id)
}
