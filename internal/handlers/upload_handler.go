package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"

	"alfredoptarigan/ats-resume-checker/internal/models"
	"alfredoptarigan/ats-resume-checker/internal/repositories"
	"alfredoptarigan/ats-resume-checker/internal/services"
)

type UploadHandler struct {
	sessionRepo  repositories.SessionRepository
	uploadReader services.UploadReader
	preprocessor services.DocumentPreprocessor
}

func NewUploadHandler(
	sessionRepo repositories.SessionRepository,
	uploadReader services.UploadReader,
	preprocessor services.DocumentPreprocessor,
) *UploadHandler {
	return &UploadHandler{
		sessionRepo:  sessionRepo,
		uploadReader: uploadReader,
		preprocessor: preprocessor,
	}
}

// HandleUploadResume handles PUT /sessions/:id/resume
func (h *UploadHandler) HandleUploadResume(c *fiber.Ctx) error {
	session, err := lookupSession(c, h.sessionRepo)
	if err != nil {
		return respondError(c, err)
	}

	file, err := c.FormFile("resume")
	if err != nil {
		return respondError(c, &services.MissingInputError{Input: "resume"})
	}

	data, err := h.uploadReader.ReadResume(file)
	if err != nil {
		return respondError(c, err)
	}

	// Rasterizing and text extraction read the same bytes independently.
	var payload *models.InlineImagePayload
	var text string
	var eg errgroup.Group
	eg.Go(func() error {
		var err error
		payload, err = h.preprocessor.RenderFirstPage(c.UserContext(), data)
		return err
	})
	eg.Go(func() error {
		text = h.preprocessor.ExtractFirstPageText(data)
		return nil
	})
	if err := eg.Wait(); err != nil {
		log.Printf("❌ Failed to preprocess %s for session %s: %v\n", file.Filename, session.ID, err)
		return respondError(c, err)
	}

	session.SetResume(file.Filename, payload, text)

	log.Printf("📥 Resume %s uploaded for session %s\n", file.Filename, session.ID)

	return c.Status(fiber.StatusCreated).JSON(models.UploadResponse{
		SessionID:    session.ID.String(),
		OriginalName: file.Filename,
		MIMEType:     payload.MIMEType,
		ImageBytes:   len(payload.Data),
	})
}
