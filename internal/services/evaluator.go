package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"alfredoptarigan/ats-resume-checker/internal/models"
)

// ParseWarning is returned to the caller when the structured answer could
// not be read. The session analytics are left as they were.
const ParseWarning = "Could not extract valid JSON from the model response."

// EvaluationPipeline runs prompt actions against a session's resume and job
// description.
type EvaluationPipeline interface {
	RunAction(ctx context.Context, session *models.Session, action Action) (*models.ActionResult, error)
	Ask(ctx context.Context, session *models.Session, question string) (*models.ActionResult, error)
}

type evaluationPipeline struct {
	gateway InferenceGateway
	metrics *PipelineMetrics
}

// NewEvaluationPipeline wires the gateway. metrics may be nil.
func NewEvaluationPipeline(gateway InferenceGateway, metrics *PipelineMetrics) EvaluationPipeline {
	if metrics == nil {
		metrics = NewPipelineMetrics(nil)
	}
	return &evaluationPipeline{
		gateway: gateway,
		metrics: metrics,
	}
}

func (p *evaluationPipeline) RunAction(ctx context.Context, session *models.Session, action Action) (*models.ActionResult, error) {
	template, ok := LookupPrompt(action)
	if !ok || action == ActionQuestion {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAction, action)
	}

	image, jobDescription, err := requireInputs(session)
	if err != nil {
		p.metrics.observeAction(action, outcomeMissingInput)
		return nil, err
	}

	log.Printf("🔄 Running %s for session %s\n", action, session.ID)

	text, err := p.infer(ctx, action, template.Instruction, image, jobDescription)
	if err != nil {
		log.Printf("❌ %s failed for session %s: %v\n", action, session.ID, err)
		return nil, err
	}

	result := &models.ActionResult{
		Action: string(action),
		Title:  template.Title,
	}

	if !template.Structured() {
		result.Text = text
		session.SetFeedback(text)
		p.metrics.observeAction(action, outcomeOK)
		log.Printf("✅ %s completed for session %s\n", action, session.ID)
		return result, nil
	}

	evaluation := ExtractStructured(text)
	if evaluation == nil {
		log.Printf("⚠️  Could not parse structured answer for session %s\n", session.ID)
		result.Text = text
		result.Warning = ParseWarning
		p.metrics.observeAction(action, outcomeParseMiss)
		return result, nil
	}

	session.Analytics.Update(*evaluation)
	session.Touch()
	result.Evaluation = evaluation
	p.metrics.observeAction(action, outcomeOK)

	log.Printf("✅ Evaluation stored for session %s (score %d, match %d%%)\n",
		session.ID, evaluation.ResumeScore, evaluation.MatchPercentage)
	return result, nil
}

func (p *evaluationPipeline) Ask(ctx context.Context, session *models.Session, question string) (*models.ActionResult, error) {
	if strings.TrimSpace(question) == "" {
		p.metrics.observeAction(ActionQuestion, outcomeMissingInput)
		return nil, &MissingInputError{Input: "question"}
	}

	image, jobDescription, err := requireInputs(session)
	if err != nil {
		p.metrics.observeAction(ActionQuestion, outcomeMissingInput)
		return nil, err
	}

	template, _ := LookupPrompt(ActionQuestion)
	prompt := BuildQuestionPrompt(session.ResumeText(), jobDescription, question)

	log.Printf("💬 Answering question for session %s\n", session.ID)

	text, err := p.infer(ctx, ActionQuestion, prompt, image, jobDescription)
	if err != nil {
		log.Printf("❌ Question failed for session %s: %v\n", session.ID, err)
		return nil, err
	}

	session.Touch()
	p.metrics.observeAction(ActionQuestion, outcomeOK)
	return &models.ActionResult{
		Action: string(ActionQuestion),
		Title:  template.Title,
		Text:   text,
	}, nil
}

func (p *evaluationPipeline) infer(ctx context.Context, action Action, prompt string, image *models.InlineImagePayload, jobDescription string) (string, error) {
	start := time.Now()
	text, err := p.gateway.Evaluate(ctx, prompt, image, jobDescription)
	p.metrics.observeInference(action, time.Since(start).Seconds())

	var inferenceErr *InferenceError
	if errors.As(err, &inferenceErr) {
		p.metrics.observeAction(action, outcomeInferenceFail)
	}
	return text, err
}

func requireInputs(session *models.Session) (*models.InlineImagePayload, string, error) {
	image := session.Resume()
	if image == nil {
		return nil, "", &MissingInputError{Input: "resume"}
	}

	jobDescription := strings.TrimSpace(session.JobDescription())
	if jobDescription == "" {
		return nil, "", &MissingInputError{Input: "job_description"}
	}

	return image, jobDescription, nil
}
