package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"alfredoptarigan/ats-resume-checker/internal/models"
)

// ContentGenerator is the part of the genai client the gateway uses.
// *genai.Models satisfies it.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// InferenceGateway sends one multimodal prompt and returns the raw answer.
type InferenceGateway interface {
	Evaluate(ctx context.Context, prompt string, image *models.InlineImagePayload, jobDescription string) (string, error)
}

type geminiGateway struct {
	generator   ContentGenerator
	modelName   string
	temperature float32
	limiter     *rate.Limiter
}

type GatewayOption func(*geminiGateway)

// WithRateLimit spaces model calls to at most rps per second. A call waits
// for its turn; it is never retried. rps <= 0 leaves calls unlimited.
func WithRateLimit(rps float64, burst int) GatewayOption {
	return func(g *geminiGateway) {
		if rps <= 0 {
			return
		}
		if burst < 1 {
			burst = 1
		}
		g.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// NewGeminiGateway builds a gateway backed by the Gemini API.
func NewGeminiGateway(ctx context.Context, apiKey, modelName string, temperature float32, opts ...GatewayOption) (InferenceGateway, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	log.Printf("🤖 Gemini client ready (model %s)\n", modelName)
	return NewInferenceGateway(client.Models, modelName, temperature, opts...), nil
}

func NewInferenceGateway(generator ContentGenerator, modelName string, temperature float32, opts ...GatewayOption) InferenceGateway {
	g := &geminiGateway{
		generator:   generator,
		modelName:   modelName,
		temperature: temperature,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Evaluate makes exactly one model call. Any failure comes back as an
// *InferenceError; the answer text is returned untouched.
func (g *geminiGateway) Evaluate(ctx context.Context, prompt string, image *models.InlineImagePayload, jobDescription string) (string, error) {
	if image == nil {
		return "", &MissingInputError{Input: "resume"}
	}

	imageBytes, err := image.Bytes()
	if err != nil {
		return "", &InferenceError{Cause: fmt.Errorf("failed to decode inline image: %w", err)}
	}

	parts := []*genai.Part{
		genai.NewPartFromText(prompt),
		genai.NewPartFromBytes(imageBytes, image.MIMEType),
		genai.NewPartFromText(jobDescription),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	temperature := g.temperature
	config := &genai.GenerateContentConfig{
		Temperature: &temperature,
	}

	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return "", &InferenceError{Cause: fmt.Errorf("rate limit wait: %w", err)}
		}
	}

	resp, err := g.generator.GenerateContent(ctx, g.modelName, contents, config)
	if err != nil {
		log.Printf("❌ Gemini API error: %v\n", err)
		return "", &InferenceError{Cause: err}
	}
	if resp == nil {
		log.Println("❌ Gemini API returned nil response")
		return "", &InferenceError{Cause: errors.New("no response generated (nil response)")}
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		log.Println("❌ No text content in response")
		return "", &InferenceError{Cause: errors.New("no text content in response")}
	}

	log.Printf("📊 Gemini response received (%d chars)\n", len(text))
	return text, nil
}
