package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"strings"

	"alfredoptarigan/ats-resume-checker/internal/models"
)

const ReportFilename = "resume_evaluation_report.pdf"

// PDFRenderer prints an HTML document to PDF.
type PDFRenderer interface {
	RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error)
}

type ReportGenerator interface {
	Generate(ctx context.Context, result models.EvaluationResult, feedback string) ([]byte, error)
	Export(ctx context.Context, session *models.Session) ([]byte, error)
}

type reportGenerator struct {
	renderer PDFRenderer
}

func NewReportGenerator(renderer PDFRenderer) ReportGenerator {
	return &reportGenerator{
		renderer: renderer,
	}
}

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  @page { size: letter; margin: 0.75in 1in; }
  body { font-family: Helvetica, Arial, sans-serif; font-size: 12pt; margin: 0; }
  .line { margin: 0 0 6pt 0; }
  .feedback { font-family: Helvetica, Arial, sans-serif; font-size: 10pt; white-space: pre; margin: 0; }
</style>
</head>
<body>
<p class="line">{{.Title}}</p>
{{range .Metrics}}<p class="line">{{.}}</p>
{{end}}<p class="line">Feedback:</p>
<pre class="feedback">
{{.FeedbackText}}</pre>
</body>
</html>
`))

type reportView struct {
	Title    string
	Metrics  []string
	Feedback []string
}

// ReportLines returns the report text in print order: title, five metric
// lines, the feedback heading, then each feedback line as given.
func ReportLines(result models.EvaluationResult, feedback string) []string {
	view := newReportView(result, feedback)

	lines := append([]string{view.Title}, view.Metrics...)
	lines = append(lines, "Feedback:")
	return append(lines, view.Feedback...)
}

func (v reportView) FeedbackText() string {
	return strings.Join(v.Feedback, "\n")
}

func newReportView(result models.EvaluationResult, feedback string) reportView {
	return reportView{
		Title: "Resume Evaluation Report",
		Metrics: []string{
			fmt.Sprintf("Resume Score: %d / 100", result.ResumeScore),
			fmt.Sprintf("Match Percentage: %d%%", result.MatchPercentage),
			fmt.Sprintf("Missing Keywords: %d", result.MissingKeywords),
			fmt.Sprintf("Matching Keywords: %d", result.MatchingKeywords),
			fmt.Sprintf("Recommended Skills: %d", result.RecommendedSkills),
		},
		Feedback: strings.Split(feedback, "\n"),
	}
}

// RenderReportHTML lays the report out as a single HTML page.
func RenderReportHTML(result models.EvaluationResult, feedback string) (string, error) {
	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, newReportView(result, feedback)); err != nil {
		return "", fmt.Errorf("failed to render report template: %w", err)
	}
	return buf.String(), nil
}

func (g *reportGenerator) Generate(ctx context.Context, result models.EvaluationResult, feedback string) ([]byte, error) {
	html, err := RenderReportHTML(result, feedback)
	if err != nil {
		return nil, err
	}

	pdfBytes, err := g.renderer.RenderHTMLToPDF(ctx, html)
	if err != nil {
		return nil, fmt.Errorf("failed to print report: %w", err)
	}

	log.Printf("📄 Report generated (%d bytes)\n", len(pdfBytes))
	return pdfBytes, nil
}

// Export builds the report from the session's last successful evaluation.
// It fails with ErrNoEvaluation until one exists.
func (g *reportGenerator) Export(ctx context.Context, session *models.Session) ([]byte, error) {
	result, ok := session.Analytics.Latest()
	if !ok {
		return nil, ErrNoEvaluation
	}

	feedback := session.Feedback()
	if strings.TrimSpace(feedback) == "" {
		feedback = SummaryFeedback(result)
	}

	return g.Generate(ctx, result, feedback)
}

// SummaryFeedback describes an evaluation in plain lines when no free-text
// answer is available.
func SummaryFeedback(result models.EvaluationResult) string {
	lines := []string{
		"Resume vs. Job Description Evaluation:",
		"",
		fmt.Sprintf("Percentage Match: %d%% (%s)", result.MatchPercentage, MatchBand(result.MatchPercentage)),
		fmt.Sprintf("Keywords matched: %d, missing: %d", result.MatchingKeywords, result.MissingKeywords),
	}

	if result.RecommendedSkills > 0 {
		lines = append(lines, fmt.Sprintf("Recommended skills to add: %d", result.RecommendedSkills))
	}
	if result.MissingKeywords > 0 {
		lines = append(lines, "Use the missing keywords where they honestly apply.")
	}

	return strings.Join(lines, "\n")
}
