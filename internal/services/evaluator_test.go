package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/ats-resume-checker/internal/models"
)

func readySession(jobDescription string) *models.Session {
	session := models.NewSession()
	session.SetResume("resume.pdf", models.NewJPEGPayload([]byte{0xFF, 0xD8}), "Jane Doe\nSQL, Python")
	session.SetJobDescription(jobDescription)
	return session
}

func TestRunActionScenarioAUpdatesAnalytics(t *testing.T) {
	gen := &fakeGenerator{reply: "Sure! {\"resume_score\": 82, \"match_percentage\": 70, \"missing_keywords\": 3, \"matching_keywords\": 12, \"recommended_skills\": 2}"}
	pipeline := NewEvaluationPipeline(NewInferenceGateway(gen, "m", 0), nil)
	session := readySession("Seeking a data analyst with SQL and Python")

	result, err := pipeline.RunAction(context.Background(), session, ActionEvaluation)
	require.NoError(t, err)

	want := models.EvaluationResult{ResumeScore: 82, MatchPercentage: 70, MissingKeywords: 3, MatchingKeywords: 12, RecommendedSkills: 2}
	require.NotNil(t, result.Evaluation)
	assert.Equal(t, want, *result.Evaluation)
	assert.Empty(t, result.Warning)
	assert.Equal(t, "Resume Evaluation Summary", result.Title)
	assert.Equal(t, want, session.Analytics.Snapshot())
	assert.True(t, session.Analytics.HasResult())

	calls := gen.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "Seeking a data analyst with SQL and Python", calls[0].contents[0].Parts[2].Text)
}

func TestRunActionScenarioBKeepsPriorAnalytics(t *testing.T) {
	session := readySession("Seeking a data analyst")

	gen := &fakeGenerator{reply: "I cannot compute this."}
	pipeline := NewEvaluationPipeline(NewInferenceGateway(gen, "m", 0), nil)

	result, err := pipeline.RunAction(context.Background(), session, ActionEvaluation)
	require.NoError(t, err)
	assert.Nil(t, result.Evaluation)
	assert.Equal(t, ParseWarning, result.Warning)
	assert.Equal(t, "I cannot compute this.", result.Text)
	assert.Equal(t, models.EvaluationResult{}, session.Analytics.Snapshot())
	assert.False(t, session.Analytics.HasResult())

	prior := models.EvaluationResult{ResumeScore: 40, MatchPercentage: 35, MissingKeywords: 9, MatchingKeywords: 4, RecommendedSkills: 6}
	session.Analytics.Update(prior)

	_, err = pipeline.RunAction(context.Background(), session, ActionEvaluation)
	require.NoError(t, err)
	assert.Equal(t, prior, session.Analytics.Snapshot())
}

func TestRunActionScenarioCSkipsInferenceWithoutResume(t *testing.T) {
	gen := &fakeGenerator{reply: "unused"}
	pipeline := NewEvaluationPipeline(NewInferenceGateway(gen, "m", 0), nil)
	session := models.NewSession()
	session.SetJobDescription("Seeking a data analyst")

	result, err := pipeline.RunAction(context.Background(), session, ActionResumeScore)
	assert.Nil(t, result)

	var missing *MissingInputError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "resume", missing.Input)
	assert.Empty(t, gen.Calls())
}

func TestRunActionRequiresJobDescription(t *testing.T) {
	gen := &fakeGenerator{reply: "unused"}
	pipeline := NewEvaluationPipeline(NewInferenceGateway(gen, "m", 0), nil)

	for _, jd := range []string{"", "   \n\t"} {
		session := readySession(jd)
		_, err := pipeline.RunAction(context.Background(), session, ActionMissingKeywords)

		var missing *MissingInputError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, "job_description", missing.Input)
	}
	assert.Empty(t, gen.Calls())
}

func TestRunActionFreeTextKeepsFeedback(t *testing.T) {
	reply := "Missing: Kubernetes, Terraform\nAdd both to the skills section."
	gen := &fakeGenerator{reply: reply}
	pipeline := NewEvaluationPipeline(NewInferenceGateway(gen, "m", 0), nil)
	session := readySession("Platform engineer")

	for _, action := range []Action{ActionPercentageMatch, ActionMissingKeywords, ActionSkillImprovement, ActionMissingSkills, ActionResumeScore, ActionRoleSuggestions} {
		result, err := pipeline.RunAction(context.Background(), session, action)
		require.NoError(t, err, action)

		tmpl, _ := LookupPrompt(action)
		assert.Equal(t, reply, result.Text)
		assert.Equal(t, tmpl.Title, result.Title)
		assert.Nil(t, result.Evaluation)
	}

	assert.Equal(t, reply, session.Feedback())
	assert.False(t, session.Analytics.HasResult())
	assert.Len(t, gen.Calls(), 6)
}

func TestRunActionSendsTemplateInstruction(t *testing.T) {
	gen := &fakeGenerator{reply: "ok"}
	pipeline := NewEvaluationPipeline(NewInferenceGateway(gen, "m", 0), nil)

	_, err := pipeline.RunAction(context.Background(), readySession("jd"), ActionRoleSuggestions)
	require.NoError(t, err)

	tmpl, _ := LookupPrompt(ActionRoleSuggestions)
	assert.Equal(t, tmpl.Instruction, gen.Calls()[0].contents[0].Parts[0].Text)
}

func TestRunActionRejectsUnknownAndQuestion(t *testing.T) {
	gen := &fakeGenerator{reply: "ok"}
	pipeline := NewEvaluationPipeline(NewInferenceGateway(gen, "m", 0), nil)

	for _, action := range []Action{"horoscope", ActionQuestion} {
		_, err := pipeline.RunAction(context.Background(), readySession("jd"), action)
		assert.ErrorIs(t, err, ErrUnknownAction)
	}
	assert.Empty(t, gen.Calls())
}

func TestRunActionPropagatesInferenceError(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("quota exceeded")}
	pipeline := NewEvaluationPipeline(NewInferenceGateway(gen, "m", 0), nil)
	session := readySession("jd")

	_, err := pipeline.RunAction(context.Background(), session, ActionEvaluation)

	var inferenceErr *InferenceError
	require.ErrorAs(t, err, &inferenceErr)
	assert.False(t, session.Analytics.HasResult())
	assert.Len(t, gen.Calls(), 1)
}

func TestAskEmbedsQuestionAndContext(t *testing.T) {
	gen := &fakeGenerator{reply: "- Yes, you are a fit."}
	pipeline := NewEvaluationPipeline(NewInferenceGateway(gen, "m", 0), nil)
	session := readySession("Seeking a data analyst")

	result, err := pipeline.Ask(context.Background(), session, "Am I a fit?")
	require.NoError(t, err)
	assert.Equal(t, "- Yes, you are a fit.", result.Text)
	assert.Equal(t, string(ActionQuestion), result.Action)

	prompt := gen.Calls()[0].contents[0].Parts[0].Text
	assert.True(t, strings.Contains(prompt, "Question:\nAm I a fit?"))
	assert.Contains(t, prompt, "Jane Doe")
	assert.Contains(t, prompt, "Seeking a data analyst")
}

func TestAskRequiresQuestion(t *testing.T) {
	gen := &fakeGenerator{reply: "unused"}
	pipeline := NewEvaluationPipeline(NewInferenceGateway(gen, "m", 0), nil)

	_, err := pipeline.Ask(context.Background(), readySession("jd"), "  ")

	var missing *MissingInputError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "question", missing.Input)
	assert.Empty(t, gen.Calls())
}

func TestPipelineRecordsOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewPipelineMetrics(reg)
	gen := &fakeGenerator{reply: "I cannot compute this."}
	pipeline := NewEvaluationPipeline(NewInferenceGateway(gen, "m", 0), metrics)

	_, err := pipeline.RunAction(context.Background(), readySession("jd"), ActionEvaluation)
	require.NoError(t, err)
	_, err = pipeline.RunAction(context.Background(), models.NewSession(), ActionEvaluation)
	require.Error(t, err)

	gen.reply = "fine"
	_, err = pipeline.RunAction(context.Background(), readySession("jd"), ActionMissingSkills)
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.actions.WithLabelValues("evaluation", outcomeParseMiss)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.actions.WithLabelValues("evaluation", outcomeMissingInput)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.actions.WithLabelValues("missing_skills", outcomeOK)))
	assert.Equal(t, 2, testutil.CollectAndCount(metrics.inference))
}
