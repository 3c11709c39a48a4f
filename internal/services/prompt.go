package services

import (
	"fmt"
	"strings"
)

// Action names one entry of the prompt catalog.
type Action string

const (
	ActionEvaluation       Action = "evaluation"
	ActionPercentageMatch  Action = "percentage_match"
	ActionMissingKeywords  Action = "missing_keywords"
	ActionSkillImprovement Action = "skill_improvement"
	ActionMissingSkills    Action = "missing_skills"
	ActionResumeScore      Action = "resume_score"
	ActionRoleSuggestions  Action = "role_suggestions"
	ActionQuestion         Action = "question"
)

// PromptTemplate is a fixed instruction. Schema is set only for the action
// whose answer must be a single JSON object.
type PromptTemplate struct {
	Action      Action
	Title       string
	Instruction string
	Schema      string
}

func (t PromptTemplate) Structured() bool {
	return t.Schema != ""
}

const evaluationInstruction = `You are an intelligent resume analysis engine. Given a resume and a job description, analyze the resume and ONLY return a JSON object like below. DO NOT add any explanation or text before or after it. Use only double quotes for all keys and string values.

{
  "resume_score": 0 to 100 (integer),
  "match_percentage": 0 to 100 (integer),
  "missing_keywords": integer,
  "matching_keywords": integer,
  "recommended_skills": integer
}`

// evaluationSchema is the JSON Schema the evaluation answer must satisfy.
const evaluationSchema = `{
  "type": "object",
  "required": ["resume_score", "match_percentage", "missing_keywords", "matching_keywords", "recommended_skills"],
  "properties": {
    "resume_score": {"type": "integer", "minimum": 0, "maximum": 100},
    "match_percentage": {"type": "integer", "minimum": 0, "maximum": 100},
    "missing_keywords": {"type": "integer", "minimum": 0},
    "matching_keywords": {"type": "integer", "minimum": 0},
    "recommended_skills": {"type": "integer", "minimum": 0}
  }
}`

const questionInstruction = `You are a professional AI assistant specializing in resume reviews and job matching. Your role is to provide clear, accurate, and visually appealing answers that are easy to read and understand. Please structure your answers in a friendly and concise manner, highlighting key insights with bullet points or numbered lists when appropriate.`

var actionOrder = []Action{
	ActionEvaluation,
	ActionPercentageMatch,
	ActionMissingKeywords,
	ActionSkillImprovement,
	ActionMissingSkills,
	ActionResumeScore,
	ActionRoleSuggestions,
	ActionQuestion,
}

var catalog = map[Action]PromptTemplate{
	ActionEvaluation: {
		Action:      ActionEvaluation,
		Title:       "Resume Evaluation Summary",
		Instruction: evaluationInstruction,
		Schema:      evaluationSchema,
	},
	ActionPercentageMatch: {
		Action:      ActionPercentageMatch,
		Title:       "Percentage Match",
		Instruction: "Evaluate the resume vs job description. Return % match, keywords missing, and final thoughts. Keep it brief and to the point.",
	},
	ActionMissingKeywords: {
		Action:      ActionMissingKeywords,
		Title:       "Missing Keywords",
		Instruction: "List important keywords from the job description missing in the resume. Keep it brief and to the point.",
	},
	ActionSkillImprovement: {
		Action:      ActionSkillImprovement,
		Title:       "Skill Improvement Suggestions",
		Instruction: "Suggest how the candidate can improve their skills to match the job description. Keep it brief and to the point.",
	},
	ActionMissingSkills: {
		Action:      ActionMissingSkills,
		Title:       "Missing Skills Analysis",
		Instruction: "List job description skills not found in the resume. Keep it brief and to the point.",
	},
	ActionResumeScore: {
		Action:      ActionResumeScore,
		Title:       "Resume Score",
		Instruction: "Score the resume from 0-100 based on relevance, keywords, format, and professionalism. Keep it brief and to the point.",
	},
	ActionRoleSuggestions: {
		Action:      ActionRoleSuggestions,
		Title:       "Job Role Suggestions",
		Instruction: "Suggest 3 job roles matching the resume. Explain why each fits. Keep it brief and to the point.",
	},
	ActionQuestion: {
		Action:      ActionQuestion,
		Title:       "Resume Chatbot (Q&A)",
		Instruction: questionInstruction,
	},
}

// LookupPrompt returns the template for an action.
func LookupPrompt(action Action) (PromptTemplate, bool) {
	t, ok := catalog[action]
	return t, ok
}

// ParseAction maps a name to one of the seven button actions. The question
// action is excluded because it needs the user's question.
func ParseAction(name string) (Action, error) {
	action := Action(strings.ToLower(strings.TrimSpace(name)))
	if action == ActionQuestion {
		return "", fmt.Errorf("%w: %s", ErrUnknownAction, name)
	}
	if _, ok := catalog[action]; !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownAction, name)
	}
	return action, nil
}

// Catalog lists every template in display order.
func Catalog() []PromptTemplate {
	templates := make([]PromptTemplate, 0, len(actionOrder))
	for _, action := range actionOrder {
		templates = append(templates, catalog[action])
	}
	return templates
}

// BuildQuestionPrompt wraps a free-form question with the resume and job
// description context.
func BuildQuestionPrompt(resumeText, jobDescription, question string) string {
	if strings.TrimSpace(resumeText) == "" {
		resumeText = "(see the attached image of the resume's first page)"
	}

	return fmt.Sprintf(`%s

Resume Content:
%s

Job Description:
%s

Question:
%s

Based on the above, provide a helpful and concise answer.`,
		questionInstruction, strings.TrimSpace(resumeText), strings.TrimSpace(jobDescription), strings.TrimSpace(question))
}
