package models

// EvaluationResult is the structured verdict of the evaluation action. All
// five fields are required; a response that lacks any of them is not a result.
type EvaluationResult struct {
	ResumeScore       int `json:"resume_score"`
	MatchPercentage   int `json:"match_percentage"`
	MissingKeywords   int `json:"missing_keywords"`
	MatchingKeywords  int `json:"matching_keywords"`
	RecommendedSkills int `json:"recommended_skills"`
}

// Metric is one labelled value of an EvaluationResult.
type Metric struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value int    `json:"value"`
}

// Metrics lists the five values in display order.
func (r EvaluationResult) Metrics() []Metric {
	return []Metric{
		{Key: "resume_score", Label: "Resume Score", Value: r.ResumeScore},
		{Key: "match_percentage", Label: "Match %", Value: r.MatchPercentage},
		{Key: "missing_keywords", Label: "Missing Keywords", Value: r.MissingKeywords},
		{Key: "matching_keywords", Label: "Matching Keywords", Value: r.MatchingKeywords},
		{Key: "recommended_skills", Label: "Recommended Skills", Value: r.RecommendedSkills},
	}
}

// IsZero reports whether every metric is zero.
func (r EvaluationResult) IsZero() bool {
	return r == EvaluationResult{}
}
