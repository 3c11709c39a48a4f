package models

import "time"

type SessionResponse struct {
	ID                string            `json:"id"`
	ResumeFilename    string            `json:"resume_filename,omitempty"`
	HasResume         bool              `json:"has_resume"`
	HasJobDescription bool              `json:"has_job_description"`
	Evaluation        *EvaluationResult `json:"evaluation,omitempty"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

type UploadResponse struct {
	SessionID    string `json:"session_id"`
	OriginalName string `json:"original_name"`
	MIMEType     string `json:"mime_type"`
	ImageBytes   int    `json:"image_bytes"`
}

type JobDescriptionRequest struct {
	JobDescription string `json:"job_description"`
}

type QuestionRequest struct {
	Question string `json:"question"`
}

// ActionResult is what one prompt action produced. Text is set for free-text
// actions; Evaluation or Warning for the structured one.
type ActionResult struct {
	Action     string            `json:"action"`
	Title      string            `json:"title"`
	Text       string            `json:"text,omitempty"`
	Evaluation *EvaluationResult `json:"evaluation,omitempty"`
	Warning    string            `json:"warning,omitempty"`
}

type ActionInfo struct {
	Name       string `json:"name"`
	Title      string `json:"title"`
	Structured bool   `json:"structured"`
}

type Bar struct {
	Label string `json:"label"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

type GaugeStep struct {
	From  int    `json:"from"`
	To    int    `json:"to"`
	Color string `json:"color"`
}

type Gauge struct {
	Title string      `json:"title"`
	Value int         `json:"value"`
	Band  string      `json:"band"`
	Steps []GaugeStep `json:"steps"`
}

type Dashboard struct {
	Visible bool     `json:"visible"`
	Metrics []Metric `json:"metrics"`
	Bars    []Bar    `json:"bars"`
	Gauge   Gauge    `json:"gauge"`
}
