package models

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session is one user's working context: the uploaded resume, the job
// description and the analytics produced from them. Fields are guarded so
// concurrent requests against the same session see consistent state.
type Session struct {
	ID        uuid.UUID
	CreatedAt time.Time
	Analytics *Analytics

	mu             sync.RWMutex
	resumeFilename string
	resume         *InlineImagePayload
	resumeText     string
	jobDescription string
	feedback       string
	updatedAt      time.Time
}

func NewSession() *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.New(),
		CreatedAt: now,
		Analytics: NewAnalytics(),
		updatedAt: now,
	}
}

// SetResume stores the preprocessed first page of a newly uploaded resume.
func (s *Session) SetResume(filename string, payload *InlineImagePayload, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.resumeFilename = filename
	s.resume = payload
	s.resumeText = text
	s.updatedAt = time.Now()
}

func (s *Session) SetJobDescription(jobDescription string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobDescription = jobDescription
	s.updatedAt = time.Now()
}

// SetFeedback keeps the latest free-text model response for the report.
func (s *Session) SetFeedback(feedback string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.feedback = feedback
	s.updatedAt = time.Now()
}

func (s *Session) Resume() *InlineImagePayload {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resume
}

func (s *Session) ResumeText() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resumeText
}

func (s *Session) JobDescription() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.jobDescription
}

func (s *Session) Feedback() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.feedback
}

// Touch marks the session as used.
func (s *Session) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updatedAt = time.Now()
}

func (s *Session) UpdatedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updatedAt
}

// View returns a serialisable summary of the session.
func (s *Session) View() SessionResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result, ok := s.Analytics.Latest()
	resp := SessionResponse{
		ID:                s.ID.String(),
		ResumeFilename:    s.resumeFilename,
		HasResume:         s.resume != nil,
		HasJobDescription: strings.TrimSpace(s.jobDescription) != "",
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.updatedAt,
	}
	if ok {
		resp.Evaluation = &result
	}
	return resp
}
