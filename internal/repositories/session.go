package repositories

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/ats-resume-checker/internal/models"
)

var ErrSessionNotFound = errors.New("session not found")

type SessionRepository interface {
	Create(session *models.Session) error
	FindByID(id uuid.UUID) (*models.Session, error)
	Delete(id uuid.UUID) error
	DeleteIdle(before time.Time) ([]uuid.UUID, error)
	Count() int
}

// sessionRepository keeps sessions in process memory only; nothing survives a
// restart.
type sessionRepository struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*models.Session
}

func NewSessionRepository() SessionRepository {
	return &sessionRepository{
		sessions: make(map[uuid.UUID]*models.Session),
	}
}

// Create implements SessionRepository.
func (r *sessionRepository) Create(session *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[session.ID]; exists {
		return errors.New("failed to create session: duplicate id")
	}
	r.sessions[session.ID] = session
	return nil
}

// FindByID implements SessionRepository.
func (r *sessionRepository) FindByID(id uuid.UUID) (*models.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Delete implements SessionRepository.
func (r *sessionRepository) Delete(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}

// DeleteIdle removes every session last used before the cutoff and returns
// their IDs.
func (r *sessionRepository) DeleteIdle(before time.Time) ([]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed []uuid.UUID
	for id, session := range r.sessions {
		if session.UpdatedAt().Before(before) {
			delete(r.sessions, id)
			removed = append(removed, id)
		}
	}
	return removed, nil
}

// Count implements SessionRepository.
func (r *sessionRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
