package models

import "sync"

// Analytics holds the latest successful EvaluationResult of one session.
// Values start at zero and are only ever replaced as a whole.
type Analytics struct {
	mu        sync.RWMutex
	current   EvaluationResult
	hasResult bool
}

func NewAnalytics() *Analytics {
	return &Analytics{}
}

// Update replaces all five values at once.
func (a *Analytics) Update(result EvaluationResult) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.current = result
	a.hasResult = true
}

// Snapshot returns a copy of the current values.
func (a *Analytics) Snapshot() EvaluationResult {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return a.current
}

// HasResult reports whether Update has been called at least once.
func (a *Analytics) HasResult() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return a.hasResult
}

// Latest returns the snapshot together with HasResult under one lock.
func (a *Analytics) Latest() (EvaluationResult, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return a.current, a.hasResult
}
