package services

import (
	"context"
	"log"
	"sync"
	"time"

	"alfredoptarigan/ats-resume-checker/internal/repositories"
)

// Janitor evicts sessions that have been idle longer than the TTL.
type Janitor interface {
	Start(ctx context.Context)
	Stop()
	Sweep() int
}

type janitor struct {
	sessionRepo repositories.SessionRepository
	ttl         time.Duration
	interval    time.Duration
	now         func() time.Time
	wg          sync.WaitGroup
	stopChan    chan struct{}
	stopOnce    sync.Once
}

func NewJanitor(sessionRepo repositories.SessionRepository, ttl, interval time.Duration) Janitor {
	return &janitor{
		sessionRepo: sessionRepo,
		ttl:         ttl,
		interval:    interval,
		now:         time.Now,
		stopChan:    make(chan struct{}),
	}
}

// Start implements Janitor.
func (j *janitor) Start(ctx context.Context) {
	if j.ttl <= 0 || j.interval <= 0 {
		log.Println("⚠️  Session janitor disabled (non-positive TTL or interval)")
		return
	}

	log.Printf("🧹 Starting session janitor (ttl %s, every %s)\n", j.ttl, j.interval)

	j.wg.Add(1)
	go j.run(ctx)
}

// Stop implements Janitor.
func (j *janitor) Stop() {
	j.stopOnce.Do(func() {
		log.Println("🛑 Stopping session janitor...")
		close(j.stopChan)
	})
	j.wg.Wait()
}

// Sweep removes idle sessions once and returns how many were dropped.
func (j *janitor) Sweep() int {
	removed, err := j.sessionRepo.DeleteIdle(j.now().Add(-j.ttl))
	if err != nil {
		log.Printf("⚠️  Failed to sweep idle sessions: %v\n", err)
		return 0
	}

	if len(removed) > 0 {
		log.Printf("🧹 Evicted %d idle sessions (%d remaining)\n", len(removed), j.sessionRepo.Count())
	}
	return len(removed)
}

func (j *janitor) run(ctx context.Context) {
	defer j.wg.Done()
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-j.stopChan:
			log.Println("✅ Session janitor stopped")
			return
		case <-ctx.Done():
			log.Println("✅ Session janitor stopped (context done)")
			return
		case <-ticker.C:
			j.Sweep()
		}
	}
}
