// Package session orchestrates the review loop: it advances the course
// session counter, assembles queues, and records answers.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/revq/internal/followup"
	"github.com/abhisek/revq/internal/queue"
	"github.com/abhisek/revq/internal/store"
)

// maxTransientRetries bounds retries of writes that failed on a busy
// database. Other layers never retry.
const maxTransientRetries = 3

// Config wires a Manager.
type Config struct {
	Statuses  store.StatusRepo
	Questions store.QuestionRepo
	Mastery   store.MasteryRepo
	Progress  store.ProgressRepo
	Sessions  store.SessionRepo
	Chunks    store.ChunkRepo
	Writer    store.ReviewWriter
	Builder   *queue.Builder

	// Followups is optional; without it incorrect answers simply don't
	// spawn new questions.
	Followups followup.Generator
}

// Manager drives sessions for one store.
type Manager struct {
	cfg Config
	now func() time.Time
}

// NewManager creates a Manager.
func NewManager(cfg Config) *Manager {
	return &Manager{cfg: cfg, now: time.Now}
}

// BumpSession advances the per-course session counter, at most once per
// UTC day, and returns the current session number.
func (m *Manager) BumpSession(ctx context.Context, userID, courseID string) (int64, error) {
	day := m.now().UTC().Format("2006-01-02")

	var session int64
	err := m.withRetry(ctx, func() error {
		var err error
		session, err = m.cfg.Sessions.Bump(ctx, userID, courseID, day)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("bump session: %w", err)
	}
	return session, nil
}

// StartRequest configures a session start.
type StartRequest struct {
	UserID   string
	CourseID string

	// ChunkID optionally pins training to a chunk.
	ChunkID string

	// Limit caps the queue; 0 uses the builder default.
	Limit int
}

// StartResult is a started session. An empty Queue is valid; a failed
// start returns an error instead.
type StartResult struct {
	Session int64
	Queue   []queue.ReviewItem
	Stats   *store.CourseStats
}

// Start bumps the session counter and builds the review queue. Course
// statistics are read-only and load concurrently with the queue.
func (m *Manager) Start(ctx context.Context, req StartRequest) (*StartResult, error) {
	session, err := m.BumpSession(ctx, req.UserID, req.CourseID)
	if err != nil {
		return nil, err
	}

	type statsResult struct {
		stats *store.CourseStats
		err   error
	}
	statsCh := make(chan statsResult, 1)
	go func() {
		s, err := m.cfg.Mastery.CourseAggregate(ctx, req.UserID, req.CourseID, session)
		statsCh <- statsResult{s, err}
	}()

	items, err := m.cfg.Builder.Build(ctx, queue.Request{
		UserID:   req.UserID,
		CourseID: req.CourseID,
		ChunkID:  req.ChunkID,
		Session:  session,
		Limit:    req.Limit,
	})
	if err != nil {
		<-statsCh
		return nil, fmt.Errorf("build queue: %w", err)
	}

	// Stats are display-only. A session without them is still a session.
	sr := <-statsCh
	if sr.err != nil {
		sr.stats = nil
	}

	return &StartResult{Session: session, Queue: items, Stats: sr.stats}, nil
}

// withRetry retries op on transient store errors with a short linear
// backoff.
func (m *Manager) withRetry(ctx context.Context, op func() error) error {
	var err error
	for attempt := 0; attempt <= maxTransientRetries; attempt++ {
		err = op()
		if err == nil || !store.IsTransient(err) {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt+1) * 50 * time.Millisecond):
		}
	}
	return err
}

// CourseStats returns the learner's aggregate standing in a course.
func (m *Manager) CourseStats(ctx context.Context, userID, courseID string) (*store.CourseStats, error) {
	session, err := m.cfg.Sessions.Current(ctx, userID, courseID)
	if err != nil {
		return nil, fmt.Errorf("current session: %w", err)
	}
	stats, err := m.cfg.Mastery.CourseAggregate(ctx, userID, courseID, session)
	if err != nil {
		return nil, fmt.Errorf("course stats: %w", err)
	}
	return stats, nil
}
