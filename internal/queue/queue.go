// Package queue builds the per-session review queue. Five pools are
// drained in ascending priority order into a shared, deduplicated list:
// due follow-ups, prerequisite remediation, aging archive review, frontier
// training, and archive backfill. A question claimed by an earlier pool
// keeps that pool's priority, and the returned queue is ordered by it.
package queue

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/abhisek/revq/internal/prereq"
	"github.com/abhisek/revq/internal/shelf"
	"github.com/abhisek/revq/internal/store"
)

// Pool priorities. Lower runs sooner in a session.
const (
	PriorityFollowup = 0.0
	PriorityPrereq   = 0.0
	PriorityAging    = 1.5
	PriorityTraining = 2.0
	PriorityBackfill = 3.0
)

// Quota shares of the queue limit per pool.
const (
	followupShare = 0.2
	trainingShare = 0.7
	agingShare    = 0.1
)

// DefaultLimit is the queue size when the request doesn't set one.
const DefaultLimit = 20

// MaxPrereqInjections caps how many remediation questions one session
// can absorb.
const MaxPrereqInjections = 5

// failureLookback is how many recent failures feed remediation.
const failureLookback = 5

// StaleAfter is how long a chunk may go without a full review before the
// aging pool starts sampling it.
const StaleAfter = 7 * 24 * time.Hour

// Source is the storage view the builder reads from.
type Source interface {
	DueByStatus(ctx context.Context, userID, courseID string, status shelf.Status, maxSession int64, limit int) ([]store.UserQuestionStatus, error)
	RecentFailures(ctx context.Context, userID, courseID string, limit int) ([]store.UserQuestionStatus, error)
	ByIDs(ctx context.Context, ids []string) ([]store.Question, error)
	NewFollowups(ctx context.Context, userID, courseID string, limit int) ([]store.Question, error)
	Training(ctx context.Context, userID, courseID, chunkID string, limit int) ([]store.Question, error)
	ArchivedByChunks(ctx context.Context, userID, courseID string, chunkIDs []string, limit int) ([]store.Question, error)
	FrontierChunk(ctx context.Context, userID, courseID string) (string, error)
	WeakestChunks(ctx context.Context, userID, courseID string, limit int) ([]string, error)
	StaleChunks(ctx context.Context, userID, courseID string, cutoff time.Time, limit int) ([]string, error)
}

// Remediator supplies prerequisite remediation questions.
type Remediator interface {
	Questions(ctx context.Context, req prereq.Request) ([]prereq.Candidate, error)
}

// Request describes one queue build.
type Request struct {
	UserID   string
	CourseID string

	// ChunkID optionally pins the training pool to a chunk. Empty means
	// the frontier chunk.
	ChunkID string

	// Session is the current course session number.
	Session int64

	// Limit caps the queue length; 0 means DefaultLimit.
	Limit int
}

// ReviewItem is one queued question.
type ReviewItem struct {
	Question store.Question
	Priority float64
	Reason   string
}

// Builder assembles review queues.
type Builder struct {
	src Source
	rem Remediator

	now func() time.Time
}

// NewBuilder creates a Builder. rem may be nil when prerequisite
// injection is unavailable.
func NewBuilder(src Source, rem Remediator) *Builder {
	return &Builder{src: src, rem: rem, now: time.Now}
}

// Build assembles the queue. Empty pools are skipped silently; a queue
// with nothing due anywhere is empty and valid.
func (b *Builder) Build(ctx context.Context, req Request) ([]ReviewItem, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	q := &assembly{limit: limit, seen: make(map[string]bool)}

	// Pools fill in ascending priority, so the queue comes out ordered.
	if err := b.fillFollowups(ctx, req, q, share(limit, followupShare)); err != nil {
		return nil, err
	}
	if err := b.fillPrereqs(ctx, req, q); err != nil {
		return nil, err
	}
	if err := b.fillAging(ctx, req, q, share(limit, agingShare)); err != nil {
		return nil, err
	}
	if err := b.fillTraining(ctx, req, q, share(limit, trainingShare)); err != nil {
		return nil, err
	}
	if err := b.fillBackfill(ctx, req, q); err != nil {
		return nil, err
	}

	return q.items, nil
}

// fillFollowups drains due follow-up reviews, then tops the quota up with
// freshly generated follow-up questions the learner hasn't seen.
func (b *Builder) fillFollowups(ctx context.Context, req Request, q *assembly, quota int) error {
	quota = q.cap(quota)
	if quota == 0 {
		return nil
	}

	due, err := b.src.DueByStatus(ctx, req.UserID, req.CourseID,
		shelf.StatusPendingFollowup, req.Session, quota)
	if err != nil {
		return fmt.Errorf("due followups: %w", err)
	}

	ids := make([]string, 0, len(due))
	for _, s := range due {
		ids = append(ids, s.QuestionID)
	}
	questions, err := b.src.ByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("resolve followups: %w", err)
	}
	for _, question := range questions {
		q.add(question, PriorityFollowup, "Follow-up")
	}

	if remaining := quota - len(questions); remaining > 0 {
		fresh, err := b.src.NewFollowups(ctx, req.UserID, req.CourseID, remaining)
		if err != nil {
			return fmt.Errorf("new followups: %w", err)
		}
		for _, question := range fresh {
			q.add(question, PriorityFollowup, "Follow-up")
		}
	}
	return nil
}

// fillPrereqs mines the learner's recent failures for concepts to patch
// and injects questions on their prerequisites.
func (b *Builder) fillPrereqs(ctx context.Context, req Request, q *assembly) error {
	if b.rem == nil {
		return nil
	}
	quota := q.cap(MaxPrereqInjections)
	if quota == 0 {
		return nil
	}

	failures, err := b.recentFailures(ctx, req)
	if err != nil {
		return err
	}
	if len(failures) == 0 {
		return nil
	}

	candidates, err := b.rem.Questions(ctx, prereq.Request{
		CourseID: req.CourseID,
		Failures: failures,
	})
	if err != nil {
		return fmt.Errorf("prerequisite questions: %w", err)
	}

	added := 0
	for _, c := range candidates {
		if added >= quota {
			break
		}
		if q.add(c.Question, PriorityPrereq, c.Reason) {
			added++
		}
	}
	return nil
}

// recentFailures resolves the learner's freshest fail streaks into the
// concepts they were failing on.
func (b *Builder) recentFailures(ctx context.Context, req Request) ([]prereq.Failure, error) {
	statuses, err := b.src.RecentFailures(ctx, req.UserID, req.CourseID, failureLookback)
	if err != nil {
		return nil, fmt.Errorf("recent failures: %w", err)
	}
	if len(statuses) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(statuses))
	for _, s := range statuses {
		ids = append(ids, s.QuestionID)
	}
	questions, err := b.src.ByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve failed questions: %w", err)
	}
	byID := make(map[string]store.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	var failures []prereq.Failure
	for _, s := range statuses {
		q, ok := byID[s.QuestionID]
		if !ok {
			continue
		}
		for _, concept := range q.Concepts {
			failures = append(failures, prereq.Failure{
				ChunkID:          q.ChunkID,
				Concept:          concept,
				ConsecutiveFails: s.FailsCount,
			})
		}
	}
	return failures, nil
}

func (b *Builder) fillTraining(ctx context.Context, req Request, q *assembly, quota int) error {
	quota = q.cap(quota)
	if quota == 0 {
		return nil
	}

	chunkID := req.ChunkID
	if chunkID == "" {
		frontier, err := b.src.FrontierChunk(ctx, req.UserID, req.CourseID)
		if err != nil && !store.IsNotFound(err) {
			return fmt.Errorf("frontier chunk: %w", err)
		}
		chunkID = frontier
	}

	questions, err := b.src.Training(ctx, req.UserID, req.CourseID, chunkID, quota)
	if err != nil {
		return fmt.Errorf("training questions: %w", err)
	}
	for _, question := range questions {
		q.add(question, PriorityTraining, "Training")
	}
	return nil
}

// fillAging pulls archived questions whose scheduled review has come due.
// When none are due it samples chunks that haven't had a full review
// lately.
func (b *Builder) fillAging(ctx context.Context, req Request, q *assembly, quota int) error {
	quota = q.cap(quota)
	if quota == 0 {
		return nil
	}

	due, err := b.src.DueByStatus(ctx, req.UserID, req.CourseID,
		shelf.StatusArchived, req.Session, quota)
	if err != nil {
		return fmt.Errorf("due archived: %w", err)
	}

	if len(due) > 0 {
		ids := make([]string, 0, len(due))
		for _, s := range due {
			ids = append(ids, s.QuestionID)
		}
		questions, err := b.src.ByIDs(ctx, ids)
		if err != nil {
			return fmt.Errorf("resolve archived: %w", err)
		}
		for _, question := range questions {
			q.add(question, PriorityAging, "Aging")
		}
		return nil
	}

	stale, err := b.src.StaleChunks(ctx, req.UserID, req.CourseID,
		b.now().Add(-StaleAfter), quota)
	if err != nil {
		return fmt.Errorf("stale chunks: %w", err)
	}
	if len(stale) == 0 {
		return nil
	}

	questions, err := b.src.ArchivedByChunks(ctx, req.UserID, req.CourseID, stale, quota)
	if err != nil {
		return fmt.Errorf("archived in stale chunks: %w", err)
	}
	for _, question := range questions {
		q.add(question, PriorityAging, "Aging")
	}
	return nil
}

// fillBackfill pads the queue with archived material, weakest chunks first.
func (b *Builder) fillBackfill(ctx context.Context, req Request, q *assembly) error {
	quota := q.cap(q.limit)
	if quota == 0 {
		return nil
	}

	weakest, err := b.src.WeakestChunks(ctx, req.UserID, req.CourseID, quota)
	if err != nil {
		return fmt.Errorf("weakest chunks: %w", err)
	}
	if len(weakest) > 0 {
		questions, err := b.src.ArchivedByChunks(ctx, req.UserID, req.CourseID, weakest, quota)
		if err != nil {
			return fmt.Errorf("backfill weak chunks: %w", err)
		}
		for _, question := range questions {
			q.add(question, PriorityBackfill, "Backfill")
		}
	}

	quota = q.cap(q.limit)
	if quota == 0 {
		return nil
	}
	questions, err := b.src.ArchivedByChunks(ctx, req.UserID, req.CourseID, nil, quota)
	if err != nil {
		return fmt.Errorf("backfill: %w", err)
	}
	for _, question := range questions {
		q.add(question, PriorityBackfill, "Backfill")
	}
	return nil
}

// assembly accumulates items with dedup against the running queue.
type assembly struct {
	items []ReviewItem
	seen  map[string]bool
	limit int
}

// add appends a question unless it is already queued or the queue is full.
func (a *assembly) add(q store.Question, priority float64, reason string) bool {
	if len(a.items) >= a.limit || a.seen[q.ID] {
		return false
	}
	a.seen[q.ID] = true
	a.items = append(a.items, ReviewItem{Question: q, Priority: priority, Reason: reason})
	return true
}

// cap bounds a pool quota by the space left in the queue.
func (a *assembly) cap(quota int) int {
	remaining := a.limit - len(a.items)
	if quota > remaining {
		quota = remaining
	}
	if quota < 0 {
		quota = 0
	}
	return quota
}

// share rounds a fractional share of the limit, keeping at least one slot
// for any non-zero share.
func share(limit int, fraction float64) int {
	n := int(math.Round(float64(limit) * fraction))
	if n < 1 {
		n = 1
	}
	return n
}
