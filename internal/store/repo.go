package store

import (
	"context"
	"time"

	"github.com/abhisek/revq/internal/shelf"
)

// StatusRepo manages per-learner question review state.
type StatusRepo interface {
	// Get returns the status row for one question, or ErrNotFound when
	// the learner has never answered it.
	Get(ctx context.Context, userID, questionID string) (*UserQuestionStatus, error)

	// Upsert writes the full status row.
	Upsert(ctx context.Context, s *UserQuestionStatus) error

	// DueByStatus returns statuses on the given shelf whose next review
	// session is at or before maxSession, oldest update first.
	DueByStatus(ctx context.Context, userID, courseID string, status shelf.Status, maxSession int64, limit int) ([]UserQuestionStatus, error)

	// RecentFailures returns statuses with a live fail streak, newest
	// update first. The queue builder mines them for remediation targets.
	RecentFailures(ctx context.Context, userID, courseID string, limit int) ([]UserQuestionStatus, error)
}

// QuestionRepo manages immutable question content.
type QuestionRepo interface {
	// Get returns a question by ID or ErrNotFound.
	Get(ctx context.Context, id string) (*Question, error)

	// Insert stores a new question. Existing rows are never updated.
	Insert(ctx context.Context, q *Question) error

	// NewFollowups returns generated follow-up questions the learner has
	// no status row for yet.
	NewFollowups(ctx context.Context, userID, courseID string, limit int) ([]Question, error)

	// Training returns reviewable questions for the waterfall: questions
	// in the chunk that are active or unseen, then active questions
	// anywhere in the course.
	Training(ctx context.Context, userID, courseID, chunkID string, limit int) ([]Question, error)

	// ByConcept returns same-course training questions testing a concept.
	ByConcept(ctx context.Context, courseID, concept string, limit int) ([]Question, error)

	// ByIDs resolves a batch of question IDs, skipping missing ones.
	ByIDs(ctx context.Context, ids []string) ([]Question, error)

	// ArchivedByChunks returns the learner's archived questions, limited
	// to the given chunks when chunkIDs is non-empty.
	ArchivedByChunks(ctx context.Context, userID, courseID string, chunkIDs []string, limit int) ([]Question, error)

	// ChunkQuestionCount counts the questions in a chunk.
	ChunkQuestionCount(ctx context.Context, courseID, chunkID string) (int, error)
}

// MasteryRepo manages per-chunk mastery aggregates.
type MasteryRepo interface {
	// Get returns the mastery row for a chunk, or ErrNotFound before the
	// first answer in it.
	Get(ctx context.Context, userID, courseID, chunkID string) (*ChunkMastery, error)

	// Upsert writes the full mastery row.
	Upsert(ctx context.Context, m *ChunkMastery) error

	// FrontierChunk returns the most recently reviewed chunk, or
	// ErrNotFound when the learner has no mastery rows in the course.
	FrontierChunk(ctx context.Context, userID, courseID string) (string, error)

	// WeakestChunks returns chunk IDs ordered by ascending mastery.
	WeakestChunks(ctx context.Context, userID, courseID string, limit int) ([]string, error)

	// StaleChunks returns chunk IDs whose last full review is older than
	// the cutoff, in random order.
	StaleChunks(ctx context.Context, userID, courseID string, cutoff time.Time, limit int) ([]string, error)

	// CourseAggregate computes course-wide standing.
	CourseAggregate(ctx context.Context, userID, courseID string, session int64) (*CourseStats, error)
}

// ProgressRepo is the append-only answer log.
type ProgressRepo interface {
	Append(ctx context.Context, e *ProgressEntry) error

	// UniqueSolvedCount counts distinct questions the learner has
	// answered in a chunk.
	UniqueSolvedCount(ctx context.Context, userID, courseID, chunkID string) (int, error)
}

// SessionRepo manages the per-course session counter.
type SessionRepo interface {
	// Bump increments the counter at most once per day and returns the
	// current session number. The increment is a single atomic
	// compare-and-set on the stored day.
	Bump(ctx context.Context, userID, courseID string, day string) (int64, error)

	// Current returns the counter without bumping; 0 when absent.
	Current(ctx context.Context, userID, courseID string) (int64, error)
}

// ChunkRepo manages chunk metadata.
type ChunkRepo interface {
	// Meta returns a chunk's metadata or ErrNotFound.
	Meta(ctx context.Context, courseID, chunkID string) (*ChunkMeta, error)

	// Upsert writes chunk metadata, replacing the concept map.
	Upsert(ctx context.Context, m *ChunkMeta) error
}

// ReviewWriter applies the state side of a submission. Status and mastery
// land in one transaction; a failure leaves both untouched.
type ReviewWriter interface {
	ApplyReview(ctx context.Context, s *UserQuestionStatus, m *ChunkMastery) error
}
