package store

import (
	"time"

	"github.com/abhisek/revq/internal/scoring"
	"github.com/abhisek/revq/internal/shelf"
)

// UsageType classifies what a question is for.
type UsageType string

const (
	// UsageTraining questions drive the regular review cycle.
	UsageTraining UsageType = "training"

	// UsageArchive questions are drill material outside the cycle.
	UsageArchive UsageType = "archive"

	// UsageExam questions belong to mock exams and never mutate
	// review state.
	UsageExam UsageType = "exam"
)

// Question is an immutable content row. Generated follow-ups carry the ID
// of the question they were spawned from in ParentQuestionID.
type Question struct {
	ID           string
	CourseID     string
	ChunkID      string
	Text         string
	Options      []string
	CorrectIndex int
	Bloom        scoring.Bloom
	Usage        UsageType

	ParentQuestionID *string

	// Concepts names the concepts this question tests.
	Concepts []string

	// Evidence is the source passage the question was written from. It
	// seeds follow-up generation.
	Evidence string

	CharCount int
	CreatedAt time.Time
}

// Timing returns the metadata the scoring package needs.
func (q *Question) Timing() scoring.QuestionTiming {
	return scoring.QuestionTiming{
		CharCount:    q.CharCount,
		ConceptCount: len(q.Concepts),
		Bloom:        q.Bloom,
	}
}

// UserQuestionStatus is the per-learner review state of one question.
type UserQuestionStatus struct {
	UserID     string
	QuestionID string
	CourseID   string
	ChunkID    string

	Status       shelf.Status
	SuccessCount float64
	FailsCount   int

	// NextReviewSession is set while the question waits on the follow-up
	// or archive shelf; nil for active questions.
	NextReviewSession *int64

	UpdatedAt time.Time
}

// ChunkMastery is the per-learner mastery aggregate for one chunk.
type ChunkMastery struct {
	UserID   string
	CourseID string
	ChunkID  string

	MasteryScore       int
	TotalQuestionsSeen int

	// LastFullReviewAt is only refreshed when a submission pushes chunk
	// coverage past the refresh threshold.
	LastFullReviewAt *time.Time

	LastReviewedSession int64
	UpdatedAt           time.Time
}

// ProgressEntry is one row of the append-only answer log.
type ProgressEntry struct {
	ID         string
	UserID     string
	CourseID   string
	ChunkID    string
	QuestionID string

	Response    scoring.Response
	IsCorrect   bool
	TimeSpentMs int64
	ScoreDelta  int

	// WeightedDelta is the delta weighted by cognitive level, solve speed,
	// and concept density.
	WeightedDelta float64

	Session int64

	CreatedAt time.Time
}

// Section is one entry of a chunk's concept map.
type Section struct {
	Title         string   `json:"title"`
	Concepts      []string `json:"concepts"`
	Prerequisites []string `json:"prerequisites"`
}

// ChunkMeta describes a chunk of course content.
type ChunkMeta struct {
	CourseID string
	ChunkID  string
	Title    string

	// Sections is the chunk's concept map, used for prerequisite lookup.
	Sections []Section
}

// CourseStats aggregates a learner's standing in a course.
type CourseStats struct {
	ChunkCount    int
	AvgMastery    float64
	StatusCounts  map[shelf.Status]int
	DueFollowups  int
	DueArchived   int
	TotalAnswered int
}
