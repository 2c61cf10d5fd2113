package shelf

import (
	"math"

	"github.com/abhisek/revq/internal/scoring"
)

// TopicRefreshRatio is the chunk coverage at which a submission counts as
// a full refresh of the topic.
const TopicRefreshRatio = 0.8

// Input is everything Evaluate needs to judge one submission. Callers load
// the state; Evaluate stays pure.
type Input struct {
	// Current per-question state for this learner.
	Status       Status
	SuccessCount float64
	FailsCount   int

	// MasteryScore is the chunk's running score before this answer. The
	// delta applies to it, not to any per-question counter.
	MasteryScore int

	// NextReviewSession is the session this question was scheduled for,
	// nil when it wasn't scheduled. Answers that arrive sessions late pay
	// an overdue penalty.
	NextReviewSession *int64

	// The answer itself.
	Response    scoring.Response
	TimeSpentMs int64
	Timing      scoring.QuestionTiming

	// Chunk coverage. UniqueSolved counts distinct questions the learner
	// has answered in the chunk; ChunkQuestions is the chunk total.
	UniqueSolved   int
	ChunkQuestions int

	// Session is the course session number the answer lands in.
	Session int64

	// ExamMode answers come from mock exams and must not disturb the
	// review state.
	ExamMode bool
}

// Result is the verdict for one submission.
type Result struct {
	IsCorrect       bool
	ScoreDelta      int
	NewScore        int
	NewMastery      int
	NewStatus       Status
	TopicRefreshed  bool
	NewSuccessCount float64
	NewFailsCount   int

	// WeightedDelta is the raw delta weighted by cognitive level, solve
	// speed, and concept density. Logged per answer, never persisted into
	// the running score.
	WeightedDelta float64

	NextReviewSession *int64
}

// Evaluate judges a single submission. It performs no I/O and never fails:
// every combination of inputs has a defined outcome.
func Evaluate(in Input) Result {
	isCorrect := in.Response == scoring.ResponseCorrect

	if in.ExamMode {
		return Result{
			IsCorrect:       isCorrect,
			NewScore:        in.MasteryScore,
			NewMastery:      mastery(coverage(in), in.MasteryScore),
			NewStatus:       in.Status,
			NewSuccessCount: in.SuccessCount,
			NewFailsCount:   in.FailsCount,
		}
	}

	fast := scoring.IsFast(in.TimeSpentMs, in.Timing)

	newSuccess := NextSuccessCount(in.SuccessCount, isCorrect, fast)
	newFails := in.FailsCount + 1
	if isCorrect {
		newFails = 0
	}

	newStatus := StatusFor(newSuccess, isCorrect)

	delta, newScore := scoring.ScoreDelta(in.MasteryScore, in.Response, in.FailsCount, in.SuccessCount)
	newScore = applyOverduePenalty(newScore, in)

	weighted := scoring.AdvancedScore(
		float64(delta)*scoring.DensityCoefficient(in.Timing.ConceptCount),
		in.Timing.Bloom, in.TimeSpentMs)

	var nextReview *int64
	if newStatus == StatusPendingFollowup || newStatus == StatusArchived {
		n := NextReviewSession(newSuccess, in.Session)
		nextReview = &n
	}

	cov := coverage(in)

	return Result{
		IsCorrect:         isCorrect,
		ScoreDelta:        delta,
		NewScore:          newScore,
		NewMastery:        mastery(cov, newScore),
		NewStatus:         newStatus,
		TopicRefreshed:    in.ChunkQuestions > 0 && float64(in.UniqueSolved)/float64(in.ChunkQuestions) >= TopicRefreshRatio,
		NextReviewSession: nextReview,
		NewSuccessCount:   newSuccess,
		NewFailsCount:     newFails,
		WeightedDelta:     weighted,
	}
}

// applyOverduePenalty deducts points for answering a scheduled review late.
// Sessions advance at most once per day, so the session distance is a lower
// bound on days overdue.
func applyOverduePenalty(score int, in Input) int {
	if in.NextReviewSession == nil || in.Session <= *in.NextReviewSession {
		return score
	}
	score -= scoring.OverduePenalty(int(in.Session - *in.NextReviewSession))
	if score < scoring.MinScore {
		score = scoring.MinScore
	}
	return score
}

// coverage is the fraction of the chunk's questions the learner has seen,
// capped at 1. A chunk with no questions has zero coverage.
func coverage(in Input) float64 {
	if in.ChunkQuestions <= 0 {
		return 0
	}
	c := float64(in.UniqueSolved) / float64(in.ChunkQuestions)
	if c > 1 {
		c = 1
	}
	return c
}

// mastery blends chunk coverage (60%) with the question score (40%).
func mastery(coverage float64, score int) int {
	return int(math.Round(coverage*60 + float64(score)*0.4))
}
