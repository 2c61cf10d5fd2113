package session

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/revq/internal/scoring"
	"github.com/abhisek/revq/internal/shelf"
	"github.com/abhisek/revq/internal/store"
)

// SubmitRequest is one answered question.
type SubmitRequest struct {
	UserID     string
	QuestionID string

	Response    scoring.Response
	TimeSpentMs int64
}

// SubmitResult is the recorded outcome.
type SubmitResult struct {
	Verdict  shelf.Result
	Question *store.Question
	Session  int64
}

// Submit evaluates and records one answer. The status and mastery writes
// are transactional; the progress log write is best-effort; follow-up
// generation runs in the background and can never fail the submission.
func (m *Manager) Submit(ctx context.Context, req SubmitRequest) (*SubmitResult, error) {
	q, err := m.cfg.Questions.Get(ctx, req.QuestionID)
	if err != nil {
		return nil, fmt.Errorf("load question: %w", err)
	}

	session, err := m.cfg.Sessions.Current(ctx, req.UserID, q.CourseID)
	if err != nil {
		return nil, fmt.Errorf("current session: %w", err)
	}

	st, err := m.cfg.Statuses.Get(ctx, req.UserID, req.QuestionID)
	firstAnswer := false
	if store.IsNotFound(err) {
		firstAnswer = true
		st = &store.UserQuestionStatus{
			UserID:     req.UserID,
			QuestionID: q.ID,
			CourseID:   q.CourseID,
			ChunkID:    q.ChunkID,
			Status:     shelf.StatusActive,
		}
	} else if err != nil {
		return nil, fmt.Errorf("load status: %w", err)
	}

	total, err := m.cfg.Questions.ChunkQuestionCount(ctx, q.CourseID, q.ChunkID)
	if err != nil {
		return nil, fmt.Errorf("chunk question count: %w", err)
	}
	unique, err := m.cfg.Progress.UniqueSolvedCount(ctx, req.UserID, q.CourseID, q.ChunkID)
	if err != nil {
		return nil, fmt.Errorf("unique solved count: %w", err)
	}
	// The log is written after evaluation, so a first answer isn't
	// counted yet.
	if firstAnswer {
		unique++
	}

	cm, err := m.cfg.Mastery.Get(ctx, req.UserID, q.CourseID, q.ChunkID)
	if store.IsNotFound(err) {
		cm = &store.ChunkMastery{UserID: req.UserID, CourseID: q.CourseID, ChunkID: q.ChunkID}
	} else if err != nil {
		return nil, fmt.Errorf("load mastery: %w", err)
	}

	verdict := shelf.Evaluate(shelf.Input{
		Status:            st.Status,
		MasteryScore:      cm.MasteryScore,
		SuccessCount:      st.SuccessCount,
		FailsCount:        st.FailsCount,
		NextReviewSession: st.NextReviewSession,
		Response:          req.Response,
		TimeSpentMs:       req.TimeSpentMs,
		Timing:            q.Timing(),
		UniqueSolved:      unique,
		ChunkQuestions:    total,
		Session:           session,
		ExamMode:          q.Usage == store.UsageExam,
	})

	entry := &store.ProgressEntry{
		UserID:        req.UserID,
		CourseID:      q.CourseID,
		ChunkID:       q.ChunkID,
		QuestionID:    q.ID,
		Response:      req.Response,
		IsCorrect:     verdict.IsCorrect,
		TimeSpentMs:   req.TimeSpentMs,
		ScoreDelta:    verdict.ScoreDelta,
		WeightedDelta: verdict.WeightedDelta,
		Session:       session,
	}

	if q.Usage == store.UsageExam {
		// Exam answers leave review state alone; only the log hears
		// about them.
		_ = m.cfg.Progress.Append(ctx, entry)
		return &SubmitResult{Verdict: verdict, Question: q, Session: session}, nil
	}

	newStatus := &store.UserQuestionStatus{
		UserID:            req.UserID,
		QuestionID:        q.ID,
		CourseID:          q.CourseID,
		ChunkID:           q.ChunkID,
		Status:            verdict.NewStatus,
		SuccessCount:      verdict.NewSuccessCount,
		FailsCount:        verdict.NewFailsCount,
		NextReviewSession: verdict.NextReviewSession,
	}

	m.foldMastery(cm, verdict, session)

	err = m.withRetry(ctx, func() error {
		return m.cfg.Writer.ApplyReview(ctx, newStatus, cm)
	})
	if err != nil {
		return nil, fmt.Errorf("apply review: %w", err)
	}

	// Best-effort: a lost log row costs one coverage point, not the
	// submission.
	_ = m.cfg.Progress.Append(ctx, entry)

	if !verdict.IsCorrect && m.cfg.Followups != nil {
		m.spawnFollowup(ctx, q)
	}

	return &SubmitResult{Verdict: verdict, Question: q, Session: session}, nil
}

// foldMastery folds the verdict into the chunk's mastery row.
func (m *Manager) foldMastery(cm *store.ChunkMastery, verdict shelf.Result, session int64) {
	cm.MasteryScore = verdict.NewMastery
	cm.TotalQuestionsSeen++
	cm.LastReviewedSession = session
	if verdict.TopicRefreshed {
		now := m.now().UTC()
		cm.LastFullReviewAt = &now
	}
}

// spawnFollowup generates a follow-up question in the background. The
// submission's context may be gone by the time generation finishes, so the
// work detaches from it.
func (m *Manager) spawnFollowup(ctx context.Context, q *store.Question) {
	bg := context.WithoutCancel(ctx)
	go func() {
		genCtx, cancel := context.WithTimeout(bg, 2*time.Minute)
		defer cancel()
		_, _ = m.cfg.Followups.Generate(genCtx, q)
	}()
}
