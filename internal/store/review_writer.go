package store

import (
	"context"
	"database/sql"
	"time"
)

type reviewWriter struct {
	db *sql.DB
}

// ApplyReview writes the status and mastery rows of one submission inside
// a transaction. Either both land or neither does.
func (w *reviewWriter) ApplyReview(ctx context.Context, s *UserQuestionStatus, m *ChunkMastery) error {
	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return wrapErr("apply review", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()

	var next any
	if s.NextReviewSession != nil {
		next = *s.NextReviewSession
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO user_question_status
			(user_id, question_id, course_id, chunk_id, status,
			 success_count, fails_count, next_review_session, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, question_id) DO UPDATE SET
			status = excluded.status,
			success_count = excluded.success_count,
			fails_count = excluded.fails_count,
			next_review_session = excluded.next_review_session,
			updated_at = excluded.updated_at`,
		s.UserID, s.QuestionID, s.CourseID, s.ChunkID, string(s.Status),
		s.SuccessCount, s.FailsCount, next, now)
	if err != nil {
		return wrapErr("apply review: status", err)
	}

	var lastFull any
	if m.LastFullReviewAt != nil {
		lastFull = *m.LastFullReviewAt
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO chunk_mastery
			(user_id, course_id, chunk_id, mastery_score, total_questions_seen,
			 last_full_review_at, last_reviewed_session, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, course_id, chunk_id) DO UPDATE SET
			mastery_score = excluded.mastery_score,
			total_questions_seen = excluded.total_questions_seen,
			last_full_review_at = excluded.last_full_review_at,
			last_reviewed_session = excluded.last_reviewed_session,
			updated_at = excluded.updated_at`,
		m.UserID, m.CourseID, m.ChunkID, m.MasteryScore, m.TotalQuestionsSeen,
		lastFull, m.LastReviewedSession, now)
	if err != nil {
		return wrapErr("apply review: mastery", err)
	}

	if err := tx.Commit(); err != nil {
		return wrapErr("apply review: commit", err)
	}
	return nil
}
