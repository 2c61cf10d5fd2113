package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type progressRepo struct {
	db *sql.DB
}

func (r *progressRepo) Append(ctx context.Context, e *ProgressEntry) error {
	id := e.ID
	if id == "" {
		id = uuid.NewString()
	}
	createdAt := e.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO progress_log
			(id, user_id, course_id, chunk_id, question_id, response,
			 is_correct, time_spent_ms, score_delta, weighted_delta,
			 session, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, e.UserID, e.CourseID, e.ChunkID, e.QuestionID, string(e.Response),
		e.IsCorrect, e.TimeSpentMs, e.ScoreDelta, e.WeightedDelta, e.Session, createdAt)
	return wrapErr("append progress", err)
}

func (r *progressRepo) UniqueSolvedCount(ctx context.Context, userID, courseID, chunkID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT question_id) FROM progress_log
		WHERE user_id = ? AND course_id = ? AND chunk_id = ?`,
		userID, courseID, chunkID).Scan(&n)
	if err != nil {
		return 0, wrapErr("unique solved count", err)
	}
	return n, nil
}
