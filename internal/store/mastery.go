package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/abhisek/revq/internal/shelf"
)

type masteryRepo struct {
	db *sql.DB
}

func (r *masteryRepo) Get(ctx context.Context, userID, courseID, chunkID string) (*ChunkMastery, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT user_id, course_id, chunk_id, mastery_score, total_questions_seen,
			last_full_review_at, last_reviewed_session, updated_at
		FROM chunk_mastery
		WHERE user_id = ? AND course_id = ? AND chunk_id = ?`,
		userID, courseID, chunkID)

	m, err := scanMastery(row)
	if err != nil {
		return nil, wrapErr("get mastery", err)
	}
	return m, nil
}

func (r *masteryRepo) Upsert(ctx context.Context, m *ChunkMastery) error {
	updatedAt := m.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}

	var lastFull any
	if m.LastFullReviewAt != nil {
		lastFull = *m.LastFullReviewAt
	}

	_, err := r.db.ExecContext(ctx,
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
		lastFull, m.LastReviewedSession, updatedAt)
	return wrapErr("upsert mastery", err)
}

func (r *masteryRepo) FrontierChunk(ctx context.Context, userID, courseID string) (string, error) {
	var chunkID string
	err := r.db.QueryRowContext(ctx,
		`SELECT chunk_id FROM chunk_mastery
		WHERE user_id = ? AND course_id = ?
		ORDER BY updated_at DESC
		LIMIT 1`,
		userID, courseID).Scan(&chunkID)
	if err != nil {
		return "", wrapErr("frontier chunk", err)
	}
	return chunkID, nil
}

func (r *masteryRepo) WeakestChunks(ctx context.Context, userID, courseID string, limit int) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT chunk_id FROM chunk_mastery
		WHERE user_id = ? AND course_id = ?
		ORDER BY mastery_score ASC
		LIMIT ?`,
		userID, courseID, limit)
	if err != nil {
		return nil, wrapErr("weakest chunks", err)
	}
	return collectIDs(rows, "weakest chunks")
}

func (r *masteryRepo) StaleChunks(ctx context.Context, userID, courseID string, cutoff time.Time, limit int) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT chunk_id FROM chunk_mastery
		WHERE user_id = ? AND course_id = ?
		  AND (last_full_review_at IS NULL OR last_full_review_at < ?)
		ORDER BY RANDOM()
		LIMIT ?`,
		userID, courseID, cutoff, limit)
	if err != nil {
		return nil, wrapErr("stale chunks", err)
	}
	return collectIDs(rows, "stale chunks")
}

func (r *masteryRepo) CourseAggregate(ctx context.Context, userID, courseID string, session int64) (*CourseStats, error) {
	stats := &CourseStats{StatusCounts: make(map[shelf.Status]int)}

	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(AVG(mastery_score), 0)
		FROM chunk_mastery WHERE user_id = ? AND course_id = ?`,
		userID, courseID).Scan(&stats.ChunkCount, &stats.AvgMastery)
	if err != nil {
		return nil, wrapErr("course aggregate", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM user_question_status
		WHERE user_id = ? AND course_id = ?
		GROUP BY status`,
		userID, courseID)
	if err != nil {
		return nil, wrapErr("course aggregate", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, wrapErr("course aggregate", err)
		}
		stats.StatusCounts[shelf.Status(status)] = n
		stats.TotalAnswered += n
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("course aggregate", err)
	}

	dueQuery := `SELECT COUNT(*) FROM user_question_status
		WHERE user_id = ? AND course_id = ? AND status = ?
		  AND next_review_session IS NOT NULL AND next_review_session <= ?`
	err = r.db.QueryRowContext(ctx, dueQuery,
		userID, courseID, string(shelf.StatusPendingFollowup), session).Scan(&stats.DueFollowups)
	if err != nil {
		return nil, wrapErr("course aggregate", err)
	}
	err = r.db.QueryRowContext(ctx, dueQuery,
		userID, courseID, string(shelf.StatusArchived), session).Scan(&stats.DueArchived)
	if err != nil {
		return nil, wrapErr("course aggregate", err)
	}

	return stats, nil
}

func scanMastery(row rowScanner) (*ChunkMastery, error) {
	var (
		m        ChunkMastery
		lastFull sql.NullTime
	)
	err := row.Scan(&m.UserID, &m.CourseID, &m.ChunkID, &m.MasteryScore,
		&m.TotalQuestionsSeen, &lastFull, &m.LastReviewedSession, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if lastFull.Valid {
		m.LastFullReviewAt = &lastFull.Time
	}
	return &m, nil
}

func collectIDs(rows *sql.Rows, op string) ([]string, error) {
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, wrapErr(op, err)
		}
		out = append(out, id)
	}
	return out, wrapErr(op, rows.Err())
}
