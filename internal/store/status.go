package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/abhisek/revq/internal/shelf"
)

type statusRepo struct {
	db *sql.DB
}

func (r *statusRepo) Get(ctx context.Context, userID, questionID string) (*UserQuestionStatus, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT user_id, question_id, course_id, chunk_id, status,
			success_count, fails_count, next_review_session, updated_at
		FROM user_question_status
		WHERE user_id = ? AND question_id = ?`,
		userID, questionID)

	s, err := scanStatus(row)
	if err != nil {
		return nil, wrapErr("get status", err)
	}
	return s, nil
}

func (r *statusRepo) Upsert(ctx context.Context, s *UserQuestionStatus) error {
	updatedAt := s.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}

	var next any
	if s.NextReviewSession != nil {
		next = *s.NextReviewSession
	}

	_, err := r.db.ExecContext(ctx,
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
		s.SuccessCount, s.FailsCount, next, updatedAt)
	return wrapErr("upsert status", err)
}

func (r *statusRepo) DueByStatus(ctx context.Context, userID, courseID string, status shelf.Status, maxSession int64, limit int) ([]UserQuestionStatus, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT user_id, question_id, course_id, chunk_id, status,
			success_count, fails_count, next_review_session, updated_at
		FROM user_question_status
		WHERE user_id = ? AND course_id = ? AND status = ?
		  AND next_review_session IS NOT NULL AND next_review_session <= ?
		ORDER BY updated_at ASC
		LIMIT ?`,
		userID, courseID, string(status), maxSession, limit)
	if err != nil {
		return nil, wrapErr("due by status", err)
	}
	defer rows.Close()

	var out []UserQuestionStatus
	for rows.Next() {
		s, err := scanStatus(rows)
		if err != nil {
			return nil, wrapErr("due by status", err)
		}
		out = append(out, *s)
	}
	return out, wrapErr("due by status", rows.Err())
}

func (r *statusRepo) RecentFailures(ctx context.Context, userID, courseID string, limit int) ([]UserQuestionStatus, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT user_id, question_id, course_id, chunk_id, status,
			success_count, fails_count, next_review_session, updated_at
		FROM user_question_status
		WHERE user_id = ? AND course_id = ? AND fails_count > 0
		ORDER BY updated_at DESC
		LIMIT ?`,
		userID, courseID, limit)
	if err != nil {
		return nil, wrapErr("recent failures", err)
	}
	defer rows.Close()

	var out []UserQuestionStatus
	for rows.Next() {
		s, err := scanStatus(rows)
		if err != nil {
			return nil, wrapErr("recent failures", err)
		}
		out = append(out, *s)
	}
	return out, wrapErr("recent failures", rows.Err())
}

func scanStatus(row rowScanner) (*UserQuestionStatus, error) {
	var (
		s      UserQuestionStatus
		status string
		next   sql.NullInt64
	)
	err := row.Scan(&s.UserID, &s.QuestionID, &s.CourseID, &s.ChunkID, &status,
		&s.SuccessCount, &s.FailsCount, &next, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	s.Status = shelf.Status(status)
	if next.Valid {
		s.NextReviewSession = &next.Int64
	}
	return &s, nil
}
