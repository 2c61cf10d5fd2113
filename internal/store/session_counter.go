package store

import (
	"context"
	"database/sql"
)

type sessionRepo struct {
	db *sql.DB
}

// Bump advances the session counter at most once for the given day. The
// whole increment is a single statement, so concurrent bumps for the same
// learner and course collapse into one: the conflict branch only fires when
// the stored day is older than the one being recorded.
func (r *sessionRepo) Bump(ctx context.Context, userID, courseID string, day string) (int64, error) {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO session_counters (user_id, course_id, session, last_bump_day)
		VALUES (?, ?, 1, ?)
		ON CONFLICT (user_id, course_id) DO UPDATE SET
			session = session_counters.session + 1,
			last_bump_day = excluded.last_bump_day
		WHERE session_counters.last_bump_day < excluded.last_bump_day`,
		userID, courseID, day)
	if err != nil {
		return 0, wrapErr("bump session", err)
	}

	return r.Current(ctx, userID, courseID)
}

func (r *sessionRepo) Current(ctx context.Context, userID, courseID string) (int64, error) {
	var session int64
	err := r.db.QueryRowContext(ctx,
		`SELECT session FROM session_counters WHERE user_id = ? AND course_id = ?`,
		userID, courseID).Scan(&session)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, wrapErr("current session", err)
	}
	return session, nil
}
