package store

import (
	"context"
	"fmt"
)

// ResetLearner deletes all review state one learner has in a course:
// statuses, mastery, the progress log, and the session counter. Question
// content is left alone.
func (s *Store) ResetLearner(ctx context.Context, userID, courseID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return wrapErr("reset learner", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"user_question_status", "chunk_mastery", "progress_log", "session_counters"} {
		q := fmt.Sprintf("DELETE FROM %s WHERE user_id = ? AND course_id = ?", table)
		if _, err := tx.ExecContext(ctx, q, userID, courseID); err != nil {
			return wrapErr("reset learner", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return wrapErr("reset learner", err)
	}
	return nil
}
