package store

import (
	"database/sql"
	"fmt"
)

// schema is applied on every Open. Statements are idempotent; adding a
// table here is the migration story for a single-user local database.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS questions (
		id                 TEXT PRIMARY KEY,
		course_id          TEXT NOT NULL,
		chunk_id           TEXT NOT NULL,
		text               TEXT NOT NULL,
		options            TEXT NOT NULL,
		correct_index      INTEGER NOT NULL,
		bloom              TEXT NOT NULL,
		usage_type         TEXT NOT NULL,
		parent_question_id TEXT,
		concepts           TEXT NOT NULL DEFAULT '[]',
		evidence           TEXT NOT NULL DEFAULT '',
		char_count         INTEGER NOT NULL DEFAULT 0,
		created_at         TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_questions_chunk ON questions (course_id, chunk_id)`,
	`CREATE INDEX IF NOT EXISTS idx_questions_parent ON questions (parent_question_id)`,

	`CREATE TABLE IF NOT EXISTS user_question_status (
		user_id              TEXT NOT NULL,
		question_id          TEXT NOT NULL,
		course_id            TEXT NOT NULL,
		chunk_id             TEXT NOT NULL,
		status               TEXT NOT NULL,
		success_count        REAL NOT NULL DEFAULT 0,
		fails_count          INTEGER NOT NULL DEFAULT 0,
		next_review_session  INTEGER,
		updated_at           TIMESTAMP NOT NULL,
		PRIMARY KEY (user_id, question_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_status_due ON user_question_status (user_id, course_id, status, next_review_session)`,

	`CREATE TABLE IF NOT EXISTS chunk_mastery (
		user_id               TEXT NOT NULL,
		course_id             TEXT NOT NULL,
		chunk_id              TEXT NOT NULL,
		mastery_score         INTEGER NOT NULL DEFAULT 0,
		total_questions_seen  INTEGER NOT NULL DEFAULT 0,
		last_full_review_at   TIMESTAMP,
		last_reviewed_session INTEGER NOT NULL DEFAULT 0,
		updated_at            TIMESTAMP NOT NULL,
		PRIMARY KEY (user_id, course_id, chunk_id)
	)`,

	`CREATE TABLE IF NOT EXISTS progress_log (
		id             TEXT PRIMARY KEY,
		user_id        TEXT NOT NULL,
		course_id      TEXT NOT NULL,
		chunk_id       TEXT NOT NULL,
		question_id    TEXT NOT NULL,
		response       TEXT NOT NULL,
		is_correct     INTEGER NOT NULL,
		time_spent_ms  INTEGER NOT NULL,
		score_delta    INTEGER NOT NULL,
		weighted_delta REAL NOT NULL DEFAULT 0,
		session        INTEGER NOT NULL,
		created_at     TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_progress_chunk ON progress_log (user_id, course_id, chunk_id)`,

	`CREATE TABLE IF NOT EXISTS session_counters (
		user_id       TEXT NOT NULL,
		course_id     TEXT NOT NULL,
		session       INTEGER NOT NULL DEFAULT 0,
		last_bump_day TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (user_id, course_id)
	)`,

	`CREATE TABLE IF NOT EXISTS chunks (
		course_id TEXT NOT NULL,
		chunk_id  TEXT NOT NULL,
		title     TEXT NOT NULL DEFAULT '',
		sections  TEXT NOT NULL DEFAULT '[]',
		PRIMARY KEY (course_id, chunk_id)
	)`,
}

func migrate(db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
