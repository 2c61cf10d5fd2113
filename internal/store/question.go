package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/abhisek/revq/internal/scoring"
	"github.com/abhisek/revq/internal/shelf"
)

type questionRepo struct {
	db *sql.DB
}

const questionColumns = `q.id, q.course_id, q.chunk_id, q.text, q.options, q.correct_index,
	q.bloom, q.usage_type, q.parent_question_id, q.concepts, q.evidence, q.char_count, q.created_at`

func (r *questionRepo) Get(ctx context.Context, id string) (*Question, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+questionColumns+` FROM questions q WHERE q.id = ?`, id)

	q, err := scanQuestion(row)
	if err != nil {
		return nil, wrapErr("get question", err)
	}
	return q, nil
}

func (r *questionRepo) Insert(ctx context.Context, q *Question) error {
	options, err := json.Marshal(q.Options)
	if err != nil {
		return fmt.Errorf("marshal options: %w", err)
	}
	concepts, err := json.Marshal(q.Concepts)
	if err != nil {
		return fmt.Errorf("marshal concepts: %w", err)
	}

	createdAt := q.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO questions (id, course_id, chunk_id, text, options, correct_index,
			bloom, usage_type, parent_question_id, concepts, evidence, char_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		q.ID, q.CourseID, q.ChunkID, q.Text, string(options), q.CorrectIndex,
		string(q.Bloom), string(q.Usage), q.ParentQuestionID, string(concepts),
		q.Evidence, q.CharCount, createdAt)
	return wrapErr("insert question", err)
}

func (r *questionRepo) NewFollowups(ctx context.Context, userID, courseID string, limit int) ([]Question, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+questionColumns+` FROM questions q
		WHERE q.course_id = ?
		  AND q.parent_question_id IS NOT NULL
		  AND NOT EXISTS (
			SELECT 1 FROM user_question_status s
			WHERE s.user_id = ? AND s.question_id = q.id
		  )
		ORDER BY q.created_at ASC
		LIMIT ?`,
		courseID, userID, limit)
	if err != nil {
		return nil, wrapErr("new followups", err)
	}
	return collectQuestions(rows, "new followups")
}

func (r *questionRepo) Training(ctx context.Context, userID, courseID, chunkID string, limit int) ([]Question, error) {
	// Chunk questions the learner hasn't archived come first; the rest
	// of the course's active questions fill what remains.
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+questionColumns+` FROM questions q
		LEFT JOIN user_question_status s
			ON s.question_id = q.id AND s.user_id = ?
		WHERE q.course_id = ?
		  AND q.usage_type = ?
		  AND q.parent_question_id IS NULL
		  AND (s.status = ? OR s.status IS NULL)
		ORDER BY (q.chunk_id = ?) DESC, s.status IS NULL DESC, q.created_at ASC
		LIMIT ?`,
		userID, courseID, string(UsageTraining), string(shelf.StatusActive), chunkID, limit)
	if err != nil {
		return nil, wrapErr("training questions", err)
	}
	return collectQuestions(rows, "training questions")
}

func (r *questionRepo) ByConcept(ctx context.Context, courseID, concept string, limit int) ([]Question, error) {
	// Concepts are stored as a JSON array; match on the quoted element.
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+questionColumns+` FROM questions q
		WHERE q.course_id = ?
		  AND q.usage_type = ?
		  AND q.concepts LIKE '%' || ? || '%'
		ORDER BY q.created_at ASC
		LIMIT ?`,
		courseID, string(UsageTraining), `"`+concept+`"`, limit)
	if err != nil {
		return nil, wrapErr("questions by concept", err)
	}
	return collectQuestions(rows, "questions by concept")
}

func (r *questionRepo) ByIDs(ctx context.Context, ids []string) ([]Question, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := ""
	args := make([]any, 0, len(ids))
	for i, id := range ids {
		if i > 0 {
			placeholders += ", "
		}
		placeholders += "?"
		args = append(args, id)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+questionColumns+` FROM questions q WHERE q.id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, wrapErr("questions by ids", err)
	}
	qs, err := collectQuestions(rows, "questions by ids")
	if err != nil {
		return nil, err
	}

	// Preserve the caller's ordering.
	byID := make(map[string]Question, len(qs))
	for _, q := range qs {
		byID[q.ID] = q
	}
	ordered := make([]Question, 0, len(qs))
	for _, id := range ids {
		if q, ok := byID[id]; ok {
			ordered = append(ordered, q)
		}
	}
	return ordered, nil
}

func (r *questionRepo) ArchivedByChunks(ctx context.Context, userID, courseID string, chunkIDs []string, limit int) ([]Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions q
		JOIN user_question_status s
			ON s.question_id = q.id AND s.user_id = ?
		WHERE q.course_id = ? AND s.status = ?`
	args := []any{userID, courseID, string(shelf.StatusArchived)}

	if len(chunkIDs) > 0 {
		query += ` AND q.chunk_id IN (`
		for i, id := range chunkIDs {
			if i > 0 {
				query += ", "
			}
			query += "?"
			args = append(args, id)
		}
		query += `)`
	}

	query += ` ORDER BY s.updated_at ASC LIMIT ?`
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapErr("archived by chunks", err)
	}
	return collectQuestions(rows, "archived by chunks")
}

func (r *questionRepo) ChunkQuestionCount(ctx context.Context, courseID, chunkID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM questions
		WHERE course_id = ? AND chunk_id = ? AND usage_type = ? AND parent_question_id IS NULL`,
		courseID, chunkID, string(UsageTraining)).Scan(&n)
	if err != nil {
		return 0, wrapErr("chunk question count", err)
	}
	return n, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuestion(row rowScanner) (*Question, error) {
	var (
		q        Question
		options  string
		concepts string
		bloom    string
		usage    string
		parent   sql.NullString
	)
	err := row.Scan(&q.ID, &q.CourseID, &q.ChunkID, &q.Text, &options, &q.CorrectIndex,
		&bloom, &usage, &parent, &concepts, &q.Evidence, &q.CharCount, &q.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(options), &q.Options); err != nil {
		return nil, fmt.Errorf("unmarshal options: %w", err)
	}
	if err := json.Unmarshal([]byte(concepts), &q.Concepts); err != nil {
		return nil, fmt.Errorf("unmarshal concepts: %w", err)
	}
	q.Bloom = scoring.Bloom(bloom)
	q.Usage = UsageType(usage)
	if parent.Valid {
		q.ParentQuestionID = &parent.String
	}
	return &q, nil
}

func collectQuestions(rows *sql.Rows, op string) ([]Question, error) {
	defer rows.Close()

	var out []Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, wrapErr(op, err)
		}
		out = append(out, *q)
	}
	return out, wrapErr(op, rows.Err())
}
