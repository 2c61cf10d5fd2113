package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

type chunkRepo struct {
	db *sql.DB
}

func (r *chunkRepo) Meta(ctx context.Context, courseID, chunkID string) (*ChunkMeta, error) {
	var (
		m        ChunkMeta
		sections string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT course_id, chunk_id, title, sections FROM chunks
		WHERE course_id = ? AND chunk_id = ?`,
		courseID, chunkID).Scan(&m.CourseID, &m.ChunkID, &m.Title, &sections)
	if err != nil {
		return nil, wrapErr("chunk meta", err)
	}

	if err := json.Unmarshal([]byte(sections), &m.Sections); err != nil {
		return nil, fmt.Errorf("unmarshal sections: %w", err)
	}
	return &m, nil
}

func (r *chunkRepo) Upsert(ctx context.Context, m *ChunkMeta) error {
	sections, err := json.Marshal(m.Sections)
	if err != nil {
		return fmt.Errorf("marshal sections: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO chunks (course_id, chunk_id, title, sections)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (course_id, chunk_id) DO UPDATE SET
			title = excluded.title,
			sections = excluded.sections`,
		m.CourseID, m.ChunkID, m.Title, string(sections))
	return wrapErr("upsert chunk", err)
}
