// Package ingest loads course content files into the store. A file holds
// one course: its chunks, their concept maps, and their questions.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/revq/internal/scoring"
	"github.com/abhisek/revq/internal/store"
)

type courseFile struct {
	CourseID string      `json:"course_id"`
	Chunks   []chunkFile `json:"chunks"`
}

type chunkFile struct {
	ChunkID   string          `json:"chunk_id"`
	Title     string          `json:"title"`
	Sections  []store.Section `json:"sections"`
	Questions []questionFile  `json:"questions"`
}

type questionFile struct {
	ID           string   `json:"id"`
	Text         string   `json:"text"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Bloom        string   `json:"bloom"`
	Usage        string   `json:"usage"`
	Concepts     []string `json:"concepts"`
	Evidence     string   `json:"evidence"`
	CharCount    int      `json:"char_count"`
}

// Summary reports what an import wrote.
type Summary struct {
	CourseID  string
	Chunks    int
	Questions int
}

// Loader writes validated course files into the store.
type Loader struct {
	chunks    store.ChunkRepo
	questions store.QuestionRepo
	now       func() time.Time
}

// NewLoader creates a Loader.
func NewLoader(chunks store.ChunkRepo, questions store.QuestionRepo) *Loader {
	return &Loader{chunks: chunks, questions: questions, now: time.Now}
}

// Load validates and imports one course file. Chunk metadata is replaced;
// questions with an already-imported ID are skipped, not rewritten.
func (l *Loader) Load(ctx context.Context, r io.Reader) (*Summary, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read course file: %w", err)
	}
	if err := validate(raw); err != nil {
		return nil, err
	}

	var file courseFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("decode course file: %w", err)
	}

	sum := &Summary{CourseID: file.CourseID}
	for _, ch := range file.Chunks {
		if err := l.loadChunk(ctx, file.CourseID, ch, sum); err != nil {
			return nil, err
		}
	}
	return sum, nil
}

func (l *Loader) loadChunk(ctx context.Context, courseID string, ch chunkFile, sum *Summary) error {
	for _, q := range ch.Questions {
		if q.CorrectIndex >= len(q.Options) {
			return fmt.Errorf("chunk %s: question %q: correct_index %d out of range", ch.ChunkID, q.Text, q.CorrectIndex)
		}
	}

	meta := &store.ChunkMeta{
		CourseID: courseID,
		ChunkID:  ch.ChunkID,
		Title:    ch.Title,
		Sections: ch.Sections,
	}
	if err := l.chunks.Upsert(ctx, meta); err != nil {
		return fmt.Errorf("chunk %s: %w", ch.ChunkID, err)
	}
	sum.Chunks++

	for _, qf := range ch.Questions {
		q := l.toQuestion(courseID, ch.ChunkID, qf)
		if q.ID != "" {
			if _, err := l.questions.Get(ctx, q.ID); err == nil {
				continue
			} else if !store.IsNotFound(err) {
				return fmt.Errorf("chunk %s: %w", ch.ChunkID, err)
			}
		} else {
			q.ID = uuid.NewString()
		}
		if err := l.questions.Insert(ctx, q); err != nil {
			return fmt.Errorf("chunk %s: %w", ch.ChunkID, err)
		}
		sum.Questions++
	}
	return nil
}

func (l *Loader) toQuestion(courseID, chunkID string, qf questionFile) *store.Question {
	usage := store.UsageType(qf.Usage)
	if qf.Usage == "" {
		usage = store.UsageTraining
	}
	charCount := qf.CharCount
	if charCount == 0 {
		charCount = len([]rune(qf.Text))
	}
	return &store.Question{
		ID:           qf.ID,
		CourseID:     courseID,
		ChunkID:      chunkID,
		Text:         qf.Text,
		Options:      qf.Options,
		CorrectIndex: qf.CorrectIndex,
		Bloom:        scoring.Bloom(qf.Bloom),
		Usage:        usage,
		Concepts:     qf.Concepts,
		Evidence:     qf.Evidence,
		CharCount:    charCount,
		CreatedAt:    l.now().UTC(),
	}
}
