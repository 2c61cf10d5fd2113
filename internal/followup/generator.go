package followup

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/revq/internal/llm"
	"github.com/abhisek/revq/internal/scoring"
	"github.com/abhisek/revq/internal/store"
)

// Generator produces a remedial follow-up for a question the learner
// missed.
type Generator interface {
	// Generate builds and persists one follow-up question. The returned
	// question is already stored.
	Generate(ctx context.Context, src *store.Question) (*store.Question, error)
}

// Inserter is the slice of the question store the generator writes to.
type Inserter interface {
	Insert(ctx context.Context, q *store.Question) error
}

// LLMGenerator implements Generator using the LLM provider.
type LLMGenerator struct {
	provider  llm.Provider
	questions Inserter
	now       func() time.Time
}

// New creates a new LLMGenerator.
func New(provider llm.Provider, questions Inserter) *LLMGenerator {
	return &LLMGenerator{provider: provider, questions: questions, now: time.Now}
}

// questionOutput is the raw LLM response before validation.
type questionOutput struct {
	Text         string   `json:"text"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Concepts     []string `json:"concepts"`
}

// Generate asks the provider for an easier variant of the missed
// question, validates it, and inserts it as a training question linked
// to the source via ParentQuestionID.
func (g *LLMGenerator) Generate(ctx context.Context, src *store.Question) (*store.Question, error) {
	req := llm.Request{
		System:      systemPrompt,
		Prompt:      buildPrompt(src),
		Schema:      FollowupSchema,
		MaxTokens:   1024,
		Temperature: 0.7,
	}

	out, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw questionOutput
	if err := json.Unmarshal(out, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}
	if err := validateOutput(&raw); err != nil {
		return nil, err
	}

	concepts := raw.Concepts
	if len(concepts) == 0 {
		concepts = src.Concepts
	}

	parentID := src.ID
	q := &store.Question{
		ID:               uuid.NewString(),
		CourseID:         src.CourseID,
		ChunkID:          src.ChunkID,
		Text:             raw.Text,
		Options:          raw.Options,
		CorrectIndex:     raw.CorrectIndex,
		Bloom:            easierBloom(src.Bloom),
		Usage:            store.UsageTraining,
		ParentQuestionID: &parentID,
		Concepts:         concepts,
		Evidence:         src.Evidence,
		CharCount:        len([]rune(raw.Text)),
		CreatedAt:        g.now().UTC(),
	}

	if err := g.questions.Insert(ctx, q); err != nil {
		return nil, fmt.Errorf("failed to store follow-up: %w", err)
	}

	return q, nil
}

// validateOutput rejects responses the schema alone cannot rule out.
func validateOutput(raw *questionOutput) error {
	if strings.TrimSpace(raw.Text) == "" {
		return fmt.Errorf("follow-up has empty question text")
	}
	if len(raw.Options) != optionCount {
		return fmt.Errorf("follow-up has %d options, want %d", len(raw.Options), optionCount)
	}
	if raw.CorrectIndex < 0 || raw.CorrectIndex >= len(raw.Options) {
		return fmt.Errorf("follow-up correct_index %d out of range", raw.CorrectIndex)
	}
	return nil
}

// easierBloom drops the cognitive level by one step so the follow-up
// rebuilds the missed idea before the learner retries the original.
func easierBloom(b scoring.Bloom) scoring.Bloom {
	switch b {
	case scoring.BloomAnalysis:
		return scoring.BloomApplication
	case scoring.BloomApplication:
		return scoring.BloomKnowledge
	default:
		return scoring.BloomKnowledge
	}
}
