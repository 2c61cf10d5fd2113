// Package prereq finds the concepts a struggling learner is missing and
// picks remediation questions for them. A failed concept is never drilled
// directly; its declared prerequisites are.
package prereq

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/revq/internal/scoring"
	"github.com/abhisek/revq/internal/store"
)

// Reasons attached to remediation candidates. Scaffolding means the
// learner is failing repeatedly and gets easier, recall-level questions;
// gap fix is a single-miss patch at any level.
const (
	ReasonScaffolding = "Scaffolding"
	ReasonGapFix      = "Gap Fix"
)

// MaxPerConcept bounds how many questions one failed concept may
// contribute.
const MaxPerConcept = 3

// scaffoldFailThreshold is the consecutive-fail count past which candidates
// are narrowed to recall-level questions.
const scaffoldFailThreshold = 1

// Extract returns the prerequisite concepts of the concept-map section
// whose title matches target. Matching ignores case and surrounding
// whitespace. No match means no prerequisites, never an error.
func Extract(sections []store.Section, target string) []string {
	want := strings.ToLower(strings.TrimSpace(target))
	if want == "" {
		return nil
	}

	for _, sec := range sections {
		if strings.ToLower(strings.TrimSpace(sec.Title)) == want {
			return append([]string(nil), sec.Prerequisites...)
		}
	}
	return nil
}

// QuestionSource is the question lookup the engine needs.
type QuestionSource interface {
	ByConcept(ctx context.Context, courseID, concept string, limit int) ([]store.Question, error)
}

// ChunkSource resolves chunk concept maps.
type ChunkSource interface {
	Meta(ctx context.Context, courseID, chunkID string) (*store.ChunkMeta, error)
}

// Failure is one missed concept the learner needs patched.
type Failure struct {
	// ChunkID owns the concept map that declares the prerequisites.
	ChunkID string

	// Concept is the concept the learner failed.
	Concept string

	// ConsecutiveFails on the question that recorded the failure.
	ConsecutiveFails int
}

// Request describes one remediation lookup.
type Request struct {
	CourseID string

	// Failures in priority order. Duplicate concepts keep their first
	// position.
	Failures []Failure
}

// Candidate is a remediation question with the reason it was chosen.
type Candidate struct {
	Question store.Question
	Reason   string
}

// Engine selects remediation questions for failed concepts.
type Engine struct {
	questions QuestionSource
	chunks    ChunkSource
}

// NewEngine creates an Engine.
func NewEngine(questions QuestionSource, chunks ChunkSource) *Engine {
	return &Engine{questions: questions, chunks: chunks}
}

// Questions resolves each failed concept's prerequisites through its
// chunk's concept map and returns up to MaxPerConcept questions per failed
// concept, same course only. When a failure is a repeat and any
// recall-level prerequisite question exists, only those are kept for it.
func (e *Engine) Questions(ctx context.Context, req Request) ([]Candidate, error) {
	seenConcepts := make(map[string]bool)
	seenQuestions := make(map[string]bool)

	var out []Candidate
	for _, f := range req.Failures {
		key := strings.ToLower(strings.TrimSpace(f.Concept))
		if key == "" || seenConcepts[key] {
			continue
		}
		seenConcepts[key] = true

		candidates, err := e.remediate(ctx, req.CourseID, f)
		if err != nil {
			return nil, err
		}

		reason := ReasonGapFix
		if f.ConsecutiveFails > scaffoldFailThreshold {
			if recall := recallOnly(candidates); len(recall) > 0 {
				candidates = recall
				reason = ReasonScaffolding
			}
		}

		added := 0
		for _, q := range candidates {
			if added >= MaxPerConcept {
				break
			}
			if seenQuestions[q.ID] {
				continue
			}
			seenQuestions[q.ID] = true
			out = append(out, Candidate{Question: q, Reason: reason})
			added++
		}
	}
	return out, nil
}

// remediate gathers candidate questions testing the prerequisites of one
// failed concept. A chunk without a concept map contributes nothing.
func (e *Engine) remediate(ctx context.Context, courseID string, f Failure) ([]store.Question, error) {
	meta, err := e.chunks.Meta(ctx, courseID, f.ChunkID)
	if store.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("concept map for chunk %q: %w", f.ChunkID, err)
	}

	prereqs := Extract(meta.Sections, f.Concept)
	if len(prereqs) == 0 {
		return nil, nil
	}

	var candidates []store.Question
	for _, p := range prereqs {
		qs, err := e.questions.ByConcept(ctx, courseID, p, MaxPerConcept)
		if err != nil {
			return nil, fmt.Errorf("questions for prerequisite %q: %w", p, err)
		}
		candidates = append(candidates, qs...)
	}
	return candidates, nil
}

func recallOnly(qs []store.Question) []store.Question {
	var out []store.Question
	for _, q := range qs {
		if q.Bloom == scoring.BloomKnowledge {
			out = append(out, q)
		}
	}
	return out
}
