package session

import (
	"context"
	"time"

	"github.com/abhisek/revq/internal/shelf"
	"github.com/abhisek/revq/internal/store"
)

// fakeSessions is an in-memory SessionRepo with injectable failures.
type fakeSessions struct {
	session  int64
	day      string
	bumps    int
	bumpErrs []error
}

func (f *fakeSessions) Bump(_ context.Context, _, _ string, day string) (int64, error) {
	f.bumps++
	if len(f.bumpErrs) > 0 {
		err := f.bumpErrs[0]
		f.bumpErrs = f.bumpErrs[1:]
		if err != nil {
			return 0, err
		}
	}
	if f.day < day {
		f.session++
		f.day = day
	}
	return f.session, nil
}

func (f *fakeSessions) Current(_ context.Context, _, _ string) (int64, error) {
	return f.session, nil
}

type fakeQuestions struct {
	byID     map[string]*store.Question
	inserted []*store.Question
	total    int
}

func (f *fakeQuestions) Get(_ context.Context, id string) (*store.Question, error) {
	q, ok := f.byID[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return q, nil
}

func (f *fakeQuestions) Insert(_ context.Context, q *store.Question) error {
	f.inserted = append(f.inserted, q)
	return nil
}

func (f *fakeQuestions) NewFollowups(_ context.Context, _, _ string, _ int) ([]store.Question, error) {
	return nil, nil
}

func (f *fakeQuestions) Training(_ context.Context, _, _, _ string, _ int) ([]store.Question, error) {
	return nil, nil
}

func (f *fakeQuestions) ByConcept(_ context.Context, _, _ string, _ int) ([]store.Question, error) {
	return nil, nil
}

func (f *fakeQuestions) ByIDs(_ context.Context, _ []string) ([]store.Question, error) {
	return nil, nil
}

func (f *fakeQuestions) ArchivedByChunks(_ context.Context, _, _ string, _ []string, _ int) ([]store.Question, error) {
	return nil, nil
}

func (f *fakeQuestions) ChunkQuestionCount(_ context.Context, _, _ string) (int, error) {
	return f.total, nil
}

type fakeStatuses struct {
	byKey map[string]*store.UserQuestionStatus
}

func statusKey(userID, questionID string) string { return userID + "/" + questionID }

func (f *fakeStatuses) Get(_ context.Context, userID, questionID string) (*store.UserQuestionStatus, error) {
	s, ok := f.byKey[statusKey(userID, questionID)]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeStatuses) Upsert(_ context.Context, s *store.UserQuestionStatus) error {
	if f.byKey == nil {
		f.byKey = make(map[string]*store.UserQuestionStatus)
	}
	f.byKey[statusKey(s.UserID, s.QuestionID)] = s
	return nil
}

func (f *fakeStatuses) DueByStatus(_ context.Context, _, _ string, _ shelf.Status, _ int64, _ int) ([]store.UserQuestionStatus, error) {
	return nil, nil
}

func (f *fakeStatuses) RecentFailures(_ context.Context, _, _ string, _ int) ([]store.UserQuestionStatus, error) {
	return nil, nil
}

type fakeMastery struct {
	byChunk  map[string]*store.ChunkMastery
	stats    *store.CourseStats
	statsErr error
}

func (f *fakeMastery) Get(_ context.Context, _, _, chunkID string) (*store.ChunkMastery, error) {
	m, ok := f.byChunk[chunkID]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (f *fakeMastery) Upsert(_ context.Context, m *store.ChunkMastery) error {
	if f.byChunk == nil {
		f.byChunk = make(map[string]*store.ChunkMastery)
	}
	f.byChunk[m.ChunkID] = m
	return nil
}

func (f *fakeMastery) FrontierChunk(_ context.Context, _, _ string) (string, error) {
	return "", store.ErrNotFound
}

func (f *fakeMastery) WeakestChunks(_ context.Context, _, _ string, _ int) ([]string, error) {
	return nil, nil
}

func (f *fakeMastery) StaleChunks(_ context.Context, _, _ string, _ time.Time, _ int) ([]string, error) {
	return nil, nil
}

func (f *fakeMastery) CourseAggregate(_ context.Context, _, _ string, _ int64) (*store.CourseStats, error) {
	if f.statsErr != nil {
		return nil, f.statsErr
	}
	if f.stats != nil {
		return f.stats, nil
	}
	return &store.CourseStats{}, nil
}

type fakeProgress struct {
	entries []*store.ProgressEntry
	unique  int
}

func (f *fakeProgress) Append(_ context.Context, e *store.ProgressEntry) error {
	f.entries = append(f.entries, e)
	return nil
}

func (f *fakeProgress) UniqueSolvedCount(_ context.Context, _, _, _ string) (int, error) {
	return f.unique, nil
}

// fakeWriter records applied reviews and can fail the first N attempts.
type fakeWriter struct {
	statuses  []*store.UserQuestionStatus
	masteries []*store.ChunkMastery
	failErrs  []error
	calls     int
}

func (f *fakeWriter) ApplyReview(_ context.Context, s *store.UserQuestionStatus, m *store.ChunkMastery) error {
	f.calls++
	if len(f.failErrs) > 0 {
		err := f.failErrs[0]
		f.failErrs = f.failErrs[1:]
		return err
	}
	f.statuses = append(f.statuses, s)
	f.masteries = append(f.masteries, m)
	return nil
}

type fakeGenerator struct {
	calls chan *store.Question
}

func (f *fakeGenerator) Generate(_ context.Context, q *store.Question) (*store.Question, error) {
	f.calls <- q
	return q, nil
}
