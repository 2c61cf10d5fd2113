package queue

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/abhisek/revq/internal/prereq"
	"github.com/abhisek/revq/internal/shelf"
	"github.com/abhisek/revq/internal/store"
)

// mockSource serves canned pools.
type mockSource struct {
	dueFollowups []store.UserQuestionStatus
	dueArchived  []store.UserQuestionStatus
	failures     []store.UserQuestionStatus
	newFollowups []store.Question
	training     []store.Question
	archived     []store.Question
	frontier     string
	weakest      []string
	stale        []string
	questions    map[string]store.Question
}

func (m *mockSource) DueByStatus(_ context.Context, _, _ string, status shelf.Status, _ int64, limit int) ([]store.UserQuestionStatus, error) {
	var pool []store.UserQuestionStatus
	switch status {
	case shelf.StatusPendingFollowup:
		pool = m.dueFollowups
	case shelf.StatusArchived:
		pool = m.dueArchived
	}
	if len(pool) > limit {
		pool = pool[:limit]
	}
	return pool, nil
}

func (m *mockSource) RecentFailures(_ context.Context, _, _ string, limit int) ([]store.UserQuestionStatus, error) {
	out := m.failures
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockSource) ByIDs(_ context.Context, ids []string) ([]store.Question, error) {
	var out []store.Question
	for _, id := range ids {
		if q, ok := m.questions[id]; ok {
			out = append(out, q)
		}
	}
	return out, nil
}

func (m *mockSource) NewFollowups(_ context.Context, _, _ string, limit int) ([]store.Question, error) {
	out := m.newFollowups
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockSource) Training(_ context.Context, _, _, _ string, limit int) ([]store.Question, error) {
	out := m.training
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockSource) ArchivedByChunks(_ context.Context, _, _ string, chunkIDs []string, limit int) ([]store.Question, error) {
	var out []store.Question
	for _, q := range m.archived {
		if len(chunkIDs) == 0 {
			out = append(out, q)
			continue
		}
		for _, c := range chunkIDs {
			if q.ChunkID == c {
				out = append(out, q)
				break
			}
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockSource) FrontierChunk(_ context.Context, _, _ string) (string, error) {
	if m.frontier == "" {
		return "", store.ErrNotFound
	}
	return m.frontier, nil
}

func (m *mockSource) WeakestChunks(_ context.Context, _, _ string, limit int) ([]string, error) {
	out := m.weakest
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockSource) StaleChunks(_ context.Context, _, _ string, _ time.Time, limit int) ([]string, error) {
	out := m.stale
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// mockRemediator returns fixed candidates and records the request it saw.
type mockRemediator struct {
	candidates []prereq.Candidate
	got        *prereq.Request
}

func (m *mockRemediator) Questions(_ context.Context, req prereq.Request) ([]prereq.Candidate, error) {
	m.got = &req
	return m.candidates, nil
}

func question(id, chunk string) store.Question {
	return store.Question{ID: id, CourseID: "course-1", ChunkID: chunk}
}

func questions(prefix, chunk string, n int) []store.Question {
	out := make([]store.Question, n)
	for i := range out {
		out[i] = question(fmt.Sprintf("%s-%d", prefix, i), chunk)
	}
	return out
}

func baseRequest() Request {
	return Request{UserID: "u1", CourseID: "course-1", Session: 5}
}

func TestBuild_AllPoolsEmpty(t *testing.T) {
	b := NewBuilder(&mockSource{questions: map[string]store.Question{}}, nil)

	items, err := b.Build(context.Background(), baseRequest())
	if err != nil {
		t.Fatalf("empty pools must not error: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("got %d items, want empty queue", len(items))
	}
}

func TestBuild_RespectsLimit(t *testing.T) {
	src := &mockSource{
		training:  questions("t", "chunk-1", 40),
		archived:  questions("a", "chunk-2", 40),
		weakest:   []string{"chunk-2"},
		frontier:  "chunk-1",
		questions: map[string]store.Question{},
	}
	b := NewBuilder(src, nil)

	items, err := b.Build(context.Background(), baseRequest())
	if err != nil {
		t.Fatal(err)
	}
	if len(items) > DefaultLimit {
		t.Errorf("queue length %d exceeds limit %d", len(items), DefaultLimit)
	}
}

func TestBuild_PoolQuotas(t *testing.T) {
	fu := questions("f", "chunk-1", 10)
	src := &mockSource{
		newFollowups: fu,
		training:     questions("t", "chunk-1", 40),
		frontier:     "chunk-1",
		questions:    map[string]store.Question{},
	}
	b := NewBuilder(src, nil)

	items, err := b.Build(context.Background(), baseRequest())
	if err != nil {
		t.Fatal(err)
	}

	counts := map[string]int{}
	for _, it := range items {
		counts[it.Reason]++
	}
	// 20% of 20 slots for follow-ups, 70% for training.
	if counts["Follow-up"] != 4 {
		t.Errorf("follow-ups = %d, want 4", counts["Follow-up"])
	}
	if counts["Training"] != 14 {
		t.Errorf("training = %d, want 14", counts["Training"])
	}
}

func TestBuild_DedupKeepsFirstPoolPriority(t *testing.T) {
	shared := question("shared", "chunk-1")
	src := &mockSource{
		dueFollowups: []store.UserQuestionStatus{{QuestionID: "shared"}},
		training:     []store.Question{shared},
		frontier:     "chunk-1",
		questions:    map[string]store.Question{"shared": shared},
	}
	b := NewBuilder(src, nil)

	items, err := b.Build(context.Background(), baseRequest())
	if err != nil {
		t.Fatal(err)
	}

	found := 0
	for _, it := range items {
		if it.Question.ID == "shared" {
			found++
			if it.Priority != PriorityFollowup {
				t.Errorf("priority = %v, want the follow-up pool's %v", it.Priority, PriorityFollowup)
			}
		}
	}
	if found != 1 {
		t.Errorf("shared question appears %d times, want once", found)
	}
}

func TestBuild_PrereqInjectionCapped(t *testing.T) {
	var candidates []prereq.Candidate
	for i := 0; i < 8; i++ {
		candidates = append(candidates, prereq.Candidate{
			Question: question(fmt.Sprintf("p-%d", i), "chunk-0"),
			Reason:   prereq.ReasonScaffolding,
		})
	}
	failed := question("q-fail", "chunk-9")
	failed.Concepts = []string{"ack"}
	src := &mockSource{
		failures:  []store.UserQuestionStatus{{QuestionID: "q-fail", FailsCount: 2}},
		questions: map[string]store.Question{"q-fail": failed},
	}
	b := NewBuilder(src, &mockRemediator{candidates: candidates})

	items, err := b.Build(context.Background(), baseRequest())
	if err != nil {
		t.Fatal(err)
	}

	injected := 0
	for _, it := range items {
		if it.Reason == prereq.ReasonScaffolding {
			injected++
			if it.Priority != PriorityPrereq {
				t.Errorf("priority = %v, want %v", it.Priority, PriorityPrereq)
			}
		}
	}
	if injected != MaxPrereqInjections {
		t.Errorf("injected = %d, want %d", injected, MaxPrereqInjections)
	}
}

func TestBuild_NoRecentFailuresNoInjection(t *testing.T) {
	rem := &mockRemediator{candidates: []prereq.Candidate{
		{Question: question("p-0", "chunk-0"), Reason: prereq.ReasonGapFix},
	}}
	b := NewBuilder(&mockSource{questions: map[string]store.Question{}}, rem)

	items, err := b.Build(context.Background(), baseRequest())
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 0 {
		t.Errorf("got %d items, remediation needs a live fail streak", len(items))
	}
	if rem.got != nil {
		t.Error("remediator consulted with nothing failing")
	}
}

func TestBuild_DerivesFailuresFromStore(t *testing.T) {
	failed := question("q-fail", "chunk-3")
	failed.Concepts = []string{"Derivatives", "Limits"}
	src := &mockSource{
		failures:  []store.UserQuestionStatus{{QuestionID: "q-fail", FailsCount: 3}},
		questions: map[string]store.Question{"q-fail": failed},
	}
	rem := &mockRemediator{}
	b := NewBuilder(src, rem)

	if _, err := b.Build(context.Background(), baseRequest()); err != nil {
		t.Fatal(err)
	}

	if rem.got == nil {
		t.Fatal("remediator never consulted")
	}
	if rem.got.CourseID != "course-1" {
		t.Errorf("course = %q, want course-1", rem.got.CourseID)
	}
	if len(rem.got.Failures) != 2 {
		t.Fatalf("got %d failures, want one per failed concept", len(rem.got.Failures))
	}
	for i, want := range []string{"Derivatives", "Limits"} {
		f := rem.got.Failures[i]
		if f.Concept != want || f.ChunkID != "chunk-3" || f.ConsecutiveFails != 3 {
			t.Errorf("failure %d = %+v, want {chunk-3 %s 3}", i, f, want)
		}
	}
}

func TestBuild_OrderedByAscendingPriority(t *testing.T) {
	src := &mockSource{
		dueArchived: []store.UserQuestionStatus{{QuestionID: "arch-1"}},
		training:    questions("t", "chunk-1", 5),
		frontier:    "chunk-1",
		questions:   map[string]store.Question{"arch-1": question("arch-1", "chunk-0")},
	}
	b := NewBuilder(src, nil)

	items, err := b.Build(context.Background(), baseRequest())
	if err != nil {
		t.Fatal(err)
	}
	if len(items) < 2 {
		t.Fatalf("got %d items, want aging plus training", len(items))
	}
	if items[0].Question.ID != "arch-1" {
		t.Errorf("first item = %q, want the due archive review ahead of training", items[0].Question.ID)
	}
	for i := 1; i < len(items); i++ {
		if items[i].Priority < items[i-1].Priority {
			t.Fatalf("item %d priority %v below predecessor %v", i, items[i].Priority, items[i-1].Priority)
		}
	}
}

func TestBuild_AgingFallsBackToStaleChunks(t *testing.T) {
	src := &mockSource{
		stale:     []string{"chunk-old"},
		archived:  questions("a", "chunk-old", 3),
		questions: map[string]store.Question{},
	}
	b := NewBuilder(src, nil)

	items, err := b.Build(context.Background(), baseRequest())
	if err != nil {
		t.Fatal(err)
	}

	aging := 0
	for _, it := range items {
		if it.Reason == "Aging" {
			aging++
			if it.Priority != PriorityAging {
				t.Errorf("priority = %v, want %v", it.Priority, PriorityAging)
			}
		}
	}
	if aging == 0 {
		t.Error("expected stale-chunk sampling to feed the aging pool")
	}
}

func TestBuild_DueFollowupsBeforeFresh(t *testing.T) {
	due := question("due-1", "chunk-1")
	src := &mockSource{
		dueFollowups: []store.UserQuestionStatus{{QuestionID: "due-1"}},
		newFollowups: questions("fresh", "chunk-1", 5),
		questions:    map[string]store.Question{"due-1": due},
	}
	b := NewBuilder(src, nil)

	items, err := b.Build(context.Background(), baseRequest())
	if err != nil {
		t.Fatal(err)
	}

	if len(items) != 4 {
		t.Fatalf("got %d items, want the 4-slot follow-up quota", len(items))
	}
	if items[0].Question.ID != "due-1" {
		t.Errorf("first item = %q, want the due review before fresh follow-ups", items[0].Question.ID)
	}
}
