package session

import (
	"context"
	"testing"
	"time"

	"github.com/abhisek/revq/internal/scoring"
	"github.com/abhisek/revq/internal/shelf"
	"github.com/abhisek/revq/internal/store"
)

func trainingQuestion() *store.Question {
	return &store.Question{
		ID:        "q1",
		CourseID:  "c1",
		ChunkID:   "ch1",
		Text:      "short prompt",
		Options:   []string{"a", "b", "c", "d", "e"},
		Bloom:     scoring.BloomKnowledge,
		Usage:     store.UsageTraining,
		Concepts:  []string{"x"},
		CharCount: 100,
	}
}

func TestSubmit_FirstCorrectAnswer(t *testing.T) {
	m, sessions, _, writer, progress, questions, _ := newFixture()
	sessions.session = 4
	questions.byID["q1"] = trainingQuestion()
	questions.total = 10

	res, err := m.Submit(context.Background(), SubmitRequest{
		UserID:     "u1",
		QuestionID: "q1",
		Response:   scoring.ResponseCorrect,
		// Well under the metadata limit, so the success counts as fast.
		TimeSpentMs: 2000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	v := res.Verdict
	if !v.IsCorrect || v.NewScore != 10 || v.NewSuccessCount != 1.0 {
		t.Errorf("verdict = %+v, want correct, score 10, success 1.0", v)
	}
	if v.NewStatus != shelf.StatusPendingFollowup {
		t.Errorf("status = %q, want pending_followup", v.NewStatus)
	}
	if v.NextReviewSession == nil || *v.NextReviewSession != 5 {
		t.Errorf("next review = %v, want 5", v.NextReviewSession)
	}

	if len(writer.statuses) != 1 {
		t.Fatalf("applied reviews = %d, want 1", len(writer.statuses))
	}
	st := writer.statuses[0]
	if st.SuccessCount != 1.0 || st.Status != shelf.StatusPendingFollowup {
		t.Errorf("persisted status = %+v", st)
	}

	cm := writer.masteries[0]
	if cm.TotalQuestionsSeen != 1 || cm.LastReviewedSession != 4 {
		t.Errorf("persisted mastery = %+v", cm)
	}
	// First answer in a 10-question chunk: coverage 0.1, score 10.
	if cm.MasteryScore != 10 {
		t.Errorf("mastery score = %d, want 10", cm.MasteryScore)
	}

	if len(progress.entries) != 1 || !progress.entries[0].IsCorrect {
		t.Errorf("progress log = %+v, want one correct entry", progress.entries)
	}
}

func TestSubmit_DeltaAppliesToChunkMastery(t *testing.T) {
	m, _, mastery, writer, progress, questions, _ := newFixture()
	questions.byID["q1"] = trainingQuestion()
	questions.total = 10
	progress.unique = 7
	mastery.Upsert(context.Background(), &store.ChunkMastery{
		UserID: "u1", CourseID: "c1", ChunkID: "ch1", MasteryScore: 70,
	})

	res, err := m.Submit(context.Background(), SubmitRequest{
		UserID:      "u1",
		QuestionID:  "q1",
		Response:    scoring.ResponseCorrect,
		TimeSpentMs: 2000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The delta lands on the chunk's running score, not on a fresh zero.
	if res.Verdict.ScoreDelta != 10 || res.Verdict.NewScore != 80 {
		t.Errorf("delta/score = %d/%d, want 10/80", res.Verdict.ScoreDelta, res.Verdict.NewScore)
	}
	// Coverage 8/10 after this answer: round(0.8*60 + 80*0.4) = 80.
	if cm := writer.masteries[0]; cm.MasteryScore != 80 {
		t.Errorf("persisted mastery = %d, want 80", cm.MasteryScore)
	}
}

func TestSubmit_IncorrectResetsAndSpawnsFollowup(t *testing.T) {
	m, _, mastery, writer, _, questions, statuses := newFixture()
	questions.byID["q1"] = trainingQuestion()
	questions.total = 10
	mastery.Upsert(context.Background(), &store.ChunkMastery{
		UserID: "u1", CourseID: "c1", ChunkID: "ch1", MasteryScore: 20,
	})
	statuses.Upsert(context.Background(), &store.UserQuestionStatus{
		UserID: "u1", QuestionID: "q1", CourseID: "c1", ChunkID: "ch1",
		Status: shelf.StatusPendingFollowup, SuccessCount: 1.5,
	})

	gen := &fakeGenerator{calls: make(chan *store.Question, 1)}
	m.cfg.Followups = gen

	res, err := m.Submit(context.Background(), SubmitRequest{
		UserID:      "u1",
		QuestionID:  "q1",
		Response:    scoring.ResponseIncorrect,
		TimeSpentMs: 5000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	v := res.Verdict
	if v.IsCorrect || v.NewSuccessCount != 0 || v.NewFailsCount != 1 {
		t.Errorf("verdict = %+v, want reset progress", v)
	}
	// Prior success means the miss is a repeated one.
	if v.ScoreDelta != -10 || v.NewScore != 10 {
		t.Errorf("delta/score = %d/%d, want -10/10", v.ScoreDelta, v.NewScore)
	}
	st := writer.statuses[0]
	if st.Status != shelf.StatusPendingFollowup {
		t.Errorf("status = %q, want pending_followup after a miss", st.Status)
	}
	if st.NextReviewSession == nil || *st.NextReviewSession != 1 {
		t.Errorf("next review = %v, want the next session", st.NextReviewSession)
	}

	select {
	case q := <-gen.calls:
		if q.ID != "q1" {
			t.Errorf("follow-up spawned for %q, want q1", q.ID)
		}
	case <-time.After(2 * time.Second):
		t.Error("expected a follow-up generation call")
	}
}

func TestSubmit_ExamAnswerLeavesStateAlone(t *testing.T) {
	m, _, _, writer, progress, questions, _ := newFixture()
	q := trainingQuestion()
	q.Usage = store.UsageExam
	questions.byID["q1"] = q

	gen := &fakeGenerator{calls: make(chan *store.Question, 1)}
	m.cfg.Followups = gen

	res, err := m.Submit(context.Background(), SubmitRequest{
		UserID:      "u1",
		QuestionID:  "q1",
		Response:    scoring.ResponseIncorrect,
		TimeSpentMs: 5000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Verdict.IsCorrect {
		t.Error("incorrect exam answer reported as correct")
	}
	if writer.calls != 0 {
		t.Errorf("ApplyReview calls = %d, want 0 for exam answers", writer.calls)
	}
	if len(progress.entries) != 1 {
		t.Errorf("progress entries = %d, want 1", len(progress.entries))
	}
	select {
	case <-gen.calls:
		t.Error("exam answers must not spawn follow-ups")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestSubmit_UnknownQuestion(t *testing.T) {
	m, _, _, _, _, _, _ := newFixture()

	_, err := m.Submit(context.Background(), SubmitRequest{UserID: "u1", QuestionID: "missing"})
	if !store.IsNotFound(err) {
		t.Errorf("err = %v, want not-found", err)
	}
}

func TestSubmit_RetriesTransientWrite(t *testing.T) {
	m, _, _, writer, _, questions, _ := newFixture()
	questions.byID["q1"] = trainingQuestion()
	questions.total = 1
	writer.failErrs = []error{store.ErrTransient}

	_, err := m.Submit(context.Background(), SubmitRequest{
		UserID:      "u1",
		QuestionID:  "q1",
		Response:    scoring.ResponseCorrect,
		TimeSpentMs: 2000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if writer.calls != 2 {
		t.Errorf("ApplyReview calls = %d, want 2", writer.calls)
	}
}

func TestSubmit_BlankFirstAnswer(t *testing.T) {
	m, _, _, writer, _, questions, _ := newFixture()
	questions.byID["q1"] = trainingQuestion()
	questions.total = 5

	res, err := m.Submit(context.Background(), SubmitRequest{
		UserID:      "u1",
		QuestionID:  "q1",
		Response:    scoring.ResponseBlank,
		TimeSpentMs: 1000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// First blank costs 2, clamped at the floor.
	if res.Verdict.ScoreDelta != -2 || res.Verdict.NewScore != 0 {
		t.Errorf("delta/score = %d/%d, want -2/0", res.Verdict.ScoreDelta, res.Verdict.NewScore)
	}
	if writer.statuses[0].FailsCount != 1 {
		t.Errorf("fails = %d, want 1", writer.statuses[0].FailsCount)
	}
}
