package review

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/revq/internal/queue"
	"github.com/abhisek/revq/internal/router"
	"github.com/abhisek/revq/internal/scoring"
	"github.com/abhisek/revq/internal/screen"
	"github.com/abhisek/revq/internal/screens/summary"
	"github.com/abhisek/revq/internal/session"
	"github.com/abhisek/revq/internal/shelf"
	"github.com/abhisek/revq/internal/ui/components"
	"github.com/abhisek/revq/internal/ui/layout"
)

type phase int

const (
	phaseLoading phase = iota
	phaseQuestion
	phaseFeedback
	phaseQuitConfirm
)

// ReviewScreen runs one review session: it builds the queue, walks the
// questions, and records each answer.
type ReviewScreen struct {
	manager  *session.Manager
	userID   string
	courseID string

	phase     phase
	prevPhase phase

	session int64
	items   []queue.ReviewItem
	current int

	choice      components.MultiChoice
	questionAt  time.Time
	limitMs     int64
	elapsedMs   int64
	lastVerdict shelf.Result

	startedAt time.Time
	answered  int
	correct   int
	regressed int

	errMsg string
}

var _ screen.Screen = (*ReviewScreen)(nil)
var _ screen.KeyHintProvider = (*ReviewScreen)(nil)

// New creates a ReviewScreen.
func New(manager *session.Manager, userID, courseID string) *ReviewScreen {
	return &ReviewScreen{
		manager:   manager,
		userID:    userID,
		courseID:  courseID,
		phase:     phaseLoading,
		startedAt: time.Now(),
	}
}

func (s *ReviewScreen) Init() tea.Cmd {
	return s.start()
}

func (s *ReviewScreen) Title() string {
	return "Review"
}

// Session exposes the session number for the header.
func (s *ReviewScreen) Session() int64 {
	return s.session
}

// Remaining exposes the count of questions still queued.
func (s *ReviewScreen) Remaining() int {
	return len(s.items) - s.current
}

func (s *ReviewScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseQuitConfirm:
		return []layout.KeyHint{
			{Key: "Y", Description: "End session"},
			{Key: "N", Description: "Keep going"},
		}
	case phaseFeedback:
		return []layout.KeyHint{
			{Key: "any key", Description: "Continue"},
		}
	default:
		return []layout.KeyHint{
			{Key: "↑↓ 1-5", Description: "Choose"},
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Quit"},
		}
	}
}

func (s *ReviewScreen) start() tea.Cmd {
	return func() tea.Msg {
		res, err := s.manager.Start(context.Background(), session.StartRequest{
			UserID:   s.userID,
			CourseID: s.courseID,
		})
		return startedMsg{Result: res, Err: err}
	}
}

func (s *ReviewScreen) submit(response scoring.Response, timeSpentMs int64) tea.Cmd {
	item := s.items[s.current]
	return func() tea.Msg {
		res, err := s.manager.Submit(context.Background(), session.SubmitRequest{
			UserID:      s.userID,
			QuestionID:  item.Question.ID,
			Response:    response,
			TimeSpentMs: timeSpentMs,
		})
		return answeredMsg{Result: res, Err: err}
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}

func (s *ReviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case startedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.session = msg.Result.Session
		s.items = msg.Result.Queue
		if len(s.items) == 0 {
			return s, s.finish()
		}
		s.showQuestion()
		return s, tick()

	case answeredMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.answered++
		if msg.Result.Verdict.IsCorrect {
			s.correct++
		} else {
			s.regressed++
		}
		s.lastVerdict = msg.Result.Verdict
		s.phase = phaseFeedback
		return s, nil

	case timerTickMsg:
		if s.phase != phaseQuestion {
			return s, nil
		}
		s.elapsedMs = time.Since(s.questionAt).Milliseconds()
		return s, tick()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s, nil
}

func (s *ReviewScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	switch s.phase {
	case phaseQuitConfirm:
		switch msg.String() {
		case "y", "Y":
			return s, s.finish()
		case "n", "N", "esc":
			s.phase = s.prevPhase
		}
		return s, nil

	case phaseFeedback:
		s.current++
		if s.current >= len(s.items) {
			return s, s.finish()
		}
		s.showQuestion()
		return s, tick()

	case phaseQuestion:
		if msg.String() == "esc" {
			s.prevPhase = s.phase
			s.phase = phaseQuitConfirm
			return s, nil
		}

		var cmd tea.Cmd
		s.choice, cmd = s.choice.Update(msg)
		if s.choice.Submitted {
			spent := time.Since(s.questionAt).Milliseconds()
			response := scoring.ResponseIncorrect
			if s.choice.IsCorrect() {
				response = scoring.ResponseCorrect
			}
			return s, s.submit(response, spent)
		}
		return s, cmd
	}

	return s, nil
}

// showQuestion resets the per-question state for items[current].
func (s *ReviewScreen) showQuestion() {
	q := s.items[s.current].Question
	s.choice = components.NewMultiChoice(q.Text, q.Options, q.CorrectIndex)
	s.questionAt = time.Now()
	s.elapsedMs = 0
	s.limitMs = scoring.TimeLimitMs(q.Timing())
	s.phase = phaseQuestion
}

// finish replaces this screen with the session summary.
func (s *ReviewScreen) finish() tea.Cmd {
	data := &summary.Data{
		Session:  s.session,
		Queued:   len(s.items),
		Answered: s.answered,
		Correct:  s.correct,
		Missed:   s.regressed,
		Duration: time.Since(s.startedAt),
	}
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(data)}
	}
}
