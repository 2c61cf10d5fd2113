package review

import (
	"time"

	"github.com/abhisek/revq/internal/session"
)

// startedMsg carries the queue built for this session.
type startedMsg struct {
	Result *session.StartResult
	Err    error
}

// answeredMsg carries the recorded verdict for the current question.
type answeredMsg struct {
	Result *session.SubmitResult
	Err    error
}

// timerTickMsg is sent every second while a question is on screen.
type timerTickMsg time.Time
