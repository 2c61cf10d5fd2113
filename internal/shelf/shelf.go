// Package shelf implements the three-strike shelf model that decides where
// a question lives in the review cycle. Fast correct answers are worth a
// full strike, slow ones half a strike, and any miss clears the count.
package shelf

// Status is the shelf a question currently sits on for a learner.
type Status string

const (
	// StatusActive questions are still being trained.
	StatusActive Status = "active"

	// StatusPendingFollowup questions have partial evidence of mastery
	// and wait for a scheduled confirmation review.
	StatusPendingFollowup Status = "pending_followup"

	// StatusArchived questions are considered learned and only resurface
	// through aging review.
	StatusArchived Status = "archived"
)

// Success increments per answer speed.
const (
	FastSuccessIncrement = 1.0
	SlowSuccessIncrement = 0.5

	// ArchiveThreshold is the consecutive-success count that retires a
	// question to the archive.
	ArchiveThreshold = 3.0

	// FollowupThreshold is the count at which a question leaves active
	// training and enters the follow-up cycle.
	FollowupThreshold = 0.5
)

// SessionGaps is the spacing ladder in sessions between scheduled reviews,
// indexed by whole strikes earned.
var SessionGaps = []int64{1, 2, 5, 10, 20}

// NextSuccessCount applies one answer to a consecutive-success count.
// Any miss resets the streak.
func NextSuccessCount(current float64, correct, fast bool) float64 {
	if !correct {
		return 0
	}
	if fast {
		return current + FastSuccessIncrement
	}
	return current + SlowSuccessIncrement
}

// StatusFor maps an answer and the resulting consecutive-success count to
// a shelf. A miss always lands on the follow-up shelf so the question comes
// back with remediation instead of waiting in plain training.
func StatusFor(successCount float64, correct bool) Status {
	if !correct {
		return StatusPendingFollowup
	}
	switch {
	case successCount >= ArchiveThreshold:
		return StatusArchived
	case successCount >= FollowupThreshold:
		return StatusPendingFollowup
	default:
		return StatusActive
	}
}

// NextReviewSession schedules the next scheduled look at a question. The
// gap grows with whole strikes earned and is never less than one session.
func NextReviewSession(successCount float64, currentSession int64) int64 {
	count := successCount
	if count < 1 {
		count = 1
	}

	idx := int(count) - 1
	if idx >= len(SessionGaps) {
		idx = len(SessionGaps) - 1
	}
	if idx < 0 {
		idx = 0
	}

	gap := SessionGaps[idx]
	if gap < 1 {
		gap = 1
	}
	return currentSession + gap
}
