package scoring

import "math"

// Raw score deltas. The repeated penalty applies to any incorrect or blank
// answer on a question the learner already has history on.
const (
	CorrectDelta          = 10
	FirstIncorrectDelta   = -5
	FirstBlankDelta       = -2
	RepeatedMissDelta     = -10
	MaxScore              = 100
	MinScore              = 0
	MinSolveTimeMs        = 1000
	MaxOverduePenalty     = 10
	OverduePenaltyPerWeek = 2
)

// ScoreDelta returns the score change for a response and the resulting
// score clamped to [MinScore, MaxScore]. prevFails and prevSuccess describe
// the question's state before this answer; any prior history turns a miss
// into a repeated miss.
func ScoreDelta(current int, response Response, prevFails int, prevSuccess float64) (delta, newScore int) {
	repeated := prevFails > 0 || prevSuccess > 0

	switch response {
	case ResponseCorrect:
		delta = CorrectDelta
	case ResponseIncorrect:
		if repeated {
			delta = RepeatedMissDelta
		} else {
			delta = FirstIncorrectDelta
		}
	case ResponseBlank:
		if repeated {
			delta = RepeatedMissDelta
		} else {
			delta = FirstBlankDelta
		}
	}

	newScore = current + delta
	if newScore > MaxScore {
		newScore = MaxScore
	}
	if newScore < MinScore {
		newScore = MinScore
	}
	return delta, newScore
}

// AdvancedScore weights a raw score change by cognitive level and solve
// speed. Sub-second times are floored at one second so that accidental
// double-taps cannot inflate the time ratio.
func AdvancedScore(deltaP float64, bloom Bloom, timeSpentMs int64) float64 {
	tActual := float64(timeSpentMs)
	if tActual < MinSolveTimeMs {
		tActual = MinSolveTimeMs
	}

	timeRatio := bloom.TargetSeconds() * 1000 / tActual
	if timeRatio < 0.5 {
		timeRatio = 0.5
	}
	if timeRatio > 2.0 {
		timeRatio = 2.0
	}

	return math.Round(deltaP*bloom.Coefficient()*timeRatio*100) / 100
}

// DensityCoefficient discounts scores on concept-dense questions, where a
// single answer gives weaker evidence about any one concept.
func DensityCoefficient(conceptCount int) float64 {
	switch {
	case conceptCount <= 2:
		return 1.0
	case conceptCount == 3:
		return 0.75
	default:
		return 0.6
	}
}

// OverduePenalty returns the score points deducted for a review answered
// daysOverdue days past its due date, two points per full week, capped.
func OverduePenalty(daysOverdue int) int {
	if daysOverdue <= 0 {
		return 0
	}
	p := daysOverdue / 7 * OverduePenaltyPerWeek
	if p > MaxOverduePenalty {
		p = MaxOverduePenalty
	}
	return p
}
