package scoring

// Reading speed and solve-time model. The limit is derived from how much
// text the learner has to read plus a base thinking allowance that grows
// with the number of concepts involved.
const (
	// CharsPerMinute is the assumed reading speed for question text.
	CharsPerMinute = 780

	// BaseComplexitySeconds is the thinking time floor for any question.
	BaseComplexitySeconds = 15

	// SecondsPerConcept is added to the thinking time per concept tested.
	SecondsPerConcept = 2

	// BufferSeconds absorbs UI latency and settling time.
	BufferSeconds = 10

	// FallbackTimeLimitMs is used when question metadata is missing.
	FallbackTimeLimitMs = 30000
)

// TimeLimitMs computes the fast/slow boundary for a question in
// milliseconds. Answers at or under the limit count as fast.
func TimeLimitMs(meta QuestionTiming) int64 {
	if meta.CharCount <= 0 && meta.ConceptCount <= 0 {
		return FallbackTimeLimitMs
	}

	reading := float64(meta.CharCount) / CharsPerMinute * 60

	complexity := float64(BaseComplexitySeconds+SecondsPerConcept*meta.ConceptCount) *
		meta.Bloom.DifficultyMultiplier()

	total := reading + complexity + BufferSeconds
	return int64(total * 1000)
}

// IsFast reports whether an answer arrived within the question's time limit.
func IsFast(timeSpentMs int64, meta QuestionTiming) bool {
	return timeSpentMs <= TimeLimitMs(meta)
}
