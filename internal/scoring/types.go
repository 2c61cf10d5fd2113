package scoring

// Bloom is the cognitive level a question targets.
type Bloom string

const (
	BloomKnowledge   Bloom = "knowledge"
	BloomApplication Bloom = "application"
	BloomAnalysis    Bloom = "analysis"
)

// DifficultyMultiplier scales the complexity component of the time limit.
func (b Bloom) DifficultyMultiplier() float64 {
	switch b {
	case BloomApplication:
		return 1.2
	case BloomAnalysis:
		return 1.5
	default:
		return 1.0
	}
}

// Coefficient weights the advanced score by cognitive level.
func (b Bloom) Coefficient() float64 {
	switch b {
	case BloomApplication:
		return 1.3
	case BloomAnalysis:
		return 1.6
	default:
		return 1.0
	}
}

// TargetSeconds is the expected solve time for a question at this level.
func (b Bloom) TargetSeconds() float64 {
	switch b {
	case BloomApplication:
		return 35
	case BloomAnalysis:
		return 50
	default:
		return 20
	}
}

// Response classifies what the learner did with a question.
type Response string

const (
	ResponseCorrect   Response = "correct"
	ResponseIncorrect Response = "incorrect"
	ResponseBlank     Response = "blank"
)

// QuestionTiming carries the metadata needed to compute a per-question
// time limit. Zero values mean the metadata is unavailable.
type QuestionTiming struct {
	CharCount    int
	ConceptCount int
	Bloom        Bloom
}
