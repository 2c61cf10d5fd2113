package scoring

import "testing"

func TestScoreDelta(t *testing.T) {
	tests := []struct {
		name        string
		current     int
		response    Response
		prevFails   int
		prevSuccess float64
		wantDelta   int
		wantScore   int
	}{
		{"correct", 50, ResponseCorrect, 0, 0, 10, 60},
		{"first incorrect", 50, ResponseIncorrect, 0, 0, -5, 45},
		{"first blank", 50, ResponseBlank, 0, 0, -2, 48},
		{"repeated incorrect after fail", 50, ResponseIncorrect, 1, 0, -10, 40},
		{"repeated incorrect after success", 50, ResponseIncorrect, 0, 1.0, -10, 40},
		{"repeated blank", 50, ResponseBlank, 2, 0, -10, 40},
		{"clamped at ceiling", 95, ResponseCorrect, 0, 0, 10, 100},
		{"clamped at floor", 3, ResponseIncorrect, 1, 0, -10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			delta, score := ScoreDelta(tt.current, tt.response, tt.prevFails, tt.prevSuccess)
			if delta != tt.wantDelta {
				t.Errorf("delta = %d, want %d", delta, tt.wantDelta)
			}
			if score != tt.wantScore {
				t.Errorf("score = %d, want %d", score, tt.wantScore)
			}
		})
	}
}

func TestAdvancedScore(t *testing.T) {
	// Knowledge target is 20s; answering in 10s doubles the ratio.
	if got := AdvancedScore(10, BloomKnowledge, 10000); got != 20 {
		t.Errorf("fast knowledge = %v, want 20", got)
	}

	// Ratio is clamped below at 0.5 no matter how slow.
	if got := AdvancedScore(10, BloomKnowledge, 400000); got != 5 {
		t.Errorf("slow knowledge = %v, want 5", got)
	}

	// Sub-second answers are floored at one second, then clamped at 2.0.
	if got := AdvancedScore(10, BloomAnalysis, 200); got != 32 {
		t.Errorf("instant analysis = %v, want 32", got)
	}
}

func TestDensityCoefficient(t *testing.T) {
	tests := []struct {
		concepts int
		want     float64
	}{
		{1, 1.0}, {2, 1.0}, {3, 0.75}, {4, 0.6}, {7, 0.6},
	}
	for _, tt := range tests {
		if got := DensityCoefficient(tt.concepts); got != tt.want {
			t.Errorf("DensityCoefficient(%d) = %v, want %v", tt.concepts, got, tt.want)
		}
	}
}

func TestOverduePenalty(t *testing.T) {
	tests := []struct {
		days int
		want int
	}{
		{0, 0}, {6, 0}, {7, 2}, {13, 2}, {14, 4}, {70, 10},
	}
	for _, tt := range tests {
		if got := OverduePenalty(tt.days); got != tt.want {
			t.Errorf("OverduePenalty(%d) = %d, want %d", tt.days, got, tt.want)
		}
	}
}
