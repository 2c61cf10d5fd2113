package shelf

import "testing"

func TestNextSuccessCount(t *testing.T) {
	tests := []struct {
		name    string
		current float64
		correct bool
		fast    bool
		want    float64
	}{
		{"fast correct adds full strike", 1.0, true, true, 2.0},
		{"slow correct adds half strike", 1.0, true, false, 1.5},
		{"miss resets streak", 2.5, false, false, 0},
		{"miss resets even when fast", 2.5, false, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextSuccessCount(tt.current, tt.correct, tt.fast); got != tt.want {
				t.Errorf("NextSuccessCount = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		count   float64
		correct bool
		want    Status
	}{
		{0, true, StatusActive},
		{0.4, true, StatusActive},
		{0.5, true, StatusPendingFollowup},
		{2.5, true, StatusPendingFollowup},
		{2.9, true, StatusPendingFollowup},
		{3.0, true, StatusArchived},
		{4.5, true, StatusArchived},
		{0, false, StatusPendingFollowup},
		{2.5, false, StatusPendingFollowup},
	}

	for _, tt := range tests {
		if got := StatusFor(tt.count, tt.correct); got != tt.want {
			t.Errorf("StatusFor(%v, %v) = %q, want %q", tt.count, tt.correct, got, tt.want)
		}
	}
}

// A miss never lands a question back on the plain training shelf.
func TestStatusFor_MissAlwaysSchedulesFollowup(t *testing.T) {
	for c := 0.0; c <= 6.0; c += 0.5 {
		if got := StatusFor(0, false); got != StatusPendingFollowup {
			t.Fatalf("miss at prior count %v mapped to %q, want %q", c, got, StatusPendingFollowup)
		}
	}
}

// Status never regresses as the success count grows.
func TestStatusFor_Monotone(t *testing.T) {
	rank := map[Status]int{StatusActive: 0, StatusPendingFollowup: 1, StatusArchived: 2}

	prev := StatusFor(0, true)
	for c := 0.0; c <= 6.0; c += 0.5 {
		cur := StatusFor(c, true)
		if rank[cur] < rank[prev] {
			t.Fatalf("status regressed from %q to %q at count %v", prev, cur, c)
		}
		prev = cur
	}
}

// Six slow correct answers reach the archive; five do not.
func TestSlowPathToArchive(t *testing.T) {
	count := 0.0
	for i := 0; i < 5; i++ {
		count = NextSuccessCount(count, true, false)
	}
	if got := StatusFor(count, true); got != StatusPendingFollowup {
		t.Errorf("after 5 slow corrects: status = %q, want %q", got, StatusPendingFollowup)
	}

	count = NextSuccessCount(count, true, false)
	if got := StatusFor(count, true); got != StatusArchived {
		t.Errorf("after 6 slow corrects: status = %q, want %q", got, StatusArchived)
	}
}

func TestNextReviewSession(t *testing.T) {
	tests := []struct {
		name    string
		count   float64
		session int64
		want    int64
	}{
		{"zero count uses first gap", 0, 10, 11},
		{"fractional count uses first gap", 0.5, 10, 11},
		{"one strike", 1.0, 10, 11},
		{"two strikes", 2.0, 10, 12},
		{"three strikes", 3.0, 10, 15},
		{"four strikes", 4.0, 10, 20},
		{"five strikes", 5.0, 10, 30},
		{"beyond the ladder clamps to last gap", 9.0, 10, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextReviewSession(tt.count, tt.session); got != tt.want {
				t.Errorf("NextReviewSession = %d, want %d", got, tt.want)
			}
		})
	}
}

// Gaps never shrink as the streak grows, and are always at least one.
func TestNextReviewSession_Monotone(t *testing.T) {
	prev := int64(0)
	for c := 0.0; c <= 8.0; c += 0.5 {
		next := NextReviewSession(c, 100)
		if next <= 100 {
			t.Fatalf("next session %d not after current at count %v", next, c)
		}
		if next < prev {
			t.Fatalf("gap shrank at count %v: %d < %d", c, next, prev)
		}
		prev = next
	}
}
