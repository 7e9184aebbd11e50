package utils

import "testing"

func TestCompletionCrossed(t *testing.T) {
	cases := []struct {
		name      string
		prev      int
		next      int
		threshold int
		want      bool
	}{
		{"exact hit", 4, 5, 5, true},
		{"overshoot", 3, 6, 5, true},
		{"still short", 2, 4, 5, false},
		{"already past", 5, 6, 5, false},
		{"far past", 9, 12, 5, false},
		{"threshold one", 0, 1, 1, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CompletionCrossed(tc.prev, tc.next, tc.threshold); got != tc.want {
				t.Errorf("CompletionCrossed(%d, %d, %d) = %v, want %v", tc.prev, tc.next, tc.threshold, got, tc.want)
			}
		})
	}
}

// Two concurrent increments of +3 from progress 3 against threshold 5:
// whichever lands second sees 3 -> 6 and crosses; the one replaying on
// top of 6 sees 6 -> 9 and does not. Exactly one completion fires.
func TestCompletionCrossedExactlyOnce(t *testing.T) {
	first := CompletionCrossed(3, 6, 5)
	second := CompletionCrossed(6, 9, 5)
	if !first || second {
		t.Fatalf("expected exactly one crossing, got first=%v second=%v", first, second)
	}
}
