package domain_test

import (
	"testing"

	"bikeshare/internal/modules/tripstats/domain"
)

func TestModeTieBreaksOnFirstOccurrence(t *testing.T) {
	t.Parallel()
	values := []string{"b", "a", "a", "b", "c"}
	for i := 0; i < 20; i++ {
		got, count, ok := domain.Mode(values)
		if !ok || got != "b" || count != 2 {
			t.Fatalf("run %d: got %q/%d/%t", i, got, count, ok)
		}
	}
}

func TestModeSingleRepeatedValue(t *testing.T) {
	t.Parallel()
	got, count, ok := domain.Mode([]int{7, 7, 7})
	if !ok || got != 7 || count != 3 {
		t.Fatalf("got %d/%d/%t", got, count, ok)
	}
}

func TestModeEmpty(t *testing.T) {
	t.Parallel()
	if _, _, ok := domain.Mode([]string(nil)); ok {
		t.Fatalf("empty input has no mode")
	}
}

func TestTallyOrdersByCountThenFirstSeen(t *testing.T) {
	t.Parallel()
	got := domain.Tally([]string{"Customer", "Subscriber", "Dependent", "Subscriber", "Dependent", "Subscriber"})
	want := []domain.Count{{Value: "Subscriber", Count: 3}, {Value: "Dependent", Count: 2}, {Value: "Customer", Count: 1}}
	if len(got) != len(want) {
		t.Fatalf("got %+v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: got %+v want %+v", i, got[i], want[i])
		}
	}

	tied := domain.Tally([]string{"x", "y", "y", "x"})
	if tied[0].Value != "x" || tied[1].Value != "y" {
		t.Fatalf("ties must keep first-seen order: %+v", tied)
	}
}
