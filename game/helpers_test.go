package game

import (
	"sort"
	"testing"
	"time"
)

// sequenceRNG returns values from a pre-set sequence.
type sequenceRNG struct {
	values []int
	idx    int
}

func (r *sequenceRNG) Intn(n int) int {
	if len(r.values) == 0 {
		return 0
	}

	v := r.values[r.idx%len(r.values)] % n
	r.idx++

	return v
}

// identityRNG keeps Fisher-Yates from moving anything: j == i every step.
type identityRNG struct{}

func (identityRNG) Intn(n int) int { return n - 1 }

type scheduled struct {
	every   time.Duration
	fn      func()
	stopped bool
}

// manualScheduler fires callbacks only when the test says so.
type manualScheduler struct {
	tasks []*scheduled
}

func (m *manualScheduler) Every(d time.Duration, fn func()) func() {
	t := &scheduled{every: d, fn: fn}
	m.tasks = append(m.tasks, t)

	return func() { t.stopped = true }
}

// fire runs every live task registered with interval d once.
func (m *manualScheduler) fire(d time.Duration) {
	live := make([]*scheduled, 0, len(m.tasks))
	for _, t := range m.tasks {
		if !t.stopped && t.every == d {
			live = append(live, t)
		}
	}

	for _, t := range live {
		if !t.stopped {
			t.fn()
		}
	}
}

func (m *manualScheduler) active(d time.Duration) int {
	n := 0
	for _, t := range m.tasks {
		if !t.stopped && t.every == d {
			n++
		}
	}

	return n
}

func sortedCards(cards []Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = string(c)
	}
	sort.Strings(out)

	return out
}

func assertPermutation(t *testing.T, got, want []Card) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("expected %d cards, got %d", len(want), len(got))
	}

	g, w := sortedCards(got), sortedCards(want)
	for i := range g {
		if g[i] != w[i] {
			t.Fatalf("not a permutation: got %v, want %v", got, want)
		}
	}
}

func rotated(order []Card) []Card {
	out := make([]Card, 0, len(order))
	out = append(out, order[1:]...)

	return append(out, order[0])
}

func newTestSession(t *testing.T, opts ...Option) (*Session, *manualScheduler) {
	t.Helper()

	sched := &manualScheduler{}
	opts = append([]Option{WithScheduler(sched), WithRNG(identityRNG{})}, opts...)

	s, err := NewSession(DefaultDeck(), WebLayout(), opts...)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	return s, sched
}
