package game

import "testing"

func TestShuffle_Permutation(t *testing.T) {
	order := DefaultDeck().Order

	for i := 0; i < 50; i++ {
		assertPermutation(t, Shuffle(order, StdRNG{}), order)
	}
}

func TestShuffle_LeavesInputAlone(t *testing.T) {
	order := DefaultDeck().Order
	before := append([]Card(nil), order...)

	_ = Shuffle(order, &sequenceRNG{values: []int{3, 1, 4, 1, 5, 9, 2}})

	for i := range order {
		if order[i] != before[i] {
			t.Fatalf("input modified at %d: %v", i, order)
		}
	}
}

func TestShuffle_Deterministic(t *testing.T) {
	order := []Card{"a", "b", "c"}

	// i=2: j=0 -> c b a; i=1: j=0 -> b c a
	got := Shuffle(order, &sequenceRNG{values: []int{0, 0}})

	want := []Card{"b", "c", "a"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestShuffle_Empty(t *testing.T) {
	if got := Shuffle(nil, StdRNG{}); len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
}
