package game

import "testing"

func TestValidate(t *testing.T) {
	order := DefaultDeck().Order

	incomplete := append([]Card(nil), order...)
	incomplete[4] = NoCard

	swapped := append([]Card(nil), order...)
	swapped[0], swapped[1] = swapped[1], swapped[0]

	cases := []struct {
		name      string
		placement []Card
		want      Outcome
	}{
		{"solved", order, OutcomeMatch},
		{"incomplete", incomplete, OutcomeIncomplete},
		{"rotated", rotated(order), OutcomeMismatch},
		{"swapped", swapped, OutcomeMismatch},
		{"short", order[:7], OutcomeMismatch},
	}

	for _, c := range cases {
		if got := Validate(c.placement, order); got != c.want {
			t.Errorf("%s: expected %s, got %s", c.name, c.want, got)
		}
	}
}

func TestScore(t *testing.T) {
	r := DefaultRules()

	if got := Score(r, 250); got != 3500 {
		t.Errorf("expected 3500, got %d", got)
	}
	if got := Score(r, -5); got != 1000 {
		t.Errorf("expected 1000 for negative time, got %d", got)
	}
}
