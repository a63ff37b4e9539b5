package game

// Outcome is the verdict on a board.
type Outcome int

const (
	// OutcomeNone means the check did not run, e.g. outside a round.
	OutcomeNone Outcome = iota
	OutcomeIncomplete
	OutcomeMismatch
	OutcomeMatch
)

func (o Outcome) String() string {
	switch o {
	case OutcomeIncomplete:
		return "incomplete"
	case OutcomeMismatch:
		return "mismatch"
	case OutcomeMatch:
		return "match"
	default:
		return "none"
	}
}

// Validate compares placement with order, slot by slot.
func Validate(placement, order []Card) Outcome {
	for _, c := range placement {
		if c == NoCard {
			return OutcomeIncomplete
		}
	}

	if len(placement) != len(order) {
		return OutcomeMismatch
	}

	for i := range placement {
		if placement[i] != order[i] {
			return OutcomeMismatch
		}
	}

	return OutcomeMatch
}

// Score is the base score plus a bonus per remaining second.
func Score(r Rules, remaining int) int {
	return r.BaseScore + max(0, remaining)*r.SecondBonus
}
