package game

import "testing"

func TestDefaultDeck(t *testing.T) {
	d := DefaultDeck()

	if d.Len() != DeckSize {
		t.Fatalf("expected %d cards, got %d", DeckSize, d.Len())
	}
	if d.Order[0] != "CartasPFE-01.png" || d.Order[7] != "CartasPFE-08.png" {
		t.Errorf("unexpected order: %v", d.Order)
	}
	if d.Index("CartasPFE-03.png") != 2 {
		t.Errorf("expected index 2, got %d", d.Index("CartasPFE-03.png"))
	}
	if d.Contains("CartasPFE-09.png") {
		t.Error("deck should not contain card 09")
	}
}

func TestDeckImage(t *testing.T) {
	d := DefaultDeck()

	if got := d.Image("CartasPFE-05.png"); got != "Cartas/CartasPFE-05.png" {
		t.Errorf("unexpected image path %q", got)
	}
	if got := d.Image(NoCard); got != "" {
		t.Errorf("expected empty image path for NoCard, got %q", got)
	}
}

func TestCardLabel(t *testing.T) {
	for card, want := range map[Card]string{
		"CartasPFE-01.png": "01",
		"CartasPFE-08.png": "08",
		"x.png":            "x",
	} {
		if got := card.Label(); got != want {
			t.Errorf("%s: expected %q, got %q", card, want, got)
		}
	}
}
