/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package game holds the card-ordering puzzle model: the deck, the slot
// board, the drag gesture, the countdown and the session that ties them
// together. Nothing in here draws or blocks; front-ends feed it pointer and
// button events and render View snapshots.
package game

import (
	"fmt"
	"path"
)

// Card is an image identifier. It doubles as the comparison key when the
// board is validated.
type Card string

// NoCard marks an empty slot.
const NoCard Card = ""

const (
	DeckSize = 8
	AssetDir = "Cartas"
)

// Deck is the fixed set of cards in their solved order.
type Deck struct {
	Order []Card
}

// DefaultDeck returns CartasPFE-01.png through CartasPFE-08.png.
func DefaultDeck() Deck {
	order := make([]Card, DeckSize)
	for i := range order {
		order[i] = Card(fmt.Sprintf("CartasPFE-%02d.png", i+1))
	}

	return Deck{Order: order}
}

func (d Deck) Len() int {
	return len(d.Order)
}

func (d Deck) Contains(c Card) bool {
	return d.Index(c) >= 0
}

// Index returns the solved position of c, or -1.
func (d Deck) Index(c Card) int {
	for i, o := range d.Order {
		if o == c {
			return i
		}
	}

	return -1
}

// Image returns the asset path of c relative to the asset root.
func (d Deck) Image(c Card) string {
	if c == NoCard {
		return ""
	}

	return path.Join(AssetDir, string(c))
}

// Label is the short name shown on terminals, "01" for CartasPFE-01.png.
func (c Card) Label() string {
	s := string(c)
	if ext := path.Ext(s); ext != "" {
		s = s[:len(s)-len(ext)]
	}
	if len(s) > 2 {
		s = s[len(s)-2:]
	}

	return s
}
