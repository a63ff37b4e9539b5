package game

import (
	"errors"
	"math"
)

var (
	ErrSlotRange = errors.New("slot index out of range")
	ErrBoardSize = errors.New("card count does not match slot count")
)

// Slot is a fixed drop target. It holds at most one card.
type Slot struct {
	Index int
	Rect  Rect

	card Card
	over bool
}

func (s *Slot) Card() Card {
	return s.card
}

func (s *Slot) Empty() bool {
	return s.card == NoCard
}

// Over reports whether the slot is highlighted as the current drop target.
func (s *Slot) Over() bool {
	return s.over
}

// Board owns the ordered slot collection. Contents only change through Fill
// and Move.
type Board struct {
	slots []*Slot
}

func NewBoard(layout Layout) *Board {
	slots := make([]*Slot, len(layout))
	for i, r := range layout {
		slots[i] = &Slot{Index: i, Rect: r}
	}

	return &Board{slots: slots}
}

// Slots returns the slots in visual order.
func (b *Board) Slots() []*Slot {
	return b.slots
}

func (b *Board) Len() int {
	return len(b.slots)
}

func (b *Board) valid(i int) bool {
	return i >= 0 && i < len(b.slots)
}

// Card returns the card in slot i, or NoCard when i is empty or out of range.
func (b *Board) Card(i int) Card {
	if !b.valid(i) {
		return NoCard
	}

	return b.slots[i].card
}

// Rect returns the rectangle of slot i.
func (b *Board) Rect(i int) (Rect, bool) {
	if !b.valid(i) {
		return Rect{}, false
	}

	return b.slots[i].Rect, true
}

// Fill places cards[i] in slot i, replacing everything on the board.
func (b *Board) Fill(cards []Card) error {
	if len(cards) != len(b.slots) {
		return ErrBoardSize
	}

	for i, c := range cards {
		b.slots[i].card = c
		b.slots[i].over = false
	}

	return nil
}

// Placement returns the cards in slot order.
func (b *Board) Placement() []Card {
	out := make([]Card, len(b.slots))
	for i, s := range b.slots {
		out[i] = s.card
	}

	return out
}

// Move puts the card of slot from into slot to. Whatever was in to goes back
// to from, so cards are never duplicated or lost.
func (b *Board) Move(from, to int) error {
	if !b.valid(from) || !b.valid(to) {
		return ErrSlotRange
	}
	if from == to {
		return nil
	}

	b.slots[from].card, b.slots[to].card = b.slots[to].card, b.slots[from].card

	return nil
}

// SlotAt returns the slot whose rectangle contains p, or -1.
func (b *Board) SlotAt(p Point) int {
	for _, s := range b.slots {
		if s.Rect.Contains(p) {
			return s.Index
		}
	}

	return -1
}

// Nearest returns the slot whose center is closest to p, or -1 on an empty
// board.
func (b *Board) Nearest(p Point) int {
	best, bestD := -1, math.Inf(1)
	for _, s := range b.slots {
		if d := distance(s.Rect.Center(), p); d < bestD {
			best, bestD = s.Index, d
		}
	}

	return best
}

// Highlight marks slot i as over and clears every other slot. Pass -1 to
// clear them all.
func (b *Board) Highlight(i int) {
	for _, s := range b.slots {
		s.over = s.Index == i
	}
}

// Highlighted returns the index of the highlighted slot, or -1.
func (b *Board) Highlighted() int {
	for _, s := range b.slots {
		if s.over {
			return s.Index
		}
	}

	return -1
}
