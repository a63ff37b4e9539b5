package game

import (
	"math"
	"time"
)

// Button identifies the pointer button that started a gesture. Touch
// contacts report ButtonPrimary.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonMiddle
	ButtonSecondary
)

const (
	maxTilt    = 14.0
	tiltFactor = 0.6
	proxyScale = 1.06

	DefaultFrameInterval = 16 * time.Millisecond
)

// Proxy is the visual clone that follows the pointer while dragging.
type Proxy struct {
	Card     Card
	Rect     Rect
	Pos      Point
	Rotation float64
	Scale    float64
	// Moved is false until the first frame, while the proxy still sits on the
	// card's slot rectangle.
	Moved bool
}

// Gesture is the single active drag.
type Gesture struct {
	Card   Card
	Origin int

	cur  Point
	prev Point

	proxy Proxy
}

func (g *Gesture) Pointer() Point {
	return g.cur
}

func (g *Gesture) Proxy() Proxy {
	return g.proxy
}

// Drop describes how a gesture was resolved.
type Drop struct {
	Card      Card
	From      int
	To        int
	Displaced Card
}

// Moved reports whether the drop changed the board.
func (d Drop) Moved() bool {
	return d.From != d.To
}

func tilt(dx float64) float64 {
	return math.Max(-maxTilt, math.Min(maxTilt, dx*tiltFactor))
}

// Dragger tracks at most one pointer gesture over a board. It owns the
// per-frame tick: the tick starts on Press and stops on Release or Cancel.
type Dragger struct {
	board    *Board
	interval time.Duration
	frames   repeating

	gesture *Gesture
}

func NewDragger(board *Board, sched Scheduler, interval time.Duration) *Dragger {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}

	return &Dragger{
		board:    board,
		interval: interval,
		frames:   repeating{sched: sched},
	}
}

// Active returns the current gesture, or nil when idle.
func (d *Dragger) Active() *Gesture {
	return d.gesture
}

func (d *Dragger) Dragging() bool {
	return d.gesture != nil
}

// Press starts a gesture on the card in slot. It returns false when the
// press is ignored: wrong button, empty slot, or a gesture already running.
func (d *Dragger) Press(slot int, p Point, button Button) bool {
	if d.gesture != nil || button != ButtonPrimary {
		return false
	}

	card := d.board.Card(slot)
	if card == NoCard {
		return false
	}

	rect, _ := d.board.Rect(slot)

	d.gesture = &Gesture{
		Card:   card,
		Origin: slot,
		cur:    p,
		prev:   p,
		proxy: Proxy{
			Card:  card,
			Rect:  rect,
			Pos:   rect.Center(),
			Scale: 1,
		},
	}

	d.frames.start(d.interval, d.Frame)

	return true
}

// Move records the latest pointer position.
func (d *Dragger) Move(p Point) bool {
	if d.gesture == nil {
		return false
	}

	d.gesture.cur = p

	return true
}

// Frame repositions the proxy and highlights the slot under the pointer. It
// is called by the scheduler once per display frame while dragging.
func (d *Dragger) Frame() {
	g := d.gesture
	if g == nil {
		return
	}

	dx := g.cur.X - g.prev.X

	g.proxy.Pos = g.cur
	g.proxy.Rotation = tilt(dx)
	g.proxy.Scale = proxyScale
	g.proxy.Moved = true

	d.board.Highlight(d.board.SlotAt(g.cur))

	g.prev = g.cur
}

// Release resolves the drop target under the last pointer position and ends
// the gesture. The second return is false when no gesture was active.
func (d *Dragger) Release() (Drop, bool) {
	g := d.gesture
	if g == nil {
		return Drop{}, false
	}

	d.frames.cancel()

	target := d.board.SlotAt(g.cur)
	if target < 0 {
		target = d.board.Nearest(g.cur)
	}
	if target < 0 {
		target = g.Origin
	}

	drop := Drop{Card: g.Card, From: g.Origin, To: target}
	if target != g.Origin {
		drop.Displaced = d.board.Card(target)
		_ = d.board.Move(g.Origin, target)
	}

	d.board.Highlight(-1)
	d.gesture = nil

	return drop, true
}

// Cancel ends a gesture without moving anything.
func (d *Dragger) Cancel() {
	if d.gesture == nil {
		return
	}

	d.frames.cancel()
	d.board.Highlight(-1)
	d.gesture = nil
}
