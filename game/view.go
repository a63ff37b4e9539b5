package game

// SlotView is one slot as a front-end draws it.
type SlotView struct {
	Index  int    `json:"index"`
	Rect   Rect   `json:"rect"`
	Card   Card   `json:"card,omitempty"`
	Label  string `json:"label,omitempty"`
	Image  string `json:"image,omitempty"`
	Over   bool   `json:"over"`
	Hidden bool   `json:"hidden"`
}

// DragView is the proxy following the pointer.
type DragView struct {
	Card     Card    `json:"card"`
	Image    string  `json:"image"`
	Origin   int     `json:"origin"`
	Rect     Rect    `json:"rect"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation float64 `json:"rotation"`
	Scale    float64 `json:"scale"`
}

// View is a complete snapshot of the session for rendering.
type View struct {
	Screen       Screen     `json:"screen"`
	Timer        string     `json:"timer"`
	Remaining    int        `json:"remaining"`
	Score        int        `json:"score"`
	Attempts     int        `json:"attempts"`
	HelpUnlocked bool       `json:"help_unlocked"`
	Guide        bool       `json:"guide"`
	Zoom         bool       `json:"zoom"`
	Board        Rect       `json:"board"`
	Slots        []SlotView `json:"slots"`
	Drag         *DragView  `json:"drag,omitempty"`
	Result       *Result    `json:"result,omitempty"`
	Notice       *Event     `json:"notice,omitempty"`
}

func (s *Session) View() View {
	v := View{
		Screen:       s.screen,
		Timer:        s.clock.String(),
		Remaining:    s.clock.Remaining(),
		Score:        s.score,
		Attempts:     s.attempts,
		HelpUnlocked: s.helpUnlocked,
		Guide:        s.guide,
		Zoom:         s.zoom,
		Result:       s.result,
		Notice:       s.last,
	}

	layout := make(Layout, 0, s.board.Len())
	for _, slot := range s.board.Slots() {
		layout = append(layout, slot.Rect)
	}
	v.Board = layout.Bounds()

	g := s.drag.Active()

	v.Slots = make([]SlotView, 0, s.board.Len())
	for _, slot := range s.board.Slots() {
		sv := SlotView{
			Index: slot.Index,
			Rect:  slot.Rect,
			Card:  slot.Card(),
			Image: s.deck.Image(slot.Card()),
			Over:  slot.Over(),
		}
		if !slot.Empty() {
			sv.Label = slot.Card().Label()
		}
		if g != nil && g.Origin == slot.Index {
			sv.Hidden = true
		}
		v.Slots = append(v.Slots, sv)
	}

	if g != nil {
		p := g.Proxy()
		v.Drag = &DragView{
			Card:     g.Card,
			Image:    s.deck.Image(g.Card),
			Origin:   g.Origin,
			Rect:     p.Rect,
			X:        p.Pos.X,
			Y:        p.Pos.Y,
			Rotation: p.Rotation,
			Scale:    p.Scale,
		}
	}

	return v
}
