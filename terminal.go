package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/Seednode/cartas/game"
	"github.com/gdamore/tcell/v2"
)

// Card geometry in terminal cells.
const (
	cellCardW  = 10
	cellCardH  = 6
	cellGap    = 2
	cellMargin = 2
	boardTop   = 3
)

var (
	styleBase   = tcell.StyleDefault
	styleTitle  = tcell.StyleDefault.Bold(true)
	styleCard   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorDarkSlateBlue)
	styleSlot   = tcell.StyleDefault.Foreground(tcell.ColorSteelBlue)
	styleOver   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleProxy  = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorGold)
	styleNotice = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleHint   = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// terminalLayout places the slots in cells, below the status lines.
func terminalLayout() game.Layout {
	layout := game.GridLayout(4, 2, cellCardW, cellCardH, cellGap, cellMargin)
	for i := range layout {
		layout[i].Y += boardTop
	}

	return layout
}

type terminalGame struct {
	cfg     *Config
	screen  tcell.Screen
	session *game.Session
	held    bool
}

func newTerminalGame(cfg *Config, screen tcell.Screen, opts ...game.Option) (*terminalGame, error) {
	session, err := game.NewSession(game.DefaultDeck(), terminalLayout(),
		append([]game.Option{game.WithRules(cfg.rules())}, opts...)...)
	if err != nil {
		return nil, err
	}

	return &terminalGame{
		cfg:     cfg,
		screen:  screen,
		session: session,
	}, nil
}

// PlayTerminal runs one session in the terminal until the player quits or
// ctx is cancelled.
func PlayTerminal(ctx context.Context, cfg *Config) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}

	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	screen.EnableMouse()
	screen.HideCursor()

	var audio game.Audio = mutedAudio{}
	if !cfg.mute {
		a := newSpeakerAudio(cfg.volume)
		defer a.Close()
		audio = a
	}

	done := make(chan struct{})
	defer close(done)

	sched := newLoopScheduler(done)

	g, err := newTerminalGame(cfg, screen, game.WithScheduler(sched), game.WithAudio(audio))
	if err != nil {
		return err
	}
	defer g.session.Close()

	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}

			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	g.draw()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !g.handleEvent(ev) {
				return nil
			}
			g.draw()
		case task := <-sched.tasks:
			task()
			g.draw()
		}
	}
}

// handleEvent reports false once the player asks to quit.
func (g *terminalGame) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return g.handleKey(ev.Key(), ev.Rune())
	case *tcell.EventMouse:
		x, y := ev.Position()
		g.handleMouse(x, y, ev.Buttons())
	case *tcell.EventResize:
		g.screen.Sync()
	}

	return true
}

func (g *terminalGame) handleKey(key tcell.Key, r rune) bool {
	s := g.session

	switch key {
	case tcell.KeyCtrlC:
		return false
	case tcell.KeyEscape:
		switch {
		case s.ZoomVisible():
			s.HideZoom()
		case s.GuideVisible():
			s.HideGuide()
		}
		return true
	case tcell.KeyEnter:
		s.Start()
		return true
	case tcell.KeyRune:
	default:
		return true
	}

	switch r {
	case 'q':
		return false
	case 's':
		s.Start()
	case 'c':
		outcome := s.Check()
		if outcome != game.OutcomeNone {
			logf(g.cfg, "GAMES: Check: %s after %d attempts", outcome, s.Attempts())
		}
	case 'r':
		if s.Screen() == game.ScreenPlaying {
			s.Restart()
		}
	case 'p':
		s.PlayAgain()
	case 'h':
		if s.GuideVisible() {
			s.HideGuide()
		} else {
			s.ShowGuide()
		}
	case 'z':
		if s.ZoomVisible() {
			s.HideZoom()
		} else {
			s.ShowZoom()
		}
	}

	return true
}

func cellPoint(x, y int) game.Point {
	return game.Point{X: float64(x) + 0.5, Y: float64(y) + 0.5}
}

// handleMouse turns tcell's button-state reports into press, move and
// release.
func (g *terminalGame) handleMouse(x, y int, buttons tcell.ButtonMask) {
	s := g.session
	p := cellPoint(x, y)

	down := buttons&tcell.Button1 != 0

	switch {
	case down && !g.held:
		g.held = true

		slot := s.Board().SlotAt(p)
		if slot < 0 {
			return
		}
		s.Press(slot, p, game.ButtonPrimary)
	case down:
		s.Move(p)
	case g.held:
		g.held = false
		s.Move(p)
		s.Release()
	case buttons&tcell.Button2 != 0:
		if slot := s.Board().SlotAt(p); slot >= 0 {
			s.Press(slot, p, game.ButtonSecondary)
		}
	}
}

func drawText(screen tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func drawBox(screen tcell.Screen, r game.Rect, style tcell.Style, fill bool) {
	x0, y0 := int(r.X), int(r.Y)
	x1, y1 := x0+int(r.W)-1, y0+int(r.H)-1

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			ch := ' '
			switch {
			case x == x0 && y == y0:
				ch = tcell.RuneULCorner
			case x == x1 && y == y0:
				ch = tcell.RuneURCorner
			case x == x0 && y == y1:
				ch = tcell.RuneLLCorner
			case x == x1 && y == y1:
				ch = tcell.RuneLRCorner
			case y == y0 || y == y1:
				ch = tcell.RuneHLine
			case x == x0 || x == x1:
				ch = tcell.RuneVLine
			case !fill:
				continue
			}
			screen.SetContent(x, y, ch, nil, style)
		}
	}
}

func drawLabel(screen tcell.Screen, r game.Rect, style tcell.Style, label string) {
	x := int(r.X) + (int(r.W)-len(label))/2
	y := int(r.Y) + int(r.H)/2
	drawText(screen, x, y, style, label)
}

// tiltMark shows which way the held card leans.
func tiltMark(rotation float64) string {
	switch {
	case rotation > 2:
		return "\\"
	case rotation < -2:
		return "/"
	default:
		return "|"
	}
}

func (g *terminalGame) draw() {
	g.screen.Clear()
	drawView(g.screen, g.session.View(), g.session.Deck())
	g.screen.Show()
}

// drawView renders one snapshot. It only reads v.
func drawView(screen tcell.Screen, v game.View, deck game.Deck) {
	switch v.Screen {
	case game.ScreenStart:
		drawText(screen, 2, 1, styleTitle, "Cartas")
		drawText(screen, 2, 3, styleBase, "Drag the eight cards into the right order before the clock runs out.")
		drawText(screen, 2, 5, styleHint, "[s] start   [q] quit")
		return
	case game.ScreenEnd:
		if v.Result != nil {
			drawText(screen, 2, 1, styleTitle, v.Result.Title)
			drawText(screen, 2, 3, styleBase, fmt.Sprintf("Final score: %d", v.Result.Score))
		}
		drawText(screen, 2, 5, styleHint, "[p] play again   [h] guide   [q] quit")
		if v.Guide {
			drawGuide(screen, deck, v.Zoom, 7)
		}
		return
	}

	status := fmt.Sprintf("Time %s   Score %d   Attempts %d", v.Timer, v.Score, v.Attempts)
	drawText(screen, 2, 0, styleTitle, status)

	hints := "[c] check   [r] restart   [q] quit"
	if v.HelpUnlocked {
		hints += "   [h] help"
	}
	drawText(screen, 2, 1, styleHint, hints)

	if v.Notice != nil {
		drawText(screen, 2, 2, styleNotice, v.Notice.Message)
	}

	for _, slot := range v.Slots {
		style := styleSlot
		if slot.Over {
			style = styleOver
		}

		if slot.Card == game.NoCard || slot.Hidden {
			drawBox(screen, slot.Rect, style, false)
			continue
		}

		cardStyle := styleCard
		if slot.Over {
			cardStyle = styleCard.Foreground(tcell.ColorYellow)
		}
		drawBox(screen, slot.Rect, cardStyle, true)
		drawLabel(screen, slot.Rect, cardStyle, slot.Label)
	}

	if d := v.Drag; d != nil {
		r := game.Rect{
			X: d.X - d.Rect.W/2,
			Y: d.Y - d.Rect.H/2,
			W: d.Rect.W,
			H: d.Rect.H,
		}
		drawBox(screen, r, styleProxy, true)
		drawLabel(screen, r, styleProxy, d.Card.Label()+" "+tiltMark(d.Rotation))
	}

	if v.Guide {
		drawGuide(screen, deck, v.Zoom, int(v.Board.Y+v.Board.H)+1)
	}
}

// drawGuide lists the solved order, with file names when zoomed.
func drawGuide(screen tcell.Screen, deck game.Deck, zoom bool, y int) {
	labels := make([]string, 0, deck.Len())
	for _, c := range deck.Order {
		if zoom {
			labels = append(labels, string(c))
		} else {
			labels = append(labels, c.Label())
		}
	}

	drawText(screen, 2, y, styleTitle, "Solution")

	if !zoom {
		drawText(screen, 2, y+1, styleBase, strings.Join(labels, " "))
		drawText(screen, 2, y+2, styleHint, "[z] zoom   [esc] close")
		return
	}

	half := (len(labels) + 1) / 2
	drawText(screen, 2, y+1, styleBase, strings.Join(labels[:half], "  "))
	drawText(screen, 2, y+2, styleBase, strings.Join(labels[half:], "  "))
	drawText(screen, 2, y+3, styleHint, "[esc] close")
}
