package main

import (
	"strings"
	"testing"

	"github.com/Seednode/cartas/game"
	"github.com/gdamore/tcell/v2"
)

// solvedRNG keeps the shuffle from moving anything.
type solvedRNG struct{}

func (solvedRNG) Intn(n int) int { return n - 1 }

func newTestTerminal(t *testing.T) *terminalGame {
	t.Helper()

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	screen.SetSize(100, 30)
	t.Cleanup(screen.Fini)

	g, err := newTerminalGame(testConfig(), screen, game.WithRNG(solvedRNG{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(g.session.Close)

	return g
}

func screenRow(screen tcell.Screen, y int) string {
	w, _ := screen.Size()

	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := screen.GetContent(x, y)
		b.WriteRune(r)
	}

	return strings.TrimRight(b.String(), " ")
}

func slotCell(i int) (int, int) {
	c := terminalLayout()[i].Center()
	return int(c.X), int(c.Y)
}

func TestTerminalLayoutFitsBelowStatus(t *testing.T) {
	layout := terminalLayout()
	if len(layout) != game.DeckSize {
		t.Fatalf("expected %d slots, got %d", game.DeckSize, len(layout))
	}

	for i, r := range layout {
		if r.Y < boardTop {
			t.Errorf("slot %d overlaps the status lines: %+v", i, r)
		}
	}

	b := layout.Bounds()
	if b.X+b.W > 80 {
		t.Errorf("board should fit 80 columns, got %+v", b)
	}
}

func TestTerminalStartAndDraw(t *testing.T) {
	g := newTestTerminal(t)

	g.draw()
	if row := screenRow(g.screen, 1); !strings.Contains(row, "Cartas") {
		t.Errorf("expected title on start screen, got %q", row)
	}

	if !g.handleKey(tcell.KeyRune, 's') {
		t.Fatal("s should not quit")
	}
	if g.session.Screen() != game.ScreenPlaying {
		t.Fatalf("expected playing, got %s", g.session.Screen())
	}

	g.draw()
	if row := screenRow(g.screen, 0); !strings.Contains(row, "Time 5:00s") {
		t.Errorf("expected timer in status line, got %q", row)
	}

	x, y := slotCell(0)
	r, _, _, _ := g.screen.GetContent(x-1, y)
	if r != '0' {
		t.Errorf("expected card label at slot 0, got %q", r)
	}
}

func TestTerminalMouseDragSwapsCards(t *testing.T) {
	g := newTestTerminal(t)
	g.handleKey(tcell.KeyEnter, 0)

	board := g.session.Board()
	first, second := board.Card(0), board.Card(1)

	x0, y0 := slotCell(0)
	x1, y1 := slotCell(1)

	g.handleMouse(x0, y0, tcell.Button1)
	if !g.session.Dragging() {
		t.Fatal("expected a drag after pressing on a card")
	}

	g.handleMouse(x1, y1, tcell.Button1)
	g.draw()

	g.handleMouse(x1, y1, tcell.ButtonNone)
	if g.session.Dragging() {
		t.Fatal("expected the drag to end on release")
	}

	if board.Card(0) != second || board.Card(1) != first {
		t.Errorf("expected swap, got %s %s", board.Card(0), board.Card(1))
	}
}

func TestTerminalIgnoresSecondaryButton(t *testing.T) {
	g := newTestTerminal(t)
	g.handleKey(tcell.KeyRune, 's')

	x, y := slotCell(2)
	g.handleMouse(x, y, tcell.Button2)

	if g.session.Dragging() {
		t.Error("secondary button should not start a drag")
	}
}

func TestTerminalCheckSolvedBoard(t *testing.T) {
	g := newTestTerminal(t)
	g.handleKey(tcell.KeyRune, 's')
	g.handleKey(tcell.KeyRune, 'c')

	if g.session.Screen() != game.ScreenEnd {
		t.Fatalf("expected end screen, got %s", g.session.Screen())
	}

	g.draw()
	if row := screenRow(g.screen, 1); !strings.Contains(row, "Correct!") {
		t.Errorf("expected success title, got %q", row)
	}

	g.handleKey(tcell.KeyRune, 'p')
	if g.session.Screen() != game.ScreenStart {
		t.Errorf("expected start screen after play again, got %s", g.session.Screen())
	}
}

func TestTerminalGuideNeedsHelp(t *testing.T) {
	g := newTestTerminal(t)
	g.handleKey(tcell.KeyRune, 's')

	g.handleKey(tcell.KeyRune, 'h')
	if g.session.GuideVisible() {
		t.Fatal("guide should stay closed before help unlocks")
	}

	board := g.session.Board()
	_ = board.Move(0, 1)
	for i := 0; i < 3; i++ {
		g.handleKey(tcell.KeyRune, 'c')
	}
	if !g.session.HelpUnlocked() {
		t.Fatal("expected help after three wrong checks")
	}

	g.handleKey(tcell.KeyRune, 'h')
	g.handleKey(tcell.KeyRune, 'z')
	if !g.session.GuideVisible() || !g.session.ZoomVisible() {
		t.Fatal("expected guide and zoom open")
	}

	g.draw()

	g.handleKey(tcell.KeyEscape, 0)
	if g.session.ZoomVisible() || !g.session.GuideVisible() {
		t.Error("escape should close the zoom first")
	}
	g.handleKey(tcell.KeyEscape, 0)
	if g.session.GuideVisible() {
		t.Error("escape should then close the guide")
	}
}

func TestTerminalQuitKeys(t *testing.T) {
	g := newTestTerminal(t)

	if g.handleKey(tcell.KeyRune, 'q') {
		t.Error("q should quit")
	}
	if g.handleKey(tcell.KeyCtrlC, 0) {
		t.Error("ctrl-c should quit")
	}
}

func TestTiltMark(t *testing.T) {
	cases := map[float64]string{0: "|", 14: "\\", -14: "/", 1.5: "|"}
	for rot, want := range cases {
		if got := tiltMark(rot); got != want {
			t.Errorf("tiltMark(%v) = %q, want %q", rot, got, want)
		}
	}
}
