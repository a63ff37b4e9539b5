package game

import (
	"fmt"
	"time"
)

// Screen is one of the three mutually exclusive views.
type Screen int

const (
	ScreenStart Screen = iota
	ScreenPlaying
	ScreenEnd
)

func (s Screen) String() string {
	switch s {
	case ScreenPlaying:
		return "playing"
	case ScreenEnd:
		return "end"
	default:
		return "start"
	}
}

func (s Screen) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Rules are the tunable numbers of a round.
type Rules struct {
	RoundSeconds      int
	HelpAfterSeconds  int
	HelpAfterAttempts int
	BaseScore         int
	SecondBonus       int
	FrameInterval     time.Duration
}

func DefaultRules() Rules {
	return Rules{
		RoundSeconds:      DefaultRoundSeconds,
		HelpAfterSeconds:  60,
		HelpAfterAttempts: 2,
		BaseScore:         1000,
		SecondBonus:       10,
		FrameInterval:     DefaultFrameInterval,
	}
}

// Audio is the optional background music. Play may fail, e.g. when the host
// refuses playback before any user interaction; the session ignores that.
type Audio interface {
	Play() error
	Pause()
	Rewind()
}

// EventKind names a user-visible notice.
type EventKind string

const (
	EventIncomplete   EventKind = "incomplete"
	EventIncorrect    EventKind = "incorrect"
	EventHelpUnlocked EventKind = "help_unlocked"
	EventSolved       EventKind = "solved"
	EventTimeUp       EventKind = "time_up"
)

// Event is non-blocking feedback for the front-end to show inline.
type Event struct {
	Kind     EventKind `json:"kind"`
	Message  string    `json:"message"`
	Attempts int       `json:"attempts"`
	Score    int       `json:"score"`
}

const (
	msgIncomplete   = "Some slots are missing cards."
	msgIncorrect    = "The order is not correct, you have made %d attempts. Keep trying."
	msgHelpUnlocked = "Help is available."
	titleSolved     = "Correct! 🎉"
	titleTimeUp     = "Time's up ⏳"
)

// Result is what the end screen shows.
type Result struct {
	Success bool   `json:"success"`
	Title   string `json:"title"`
	Score   int    `json:"score"`
}

type Option func(*Session)

func WithRules(r Rules) Option {
	return func(s *Session) { s.rules = r }
}

func WithRNG(rng RNG) Option {
	return func(s *Session) { s.rng = rng }
}

func WithScheduler(sched Scheduler) Option {
	return func(s *Session) { s.sched = sched }
}

func WithAudio(a Audio) Option {
	return func(s *Session) { s.audio = a }
}

// WithNotify registers a callback for every Event.
func WithNotify(fn func(Event)) Option {
	return func(s *Session) { s.notify = fn }
}

// Session is one player's game: the board, the active gesture, the round
// counters and the current screen. It is driven from a single event loop
// and is not safe for concurrent use.
type Session struct {
	rules  Rules
	deck   Deck
	rng    RNG
	sched  Scheduler
	audio  Audio
	notify func(Event)

	board *Board
	drag  *Dragger
	clock *Countdown
	timer repeating

	screen       Screen
	attempts     int
	score        int
	helpUnlocked bool
	guide        bool
	zoom         bool
	result       *Result
	last         *Event
}

// NewSession builds a session on layout with a freshly shuffled board,
// showing the start screen. The layout must have one slot per deck card.
func NewSession(deck Deck, layout Layout, opts ...Option) (*Session, error) {
	s := &Session{
		rules: DefaultRules(),
		deck:  deck,
		rng:   StdRNG{},
	}
	for _, opt := range opts {
		opt(s)
	}

	if len(layout) != deck.Len() {
		return nil, fmt.Errorf("layout has %d slots for %d cards: %w", len(layout), deck.Len(), ErrBoardSize)
	}

	s.board = NewBoard(layout)
	s.drag = NewDragger(s.board, s.sched, s.rules.FrameInterval)
	s.clock = NewCountdown(s.rules.RoundSeconds)
	s.timer = repeating{sched: s.sched}

	if err := s.board.Fill(Shuffle(deck.Order, s.rng)); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Session) Board() *Board {
	return s.board
}

func (s *Session) Deck() Deck {
	return s.deck
}

func (s *Session) Screen() Screen {
	return s.screen
}

func (s *Session) Attempts() int {
	return s.attempts
}

func (s *Session) Score() int {
	return s.score
}

func (s *Session) Remaining() int {
	return s.clock.Remaining()
}

func (s *Session) HelpUnlocked() bool {
	return s.helpUnlocked
}

func (s *Session) GuideVisible() bool {
	return s.guide
}

func (s *Session) ZoomVisible() bool {
	return s.zoom
}

func (s *Session) Result() *Result {
	return s.result
}

func (s *Session) Dragging() bool {
	return s.drag.Dragging()
}

// TimerRunning reports whether the one-second tick is scheduled.
func (s *Session) TimerRunning() bool {
	return s.timer.running()
}

func (s *Session) emit(e Event) {
	s.last = &e
	if s.notify != nil {
		s.notify(e)
	}
}

func (s *Session) playAudio() {
	if s.audio == nil {
		return
	}

	_ = s.audio.Play()
}

func (s *Session) stopAudio() {
	if s.audio == nil {
		return
	}

	s.audio.Pause()
	s.audio.Rewind()
}

// newRound reshuffles and resets every round counter, then starts the clock.
func (s *Session) newRound() {
	s.drag.Cancel()
	s.timer.cancel()

	_ = s.board.Fill(Shuffle(s.deck.Order, s.rng))
	s.board.Highlight(-1)

	s.attempts = 0
	s.score = 0
	s.helpUnlocked = false
	s.result = nil
	s.last = nil

	s.clock.Reset()
	s.screen = ScreenPlaying
	s.timer.start(time.Second, s.tick)
}

// Start leaves the start screen and begins a round.
func (s *Session) Start() bool {
	if s.screen != ScreenStart {
		return false
	}

	s.newRound()
	s.playAudio()

	return true
}

// Restart throws the current round away and begins a fresh one, skipping
// the end screen.
func (s *Session) Restart() {
	s.newRound()
	s.playAudio()
}

// PlayAgain returns from the end screen to the start screen.
func (s *Session) PlayAgain() bool {
	if s.screen != ScreenEnd {
		return false
	}

	s.screen = ScreenStart

	return true
}

func (s *Session) unlockHelp() {
	if s.helpUnlocked {
		return
	}

	s.helpUnlocked = true
	s.emit(Event{Kind: EventHelpUnlocked, Message: msgHelpUnlocked, Attempts: s.attempts})
}

func (s *Session) tick() {
	if s.screen != ScreenPlaying {
		s.timer.cancel()
		return
	}

	remaining := s.clock.Tick()

	if remaining <= s.clock.Initial()-s.rules.HelpAfterSeconds {
		s.unlockHelp()
	}

	if remaining <= 0 {
		s.end(false)
	}
}

func (s *Session) end(success bool) {
	s.timer.cancel()
	s.drag.Cancel()

	r := &Result{Success: success, Title: titleTimeUp}
	if success {
		r.Title = titleSolved
		r.Score = s.score
	}

	s.result = r
	s.screen = ScreenEnd
	s.stopAudio()

	if success {
		s.emit(Event{Kind: EventSolved, Message: r.Title, Attempts: s.attempts, Score: r.Score})
	} else {
		s.emit(Event{Kind: EventTimeUp, Message: r.Title, Attempts: s.attempts})
	}
}

// Check validates the board. A full board always counts as an attempt, and
// the help threshold is evaluated before the comparison.
func (s *Session) Check() Outcome {
	if s.screen != ScreenPlaying {
		return OutcomeNone
	}

	outcome := Validate(s.board.Placement(), s.deck.Order)
	if outcome == OutcomeIncomplete {
		s.emit(Event{Kind: EventIncomplete, Message: msgIncomplete, Attempts: s.attempts})
		return outcome
	}

	s.attempts++

	if s.attempts > s.rules.HelpAfterAttempts {
		s.unlockHelp()
	}

	if outcome == OutcomeMatch {
		s.score = Score(s.rules, s.clock.Remaining())
		s.timer.cancel()
		s.guide = true
		s.end(true)

		return outcome
	}

	s.emit(Event{
		Kind:     EventIncorrect,
		Message:  fmt.Sprintf(msgIncorrect, s.attempts),
		Attempts: s.attempts,
	})

	return outcome
}

// Press starts dragging the card in slot.
func (s *Session) Press(slot int, p Point, button Button) bool {
	if s.screen != ScreenPlaying {
		return false
	}

	return s.drag.Press(slot, p, button)
}

func (s *Session) Move(p Point) bool {
	return s.drag.Move(p)
}

// Frame advances the drag proxy by one display frame.
func (s *Session) Frame() {
	s.drag.Frame()
}

func (s *Session) Release() (Drop, bool) {
	return s.drag.Release()
}

// ShowGuide opens the solution guide once help is unlocked.
func (s *Session) ShowGuide() bool {
	if !s.helpUnlocked && !s.guide {
		return false
	}

	s.guide = true

	return true
}

func (s *Session) HideGuide() {
	s.guide = false
	s.zoom = false
}

// ShowZoom enlarges the guide image.
func (s *Session) ShowZoom() bool {
	if !s.guide {
		return false
	}

	s.zoom = true

	return true
}

func (s *Session) HideZoom() {
	s.zoom = false
}

// Close stops every scheduled tick.
func (s *Session) Close() {
	s.drag.Cancel()
	s.timer.cancel()
}
