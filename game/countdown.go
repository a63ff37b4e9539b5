package game

import "fmt"

const DefaultRoundSeconds = 300

// Countdown counts whole seconds down from its initial value.
type Countdown struct {
	initial   int
	remaining int
}

func NewCountdown(seconds int) *Countdown {
	if seconds <= 0 {
		seconds = DefaultRoundSeconds
	}

	return &Countdown{initial: seconds, remaining: seconds}
}

func (c *Countdown) Reset() {
	c.remaining = c.initial
}

// Tick takes one second off and returns what is left.
func (c *Countdown) Tick() int {
	c.remaining--

	return c.remaining
}

func (c *Countdown) Remaining() int {
	return c.remaining
}

func (c *Countdown) Initial() int {
	return c.initial
}

// Elapsed returns the seconds since the last reset.
func (c *Countdown) Elapsed() int {
	return c.initial - c.remaining
}

// String formats the remaining time as M:SSs, e.g. 5:00s or 0:07s.
func (c *Countdown) String() string {
	return FormatClock(c.remaining)
}

func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}

	return fmt.Sprintf("%d:%02ds", seconds/60, seconds%60)
}
