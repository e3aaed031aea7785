package game

import (
	"fmt"
	"time"
)

// MaxGuesses closes a session once reached.
const MaxGuesses = 8

// Day identifies one game day. All date windows in the service derive from it
// so the read and write paths agree on when "today" starts.
type Day struct {
	t time.Time
}

// DayOf truncates now to UTC midnight.
func DayOf(now time.Time) Day {
	utc := now.UTC()
	return Day{t: time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)}
}

func (d Day) Start() time.Time { return d.t }

func (d Day) String() string { return d.t.Format("2006-01-02") }

// DailyTarget pairs a game day with the mystery player chosen for it.
type DailyTarget struct {
	ID       int64
	Day      Day
	PlayerID int64
}

// Guess is one attempt inside a session. Number starts at 1 and is contiguous
// within its game.
type Guess struct {
	ID       int64
	GameID   int64
	PlayerID int64
	Number   int
	Made     time.Time
}

// Session is one user's guessing record for one game day.
type Session struct {
	ID      int64
	UserID  string
	Day     Day
	Guesses []Guess
}

// LastNumber returns the highest guess number, 0 for a fresh session.
func (s Session) LastNumber() int {
	last := 0
	for _, g := range s.Guesses {
		if g.Number > last {
			last = g.Number
		}
	}
	return last
}

// Exhausted reports whether the session accepts no further guesses.
func (s Session) Exhausted() bool {
	return s.LastNumber() >= MaxGuesses
}

func (g Guess) Validate() error {
	if g.GameID == 0 {
		return fmt.Errorf("guess game id is required")
	}
	if g.PlayerID == 0 {
		return fmt.Errorf("guess player id is required")
	}
	if g.Number < 1 || g.Number > MaxGuesses {
		return fmt.Errorf("guess number %d out of range 1..%d", g.Number, MaxGuesses)
	}

	return nil
}
