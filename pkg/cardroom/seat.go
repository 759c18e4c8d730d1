package cardroom

import (
	"time"

	"clubsocial-server/pkg/deck"
)

// Seat is a numbered position at a table. A seat with PlayerID == 0 is empty
// and holds no cards, no contribution, and no flags.
type Seat struct {
	Number       int
	PlayerID     int64
	DisplayName  string
	Chips        int
	StreetBet    int
	Folded       bool
	AllIn        bool
	Revealed     deck.Hand
	LastActionAt time.Time

	// holeCards are visible only to the occupant until showdown or an
	// explicit reveal
	holeCards deck.Hand

	// inHand is true once the seat was dealt into the current hand. A player
	// who sits down mid-hand waits for the next deal.
	inHand bool

	// acted is true once the seat has voluntarily acted since the last full
	// bet or raise. A short all-in raise leaves it set, which is what keeps a
	// short raise from reopening the betting.
	acted bool

	// optioned is true once the seat has no pending option this street: a
	// voluntary action or a posted blind closes it, and a full bet or raise
	// reopens it for everyone else
	optioned bool
}

// Occupied returns true if a player holds the seat
func (s *Seat) Occupied() bool {
	return s.PlayerID != 0
}

// InHand returns true if the seat was dealt into the current hand
func (s *Seat) InHand() bool {
	return s.inHand
}

// HoleCards returns a copy of the seat's private cards
func (s *Seat) HoleCards() deck.Hand {
	return s.holeCards.Clone()
}

// canAct reports whether the seat may still make betting decisions
func (s *Seat) canAct() bool {
	return s.Occupied() && s.inHand && !s.Folded && !s.AllIn
}

// contesting reports whether the seat is still eligible to win the pot
func (s *Seat) contesting() bool {
	return s.Occupied() && s.inHand && !s.Folded
}

// pay moves up to amount chips from the stack into the seat's street
// contribution, going all-in if the stack runs out. Returns the amount moved.
func (s *Seat) pay(amount int) int {
	if amount > s.Chips {
		amount = s.Chips
	}

	s.Chips -= amount
	s.StreetBet += amount

	if s.Chips == 0 {
		s.AllIn = true
	}

	return amount
}

// resetForHand clears all per-hand state, including the publicly revealed
// cards from the previous showdown
func (s *Seat) resetForHand() {
	s.StreetBet = 0
	s.Folded = false
	s.AllIn = false
	s.holeCards = nil
	s.Revealed = nil
	s.inHand = false
	s.acted = false
	s.optioned = false
}

// resetForStreet zeroes the street contribution when a new street opens
func (s *Seat) resetForStreet() {
	s.StreetBet = 0
	s.acted = false
	s.optioned = false
}

// vacate empties the seat entirely
func (s *Seat) vacate() {
	number := s.Number
	*s = Seat{Number: number}
}
