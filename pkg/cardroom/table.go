package cardroom

import (
	"time"

	"clubsocial-server/pkg/deck"
)

// limits for table creation
const (
	MinSeatCount = 2
	MaxSeatCount = 10
)

// Table is the aggregate for one poker table. All mutation must go through the
// store's serialized per-table update path; the table itself is not safe for
// concurrent use.
type Table struct {
	ID         string
	Variant    Variant
	SmallBlind int
	BigBlind   int
	MinPlayers int

	Stage       Stage
	DealerSeat  int
	SeatToAct   int
	Pot         int
	Community   deck.Hand
	HandID      int64
	ActingSince time.Time

	seats []*Seat

	// deck holds the undealt remainder for the current hand. Keeping it here
	// means each street draws from the same shuffle instead of rebuilding and
	// filtering a fresh deck per street.
	deck *deck.Deck
}

// NewTable returns a new idle table with all seats empty
func NewTable(id string, variant Variant, smallBlind, bigBlind, seatCount, minPlayers int) (*Table, error) {
	if id == "" {
		return nil, validationError("table id is required")
	}

	if !variant.Valid() {
		return nil, validationError("%s is not a valid variant", variant)
	}

	if smallBlind <= 0 || bigBlind <= 0 {
		return nil, validationError("blinds must be positive")
	}

	if smallBlind > bigBlind {
		return nil, validationError("small blind cannot exceed the big blind")
	}

	if seatCount < MinSeatCount || seatCount > MaxSeatCount {
		return nil, validationError("seat count must be between %d and %d", MinSeatCount, MaxSeatCount)
	}

	if minPlayers < 2 || minPlayers > seatCount {
		return nil, validationError("minimum players must be between 2 and the seat count")
	}

	seats := make([]*Seat, seatCount)
	for i := range seats {
		seats[i] = &Seat{Number: i + 1}
	}

	return &Table{
		ID:         id,
		Variant:    variant,
		SmallBlind: smallBlind,
		BigBlind:   bigBlind,
		MinPlayers: minPlayers,
		Stage:      StageIdle,
		seats:      seats,
	}, nil
}

// seat returns the seat by number, or nil when out of range
func (t *Table) seat(number int) *Seat {
	if number < 1 || number > len(t.seats) {
		return nil
	}

	return t.seats[number-1]
}

// Seat returns the seat by number
func (t *Table) Seat(number int) (*Seat, error) {
	seat := t.seat(number)
	if seat == nil {
		return nil, resourceError("table %s has no seat %d", t.ID, number)
	}

	return seat, nil
}

// SeatCount returns the number of seats at the table
func (t *Table) SeatCount() int {
	return len(t.seats)
}

// occupiedSeats returns the occupied seat numbers in ascending order
func (t *Table) occupiedSeats() []int {
	occupied := make([]int, 0, len(t.seats))
	for _, seat := range t.seats {
		if seat.Occupied() {
			occupied = append(occupied, seat.Number)
		}
	}

	return occupied
}

// handSeats returns the seats dealt into the current hand, ascending
func (t *Table) handSeats() []int {
	seats := make([]int, 0, len(t.seats))
	for _, seat := range t.seats {
		if seat.Occupied() && seat.inHand {
			seats = append(seats, seat.Number)
		}
	}

	return seats
}

// contestingSeats returns the seats still eligible to win the pot, ascending
func (t *Table) contestingSeats() []int {
	seats := make([]int, 0, len(t.seats))
	for _, seat := range t.seats {
		if seat.contesting() {
			seats = append(seats, seat.Number)
		}
	}

	return seats
}

// streetHigh returns the highest current-street contribution
func (t *Table) streetHigh() int {
	high := 0
	for _, seat := range t.seats {
		if seat.StreetBet > high {
			high = seat.StreetBet
		}
	}

	return high
}

// Join seats a player. Joining mid-hand is allowed; the seat waits for the
// next deal.
func (t *Table) Join(seatNumber int, playerID int64, buyIn int, displayName string) error {
	seat, err := t.Seat(seatNumber)
	if err != nil {
		return err
	}

	if seat.Occupied() {
		return resourceError("seat %d is already occupied", seatNumber)
	}

	if playerID <= 0 {
		return validationError("player id is required")
	}

	if buyIn <= 0 {
		return validationError("buy-in must be positive")
	}

	if displayName == "" {
		displayName = "Player"
	}

	seat.vacate()
	seat.PlayerID = playerID
	seat.DisplayName = displayName
	seat.Chips = buyIn
	seat.LastActionAt = time.Now()

	return nil
}

// Leave vacates the requester's seat. A seat that is still live in a hand must
// fold (or be folded by the sweeper) before it can leave.
func (t *Table) Leave(seatNumber int, playerID int64) error {
	seat, err := t.Seat(seatNumber)
	if err != nil {
		return err
	}

	if !seat.Occupied() || seat.PlayerID != playerID {
		return authorizationError("you do not occupy seat %d", seatNumber)
	}

	if t.Stage != StageIdle && seat.contesting() {
		return preconditionError("cannot leave during a hand; fold first")
	}

	seat.vacate()
	return nil
}

// Reveal makes the requester's own hole cards publicly visible
func (t *Table) Reveal(seatNumber int, playerID int64) error {
	seat, err := t.Seat(seatNumber)
	if err != nil {
		return err
	}

	if !seat.Occupied() || seat.PlayerID != playerID {
		return authorizationError("you do not occupy seat %d", seatNumber)
	}

	seat.Revealed = seat.holeCards.Clone()
	return nil
}
