package cardroom

import (
	"context"
	"time"

	"clubsocial-server/pkg/deck"
)

// Recorder persists a committed table state. The core only requires an atomic
// read-modify-write per table; what backs the records is the recorder's
// business.
type Recorder interface {
	Save(ctx context.Context, record *Record) error
}

// Record is the full-fidelity persisted form of a table: one table record plus
// one record per seat. Card columns use the 2c,3h,... encoding.
type Record struct {
	ID            string
	Variant       string
	SmallBlind    int
	BigBlind      int
	MinPlayers    int
	SeatCount     int
	Stage         string
	DealerSeat    int
	SeatToAct     int
	Pot           int
	Community     string
	HandID        int64
	ActingSince   time.Time
	DeckRemaining string
	Seats         []*SeatRecord
}

// SeatRecord is the persisted form of one seat
type SeatRecord struct {
	SeatNumber   int
	PlayerID     int64
	DisplayName  string
	Chips        int
	StreetBet    int
	Folded       bool
	AllIn        bool
	InHand       bool
	Acted        bool
	Optioned     bool
	HoleCards    string
	Revealed     string
	LastActionAt time.Time
}

// Record returns the persisted form of the table
func (t *Table) Record() *Record {
	seats := make([]*SeatRecord, len(t.seats))
	for i, seat := range t.seats {
		seats[i] = &SeatRecord{
			SeatNumber:   seat.Number,
			PlayerID:     seat.PlayerID,
			DisplayName:  seat.DisplayName,
			Chips:        seat.Chips,
			StreetBet:    seat.StreetBet,
			Folded:       seat.Folded,
			AllIn:        seat.AllIn,
			InHand:       seat.inHand,
			Acted:        seat.acted,
			Optioned:     seat.optioned,
			HoleCards:    seat.holeCards.String(),
			Revealed:     seat.Revealed.String(),
			LastActionAt: seat.LastActionAt,
		}
	}

	record := &Record{
		ID:         t.ID,
		Variant:    string(t.Variant),
		SmallBlind: t.SmallBlind,
		BigBlind:   t.BigBlind,
		MinPlayers: t.MinPlayers,
		SeatCount:  len(t.seats),
		Stage:      t.Stage.String(),
		DealerSeat: t.DealerSeat,
		SeatToAct:  t.SeatToAct,
		Pot:        t.Pot,
		Community:  t.Community.String(),
		HandID:     t.HandID,
		Seats:      seats,
	}

	if !t.ActingSince.IsZero() {
		record.ActingSince = t.ActingSince
	}

	if t.deck != nil {
		record.DeckRemaining = deck.CardsToString(t.deck.Cards)
	}

	return record
}

// RestoreTable rebuilds a table from its persisted form
func RestoreTable(record *Record) (*Table, error) {
	table, err := NewTable(record.ID, Variant(record.Variant), record.SmallBlind,
		record.BigBlind, record.SeatCount, record.MinPlayers)
	if err != nil {
		return nil, err
	}

	stage, ok := StageFromString(record.Stage)
	if !ok {
		return nil, validationError("%s is not a valid stage", record.Stage)
	}

	table.Stage = stage
	table.DealerSeat = record.DealerSeat
	table.SeatToAct = record.SeatToAct
	table.Pot = record.Pot
	table.Community = deck.HandFromString(record.Community)
	table.HandID = record.HandID
	table.ActingSince = record.ActingSince

	if record.DeckRemaining != "" {
		d := deck.New()
		d.Cards = deck.CardsFromString(record.DeckRemaining)
		table.deck = d
	}

	for _, sr := range record.Seats {
		seat := table.seat(sr.SeatNumber)
		if seat == nil {
			return nil, validationError("table %s has no seat %d", record.ID, sr.SeatNumber)
		}

		seat.PlayerID = sr.PlayerID
		seat.DisplayName = sr.DisplayName
		seat.Chips = sr.Chips
		seat.StreetBet = sr.StreetBet
		seat.Folded = sr.Folded
		seat.AllIn = sr.AllIn
		seat.inHand = sr.InHand
		seat.acted = sr.Acted
		seat.optioned = sr.Optioned
		seat.holeCards = deck.HandFromString(sr.HoleCards)
		seat.Revealed = deck.HandFromString(sr.Revealed)
		seat.LastActionAt = sr.LastActionAt
	}

	return table, nil
}
