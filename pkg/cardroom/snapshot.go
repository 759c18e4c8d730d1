package cardroom

import (
	"time"

	"clubsocial-server/pkg/deck"
)

// SeatSnapshot is the client-visible view of one seat
type SeatSnapshot struct {
	Seat         int        `json:"seat"`
	PlayerID     int64      `json:"playerId,omitempty"`
	DisplayName  string     `json:"displayName,omitempty"`
	Chips        int        `json:"chips"`
	StreetBet    int        `json:"streetBet"`
	Folded       bool       `json:"folded"`
	AllIn        bool       `json:"allIn"`
	InHand       bool       `json:"inHand"`
	HoleCards    deck.Hand  `json:"holeCards,omitempty"`
	Revealed     deck.Hand  `json:"revealed,omitempty"`
	LastActionAt *time.Time `json:"lastActionAt,omitempty"`
}

// Snapshot is the client-visible view of a table. Private hole cards are
// redacted for everyone but the viewer; revealed cards are public.
type Snapshot struct {
	ID          string          `json:"id"`
	Variant     Variant         `json:"variant"`
	Stage       Stage           `json:"stage"`
	SmallBlind  int             `json:"smallBlind"`
	BigBlind    int             `json:"bigBlind"`
	MinPlayers  int             `json:"minPlayers"`
	DealerSeat  int             `json:"dealerSeat,omitempty"`
	SeatToAct   int             `json:"seatToAct,omitempty"`
	Pot         int             `json:"pot"`
	Community   deck.Hand       `json:"community"`
	HandID      int64           `json:"handId"`
	ActingSince *time.Time      `json:"actingSince,omitempty"`
	Seats       []*SeatSnapshot `json:"seats"`
}

// Snapshot builds the view of the table for the given viewer. A viewer of 0
// sees only public information.
func (t *Table) Snapshot(viewerID int64) *Snapshot {
	seats := make([]*SeatSnapshot, len(t.seats))
	for i, seat := range t.seats {
		ss := &SeatSnapshot{
			Seat:        seat.Number,
			PlayerID:    seat.PlayerID,
			DisplayName: seat.DisplayName,
			Chips:       seat.Chips,
			StreetBet:   seat.StreetBet,
			Folded:      seat.Folded,
			AllIn:       seat.AllIn,
			InHand:      seat.inHand,
			Revealed:    seat.Revealed.Clone(),
		}

		if !seat.LastActionAt.IsZero() {
			lastAction := seat.LastActionAt
			ss.LastActionAt = &lastAction
		}

		if viewerID != 0 && seat.PlayerID == viewerID {
			ss.HoleCards = seat.holeCards.Clone()
		}

		seats[i] = ss
	}

	snapshot := &Snapshot{
		ID:         t.ID,
		Variant:    t.Variant,
		Stage:      t.Stage,
		SmallBlind: t.SmallBlind,
		BigBlind:   t.BigBlind,
		MinPlayers: t.MinPlayers,
		DealerSeat: t.DealerSeat,
		SeatToAct:  t.SeatToAct,
		Pot:        t.Pot,
		Community:  t.Community.Clone(),
		HandID:     t.HandID,
		Seats:      seats,
	}

	if !t.ActingSince.IsZero() {
		actingSince := t.ActingSince
		snapshot.ActingSince = &actingSince
	}

	return snapshot
}
