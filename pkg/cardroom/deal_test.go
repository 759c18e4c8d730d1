package cardroom

import (
	"testing"

	"clubsocial-server/pkg/deck"

	"github.com/stretchr/testify/assert"
)

// rigDeck makes StartHand deal from a fixed card order for the rest of the test
func rigDeck(t *testing.T, cards string) {
	t.Helper()

	orig := newShuffledDeck
	newShuffledDeck = func() *deck.Deck {
		d := deck.New()
		d.Cards = deck.CardsFromString(cards)
		return d
	}

	t.Cleanup(func() {
		newShuffledDeck = orig
	})
}

// startedHeadsUp returns a 5/10 table with players 101 and 102 seated at 1 and
// 2 with 1000 chips each and the first hand dealt. Seat 1 is the dealer and
// small blind; seat 1's hole cards beat seat 2's if the hand is checked down.
func startedHeadsUp(t *testing.T) *Table {
	t.Helper()

	// deal order is seat 2 first; seat 1 ends up with aces
	rigDeck(t, "13c,14c,12d,14d,2c,7d,9h,5s,3h")

	table, err := NewTable("t", Holdem, 5, 10, 6, 2)
	assert.NoError(t, err)
	assert.NoError(t, table.Join(1, 101, 1000, "alice"))
	assert.NoError(t, table.Join(2, 102, 1000, "bob"))
	assert.NoError(t, table.StartHand())

	return table
}

// startedThreeHanded seats players 101..103 at seats 1..3 with 1000 chips and
// deals the first hand. Seat 1 is the dealer, 2 the small blind, 3 the big
// blind, and action starts on seat 1.
func startedThreeHanded(t *testing.T) *Table {
	t.Helper()

	rigDeck(t, "13c,12c,14c,13d,12d,14d,2c,7d,9h,5s,3h")

	table, err := NewTable("t", Holdem, 5, 10, 6, 3)
	assert.NoError(t, err)
	assert.NoError(t, table.Join(1, 101, 1000, "alice"))
	assert.NoError(t, table.Join(2, 102, 1000, "bob"))
	assert.NoError(t, table.Join(3, 103, 1000, "carol"))
	assert.NoError(t, table.StartHand())

	return table
}

func TestTable_StartHand(t *testing.T) {
	table := startedThreeHanded(t)

	assert.Equal(t, StagePreFlop, table.Stage)
	assert.Equal(t, int64(1), table.HandID)
	assert.Equal(t, 1, table.DealerSeat)
	assert.Equal(t, 15, table.Pot)
	assert.Equal(t, 5, table.seat(2).StreetBet)
	assert.Equal(t, 10, table.seat(3).StreetBet)
	assert.Equal(t, 995, table.seat(2).Chips)
	assert.Equal(t, 990, table.seat(3).Chips)

	// action starts left of the big blind
	assert.Equal(t, 1, table.SeatToAct)
	assert.False(t, table.ActingSince.IsZero())

	for n := 1; n <= 3; n++ {
		seat := table.seat(n)
		assert.True(t, seat.InHand())
		assert.Equal(t, 2, len(seat.HoleCards()))
	}

	// one card at a time, starting left of the dealer
	assert.Equal(t, "14c,14d", table.seat(1).holeCards.String())
	assert.Equal(t, "13c,13d", table.seat(2).holeCards.String())
	assert.Equal(t, "12c,12d", table.seat(3).holeCards.String())
}

func TestTable_StartHand_HeadsUp(t *testing.T) {
	table := startedHeadsUp(t)

	// the dealer posts the small blind and acts first
	assert.Equal(t, 1, table.DealerSeat)
	assert.Equal(t, 5, table.seat(1).StreetBet)
	assert.Equal(t, 10, table.seat(2).StreetBet)
	assert.Equal(t, 1, table.SeatToAct)
	assert.Equal(t, 15, table.Pot)
}

func TestTable_StartHand_Preconditions(t *testing.T) {
	table, _ := NewTable("t", Holdem, 5, 10, 6, 2)
	assertKind(t, KindPrecondition, table.StartHand())

	assert.NoError(t, table.Join(1, 101, 1000, ""))
	assertKind(t, KindPrecondition, table.StartHand())

	assert.NoError(t, table.Join(2, 102, 1000, ""))
	assert.NoError(t, table.StartHand())

	// a second deal cannot start mid-hand
	assertKind(t, KindPrecondition, table.StartHand())
}

func TestTable_StartHand_NoEvaluator(t *testing.T) {
	table, err := NewTable("t", OmahaHi, 5, 10, 6, 2)
	assert.NoError(t, err)
	assert.NoError(t, table.Join(1, 101, 1000, ""))
	assert.NoError(t, table.Join(2, 102, 1000, ""))

	err = table.StartHand()
	assertKind(t, KindPrecondition, err)
	assert.Equal(t, StageIdle, table.Stage)
}

func TestTable_StartHand_DealerRotates(t *testing.T) {
	table := startedHeadsUp(t)
	assert.Equal(t, 1, table.DealerSeat)

	// settle the hand by folding, then deal again
	assert.NoError(t, table.PlayerAction(101, ActionFold, 0))
	assert.Equal(t, StageIdle, table.Stage)

	rigDeck(t, "13c,14c,12d,14d,2c,7d,9h,5s,3h")
	assert.NoError(t, table.StartHand())
	assert.Equal(t, 2, table.DealerSeat)
	assert.Equal(t, int64(2), table.HandID)
}

func TestTable_StartHand_ShortBlindAllIn(t *testing.T) {
	rigDeck(t, "13c,14c,12d,14d,2c,7d,9h,5s,3h")

	table, _ := NewTable("t", Holdem, 5, 10, 6, 2)
	assert.NoError(t, table.Join(1, 101, 1000, ""))
	assert.NoError(t, table.Join(2, 102, 3, ""))
	assert.NoError(t, table.StartHand())

	// the short stack posts only what it has
	seat := table.seat(2)
	assert.Equal(t, 3, seat.StreetBet)
	assert.Equal(t, 0, seat.Chips)
	assert.True(t, seat.AllIn)
	assert.Equal(t, 8, table.Pot)
}

func TestTable_StartHand_MidHandJoinerWaits(t *testing.T) {
	table := startedHeadsUp(t)

	assert.NoError(t, table.Join(3, 103, 1000, "carol"))
	assert.False(t, table.seat(3).InHand())

	// the hand settles between the original two seats only
	assert.NoError(t, table.PlayerAction(101, ActionFold, 0))
	assert.Equal(t, StageIdle, table.Stage)
	assert.Equal(t, 1000, table.seat(3).Chips)
	assert.Equal(t, 1005, table.seat(2).Chips)

	// the next deal includes the new seat
	rigDeck(t, "13c,12c,14c,13d,12d,14d,2c,7d,9h,5s,3h")
	assert.NoError(t, table.StartHand())
	assert.True(t, table.seat(3).InHand())
}
