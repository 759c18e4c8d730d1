package cardroom

import (
	"time"

	"clubsocial-server/pkg/deck"
)

// newShuffledDeck is a hook so tests can rig the deal
var newShuffledDeck = func() *deck.Deck {
	d := deck.New()
	d.Shuffle()
	return d
}

// StartHand moves the table from Idle (or a settled Showdown) into PreFlop:
// rotates the dealer, clears per-hand seat state, deals hole cards, posts the
// blinds, and puts the first seat on the clock.
func (t *Table) StartHand() error {
	if t.Stage != StageIdle && t.Stage != StageShowdown {
		return preconditionError("a hand is already in progress")
	}

	occupied := t.occupiedSeats()
	if len(occupied) < t.MinPlayers {
		return preconditionError("not enough players: have %d, need %d", len(occupied), t.MinPlayers)
	}

	if _, ok := t.Variant.Evaluator(); !ok {
		return preconditionError("%s cannot be dealt: no showdown evaluator is registered", t.Variant)
	}

	dealer := t.nextDealer(occupied)

	for _, seat := range t.seats {
		if seat.Occupied() {
			seat.resetForHand()
		}
	}

	t.deck = newShuffledDeck()

	order := orderFrom(occupied, dealer)

	// deal one card at a time around the table, starting left of the dealer
	dealOrder := make([]int, 0, len(order))
	dealOrder = append(dealOrder, order[1:]...)
	dealOrder = append(dealOrder, order[0])

	for i := 0; i < t.Variant.HoleCards(); i++ {
		for _, number := range dealOrder {
			card, err := t.deck.Draw()
			if err != nil {
				return err
			}

			seat := t.seat(number)
			seat.holeCards.AddCard(card)
			seat.inHand = true
		}
	}

	// heads-up, the dealer posts the small blind and acts first pre-flop
	var sbSeat, bbSeat int
	if len(order) == 2 {
		sbSeat, bbSeat = dealer, nextOccupied(order, dealer)
	} else {
		sbSeat = nextOccupied(order, dealer)
		bbSeat = nextOccupied(order, sbSeat)
	}

	// a short stack posts an all-in blind for less than the nominal amount.
	// Posting closes the blind seat's option: once every other contribution
	// matches the big blind the street is over, with no extra turn for the
	// blinds unless a raise reopens them.
	t.Pot = t.seat(sbSeat).pay(t.SmallBlind)
	t.Pot += t.seat(bbSeat).pay(t.BigBlind)
	t.seat(sbSeat).optioned = true
	t.seat(bbSeat).optioned = true

	t.DealerSeat = dealer
	t.Stage = StagePreFlop
	t.HandID++
	t.Community = make(deck.Hand, 0, 5)
	t.ActingSince = time.Now()

	if next, ok := t.nextEligible(order, bbSeat); ok {
		t.SeatToAct = next
		return nil
	}

	// every seat is already all-in from the blinds: run out the board
	t.SeatToAct = 0
	return t.advance()
}

// nextDealer rotates the button to the next occupied seat. The first hand
// starts with the lowest-numbered occupied seat. A departed dealer still
// anchors the rotation at its old position.
func (t *Table) nextDealer(occupied []int) int {
	if t.DealerSeat == 0 {
		return occupied[0]
	}

	return orderFrom(occupied, t.DealerSeat+1)[0]
}
