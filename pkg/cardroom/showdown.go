package cardroom

import (
	"fmt"
	"time"

	"clubsocial-server/pkg/poker"
)

// advance deals the next street, or settles the hand once the river closes.
// When nobody can act (all-in run-out), it keeps dealing until showdown.
func (t *Table) advance() error {
	for {
		var draw int
		switch t.Stage {
		case StagePreFlop:
			draw = 3
			t.Stage = StageFlop
		case StageFlop:
			draw = 1
			t.Stage = StageTurn
		case StageTurn:
			draw = 1
			t.Stage = StageRiver
		case StageRiver:
			t.Stage = StageShowdown
			return t.showdown()
		default:
			return fmt.Errorf("cannot advance from stage %s", t.Stage)
		}

		for i := 0; i < draw; i++ {
			card, err := t.deck.Draw()
			if err != nil {
				return err
			}

			t.Community.AddCard(card)
		}

		for _, number := range t.handSeats() {
			t.seat(number).resetForStreet()
		}

		t.ActingSince = time.Now()

		// betting reopens with the first live seat after the button; in a
		// two-handed pot the button is the small blind and opens instead
		if first, ok := t.firstToAct(); ok {
			t.SeatToAct = first
			return nil
		}

		t.SeatToAct = 0
	}
}

// showdown reveals every contesting seat's hole cards, ranks them through the
// variant's evaluator, splits the pot among the tied best, and rests the table.
func (t *Table) showdown() error {
	evaluator, ok := t.Variant.Evaluator()
	if !ok {
		// StartHand refuses to deal a variant without an evaluator
		return fmt.Errorf("no showdown evaluator for variant %s", t.Variant)
	}

	contesters := t.contestingSeats()

	var best *poker.Evaluation
	winners := make([]int, 0, len(contesters))

	for _, number := range contesters {
		seat := t.seat(number)
		seat.Revealed = seat.holeCards.Clone()

		eval, err := evaluator(seat.holeCards, t.Community)
		if err != nil {
			return err
		}

		if best == nil {
			best = eval
			winners = append(winners, number)
			continue
		}

		switch poker.Compare(eval, best) {
		case 1:
			best = eval
			winners = winners[:0]
			winners = append(winners, number)
		case 0:
			winners = append(winners, number)
		}
	}

	t.awardPot(winners)
	t.resetToIdle()
	return nil
}

// awardPot splits the pot by equal integer share. The integer remainder goes
// whole to the first winner in seat-ascending order.
func (t *Table) awardPot(winners []int) {
	if len(winners) == 0 {
		return
	}

	share := t.Pot / len(winners)
	remainder := t.Pot % len(winners)

	for i, number := range winners {
		amount := share
		if i == 0 {
			amount += remainder
		}

		t.seat(number).Chips += amount
	}

	t.Pot = 0
}

// resetToIdle rests the table after a payout. Revealed hole cards persist for
// client display until the next StartHand clears them.
func (t *Table) resetToIdle() {
	t.Stage = StageIdle
	t.SeatToAct = 0
	t.Pot = 0
	t.Community = nil
	t.ActingSince = time.Time{}
	t.deck = nil

	for _, seat := range t.seats {
		seat.StreetBet = 0
		seat.acted = false
		seat.optioned = false
	}
}
