package cardroom

import "time"

// PlayerAction applies one betting action for the player on the clock. Only
// the seat-to-act's occupant may act; anything else is rejected.
func (t *Table) PlayerAction(playerID int64, action ActionType, amount int) error {
	if !t.Stage.IsBetting() {
		return preconditionError("no active betting round")
	}

	seat := t.seat(t.SeatToAct)
	if seat == nil || !seat.Occupied() {
		return preconditionError("no seat is on the clock")
	}

	if seat.PlayerID != playerID {
		return authorizationError("it is not your turn")
	}

	if !seat.canAct() {
		return preconditionError("seat %d cannot act", seat.Number)
	}

	return t.act(seat, action, amount)
}

// act is the single transition used by both voluntary actions and the
// timeout sweeper's forced fold
func (t *Table) act(seat *Seat, action ActionType, amount int) error {
	if err := t.applyAction(seat, action, amount); err != nil {
		return err
	}

	now := time.Now()
	seat.LastActionAt = now
	t.ActingSince = now

	return t.progress()
}

func (t *Table) applyAction(seat *Seat, action ActionType, amount int) error {
	high := t.streetHigh()

	switch action {
	case ActionFold:
		seat.Folded = true
		seat.acted = true
		seat.optioned = true

	case ActionCheck:
		if seat.StreetBet != high {
			return preconditionError("cannot check facing a bet of %d", high)
		}

		seat.acted = true
		seat.optioned = true

	case ActionCall:
		if seat.StreetBet == high {
			return preconditionError("nothing to call; check instead")
		}

		t.Pot += seat.pay(high - seat.StreetBet)
		seat.acted = true
		seat.optioned = true

	case ActionBet:
		if high > 0 {
			return preconditionError("a bet is already outstanding; raise instead")
		}

		if amount <= 0 {
			return validationError("bet must be a positive amount")
		}

		if amount < t.BigBlind && amount < seat.Chips {
			return validationError("bet must be at least the big blind (%d)", t.BigBlind)
		}

		t.Pot += seat.pay(amount)
		t.reopenBetting(seat)

	case ActionRaise:
		if high == 0 {
			return preconditionError("nothing to raise; bet instead")
		}

		if amount <= high {
			return validationError("raise must exceed the current bet of %d", high)
		}

		if seat.acted {
			// the only way acted is still set while facing a higher bet is a
			// short all-in raise, which does not reopen the betting
			return preconditionError("the short raise did not reopen betting for seat %d", seat.Number)
		}

		target := amount
		if target < high+t.BigBlind {
			target = high + t.BigBlind
		}

		t.Pot += seat.pay(target - seat.StreetBet)

		if seat.StreetBet >= high+t.BigBlind {
			t.reopenBetting(seat)
		} else {
			// all-in for less than a full raise
			seat.acted = true
			seat.optioned = true
		}

	default:
		return validationError("%s is not a valid action", action)
	}

	return nil
}

// reopenBetting marks a full bet or raise: every other seat gets a fresh turn
// to respond
func (t *Table) reopenBetting(aggressor *Seat) {
	for _, number := range t.handSeats() {
		seat := t.seat(number)
		seat.acted = false
		seat.optioned = false
	}

	aggressor.acted = true
	aggressor.optioned = true
}

// progress runs after every committed action: immediate win, street
// completion, or passing the clock to the next eligible seat. A completed
// street advances inside the same update, before any later action can be seen.
func (t *Table) progress() error {
	contesters := t.contestingSeats()
	if len(contesters) == 1 {
		// everyone else folded: the last seat standing takes the pot now
		t.awardPot(contesters)
		t.resetToIdle()
		return nil
	}

	if t.streetComplete() {
		return t.advance()
	}

	if next, ok := t.nextEligible(t.handSeats(), t.SeatToAct); ok {
		t.SeatToAct = next
		return nil
	}

	// no eligible actor remains; settle the rest of the board
	return t.advance()
}

// streetComplete is true once every in-hand seat that can still act has closed
// its option and matched the street's highest contribution
func (t *Table) streetComplete() bool {
	high := t.streetHigh()
	for _, number := range t.handSeats() {
		seat := t.seat(number)
		if seat.Folded || seat.AllIn {
			continue
		}

		if !seat.optioned || seat.StreetBet != high {
			return false
		}
	}

	return true
}
