package cardroom

import "sort"

// orderFrom returns the occupied seat numbers sorted ascending, rotated so the
// first seat at or after startSeat comes first. startSeat does not need to be
// in the list: a vacated anchor seat still fixes the rotation to its position.
func orderFrom(occupied []int, startSeat int) []int {
	order := make([]int, len(occupied))
	copy(order, occupied)
	sort.Ints(order)

	for i, seat := range order {
		if seat >= startSeat {
			return append(order[i:], order[:i]...)
		}
	}

	return order
}

// nextOccupied returns the seat immediately following currentSeat in order,
// wrapping around. If currentSeat is absent, the first seat is returned.
func nextOccupied(order []int, currentSeat int) int {
	if len(order) == 0 {
		return 0
	}

	for i, seat := range order {
		if seat == currentSeat {
			return order[(i+1)%len(order)]
		}
	}

	return order[0]
}

// nextEligible walks order starting after currentSeat and returns the first
// seat that can still act. The walk is bounded by len(order) so an all-folded
// or all-in table reports no eligible actor instead of spinning.
func (t *Table) nextEligible(order []int, currentSeat int) (int, bool) {
	candidate := currentSeat
	for i := 0; i < len(order); i++ {
		candidate = nextOccupied(order, candidate)
		if seat := t.seat(candidate); seat != nil && seat.canAct() {
			return candidate, true
		}
	}

	return 0, false
}

// firstToAct returns the seat that opens a new betting street: the first
// eligible seat after the button, wrapping. With two seats in the hand the
// button posted the small blind and acts first on every street instead. The
// button seat may have been vacated mid-hand; the rotation stays anchored to
// its position either way.
func (t *Table) firstToAct() (int, bool) {
	order := t.handSeats()
	if len(order) == 2 {
		return t.firstEligibleFrom(order, t.DealerSeat)
	}

	return t.firstEligibleFrom(order, t.DealerSeat+1)
}

// firstEligibleFrom walks order starting at startSeat itself
func (t *Table) firstEligibleFrom(order []int, startSeat int) (int, bool) {
	rotated := orderFrom(order, startSeat)
	for _, candidate := range rotated {
		if seat := t.seat(candidate); seat != nil && seat.canAct() {
			return candidate, true
		}
	}

	return 0, false
}
