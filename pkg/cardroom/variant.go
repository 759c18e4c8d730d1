package cardroom

import (
	"clubsocial-server/pkg/poker"
)

// Variant is the game being dealt at a table
type Variant string

// variant constants
const (
	Holdem    Variant = "holdem"
	OmahaHi   Variant = "omaha_hi"
	OmahaHiLo Variant = "omaha_hilo"
)

// evaluators maps each variant to its showdown evaluator. Registering an
// evaluator is all a new variant needs; settlement is variant-agnostic.
var evaluators = map[Variant]poker.ShowdownEvaluator{
	Holdem: poker.BestHoldem,
}

// RegisterEvaluator installs the showdown evaluator for a variant.
// Omaha evaluation plugs in here once poker.BestOmahaHi is implemented.
func RegisterEvaluator(v Variant, evaluator poker.ShowdownEvaluator) {
	evaluators[v] = evaluator
}

// Valid returns true for a known variant
func (v Variant) Valid() bool {
	switch v {
	case Holdem, OmahaHi, OmahaHiLo:
		return true
	}

	return false
}

// HoleCards is how many cards each seat is dealt
func (v Variant) HoleCards() int {
	if v == OmahaHi || v == OmahaHiLo {
		return 4
	}

	return 2
}

// Evaluator returns the showdown evaluator for the variant, or false if the
// variant cannot be settled yet
func (v Variant) Evaluator() (poker.ShowdownEvaluator, bool) {
	evaluator, ok := evaluators[v]
	return evaluator, ok
}
