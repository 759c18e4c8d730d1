package poker

import (
	"errors"
	"fmt"

	"clubsocial-server/pkg/deck"
)

// ErrNotImplemented is returned by evaluators that are still extension points
var ErrNotImplemented = errors.New("hand evaluation not implemented for this variant")

// ShowdownEvaluator ranks a seat's best hand from its hole cards and the full
// community board. Variant implementations share the Evaluation/Compare
// contract so settlement does not care which game is being played.
type ShowdownEvaluator func(hole, community deck.Hand) (*Evaluation, error)

// BestHoldem returns the best five-card hand from two hole cards and the
// five-card board
func BestHoldem(hole, community deck.Hand) (*Evaluation, error) {
	if len(hole) != 2 {
		return nil, fmt.Errorf("expected 2 hole cards, got %d", len(hole))
	}

	cards := make([]*deck.Card, 0, 7)
	cards = append(cards, hole...)
	cards = append(cards, community...)

	return BestOf7(cards)
}

// BestOmahaHi is the Omaha high-hand evaluator: the best hand using exactly
// two of four hole cards and three of five board cards.
// TODO: implement Omaha before enabling the omaha_hi variant
func BestOmahaHi(hole, community deck.Hand) (*Evaluation, error) {
	return nil, ErrNotImplemented
}

// BestOmahaHiLo is the Omaha Hi/Lo evaluator, which additionally needs a
// qualifying low hand.
// TODO: implement Omaha Hi/Lo before enabling the omaha_hilo variant
func BestOmahaHiLo(hole, community deck.Hand) (*Evaluation, error) {
	return nil, ErrNotImplemented
}
