package poker

import (
	"testing"

	"clubsocial-server/pkg/deck"

	"github.com/stretchr/testify/assert"
)

func TestBestHoldem(t *testing.T) {
	eval, err := BestHoldem(deck.HandFromString("14c,14d"), deck.HandFromString("14h,14s,2c,3d,9h"))
	assert.NoError(t, err)
	assert.Equal(t, FourOfAKind, eval.Category)

	_, err = BestHoldem(deck.HandFromString("14c"), deck.HandFromString("14h,14s,2c,3d,9h"))
	assert.Error(t, err)

	_, err = BestHoldem(deck.HandFromString("14c,14d"), deck.HandFromString("14h,14s,2c"))
	assert.Error(t, err)
}

func TestBestOmaha_NotImplemented(t *testing.T) {
	_, err := BestOmahaHi(deck.HandFromString("14c,14d,2c,3d"), deck.HandFromString("14h,14s,2h,3h,9h"))
	assert.Equal(t, ErrNotImplemented, err)

	_, err = BestOmahaHiLo(deck.HandFromString("14c,14d,2c,3d"), deck.HandFromString("14h,14s,2h,3h,9h"))
	assert.Equal(t, ErrNotImplemented, err)
}
