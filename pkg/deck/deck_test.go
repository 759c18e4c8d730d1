package deck

import (
	"testing"

	"clubsocial-server/internal/rng"

	"github.com/stretchr/testify/assert"
)

func TestNewDeck(t *testing.T) {
	deck := New()

	assert.Equal(t, 52, deck.CardsLeft())
	assert.Equal(t, Card{Rank: 2, Suit: Clubs}, *deck.Cards[0])
	assert.Equal(t, Card{Rank: 14, Suit: Spades}, *deck.Cards[51])
}

func TestDeck_Shuffle(t *testing.T) {
	deck := New()
	deck.SetRNG(rng.NewSeeded(1))
	deck.Shuffle()

	assert.Equal(t, 52, deck.CardsLeft())

	// every card still present exactly once
	seen := make(map[Card]bool)
	for _, card := range deck.Cards {
		assert.False(t, seen[*card])
		seen[*card] = true
	}
	assert.Equal(t, 52, len(seen))

	// same seed, same order
	deck2 := New()
	deck2.SetRNG(rng.NewSeeded(1))
	deck2.Shuffle()
	assert.Equal(t, CardsToString(deck.Cards), CardsToString(deck2.Cards))
}

func TestDeck_ShuffleRestoresFullDeck(t *testing.T) {
	deck := New()
	deck.SetRNG(rng.NewSeeded(2))

	_, err := deck.DrawN(10)
	assert.NoError(t, err)
	assert.Equal(t, 42, deck.CardsLeft())

	deck.Shuffle()
	assert.Equal(t, 52, deck.CardsLeft())
}

// TestDeck_ShuffleUniformity draws the top card across many shuffles and
// checks every card shows up there with roughly uniform frequency
func TestDeck_ShuffleUniformity(t *testing.T) {
	const trials = 5200 // expect each card on top about 100 times

	generator := rng.NewSeeded(7)
	counts := make(map[Card]int)

	deck := New()
	deck.SetRNG(generator)
	for i := 0; i < trials; i++ {
		deck.Shuffle()
		counts[*deck.Cards[0]]++
	}

	assert.Equal(t, 52, len(counts))
	for card, count := range counts {
		assert.True(t, count > 50 && count < 160, "card %s on top %d times", card.String(), count)
	}
}

func TestDeck_Draw(t *testing.T) {
	deck := New()

	assert.True(t, deck.CanDraw(52))
	assert.False(t, deck.CanDraw(53))

	for i := 0; i < 52; i++ {
		card, err := deck.Draw()
		assert.NotNil(t, card)
		assert.NoError(t, err)
	}

	card, err := deck.Draw()
	assert.Nil(t, card)
	assert.Equal(t, ErrEndOfDeck, err)
}

func TestDeck_DrawN(t *testing.T) {
	deck := New()

	cards, err := deck.DrawN(5)
	assert.NoError(t, err)
	assert.Equal(t, 5, len(cards))
	assert.Equal(t, 47, deck.CardsLeft())

	_, err = deck.DrawN(48)
	assert.Equal(t, ErrEndOfDeck, err)
	assert.Equal(t, 47, deck.CardsLeft())
}
