package poker

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeckHas52UniqueCards(t *testing.T) {
	d := NewDeck()
	require.Equal(t, 52, d.Remaining())

	seen := make(map[Card]bool)
	cards, err := d.Draw(52)
	require.NoError(t, err)
	for _, c := range cards {
		assert.False(t, seen[c], "duplicate card %s", c)
		seen[c] = true
	}
	assert.Equal(t, 52, len(seen))
}

func TestShuffleResetsDeck(t *testing.T) {
	d := NewDeck()
	_, err := d.Draw(20)
	require.NoError(t, err)
	d.Shuffle()
	assert.Equal(t, 52, d.Remaining())
}

func TestDrawExhaustion(t *testing.T) {
	d := NewDeckFromCards(MustCard("As"), MustCard("Kd"))
	_, err := d.Draw(2)
	require.NoError(t, err)

	_, err = d.Draw(1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDeckExhausted))

	assert.True(t, errors.Is(d.Burn(), ErrDeckExhausted))
}

func TestScriptedDeckDealsLastCardFirst(t *testing.T) {
	d := NewDeckFromCards(MustCard("2c"), MustCard("Kd"), MustCard("As"))
	cards, err := d.Draw(2)
	require.NoError(t, err)
	assert.Equal(t, []Card{MustCard("As"), MustCard("Kd")}, cards)
	assert.Equal(t, 1, d.Remaining())
}

func TestBurnDiscardsOneCard(t *testing.T) {
	d := NewDeck()
	require.NoError(t, d.Burn())
	assert.Equal(t, 51, d.Remaining())
}
