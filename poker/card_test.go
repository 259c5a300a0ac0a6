package poker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCard(t *testing.T) {
	testCases := []struct {
		str  string
		rank Rank
		suit Suit
	}{
		{"As", Ace, Spade},
		{"2c", Deuce, Club},
		{"Td", Ten, Diamond},
		{"Kh", King, Heart},
		{"9s", Nine, Spade},
	}
	for _, tc := range testCases {
		c, err := NewCard(tc.str)
		require.NoError(t, err)
		assert.Equal(t, tc.rank, c.Rank())
		assert.Equal(t, tc.suit, c.Suit())
		assert.Equal(t, tc.str, c.String())
	}
}

func TestNewCardInvalid(t *testing.T) {
	for _, s := range []string{"", "A", "Asx", "1s", "Ax", "sA"} {
		_, err := NewCard(s)
		assert.Error(t, err, "expected error for [%s]", s)
	}
}

func TestCardJSON(t *testing.T) {
	c := MustCard("Qd")
	b, err := c.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"Qd"`, string(b))

	var parsed Card
	require.NoError(t, parsed.UnmarshalJSON(b))
	assert.Equal(t, c, parsed)

	assert.Error(t, parsed.UnmarshalJSON([]byte(`"Qdx"`)))
}

func TestRankValue(t *testing.T) {
	assert.Equal(t, 2, Deuce.Value())
	assert.Equal(t, 10, Ten.Value())
	assert.Equal(t, 14, Ace.Value())
}

func TestCardsToString(t *testing.T) {
	cards := []Card{MustCard("As"), MustCard("Kd"), MustCard("7c")}
	assert.Equal(t, "[As Kd 7c]", CardsToString(cards))
	assert.Equal(t, []string{"As", "Kd", "7c"}, CardStrings(cards))
}
