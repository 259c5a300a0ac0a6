package poker

import (
	crypto_rand "crypto/rand"
	"encoding/binary"
	"math/rand"

	"github.com/pkg/errors"
)

// ErrDeckExhausted indicates the deck ran out of cards mid-hand. With at most
// five players per table a full hand consumes at most 18 cards, so running out
// means the engine lost track of the deck and the hand cannot continue.
var ErrDeckExhausted = errors.New("deck exhausted")

// Deck is an ordered sequence of unique cards owned by a single hand.
// Dealing pops from the end; a deck is never re-shuffled mid-hand.
type Deck struct {
	cards   []Card
	randGen *rand.Rand
}

func newSeed() rand.Source {
	var b [8]byte
	if _, err := crypto_rand.Read(b[:]); err != nil {
		panic("cannot seed math/rand with crypto/rand")
	}
	return rand.NewSource(int64(binary.LittleEndian.Uint64(b[:])))
}

// FullDeck returns the 52 cards in canonical order.
func FullDeck() []Card {
	cards := make([]Card, 0, 52)
	for rank := 0; rank < 13; rank++ {
		for suit := 0; suit < 4; suit++ {
			cards = append(cards, Card(rank<<2|suit))
		}
	}
	return cards
}

// NewDeck returns a full deck shuffled with a crypto-seeded source.
func NewDeck() *Deck {
	d := &Deck{randGen: rand.New(newSeed())}
	d.Shuffle()
	return d
}

// NewDeckFromCards builds a deck with the given card order. The last card is
// dealt first. Used by tests to script boards and hole cards.
func NewDeckFromCards(cards ...Card) *Deck {
	d := &Deck{cards: make([]Card, len(cards))}
	copy(d.cards, cards)
	return d
}

// Shuffle resets the deck to 52 cards in a uniform random permutation
// (Fisher-Yates).
func (d *Deck) Shuffle() {
	if d.randGen == nil {
		d.randGen = rand.New(newSeed())
	}
	d.cards = FullDeck()
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.randGen.Intn(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Draw pops n cards from the end of the deck.
func (d *Deck) Draw(n int) ([]Card, error) {
	if n > len(d.cards) {
		return nil, errors.Wrapf(ErrDeckExhausted, "cannot draw %d cards, %d remaining", n, len(d.cards))
	}
	cards := make([]Card, n)
	for i := 0; i < n; i++ {
		last := len(d.cards) - 1
		cards[i] = d.cards[last]
		d.cards = d.cards[:last]
	}
	return cards, nil
}

// Burn discards the top card before dealing community cards.
func (d *Deck) Burn() error {
	_, err := d.Draw(1)
	return err
}

func (d *Deck) Remaining() int {
	return len(d.cards)
}

func (d *Deck) PrettyPrint() string {
	return CardsToString(d.cards)
}
