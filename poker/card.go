package poker

import (
	"fmt"
	"strings"
)

// Card packs a rank index (0=deuce .. 12=ace) and a suit index
// (0=spade, 1=heart, 2=diamond, 3=club) into a single byte.
type Card uint8

type Rank uint8

type Suit uint8

const (
	Spade Suit = iota
	Heart
	Diamond
	Club
)

const (
	Deuce Rank = iota
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

var (
	strRanks    = "23456789TJQKA"
	strSuits    = "shdc"
	prettySuits = [...]string{"♠", "♥", "♦", "♣"}

	rankNames = [...]string{
		"Deuce", "Three", "Four", "Five", "Six", "Seven", "Eight",
		"Nine", "Ten", "Jack", "Queen", "King", "Ace",
	}
	rankPlurals = [...]string{
		"Deuces", "Threes", "Fours", "Fives", "Sixes", "Sevens", "Eights",
		"Nines", "Tens", "Jacks", "Queens", "Kings", "Aces",
	}
)

// NewCard parses the two-character form used on the wire, e.g. "As" or "Td".
func NewCard(s string) (Card, error) {
	if len(s) != 2 {
		return 0, fmt.Errorf("invalid card string [%s]", s)
	}
	rank := strings.IndexByte(strRanks, s[0])
	suit := strings.IndexByte(strSuits, s[1])
	if rank < 0 || suit < 0 {
		return 0, fmt.Errorf("invalid card string [%s]", s)
	}
	return Card(rank<<2 | suit), nil
}

// MustCard is NewCard for literals in tests and scripted decks.
func MustCard(s string) Card {
	c, err := NewCard(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Card) Rank() Rank {
	return Rank(c >> 2)
}

func (c Card) Suit() Suit {
	return Suit(c & 3)
}

func (c Card) String() string {
	return string(strRanks[c.Rank()]) + string(strSuits[c.Suit()])
}

// PrettyString renders the card with a unicode suit symbol for logs.
func (c Card) PrettyString() string {
	return string(strRanks[c.Rank()]) + prettySuits[c.Suit()]
}

func (c Card) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.String() + `"`), nil
}

func (c *Card) UnmarshalJSON(b []byte) error {
	if len(b) != 4 {
		return fmt.Errorf("invalid card json %s", string(b))
	}
	card, err := NewCard(string(b[1:3]))
	if err != nil {
		return err
	}
	*c = card
	return nil
}

func (r Rank) Name() string {
	return rankNames[r]
}

func (r Rank) Plural() string {
	return rankPlurals[r]
}

// Value returns the poker value of the rank (deuce=2 .. ace=14).
func (r Rank) Value() int {
	return int(r) + 2
}

// CardsToString renders a card slice in the wire form, e.g. "[As Kd 7c]".
func CardsToString(cards []Card) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, c := range cards {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(c.String())
	}
	b.WriteByte(']')
	return b.String()
}

// CardStrings converts cards to their wire strings for outbound messages.
func CardStrings(cards []Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}
