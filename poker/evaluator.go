package poker

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"
)

// HandCategory orders hand types from weakest to strongest.
type HandCategory uint8

const (
	HighCard HandCategory = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

func (c HandCategory) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	}
	return "Unknown"
}

// HandValue is a totally ordered hand strength. Score encodes the category in
// the high bits and up to five rank tiebreakers in descending significance,
// so two hands tie exactly when their scores are equal.
type HandValue struct {
	Score       uint32
	Category    HandCategory
	Description string
	BestCards   []Card
}

func (v HandValue) Beats(o HandValue) bool {
	return v.Score > o.Score
}

func (v HandValue) Ties(o HandValue) bool {
	return v.Score == o.Score
}

func score(cat HandCategory, tiebreaks ...int) uint32 {
	s := uint32(cat) << 20
	shift := uint(16)
	for _, t := range tiebreaks {
		s |= uint32(t) << shift
		shift -= 4
	}
	return s
}

// Evaluate ranks the best five-card hand out of the hole and community cards.
// It accepts five to seven cards in total.
func Evaluate(holeCards []Card, communityCards []Card) (HandValue, error) {
	all := make([]Card, 0, len(holeCards)+len(communityCards))
	all = append(all, holeCards...)
	all = append(all, communityCards...)
	if len(all) < 5 || len(all) > 7 {
		return HandValue{}, errors.Errorf("evaluate requires 5 to 7 cards, got %d", len(all))
	}

	best := HandValue{}
	combo := [5]Card{}
	n := len(all)
	for a := 0; a < n-4; a++ {
		for b := a + 1; b < n-3; b++ {
			for c := b + 1; c < n-2; c++ {
				for d := c + 1; d < n-1; d++ {
					for e := d + 1; e < n; e++ {
						combo[0], combo[1], combo[2], combo[3], combo[4] =
							all[a], all[b], all[c], all[d], all[e]
						v := evaluateFive(combo)
						if v.Score > best.Score {
							best = v
						}
					}
				}
			}
		}
	}
	return best, nil
}

func evaluateFive(cards [5]Card) HandValue {
	sorted := cards[:]
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Rank() > sorted[j].Rank()
	})

	flush := true
	for _, c := range sorted[1:] {
		if c.Suit() != sorted[0].Suit() {
			flush = false
			break
		}
	}
	straightHigh := straightHighCard(sorted)

	if flush && straightHigh > 0 {
		desc := fmt.Sprintf("Straight Flush, %s High", Rank(straightHigh-2).Name())
		if straightHigh == Ace.Value() {
			desc = "Royal Flush"
		}
		return HandValue{
			Score:       score(StraightFlush, straightHigh),
			Category:    StraightFlush,
			Description: desc,
			BestCards:   append([]Card(nil), sorted...),
		}
	}

	// Group ranks by multiplicity, highest count first, then highest rank.
	type group struct {
		rank  Rank
		count int
	}
	counts := map[Rank]int{}
	for _, c := range sorted {
		counts[c.Rank()]++
	}
	groups := make([]group, 0, 5)
	for r, n := range counts {
		groups = append(groups, group{rank: r, count: n})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}
		return groups[i].rank > groups[j].rank
	})

	val := func(i int) int { return groups[i].rank.Value() }
	best := append([]Card(nil), sorted...)

	switch {
	case groups[0].count == 4:
		return HandValue{
			Score:       score(FourOfAKind, val(0), val(1)),
			Category:    FourOfAKind,
			Description: fmt.Sprintf("Four of a Kind, %s", groups[0].rank.Plural()),
			BestCards:   best,
		}
	case groups[0].count == 3 && groups[1].count == 2:
		return HandValue{
			Score:    score(FullHouse, val(0), val(1)),
			Category: FullHouse,
			Description: fmt.Sprintf("Full House, %s over %s",
				groups[0].rank.Plural(), groups[1].rank.Plural()),
			BestCards: best,
		}
	case flush:
		return HandValue{
			Score: score(Flush, sorted[0].Rank().Value(), sorted[1].Rank().Value(),
				sorted[2].Rank().Value(), sorted[3].Rank().Value(), sorted[4].Rank().Value()),
			Category:    Flush,
			Description: fmt.Sprintf("Flush, %s High", sorted[0].Rank().Name()),
			BestCards:   best,
		}
	case straightHigh > 0:
		return HandValue{
			Score:       score(Straight, straightHigh),
			Category:    Straight,
			Description: fmt.Sprintf("Straight, %s High", Rank(straightHigh-2).Name()),
			BestCards:   best,
		}
	case groups[0].count == 3:
		return HandValue{
			Score:       score(ThreeOfAKind, val(0), val(1), val(2)),
			Category:    ThreeOfAKind,
			Description: fmt.Sprintf("Three of a Kind, %s", groups[0].rank.Plural()),
			BestCards:   best,
		}
	case groups[0].count == 2 && groups[1].count == 2:
		return HandValue{
			Score:    score(TwoPair, val(0), val(1), val(2)),
			Category: TwoPair,
			Description: fmt.Sprintf("Two Pair, %s and %s",
				groups[0].rank.Plural(), groups[1].rank.Plural()),
			BestCards: best,
		}
	case groups[0].count == 2:
		return HandValue{
			Score:       score(Pair, val(0), val(1), val(2), val(3)),
			Category:    Pair,
			Description: fmt.Sprintf("Pair of %s", groups[0].rank.Plural()),
			BestCards:   best,
		}
	}
	return HandValue{
		Score: score(HighCard, sorted[0].Rank().Value(), sorted[1].Rank().Value(),
			sorted[2].Rank().Value(), sorted[3].Rank().Value(), sorted[4].Rank().Value()),
		Category:    HighCard,
		Description: fmt.Sprintf("High Card, %s", sorted[0].Rank().Name()),
		BestCards:   best,
	}
}

// straightHighCard returns the value of the straight's high card (5 for the
// wheel) or 0 when the sorted-descending cards do not form a straight.
func straightHighCard(sorted []Card) int {
	// Wheel: A-5-4-3-2 sorts as A,5,4,3,2.
	if sorted[0].Rank() == Ace &&
		sorted[1].Rank() == Five && sorted[2].Rank() == Four &&
		sorted[3].Rank() == Three && sorted[4].Rank() == Deuce {
		return Five.Value()
	}
	for i := 1; i < 5; i++ {
		if sorted[i-1].Rank() != sorted[i].Rank()+1 {
			return 0
		}
	}
	return sorted[0].Rank().Value()
}
