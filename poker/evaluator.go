package poker

import (
	"fmt"
	"sort"
)

// Hand categories, strongest last.
const (
	HighCard      int32 = 0
	OnePair       int32 = 1
	TwoPair       int32 = 2
	ThreeOfAKind  int32 = 3
	Straight      int32 = 4
	Flush         int32 = 5
	FullHouse     int32 = 6
	FourOfAKind   int32 = 7
	StraightFlush int32 = 8
)

var handNames = map[int32]string{
	StraightFlush: "Straight Flush",
	FourOfAKind:   "Four of a Kind",
	FullHouse:     "Full House",
	Flush:         "Flush",
	Straight:      "Straight",
	ThreeOfAKind:  "Three of a Kind",
	TwoPair:       "Two Pair",
	OnePair:       "One Pair",
	HighCard:      "High Card",
}

// Score ranks a five card hand. Tiebreak holds all five card values in
// descending order; two scores compare by category first, then by the
// tiebreak values left to right.
type Score struct {
	Category int32
	Tiebreak [5]int32
}

// Cmp returns -1, 0 or 1 as s sorts below, equal to or above other.
func (s Score) Cmp(other Score) int {
	if s.Category != other.Category {
		if s.Category < other.Category {
			return -1
		}
		return 1
	}
	for i := 0; i < 5; i++ {
		if s.Tiebreak[i] != other.Tiebreak[i] {
			if s.Tiebreak[i] < other.Tiebreak[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// String renders the table talk form, e.g. "Full House, high card A"
// or "High Card (Q high)".
func (s Score) String() string {
	name := handNames[s.Category]
	high := rankValueToString(s.Tiebreak[0])
	if s.Category == HighCard {
		return fmt.Sprintf("%s (%s high)", name, high)
	}
	return fmt.Sprintf("%s, high card %s", name, high)
}

func rankValueToString(value int32) string {
	if value < 2 || value > 14 {
		return "?"
	}
	return displayRanks[value-2]
}

// Evaluate scores the best five card hand from 5, 6 or 7 cards.
func Evaluate(cards []Card) Score {
	switch len(cards) {
	case 5:
		return five(cards...)
	case 6:
		return six(cards...)
	case 7:
		return seven(cards...)
	default:
		panic("Only support 5, 6 and 7 cards.")
	}
}

func five(cards ...Card) Score {
	var values [5]int32
	for i, card := range cards {
		values[i] = card.Rank()
	}
	sort.Slice(values[:], func(i, j int) bool { return values[i] > values[j] })

	counts := make(map[int32]int, 5)
	for _, v := range values {
		counts[v]++
	}
	groups := make([]int, 0, len(counts))
	for _, n := range counts {
		groups = append(groups, n)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(groups)))

	flush := true
	suit := cards[0].Suit()
	for _, card := range cards[1:] {
		if card.Suit() != suit {
			flush = false
			break
		}
	}
	// The ace always plays high: A-2-3-4-5 is not a straight here.
	straight := len(counts) == 5 && values[0]-values[4] == 4

	var category int32
	switch {
	case flush && straight:
		category = StraightFlush
	case groups[0] == 4:
		category = FourOfAKind
	case groups[0] == 3 && groups[1] == 2:
		category = FullHouse
	case flush:
		category = Flush
	case straight:
		category = Straight
	case groups[0] == 3:
		category = ThreeOfAKind
	case groups[0] == 2 && groups[1] == 2:
		category = TwoPair
	case groups[0] == 2:
		category = OnePair
	default:
		category = HighCard
	}
	return Score{Category: category, Tiebreak: values}
}

func six(cards ...Card) Score {
	var best Score
	targets := make([]Card, len(cards))
	for i := 0; i < len(cards); i++ {
		copy(targets, cards)
		subset := append(targets[:i], targets[i+1:]...)

		score := five(subset...)
		if i == 0 || score.Cmp(best) > 0 {
			best = score
		}
	}
	return best
}

func seven(cards ...Card) Score {
	var best Score
	targets := make([]Card, len(cards))
	for i := 0; i < len(cards); i++ {
		copy(targets, cards)
		subset := append(targets[:i], targets[i+1:]...)

		score := six(subset...)
		if i == 0 || score.Cmp(best) > 0 {
			best = score
		}
	}
	return best
}
