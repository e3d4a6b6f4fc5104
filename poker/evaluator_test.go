package poker

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func handOf(codes ...string) []Card {
	cards := make([]Card, 0, len(codes))
	for _, code := range codes {
		cards = append(cards, MustCard(code))
	}
	return cards
}

func TestEvaluate(t *testing.T) {
	testCases := []struct {
		cards    []string
		category int32
		tiebreak [5]int32
	}{
		// Aces full of kings out of seven cards.
		{[]string{"As", "Ah", "Ad", "Ks", "Kd", "2c", "3c"}, FullHouse, [5]int32{14, 14, 14, 13, 13}},
		// A royal flush outranks the three extra aces in the same seven cards.
		{[]string{"Ts", "Js", "Qs", "Ks", "As", "Ah", "Ad"}, StraightFlush, [5]int32{14, 13, 12, 11, 10}},
		{[]string{"As", "Ah", "Ad", "Ac", "Ks", "Qd", "2c"}, FourOfAKind, [5]int32{14, 14, 14, 14, 13}},
		// The ace never plays low, so the wheel is just ace high.
		{[]string{"As", "2h", "3d", "4c", "5s"}, HighCard, [5]int32{14, 5, 4, 3, 2}},
		{[]string{"2s", "3h", "4d", "5c", "6s"}, Straight, [5]int32{6, 5, 4, 3, 2}},
		{[]string{"9h", "8h", "7h", "6h", "5h"}, StraightFlush, [5]int32{9, 8, 7, 6, 5}},
		{[]string{"As", "Qs", "9s", "5s", "3s"}, Flush, [5]int32{14, 12, 9, 5, 3}},
		{[]string{"7s", "7h", "7d", "Ks", "2c"}, ThreeOfAKind, [5]int32{13, 7, 7, 7, 2}},
		{[]string{"Ks", "Kd", "Qh", "Qc", "9s"}, TwoPair, [5]int32{13, 13, 12, 12, 9}},
		{[]string{"2s", "2h", "As", "Kd", "Qc"}, OnePair, [5]int32{14, 13, 12, 2, 2}},
		{[]string{"As", "Kd", "Qc", "Jh", "9s"}, HighCard, [5]int32{14, 13, 12, 11, 9}},
		// Six cards, best five is the straight flush.
		{[]string{"As", "Ks", "Qs", "Js", "Ts", "2d"}, StraightFlush, [5]int32{14, 13, 12, 11, 10}},
		// Seven unsuited, unpaired cards pick the five highest.
		{[]string{"As", "Kd", "Qc", "Jh", "9s", "5d", "2c"}, HighCard, [5]int32{14, 13, 12, 11, 9}},
		// The pair of twos still outkicks nothing: all five values count.
		{[]string{"2s", "2h", "3d", "4c", "6s", "8d", "Th"}, OnePair, [5]int32{10, 8, 6, 2, 2}},
	}
	for i, tc := range testCases {
		score := Evaluate(handOf(tc.cards...))
		if score.Category != tc.category {
			t.Errorf("Test case %d expected category %d (%s), but got %d (%s)",
				i, tc.category, handNames[tc.category], score.Category, handNames[score.Category])
		}
		if diff := cmp.Diff(tc.tiebreak, score.Tiebreak); diff != "" {
			t.Errorf("Test case %d tiebreak mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestEvaluateIsOrderIndependent(t *testing.T) {
	cards := handOf("Ts", "Js", "Qs", "Ks", "As", "Ah", "Ad")
	want := Evaluate(cards)
	r := rand.New(rand.NewSource(11))
	for trial := 0; trial < 20; trial++ {
		shuffled := make([]Card, len(cards))
		copy(shuffled, cards)
		r.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		got := Evaluate(shuffled)
		if got.Cmp(want) != 0 {
			t.Fatalf("Trial %d scored %v, but expected %v", trial, got, want)
		}
	}
}

func TestScoreCmp(t *testing.T) {
	testCases := []struct {
		a        []string
		b        []string
		expected int
	}{
		// Straight flush over four of a kind.
		{[]string{"Ts", "Js", "Qs", "Ks", "As"}, []string{"Ah", "Ad", "Ac", "As", "Ks"}, 1},
		// Higher kicker wins inside a category.
		{[]string{"As", "Ah", "Ks", "Qd", "2c"}, []string{"Ad", "Ac", "Kd", "Jh", "2s"}, 1},
		// Identical values in different suits tie.
		{[]string{"As", "Kd", "Qc", "Jh", "9s"}, []string{"Ah", "Ks", "Qd", "Jc", "9d"}, 0},
		// Any pair beats any unpaired hand.
		{[]string{"2s", "2h", "3d", "4c", "6s"}, []string{"As", "Kd", "Qc", "Jh", "9s"}, 1},
	}
	for i, tc := range testCases {
		a := Evaluate(handOf(tc.a...))
		b := Evaluate(handOf(tc.b...))
		if got := a.Cmp(b); got != tc.expected {
			t.Errorf("Test case %d expected Cmp %d, but got %d", i, tc.expected, got)
		}
		if got := b.Cmp(a); got != -tc.expected {
			t.Errorf("Test case %d expected reverse Cmp %d, but got %d", i, -tc.expected, got)
		}
	}
}

func TestScoreString(t *testing.T) {
	testCases := []struct {
		cards    []string
		expected string
	}{
		{[]string{"As", "Ah", "Ad", "Ks", "Kd"}, "Full House, high card A"},
		{[]string{"As", "Kd", "Qc", "Jh", "9s"}, "High Card (A high)"},
		{[]string{"Ts", "Th", "4d", "5c", "6s"}, "One Pair, high card 10"},
		{[]string{"9h", "8h", "7h", "6h", "5h"}, "Straight Flush, high card 9"},
	}
	for i, tc := range testCases {
		score := Evaluate(handOf(tc.cards...))
		if got := score.String(); got != tc.expected {
			t.Errorf("Test case %d expected %q, but got %q", i, tc.expected, got)
		}
	}
}

func TestEvaluateRejectsBadHandSizes(t *testing.T) {
	for _, n := range []int{0, 1, 4, 8} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Expected a panic for %d cards, but got none", n)
				}
			}()
			Evaluate(handOf("As", "Kd", "Qc", "Jh", "9s", "5d", "2c", "3c")[:n])
		}()
	}
}
