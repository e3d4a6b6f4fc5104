package poker

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Card packs a rank index and a suit bit into one byte.
// High 4 bits rank of the card, low 4 bits suit of the card.
// 0000: 2 ... 1000: 10, 1001: J, 1010: Q, 1011: K, 1100: A
// 0001: Spade, 0010: Heart, 0100: Diamond, 1000: Club
type Card uint8

var (
	strRanks     = "23456789TJQKA"
	strSuits     = "shdc"
	displayRanks = [13]string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"}
)

var (
	charRankToIntRank = map[uint8]int32{}
	charSuitToIntSuit = map[uint8]int32{
		's': 1, // spades
		'h': 2, // hearts
		'd': 4, // diamonds
		'c': 8, // clubs
	}
	intSuitToCharSuit = "xshxdxxxc"
)

var prettySuits = map[int32]string{
	1: "♠", // spades
	2: "♥", // hearts
	4: "♦", // diamonds
	8: "♣", // clubs
}

func init() {
	for i := range strRanks {
		charRankToIntRank[strRanks[i]] = int32(i)
	}
}

// NewCard parses the two character card code ("As", "Th", "2c").
func NewCard(s string) (Card, error) {
	if len(s) != 2 {
		return 0, errors.Errorf("invalid card code [%s]", s)
	}
	rankInt, ok := charRankToIntRank[s[0]]
	if !ok {
		return 0, errors.Errorf("invalid card rank [%c]", s[0])
	}
	suitInt, ok := charSuitToIntSuit[s[1]]
	if !ok {
		return 0, errors.Errorf("invalid card suit [%c]", s[1])
	}
	return Card(uint8(rankInt<<4) | uint8(suitInt)), nil
}

// MustCard is NewCard for hard-coded codes.
func MustCard(s string) Card {
	c, err := NewCard(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Rank returns the card value, 2 through 14 where 14 is the ace.
func (c Card) Rank() int32 {
	return (int32(c) >> 4 & 0xF) + 2
}

// Suit returns the suit bit (1 spade, 2 heart, 4 diamond, 8 club).
func (c Card) Suit() int32 {
	return int32(c) & 0xF
}

func (c Card) rankIndex() int32 {
	return int32(c) >> 4 & 0xF
}

// String renders the display form, e.g. "A♠" or "10♥".
func (c Card) String() string {
	return displayRanks[c.rankIndex()] + prettySuits[c.Suit()]
}

// Code renders the compact two character form, e.g. "As" or "Th".
func (c Card) Code() string {
	return string(strRanks[c.rankIndex()]) + string(intSuitToCharSuit[c.Suit()])
}

func (c Card) Byte() uint8 {
	return uint8(c)
}

func (c Card) MarshalJSON() ([]byte, error) {
	return []byte("\"" + c.Code() + "\""), nil
}

func (c *Card) UnmarshalJSON(b []byte) error {
	if len(b) != 4 {
		return errors.Errorf("invalid card JSON %s", string(b))
	}
	card, err := NewCard(string(b[1:3]))
	if err != nil {
		return err
	}
	*c = card
	return nil
}

func CardToString(card Card) string {
	return card.String()
}

func CardsToString(cards []Card) string {
	var b strings.Builder
	b.Grow(32)
	fmt.Fprintf(&b, "[")
	for _, c := range cards {
		fmt.Fprintf(&b, " %s ", c.String())
	}
	fmt.Fprintf(&b, "]")
	return b.String()
}

func PrintCards(cards []Card) string {
	return CardsToString(cards)
}
