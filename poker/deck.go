package poker

import (
	crypto_rand "crypto/rand"
	"encoding/binary"
	"math/rand"

	"github.com/pkg/errors"
)

// ErrDeckExhausted is returned when a deal asks for more cards than remain.
var ErrDeckExhausted = errors.New("deck exhausted")

var fullDeck *Deck

func init() {
	fullDeck = &Deck{cards: initializeFullCards()}
}

type Deck struct {
	cards   []Card
	randGen *rand.Rand
}

func newSeed() rand.Source {
	var b [8]byte
	_, err := crypto_rand.Read(b[:])
	if err != nil {
		panic("cannot seed math/rand package with cryptographically secure random number generator")
	}
	return rand.NewSource(int64(binary.LittleEndian.Uint64(b[:])))
}

// NewDeck builds a shuffled 52 card deck. A nil source seeds one from
// crypto/rand; tests pass a fixed source for deterministic ordering.
func NewDeck(source rand.Source) *Deck {
	if source == nil {
		source = newSeed()
	}
	deck := &Deck{randGen: rand.New(source)}
	deck.Shuffle()
	return deck
}

func NewDeckNoShuffle() *Deck {
	deck := &Deck{}
	deck.cards = make([]Card, len(fullDeck.cards))
	copy(deck.cards, fullDeck.cards)
	return deck
}

// Shuffle resets the deck to all 52 cards in a fresh uniform permutation.
func (deck *Deck) Shuffle() *Deck {
	deck.cards = make([]Card, len(fullDeck.cards))
	copy(deck.cards, fullDeck.cards)

	if deck.randGen == nil {
		deck.randGen = rand.New(newSeed())
	}
	deck.randGen.Shuffle(len(deck.cards), func(i, j int) {
		deck.cards[i], deck.cards[j] = deck.cards[j], deck.cards[i]
	})
	return deck
}

// Deal removes and returns n cards from the tail of the pile.
func (deck *Deck) Deal(n int) ([]Card, error) {
	if n < 0 || n > len(deck.cards) {
		return nil, errors.Wrapf(ErrDeckExhausted, "requested %d cards with %d remaining", n, len(deck.cards))
	}
	cards := make([]Card, n)
	for i := 0; i < n; i++ {
		last := len(deck.cards) - 1
		cards[i] = deck.cards[last]
		deck.cards = deck.cards[:last]
	}
	return cards, nil
}

func (deck *Deck) Remaining() int {
	return len(deck.cards)
}

func (deck *Deck) PrettyPrint() string {
	return CardsToString(deck.cards)
}

func initializeFullCards() []Card {
	var cards []Card
	for _, rank := range strRanks {
		for _, suit := range strSuits {
			cards = append(cards, MustCard(string(rank)+string(suit)))
		}
	}
	return cards
}

type CardsInAscii []string

// DeckFromScript arranges a deck so the standard heads-up deal order
// (two cards to each seat, then flop, turn and river, no burn cards)
// comes off the tail exactly as scripted. Unscripted cards stay random.
func DeckFromScript(seat1, seat2 CardsInAscii, flop CardsInAscii, turn string, river string) (*Deck, error) {
	codes := make([]string, 0, 9)
	codes = append(codes, seat1...)
	codes = append(codes, seat2...)
	codes = append(codes, flop...)
	codes = append(codes, turn, river)
	if len(seat1) != 2 || len(seat2) != 2 || len(flop) != 3 {
		return nil, errors.Errorf("script needs 2+2 hole cards and a 3 card flop, got %d+%d and %d", len(seat1), len(seat2), len(flop))
	}

	deck := NewDeck(nil)
	seen := make(map[Card]bool)
	// Deal pops from the tail, so the first scripted card goes to the
	// last slot and the rest walk backward from there.
	slot := len(deck.cards) - 1
	for _, code := range codes {
		card, err := NewCard(code)
		if err != nil {
			return nil, err
		}
		if seen[card] {
			return nil, errors.Errorf("card %s appears twice in the script", code)
		}
		seen[card] = true

		loc := deck.getCardLoc(card)
		deck.cards[slot], deck.cards[loc] = deck.cards[loc], deck.cards[slot]
		slot--
	}
	return deck, nil
}

func (deck *Deck) getCardLoc(cardToLocate Card) int {
	for i, card := range deck.cards {
		if card == cardToLocate {
			return i
		}
	}
	return -1
}
