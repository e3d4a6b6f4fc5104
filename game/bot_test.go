package game

import (
	"math"
	"math/rand"
	"testing"

	caches "tablestakes.com/headsup/caching"
	"tablestakes.com/headsup/poker"
)

func botCards(codes ...string) []poker.Card {
	cards := make([]poker.Card, 0, len(codes))
	for _, code := range codes {
		cards = append(cards, poker.MustCard(code))
	}
	return cards
}

func newTestBot() *BotIO {
	cache, _ := caches.NewScoreCache(32)
	return NewBotIO("CPU", rand.New(rand.NewSource(1)), cache)
}

func TestBotStrength(t *testing.T) {
	testCases := []struct {
		hole      []poker.Card
		community []poker.Card
		expected  float64
	}{
		// Pre-flop only the high card counts.
		{botCards("As", "Ah"), nil, 1.0},
		{botCards("2s", "3d"), nil, 3.0 / 14.0},
		// Aces full of kings: category 6 of 8 with an ace on top.
		{botCards("As", "Ah"), botCards("Ad", "Ks", "Kd"), 0.6*6.0/8.0 + 0.4},
		// Jack high garbage.
		{botCards("2s", "7d"), botCards("3h", "8c", "Jd"), 0.4 * 11.0 / 14.0},
	}
	for i, tc := range testCases {
		bot := newTestBot()
		bot.ObserveHole(tc.hole)
		if tc.community != nil {
			bot.ObserveCommunity(tc.community)
		}
		got := bot.strength()
		if math.Abs(got-tc.expected) > 1e-9 {
			t.Errorf("Test case %d expected strength %f, but got %f", i, tc.expected, got)
		}
	}
}

func TestBotChecksWeakHandsForFree(t *testing.T) {
	bot := newTestBot()
	bot.ObserveHole(botCards("2s", "3d"))
	bot.ObserveTurn(TurnContext{Pot: 20, Stack: 1000, Owed: 0, CurrentBet: 0, RaiseAvailable: true})

	action, err := bot.RequestAction("check / bet / fold (or 'all-in'): ")
	if err != nil {
		t.Fatalf("RequestAction returned an error: %s", err)
	}
	if action != "check" {
		t.Errorf("Expected check, but got %q", action)
	}
}

func TestBotChecksWhenRaisingIsClosed(t *testing.T) {
	bot := newTestBot()
	bot.ObserveHole(botCards("As", "Ah"))
	bot.ObserveCommunity(botCards("Ad", "Ks", "Kd"))
	bot.ObserveTurn(TurnContext{Pot: 40, Stack: 1000, Owed: 0, CurrentBet: 0, RaiseAvailable: false})

	action, err := bot.RequestAction("check / fold (or 'all-in'): ")
	if err != nil {
		t.Fatalf("RequestAction returned an error: %s", err)
	}
	if action != "check" {
		t.Errorf("Expected check with no raise available, but got %q", action)
	}
}

func TestBotRaisesBigHandsAndNamesTheAmount(t *testing.T) {
	bot := newTestBot()
	bot.ObserveHole(botCards("As", "Ah"))
	bot.ObserveCommunity(botCards("Ad", "Ks", "Kd"))
	bot.ObserveTurn(TurnContext{Pot: 40, Stack: 995, Owed: 5, CurrentBet: 10, RaiseAvailable: true})

	action, err := bot.RequestAction("call / raise / fold (or 'all-in'): ")
	if err != nil {
		t.Fatalf("RequestAction returned an error: %s", err)
	}
	if action != "raise" {
		t.Fatalf("Expected a raise with a monster, but got %q", action)
	}
	amount, err := bot.RequestAction("Enter raise amount: ")
	if err != nil {
		t.Fatalf("RequestAction returned an error: %s", err)
	}
	if amount != "20" {
		t.Errorf("Expected the standard 20 chip raise, but got %q", amount)
	}
}

func TestBotRaiseFallsBackToCall(t *testing.T) {
	// A 20 chip raise cannot cover the 50 owed, so the bot calls instead.
	bot := newTestBot()
	bot.ObserveHole(botCards("As", "Ah"))
	bot.ObserveCommunity(botCards("Ad", "Ks", "Kd"))
	bot.ObserveTurn(TurnContext{Pot: 100, Stack: 100, Owed: 50, CurrentBet: 50, RaiseAvailable: true})

	action, err := bot.RequestAction("call / raise / fold (or 'all-in'): ")
	if err != nil {
		t.Fatalf("RequestAction returned an error: %s", err)
	}
	if action != "call" {
		t.Errorf("Expected a call when the raise cannot cover the price, but got %q", action)
	}
}

func TestBotCallsForItsWholeStack(t *testing.T) {
	bot := newTestBot()
	bot.ObserveHole(botCards("As", "Ah"))
	bot.ObserveTurn(TurnContext{Pot: 100, Stack: 30, Owed: 50, CurrentBet: 60, RaiseAvailable: false})

	action, err := bot.RequestAction("call / fold (or 'all-in'): ")
	if err != nil {
		t.Fatalf("RequestAction returned an error: %s", err)
	}
	if action != "call" {
		t.Errorf("Expected a call with aces, but got %q", action)
	}
}

func TestBotFacingBetWhenRaiseClosed(t *testing.T) {
	strong := newTestBot()
	strong.ObserveHole(botCards("As", "Ah"))
	strong.ObserveCommunity(botCards("Ad", "Ks", "Kd"))
	strong.ObserveTurn(TurnContext{Pot: 40, Stack: 500, Owed: 20, CurrentBet: 20, RaiseAvailable: false})
	action, err := strong.RequestAction("call / fold (or 'all-in'): ")
	if err != nil {
		t.Fatalf("RequestAction returned an error: %s", err)
	}
	if action != "call" {
		t.Errorf("Expected the strong hand to call, but got %q", action)
	}

	weak := newTestBot()
	weak.ObserveHole(botCards("2s", "3d"))
	weak.ObserveTurn(TurnContext{Pot: 40, Stack: 500, Owed: 20, CurrentBet: 20, RaiseAvailable: false})
	action, err = weak.RequestAction("call / fold (or 'all-in'): ")
	if err != nil {
		t.Fatalf("RequestAction returned an error: %s", err)
	}
	if action != "fold" {
		t.Errorf("Expected the weak hand to fold, but got %q", action)
	}
}

func TestBotWeakFacingBetPicksCallOrFold(t *testing.T) {
	bot := newTestBot()
	bot.ObserveHole(botCards("2s", "3d"))
	bot.ObserveTurn(TurnContext{Pot: 40, Stack: 500, Owed: 20, CurrentBet: 20, RaiseAvailable: true})

	action, err := bot.RequestAction("call / raise / fold (or 'all-in'): ")
	if err != nil {
		t.Fatalf("RequestAction returned an error: %s", err)
	}
	if action != "call" && action != "fold" {
		t.Errorf("Expected the weak hand to call or fold, but got %q", action)
	}
}

func TestBotNewHoleCardsResetTheBoard(t *testing.T) {
	bot := newTestBot()
	bot.ObserveHole(botCards("As", "Ah"))
	bot.ObserveCommunity(botCards("Ad", "Ks", "Kd"))
	bot.ObserveHole(botCards("2s", "3d"))

	got := bot.strength()
	expected := 3.0 / 14.0
	if math.Abs(got-expected) > 1e-9 {
		t.Errorf("Expected the stale board to be forgotten, strength %f, but got %f", expected, got)
	}
}

func TestBotPlaysAWholeHandUnattended(t *testing.T) {
	deck := scriptedDeck(t,
		[]string{"As", "Ah"},
		[]string{"Ks", "Kd"},
		[]string{"Ad", "7c", "2c"},
		"7h", "3s")
	io1 := newTestBot()
	io2 := newTestBot()
	p1 := NewPlayer(1, "CPU 1", 1000, io1)
	p2 := NewPlayer(2, "CPU 2", 1000, io2)

	hand := NewHand(1, p1, p2, deck, 5, 10)
	result, err := hand.Run()
	if err != nil {
		t.Fatalf("Hand returned an error: %s", err)
	}
	if result.Winner == "" {
		t.Error("Expected the hand to produce a winner")
	}
	if p1.Stack+p2.Stack > 2000 {
		t.Errorf("Chips appeared from nowhere: stacks sum to %d", p1.Stack+p2.Stack)
	}
}
