package game

import (
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	caches "tablestakes.com/headsup/caching"
	"tablestakes.com/headsup/poker"
)

var botLogger = log.With().Str("logger_name", "game::bot").Logger()

// BotIO plays a seat without any operator. It watches its cards and the
// betting state through the observer interfaces and answers prompts from
// a simple strength estimate.
type BotIO struct {
	name  string
	rng   *rand.Rand
	cache *caches.ScoreCache

	hole      []poker.Card
	community []poker.Card
	turn      TurnContext
	raiseAmt  int64
}

// NewBotIO builds a bot seat. A nil rng gets a time seeded one; a nil
// cache skips score memoization.
func NewBotIO(name string, rng *rand.Rand, cache *caches.ScoreCache) *BotIO {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &BotIO{
		name:  name,
		rng:   rng,
		cache: cache,
	}
}

func (b *BotIO) ObserveHole(cards []poker.Card) {
	b.hole = append([]poker.Card(nil), cards...)
	b.community = nil
}

func (b *BotIO) ObserveCommunity(cards []poker.Card) {
	b.community = append([]poker.Card(nil), cards...)
}

func (b *BotIO) ObserveTurn(turn TurnContext) {
	b.turn = turn
}

func (b *BotIO) RequestAction(prompt string) (string, error) {
	if strings.Contains(prompt, "raise amount") {
		return strconv.FormatInt(b.raiseAmt, 10), nil
	}
	action := b.decide()
	botLogger.Debug().Str("player", b.name).Msgf("%q -> %q", prompt, action)
	return action, nil
}

func (b *BotIO) Notify(message string) error {
	botLogger.Trace().Str("player", b.name).Msg(message)
	return nil
}

func (b *BotIO) EndGame() error {
	return nil
}

// strength scores the bot's situation into [0, 1]. Before the flop it
// only has its high card to go on; from the flop onward it evaluates
// the best five card hand available.
func (b *BotIO) strength() float64 {
	total := make([]poker.Card, 0, len(b.hole)+len(b.community))
	total = append(total, b.hole...)
	total = append(total, b.community...)

	var strength float64
	if len(total) >= 5 {
		score := b.evaluate(total)
		rankNorm := float64(score.Category) / 8.0
		highNorm := float64(score.Tiebreak[0]) / 14.0
		strength = 0.6*rankNorm + 0.4*highNorm
	} else {
		var high int32
		for _, card := range total {
			if card.Rank() > high {
				high = card.Rank()
			}
		}
		strength = float64(high) / 14.0
	}
	if strength < 0 {
		return 0
	}
	if strength > 1 {
		return 1
	}
	return strength
}

func (b *BotIO) evaluate(cards []poker.Card) poker.Score {
	if b.cache != nil {
		return b.cache.Evaluate(cards)
	}
	return poker.Evaluate(cards)
}

func (b *BotIO) choose(a string, c string) string {
	if b.rng.Intn(2) == 0 {
		return a
	}
	return c
}

// raiseOr stages a raise of up to 20 chips. When the stage's raise rules
// would reject that amount the bot takes the fallback action instead.
func (b *BotIO) raiseOr(fallback string) string {
	amount := min64(20, b.turn.Stack)
	if amount <= b.turn.Owed {
		return fallback
	}
	b.raiseAmt = amount
	return "raise"
}

func (b *BotIO) decide() string {
	tc := b.turn
	strength := b.strength()

	if tc.Owed > 0 {
		if tc.Stack <= tc.Owed {
			// Calling costs the whole stack.
			if strength > 0.25 {
				return "call"
			}
			return b.choose("call", "fold")
		}
		if !tc.RaiseAvailable {
			if strength > 0.6 {
				return "call"
			}
			if strength < 0.3 {
				return "fold"
			}
			return b.choose("call", "fold")
		}
		if strength > 0.8 {
			return b.raiseOr("call")
		}
		if strength > 0.5 {
			if b.choose("call", "raise") == "raise" {
				return b.raiseOr("call")
			}
			return "call"
		}
		if strength < 0.3 {
			return b.choose("call", "fold")
		}
		return "call"
	}

	if !tc.RaiseAvailable {
		return "check"
	}
	if strength > 0.8 {
		return b.raiseOr("check")
	}
	if strength > 0.5 {
		if b.choose("check", "raise") == "raise" {
			return b.raiseOr("check")
		}
		return "check"
	}
	return "check"
}
