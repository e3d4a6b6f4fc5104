package game

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"tablestakes.com/headsup/logging"
)

var bettingLogger = log.With().Str("logger_name", "game::betting").Logger()

// bettingRound resolves one wagering street between the two seats.
// Seat 1 acts first on every street. At most one open raise is allowed
// per street; an all-in above the current bet takes that raise slot but
// never reopens betting for anyone else.
type bettingRound struct {
	hand       *Hand
	stage      string
	currentBet int64
	raiseUsed  bool
	lastRaiser *Player
	acted      map[*Player]bool
}

// runBettingRound plays one street. Per round contributions must already
// be seeded by the caller: the blinds pre-flop, zero afterwards.
func (h *Hand) runBettingRound(stage string, openingBet int64) error {
	br := &bettingRound{
		hand:       h,
		stage:      stage,
		currentBet: openingBet,
		acted:      make(map[*Player]bool),
	}
	return br.run()
}

func (br *bettingRound) run() error {
	banner := fmt.Sprintf("--- %s BETTING ROUND ---", strings.ToUpper(br.stage))
	if err := br.hand.tellBoth(banner); err != nil {
		return err
	}

	for {
		if err := br.tellState(); err != nil {
			return err
		}
		if br.settled() {
			return nil
		}
		for _, p := range br.hand.players {
			if p.folded || p.allIn {
				continue
			}
			// A short all-in earlier in this cycle may have left this
			// seat with nothing to answer.
			if br.settled() {
				return nil
			}
			done, err := br.takeTurn(p)
			if err != nil {
				return err
			}
			if done {
				return nil
			}
		}
	}
}

// settled reports the degenerate endings: once any seat is all-in and
// every seat still able to act owes nothing, no further prompting can
// change the round.
func (br *bettingRound) settled() bool {
	anyAllIn := false
	for _, p := range br.hand.players {
		if p.allIn {
			anyAllIn = true
			break
		}
	}
	if !anyAllIn {
		return false
	}
	for _, p := range br.hand.players {
		if p.folded || p.allIn {
			continue
		}
		if br.owed(p) > 0 {
			return false
		}
	}
	return true
}

// roundDone reports normal termination after a valid action: matched
// contributions plus either an answered raise or a full cycle with no
// raise outstanding. The big blind keeps its option pre-flop because the
// no-raise arm requires every able seat to have acted.
func (br *bettingRound) roundDone(justActed *Player) bool {
	for _, p := range br.hand.players {
		if p.folded || p.allIn {
			continue
		}
		if p.contrib != br.currentBet {
			return false
		}
	}
	if br.lastRaiser != nil {
		return justActed != br.lastRaiser
	}
	for _, p := range br.hand.players {
		if p.folded || p.allIn {
			continue
		}
		if !br.acted[p] {
			return false
		}
	}
	return true
}

func (br *bettingRound) owed(p *Player) int64 {
	owed := br.currentBet - p.contrib
	if owed < 0 {
		owed = 0
	}
	return owed
}

func (br *bettingRound) canRaise(p *Player) bool {
	return !br.raiseUsed && p.Stack > br.owed(p)
}

func (br *bettingRound) commit(p *Player, amount int64) {
	p.Stack -= amount
	p.contrib += amount
	br.hand.pot += amount
}

func (br *bettingRound) tellState() error {
	p1 := br.hand.players[0]
	p2 := br.hand.players[1]
	line := "Pot: %d | Your chips: %d | %s chips: %d | Current bet: %d"
	if err := br.hand.tell(p1, fmt.Sprintf(line, br.hand.pot, p1.Stack, p2.Name, p2.Stack, br.currentBet)); err != nil {
		return err
	}
	return br.hand.tell(p2, fmt.Sprintf(line, br.hand.pot, p2.Stack, p1.Name, p1.Stack, br.currentBet))
}

func (br *bettingRound) promptFor(p *Player, owed int64) string {
	if owed > 0 {
		if br.canRaise(p) {
			return "call / raise / fold (or 'all-in'): "
		}
		return "call / fold (or 'all-in'): "
	}
	if br.canRaise(p) {
		return "check / bet / fold (or 'all-in'): "
	}
	return "check / fold (or 'all-in'): "
}

func (br *bettingRound) observeTurn(p *Player, owed int64) {
	if obs, ok := p.IO.(TurnObserver); ok {
		obs.ObserveTurn(TurnContext{
			Pot:            br.hand.pot,
			Stack:          p.Stack,
			Owed:           owed,
			CurrentBet:     br.currentBet,
			RaiseAvailable: br.canRaise(p),
		})
	}
}

// takeTurn prompts one seat until it supplies a legal action, applies
// that action, and reports whether the round is over. Invalid input
// never moves chips and never passes the turn.
func (br *bettingRound) takeTurn(p *Player) (bool, error) {
	for {
		owed := br.owed(p)
		br.observeTurn(p, owed)
		reply, err := p.IO.RequestAction(br.promptFor(p, owed))
		if err != nil {
			return false, &DisconnectError{PlayerName: p.Name, Err: err}
		}
		action := strings.ToLower(strings.TrimSpace(reply))
		bettingLogger.Debug().
			Str(logging.StageKey, br.stage).
			Uint32(logging.SeatNumKey, p.Seat).
			Msgf("action %q", action)

		switch action {
		case "fold", "f":
			if err := br.hand.announce(p, "You fold.", fmt.Sprintf("%s folds.", p.Name)); err != nil {
				return false, err
			}
			p.folded = true
			return true, nil

		case "all-in", "a":
			br.acted[p] = true
			amount := p.Stack
			br.commit(p, amount)
			p.allIn = true
			if p.contrib > br.currentBet {
				br.currentBet = p.contrib
				br.lastRaiser = p
				br.raiseUsed = true
			}
			toActor := fmt.Sprintf("You go all-in for %d.", amount)
			toOther := fmt.Sprintf("%s goes all-in for %d.", p.Name, amount)
			if err := br.hand.announce(p, toActor, toOther); err != nil {
				return false, err
			}
			return br.roundDone(p), nil

		case "call", "match", "m":
			if owed <= 0 {
				if err := br.hand.tell(p, "Invalid action."); err != nil {
					return false, err
				}
				continue
			}
			br.acted[p] = true
			amount := min64(owed, p.Stack)
			br.commit(p, amount)
			toActor := fmt.Sprintf("You call %d.", amount)
			toOther := fmt.Sprintf("%s calls %d.", p.Name, amount)
			if err := br.hand.announce(p, toActor, toOther); err != nil {
				return false, err
			}
			if p.Stack == 0 {
				p.allIn = true
				if err := br.hand.announce(p, "You are all-in.", fmt.Sprintf("%s is all-in.", p.Name)); err != nil {
					return false, err
				}
			}
			return br.roundDone(p), nil

		case "check", "c":
			if owed > 0 {
				if err := br.hand.tell(p, "You cannot check; you must call, all-in, or fold."); err != nil {
					return false, err
				}
				continue
			}
			br.acted[p] = true
			if err := br.hand.announce(p, "You check.", fmt.Sprintf("%s checks.", p.Name)); err != nil {
				return false, err
			}
			return br.roundDone(p), nil

		case "bet", "raise", "b", "r":
			if br.raiseUsed {
				if err := br.hand.tell(p, "Invalid action."); err != nil {
					return false, err
				}
				continue
			}
			amountReply, err := p.IO.RequestAction("Enter raise amount: ")
			if err != nil {
				return false, &DisconnectError{PlayerName: p.Name, Err: err}
			}
			amount, err := strconv.ParseInt(strings.TrimSpace(amountReply), 10, 64)
			if err != nil {
				if err := br.hand.tell(p, "Invalid raise."); err != nil {
					return false, err
				}
				continue
			}
			// The raise amount is the chips moved, so it must both fit
			// the stack and push the contribution past the current bet.
			if amount <= 0 || amount > p.Stack || amount <= owed {
				if err := br.hand.tell(p, "Invalid raise amount."); err != nil {
					return false, err
				}
				continue
			}
			br.acted[p] = true
			br.commit(p, amount)
			br.currentBet = p.contrib
			br.lastRaiser = p
			br.raiseUsed = true
			toActor := fmt.Sprintf("You raise to %d.", br.currentBet)
			toOther := fmt.Sprintf("%s raises to %d.", p.Name, br.currentBet)
			if err := br.hand.announce(p, toActor, toOther); err != nil {
				return false, err
			}
			if p.Stack == 0 {
				p.allIn = true
				if err := br.hand.announce(p, "You are all-in.", fmt.Sprintf("%s is all-in.", p.Name)); err != nil {
					return false, err
				}
			}
			return br.roundDone(p), nil

		default:
			if err := br.hand.tell(p, "Invalid action."); err != nil {
				return false, err
			}
		}
	}
}
