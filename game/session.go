package game

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"tablestakes.com/headsup/logging"
	"tablestakes.com/headsup/poker"
	"tablestakes.com/headsup/util"
)

var sessionLogger = log.With().Str("logger_name", "game::session").Logger()

const (
	DefaultSmallBlind    int64 = 5
	DefaultBigBlind      int64 = 10
	DefaultStartingStack int64 = 1000
)

// Session repeats hands until a stack reaches zero or the operator
// quits. Seat 1 is the operator's seat and always posts the small blind.
type Session struct {
	ID         string
	SmallBlind int64
	BigBlind   int64

	// DeckFactory builds the deck for each hand. Defaults to a fresh
	// uniformly shuffled deck; tests install rigged decks here.
	DeckFactory func() *poker.Deck

	players [2]*Player
	handNum uint32
	tracker HandTracker
}

func NewSession(seat1 *Player, seat2 *Player, tracker HandTracker) *Session {
	return &Session{
		ID:          uuid.New().String(),
		SmallBlind:  DefaultSmallBlind,
		BigBlind:    DefaultBigBlind,
		DeckFactory: func() *poker.Deck { return poker.NewDeck(nil) },
		players:     [2]*Player{seat1, seat2},
		handNum:     1,
		tracker:     tracker,
	}
}

func (s *Session) tell(p *Player, message string) error {
	if err := p.IO.Notify(message); err != nil {
		return &DisconnectError{PlayerName: p.Name, Err: err}
	}
	return nil
}

func (s *Session) tellBoth(message string) error {
	if err := s.tell(s.players[0], message); err != nil {
		return err
	}
	return s.tell(s.players[1], message)
}

// farewell is the best effort goodbye. Send errors no longer matter.
func (s *Session) farewell() {
	for _, p := range s.players {
		p.IO.Notify("Thanks for playing!")
		p.IO.EndGame()
	}
}

// abort tears the session down after a transport failure, informing
// whichever peer can still hear us.
func (s *Session) abort(err error) error {
	sessionLogger.Error().
		Str(logging.SessionIDKey, s.ID).
		Msgf("Session aborted: %s", err)
	for _, p := range s.players {
		p.IO.Notify("Connection lost. Game over.")
		p.IO.EndGame()
	}
	return err
}

func (s *Session) handBanner() error {
	p1 := s.players[0]
	p2 := s.players[1]
	if err := s.tellBoth("===================================="); err != nil {
		return err
	}
	if err := s.tellBoth(fmt.Sprintf("Hand #%d", s.handNum)); err != nil {
		return err
	}
	toP1 := fmt.Sprintf("Your chips: %d | %s chips: %d", p1.Stack, p2.Name, p2.Stack)
	toP2 := fmt.Sprintf("Your chips: %d | %s chips: %d", p2.Stack, p1.Name, p1.Stack)
	if err := s.tell(p1, toP1); err != nil {
		return err
	}
	if err := s.tell(p2, toP2); err != nil {
		return err
	}
	return s.tellBoth("====================================")
}

// bustedPlayer returns the seat with no chips left, or nil.
func (s *Session) bustedPlayer() *Player {
	for _, p := range s.players {
		if p.Stack <= 0 {
			return p
		}
	}
	return nil
}

// Run is the session main loop. It returns nil on a normal ending and
// the transport error when a connection died mid game.
func (s *Session) Run() error {
	p1 := s.players[0]

	if err := s.tellBoth("Welcome to Texas Hold'em Poker (Heads-Up)!"); err != nil {
		return s.abort(err)
	}
	if err := s.tellBoth(fmt.Sprintf("Small blind: %d | Big blind: %d", s.SmallBlind, s.BigBlind)); err != nil {
		return s.abort(err)
	}

	for {
		if err := s.handBanner(); err != nil {
			return s.abort(err)
		}

		if busted := s.bustedPlayer(); busted != nil {
			other := s.otherPlayer(busted)
			toBusted := fmt.Sprintf("You are out of chips. %s wins the game.", other.Name)
			toOther := fmt.Sprintf("%s is out of chips. You win the game!", busted.Name)
			if err := s.tell(busted, toBusted); err != nil {
				return s.abort(err)
			}
			if err := s.tell(other, toOther); err != nil {
				return s.abort(err)
			}
			s.farewell()
			return nil
		}

		choice, err := p1.IO.RequestAction("Press ENTER to play a hand, or type Q to quit: ")
		if err != nil {
			return s.abort(&DisconnectError{PlayerName: p1.Name, Err: err})
		}
		if strings.ToLower(strings.TrimSpace(choice)) == "q" {
			if err := s.tell(p1, "You quit the game."); err != nil {
				return s.abort(err)
			}
			if err := s.tell(s.players[1], fmt.Sprintf("%s quit the game. Game over.", p1.Name)); err != nil {
				return s.abort(err)
			}
			s.farewell()
			return nil
		}

		hand := NewHand(s.handNum, s.players[0], s.players[1], s.DeckFactory(), s.SmallBlind, s.BigBlind)
		result, err := hand.Run()
		if err != nil {
			return s.abort(err)
		}
		s.record(result)
		util.Metrics.HandPlayed()
		s.handNum++
	}
}

func (s *Session) otherPlayer(p *Player) *Player {
	if p == s.players[0] {
		return s.players[1]
	}
	return s.players[0]
}

// record hands the result to the history tracker. Persistence trouble
// never interrupts play.
func (s *Session) record(result *HandResult) {
	if s.tracker == nil {
		return
	}
	record := NewHandRecord(s.ID, result)
	if err := s.tracker.Save(record); err != nil {
		sessionLogger.Warn().
			Str(logging.SessionIDKey, s.ID).
			Uint32(logging.HandNumKey, result.HandNum).
			Msgf("Unable to save hand history: %s", err)
	}
}
