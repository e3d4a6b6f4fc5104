package game

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pkg/errors"

	"tablestakes.com/headsup/poker"
)

// PlayerIO is the port the table uses to talk to one seat. The engine
// drives every seat through this interface, so local keyboards, network
// peers, bots and scripted test players all plug in the same way.
type PlayerIO interface {
	// RequestAction sends a prompt and blocks until the seat replies.
	// There is no timeout; an unresponsive seat stalls the hand.
	RequestAction(prompt string) (string, error)
	// Notify delivers one line of table talk. No reply is expected.
	Notify(message string) error
	// EndGame tells the seat that no more prompts will arrive.
	EndGame() error
}

// CardObserver is implemented by seats that want structured card
// knowledge in addition to the table talk, such as the bot.
type CardObserver interface {
	ObserveHole(cards []poker.Card)
	ObserveCommunity(cards []poker.Card)
}

// TurnContext is a snapshot of the betting state handed to a
// TurnObserver just before its seat is prompted.
type TurnContext struct {
	Pot            int64
	Stack          int64
	Owed           int64
	CurrentBet     int64
	RaiseAvailable bool
}

type TurnObserver interface {
	ObserveTurn(turn TurnContext)
}

// Player is one seat at the heads-up table. Seat numbers are indexed
// from 1 like the real table; seat 1 always posts the small blind and
// always acts first.
type Player struct {
	Seat  uint32
	Name  string
	Stack int64
	IO    PlayerIO

	// per hand state, owned by the betting round and hand
	contrib int64
	folded  bool
	allIn   bool
}

func NewPlayer(seat uint32, name string, stack int64, io PlayerIO) *Player {
	return &Player{
		Seat:  seat,
		Name:  name,
		Stack: stack,
		IO:    io,
	}
}

func (p *Player) resetForHand() {
	p.contrib = 0
	p.folded = false
	p.allIn = false
}

// LocalIO drives a seat from the operator's terminal.
type LocalIO struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func NewLocalIO(in io.Reader, out io.Writer) *LocalIO {
	return &LocalIO{
		scanner: bufio.NewScanner(in),
		out:     out,
	}
}

func (l *LocalIO) RequestAction(prompt string) (string, error) {
	if _, err := fmt.Fprint(l.out, prompt); err != nil {
		return "", errors.Wrap(err, "unable to write prompt")
	}
	if !l.scanner.Scan() {
		if err := l.scanner.Err(); err != nil {
			return "", errors.Wrap(err, "unable to read operator input")
		}
		return "", errors.New("operator input stream closed")
	}
	return l.scanner.Text(), nil
}

func (l *LocalIO) Notify(message string) error {
	_, err := fmt.Fprintln(l.out, message)
	return err
}

func (l *LocalIO) EndGame() error {
	return nil
}

func min64(a int64, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
