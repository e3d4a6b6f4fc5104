package gamescript

import (
	"io/ioutil"
	"strconv"

	mapset "github.com/deckarep/golang-set"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Script describes one fully determined hand: the stacks, every card
// position in the deck, each seat's actions per street, and the outcome
// the hand must produce.
type Script struct {
	Name       string  `yaml:"name"`
	SmallBlind int64   `yaml:"small-blind"`
	BigBlind   int64   `yaml:"big-blind"`
	Stacks     Stacks  `yaml:"stacks"`
	Deal       Deal    `yaml:"deal"`
	Actions    Actions `yaml:"actions"`
	Expect     Expect  `yaml:"expect"`
}

type Stacks struct {
	Seat1 int64 `yaml:"seat1"`
	Seat2 int64 `yaml:"seat2"`
}

type Deal struct {
	Seat1 []string `yaml:"seat1"`
	Seat2 []string `yaml:"seat2"`
	Flop  []string `yaml:"flop"`
	Turn  string   `yaml:"turn"`
	River string   `yaml:"river"`
}

type Actions struct {
	Preflop []SeatAction `yaml:"preflop"`
	Flop    []SeatAction `yaml:"flop"`
	Turn    []SeatAction `yaml:"turn"`
	River   []SeatAction `yaml:"river"`
}

type SeatAction struct {
	Seat   uint32 `yaml:"seat"`
	Action string `yaml:"action"`
	Amount *int64 `yaml:"amount"`
}

type Expect struct {
	Winner string `yaml:"winner"`
	Stage  string `yaml:"stage"`
	Pot    int64  `yaml:"pot"`
	Stacks Stacks `yaml:"stacks"`
}

var validActions = mapset.NewSet("fold", "check", "call", "bet", "raise", "all-in")
var validWinners = mapset.NewSet("seat1", "seat2", "split")

// ReadGameScript reads and validates a script file.
func ReadGameScript(fileName string) (*Script, error) {
	bytes, err := ioutil.ReadFile(fileName)
	if err != nil {
		return nil, errors.Wrapf(err, "Error reading game script %s", fileName)
	}
	var script Script
	if err := yaml.Unmarshal(bytes, &script); err != nil {
		return nil, errors.Wrapf(err, "Error parsing game script %s", fileName)
	}
	if script.SmallBlind == 0 {
		script.SmallBlind = 5
	}
	if script.BigBlind == 0 {
		script.BigBlind = 10
	}
	if err := script.Validate(); err != nil {
		return nil, errors.Wrapf(err, "Invalid game script %s", fileName)
	}
	return &script, nil
}

// Validate rejects scripts the engine could not play deterministically.
func (s *Script) Validate() error {
	if len(s.Deal.Seat1) != 2 || len(s.Deal.Seat2) != 2 {
		return errors.New("each seat needs exactly 2 hole cards")
	}
	if len(s.Deal.Flop) != 3 {
		return errors.New("the flop needs exactly 3 cards")
	}
	if s.Deal.Turn == "" || s.Deal.River == "" {
		return errors.New("turn and river cards are required")
	}

	cards := mapset.NewSet()
	all := make([]string, 0, 9)
	all = append(all, s.Deal.Seat1...)
	all = append(all, s.Deal.Seat2...)
	all = append(all, s.Deal.Flop...)
	all = append(all, s.Deal.Turn, s.Deal.River)
	for _, card := range all {
		if !cards.Add(card) {
			return errors.Errorf("card %s is dealt twice", card)
		}
	}

	streets := [][]SeatAction{s.Actions.Preflop, s.Actions.Flop, s.Actions.Turn, s.Actions.River}
	for _, street := range streets {
		for _, action := range street {
			if action.Seat != 1 && action.Seat != 2 {
				return errors.Errorf("invalid seat %d", action.Seat)
			}
			if !validActions.Contains(action.Action) {
				return errors.Errorf("invalid action %s", action.Action)
			}
			needsAmount := action.Action == "bet" || action.Action == "raise"
			if needsAmount && action.Amount == nil {
				return errors.Errorf("action %s needs an amount", action.Action)
			}
			if !needsAmount && action.Amount != nil {
				return errors.Errorf("action %s cannot carry an amount", action.Action)
			}
		}
	}

	if s.Expect.Winner != "" && !validWinners.Contains(s.Expect.Winner) {
		return errors.Errorf("invalid winner %s", s.Expect.Winner)
	}
	return nil
}

// SeatActions returns the scripted replies for one seat across the whole
// hand, in the order that seat will be prompted. A bet or raise expands
// into the action keyword followed by the amount reply.
func (s *Script) SeatActions(seat uint32) []string {
	replies := make([]string, 0)
	streets := [][]SeatAction{s.Actions.Preflop, s.Actions.Flop, s.Actions.Turn, s.Actions.River}
	for _, street := range streets {
		for _, action := range street {
			if action.Seat != seat {
				continue
			}
			replies = append(replies, action.Action)
			if action.Amount != nil {
				replies = append(replies, strconv.FormatInt(*action.Amount, 10))
			}
		}
	}
	return replies
}
