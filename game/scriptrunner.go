package game

import (
	"io/ioutil"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"tablestakes.com/headsup/gamescript"
	"tablestakes.com/headsup/logging"
	"tablestakes.com/headsup/poker"
)

var scriptLogger = log.With().Str("logger_name", "game::scriptrunner").Logger()

// RunScript plays one scripted hand and verifies the scripted outcome.
func RunScript(script *gamescript.Script) (*HandResult, error) {
	deck, err := poker.DeckFromScript(
		poker.CardsInAscii(script.Deal.Seat1),
		poker.CardsInAscii(script.Deal.Seat2),
		poker.CardsInAscii(script.Deal.Flop),
		script.Deal.Turn,
		script.Deal.River,
	)
	if err != nil {
		return nil, err
	}

	stack1 := script.Stacks.Seat1
	if stack1 == 0 {
		stack1 = DefaultStartingStack
	}
	stack2 := script.Stacks.Seat2
	if stack2 == 0 {
		stack2 = DefaultStartingStack
	}
	seat1 := NewPlayer(1, "seat1", stack1, NewScriptedIO("seat1", script.SeatActions(1)...))
	seat2 := NewPlayer(2, "seat2", stack2, NewScriptedIO("seat2", script.SeatActions(2)...))

	hand := NewHand(1, seat1, seat2, deck, script.SmallBlind, script.BigBlind)
	result, err := hand.Run()
	if err != nil {
		return nil, err
	}

	if script.Expect.Winner != "" && result.Winner != script.Expect.Winner {
		return nil, errors.Errorf("expected winner %s, but %s won", script.Expect.Winner, result.Winner)
	}
	if script.Expect.Stage != "" && result.Stage != script.Expect.Stage {
		return nil, errors.Errorf("expected the hand to end at %s, but it ended at %s", script.Expect.Stage, result.Stage)
	}
	if script.Expect.Pot != 0 && result.Pot != script.Expect.Pot {
		return nil, errors.Errorf("expected pot %d, but got %d", script.Expect.Pot, result.Pot)
	}
	if script.Expect.Stacks != (gamescript.Stacks{}) {
		if result.Stacks[0] != script.Expect.Stacks.Seat1 || result.Stacks[1] != script.Expect.Stacks.Seat2 {
			return nil, errors.Errorf("expected stacks %d/%d, but got %d/%d",
				script.Expect.Stacks.Seat1, script.Expect.Stacks.Seat2,
				result.Stacks[0], result.Stacks[1])
		}
	}
	return result, nil
}

// RunGameScriptTests plays every script in the directory, or just the
// named one. It fails if any script fails.
func RunGameScriptTests(dir string, testName string) error {
	files, err := ioutil.ReadDir(dir)
	if err != nil {
		return errors.Wrapf(err, "unable to read script directory %s", dir)
	}
	failed := 0
	ran := 0
	for _, file := range files {
		name := file.Name()
		if file.IsDir() || !strings.HasSuffix(name, ".yaml") {
			continue
		}
		if testName != "" && strings.TrimSuffix(name, ".yaml") != testName {
			continue
		}
		ran++
		script, err := gamescript.ReadGameScript(filepath.Join(dir, name))
		if err != nil {
			scriptLogger.Error().Str(logging.ScriptKey, name).Msgf("FAILED: %s", err)
			failed++
			continue
		}
		if _, err := RunScript(script); err != nil {
			scriptLogger.Error().Str(logging.ScriptKey, name).Msgf("FAILED: %s", err)
			failed++
			continue
		}
		scriptLogger.Info().Str(logging.ScriptKey, name).Msg("PASSED")
	}
	if ran == 0 {
		return errors.Errorf("no scripts matched in %s", dir)
	}
	if failed > 0 {
		return errors.Errorf("%d script test(s) failed", failed)
	}
	return nil
}
