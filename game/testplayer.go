package game

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

var testPlayerLogger = log.With().Str("logger_name", "game::testplayer").Logger()

// ScriptedIO is a fake seat fed from a fixed list of replies. It records
// every prompt and notification it receives so tests can assert on the
// table talk as well as the chip movement.
type ScriptedIO struct {
	name    string
	replies []string
	next    int

	Prompts       []string
	Notifications []string
	Ended         bool
}

func NewScriptedIO(name string, replies ...string) *ScriptedIO {
	return &ScriptedIO{
		name:    name,
		replies: replies,
	}
}

// Queue appends more replies to the script.
func (s *ScriptedIO) Queue(replies ...string) {
	s.replies = append(s.replies, replies...)
}

func (s *ScriptedIO) RequestAction(prompt string) (string, error) {
	s.Prompts = append(s.Prompts, prompt)
	if s.next >= len(s.replies) {
		return "", errors.Errorf("%s has no scripted reply for prompt %q", s.name, prompt)
	}
	reply := s.replies[s.next]
	s.next++
	testPlayerLogger.Debug().Str("player", s.name).Msgf("%q -> %q", prompt, reply)
	return reply, nil
}

func (s *ScriptedIO) Notify(message string) error {
	s.Notifications = append(s.Notifications, message)
	return nil
}

func (s *ScriptedIO) EndGame() error {
	s.Ended = true
	return nil
}

// Saw reports whether any recorded notification contains the fragment.
func (s *ScriptedIO) Saw(fragment string) bool {
	for _, message := range s.Notifications {
		if strings.Contains(message, fragment) {
			return true
		}
	}
	return false
}

// LastPrompt returns the most recent prompt, or "" before the first one.
func (s *ScriptedIO) LastPrompt() string {
	if len(s.Prompts) == 0 {
		return ""
	}
	return s.Prompts[len(s.Prompts)-1]
}
