package transport

import (
	"github.com/rs/zerolog/log"

	"tablestakes.com/headsup/wire"
)

var playerLinkLogger = log.With().Str("logger_name", "transport::playerlink").Logger()

// PlayerLink drives a remote seat over a session using the direct
// dialect. It satisfies the game's player port: notifications become MSG
// frames, prompts become PROMPT frames answered by ACTION frames.
type PlayerLink struct {
	sess Session
}

func NewPlayerLink(sess Session) *PlayerLink {
	return &PlayerLink{sess: sess}
}

func (l *PlayerLink) Notify(message string) error {
	return l.sess.SendLine(wire.EncodeFrame(wire.FrameMsg, message))
}

// RequestAction sends the prompt and blocks for the reply. Anything that
// is not an ACTION frame is discarded, not queued.
func (l *PlayerLink) RequestAction(prompt string) (string, error) {
	if err := l.sess.SendLine(wire.EncodeFrame(wire.FramePrompt, prompt)); err != nil {
		return "", err
	}
	for {
		line, err := l.sess.RecvLine()
		if err != nil {
			return "", err
		}
		frame, err := wire.ParseFrame(line)
		if err != nil {
			playerLinkLogger.Warn().Msgf("Discarding from %s: %s", l.sess.RemoteLabel(), err)
			continue
		}
		if frame.Kind != wire.FrameAction {
			playerLinkLogger.Debug().Msgf("Discarding a %s frame while awaiting an action", frame.Kind)
			continue
		}
		return frame.Payload, nil
	}
}

func (l *PlayerLink) EndGame() error {
	return l.sess.SendLine(wire.EncodeFrame(wire.FrameEnd, ""))
}
