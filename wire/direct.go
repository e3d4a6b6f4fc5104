// Package wire defines the two line dialects spoken between the game
// engine, its remote players, and the relay. Every line is UTF-8 text
// terminated by a newline; framing is the transport's job.
package wire

import (
	"strings"

	"github.com/pkg/errors"
)

// Direct dialect tags. The engine sends MSG, PROMPT and END; the player
// answers with ACTION. A line is the tag, a colon, and the payload.
const (
	FrameMsg    string = "MSG"
	FramePrompt string = "PROMPT"
	FrameEnd    string = "END"
	FrameAction string = "ACTION"
)

// Frame is one parsed direct-dialect line.
type Frame struct {
	Kind    string
	Payload string
}

func EncodeFrame(kind string, payload string) string {
	return kind + ":" + payload
}

// ParseFrame splits a line into its tag and payload. The payload may
// itself contain colons; only the first one separates.
func ParseFrame(line string) (Frame, error) {
	parts := strings.SplitN(line, ":", 2)
	if len(parts) != 2 {
		return Frame{}, errors.Errorf("malformed frame %q", line)
	}
	switch parts[0] {
	case FrameMsg, FramePrompt, FrameEnd, FrameAction:
		return Frame{Kind: parts[0], Payload: parts[1]}, nil
	}
	return Frame{}, errors.Errorf("unknown frame tag %q", parts[0])
}
