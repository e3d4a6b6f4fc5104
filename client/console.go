// Package client is the terminal side of a remote game. It renders MSG
// frames, answers PROMPT frames from the operator, and stops on END.
package client

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"tablestakes.com/headsup/transport"
	"tablestakes.com/headsup/wire"
)

var consoleLogger = log.With().Str("logger_name", "client::console").Logger()

// Run attends a hosted game until the host ends it or the connection
// drops. A peer close is a normal ending, not an error.
func Run(sess transport.Session, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for {
		line, err := sess.RecvLine()
		if err == transport.ErrPeerClosed {
			fmt.Fprintln(out, "Connection closed by host.")
			return nil
		}
		if err != nil {
			return err
		}
		frame, err := wire.ParseFrame(line)
		if err != nil {
			consoleLogger.Warn().Msgf("Ignoring: %s", err)
			continue
		}
		switch frame.Kind {
		case wire.FrameMsg:
			fmt.Fprintln(out, frame.Payload)
		case wire.FramePrompt:
			fmt.Fprint(out, frame.Payload)
			if !scanner.Scan() {
				return errors.New("operator input stream closed")
			}
			if err := sess.SendLine(wire.EncodeFrame(wire.FrameAction, scanner.Text())); err != nil {
				return err
			}
		case wire.FrameEnd:
			fmt.Fprintln(out, "Game ended by host.")
			return nil
		default:
			consoleLogger.Debug().Msgf("Ignoring a %s frame", frame.Kind)
		}
	}
}
