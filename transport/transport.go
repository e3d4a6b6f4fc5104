// Package transport carries newline-framed lines between two peers,
// either over a direct TCP connection or through the relay. Reads and
// writes carry no timeouts; a stalled peer stalls the game.
package transport

import (
	"github.com/pkg/errors"
)

// ErrPeerClosed reports that the remote side went away. All session
// implementations map their end-of-stream condition onto this error.
var ErrPeerClosed = errors.New("peer closed the connection")

// Session is one bidirectional line channel to a single peer.
type Session interface {
	SendLine(line string) error
	RecvLine() (string, error)
	RemoteLabel() string
	Close() error
}
