package game

import (
	"errors"
	"fmt"
)

// DisconnectError marks a seat whose connection died while the engine
// was talking to it. It aborts the whole session, not just the hand.
type DisconnectError struct {
	PlayerName string
	Err        error
}

func (e *DisconnectError) Error() string {
	return fmt.Sprintf("player %s disconnected: %s", e.PlayerName, e.Err)
}

func (e *DisconnectError) Unwrap() error {
	return e.Err
}

func IsDisconnect(err error) bool {
	var de *DisconnectError
	return errors.As(err, &de)
}
