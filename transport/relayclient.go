package transport

import (
	"net"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"tablestakes.com/headsup/logging"
	"tablestakes.com/headsup/wire"
)

var relayClientLogger = log.With().Str("logger_name", "transport::relayclient").Logger()

// RelayClient is one attendee of the relay: the raw line session plus
// the session id the relay assigned in its welcome.
type RelayClient struct {
	sess Session
	id   string
}

// DialRelay connects to the relay and performs the welcome handshake.
func DialRelay(addr string) (*RelayClient, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to connect to relay %s", addr)
	}
	sess := NewSession(conn, addr)
	line, err := sess.RecvLine()
	if err != nil {
		sess.Close()
		return nil, errors.Wrap(err, "relay closed before its welcome")
	}
	welcome, err := wire.ParseWelcome(line)
	if err != nil {
		sess.Close()
		return nil, errors.Wrap(err, "unexpected relay greeting")
	}
	relayClientLogger.Info().
		Str(logging.ClientIDKey, welcome.ID).
		Msgf("Connected to relay %s", addr)
	return &RelayClient{sess: sess, id: welcome.ID}, nil
}

// NewRelayClient runs the welcome handshake over an established session.
func NewRelayClient(sess Session) (*RelayClient, error) {
	line, err := sess.RecvLine()
	if err != nil {
		return nil, errors.Wrap(err, "relay closed before its welcome")
	}
	welcome, err := wire.ParseWelcome(line)
	if err != nil {
		return nil, errors.Wrap(err, "unexpected relay greeting")
	}
	return &RelayClient{sess: sess, id: welcome.ID}, nil
}

// ID returns the session id the relay knows this client by.
func (c *RelayClient) ID() string {
	return c.id
}

func (c *RelayClient) Close() error {
	return c.sess.Close()
}

func (c *RelayClient) send(to string, payload string) error {
	line, err := wire.EncodeEnvelope(to, payload)
	if err != nil {
		return err
	}
	return c.sess.SendLine(line)
}

// recvDelivery blocks for the next decodable delivery, dropping noise.
func (c *RelayClient) recvDelivery() (*wire.Delivery, error) {
	for {
		line, err := c.sess.RecvLine()
		if err != nil {
			return nil, err
		}
		delivery, err := wire.ParseDelivery(line)
		if err != nil {
			relayClientLogger.Warn().Msgf("Discarding an undecodable relay line: %s", err)
			continue
		}
		return delivery, nil
	}
}

// ListClients asks the relay for every connected session id, oldest
// connection first. Peer messages arriving meanwhile are discarded.
func (c *RelayClient) ListClients() ([]string, error) {
	if err := c.send(wire.ServerTarget, "LIST"); err != nil {
		return nil, err
	}
	for {
		delivery, err := c.recvDelivery()
		if err != nil {
			return nil, err
		}
		if delivery.From != wire.ServerTarget {
			relayClientLogger.Debug().
				Str(logging.ClientIDKey, delivery.From).
				Msg("Discarding a peer message while listing clients")
			continue
		}
		if !strings.HasPrefix(delivery.Payload, "LIST:") {
			return nil, errors.Errorf("unexpected server reply %q", delivery.Payload)
		}
		joined := strings.TrimPrefix(delivery.Payload, "LIST:")
		if joined == "" {
			return []string{}, nil
		}
		return strings.Split(joined, ","), nil
	}
}

// Bind narrows the relay connection down to one peer. All later sends go
// to that peer and reads ignore everyone else.
func (c *RelayClient) Bind(peerID string) Session {
	return &relaySession{client: c, peerID: peerID}
}

// AwaitPeer blocks until any peer sends a payload, then binds to that
// peer. The payload that announced the peer is replayed as the bound
// session's first received line.
func (c *RelayClient) AwaitPeer() (Session, error) {
	for {
		delivery, err := c.recvDelivery()
		if err != nil {
			return nil, err
		}
		if delivery.From == wire.ServerTarget {
			relayClientLogger.Debug().Msgf("Ignoring server payload %q while waiting for a peer", delivery.Payload)
			continue
		}
		relayClientLogger.Info().
			Str(logging.ClientIDKey, delivery.From).
			Msg("Peer found")
		sess := &relaySession{client: c, peerID: delivery.From}
		sess.pending = append(sess.pending, delivery.Payload)
		return sess, nil
	}
}

// relaySession speaks to a single peer through the shared relay
// connection.
type relaySession struct {
	client  *RelayClient
	peerID  string
	pending []string
}

func (s *relaySession) SendLine(line string) error {
	return s.client.send(s.peerID, line)
}

func (s *relaySession) RecvLine() (string, error) {
	if len(s.pending) > 0 {
		line := s.pending[0]
		s.pending = s.pending[1:]
		return line, nil
	}
	for {
		delivery, err := s.client.recvDelivery()
		if err != nil {
			return "", err
		}
		if delivery.From == wire.ServerTarget {
			// An undeliverable payload means the peer is gone.
			if strings.HasPrefix(delivery.Payload, "ERROR:") {
				relayClientLogger.Error().Msgf("Relay reported: %s", delivery.Payload)
				return "", ErrPeerClosed
			}
			relayClientLogger.Debug().Msgf("Ignoring server payload %q", delivery.Payload)
			continue
		}
		if delivery.From != s.peerID {
			relayClientLogger.Debug().
				Str(logging.ClientIDKey, delivery.From).
				Msg("Discarding a message from an unbound peer")
			continue
		}
		return delivery.Payload, nil
	}
}

func (s *relaySession) RemoteLabel() string {
	return "relay:" + s.peerID
}

func (s *relaySession) Close() error {
	return s.client.Close()
}
