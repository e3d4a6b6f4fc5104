package transport

import (
	"bufio"
	"net"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

var directLogger = log.With().Str("logger_name", "transport::direct").Logger()

type lineSession struct {
	conn   net.Conn
	reader *bufio.Reader
	label  string
}

// NewSession wraps an established connection in line framing.
func NewSession(conn net.Conn, label string) Session {
	return &lineSession{
		conn:   conn,
		reader: bufio.NewReader(conn),
		label:  label,
	}
}

func (s *lineSession) SendLine(line string) error {
	if _, err := s.conn.Write([]byte(line + "\n")); err != nil {
		directLogger.Debug().Msgf("Send to %s failed: %s", s.label, err)
		return ErrPeerClosed
	}
	return nil
}

func (s *lineSession) RecvLine() (string, error) {
	line, err := s.reader.ReadString('\n')
	if err != nil {
		directLogger.Debug().Msgf("Receive from %s failed: %s", s.label, err)
		return "", ErrPeerClosed
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (s *lineSession) RemoteLabel() string {
	return s.label
}

func (s *lineSession) Close() error {
	return s.conn.Close()
}

// DialDirect connects to a directly hosted game.
func DialDirect(addr string) (Session, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to connect to %s", addr)
	}
	directLogger.Info().Msgf("Connected to %s", addr)
	return NewSession(conn, addr), nil
}

// ListenDirect waits for exactly one opponent to connect, then stops
// listening. Heads-up has no seat for anyone else.
func ListenDirect(addr string) (Session, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to listen on %s", addr)
	}
	defer ln.Close()
	directLogger.Info().Msgf("Waiting for an opponent on %s", addr)
	conn, err := ln.Accept()
	if err != nil {
		return nil, errors.Wrap(err, "unable to accept a connection")
	}
	label := conn.RemoteAddr().String()
	directLogger.Info().Msgf("Opponent connected from %s", label)
	return NewSession(conn, label), nil
}
