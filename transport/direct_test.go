package transport

import (
	"net"
	"testing"
)

func pipeSessions() (Session, Session) {
	a, b := net.Pipe()
	return NewSession(a, "a"), NewSession(b, "b")
}

func TestLineSessionRoundTrip(t *testing.T) {
	sessA, sessB := pipeSessions()
	defer sessA.Close()
	defer sessB.Close()

	go sessA.SendLine("MSG:hello there")
	line, err := sessB.RecvLine()
	if err != nil {
		t.Fatalf("RecvLine returned an error: %s", err)
	}
	if line != "MSG:hello there" {
		t.Errorf("Expected the sent line back, but got %q", line)
	}
}

func TestLineSessionStripsLineEndings(t *testing.T) {
	a, b := net.Pipe()
	sessB := NewSession(b, "b")
	defer a.Close()
	defer sessB.Close()

	go a.Write([]byte("ACTION:call\r\n"))
	line, err := sessB.RecvLine()
	if err != nil {
		t.Fatalf("RecvLine returned an error: %s", err)
	}
	if line != "ACTION:call" {
		t.Errorf("Expected CRLF to be stripped, but got %q", line)
	}
}

func TestLineSessionPeerClose(t *testing.T) {
	sessA, sessB := pipeSessions()
	defer sessB.Close()

	sessA.Close()
	if _, err := sessB.RecvLine(); err != ErrPeerClosed {
		t.Errorf("Expected ErrPeerClosed, but got %v", err)
	}
	if err := sessB.SendLine("MSG:anyone there"); err != ErrPeerClosed {
		t.Errorf("Expected ErrPeerClosed on send, but got %v", err)
	}
}

func TestLineSessionRemoteLabel(t *testing.T) {
	sessA, sessB := pipeSessions()
	defer sessA.Close()
	defer sessB.Close()

	if sessA.RemoteLabel() != "a" || sessB.RemoteLabel() != "b" {
		t.Errorf("Unexpected labels %q and %q", sessA.RemoteLabel(), sessB.RemoteLabel())
	}
}

func TestDialDirectConnects(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Unable to listen: %s", err)
	}
	defer ln.Close()

	accepted := make(chan net.Conn, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		accepted <- conn
	}()

	sess, err := DialDirect(ln.Addr().String())
	if err != nil {
		t.Fatalf("DialDirect returned an error: %s", err)
	}
	defer sess.Close()

	server := NewSession(<-accepted, "client")
	go sess.SendLine("ACTION:check")
	line, err := server.RecvLine()
	if err != nil {
		t.Fatalf("RecvLine returned an error: %s", err)
	}
	if line != "ACTION:check" {
		t.Errorf("Expected the dialed session to carry lines, but got %q", line)
	}
	server.Close()
}
