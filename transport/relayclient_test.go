package transport

import (
	"net"
	"testing"

	"tablestakes.com/headsup/wire"
)

// fakeRelay scripts one side of a relay conversation over a pipe.
func fakeRelay(t *testing.T, script func(relay Session)) Session {
	t.Helper()
	clientEnd, relayEnd := net.Pipe()
	relay := NewSession(relayEnd, "client")
	go func() {
		defer relay.Close()
		script(relay)
	}()
	return NewSession(clientEnd, "relay")
}

func sendWelcome(relay Session, id string) {
	line, _ := wire.EncodeWelcome(id)
	relay.SendLine(line)
}

func sendDelivery(relay Session, from string, payload string) {
	line, _ := wire.EncodeDelivery(from, payload)
	relay.SendLine(line)
}

func TestRelayClientHandshake(t *testing.T) {
	sess := fakeRelay(t, func(relay Session) {
		sendWelcome(relay, "A")
	})
	client, err := NewRelayClient(sess)
	if err != nil {
		t.Fatalf("NewRelayClient returned an error: %s", err)
	}
	defer client.Close()
	if client.ID() != "A" {
		t.Errorf("Expected session id A, but got %q", client.ID())
	}
}

func TestRelayClientRejectsBadGreeting(t *testing.T) {
	sess := fakeRelay(t, func(relay Session) {
		relay.SendLine("this is not a welcome")
	})
	if _, err := NewRelayClient(sess); err == nil {
		t.Fatal("Expected a handshake error")
	}
	sess.Close()
}

func TestRelayClientListClients(t *testing.T) {
	sess := fakeRelay(t, func(relay Session) {
		sendWelcome(relay, "A")
		line, err := relay.RecvLine()
		if err != nil {
			return
		}
		envelope, err := wire.ParseEnvelope(line)
		if err != nil || envelope.To != wire.ServerTarget || *envelope.Payload != "LIST" {
			return
		}
		// A peer message slips in ahead of the server reply and must be
		// skipped.
		sendDelivery(relay, "B", "MSG:too early")
		sendDelivery(relay, wire.ServerTarget, "LIST:A,B")
	})
	client, err := NewRelayClient(sess)
	if err != nil {
		t.Fatalf("NewRelayClient returned an error: %s", err)
	}
	defer client.Close()

	ids, err := client.ListClients()
	if err != nil {
		t.Fatalf("ListClients returned an error: %s", err)
	}
	if len(ids) != 2 || ids[0] != "A" || ids[1] != "B" {
		t.Errorf("Expected ids A,B in connection order, but got %v", ids)
	}
}

func TestRelayClientBoundSession(t *testing.T) {
	sess := fakeRelay(t, func(relay Session) {
		sendWelcome(relay, "A")
		line, err := relay.RecvLine()
		if err != nil {
			return
		}
		envelope, err := wire.ParseEnvelope(line)
		if err != nil || envelope.To != "B" {
			return
		}
		// Noise from an unbound peer, then the real reply.
		sendDelivery(relay, "C", "MSG:wrong table")
		sendDelivery(relay, "B", "ACTION:call")
	})
	client, err := NewRelayClient(sess)
	if err != nil {
		t.Fatalf("NewRelayClient returned an error: %s", err)
	}
	defer client.Close()

	bound := client.Bind("B")
	if bound.RemoteLabel() != "relay:B" {
		t.Errorf("Unexpected label %q", bound.RemoteLabel())
	}
	if err := bound.SendLine("PROMPT:call / fold (or 'all-in'): "); err != nil {
		t.Fatalf("SendLine returned an error: %s", err)
	}
	line, err := bound.RecvLine()
	if err != nil {
		t.Fatalf("RecvLine returned an error: %s", err)
	}
	if line != "ACTION:call" {
		t.Errorf("Expected the bound peer's line, but got %q", line)
	}
}

func TestRelayClientBoundSessionPeerGone(t *testing.T) {
	sess := fakeRelay(t, func(relay Session) {
		sendWelcome(relay, "A")
		sendDelivery(relay, wire.ServerTarget, "ERROR:Target B not connected")
	})
	client, err := NewRelayClient(sess)
	if err != nil {
		t.Fatalf("NewRelayClient returned an error: %s", err)
	}
	defer client.Close()

	bound := client.Bind("B")
	if _, err := bound.RecvLine(); err != ErrPeerClosed {
		t.Errorf("Expected ErrPeerClosed after a relay error, but got %v", err)
	}
}

func TestRelayClientAwaitPeer(t *testing.T) {
	sess := fakeRelay(t, func(relay Session) {
		sendWelcome(relay, "B")
		// Server noise is ignored while waiting.
		sendDelivery(relay, wire.ServerTarget, "LIST:B")
		sendDelivery(relay, "H", "MSG:Welcome to Texas Hold'em Poker (Heads-Up)!")
		sendDelivery(relay, "H", "MSG:Small blind: 5 | Big blind: 10")
	})
	client, err := NewRelayClient(sess)
	if err != nil {
		t.Fatalf("NewRelayClient returned an error: %s", err)
	}
	defer client.Close()

	bound, err := client.AwaitPeer()
	if err != nil {
		t.Fatalf("AwaitPeer returned an error: %s", err)
	}
	if bound.RemoteLabel() != "relay:H" {
		t.Errorf("Expected to bind to H, but got %q", bound.RemoteLabel())
	}
	// The line that announced the peer is not lost.
	first, err := bound.RecvLine()
	if err != nil {
		t.Fatalf("RecvLine returned an error: %s", err)
	}
	if first != "MSG:Welcome to Texas Hold'em Poker (Heads-Up)!" {
		t.Errorf("Expected the first payload replayed, but got %q", first)
	}
	second, err := bound.RecvLine()
	if err != nil {
		t.Fatalf("RecvLine returned an error: %s", err)
	}
	if second != "MSG:Small blind: 5 | Big blind: 10" {
		t.Errorf("Expected the next payload, but got %q", second)
	}
}
