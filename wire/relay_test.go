package wire

import (
	"testing"
)

func TestWelcomeRoundTrip(t *testing.T) {
	line, err := EncodeWelcome("abc-123")
	if err != nil {
		t.Fatalf("EncodeWelcome returned an error: %s", err)
	}
	welcome, err := ParseWelcome(line)
	if err != nil {
		t.Fatalf("ParseWelcome returned an error: %s", err)
	}
	if welcome.Type != "welcome" || welcome.ID != "abc-123" {
		t.Errorf("Unexpected welcome %+v", welcome)
	}
}

func TestParseWelcomeRejectsOtherShapes(t *testing.T) {
	badLines := []string{
		"not json",
		`{"type":"hello","id":"abc"}`,
		`{"type":"welcome"}`,
		`{"from":"server","payload":"LIST:"}`,
	}
	for i, line := range badLines {
		if _, err := ParseWelcome(line); err == nil {
			t.Errorf("Test case %d expected an error for %q, but got none", i, line)
		}
	}
}

func TestEnvelopeRoundTrip(t *testing.T) {
	line, err := EncodeEnvelope("peer-1", "MSG:hi")
	if err != nil {
		t.Fatalf("EncodeEnvelope returned an error: %s", err)
	}
	envelope, err := ParseEnvelope(line)
	if err != nil {
		t.Fatalf("ParseEnvelope returned an error: %s", err)
	}
	if envelope.To != "peer-1" || *envelope.Payload != "MSG:hi" {
		t.Errorf("Unexpected envelope %+v", envelope)
	}
}

func TestParseEnvelopeRequiresToAndPayload(t *testing.T) {
	badLines := []string{
		"{}",
		`{"to":"peer-1"}`,
		`{"payload":"MSG:hi"}`,
		`{"to":"","payload":"MSG:hi"}`,
		"garbage",
	}
	for i, line := range badLines {
		if _, err := ParseEnvelope(line); err == nil {
			t.Errorf("Test case %d expected an error for %q, but got none", i, line)
		}
	}
}

func TestParseEnvelopeAllowsEmptyPayload(t *testing.T) {
	envelope, err := ParseEnvelope(`{"to":"server","payload":""}`)
	if err != nil {
		t.Fatalf("ParseEnvelope returned an error: %s", err)
	}
	if *envelope.Payload != "" {
		t.Errorf("Expected an empty payload, but got %q", *envelope.Payload)
	}
}

func TestDeliveryRoundTrip(t *testing.T) {
	line, err := EncodeDelivery(ServerTarget, "LIST:a,b")
	if err != nil {
		t.Fatalf("EncodeDelivery returned an error: %s", err)
	}
	delivery, err := ParseDelivery(line)
	if err != nil {
		t.Fatalf("ParseDelivery returned an error: %s", err)
	}
	if delivery.From != ServerTarget || delivery.Payload != "LIST:a,b" {
		t.Errorf("Unexpected delivery %+v", delivery)
	}
}

func TestParseDeliveryRequiresSender(t *testing.T) {
	if _, err := ParseDelivery(`{"payload":"MSG:hi"}`); err == nil {
		t.Error("Expected an error for a delivery without a sender")
	}
}
