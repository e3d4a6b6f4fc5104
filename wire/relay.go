package wire

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

// ServerTarget addresses an envelope to the relay itself instead of a
// peer session.
const ServerTarget string = "server"

// Welcome is the router's first line on a fresh connection, telling the
// client its session id.
type Welcome struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// Envelope is a client line to the router: a payload addressed to a peer
// session or to the router. Payload is a pointer so a missing field can
// be told apart from an empty string.
type Envelope struct {
	To      string  `json:"to"`
	Payload *string `json:"payload"`
}

// Delivery is a router line to a client: a forwarded payload and the
// session it came from.
type Delivery struct {
	From    string `json:"from"`
	Payload string `json:"payload"`
}

func EncodeWelcome(id string) (string, error) {
	return jsoniter.MarshalToString(&Welcome{Type: "welcome", ID: id})
}

func ParseWelcome(line string) (*Welcome, error) {
	var welcome Welcome
	if err := jsoniter.UnmarshalFromString(line, &welcome); err != nil {
		return nil, errors.Wrapf(err, "undecodable welcome %q", line)
	}
	if welcome.Type != "welcome" || welcome.ID == "" {
		return nil, errors.Errorf("unexpected greeting %q", line)
	}
	return &welcome, nil
}

func EncodeEnvelope(to string, payload string) (string, error) {
	return jsoniter.MarshalToString(&Envelope{To: to, Payload: &payload})
}

func ParseEnvelope(line string) (*Envelope, error) {
	var envelope Envelope
	if err := jsoniter.UnmarshalFromString(line, &envelope); err != nil {
		return nil, errors.Wrapf(err, "undecodable envelope %q", line)
	}
	if envelope.To == "" || envelope.Payload == nil {
		return nil, errors.Errorf("envelope %q is missing to or payload", line)
	}
	return &envelope, nil
}

func EncodeDelivery(from string, payload string) (string, error) {
	return jsoniter.MarshalToString(&Delivery{From: from, Payload: payload})
}

func ParseDelivery(line string) (*Delivery, error) {
	var delivery Delivery
	if err := jsoniter.UnmarshalFromString(line, &delivery); err != nil {
		return nil, errors.Wrapf(err, "undecodable delivery %q", line)
	}
	if delivery.From == "" {
		return nil, errors.Errorf("delivery %q is missing its sender", line)
	}
	return &delivery, nil
}
