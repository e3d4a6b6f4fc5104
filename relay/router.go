// Package relay implements the message switch that lets two remote
// peers play through a third party. The router never inspects payloads;
// it only moves addressed lines between sessions.
package relay

import (
	"bufio"
	"net"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"tablestakes.com/headsup/logging"
	"tablestakes.com/headsup/util"
	"tablestakes.com/headsup/wire"
)

var routerLogger = log.With().Str("logger_name", "relay::router").Logger()

const outboundQueueSize = 64

// relayClient is one connected session: its conn and a writer goroutine
// fed through out.
type relayClient struct {
	id   string
	conn net.Conn
	out  chan string
	done chan struct{}
}

// Router switches addressed payloads between connected sessions. The id
// table and the connection order list are mutex guarded; every forward
// and every connect or disconnect serializes on that mutex.
type Router struct {
	mu      sync.Mutex
	clients map[string]*relayClient
	order   []string
}

func NewRouter() *Router {
	return &Router{
		clients: make(map[string]*relayClient),
	}
}

// Listen binds the address and serves relay clients forever.
func (r *Router) Listen(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrapf(err, "unable to listen on %s", addr)
	}
	return r.Serve(ln)
}

// Serve accepts relay clients until the listener closes.
func (r *Router) Serve(ln net.Listener) error {
	routerLogger.Info().Msgf("Relay listening on %s", ln.Addr())
	for {
		conn, err := ln.Accept()
		if err != nil {
			return err
		}
		go r.handleClient(conn)
	}
}

func (r *Router) handleClient(conn net.Conn) {
	defer conn.Close()
	client := &relayClient{
		id:   uuid.New().String(),
		conn: conn,
		out:  make(chan string, outboundQueueSize),
		done: make(chan struct{}),
	}
	r.register(client)
	defer r.unregister(client)
	go clientWriter(client)

	welcome, err := wire.EncodeWelcome(client.id)
	if err != nil {
		routerLogger.Error().Msgf("Unable to encode the welcome: %s", err)
		return
	}
	client.out <- welcome

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		envelope, err := wire.ParseEnvelope(line)
		if err != nil {
			// Undecodable input gets no reply; the session lives on.
			routerLogger.Warn().
				Str(logging.ClientIDKey, client.id).
				Msgf("Dropping: %s", err)
			util.Metrics.RelayError()
			continue
		}
		if envelope.To == wire.ServerTarget {
			r.handleServerCommand(client, *envelope.Payload)
			continue
		}
		r.forward(client, envelope.To, *envelope.Payload)
	}
	routerLogger.Info().Str(logging.ClientIDKey, client.id).Msg("Client disconnected")
}

func clientWriter(client *relayClient) {
	for {
		select {
		case line := <-client.out:
			if _, err := client.conn.Write([]byte(line + "\n")); err != nil {
				return
			}
		case <-client.done:
			return
		}
	}
}

func (r *Router) register(client *relayClient) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[client.id] = client
	r.order = append(r.order, client.id)
	util.Metrics.SetRelayClientCount(len(r.clients))
	routerLogger.Info().Str(logging.ClientIDKey, client.id).Msg("Client connected")
}

func (r *Router) unregister(client *relayClient) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.clients, client.id)
	for i, id := range r.order {
		if id == client.id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	close(client.done)
	util.Metrics.SetRelayClientCount(len(r.clients))
}

// ClientIDs returns the connected session ids, oldest connection first.
func (r *Router) ClientIDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, len(r.order))
	copy(ids, r.order)
	return ids
}

// deliver queues one payload for a client. A client that stopped
// draining its queue loses messages rather than stalling the router.
func (r *Router) deliver(target *relayClient, from string, payload string) {
	line, err := wire.EncodeDelivery(from, payload)
	if err != nil {
		routerLogger.Error().Msgf("Unable to encode a delivery: %s", err)
		return
	}
	select {
	case target.out <- line:
	default:
		routerLogger.Warn().
			Str(logging.TargetIDKey, target.id).
			Msg("Dropping a message for a stalled client")
		util.Metrics.RelayError()
	}
}

func (r *Router) handleServerCommand(client *relayClient, payload string) {
	if strings.EqualFold(payload, "LIST") {
		ids := r.ClientIDs()
		r.deliver(client, wire.ServerTarget, "LIST:"+strings.Join(ids, ","))
		return
	}
	routerLogger.Debug().
		Str(logging.ClientIDKey, client.id).
		Msgf("Unknown server command %q", payload)
	r.deliver(client, wire.ServerTarget, "UNKNOWN_COMMAND")
}

func (r *Router) forward(sender *relayClient, targetID string, payload string) {
	r.mu.Lock()
	target, ok := r.clients[targetID]
	r.mu.Unlock()
	if !ok {
		routerLogger.Warn().
			Str(logging.ClientIDKey, sender.id).
			Str(logging.TargetIDKey, targetID).
			Msg("Target not connected")
		util.Metrics.RelayError()
		r.deliver(sender, wire.ServerTarget, "ERROR:Target "+targetID+" not connected")
		return
	}
	r.deliver(target, sender.id, payload)
	util.Metrics.RelayMsgRouted()
}
