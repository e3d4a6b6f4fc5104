package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	handsPlayedCounter    prometheus.Counter
	showdownsCounter      prometheus.Counter
	handFoldsCounter      prometheus.Counter
	relayMsgRoutedCounter prometheus.Counter
	relayErrorCounter     prometheus.Counter
	relayClientCountGauge prometheus.Gauge
}

func (m *metrics) HandPlayed() {
	m.handsPlayedCounter.Inc()
}

func (m *metrics) ShowdownReached() {
	m.showdownsCounter.Inc()
}

func (m *metrics) HandFolded() {
	m.handFoldsCounter.Inc()
}

func (m *metrics) RelayMsgRouted() {
	m.relayMsgRoutedCounter.Inc()
}

func (m *metrics) RelayError() {
	m.relayErrorCounter.Inc()
}

func (m *metrics) SetRelayClientCount(count int) {
	m.relayClientCountGauge.Set(float64(count))
}

var Metrics = &metrics{
	handsPlayedCounter: promauto.NewCounter(prometheus.CounterOpts{
		Name: "hands_played_total",
		Help: "Total number of completed hands",
	}),
	showdownsCounter: promauto.NewCounter(prometheus.CounterOpts{
		Name: "showdowns_total",
		Help: "Total number of hands that reached showdown",
	}),
	handFoldsCounter: promauto.NewCounter(prometheus.CounterOpts{
		Name: "hand_folds_total",
		Help: "Total number of hands that ended with a fold",
	}),
	relayMsgRoutedCounter: promauto.NewCounter(prometheus.CounterOpts{
		Name: "relay_messages_routed_total",
		Help: "Total number of messages forwarded by the relay",
	}),
	relayErrorCounter: promauto.NewCounter(prometheus.CounterOpts{
		Name: "relay_errors_total",
		Help: "Total number of malformed or undeliverable relay messages",
	}),
	relayClientCountGauge: promauto.NewGauge(prometheus.GaugeOpts{
		Name: "relay_connected_clients",
		Help: "Count of the clients currently connected to the relay",
	}),
}
