// Package metrics exposes the bot's Prometheus counters, served by the
// keep-alive HTTP server at /metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// MessagesTotal counts every inbound message handed to the handler.
	MessagesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bot_messages_total",
		Help: "Inbound chat messages processed",
	})

	// SignalsTotal counts trade plans sent, split by direction.
	SignalsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bot_signals_total",
		Help: "Trade-plan notifications sent",
	}, []string{"direction"})

	// CancelsTotal counts cancel/close notices sent.
	CancelsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bot_cancels_total",
		Help: "Cancel notices sent",
	})

	// QuoteFailures counts signals dropped because no price resolved.
	QuoteFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bot_quote_failures_total",
		Help: "Price lookups that failed on both candidate symbols",
	})

	// HandlerPanics counts messages abandoned by the recovery path.
	HandlerPanics = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bot_handler_panics_total",
		Help: "Messages abandoned after an unexpected failure",
	})
)

func init() {
	prometheus.MustRegister(MessagesTotal, SignalsTotal, CancelsTotal, QuoteFailures, HandlerPanics)
}
