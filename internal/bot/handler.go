package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"SignalRelay/internal/classifier"
	"SignalRelay/internal/metrics"
	"SignalRelay/internal/model"
	"SignalRelay/internal/notifier"
	"SignalRelay/internal/plan"
	"SignalRelay/internal/pricefmt"
	"SignalRelay/internal/quote"
	"SignalRelay/internal/recorder"
)

// Resolver is the quote lookup the handler depends on.
type Resolver interface {
	Resolve(ctx context.Context, tag string) (*model.PriceQuote, error)
}

// Outbound is one text to dispatch. Exactly one of the destinations is
// set: a direct chat, the broadcast channel, or the operator allow-list.
type Outbound struct {
	ChatID    int64
	Broadcast bool
	Operator  bool
	Text      string
}

// Handler composes the classifier, resolver, calculator and formatter
// into the per-message processing pipeline. Messages are independent:
// the handler keeps no state between them and is safe to call from
// concurrent goroutines.
type Handler struct {
	classifier *classifier.Classifier
	resolver   Resolver
	calc       *plan.Calculator
	format     *notifier.Formatter
	recorder   recorder.Recorder
	log        zerolog.Logger
}

// NewHandler wires the pipeline.
func NewHandler(cl *classifier.Classifier, res Resolver, calc *plan.Calculator, f *notifier.Formatter, rec recorder.Recorder, log zerolog.Logger) *Handler {
	return &Handler{
		classifier: cl,
		resolver:   res,
		calc:       calc,
		format:     f,
		recorder:   rec,
		log:        log.With().Str("component", "handler").Logger(),
	}
}

// Handle processes one message end to end and returns the texts to
// dispatch. A message matching no rule returns nil, which is not an
// error. Any unexpected failure is recovered here: the message's
// remaining work is abandoned and the report goes to the operators,
// never up the stack.
func (h *Handler) Handle(ctx context.Context, msg model.RawMessage) (outs []Outbound) {
	defer func() {
		if r := recover(); r != nil {
			metrics.HandlerPanics.Inc()
			h.log.Error().Str("message_id", msg.ID).Interface("panic", r).Msg("message processing failed")
			outs = []Outbound{{Operator: true, Text: h.format.OperatorAlert(msg, fmt.Sprintf("%v", r))}}
		}
	}()

	metrics.MessagesTotal.Inc()
	res := h.classifier.Classify(msg.Text)
	if len(res.Cancels) == 0 && len(res.Signals) == 0 {
		return nil
	}
	h.log.Info().
		Str("message_id", msg.ID).
		Int("cancels", len(res.Cancels)).
		Int("signals", len(res.Signals)).
		Msg("message classified")

	for _, cr := range res.Cancels {
		outs = append(outs, h.cancel(msg, cr)...)
	}
	for _, sig := range res.Signals {
		outs = append(outs, h.signal(ctx, msg, sig)...)
	}
	return outs
}

func (h *Handler) cancel(msg model.RawMessage, cr model.CancelRequest) []Outbound {
	kind := recorder.KindCancel
	if cr.Scope == model.CancelAllShorts {
		kind = recorder.KindGlobalCancel
	}
	h.record(&recorder.Event{MessageID: msg.ID, ChatID: msg.ChatID, Kind: kind, Tag: cr.Tag})
	metrics.CancelsTotal.Inc()
	return replyAndBroadcast(msg, h.format.Cancel(cr))
}

func (h *Handler) signal(ctx context.Context, msg model.RawMessage, sig model.Signal) []Outbound {
	entry := sig.Price
	display := sig.Tag

	if sig.Mode == model.EntryCMP {
		q, err := h.resolver.Resolve(ctx, sig.Tag)
		if err != nil {
			metrics.QuoteFailures.Inc()
			h.record(&recorder.Event{
				MessageID: msg.ID, ChatID: msg.ChatID,
				Kind: recorder.KindNoPrice, Tag: sig.Tag, Direction: string(sig.Direction),
			})
			if !errors.Is(err, quote.ErrNotFound) {
				h.log.Warn().Str("tag", sig.Tag).Err(err).Msg("quote lookup failed")
			}
			// the notice goes to the requester only, siblings continue
			return []Outbound{{ChatID: msg.ChatID, Text: h.format.NoPrice(sig.Tag)}}
		}
		entry = q.Price
		display = strings.TrimSuffix(q.Symbol, "USDT")
	}

	p, err := h.calc.Build(sig.Tag, display, sig.Direction, entry)
	if err != nil {
		h.log.Error().Str("tag", sig.Tag).Err(err).Msg("plan build failed")
		return []Outbound{{Operator: true, Text: h.format.OperatorAlert(msg, err.Error())}}
	}

	h.record(&recorder.Event{
		MessageID: msg.ID, ChatID: msg.ChatID,
		Kind: recorder.KindSignal, Tag: p.Tag, Direction: string(p.Direction),
		Entry: pricefmt.Format(p.Entry, p.Class),
	})
	metrics.SignalsTotal.WithLabelValues(string(p.Direction)).Inc()
	return replyAndBroadcast(msg, h.format.Plan(p))
}

func (h *Handler) record(evt *recorder.Event) {
	if err := h.recorder.RecordEvent(evt); err != nil {
		h.log.Error().Str("kind", evt.Kind).Err(err).Msg("audit record failed")
	}
}

func replyAndBroadcast(msg model.RawMessage, text string) []Outbound {
	return []Outbound{
		{ChatID: msg.ChatID, Text: text},
		{Broadcast: true, Text: text},
	}
}
