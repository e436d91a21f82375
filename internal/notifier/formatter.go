package notifier

import (
	"fmt"
	"strings"

	"SignalRelay/internal/model"
	"SignalRelay/internal/pricefmt"
)

// Formatter renders notifications into their fixed textual layout.
// Pure text assembly; no business logic lives here.
type Formatter struct {
	Signature string
}

// Plan renders a trade plan notification.
func (f *Formatter) Plan(p *model.TradePlan) string {
	var b strings.Builder

	header := "Spot + Future Long"
	if p.Direction == model.Short {
		header = "Spot + Future Short"
	}
	b.WriteString(header + "\n\n")
	b.WriteString(p.Pair + "\n\n")
	b.WriteString("Entry: " + pricefmt.Format(p.Entry, p.Class) + "\n")
	for i, tp := range p.TakeProfits {
		fmt.Fprintf(&b, "TP%d: %s\n", i+1, pricefmt.Format(tp, p.Class))
	}
	b.WriteString("\n")
	b.WriteString("Stoploss: " + pricefmt.Format(p.StopLoss, p.Class) + "\n")
	b.WriteString("Lev: " + p.Leverage + "\n")
	b.WriteString("Size: " + p.Sizing + "\n")
	b.WriteString(f.Signature)

	return b.String()
}

// Cancel renders a close/cancel notice.
func (f *Formatter) Cancel(cr model.CancelRequest) string {
	if cr.Scope == model.CancelAllShorts {
		return "Cancel All Short Trades"
	}
	return fmt.Sprintf("Cancel %s/USDT", cr.Tag)
}

// NoPrice renders the notice sent when no quote exists for a tag.
func (f *Formatter) NoPrice(tag string) string {
	return fmt.Sprintf("⚠️ Could not fetch price for #%s", tag)
}

// OperatorAlert renders the error report routed to the operator
// allow-list when processing a message fails unexpectedly.
func (f *Formatter) OperatorAlert(msg model.RawMessage, desc string) string {
	var b strings.Builder
	b.WriteString("🚨 message processing failed\n\n")
	fmt.Fprintf(&b, "id: %s\nchat: %d\n\n", msg.ID, msg.ChatID)
	fmt.Fprintf(&b, "text:\n%s\n\n", msg.Text)
	fmt.Fprintf(&b, "error: %s", desc)
	return b.String()
}

// Digest renders the daily activity summary for the broadcast channel.
func (f *Formatter) Digest(signals, cancels, noPrice int) string {
	var b strings.Builder
	b.WriteString("📊 Daily digest\n\n")
	fmt.Fprintf(&b, "Signals sent: %d\n", signals)
	fmt.Fprintf(&b, "Cancels sent: %d\n", cancels)
	fmt.Fprintf(&b, "Price lookups failed: %d", noPrice)
	return b.String()
}
