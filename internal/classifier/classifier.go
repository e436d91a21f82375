package classifier

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"SignalRelay/internal/model"
)

// Result is everything one message classified into. Cancels and Signals
// are independent lists; both may be populated by the same message.
type Result struct {
	Cancels []model.CancelRequest
	Signals []model.Signal
}

// Classifier turns raw message text into cancel requests and open signals.
// It is a pure function of the text: no state, safe for concurrent use.
type Classifier struct {
	globalPhrase string
	cancelRe     *regexp.Regexp
	profitRe     *regexp.Regexp
	reopenRe     *regexp.Regexp
	openPats     []openPattern
}

// New compiles the rule set into a Classifier.
func New(rules Rules) (*Classifier, error) {
	cancelRe, err := phraseAlternation(rules.CancelKeywords)
	if err != nil {
		return nil, fmt.Errorf("compile cancel keywords: %w", err)
	}
	profitRe, err := phraseAlternation(rules.ProfitPhrases)
	if err != nil {
		return nil, fmt.Errorf("compile profit phrases: %w", err)
	}
	reopenRe, err := phraseAlternation(rules.ReopenMarkers)
	if err != nil {
		return nil, fmt.Errorf("compile reopen markers: %w", err)
	}
	phrase := strings.ToLower(strings.TrimSpace(rules.GlobalCancelPhrase))
	if phrase == "" {
		return nil, fmt.Errorf("global cancel phrase is required")
	}
	return &Classifier{
		globalPhrase: wsRe.ReplaceAllString(phrase, " "),
		cancelRe:     cancelRe,
		profitRe:     profitRe,
		reopenRe:     reopenRe,
		openPats:     buildOpenPatterns(),
	}, nil
}

// Classify scans one message. Precedence: the global cancel phrase
// short-circuits everything; otherwise per-asset cancels and open
// signals are extracted independently and returned together.
func (c *Classifier) Classify(text string) Result {
	lower := strings.ToLower(text)

	if strings.Contains(wsRe.ReplaceAllString(lower, " "), c.globalPhrase) {
		return Result{Cancels: []model.CancelRequest{{Tag: model.CancelAllTag, Scope: model.CancelAllShorts}}}
	}

	holding := c.stillHolding(lower)
	signals := c.openSignals(lower, holding)

	open := make(map[string]bool, len(signals))
	for _, s := range signals {
		open[strings.ToLower(s.Tag)] = true
	}

	cancels := c.cancels(lower, holding, open)

	if c.reopenRe.MatchString(lower) {
		signals = c.addReopens(lower, signals, open, holding, cancels)
	}

	return Result{Cancels: cancels, Signals: signals}
}

// openSignals applies the open-trigger grammar. Tags in a still-holding
// clause never re-enter. Duplicate tag+direction matches resolve to the
// first occurrence.
func (c *Classifier) openSignals(lower string, holding map[string]bool) []model.Signal {
	var signals []model.Signal
	seen := make(map[string]bool)

	for _, pat := range c.openPats {
		for _, m := range pat.re.FindAllStringSubmatch(lower, -1) {
			tag := firstGroup(m)
			if tag == "" || holding[tag] {
				continue
			}
			dir := model.Short
			if pat.long {
				dir = model.Long
			}
			key := tag + "/" + string(dir)
			if seen[key] {
				continue
			}

			sig := model.Signal{Tag: strings.ToUpper(tag), Direction: dir, Mode: model.EntryCMP}
			if pat.manual {
				price, err := decimal.NewFromString(m[len(m)-1])
				if err != nil || !price.IsPositive() {
					continue
				}
				sig.Mode = model.EntryManual
				sig.Price = price
			}
			seen[key] = true
			signals = append(signals, sig)
		}
	}
	return signals
}

// cancels emits one CancelRequest per asset tag associated with a loss
// keyword, except tags mentioned alongside a profit phrase (treated as
// profit-taking commentary) and tags still being held.
func (c *Classifier) cancels(lower string, holding, open map[string]bool) []model.CancelRequest {
	if !c.cancelRe.MatchString(lower) {
		return nil
	}

	profit := make(map[string]bool)
	var candidates []string
	for _, clause := range clauseRe.Split(lower, -1) {
		tags := tagsIn(clause)
		if percentRe.MatchString(clause) || c.profitRe.MatchString(clause) {
			for _, t := range tags {
				profit[t] = true
			}
		}
		if c.cancelRe.MatchString(clause) {
			candidates = append(candidates, tags...)
		}
	}
	if len(candidates) == 0 {
		// the keyword sits in a clause of its own; fall back to every
		// tag of the message that is not an open trigger
		for _, tag := range tagsIn(lower) {
			if !open[tag] {
				candidates = append(candidates, tag)
			}
		}
	}

	seen := make(map[string]bool)
	var out []model.CancelRequest
	for _, tag := range candidates {
		if seen[tag] || profit[tag] || holding[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, model.CancelRequest{Tag: strings.ToUpper(tag), Scope: model.CancelSingleAsset})
	}
	return out
}

// addReopens appends a market-entry signal for every tag the message
// mentions that is not already opened, cancelled, or still held. The
// direction is inherited from the detected signals when present,
// otherwise from whether the re-open context talks about shorts.
func (c *Classifier) addReopens(lower string, signals []model.Signal, open, holding map[string]bool, cancels []model.CancelRequest) []model.Signal {
	dir := model.Long
	if len(signals) > 0 {
		dir = signals[0].Direction
	} else if strings.Contains(lower, "short") {
		dir = model.Short
	}

	cancelled := make(map[string]bool, len(cancels))
	for _, cr := range cancels {
		cancelled[strings.ToLower(cr.Tag)] = true
	}

	for _, tag := range tagsIn(lower) {
		if open[tag] || holding[tag] || cancelled[tag] {
			continue
		}
		open[tag] = true
		signals = append(signals, model.Signal{
			Tag:       strings.ToUpper(tag),
			Direction: dir,
			Mode:      model.EntryCMP,
			Reopen:    true,
		})
	}
	return signals
}

// stillHolding collects the tags listed after every "still holding" clause.
func (c *Classifier) stillHolding(lower string) map[string]bool {
	out := make(map[string]bool)
	for _, m := range holdingRe.FindAllStringSubmatch(lower, -1) {
		for _, tag := range tagsIn(m[1]) {
			out[tag] = true
		}
	}
	return out
}

// tagsIn returns the asset tags of a text fragment in order of
// appearance, deduplicated, lowercase.
func tagsIn(s string) []string {
	var tags []string
	seen := make(map[string]bool)
	for _, m := range tagRe.FindAllStringSubmatch(s, -1) {
		if seen[m[1]] {
			continue
		}
		seen[m[1]] = true
		tags = append(tags, m[1])
	}
	return tags
}

// firstGroup resolves alternate capture branches to the first non-empty
// capture in the match.
func firstGroup(m []string) string {
	for _, g := range m[1:] {
		if g != "" {
			return g
		}
	}
	return ""
}
