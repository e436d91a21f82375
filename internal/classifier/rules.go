package classifier

import (
	"fmt"
	"regexp"
	"strings"
)

// Rules holds the keyword lists and phrases the classifier matches against.
// The lists ship with defaults but are plain configuration: the exact
// wording drifts between signal providers and is overridable via YAML.
type Rules struct {
	GlobalCancelPhrase string   `yaml:"global_cancel_phrase"`
	CancelKeywords     []string `yaml:"cancel_keywords"`
	ProfitPhrases      []string `yaml:"profit_phrases"`
	ReopenMarkers      []string `yaml:"reopen_markers"`
}

// DefaultRules returns the rule set used when the config file has none.
func DefaultRules() Rules {
	return Rules{
		GlobalCancelPhrase: "all shorts should be closed",
		CancelKeywords: []string{
			"close", "closed", "closing",
			"stopped out", "stop loss", "cut loss",
			"hit sl", "sl",
			"invalidated", "not valid", "is invalidated", "are invalidated",
			"exit", "cancelled",
		},
		ProfitPhrases: []string{
			"closed in profit", "booked", "secured", "secured gains",
		},
		ReopenMarkers: []string{
			"re-open", "reopen", "re-opening", "reopening",
			"re-opened", "reopened", "re-enter", "re-entry",
		},
	}
}

const tagPattern = `#([a-z0-9][a-z0-9-]*)`

var (
	tagRe = regexp.MustCompile(tagPattern)

	// clause boundaries: newline, comma, semicolon, or a full stop that is
	// not a decimal point inside a price
	clauseRe = regexp.MustCompile(`[\n;,]|\.\s|\.$`)

	// a signed numeric percentage, e.g. "+20%" or "-3.5 %"
	percentRe = regexp.MustCompile(`[+-]\s?[0-9]+(?:\.[0-9]+)?\s*%`)

	// tags listed after a "still holding" clause
	holdingRe = regexp.MustCompile(`still\s+holding((?:[\s,]*(?:and\s+)?` + tagPattern + `)+)`)

	wsRe = regexp.MustCompile(`\s+`)
)

// openPattern is one open-trigger grammar rule. CMP patterns carry two
// alternate tag groups (tag-first and trigger-first word order); manual
// patterns capture the tag and the explicit price.
type openPattern struct {
	re     *regexp.Regexp
	long   bool
	manual bool
}

func buildOpenPatterns() []openPattern {
	const num = `([0-9]+(?:\.[0-9]+)?|\.[0-9]+)`
	return []openPattern{
		{re: regexp.MustCompile(tagPattern + `\s+buy_at_cmp\b|\bbuy_at_cmp\s+` + tagPattern), long: true},
		{re: regexp.MustCompile(tagPattern + `\s+buy_at:?\s*\$?` + num), long: true, manual: true},
		{re: regexp.MustCompile(tagPattern + `\s+short_at_cmp\b|\bshort_at_cmp\s+` + tagPattern)},
		{re: regexp.MustCompile(tagPattern + `\s+short_at:?\s*\$?` + num), manual: true},
	}
}

// phraseAlternation builds a word-bounded alternation from a phrase list,
// tolerating any run of whitespace inside multi-word phrases.
func phraseAlternation(phrases []string) (*regexp.Regexp, error) {
	if len(phrases) == 0 {
		return nil, fmt.Errorf("empty phrase list")
	}
	parts := make([]string, 0, len(phrases))
	for _, p := range phrases {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		parts = append(parts, strings.Join(strings.Fields(regexp.QuoteMeta(p)), `\s+`))
	}
	return regexp.Compile(`\b(?:` + strings.Join(parts, "|") + `)\b`)
}
