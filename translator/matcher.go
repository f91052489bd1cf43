package translator

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spektr-org/hrquery/engine"
)

// ============================================================================
// MATCHER - Ordered trigger-phrase rules → QuerySpec
// ============================================================================
// No model, no scoring. Each rule is a case-insensitive substring test;
// first match wins. The parameter is cut from the ORIGINAL text (so the
// user's capitalization survives) after the last case-insensitive
// occurrence of the rule's keyword.
// ============================================================================

// Matcher implements Translator using an ordered rule table.
type Matcher struct {
	rules  []Rule
	logger *zap.Logger
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithRules replaces the rule table. Triggers and keywords are lowercased.
func WithRules(rules []Rule) Option {
	return func(m *Matcher) {
		m.rules = normalizeRules(rules)
	}
}

// WithLogger routes match diagnostics to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(m *Matcher) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// New creates a Matcher over DefaultRules.
func New(opts ...Option) *Matcher {
	m := &Matcher{
		rules:  normalizeRules(DefaultRules),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Rules returns a copy of the active rule table.
func (m *Matcher) Rules() []Rule {
	out := make([]Rule, len(m.rules))
	copy(out, m.rules)
	return out
}

// Translate converts a free-text query into a QuerySpec.
func (m *Matcher) Translate(query string) (*engine.QuerySpec, error) {
	if strings.TrimSpace(query) == "" {
		return nil, engine.ErrEmptyQuery()
	}

	lower := strings.ToLower(query)
	for _, rule := range m.rules {
		if !strings.Contains(lower, rule.Trigger) {
			continue
		}

		param := afterLast(query, rule.Keyword)
		if rule.Capitalize {
			param = capitalizeFirst(param)
		}

		m.logger.Debug("query matched",
			zap.String("query", truncate(query, 80)),
			zap.Stringer("intent", rule.Intent),
			zap.String("parameter", param))

		return &engine.QuerySpec{
			Intent:    rule.Intent,
			Parameter: param,
			Trigger:   rule.Trigger,
		}, nil
	}

	m.logger.Debug("query unrecognized", zap.String("query", truncate(query, 80)))
	return &engine.QuerySpec{Intent: engine.IntentUnrecognized}, nil
}

// ============================================================================
// EXTRACTION HELPERS
// ============================================================================

// afterLast returns the trimmed text following the last case-insensitive
// occurrence of keyword. Without an occurrence the whole query is returned.
func afterLast(query, keyword string) string {
	_, end := lastIndexFold(query, keyword)
	if end < 0 {
		return strings.TrimSpace(query)
	}
	return strings.TrimSpace(query[end:])
}

// lastIndexFold is strings.LastIndex under Unicode case folding. It returns
// the byte span of the match in s, or -1, -1. A match may differ in byte
// length from substr (the Kelvin sign folds to "k").
func lastIndexFold(s, substr string) (start, end int) {
	if substr == "" {
		return len(s), len(s)
	}
	for i := len(s) - 1; i >= 0; i-- {
		if !utf8.RuneStart(s[i]) {
			continue
		}
		if n := prefixFold(s[i:], substr); n >= 0 {
			return i, i + n
		}
	}
	return -1, -1
}

// prefixFold reports how many bytes of s match prefix rune by rune under
// case folding, or -1.
func prefixFold(s, prefix string) int {
	i := 0
	for _, want := range prefix {
		if i >= len(s) {
			return -1
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r != want && !strings.EqualFold(string(r), string(want)) {
			return -1
		}
		i += size
	}
	return i
}

// capitalizeFirst upper-cases the first rune and leaves the rest alone.
func capitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func normalizeRules(rules []Rule) []Rule {
	out := make([]Rule, 0, len(rules))
	for _, r := range rules {
		r.Trigger = strings.ToLower(r.Trigger)
		r.Keyword = strings.ToLower(r.Keyword)
		out = append(out, r)
	}
	return out
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
