package translator

import (
	"github.com/spektr-org/hrquery/engine"
)

// ============================================================================
// TRANSLATOR - Boundary for free text → QuerySpec
// ============================================================================
// The Translator is the ONLY component that reads the user's raw text.
// It produces an engine.QuerySpec carrying one intent and one parameter.
// It NEVER touches storage.
// ============================================================================

// Translator translates free-text queries into QuerySpecs.
type Translator interface {
	// Translate converts a query into a QuerySpec.
	// Blank input returns *engine.ValidationError.
	// Text matching no rule returns a spec with engine.IntentUnrecognized.
	Translate(query string) (*engine.QuerySpec, error)
}

// Rule is one entry of the ordered rule table.
//
// A rule fires when Trigger occurs anywhere in the lowercased query.
// The parameter is everything after the last occurrence of Keyword.
type Rule struct {
	Intent     engine.Intent
	Trigger    string // lowercase phrase
	Keyword    string // lowercase split word
	Capitalize bool   // upper-case the first rune of the parameter
}
