package translator

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/spektr-org/hrquery/engine"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// ============================================================================
// RULE MATCHING
// ============================================================================

func TestTranslateRecognized(t *testing.T) {
	tests := []struct {
		query     string
		intent    engine.Intent
		parameter string
	}{
		{"show me all employees in sales", engine.IntentListByDepartment, "Sales"},
		{"Show me all employees in HR", engine.IntentListByDepartment, "HR"},
		{"show me all employees in   research  ", engine.IntentListByDepartment, "Research"},
		{"who is the manager of Engineering", engine.IntentManagerOf, "Engineering"},
		{"who is the manager of the department of Engineering", engine.IntentManagerOf, "Engineering"},
		{"Who is the manager of sales?", engine.IntentManagerOf, "Sales?"},
		{"list all employees hired after 2023-01-01", engine.IntentHiredAfter, "2023-01-01"},
		{"please list all employees hired after 2021-07-15 ", engine.IntentHiredAfter, "2021-07-15"},
		{"list all employees hired after march", engine.IntentHiredAfter, "march"},
		{"what is the total salary expense for Sales", engine.IntentSalaryExpenseFor, "Sales"},
		{"what is the total salary expense for sales", engine.IntentSalaryExpenseFor, "Sales"},
		{"show me all employees in émile's team", engine.IntentListByDepartment, "Émile's team"},
	}

	m := New()
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, err := m.Translate(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.intent, got.Intent)
			assert.Equal(t, tt.parameter, got.Parameter)
			assert.True(t, got.Recognized())
		})
	}
}

func TestTranslateCaseInsensitive(t *testing.T) {
	m := New()

	upper, err := m.Translate("SHOW ME ALL EMPLOYEES IN Sales")
	require.NoError(t, err)
	lower, err := m.Translate("show me all employees in Sales")
	require.NoError(t, err)

	if diff := cmp.Diff(lower, upper); diff != "" {
		t.Errorf("specs differ (-lower +upper):\n%s", diff)
	}
	assert.Equal(t, &engine.QuerySpec{
		Intent:    engine.IntentListByDepartment,
		Parameter: "Sales",
		Trigger:   "show me all employees in",
	}, upper)
}

func TestTranslateRuleOrder(t *testing.T) {
	// Both the manager and the list triggers are present; the list rule is
	// earlier in the table and must win.
	got, err := New().Translate("who is the manager of Sales, and show me all employees in Sales")
	require.NoError(t, err)

	assert.Equal(t, engine.IntentListByDepartment, got.Intent)
	assert.Equal(t, "Sales", got.Parameter)
}

func TestTranslateKeywordInsideDepartmentName(t *testing.T) {
	m := New()

	// Known limitation: the split keyword is a substring, so a department
	// name containing it is cut at its last occurrence.
	got, err := m.Translate("show me all employees in Marketing")
	require.NoError(t, err)
	assert.Equal(t, "G", got.Parameter)

	got, err = m.Translate("what is the total salary expense for Information Technology")
	require.NoError(t, err)
	assert.Equal(t, "Mation Technology", got.Parameter)
}

func TestTranslateUnrecognized(t *testing.T) {
	queries := []string{
		"hello",
		"show me employees",
		"who manages Sales",
		"total salary for Sales",
		"list employees hired after 2020-01-01",
	}

	m := New()
	for _, q := range queries {
		t.Run(q, func(t *testing.T) {
			got, err := m.Translate(q)
			require.NoError(t, err)
			assert.False(t, got.Recognized())
			assert.Equal(t, engine.IntentUnrecognized, got.Intent)
			assert.Empty(t, got.Parameter)
		})
	}
}

func TestTranslateBlank(t *testing.T) {
	m := New()
	for _, q := range []string{"", " ", "\t\n  "} {
		got, err := m.Translate(q)
		assert.Nil(t, got)

		var ve *engine.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "Query cannot be empty.", ve.Error())
	}
}

// ============================================================================
// RULE TABLE
// ============================================================================

func TestWithRulesIsAdditive(t *testing.T) {
	rules := append([]Rule{}, DefaultRules...)
	rules = append(rules, Rule{
		Intent:     "headcount_of",
		Trigger:    "How Many People Work In",
		Keyword:    "IN",
		Capitalize: true,
	})
	m := New(WithRules(rules))

	got, err := m.Translate("how many people work in sales")
	require.NoError(t, err)
	assert.Equal(t, engine.Intent("headcount_of"), got.Intent)
	assert.Equal(t, "Sales", got.Parameter)
	assert.Equal(t, "how many people work in", got.Trigger)

	got, err = m.Translate("who is the manager of Sales")
	require.NoError(t, err)
	assert.Equal(t, engine.IntentManagerOf, got.Intent)
}

func TestRulesReturnsCopy(t *testing.T) {
	m := New()
	rules := m.Rules()
	rules[0].Trigger = "mutated"

	assert.Equal(t, "show me all employees in", m.Rules()[0].Trigger)
	assert.Len(t, rules, len(DefaultRules))
}

// ============================================================================
// HELPERS
// ============================================================================

func TestAfterLast(t *testing.T) {
	assert.Equal(t, "Engineering", afterLast("manager of the department OF Engineering", "of"))
	assert.Equal(t, "no keyword here", afterLast("  no keyword here ", "zzz"))
	assert.Equal(t, "", afterLast("ends with in", "in"))
	// U+212A KELVIN SIGN is three bytes and folds to "k".
	assert.Equal(t, "42", afterLast("x \u212A 42", "k"))
}

func TestLastIndexFold(t *testing.T) {
	tests := []struct {
		s, substr  string
		start, end int
	}{
		{"in a bIN", "in", 6, 8},
		{"abc", "in", -1, -1},
		{"i", "in", -1, -1},
		{"abc", "", 3, 3},
		{"ask \u212Aelvin", "k", 4, 7},
		{"x k", "\u212A", 2, 3},
		{"caf\u00E9 CAF\u00C9", "caf\u00E9", 6, 11},
		{"\u212A", "kk", -1, -1},
	}
	for _, tt := range tests {
		start, end := lastIndexFold(tt.s, tt.substr)
		assert.Equal(t, tt.start, start, "%q in %q", tt.substr, tt.s)
		assert.Equal(t, tt.end, end, "%q in %q", tt.substr, tt.s)
	}
}

func TestCapitalizeFirst(t *testing.T) {
	assert.Equal(t, "Sales", capitalizeFirst("sales"))
	assert.Equal(t, "HR", capitalizeFirst("HR"))
	assert.Equal(t, "R&D dept", capitalizeFirst("r&D dept"))
	assert.Equal(t, "", capitalizeFirst(""))
	assert.Equal(t, "2023-01-01", capitalizeFirst("2023-01-01"))
}
