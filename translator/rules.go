package translator

import "github.com/spektr-org/hrquery/engine"

// DefaultRules is evaluated top to bottom; the first rule whose trigger
// matches wins. Order is part of the contract: adversarial input can contain
// more than one trigger.
//
// Keywords are plain substrings, not words. A department whose name contains
// its rule's keyword ("Marketing" contains "in") is cut at that occurrence.
var DefaultRules = []Rule{
	{
		Intent:     engine.IntentListByDepartment,
		Trigger:    "show me all employees in",
		Keyword:    "in",
		Capitalize: true,
	},
	{
		Intent:     engine.IntentManagerOf,
		Trigger:    "who is the manager of",
		Keyword:    "of",
		Capitalize: true,
	},
	{
		// Dates pass through verbatim.
		Intent:  engine.IntentHiredAfter,
		Trigger: "list all employees hired after",
		Keyword: "after",
	},
	{
		Intent:     engine.IntentSalaryExpenseFor,
		Trigger:    "what is the total salary expense for",
		Keyword:    "for",
		Capitalize: true,
	},
}
