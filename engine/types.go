package engine

import "encoding/json"

// ============================================================================
// HRQUERY ENGINE TYPES - Intent → Statement → Result
// ============================================================================
// QuerySpec is the contract between the translator and the engine.
// Result is the tagged, render-ready output consumed by Shape().
//
// The engine never parses free text. It only sees a classified intent and
// the single parameter the translator extracted.
// ============================================================================

// Intent is the classified purpose of a free-text query.
type Intent string

const (
	IntentUnrecognized     Intent = ""
	IntentListByDepartment Intent = "list_by_department"
	IntentManagerOf        Intent = "manager_of"
	IntentHiredAfter       Intent = "hired_after"
	IntentSalaryExpenseFor Intent = "salary_expense_for"
)

// String returns the intent tag, or "unrecognized" for the zero value.
func (i Intent) String() string {
	if i == IntentUnrecognized {
		return "unrecognized"
	}
	return string(i)
}

// ============================================================================
// QUERYSPEC - Contract between Translator and Engine
// ============================================================================

// QuerySpec defines what the engine should run.
type QuerySpec struct {
	Intent    Intent `json:"intent"`
	Parameter string `json:"parameter"`         // bound as the sole statement argument
	Trigger   string `json:"trigger,omitempty"` // phrase that selected the intent
}

// Recognized reports whether the translator matched an intent.
func (s QuerySpec) Recognized() bool {
	return s.Intent != IntentUnrecognized
}

// ============================================================================
// ROWS
// ============================================================================

// Employees column names.
const (
	ColumnID         = "ID"
	ColumnName       = "Name"
	ColumnDepartment = "Department"
	ColumnSalary     = "Salary"
	ColumnHireDate   = "Hire_Date"
)

// Employee is one row of the Employees table.
// JSON keys match the column names: clients read them verbatim.
type Employee struct {
	ID         int64   `db:"ID" json:"ID"`
	Name       string  `db:"Name" json:"Name"`
	Department string  `db:"Department" json:"Department"`
	Salary     float64 `db:"Salary" json:"Salary"`
	HireDate   string  `db:"Hire_Date" json:"Hire_Date"`

	// Null lists the columns that were NULL in storage. Their fields hold
	// zero values and render as JSON null.
	Null []string `db:"-" json:"-"`
}

// IsNull reports whether column was NULL in storage.
func (e Employee) IsNull(column string) bool {
	for _, c := range e.Null {
		if c == column {
			return true
		}
	}
	return false
}

// MarshalJSON writes the row with NULL columns as null.
func (e Employee) MarshalJSON() ([]byte, error) {
	type wire struct {
		ID         interface{} `json:"ID"`
		Name       interface{} `json:"Name"`
		Department interface{} `json:"Department"`
		Salary     interface{} `json:"Salary"`
		HireDate   interface{} `json:"Hire_Date"`
	}
	w := wire{ID: e.ID, Name: e.Name, Department: e.Department, Salary: e.Salary, HireDate: e.HireDate}
	for _, c := range e.Null {
		switch c {
		case ColumnID:
			w.ID = nil
		case ColumnName:
			w.Name = nil
		case ColumnDepartment:
			w.Department = nil
		case ColumnSalary:
			w.Salary = nil
		case ColumnHireDate:
			w.HireDate = nil
		}
	}
	return json.Marshal(w)
}

// Department is one row of the Departments table.
type Department struct {
	Name    string `db:"Name" json:"Name"`
	Manager string `db:"Manager" json:"Manager"`
}

// ============================================================================
// RESULT - Tagged output of Execute
// ============================================================================

// ResultKind tags which part of a Result is populated.
type ResultKind string

const (
	ResultRows   ResultKind = "rows"
	ResultScalar ResultKind = "scalar"
	ResultEmpty  ResultKind = "empty"
)

// Result is the engine's render-ready output.
//
// Exactly one payload is meaningful based on Kind:
//
//	rows   → Rows
//	scalar → Key + Value
//	empty  → Message
type Result struct {
	Kind    ResultKind  `json:"kind"`
	Intent  Intent      `json:"intent"`
	Rows    []Employee  `json:"rows,omitempty"`
	Key     string      `json:"key,omitempty"`
	Value   interface{} `json:"value,omitempty"`
	Message string      `json:"message,omitempty"`
}
