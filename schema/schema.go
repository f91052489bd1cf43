package schema

import (
	"fmt"
	"strings"
)

// ============================================================================
// SCHEMA - Describes the fixed two-table HR dataset
// ============================================================================
// The database is owned by someone else and assumed pre-populated.
// This package only describes what we expect to find there:
//   - the engine builds its select lists from it
//   - store.Check verifies a database file against it
// Nothing here creates or alters tables.
// ============================================================================

// Table names.
const (
	TableEmployees   = "Employees"
	TableDepartments = "Departments"
)

// Config describes the complete shape of a dataset.
type Config struct {
	Name        string      `json:"name"`
	Version     string      `json:"version,omitempty"`
	Description string      `json:"description,omitempty"`
	Tables      []TableMeta `json:"tables"`
}

// TableMeta describes one table and its columns, in select order.
type TableMeta struct {
	Name        string       `json:"name"`
	DisplayName string       `json:"displayName"`
	Columns     []ColumnMeta `json:"columns"`
}

// ColumnMeta describes one column.
type ColumnMeta struct {
	Key         string `json:"key"`
	DisplayName string `json:"displayName"`
	Type        string `json:"type"` // SQLite affinity: INTEGER, TEXT, REAL

	// AsText selects the column through CAST(... AS TEXT). Drivers convert
	// DATE/DATETIME-declared columns to time.Time; a cast has no declared
	// type, so the stored text comes back unchanged.
	AsText bool `json:"asText,omitempty"`
}

// Default returns the Employees/Departments layout.
//
// Hire_Date is TEXT in a lexically sortable format (YYYY-MM-DD), so
// "hired after" is a plain string comparison.
func Default() Config {
	return Config{
		Name:        "hr",
		Version:     "1",
		Description: "Employees and the departments they belong to",
		Tables: []TableMeta{
			{
				Name:        TableEmployees,
				DisplayName: "Employees",
				Columns: []ColumnMeta{
					{Key: "ID", DisplayName: "ID", Type: "INTEGER"},
					{Key: "Name", DisplayName: "Name", Type: "TEXT"},
					{Key: "Department", DisplayName: "Department", Type: "TEXT"},
					{Key: "Salary", DisplayName: "Salary", Type: "REAL"},
					{Key: "Hire_Date", DisplayName: "Hire Date", Type: "TEXT", AsText: true},
				},
			},
			{
				Name:        TableDepartments,
				DisplayName: "Departments",
				Columns: []ColumnMeta{
					{Key: "Name", DisplayName: "Name", Type: "TEXT"},
					{Key: "Manager", DisplayName: "Manager", Type: "TEXT"},
				},
			},
		},
	}
}

// Table returns the table with the given name.
func (c Config) Table(name string) (TableMeta, bool) {
	for _, t := range c.Tables {
		if t.Name == name {
			return t, true
		}
	}
	return TableMeta{}, false
}

// MustTable is Table for names known at compile time.
func (c Config) MustTable(name string) TableMeta {
	t, ok := c.Table(name)
	if !ok {
		panic(fmt.Sprintf("schema %q has no table %q", c.Name, name))
	}
	return t
}

// TableNames returns all table names.
func (c Config) TableNames() []string {
	names := make([]string, len(c.Tables))
	for i, t := range c.Tables {
		names[i] = t.Name
	}
	return names
}

// ColumnKeys returns all column keys in select order.
func (t TableMeta) ColumnKeys() []string {
	keys := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		keys[i] = col.Key
	}
	return keys
}

// SelectList returns the comma-separated select expressions, e.g.
// "ID, Name, CAST(Hire_Date AS TEXT) AS Hire_Date". Every expression is
// named after its column key.
func (t TableMeta) SelectList() string {
	exprs := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		exprs[i] = col.selectExpr()
	}
	return strings.Join(exprs, ", ")
}

func (c ColumnMeta) selectExpr() string {
	if c.AsText {
		return fmt.Sprintf("CAST(%s AS TEXT) AS %s", c.Key, c.Key)
	}
	return c.Key
}

// Headers returns display names in select order.
func (t TableMeta) Headers() []string {
	headers := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		headers[i] = col.DisplayName
	}
	return headers
}
