package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// SCHEMA TESTS
// ============================================================================

func TestDefaultTables(t *testing.T) {
	sch := Default()

	assert.Equal(t, []string{TableEmployees, TableDepartments}, sch.TableNames())

	employees, ok := sch.Table(TableEmployees)
	require.True(t, ok)
	assert.Equal(t, []string{"ID", "Name", "Department", "Salary", "Hire_Date"}, employees.ColumnKeys())
	assert.Equal(t, "ID, Name, Department, Salary, CAST(Hire_Date AS TEXT) AS Hire_Date", employees.SelectList())

	departments, ok := sch.Table(TableDepartments)
	require.True(t, ok)
	assert.Equal(t, "Name, Manager", departments.SelectList())
}

func TestTableMissing(t *testing.T) {
	sch := Default()

	_, ok := sch.Table("Payroll")
	assert.False(t, ok)
	assert.Panics(t, func() { sch.MustTable("Payroll") })
}

func TestHeadersUseDisplayNames(t *testing.T) {
	employees := Default().MustTable(TableEmployees)
	assert.Equal(t, []string{"ID", "Name", "Department", "Salary", "Hire Date"}, employees.Headers())
}

func TestSelectListCastsTextColumns(t *testing.T) {
	table := TableMeta{Name: "Events", Columns: []ColumnMeta{
		{Key: "ID", Type: "INTEGER"},
		{Key: "At", Type: "TEXT", AsText: true},
		{Key: "Label", Type: "TEXT"},
	}}
	assert.Equal(t, "ID, CAST(At AS TEXT) AS At, Label", table.SelectList())
	// Keys stay plain: they name the result columns, not the expressions.
	assert.Equal(t, []string{"ID", "At", "Label"}, table.ColumnKeys())
}
