// Package storetest builds throwaway SQLite files for tests.
//
// Production code never creates tables. Tests do, through this package only.
package storetest

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/spektr-org/hrquery/engine"
	"github.com/spektr-org/hrquery/schema"
)

// Driver is the pure-Go driver used for fixtures, so tests run without cgo.
const Driver = "sqlite"

// NewDatabase creates a database file under t.TempDir() holding both tables
// filled with the given rows, and returns its path. Columns listed in an
// employee's Null are inserted as NULL.
func NewDatabase(t testing.TB, employees []engine.Employee, departments []engine.Department) string {
	t.Helper()
	return NewTypedDatabase(t, nil, employees, departments)
}

// NewTypedDatabase is NewDatabase with declared column types overridden,
// keyed "Table.Column", e.g. {"Employees.Hire_Date": "DATE"}.
func NewTypedDatabase(t testing.TB, types map[string]string, employees []engine.Employee, departments []engine.Department) string {
	t.Helper()

	path := NewEmptyDatabase(t)
	db := open(t, path)
	defer db.Close()

	sch := schema.Default()
	for _, table := range sch.Tables {
		_, err := db.Exec(createStatement(table, types))
		require.NoError(t, err, "create %s", table.Name)
	}

	for _, e := range employees {
		_, err := db.Exec(`INSERT INTO Employees (ID, Name, Department, Salary, Hire_Date) VALUES (?, ?, ?, ?, ?)`,
			value(e, engine.ColumnID, e.ID),
			value(e, engine.ColumnName, e.Name),
			value(e, engine.ColumnDepartment, e.Department),
			value(e, engine.ColumnSalary, e.Salary),
			value(e, engine.ColumnHireDate, e.HireDate))
		require.NoError(t, err)
	}
	for _, d := range departments {
		_, err := db.Exec(`INSERT INTO Departments (Name, Manager) VALUES (?, ?)`, d.Name, d.Manager)
		require.NoError(t, err)
	}

	return path
}

func value(e engine.Employee, column string, v interface{}) interface{} {
	if e.IsNull(column) {
		return nil
	}
	return v
}

// NewEmptyDatabase creates a valid database file with no tables.
func NewEmptyDatabase(t testing.TB) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "hr.db")
	db := open(t, path)
	defer db.Close()

	// Force the file onto disk.
	_, err := db.Exec("PRAGMA user_version = 1")
	require.NoError(t, err)
	return path
}

// Exec runs raw statements against a fixture, e.g. to drop a table.
func Exec(t testing.TB, path string, statements ...string) {
	t.Helper()

	db := open(t, path)
	defer db.Close()
	for _, stmt := range statements {
		_, err := db.Exec(stmt)
		require.NoError(t, err, stmt)
	}
}

func open(t testing.TB, path string) *sql.DB {
	t.Helper()
	db, err := sql.Open(Driver, path)
	require.NoError(t, err)
	return db
}

func createStatement(table schema.TableMeta, types map[string]string) string {
	cols := make([]string, len(table.Columns))
	for i, c := range table.Columns {
		typ := c.Type
		if override, ok := types[table.Name+"."+c.Key]; ok {
			typ = override
		}
		cols[i] = fmt.Sprintf("%s %s", c.Key, typ)
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", table.Name, strings.Join(cols, ", "))
}
