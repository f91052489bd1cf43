package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/hrquery/engine"
	"github.com/spektr-org/hrquery/store/storetest"
)

// cliEnv isolates tests from the host environment and selects the pure-Go
// driver the fixtures are built with.
func cliEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"HOST", "PORT", "GIN_MODE", "DATABASE"} {
		t.Setenv(key, "")
	}
	t.Setenv("DB_DRIVER", storetest.Driver)
	t.Setenv("LOG_LEVEL", "error")
}

func fixtureDB(t *testing.T) string {
	t.Helper()
	return storetest.NewDatabase(t,
		[]engine.Employee{
			{ID: 1, Name: "Ann", Department: "Sales", Salary: 100, HireDate: "2021-03-01"},
			{ID: 2, Name: "Ben", Department: "Sales", Salary: 200, HireDate: "2023-06-15"},
		},
		[]engine.Department{{Name: "Engineering", Manager: "Alice"}},
	)
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestAskJSON(t *testing.T) {
	cliEnv(t)
	db := fixtureDB(t)

	out, err := run(t, "ask", "--database", db, "what is the total salary expense for Sales")
	require.NoError(t, err)
	assert.JSONEq(t, `{"Total Salary Expense": 300}`, out)

	// Unquoted words are joined back into one query.
	out, err = run(t, "ask", "--database", db, "who", "is", "the", "manager", "of", "Engineering")
	require.NoError(t, err)
	assert.JSONEq(t, `{"Manager": "Alice"}`, out)
}

func TestAskPretty(t *testing.T) {
	cliEnv(t)
	db := fixtureDB(t)

	out, err := run(t, "ask", "--database", db, "--format", "pretty", "who is the manager of Engineering")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"Manager\": \"Alice\"\n}\n", out)
}

func TestAskCSV(t *testing.T) {
	cliEnv(t)
	db := fixtureDB(t)

	out, err := run(t, "ask", "--database", db, "-f", "csv", "show me all employees in sales")
	require.NoError(t, err)
	assert.Equal(t, "ID,Name,Department,Salary,Hire_Date\n"+
		"1,Ann,Sales,100,2021-03-01\n"+
		"2,Ben,Sales,200,2023-06-15\n", out)
}

func TestAskOutFile(t *testing.T) {
	cliEnv(t)
	db := fixtureDB(t)
	dest := filepath.Join(t.TempDir(), "answer.json")

	out, err := run(t, "ask", "--database", db, "--out", dest, "show me all employees in HR")
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.JSONEq(t, `{"message": "No employees found in the specified department."}`, string(data))
}

func TestAskErrors(t *testing.T) {
	cliEnv(t)
	db := fixtureDB(t)

	_, err := run(t, "ask", "--database", db, "--format", "xml", "who is the manager of Engineering")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")

	_, err = run(t, "ask", "--database", db, "   ")
	require.Error(t, err)
	assert.Equal(t, engine.MessageEmptyQuery, err.Error())

	_, err = run(t, "ask", "--database", storetest.NewEmptyDatabase(t), "show me all employees in Sales")
	require.Error(t, err)
	var serr *engine.StorageError
	assert.ErrorAs(t, err, &serr)
}

func TestServeMissingDatabase(t *testing.T) {
	cliEnv(t)
	missing := filepath.Join(t.TempDir(), "demodb.db")

	out, err := run(t, "serve", "--database", missing)
	assert.ErrorIs(t, err, errExit)
	assert.Equal(t,
		"Database '"+missing+"' not found. Please ensure it exists and contains required tables.\n", out)
}

func TestCheck(t *testing.T) {
	cliEnv(t)

	db := fixtureDB(t)
	out, err := run(t, "check", "--database", db)
	require.NoError(t, err)
	assert.Contains(t, out, "OK: 2 tables verified")

	out, err = run(t, "check", "--database", storetest.NewEmptyDatabase(t))
	assert.ErrorIs(t, err, errExit)
	assert.Contains(t, out, "missing tables: Employees, Departments")
}

func TestBadConfigFile(t *testing.T) {
	cliEnv(t)

	_, err := run(t, "check", "--config", filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config")
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "hrquery "+version+"\n", out)
}
