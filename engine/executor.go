package engine

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/spektr-org/hrquery/schema"
)

// ============================================================================
// EXECUTOR - Intent → Plan → one parameterized statement
// ============================================================================
// Entry point: Execute(ctx, spec, storage, opts...)
//
// Pipeline:
//   1. Unrecognized spec → fixed fallback message (storage untouched)
//   2. Look up the intent's plan (statement + category + empty message)
//   3. Acquire a Session, run the category runner, release the Session
//   4. Return a tagged Result (rows / scalar / empty)
//
// Storage faults never escape as panics. They come back as *StorageError.
// ============================================================================

// category selects the runner and the shaper for a plan.
type category string

const (
	categoryList   category = "list"
	categoryScalar category = "scalar"
	categorySum    category = "sum"
)

// plan is one row of the intent table.
type plan struct {
	statement    string
	category     category
	key          string // JSON key for scalar/sum payloads
	emptyMessage string
}

var plans = buildPlans(schema.Default())

// buildPlans derives the intent table from the dataset schema.
// Adding an intent means adding one entry here and one translator rule.
func buildPlans(sch schema.Config) map[Intent]plan {
	employees := sch.MustTable(schema.TableEmployees)
	departments := sch.MustTable(schema.TableDepartments)
	selectEmployees := "SELECT " + employees.SelectList() + " FROM " + employees.Name

	return map[Intent]plan{
		IntentListByDepartment: {
			statement:    selectEmployees + " WHERE Department = ?",
			category:     categoryList,
			emptyMessage: "No employees found in the specified department.",
		},
		IntentManagerOf: {
			statement:    "SELECT Manager FROM " + departments.Name + " WHERE Name = ?",
			category:     categoryScalar,
			key:          "Manager",
			emptyMessage: "No department found with that name.",
		},
		IntentHiredAfter: {
			statement:    selectEmployees + " WHERE Hire_Date > ?",
			category:     categoryList,
			emptyMessage: "No employees hired after the specified date.",
		},
		IntentSalaryExpenseFor: {
			statement:    "SELECT SUM(Salary) FROM " + employees.Name + " WHERE Department = ?",
			category:     categorySum,
			key:          "Total Salary Expense",
			emptyMessage: "No salary data found for the specified department.",
		},
	}
}

// Execute runs a QuerySpec against storage and returns a tagged Result.
//
// Options:
//   - WithLogger(l) - routes diagnostics to a zap logger
func Execute(ctx context.Context, spec QuerySpec, storage Storage, opts ...Option) (*Result, error) {
	cfg := applyOptions(opts)
	logger := cfg.Logger.With(zap.Stringer("intent", spec.Intent))

	if !spec.Recognized() {
		return unrecognized(spec), nil
	}

	p, ok := plans[spec.Intent]
	if !ok {
		logger.Warn("no plan registered for intent")
		return unrecognized(spec), nil
	}

	if storage == nil {
		return nil, &StorageError{Op: "acquire", Err: errors.New("no storage configured")}
	}

	started := time.Now()
	session, err := storage.Acquire(ctx)
	if err != nil {
		logger.Warn("storage acquire failed", zap.Error(err))
		return nil, storageError("acquire", err)
	}
	defer func() {
		if cerr := session.Close(); cerr != nil {
			logger.Warn("storage release failed", zap.Error(cerr))
		}
	}()

	result, err := runners[p.category](ctx, session, p, spec.Parameter)
	if err != nil {
		logger.Warn("statement failed", zap.String("statement", p.statement), zap.Error(err))
		return nil, err
	}
	result.Intent = spec.Intent

	logger.Debug("statement executed",
		zap.String("parameter", spec.Parameter),
		zap.String("kind", string(result.Kind)),
		zap.Int("rows", len(result.Rows)),
		zap.Duration("elapsed", time.Since(started)))

	return result, nil
}

// ============================================================================
// CATEGORY RUNNERS
// ============================================================================

type runner func(ctx context.Context, s Session, p plan, param string) (*Result, error)

var runners = map[category]runner{
	categoryList:   runList,
	categoryScalar: runScalar,
	categorySum:    runSum,
}

func runList(ctx context.Context, s Session, p plan, param string) (*Result, error) {
	var rows []employeeRow
	if err := s.Select(ctx, &rows, p.statement, param); err != nil {
		return nil, storageError("select", err)
	}
	if len(rows) == 0 {
		return empty(p), nil
	}
	employees := make([]Employee, len(rows))
	for i, r := range rows {
		employees[i] = r.employee()
	}
	return &Result{Kind: ResultRows, Rows: employees}, nil
}

// employeeRow is the scan target for Employees. Any column may be NULL in a
// database we did not create.
type employeeRow struct {
	ID         sql.NullInt64   `db:"ID"`
	Name       sql.NullString  `db:"Name"`
	Department sql.NullString  `db:"Department"`
	Salary     sql.NullFloat64 `db:"Salary"`
	HireDate   sql.NullString  `db:"Hire_Date"`
}

func (r employeeRow) employee() Employee {
	e := Employee{
		ID:         r.ID.Int64,
		Name:       r.Name.String,
		Department: r.Department.String,
		Salary:     r.Salary.Float64,
		HireDate:   r.HireDate.String,
	}
	for _, col := range []struct {
		name  string
		valid bool
	}{
		{ColumnID, r.ID.Valid},
		{ColumnName, r.Name.Valid},
		{ColumnDepartment, r.Department.Valid},
		{ColumnSalary, r.Salary.Valid},
		{ColumnHireDate, r.HireDate.Valid},
	} {
		if !col.valid {
			e.Null = append(e.Null, col.name)
		}
	}
	return e
}

func runScalar(ctx context.Context, s Session, p plan, param string) (*Result, error) {
	var values []sql.NullString
	if err := s.Select(ctx, &values, p.statement, param); err != nil {
		return nil, storageError("select", err)
	}
	if len(values) == 0 {
		return empty(p), nil
	}
	// A matching row with a NULL value is still a hit; it renders as null.
	var value interface{}
	if values[0].Valid {
		value = values[0].String
	}
	return &Result{Kind: ResultScalar, Key: p.key, Value: value}, nil
}

func runSum(ctx context.Context, s Session, p plan, param string) (*Result, error) {
	var total sql.NullFloat64
	if err := s.Get(ctx, &total, p.statement, param); err != nil {
		return nil, storageError("get", err)
	}
	// SUM over zero rows is NULL; a zero total is treated the same way.
	if !total.Valid || total.Float64 == 0 {
		return empty(p), nil
	}
	return &Result{Kind: ResultScalar, Key: p.key, Value: total.Float64}, nil
}

func empty(p plan) *Result {
	return &Result{Kind: ResultEmpty, Message: p.emptyMessage}
}

func unrecognized(spec QuerySpec) *Result {
	return &Result{Kind: ResultEmpty, Intent: spec.Intent, Message: MessageUnrecognized}
}
