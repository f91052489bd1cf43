package store

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spektr-org/hrquery/schema"
)

// Report lists what a database file lacks compared to a schema.
type Report struct {
	MissingTables  []string            `json:"missingTables,omitempty"`
	MissingColumns map[string][]string `json:"missingColumns,omitempty"`
}

// OK reports whether nothing is missing.
func (r *Report) OK() bool {
	return len(r.MissingTables) == 0 && len(r.MissingColumns) == 0
}

func (r *Report) String() string {
	if r.OK() {
		return "ok"
	}
	var parts []string
	if len(r.MissingTables) > 0 {
		parts = append(parts, "missing tables: "+strings.Join(r.MissingTables, ", "))
	}
	tables := make([]string, 0, len(r.MissingColumns))
	for t := range r.MissingColumns {
		tables = append(tables, t)
	}
	sort.Strings(tables)
	for _, t := range tables {
		parts = append(parts, fmt.Sprintf("%s missing columns: %s", t, strings.Join(r.MissingColumns[t], ", ")))
	}
	return strings.Join(parts, "; ")
}

// Check compares the database against sch. It only reads the catalog.
func (s *SQLite) Check(ctx context.Context, sch schema.Config) (*Report, error) {
	sess, err := s.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer sess.Close()

	var tables []string
	if err := sess.Select(ctx, &tables, "SELECT name FROM sqlite_master WHERE type = 'table'"); err != nil {
		return nil, err
	}
	present := make(map[string]bool, len(tables))
	for _, t := range tables {
		present[t] = true
	}

	report := &Report{}
	for _, table := range sch.Tables {
		if !present[table.Name] {
			report.MissingTables = append(report.MissingTables, table.Name)
			continue
		}

		var cols []string
		if err := sess.Select(ctx, &cols, "SELECT name FROM pragma_table_info(?)", table.Name); err != nil {
			return nil, err
		}
		have := make(map[string]bool, len(cols))
		for _, c := range cols {
			have[c] = true
		}
		for _, key := range table.ColumnKeys() {
			if !have[key] {
				if report.MissingColumns == nil {
					report.MissingColumns = make(map[string][]string)
				}
				report.MissingColumns[table.Name] = append(report.MissingColumns[table.Name], key)
			}
		}
	}

	return report, nil
}
