package helpers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/spektr-org/hrquery/engine"
	"github.com/spektr-org/hrquery/schema"
)

// ============================================================================
// CSV HELPER - Renders an engine.Result as CSV
// ============================================================================
// Same three shapes as engine.Shape, flattened for Sheets/Excel:
//   rows   → header row of column keys, one line per employee
//   scalar → one column named after the result key
//   empty  → one "message" column
// ============================================================================

// WriteCSV writes res to w as CSV.
func WriteCSV(w io.Writer, res *engine.Result) error {
	cw := csv.NewWriter(w)

	var records [][]string
	switch {
	case res == nil:
		records = [][]string{{"message"}, {engine.MessageUnrecognized}}
	case res.Kind == engine.ResultRows:
		records = employeeRecords(res.Rows)
	case res.Kind == engine.ResultScalar:
		records = [][]string{{res.Key}, {formatValue(res.Value)}}
	default:
		msg := res.Message
		if msg == "" {
			msg = engine.MessageUnrecognized
		}
		records = [][]string{{"message"}, {msg}}
	}

	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}

func employeeRecords(rows []engine.Employee) [][]string {
	header := schema.Default().MustTable(schema.TableEmployees).ColumnKeys()
	out := make([][]string, 0, len(rows)+1)
	out = append(out, header)
	for _, e := range rows {
		record := []string{
			strconv.FormatInt(e.ID, 10),
			e.Name,
			e.Department,
			fmtNum(e.Salary),
			e.HireDate,
		}
		// NULL columns are left blank.
		for i, key := range header {
			if e.IsNull(key) {
				record[i] = ""
			}
		}
		out = append(out, record)
	}
	return out
}

func formatValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case float64:
		return fmtNum(val)
	case string:
		return val
	default:
		return fmt.Sprint(val)
	}
}

// fmtNum prints the shortest decimal that round-trips v, without exponent.
func fmtNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
