package engine

// ============================================================================
// SHAPE - Result → JSON payload
// ============================================================================
// One shaper per result kind. Transports (HTTP handler, CLI) call Shape and
// serialize whatever comes back; none of them inspect Result fields directly.
//
//   rows   → [{"ID":..,"Name":..,"Department":..,"Salary":..,"Hire_Date":..}]
//   scalar → {"Manager": "Alice"} / {"Total Salary Expense": 300}
//   empty  → {"message": "..."}
// ============================================================================

type shaper func(*Result) interface{}

var shapers = map[ResultKind]shaper{
	ResultRows:   shapeRows,
	ResultScalar: shapeScalar,
	ResultEmpty:  shapeEmpty,
}

// Shape converts a Result into its wire payload.
// A nil or untagged Result shapes as the unrecognized fallback.
func Shape(res *Result) interface{} {
	if res == nil {
		return map[string]interface{}{"message": MessageUnrecognized}
	}
	fn, ok := shapers[res.Kind]
	if !ok {
		return map[string]interface{}{"message": MessageUnrecognized}
	}
	return fn(res)
}

func shapeRows(res *Result) interface{} {
	rows := res.Rows
	if rows == nil {
		rows = []Employee{}
	}
	return rows
}

func shapeScalar(res *Result) interface{} {
	return map[string]interface{}{res.Key: res.Value}
}

func shapeEmpty(res *Result) interface{} {
	msg := res.Message
	if msg == "" {
		msg = MessageUnrecognized
	}
	return map[string]interface{}{"message": msg}
}
