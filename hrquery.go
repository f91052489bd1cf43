// Package hrquery answers a fixed set of plain-English HR questions against
// a two-table SQLite database.
//
// Usage:
//
//	import "github.com/spektr-org/hrquery"
//
//	st, err := store.New("demodb.db")
//	res, err := hrquery.Ask(ctx, st, "who is the manager of Engineering")
//	payload := engine.Shape(res) // {"Manager": "Alice"}
//
// The translator package turns text into an engine.QuerySpec by ordered
// trigger phrases. The engine runs one parameterized statement per spec.
// The server package exposes the same pipeline as POST /chat.
package hrquery

import (
	"context"

	"go.uber.org/zap"

	"github.com/spektr-org/hrquery/engine"
	"github.com/spektr-org/hrquery/translator"
)

// Ask translates query with the default rule table and executes it.
// Blank input returns *engine.ValidationError; storage faults return
// *engine.StorageError.
func Ask(ctx context.Context, storage engine.Storage, query string, logger *zap.Logger) (*engine.Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	spec, err := translator.New(translator.WithLogger(logger)).Translate(query)
	if err != nil {
		return nil, err
	}
	return engine.Execute(ctx, *spec, storage, engine.WithLogger(logger))
}
