// Package ingest classifies batch inserts row by row: every candidate is
// validated, duplicate-checked against its natural key and inserted
// independently, so one bad row never aborts the rest of the batch.
package ingest

import (
	"context"
)

// Row is one candidate of a batch. The closures carry the entity-specific
// validation, natural-key lookup and insert; the engine only orchestrates.
type Row struct {
	Item     interface{}
	Validate func() error
	Exists   func(ctx context.Context) (bool, error)
	Insert   func(ctx context.Context) error
}

// ItemError pairs a failed candidate with the underlying message.
type ItemError struct {
	Item    interface{} `json:"item"`
	Message string      `json:"message"`
}

// Outcome partitions a batch. Every input row lands in exactly one bucket:
// len(Created)+len(Duplicates)+len(Errors) equals the input length.
type Outcome struct {
	Created    []interface{} `json:"created"`
	Duplicates []interface{} `json:"duplicates"`
	Errors     []ItemError   `json:"errors"`
}

// Run processes each row independently: validate, then check the natural key
// for an existing record (duplicates are skipped, never overwritten), then
// insert. Each insert is a single document creation; the batch as a whole is
// not atomic.
func Run(ctx context.Context, rows []Row) Outcome {
	outcome := Outcome{
		Created:    []interface{}{},
		Duplicates: []interface{}{},
		Errors:     []ItemError{},
	}

	for _, row := range rows {
		if row.Validate != nil {
			if err := row.Validate(); err != nil {
				outcome.Errors = append(outcome.Errors, ItemError{Item: row.Item, Message: err.Error()})
				continue
			}
		}

		exists, err := row.Exists(ctx)
		if err != nil {
			outcome.Errors = append(outcome.Errors, ItemError{Item: row.Item, Message: err.Error()})
			continue
		}
		if exists {
			outcome.Duplicates = append(outcome.Duplicates, row.Item)
			continue
		}

		if err := row.Insert(ctx); err != nil {
			outcome.Errors = append(outcome.Errors, ItemError{Item: row.Item, Message: err.Error()})
			continue
		}
		outcome.Created = append(outcome.Created, row.Item)
	}

	return outcome
}
