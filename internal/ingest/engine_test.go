package ingest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory natural-key store standing in for a collection.
type fakeStore struct {
	keys map[string]bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{keys: map[string]bool{}}
}

func (s *fakeStore) row(key string, invalid bool) Row {
	return Row{
		Item: key,
		Validate: func() error {
			if invalid {
				return errors.New("name is required")
			}
			return nil
		},
		Exists: func(ctx context.Context) (bool, error) {
			return s.keys[key], nil
		},
		Insert: func(ctx context.Context) error {
			s.keys[key] = true
			return nil
		},
	}
}

func TestRunPartitionsEveryRow(t *testing.T) {
	store := newFakeStore()
	store.keys["existing"] = true

	rows := []Row{
		store.row("alpha", false),
		store.row("existing", false),
		store.row("broken", true),
		store.row("beta", false),
	}

	outcome := Run(context.Background(), rows)

	assert.Equal(t, []interface{}{"alpha", "beta"}, outcome.Created)
	assert.Equal(t, []interface{}{"existing"}, outcome.Duplicates)
	require.Len(t, outcome.Errors, 1)
	assert.Equal(t, "broken", outcome.Errors[0].Item)
	assert.Equal(t, "name is required", outcome.Errors[0].Message)

	assert.Equal(t, len(rows), len(outcome.Created)+len(outcome.Duplicates)+len(outcome.Errors))
}

func TestRunSecondPassIsAllDuplicates(t *testing.T) {
	store := newFakeStore()
	rows := []Row{store.row("a", false), store.row("b", false)}

	first := Run(context.Background(), rows)
	assert.Len(t, first.Created, 2)

	second := Run(context.Background(), rows)
	assert.Empty(t, second.Created)
	assert.Len(t, second.Duplicates, 2)
	assert.Empty(t, second.Errors)
}

func TestRunExistsErrorLandsInErrors(t *testing.T) {
	row := Row{
		Item: "x",
		Exists: func(ctx context.Context) (bool, error) {
			return false, errors.New("connection lost")
		},
		Insert: func(ctx context.Context) error { return nil },
	}

	outcome := Run(context.Background(), []Row{row})
	require.Len(t, outcome.Errors, 1)
	assert.Equal(t, "connection lost", outcome.Errors[0].Message)
}

func TestRunInsertErrorDoesNotAbortBatch(t *testing.T) {
	store := newFakeStore()
	failing := Row{
		Item:   "bad",
		Exists: func(ctx context.Context) (bool, error) { return false, nil },
		Insert: func(ctx context.Context) error { return errors.New("write refused") },
	}

	outcome := Run(context.Background(), []Row{failing, store.row("good", false)})

	assert.Equal(t, []interface{}{"good"}, outcome.Created)
	require.Len(t, outcome.Errors, 1)
	assert.Equal(t, "bad", outcome.Errors[0].Item)
}

func TestRunEmptyBatch(t *testing.T) {
	outcome := Run(context.Background(), nil)
	assert.Empty(t, outcome.Created)
	assert.Empty(t, outcome.Duplicates)
	assert.Empty(t, outcome.Errors)
}
