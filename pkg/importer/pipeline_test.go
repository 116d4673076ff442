package importer

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	existing map[string]bool
	inserted []Record

	existsErr error
	insertErr error
}

func (s *fakeStore) key(rec Record) string {
	return rec["name"] + "|" + rec["kind"]
}

func (s *fakeStore) exists(_ context.Context, rec Record) (bool, error) {
	if s.existsErr != nil {
		return false, s.existsErr
	}
	return s.existing[s.key(rec)], nil
}

func (s *fakeStore) insert(_ context.Context, rec Record) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	if s.existing == nil {
		s.existing = make(map[string]bool)
	}
	s.existing[s.key(rec)] = true
	s.inserted = append(s.inserted, rec)
	return nil
}

func newTestPipeline(store *fakeStore) *Pipeline {
	return &Pipeline{
		Schema: validationSchema(),
		Exists: store.exists,
		Insert: store.insert,
	}
}

func TestPipeline_PartialFailureTolerance(t *testing.T) {
	store := &fakeStore{}
	p := newTestPipeline(store)

	rows := []RawRow{
		{"name": "a", "kind": "k1"},
		{"name": "b", "kind": "k2"},
		{"kind": "k3"}, // missing name
		{"name": "d", "kind": "k4"},
		{"name": "e", "kind": "k5"},
	}

	res := p.Run(context.Background(), rows)
	require.Equal(t, 4, res.Imported)
	require.Equal(t, 0, res.DuplicatesSkipped)
	require.Equal(t, []string{"Missing name"}, res.Errors)
	require.True(t, res.Success())
}

func TestPipeline_DuplicateSkippedNotCountedAsError(t *testing.T) {
	store := &fakeStore{}
	p := newTestPipeline(store)

	rows := []RawRow{
		{"name": "a", "kind": "k"},
		{"name": "a", "kind": "k"},
	}

	res := p.Run(context.Background(), rows)
	require.Equal(t, 1, res.Imported)
	require.Equal(t, 1, res.DuplicatesSkipped)
	require.Empty(t, res.Errors)
}

func TestPipeline_ExistsFailureSkipsRowConservatively(t *testing.T) {
	store := &fakeStore{existsErr: errors.New("connection reset")}
	p := newTestPipeline(store)

	res := p.Run(context.Background(), []RawRow{{"name": "a", "kind": "k"}})
	require.Equal(t, 0, res.Imported)
	require.Equal(t, 0, res.DuplicatesSkipped)
	require.Equal(t, []string{"connection reset"}, res.Errors)
	require.Empty(t, store.inserted, "row must not be inserted when the duplicate check failed")
}

func TestPipeline_InsertFailureContinuesRun(t *testing.T) {
	store := &fakeStore{}
	p := newTestPipeline(store)

	calls := 0
	p.Insert = func(ctx context.Context, rec Record) error {
		calls++
		if calls == 1 {
			return fmt.Errorf("Failed to import '%s': disk full", rec["name"])
		}
		return store.insert(ctx, rec)
	}

	res := p.Run(context.Background(), []RawRow{
		{"name": "a", "kind": "k1"},
		{"name": "b", "kind": "k2"},
	})
	require.Equal(t, 1, res.Imported)
	require.Equal(t, []string{"Failed to import 'a': disk full"}, res.Errors)
	require.True(t, res.Success())
}

func TestPipeline_PrecheckExcludesRow(t *testing.T) {
	store := &fakeStore{}
	p := newTestPipeline(store)
	p.Precheck = func(_ context.Context, rec Record) (string, error) {
		if rec["name"] == "ghost" {
			return "Contractor 'ghost' does not exist in the system", nil
		}
		return "", nil
	}

	res := p.Run(context.Background(), []RawRow{
		{"name": "ghost", "kind": "k"},
		{"name": "real", "kind": "k"},
	})
	require.Equal(t, 1, res.Imported)
	require.Equal(t, []string{"Contractor 'ghost' does not exist in the system"}, res.Errors)
}

func TestPipeline_PanicConvertedToRowError(t *testing.T) {
	store := &fakeStore{}
	p := newTestPipeline(store)
	p.Insert = func(ctx context.Context, rec Record) error {
		if rec["name"] == "boom" {
			panic("nil dereference")
		}
		return store.insert(ctx, rec)
	}

	res := p.Run(context.Background(), []RawRow{
		{"name": "boom", "kind": "k1"},
		{"name": "ok", "kind": "k2"},
	})
	require.Equal(t, 1, res.Imported)
	require.Len(t, res.Errors, 1)
	require.Contains(t, res.Errors[0], "Unexpected error while importing row")
}

func TestPipeline_ProgressPercentages(t *testing.T) {
	store := &fakeStore{}
	p := newTestPipeline(store)

	var seen []int
	p.Progress = func(percent int) { seen = append(seen, percent) }

	rows := []RawRow{
		{"name": "a", "kind": "k1"},
		{"name": "b", "kind": "k2"},
		{"kind": "bad"},
	}
	p.Run(context.Background(), rows)
	require.Equal(t, []int{33, 67, 100}, seen,
		"progress fires after every row, including failed ones")
}

func TestPipeline_NoProgressCallbackMeansNone(t *testing.T) {
	store := &fakeStore{}
	p := newTestPipeline(store)
	// Progress is nil; run must not panic.
	res := p.Run(context.Background(), []RawRow{{"name": "a", "kind": "k"}})
	require.Equal(t, 1, res.Imported)
}

func TestPipeline_ErrorsPreserveFileOrder(t *testing.T) {
	store := &fakeStore{}
	p := newTestPipeline(store)

	res := p.Run(context.Background(), []RawRow{
		{"kind": "k1"},              // missing name
		{"name": "x", "kind": "k2"}, // fine
		{"name": "y"},               // missing kind
	})
	require.Equal(t, []string{"Missing name", "Missing kind"}, res.Errors)
}

func TestPipeline_EmptyFileYieldsNoSuccess(t *testing.T) {
	store := &fakeStore{}
	p := newTestPipeline(store)

	res := p.Run(context.Background(), nil)
	require.Equal(t, 0, res.Imported)
	require.False(t, res.Success())
}
