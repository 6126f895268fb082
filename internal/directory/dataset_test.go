package directory

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcpao/court-directory/internal/repository"
)

type stubSource struct {
	tbl     repository.Table
	err     error
	errs    []error // consumed one per query before err
	queries int
	clears  int
}

func (s *stubSource) QueryTable(ctx context.Context, query string) (repository.Table, error) {
	s.queries++
	if err := ctx.Err(); err != nil {
		return repository.Table{}, err
	}
	if len(s.errs) > 0 {
		err := s.errs[0]
		s.errs = s.errs[1:]
		if err != nil {
			return repository.Table{}, err
		}
	}
	if s.err != nil {
		return repository.Table{}, s.err
	}
	return s.tbl, nil
}

func (s *stubSource) ClearCache(context.Context) error {
	s.clears++
	return nil
}

func employeeTable() repository.Table {
	return repository.Table{
		Columns: []string{"First Name", "Last Name", "Position", "Assigned Unit"},
		Rows: []map[string]any{
			{"First Name": "Mary", "Last Name": "Smithson", "Position": "APA", "Assigned Unit": "{GCU,SVU}"},
			{"First Name": "Ivan", "Last Name": "Ivanov", "Position": "I", "Assigned Unit": "{GCU}"},
			{"First Name": "Bea", "Last Name": "Adams", "Position": "CTA", "Assigned Unit": nil},
		},
	}
}

func TestDatasetLoadsOnce(t *testing.T) {
	src := &stubSource{tbl: employeeTable()}
	ds := NewDataset(src, nil)
	ctx := context.Background()

	rows, err := ds.Load(ctx)
	require.NoError(t, err)
	_, _ = ds.Load(ctx)

	assert.Equal(t, 1, src.queries)
	require.Len(t, rows, 2)
	assert.Equal(t, "Adams", rows[0].LastName)
	assert.Equal(t, []string{}, rows[0].AssignedUnit)
	assert.Equal(t, []string{"GCU", "SVU"}, rows[1].AssignedUnit)
}

func TestDatasetKeepsFailureUntilRefresh(t *testing.T) {
	boom := errors.New("db down")
	src := &stubSource{err: boom}
	ds := NewDataset(src, nil)
	ctx := context.Background()

	rows, err := ds.Load(ctx)
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, rows)

	_, err = ds.Load(ctx)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, src.queries)

	src.err = nil
	src.tbl = employeeTable()
	require.NoError(t, ds.Refresh(ctx))
	assert.Equal(t, 1, src.clears)

	rows, err = ds.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, 2, src.queries)
}

func TestDatasetLoadOutlivesCancelledRequest(t *testing.T) {
	src := &stubSource{tbl: employeeTable()}
	ds := NewDataset(src, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rows, err := ds.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	rows, err = ds.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, 1, src.queries)
}

func TestDatasetDoesNotKeepTimeouts(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "deadline", err: context.DeadlineExceeded},
		{name: "wrapped cancel", err: fmt.Errorf("query table: %w", context.Canceled)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &stubSource{tbl: employeeTable(), errs: []error{tt.err}}
			ds := NewDataset(src, nil)

			rows, err := ds.Load(context.Background())
			assert.ErrorIs(t, err, tt.err)
			assert.Empty(t, rows)

			rows, err = ds.Load(context.Background())
			require.NoError(t, err)
			assert.Len(t, rows, 2)
			assert.Equal(t, 2, src.queries)
		})
	}
}
