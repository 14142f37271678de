package services

import (
	"context"
	"errors"
	"testing"

	"github.com/alimgiray/prpoints/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rangeWrite struct {
	a1Range string
	values  []interface{}
}

// fakeRangeWriter records writes and fails on the failAt-th call (1-based) when set
type fakeRangeWriter struct {
	writes []rangeWrite
	failAt int
}

func (w *fakeRangeWriter) UpdateRange(ctx context.Context, a1Range string, values []interface{}) error {
	if w.failAt > 0 && len(w.writes)+1 == w.failAt {
		return errors.New("quota exceeded")
	}
	w.writes = append(w.writes, rangeWrite{a1Range: a1Range, values: values})
	return nil
}

type mapLookup map[string]models.ContributorDetail

func (m mapLookup) Lookup(identity string) models.ContributorDetail {
	return m[identity]
}

func TestExportWritesOneRowPerIdentity(t *testing.T) {
	agg := models.NewAggregatedPoints()
	agg.Add("alice", 3)
	agg.Add("bob", 10)
	agg.Add("alice", 7)

	lookup := mapLookup{
		"alice": {FullName: "Alice Smith", Email: "alice@example.com"},
	}
	writer := &fakeRangeWriter{}

	written, err := NewExportService("https://github.com/").Export(context.Background(), writer, agg, lookup)
	require.NoError(t, err)
	require.Len(t, written, 2)

	assert.Equal(t, []rangeWrite{
		{a1Range: "A2:D2", values: []interface{}{"Alice Smith", "alice@example.com", "https://github.com/alice", 10}},
		{a1Range: "A3:D3", values: []interface{}{"", "", "https://github.com/bob", 10}},
	}, writer.writes)

	assert.Equal(t, 2, written[0].RowNumber)
	assert.Equal(t, "bob", written[1].Identity)
}

func TestExportStopsAtFirstFailedWrite(t *testing.T) {
	agg := models.NewAggregatedPoints()
	for _, identity := range []string{"a", "b", "c", "d"} {
		agg.Add(identity, 1)
	}
	writer := &fakeRangeWriter{failAt: 3}

	written, err := NewExportService("https://github.com/").Export(context.Background(), writer, agg, mapLookup{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 4")

	// rows 2 and 3 stay written, nothing after the failure is attempted
	assert.Len(t, written, 2)
	require.Len(t, writer.writes, 2)
	assert.Equal(t, "A3:D3", writer.writes[1].a1Range)
}

func TestExportEmptyAggregation(t *testing.T) {
	writer := &fakeRangeWriter{}

	written, err := NewExportService("https://github.com/").Export(context.Background(), writer, models.NewAggregatedPoints(), mapLookup{})
	require.NoError(t, err)
	assert.Empty(t, written)
	assert.Empty(t, writer.writes)
}

func TestBuildRowsEmptyIdentity(t *testing.T) {
	agg := models.NewAggregatedPoints()
	agg.Add("", 5)

	rows := NewExportService("https://github.com/").BuildRows(agg, mapLookup{})
	require.Len(t, rows, 1)
	assert.Equal(t, models.OutputRow{ProfileLink: "https://github.com/", TotalPoints: 5}, rows[0].Row)
}
