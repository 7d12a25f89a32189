package frame

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadTSV(t *testing.T) {
	t.Parallel()

	input := "key\t 2021 \t2022 \nA,TOTAL\t10.5\t: \nB,TOTAL\t12 b\t: z\n"

	f, err := ReadTSV(strings.NewReader(input), ReadOptions{NAValues: []string{": ", ": z", ": u"}})
	require.NoError(t, err)

	assert.Equal(t, []string{"key", "2021", "2022"}, f.Columns())
	assert.Equal(t, 2, f.Len())

	cell, err := f.Cell(0, "2021")
	require.NoError(t, err)
	assert.Equal(t, "10.5", cell.Str())

	cell, err = f.Cell(0, "2022")
	require.NoError(t, err)
	assert.True(t, cell.Null)

	cell, err = f.Cell(1, "2022")
	require.NoError(t, err)
	assert.True(t, cell.Null)
}

func TestReadTSVHeaderPaddingInvariance(t *testing.T) {
	t.Parallel()

	narrow, err := ReadTSV(strings.NewReader("key\t2021\nA\t1\n"), ReadOptions{})
	require.NoError(t, err)

	padded, err := ReadTSV(strings.NewReader("key\t      2021   \nA\t1\n"), ReadOptions{})
	require.NoError(t, err)

	assert.Equal(t, narrow.Columns(), padded.Columns())
}

func TestValueFloat64(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		value    Value
		expected float64
		wantErr  bool
	}{
		{name: "plain", value: String("123.4"), expected: 123.4},
		{name: "flagged", value: String("123.4 b"), expected: 123.4},
		{name: "padded", value: String(" 42 "), expected: 42},
		{name: "null", value: Null(), wantErr: true},
		{name: "garbage", value: String("abc"), wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.value.Float64()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.InDelta(t, tt.expected, got, 1e-9)
		})
	}
}

func TestSplitColumn(t *testing.T) {
	t.Parallel()

	f := New([]string{"compound", "2022"})
	require.NoError(t, f.Append(String("A,TOTAL,BE"), String("1")))
	require.NoError(t, f.Append(String("A,TOTAL,FR"), String("2")))

	split, err := f.SplitColumn("compound", ",", []string{"freq", "tra_type", "geo"})
	require.NoError(t, err)

	assert.Equal(t, []string{"freq", "tra_type", "geo", "2022"}, split.Columns())
	assert.Equal(t, "BE", split.Row(0).Str("geo"))
	assert.Equal(t, "FR", split.Row(1).Str("geo"))
	assert.Equal(t, "2", split.Row(1).Str("2022"))
}

func TestSplitColumnPartCountMismatch(t *testing.T) {
	t.Parallel()

	f := New([]string{"compound", "2022"})
	require.NoError(t, f.Append(String("A,TOTAL"), String("1")))

	_, err := f.SplitColumn("compound", ",", []string{"freq", "tra_type", "geo"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 3")
}

func TestMelt(t *testing.T) {
	t.Parallel()

	f := New([]string{"geo", "2021", "2022", "2023"})
	require.NoError(t, f.Append(String("BE"), String("1"), String("2"), Null()))
	require.NoError(t, f.Append(String("FR"), String("3"), String("4"), String("5")))

	melted, err := f.Melt([]string{"geo"}, "TIME_PERIOD", "value")
	require.NoError(t, err)

	// one record per original row per year column
	assert.Equal(t, 2*3, melted.Len())
	assert.Equal(t, []string{"geo", "TIME_PERIOD", "value"}, melted.Columns())

	recovered := map[string]map[string]Value{}
	for i := 0; i < melted.Len(); i++ {
		row := melted.Row(i)
		geo := row.Str("geo")
		if recovered[geo] == nil {
			recovered[geo] = map[string]Value{}
		}
		recovered[geo][row.Str("TIME_PERIOD")] = row.Get("value")
	}

	assert.Equal(t, "2", recovered["BE"]["2022"].Str())
	assert.True(t, recovered["BE"]["2023"].Null)
	assert.Equal(t, "5", recovered["FR"]["2023"].Str())
}

func TestMeltUnknownIDColumn(t *testing.T) {
	t.Parallel()

	f := New([]string{"geo", "2022"})
	_, err := f.Melt([]string{"nope"}, "TIME_PERIOD", "value")
	assert.Error(t, err)
}

func TestFilter(t *testing.T) {
	t.Parallel()

	f := New([]string{"geo", "value"})
	require.NoError(t, f.Append(String("BE"), String("1")))
	require.NoError(t, f.Append(String("FR"), String("2")))
	require.NoError(t, f.Append(String("EU27"), String("3")))

	got := f.Filter(func(r Row) bool { return len(r.Str("geo")) == 2 })
	assert.Equal(t, 2, got.Len())
}

func TestLeftJoin(t *testing.T) {
	t.Parallel()

	left := New([]string{"geo", "value"})
	require.NoError(t, left.Append(String("BE"), String("1")))
	require.NoError(t, left.Append(String("XX"), String("2")))

	right := New([]string{"Country", "Alpha-2 code"})
	require.NoError(t, right.Append(String("Belgium"), String("BE")))
	require.NoError(t, right.Append(String("France"), String("FR")))

	joined, err := left.LeftJoin(right, "geo", "Alpha-2 code")
	require.NoError(t, err)

	assert.Equal(t, []string{"geo", "value", "Country"}, joined.Columns())
	assert.Equal(t, 2, joined.Len())
	assert.Equal(t, "Belgium", joined.Row(0).Str("Country"))

	// unmatched codes are preserved with a null name
	assert.True(t, joined.Row(1).Get("Country").Null)
	assert.Equal(t, "2", joined.Row(1).Str("value"))
}

func TestLeftJoinDuplicateRightRows(t *testing.T) {
	t.Parallel()

	left := New([]string{"geo"})
	require.NoError(t, left.Append(String("BE")))

	right := New([]string{"Country", "Alpha-2 code"})
	require.NoError(t, right.Append(String("Belgium"), String("BE")))
	require.NoError(t, right.Append(String("Belgique"), String("BE")))

	joined, err := left.LeftJoin(right, "geo", "Alpha-2 code")
	require.NoError(t, err)
	assert.Equal(t, 2, joined.Len())
}

func TestRename(t *testing.T) {
	t.Parallel()

	f := New([]string{"Country", "geo"})
	require.NoError(t, f.Append(String("Belgium"), String("BE")))

	require.NoError(t, f.Rename("Country", "geo_country"))
	assert.Equal(t, []string{"geo_country", "geo"}, f.Columns())
	assert.Equal(t, "Belgium", f.Row(0).Str("geo_country"))

	assert.Error(t, f.Rename("missing", "x"))
	assert.Error(t, f.Rename("geo_country", "geo"))
}
