package eurostat

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freightdata/roadcheck/pkg/frame"
)

func TestDatasets(t *testing.T) {
	t.Parallel()

	datasets, err := Datasets()
	require.NoError(t, err)
	require.Len(t, datasets, 3)

	names := make([]string, 0, len(datasets))
	for _, d := range datasets {
		names = append(names, d.Name)
		assert.NotEmpty(t, d.File)
		assert.NotEmpty(t, d.Compound)
		assert.NotEmpty(t, d.Keys)
	}
	assert.Equal(t, []string{"lgtt", "ugtt", "cross"}, names)

	cross, err := DatasetByName("cross")
	require.NoError(t, err)
	assert.Equal(t, []string{"freq", "tra_type", "c_load", "c_unload", "nst07", "unit", "geo"}, cross.Keys)
	assert.Equal(t, `freq,tra_type,c_load,c_unload,nst07,unit,geo\TIME_PERIOD`, cross.Compound)

	_, err = DatasetByName("nope")
	assert.Error(t, err)
}

func TestReshape(t *testing.T) {
	t.Parallel()

	d, err := DatasetByName("lgtt")
	require.NoError(t, err)

	raw := frame.New([]string{d.Compound, "2021", "2022"})
	require.NoError(t, raw.Append(frame.String("A,TOTAL,FR,TOTAL,THS_T,BE"), frame.String("100"), frame.String("110.5")))
	require.NoError(t, raw.Append(frame.String("A,TOTAL,DE,TOTAL,THS_T,BE"), frame.Null(), frame.String("90")))

	tidy, err := Reshape(raw, d)
	require.NoError(t, err)

	assert.Equal(t, 4, tidy.Len())
	assert.Equal(t, []string{"freq", "tra_type", "c_unload", "nst07", "unit", "geo", TimeColumn, ValueColumn}, tidy.Columns())

	matched := tidy.Filter(func(r frame.Row) bool {
		return r.Str("c_unload") == "FR" && r.Str(TimeColumn) == "2022"
	})
	require.Equal(t, 1, matched.Len())

	v, err := matched.Row(0).Get(ValueColumn).Float64()
	require.NoError(t, err)
	assert.InDelta(t, 110.5, v, 1e-9)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	content := "freq,tra_type,c_unload,nst07,unit,geo\\TIME_PERIOD\t2021 \t2022 \n" +
		"A,TOTAL,FR,TOTAL,THS_T,BE\t: \t123.4 b\n"
	require.NoError(t, afero.WriteFile(fs, "project/data/estat_road_go_ia_lgtt.tsv", []byte(content), 0o644))

	d, err := DatasetByName("lgtt")
	require.NoError(t, err)

	tidy, err := Load(fs, "project", d)
	require.NoError(t, err)
	require.Equal(t, 2, tidy.Len())

	filtered := tidy.Filter(func(r frame.Row) bool { return r.Str(TimeColumn) == "2022" })
	require.Equal(t, 1, filtered.Len())

	v, err := filtered.Row(0).Get(ValueColumn).Float64()
	require.NoError(t, err)
	assert.InDelta(t, 123.4, v, 1e-9)

	missing := tidy.Filter(func(r frame.Row) bool { return r.Str(TimeColumn) == "2021" })
	require.Equal(t, 1, missing.Len())
	assert.True(t, missing.Row(0).Get(ValueColumn).Null)
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	d, err := DatasetByName("ugtt")
	require.NoError(t, err)

	_, err = Load(afero.NewMemMapFs(), "project", d)
	assert.Error(t, err)
}
