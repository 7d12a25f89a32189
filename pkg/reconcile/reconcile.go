// Package reconcile runs the end-to-end cross-check: load the three
// road-freight datasets, annotate them with country names, filter to the
// requested year and total categories, and sum the flows between one country
// pair.
package reconcile

import (
	"github.com/pkg/errors"
	"github.com/sourcegraph/conc"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/freightdata/roadcheck/pkg/country"
	"github.com/freightdata/roadcheck/pkg/eurostat"
	"github.com/freightdata/roadcheck/pkg/frame"
)

var (
	// ErrNoMatch means a table that should report the pair exactly once has
	// no matching row.
	ErrNoMatch = errors.New("no row matches the country pair")
	// ErrAmbiguousMatch means a single-row lookup found more than one row.
	ErrAmbiguousMatch = errors.New("multiple rows match the country pair")
)

type Options struct {
	// Dir is the project root; raw files live under Dir/data.
	Dir string
	// Year is the observation period, e.g. "2022".
	Year string
	// From and To are country names as they appear in the corrected
	// reference table, e.g. "Belgium" and "France".
	From string
	To   string
}

// Result carries the three per-dataset contributions in thousand tonnes.
type Result struct {
	From string `json:"from"`
	To   string `json:"to"`
	Year string `json:"year"`

	// Cross sums the cross-trade rows reported by third countries.
	Cross float64 `json:"cross"`
	// Loaded is the flow as reported by the loading country.
	Loaded float64 `json:"loaded"`
	// Unloaded is the flow as reported by the unloading country.
	Unloaded float64 `json:"unloaded"`

	Total float64 `json:"total"`
}

// filterTotals keeps only total-category observations for the given year,
// restricted to real 2-letter country codes in the named columns. Aggregate
// geographies such as EU totals carry longer codes and are dropped.
func filterTotals(f *frame.Frame, year string, codeColumns []string) *frame.Frame {
	return f.Filter(func(r frame.Row) bool {
		if r.Str("tra_type") != "TOTAL" || r.Str("unit") != "THS_T" || r.Str("nst07") != "TOTAL" {
			return false
		}
		if r.Str(eurostat.TimeColumn) != year {
			return false
		}
		for _, c := range codeColumns {
			if len(r.Str(c)) != 2 {
				return false
			}
		}
		return true
	})
}

func matchPair(f *frame.Frame, match map[string]string) *frame.Frame {
	return f.Filter(func(r frame.Row) bool {
		for column, want := range match {
			if r.Str(column) != want {
				return false
			}
		}
		return true
	})
}

// sumPair adds up all matching observations; missing values contribute
// nothing, the same way a column sum treats them.
func sumPair(f *frame.Frame, match map[string]string) (float64, error) {
	total := 0.0
	matched := matchPair(f, match)
	for i := 0; i < matched.Len(); i++ {
		v := matched.Row(i).Get(eurostat.ValueColumn)
		if v.Null {
			continue
		}

		n, err := v.Float64()
		if err != nil {
			return 0, err
		}
		total += n
	}

	return total, nil
}

// onePair expects the pair to be reported exactly once and returns that
// observation. Cardinality violations surface as named errors instead of an
// index panic.
func onePair(f *frame.Frame, match map[string]string) (float64, error) {
	matched := matchPair(f, match)
	switch matched.Len() {
	case 0:
		return 0, ErrNoMatch
	case 1:
	default:
		return 0, errors.Wrapf(ErrAmbiguousMatch, "%d rows", matched.Len())
	}

	v := matched.Row(0).Get(eurostat.ValueColumn)
	if v.Null {
		return 0, errors.New("the matching row has no observation value")
	}

	return v.Float64()
}

type annotation struct {
	code  string
	label string
}

// loadAnnotated reads and reshapes one dataset, then joins country names
// onto the given code columns.
func loadAnnotated(fs afero.Fs, store *country.Store, dir string, name string, annotations []annotation) (*frame.Frame, error) {
	dataset, err := eurostat.DatasetByName(name)
	if err != nil {
		return nil, err
	}

	tidy, err := eurostat.Load(fs, dir, dataset)
	if err != nil {
		return nil, err
	}

	for _, a := range annotations {
		tidy, err = store.Annotate(tidy, a.code, a.label)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to annotate dataset %q on %q", name, a.code)
		}
	}

	return tidy, nil
}

// Run executes the full reconciliation. The three datasets are loaded
// concurrently; everything after that is a sequential pass.
func Run(fs afero.Fs, store *country.Store, logger *zap.SugaredLogger, opts Options) (*Result, error) {
	var (
		loaded, unloaded, cross          *frame.Frame
		loadedErr, unloadedErr, crossErr error
	)

	var wg conc.WaitGroup
	wg.Go(func() {
		loaded, loadedErr = loadAnnotated(fs, store, opts.Dir, "lgtt", []annotation{
			{code: "c_unload", label: "unload_country"},
			{code: "geo", label: "geo_country"},
		})
	})
	wg.Go(func() {
		unloaded, unloadedErr = loadAnnotated(fs, store, opts.Dir, "ugtt", []annotation{
			{code: "c_load", label: "load_country"},
			{code: "geo", label: "geo_country"},
		})
	})
	wg.Go(func() {
		cross, crossErr = loadAnnotated(fs, store, opts.Dir, "cross", []annotation{
			{code: "c_load", label: "load_country"},
			{code: "c_unload", label: "unload_country"},
		})
	})
	wg.Wait()

	if loadedErr != nil {
		return nil, errors.Wrap(loadedErr, "failed to load the loaded-goods dataset")
	}
	if unloadedErr != nil {
		return nil, errors.Wrap(unloadedErr, "failed to load the unloaded-goods dataset")
	}
	if crossErr != nil {
		return nil, errors.Wrap(crossErr, "failed to load the cross-trade dataset")
	}

	loaded = filterTotals(loaded, opts.Year, []string{"c_unload"})
	unloaded = filterTotals(unloaded, opts.Year, []string{"c_load"})
	cross = filterTotals(cross, opts.Year, []string{"c_load", "c_unload"})

	logger.Debugf("filtered rows: loaded=%d unloaded=%d cross=%d", loaded.Len(), unloaded.Len(), cross.Len())

	result := &Result{From: opts.From, To: opts.To, Year: opts.Year}

	var err error
	result.Cross, err = sumPair(cross, map[string]string{"load_country": opts.From, "unload_country": opts.To})
	if err != nil {
		return nil, errors.Wrap(err, "failed to sum the cross-trade flows")
	}

	result.Loaded, err = onePair(loaded, map[string]string{"geo_country": opts.From, "unload_country": opts.To})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to look up the flow reported by %s", opts.From)
	}

	result.Unloaded, err = onePair(unloaded, map[string]string{"load_country": opts.From, "geo_country": opts.To})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to look up the flow reported by %s", opts.To)
	}

	result.Total = result.Cross + result.Loaded + result.Unloaded
	return result, nil
}
