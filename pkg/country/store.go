package country

import (
	"sync"

	"github.com/spf13/afero"

	"github.com/freightdata/roadcheck/pkg/frame"
)

// Store holds the corrected reference table for the lifetime of the process.
// The workbook is read once, on first use, and never mutated afterwards.
type Store struct {
	fs   afero.Fs
	path string

	once  sync.Once
	codes []Code
	err   error
}

func NewStore(fs afero.Fs, path string) *Store {
	return &Store{fs: fs, path: path}
}

// NewStoreFromCodes wraps an already-corrected table, used by tests and by
// callers that source the reference data elsewhere.
func NewStoreFromCodes(codes []Code) *Store {
	s := &Store{}
	s.once.Do(func() { s.codes = codes })
	return s
}

func (s *Store) Codes() ([]Code, error) {
	s.once.Do(func() {
		s.codes, s.err = LoadCodes(s.fs, s.path)
	})

	return s.codes, s.err
}

// Annotate left-joins country names onto f: 2-letter codes in the `on`
// column gain a name column called `label`. Codes absent from the reference
// table keep a null name, the row is never dropped.
func (s *Store) Annotate(f *frame.Frame, on, label string) (*frame.Frame, error) {
	codes, err := s.Codes()
	if err != nil {
		return nil, err
	}

	lookup := frame.New([]string{"Country", "Alpha-2 code"})
	for _, c := range codes {
		if err := lookup.Append(frame.String(c.Name), frame.String(c.Alpha2)); err != nil {
			return nil, err
		}
	}

	joined, err := f.LeftJoin(lookup, on, "Alpha-2 code")
	if err != nil {
		return nil, err
	}

	if err := joined.Rename("Country", label); err != nil {
		return nil, err
	}

	return joined, nil
}
