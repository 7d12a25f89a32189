package frame

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/pkg/errors"
)

type ReadOptions struct {
	// Comma is the field separator, tab when unset.
	Comma rune
	// NAValues are cell contents treated as missing observations, compared
	// after trimming surrounding whitespace.
	NAValues []string
}

// ReadTSV reads a separated-values table. The first record is the header;
// header names are trimmed since the source pads them with spaces.
func ReadTSV(r io.Reader, opts ReadOptions) (*Frame, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	if opts.Comma != 0 {
		cr.Comma = opts.Comma
	}
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read the header row")
	}

	na := make(map[string]bool, len(opts.NAValues))
	for _, s := range opts.NAValues {
		na[strings.TrimSpace(s)] = true
	}

	out := New(header)
	for n := 2; ; n++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read line %d", n)
		}

		cells := make([]Value, 0, len(record))
		for _, c := range record {
			if na[strings.TrimSpace(c)] {
				cells = append(cells, Null())
			} else {
				cells = append(cells, String(c))
			}
		}

		if err := out.Append(cells...); err != nil {
			return nil, errors.Wrapf(err, "line %d", n)
		}
	}

	return out, nil
}
