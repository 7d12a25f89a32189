package frame

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var ErrNullValue = errors.New("value is null")

// Value is a single cell. Null marks a missing observation.
type Value struct {
	Raw  string
	Null bool
}

func String(s string) Value { return Value{Raw: s} }

func Null() Value { return Value{Null: true} }

// Str returns the trimmed cell content, empty for nulls.
func (v Value) Str() string {
	if v.Null {
		return ""
	}
	return strings.TrimSpace(v.Raw)
}

// Float64 parses the numeric part of the cell. Eurostat observations may
// carry a trailing flag letter ("123.4 b"); the flag is dropped.
func (v Value) Float64() (float64, error) {
	if v.Null {
		return 0, ErrNullValue
	}

	s := strings.TrimSpace(v.Raw)
	if i := strings.IndexByte(s, ' '); i >= 0 {
		s = s[:i]
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "cell %q is not numeric", v.Raw)
	}

	return f, nil
}
