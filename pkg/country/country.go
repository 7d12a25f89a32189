// Package country maps 2-letter country codes to names using the reference
// spreadsheet, with the fixed corrections the raw datasets require.
package country

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/xuri/excelize/v2"
)

// Code is one row of the reference table.
type Code struct {
	Name    string
	Alpha2  string
	Alpha3  string
	Numeric int
}

// nameOverrides fix names the reference source gets wrong or spells
// differently from the statistics articles, keyed by 2-letter code.
var nameOverrides = map[string]string{
	"US": "United States",
	"GB": "United Kingdom",
	"NL": "Netherlands",
	"MD": "Moldova",
}

// codeOverrides move two countries onto the codes the datasets actually use.
// Applied after nameOverrides so the renamed United Kingdom row is the one
// that gets recoded.
var codeOverrides = map[string]string{
	"Greece":         "EL",
	"United Kingdom": "UK",
}

func applyOverrides(codes []Code) []Code {
	for i := range codes {
		if name, ok := nameOverrides[codes[i].Alpha2]; ok {
			codes[i].Name = name
		}
	}

	for i := range codes {
		if code, ok := codeOverrides[codes[i].Name]; ok {
			codes[i].Alpha2 = code
		}
	}

	return codes
}

// kosovo is absent from the reference source but present in the datasets.
func kosovo() Code {
	return Code{Name: "Kosovo", Alpha2: "XK", Alpha3: "XKO", Numeric: 9999}
}

var headerColumns = []string{"Country", "Alpha-2 code", "Alpha-3 code", "Numeric"}

// LoadCodes reads the reference workbook, applies the corrections and
// appends the Kosovo row.
func LoadCodes(fs afero.Fs, path string) ([]Code, error) {
	file, err := fs.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", path)
	}
	defer file.Close()

	workbook, err := excelize.OpenReader(file)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read the workbook %s", path)
	}
	defer workbook.Close()

	sheet := workbook.GetSheetName(0)
	if sheet == "" {
		return nil, errors.Errorf("no sheets found in %s", path)
	}

	rows, err := workbook.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read rows from %s", path)
	}
	if len(rows) == 0 {
		return nil, errors.Errorf("workbook %s is empty", path)
	}

	index := map[string]int{}
	for i, name := range rows[0] {
		index[strings.TrimSpace(name)] = i
	}
	for _, required := range headerColumns {
		if _, ok := index[required]; !ok {
			return nil, errors.Errorf("workbook %s is missing the %q column", path, required)
		}
	}

	cell := func(row []string, column string) string {
		i := index[column]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	codes := make([]Code, 0, len(rows)-1)
	for n, row := range rows[1:] {
		numeric := 0
		if raw := cell(row, "Numeric"); raw != "" {
			numeric, err = strconv.Atoi(raw)
			if err != nil {
				return nil, errors.Wrapf(err, "row %d: numeric code %q", n+2, raw)
			}
		}

		codes = append(codes, Code{
			Name:    cell(row, "Country"),
			Alpha2:  cell(row, "Alpha-2 code"),
			Alpha3:  cell(row, "Alpha-3 code"),
			Numeric: numeric,
		})
	}

	return append(applyOverrides(codes), kosovo()), nil
}
