package cmd

import (
	"github.com/fatih/color"
	"github.com/spf13/afero"
)

// CountryCodeFile is the reference workbook, expected under <root>/data.
const CountryCodeFile = "country_code.xlsx"

var (
	fs = afero.NewCacheOnReadFs(afero.NewOsFs(), afero.NewMemMapFs(), 0)

	faint          = color.New(color.Faint).SprintFunc()
	infoPrinter    = color.New(color.Bold)
	errorPrinter   = color.New(color.FgRed, color.Bold)
	successPrinter = color.New(color.FgGreen, color.Bold)
)
