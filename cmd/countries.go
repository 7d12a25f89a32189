package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/urfave/cli/v2"

	"github.com/freightdata/roadcheck/pkg/country"
)

func Countries() *cli.Command {
	return &cli.Command{
		Name:      "countries",
		Usage:     "print the corrected country-code reference table",
		ArgsUsage: "[path to the project root]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Value:   "plain",
				Usage:   "the output type, possible values are: plain, json",
			},
		},
		Action: func(c *cli.Context) error {
			inputPath := c.Args().Get(0)
			if inputPath == "" {
				inputPath = "."
			}
			output := c.String("output")

			store := country.NewStore(fs, filepath.Join(inputPath, "data", CountryCodeFile))
			codes, err := store.Codes()
			if err != nil {
				printError(err, output, "Failed to load the country codes")
				return cli.Exit("", 1)
			}

			if output == "json" {
				js, err := json.Marshal(codes)
				if err != nil {
					return errors.Wrap(err, "failed to marshal the output")
				}
				fmt.Println(string(js))
				return nil
			}

			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.AppendHeader(table.Row{"country", "alpha-2", "alpha-3", "numeric"})
			t.AppendRows(lo.Map(codes, func(c country.Code, _ int) table.Row {
				return table.Row{c.Name, c.Alpha2, c.Alpha3, strconv.Itoa(c.Numeric)}
			}))
			t.SetStyle(table.StyleLight)
			t.Render()

			successPrinter.Printf("%d countries\n", len(codes))
			return nil
		},
	}
}
