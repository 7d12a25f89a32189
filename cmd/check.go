package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/freightdata/roadcheck/pkg/country"
	"github.com/freightdata/roadcheck/pkg/reconcile"
)

func Check(isDebug *bool) *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "reconcile the road-freight flows between a country pair and print the combined tonnage",
		ArgsUsage: "[path to the project root]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "from",
				Value: "Belgium",
				Usage: "name of the loading country",
			},
			&cli.StringFlag{
				Name:  "to",
				Value: "France",
				Usage: "name of the unloading country",
			},
			&cli.StringFlag{
				Name:  "year",
				Value: "2022",
				Usage: "observation year",
			},
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

			logger := makeLogger(*isDebug)
			store := country.NewStore(fs, filepath.Join(inputPath, "data", CountryCodeFile))

			result, err := reconcile.Run(fs, store, logger, reconcile.Options{
				Dir:  inputPath,
				Year: c.String("year"),
				From: c.String("from"),
				To:   c.String("to"),
			})
			if err != nil {
				printError(err, output, "Failed to reconcile the datasets")
				return cli.Exit("", 1)
			}

			if output == "json" {
				js, err := json.Marshal(result)
				if err != nil {
					return errors.Wrap(err, "failed to marshal the output")
				}
				fmt.Println(string(js))
				return nil
			}

			infoPrinter.Printf("%s -> %s, %s, thousand tonnes\n", result.From, result.To, result.Year)
			printResultTable(result)
			fmt.Println(faint("totals are computed from the raw categories as-is; published article figures may aggregate differently"))
			fmt.Println(result.Total)

			return nil
		},
	}
}

func resultRows(result *reconcile.Result) []table.Row {
	return []table.Row{
		{"cross-trade", "third countries", fmt.Sprintf("%.1f", result.Cross)},
		{"goods loaded", result.From, fmt.Sprintf("%.1f", result.Loaded)},
		{"goods unloaded", result.To, fmt.Sprintf("%.1f", result.Unloaded)},
	}
}

func printResultTable(result *reconcile.Result) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"source", "reporter", "value"})
	t.AppendRows(resultRows(result))
	t.AppendFooter(table.Row{"total", "", fmt.Sprintf("%.1f", result.Total)})
	t.SetStyle(table.StyleLight)
	t.Render()
}
