package cmd

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v2"

	"github.com/freightdata/roadcheck/pkg/eurostat"
	"github.com/freightdata/roadcheck/pkg/frame"
)

func Reshape(isDebug *bool) *cli.Command {
	return &cli.Command{
		Name:      "reshape",
		Usage:     "reshape one raw dataset into tidy form and print it",
		ArgsUsage: "<dataset: lgtt|ugtt|cross> [path to the project root]",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "limit",
				Value: 20,
				Usage: "number of rows to print, 0 prints everything",
			},
		},
		Action: func(c *cli.Context) error {
			name := c.Args().Get(0)
			if name == "" {
				errorPrinter.Println("Please give the name of the dataset to reshape.")
				return cli.Exit("", 1)
			}

			inputPath := c.Args().Get(1)
			if inputPath == "" {
				inputPath = "."
			}

			logger := makeLogger(*isDebug)

			dataset, err := eurostat.DatasetByName(name)
			if err != nil {
				printError(err, "plain", "Unknown dataset")
				return cli.Exit("", 1)
			}

			tidy, err := eurostat.Load(fs, inputPath, dataset)
			if err != nil {
				printError(err, "plain", "Failed to load the dataset")
				return cli.Exit("", 1)
			}

			logger.Debugf("dataset %s reshaped into %d tidy rows", dataset.Name, tidy.Len())

			limit := c.Int("limit")
			printFrame(tidy, limit)

			if limit > 0 && tidy.Len() > limit {
				fmt.Println(faint(fmt.Sprintf("... and %d more rows", tidy.Len()-limit)))
			}

			return nil
		},
	}
}

func frameRows(f *frame.Frame, limit int) []table.Row {
	count := f.Len()
	if limit > 0 && limit < count {
		count = limit
	}

	columns := f.Columns()
	rows := make([]table.Row, 0, count)
	for i := 0; i < count; i++ {
		row := make(table.Row, 0, len(columns))
		for _, col := range columns {
			cell := f.Row(i).Get(col)
			if cell.Null {
				row = append(row, "")
			} else {
				row = append(row, cell.Str())
			}
		}
		rows = append(rows, row)
	}

	return rows
}

func printFrame(f *frame.Frame, limit int) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)

	columns := f.Columns()
	header := make(table.Row, len(columns))
	for i, col := range columns {
		header[i] = col
	}
	t.AppendHeader(header)
	t.AppendRows(frameRows(f, limit))

	t.SetStyle(table.StyleLight)
	t.Render()
}
