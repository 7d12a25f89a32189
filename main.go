package main

import (
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/freightdata/roadcheck/cmd"
)

var (
	version = "dev"
	commit  = ""
)

func main() {
	isDebug := false
	color.NoColor = false

	app := &cli.App{
		Name:     "roadcheck",
		Version:  version,
		Usage:    "cross-check intra-EU road-freight tonnage statistics against published figures",
		Compiled: time.Now(),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "debug",
				Value:       false,
				Usage:       "show debug information",
				Destination: &isDebug,
			},
		},
		Commands: []*cli.Command{
			cmd.Check(&isDebug),
			cmd.Reshape(&isDebug),
			cmd.Countries(),
			cmd.VersionCmd(commit),
		},
	}

	_ = app.Run(os.Args)
}
