package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

type VersionInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
}

func VersionCmd(commit string) *cli.Command {
	return &cli.Command{
		Name: "version",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "the output type, possible values are: plain, json",
			},
		},
		Action: func(c *cli.Context) error {
			if c.String("output") == "json" {
				js, err := json.Marshal(VersionInfo{Version: c.App.Version, Commit: commit})
				if err != nil {
					return errors.Wrap(err, "failed to marshal the output")
				}
				fmt.Println(string(js))
				return nil
			}

			fmt.Printf("Current: %s (%s)\n", c.App.Version, commit)
			return nil
		},
	}
}
