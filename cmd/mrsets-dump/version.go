package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/simonhull/statmeta"
)

func versionCmd() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print version information",
		Action: func(ctx context.Context, c *cli.Command) error {
			info := statmeta.GetVersionInfo()
			w := c.Root().Writer
			fmt.Fprintf(w, "version:    %s\n", info.Version)
			fmt.Fprintf(w, "commit:     %s\n", info.GitCommit)
			fmt.Fprintf(w, "build time: %s\n", info.BuildTime)
			fmt.Fprintf(w, "go:         %s\n", info.GoVersion)
			return nil
		},
	}
}
