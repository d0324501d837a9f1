package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/simonhull/statmeta"
)

func decodeCmd() *cli.Command {
	var o decodeOptions

	flags := commonFlags(&o)
	flags = append(flags, &cli.StringFlag{
		Name:        "format",
		Aliases:     []string{"f"},
		Usage:       "output format (text, json, yaml, spew)",
		Value:       "text",
		Sources:     cli.EnvVars("STATMETA_FORMAT"),
		Destination: &o.format,
	})

	return &cli.Command{
		Name:      "decode",
		Usage:     "Decode the MR set descriptors stored in one or more files",
		ArgsUsage: "FILE...",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.NArg() == 0 {
				return cli.Exit("error: at least one FILE is required", 2)
			}
			if err := o.load(c); err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			if !validFormat(o.format) {
				return cli.Exit(fmt.Sprintf("error: unknown format %q", o.format), 2)
			}

			out := c.Root().Writer
			errw := c.Root().ErrWriter

			opts, collector, err := o.sessionOptions(errw)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 2)
			}

			paths := c.Args().Slice()
			all, err := statmeta.ReadMRSetsManyWith(ctx, paths, opts)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			for i, sets := range all {
				if len(paths) > 1 {
					if i > 0 {
						fmt.Fprintln(out)
					}
					fmt.Fprintf(out, "==> %s <==\n", paths[i])
				}
				if err := render(out, o.format, sets); err != nil {
					return cli.Exit(fmt.Sprintf("error: %v", err), 1)
				}
			}

			if collector != nil {
				if err := collector.WriteText(errw); err != nil {
					return cli.Exit(fmt.Sprintf("error: %v", err), 1)
				}
			}
			return nil
		},
	}
}
