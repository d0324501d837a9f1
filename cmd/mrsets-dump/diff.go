package main

import (
	"context"
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/urfave/cli/v3"

	"github.com/simonhull/statmeta"
)

func diffCmd() *cli.Command {
	var (
		o            decodeOptions
		contextLines int64
	)

	flags := commonFlags(&o)
	flags = append(flags, &cli.Int64Flag{
		Name:        "context",
		Aliases:     []string{"U"},
		Usage:       "lines of context",
		Value:       3,
		Destination: &contextLines,
	})

	return &cli.Command{
		Name:      "diff",
		Usage:     "Compare the decoded MR sets of two files (exit status 1 when they differ)",
		ArgsUsage: "OLD NEW",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.NArg() != 2 {
				return cli.Exit("error: diff needs exactly two files", 2)
			}
			if err := o.load(c); err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			opts, _, err := o.sessionOptions(c.Root().ErrWriter)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 2)
			}

			paths := c.Args().Slice()
			all, err := statmeta.ReadMRSetsManyWith(ctx, paths, opts)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 2)
			}

			d, err := diffSets(paths[0], paths[1], all[0], all[1], int(contextLines))
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 2)
			}
			if d == "" {
				return nil
			}
			fmt.Fprint(c.Root().Writer, d)
			return cli.Exit("", 1)
		},
	}
}

// diffSets returns a unified diff of the text renderings of a and b, or ""
// when they are identical.
func diffSets(nameA, nameB string, a, b []statmeta.MRSet, lines int) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(renderText(a)),
		B:        difflib.SplitLines(renderText(b)),
		FromFile: nameA,
		ToFile:   nameB,
		Context:  lines,
	})
}
