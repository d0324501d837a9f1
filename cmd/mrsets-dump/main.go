// Command mrsets-dump decodes the multiple response set descriptors of SPSS
// system files and prints them as text, JSON, YAML or a debug dump.
//
// Usage:
//
//	mrsets-dump decode [--format json] [--backend mmap] FILE...
//	mrsets-dump diff OLD NEW
//	mrsets-dump version
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "mrsets-dump",
		Usage: "Decode SPSS multiple response set descriptors",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
		Commands: []*cli.Command{
			decodeCmd(),
			diffCmd(),
			versionCmd(),
		},
	}
}

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
