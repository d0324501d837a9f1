package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/simonhull/statmeta"
	"github.com/simonhull/statmeta/internal/logger"
)

// decodeOptions holds the flag values shared by decode and diff.
type decodeOptions struct {
	configFile string
	format     string
	backend    string
	lenient    bool
	strict     bool
	chunkSize  int64
	logLevel   string
	logFormat  string
	metrics    bool
}

func commonFlags(o *decodeOptions) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Usage:       "path to config file",
			Value:       configPath(),
			Sources:     cli.EnvVars("STATMETA_CONFIG"),
			Destination: &o.configFile,
		},
		&cli.StringFlag{
			Name:        "backend",
			Aliases:     []string{"b"},
			Usage:       "byte source (" + strings.Join(statmeta.Backends(), ", ") + ")",
			Value:       statmeta.BackendFile,
			Sources:     cli.EnvVars("STATMETA_BACKEND"),
			Destination: &o.backend,
		},
		&cli.BoolFlag{
			Name:        "lenient",
			Usage:       "report malformed blobs as warnings instead of failing",
			Sources:     cli.EnvVars("STATMETA_LENIENT"),
			Destination: &o.lenient,
		},
		&cli.BoolFlag{
			Name:        "strict",
			Usage:       "treat warnings as errors",
			Destination: &o.strict,
		},
		&cli.Int64Flag{
			Name:        "chunk-size",
			Usage:       "bytes requested per read",
			Value:       statmeta.DefaultChunkSize,
			Destination: &o.chunkSize,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "warn",
			Sources:     cli.EnvVars("STATMETA_LOG_LEVEL"),
			Destination: &o.logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (text, json)",
			Value:       "text",
			Destination: &o.logFormat,
		},
		&cli.BoolFlag{
			Name:        "metrics",
			Usage:       "print Prometheus metrics to stderr when done",
			Destination: &o.metrics,
		},
	}
}

// load applies the config file to o.
func (o *decodeOptions) load(c *cli.Command) error {
	cfg, err := LoadConfig(o.configFile)
	if err != nil {
		return err
	}
	cfg.apply(c, o)
	return nil
}

func (o *decodeOptions) logger(w io.Writer) (logger.Logger, error) {
	level, err := logger.ParseLevel(o.logLevel)
	if err != nil {
		return nil, err
	}
	switch o.logFormat {
	case "text":
		return logger.Text(w, level), nil
	case "json":
		return logger.JSON(w, level), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", o.logFormat)
	}
}

// sessionOptions translates the flags into library options.
// The returned collector is nil unless --metrics was given.
func (o *decodeOptions) sessionOptions(errw io.Writer) ([]statmeta.Option, *statmeta.Collector, error) {
	log, err := o.logger(errw)
	if err != nil {
		return nil, nil, err
	}

	opts := []statmeta.Option{
		statmeta.WithBackend(o.backend),
		statmeta.WithChunkSize(int(o.chunkSize)),
		statmeta.WithLogger(log),
	}
	if o.lenient {
		opts = append(opts, statmeta.WithLenientMR())
	}
	if o.strict {
		opts = append(opts, statmeta.WithStrictParsing())
	}

	var collector *statmeta.Collector
	if o.metrics {
		collector = statmeta.NewCollector(nil)
		opts = append(opts, statmeta.WithMetrics(collector))
	}
	return opts, collector, nil
}
