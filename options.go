package statmeta

import (
	"context"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/simonhull/statmeta/internal/logger"
	"github.com/simonhull/statmeta/internal/metrics"
)

// DefaultChunkSize is the number of bytes ReadAll requests per Read.
const DefaultChunkSize = 64 * 1024

// Logger is the structured logger sessions write to.
type Logger = logger.Logger

// ContextWithLogger returns a copy of ctx carrying l. ReadMRSetsContext and
// ReadMRSetsMany log to it unless WithLogger is given.
func ContextWithLogger(ctx context.Context, l Logger) context.Context {
	return logger.WithContext(ctx, l)
}

// Collector records session and decoder metrics.
type Collector = metrics.Collector

// NewLogger wraps an slog.Handler as a Logger.
func NewLogger(h slog.Handler) Logger {
	return logger.New(h)
}

// NewCollector creates a Collector registered with registry. A nil registry
// gets a fresh one.
func NewCollector(registry *prometheus.Registry) *Collector {
	return metrics.NewCollector(registry)
}

// Option configures a Session.
//
// Options use the functional options pattern for clean, extensible APIs.
//
// Example:
//
//	sets, err := statmeta.ReadMRSets("survey.mrsets",
//	    statmeta.WithBackend(statmeta.BackendMmap),
//	    statmeta.WithLenientMR(),
//	)
type Option func(*sessionOptions)

// sessionOptions holds configuration for a session.
type sessionOptions struct {
	strictParsing bool            // Fail on any warning
	lenientMR     bool            // Drop malformed MR blobs with a warning
	chunkSize     int             // Bytes per Read in ReadAll
	backend       string          // Registry name used by ReadMRSets
	progress      ProgressHandler // Called after every Read in ReadAll
	logger        Logger
	metrics       *Collector
}

// defaultOptions returns the default configuration.
func defaultOptions() *sessionOptions {
	return &sessionOptions{
		chunkSize: DefaultChunkSize,
		backend:   BackendFile,
		logger:    logger.Discard(),
	}
}

func applyOptions(opts []Option) *sessionOptions {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// WithStrictParsing treats any warning as a fatal error.
//
// Combined with WithLenientMR, a malformed MR blob is recorded as a warning
// and then reported as an error.
func WithStrictParsing() Option {
	return func(o *sessionOptions) {
		o.strictParsing = true
	}
}

// WithLenientMR keeps a session usable when its MR blob is malformed.
//
// By default a decode failure is returned as an error. With this option the
// session's MRSets are left empty and a Warning with stage "mrsets" is
// recorded instead.
func WithLenientMR() Option {
	return func(o *sessionOptions) {
		o.lenientMR = true
	}
}

// WithProgressHandler installs a handler called after every Read performed
// by ReadAll. Returning true aborts the read with ErrUserAbort.
//
// The handler runs on the caller's goroutine.
func WithProgressHandler(h ProgressHandler) Option {
	return func(o *sessionOptions) {
		o.progress = h
	}
}

// WithChunkSize sets the number of bytes ReadAll requests per Read.
// Non-positive sizes keep the default.
func WithChunkSize(n int) Option {
	return func(o *sessionOptions) {
		if n > 0 {
			o.chunkSize = n
		}
	}
}

// WithBackend selects the registered backend ReadMRSets opens files with.
// See Backends for the available names.
func WithBackend(name string) Option {
	return func(o *sessionOptions) {
		o.backend = name
	}
}

// WithLogger sets the logger sessions write to. Sessions are silent by
// default.
func WithLogger(l Logger) Option {
	return func(o *sessionOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics records session metrics into c.
func WithMetrics(c *Collector) Option {
	return func(o *sessionOptions) {
		o.metrics = c
	}
}
