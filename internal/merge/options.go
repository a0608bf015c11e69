package merge

import (
	"io"
	"log/slog"
)

type options struct {
	logger *slog.Logger
}

// Option configures Merge, Run and MergeFiles
type Option func(*options)

// WithLogger sends diagnostics to l instead of discarding them
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
