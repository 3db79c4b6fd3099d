package evaluate

import (
	"io"
	"log/slog"

	"github.com/themarkrogers/ai-s-box/metrics/normalize"
	"github.com/themarkrogers/ai-s-box/metrics/walsh"
)

// Option configures an evaluation.
type Option func(*config)

type config struct {
	algorithm walsh.Algorithm
	parsers   []normalize.Parser
	logger    *slog.Logger
}

func defaultConfig() config {
	return config{
		algorithm: walsh.Fast,
		parsers:   normalize.DefaultParsers(),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithAlgorithm selects the Walsh spectrum algorithm. The default is walsh.Fast.
func WithAlgorithm(alg walsh.Algorithm) Option {
	return func(c *config) {
		c.algorithm = alg
	}
}

// WithParsers replaces the ordered token parser list. The ordinal fallback is
// always applied after the last parser. An empty list keeps the default.
func WithParsers(parsers ...normalize.Parser) Option {
	return func(c *config) {
		if len(parsers) > 0 {
			c.parsers = parsers
		}
	}
}

// WithLogger sets the logger for stage timings and decisions. Evaluations are
// silent by default.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}
