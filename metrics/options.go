package metrics

import (
	"errors"
	"log/slog"

	"github.com/scgpm/interop/internal/options"
)

// DecodeConfig holds the settings shared by all decoders.
type DecodeConfig struct {
	force        bool
	logger       *slog.Logger
	swapGTCalled bool
}

// NewDecodeConfig applies opts over the defaults: strict lane checks, a
// discarding logger and per-channel called intensity averages.
func NewDecodeConfig(opts ...DecodeOption) (*DecodeConfig, error) {
	cfg := &DecodeConfig{logger: slog.New(slog.DiscardHandler)}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Force reports whether recoverable errors are skipped.
func (c *DecodeConfig) Force() bool { return c.force }

// Logger returns the configured logger.
func (c *DecodeConfig) Logger() *slog.Logger { return c.logger }

// DecodeOption configures a decoder.
type DecodeOption = options.Option[*DecodeConfig]

// WithForce skips records with an invalid lane instead of failing.
func WithForce(force bool) DecodeOption {
	return options.NoError(func(c *DecodeConfig) {
		c.force = force
	})
}

// WithLogger sets the logger used for skipped records and stream details.
func WithLogger(logger *slog.Logger) DecodeOption {
	return options.New("logger", func(c *DecodeConfig) error {
		if logger == nil {
			return errors.New("nil logger")
		}
		c.logger = logger

		return nil
	})
}

// WithSwappedCalledIntensity makes corrected intensity v2 and v3 averages add
// the T called intensity into G and the G value into T, matching reports
// produced by the legacy pipeline. Raw per-tile values are never swapped.
func WithSwappedCalledIntensity(swap bool) DecodeOption {
	return options.NoError(func(c *DecodeConfig) {
		c.swapGTCalled = swap
	})
}
