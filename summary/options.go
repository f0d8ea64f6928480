package summary

import (
	"fmt"

	"github.com/scgpm/interop/internal/options"
)

// GapPolicy decides what happens to cycles without data.
type GapPolicy uint8

const (
	// GapZeroFill emits a row of zeros for a gap cycle.
	GapZeroFill GapPolicy = iota
	// GapOmit drops the row of a gap cycle.
	GapOmit
)

// PolicyFor returns the gap policy matching the decoders' force flag.
func PolicyFor(force bool) GapPolicy {
	if force {
		return GapOmit
	}

	return GapZeroFill
}

func (p GapPolicy) String() string {
	switch p {
	case GapZeroFill:
		return "zero-fill"
	case GapOmit:
		return "omit"
	default:
		return fmt.Sprintf("GapPolicy(%d)", uint8(p))
	}
}

// QualityScale selects the score assigned to each quality bin.
type QualityScale uint8

const (
	// ScaleBinIndex scores bin i as i (1-based). On 7-bin v6 data every
	// score is below Q20, so Q20 and Q30 come out as 0%; see BinIndexOnBinnedData.
	ScaleBinIndex QualityScale = iota
	// ScaleRemapped scores each bin with the binning header's remapped value,
	// falling back to the bin index when the file has no binning table.
	ScaleRemapped
)

func (s QualityScale) String() string {
	switch s {
	case ScaleBinIndex:
		return "bin"
	case ScaleRemapped:
		return "remapped"
	default:
		return fmt.Sprintf("QualityScale(%d)", uint8(s))
	}
}

// ParseQualityScale parses "bin" or "remapped".
func ParseQualityScale(s string) (QualityScale, error) {
	switch s {
	case "bin", "":
		return ScaleBinIndex, nil
	case "remapped":
		return ScaleRemapped, nil
	default:
		return 0, fmt.Errorf("unknown quality scale %q", s)
	}
}

// Config holds the table options.
type Config struct {
	maxCycle int
	gaps     GapPolicy
	scale    QualityScale
}

// Option configures a table.
type Option = options.Option[*Config]

// WithMaxCycle sets the last cycle of the table, typically the value returned
// by metrics.ReconcileMaxCycle. Zero means the decoded file's own maximum.
func WithMaxCycle(n int) Option {
	return options.New("max cycle", func(c *Config) error {
		if n < 0 || n > 65535 {
			return fmt.Errorf("%d out of range", n)
		}
		c.maxCycle = n

		return nil
	})
}

// WithGapPolicy sets how cycles without data are written.
func WithGapPolicy(p GapPolicy) Option {
	return options.New("gap policy", func(c *Config) error {
		if p > GapOmit {
			return fmt.Errorf("invalid policy %d", p)
		}
		c.gaps = p

		return nil
	})
}

// WithQualityScale sets the bin scoring of quality tables.
func WithQualityScale(s QualityScale) Option {
	return options.New("quality scale", func(c *Config) error {
		if s > ScaleRemapped {
			return fmt.Errorf("invalid scale %d", s)
		}
		c.scale = s

		return nil
	})
}

func newConfig(opts []Option) (*Config, error) {
	cfg := &Config{}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) lastCycle(decoded uint16) int {
	if c.maxCycle > 0 {
		return c.maxCycle
	}

	return int(decoded)
}
