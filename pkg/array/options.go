package array

import "github.com/cockroachdb/errors"

// Growth selects how a full array picks its next capacity.
type Growth int

const (
	// GrowExact reallocates to exactly the capacity the operation needs,
	// one more slot for a single push.
	GrowExact Growth = iota
	// GrowDoubling reallocates to at least twice the current capacity.
	GrowDoubling
)

func (g Growth) String() string {
	switch g {
	case GrowExact:
		return "exact"
	case GrowDoubling:
		return "doubling"
	default:
		return "unknown"
	}
}

// ParseGrowth is the inverse of Growth.String.
func ParseGrowth(s string) (Growth, error) {
	switch s {
	case "exact", "":
		return GrowExact, nil
	case "doubling":
		return GrowDoubling, nil
	}
	return GrowExact, errors.Newf("unknown growth policy %q", s)
}

// capFor returns the capacity to reallocate to when need slots are required
// and cur are available.
func (g Growth) capFor(cur, need int) int {
	if g == GrowDoubling {
		return max(need, cur*2)
	}
	return need
}

type config struct {
	growth Growth
}

// Option configures an Array.
type Option func(*config)

// WithGrowth sets the growth policy. The default is GrowExact.
func WithGrowth(g Growth) Option {
	return func(c *config) {
		c.growth = g
	}
}

func buildConfig(opts []Option) config {
	var c config
	for _, o := range opts {
		o(&c)
	}
	return c
}
