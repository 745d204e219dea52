package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	depth    int
	strict   bool
	lastCall string
}

func withDepth(n int) Option[*testConfig] {
	return New(func(c *testConfig) error {
		if n < 0 {
			return errors.New("depth cannot be negative")
		}
		c.depth = n
		c.lastCall = "depth"

		return nil
	})
}

func withStrict() Option[*testConfig] {
	return NoError(func(c *testConfig) {
		c.strict = true
		c.lastCall = "strict"
	})
}

func TestApply(t *testing.T) {
	t.Run("applies in order", func(t *testing.T) {
		cfg := &testConfig{}

		err := Apply(cfg, withDepth(8), withStrict())
		require.NoError(t, err)
		require.Equal(t, 8, cfg.depth)
		require.True(t, cfg.strict)
		require.Equal(t, "strict", cfg.lastCall)
	})

	t.Run("stops at first error", func(t *testing.T) {
		cfg := &testConfig{}

		err := Apply(cfg, withDepth(-1), withStrict())
		require.Error(t, err)
		require.Contains(t, err.Error(), "depth cannot be negative")
		require.False(t, cfg.strict, "options after a failing one must not run")
	})

	t.Run("no options", func(t *testing.T) {
		cfg := &testConfig{depth: 3}

		require.NoError(t, Apply(cfg))
		require.Equal(t, 3, cfg.depth)
	})

	t.Run("skips nil options", func(t *testing.T) {
		cfg := &testConfig{}

		require.NoError(t, Apply(cfg, nil, withStrict()))
		require.True(t, cfg.strict)
	})
}
