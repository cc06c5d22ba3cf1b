package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Capacity int
	Name     string
	LastCall string
}

func (tc *testConfig) SetCapacity(v int) error {
	if v < 0 {
		return errors.New("capacity cannot be negative")
	}
	tc.Capacity = v
	tc.LastCall = "SetCapacity"

	return nil
}

func (tc *testConfig) SetName(name string) {
	tc.Name = name
	tc.LastCall = "SetName"
}

// validatedConfig rejects a zero capacity only after all options ran.
type validatedConfig struct {
	testConfig
}

var errZeroCapacity = errors.New("capacity must be set")

func (vc *validatedConfig) Validate() error {
	if vc.Capacity == 0 {
		return errZeroCapacity
	}

	return nil
}

func TestOption_New(t *testing.T) {
	config := &testConfig{}

	t.Run("applies the function", func(t *testing.T) {
		opt := New(func(c *testConfig) error { return c.SetCapacity(42) })

		require.NoError(t, opt.apply(config))
		require.Equal(t, 42, config.Capacity)
		require.Equal(t, "SetCapacity", config.LastCall)
	})

	t.Run("propagates errors", func(t *testing.T) {
		opt := New(func(c *testConfig) error { return c.SetCapacity(-1) })

		err := opt.apply(config)
		require.Error(t, err)
		require.Contains(t, err.Error(), "capacity cannot be negative")
	})
}

func TestOption_NoError(t *testing.T) {
	config := &testConfig{}
	opt := NoError(func(c *testConfig) { c.SetName("deflate") })

	require.NoError(t, opt.apply(config))
	require.Equal(t, "deflate", config.Name)
}

func TestApply(t *testing.T) {
	t.Run("applies options in order", func(t *testing.T) {
		config := &testConfig{}
		opts := []Option[*testConfig]{
			New(func(c *testConfig) error { return c.SetCapacity(10) }),
			NoError(func(c *testConfig) { c.SetName("chunked") }),
		}
		err := Apply(config, opts...)

		require.NoError(t, err)
		require.Equal(t, 10, config.Capacity)
		require.Equal(t, "chunked", config.Name)
		require.Equal(t, "SetName", config.LastCall)
	})

	t.Run("stops at first error and reports its position", func(t *testing.T) {
		config := &testConfig{}
		opts := []Option[*testConfig]{
			New(func(c *testConfig) error { return c.SetCapacity(5) }),
			New(func(c *testConfig) error { return c.SetCapacity(-1) }),
			NoError(func(c *testConfig) { c.SetName("unreached") }),
		}
		err := Apply(config, opts...)

		require.Error(t, err)
		require.Contains(t, err.Error(), "option 1")
		require.Equal(t, 5, config.Capacity)
		require.Empty(t, config.Name)
	})

	t.Run("skips nil options", func(t *testing.T) {
		config := &testConfig{}
		opts := []Option[*testConfig]{nil, NoError(func(c *testConfig) { c.SetName("x") })}
		err := Apply(config, opts...)

		require.NoError(t, err)
		require.Equal(t, "x", config.Name)
	})

	t.Run("empty options leave target unchanged", func(t *testing.T) {
		config := &testConfig{}

		require.NoError(t, Apply(config))
		require.Zero(t, config.Capacity)
	})
}

func TestApply_Validator(t *testing.T) {
	t.Run("validation runs after options", func(t *testing.T) {
		config := &validatedConfig{}
		opts := []Option[*validatedConfig]{New(func(c *validatedConfig) error { return c.SetCapacity(8) })}
		err := Apply(config, opts...)

		require.NoError(t, err)
		require.Equal(t, 8, config.Capacity)
	})

	t.Run("validation failure is returned unwrapped", func(t *testing.T) {
		config := &validatedConfig{}
		opts := []Option[*validatedConfig]{NoError(func(c *validatedConfig) { c.SetName("no capacity") })}
		err := Apply(config, opts...)

		require.ErrorIs(t, err, errZeroCapacity)
	})
}
