package config_test

import (
	"strconv"
	"testing"

	"github.com/on-the-ground/coinchange/config"
	"github.com/on-the-ground/coinchange/internal/configkeys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestScope_BasicLookup(t *testing.T) {
	s := config.NewScope(nil, map[string]any{"foo": 123})

	v, err := s.Lookup("foo")
	require.NoError(t, err)
	assert.Equal(t, 123, v)
}

func TestScope_KeyNotFound(t *testing.T) {
	s := config.NewScope(nil, nil)

	_, err := s.Lookup("bar")
	assert.ErrorIs(t, err, config.ErrKeyNotFound)
	assert.ErrorContains(t, err, "bar")
}

func TestScope_DelegatesToUpperScope(t *testing.T) {
	upper := config.NewScope(nil, map[string]any{"foo": 1, "bar": 2})
	lower := config.NewScope(upper, map[string]any{"foo": 10})

	foo, err := config.Get[int](lower, "foo")
	require.NoError(t, err)
	assert.Equal(t, 10, foo)

	bar, err := config.Get[int](lower, "bar")
	require.NoError(t, err)
	assert.Equal(t, 2, bar)

	_, err = lower.Lookup("baz")
	assert.ErrorIs(t, err, config.ErrKeyNotFound)
}

func TestGet_WrongType(t *testing.T) {
	s := config.NewScope(nil, map[string]any{"foo": "x"})

	_, err := config.Get[int](s, "foo")
	assert.ErrorIs(t, err, config.ErrWrongType)
	assert.Panics(t, func() { config.MustGet[int](s, "foo") })
}

func TestDefaults_BindEveryKey(t *testing.T) {
	d := config.Defaults()

	assert.Equal(t, "tabulated", config.MustGet[string](d, configkeys.ConfigSolverAlgorithm))
	assert.Equal(t, 4, config.MustGet[int](d, configkeys.ConfigSolverWorkers))
	assert.Equal(t, 10_000, config.MustGet[int](d, configkeys.ConfigSolverMaxRecursionDepth))
	assert.False(t, config.MustGet[bool](d, configkeys.ConfigSolverDedup))
	assert.Equal(t, 1<<16, config.MustGet[int](d, configkeys.ConfigSolverMemoSize))
	assert.Equal(t, 8, config.MustGet[int](d, configkeys.ConfigSolverMemoShards))
	assert.Equal(t, "table", config.MustGet[string](d, configkeys.ConfigSolverMemoBackend))
	assert.Equal(t, 10_000_000, config.MustGet[int](d, configkeys.ConfigSolverMaxEnumeration))
	assert.Equal(t, "info", config.MustGet[string](d, configkeys.ConfigLogLevel))
}

func envFrom(m map[string]string) func(string) (string, bool) {
	return func(name string) (string, bool) {
		v, ok := m[name]
		return v, ok
	}
}

func TestFromEnv_OverridesDefaults(t *testing.T) {
	s, err := config.FromEnv(config.Defaults(), envFrom(map[string]string{
		"COINCHANGE_ALGORITHM": "rolling",
		"COINCHANGE_WORKERS":   "12",
		"COINCHANGE_DEDUP":     "true",

		"COINCHANGE_MEMO_BACKEND":    "ristretto",
		"COINCHANGE_MAX_ENUMERATION": "500",
	}))
	require.NoError(t, err)

	assert.Equal(t, "rolling", config.MustGet[string](s, configkeys.ConfigSolverAlgorithm))
	assert.Equal(t, 12, config.MustGet[int](s, configkeys.ConfigSolverWorkers))
	assert.True(t, config.MustGet[bool](s, configkeys.ConfigSolverDedup))
	assert.Equal(t, "ristretto", config.MustGet[string](s, configkeys.ConfigSolverMemoBackend))
	assert.Equal(t, 500, config.MustGet[int](s, configkeys.ConfigSolverMaxEnumeration))
	// untouched keys come from the parent
	assert.Equal(t, "info", config.MustGet[string](s, configkeys.ConfigLogLevel))
}

func TestFromEnv_ReportsEveryBadValue(t *testing.T) {
	_, err := config.FromEnv(config.Defaults(), envFrom(map[string]string{
		"COINCHANGE_WORKERS": "many",
		"COINCHANGE_DEDUP":   "sometimes",
	}))
	require.Error(t, err)

	errs := multierr.Errors(err)
	require.Len(t, errs, 2)
	assert.ErrorIs(t, errs[0], strconv.ErrSyntax)
	assert.Contains(t, errs[0].Error(), "COINCHANGE_WORKERS")
	assert.Contains(t, errs[1].Error(), "COINCHANGE_DEDUP")
}
