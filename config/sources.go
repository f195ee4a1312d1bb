package config

import (
	"fmt"
	"strconv"

	"github.com/on-the-ground/coinchange/internal/configkeys"
	"go.uber.org/multierr"
)

// Defaults is the root scope every other scope should descend from.
func Defaults() *Scope {
	return NewScope(nil, map[string]any{
		configkeys.ConfigSolverAlgorithm:         "tabulated",
		configkeys.ConfigSolverWorkers:           4,
		configkeys.ConfigSolverMaxRecursionDepth: 10_000,
		configkeys.ConfigSolverDedup:             false,
		configkeys.ConfigSolverMaxEnumeration:    10_000_000,
		configkeys.ConfigSolverMemoSize:          1 << 16,
		configkeys.ConfigSolverMemoShards:        8,
		configkeys.ConfigSolverMemoBackend:       "table",
		configkeys.ConfigLogLevel:                "info",
	})
}

type kind int

const (
	kindString kind = iota
	kindInt
	kindBool
)

// envBindings maps environment variables to keys.
var envBindings = []struct {
	name string
	key  string
	kind kind
}{
	{"COINCHANGE_ALGORITHM", configkeys.ConfigSolverAlgorithm, kindString},
	{"COINCHANGE_WORKERS", configkeys.ConfigSolverWorkers, kindInt},
	{"COINCHANGE_MAX_DEPTH", configkeys.ConfigSolverMaxRecursionDepth, kindInt},
	{"COINCHANGE_DEDUP", configkeys.ConfigSolverDedup, kindBool},
	{"COINCHANGE_MAX_ENUMERATION", configkeys.ConfigSolverMaxEnumeration, kindInt},
	{"COINCHANGE_MEMO_SIZE", configkeys.ConfigSolverMemoSize, kindInt},
	{"COINCHANGE_MEMO_SHARDS", configkeys.ConfigSolverMemoShards, kindInt},
	{"COINCHANGE_MEMO_BACKEND", configkeys.ConfigSolverMemoBackend, kindString},
	{"COINCHANGE_LOG_LEVEL", configkeys.ConfigLogLevel, kindString},
}

// FromEnv binds every set COINCHANGE_* variable on top of parent.
// lookupEnv is usually os.LookupEnv. Every unparsable variable is reported.
func FromEnv(parent *Scope, lookupEnv func(string) (string, bool)) (*Scope, error) {
	values := make(map[string]any)

	var err error
	for _, b := range envBindings {
		raw, ok := lookupEnv(b.name)
		if !ok {
			continue
		}
		switch b.kind {
		case kindString:
			values[b.key] = raw
		case kindInt:
			n, convErr := strconv.Atoi(raw)
			if convErr != nil {
				err = multierr.Append(err, fmt.Errorf("%s: %w", b.name, convErr))
				continue
			}
			values[b.key] = n
		case kindBool:
			v, convErr := strconv.ParseBool(raw)
			if convErr != nil {
				err = multierr.Append(err, fmt.Errorf("%s: %w", b.name, convErr))
				continue
			}
			values[b.key] = v
		}
	}
	if err != nil {
		return nil, err
	}
	return NewScope(parent, values), nil
}
