// Package config resolves settings through a chain of scopes.
//
// A Scope holds plain key/value bindings. Lookups that miss locally are
// delegated to the parent scope, so a shell can layer flags over
// environment over defaults:
//
//	defaults := config.Defaults()
//	env, err := config.FromEnv(defaults, os.LookupEnv)
//	flags := config.NewScope(env, map[string]any{configkeys.ConfigSolverWorkers: 8})
//	workers, err := config.Get[int](flags, configkeys.ConfigSolverWorkers)
package config

import (
	"errors"
	"fmt"
)

var (
	ErrKeyNotFound = errors.New("key not found")
	ErrWrongType   = errors.New("unexpected type")
)

type Scope struct {
	values map[string]any
	parent *Scope
}

// NewScope binds values on top of parent. parent may be nil.
func NewScope(parent *Scope, values map[string]any) *Scope {
	if values == nil {
		values = make(map[string]any)
	}
	return &Scope{values: values, parent: parent}
}

// Lookup returns the innermost binding of key.
func (s *Scope) Lookup(key string) (any, error) {
	for sc := s; sc != nil; sc = sc.parent {
		if v, ok := sc.values[key]; ok {
			return v, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, key)
}

// Get looks key up and asserts its type.
func Get[T any](s *Scope, key string) (T, error) {
	var zero T

	raw, err := s.Lookup(key)
	if err != nil {
		return zero, err
	}
	v, ok := raw.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s holds %T, want %T", ErrWrongType, key, raw, zero)
	}
	return v, nil
}

// MustGet panics when key is missing or mistyped. Use it only for keys
// Defaults is guaranteed to bind.
func MustGet[T any](s *Scope, key string) T {
	v, err := Get[T](s, key)
	if err != nil {
		panic(err)
	}
	return v
}
