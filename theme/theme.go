/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package theme provides the theme-variable collaborator consumed by the
// optimizer: variable value resolution, name prefixing, and usage tracking
// for dead-code elimination.
package theme

import (
	"regexp"
	"strings"
)

// Options is a bitset of per-variable flags consulted during dead-code
// elimination.
type Options uint8

const (
	// OptionsNone marks a variable with no special retention.
	OptionsNone Options = 0

	// OptionsStatic marks a variable that must always be emitted.
	OptionsStatic Options = 1 << 0

	// OptionsUsed marks a variable that was referenced by some value.
	OptionsUsed Options = 1 << 1
)

// VarPattern matches `var(--name` references in value text, capturing the
// custom property name. Fallback arguments produce their own matches.
var VarPattern = regexp.MustCompile(`var\(\s*(--[\w-]+)`)

// Resolver is the narrow interface the optimizer needs from a theme or
// design system.
type Resolver interface {
	// ResolveValue returns the literal value for the first of names that is
	// defined, scoped by an optional candidate namespace. The second return
	// is false when none resolve.
	ResolveValue(scope string, names []string) (string, bool)

	// PrefixKey applies the configured variable prefix to a custom property
	// key such as `--animate-`.
	PrefixKey(key string) string

	// GetOptions returns the retention flags recorded for a variable.
	GetOptions(name string) Options

	// TrackUsedVariables scans value text and marks every referenced
	// variable as used.
	TrackUsedVariables(value string)
}

type entry struct {
	value   string
	options Options
}

// Theme is the concrete Resolver used by the CLI and tests. It holds
// variable definitions keyed by prefixed custom property name.
type Theme struct {
	prefix string
	values map[string]*entry
}

// New returns an empty theme. A non-empty prefix is folded into every key
// via PrefixKey.
func New(prefix string) *Theme {
	return &Theme{prefix: prefix, values: make(map[string]*entry)}
}

// Add defines a variable. The key is prefixed before storage.
func (t *Theme) Add(key, value string, options Options) {
	t.values[t.PrefixKey(key)] = &entry{value: value, options: options}
}

// MarkStatic flags a variable as always-emitted. The key is prefixed before
// lookup; unknown keys are ignored.
func (t *Theme) MarkStatic(key string) {
	if e, ok := t.values[t.PrefixKey(key)]; ok {
		e.options |= OptionsStatic
	}
}

// MarkUsed flags an already-defined variable as used. Unknown names are
// ignored.
func (t *Theme) MarkUsed(name string) {
	if e, ok := t.values[name]; ok {
		e.options |= OptionsUsed
	}
}

// ResolveValue implements Resolver.
func (t *Theme) ResolveValue(scope string, names []string) (string, bool) {
	for _, name := range names {
		if scope != "" {
			scoped := "--" + scope + "-" + strings.TrimPrefix(name, "--")
			if e, ok := t.values[scoped]; ok {
				return e.value, true
			}
		}
		if e, ok := t.values[name]; ok {
			return e.value, true
		}
	}
	return "", false
}

// PrefixKey implements Resolver.
func (t *Theme) PrefixKey(key string) string {
	if t.prefix == "" || !strings.HasPrefix(key, "--") {
		return key
	}
	return "--" + t.prefix + "-" + strings.TrimPrefix(key, "--")
}

// GetOptions implements Resolver.
func (t *Theme) GetOptions(name string) Options {
	if e, ok := t.values[name]; ok {
		return e.options
	}
	return OptionsNone
}

// TrackUsedVariables implements Resolver.
func (t *Theme) TrackUsedVariables(value string) {
	for _, m := range VarPattern.FindAllStringSubmatch(value, -1) {
		t.MarkUsed(m[1])
	}
}
