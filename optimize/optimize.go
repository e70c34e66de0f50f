/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package optimize rewrites a parsed style-sheet tree into its minimal
// print-ready form: grouping selectors are flattened, context and at-root
// scaffolding is resolved, duplicate @property rules and dead theme
// variables and keyframes are eliminated, and legacy-engine polyfills are
// injected.
package optimize

import (
	"fmt"
	"strings"
	"unicode"

	"bennypowers.dev/tsimtsum/ast"
	"bennypowers.dev/tsimtsum/internal/logger"
	"bennypowers.dev/tsimtsum/theme"
)

// Polyfills selects which legacy-engine polyfills the optimizer injects.
type Polyfills uint8

const (
	// PolyfillNone disables all polyfills.
	PolyfillNone Polyfills = 0

	// PolyfillColorMix inlines theme variables into color-mix() calls and
	// emits @supports-gated fallbacks for engines without modern
	// interpolation color spaces.
	PolyfillColorMix Polyfills = 1 << 0

	// PolyfillAtProperty emits initial-value fallback rules for engines
	// without @property support.
	PolyfillAtProperty Polyfills = 1 << 1

	// PolyfillAll enables every polyfill.
	PolyfillAll = PolyfillColorMix | PolyfillAtProperty
)

// atRulesKeptWhenEmpty lists at-rules that are meaningful without a body.
var atRulesKeptWhenEmpty = map[string]bool{
	"@layer":        true,
	"@charset":      true,
	"@custom-media": true,
	"@namespace":    true,
	"@import":       true,
}

// Optimize consumes a raw tree and produces a fresh tree ready for
// printing. The input tree is mutated destructively and must not be reused;
// the caller owns the tree exclusively for the duration of the call.
func Optimize(nodes []ast.Node, res theme.Resolver, polyfills Polyfills) []ast.Node {
	o := &optimizer{
		res:               res,
		polyfills:         polyfills,
		seenAtProperties:  make(map[string]bool),
		themeVars:         make(map[*[]ast.Node][]*ast.Declaration),
		varDependents:     make(map[string]map[string]bool),
		usedKeyframeNames: make(map[string]bool),
		keyframes:         make(map[*ast.AtRule]bool),
	}

	top := make([]ast.Node, 0, len(nodes))
	for _, n := range nodes {
		o.transform(n, &top, nil, 0)
	}

	o.removeUnusedThemeVariables(&top)
	o.removeUnusedKeyframes()

	return o.finish(top)
}

type optimizer struct {
	res       theme.Resolver
	polyfills Polyfills

	// atRoots accumulates hoisted content, appended after the main tree.
	atRoots []ast.Node

	// seenAtProperties dedupes top-level @property rules by parameter text.
	seenAtProperties map[string]bool

	// propertyFallbacks* bucket @property initial-value fallbacks by
	// whether the property inherits.
	propertyFallbacksRoot      []ast.Node
	propertyFallbacksUniversal []ast.Node

	// themeVars indexes theme-variable declarations by the destination list
	// that received them. The pointer-to-slice handle stays stable across
	// appends, so it doubles as the identity key for the dead-code ascent.
	themeVars map[*[]ast.Node][]*ast.Declaration

	// varDependents maps a referenced variable to the set of theme
	// variables whose values reference it.
	varDependents map[string]map[string]bool

	usedKeyframeNames map[string]bool

	// keyframes holds @keyframes copies that originated inside a theme
	// context and may be removed when unused.
	keyframes map[*ast.AtRule]bool
}

func (o *optimizer) transform(node ast.Node, dst *[]ast.Node, scope *ast.Scope, depth int) {
	switch n := node.(type) {
	case *ast.Declaration:
		o.transformDeclaration(n, dst, scope)

	case *ast.StyleRule:
		// `&` is a pure grouping marker: its children take its place.
		if n.Selector == "&" {
			for _, child := range n.Nodes {
				o.transform(child, dst, scope, depth)
			}
			return
		}
		rule := &ast.StyleRule{
			Selector:    n.Selector,
			SelectorLoc: n.SelectorLoc,
			BodyLoc:     n.BodyLoc,
		}
		for _, child := range n.Nodes {
			o.transform(child, &rule.Nodes, scope, depth+1)
		}
		if len(rule.Nodes) > 0 {
			*dst = append(*dst, rule)
		}

	case *ast.AtRule:
		o.transformAtRule(n, dst, scope, depth)

	case *ast.AtRoot:
		for _, child := range n.Nodes {
			var hoisted []ast.Node
			o.transform(child, &hoisted, nil, 0)
			o.atRoots = append(o.atRoots, hoisted...)
		}

	case *ast.Context:
		if ref, ok := n.Values["reference"].(bool); ok && ref {
			// Reference-only imports contribute definitions, never output.
			return
		}
		for _, child := range n.Nodes {
			o.transform(child, dst, scope.With(n.Values), depth)
		}

	case *ast.Comment:
		*dst = append(*dst, n)

	default:
		panic(fmt.Sprintf("optimize: unexpected node type %T", node))
	}
}

func (o *optimizer) transformDeclaration(n *ast.Declaration, dst *[]ast.Node, scope *ast.Scope) {
	if n.Property == ast.SortMarkerProperty || n.Value == nil {
		return
	}

	inTheme := scope.Bool("theme")
	isCustomProperty := strings.HasPrefix(n.Property, "--")

	if inTheme && isCustomProperty {
		if *n.Value == "initial" {
			// Clear the value first so readers downstream see the
			// declaration as already removed.
			n.Value = nil
			return
		}
		if !scope.Bool("keyframes") {
			o.themeVars[dst] = append(o.themeVars[dst], n)
		}
	}

	if strings.Contains(*n.Value, "var(") {
		if inTheme && isCustomProperty {
			for _, m := range theme.VarPattern.FindAllStringSubmatch(*n.Value, -1) {
				o.addDependency(m[1], n.Property)
			}
		} else {
			o.res.TrackUsedVariables(*n.Value)
		}
	}

	if n.Property == "animation" {
		for _, name := range keyframeNames(*n.Value) {
			o.usedKeyframeNames[name] = true
		}
	}

	if o.polyfills&PolyfillColorMix != 0 && strings.Contains(*n.Value, "color-mix(") {
		if o.polyfillColorMix(n, dst) {
			return
		}
	}

	*dst = append(*dst, n)
}

func (o *optimizer) transformAtRule(n *ast.AtRule, dst *[]ast.Node, scope *ast.Scope, depth int) {
	if n.Name == "@property" && depth == 0 {
		if o.seenAtProperties[n.Params] {
			logger.Debug("dropping duplicate @property %s", n.Params)
			return
		}
		if o.polyfills&PolyfillAtProperty != 0 {
			o.recordPropertyFallback(n)
		}
		o.seenAtProperties[n.Params] = true
	}

	rule := &ast.AtRule{
		Name:      n.Name,
		Params:    n.Params,
		NameLoc:   n.NameLoc,
		ParamsLoc: n.ParamsLoc,
		BodyLoc:   n.BodyLoc,
	}

	childScope := scope
	if n.Name == "@keyframes" {
		// Custom properties inside keyframe steps are not theme variables.
		childScope = scope.With(map[string]any{"keyframes": true})
	}
	for _, child := range n.Nodes {
		o.transform(child, &rule.Nodes, childScope, depth+1)
	}

	if n.Name == "@keyframes" && scope.Bool("theme") {
		o.keyframes[rule] = true
	}

	if len(rule.Nodes) > 0 || atRulesKeptWhenEmpty[rule.Name] {
		*dst = append(*dst, rule)
	}
}

func (o *optimizer) addDependency(referenced, dependent string) {
	set := o.varDependents[referenced]
	if set == nil {
		set = make(map[string]bool)
		o.varDependents[referenced] = set
	}
	set[dependent] = true
}

// keyframeNames splits an animation shorthand or animation-name value into
// its whitespace- and comma-separated tokens.
func keyframeNames(value string) []string {
	return strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}
