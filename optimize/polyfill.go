/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package optimize

import (
	"strings"

	"github.com/mazznoer/csscolorparser"

	"bennypowers.dev/tsimtsum/ast"
	"bennypowers.dev/tsimtsum/valueparser"
)

// colorMixGateParams feature-detects color-mix() support.
const colorMixGateParams = "(color: color-mix(in lab, red, red))"

// propertyGateParams matches engines that lack @property support: WebKit
// before margin-trim and Gecko before relative color syntax.
const propertyGateParams = "((-webkit-hyphens: none) and (not (margin-trim: inline))) or ((-moz-orient: inline) and (not (color: rgb(from red r g b))))"

// legacyColorSpaces are interpolation spaces unknown to engines the
// color-mix polyfill targets.
var legacyColorSpaces = map[string]bool{
	"oklab": true,
	"oklch": true,
	"lab":   true,
	"lch":   true,
}

// polyfillColorMix rewrites a declaration whose value contains color-mix()
// calls. Theme variable references are inlined; calls that stay
// unresolvable (or reference currentColor, which cannot be inlined) degrade
// to their trailing fallback color argument. When any call needed
// rewriting, the rewritten declaration is emitted alongside the original
// gated behind a color-mix feature query, and polyfillColorMix reports
// true; otherwise the declaration is left for the caller to emit.
func (o *optimizer) polyfillColorMix(n *ast.Declaration, dst *[]ast.Node) bool {
	value := valueparser.Parse(*n.Value)
	requiresPolyfill := false

	valueparser.Walk(&value, func(vn *valueparser.Node, c *valueparser.Cursor) valueparser.WalkAction {
		if vn.Kind != valueparser.KindFunction || vn.Value != "color-mix" {
			return valueparser.Continue
		}

		var unresolvable, hasCurrentColor, required bool
		valueparser.Walk(&vn.Nodes, func(arg *valueparser.Node, ac *valueparser.Cursor) valueparser.WalkAction {
			switch {
			case arg.Kind == valueparser.KindWord && strings.EqualFold(arg.Value, "currentcolor"):
				hasCurrentColor = true
				required = true

			case arg.Kind == valueparser.KindFunction && arg.Value == "var":
				required = true
				name := ""
				for _, a := range arg.Nodes {
					if a.Kind == valueparser.KindWord {
						name = a.Value
						break
					}
				}
				if name != "" {
					if resolved, ok := o.res.ResolveValue("", []string{name}); ok {
						ac.ReplaceWith(valueparser.Word(resolved))
						return valueparser.Skip
					}
				}
				unresolvable = true
				return valueparser.Skip
			}
			return valueparser.Continue
		})

		if !required {
			return valueparser.Skip
		}
		requiresPolyfill = true

		if hasCurrentColor || unresolvable {
			if fallback, ok := colorMixFallback(vn); ok {
				c.ReplaceWith(fallback...)
			}
			return valueparser.Skip
		}

		rewriteColorSpace(vn)
		return valueparser.Skip
	})

	if !requiresPolyfill {
		return false
	}

	rewritten := valueparser.ToCSS(value)
	fallback := &ast.Declaration{
		Property:    n.Property,
		Value:       &rewritten,
		Important:   n.Important,
		PropertyLoc: n.PropertyLoc.Clone(),
		ValueLoc:    n.ValueLoc.Clone(),
	}
	gate := &ast.AtRule{
		Name:   "@supports",
		Params: colorMixGateParams,
		Nodes:  []ast.Node{n},
	}
	*dst = append(*dst, fallback, gate)
	return true
}

// colorMixFallback returns the call's trailing comma-separated argument
// when it looks like a usable fallback color: either a literal color or an
// expression containing a function call.
func colorMixFallback(call *valueparser.Node) ([]*valueparser.Node, bool) {
	last := -1
	for i, n := range call.Nodes {
		if n.Kind == valueparser.KindSeparator && strings.Contains(n.Value, ",") {
			last = i
		}
	}
	if last == -1 || last == len(call.Nodes)-1 {
		return nil, false
	}

	fallback := call.Nodes[last+1:]
	if !isFallbackColor(fallback) {
		return nil, false
	}
	return fallback, true
}

func isFallbackColor(nodes []*valueparser.Node) bool {
	for _, n := range nodes {
		if n.Kind == valueparser.KindFunction {
			return true
		}
	}
	text := strings.TrimSpace(valueparser.ToCSS(nodes))
	if text == "" {
		return false
	}
	_, err := csscolorparser.Parse(text)
	return err == nil
}

// rewriteColorSpace downgrades the interpolation color space of a fully
// resolved color-mix() call to srgb for engines that predate the modern
// spaces.
func rewriteColorSpace(call *valueparser.Node) {
	prev := ""
	for _, n := range call.Nodes {
		if n.Kind != valueparser.KindWord {
			continue
		}
		if strings.EqualFold(prev, "in") && legacyColorSpaces[strings.ToLower(n.Value)] {
			n.Value = "srgb"
			return
		}
		prev = n.Value
	}
}

// recordPropertyFallback accumulates an initial-value fallback declaration
// for a top-level @property rule, bucketed by whether the property
// inherits.
func (o *optimizer) recordPropertyFallback(n *ast.AtRule) {
	initialValue := "initial"
	inherits := false
	for _, child := range n.Nodes {
		d, ok := child.(*ast.Declaration)
		if !ok || d.Value == nil {
			continue
		}
		switch d.Property {
		case "initial-value":
			initialValue = *d.Value
		case "inherits":
			inherits = *d.Value == "true"
		}
	}

	fallback := ast.Decl(n.Params, initialValue)
	if inherits {
		o.propertyFallbacksRoot = append(o.propertyFallbacksRoot, fallback)
	} else {
		o.propertyFallbacksUniversal = append(o.propertyFallbacksUniversal, fallback)
	}
}

// finish appends hoisted at-root content and, when the @property polyfill
// produced fallbacks, wraps them in a feature-gated `@layer properties`
// block at the end of the document with a matching empty layer marker up
// top.
func (o *optimizer) finish(top []ast.Node) []ast.Node {
	var fallbackRules []ast.Node
	if len(o.propertyFallbacksRoot) > 0 {
		fallbackRules = append(fallbackRules, &ast.StyleRule{
			Selector: ":root, :host",
			Nodes:    o.propertyFallbacksRoot,
		})
	}
	if len(o.propertyFallbacksUniversal) > 0 {
		fallbackRules = append(fallbackRules, &ast.StyleRule{
			Selector: "*, ::before, ::after, ::backdrop",
			Nodes:    o.propertyFallbacksUniversal,
		})
	}

	if len(fallbackRules) == 0 {
		return append(top, o.atRoots...)
	}

	// `@layer properties;` must still follow any @charset or @import (and
	// a leading license comment stays on top).
	marker := &ast.AtRule{Name: "@layer", Params: "properties"}
	idx := preludeEnd(top)
	top = append(top[:idx], append([]ast.Node{marker}, top[idx:]...)...)

	top = append(top, o.atRoots...)
	gate := &ast.AtRule{Name: "@supports", Params: propertyGateParams, Nodes: fallbackRules}
	return append(top, &ast.AtRule{
		Name:   "@layer",
		Params: "properties",
		Nodes:  []ast.Node{gate},
	})
}

func preludeEnd(nodes []ast.Node) int {
	for i, n := range nodes {
		switch v := n.(type) {
		case *ast.Comment:
			if strings.HasPrefix(v.Value, "!") {
				continue
			}
		case *ast.AtRule:
			if v.Name == "@charset" || v.Name == "@import" {
				continue
			}
		}
		return i
	}
	return len(nodes)
}
