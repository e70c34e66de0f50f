/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package ast defines the style-sheet tree that the optimizer rewrites and
// the printer serializes, together with generic traversal over it.
//
// The tree has six variants: style rules, at-rules, declarations, and
// comments appear in output; context and at-root nodes are compiler-only
// scaffolding that the optimizer eliminates before printing. Nodes are
// mutated destructively during optimization, so a tree must be treated as
// exclusively owned for the duration of an optimize or print pass.
package ast

import "strings"

// SortMarkerProperty is the internal declaration property used to carry
// ordering hints between compiler stages. Declarations with this property
// are never emitted.
const SortMarkerProperty = "--ts-sort"

// Node is one variant of the style-sheet tree.
type Node interface {
	node()
}

// StyleRule is a selector with a declaration block.
type StyleRule struct {
	Selector string
	Nodes    []Node

	// SelectorLoc tracks the selector text; BodyLoc tracks the `{ ... }`
	// region including both braces.
	SelectorLoc *Offsets
	BodyLoc     *Offsets
}

// AtRule is an @-rule such as @media, @layer, or @keyframes. Params holds
// everything between the name and the block (or terminating semicolon).
type AtRule struct {
	Name   string
	Params string
	Nodes  []Node

	NameLoc   *Offsets
	ParamsLoc *Offsets
	BodyLoc   *Offsets
}

// Declaration is a `property: value` pair. A nil Value marks a declaration
// that has been deleted in place; such declarations are never emitted.
type Declaration struct {
	Property  string
	Value     *string
	Important bool

	PropertyLoc *Offsets
	ValueLoc    *Offsets
}

// Comment is a `/* ... */` comment. Value holds the text between the
// delimiters.
type Comment struct {
	Value string

	ValueLoc *Offsets
}

// Context carries ambient key/value flags (string or bool) down to its
// descendants without being a visible node itself. Traversal treats it as
// transparent: its children are visited with the merged ambient scope, and
// the context node never appears in parents, paths, or output.
type Context struct {
	Values map[string]any
	Nodes  []Node

	BodyLoc *Offsets
}

// AtRoot hoists its children to the end of the document, after all other
// top-level content, preserving encounter order across distinct at-root
// nodes.
type AtRoot struct {
	Nodes []Node

	BodyLoc *Offsets
}

func (*StyleRule) node()   {}
func (*AtRule) node()      {}
func (*Declaration) node() {}
func (*Comment) node()     {}
func (*Context) node()     {}
func (*AtRoot) node()      {}

// Rule constructs a rule node from a selector. A selector starting with `@`
// yields an at-rule: the chunk before the first space becomes the name and
// the remainder the params. Anything else yields a style rule.
func Rule(selector string, nodes ...Node) Node {
	if strings.HasPrefix(selector, "@") {
		name, params, _ := strings.Cut(selector, " ")
		return &AtRule{
			Name:   name,
			Params: strings.TrimSpace(params),
			Nodes:  nodes,
		}
	}
	return &StyleRule{Selector: selector, Nodes: nodes}
}

// Decl constructs a declaration with a present value.
func Decl(property, value string) *Declaration {
	return &Declaration{Property: property, Value: &value}
}

// DeclImportant constructs a declaration flagged !important.
func DeclImportant(property, value string) *Declaration {
	d := Decl(property, value)
	d.Important = true
	return d
}
