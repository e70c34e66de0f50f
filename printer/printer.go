/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package printer serializes an optimized style-sheet tree back to text.
// In tracking mode it simultaneously stamps every printable field's Offsets
// with the field's byte range in the generated text, which later feeds
// source-map construction.
package printer

import (
	"fmt"
	"strings"

	"bennypowers.dev/tsimtsum/ast"
)

// ToCSS serializes nodes in document order. When track is true, each node
// field that carries Offsets has its Dst span populated with the field's
// position in the returned text; filler bytes (indentation, punctuation,
// braces without an Offsets target) advance the cursor without being
// recorded.
//
// Context and at-root nodes must not reach the printer: the optimizer
// eliminates them, and one arriving here is an upstream defect. They
// serialize to nothing.
func ToCSS(nodes []ast.Node, track bool) string {
	p := &printer{track: track}
	for _, n := range nodes {
		p.node(n, 0)
	}
	return p.out.String()
}

type printer struct {
	out   strings.Builder
	track bool
}

func (p *printer) pos() uint32 {
	return uint32(p.out.Len())
}

func (p *printer) write(s string) {
	p.out.WriteString(s)
}

// tracked writes s and, in tracking mode, records its byte range into loc.
func (p *printer) tracked(loc *ast.Offsets, s string) {
	start := p.pos()
	p.out.WriteString(s)
	if p.track && loc != nil {
		loc.Dst = &ast.Span{Start: start, End: p.pos()}
	}
}

func (p *printer) node(n ast.Node, depth int) {
	indent := strings.Repeat("  ", depth)

	switch v := n.(type) {
	case *ast.Declaration:
		// A nil value is the documented signal for "already deleted".
		if v.Value == nil || v.Property == ast.SortMarkerProperty {
			return
		}
		p.write(indent)
		p.tracked(v.PropertyLoc, v.Property)
		p.write(": ")
		p.tracked(v.ValueLoc, *v.Value)
		if v.Important {
			p.write(" !important")
		}
		p.write(";\n")

	case *ast.StyleRule:
		p.write(indent)
		p.tracked(v.SelectorLoc, v.Selector)
		p.write(" ")
		p.block(v.BodyLoc, v.Nodes, depth)

	case *ast.AtRule:
		p.write(indent)
		p.tracked(v.NameLoc, v.Name)
		if v.Params != "" {
			p.write(" ")
			p.tracked(v.ParamsLoc, v.Params)
		}
		if len(v.Nodes) == 0 {
			p.write(";\n")
			return
		}
		p.write(" ")
		p.block(v.BodyLoc, v.Nodes, depth)

	case *ast.Comment:
		p.write(indent)
		p.write("/*")
		p.tracked(v.ValueLoc, v.Value)
		p.write("*/\n")

	case *ast.Context, *ast.AtRoot:
		// Optimizer contract violation; see ToCSS.

	default:
		panic(fmt.Sprintf("printer: unexpected node type %T", n))
	}
}

// block prints `{ ... }` and records a single span covering both braces:
// the opening position is taken when the block starts and widened past the
// closing brace when it ends.
func (p *printer) block(loc *ast.Offsets, nodes []ast.Node, depth int) {
	open := p.pos()
	p.write("{\n")
	for _, child := range nodes {
		p.node(child, depth+1)
	}
	p.write(strings.Repeat("  ", depth))
	p.write("}")
	if p.track && loc != nil {
		loc.Dst = &ast.Span{Start: open, End: p.pos()}
	}
	p.write("\n")
}
