/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package parser turns CSS text into the ast node model using the
// tree-sitter CSS grammar, stamping every printable field with its byte
// range in the original source so a tracked serialization can later pair
// original and generated positions.
package parser

import (
	"fmt"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_css "github.com/tree-sitter/tree-sitter-css/bindings/go"

	"bennypowers.dev/tsimtsum/ast"
)

// Parse parses CSS source into a raw tree. The file name is recorded on
// every node's Offsets so multi-file pipelines can tell buffers apart.
func Parse(source []byte, file string) ([]ast.Node, error) {
	p := tree_sitter.NewParser()
	defer p.Close()

	if err := p.SetLanguage(tree_sitter.NewLanguage(tree_sitter_css.Language())); err != nil {
		return nil, fmt.Errorf("loading css grammar: %w", err)
	}

	tree := p.Parse(source, nil)
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		if bad := firstError(root); bad != nil {
			return nil, fmt.Errorf("%s: syntax error at byte %d", file, bad.StartByte())
		}
		return nil, fmt.Errorf("%s: syntax error", file)
	}

	origin := &ast.Source{File: file, Code: string(source)}
	return convertChildren(root, source, origin), nil
}

func firstError(node *tree_sitter.Node) *tree_sitter.Node {
	if node.IsError() || node.IsMissing() {
		return node
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		if bad := firstError(node.Child(i)); bad != nil {
			return bad
		}
	}
	return nil
}

func convertChildren(node *tree_sitter.Node, src []byte, origin *ast.Source) []ast.Node {
	var out []ast.Node
	for i := uint(0); i < node.ChildCount(); i++ {
		if n := convertNode(node.Child(i), src, origin); n != nil {
			out = append(out, n)
		}
	}
	return out
}

func convertNode(node *tree_sitter.Node, src []byte, origin *ast.Source) ast.Node {
	kind := node.Kind()
	switch {
	case kind == "rule_set":
		return convertRuleSet(node, src, origin)

	case kind == "keyframe_block":
		return convertKeyframeBlock(node, src, origin)

	case kind == "declaration":
		return convertDeclaration(node, src, origin)

	case kind == "comment":
		start := uint32(node.StartByte()) + 2
		end := uint32(node.EndByte()) - 2
		return &ast.Comment{
			Value:    string(src[start:end]),
			ValueLoc: &ast.Offsets{Original: origin, Src: ast.Span{Start: start, End: end}},
		}

	case kind == "at_rule" || strings.HasSuffix(kind, "_statement"):
		return convertAtRule(node, src, origin)

	default:
		// Punctuation and anything the grammar produced that has no node
		// model counterpart.
		return nil
	}
}

func convertRuleSet(node *tree_sitter.Node, src []byte, origin *ast.Source) ast.Node {
	rule := &ast.StyleRule{}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		switch child.Kind() {
		case "selectors":
			rule.Selector = child.Utf8Text(src)
			rule.SelectorLoc = offsets(child, origin)
		case "block":
			rule.BodyLoc = offsets(child, origin)
			rule.Nodes = convertChildren(child, src, origin)
		}
	}
	return rule
}

// convertKeyframeBlock maps a `from { ... }` / `50% { ... }` step onto a
// style rule whose selector is the step list.
func convertKeyframeBlock(node *tree_sitter.Node, src []byte, origin *ast.Source) ast.Node {
	rule := &ast.StyleRule{}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child.Kind() == "block" {
			selector, span := trimmedSpan(src, uint32(node.StartByte()), uint32(child.StartByte()))
			rule.Selector = selector
			rule.SelectorLoc = &ast.Offsets{Original: origin, Src: span}
			rule.BodyLoc = offsets(child, origin)
			rule.Nodes = convertChildren(child, src, origin)
			break
		}
	}
	return rule
}

func convertDeclaration(node *tree_sitter.Node, src []byte, origin *ast.Source) ast.Node {
	var property *tree_sitter.Node
	var important bool
	colonEnd := uint32(0)
	valueEnd := uint32(node.EndByte())

	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		switch child.Kind() {
		case "property_name":
			if property == nil {
				property = child
			}
		case ":":
			if colonEnd == 0 {
				colonEnd = uint32(child.EndByte())
			}
		case "important":
			important = true
			if uint32(child.StartByte()) < valueEnd {
				valueEnd = uint32(child.StartByte())
			}
		case ";":
			if uint32(child.StartByte()) < valueEnd {
				valueEnd = uint32(child.StartByte())
			}
		}
	}
	if property == nil {
		return nil
	}

	decl := &ast.Declaration{
		Property:    property.Utf8Text(src),
		Important:   important,
		PropertyLoc: offsets(property, origin),
	}
	if colonEnd > 0 && valueEnd > colonEnd {
		if text, span := trimmedSpan(src, colonEnd, valueEnd); text != "" {
			decl.Value = &text
			decl.ValueLoc = &ast.Offsets{Original: origin, Src: span}
		}
	}
	return decl
}

func convertAtRule(node *tree_sitter.Node, src []byte, origin *ast.Source) ast.Node {
	rule := &ast.AtRule{}
	var body *tree_sitter.Node
	paramsEnd := uint32(node.EndByte())

	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		kind := child.Kind()
		switch {
		case rule.Name == "" && strings.HasPrefix(child.Utf8Text(src), "@"):
			rule.Name = child.Utf8Text(src)
			rule.NameLoc = offsets(child, origin)
		case kind == "block" || kind == "keyframe_block_list":
			body = child
		case kind == ";":
			if uint32(child.StartByte()) < paramsEnd {
				paramsEnd = uint32(child.StartByte())
			}
		}
	}
	if rule.Name == "" {
		return nil
	}

	if body != nil {
		paramsEnd = uint32(body.StartByte())
		rule.BodyLoc = offsets(body, origin)
		rule.Nodes = convertChildren(body, src, origin)
	}
	if nameEnd := rule.NameLoc.Src.End; paramsEnd > nameEnd {
		if params, span := trimmedSpan(src, nameEnd, paramsEnd); params != "" {
			rule.Params = params
			rule.ParamsLoc = &ast.Offsets{Original: origin, Src: span}
		}
	}
	return rule
}

func offsets(node *tree_sitter.Node, origin *ast.Source) *ast.Offsets {
	return &ast.Offsets{
		Original: origin,
		Src:      ast.Span{Start: uint32(node.StartByte()), End: uint32(node.EndByte())},
	}
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}

// trimmedSpan slices src between start and end with surrounding whitespace
// removed, returning both the text and its adjusted span.
func trimmedSpan(src []byte, start, end uint32) (string, ast.Span) {
	for start < end && isSpace(src[start]) {
		start++
	}
	for end > start && isSpace(src[end-1]) {
		end--
	}
	return string(src[start:end]), ast.Span{Start: start, End: end}
}
