/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package valueparser parses declaration value text into a small expression
// tree of words, function calls, and separators, and serializes such trees
// back to text. It exists so the optimizer can inspect and rewrite values
// like `color-mix(in oklab, var(--accent), transparent)` without a full CSS
// grammar.
package valueparser

import "strings"

// Kind discriminates value expression nodes.
type Kind uint8

const (
	// KindWord is an identifier, number, dimension, keyword, or quoted
	// string, stored verbatim.
	KindWord Kind = iota

	// KindFunction is `name( ... )`. Value holds the name (possibly empty
	// for a bare parenthesized group); Nodes holds the contents.
	KindFunction

	// KindSeparator is a run of whitespace, commas, and slashes, stored
	// verbatim so serialization is lossless.
	KindSeparator
)

// Node is one value expression node.
type Node struct {
	Kind  Kind
	Value string
	Nodes []*Node
}

// Word constructs a word node.
func Word(value string) *Node {
	return &Node{Kind: KindWord, Value: value}
}

// Fn constructs a function node.
func Fn(name string, args ...*Node) *Node {
	return &Node{Kind: KindFunction, Value: name, Nodes: args}
}

// Separator constructs a separator node.
func Separator(value string) *Node {
	return &Node{Kind: KindSeparator, Value: value}
}

// Parse parses declaration value text. The parser is permissive: unmatched
// closing parens become words, unterminated functions and strings extend to
// the end of input. Well-formed input round-trips exactly through ToCSS.
func Parse(input string) []*Node {
	nodes, _ := parse(input, 0, false)
	return nodes
}

func isSeparator(ch byte) bool {
	switch ch {
	case ' ', '\t', '\n', '\r', ',', '/':
		return true
	}
	return false
}

func parse(input string, pos int, inFunction bool) ([]*Node, int) {
	var nodes []*Node
	start := pos
	i := pos

	flush := func(end int) {
		if end > start {
			nodes = append(nodes, Word(input[start:end]))
		}
	}

	for i < len(input) {
		switch ch := input[i]; {
		case isSeparator(ch):
			flush(i)
			j := i
			for j < len(input) && isSeparator(input[j]) {
				j++
			}
			nodes = append(nodes, Separator(input[i:j]))
			i = j
			start = i

		case ch == '(':
			name := input[start:i]
			args, next := parse(input, i+1, true)
			nodes = append(nodes, &Node{Kind: KindFunction, Value: name, Nodes: args})
			i = next
			start = i

		case ch == ')':
			if inFunction {
				flush(i)
				return nodes, i + 1
			}
			i++

		case ch == '"' || ch == '\'':
			// Quoted strings stay part of the surrounding word so commas
			// inside them are not separators.
			i = skipString(input, i)

		default:
			i++
		}
	}

	flush(len(input))
	return nodes, len(input)
}

func skipString(input string, pos int) int {
	quote := input[pos]
	for i := pos + 1; i < len(input); i++ {
		switch input[i] {
		case '\\':
			i++
		case quote:
			return i + 1
		}
	}
	return len(input)
}

// ToCSS serializes a value expression tree back to text.
func ToCSS(nodes []*Node) string {
	var sb strings.Builder
	writeNodes(&sb, nodes)
	return sb.String()
}

func writeNodes(sb *strings.Builder, nodes []*Node) {
	for _, n := range nodes {
		switch n.Kind {
		case KindFunction:
			sb.WriteString(n.Value)
			sb.WriteByte('(')
			writeNodes(sb, n.Nodes)
			sb.WriteByte(')')
		default:
			sb.WriteString(n.Value)
		}
	}
}
