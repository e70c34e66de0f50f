/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package valueparser

// WalkAction is the outcome a visitor requests for the current node.
type WalkAction int

const (
	// Continue descends into function arguments (the default).
	Continue WalkAction = iota

	// Skip does not descend into the node's arguments.
	Skip

	// Stop aborts the traversal immediately.
	Stop
)

// Cursor collects a requested replacement for the current node.
type Cursor struct {
	// Parent is the enclosing function node, or nil at the top level.
	Parent *Node

	replacement []*Node
	replaced    bool
}

// ReplaceWith replaces the current node with zero or more nodes, applied in
// place after the visitor returns. Under Continue the walk re-visits from
// the first replacement; under Skip or Stop it resumes after the block.
func (c *Cursor) ReplaceWith(nodes ...*Node) {
	c.replacement = nodes
	c.replaced = true
}

// VisitFunc visits one value expression node.
type VisitFunc func(n *Node, c *Cursor) WalkAction

// Walk traverses value nodes depth-first in pre-order with in-place
// replacement, mirroring the tree walker's contract. It reports whether the
// traversal ran to completion.
func Walk(nodes *[]*Node, visit VisitFunc) bool {
	return walkValues(nodes, visit, nil) != Stop
}

func walkValues(nodes *[]*Node, visit VisitFunc, parent *Node) WalkAction {
	for i := 0; i < len(*nodes); i++ {
		n := (*nodes)[i]

		c := &Cursor{Parent: parent}
		action := visit(n, c)

		if c.replaced {
			*nodes = spliceValues(*nodes, i, c.replacement)
			switch action {
			case Stop:
				return Stop
			case Skip:
				i += len(c.replacement) - 1
			default:
				i--
			}
			continue
		}

		switch action {
		case Stop:
			return Stop
		case Skip:
			continue
		}

		if n.Kind == KindFunction {
			if walkValues(&n.Nodes, visit, n) == Stop {
				return Stop
			}
		}
	}
	return Continue
}

func spliceValues(nodes []*Node, i int, replacement []*Node) []*Node {
	out := make([]*Node, 0, len(nodes)-1+len(replacement))
	out = append(out, nodes[:i]...)
	out = append(out, replacement...)
	out = append(out, nodes[i+1:]...)
	return out
}
