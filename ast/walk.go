/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package ast

// WalkAction is the outcome a visitor requests for the current node.
type WalkAction int

const (
	// Continue descends into the node's children (the default).
	Continue WalkAction = iota

	// Skip does not descend into the node's children.
	Skip

	// Stop aborts the entire traversal immediately.
	Stop
)

// Scope is an immutable parent-linked chain of ambient context values
// accumulated from enclosing Context nodes. Inner values shadow outer ones.
// The zero value (a nil *Scope) is the empty scope.
type Scope struct {
	parent *Scope
	values map[string]any
}

// NewScope returns a scope holding the given values.
func NewScope(values map[string]any) *Scope {
	return (*Scope)(nil).With(values)
}

// With returns a child scope where values shadow the receiver's. An empty
// map returns the receiver unchanged.
func (s *Scope) With(values map[string]any) *Scope {
	if len(values) == 0 {
		return s
	}
	return &Scope{parent: s, values: values}
}

// Get looks up a context value, innermost binding first.
func (s *Scope) Get(key string) (any, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok := cur.values[key]; ok {
			return v, true
		}
	}
	return nil, false
}

// Bool reports whether key is bound to boolean true.
func (s *Scope) Bool(key string) bool {
	v, ok := s.Get(key)
	if !ok {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

// Cursor carries the traversal state handed to a visitor, and collects a
// requested replacement for the current node.
type Cursor struct {
	// Parent is the nearest non-context ancestor, or nil at the top level.
	Parent Node

	// Path holds the ancestors of the current node, outermost first,
	// excluding Context nodes.
	Path []Node

	// Scope is the merged ambient context from enclosing Context nodes.
	Scope *Scope

	replacement []Node
	replaced    bool
}

// ReplaceWith replaces the current node with zero or more nodes. The
// replacement is applied in place in the parent's child list after the
// visitor returns. Under Continue the traversal re-visits starting at the
// first replacement node; under Skip or Stop it resumes after the
// replacement block.
func (c *Cursor) ReplaceWith(nodes ...Node) {
	c.replacement = nodes
	c.replaced = true
}

// VisitFunc visits one node during a mutating pre-order walk.
type VisitFunc func(node Node, c *Cursor) WalkAction

// Walk traverses nodes depth-first in pre-order, allowing in-place
// replacement of the visited node. Context nodes are transparent: the walk
// descends into their children with the merged scope without visiting the
// context node itself. Walk reports whether the traversal ran to completion
// (false when a visitor returned Stop).
func Walk(nodes *[]Node, visit VisitFunc) bool {
	return walkList(nodes, visit, nil, nil, nil) != Stop
}

// WalkScoped is Walk with an initial ambient context.
func WalkScoped(nodes *[]Node, visit VisitFunc, initial map[string]any) bool {
	return walkList(nodes, visit, nil, nil, NewScope(initial)) != Stop
}

func walkList(nodes *[]Node, visit VisitFunc, parent Node, path []Node, scope *Scope) WalkAction {
	for i := 0; i < len(*nodes); i++ {
		n := (*nodes)[i]

		if ctx, ok := n.(*Context); ok {
			if walkList(&ctx.Nodes, visit, parent, path, scope.With(ctx.Values)) == Stop {
				return Stop
			}
			continue
		}

		c := &Cursor{Parent: parent, Path: path, Scope: scope}
		action := visit(n, c)

		if c.replaced {
			*nodes = splice(*nodes, i, c.replacement)
			switch action {
			case Stop:
				return Stop
			case Skip:
				i += len(c.replacement) - 1
			default:
				// Re-visit starting at the first replacement node.
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

		if children := childList(n); children != nil {
			if walkList(children, visit, n, appendPath(path, n), scope) == Stop {
				return Stop
			}
		}
	}
	return Continue
}

// DepthVisitFunc visits one node during a post-order walk.
type DepthVisitFunc func(node Node, c *Cursor)

// WalkDepth traverses nodes depth-first in post-order (children before
// parents), visiting every node. It supports replacement of the visited
// node but not Skip or Stop; replacements are not re-visited. It is the
// non-mutating analysis counterpart to Walk.
func WalkDepth(nodes *[]Node, visit DepthVisitFunc) {
	walkDepthList(nodes, visit, nil, nil, nil)
}

func walkDepthList(nodes *[]Node, visit DepthVisitFunc, parent Node, path []Node, scope *Scope) {
	for i := 0; i < len(*nodes); i++ {
		n := (*nodes)[i]

		if ctx, ok := n.(*Context); ok {
			walkDepthList(&ctx.Nodes, visit, parent, path, scope.With(ctx.Values))
			continue
		}

		if children := childList(n); children != nil {
			walkDepthList(children, visit, n, appendPath(path, n), scope)
		}

		c := &Cursor{Parent: parent, Path: path, Scope: scope}
		visit(n, c)
		if c.replaced {
			*nodes = splice(*nodes, i, c.replacement)
			i += len(c.replacement) - 1
		}
	}
}

// childList returns the addressable child list of a node, or nil for leaf
// variants. Context is handled by the callers since it needs scope merging.
func childList(n Node) *[]Node {
	switch v := n.(type) {
	case *StyleRule:
		return &v.Nodes
	case *AtRule:
		return &v.Nodes
	case *AtRoot:
		return &v.Nodes
	default:
		return nil
	}
}

func splice(nodes []Node, i int, replacement []Node) []Node {
	out := make([]Node, 0, len(nodes)-1+len(replacement))
	out = append(out, nodes[:i]...)
	out = append(out, replacement...)
	out = append(out, nodes[i+1:]...)
	return out
}

func appendPath(path []Node, n Node) []Node {
	out := make([]Node, len(path), len(path)+1)
	copy(out, path)
	return append(out, n)
}
