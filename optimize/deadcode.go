/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package optimize

import (
	"strings"

	"bennypowers.dev/tsimtsum/ast"
	"bennypowers.dev/tsimtsum/internal/logger"
	"bennypowers.dev/tsimtsum/theme"
)

// animateKeyPrefix names the theme variables whose values carry keyframe
// references; keeping such a variable keeps its keyframes too.
const animateKeyPrefix = "--animate-"

// removeUnusedThemeVariables drops every registered theme-variable
// declaration that is neither statically required, marked used, nor
// depended upon by a live variable. Lists emptied by removal take their
// owning rule with them, and empty at-rule ancestors above it.
func (o *optimizer) removeUnusedThemeVariables(top *[]ast.Node) {
	animatePrefix := o.res.PrefixKey(animateKeyPrefix)

	for list, decls := range o.themeVars {
		for _, decl := range decls {
			if o.isVarLive(decl.Property, make(map[string]bool)) {
				if strings.HasPrefix(decl.Property, animatePrefix) && decl.Value != nil {
					for _, name := range keyframeNames(*decl.Value) {
						o.usedKeyframeNames[name] = true
					}
				}
				continue
			}
			logger.Debug("removing unused theme variable %s", decl.Property)
			removeNode(list, decl)
		}
		if len(*list) == 0 {
			o.removeEmptyContainers(top, list)
		}
	}
}

// isVarLive reports whether a theme variable must be kept: it carries the
// STATIC or USED option, or some variable that depends on it is live.
// Revisiting a variable already on the search path means a dependency
// cycle, which is kept conservatively.
func (o *optimizer) isVarLive(name string, visited map[string]bool) bool {
	if visited[name] {
		return true
	}
	visited[name] = true

	if o.res.GetOptions(name)&(theme.OptionsStatic|theme.OptionsUsed) != 0 {
		return true
	}
	for dependent := range o.varDependents[name] {
		if o.isVarLive(dependent, visited) {
			return true
		}
	}
	return false
}

// removeUnusedKeyframes drops theme-owned @keyframes candidates from the
// hoisted list when nothing referenced their name.
func (o *optimizer) removeUnusedKeyframes() {
	if len(o.keyframes) == 0 {
		return
	}
	kept := o.atRoots[:0]
	for _, n := range o.atRoots {
		if kf, ok := n.(*ast.AtRule); ok && o.keyframes[kf] && !o.usedKeyframeNames[kf.Params] {
			logger.Debug("removing unused keyframes %s", kf.Params)
			continue
		}
		kept = append(kept, n)
	}
	o.atRoots = kept
}

// removeEmptyContainers locates the node owning the emptied list (by list
// identity) in either the main tree or the hoisted content, removes it, and
// keeps removing ancestors while they are at-rules that became empty. Style
// rule ancestors are never pruned.
func (o *optimizer) removeEmptyContainers(top *[]ast.Node, list *[]ast.Node) {
	for _, root := range []*[]ast.Node{top, &o.atRoots} {
		if pruneOwner(root, list) {
			return
		}
	}
}

func pruneOwner(root *[]ast.Node, list *[]ast.Node) bool {
	path, lists, ok := findOwner(root, list, nil, nil)
	if !ok {
		return false
	}
	for i := len(path) - 1; i >= 0; i-- {
		node := path[i]
		if i < len(path)-1 {
			atRule, ok := node.(*ast.AtRule)
			if !ok || len(atRule.Nodes) > 0 {
				break
			}
		}
		removeNode(lists[i], node)
	}
	return true
}

// findOwner searches for the node whose child list is exactly list,
// returning the ancestor chain (outermost first, owner last) and, parallel
// to it, the list each ancestor lives in.
func findOwner(parent *[]ast.Node, list *[]ast.Node, path []ast.Node, lists []*[]ast.Node) ([]ast.Node, []*[]ast.Node, bool) {
	for _, n := range *parent {
		children := containerList(n)
		if children == nil {
			continue
		}

		childPath := make([]ast.Node, len(path), len(path)+1)
		copy(childPath, path)
		childPath = append(childPath, n)

		childLists := make([]*[]ast.Node, len(lists), len(lists)+1)
		copy(childLists, lists)
		childLists = append(childLists, parent)

		if children == list {
			return childPath, childLists, true
		}
		if p, l, ok := findOwner(children, list, childPath, childLists); ok {
			return p, l, ok
		}
	}
	return nil, nil, false
}

func containerList(n ast.Node) *[]ast.Node {
	switch v := n.(type) {
	case *ast.StyleRule:
		return &v.Nodes
	case *ast.AtRule:
		return &v.Nodes
	default:
		return nil
	}
}

func removeNode(list *[]ast.Node, target ast.Node) {
	for i, n := range *list {
		if n == target {
			*list = append((*list)[:i], (*list)[i+1:]...)
			return
		}
	}
}
