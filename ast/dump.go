/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package ast

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xlab/treeprint"
)

// Dump renders a tree for debugging. The output is not CSS; use the printer
// package for serialization.
func Dump(nodes []Node) string {
	tree := treeprint.New()
	dumpInto(tree, nodes)
	return tree.String()
}

func dumpInto(branch treeprint.Tree, nodes []Node) {
	for _, n := range nodes {
		switch v := n.(type) {
		case *StyleRule:
			dumpInto(branch.AddBranch(fmt.Sprintf("rule %s", v.Selector)), v.Nodes)
		case *AtRule:
			label := v.Name
			if v.Params != "" {
				label += " " + v.Params
			}
			dumpInto(branch.AddBranch(label), v.Nodes)
		case *Declaration:
			value := "<deleted>"
			if v.Value != nil {
				value = *v.Value
			}
			if v.Important {
				value += " !important"
			}
			branch.AddNode(fmt.Sprintf("%s: %s", v.Property, value))
		case *Comment:
			branch.AddNode("/*" + v.Value + "*/")
		case *Context:
			keys := make([]string, 0, len(v.Values))
			for k := range v.Values {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			dumpInto(branch.AddBranch("context "+strings.Join(keys, ",")), v.Nodes)
		case *AtRoot:
			dumpInto(branch.AddBranch("at-root"), v.Nodes)
		default:
			panic(fmt.Sprintf("ast: unexpected node type %T", n))
		}
	}
}
