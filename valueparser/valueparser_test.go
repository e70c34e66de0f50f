/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package valueparser_test

import (
	"testing"

	"bennypowers.dev/tsimtsum/valueparser"
)

func TestParse_RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "keyword", input: "red"},
		{name: "shorthand", input: "1px solid red"},
		{name: "comma list", input: "serif, sans-serif"},
		{name: "var with fallback", input: "var(--accent, blue)"},
		{name: "nested functions", input: "calc(var(--size) * 2)"},
		{name: "color-mix", input: "color-mix(in oklab, var(--accent), transparent)"},
		{name: "quoted string with comma", input: `url("a,b.png")`},
		{name: "single-quoted string", input: "'Helvetica, Neue'"},
		{name: "slash separator", input: "1fr / 2fr"},
		{name: "escaped quote", input: `"a\"b"`},
		{name: "empty", input: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := valueparser.ToCSS(valueparser.Parse(tt.input))
			if got != tt.input {
				t.Errorf("ToCSS(Parse(%q)) = %q", tt.input, got)
			}
		})
	}
}

func TestParse_Structure(t *testing.T) {
	nodes := valueparser.Parse("color-mix(in oklab, var(--accent), transparent)")
	if len(nodes) != 1 {
		t.Fatalf("len(nodes) = %d, want 1", len(nodes))
	}
	call := nodes[0]
	if call.Kind != valueparser.KindFunction || call.Value != "color-mix" {
		t.Fatalf("node = %v %q, want function color-mix", call.Kind, call.Value)
	}

	var words []string
	var functions []string
	for _, n := range call.Nodes {
		switch n.Kind {
		case valueparser.KindWord:
			words = append(words, n.Value)
		case valueparser.KindFunction:
			functions = append(functions, n.Value)
		}
	}
	if len(words) != 3 || words[0] != "in" || words[1] != "oklab" || words[2] != "transparent" {
		t.Errorf("words = %v", words)
	}
	if len(functions) != 1 || functions[0] != "var" {
		t.Errorf("functions = %v", functions)
	}
}

func TestParse_BareGroup(t *testing.T) {
	nodes := valueparser.Parse("(1px + 2px)")
	if len(nodes) != 1 {
		t.Fatalf("len(nodes) = %d, want 1", len(nodes))
	}
	if nodes[0].Kind != valueparser.KindFunction || nodes[0].Value != "" {
		t.Errorf("node = %v %q, want anonymous function", nodes[0].Kind, nodes[0].Value)
	}
}

func TestParse_Permissive(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "unterminated function", input: "var(--a"},
		{name: "unterminated string", input: `"open`},
		{name: "stray close paren", input: "a) b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Must not panic; result still serializes.
			_ = valueparser.ToCSS(valueparser.Parse(tt.input))
		})
	}
}

func TestWalk_Replace(t *testing.T) {
	nodes := valueparser.Parse("color-mix(in oklab, var(--accent), transparent)")

	valueparser.Walk(&nodes, func(n *valueparser.Node, c *valueparser.Cursor) valueparser.WalkAction {
		if n.Kind == valueparser.KindFunction && n.Value == "var" {
			c.ReplaceWith(valueparser.Word("oklch(0.7 0.1 200)"))
			return valueparser.Skip
		}
		return valueparser.Continue
	})

	got := valueparser.ToCSS(nodes)
	want := "color-mix(in oklab, oklch(0.7 0.1 200), transparent)"
	if got != want {
		t.Errorf("ToCSS() = %q, want %q", got, want)
	}
}

func TestWalk_Stop(t *testing.T) {
	nodes := valueparser.Parse("a b c")
	visits := 0
	ok := valueparser.Walk(&nodes, func(n *valueparser.Node, c *valueparser.Cursor) valueparser.WalkAction {
		if n.Kind != valueparser.KindWord {
			return valueparser.Continue
		}
		visits++
		if n.Value == "b" {
			return valueparser.Stop
		}
		return valueparser.Continue
	})
	if ok {
		t.Error("Walk() = true, want false after Stop")
	}
	if visits != 2 {
		t.Errorf("visits = %d, want 2", visits)
	}
}

func TestWalk_Parent(t *testing.T) {
	nodes := valueparser.Parse("calc(var(--x))")
	valueparser.Walk(&nodes, func(n *valueparser.Node, c *valueparser.Cursor) valueparser.WalkAction {
		if n.Kind == valueparser.KindFunction && n.Value == "var" {
			if c.Parent == nil || c.Parent.Value != "calc" {
				t.Errorf("Parent = %v, want calc", c.Parent)
			}
		}
		return valueparser.Continue
	})
}
