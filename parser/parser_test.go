/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package parser_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"bennypowers.dev/tsimtsum/ast"
	"bennypowers.dev/tsimtsum/parser"
)

// srcText slices the original source by an Offsets' input-side span.
func srcText(t *testing.T, loc *ast.Offsets) string {
	t.Helper()
	require.NotNil(t, loc)
	require.NotNil(t, loc.Original)
	return loc.Original.Code[loc.Src.Start:loc.Src.End]
}

func TestParse_RuleSet(t *testing.T) {
	css := "a.link { color: red; width: 0 }"
	nodes, err := parser.Parse([]byte(css), "test.css")
	require.NoError(t, err)
	require.Len(t, nodes, 1)

	rule, ok := nodes[0].(*ast.StyleRule)
	require.True(t, ok, "expected *ast.StyleRule, got %T", nodes[0])
	require.Equal(t, "a.link", rule.Selector)
	require.Equal(t, "a.link", srcText(t, rule.SelectorLoc))
	require.Len(t, rule.Nodes, 2)

	color, ok := rule.Nodes[0].(*ast.Declaration)
	require.True(t, ok)
	require.Equal(t, "color", color.Property)
	require.NotNil(t, color.Value)
	require.Equal(t, "red", *color.Value)
	require.Equal(t, "color", srcText(t, color.PropertyLoc))
	require.Equal(t, "red", srcText(t, color.ValueLoc))
	require.False(t, color.Important)

	// The body span covers the braces.
	body := srcText(t, rule.BodyLoc)
	require.Equal(t, byte('{'), body[0])
	require.Equal(t, byte('}'), body[len(body)-1])
}

func TestParse_Important(t *testing.T) {
	css := "a { color: red !important; }"
	nodes, err := parser.Parse([]byte(css), "test.css")
	require.NoError(t, err)

	rule := nodes[0].(*ast.StyleRule)
	decl := rule.Nodes[0].(*ast.Declaration)
	require.True(t, decl.Important)
	require.Equal(t, "red", *decl.Value)
	require.Equal(t, "red", srcText(t, decl.ValueLoc))
}

func TestParse_Comment(t *testing.T) {
	css := "/* hello */\na { color: red }"
	nodes, err := parser.Parse([]byte(css), "test.css")
	require.NoError(t, err)
	require.Len(t, nodes, 2)

	comment, ok := nodes[0].(*ast.Comment)
	require.True(t, ok, "expected *ast.Comment, got %T", nodes[0])
	require.Equal(t, " hello ", comment.Value)
	require.Equal(t, " hello ", srcText(t, comment.ValueLoc))
}

func TestParse_AtRuleWithBlock(t *testing.T) {
	css := "@media (min-width: 640px) { a { color: red } }"
	nodes, err := parser.Parse([]byte(css), "test.css")
	require.NoError(t, err)
	require.Len(t, nodes, 1)

	at, ok := nodes[0].(*ast.AtRule)
	require.True(t, ok, "expected *ast.AtRule, got %T", nodes[0])
	require.Equal(t, "@media", at.Name)
	require.Equal(t, "(min-width: 640px)", at.Params)
	require.Equal(t, "@media", srcText(t, at.NameLoc))
	require.Equal(t, "(min-width: 640px)", srcText(t, at.ParamsLoc))
	require.Len(t, at.Nodes, 1)

	inner, ok := at.Nodes[0].(*ast.StyleRule)
	require.True(t, ok)
	require.Equal(t, "a", inner.Selector)
}

func TestParse_AtRuleStatement(t *testing.T) {
	css := `@import "reset.css";`
	nodes, err := parser.Parse([]byte(css), "test.css")
	require.NoError(t, err)
	require.Len(t, nodes, 1)

	at, ok := nodes[0].(*ast.AtRule)
	require.True(t, ok, "expected *ast.AtRule, got %T", nodes[0])
	require.Equal(t, "@import", at.Name)
	require.Equal(t, `"reset.css"`, at.Params)
	require.Empty(t, at.Nodes)
}

func TestParse_Keyframes(t *testing.T) {
	css := "@keyframes spin { from { opacity: 0 } 50% { opacity: 0.5 } }"
	nodes, err := parser.Parse([]byte(css), "test.css")
	require.NoError(t, err)
	require.Len(t, nodes, 1)

	at := nodes[0].(*ast.AtRule)
	require.Equal(t, "@keyframes", at.Name)
	require.Equal(t, "spin", at.Params)
	require.Len(t, at.Nodes, 2)

	from, ok := at.Nodes[0].(*ast.StyleRule)
	require.True(t, ok, "keyframe step should map to a style rule")
	require.Equal(t, "from", from.Selector)
	require.Equal(t, "from", srcText(t, from.SelectorLoc))

	mid := at.Nodes[1].(*ast.StyleRule)
	require.Equal(t, "50%", mid.Selector)
}

func TestParse_CustomProperties(t *testing.T) {
	css := ":root { --color-primary: oklch(0.7 0.1 200); }"
	nodes, err := parser.Parse([]byte(css), "test.css")
	require.NoError(t, err)

	rule := nodes[0].(*ast.StyleRule)
	decl := rule.Nodes[0].(*ast.Declaration)
	require.Equal(t, "--color-primary", decl.Property)
	require.Equal(t, "oklch(0.7 0.1 200)", *decl.Value)
}

func TestParse_RecordsFileName(t *testing.T) {
	nodes, err := parser.Parse([]byte("a { color: red }"), "styles/main.css")
	require.NoError(t, err)

	rule := nodes[0].(*ast.StyleRule)
	require.Equal(t, "styles/main.css", rule.SelectorLoc.Original.File)
}

func TestParse_SyntaxError(t *testing.T) {
	_, err := parser.Parse([]byte("a { color: }"), "bad.css")
	require.Error(t, err)
	require.Contains(t, err.Error(), "bad.css")
}

func TestParse_Empty(t *testing.T) {
	nodes, err := parser.Parse([]byte(""), "empty.css")
	require.NoError(t, err)
	require.Empty(t, nodes)
}
