/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package build provides the build command for tsimtsum.
package build

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/tsimtsum/ast"
	"bennypowers.dev/tsimtsum/config"
	"bennypowers.dev/tsimtsum/optimize"
	"bennypowers.dev/tsimtsum/parser"
	"bennypowers.dev/tsimtsum/printer"
)

// Cmd is the build cobra command.
var Cmd = &cobra.Command{
	Use:   "build [files...]",
	Short: "Optimize style sheets and print the result",
	Long: `Parse style sheets, rewrite them into minimal print-ready form, and print
the optimized CSS.

With no arguments, input files come from .config/tsimtsum.{yaml,yml,json}.

Examples:
  # Optimize a file to stdout
  tsimtsum build styles.css

  # Glob inputs, write to a file
  tsimtsum build 'src/**/*.css' -o dist/styles.css

  # Disable polyfills
  tsimtsum build --polyfills none styles.css

  # Show the original-to-generated span table
  tsimtsum build --map-report styles.css`,
	Args: cobra.ArbitraryArgs,
	RunE: run,
}

func init() {
	Cmd.Flags().StringP("output", "o", "", "Output file (default: stdout)")
	Cmd.Flags().String("polyfills", "", "Polyfill selection: all, none, or a comma list of color-mix, at-property")
	Cmd.Flags().Bool("map-report", false, "Print a src -> dst span table to stderr")
	Cmd.Flags().Bool("dump-ast", false, "Print the optimized tree to stderr")
}

func run(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	polyfillsFlag, _ := cmd.Flags().GetString("polyfills")
	mapReport, _ := cmd.Flags().GetBool("map-report")
	dumpAST, _ := cmd.Flags().GetBool("dump-ast")

	cfg := config.LoadOrDefault(".")
	if prefix := viper.GetString("prefix"); prefix != "" {
		cfg.Prefix = prefix
	}

	files := args
	if len(files) == 0 {
		var err error
		files, err = cfg.ExpandFiles(".")
		if err != nil {
			return fmt.Errorf("error expanding config files: %w", err)
		}
	}
	if len(files) == 0 {
		return fmt.Errorf("no files specified and no files found in config")
	}

	polyfills, err := parsePolyfills(polyfillsFlag, cfg)
	if err != nil {
		return err
	}

	var nodes []ast.Node
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("error reading %s: %w", file, err)
		}
		parsed, err := parser.Parse(data, file)
		if err != nil {
			return fmt.Errorf("error parsing %s: %w", file, err)
		}
		nodes = append(nodes, parsed...)
	}

	optimized := optimize.Optimize(nodes, cfg.Theme(), polyfills)

	if dumpAST {
		fmt.Fprint(os.Stderr, ast.Dump(optimized))
	}

	css := printer.ToCSS(optimized, mapReport)

	if mapReport {
		writeMapReport(os.Stderr, optimized)
	}

	if output != "" {
		return os.WriteFile(output, []byte(css), 0644)
	}
	fmt.Print(css)
	return nil
}

func parsePolyfills(flag string, cfg *config.Config) (optimize.Polyfills, error) {
	if flag == "" {
		return cfg.Polyfills.Flags(), nil
	}
	switch flag {
	case "all":
		return optimize.PolyfillAll, nil
	case "none":
		return optimize.PolyfillNone, nil
	}

	flags := optimize.PolyfillNone
	for _, name := range strings.Split(flag, ",") {
		switch strings.TrimSpace(name) {
		case "color-mix":
			flags |= optimize.PolyfillColorMix
		case "at-property":
			flags |= optimize.PolyfillAtProperty
		default:
			return 0, fmt.Errorf("unknown polyfill %q", name)
		}
	}
	return flags, nil
}

// writeMapReport prints one line per tracked field: the field name, its
// span in the original source, its span in the generated text, and the
// field text.
func writeMapReport(w io.Writer, nodes []ast.Node) {
	ast.Walk(&nodes, func(n ast.Node, c *ast.Cursor) ast.WalkAction {
		switch v := n.(type) {
		case *ast.StyleRule:
			reportSpan(w, "selector", v.Selector, v.SelectorLoc)
			reportSpan(w, "body", "", v.BodyLoc)
		case *ast.AtRule:
			reportSpan(w, "name", v.Name, v.NameLoc)
			reportSpan(w, "params", v.Params, v.ParamsLoc)
			reportSpan(w, "body", "", v.BodyLoc)
		case *ast.Declaration:
			reportSpan(w, "property", v.Property, v.PropertyLoc)
			if v.Value != nil {
				reportSpan(w, "value", *v.Value, v.ValueLoc)
			}
		case *ast.Comment:
			reportSpan(w, "comment", v.Value, v.ValueLoc)
		}
		return ast.Continue
	})
}

func reportSpan(w io.Writer, field, text string, loc *ast.Offsets) {
	if loc == nil || loc.Dst == nil {
		return
	}
	fmt.Fprintf(w, "%s\t%d-%d -> %d-%d\t%s\n",
		field, loc.Src.Start, loc.Src.End, loc.Dst.Start, loc.Dst.End, text)
}
