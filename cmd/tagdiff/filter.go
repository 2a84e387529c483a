package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"tagdiff/internal/diffview"
	"tagdiff/internal/export"
	"tagdiff/internal/filter"
	"tagdiff/internal/search"
)

const noMatchesText = "No matches found."

type filterOptions struct {
	treePath  string
	terms     []string
	patterns  []string
	format    string
	expandAll bool
	width     int
}

func newFilterCmd(g *globalOptions) *cobra.Command {
	opts := &filterOptions{}

	cmd := &cobra.Command{
		Use:   "filter [<file-a> <file-b>]",
		Short: "Filter a diff tree and print the result",
		Long: `The filter command applies one or more filters to a diff tree and prints the
nodes that remain. A node is kept when any filter matches it or one of its
descendants. Filters given with --term are plain substrings, filters given with
--regex are regular expressions. Both are case-insensitive.

Example:
  tagdiff filter --tree diff.json -t patient
  tagdiff filter a.dcm b.dcm -r '^\(0008' --format json
  tagdiff filter --tree diff.json -t uid --format unified`,
		Args: cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFilter(cmd, g, opts, args)
		},
	}
	cmd.Flags().StringVar(&opts.treePath, "tree", "", "Read a pre-computed diff tree (JSON)")
	cmd.Flags().StringArrayVarP(&opts.terms, "term", "t", nil, "Substring filter (repeatable)")
	cmd.Flags().StringArrayVarP(&opts.patterns, "regex", "r", nil, "Regular expression filter (repeatable)")
	cmd.Flags().StringVar(&opts.format, "format", "text", "Output format: text, report, json or unified")
	cmd.Flags().BoolVar(&opts.expandAll, "expand-all", false, "Expand every node in text output")
	cmd.Flags().IntVar(&opts.width, "width", 160, "Table width for text output")
	return cmd
}

func (o *filterOptions) predicates() ([]search.Predicate, error) {
	preds := make([]search.Predicate, 0, len(o.terms)+len(o.patterns))
	for _, term := range o.terms {
		p, err := search.New(term, false)
		if err != nil {
			return nil, fmt.Errorf("invalid filter: %w", err)
		}
		preds = append(preds, p)
	}
	for _, pattern := range o.patterns {
		p, err := search.New(pattern, true)
		if err != nil {
			return nil, fmt.Errorf("invalid filter: %w", err)
		}
		preds = append(preds, p)
	}
	return preds, nil
}

func runFilter(cmd *cobra.Command, g *globalOptions, opts *filterOptions, args []string) error {
	preds, err := opts.predicates()
	if err != nil {
		return err
	}

	tree, err := g.loadTree(cmd.Context(), opts.treePath, args)
	if err != nil {
		return err
	}

	res := filter.Filter(tree, preds)
	rows := diffview.ProjectAll(res)
	out := cmd.OutOrStdout()
	color := g.colorFor(out)

	switch opts.format {
	case "text":
		return writeTable(out, rows, res.NoMatches(), opts, color)
	case "report":
		_, err := fmt.Fprintln(out, export.Plain(rows, res.NoMatches(), reportTitle(res)))
		return err
	case "json":
		return export.JSON(out, export.NewDocument(rows, res.NoMatches()), color)
	case "unified":
		if res.NoMatches() {
			_, err := fmt.Fprintln(out, noMatchesText)
			return err
		}
		data, err := export.Unified(rows)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	}
	return fmt.Errorf("unknown format %q (want text, report, json or unified)", opts.format)
}

func writeTable(out io.Writer, rows []diffview.Row, noMatches bool, opts *filterOptions, color bool) error {
	if noMatches {
		_, err := fmt.Fprintln(out, noMatchesText)
		return err
	}

	state := make(diffview.ExpandState)
	if opts.expandAll {
		state = diffview.ExpandAll(rows)
	}
	ro := diffview.RenderOptions{Width: opts.width, Cursor: -1, Color: color}
	if _, err := fmt.Fprintln(out, diffview.Header(ro)); err != nil {
		return err
	}
	for _, line := range diffview.RenderTable(diffview.Flatten(rows, state), ro) {
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	return nil
}

func reportTitle(res filter.Result) string {
	if !res.Filtering {
		return fmt.Sprintf("Diff report (%d nodes)", res.Total)
	}
	return fmt.Sprintf("Filtered diff (%d matches, %d of %d nodes)", res.Matches, res.Visible, res.Total)
}
