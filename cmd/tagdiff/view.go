package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"tagdiff/internal/app"
	"tagdiff/internal/difftree"
)

func newViewCmd(g *globalOptions) *cobra.Command {
	var treePath string

	cmd := &cobra.Command{
		Use:   "view [<file-a> <file-b>]",
		Short: "Browse a diff tree interactively",
		Long: `The view command opens the interactive tree browser. The tree comes either
from a JSON file produced earlier (--tree) or from the configured comparator.

Example:
  tagdiff view before.dcm after.dcm
  tagdiff view --tree diff.json`,
		Args: cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := app.Options{
				RegexDefault: g.cfg.UI.RegexDefault,
				Color:        !g.noColor,
			}

			switch {
			case treePath != "":
				if len(args) > 0 {
					return fmt.Errorf("--tree cannot be combined with file arguments")
				}
				tree, err := difftree.LoadFile(treePath)
				if err != nil {
					return err
				}
				opts.Tree = tree
				opts.Title = treePath
			case len(args) == 2:
				cmp, err := g.comparator()
				if err != nil {
					return err
				}
				opts.Comparator = cmp
				opts.PathA, opts.PathB = args[0], args[1]
			default:
				return errNoInput
			}

			program := tea.NewProgram(app.NewModel(opts), tea.WithAltScreen())
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("application error: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&treePath, "tree", "", "Read a pre-computed diff tree (JSON)")
	return cmd
}
