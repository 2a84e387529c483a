package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"tagdiff/internal/compare"
	"tagdiff/internal/config"
	"tagdiff/internal/difftree"
	"tagdiff/internal/logger"
)

// globalOptions holds the persistent flags and the config they resolve to.
type globalOptions struct {
	configPath string
	verbose    bool
	logDir     string
	noColor    bool

	cfg config.AppConfig
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{cfg: config.Default()}

	root := &cobra.Command{
		Use:   "tagdiff",
		Short: "Filter and browse attribute diff trees",
		Long: `tagdiff filters a hierarchical attribute diff between two files.
Filters match a node's tag, name and both values, case-insensitively. Ancestors of
matching nodes are kept so every match stays reachable in the tree.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup()
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/tagdiff/config.json)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&opts.logDir, "log-dir", "", "Write logs to this directory")
	root.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")

	root.AddCommand(
		newViewCmd(opts),
		newFilterCmd(opts),
		newServeCmd(opts),
		newVersionCmd(),
	)
	return root
}

func execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func (o *globalOptions) setup() error {
	var err error
	if o.configPath != "" {
		o.cfg, err = config.LoadFromPath(o.configPath)
	} else {
		o.cfg, _, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	level := logger.ParseLevel(o.cfg.Log.Level)
	if o.logDir != "" {
		o.cfg.Log.Dir = o.logDir
		o.cfg.Log.Enabled = true
	}
	if o.verbose {
		o.cfg.Log.Enabled = true
		level = slog.LevelDebug
	}
	return logger.Init(logger.Options{
		Enabled: o.cfg.Log.Enabled,
		LogDir:  o.cfg.Log.Dir,
		Level:   level,
	})
}

func (o *globalOptions) comparator() (compare.Comparator, error) {
	return compare.New(compare.Options{
		URL:     o.cfg.Comparator.URL,
		Command: o.cfg.Comparator.Command,
		Timeout: o.cfg.Comparator.Timeout(),
	})
}

var errNoInput = errors.New("either --tree or two files are required")

// loadTree reads a pre-computed tree when treePath is set, otherwise runs the
// configured comparator on the two files in args.
func (o *globalOptions) loadTree(ctx context.Context, treePath string, args []string) ([]difftree.Node, error) {
	if treePath != "" {
		if len(args) > 0 {
			return nil, errors.New("--tree cannot be combined with file arguments")
		}
		return difftree.LoadFile(treePath)
	}
	if len(args) != 2 {
		return nil, errNoInput
	}
	cmp, err := o.comparator()
	if err != nil {
		return nil, err
	}
	return cmp.Compare(ctx, args[0], args[1])
}

func (o *globalOptions) colorFor(w io.Writer) bool {
	if o.noColor {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
