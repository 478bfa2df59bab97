// Package main implements the rst2x command-line tool.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/rst2x/internal/rbuild"
	"github.com/GriffinCanCode/rst2x/internal/rcache"
	"github.com/GriffinCanCode/rst2x/internal/rconfig"
	"github.com/GriffinCanCode/rst2x/internal/rlog"
	"github.com/GriffinCanCode/rst2x/internal/rpath"
	"github.com/GriffinCanCode/rst2x/internal/rwatch"
	"github.com/GriffinCanCode/rst2x/pkg/rst"
)

const version = "0.1.0"

func main() {
	rlog.InitDev()

	root := &cobra.Command{
		Use:   "rst2x",
		Short: "Parse reStructuredText (with a Markdown inline subset) into a structured document tree",
	}

	root.AddCommand(newParseCmd(), newBuildCmd(), newWatchCmd(), newVersionCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func loadOptions(configPath string) rst.ParseOptions {
	cfg, err := rconfig.Load(configPath)
	if err != nil {
		rlog.Warn("failed to load config, using defaults", "path", configPath, "error", err)
		cfg = rconfig.Default()
	}
	return cfg.ParseOptions()
}

func newParseCmd() *cobra.Command {
	var configPath string
	var skipPounds, smileys, rawDirective, markdown bool

	cmd := &cobra.Command{
		Use:   "parse <file.rst>",
		Short: "Parse a single document and print its AST",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}

			opts := loadOptions(configPath)
			if cmd.Flags().Changed("skip-pounds") {
				opts.SkipPounds = skipPounds
			}
			if cmd.Flags().Changed("smileys") {
				opts.SupportSmileys = smileys
			}
			if cmd.Flags().Changed("raw-directive") {
				opts.SupportRawDirective = rawDirective
			}
			if cmd.Flags().Changed("markdown") {
				opts.SupportMarkdown = markdown
			}

			findFile := rpath.DefaultFindFile(rpath.SearchPaths{BaseDir: filepath.Dir(path)})
			ast, hasToc, err := rst.Parse(string(data), path, 0, 0, opts, findFile, nil)
			if err != nil {
				return err
			}

			rst.Dump(os.Stdout, ast, 0)
			if hasToc {
				fmt.Fprintln(os.Stdout, "(document has a table of contents)")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", ".rst2x.yaml", "path to config file")
	cmd.Flags().BoolVar(&skipPounds, "skip-pounds", false, "strip up to two leading '#' per line")
	cmd.Flags().BoolVar(&smileys, "smileys", false, "recognize smileys in inline text")
	cmd.Flags().BoolVar(&rawDirective, "raw-directive", false, "honor the raw directive")
	cmd.Flags().BoolVar(&markdown, "markdown", false, "enable fenced ``` code blocks")
	return cmd
}

func newBuildCmd() *cobra.Command {
	var configPath string
	var concurrency int

	cmd := &cobra.Command{
		Use:   "build <file.rst>...",
		Short: "Parse many documents concurrently, optionally backed by a persistent parse cache",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rconfig.Load(configPath)
			if err != nil {
				cfg = rconfig.Default()
			}

			var cache *rcache.Cache
			if cfg.CacheDB != "" {
				cache, err = rcache.Open(cfg.CacheDB)
				if err != nil {
					return fmt.Errorf("open cache: %w", err)
				}
				defer cache.Close()
			}

			reqs := make([]rbuild.Request, len(args))
			for i, path := range args {
				reqs[i] = rbuild.Request{Path: path, Options: cfg.ParseOptions()}
			}

			runner := &rbuild.Runner{Cache: cache, Concurrency: concurrency}
			start := time.Now()
			results, err := runner.Run(context.Background(), reqs)
			if err != nil {
				return err
			}

			failed := 0
			for _, r := range results {
				if r.Err != nil {
					failed++
					fmt.Fprintf(os.Stderr, "%s: %v\n", r.Path, r.Err)
					continue
				}
				fmt.Printf("%s: ok\n", r.Path)
			}
			fmt.Printf("built %d/%d documents in %s\n", len(results)-failed, len(results), time.Since(start))
			if failed > 0 {
				return fmt.Errorf("%d document(s) failed", failed)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", ".rst2x.yaml", "path to config file")
	cmd.Flags().IntVar(&concurrency, "jobs", 0, "max concurrent parses (0 = unbounded)")
	return cmd
}

func newWatchCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "watch <dir>...",
		Short: "Re-parse documents as they change",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := loadOptions(configPath)

			handler := func(path string) {
				data, err := os.ReadFile(path)
				if err != nil {
					fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
					return
				}
				findFile := rpath.DefaultFindFile(rpath.SearchPaths{BaseDir: filepath.Dir(path)})
				_, _, err = rst.Parse(string(data), path, 0, 0, opts, findFile, nil)
				if err != nil {
					fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
					return
				}
				fmt.Printf("%s: ok\n", path)
			}

			w, err := rwatch.New(args, handler)
			if err != nil {
				return err
			}

			stop := make(chan struct{})
			fmt.Println("watching for changes, press Ctrl+C to stop")
			return w.Run(stop)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", ".rst2x.yaml", "path to config file")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the rst2x version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("rst2x version %s\n", version)
		},
	}
}
