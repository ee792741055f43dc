package main

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"swcgen/internal/codegen"
	"swcgen/internal/settings"
	"swcgen/internal/watch"
)

func (a *app) generateCmd() *cobra.Command {
	var (
		outDir  string
		watchFS bool
	)
	cmd := &cobra.Command{
		Use:   "generate <file>",
		Short: "Generate C stubs",
		Long: `Generate Std_Types.h, Rte_Type.h and, per component, <Name>.h, <Name>.c
and Rte_<Name>.h. The output directory defaults to the output_dir setting,
relative to the directory of <file>.

With --watch the project is regenerated whenever the document, or for a
master any enabled module document, changes. Stop with Ctrl+C.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			s, err := a.setup(path)
			if err != nil {
				return err
			}
			dir := outDir
			if dir == "" {
				dir = s.OutputDir
				if !filepath.IsAbs(dir) {
					dir = filepath.Join(projectRoot(path), dir)
				}
			}
			opts, err := codegenOptions(s)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			files, err := a.generate(out, path, dir, opts)
			if err != nil || !watchFS {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.watch(ctx, out, path, dir, opts, files, s.Watch.Debounce)
		},
	}
	cmd.Flags().StringVarP(&outDir, "output", "o", "", "output directory")
	cmd.Flags().BoolVar(&watchFS, "watch", false, "regenerate when project documents change")
	return cmd
}

func codegenOptions(s *settings.Settings) ([]codegen.Option, error) {
	header, err := s.Header()
	if err != nil {
		return nil, err
	}
	if header == "" {
		return nil, nil
	}
	return []codegen.Option{codegen.WithHeader(header)}, nil
}

// generate loads path, writes the stubs into dir and prints the written
// paths. It returns the documents the project was loaded from.
func (a *app) generate(out io.Writer, path, dir string, opts []codegen.Option) ([]string, error) {
	doc, err := openDocument(path, a.logger)
	if err != nil {
		return nil, err
	}
	if doc.ws != nil {
		for _, issue := range doc.ws.Issues() {
			fmt.Fprintf(out, "%s module %s: %v\n", warnStyle.Render("skipped"), issue.Module, issue.Err)
		}
	}
	written, err := codegen.Generate(doc.view(), dir, opts...)
	for _, p := range written {
		fmt.Fprintln(out, p)
	}
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(out, "%s %d file(s) in %s\n", okStyle.Render("generated"), len(written), dir)
	return doc.files(), nil
}

func (a *app) watch(ctx context.Context, out io.Writer, path, dir string, opts []codegen.Option, files []string, debounce time.Duration) error {
	logger := a.logger.WithPrefix("watch")
	var w *watch.Watcher
	w, err := watch.New(watch.Config{
		Files:    files,
		Debounce: debounce,
		Logger:   logger,
		OnChange: func(_ context.Context, changed []string) error {
			logger.Info("regenerating", "changed", len(changed))
			next, err := a.generate(out, path, dir, opts)
			if err != nil {
				return err
			}
			return w.SetFiles(next)
		},
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s %d file(s), Ctrl+C to stop\n", dimStyle.Render("watching"), len(files))
	return w.Run(ctx)
}
