package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"swcgen/internal/model"
	"swcgen/internal/report"
	"swcgen/internal/settings"
	"swcgen/internal/workspace"
)

// SingleFile is the document name written by new --single.
const SingleFile = "project.yaml"

// ---------------------------------------------------------------------------
// new
// ---------------------------------------------------------------------------

func (a *app) newCmd() *cobra.Command {
	var single bool
	cmd := &cobra.Command{
		Use:   "new <dir>",
		Short: "Write the example project",
		Long: `Write the example project into <dir>, together with a default
.swcgen/settings.yaml.

By default the project is split into a master and four module documents.
With --single one self-contained project document is written instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			if _, err := a.setup(dir); err != nil {
				return err
			}
			var path string
			if single {
				path = filepath.Join(dir, SingleFile)
				if err := model.SaveProject(model.ExampleProject(), path); err != nil {
					return err
				}
			} else {
				ws, err := workspace.NewExample(dir, workspace.WithLogger(a.logger.WithPrefix("workspace")))
				if err != nil {
					return err
				}
				path = ws.Path()
			}
			if err := settings.Write(dir, settings.Default()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&single, "single", false, "write a single project document")
	return cmd
}

// ---------------------------------------------------------------------------
// check
// ---------------------------------------------------------------------------

func (a *app) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Report load issues and dangling references",
		Long: `Load a project or master and report every module that failed to load,
every global connection left out of the merged view and every UID reference
that does not resolve. Exits non-zero when anything is reported.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.setup(args[0]); err != nil {
				return err
			}
			doc, err := openDocument(args[0], a.logger)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			problems := 0
			if doc.ws != nil {
				for _, issue := range doc.ws.Issues() {
					fmt.Fprintf(out, "%s module %s: %v\n", warnStyle.Render("skipped"), issue.Module, issue.Err)
					problems++
				}
				for _, c := range doc.ws.Dropped() {
					fmt.Fprintf(out, "%s connection %s: endpoint component not in merged view\n",
						warnStyle.Render("dropped"), connectionLabel(c))
					problems++
				}
			}
			for _, err := range doc.view().CheckReferences() {
				fmt.Fprintf(out, "%s %v\n", errorStyle.Render("invalid"), err)
				problems++
			}
			if problems > 0 {
				return &exitError{code: 1, err: fmt.Errorf("%d problem(s) found", problems)}
			}
			p := doc.view()
			fmt.Fprintf(out, "%s %d component(s), %d interface(s), %d connection(s)\n",
				okStyle.Render("OK"), len(p.Components), len(p.Interfaces), len(p.Connections))
			return nil
		},
	}
}

func connectionLabel(c model.PortConnection) string {
	if c.Name != "" {
		return c.Name
	}
	return string(c.UID)
}

// ---------------------------------------------------------------------------
// where
// ---------------------------------------------------------------------------

func (a *app) whereCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "where <master> <uid>",
		Short: "Show which module declares a UID",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.setup(args[0]); err != nil {
				return err
			}
			doc, err := openDocument(args[0], a.logger)
			if err != nil {
				return err
			}
			ws, err := doc.master()
			if err != nil {
				return err
			}
			uid := model.UID(args[1])
			if name, ok := ws.Owner(uid); ok {
				fmt.Fprintln(cmd.OutOrStdout(), name)
				return nil
			}
			for _, c := range ws.GlobalConnections() {
				if c.UID == uid {
					fmt.Fprintln(cmd.OutOrStdout(), "(master: global connection)")
					return nil
				}
			}
			return &exitError{code: 1, err: fmt.Errorf("uid %s is not declared by any loaded module", uid)}
		},
	}
}

// ---------------------------------------------------------------------------
// report
// ---------------------------------------------------------------------------

func (a *app) reportCmd() *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:   "report <file>",
		Short: "Write a markdown overview of the project",
		Long: `Write a markdown overview: an index, one page per component and per
interface, and a Mermaid graph of the connections. The default output
directory is "report" next to <file>.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.setup(args[0]); err != nil {
				return err
			}
			doc, err := openDocument(args[0], a.logger)
			if err != nil {
				return err
			}
			if outDir == "" {
				outDir = filepath.Join(projectRoot(args[0]), "report")
			}
			b, err := report.Build(doc.view())
			if err != nil {
				return err
			}
			written, err := report.Write(b, outDir)
			for _, p := range written {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return err
		},
	}
	cmd.Flags().StringVarP(&outDir, "output", "o", "", "output directory")
	return cmd
}
