package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"swcgen/internal/workspace"
)

func (a *app) moduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "module",
		Short: "Manage the modules of a master",
	}
	cmd.AddCommand(
		a.moduleListCmd(),
		a.moduleEnableCmd("enable", true),
		a.moduleEnableCmd("disable", false),
		a.moduleRemoveCmd(),
	)
	return cmd
}

func (a *app) openMaster(path string) (*workspace.Workspace, error) {
	if _, err := a.setup(path); err != nil {
		return nil, err
	}
	doc, err := openDocument(path, a.logger)
	if err != nil {
		return nil, err
	}
	return doc.master()
}

func (a *app) moduleListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <master>",
		Short: "List modules in master order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := a.openMaster(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), titleStyle.Render(ws.Name()))
			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("NAME", "STATE", "COMPONENTS", "PATH")
			for _, ref := range ws.Refs() {
				state, count := "disabled", "-"
				if mod, ok := ws.Module(ref.Name); ok {
					count = fmt.Sprint(len(mod.Components))
				}
				switch {
				case ref.Enabled && ws.Loaded(ref.Name):
					state = "enabled"
				case ref.Enabled:
					state = "failed"
				}
				t.Row(ref.Name, state, count, ref.Path)
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			if n := len(ws.GlobalConnections()); n > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n", dimStyle.Render(fmt.Sprintf("%d global connection(s)", n)))
			}
			return nil
		},
	}
}

func (a *app) moduleEnableCmd(verb string, enabled bool) *cobra.Command {
	short := "Include a module in the merged view"
	if !enabled {
		short = "Exclude a module from the merged view"
	}
	return &cobra.Command{
		Use:   verb + " <master> <name>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := a.openMaster(args[0])
			if err != nil {
				return err
			}
			if err := ws.SetEnabled(args[1], enabled); err != nil {
				return err
			}
			if err := ws.SaveMaster(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", verb+"d", nameStyle.Render(args[1]))
			return nil
		},
	}
}

func (a *app) moduleRemoveCmd() *cobra.Command {
	var deleteFile bool
	cmd := &cobra.Command{
		Use:   "remove <master> <name>",
		Short: "Unlist a module",
		Long: `Unlist a module from the master. Global connections that reference its
components are kept but drop out of the merged view. With --delete-file the
module document is deleted as well.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := a.openMaster(args[0])
			if err != nil {
				return err
			}
			if err := ws.RemoveModule(args[1], deleteFile); err != nil {
				return err
			}
			if err := ws.SaveMaster(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", nameStyle.Render(args[1]))
			return nil
		},
	}
	cmd.Flags().BoolVar(&deleteFile, "delete-file", false, "also delete the module document")
	return cmd
}
