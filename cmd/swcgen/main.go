// Command swcgen models networks of software components, validates their
// port connections and generates C stubs for them.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"swcgen/internal/settings"
)

// exitError carries a process exit code out of a RunE handler. A nil err
// means the command already reported the problem.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return fmt.Sprintf("exit status %d", e.code)
}

func (e *exitError) Unwrap() error { return e.err }

// app holds the state shared by every subcommand.
type app struct {
	cfgFile string
	verbose bool
	stderr  io.Writer
	logger  *log.Logger
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stderr: stderr, logger: log.New(io.Discard)}
	root := &cobra.Command{
		Use:   "swcgen",
		Short: "Component network modeller and C stub generator",
		Long: titleStyle.Render("swcgen") + subtitleStyle.Render(" - component network modeller and C stub generator") + `

A project is either a single YAML document or a master document listing
module documents. Every command taking <file> accepts both.

` + subtitleStyle.Render("Examples:") + `
  swcgen new demo                          Write the multi-module example
  swcgen check demo/master.yaml            Report load issues and dangling references
  swcgen generate demo/master.yaml -o out  Generate C stubs into out/
  swcgen module list demo/master.yaml      Show the modules of a master`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "settings file (default <project>/.swcgen/settings.yaml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		a.newCmd(),
		a.checkCmd(),
		a.validateCmd(),
		a.connectCmd(),
		a.generateCmd(),
		a.moduleCmd(),
		a.whereCmd(),
		a.reportCmd(),
	)
	return root
}

// setup loads the settings for the project containing path and configures
// the logger from them.
func (a *app) setup(path string) (*settings.Settings, error) {
	s, used, err := settings.Load(projectRoot(path), a.cfgFile)
	if err != nil {
		return nil, err
	}
	level := s.Level()
	if a.verbose {
		level = log.DebugLevel
	}
	a.logger = log.NewWithOptions(a.stderr, log.Options{Prefix: "swcgen", Level: level})
	if used != "" {
		a.logger.Debug("settings loaded", "file", used)
	}
	return s, nil
}

// projectRoot is the directory holding a project document, or path itself
// when it is a directory.
func projectRoot(path string) string {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return path
	}
	return filepath.Dir(path)
}

func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)
	err := root.Execute()
	if err == nil {
		return 0
	}
	var ee *exitError
	if errors.As(err, &ee) {
		if ee.err != nil {
			fmt.Fprintln(stderr, errorStyle.Render("error:"), ee.err)
		}
		return ee.code
	}
	fmt.Fprintln(stderr, errorStyle.Render("error:"), err)
	return 1
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
