package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"swcgen/internal/model"
)

func (a *app) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file> <provider-swc> <provider-port> <requester-swc> <requester-port>",
		Short: "Check whether a connection would be accepted",
		Long: `Check a prospective connection against the project without changing it.
Components and ports are given by name or UID. Prints OK or the rejection
reason and exits non-zero when rejected.`,
		Args: cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.setup(args[0]); err != nil {
				return err
			}
			doc, err := openDocument(args[0], a.logger)
			if err != nil {
				return err
			}
			e := &doc.view().Elements
			ep := resolveEndpoints(e, args[1], args[2], args[3], args[4])
			err = model.ValidateConnection(e, ep.providerSwc, ep.providerPort, ep.requesterSwc, ep.requesterPort)
			return reportValidation(cmd, err)
		},
	}
}

func reportValidation(cmd *cobra.Command, err error) error {
	var ve *model.ValidationError
	if errors.As(err, &ve) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s\n", errorStyle.Render("rejected"), ve.Reason, ve.Message)
		return &exitError{code: 1}
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render("OK"))
	return nil
}

func (a *app) connectCmd() *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "connect <file> [<provider-swc> <provider-port> <requester-swc> <requester-port>]",
		Short: "Validate and add a connection",
		Long: `Validate a connection and, when accepted, add it and save the document.
For a master the connection becomes a global connection. Components and
ports are given by name or UID; without them an interactive prompt asks
for each one.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 && len(args) != 5 {
				return fmt.Errorf("accepts 1 or 5 arg(s), received %d", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.setup(args[0]); err != nil {
				return err
			}
			doc, err := openDocument(args[0], a.logger)
			if err != nil {
				return err
			}
			e := &doc.view().Elements

			ends := args[1:]
			if len(ends) == 0 {
				answers, err := promptQuestions(endpointQuestions(e))
				if err != nil {
					return fmt.Errorf("prompt: %w", err)
				}
				ends = []string{answers["provider_swc"], answers["provider_port"], answers["requester_swc"], answers["requester_port"]}
			}
			ep := resolveEndpoints(e, ends[0], ends[1], ends[2], ends[3])

			c, err := doc.connect(name, ep)
			if err != nil {
				return reportValidation(cmd, err)
			}
			if err := doc.save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s.%s -> %s.%s (uid %s)\n", okStyle.Render("connected"),
				ends[0], ends[1], ends[2], ends[3], c.UID)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "connection name")
	return cmd
}

// endpointQuestions asks for the four endpoints. Each answer must name an
// existing component or port with the right direction; suggestions narrow
// to what can still form a legal connection with the answers so far.
func endpointQuestions(e *model.Elements) []question {
	portsOf := func(swcArg string, dir model.PortDirection, iface model.UID) []string {
		swc, ok := findComponent(e, swcArg)
		if !ok {
			return nil
		}
		var out []string
		for _, p := range swc.Ports {
			if p.Direction == dir && p.InterfaceUID != "" && (iface == "" || p.InterfaceUID == iface) {
				out = append(out, p.Name)
			}
		}
		return out
	}
	componentsWith := func(dir model.PortDirection, iface model.UID) []string {
		var out []string
		for i := range e.Components {
			if len(portsOf(e.Components[i].Name, dir, iface)) > 0 {
				out = append(out, e.Components[i].Name)
			}
		}
		return out
	}
	// providerIface is the interface of the chosen provider port, if any.
	providerIface := func(answers map[string]string) model.UID {
		swc, ok := findComponent(e, answers["provider_swc"])
		if !ok {
			return ""
		}
		p, ok := findPort(swc, answers["provider_port"])
		if !ok {
			return ""
		}
		return p.InterfaceUID
	}
	component := func(answer string, _ map[string]string) error {
		if _, ok := findComponent(e, answer); !ok {
			return fmt.Errorf("no component %q", answer)
		}
		return nil
	}
	port := func(swcKey string, dir model.PortDirection) func(string, map[string]string) error {
		return func(answer string, answers map[string]string) error {
			swc, ok := findComponent(e, answers[swcKey])
			if !ok {
				return fmt.Errorf("no component %q", answers[swcKey])
			}
			p, ok := findPort(swc, answer)
			if !ok {
				return fmt.Errorf("no port %q on %s", answer, swc.Name)
			}
			if p.Direction != dir {
				return fmt.Errorf("port %s.%s is not %s", swc.Name, p.Name, dir)
			}
			return nil
		}
	}

	return []question{
		{
			Key: "provider_swc", Prompt: "Provider component",
			Suggest:  func(map[string]string) []string { return componentsWith(model.Provided, "") },
			Validate: component,
		},
		{
			Key: "provider_port", Prompt: "Provider port",
			Suggest: func(a map[string]string) []string {
				return portsOf(a["provider_swc"], model.Provided, "")
			},
			Validate: port("provider_swc", model.Provided),
		},
		{
			Key: "requester_swc", Prompt: "Requester component",
			Suggest: func(a map[string]string) []string {
				return componentsWith(model.Required, providerIface(a))
			},
			Validate: component,
		},
		{
			Key: "requester_port", Prompt: "Requester port",
			Suggest: func(a map[string]string) []string {
				return portsOf(a["requester_swc"], model.Required, providerIface(a))
			},
			Validate: port("requester_swc", model.Required),
		},
	}
}
