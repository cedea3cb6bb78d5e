package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/gradlegen/gradlegen/internal/presets"
)

// NewPresetsCommand creates the presets command
func NewPresetsCommand(g *globalOptions) *cobra.Command {
	var details bool

	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List the built-in descriptor presets",
		Long: `Display the presets available to 'gradlegen init'.

Examples:
  gradlegen presets
  gradlegen presets --details`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := presets.RegisterBuiltinPresets(); err != nil {
				return fmt.Errorf("failed to register presets: %w", err)
			}

			list := presets.DefaultRegistry().List()
			out := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintln(out, "No presets available")
				return nil
			}

			successColor := color.New(color.FgGreen, color.Bold)
			metaColor := color.New(color.FgYellow)
			if g.noColor {
				successColor.DisableColor()
				metaColor.DisableColor()
			}

			successColor.Fprintln(out, "Available Presets:")
			fmt.Fprintln(out)

			w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "NAME\tVERSION\tDESCRIPTION")
			fmt.Fprintln(w, "----\t-------\t-----------")
			for _, p := range list {
				fmt.Fprintf(w, "%s\t%s\t%s\n", p.Name, p.Version, p.Description)
			}
			w.Flush()

			if details {
				for _, p := range list {
					fmt.Fprintf(out, "\n• %s\n", p.Name)
					if category, ok := p.Metadata["category"].(string); ok {
						fmt.Fprintf(out, "  Category: %s\n", category)
					}
					if len(p.Variables) > 0 {
						fmt.Fprintln(out, "  Variables:")
						for _, v := range p.Variables {
							def := ""
							if v.Default != nil {
								def = fmt.Sprintf(" [default: %v]", v.Default)
							}
							fmt.Fprintf(out, "    - %s: %s%s\n", v.Name, v.Description, def)
						}
					}
				}
			}

			fmt.Fprintln(out)
			metaColor.Fprintln(out, "Use 'gradlegen init --preset <name>' to create a descriptor from a preset")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&details, "details", "d", false, "Show each preset's variables")

	return cmd
}
