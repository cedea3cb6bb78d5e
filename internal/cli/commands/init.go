package commands

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/gradlegen/gradlegen/internal/cli/config"
	"github.com/gradlegen/gradlegen/internal/cli/ui"
	"github.com/gradlegen/gradlegen/internal/presets"
)

// DefaultPreset is used by init when no preset is chosen
const DefaultPreset = "android-app"

type initOptions struct {
	preset      string
	name        string
	set         []string
	interactive bool
	force       bool
}

// NewInitCommand creates the init command
func NewInitCommand(g *globalOptions) *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Create a gradlegen.yml from a preset",
		Long: `Create a project descriptor from one of the built-in presets.

Preset variables can be given with --set or answered interactively.

Examples:
  gradlegen init --preset android-app --name Notes
  gradlegen init ./lib --preset kotlin-library --set publish=true
  gradlegen init --interactive`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := targetDir(args)
			if err != nil {
				return err
			}
			return runInit(cmd, g, opts, afero.NewOsFs(), dir)
		},
	}

	cmd.Flags().StringVarP(&opts.preset, "preset", "p", "", "Preset to start from (default: "+DefaultPreset+")")
	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "Project name (default: directory name)")
	cmd.Flags().StringArrayVar(&opts.set, "set", nil, "Preset variable as key=value, repeatable")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "Prompt for the preset and its variables")
	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "Overwrite an existing gradlegen.yml")

	return cmd
}

func runInit(cmd *cobra.Command, g *globalOptions, opts *initOptions, fsys afero.Fs, dir string) error {
	if err := presets.RegisterBuiltinPresets(); err != nil {
		return fmt.Errorf("failed to register presets: %w", err)
	}
	registry := presets.DefaultRegistry()

	name := opts.preset
	if name == "" && opts.interactive {
		selected, err := selectPreset(registry)
		if err != nil {
			return err
		}
		name = selected
	}
	if name == "" {
		name = DefaultPreset
	}

	preset, err := registry.Get(name)
	if err != nil {
		var notFound *presets.NotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
		fmt.Fprint(cmd.ErrOrStderr(), ui.PresetNotFoundError(name, notFound.Suggestions, g.noColor))
		return fmt.Errorf("%w: %v", errReported, err)
	}

	ctx := &presets.Context{
		ProjectName: opts.name,
		Variables:   make(map[string]interface{}),
	}
	for _, kv := range opts.set {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			return fmt.Errorf("invalid --set %q, expected key=value", kv)
		}
		ctx.Variables[key] = value
	}
	if ctx.ProjectName == "" && !opts.interactive {
		ctx.ProjectName = filepath.Base(dir)
	}

	if opts.interactive {
		if err := promptContext(preset, ctx, filepath.Base(dir)); err != nil {
			return err
		}
	}

	desc, err := presets.NewEngine().Render(preset, ctx)
	if err != nil {
		return err
	}

	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	path := filepath.Join(dir, config.FileName+".yml")
	if err := config.Save(fsys, path, desc, opts.force); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	ui.WriteSuccess(out, fmt.Sprintf("Created %s from preset %s", path, preset.Name), g.noColor)
	infoColor := color.New(color.FgCyan)
	if g.noColor {
		infoColor.DisableColor()
	}
	infoColor.Fprintln(out, "\nNext steps:")
	fmt.Fprintf(out, "  gradlegen diff %s\n", dir)
	fmt.Fprintf(out, "  gradlegen generate %s\n", dir)
	return nil
}

func selectPreset(registry *presets.Registry) (string, error) {
	list := registry.List()
	options := make([]string, len(list))
	for i, p := range list {
		options[i] = fmt.Sprintf("%s - %s", p.Name, p.Description)
	}

	var selectedIdx int
	prompt := &survey.Select{
		Message: "Select a preset:",
		Options: options,
	}
	if err := survey.AskOne(prompt, &selectedIdx); err != nil {
		return "", err
	}
	return list[selectedIdx].Name, nil
}

// promptContext asks for the project name and every variable not given with --set
func promptContext(p *presets.Preset, ctx *presets.Context, defaultName string) error {
	if ctx.ProjectName == "" {
		prompt := &survey.Input{
			Message: "Project name:",
			Default: defaultName,
		}
		if err := survey.AskOne(prompt, &ctx.ProjectName, survey.WithValidator(survey.Required)); err != nil {
			return err
		}
	}

	for _, v := range p.Variables {
		if _, ok := ctx.Variables[v.Name]; ok {
			continue
		}

		message := v.Prompt
		if message == "" {
			message = v.Name
		}

		switch v.Type {
		case presets.VariableTypeConfirm:
			var boolVal bool
			defaultBool, _ := v.Default.(bool)
			prompt := &survey.Confirm{
				Message: message,
				Default: defaultBool,
				Help:    v.Description,
			}
			if err := survey.AskOne(prompt, &boolVal); err != nil {
				return err
			}
			ctx.Variables[v.Name] = boolVal

		case presets.VariableTypeSelect:
			var selected string
			prompt := &survey.Select{
				Message: message,
				Options: v.Options,
				Help:    v.Description,
			}
			if v.Default != nil {
				prompt.Default = fmt.Sprintf("%v", v.Default)
			}
			if err := survey.AskOne(prompt, &selected); err != nil {
				return err
			}
			ctx.Variables[v.Name] = selected

		default:
			var strVal string
			prompt := &survey.Input{
				Message: message,
				Help:    v.Description,
			}
			if v.Default != nil {
				prompt.Default = fmt.Sprintf("%v", v.Default)
			}
			var askOpts []survey.AskOpt
			if v.Required {
				askOpts = append(askOpts, survey.WithValidator(survey.Required))
			}
			if err := survey.AskOne(prompt, &strVal, askOpts...); err != nil {
				return err
			}
			ctx.Variables[v.Name] = strVal
		}
	}
	return nil
}
