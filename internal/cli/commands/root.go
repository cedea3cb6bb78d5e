package commands

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gradlegen/gradlegen/internal/cli/config"
	"github.com/gradlegen/gradlegen/internal/cli/ui"
	"github.com/gradlegen/gradlegen/internal/logging"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
	GoVersion = "unknown"
)

// ErrDrift is returned by diff when generated files differ from disk.
var ErrDrift = errors.New("generated files are out of date")

// globalOptions holds the persistent flags shared by every command
type globalOptions struct {
	verbose bool
	noColor bool
}

func (g *globalOptions) logger() (*zap.Logger, error) {
	return logging.New(g.verbose)
}

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	g := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "gradlegen",
		Short: "Generate Gradle Kotlin-DSL build scripts from a project descriptor",
		Long: color.CyanString(`gradlegen - Gradle build script generator

gradlegen reads gradlegen.yml and writes the Kotlin-DSL files of a multi-module
Gradle build:

  • settings.gradle.kts and one build.gradle.kts per module
  • gradle.properties and local.properties
  • gradle/libs.versions.toml
  • Metadata overrides for dependency, plugin and catalog versions`),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if g.noColor {
				color.NoColor = true
			}
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&g.noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(NewVersionCommand())
	rootCmd.AddCommand(NewGenerateCommand(g))
	rootCmd.AddCommand(NewDiffCommand(g))
	rootCmd.AddCommand(NewInitCommand(g))
	rootCmd.AddCommand(NewPresetsCommand(g))

	return rootCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display the gradlegen version, Git commit, build date, and Go version",
		Run: func(cmd *cobra.Command, args []string) {
			goVer := GoVersion
			if goVer == "unknown" {
				goVer = runtime.Version()
			}

			titleColor := color.New(color.FgCyan, color.Bold)
			valueColor := color.New(color.FgWhite)
			out := cmd.OutOrStdout()

			titleColor.Fprint(out, "gradlegen version: ")
			valueColor.Fprintln(out, Version)

			titleColor.Fprint(out, "Git commit: ")
			valueColor.Fprintln(out, GitCommit)

			titleColor.Fprint(out, "Build date: ")
			valueColor.Fprintln(out, BuildDate)

			titleColor.Fprint(out, "Go version: ")
			valueColor.Fprintln(out, goVer)
		},
	}
}

// Execute runs the root command
func Execute() error {
	return execute(NewRootCommand())
}

// execute runs rootCmd and reports any error it returns on its error stream
func execute(rootCmd *cobra.Command) error {
	cmd, err := rootCmd.ExecuteC()
	if err == nil {
		return nil
	}
	if cmd == nil {
		cmd = rootCmd
	}

	w := rootCmd.ErrOrStderr()
	switch {
	case errors.Is(err, ErrDrift), errors.Is(err, errReported):
		// already reported by the command
	case errors.Is(err, config.ErrNoDescriptor):
		fmt.Fprint(w, ui.ConfigError(err.Error(), nil, color.NoColor))
	case cmd.Name() == "generate":
		fmt.Fprint(w, ui.GenerateError(err.Error(), "", color.NoColor))
	default:
		ui.WriteError(w, ui.ErrorOptions{
			Level:        ui.ErrorLevelError,
			Problem:      err.Error(),
			HelpCommands: []string{fmt.Sprintf("Get help: %s --help", cmd.CommandPath())},
			NoColor:      color.NoColor,
		})
	}
	return err
}

// errReported marks errors a command has already printed
var errReported = errors.New("reported")

// targetDir returns the directory argument or the working directory
func targetDir(args []string) (string, error) {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", dir, err)
	}
	return abs, nil
}
