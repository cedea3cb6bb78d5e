package commands

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/gradlegen/gradlegen/internal/cli/config"
	"github.com/gradlegen/gradlegen/internal/cli/ui"
	"github.com/gradlegen/gradlegen/pkg/project"
)

// NewDiffCommand creates the diff command
func NewDiffCommand(g *globalOptions) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "diff [dir]",
		Short: "Show how generated files would differ from the files on disk",
		Long: `Render every build file in memory and print a line diff against the
files on disk. Nothing is written.

Exits with a non-zero status when any file is missing or out of date, so it
can guard CI pipelines.

Examples:
  gradlegen diff
  gradlegen diff --no-color ./my-app`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := targetDir(args)
			if err != nil {
				return err
			}

			logger, err := g.logger()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			desc, err := config.NewLoader(dir, configPath).Load()
			if err != nil {
				return fmt.Errorf("failed to load descriptor: %w", err)
			}
			proj, err := config.Build(desc, logger)
			if err != nil {
				return fmt.Errorf("failed to build project: %w", err)
			}
			files, err := proj.Render()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			drift, err := diffFiles(afero.NewOsFs(), dir, files, out, g.noColor)
			if err != nil {
				return err
			}
			if len(drift) > 0 {
				fmt.Fprint(out, ui.DriftWarning(drift, g.noColor))
				return ErrDrift
			}

			ui.WriteSuccess(out, fmt.Sprintf("%d file(s) up to date", len(files)), g.noColor)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Descriptor path (default: <dir>/gradlegen.yml)")

	return cmd
}

// diffFiles prints a diff for every rendered file that differs from its copy
// under dir and returns the paths that differ. A missing file counts as empty.
func diffFiles(fsys afero.Fs, dir string, files []project.File, w io.Writer, noColor bool) ([]string, error) {
	var drift []string
	for _, f := range files {
		onDisk, err := afero.ReadFile(fsys, filepath.Join(dir, f.Path))
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read %s: %w", f.Path, err)
		}
		missing := err != nil
		changed := ui.WriteDiff(w, ui.DiffOptions{Path: f.Path, Old: string(onDisk), New: f.Content, NoColor: noColor})
		if changed || missing {
			drift = append(drift, f.Path)
		}
	}
	return drift, nil
}
