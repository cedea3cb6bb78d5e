package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gradlegen/gradlegen/internal/cli/config"
	"github.com/gradlegen/gradlegen/internal/cli/ui"
)

// NewGenerateCommand creates the generate command
func NewGenerateCommand(g *globalOptions) *cobra.Command {
	var (
		configPath string
		watch      bool
	)

	cmd := &cobra.Command{
		Use:   "generate [dir]",
		Short: "Write the Gradle build files described by gradlegen.yml",
		Long: `Generate settings.gradle.kts, gradle.properties, local.properties,
gradle/libs.versions.toml and one build.gradle.kts per module.

Existing files are overwritten. Module directories are created as needed.

Examples:
  gradlegen generate
  gradlegen generate ./my-app --config ./my-app/ci.yml
  gradlegen generate --watch`,
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

			loader := config.NewLoader(dir, configPath)
			desc, err := loader.Load()
			if err != nil {
				return fmt.Errorf("failed to load descriptor: %w", err)
			}

			gen := &generator{
				fs:      afero.NewOsFs(),
				dir:     dir,
				out:     cmd.OutOrStdout(),
				logger:  logger,
				noColor: g.noColor,
			}
			if err := gen.run(desc); err != nil {
				return err
			}
			if !watch {
				return nil
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()
			return gen.watch(ctx, loader)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Descriptor path (default: <dir>/gradlegen.yml)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Regenerate whenever the descriptor changes")

	return cmd
}

// generator writes a project and serialises regenerations in watch mode
type generator struct {
	fs      afero.Fs
	dir     string
	out     io.Writer
	logger  *zap.Logger
	noColor bool

	mu sync.Mutex
}

func (g *generator) run(desc *config.Descriptor) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	proj, err := config.Build(desc, g.logger)
	if err != nil {
		return fmt.Errorf("failed to build project: %w", err)
	}
	if err := proj.Generate(g.fs, g.dir); err != nil {
		return err
	}

	ui.WriteSuccess(g.out, fmt.Sprintf("Generated %s with %d module(s) in %s", desc.Project.Name, len(proj.Modules), g.dir), g.noColor)
	return nil
}

func (g *generator) watch(ctx context.Context, loader *config.Loader) error {
	fmt.Fprint(g.out, ui.Info(fmt.Sprintf("Watching %s for changes (Ctrl+C to stop)", loader.ConfigFile()), g.noColor))

	loader.Watch(func(e fsnotify.Event, desc *config.Descriptor, err error) {
		g.logger.Debug("descriptor changed", zap.String("file", e.Name), zap.String("op", e.Op.String()))
		if err != nil {
			fmt.Fprint(g.out, ui.Warning(fmt.Sprintf("descriptor not regenerated: %v", err), nil, g.noColor))
			return
		}
		if err := g.run(desc); err != nil {
			fmt.Fprint(g.out, ui.GenerateError(err.Error(), "Fix the descriptor and save it again.", g.noColor))
		}
	})

	<-ctx.Done()
	return nil
}
