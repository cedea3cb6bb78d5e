package gradle

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/multierr"

	"github.com/gradlegen/gradlegen/pkg/metadata"
)

// BuildFileName is the file a ModuleBuildGradle is written to.
const BuildFileName = "build.gradle.kts"

// ModuleBuildGradle is the build.gradle.kts of a single module.
type ModuleBuildGradle struct {
	Plugins      *PluginGroup
	Dependencies *DependencyGroup
	// Other holds content this package does not model, appended verbatim.
	Other    []fmt.Stringer
	Metadata metadata.Provider
}

// NewModuleBuildGradle assembles a module build file. When md is non-nil it is
// pushed to the plugins and the dependencies before returning, so overrides are
// already applied to the returned document. Every member is attempted even when
// some overrides fail; the failures are returned together alongside the document.
func NewModuleBuildGradle(plugins *PluginGroup, dependencies *DependencyGroup, other []fmt.Stringer, md metadata.Provider) (*ModuleBuildGradle, error) {
	if plugins == nil {
		plugins = NewPluginGroup()
	}
	if dependencies == nil {
		dependencies = NewDependencyGroup()
	}

	b := &ModuleBuildGradle{
		Plugins:      plugins,
		Dependencies: dependencies,
		Other:        other,
		Metadata:     md,
	}
	if md == nil {
		return b, nil
	}
	return b, b.ProvideMetadata(md)
}

func (b *ModuleBuildGradle) ProvideMetadata(md metadata.Provider) error {
	return multierr.Append(
		b.Plugins.ProvideMetadata(md),
		b.Dependencies.ProvideMetadata(md),
	)
}

func (b *ModuleBuildGradle) FileName() string { return BuildFileName }

func (b *ModuleBuildGradle) String() string {
	var sb strings.Builder
	sb.WriteString(b.Plugins.String())
	sb.WriteString("\n")
	sb.WriteString(b.Dependencies.String())
	sb.WriteString("\n")
	for _, o := range b.Other {
		if o == nil {
			continue
		}
		sb.WriteString("\n")
		sb.WriteString(strings.TrimRight(o.String(), "\n"))
		sb.WriteString("\n")
	}
	return sb.String()
}

// GenerateToFile writes the document to dir/build.gradle.kts, replacing any existing file.
func (b *ModuleBuildGradle) GenerateToFile(fsys afero.Fs, dir string) error {
	return writeDocument(fsys, dir, b.FileName(), b.String())
}
