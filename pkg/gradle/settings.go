package gradle

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/multierr"

	"github.com/gradlegen/gradlegen/pkg/metadata"
)

// SettingsFileName is the file a SettingsGradle is written to.
const SettingsFileName = "settings.gradle.kts"

// PluginManagement renders as the pluginManagement block of settings.gradle.kts.
type PluginManagement struct {
	Repositories *Repositories
	Plugins      *PluginGroup
}

func NewPluginManagement(repos *Repositories, plugins *PluginGroup) *PluginManagement {
	if repos == nil {
		repos = NewRepositories()
	}
	return &PluginManagement{Repositories: repos, Plugins: plugins}
}

func (m *PluginManagement) String() string {
	block := NewCodeBlock("pluginManagement", m.Repositories)
	if m.Plugins != nil {
		block.Body = append(block.Body, m.Plugins)
	}
	return block.String()
}

func (m *PluginManagement) ProvideMetadata(md metadata.Provider) error {
	err := m.Repositories.ProvideMetadata(md)
	if m.Plugins != nil {
		err = multierr.Append(err, m.Plugins.ProvideMetadata(md))
	}
	return err
}

// DependencyResolutionManagement renders as the dependencyResolutionManagement block.
type DependencyResolutionManagement struct {
	Repositories *Repositories
}

func NewDependencyResolutionManagement(repos *Repositories) *DependencyResolutionManagement {
	if repos == nil {
		repos = NewRepositories()
	}
	return &DependencyResolutionManagement{Repositories: repos}
}

func (m *DependencyResolutionManagement) String() string {
	return NewCodeBlock("dependencyResolutionManagement", m.Repositories).String()
}

func (m *DependencyResolutionManagement) ProvideMetadata(md metadata.Provider) error {
	return m.Repositories.ProvideMetadata(md)
}

// SettingsGradle is the root settings.gradle.kts.
type SettingsGradle struct {
	PluginManagement               *PluginManagement
	DependencyResolutionManagement *DependencyResolutionManagement
	// Project supplies rootProject.name when set.
	Project *metadata.Project
	modules []string
}

func NewSettingsGradle(pm *PluginManagement, drm *DependencyResolutionManagement, project *metadata.Project) *SettingsGradle {
	if pm == nil {
		pm = NewPluginManagement(nil, nil)
	}
	if drm == nil {
		drm = NewDependencyResolutionManagement(nil)
	}
	return &SettingsGradle{
		PluginManagement:               pm,
		DependencyResolutionManagement: drm,
		Project:                        project,
	}
}

// Include records module paths, e.g. ":app".
func (s *SettingsGradle) Include(names ...string) *SettingsGradle {
	s.modules = append(s.modules, names...)
	return s
}

// IncludeModules records the current names of mods. Renaming a module afterwards
// does not change what was recorded.
func (s *SettingsGradle) IncludeModules(mods ...*metadata.Module) *SettingsGradle {
	for _, m := range mods {
		s.modules = append(s.modules, m.Name())
	}
	return s
}

// Modules returns the included module names in order.
func (s *SettingsGradle) Modules() []string {
	out := make([]string, len(s.modules))
	copy(out, s.modules)
	return out
}

func (s *SettingsGradle) ProvideMetadata(md metadata.Provider) error {
	return multierr.Append(
		s.PluginManagement.ProvideMetadata(md),
		s.DependencyResolutionManagement.ProvideMetadata(md),
	)
}

func (s *SettingsGradle) FileName() string { return SettingsFileName }

func (s *SettingsGradle) String() string {
	var sb strings.Builder
	sb.WriteString(s.PluginManagement.String())
	sb.WriteString("\n\n")
	sb.WriteString(s.DependencyResolutionManagement.String())
	sb.WriteString("\n\n")
	if s.Project != nil {
		fmt.Fprintf(&sb, "rootProject.name = %s\n", kotlinString(s.Project.Name()))
	}
	for _, m := range s.modules {
		fmt.Fprintf(&sb, "include(%s)\n", kotlinString(m))
	}
	return sb.String()
}

// GenerateToFile writes the document to dir/settings.gradle.kts, replacing any existing file.
func (s *SettingsGradle) GenerateToFile(fsys afero.Fs, dir string) error {
	return writeDocument(fsys, dir, s.FileName(), s.String())
}
