package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/multierr"
)

const (
	// FileName is the base name of the project descriptor.
	FileName = "gradlegen"
	// EnvPrefix prefixes environment variables that override descriptor values,
	// e.g. GRADLEGEN_PROJECT_VERSION.
	EnvPrefix = "GRADLEGEN"
)

// ErrNoDescriptor is returned when no gradlegen.yml can be found.
var ErrNoDescriptor = errors.New("no gradlegen.yml found")

// Descriptor represents a gradlegen.yml project descriptor
type Descriptor struct {
	Project         ProjectConfig    `mapstructure:"project" yaml:"project"`
	Settings        SettingsConfig   `mapstructure:"settings" yaml:"settings"`
	Properties      []Property       `mapstructure:"properties" yaml:"properties,omitempty"`
	LocalProperties []Property       `mapstructure:"local_properties" yaml:"local_properties,omitempty"`
	Catalog         CatalogConfig    `mapstructure:"catalog" yaml:"catalog,omitempty"`
	Overrides       []OverrideConfig `mapstructure:"overrides" yaml:"overrides,omitempty"`
	Modules         []ModuleConfig   `mapstructure:"modules" yaml:"modules"`
}

// ProjectConfig holds the root project metadata
type ProjectConfig struct {
	Name          string `mapstructure:"name" yaml:"name"`
	BaseNamespace string `mapstructure:"base_namespace" yaml:"base_namespace,omitempty"`
	Version       string `mapstructure:"version" yaml:"version"`
	GroupID       string `mapstructure:"group_id" yaml:"group_id,omitempty"`
}

// SettingsConfig describes settings.gradle.kts
type SettingsConfig struct {
	PluginRepositories     []string       `mapstructure:"plugin_repositories" yaml:"plugin_repositories"`
	DependencyRepositories []string       `mapstructure:"dependency_repositories" yaml:"dependency_repositories"`
	Plugins                []PluginConfig `mapstructure:"plugins" yaml:"plugins,omitempty"`
}

// Property is one key=value line of a properties file. Properties are a list
// because their keys contain dots.
type Property struct {
	Key   string `mapstructure:"key" yaml:"key"`
	Value string `mapstructure:"value" yaml:"value"`
}

// CatalogConfig describes gradle/libs.versions.toml
type CatalogConfig struct {
	Versions  []Property      `mapstructure:"versions" yaml:"versions,omitempty"`
	Libraries []LibraryConfig `mapstructure:"libraries" yaml:"libraries,omitempty"`
	Bundles   []BundleConfig  `mapstructure:"bundles" yaml:"bundles,omitempty"`
	Plugins   []CatalogPlugin `mapstructure:"plugins" yaml:"plugins,omitempty"`
}

// Empty reports whether the catalog declares nothing.
func (c CatalogConfig) Empty() bool {
	return len(c.Versions) == 0 && len(c.Libraries) == 0 && len(c.Bundles) == 0 && len(c.Plugins) == 0
}

// LibraryConfig is a [libraries] entry
type LibraryConfig struct {
	Key     string `mapstructure:"key" yaml:"key"`
	Module  string `mapstructure:"module" yaml:"module"`
	Version string `mapstructure:"version" yaml:"version,omitempty"`
}

// BundleConfig is a [bundles] entry
type BundleConfig struct {
	Key       string   `mapstructure:"key" yaml:"key"`
	Libraries []string `mapstructure:"libraries" yaml:"libraries"`
}

// CatalogPlugin is a [plugins] entry
type CatalogPlugin struct {
	Key     string `mapstructure:"key" yaml:"key"`
	ID      string `mapstructure:"id" yaml:"id"`
	Version string `mapstructure:"version" yaml:"version,omitempty"`
}

// OverrideConfig is a metadata entry applied before generation. Scope is one
// of dependencies, plugins, versions, gradle-properties or local-properties.
type OverrideConfig struct {
	Scope string `mapstructure:"scope" yaml:"scope"`
	Key   string `mapstructure:"key" yaml:"key"`
	Value string `mapstructure:"value" yaml:"value"`
}

// PluginConfig declares a plugin. Catalog names a [plugins] key and takes
// precedence over ID.
type PluginConfig struct {
	Kind    string `mapstructure:"kind" yaml:"kind,omitempty"`
	ID      string `mapstructure:"id" yaml:"id,omitempty"`
	Catalog string `mapstructure:"catalog" yaml:"catalog,omitempty"`
	Version string `mapstructure:"version" yaml:"version,omitempty"`
	Apply   *bool  `mapstructure:"apply" yaml:"apply,omitempty"`
	Code    string `mapstructure:"code" yaml:"code,omitempty"`
}

// DependencyConfig declares a dependency by coordinate, catalog library or
// catalog bundle.
type DependencyConfig struct {
	Kind       string `mapstructure:"kind" yaml:"kind"`
	Coordinate string `mapstructure:"coordinate" yaml:"coordinate,omitempty"`
	Library    string `mapstructure:"library" yaml:"library,omitempty"`
	Bundle     string `mapstructure:"bundle" yaml:"bundle,omitempty"`
}

// BlockConfig is a free-form code block appended to a build file
type BlockConfig struct {
	Name      string   `mapstructure:"name" yaml:"name"`
	Arguments []string `mapstructure:"arguments" yaml:"arguments,omitempty"`
	Body      []string `mapstructure:"body" yaml:"body"`
}

// ModuleConfig describes one module and its build.gradle.kts
type ModuleConfig struct {
	Name         string             `mapstructure:"name" yaml:"name"`
	Namespace    string             `mapstructure:"namespace" yaml:"namespace,omitempty"`
	Plugins      []PluginConfig     `mapstructure:"plugins" yaml:"plugins,omitempty"`
	Dependencies []DependencyConfig `mapstructure:"dependencies" yaml:"dependencies,omitempty"`
	Overrides    []OverrideConfig   `mapstructure:"overrides" yaml:"overrides,omitempty"`
	Blocks       []BlockConfig      `mapstructure:"blocks" yaml:"blocks,omitempty"`
	Extra        []string           `mapstructure:"extra" yaml:"extra,omitempty"`
}

// Loader reads a descriptor through viper and can watch it for changes.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a loader for path. An empty path searches dir for
// gradlegen.yml or gradlegen.yaml.
func NewLoader(dir, path string) *Loader {
	v := viper.New()

	v.SetDefault("project.version", "1.0.0")
	v.SetDefault("settings.plugin_repositories", []string{"gradlePluginPortal", "google", "mavenCentral"})
	v.SetDefault("settings.dependency_repositories", []string{"google", "mavenCentral"})

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Loader{v: v}
}

// Load reads and validates the descriptor.
func (l *Loader) Load() (*Descriptor, error) {
	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoDescriptor
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var desc Descriptor
	if err := l.v.Unmarshal(&desc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := desc.Validate(); err != nil {
		return nil, err
	}

	return &desc, nil
}

// ConfigFile returns the path of the descriptor in use, once loaded.
func (l *Loader) ConfigFile() string {
	return l.v.ConfigFileUsed()
}

// Watch calls fn with the reloaded descriptor every time the file changes.
// Load must have succeeded first.
func (l *Loader) Watch(fn func(fsnotify.Event, *Descriptor, error)) {
	l.v.OnConfigChange(func(e fsnotify.Event) {
		var desc Descriptor
		if err := l.v.Unmarshal(&desc); err != nil {
			fn(e, nil, fmt.Errorf("failed to unmarshal config: %w", err))
			return
		}
		if err := desc.Validate(); err != nil {
			fn(e, nil, err)
			return
		}
		fn(e, &desc, nil)
	})
	l.v.WatchConfig()
}

// Load loads the descriptor from dir
func Load(dir string) (*Descriptor, error) {
	return NewLoader(dir, "").Load()
}

// FindRoot walks up from dir looking for a descriptor
func FindRoot(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	for {
		for _, ext := range []string{".yml", ".yaml"} {
			if _, err := os.Stat(filepath.Join(dir, FileName+ext)); err == nil {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNoDescriptor
		}
		dir = parent
	}
}

var overrideScopes = map[string]bool{
	"dependencies":      true,
	"plugins":           true,
	"versions":          true,
	"gradle-properties": true,
	"local-properties":  true,
}

var pluginKinds = map[string]bool{"": true, "id": true, "kotlin": true, "alias": true}

// Validate checks the descriptor for problems that would otherwise surface
// halfway through generation. All problems are reported together.
func (d *Descriptor) Validate() error {
	var err error

	if d.Project.Name == "" {
		err = multierr.Append(err, errors.New("project.name is required"))
	}

	for i, o := range d.Overrides {
		err = multierr.Append(err, validateOverride(fmt.Sprintf("overrides[%d]", i), o))
	}
	for i, p := range d.Settings.Plugins {
		err = multierr.Append(err, validatePlugin(fmt.Sprintf("settings.plugins[%d]", i), p))
	}

	seen := make(map[string]bool, len(d.Modules))
	for i, m := range d.Modules {
		field := fmt.Sprintf("modules[%d]", i)
		name := strings.Trim(m.Name, ":")
		if name == "" {
			err = multierr.Append(err, fmt.Errorf("%s.name is required", field))
			continue
		}
		if seen[name] {
			err = multierr.Append(err, fmt.Errorf("%s: module %s declared twice", field, m.Name))
		}
		seen[name] = true

		for j, p := range m.Plugins {
			err = multierr.Append(err, validatePlugin(fmt.Sprintf("%s.plugins[%d]", field, j), p))
		}
		for j, dep := range m.Dependencies {
			err = multierr.Append(err, validateDependency(fmt.Sprintf("%s.dependencies[%d]", field, j), dep))
		}
		for j, o := range m.Overrides {
			err = multierr.Append(err, validateOverride(fmt.Sprintf("%s.overrides[%d]", field, j), o))
		}
		for j, b := range m.Blocks {
			if b.Name == "" {
				err = multierr.Append(err, fmt.Errorf("%s.blocks[%d].name is required", field, j))
			}
		}
	}

	return err
}

func validatePlugin(field string, p PluginConfig) error {
	if !pluginKinds[p.Kind] {
		return fmt.Errorf("%s.kind must be id, kotlin or alias, got: %s", field, p.Kind)
	}
	if p.ID == "" && p.Catalog == "" {
		return fmt.Errorf("%s needs an id or a catalog key", field)
	}
	return nil
}

func validateDependency(field string, d DependencyConfig) error {
	if d.Kind == "" {
		return fmt.Errorf("%s.kind is required", field)
	}
	set := 0
	for _, s := range []string{d.Coordinate, d.Library, d.Bundle} {
		if s != "" {
			set++
		}
	}
	if set != 1 {
		return fmt.Errorf("%s needs exactly one of coordinate, library or bundle", field)
	}
	return nil
}

func validateOverride(field string, o OverrideConfig) error {
	if !overrideScopes[o.Scope] {
		return fmt.Errorf("%s.scope %q is not a known scope", field, o.Scope)
	}
	if o.Key == "" {
		return fmt.Errorf("%s.key is required", field)
	}
	return nil
}
