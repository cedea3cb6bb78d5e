package gradle

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"github.com/spf13/cast"

	"github.com/gradlegen/gradlegen/pkg/metadata"
)

const (
	CatalogDir      = "gradle"
	CatalogFileName = "libs.versions.toml"

	// VersionsScope holds metadata entries that replace [versions] values.
	VersionsScope = "versions"
)

// CatalogVersion is a rich version declaration. Ref points at a [versions] key.
type CatalogVersion struct {
	Ref      string `toml:"ref,omitempty"`
	Require  string `toml:"require,omitempty"`
	Strictly string `toml:"strictly,omitempty"`
	Prefer   string `toml:"prefer,omitempty"`
}

// CatalogLibrary is an entry of the [libraries] table.
type CatalogLibrary struct {
	Module  string          `toml:"module"`
	Version *CatalogVersion `toml:"version,omitempty,inline"`
}

// CatalogPlugin is an entry of the [plugins] table.
type CatalogPlugin struct {
	ID      string          `toml:"id"`
	Version *CatalogVersion `toml:"version,omitempty,inline"`
}

// VersionCatalog is gradle/libs.versions.toml.
type VersionCatalog struct {
	Versions  map[string]string         `toml:"versions,omitempty"`
	Libraries map[string]CatalogLibrary `toml:"libraries,omitempty"`
	Bundles   map[string][]string       `toml:"bundles,omitempty"`
	Plugins   map[string]CatalogPlugin  `toml:"plugins,omitempty"`
}

func NewVersionCatalog() *VersionCatalog {
	return &VersionCatalog{
		Versions:  make(map[string]string),
		Libraries: make(map[string]CatalogLibrary),
		Bundles:   make(map[string][]string),
		Plugins:   make(map[string]CatalogPlugin),
	}
}

// AddVersion declares a [versions] entry.
func (c *VersionCatalog) AddVersion(key, version string) *VersionCatalog {
	c.Versions[key] = version
	return c
}

// AddLibrary declares a library whose version is the [versions] entry versionRef.
// An empty versionRef leaves the version to a platform or BOM.
func (c *VersionCatalog) AddLibrary(key, module, versionRef string) *VersionCatalog {
	lib := CatalogLibrary{Module: module}
	if versionRef != "" {
		lib.Version = &CatalogVersion{Ref: versionRef}
	}
	c.Libraries[key] = lib
	return c
}

// AddPlugin declares a plugin whose version is the [versions] entry versionRef.
func (c *VersionCatalog) AddPlugin(key, id, versionRef string) *VersionCatalog {
	p := CatalogPlugin{ID: id}
	if versionRef != "" {
		p.Version = &CatalogVersion{Ref: versionRef}
	}
	c.Plugins[key] = p
	return c
}

// AddBundle groups library keys under one alias.
func (c *VersionCatalog) AddBundle(key string, libraries ...string) *VersionCatalog {
	c.Bundles[key] = libraries
	return c
}

// LibraryAlias returns the accessor Gradle generates for a library key:
// "androidx-core-ktx" becomes "libs.androidx.core.ktx".
func (c *VersionCatalog) LibraryAlias(key string) (string, error) {
	if _, ok := c.Libraries[key]; !ok {
		return "", fmt.Errorf("library %q is not in the version catalog", key)
	}
	return CatalogPrefix + "." + accessor(key), nil
}

// BundleAlias returns "libs.bundles.<key>".
func (c *VersionCatalog) BundleAlias(key string) (string, error) {
	if _, ok := c.Bundles[key]; !ok {
		return "", fmt.Errorf("bundle %q is not in the version catalog", key)
	}
	return CatalogPrefix + ".bundles." + accessor(key), nil
}

// PluginAlias returns "libs.plugins.<key>".
func (c *VersionCatalog) PluginAlias(key string) (string, error) {
	if _, ok := c.Plugins[key]; !ok {
		return "", fmt.Errorf("plugin %q is not in the version catalog", key)
	}
	return CatalogPrefix + ".plugins." + accessor(key), nil
}

// Dependency declares a catalog library as a dependency of the given kind.
func (c *VersionCatalog) Dependency(kind DependencyKind, key string) (*Dependency, error) {
	alias, err := c.LibraryAlias(key)
	if err != nil {
		return nil, err
	}
	return NewDependency(kind, alias), nil
}

// Plugin declares a catalog plugin as an alias(...) plugin.
func (c *VersionCatalog) Plugin(key string, opts ...PluginOption) (*Plugin, error) {
	alias, err := c.PluginAlias(key)
	if err != nil {
		return nil, err
	}
	return Alias(alias, opts...)
}

func accessor(key string) string {
	return strings.NewReplacer("-", ".", "_", ".").Replace(key)
}

// Validate checks that every version ref points at a declared version and
// every bundle member is a declared library.
func (c *VersionCatalog) Validate() error {
	check := func(owner string, v *CatalogVersion) error {
		if v == nil || v.Ref == "" {
			return nil
		}
		if _, ok := c.Versions[v.Ref]; !ok {
			return fmt.Errorf("%s references undeclared version %q", owner, v.Ref)
		}
		return nil
	}

	for _, key := range sortedKeys(c.Libraries) {
		if err := check("library "+key, c.Libraries[key].Version); err != nil {
			return err
		}
	}
	for _, key := range sortedKeys(c.Plugins) {
		if err := check("plugin "+key, c.Plugins[key].Version); err != nil {
			return err
		}
	}
	for _, key := range sortedKeys(c.Bundles) {
		for _, lib := range c.Bundles[key] {
			if _, ok := c.Libraries[lib]; !ok {
				return fmt.Errorf("bundle %s references undeclared library %q", key, lib)
			}
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ProvideMetadata replaces [versions] values that md holds under "versions/<key>".
func (c *VersionCatalog) ProvideMetadata(md metadata.Provider) error {
	for _, key := range sortedKeys(c.Versions) {
		value, ok := md.Property(VersionsScope + metadata.Separator + key)
		if !ok {
			continue
		}
		v, err := cast.ToStringE(value)
		if err != nil {
			return &OverrideError{Scope: VersionsScope, Key: key, Err: err}
		}
		c.Versions[key] = v
	}
	return nil
}

// FileName is relative to the project root.
func (c *VersionCatalog) FileName() string {
	return filepath.Join(CatalogDir, CatalogFileName)
}

// Render marshals the catalog to TOML.
func (c *VersionCatalog) Render() (string, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}
	data, err := toml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal version catalog: %w", err)
	}
	return string(data), nil
}

// String renders the catalog, or an empty string if it does not validate.
func (c *VersionCatalog) String() string {
	s, err := c.Render()
	if err != nil {
		return ""
	}
	return s
}

// GenerateToFile writes dir/gradle/libs.versions.toml, creating dir/gradle if needed.
func (c *VersionCatalog) GenerateToFile(fsys afero.Fs, dir string) error {
	content, err := c.Render()
	if err != nil {
		return err
	}
	ok, err := afero.DirExists(fsys, dir)
	if err != nil {
		return &FileError{Op: "stat", Path: dir, Err: err}
	}
	if !ok {
		return &FileError{Op: "write", Path: filepath.Join(dir, c.FileName()), Err: fs.ErrNotExist}
	}
	catalogDir := filepath.Join(dir, CatalogDir)
	if err := fsys.MkdirAll(catalogDir, 0o755); err != nil {
		return &FileError{Op: "mkdir", Path: catalogDir, Err: err}
	}
	return writeDocument(fsys, catalogDir, CatalogFileName, content)
}
