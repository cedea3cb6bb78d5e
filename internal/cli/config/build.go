package config

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/gradlegen/gradlegen/pkg/gradle"
	"github.com/gradlegen/gradlegen/pkg/metadata"
	"github.com/gradlegen/gradlegen/pkg/project"
)

// Build validates desc and turns it into a project ready to render.
// Overrides are pushed into every document before Build returns.
func Build(desc *Descriptor, logger *zap.Logger) (*project.Project, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := desc.Validate(); err != nil {
		return nil, err
	}

	md := metadata.NewProject(desc.Project.Name, baseNamespace(desc.Project), desc.Project.Version, desc.Project.GroupID)

	var catalog *gradle.VersionCatalog
	if !desc.Catalog.Empty() {
		catalog = buildCatalog(desc.Catalog)
		if err := catalog.Validate(); err != nil {
			return nil, fmt.Errorf("invalid catalog: %w", err)
		}
	}

	settings, err := buildSettings(desc.Settings, catalog, md)
	if err != nil {
		return nil, err
	}

	proj := project.New(md, settings, project.WithLogger(logger))
	proj.Catalog = catalog
	proj.Properties = gradle.NewGradleProperties()
	for _, p := range desc.Properties {
		proj.Properties.Set(p.Key, p.Value)
	}
	if len(desc.LocalProperties) > 0 {
		proj.LocalProperties = gradle.NewLocalProperties()
		for _, p := range desc.LocalProperties {
			proj.LocalProperties.Set(p.Key, p.Value)
		}
	}

	if err := proj.ProvideMetadata(overrideChain(md.Node, desc.Overrides)); err != nil {
		return nil, fmt.Errorf("failed to apply project overrides: %w", err)
	}

	for _, mc := range desc.Modules {
		mod, err := buildModule(mc, catalog, md)
		if err != nil {
			return nil, fmt.Errorf("module %s: %w", mc.Name, err)
		}
		if err := proj.AddModule(mod); err != nil {
			return nil, err
		}
		logger.Debug("configured module",
			zap.String("module", mod.Path),
			zap.String("namespace", mod.Metadata.Namespace()),
		)
	}

	return proj, nil
}

func baseNamespace(p ProjectConfig) string {
	if p.BaseNamespace != "" {
		return p.BaseNamespace
	}
	if p.GroupID != "" {
		return p.GroupID
	}
	return strings.ToLower(p.Name)
}

// modulePath normalises a module name to a Gradle path, e.g. "feature:home"
// becomes ":feature:home".
func modulePath(name string) string {
	return ":" + strings.TrimPrefix(name, ":")
}

// overrideChain builds one scope node per override scope under parent and
// returns the innermost node. A scoped lookup from the returned node reaches
// every scope and then parent. Overrides naming an unknown scope are ignored.
func overrideChain(parent *metadata.Node, overrides []OverrideConfig) *metadata.Node {
	node := parent
	scopes := make(map[string]*metadata.Node)
	for _, scope := range []string{
		gradle.DependenciesScope,
		gradle.PluginsScope,
		gradle.VersionsScope,
		gradle.GradlePropertiesScope,
		gradle.LocalPropertiesScope,
	} {
		node = metadata.NewScope(scope, node)
		scopes[scope] = node
	}
	for _, o := range overrides {
		if scope, ok := scopes[o.Scope]; ok {
			scope.Set(o.Key, o.Value)
		}
	}
	return node
}

func buildCatalog(cfg CatalogConfig) *gradle.VersionCatalog {
	c := gradle.NewVersionCatalog()
	for _, v := range cfg.Versions {
		c.AddVersion(v.Key, v.Value)
	}
	for _, l := range cfg.Libraries {
		c.AddLibrary(l.Key, l.Module, l.Version)
	}
	for _, b := range cfg.Bundles {
		c.AddBundle(b.Key, b.Libraries...)
	}
	for _, p := range cfg.Plugins {
		c.AddPlugin(p.Key, p.ID, p.Version)
	}
	return c
}

func buildRepositories(names []string) (*gradle.Repositories, error) {
	repos := gradle.NewRepositories()
	var err error
	for _, name := range names {
		repo, rerr := gradle.RepositoryByName(name)
		if rerr != nil {
			err = multierr.Append(err, rerr)
			continue
		}
		repos.Repositories = append(repos.Repositories, repo)
	}
	return repos, err
}

func buildSettings(cfg SettingsConfig, catalog *gradle.VersionCatalog, md *metadata.Project) (*gradle.SettingsGradle, error) {
	pluginRepos, err := buildRepositories(cfg.PluginRepositories)
	if err != nil {
		return nil, fmt.Errorf("settings.plugin_repositories: %w", err)
	}
	depRepos, err := buildRepositories(cfg.DependencyRepositories)
	if err != nil {
		return nil, fmt.Errorf("settings.dependency_repositories: %w", err)
	}

	var plugins *gradle.PluginGroup
	if len(cfg.Plugins) > 0 {
		plugins = gradle.NewPluginGroup()
		for _, pc := range cfg.Plugins {
			entries, err := buildPlugin(pc, catalog)
			if err != nil {
				return nil, fmt.Errorf("settings.plugins: %w", err)
			}
			plugins.Add(entries...)
		}
	}

	return gradle.NewSettingsGradle(
		gradle.NewPluginManagement(pluginRepos, plugins),
		gradle.NewDependencyResolutionManagement(depRepos),
		md,
	), nil
}

// buildPlugin returns the declared plugin and, when the plugin carries a code
// fragment, a code-only entry that renders the fragment after the plugins block.
func buildPlugin(pc PluginConfig, catalog *gradle.VersionCatalog) ([]gradle.PluginEntry, error) {
	opts := []gradle.PluginOption{gradle.WithPluginOverride(gradle.OverridePluginVersion)}
	if pc.Version != "" {
		opts = append(opts, gradle.WithVersion(pc.Version))
	}
	if pc.Apply != nil {
		opts = append(opts, gradle.WithApply(*pc.Apply))
	}

	var (
		p   *gradle.Plugin
		err error
	)
	switch {
	case pc.Catalog != "":
		if catalog == nil {
			return nil, fmt.Errorf("plugin %s references the catalog but none is declared", pc.Catalog)
		}
		p, err = catalog.Plugin(pc.Catalog, opts...)
	case pc.Kind == "":
		p, err = gradle.ID(pc.ID, opts...)
	default:
		p, err = gradle.NewPlugin(gradle.PluginKind(pc.Kind), pc.ID, opts...)
	}
	if err != nil {
		return nil, err
	}

	entries := []gradle.PluginEntry{p}
	if pc.Code != "" {
		owner := &gradle.Plugin{Kind: p.Kind, Identifier: p.Identifier}
		entries = append(entries, gradle.WithCodeBlock(owner, gradle.Raw("\n"+strings.TrimRight(pc.Code, "\n")+"\n")))
	}
	return entries, nil
}

func buildDependency(dc DependencyConfig, catalog *gradle.VersionCatalog) (*gradle.Dependency, error) {
	kind := gradle.DependencyKind(dc.Kind)
	switch {
	case dc.Library != "":
		if catalog == nil {
			return nil, fmt.Errorf("library %s references the catalog but none is declared", dc.Library)
		}
		return catalog.Dependency(kind, dc.Library)
	case dc.Bundle != "":
		if catalog == nil {
			return nil, fmt.Errorf("bundle %s references the catalog but none is declared", dc.Bundle)
		}
		alias, err := catalog.BundleAlias(dc.Bundle)
		if err != nil {
			return nil, err
		}
		return gradle.NewDependency(kind, alias), nil
	default:
		return gradle.NewDependency(kind, dc.Coordinate, gradle.OverrideDependencyVersion), nil
	}
}

func buildModule(mc ModuleConfig, catalog *gradle.VersionCatalog, md *metadata.Project) (*project.Module, error) {
	path := modulePath(mc.Name)
	name := strings.TrimPrefix(mc.Name, ":")
	namespace := mc.Namespace
	if namespace == "" {
		namespace = metadata.NamespaceFrom(md, name)
	}
	mod := metadata.NewModule(name, namespace, md.Node)

	plugins := gradle.NewPluginGroup()
	for _, pc := range mc.Plugins {
		entries, err := buildPlugin(pc, catalog)
		if err != nil {
			return nil, err
		}
		plugins.Add(entries...)
	}

	deps := gradle.NewDependencyGroup()
	for _, dc := range mc.Dependencies {
		d, err := buildDependency(dc, catalog)
		if err != nil {
			return nil, err
		}
		deps.Add(d)
	}

	var other []fmt.Stringer
	for _, b := range mc.Blocks {
		block := gradle.NewCodeBlock(b.Name)
		block.Arguments = b.Arguments
		for _, line := range b.Body {
			block.Body = append(block.Body, gradle.Raw(line))
		}
		other = append(other, block)
	}
	for _, text := range mc.Extra {
		other = append(other, gradle.Raw(text))
	}

	build, err := gradle.NewModuleBuildGradle(plugins, deps, other, overrideChain(mod.Node, mc.Overrides))
	if err != nil {
		return nil, fmt.Errorf("failed to apply overrides: %w", err)
	}

	return &project.Module{Metadata: mod, Path: path, Build: build}, nil
}
