package gradle

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cast"

	"github.com/gradlegen/gradlegen/pkg/metadata"
)

// PluginsScope is the metadata scope consulted by plugins.
const PluginsScope = "plugins"

// PluginKind selects how a plugin is referenced in the plugins block.
type PluginKind string

const (
	// PluginID references a plugin by id: id("com.android.application").
	PluginID PluginKind = "id"
	// PluginKotlin uses the Kotlin DSL shorthand: kotlin("kapt").
	PluginKotlin PluginKind = "kotlin"
	// PluginAlias references a version catalog entry: alias(libs.plugins.android).
	PluginAlias PluginKind = "alias"
)

func (k PluginKind) String() string { return string(k) }

// PluginOverride is called when metadata holds an entry for a plugin.
type PluginOverride func(p *Plugin, md metadata.Provider, value any) error

// Plugin is a single declaration in a plugins block.
type Plugin struct {
	Kind       PluginKind
	Identifier string
	Version    *string
	Apply      *bool
	Override   PluginOverride
}

// PluginOption configures optional plugin fields.
type PluginOption func(*Plugin)

// WithVersion appends `version "<v>"` to the declaration.
func WithVersion(v string) PluginOption {
	return func(p *Plugin) { p.Version = &v }
}

// WithApply appends `apply <bool>` to the declaration.
func WithApply(apply bool) PluginOption {
	return func(p *Plugin) { p.Apply = &apply }
}

// WithPluginOverride attaches an override callback.
func WithPluginOverride(fn PluginOverride) PluginOption {
	return func(p *Plugin) { p.Override = fn }
}

// NewPlugin validates and creates a plugin declaration.
func NewPlugin(kind PluginKind, identifier string, opts ...PluginOption) (*Plugin, error) {
	if identifier == "" {
		return nil, &ValidationError{Field: "plugin identifier", Value: identifier, Err: ErrEmptyIdentifier}
	}
	if kind == PluginAlias && !strings.Contains(identifier, CatalogPrefix) {
		return nil, &ValidationError{Field: "plugin alias", Value: identifier, Err: ErrInvalidAlias}
	}

	p := &Plugin{Kind: kind, Identifier: identifier}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// ID creates an id("...") plugin declaration.
func ID(identifier string, opts ...PluginOption) (*Plugin, error) {
	return NewPlugin(PluginID, identifier, opts...)
}

// Kotlin creates a kotlin("...") plugin declaration.
func Kotlin(identifier string, opts ...PluginOption) (*Plugin, error) {
	return NewPlugin(PluginKotlin, identifier, opts...)
}

// Alias creates an alias(libs...) plugin declaration. The identifier must
// reference the version catalog.
func Alias(identifier string, opts ...PluginOption) (*Plugin, error) {
	return NewPlugin(PluginAlias, identifier, opts...)
}

func (p *Plugin) String() string {
	token := kotlinString(p.Identifier)
	if p.Kind == PluginAlias {
		token = p.Identifier
	}

	s := fmt.Sprintf("%s(%s)", p.Kind, token)
	if p.Version != nil {
		s += " version " + kotlinString(*p.Version)
	}
	if p.Apply != nil {
		s += " apply " + strconv.FormatBool(*p.Apply)
	}
	return s
}

// MetadataKey is the scoped key this plugin looks up.
func (p *Plugin) MetadataKey() string {
	return PluginsScope + metadata.Separator + p.Identifier
}

// ProvideMetadata applies the override callback when md holds an entry for this
// plugin. Without a callback a matching entry is ignored.
func (p *Plugin) ProvideMetadata(md metadata.Provider) error {
	value, ok := md.Property(p.MetadataKey())
	if !ok || p.Override == nil {
		return nil
	}
	key := p.Identifier
	if err := p.Override(p, md, value); err != nil {
		return &OverrideError{Scope: PluginsScope, Key: key, Err: err}
	}
	return nil
}

func (p *Plugin) plugin() *Plugin { return p }

// OverridePluginVersion sets the plugin version to value.
func OverridePluginVersion(p *Plugin, _ metadata.Provider, value any) error {
	v, err := cast.ToStringE(value)
	if err != nil {
		return err
	}
	if v == "" {
		return fmt.Errorf("empty version for plugin %s", p.Identifier)
	}
	p.Version = &v
	return nil
}

// PluginWithCodeBlock is a plugin that also contributes a top-level
// configuration block, such as `android { ... }` or `kotlin { ... }`.
type PluginWithCodeBlock struct {
	*Plugin
	Code fmt.Stringer
}

// WithCodeBlock attaches a configuration fragment to p.
func WithCodeBlock(p *Plugin, code fmt.Stringer) *PluginWithCodeBlock {
	return &PluginWithCodeBlock{Plugin: p, Code: code}
}

// PluginEntry is a member of a PluginGroup: a *Plugin or a *PluginWithCodeBlock.
type PluginEntry interface {
	fmt.Stringer
	MetadataConsumer
	plugin() *Plugin
}

// PluginGroup renders as the plugins block followed by the code blocks of its
// PluginWithCodeBlock members.
type PluginGroup struct {
	Plugins []PluginEntry
}

func NewPluginGroup(plugins ...PluginEntry) *PluginGroup {
	return &PluginGroup{Plugins: plugins}
}

// Add appends plugins and returns the group.
func (g *PluginGroup) Add(plugins ...PluginEntry) *PluginGroup {
	g.Plugins = append(g.Plugins, plugins...)
	return g
}

// Block renders the plugins block alone. PluginWithCodeBlock members are left
// out; they only contribute their code block.
func (g *PluginGroup) Block() string {
	block := NewCodeBlock(PluginsScope)
	for _, entry := range g.Plugins {
		if _, ok := entry.(*PluginWithCodeBlock); ok {
			continue
		}
		block.Body = append(block.Body, entry.plugin())
	}
	return block.String()
}

func (g *PluginGroup) String() string {
	var sb strings.Builder
	sb.WriteString(g.Block())
	sb.WriteString("\n")
	for _, entry := range g.Plugins {
		if withCode, ok := entry.(*PluginWithCodeBlock); ok && withCode.Code != nil {
			sb.WriteString(withCode.Code.String())
		}
	}
	return sb.String()
}

func (g *PluginGroup) ProvideMetadata(md metadata.Provider) error {
	return provideAll(md, g.Plugins)
}
