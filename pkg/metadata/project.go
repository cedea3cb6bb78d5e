package metadata

import (
	"strings"

	"github.com/spf13/cast"
)

// ProjectIdentifier is the scope name of the project root.
const ProjectIdentifier = "project-metadata"

// Well-known entry keys.
const (
	KeyName          = "name"
	KeyBaseNamespace = "base_namespace"
	KeyVersion       = "version"
	KeyGroupID       = "group_id"
	KeyNamespace     = "namespace"
)

// Project is the root of a metadata tree and the only source of project-wide values.
type Project struct {
	*Node
}

// NewProject creates a project root node.
func NewProject(name, baseNamespace, version, groupID string) *Project {
	n := NewScope(ProjectIdentifier, nil)
	n.root = true
	n.Set(KeyName, name)
	n.Set(KeyBaseNamespace, baseNamespace)
	n.Set(KeyVersion, version)
	n.Set(KeyGroupID, groupID)
	return &Project{Node: n}
}

func (p *Project) Name() string          { return p.str(KeyName) }
func (p *Project) BaseNamespace() string { return p.str(KeyBaseNamespace) }
func (p *Project) Version() string       { return p.str(KeyVersion) }
func (p *Project) GroupID() string       { return p.str(KeyGroupID) }

func (p *Project) str(key string) string {
	v, _ := p.Property(key)
	return cast.ToString(v)
}

// Module is the metadata node of a single Gradle module. Its identifier is the
// module name, so "<name>/<key>" resolves against it from any descendant.
type Module struct {
	*Node
}

// NewModule creates a module node chained under parent, usually a project's node.
func NewModule(name, namespace string, parent *Node) *Module {
	n := NewScope(name, parent)
	n.Set(KeyName, name)
	n.Set(KeyNamespace, namespace)
	return &Module{Node: n}
}

func (m *Module) Name() string {
	v, _ := m.Property(KeyName)
	return cast.ToString(v)
}

func (m *Module) Namespace() string {
	v, _ := m.Property(KeyNamespace)
	return cast.ToString(v)
}

// NamespaceFrom derives a module namespace from the project's base namespace.
// "feature-home" and ":feature:home" both become "<base>.feature.home".
func NamespaceFrom(p *Project, moduleName string) string {
	suffix := strings.NewReplacer("-", ".", ":", ".").Replace(moduleName)
	suffix = strings.Trim(suffix, ".")
	if suffix == "" {
		return p.BaseNamespace()
	}
	return p.BaseNamespace() + "." + suffix
}
