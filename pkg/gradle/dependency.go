package gradle

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"

	"github.com/gradlegen/gradlegen/pkg/metadata"
)

// CatalogPrefix marks a coordinate or plugin identifier as a version catalog reference.
const CatalogPrefix = "libs"

// DependenciesScope is the metadata scope consulted by dependencies.
const DependenciesScope = "dependencies"

// DependencyKind is the configuration keyword a dependency is declared under.
// Any Gradle configuration name can be used by conversion.
type DependencyKind string

const (
	Api                       DependencyKind = "api"
	Implementation            DependencyKind = "implementation"
	CompileOnly               DependencyKind = "compileOnly"
	RuntimeOnly               DependencyKind = "runtimeOnly"
	TestImplementation        DependencyKind = "testImplementation"
	TestRuntimeOnly           DependencyKind = "testRuntimeOnly"
	AndroidTestImplementation DependencyKind = "androidTestImplementation"
	DebugImplementation       DependencyKind = "debugImplementation"
	ReleaseImplementation     DependencyKind = "releaseImplementation"
	Kapt                      DependencyKind = "kapt"
	Ksp                       DependencyKind = "ksp"
	CoreLibraryDesugaring     DependencyKind = "coreLibraryDesugaring"
)

func (k DependencyKind) String() string { return string(k) }

// DependencyOverride is called when metadata holds an entry for a dependency.
// It may mutate the dependency in place.
type DependencyOverride func(d *Dependency, md metadata.Provider, value any) error

// Dependency is a single line of a dependencies block.
type Dependency struct {
	Kind       DependencyKind
	Coordinate string
	Override   DependencyOverride
}

// NewDependency creates a dependency from a "group:artifact:version" coordinate or a libs.* alias.
func NewDependency(kind DependencyKind, coordinate string, override ...DependencyOverride) *Dependency {
	d := &Dependency{Kind: kind, Coordinate: coordinate}
	if len(override) > 0 {
		d.Override = override[0]
	}
	return d
}

// FromSeparated joins group, artifact and version into a coordinate.
func FromSeparated(kind DependencyKind, group, artifact, version string, override ...DependencyOverride) *Dependency {
	return NewDependency(kind, group+":"+artifact+":"+version, override...)
}

func ApiDependency(coordinate string) *Dependency {
	return NewDependency(Api, coordinate)
}

func ImplementationDependency(coordinate string) *Dependency {
	return NewDependency(Implementation, coordinate)
}

func (d *Dependency) String() string {
	return fmt.Sprintf("%s(%s)", d.Kind, literal(d.Coordinate))
}

// MetadataKey is the scoped key this dependency looks up.
func (d *Dependency) MetadataKey() string {
	return DependenciesScope + metadata.Separator + d.Coordinate
}

// ProvideMetadata applies the override callback when md holds an entry for this
// dependency. Without a callback a matching entry is ignored.
func (d *Dependency) ProvideMetadata(md metadata.Provider) error {
	value, ok := md.Property(d.MetadataKey())
	if !ok || d.Override == nil {
		return nil
	}
	key := d.Coordinate
	if err := d.Override(d, md, value); err != nil {
		return &OverrideError{Scope: DependenciesScope, Key: key, Err: err}
	}
	return nil
}

// OverrideDependencyVersion replaces the version segment of the coordinate with
// value. A value containing ':' replaces the whole coordinate.
func OverrideDependencyVersion(d *Dependency, _ metadata.Provider, value any) error {
	v, err := cast.ToStringE(value)
	if err != nil {
		return err
	}
	if v == "" {
		return fmt.Errorf("empty version for %s", d.Coordinate)
	}
	if strings.Contains(v, ":") {
		d.Coordinate = v
		return nil
	}

	parts := strings.Split(d.Coordinate, ":")
	switch {
	case strings.HasPrefix(d.Coordinate, CatalogPrefix):
		return fmt.Errorf("cannot set version %q on catalog reference %s", v, d.Coordinate)
	case len(parts) == 2:
		parts = append(parts, v)
	case len(parts) >= 3:
		parts[2] = v
	default:
		return fmt.Errorf("coordinate %q is not group:artifact[:version]", d.Coordinate)
	}
	d.Coordinate = strings.Join(parts, ":")
	return nil
}

// literal renders catalog references bare and everything else as a Kotlin string.
func literal(token string) string {
	if strings.HasPrefix(token, CatalogPrefix) {
		return token
	}
	return kotlinString(token)
}

// DependencyGroup renders as the dependencies block.
type DependencyGroup struct {
	Dependencies []*Dependency
}

func NewDependencyGroup(deps ...*Dependency) *DependencyGroup {
	return &DependencyGroup{Dependencies: deps}
}

// Add appends dependencies and returns the group.
func (g *DependencyGroup) Add(deps ...*Dependency) *DependencyGroup {
	g.Dependencies = append(g.Dependencies, deps...)
	return g
}

func (g *DependencyGroup) String() string {
	return NewCodeBlock(DependenciesScope, stringers(g.Dependencies)...).String()
}

func (g *DependencyGroup) ProvideMetadata(md metadata.Provider) error {
	return provideAll(md, g.Dependencies)
}
