package gradle

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gradlegen/gradlegen/pkg/metadata"
)

// RepositoriesScope is the block name of a repositories group.
const RepositoriesScope = "repositories"

// Repository is a single entry of a repositories block.
type Repository interface {
	fmt.Stringer
	MetadataConsumer
}

type builtinRepository string

func (r builtinRepository) String() string                           { return string(r) + "()" }
func (r builtinRepository) ProvideMetadata(_ metadata.Provider) error { return nil }

var (
	MavenCentral       Repository = builtinRepository("mavenCentral")
	Google             Repository = builtinRepository("google")
	MavenLocal         Repository = builtinRepository("mavenLocal")
	GradlePluginPortal Repository = builtinRepository("gradlePluginPortal")
)

// MavenURL is a maven("<url>") repository.
type MavenURL struct {
	URL string
}

func (r *MavenURL) String() string {
	return fmt.Sprintf("maven(%s)", kotlinString(r.URL))
}

func (r *MavenURL) ProvideMetadata(_ metadata.Provider) error { return nil }

// RepositoryByName maps the shorthand names used in descriptors to repositories.
// Anything containing "://" becomes a MavenURL.
func RepositoryByName(name string) (Repository, error) {
	switch name {
	case "mavenCentral":
		return MavenCentral, nil
	case "google":
		return Google, nil
	case "mavenLocal":
		return MavenLocal, nil
	case "gradlePluginPortal":
		return GradlePluginPortal, nil
	}
	if strings.Index(name, "://") > 0 {
		return &MavenURL{URL: name}, nil
	}
	return nil, &ValidationError{Field: "repository", Value: name, Err: errUnknownRepository}
}

var errUnknownRepository = errors.New("unknown repository")

// Repositories renders as a repositories block.
type Repositories struct {
	Repositories []Repository
}

func NewRepositories(repos ...Repository) *Repositories {
	return &Repositories{Repositories: repos}
}

func (r *Repositories) String() string {
	return NewCodeBlock(RepositoriesScope, stringers(r.Repositories)...).String()
}

func (r *Repositories) ProvideMetadata(md metadata.Provider) error {
	return provideAll(md, r.Repositories)
}
