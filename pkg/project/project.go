// Package project assembles the documents of a multi-module Gradle build and
// writes them to disk.
package project

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/gradlegen/gradlegen/pkg/gradle"
	"github.com/gradlegen/gradlegen/pkg/metadata"
)

// Module is one Gradle module of the build.
type Module struct {
	Metadata *metadata.Module
	// Path is the Gradle project path, e.g. ":feature:home".
	Path  string
	Build *gradle.ModuleBuildGradle
}

// Dir maps the Gradle path to a directory relative to the project root.
// ":feature:home" becomes "feature/home".
func (m *Module) Dir() string {
	parts := strings.FieldsFunc(m.Path, func(r rune) bool { return r == ':' })
	return filepath.Join(parts...)
}

// File is a rendered document with its path relative to the project root.
type File struct {
	Path    string
	Content string
}

// Project is a whole Gradle build.
type Project struct {
	Metadata        *metadata.Project
	Settings        *gradle.SettingsGradle
	Properties      *gradle.GradleProperties
	LocalProperties *gradle.LocalProperties
	Catalog         *gradle.VersionCatalog
	Modules         []*Module

	logger *zap.Logger
}

// Option configures a Project.
type Option func(*Project)

// WithLogger sets the logger used while generating.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Project) { p.logger = logger }
}

// New creates a project around its root metadata and settings file.
func New(md *metadata.Project, settings *gradle.SettingsGradle, opts ...Option) *Project {
	p := &Project{
		Metadata: md,
		Settings: settings,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// AddModule appends a module and includes it in settings.gradle.kts.
func (p *Project) AddModule(m *Module) error {
	if m.Path == "" || m.Dir() == "" {
		return fmt.Errorf("module path %q must name a module, e.g. \":app\"", m.Path)
	}
	for _, existing := range p.Modules {
		if existing.Path == m.Path {
			return fmt.Errorf("module %s already added", m.Path)
		}
	}
	p.Modules = append(p.Modules, m)
	if p.Settings != nil {
		p.Settings.Include(m.Path)
	}
	return nil
}

// ProvideMetadata pushes md to every root-level document. Modules already
// received their own metadata when their build file was constructed.
func (p *Project) ProvideMetadata(md metadata.Provider) error {
	var err error
	for _, doc := range p.rootDocuments() {
		err = multierr.Append(err, doc.ProvideMetadata(md))
	}
	return err
}

func (p *Project) rootDocuments() []gradle.FileConvertible {
	var docs []gradle.FileConvertible
	if p.Settings != nil {
		docs = append(docs, p.Settings)
	}
	if p.Properties != nil {
		docs = append(docs, p.Properties)
	}
	if p.LocalProperties != nil {
		docs = append(docs, p.LocalProperties)
	}
	if p.Catalog != nil {
		docs = append(docs, p.Catalog)
	}
	return docs
}

// Render returns every document of the build in generation order.
func (p *Project) Render() ([]File, error) {
	var files []File
	for _, doc := range p.rootDocuments() {
		content := doc.String()
		if c, ok := doc.(*gradle.VersionCatalog); ok {
			var err error
			if content, err = c.Render(); err != nil {
				return nil, fmt.Errorf("failed to render %s: %w", doc.FileName(), err)
			}
		}
		files = append(files, File{Path: doc.FileName(), Content: content})
	}
	for _, m := range p.Modules {
		files = append(files, File{
			Path:    filepath.Join(m.Dir(), m.Build.FileName()),
			Content: m.Build.String(),
		})
	}
	return files, nil
}

// Generate writes every document under dir. dir must exist; module
// directories are created as needed.
func (p *Project) Generate(fsys afero.Fs, dir string) error {
	for _, doc := range p.rootDocuments() {
		if err := doc.GenerateToFile(fsys, dir); err != nil {
			return fmt.Errorf("failed to generate %s: %w", doc.FileName(), err)
		}
		p.logger.Debug("generated file", zap.String("path", filepath.Join(dir, doc.FileName())))
	}

	for _, m := range p.Modules {
		moduleDir := filepath.Join(dir, m.Dir())
		if err := fsys.MkdirAll(moduleDir, 0o755); err != nil {
			return fmt.Errorf("failed to create module directory %s: %w", moduleDir, err)
		}
		if err := m.Build.GenerateToFile(fsys, moduleDir); err != nil {
			return fmt.Errorf("failed to generate module %s: %w", m.Path, err)
		}
		p.logger.Debug("generated module",
			zap.String("module", m.Path),
			zap.String("path", filepath.Join(moduleDir, m.Build.FileName())),
		)
	}

	p.logger.Info("project generated",
		zap.String("dir", dir),
		zap.Int("modules", len(p.Modules)),
	)
	return nil
}
