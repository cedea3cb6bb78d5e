package project

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/gradlegen/gradlegen/pkg/gradle"
	"github.com/gradlegen/gradlegen/pkg/metadata"
)

func newTestProject(t *testing.T, opts ...Option) *Project {
	t.Helper()

	md := metadata.NewProject("sample", "com.example.sample", "1.0.0", "com.example")
	settings := gradle.NewSettingsGradle(
		gradle.NewPluginManagement(gradle.NewRepositories(gradle.GradlePluginPortal), nil),
		gradle.NewDependencyResolutionManagement(gradle.NewRepositories(gradle.MavenCentral)),
		md,
	)
	p := New(md, settings, opts...)

	p.Properties = gradle.NewGradleProperties()
	p.Properties.Set("org.gradle.jvmargs", "-Xmx2g")
	p.LocalProperties = gradle.NewLocalProperties()
	p.LocalProperties.Set("sdk.dir", "/opt/sdk")
	p.Catalog = gradle.NewVersionCatalog().AddVersion("okhttp", "4.12.0").
		AddLibrary("okhttp", "com.squareup.okhttp3:okhttp", "okhttp")

	for _, path := range []string{":app", ":feature:home"} {
		mod := metadata.NewModule(path, metadata.NamespaceFrom(md, path), md.Node)
		build, err := gradle.NewModuleBuildGradle(
			nil,
			gradle.NewDependencyGroup(gradle.NewDependency(gradle.Implementation, "libs.okhttp")),
			nil,
			mod,
		)
		require.NoError(t, err)
		require.NoError(t, p.AddModule(&Module{Metadata: mod, Path: path, Build: build}))
	}
	return p
}

func TestModuleDir(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{path: ":app", want: "app"},
		{path: "app", want: "app"},
		{path: ":feature:home", want: "feature/home"},
		{path: ":", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, (&Module{Path: tt.path}).Dir())
		})
	}
}

func TestAddModule(t *testing.T) {
	p := newTestProject(t)

	assert.Equal(t, []string{":app", ":feature:home"}, p.Settings.Modules())

	err := p.AddModule(&Module{Path: ":app"})
	assert.Error(t, err)

	err = p.AddModule(&Module{Path: ":"})
	assert.Error(t, err)
}

func TestRender(t *testing.T) {
	p := newTestProject(t)

	files, err := p.Render()
	require.NoError(t, err)

	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.Path
	}
	assert.Equal(t, []string{
		"settings.gradle.kts",
		"gradle.properties",
		"local.properties",
		"gradle/libs.versions.toml",
		"app/build.gradle.kts",
		"feature/home/build.gradle.kts",
	}, paths)

	assert.Contains(t, files[0].Content, "include(\":feature:home\")")
	assert.Equal(t, "org.gradle.jvmargs=-Xmx2g\n", files[1].Content)
	assert.Contains(t, files[4].Content, "implementation(libs.okhttp)")
}

func TestRenderInvalidCatalog(t *testing.T) {
	p := newTestProject(t)
	p.Catalog.AddLibrary("broken", "g:a", "undeclared")

	_, err := p.Render()
	assert.Error(t, err)
}

func TestGenerate(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	p := newTestProject(t, WithLogger(zap.New(core)))

	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/work", 0o755))
	require.NoError(t, p.Generate(fsys, "/work"))

	files, err := p.Render()
	require.NoError(t, err)
	for _, f := range files {
		data, err := afero.ReadFile(fsys, "/work/"+f.Path)
		require.NoError(t, err, f.Path)
		assert.Equal(t, f.Content, string(data), f.Path)
	}

	assert.Equal(t, 2, logs.FilterMessage("generated module").Len())
	assert.Equal(t, 1, logs.FilterMessage("project generated").Len())
}

func TestGenerateMissingRoot(t *testing.T) {
	p := newTestProject(t)
	err := p.Generate(afero.NewMemMapFs(), "/missing")

	var fe *gradle.FileError
	assert.ErrorAs(t, err, &fe)
}

func TestProjectProvideMetadata(t *testing.T) {
	p := newTestProject(t)

	md := metadata.NewScope(gradle.GradlePropertiesScope, metadata.NewScope(gradle.VersionsScope, nil))
	md.Set("org.gradle.jvmargs", "-Xmx4g")
	md.Parent().Set("okhttp", "5.0.0")

	require.NoError(t, p.ProvideMetadata(md))

	v, _ := p.Properties.Get("org.gradle.jvmargs")
	assert.Equal(t, "-Xmx4g", v)
	assert.Equal(t, "5.0.0", p.Catalog.Versions["okhttp"])
}
