package gradle

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gradlegen/gradlegen/pkg/metadata"
)

func TestModuleBuildGradleString(t *testing.T) {
	android, err := Alias("libs.android")
	require.NoError(t, err)

	build, err := NewModuleBuildGradle(
		NewPluginGroup(android),
		NewDependencyGroup(NewDependency(Implementation, "a:b:1.0")),
		nil,
		nil,
	)
	require.NoError(t, err)

	want := "plugins {\n\talias(libs.android)\n}\n\ndependencies {\n\timplementation(\"a:b:1.0\")\n}\n"
	assert.Equal(t, want, build.String())
}

func TestModuleBuildGradleOther(t *testing.T) {
	build, err := NewModuleBuildGradle(
		nil,
		NewDependencyGroup(NewDependency(Api, "a:b:1.0")),
		[]fmt.Stringer{Raw("android {\n\tnamespace = \"com.example\"\n}\n"), Raw("tasks.test { useJUnitPlatform() }")},
		nil,
	)
	require.NoError(t, err)

	want := "plugins {\n\t\n}\n\ndependencies {\n\tapi(\"a:b:1.0\")\n}\n" +
		"\nandroid {\n\tnamespace = \"com.example\"\n}\n" +
		"\ntasks.test { useJUnitPlatform() }\n"
	assert.Equal(t, want, build.String())
}

func TestModuleBuildGradleAppliesMetadataAtConstruction(t *testing.T) {
	proj := metadata.NewProject("sample", "com.example", "1.0.0", "com.example")
	app := metadata.NewModule("app", "com.example.app", proj.Node)
	deps := metadata.NewScope(DependenciesScope, app.Node)
	plugins := metadata.NewScope(PluginsScope, deps)
	deps.Set("a:b:1.0", "1.1")
	plugins.Set("com.android.application", "8.6.0")

	plugin, err := ID("com.android.application", WithVersion("8.5.0"), WithPluginOverride(OverridePluginVersion))
	require.NoError(t, err)
	dep := NewDependency(Implementation, "a:b:1.0", OverrideDependencyVersion)
	untouched := NewDependency(Implementation, "c:d:1.0")

	build, err := NewModuleBuildGradle(NewPluginGroup(plugin), NewDependencyGroup(dep, untouched), nil, plugins)
	require.NoError(t, err)

	assert.Equal(t, "a:b:1.1", dep.Coordinate)
	assert.Equal(t, "c:d:1.0", untouched.Coordinate)
	assert.Equal(t, "8.6.0", *plugin.Version)
	assert.Contains(t, build.String(), `implementation("a:b:1.1")`)
	assert.Contains(t, build.String(), `id("com.android.application") version "8.6.0"`)
}

func TestModuleBuildGradleReturnsEveryOverrideFailure(t *testing.T) {
	md := metadata.NewScope(PluginsScope, metadata.NewScope(DependenciesScope, nil))
	md.Set("p", "x")
	md.Parent().Set("d", "x")

	errPlugin := errors.New("plugin failed")
	errDep := errors.New("dependency failed")

	p, err := ID("p", WithPluginOverride(func(*Plugin, metadata.Provider, any) error { return errPlugin }))
	require.NoError(t, err)
	d := NewDependency(Api, "d", func(*Dependency, metadata.Provider, any) error { return errDep })

	build, err := NewModuleBuildGradle(NewPluginGroup(p), NewDependencyGroup(d), nil, md)
	require.NotNil(t, build)
	assert.ErrorIs(t, err, errPlugin)
	assert.ErrorIs(t, err, errDep)
}

func TestModuleBuildGradleGenerateToFile(t *testing.T) {
	build, err := NewModuleBuildGradle(nil, NewDependencyGroup(NewDependency(Api, "a:b:1.0")), nil, nil)
	require.NoError(t, err)

	t.Run("writes build.gradle.kts", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		require.NoError(t, fsys.MkdirAll("/work/app", 0o755))

		require.NoError(t, build.GenerateToFile(fsys, "/work/app"))

		data, err := afero.ReadFile(fsys, "/work/app/build.gradle.kts")
		require.NoError(t, err)
		assert.Equal(t, build.String(), string(data))
	})

	t.Run("overwrites an existing file", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		require.NoError(t, fsys.MkdirAll("/work", 0o755))
		require.NoError(t, afero.WriteFile(fsys, "/work/build.gradle.kts", []byte("stale content that is longer than the new one"), 0o644))

		require.NoError(t, build.GenerateToFile(fsys, "/work"))

		data, err := afero.ReadFile(fsys, "/work/build.gradle.kts")
		require.NoError(t, err)
		assert.Equal(t, build.String(), string(data))
	})

	t.Run("missing directory", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		err := build.GenerateToFile(fsys, "/nope")

		var fe *FileError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, "/nope/build.gradle.kts", fe.Path)
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})

	t.Run("read-only filesystem", func(t *testing.T) {
		base := afero.NewMemMapFs()
		require.NoError(t, base.MkdirAll("/work", 0o755))
		err := build.GenerateToFile(afero.NewReadOnlyFs(base), "/work")

		var fe *FileError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, "write", fe.Op)
		assert.NotNil(t, errors.Unwrap(err))
	})
}
