package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gradlegen/gradlegen/internal/cli/config"
)

const testDescriptor = `project:
  name: sample
  group_id: com.example
settings:
  plugin_repositories: [gradlePluginPortal]
  dependency_repositories: [mavenCentral]
properties:
  - key: kotlin.code.style
    value: official
modules:
  - name: app
    plugins:
      - kind: kotlin
        id: jvm
        version: 2.0.0
    dependencies:
      - kind: implementation
        coordinate: com.squareup.okio:okio:3.9.0
`

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--no-color"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func newProjectDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gradlegen.yml"), []byte(testDescriptor), 0o644))
	return dir
}

func TestNewRootCommand(t *testing.T) {
	cmd := NewRootCommand()

	assert.Equal(t, "gradlegen", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	for _, expected := range []string{"version", "generate", "diff", "init", "presets"} {
		assert.Contains(t, names, expected)
	}

	for _, flag := range []string{"verbose", "no-color"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), flag)
	}
}

func TestVersionCommand(t *testing.T) {
	Version = "1.0.0-test"
	GitCommit = "abc123"
	defer func() { Version, GitCommit = "dev", "unknown" }()

	out, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "gradlegen version: 1.0.0-test")
	assert.Contains(t, out, "Git commit: abc123")
	assert.Contains(t, out, "Go version: ")
}

func TestGenerateCommand(t *testing.T) {
	dir := newProjectDir(t)

	out, err := runCommand(t, "generate", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Generated sample with 1 module(s)")

	build, err := os.ReadFile(filepath.Join(dir, "app", "build.gradle.kts"))
	require.NoError(t, err)
	assert.Equal(t, "plugins {\n"+
		"\tkotlin(\"jvm\") version \"2.0.0\"\n"+
		"}\n"+
		"\n"+
		"dependencies {\n"+
		"\timplementation(\"com.squareup.okio:okio:3.9.0\")\n"+
		"}\n", string(build))

	settings, err := os.ReadFile(filepath.Join(dir, "settings.gradle.kts"))
	require.NoError(t, err)
	assert.Contains(t, string(settings), "rootProject.name = \"sample\"\ninclude(\":app\")\n")

	props, err := os.ReadFile(filepath.Join(dir, "gradle.properties"))
	require.NoError(t, err)
	assert.Equal(t, "kotlin.code.style=official\n", string(props))

	_, err = os.Stat(filepath.Join(dir, "local.properties"))
	assert.True(t, os.IsNotExist(err))
}

func TestGenerateCommandExplicitConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(t.TempDir(), "ci.yml")
	require.NoError(t, os.WriteFile(cfg, []byte(testDescriptor), 0o644))

	_, err := runCommand(t, "generate", dir, "--config", cfg)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "app", "build.gradle.kts"))
	assert.NoError(t, err)
}

func TestGenerateCommandWithoutDescriptor(t *testing.T) {
	_, err := runCommand(t, "generate", t.TempDir())
	assert.ErrorIs(t, err, config.ErrNoDescriptor)
}

func TestDiffCommand(t *testing.T) {
	dir := newProjectDir(t)

	out, err := runCommand(t, "diff", dir)
	assert.ErrorIs(t, err, ErrDrift)
	assert.Contains(t, out, "+++ settings.gradle.kts (generated)")
	assert.Contains(t, out, "OUT OF DATE")

	_, err = runCommand(t, "generate", dir)
	require.NoError(t, err)

	out, err = runCommand(t, "diff", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "file(s) up to date")

	buildPath := filepath.Join(dir, "app", "build.gradle.kts")
	original, err := os.ReadFile(buildPath)
	require.NoError(t, err)
	edited := strings.Replace(string(original), "3.9.0", "3.8.0", 1)
	require.NoError(t, os.WriteFile(buildPath, []byte(edited), 0o644))

	out, err = runCommand(t, "diff", dir)
	assert.ErrorIs(t, err, ErrDrift)
	assert.Contains(t, out, "-\timplementation(\"com.squareup.okio:okio:3.8.0\")\n")
	assert.Contains(t, out, "+\timplementation(\"com.squareup.okio:okio:3.9.0\")\n")
	assert.Contains(t, out, "1 generated file(s) differ from disk: app/build.gradle.kts")
}

func TestInitCommand(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "notes")

	out, err := runCommand(t, "init", dir, "--preset", "kotlin-library", "--set", "publish=true")
	require.NoError(t, err)
	assert.Contains(t, out, "from preset kotlin-library")

	desc, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "notes", desc.Project.Name)
	require.Len(t, desc.Modules, 1)
	assert.Len(t, desc.Modules[0].Plugins, 3)

	_, err = runCommand(t, "init", dir, "--preset", "kotlin-library")
	assert.Error(t, err, "existing descriptor is kept without --force")

	_, err = runCommand(t, "init", dir, "--preset", "kotlin-library", "--name", "renamed", "--force")
	require.NoError(t, err)
	desc, err = config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "renamed", desc.Project.Name)

	_, err = runCommand(t, "generate", dir)
	assert.NoError(t, err)
}

func TestInitCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "unknown preset", args: []string{"--preset", "androd-app"}, want: "Did you mean: android-app?"},
		{name: "malformed set", args: []string{"--set", "novalue"}},
		{name: "bad variable", args: []string{"--set", "min_sdk=1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"init", t.TempDir()}, tt.args...)
			out, err := runCommand(t, args...)
			assert.Error(t, err)
			if tt.want != "" {
				assert.Contains(t, out, tt.want)
			}
		})
	}
}

func TestPresetsCommand(t *testing.T) {
	out, err := runCommand(t, "presets", "--details")
	require.NoError(t, err)

	assert.Contains(t, out, "Available Presets:")
	assert.Contains(t, out, "android-app")
	assert.Contains(t, out, "kotlin-library")
	assert.Contains(t, out, "min_sdk: Minimum Android API level [default: 24]")
}

func TestExecuteReportsErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "command error",
			args: []string{"init", t.TempDir(), "--set", "novalue"},
			want: []string{`❌ invalid --set "novalue", expected key=value`, "→ Get help: gradlegen init --help"},
		},
		{
			name: "missing descriptor",
			args: []string{"generate", t.TempDir()},
			want: []string{"CONFIGURATION ERROR"},
		},
		{
			name: "unknown flag",
			args: []string{"presets", "--bogus"},
			want: []string{"unknown flag: --bogus", "→ Get help: gradlegen presets --help"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewRootCommand()
			var stdout, stderr bytes.Buffer
			cmd.SetOut(&stdout)
			cmd.SetErr(&stderr)
			cmd.SetArgs(append([]string{"--no-color"}, tt.args...))

			require.Error(t, execute(cmd))
			for _, want := range tt.want {
				assert.Contains(t, stderr.String(), want)
			}
		})
	}
}

func TestInitCommandPresetNameIgnoresCase(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "lib")

	out, err := runCommand(t, "init", dir, "--preset", "Kotlin-Library")
	require.NoError(t, err)
	assert.Contains(t, out, "from preset kotlin-library")
}
