package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeProperty(t *testing.T) {
	deps := NewScope("dependencies", nil)
	deps.Set("g:a:v", "X")

	tests := []struct {
		name   string
		key    string
		want   any
		wantOK bool
	}{
		{name: "scoped match", key: "dependencies/g:a:v", want: "X", wantOK: true},
		{name: "scoped miss on own scope", key: "dependencies/g:a:w", wantOK: false},
		{name: "other scope without parent", key: "plugins/g:a:v", wantOK: false},
		{name: "unscoped own entry", key: "g:a:v", want: "X", wantOK: true},
		{name: "unscoped missing", key: "missing", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := deps.Property(tt.key)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestNodePropertyWalksParents(t *testing.T) {
	proj := NewProject("sample", "com.example.sample", "1.0.0", "com.example")
	app := NewModule("app", "com.example.sample.app", proj.Node)
	deps := NewScope("dependencies", app.Node)
	plugins := NewScope("plugins", deps)

	deps.Set("g:a:v", "2.0")
	plugins.Set("com.android.application", "8.5.0")

	t.Run("resolves scope two levels up", func(t *testing.T) {
		v, ok := plugins.Property("project-metadata/version")
		require.True(t, ok)
		assert.Equal(t, "1.0.0", v)
	})

	t.Run("resolves sibling scope through parent", func(t *testing.T) {
		v, ok := plugins.Property("dependencies/g:a:v")
		require.True(t, ok)
		assert.Equal(t, "2.0", v)
	})

	t.Run("resolves module entries", func(t *testing.T) {
		v, ok := plugins.Property("app/namespace")
		require.True(t, ok)
		assert.Equal(t, "com.example.sample.app", v)
	})

	t.Run("matching scope stops the walk", func(t *testing.T) {
		_, ok := plugins.Property("plugins/g:a:v")
		assert.False(t, ok)
	})

	t.Run("unscoped keys do not fall back to parent", func(t *testing.T) {
		_, ok := plugins.Property("version")
		assert.False(t, ok)
	})

	t.Run("unknown scope is absent", func(t *testing.T) {
		_, ok := plugins.Property("nowhere/x")
		assert.False(t, ok)
	})
}

func TestNodeProject(t *testing.T) {
	t.Run("returns the root project", func(t *testing.T) {
		proj := NewProject("sample", "com.example", "1.0.0", "com.example")
		mod := NewModule("core", "com.example.core", proj.Node)
		scope := NewScope("plugins", mod.Node)

		got, err := scope.Project()
		require.NoError(t, err)
		assert.Equal(t, "sample", got.Name())
		assert.Same(t, proj.Node, got.Node)
	})

	t.Run("project returns itself", func(t *testing.T) {
		proj := NewProject("sample", "com.example", "1.0.0", "com.example")
		got, err := proj.Project()
		require.NoError(t, err)
		assert.Same(t, proj.Node, got.Node)
	})

	t.Run("detached chain is a configuration error", func(t *testing.T) {
		orphan := NewModule("core", "com.example.core", nil)
		_, err := NewScope("dependencies", orphan.Node).Project()
		assert.ErrorIs(t, err, ErrNoProject)
	})
}

func TestNodeSetAndDelete(t *testing.T) {
	n := NewScope("gradle-properties", nil)
	n.Set("org.gradle.jvmargs", "-Xmx2g")
	assert.Equal(t, 1, n.Len())

	n.Delete("org.gradle.jvmargs")
	assert.Equal(t, 0, n.Len())
	_, ok := n.Property("org.gradle.jvmargs")
	assert.False(t, ok)
}
