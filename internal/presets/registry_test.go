package presets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPreset(name string) *Preset {
	return &Preset{
		Name:       name,
		Version:    "1.0.0",
		Descriptor: "project:\n  name: {{.ProjectName}}\n",
	}
}

func TestRegistryRegister(t *testing.T) {
	registry := NewRegistry()

	require.NoError(t, registry.Register(testPreset("test")))
	assert.Error(t, registry.Register(testPreset("test")), "duplicate preset")
	assert.Error(t, registry.Register(&Preset{Name: "invalid"}))
}

func TestRegistryGet(t *testing.T) {
	registry := NewRegistry()
	for _, name := range []string{"android-app", "android-multi-module", "kotlin-library"} {
		require.NoError(t, registry.Register(testPreset(name)))
	}

	tests := []struct {
		name            string
		lookup          string
		want            string
		wantSuggestions []string
	}{
		{name: "exact", lookup: "android-app", want: "android-app"},
		{name: "case and spaces ignored", lookup: " Kotlin-Library ", want: "kotlin-library"},
		{name: "typo suggests nearest", lookup: "androd-app", wantSuggestions: []string{"android-app"}},
		{name: "nothing close", lookup: "spring-boot-service"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := registry.Get(tt.lookup)
			if tt.want != "" {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got.Name)
				return
			}

			var notFound *NotFoundError
			require.ErrorAs(t, err, &notFound)
			assert.Equal(t, tt.lookup, notFound.Name)
			if tt.wantSuggestions == nil {
				assert.Empty(t, notFound.Suggestions)
			} else {
				assert.Equal(t, tt.wantSuggestions, notFound.Suggestions)
			}
		})
	}
}

func TestNotFoundErrorMessage(t *testing.T) {
	err := &NotFoundError{Name: "androd-app", Suggestions: []string{"android-app"}}
	assert.Equal(t, "preset androd-app not found, did you mean android-app?", err.Error())
	assert.Equal(t, "preset x not found", (&NotFoundError{Name: "x"}).Error())
}

func TestRegistryListSorted(t *testing.T) {
	registry := NewRegistry()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		require.NoError(t, registry.Register(testPreset(name)))
	}

	assert.Equal(t, []string{"alpha", "mid", "zeta"}, registry.Names())
	assert.Len(t, registry.List(), 3)
}

func TestRegistryExistsAndUnregister(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Register(testPreset("test")))

	assert.True(t, registry.Exists("test"))
	assert.True(t, registry.Exists("TEST"))
	require.NoError(t, registry.Unregister("test"))
	assert.False(t, registry.Exists("test"))
	assert.Error(t, registry.Unregister("test"))
}

func TestRegisterBuiltinPresets(t *testing.T) {
	original := DefaultRegistry()
	defer SetDefaultRegistry(original)

	SetDefaultRegistry(NewRegistry())
	require.NoError(t, RegisterBuiltinPresets())
	require.NoError(t, RegisterBuiltinPresets())

	assert.Equal(t, []string{"android-app", "android-multi-module", "kotlin-library"}, DefaultRegistry().Names())
}
