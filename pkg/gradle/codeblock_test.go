package gradle

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeBlockString(t *testing.T) {
	tests := []struct {
		name  string
		block *CodeBlock
		want  string
	}{
		{
			name:  "single member",
			block: NewCodeBlock("repositories", MavenCentral),
			want:  "repositories {\n\tmavenCentral()\n}",
		},
		{
			name:  "several members",
			block: NewCodeBlock("repositories", Google, MavenCentral, &MavenURL{URL: "https://jitpack.io"}),
			want:  "repositories {\n\tgoogle()\n\tmavenCentral()\n\tmaven(\"https://jitpack.io\")\n}",
		},
		{
			name:  "nested block is indented",
			block: NewCodeBlock("pluginManagement", NewRepositories(GradlePluginPortal)),
			want:  "pluginManagement {\n\trepositories {\n\t\tgradlePluginPortal()\n\t}\n}",
		},
		{
			name:  "arguments",
			block: &CodeBlock{Name: "configure", Arguments: []string{"a", "b"}, Body: []fmt.Stringer{Raw("x()")}},
			want:  "configure(a, b) {\n\tx()\n}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.block.String())
		})
	}
}

func TestKotlinString(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "com.squareup.okio:okio:3.9.0", want: `"com.squareup.okio:okio:3.9.0"`},
		{name: "string template", in: "g:a:${v}", want: `"g:a:\${v}"`},
		{name: "quote and backslash", in: `a"b\c`, want: `"a\"b\\c"`},
		{name: "control characters", in: "a\nb\tc", want: `"a\nb\tc"`},
		{name: "non-ascii kept", in: "café", want: `"café"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, kotlinString(tt.in))
		})
	}
}

func TestRenderedStringsEscapeTemplates(t *testing.T) {
	dep := ImplementationDependency("com.example:lib:$version")
	assert.Equal(t, `implementation("com.example:lib:\$version")`, dep.String())

	p, err := ID("com.example.$plugin", WithVersion("1.$x"))
	assert.NoError(t, err)
	assert.Equal(t, `id("com.example.\$plugin") version "1.\$x"`, p.String())

	assert.Equal(t, `maven("https://repo.example.com/\$path")`, (&MavenURL{URL: "https://repo.example.com/$path"}).String())
}
