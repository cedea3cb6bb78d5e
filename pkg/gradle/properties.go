package gradle

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cast"

	"github.com/gradlegen/gradlegen/pkg/metadata"
)

const (
	GradlePropertiesFileName = "gradle.properties"
	LocalPropertiesFileName  = "local.properties"

	// GradlePropertiesScope and LocalPropertiesScope are the metadata scopes
	// whose entries replace existing property values.
	GradlePropertiesScope = "gradle-properties"
	LocalPropertiesScope  = "local-properties"
)

// LocalPropertiesBanner heads every generated local.properties.
const LocalPropertiesBanner = `## This file must *NOT* be checked into Version Control Systems,
# as it contains information specific to your local configuration.
# For customization when using a Version Control System, please read the
# header note.
`

// Properties is an insertion-ordered key/value list.
type Properties struct {
	keys   []string
	values map[string]string
}

// Set stores value under key. New keys are appended; existing keys keep their position.
func (p *Properties) Set(key, value string) {
	if p.values == nil {
		p.values = make(map[string]string)
	}
	if _, exists := p.values[key]; !exists {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
}

func (p *Properties) Get(key string) (string, bool) {
	v, ok := p.values[key]
	return v, ok
}

func (p *Properties) Delete(key string) {
	if _, ok := p.values[key]; !ok {
		return
	}
	delete(p.values, key)
	for i, k := range p.keys {
		if k == key {
			p.keys = append(p.keys[:i], p.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in insertion order.
func (p *Properties) Keys() []string {
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

func (p *Properties) Len() int { return len(p.keys) }

// String renders one key=value line per entry. Characters that would change
// how a line is read back are backslash-escaped as in Java .properties files.
func (p *Properties) String() string {
	var sb strings.Builder
	for _, k := range p.keys {
		fmt.Fprintf(&sb, "%s=%s\n", escapeKey(k), escapeValue(p.values[k]))
	}
	return sb.String()
}

func escapeKey(key string) string {
	var sb strings.Builder
	for i, r := range key {
		switch r {
		case '=', ' ':
			sb.WriteByte('\\')
			sb.WriteRune(r)
		case '#', '!':
			if i == 0 {
				sb.WriteByte('\\')
			}
			sb.WriteRune(r)
		default:
			writeEscaped(&sb, r)
		}
	}
	return sb.String()
}

// escapeValue protects leading and trailing spaces, which the reader trims.
func escapeValue(value string) string {
	end := len(strings.TrimRight(value, " "))
	var sb strings.Builder
	for i, r := range value {
		if r == ' ' && (i == 0 || i >= end) {
			sb.WriteString(`\ `)
			continue
		}
		writeEscaped(&sb, r)
	}
	return sb.String()
}

func writeEscaped(sb *strings.Builder, r rune) {
	switch r {
	case '\\':
		sb.WriteString(`\\`)
	case '\n':
		sb.WriteString(`\n`)
	case '\r':
		sb.WriteString(`\r`)
	case '\t':
		sb.WriteString(`\t`)
	case '\f':
		sb.WriteString(`\f`)
	default:
		sb.WriteRune(r)
	}
}

// cutSeparator splits line on the first '=' that is not backslash-escaped.
func cutSeparator(line string) (key, value string, found bool) {
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '\\':
			i++
		case '=':
			return line[:i], line[i+1:], true
		}
	}
	return line, "", false
}

// unescape resolves backslash escapes and trims unescaped surrounding whitespace.
func unescape(raw string) string {
	raw = strings.TrimLeft(raw, " \t\f")
	var sb strings.Builder
	keep := 0
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c == '\\' && i+1 < len(raw) {
			i++
			switch raw[i] {
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			case 't':
				sb.WriteByte('\t')
			case 'f':
				sb.WriteByte('\f')
			default:
				sb.WriteByte(raw[i])
			}
			keep = sb.Len()
			continue
		}
		sb.WriteByte(c)
		if c != ' ' && c != '\t' && c != '\f' {
			keep = sb.Len()
		}
	}
	return sb.String()[:keep]
}

// override replaces the values of existing keys that md holds under scope.
func (p *Properties) override(scope string, md metadata.Provider) error {
	for _, k := range p.keys {
		value, ok := md.Property(scope + metadata.Separator + k)
		if !ok {
			continue
		}
		v, err := cast.ToStringE(value)
		if err != nil {
			return &OverrideError{Scope: scope, Key: k, Err: err}
		}
		p.values[k] = v
	}
	return nil
}

// ParseProperties reads key=value lines. Blank lines and lines starting with
// '#' or '!' are skipped. Each remaining line is split once on the first
// unescaped '='; key and value are trimmed and their escapes resolved.
func ParseProperties(r io.Reader) (*Properties, error) {
	props := &Properties{}
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		trimmed := strings.TrimSpace(text)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "!") {
			continue
		}
		key, value, ok := cutSeparator(text)
		if !ok {
			return nil, &FormatError{Line: line, Text: text}
		}
		props.Set(unescape(key), unescape(value))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return props, nil
}

func readProperties(fsys afero.Fs, path, want string) (*Properties, error) {
	if filepath.Base(path) != want {
		return nil, fmt.Errorf("%w: %s is not %s", ErrWrongFileName, path, want)
	}
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, &FileError{Op: "read", Path: path, Err: err}
	}
	props, err := ParseProperties(bytes.NewReader(data))
	if err != nil {
		if fe, ok := err.(*FormatError); ok {
			fe.Path = path
		}
		return nil, err
	}
	return props, nil
}

// GradleProperties is the project's gradle.properties.
type GradleProperties struct {
	Properties
}

func NewGradleProperties() *GradleProperties {
	return &GradleProperties{}
}

// ReadGradleProperties parses path, which must name a gradle.properties file.
func ReadGradleProperties(fsys afero.Fs, path string) (*GradleProperties, error) {
	props, err := readProperties(fsys, path, GradlePropertiesFileName)
	if err != nil {
		return nil, err
	}
	return &GradleProperties{Properties: *props}, nil
}

func (g *GradleProperties) FileName() string { return GradlePropertiesFileName }

func (g *GradleProperties) ProvideMetadata(md metadata.Provider) error {
	return g.override(GradlePropertiesScope, md)
}

func (g *GradleProperties) GenerateToFile(fsys afero.Fs, dir string) error {
	return writeDocument(fsys, dir, g.FileName(), g.String())
}

// LocalProperties is the machine-specific local.properties.
type LocalProperties struct {
	Properties
}

func NewLocalProperties() *LocalProperties {
	return &LocalProperties{}
}

// ReadLocalProperties parses path, which must name a local.properties file.
// The banner is made of comment lines and is skipped.
func ReadLocalProperties(fsys afero.Fs, path string) (*LocalProperties, error) {
	props, err := readProperties(fsys, path, LocalPropertiesFileName)
	if err != nil {
		return nil, err
	}
	return &LocalProperties{Properties: *props}, nil
}

func (l *LocalProperties) FileName() string { return LocalPropertiesFileName }

func (l *LocalProperties) String() string {
	return LocalPropertiesBanner + l.Properties.String()
}

func (l *LocalProperties) ProvideMetadata(md metadata.Provider) error {
	return l.override(LocalPropertiesScope, md)
}

func (l *LocalProperties) GenerateToFile(fsys afero.Fs, dir string) error {
	return writeDocument(fsys, dir, l.FileName(), l.String())
}
