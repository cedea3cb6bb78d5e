package presets

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"text/template"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"github.com/gradlegen/gradlegen/internal/cli/config"
)

// VariableType represents the type of a preset variable
type VariableType string

const (
	VariableTypeString  VariableType = "string"
	VariableTypeSelect  VariableType = "select"
	VariableTypeConfirm VariableType = "confirm"
)

// Preset is a named descriptor template
type Preset struct {
	Name        string
	Description string
	Version     string
	Variables   []*Variable
	// Descriptor is gradlegen.yml as a text/template
	Descriptor string
	Metadata   map[string]interface{}
}

// Variable is a value asked for when a preset is applied
type Variable struct {
	Name        string
	Description string
	Type        VariableType
	Default     interface{}
	Required    bool
	Options     []string
	Prompt      string
}

// Context contains the data a preset is rendered with
type Context struct {
	ProjectName string
	Variables   map[string]interface{}
}

var nonIdentifier = regexp.MustCompile(`[^a-z0-9]+`)

// Engine renders presets into descriptors
type Engine struct {
	funcs template.FuncMap
}

// NewEngine creates a new preset engine
func NewEngine() *Engine {
	return &Engine{
		funcs: template.FuncMap{
			"upper": strings.ToUpper,
			"lower": strings.ToLower,
			// ident turns "My App" into "myapp", usable in a package name
			"ident": func(s string) string {
				return nonIdentifier.ReplaceAllString(strings.ToLower(s), "")
			},
			// split turns "a, b" into ["a" "b"], dropping empty items
			"split": func(s string) []string {
				var out []string
				for _, item := range strings.Split(s, ",") {
					if item = strings.TrimSpace(item); item != "" {
						out = append(out, item)
					}
				}
				return out
			},
			"quote": yamlQuote,
			"default": func(def, val interface{}) interface{} {
				if val == nil || val == "" {
					return def
				}
				return val
			},
		},
	}
}

// yamlQuote renders v as a double-quoted YAML scalar, safe to splice into the
// descriptor whatever characters it holds.
func yamlQuote(v interface{}) (string, error) {
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", err
	}
	out, err := yaml.Marshal(&yaml.Node{Kind: yaml.ScalarNode, Style: yaml.DoubleQuotedStyle, Value: s})
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(string(out), "\n"), nil
}

// Defaults fills ctx.Variables with the default of every variable not yet set
func (p *Preset) Defaults(ctx *Context) {
	if ctx.Variables == nil {
		ctx.Variables = make(map[string]interface{})
	}
	for _, v := range p.Variables {
		if _, ok := ctx.Variables[v.Name]; !ok && v.Default != nil {
			ctx.Variables[v.Name] = v.Default
		}
	}
}

// Render executes the preset and decodes the result into a validated descriptor
func (e *Engine) Render(p *Preset, ctx *Context) (*config.Descriptor, error) {
	if ctx.ProjectName == "" {
		return nil, fmt.Errorf("project name is required")
	}
	p.Defaults(ctx)
	if err := e.validateContext(p, ctx); err != nil {
		return nil, fmt.Errorf("invalid preset context: %w", err)
	}

	text, err := e.renderString(p.Descriptor, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to render preset %s: %w", p.Name, err)
	}

	var desc config.Descriptor
	if err := yaml.Unmarshal([]byte(text), &desc); err != nil {
		return nil, fmt.Errorf("preset %s produced invalid YAML: %w", p.Name, err)
	}
	if err := desc.Validate(); err != nil {
		return nil, fmt.Errorf("preset %s produced an invalid descriptor: %w", p.Name, err)
	}
	return &desc, nil
}

func (e *Engine) renderString(tmplStr string, ctx *Context) (string, error) {
	tmpl, err := template.New("").Funcs(e.funcs).Option("missingkey=error").Parse(tmplStr)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, ctx); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// validateContext checks required variables and coerces every value to the
// Go type its variable type implies, so "false" from a flag renders as false.
func (e *Engine) validateContext(p *Preset, ctx *Context) error {
	for _, v := range p.Variables {
		val, ok := ctx.Variables[v.Name]
		if !ok {
			if v.Required {
				return fmt.Errorf("required variable %s not provided", v.Name)
			}
			continue
		}

		switch v.Type {
		case VariableTypeConfirm:
			b, err := cast.ToBoolE(val)
			if err != nil {
				return fmt.Errorf("variable %s must be a boolean, got: %v", v.Name, val)
			}
			ctx.Variables[v.Name] = b
		case VariableTypeSelect:
			s := cast.ToString(val)
			if !contains(v.Options, s) {
				return fmt.Errorf("variable %s must be one of %s, got: %v", v.Name, strings.Join(v.Options, ", "), val)
			}
			ctx.Variables[v.Name] = s
		default:
			s := cast.ToString(val)
			if v.Required && s == "" {
				return fmt.Errorf("required variable %s is empty", v.Name)
			}
			ctx.Variables[v.Name] = s
		}
	}
	return nil
}

func contains(options []string, s string) bool {
	for _, o := range options {
		if o == s {
			return true
		}
	}
	return false
}

// Validate validates a preset structure
func (p *Preset) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("preset name is required")
	}
	if p.Version == "" {
		return fmt.Errorf("preset version is required")
	}
	if strings.TrimSpace(p.Descriptor) == "" {
		return fmt.Errorf("preset %s has no descriptor", p.Name)
	}
	if _, err := template.New("").Funcs(NewEngine().funcs).Parse(p.Descriptor); err != nil {
		return fmt.Errorf("preset %s: %w", p.Name, err)
	}

	varNames := make(map[string]bool)
	for _, v := range p.Variables {
		if v.Name == "" {
			return fmt.Errorf("variable name is required")
		}
		if varNames[v.Name] {
			return fmt.Errorf("duplicate variable name: %s", v.Name)
		}
		varNames[v.Name] = true

		if v.Type == VariableTypeSelect && len(v.Options) == 0 {
			return fmt.Errorf("select variable %s must have options", v.Name)
		}
	}

	return nil
}
