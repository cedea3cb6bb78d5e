package gradle

import (
	"fmt"
	"strings"
)

// Raw is a verbatim Kotlin fragment.
type Raw string

func (r Raw) String() string { return string(r) }

var kotlinEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	`$`, `\$`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// kotlinString renders s as a double-quoted Kotlin string literal. '$' is
// escaped so the text is never read as a string template.
func kotlinString(s string) string {
	return `"` + kotlinEscaper.Replace(s) + `"`
}

// CodeBlock is a named, brace-delimited Kotlin block:
//
//	name {
//		member
//		member
//	}
//
// Members spanning several lines keep their shape, with every line indented one tab.
type CodeBlock struct {
	Name      string
	Arguments []string
	Body      []fmt.Stringer
}

// NewCodeBlock creates a block with the given members.
func NewCodeBlock(name string, body ...fmt.Stringer) *CodeBlock {
	return &CodeBlock{Name: name, Body: body}
}

func (b *CodeBlock) String() string {
	var sb strings.Builder
	sb.WriteString(b.Name)
	if len(b.Arguments) > 0 {
		sb.WriteString("(")
		sb.WriteString(strings.Join(b.Arguments, ", "))
		sb.WriteString(")")
	}
	sb.WriteString(" {\n\t")

	lines := make([]string, 0, len(b.Body))
	for _, member := range b.Body {
		text := strings.TrimRight(member.String(), "\n")
		lines = append(lines, strings.ReplaceAll(text, "\n", "\n\t"))
	}
	sb.WriteString(strings.Join(lines, "\n\t"))
	sb.WriteString("\n}")
	return sb.String()
}

// stringers converts a typed slice to the member list of a CodeBlock.
func stringers[T fmt.Stringer](items []T) []fmt.Stringer {
	out := make([]fmt.Stringer, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}
