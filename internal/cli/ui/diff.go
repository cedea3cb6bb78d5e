package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// DiffOptions configures a file diff
type DiffOptions struct {
	Path    string
	Old     string
	New     string
	NoColor bool
}

// LineDiff computes a line-level diff between two texts
func LineDiff(old, new string) []diffpatch.Diff {
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(old, new)
	diffs := dmp.DiffMain(a, b, false)
	return dmp.DiffCharsToLines(diffs, lines)
}

// HasChanges reports whether diffs contains an insertion or a deletion
func HasChanges(diffs []diffpatch.Diff) bool {
	for _, d := range diffs {
		if d.Type != diffpatch.DiffEqual {
			return true
		}
	}
	return false
}

// FormatDiff renders a unified-style diff of one file. An empty string means
// the two texts are identical.
//
// Example output:
//
//	--- app/build.gradle.kts (on disk)
//	+++ app/build.gradle.kts (generated)
//	 dependencies {
//	-	implementation("junit:junit:4.12")
//	+	implementation("junit:junit:4.13.2")
//	 }
func FormatDiff(opts DiffOptions) string {
	diffs := LineDiff(opts.Old, opts.New)
	if !HasChanges(diffs) {
		return ""
	}

	header := color.New(color.Bold)
	added := color.New(color.FgGreen)
	removed := color.New(color.FgRed)
	if opts.NoColor {
		header.DisableColor()
		added.DisableColor()
		removed.DisableColor()
	}

	var b strings.Builder
	header.Fprintf(&b, "--- %s (on disk)\n", opts.Path)
	header.Fprintf(&b, "+++ %s (generated)\n", opts.Path)

	for _, d := range diffs {
		for _, line := range splitLines(d.Text) {
			switch d.Type {
			case diffpatch.DiffInsert:
				added.Fprintf(&b, "+%s\n", line)
			case diffpatch.DiffDelete:
				removed.Fprintf(&b, "-%s\n", line)
			default:
				fmt.Fprintf(&b, " %s\n", line)
			}
		}
	}
	return b.String()
}

// WriteDiff writes a formatted diff to the writer and reports whether the
// texts differed
func WriteDiff(w io.Writer, opts DiffOptions) bool {
	out := FormatDiff(opts)
	fmt.Fprint(w, out)
	return out != ""
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
