package schematic

import (
	"strings"

	"github.com/kicad-edit/kicad-edit/scan"
	"github.com/kicad-edit/kicad-edit/surgery"
)

// lineIndent returns the whitespace run between the preceding newline and
// off, or "" when off is not the first non-blank position of its line.
func lineIndent(text []byte, off int) string {
	i := off
	for i > 0 && text[i-1] != '\n' {
		i--
	}
	for j := i; j < off; j++ {
		if text[j] != ' ' && text[j] != '\t' {
			return ""
		}
	}
	return string(text[i:off])
}

// indentUnit guesses one level of indentation from an existing indent
// string: KiCad 6 writes two spaces, KiCad 9 tabs.
func indentUnit(indent string) string {
	if strings.Contains(indent, "\t") {
		return "\t"
	}
	return "  "
}

// childLayout reports the indentation of a form's children. ok is false
// for single-line forms, where inserted children go inline instead.
func childLayout(text []byte, parent *surgery.Span) (indent, unit string, ok bool) {
	for _, c := range scan.Children(text, parent.Start, parent.End) {
		if ind := lineIndent(text, c.Start); ind != "" {
			return ind, indentUnit(ind), true
		}
	}
	return "", "", false
}

// insertChildForm enqueues insertion of a new child form into parent,
// after its last existing child, matching the surrounding layout. form
// may contain newlines; multi-line callers build inner lines with the
// indentation childLayout reports.
func insertChildForm(doc *surgery.Document, parent *surgery.Span, form string) error {
	text := doc.Text()
	children := scan.Children(text, parent.Start, parent.End)
	if len(children) == 0 {
		return doc.ReplaceBytes(parent.End-1, parent.End-1, " "+form)
	}
	last := children[len(children)-1]
	indent, _, multiline := childLayout(text, parent)
	if !multiline {
		return doc.ReplaceBytes(last.End, last.End, " "+form)
	}
	return doc.ReplaceBytes(last.End, last.End, "\n"+indent+form)
}

// formTag returns the leading tag token of the form spanning [sp.Start,
// sp.End), or "".
func formTag(text []byte, sp scan.Span) string {
	atoms := scan.Atoms(text, sp.Start, sp.End)
	if len(atoms) == 0 {
		return ""
	}
	return atoms[0].Text
}

// findChildForm returns the first immediate child form of [start, end)
// with the given tag, or nil.
func findChildForm(text []byte, start, end int, tag string) *scan.Span {
	for _, c := range scan.Children(text, start, end) {
		if formTag(text, c) == tag {
			c := c
			return &c
		}
	}
	return nil
}
