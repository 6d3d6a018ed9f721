package schematic

import (
	"fmt"
	"strings"

	"github.com/kicad-edit/kicad-edit/scan"
	"github.com/kicad-edit/kicad-edit/sexp"
	"github.com/kicad-edit/kicad-edit/surgery"
)

// SheetInfo carries title-block updates. Nil fields are left unchanged.
// Author is stored as title-block comment 1 by KiCad convention.
type SheetInfo struct {
	Title    *string
	Revision *string
	Date     *string
	Author   *string
	Company  *string
}

// UpdateSheetInfo loads path, applies the provided title-block fields
// and saves the file.
func UpdateSheetInfo(path string, info SheetInfo) (string, error) {
	doc, err := surgery.Load(path)
	if err != nil {
		return "", err
	}
	summary, err := StageSheetInfo(doc, info)
	if err != nil {
		return "", err
	}
	if err := doc.Save(path); err != nil {
		return "", err
	}
	return summary, nil
}

type tbField struct {
	tag, label string
	val        *string
}

// titleBlockFields maps SheetInfo fields to title-block child tags, in
// the order KiCad writes them.
func titleBlockFields(info SheetInfo) []tbField {
	return []tbField{
		{"title", "title", info.Title},
		{"date", "date", info.Date},
		{"rev", "revision", info.Revision},
		{"company", "company", info.Company},
	}
}

// StageSheetInfo enqueues title-block edits. Existing fields have only
// their value literal replaced; missing fields are appended inside the
// block; a schematic with no title block at all gets one inserted after
// the paper form.
func StageSheetInfo(doc *surgery.Document, info SheetInfo) (string, error) {
	var updated []string
	for _, f := range titleBlockFields(info) {
		if f.val != nil {
			updated = append(updated, fmt.Sprintf("%s='%s'", f.label, *f.val))
		}
	}
	if info.Author != nil {
		updated = append(updated, fmt.Sprintf("author='%s' (comment 1)", *info.Author))
	}
	if len(updated) == 0 {
		return "Updated title block: no fields provided", nil
	}

	tb := doc.FindTitleBlock()
	if tb == nil {
		if err := insertTitleBlock(doc, info); err != nil {
			return "", err
		}
		return "Updated title block: " + strings.Join(updated, ", "), nil
	}

	text := doc.Text()
	for _, f := range titleBlockFields(info) {
		if f.val == nil {
			continue
		}
		if err := stageField(doc, tb, f.tag, fmt.Sprintf("(%s %s)", f.tag, sexp.Quote(*f.val)),
			findChildForm(text, tb.Start, tb.End, f.tag)); err != nil {
			return "", err
		}
	}
	if info.Author != nil {
		if err := stageField(doc, tb, "comment",
			fmt.Sprintf("(comment 1 %s)", sexp.Quote(*info.Author)),
			findComment1(text, tb)); err != nil {
			return "", err
		}
	}
	return "Updated title block: " + strings.Join(updated, ", "), nil
}

// stageField replaces an existing field's value literal or appends the
// rendered form when the field is missing.
func stageField(doc *surgery.Document, tb *surgery.Span, tag, form string, child *scan.Span) error {
	if child == nil {
		return insertChildForm(doc, tb, form)
	}
	lits := scan.Strings(doc.Text(), child.Start, child.End)
	if len(lits) == 0 {
		return doc.ReplaceBytes(child.Start, child.End, form)
	}
	// the new value sits between the opening quote of the form's render
	// and its close; reuse only the literal
	q := form[strings.IndexByte(form, '"') : len(form)-1]
	return doc.ReplaceBytes(lits[0].Start, lits[0].End, q)
}

// findComment1 locates the (comment 1 ...) child of the title block.
func findComment1(text []byte, tb *surgery.Span) *scan.Span {
	for _, c := range scan.Children(text, tb.Start, tb.End) {
		atoms := scan.Atoms(text, c.Start, c.End)
		if len(atoms) >= 2 && atoms[0].Text == "comment" && atoms[1].Text == "1" {
			c := c
			return &c
		}
	}
	return nil
}

// insertTitleBlock writes a fresh title block carrying the provided
// fields, placed directly after the paper form the way KiCad lays files
// out. Without a paper form it goes after the first tracked root child.
func insertTitleBlock(doc *surgery.Document, info SheetInfo) error {
	anchor := anchorSpan(doc)
	if anchor == nil {
		return fmt.Errorf("no place for a title block: document has no tracked forms")
	}
	text := doc.Text()
	indent := lineIndent(text, anchor.Start)
	if indent == "" {
		indent = "  "
	}
	unit := indentUnit(indent)

	var b strings.Builder
	b.WriteString("\n" + indent + "(title_block")
	for _, f := range titleBlockFields(info) {
		if f.val == nil {
			continue
		}
		fmt.Fprintf(&b, "\n%s%s(%s %s)", indent, unit, f.tag, sexp.Quote(*f.val))
	}
	if info.Author != nil {
		fmt.Fprintf(&b, "\n%s%s(comment 1 %s)", indent, unit, sexp.Quote(*info.Author))
	}
	b.WriteString("\n" + indent + ")")
	return doc.ReplaceBytes(anchor.End, anchor.End, b.String())
}

func anchorSpan(doc *surgery.Document) *surgery.Span {
	if papers := doc.FindAll("paper"); len(papers) > 0 {
		return papers[0]
	}
	for _, n := range doc.Root().Values {
		if sp := doc.Span(n); sp != nil {
			return sp
		}
	}
	return nil
}
