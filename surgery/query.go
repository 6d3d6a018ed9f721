package surgery

import (
	"github.com/kicad-edit/kicad-edit/scan"
	"github.com/kicad-edit/kicad-edit/sexp"
)

// FindAll returns the depth-0 forms with the given leading tag, in
// document order.
func (doc *Document) FindAll(tag string) []*Span {
	var res []*Span
	for _, n := range doc.tree.Values {
		if n.Type != sexp.ListType || n.Tag() != tag {
			continue
		}
		if sp := doc.spans[n]; sp != nil {
			res = append(res, sp)
		}
	}
	return res
}

// FindSymbol returns the placed symbol instance whose Reference
// property equals ref, or nil. Instances are distinguished from library
// definitions by the presence of a lib_id child. For multi-unit devices
// this is the canonical (first in document order) unit; see
// FindSymbolUnits.
func (doc *Document) FindSymbol(ref string) *Span {
	units := doc.FindSymbolUnits(ref)
	if len(units) == 0 {
		return nil
	}
	return units[0]
}

// FindSymbolUnits returns every sibling symbol instance sharing the
// Reference ref, in document order. A multi-unit device is several
// sibling forms with identical Reference; edits must fan out over all
// of them.
func (doc *Document) FindSymbolUnits(ref string) []*Span {
	var res []*Span
	for _, sym := range doc.FindAll("symbol") {
		if !sym.Node.HasChild("lib_id") {
			continue
		}
		prop := doc.Property(sym, "Reference")
		if prop == nil {
			continue
		}
		if propertyValue(prop.Node) == ref {
			res = append(res, sym)
		}
	}
	return res
}

// FindLabels returns the depth-0 label forms of the given kind (label,
// global_label, hierarchical_label), optionally filtered by exact text.
// An empty text matches every label of the kind.
func (doc *Document) FindLabels(kind, text string) []*Span {
	var res []*Span
	for _, sp := range doc.FindAll(kind) {
		n := sp.Node
		if len(n.Values) < 2 {
			continue
		}
		if text == "" || n.Values[1].Text() == text {
			res = append(res, sp)
		}
	}
	return res
}

// FindTitleBlock returns the document's title_block form, or nil.
func (doc *Document) FindTitleBlock() *Span {
	tbs := doc.FindAll("title_block")
	if len(tbs) == 0 {
		return nil
	}
	return tbs[0]
}

// Property returns the property child of a symbol span with the given
// name, or nil.
func (doc *Document) Property(sym *Span, name string) *Span {
	for _, c := range sym.Node.Values {
		if c.Type != sexp.ListType || c.Tag() != "property" {
			continue
		}
		if len(c.Values) >= 2 && c.Values[1].Text() == name {
			return doc.spans[c]
		}
	}
	return nil
}

// Lit is a quoted value literal located inside a tracked span. Start
// and End include the quotes; Value is the decoded contents.
type Lit = scan.Lit

// StringLiteral returns the i-th (0-based) quoted literal within a
// span's own byte range, found by re-scanning the text with the
// document's escape rules. Needed because only the enclosing form has a
// tracked span; the literal itself does not.
func (doc *Document) StringLiteral(sp *Span, i int) (Lit, bool) {
	lits := scan.Strings(doc.text, sp.Start, sp.End)
	if i < 0 || i >= len(lits) {
		return Lit{}, false
	}
	return lits[i], true
}

// PropertyValueSpan returns the exact byte range and decoded value of a
// property's value literal: the second quoted string in the property's
// range (the first is the property name).
func (doc *Document) PropertyValueSpan(prop *Span) (Lit, bool) {
	return doc.StringLiteral(prop, 1)
}

// IsPropertyHidden reports whether a property carries a hide flag in
// its effects sub-form. Both spellings are understood: the KiCad 6 bare
// `hide` token and the KiCad 9 `(hide yes)` pair. Truthy explicit
// values are yes and true.
func (doc *Document) IsPropertyHidden(prop *Span) bool {
	effects := prop.Node.Child("effects")
	if effects == nil {
		return false
	}
	for _, c := range effects.Values[1:] {
		if c.Type == sexp.SymbolType && c.Sym == "hide" {
			return true
		}
		if c.Type != sexp.ListType || c.Tag() != "hide" {
			continue
		}
		if len(c.Values) == 1 {
			return true // bare (hide)
		}
		switch c.Values[1].Text() {
		case "yes", "true":
			return true
		}
		return false
	}
	return false
}

func propertyValue(n *sexp.Node) string {
	if len(n.Values) < 3 {
		return ""
	}
	return n.Values[2].Text()
}
