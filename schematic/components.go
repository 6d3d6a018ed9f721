// Package schematic implements the editing operations exposed to users:
// component property changes, net-label renames and title-block updates,
// all expressed as byte-range edits so untouched file text survives
// byte-for-byte. Operations come in pairs: Stage* enqueues edits on an
// open document (used for dry runs), the plain form loads, stages and
// saves.
package schematic

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kicad-edit/kicad-edit/sexp"
	"github.com/kicad-edit/kicad-edit/surgery"
)

// Component is one row of a component listing.
type Component struct {
	Reference string `json:"reference"`
	Value     string `json:"value"`
	Footprint string `json:"footprint"`
}

// PropertyInfo is one property of a component as reported by
// GetComponent.
type PropertyInfo struct {
	Value   string `json:"value"`
	Visible bool   `json:"visible"`
}

// Change describes one property mutation for UpdateComponent. A nil
// *Change removes the property. Value sets the property text; Visible
// toggles the hide marker; either may be nil to leave that aspect
// alone.
type Change struct {
	Value   *string
	Visible *bool
}

// ListComponents returns one row per component, multi-unit devices
// reported once. prefix filters by reference prefix; "" matches all.
func ListComponents(path, prefix string) ([]Component, error) {
	doc, err := surgery.Load(path)
	if err != nil {
		return nil, err
	}
	var res []Component
	seen := map[string]bool{}
	for _, sym := range doc.FindAll("symbol") {
		if !sym.Node.HasChild("lib_id") {
			continue
		}
		ref := propertyText(sym.Node, "Reference")
		if ref == "" || seen[ref] {
			continue
		}
		seen[ref] = true
		if prefix != "" && !strings.HasPrefix(ref, prefix) {
			continue
		}
		res = append(res, Component{
			Reference: ref,
			Value:     propertyText(sym.Node, "Value"),
			Footprint: propertyText(sym.Node, "Footprint"),
		})
	}
	return res, nil
}

// GetComponent returns every property of a component with its value and
// visibility. For multi-unit devices the canonical (first) unit is
// reported.
func GetComponent(path, ref string) (map[string]PropertyInfo, error) {
	doc, err := surgery.Load(path)
	if err != nil {
		return nil, err
	}
	sym := doc.FindSymbol(ref)
	if sym == nil {
		return nil, fmt.Errorf("%w: %q in %s", ErrComponentNotFound, ref, path)
	}
	props := map[string]PropertyInfo{}
	for _, c := range sym.Node.Values {
		if c.Type != sexp.ListType || c.Tag() != "property" || len(c.Values) < 3 {
			continue
		}
		name := c.Values[1].Text()
		hidden := false
		if sp := doc.Span(c); sp != nil {
			hidden = doc.IsPropertyHidden(sp)
		}
		props[name] = PropertyInfo{Value: c.Values[2].Text(), Visible: !hidden}
	}
	return props, nil
}

// UpdateComponent loads path, applies changes to the named component and
// saves the file. The returned summary describes what changed.
func UpdateComponent(path, ref string, changes map[string]*Change) (string, error) {
	doc, err := surgery.Load(path)
	if err != nil {
		return "", err
	}
	summary, err := StageComponentUpdate(doc, ref, changes)
	if err != nil {
		return "", err
	}
	if err := doc.Save(path); err != nil {
		return "", err
	}
	return summary, nil
}

// StageComponentUpdate enqueues the edits for changes against one
// component. Every edit fans out over all units of a multi-unit device
// so sibling forms never disagree. New properties default to hidden
// unless the key is Reference or Value.
func StageComponentUpdate(doc *surgery.Document, ref string, changes map[string]*Change) (string, error) {
	if _, ok := changes["dnp"]; ok {
		return "", fmt.Errorf("%w: 'dnp', use in_bom/on_board or a custom property instead",
			ErrUnsupportedKey)
	}
	units := doc.FindSymbolUnits(ref)
	if len(units) == 0 {
		return "", fmt.Errorf("%w: %q", ErrComponentNotFound, ref)
	}

	keys := make([]string, 0, len(changes))
	for k := range changes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var done []string
	for _, key := range keys {
		msg, err := stageOneChange(doc, units, key, changes[key])
		if err != nil {
			return "", err
		}
		done = append(done, msg)
	}

	summary := "no changes"
	if len(done) > 0 {
		summary = strings.Join(done, "; ")
	}
	return fmt.Sprintf("Updated %s: %s", ref, summary), nil
}

func stageOneChange(doc *surgery.Document, units []*surgery.Span, key string, ch *Change) (string, error) {
	if ch == nil {
		removed := false
		for _, u := range units {
			prop := doc.Property(u, key)
			if prop == nil {
				continue
			}
			if err := doc.DeleteSpan(prop); err != nil {
				return "", err
			}
			removed = true
		}
		if !removed {
			return fmt.Sprintf("'%s' not present (no-op)", key), nil
		}
		return fmt.Sprintf("removed '%s'", key), nil
	}

	canonical := doc.Property(units[0], key)
	if canonical == nil {
		// new property
		if ch.Value == nil {
			return fmt.Sprintf("'%s' not present (no-op)", key), nil
		}
		hidden := key != "Reference" && key != "Value"
		if ch.Visible != nil {
			hidden = !*ch.Visible
		}
		for _, u := range units {
			if err := insertProperty(doc, u, key, *ch.Value, hidden); err != nil {
				return "", err
			}
		}
		return fmt.Sprintf("added '%s'='%s'", key, *ch.Value), nil
	}

	var old string
	if lit, ok := doc.PropertyValueSpan(canonical); ok {
		old = lit.Value
	}
	for _, u := range units {
		prop := doc.Property(u, key)
		if prop == nil {
			// a unit missing the property gains it, keeping units in step
			if ch.Value == nil {
				continue
			}
			hidden := doc.IsPropertyHidden(canonical)
			if ch.Visible != nil {
				hidden = !*ch.Visible
			}
			if err := insertProperty(doc, u, key, *ch.Value, hidden); err != nil {
				return "", err
			}
			continue
		}
		if ch.Value != nil {
			lit, ok := doc.PropertyValueSpan(prop)
			if !ok {
				return "", fmt.Errorf("property %q has no value literal", key)
			}
			if err := doc.ReplaceBytes(lit.Start, lit.End, sexp.Quote(*ch.Value)); err != nil {
				return "", err
			}
		}
		if ch.Visible != nil {
			if err := SetPropertyHidden(doc, prop, !*ch.Visible); err != nil {
				return "", err
			}
		}
	}

	switch {
	case ch.Value != nil:
		return fmt.Sprintf("'%s': '%s' -> '%s'", key, old, *ch.Value), nil
	case ch.Visible != nil && *ch.Visible:
		return fmt.Sprintf("'%s': visible", key), nil
	default:
		return fmt.Sprintf("'%s': hidden", key), nil
	}
}

// insertProperty appends a new property form to one symbol unit,
// matching the unit's existing child layout.
func insertProperty(doc *surgery.Document, unit *surgery.Span, key, value string, hidden bool) error {
	marker := ""
	if hidden {
		marker = " (hide yes)"
	}
	head := fmt.Sprintf("(property %s %s (at 0 0 0)", sexp.Quote(key), sexp.Quote(value))
	indent, unitIndent, multiline := childLayout(doc.Text(), unit)
	if !multiline {
		return insertChildForm(doc, unit,
			head+" (effects (font (size 1.27 1.27))"+marker+"))")
	}
	form := head +
		"\n" + indent + unitIndent + "(effects (font (size 1.27 1.27))" + marker + ")" +
		"\n" + indent + ")"
	return insertChildForm(doc, unit, form)
}

func propertyText(sym *sexp.Node, name string) string {
	for _, c := range sym.Values {
		if c.Type != sexp.ListType || c.Tag() != "property" || len(c.Values) < 3 {
			continue
		}
		if c.Values[1].Text() == name {
			return c.Values[2].Text()
		}
	}
	return ""
}
