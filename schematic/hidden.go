package schematic

import (
	"github.com/kicad-edit/kicad-edit/scan"
	"github.com/kicad-edit/kicad-edit/surgery"
)

// SetPropertyHidden enqueues the minimal edit that gives prop the wanted
// visibility, preserving whatever marker shape the file already uses.
// KiCad 6 writes a bare `hide` token inside effects, KiCad 9 a `(hide
// yes)` pair; a file of one vintage must never grow markers of the
// other. A bare token is deleted to show; a pair has its value flipped
// in place. When no marker exists yet the pair shape is written.
func SetPropertyHidden(doc *surgery.Document, prop *surgery.Span, hidden bool) error {
	text := doc.Text()
	effects := findChildForm(text, prop.Start, prop.End, "effects")
	if effects == nil {
		if !hidden {
			return nil
		}
		return doc.ReplaceBytes(prop.End-1, prop.End-1, " (effects (hide yes))")
	}

	// KiCad 6 bare token
	for _, a := range scan.Atoms(text, effects.Start, effects.End) {
		if a.Text != "hide" {
			continue
		}
		if hidden {
			return nil
		}
		start := a.Start
		for start > effects.Start+1 && isBlank(text[start-1]) {
			start--
		}
		return doc.ReplaceBytes(start, a.End, "")
	}

	// KiCad 9 pair
	if pair := findChildForm(text, effects.Start, effects.End, "hide"); pair != nil {
		if pairHidden(text, *pair) == hidden {
			return nil
		}
		repl := "(hide no)"
		if hidden {
			repl = "(hide yes)"
		}
		return doc.ReplaceBytes(pair.Start, pair.End, repl)
	}

	if !hidden {
		return nil
	}
	return doc.ReplaceBytes(effects.End-1, effects.End-1, " (hide yes)")
}

// pairHidden decodes a (hide ...) form: no value means hidden, explicit
// values are truthy on yes and true.
func pairHidden(text []byte, sp scan.Span) bool {
	atoms := scan.Atoms(text, sp.Start, sp.End)
	if len(atoms) < 2 {
		return true
	}
	switch atoms[1].Text {
	case "yes", "true":
		return true
	}
	return false
}

func isBlank(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r':
		return true
	}
	return false
}
