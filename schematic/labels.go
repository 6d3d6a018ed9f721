package schematic

import (
	"fmt"

	"github.com/kicad-edit/kicad-edit/sexp"
	"github.com/kicad-edit/kicad-edit/surgery"
)

// labelKinds are the net-label forms a rename touches.
var labelKinds = []string{"label", "global_label", "hierarchical_label"}

// RenameNet loads path, renames every net label whose text is exactly
// old and saves. Zero matches leaves the file untouched.
func RenameNet(path, old, new string) (string, error) {
	doc, err := surgery.Load(path)
	if err != nil {
		return "", err
	}
	count, err := StageRenameNet(doc, old, new)
	if err != nil {
		return "", err
	}
	if count == 0 {
		return fmt.Sprintf("No labels named '%s' found, nothing changed", old), nil
	}
	if err := doc.Save(path); err != nil {
		return "", err
	}
	return fmt.Sprintf("Renamed %d label(s) from '%s' to '%s'", count, old, new), nil
}

// StageRenameNet enqueues text-literal replacements for every label,
// global_label and hierarchical_label matching old. Only the label text
// changes; position, shape and effects stay as written.
func StageRenameNet(doc *surgery.Document, old, new string) (int, error) {
	count := 0
	for _, kind := range labelKinds {
		for _, sp := range doc.FindLabels(kind, old) {
			lit, ok := doc.StringLiteral(sp, 0)
			if !ok {
				continue
			}
			if err := doc.ReplaceBytes(lit.Start, lit.End, sexp.Quote(new)); err != nil {
				return count, err
			}
			count++
		}
	}
	return count, nil
}
