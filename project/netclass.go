// Package project edits KiCad project files (.kicad_pro). These are
// plain JSON, so unlike the schematic side there is no span surgery:
// the file is read, patched and rewritten as 2-space pretty JSON, which
// is how KiCad itself writes it.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// ruleFields are the numeric net-class rule fields KiCad stores.
var ruleFields = []string{
	"clearance",
	"track_width",
	"via_diameter",
	"via_drill",
	"microvia_diameter",
	"microvia_drill",
	"diff_pair_width",
	"diff_pair_gap",
}

// NetClass is one net class from net_settings.classes. Patterns are the
// wildcard net assignments KiCad stores under "nets"; Rules holds
// whichever numeric rule fields the file defines for the class.
type NetClass struct {
	Name     string             `json:"name"`
	Patterns []string           `json:"patterns"`
	Rules    map[string]float64 `json:"rules,omitempty"`
}

// ListNetClasses returns every net class defined in a project file.
func ListNetClasses(path string) ([]NetClass, error) {
	d, err := loadProject(path)
	if err != nil {
		return nil, err
	}
	var res []NetClass
	for _, cls := range gjson.GetBytes(d, "net_settings.classes").Array() {
		nc := NetClass{
			Name:     cls.Get("name").String(),
			Patterns: []string{},
		}
		for _, n := range cls.Get("nets").Array() {
			nc.Patterns = append(nc.Patterns, n.String())
		}
		for _, f := range ruleFields {
			if v := cls.Get(f); v.Exists() {
				if nc.Rules == nil {
					nc.Rules = map[string]float64{}
				}
				nc.Rules[f] = v.Float()
			}
		}
		res = append(res, nc)
	}
	return res, nil
}

// UpdateNetClass creates or updates one net class. A missing class is
// created first. Rules are merged: fields not mentioned keep their
// stored values. addPattern appends one wildcard net pattern unless the
// class already lists it; "" adds nothing.
func UpdateNetClass(path, name string, rules map[string]float64, addPattern string) (string, error) {
	d, err := loadProject(path)
	if err != nil {
		return "", err
	}

	idx := classIndex(d, name)
	created := idx < 0
	if created {
		if !gjson.GetBytes(d, "net_settings.classes").IsArray() {
			if d, err = sjson.SetRawBytes(d, "net_settings.classes", []byte("[]")); err != nil {
				return "", fmt.Errorf("%w: %w", ErrSave, err)
			}
		}
		base, _ := sjson.SetBytes([]byte(`{"nets":[]}`), "name", name)
		if d, err = sjson.SetRawBytes(d, "net_settings.classes.-1", base); err != nil {
			return "", fmt.Errorf("%w: %w", ErrSave, err)
		}
		idx = classIndex(d, name)
	}
	classPath := fmt.Sprintf("net_settings.classes.%d", idx)

	var changes []string

	if len(rules) > 0 {
		cls := gjson.GetBytes(d, classPath)
		keys := make([]string, 0, len(rules))
		for k := range rules {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			old := "none"
			if v := cls.Get(k); v.Exists() {
				if v.Float() == rules[k] {
					continue
				}
				old = v.String()
			}
			changes = append(changes, fmt.Sprintf("%s: %s -> %v", k, old, rules[k]))
		}
		patch, err := json.Marshal(rules)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrSave, err)
		}
		merged, err := jsonpatch.MergePatch([]byte(cls.Raw), patch)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrSave, err)
		}
		if d, err = sjson.SetRawBytes(d, classPath, merged); err != nil {
			return "", fmt.Errorf("%w: %w", ErrSave, err)
		}
	}

	if addPattern != "" {
		have := false
		for _, n := range gjson.GetBytes(d, classPath+".nets").Array() {
			if n.String() == addPattern {
				have = true
				break
			}
		}
		if have {
			changes = append(changes, fmt.Sprintf("pattern '%s' already present", addPattern))
		} else {
			if d, err = sjson.SetBytes(d, classPath+".nets.-1", addPattern); err != nil {
				return "", fmt.Errorf("%w: %w", ErrSave, err)
			}
			changes = append(changes, fmt.Sprintf("added pattern '%s'", addPattern))
		}
	}

	out := pretty.PrettyOptions(d, &pretty.Options{Indent: "  "})
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return "", fmt.Errorf("%w: %w", ErrSave, err)
	}

	action := "Updated"
	if created {
		action = "Created"
	}
	summary := "no rule changes"
	if len(changes) > 0 {
		summary = strings.Join(changes, "; ")
	}
	return fmt.Sprintf("%s net class '%s': %s", action, name, summary), nil
}

func classIndex(d []byte, name string) int {
	for i, cls := range gjson.GetBytes(d, "net_settings.classes").Array() {
		if cls.Get("name").String() == name {
			return i
		}
	}
	return -1
}

func loadProject(path string) ([]byte, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	if !gjson.ValidBytes(d) {
		return nil, fmt.Errorf("%w: %s: invalid JSON", ErrLoad, path)
	}
	return d, nil
}
