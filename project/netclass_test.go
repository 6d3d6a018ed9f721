package project

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tidwall/gjson"
)

const fixturePro = "../testdata/test_project.kicad_pro"

func copyFixture(t *testing.T, src string) string {
	t.Helper()
	d, err := os.ReadFile(src)
	if err != nil {
		t.Fatal(err)
	}
	dst := filepath.Join(t.TempDir(), filepath.Base(src))
	if err := os.WriteFile(dst, d, 0o644); err != nil {
		t.Fatal(err)
	}
	return dst
}

func TestListNetClasses(t *testing.T) {
	classes, err := ListNetClasses(fixturePro)
	if err != nil {
		t.Fatal(err)
	}
	if len(classes) != 2 {
		t.Fatalf("count %d, want 2", len(classes))
	}
	def := classes[0]
	if def.Name != "Default" {
		t.Errorf("first class %q", def.Name)
	}
	if len(def.Patterns) != 0 {
		t.Errorf("Default patterns %v", def.Patterns)
	}
	if def.Rules["track_width"] != 0.25 || def.Rules["clearance"] != 0.2 {
		t.Errorf("Default rules %v", def.Rules)
	}
	power := classes[1]
	if power.Name != "Power" {
		t.Errorf("second class %q", power.Name)
	}
	if len(power.Patterns) != 2 || power.Patterns[0] != "VCC" || power.Patterns[1] != "GND" {
		t.Errorf("Power patterns %v", power.Patterns)
	}
	if power.Rules["track_width"] != 0.5 {
		t.Errorf("Power rules %v", power.Rules)
	}
}

func TestListNetClassesMissingFile(t *testing.T) {
	_, err := ListNetClasses(filepath.Join(t.TempDir(), "nope.kicad_pro"))
	if !errors.Is(err, ErrLoad) {
		t.Errorf("error %v, want ErrLoad", err)
	}
}

func TestListNetClassesBadJSON(t *testing.T) {
	p := filepath.Join(t.TempDir(), "broken.kicad_pro")
	if err := os.WriteFile(p, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := ListNetClasses(p)
	if !errors.Is(err, ErrLoad) {
		t.Errorf("error %v, want ErrLoad", err)
	}
}

func TestUpdateNetClassRules(t *testing.T) {
	p := copyFixture(t, fixturePro)
	msg, err := UpdateNetClass(p, "Default", map[string]float64{"track_width": 0.3}, "")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(msg, "Updated net class 'Default'") {
		t.Errorf("message %q", msg)
	}
	if !strings.Contains(msg, "track_width: 0.25 -> 0.3") {
		t.Errorf("message %q", msg)
	}
	classes, err := ListNetClasses(p)
	if err != nil {
		t.Fatal(err)
	}
	def := classes[0]
	if def.Rules["track_width"] != 0.3 {
		t.Errorf("track_width %v", def.Rules["track_width"])
	}
	// merge semantics: unmentioned fields keep their values
	if def.Rules["clearance"] != 0.2 || def.Rules["via_diameter"] != 0.8 {
		t.Errorf("merge lost fields: %v", def.Rules)
	}
	if classes[1].Rules["track_width"] != 0.5 {
		t.Error("other class touched")
	}
}

func TestUpdateNetClassCreate(t *testing.T) {
	p := copyFixture(t, fixturePro)
	msg, err := UpdateNetClass(p, "USB",
		map[string]float64{"diff_pair_width": 0.2, "diff_pair_gap": 0.15}, "USB_D?")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(msg, "Created net class 'USB'") {
		t.Errorf("message %q", msg)
	}
	if !strings.Contains(msg, "added pattern 'USB_D?'") {
		t.Errorf("message %q", msg)
	}
	classes, err := ListNetClasses(p)
	if err != nil {
		t.Fatal(err)
	}
	if len(classes) != 3 {
		t.Fatalf("count %d, want 3", len(classes))
	}
	usb := classes[2]
	if usb.Name != "USB" {
		t.Fatalf("new class %q", usb.Name)
	}
	if len(usb.Patterns) != 1 || usb.Patterns[0] != "USB_D?" {
		t.Errorf("patterns %v", usb.Patterns)
	}
	if usb.Rules["diff_pair_width"] != 0.2 {
		t.Errorf("rules %v", usb.Rules)
	}
}

func TestUpdateNetClassPatternDedup(t *testing.T) {
	p := copyFixture(t, fixturePro)
	msg, err := UpdateNetClass(p, "Power", nil, "VCC")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(msg, "pattern 'VCC' already present") {
		t.Errorf("message %q", msg)
	}
	classes, _ := ListNetClasses(p)
	if len(classes[1].Patterns) != 2 {
		t.Errorf("patterns %v", classes[1].Patterns)
	}
}

func TestUpdateNetClassNoChanges(t *testing.T) {
	p := copyFixture(t, fixturePro)
	msg, err := UpdateNetClass(p, "Power", nil, "")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(msg, "no rule changes") {
		t.Errorf("message %q", msg)
	}
}

func TestUpdateNetClassPreservesOtherSections(t *testing.T) {
	p := copyFixture(t, fixturePro)
	if _, err := UpdateNetClass(p, "Default", map[string]float64{"clearance": 0.25}, ""); err != nil {
		t.Fatal(err)
	}
	d, _ := os.ReadFile(p)
	if got := gjson.GetBytes(d, "meta.filename").String(); got != "test_project.kicad_pro" {
		t.Errorf("meta.filename %q", got)
	}
	if !gjson.GetBytes(d, "board.design_settings").Exists() {
		t.Error("board section lost")
	}
	if got := gjson.GetBytes(d, "net_settings.meta.version").Int(); got != 3 {
		t.Errorf("net_settings.meta.version %d", got)
	}
}
