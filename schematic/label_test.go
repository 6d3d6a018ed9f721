package schematic

import (
	"os"
	"strings"
	"testing"

	"github.com/kicad-edit/kicad-edit/surgery"
)

func TestRenameNet(t *testing.T) {
	for name, fix := range fixtures {
		t.Run(name, func(t *testing.T) {
			path := copyFixture(t, fix)
			msg, err := RenameNet(path, "SPI1_SCK", "SCK_MAIN")
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(msg, "Renamed 1 label(s)") {
				t.Errorf("message %q", msg)
			}
			d, _ := os.ReadFile(path)
			if !strings.Contains(string(d), `"SCK_MAIN"`) {
				t.Error("new name missing")
			}
			if strings.Contains(string(d), "SPI1_SCK") {
				t.Error("old name still present")
			}
			// other label kinds keep their text
			for _, keep := range []string{`"USB_DP"`, `"EN"`} {
				if !strings.Contains(string(d), keep) {
					t.Errorf("%s lost", keep)
				}
			}
		})
	}
}

func TestRenameNetGlobalLabel(t *testing.T) {
	path := copyFixture(t, fixtureV6)
	msg, err := RenameNet(path, "USB_DP", "USB_DP_ESD")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(msg, "Renamed 1 label(s)") {
		t.Errorf("message %q", msg)
	}
	d, _ := os.ReadFile(path)
	if !strings.Contains(string(d), `(global_label "USB_DP_ESD"`) {
		t.Error("global label not renamed in place")
	}
}

func TestRenameNetNoMatch(t *testing.T) {
	path := copyFixture(t, fixtureV6)
	before, _ := os.ReadFile(path)
	msg, err := RenameNet(path, "NO_SUCH_NET", "OTHER")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(msg, "nothing changed") {
		t.Errorf("message %q", msg)
	}
	after, _ := os.ReadFile(path)
	if string(before) != string(after) {
		t.Error("no-match rename changed the file")
	}
}

func TestRenameNetAllKinds(t *testing.T) {
	src := `(kicad_sch
  (version 20211123)
  (label "N1" (at 1 1 0))
  (global_label "N1" (shape input) (at 2 2 0))
  (hierarchical_label "N1" (shape input) (at 3 3 0))
  (label "N2" (at 4 4 0))
)`
	doc, err := surgery.New([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	count, err := StageRenameNet(doc, "N1", "NET_A")
	if err != nil {
		t.Fatal(err)
	}
	if count != 3 {
		t.Fatalf("count %d, want 3", count)
	}
	out := string(doc.Apply())
	if strings.Count(out, `"NET_A"`) != 3 {
		t.Errorf("renamed occurrences: %d", strings.Count(out, `"NET_A"`))
	}
	if !strings.Contains(out, `"N2"`) {
		t.Error("unrelated label touched")
	}
}

func TestRenameNetQuoting(t *testing.T) {
	path := copyFixture(t, fixtureV6)
	if _, err := RenameNet(path, "SPI1_SCK", `SCK "fast"`); err != nil {
		t.Fatal(err)
	}
	d, _ := os.ReadFile(path)
	if !strings.Contains(string(d), `"SCK \"fast\""`) {
		t.Error("new name not escaped")
	}
	// and it reads back decoded
	doc, err := surgery.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if n := len(doc.FindLabels("label", `SCK "fast"`)); n != 1 {
		t.Errorf("decoded lookup found %d", n)
	}
}
