package surgery

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"
)

func TestRoundTripNoChange(t *testing.T) {
	for name, fix := range fixtures {
		t.Run(name, func(t *testing.T) {
			path := copyFixture(t, fix)
			original, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			doc := loadFixture(t, path)
			if err := doc.Save(path); err != nil {
				t.Fatal(err)
			}
			result, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(original, result) {
				t.Error("zero-edit save is not byte-identical")
			}
		})
	}
}

func TestReplaceSpan(t *testing.T) {
	path := copyFixture(t, fixtureV6)
	doc := loadFixture(t, path)
	tb := doc.FindTitleBlock()
	if tb == nil {
		t.Fatal("no title block")
	}
	orig := string(doc.Text()[tb.Start:tb.End])
	repl := strings.Replace(orig, `"Test Schematic"`, `"New Title"`, 1)
	if err := doc.ReplaceSpan(tb, repl); err != nil {
		t.Fatal(err)
	}
	if err := doc.Save(path); err != nil {
		t.Fatal(err)
	}
	result, _ := os.ReadFile(path)
	if !bytes.Contains(result, []byte(`"New Title"`)) {
		t.Error("new title missing")
	}
	if bytes.Contains(result, []byte(`"Test Schematic"`)) {
		t.Error("old title still present")
	}
}

func TestReplaceMultipleBackToFront(t *testing.T) {
	path := copyFixture(t, fixtureV6)
	doc := loadFixture(t, path)

	for _, c := range []struct{ ref, repl string }{
		{"R1", `"4k7"`},
		{"C1", `"220nF"`},
	} {
		sym := doc.FindSymbol(c.ref)
		prop := doc.Property(sym, "Value")
		lit, ok := doc.PropertyValueSpan(prop)
		if !ok {
			t.Fatalf("%s: no value span", c.ref)
		}
		if err := doc.ReplaceBytes(lit.Start, lit.End, c.repl); err != nil {
			t.Fatal(err)
		}
	}
	if err := doc.Save(path); err != nil {
		t.Fatal(err)
	}
	result, _ := os.ReadFile(path)
	for _, want := range []string{`"4k7"`, `"220nF"`} {
		if !bytes.Contains(result, []byte(want)) {
			t.Errorf("%s missing", want)
		}
	}
	for _, gone := range []string{`"10k"`, `"100nF"`} {
		if bytes.Contains(result, []byte(gone)) {
			t.Errorf("%s still present", gone)
		}
	}
}

// changedLines returns the lines present in exactly one of a and b.
func changedLines(a, b []byte) []string {
	al := strings.Split(string(a), "\n")
	bl := strings.Split(string(b), "\n")
	count := map[string]int{}
	for _, l := range al {
		count[l]++
	}
	for _, l := range bl {
		count[l]--
	}
	var res []string
	for l, c := range count {
		if c != 0 {
			res = append(res, l)
		}
	}
	return res
}

func TestSurgicalValueReplaceLocality(t *testing.T) {
	for name, fix := range fixtures {
		t.Run(name, func(t *testing.T) {
			path := copyFixture(t, fix)
			original, _ := os.ReadFile(path)
			doc := loadFixture(t, path)
			sym := doc.FindSymbol("C1")
			prop := doc.Property(sym, "Value")
			lit, ok := doc.PropertyValueSpan(prop)
			if !ok {
				t.Fatal("no value span")
			}
			if err := doc.ReplaceBytes(lit.Start, lit.End, `"220nF"`); err != nil {
				t.Fatal(err)
			}
			if err := doc.Save(path); err != nil {
				t.Fatal(err)
			}
			modified, _ := os.ReadFile(path)
			for _, line := range changedLines(original, modified) {
				if !strings.Contains(line, "100nF") && !strings.Contains(line, "220nF") {
					t.Errorf("unexpected changed line: %q", line)
				}
			}
		})
	}
}

func TestDeleteSpan(t *testing.T) {
	path := copyFixture(t, fixtureV6)
	doc := loadFixture(t, path)
	labels := doc.FindLabels("label", "")
	if len(labels) != 1 {
		t.Fatalf("label count %d", len(labels))
	}
	if err := doc.DeleteSpan(labels[0]); err != nil {
		t.Fatal(err)
	}
	if err := doc.Save(path); err != nil {
		t.Fatal(err)
	}
	result, _ := os.ReadFile(path)
	if bytes.Contains(result, []byte("(label")) {
		t.Error("label form still present")
	}
	if bytes.Contains(result, []byte("SPI1_SCK")) {
		t.Error("label text still present")
	}
	// other label kinds are untouched
	for _, keep := range []string{"(global_label", "(hierarchical_label"} {
		if !bytes.Contains(result, []byte(keep)) {
			t.Errorf("%s lost", keep)
		}
	}
	// deletion eats the preceding whitespace run: no doubled blank line
	if bytes.Contains(result, []byte("\n\n\n")) {
		t.Error("dangling blank lines after delete")
	}
	// the result still parses
	if _, err := New(result); err != nil {
		t.Errorf("result does not parse: %v", err)
	}
}

func TestInsertBeforeEnd(t *testing.T) {
	path := copyFixture(t, fixtureV6)
	doc := loadFixture(t, path)
	tb := doc.FindTitleBlock()
	if err := doc.InsertBeforeEnd(tb, "\n    (comment 1 \"hello\")"); err != nil {
		t.Fatal(err)
	}
	if err := doc.Save(path); err != nil {
		t.Fatal(err)
	}
	result, _ := os.ReadFile(path)
	if !bytes.Contains(result, []byte(`(comment 1 "hello")`)) {
		t.Error("inserted child missing")
	}
	if !bytes.Contains(result, []byte("(title_block")) {
		t.Error("title_block lost")
	}
	reloaded, err := New(result)
	if err != nil {
		t.Fatal(err)
	}
	tb2 := reloaded.FindTitleBlock()
	if tb2 == nil || tb2.Node.Child("comment") == nil {
		t.Error("comment is not a child of title_block after reload")
	}
}

func TestOverlappingEditRejected(t *testing.T) {
	doc := loadFixture(t, fixtureV6)
	sym := doc.FindSymbol("R1")
	prop := doc.Property(sym, "Value")
	lit, _ := doc.PropertyValueSpan(prop)

	if err := doc.ReplaceBytes(lit.Start, lit.End, `"4k7"`); err != nil {
		t.Fatal(err)
	}
	// same range again
	if err := doc.ReplaceBytes(lit.Start, lit.End, `"1k"`); !errors.Is(err, ErrOverlappingEdit) {
		t.Errorf("duplicate range: %v, want ErrOverlappingEdit", err)
	}
	// enclosing range
	if err := doc.ReplaceSpan(prop, "x"); !errors.Is(err, ErrOverlappingEdit) {
		t.Errorf("enclosing range: %v, want ErrOverlappingEdit", err)
	}
	// insert strictly inside the replaced range
	if err := doc.ReplaceBytes(lit.Start+1, lit.Start+1, "x"); !errors.Is(err, ErrOverlappingEdit) {
		t.Errorf("inside insert: %v, want ErrOverlappingEdit", err)
	}
	// zero-width insert at the boundary is allowed
	if err := doc.ReplaceBytes(lit.End, lit.End, " "); err != nil {
		t.Errorf("boundary insert: %v", err)
	}
	if doc.Pending() != 2 {
		t.Errorf("pending %d, want 2", doc.Pending())
	}
}

func TestEditRangeBounds(t *testing.T) {
	doc := loadFixture(t, fixtureV6)
	if err := doc.ReplaceBytes(-1, 2, "x"); err == nil {
		t.Error("negative start accepted")
	}
	if err := doc.ReplaceBytes(0, len(doc.Text())+1, "x"); err == nil {
		t.Error("end past document accepted")
	}
	if err := doc.ReplaceBytes(5, 2, "x"); err == nil {
		t.Error("inverted range accepted")
	}
}

func TestSaveUnwritable(t *testing.T) {
	doc := loadFixture(t, fixtureV6)
	err := doc.Save(t.TempDir() + "/no/such/dir/out.kicad_sch")
	if !errors.Is(err, ErrSave) {
		t.Errorf("error %v, want ErrSave", err)
	}
	// nothing was materialized, the queue survives a failed save
	if err := doc.ReplaceBytes(0, 1, "("); err != nil {
		t.Errorf("queue unusable after failed save: %v", err)
	}
}

func TestApplyDoesNotClearQueue(t *testing.T) {
	doc := loadFixture(t, fixtureV6)
	sym := doc.FindSymbol("R1")
	prop := doc.Property(sym, "Value")
	lit, _ := doc.PropertyValueSpan(prop)
	if err := doc.ReplaceBytes(lit.Start, lit.End, `"4k7"`); err != nil {
		t.Fatal(err)
	}
	a := doc.Apply()
	b := doc.Apply()
	if !bytes.Equal(a, b) {
		t.Error("Apply is not repeatable")
	}
	if doc.Pending() != 1 {
		t.Errorf("pending %d, want 1", doc.Pending())
	}
}
