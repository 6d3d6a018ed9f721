package surgery

import (
	"fmt"
	"os"
	"sort"
)

// pendingEdit replaces [start, end) of the ORIGINAL text. Edits are
// applied in descending start order so earlier offsets stay valid
// against the unmodified text throughout application.
type pendingEdit struct {
	start, end int
	text       string
}

// ReplaceSpan enqueues replacement of a tracked span's full range.
func (doc *Document) ReplaceSpan(sp *Span, text string) error {
	return doc.enqueue(sp.Start, sp.End, text)
}

// ReplaceBytes enqueues replacement of an arbitrary byte range, such as
// a value-literal sub-span, which has no Span of its own.
func (doc *Document) ReplaceBytes(start, end int, text string) error {
	return doc.enqueue(start, end, text)
}

// InsertBeforeEnd enqueues insertion just before the parent's closing
// delimiter, appending a new child verbatim. The caller supplies its
// own leading whitespace or newline.
func (doc *Document) InsertBeforeEnd(parent *Span, text string) error {
	return doc.enqueue(parent.End-1, parent.End-1, text)
}

// DeleteSpan enqueues removal of the span plus any immediately
// preceding run of whitespace, so no dangling blank line is left.
func (doc *Document) DeleteSpan(sp *Span) error {
	start := sp.Start
	for start > 0 {
		switch doc.text[start-1] {
		case ' ', '\t', '\n', '\r':
			start--
			continue
		}
		break
	}
	return doc.enqueue(start, sp.End, "")
}

// Pending returns the number of enqueued edits.
func (doc *Document) Pending() int {
	return len(doc.edits)
}

func (doc *Document) enqueue(start, end int, text string) error {
	if start < 0 || end > len(doc.text) || start > end {
		return fmt.Errorf("edit range [%d, %d) out of bounds (document is %d bytes)",
			start, end, len(doc.text))
	}
	for _, e := range doc.edits {
		if max(start, e.start) < min(end, e.end) {
			return fmt.Errorf("%w: [%d, %d) intersects queued [%d, %d)",
				ErrOverlappingEdit, start, end, e.start, e.end)
		}
	}
	doc.edits = append(doc.edits, pendingEdit{start: start, end: end, text: text})
	return nil
}

// Apply splices every enqueued edit into a copy of the original text
// and returns the result. The queue is left intact; Save both applies
// and clears it.
func (doc *Document) Apply() []byte {
	edits := make([]pendingEdit, len(doc.edits))
	copy(edits, doc.edits)
	sort.SliceStable(edits, func(i, j int) bool {
		return edits[i].start > edits[j].start
	})
	res := make([]byte, len(doc.text))
	copy(res, doc.text)
	for _, e := range edits {
		next := make([]byte, 0, len(res)-(e.end-e.start)+len(e.text))
		next = append(next, res[:e.start]...)
		next = append(next, e.text...)
		next = append(next, res[e.end:]...)
		res = next
	}
	return res
}

// Save applies all enqueued edits to the original text in one pass,
// writes the result and clears the queue. An unwritable destination is
// a distinct "cannot save" condition; edits stay queued in that case
// since nothing was materialized.
func (doc *Document) Save(path string) error {
	res := doc.Apply()
	if err := os.WriteFile(path, res, 0o644); err != nil {
		return fmt.Errorf("%w: %w", ErrSave, err)
	}
	doc.edits = doc.edits[:0]
	return nil
}
