// Linear undo/redo history of document snapshots. Branch-free: any
// push after an undo discards the redo tail.
package main

// historyEntry is an immutable snapshot of the element sequence plus
// the selection at commit time.
type historyEntry struct {
	Doc        document
	SelectedID string
}

// history holds the snapshot log and the index of the current entry.
// index stays within [-1, len(entries)-1]; -1 means empty.
type history struct {
	entries []historyEntry
	index   int
}

func newHistory() *history {
	return &history{index: -1}
}

// push truncates any entries beyond the current index, appends a deep
// copy of doc, and advances the index to the new entry. Later mutation
// of the live document can never alter a stored snapshot.
func (h *history) push(doc document, selectedID string) {
	h.entries = append(h.entries[:h.index+1], historyEntry{
		Doc:        doc.clone(),
		SelectedID: selectedID,
	})
	h.index = len(h.entries) - 1
}

// undo steps back one entry and returns a copy of it. Reports ok=false
// when already at the start (or empty).
func (h *history) undo() (historyEntry, bool) {
	if h.index <= 0 {
		return historyEntry{}, false
	}
	h.index--
	return h.current()
}

// redo steps forward one entry and returns a copy of it. Reports
// ok=false when already at the end.
func (h *history) redo() (historyEntry, bool) {
	if h.index >= len(h.entries)-1 {
		return historyEntry{}, false
	}
	h.index++
	return h.current()
}

// current returns a copy of the entry at the index. Copies keep stored
// snapshots isolated from edits applied to the returned document.
func (h *history) current() (historyEntry, bool) {
	if h.index < 0 || h.index >= len(h.entries) {
		return historyEntry{}, false
	}
	e := h.entries[h.index]
	return historyEntry{Doc: e.Doc.clone(), SelectedID: e.SelectedID}, true
}

// len reports the number of stored entries.
func (h *history) len() int { return len(h.entries) }
