// Editor controller: owns the live document, selection, history and
// the interaction state machine (Idle / Dragging / EditingText). All
// mutation flows through here so the structural invariants hold: the
// selection never dangles, and every commit stores one independent
// snapshot.
package main

type editorState int

const (
	stateIdle editorState = iota
	stateDragging
	stateEditingText
)

// editor mediates between input events (pointer, commands, imports)
// and the document. Not safe for concurrent use: callers serialize
// events the way a UI event loop would.
type editor struct {
	doc        document
	selectedID string
	hist       *history
	state      editorState

	// Dragging
	dragID string
	dragDX float64
	dragDY float64

	// EditingText
	editID string

	// Import supersession: completions carrying a stale generation are
	// dropped so two racing imports cannot interleave (last-completed-wins).
	importGen int
}

func newEditor() *editor {
	e := &editor{hist: newHistory()}
	// Baseline snapshot so the first real mutation can be undone back
	// to the empty poster.
	e.hist.push(nil, "")
	return e
}

// commit pushes the current document and selection as a new snapshot.
func (e *editor) commit() {
	e.hist.push(e.doc, e.selectedID)
}

// selectElement sets the selection; unknown ids are a no-op.
func (e *editor) selectElement(id string) bool {
	if e.doc.indexOf(id) < 0 {
		return false
	}
	e.selectedID = id
	return true
}

func (e *editor) deselect() {
	e.selectedID = ""
}

// selected returns the selected element, or nil.
func (e *editor) selected() *element {
	if e.selectedID == "" {
		return nil
	}
	i := e.doc.indexOf(e.selectedID)
	if i < 0 {
		return nil
	}
	return &e.doc[i]
}

// pointerDown starts a drag on the given element: selection moves to
// it and the offset between pointer and element origin is recorded.
func (e *editor) pointerDown(id string, x, y float64) {
	if e.state != stateIdle {
		return
	}
	i := e.doc.indexOf(id)
	if i < 0 {
		return
	}
	left, _ := parsePx(e.doc[i].Style["left"])
	top, _ := parsePx(e.doc[i].Style["top"])
	e.state = stateDragging
	e.dragID = id
	e.dragDX = x - left
	e.dragDY = y - top
	e.selectedID = id
}

// pointerMove updates the dragged element's position live, clamped to
// the canvas bounds on both axes. Not yet committed to history.
func (e *editor) pointerMove(x, y float64) {
	if e.state != stateDragging {
		return
	}
	i := e.doc.indexOf(e.dragID)
	if i < 0 {
		return
	}
	e.doc[i].Style["left"] = formatPx(clampPosition(x - e.dragDX))
	e.doc[i].Style["top"] = formatPx(clampPosition(y - e.dragDY))
}

// pointerUp ends the drag and commits the final position. Drags are
// cancel-free: releasing always commits.
func (e *editor) pointerUp() {
	if e.state != stateDragging {
		return
	}
	e.state = stateIdle
	e.dragID = ""
	e.commit()
}

// doubleClick enters inline text editing on a text element.
func (e *editor) doubleClick(id string) {
	if e.state != stateIdle {
		return
	}
	i := e.doc.indexOf(id)
	if i < 0 || e.doc[i].Kind != kindText {
		return
	}
	e.state = stateEditingText
	e.editID = id
	e.selectedID = id
}

// commitText leaves text editing (focus loss) and commits the edited
// content as one history entry.
func (e *editor) commitText(content string) {
	if e.state != stateEditingText {
		return
	}
	if i := e.doc.indexOf(e.editID); i >= 0 {
		e.doc[i].Content = content
	}
	e.state = stateIdle
	e.editID = ""
	e.commit()
}

// addText appends a text element with positional defaults, selects it,
// and commits.
func (e *editor) addText(content, tag string) string {
	if tag == "" {
		tag = "p"
	}
	el := element{
		ID:      newTextID(),
		Kind:    kindText,
		TagName: tag,
		Content: content,
		Style:   resolveStyle(nil, len(e.doc)),
	}
	e.doc = append(e.doc, el)
	e.selectedID = el.ID
	e.commit()
	return el.ID
}

// addImage appends an image element, selects it, and commits.
func (e *editor) addImage(src, alt string) string {
	el := element{
		ID:      newImageID(),
		Kind:    kindImage,
		TagName: "img",
		Src:     src,
		Alt:     alt,
		Style:   resolveStyle(nil, len(e.doc)),
	}
	el.Style["width"] = "100px"
	el.Style["height"] = "auto"
	e.doc = append(e.doc, el)
	e.selectedID = el.ID
	e.commit()
	return el.ID
}

// deleteSelected removes the selected element and clears the selection
// in the same atomic update. Without a selection it is a no-op.
func (e *editor) deleteSelected() {
	i := e.doc.indexOf(e.selectedID)
	if i < 0 {
		return
	}
	e.doc = append(e.doc[:i], e.doc[i+1:]...)
	e.selectedID = ""
	e.commit()
}

// moveSelected places the selected element at the given canvas
// position (clamped) and commits.
func (e *editor) moveSelected(x, y float64) {
	el := e.selected()
	if el == nil {
		return
	}
	el.Style["left"] = formatPx(clampPosition(x))
	el.Style["top"] = formatPx(clampPosition(y))
	e.commit()
}

// setProperty updates a style property on the selected element without
// committing; continuous input uses this on every change.
func (e *editor) setProperty(name, value string) {
	el := e.selected()
	if el == nil {
		return
	}
	el.Style[name] = value
}

// updateProperty is the direct-command form: one live update, one
// immediate history push.
func (e *editor) updateProperty(name, value string) {
	if e.selected() == nil {
		return
	}
	e.setProperty(name, value)
	e.commit()
}

// commitEdits checkpoints accumulated setProperty updates at a natural
// commit boundary (field blur or equivalent).
func (e *editor) commitEdits() {
	e.commit()
}

// setImageSrc replaces the src of the selected image element (data-URI
// attachment path) and commits. No-op unless an image is selected.
func (e *editor) setImageSrc(src string) {
	el := e.selected()
	if el == nil || el.Kind != kindImage {
		return
	}
	el.Src = src
	e.commit()
}

// undo restores the previous snapshot, document and selection both.
func (e *editor) undo() bool {
	entry, ok := e.hist.undo()
	if !ok {
		return false
	}
	e.restore(entry)
	return true
}

// redo restores the next snapshot.
func (e *editor) redo() bool {
	entry, ok := e.hist.redo()
	if !ok {
		return false
	}
	e.restore(entry)
	return true
}

func (e *editor) restore(entry historyEntry) {
	e.doc = entry.Doc
	e.selectedID = entry.SelectedID
	if e.doc.indexOf(e.selectedID) < 0 {
		e.selectedID = ""
	}
	e.state = stateIdle
	e.dragID = ""
	e.editID = ""
}

// beginImport reserves a generation token for an asynchronous import.
func (e *editor) beginImport() int {
	e.importGen++
	return e.importGen
}

// completeImport atomically replaces the document when the token is
// still current; a stale token means a later import superseded this
// one and the completion is dropped.
func (e *editor) completeImport(gen int, doc document) bool {
	if gen != e.importGen {
		return false
	}
	e.doc = doc
	e.selectedID = ""
	e.state = stateIdle
	e.dragID = ""
	e.editID = ""
	e.commit()
	return true
}

// importHTML is the synchronous import path: parse and replace in one
// step.
func (e *editor) importHTML(raw string) {
	gen := e.beginImport()
	e.completeImport(gen, parsePoster(raw))
}

func (s editorState) String() string {
	switch s {
	case stateDragging:
		return "dragging"
	case stateEditingText:
		return "editing-text"
	default:
		return "idle"
	}
}
