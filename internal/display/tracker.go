package display

// Kind names a streaming channel within a message.
type Kind string

const (
	KindText     Kind = "text"
	KindThinking Kind = "thinking"
)

// Tracker owns the per-message streaming cursors and one-shot markers that
// make repeated cumulative snapshots safe to render. Entries live exactly as
// long as their message's turn: Finalize is the deallocation hook.
//
// Pure bookkeeping; the tracker never writes to the terminal.
type Tracker struct {
	messages map[string]*messageState
	// toolOwner maps a tool block id to the message that created its
	// cursors, so a result arriving in a different message can release them.
	toolOwner map[string]string
}

type messageState struct {
	flushed map[Kind]int
	markers map[string]bool
	tools   map[string]map[string]int
}

func NewTracker() *Tracker {
	return &Tracker{
		messages:  map[string]*messageState{},
		toolOwner: map[string]string{},
	}
}

func (t *Tracker) state(msgID string) *messageState {
	st, ok := t.messages[msgID]
	if !ok {
		st = &messageState{
			flushed: map[Kind]int{},
			markers: map[string]bool{},
			tools:   map[string]map[string]int{},
		}
		t.messages[msgID] = st
	}
	return st
}

// NewlyFlushed returns the [start, end) slice of a message-level channel that
// has not been emitted yet and advances the cursor. A fullLength at or below
// the cursor yields an empty slice: duplicate or out-of-order snapshots are
// no-ops, never errors.
func (t *Tracker) NewlyFlushed(msgID string, kind Kind, fullLength int) (int, int) {
	st := t.state(msgID)
	prev := st.flushed[kind]
	if fullLength <= prev {
		return prev, prev
	}
	st.flushed[kind] = fullLength
	return prev, fullLength
}

// NewlyFlushedField is NewlyFlushed for one streamed input field of a tool
// block.
func (t *Tracker) NewlyFlushedField(msgID, blockID, field string, fullLength int) (int, int) {
	st := t.state(msgID)
	fields, ok := st.tools[blockID]
	if !ok {
		fields = map[string]int{}
		st.tools[blockID] = fields
		t.toolOwner[blockID] = msgID
	}
	prev := fields[field]
	if fullLength <= prev {
		return prev, prev
	}
	fields[field] = fullLength
	return prev, fullLength
}

// MarkOnce records a one-shot marker, reporting true only on its first use
// for the given message.
func (t *Tracker) MarkOnce(msgID, marker string) bool {
	st := t.state(msgID)
	if st.markers[marker] {
		return false
	}
	st.markers[marker] = true
	return true
}

// ReleaseTool drops the field cursors of one tool block, called when its
// result has been observed.
func (t *Tracker) ReleaseTool(blockID string) {
	owner, ok := t.toolOwner[blockID]
	if !ok {
		return
	}
	delete(t.toolOwner, blockID)
	if st, ok := t.messages[owner]; ok {
		delete(st.tools, blockID)
	}
}

// Finalize discards all state for a message, including cursors of tool
// blocks that never saw a matching result.
func (t *Tracker) Finalize(msgID string) {
	st, ok := t.messages[msgID]
	if !ok {
		return
	}
	for blockID := range st.tools {
		delete(t.toolOwner, blockID)
	}
	delete(t.messages, msgID)
}
