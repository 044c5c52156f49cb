package engine

import "fmt"

// Op classifies a Decision.
type Op uint8

const (
	// OpPassthrough tells the host to apply the keystroke's default
	// behavior unmodified.
	OpPassthrough Op = iota

	// OpEdit carries a composed text edit that replaces the keystroke's
	// default behavior.
	OpEdit
)

// String returns the op name.
func (o Op) String() string {
	switch o {
	case OpPassthrough:
		return "passthrough"
	case OpEdit:
		return "edit"
	default:
		return "unknown"
	}
}

// Decision is the outcome of handling one keystroke. An edit decision
// is applied around the cursor in a single composed operation:
// DeleteBefore/DeleteAfter bytes are removed, InsertBefore is inserted
// with the cursor ending after it, InsertAfter is inserted with the
// cursor staying before it, and Advance moves the cursor over that many
// bytes of existing text (skip-over). For printable keys a passthrough
// means the host inserts the typed character itself; edit decisions
// already include the typed character where it belongs.
type Decision struct {
	// Op classifies the decision.
	Op Op

	// DeleteBefore is the number of bytes removed before the cursor.
	DeleteBefore int

	// DeleteAfter is the number of bytes removed after the cursor.
	DeleteAfter int

	// InsertBefore is text inserted at the cursor; the cursor ends up
	// after it.
	InsertBefore string

	// InsertAfter is text inserted at the cursor; the cursor stays
	// before it.
	InsertAfter string

	// Advance moves the cursor right over existing text, in bytes.
	Advance int

	// SplitPair marks an enter-class edit whose inserted line breaks
	// split a surrounding pair; the host places the cursor on a new,
	// independently indented line between the delimiters.
	SplitPair bool
}

// Passthrough returns the decision that leaves the keystroke alone.
func Passthrough() Decision {
	return Decision{Op: OpPassthrough}
}

// IsPassthrough reports whether the host should apply the key's
// default behavior.
func (d Decision) IsPassthrough() bool { return d.Op == OpPassthrough }

// IsEdit reports whether the decision carries a text edit.
func (d Decision) IsEdit() bool { return d.Op == OpEdit }

// String returns a compact description of the decision.
func (d Decision) String() string {
	if d.IsPassthrough() {
		return "passthrough"
	}
	return fmt.Sprintf("edit(del %d/%d, ins %q+%q, adv %d)",
		d.DeleteBefore, d.DeleteAfter, d.InsertBefore, d.InsertAfter, d.Advance)
}

// insertPair returns the edit that opens a pair: open before the
// cursor, close after it.
func insertPair(open, close string) Decision {
	return Decision{Op: OpEdit, InsertBefore: open, InsertAfter: close}
}

// literal returns the edit that inserts text at the cursor.
func literal(s string) Decision {
	return Decision{Op: OpEdit, InsertBefore: s}
}

// skip returns the edit that moves the cursor over n bytes of existing
// text without changing the buffer.
func skip(n int) Decision {
	return Decision{Op: OpEdit, Advance: n}
}

// collapse returns the edit that deletes before/after byte counts
// around the cursor.
func collapse(before, after int) Decision {
	return Decision{Op: OpEdit, DeleteBefore: before, DeleteAfter: after}
}
