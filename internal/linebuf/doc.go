// Package linebuf provides a small line-oriented text buffer with a
// cursor that can apply pairing decisions.
//
// It exists for hosts that do not bring their own buffer: the demo
// editor, the keystroke simulator, and the engine's end-to-end tests
// all type against it. Passthrough decisions fall back to the key's
// default behavior; edit decisions are applied as one composed
// operation around the cursor.
package linebuf
