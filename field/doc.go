// Package field provides Bubble Tea text controls that expose the control
// contracts: a single-line Field and a multi-line Area, each driven by a Model.
//
// A Model turns key messages into control events. Typed text, paste,
// deletion and undo are proposed to the installed handler before the control
// applies them, so an interceptor can rewrite or veto them. The bound
// control.Slot is written on every change the control applies itself, and read
// back on every Update; a write the model did not make replaces its text and
// moves the caret to the end.
//
// That reset is what an interceptor's caret correction repairs, one timer tick
// after the edit. A key that arrives before the tick lands at the end of the
// text, where the reset left the caret, not at the corrected position.
package field
