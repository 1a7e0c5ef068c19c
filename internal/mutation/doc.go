// Package mutation applies single edits to person records.
//
// Every operation returns a new record; the input is never modified. Numeric
// field names form a closed dispatch table and unknown names fail with
// ErrUnsupportedField. Fields prefixed with "whiteTag:" address the record's
// tag store.
package mutation
