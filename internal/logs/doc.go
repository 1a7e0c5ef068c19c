// Package logs reads castedit's daily log files for `castedit logs`.
//
// Last returns the final lines of a file with bounded memory, ReadFrom
// continues from a byte offset, and Follow streams appended lines using
// filesystem notifications until its context ends.
package logs
