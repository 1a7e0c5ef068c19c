// Package coalesce debounces persistence calls per key.
//
// Each key owns one timer. Scheduling under a key that already has a pending
// call replaces it, so a burst of edits to one field produces a single call
// carrying the last value. Calls for one key run one at a time and in order;
// calls for different keys are independent. FlushAll discards pending calls
// without running them; Drain runs them immediately.
package coalesce
