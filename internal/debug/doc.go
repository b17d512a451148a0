// Package debug provides assertions that compile away in release builds.
//
// Precondition violations in the counting protocol (releasing an
// already-zero count, adopting a nil pointer) are contract violations,
// not recoverable errors. Builds made with the "assert" tag turn them
// into panics at the violation site:
//
//	go test -tags assert ./...
//
// Without the tag every call is a no-op and the checks cost nothing.
package debug
