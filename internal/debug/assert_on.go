//go:build assert

package debug

// Assert panics with msg when the condition does not hold.
func Assert(cond bool, msg string) {
	if !cond {
		panic(msg)
	}
}
