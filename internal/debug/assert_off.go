//go:build !assert

package debug

// Assert is a no-op unless built with the "assert" tag.
func Assert(bool, string) {}
