package scroll

import "fmt"

// fatalf reports a usage or invariant violation by the hosting code.
// These are programmer errors (mismatched update brackets, duplicate source
// names, dereferencing a detached viewport), not runtime conditions, so the
// program stops at the call site.
func fatalf(format string, args ...any) {
	panic(fmt.Sprintf("scroll: "+format, args...))
}
