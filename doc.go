// Package dbg is a namespace-scoped conditional diagnostic logger. Callers
// create named instances; each instance emits only while its namespace is
// enabled by the active selector, so instrumentation can stay in production
// code at the cost of one atomic load per disabled call.
//
// # Selectors
//
// A selector is a comma- or whitespace-separated list of namespace patterns
// where '*' matches any sequence of characters and a leading '-' denies the
// pattern. Deny overrides allow; with no matching pattern a namespace is
// off. A namespace that itself ends in '*' is always on, which lets library
// authors ship always-active namespaces.
//
//	ctx := dbg.NewContext(dbg.Options{Selector: "api:*,-api:internal"})
//	log := ctx.New("api:http")
//	log.Logf("listening on %s", addr)
//
// Reconfiguring a context with Enable or Disable re-evaluates every instance
// it has created, so long-lived instances react to selector changes without
// being rebuilt.
//
// # Templates
//
// Logf expands %<letter> directives against its positional arguments. The
// built-ins cover strings (%s), integers (%d), floats (%f), JSON (%j), and
// generic inspection (%o, %O, %v); hosts register custom directives with
// RegisterDirective. Unknown directives stay literal and missing arguments
// degrade to the literal placeholder, never a panic.
//
// # Environment
//
// The package-level Default context is built from the environment on first
// use: DEBUG carries the selector, DEBUG_COLORS forces color on or off,
// DEBUG_HIDE_DATE drops the timestamp that colorless output carries,
// DEBUG_PALETTE selects a namespace palette, and DEBUG_OUTPUT routes output
// to stderr, stdout, a file, or a tee of both.
package dbg
