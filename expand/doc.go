// Package expand rewrites a token stream so that nested invocations are
// resolved inside-out.
//
// An invocation is a name, optionally qualified with "::", followed by a
// marker ('!' by default) and a delimited argument group:
//
//	outer!("a" inner!("b" "q") "z")
//
// The [Expander] scans a stream left to right. When it meets a marker it
// first expands the argument group completely, then hands the reassembled
// invocation to an [Oracle] and splices the oracle's result into the output.
// Passes repeat until one performs no resolution. The innermost invocation is
// therefore always resolved before the invocation that contains it, and
// siblings at the same depth are resolved left to right.
//
// In [Strict] mode an oracle failure aborts the expansion. In [Permissive]
// mode the failed invocation is kept in the output as written, with its
// arguments already expanded.
//
// All failures are returned as [*Error] values classified by [Kind]:
// [KindMalformed] for structurally invalid input, [KindOracle] for a rejected
// invocation, and [KindLimit] for runaway expansion.
package expand
