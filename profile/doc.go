// Package profile provides optional runtime profiling for inox.
//
// Profiling is wired through [github.com/pkg/profile] and compiled in only
// when the pprof build tag is set:
//
//	go build -tags pprof -o inox .
//	inox --pprof-mode cpu expand input.txt
//	go tool pprof inox ~/.cache/inox/pprof/cpu.pprof
//
// Without the tag, [Modes] is empty and [Config.Start] always returns a no-op
// controller.
//
// Supported modes: allocs, block, clock, cpu, goroutine, heap, mem, mutex,
// thread, and trace. Long expansions with deeply nested invocations are best
// examined with cpu or allocs; the journal's SQLite writes show up under
// block.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
