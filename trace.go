package parsec

import "github.com/npillmayer/schuko/tracing"

// tracer returns the package's debug tracer, selected by name the way
// npillmayer-gorgo's lr/earley package does it (tracer() wrapping
// tracing.Select). Default trace level is LevelError (silent); examples/
// CLIs raise it to LevelDebug via -trace.
func tracer() tracing.Trace {
	return tracing.Select("parsec")
}

// SetTraceLevel adjusts the package's debug verbosity. Exposed so cmd/
// binaries can wire a -trace flag without reaching into the tracing
// package directly.
func SetTraceLevel(level tracing.TraceLevel) {
	tracer().SetTraceLevel(level)
}
