// Package trace is the structured event stream of texconv.
//
// There is no global logger. Commands build a Tracer from flags and hand it
// down through context; conversions stay silent unless one is attached.
//
//	texconv plain --trace=- --trace-level=phase '\dfrac{1}{2}'
//
// Levels go from off through error (failures only), phase (conversions and
// their normalize/lex/serialize passes) and detail (batch items) to debug.
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.Start(ctx, trace.ScopePass, "lex")
//	defer span.End("")
package trace
