// Package driver runs conversions: it owns inputs, diagnostics, tracing,
// timings, caching and batch parallelism around the pure tokenizers and
// serializers.
package driver
