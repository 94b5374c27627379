package trace

import (
	"context"
	"time"
)

// frame is what a context carries: the tracer and the innermost open span.
type frame struct {
	tracer Tracer
	span   uint64
}

type frameKey struct{}

func frameOf(ctx context.Context) frame {
	if ctx != nil {
		if f, ok := ctx.Value(frameKey{}).(frame); ok {
			return f
		}
	}
	return frame{tracer: Nop}
}

// WithTracer attaches t to ctx; spans started below it are roots.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, frameKey{}, frame{tracer: t})
}

// FromContext returns the tracer attached to ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	return frameOf(ctx).tracer
}

var spanIDs atomicCounter

// Span is an open interval of work. The zero-cost span returned when the
// level filters it out accepts every call and records nothing.
type Span struct {
	tracer  Tracer
	id      uint64
	parent  uint64
	scope   Scope
	name    string
	started time.Time
	attrs   map[string]string
}

// Start opens a span under the one carried by ctx and returns a context in
// which it is the parent.
func Start(ctx context.Context, scope Scope, name string) (context.Context, *Span) {
	f := frameOf(ctx)
	if !f.tracer.Level().admits(scope) {
		return ctx, &Span{}
	}
	s := &Span{
		tracer:  f.tracer,
		id:      spanIDs.next(),
		parent:  f.span,
		scope:   scope,
		name:    name,
		started: time.Now(),
	}
	s.tracer.Emit(&Event{
		Time:   s.started,
		Kind:   KindBegin,
		Scope:  scope,
		Span:   s.id,
		Parent: s.parent,
		Name:   name,
	})
	return context.WithValue(ctx, frameKey{}, frame{tracer: f.tracer, span: s.id}), s
}

// Set attaches an attribute reported with the end event.
func (s *Span) Set(key, value string) *Span {
	if s == nil || s.tracer == nil {
		return s
	}
	if s.attrs == nil {
		s.attrs = make(map[string]string, 2)
	}
	s.attrs[key] = value
	return s
}

// End closes the span and returns its duration; 0 for a filtered span.
func (s *Span) End(detail string) time.Duration {
	if s == nil || s.tracer == nil {
		return 0
	}
	elapsed := time.Since(s.started)
	s.tracer.Emit(&Event{
		Time:    time.Now(),
		Kind:    KindEnd,
		Scope:   s.scope,
		Span:    s.id,
		Parent:  s.parent,
		Name:    s.name,
		Detail:  detail,
		Elapsed: elapsed,
		Attrs:   s.attrs,
	})
	return elapsed
}

// Point records an instant event under the span carried by ctx.
func Point(ctx context.Context, scope Scope, name, detail string) {
	f := frameOf(ctx)
	if !f.tracer.Level().admits(scope) {
		return
	}
	f.tracer.Emit(&Event{Time: time.Now(), Kind: KindPoint, Scope: scope, Parent: f.span, Name: name, Detail: detail})
}

// Error records a failure. It is written whenever tracing is on at all.
func Error(ctx context.Context, name, detail string) {
	f := frameOf(ctx)
	if f.tracer.Level() == LevelOff {
		return
	}
	f.tracer.Emit(&Event{Time: time.Now(), Kind: KindError, Scope: ScopeDriver, Parent: f.span, Name: name, Detail: detail})
}
