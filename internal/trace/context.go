package trace

import "context"

type ctxKey struct{}

// binding — трассировщик и родительский span, которые едут в context вместе.
type binding struct {
	tracer Tracer
	parent uint64
}

func bound(ctx context.Context) binding {
	if ctx != nil {
		if b, ok := ctx.Value(ctxKey{}).(binding); ok {
			return b
		}
	}
	return binding{tracer: Nop}
}

// FromContext returns the tracer attached to ctx, Nop if there is none.
func FromContext(ctx context.Context) Tracer {
	return bound(ctx).tracer
}

// WithTracer attaches t to ctx and resets the parent span.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, ctxKey{}, binding{tracer: t})
}

// ParentSpan returns the span recorded by WithSpan or Start, or 0.
func ParentSpan(ctx context.Context) uint64 {
	return bound(ctx).parent
}

// WithSpan makes span the parent of spans begun under the returned context.
func WithSpan(ctx context.Context, span *Span) context.Context {
	b := bound(ctx)
	b.parent = span.ID()
	return context.WithValue(ctx, ctxKey{}, b)
}

// Start begins a span under the tracer and parent carried by ctx and returns
// a context in which that span is the parent.
func Start(ctx context.Context, scope Scope, name string) (*Span, context.Context) {
	b := bound(ctx)
	span := Begin(b.tracer, scope, name, b.parent)
	if span.ID() == 0 {
		return span, ctx
	}
	b.parent = span.ID()
	return span, context.WithValue(ctx, ctxKey{}, b)
}
