package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObserverAutoInitializes(t *testing.T) {
	observer := Observer()
	assert.NotNil(t, observer)
}

func TestNewLocalObserver(t *testing.T) {
	observer := NewLocalObserver()
	assert.NotNil(t, observer)
}

func TestObserverReturnsSameInstance(t *testing.T) {
	first := Observer()
	second := Observer()
	assert.Same(t, first, second)
}

func TestCreateSpan(t *testing.T) {
	observer := Observer()
	ctx, span := observer.CreateSpan(context.Background(), "test.span")
	assert.NotNil(t, ctx)
	assert.NotNil(t, span)
	span.End()
}

func TestTracer(t *testing.T) {
	observer := Observer()
	tracer := observer.Tracer("horary-test")
	assert.NotNil(t, tracer)
}

func TestWithAttributesAndSpanFromContext(t *testing.T) {
	ctx, span := Observer().CreateSpan(context.Background(), "test.attrs")
	defer span.End()

	span.AddEvent("attributed event", WithAttributes())
	found := SpanFromContext(ctx)
	assert.NotNil(t, found)
}
