package log

import (
	"context"
	"fmt"
	"github.com/sabaa/horary/observability"
	"go.opentelemetry.io/otel/attribute"
	"log/slog"
	"os"
	"sync"
	"time"
)

var logger *slog.Logger
var initOnce sync.Once

func init() {
	initOnce.Do(func() {
		logger = slog.New(NewSpanHandler(slog.NewTextHandler(os.Stdout, nil))).
			With("service", "horary")
	})
}

func Logger() *slog.Logger {
	return logger
}

// WithComponent returns the shared logger tagged with the judgment-pipeline
// component emitting the records (chartbuilder, server, ephemeris, ...).
func WithComponent(name string) *slog.Logger {
	return Logger().With("component", name)
}

// A SpanHandler wraps a slog.Handler and mirrors every record onto the
// active trace span, so a judgment's log lines and its span events tell
// one story.
type SpanHandler struct {
	handler slog.Handler
}

// NewSpanHandler wraps h. All slog.Handler methods delegate to h after the
// span mirroring in Handle.
func NewSpanHandler(h slog.Handler) *SpanHandler {
	// Avoid chains of SpanHandlers.
	if sh, ok := h.(*SpanHandler); ok {
		h = sh.Handler()
	}
	return &SpanHandler{h}
}

// Enabled delegates to the wrapped handler.
func (h *SpanHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle mirrors the record onto the span in ctx (as a span event, plus a
// recorded error for error-level records) before delegating.
func (h *SpanHandler) Handle(ctx context.Context, r slog.Record) error {
	if ctx != nil {
		span := observability.SpanFromContext(ctx)
		if span != nil && span.IsRecording() {
			// Convert slog attributes to OpenTelemetry attributes
			var spanAttrs []attribute.KeyValue
			r.Attrs(func(attr slog.Attr) bool {
				if spanAttr, err := convertSlogAttrToSpanAttr(attr.Key, attr.Value); err == nil {
					spanAttrs = append(spanAttrs, spanAttr)
				}
				return true
			})
			
			// Add log level as span attribute
			spanAttrs = append(spanAttrs, attribute.String("log.level", r.Level.String()))
			
			// Create span event with attributes
			eventName := fmt.Sprintf("log.%s", r.Level.String())
			span.AddEvent(eventName, observability.WithAttributes(spanAttrs...))
			
			// For errors, also record the error on the span
			if r.Level >= slog.LevelError {
				// Try to extract error from attributes
				var errorAttr slog.Attr
				r.Attrs(func(attr slog.Attr) bool {
					if attr.Key == "error" {
						errorAttr = attr
						return false
					}
					return true
				})
				
				if errorAttr.Key != "" {
					if err, ok := errorAttr.Value.Any().(error); ok {
						span.RecordError(err)
					} else {
						// Create a synthetic error from the error attribute
						span.RecordError(fmt.Errorf("%v", errorAttr.Value.Any()))
					}
				} else {
					// Create a synthetic error from the log message
					span.RecordError(fmt.Errorf("%s", r.Message))
				}
			}
		}
	}

	return h.handler.Handle(ctx, r)
}

func convertSlogAttrToSpanAttr(key string, attr slog.Value) (attribute.KeyValue, error) {
	var kv attribute.KeyValue
	switch attr.Kind() {
	case slog.KindString:
		kv = attribute.String(key, attr.Any().(string))
	case slog.KindBool:
		kv = attribute.Bool(key, attr.Any().(bool))
	case slog.KindInt64:
		kv = attribute.Int64(key, attr.Any().(int64))
	case slog.KindUint64:
		// OpenTelemetry does not support Uint64 directly, convert to Int64
		kv = attribute.Int64(key, int64(attr.Any().(uint64)))
	case slog.KindFloat64:
		kv = attribute.Float64(key, attr.Any().(float64))
	case slog.KindDuration:
		kv = attribute.String(key, attr.Any().(time.Duration).String())
	case slog.KindTime:
		kv = attribute.String(key, attr.Any().(time.Time).String())
	default:
		// For unsupported types, or in case of any errors, encode as a string
		kv = attribute.String(key, fmt.Sprint(attr.Any()))
	}

	if !kv.Valid() {
		return kv, fmt.Errorf("invalid attribute.KeyValue: %v", kv)
	}

	return kv, nil
}

// Handler returns the slog.Handler wrapped by h.
func (h *SpanHandler) Handler() slog.Handler { return h.handler }

// WithAttrs implements slog.Handler.WithAttrs.
func (h *SpanHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return NewSpanHandler(h.handler.WithAttrs(attrs))
}

// WithGroup implements slog.Handler.WithGroup.
func (h *SpanHandler) WithGroup(name string) slog.Handler {
	return NewSpanHandler(h.handler.WithGroup(name))
}
