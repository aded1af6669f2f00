package tracing

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// SpanStatus is the final status of a span.
type SpanStatus string

const (
	StatusUnset SpanStatus = "unset"
	StatusOK    SpanStatus = "ok"
	StatusError SpanStatus = "error"
)

// SpanSnapshot is the JSON form of one finished span.
type SpanSnapshot struct {
	TraceID      string         `json:"trace_id"`
	SpanID       string         `json:"span_id"`
	ParentSpanID string         `json:"parent_span_id,omitempty"`
	Name         string         `json:"name"`
	Kind         string         `json:"kind"`
	Attributes   map[string]any `json:"attributes,omitempty"`
	Events       []SpanEvent    `json:"events,omitempty"`
	Status       SpanStatus     `json:"status"`
	StatusMsg    string         `json:"status_message,omitempty"`
	StartTime    time.Time      `json:"start_time"`
	EndTime      time.Time      `json:"end_time"`
	ServiceName  string         `json:"service_name,omitempty"`
}

// SpanEvent is an event recorded on a span, such as an error.
type SpanEvent struct {
	Name       string         `json:"name"`
	Time       time.Time      `json:"time"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

// Duration returns the elapsed time recorded by the span.
func (s *SpanSnapshot) Duration() time.Duration {
	if s == nil || s.EndTime.IsZero() || s.StartTime.IsZero() {
		return 0
	}
	return s.EndTime.Sub(s.StartTime)
}

// fileExporter implements sdktrace.SpanExporter.
type fileExporter struct {
	mu  sync.Mutex
	fw  *os.File
	enc *json.Encoder
}

var _ sdktrace.SpanExporter = (*fileExporter)(nil)

func newFileExporter(path string) (*fileExporter, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, err
	}
	return &fileExporter{fw: f, enc: json.NewEncoder(f)}, nil
}

func (f *fileExporter) ExportSpans(ctx context.Context, spans []sdktrace.ReadOnlySpan) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fw == nil {
		return nil
	}
	for _, span := range spans {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := f.enc.Encode(snapshot(span)); err != nil {
			return err
		}
	}
	return nil
}

func (f *fileExporter) Shutdown(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fw == nil {
		return nil
	}
	err := f.fw.Close()
	f.fw = nil
	return err
}

func snapshot(span sdktrace.ReadOnlySpan) SpanSnapshot {
	sc := span.SpanContext()
	snap := SpanSnapshot{
		TraceID:   sc.TraceID().String(),
		SpanID:    sc.SpanID().String(),
		Name:      span.Name(),
		Kind:      span.SpanKind().String(),
		StartTime: span.StartTime().UTC(),
		EndTime:   span.EndTime().UTC(),
		Status:    StatusUnset,
	}
	if parent := span.Parent(); parent.IsValid() {
		snap.ParentSpanID = parent.SpanID().String()
	}
	if attrs := span.Attributes(); len(attrs) > 0 {
		snap.Attributes = make(map[string]any, len(attrs))
		for _, kv := range attrs {
			snap.Attributes[string(kv.Key)] = kv.Value.AsInterface()
		}
	}
	for _, evt := range span.Events() {
		e := SpanEvent{Name: evt.Name, Time: evt.Time.UTC()}
		if len(evt.Attributes) > 0 {
			e.Attributes = make(map[string]any, len(evt.Attributes))
			for _, kv := range evt.Attributes {
				e.Attributes[string(kv.Key)] = kv.Value.AsInterface()
			}
		}
		snap.Events = append(snap.Events, e)
	}
	switch status := span.Status(); status.Code {
	case codes.Ok:
		snap.Status = StatusOK
	case codes.Error:
		snap.Status = StatusError
		snap.StatusMsg = status.Description
	}
	if res := span.Resource(); res != nil {
		if v, ok := res.Set().Value(semconv.ServiceNameKey); ok {
			snap.ServiceName = strings.TrimSpace(v.AsString())
		}
	}
	return snap
}
