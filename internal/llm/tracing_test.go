package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func installRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})
	return rec
}

func attrMap(kvs []attribute.KeyValue) map[string]attribute.Value {
	out := make(map[string]attribute.Value, len(kvs))
	for _, kv := range kvs {
		out[string(kv.Key)] = kv.Value
	}
	return out
}

func TestTracing_SpanAttributes(t *testing.T) {
	rec := installRecorder(t)
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`{}`),
		Usage:   Usage{InputTokens: 3, OutputTokens: 4},
	})
	p := WithTracing(mock, "mock")

	ctx := WithPurpose(context.Background(), PurposeStory)
	_, err := p.Generate(ctx, Request{MaxTokens: 64, Schema: &Schema{Name: "story"}})
	require.NoError(t, err)

	spans := rec.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "llm.generate", spans[0].Name())
	attrs := attrMap(spans[0].Attributes())
	assert.Equal(t, "story", attrs["llm.purpose"].AsString())
	assert.Equal(t, "story", attrs["llm.schema"].AsString())
	assert.Equal(t, int64(64), attrs["llm.max_tokens"].AsInt64())
	assert.Equal(t, int64(4), attrs["llm.output_tokens"].AsInt64())
}

func TestTracing_RecordsError(t *testing.T) {
	rec := installRecorder(t)
	mock := NewMockProvider(MockResponse{Err: &ErrAuth{Err: errors.New("401")}})
	p := WithTracing(mock, "mock")

	_, err := p.Generate(context.Background(), Request{})
	require.Error(t, err)

	spans := rec.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.NotEmpty(t, spans[0].Events())
}
