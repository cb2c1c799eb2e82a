package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "chatdesk/assistant-api"

// GetTracer returns the tracer for the assistant-api service.
func GetTracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

// StartChatTurnSpan starts a span covering one user turn, from message
// submission through run polling to record persistence.
func StartChatTurnSpan(ctx context.Context, conversationID, threadID string) (context.Context, trace.Span) {
	return GetTracer().Start(ctx, "chat.turn",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("chat.conversation_id", conversationID),
			attribute.String("chat.thread_id", threadID),
		),
	)
}

// RecordError records an error on a span.
func RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
