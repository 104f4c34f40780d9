package middleware

import (
	"net/http"

	"socialnet/internal/observability"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// routeIDs are the path parameters recorded on request spans.
var routeIDs = []struct {
	param string
	attr  string
}{
	{"userId", "user.id"},
	{"friendId", "friend.id"},
	{"thoughtId", "thought.id"},
	{"reactionId", "reaction.id"},
}

// TracingMiddleware opens a server span for every request. The span is renamed
// to the matched route template once routing has run, so /users/:userId is one
// span name regardless of the id.
func TracingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := otel.GetTextMapPropagator().Extract(c.UserContext(), propagation.HeaderCarrier(c.GetReqHeaders()))

		method := utils.CopyString(c.Method())
		ctx, span := observability.Tracer.Start(ctx, method,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.request.method", method),
				attribute.String("url.path", utils.CopyString(c.Path())),
				attribute.String("client.address", c.IP()),
				attribute.String("user_agent.original", utils.CopyString(c.Get(fiber.HeaderUserAgent))),
			),
		)
		defer span.End()

		traceID := span.SpanContext().TraceID().String()
		c.Locals("traceID", traceID)
		c.Locals("spanID", span.SpanContext().SpanID().String())
		c.Set("X-Trace-ID", traceID)
		c.SetUserContext(ctx)

		err := c.Next()

		route := utils.CopyString(c.Route().Path)
		span.SetName(method + " " + route)
		span.SetAttributes(attribute.String("http.route", route))
		for _, id := range routeIDs {
			if v := c.Params(id.param); v != "" {
				span.SetAttributes(attribute.String(id.attr, utils.CopyString(v)))
			}
		}
		if rid, ok := c.Locals("requestid").(string); ok {
			span.SetAttributes(attribute.String("request.id", rid))
		}

		status := c.Response().StatusCode()
		span.SetAttributes(attribute.Int("http.response.status_code", status))
		switch {
		case err != nil:
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		case status >= fiber.StatusInternalServerError:
			span.SetStatus(codes.Error, http.StatusText(status))
		}

		return err
	}
}
