package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

func trafficLoggingMiddleware(logger *slog.Logger, direction string) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			if !logger.Enabled(ctx, slog.LevelDebug) {
				return next(ctx, method, req)
			}

			logger.Debug("mcp traffic",
				slog.String("direction", direction),
				slog.String("stage", "request"),
				slog.String("method", method),
				slog.String("params", formatPayload(paramsOf(req))),
			)

			result, err := next(ctx, method, req)
			if strings.HasPrefix(method, "notifications/") {
				return result, err
			}

			attrs := []any{
				slog.String("direction", direction),
				slog.String("stage", "response"),
				slog.String("method", method),
				slog.String("result", formatPayload(result)),
			}
			if err != nil {
				attrs = append(attrs, slog.String("error", err.Error()))
			}
			logger.Debug("mcp traffic", attrs...)

			return result, err
		}
	}
}

func paramsOf(req sdkmcp.Request) (params any) {
	if req == nil {
		return nil
	}
	defer func() {
		if recover() != nil {
			params = nil
		}
	}()
	return req.GetParams()
}

// formatPayload renders v as compact JSON, capped so large decks do not
// flood the log.
func formatPayload(v any) string {
	if v == nil {
		return "<nil>"
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%T", v)
	}
	const maxLen = 2048
	if len(data) > maxLen {
		return string(data[:maxLen]) + "..."
	}
	return string(data)
}
