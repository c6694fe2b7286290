// Package mcpserver serves the tool registry over the Model Context Protocol.
package mcpserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/florianilch/linkedin-mcp/internal/apperrors"
	"github.com/florianilch/linkedin-mcp/internal/httpserver"
	"github.com/florianilch/linkedin-mcp/internal/tools"
)

// Endpoint is the path of the streamable HTTP transport.
const Endpoint = "/mcp"

// Server adapts a tools.Registry onto an MCP server.
type Server struct {
	registry *tools.Registry
	server   *mcp.Server
}

// New registers every tool of registry on a new MCP server.
func New(registry *tools.Registry, name, version string) *Server {
	s := &Server{
		registry: registry,
		server:   mcp.NewServer(&mcp.Implementation{Name: name, Version: version}, nil),
	}

	for _, t := range registry.Tools() {
		s.server.AddTool(&mcp.Tool{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: t.InputSchema,
		}, s.handle)
	}
	s.server.AddReceivingMiddleware(s.rejectUnknownTools)

	return s
}

// rejectUnknownTools answers tools/call for names the registry does not know
// with a failed tool result instead of a protocol error.
func (s *Server) rejectUnknownTools(next mcp.MethodHandler) mcp.MethodHandler {
	return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
		if method != "tools/call" {
			return next(ctx, method, req)
		}
		call, ok := req.(*mcp.CallToolRequest)
		if !ok || call.Params == nil || s.registry.Has(call.Params.Name) {
			return next(ctx, method, req)
		}

		err := apperrors.UnknownOperation(call.Params.Name)
		logFailure(ctx, call.Params.Name, err)
		return errorResult(err), nil
	}
}

// ServeStdio serves a single client over stdin/stdout until ctx is done or
// the client disconnects.
func (s *Server) ServeStdio(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// Handler returns the streamable HTTP transport mounted at Endpoint, plus a
// /healthz probe. Other paths get a JSON 404.
func (s *Server) Handler(logger *slog.Logger) http.Handler {
	mcpHandler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.server
	}, nil)

	mux := http.NewServeMux()
	mux.Handle(Endpoint, mcpHandler)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		httpserver.WriteJSON(r.Context(), w, map[string]string{"status": "ok"}, http.StatusOK)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		httpserver.WriteJSONError(r.Context(), w, "not found", http.StatusNotFound)
	})

	return httpserver.Apply(mux,
		httpserver.Logging(logger),
		httpserver.Recovery,
	)
}

// handle dispatches a tool call to the registry. Failures are reported in
// the result rather than as protocol errors so the calling agent sees them.
func (s *Server) handle(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := req.Params.Name

	result, err := s.registry.Call(ctx, name, req.Params.Arguments)
	if err != nil {
		logFailure(ctx, name, err)
		return errorResult(err), nil
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		slog.ErrorContext(ctx, "failed to encode tool result", "tool", name, "error", err)
		return errorResult(err), nil
	}

	slog.DebugContext(ctx, "tool call succeeded", "tool", name)
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}, nil
}

func errorResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: "Error: " + err.Error()}},
		IsError: true,
	}
}

// logFailure logs caller mistakes at warn level and everything else at error.
func logFailure(ctx context.Context, tool string, err error) {
	kind := apperrors.KindOf(err)
	switch kind {
	case apperrors.KindValidation, apperrors.KindTypeMismatch, apperrors.KindUnknownOperation, apperrors.KindUnsupported:
		slog.WarnContext(ctx, "tool call rejected", "tool", tool, "kind", kind, "error", err)
	default:
		slog.ErrorContext(ctx, "tool call failed", "tool", tool, "kind", kind, "error", err)
	}
}
