// Package mcpserver exposes the query engine to language models over the
// Model Context Protocol. Two façades share one engine: the multi-tool
// server registers a named tool per operation, the simple server registers a
// single generic get_all_tasks tool. Neither duplicates any filter or sort
// logic — both delegate to internal/query.
package mcpserver

import (
	"encoding/json"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/vojtapolasek/todo-mcp-server/internal/query"
	"github.com/vojtapolasek/todo-mcp-server/internal/version"
)

// New creates the multi-tool MCP server: one named tool per query operation.
func New(engine *query.Engine, log zerolog.Logger) *server.MCPServer {
	s := server.NewMCPServer(
		"todo-assistant",
		version.Version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	overview := &OverviewTool{engine: engine, log: log}
	s.AddTool(overview.Definition(), overview.Handle)

	suggest := &SuggestTool{engine: engine, log: log}
	s.AddTool(suggest.Definition(), suggest.Handle)

	project := &ProjectTool{engine: engine, log: log}
	s.AddTool(project.Definition(), project.Handle)

	waiting := &WaitingTool{engine: engine, log: log}
	s.AddTool(waiting.Definition(), waiting.Handle)

	inbox := &InboxTool{engine: engine, log: log}
	s.AddTool(inbox.Definition(), inbox.Handle)

	context := &ContextTool{engine: engine, log: log}
	s.AddTool(context.Definition(), context.Handle)

	return s
}

// NewSimple creates the single-tool MCP server: one generic get_all_tasks
// tool whose arguments compose every filter conjunctively.
func NewSimple(engine *query.Engine, log zerolog.Logger) (*server.MCPServer, error) {
	s := server.NewMCPServer(
		"todo-assistant-simple",
		version.Version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	allTasks, err := NewGetAllTasksTool(engine, log)
	if err != nil {
		return nil, err
	}
	s.AddTool(allTasks.Definition(), allTasks.Handle)

	return s, nil
}

// Serve runs s on stdio until the client disconnects.
func Serve(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

// serverInstructions tells the model when these tools are useful.
func serverInstructions() string {
	return `You have access to a read-only todo.txt task list.

Use get_task_overview for counts and totals, suggest_next_task when the user
asks what to work on (pass their energy level, available time, or context),
and the show_* tools to inspect a specific project, context, the inbox, or
blocked tasks. Quote tasks back using their raw text. An empty result means
nothing matched — it is not an error.`
}

// --- shared result helpers ---------------------------------------------------

// jsonResult serialises v as indented JSON text content.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultErrorFromErr("encode result", err), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// errorResult maps engine failures to tool errors: validation failures carry
// the offending value verbatim, everything else is an I/O-level failure.
func errorResult(err error) *mcp.CallToolResult {
	if errors.Is(err, query.ErrInvalidFilter) {
		return mcp.NewToolResultError(err.Error())
	}
	return mcp.NewToolResultErrorFromErr("query failed", err)
}
