package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/vojtapolasek/todo-mcp-server/internal/query"
	"github.com/vojtapolasek/todo-mcp-server/internal/todotxt"
)

// getAllTasksSchema validates the raw tool arguments before a query runs, so
// an invalid enum or type is reported with the offending value instead of
// being silently coerced.
const getAllTasksSchema = `{
	"type": "object",
	"properties": {
		"include_completed": {"type": "boolean"},
		"include_contexts": {"type": "array", "items": {"type": "string"}},
		"exclude_contexts": {"type": "array", "items": {"type": "string"}},
		"include_projects": {"type": "array", "items": {"type": "string"}},
		"exclude_projects": {"type": "array", "items": {"type": "string"}},
		"energy_level": {"type": "string", "enum": ["high", "low"]},
		"time_estimate": {"type": "string", "enum": ["quick", "medium", "deep"]},
		"offline": {"type": "boolean"},
		"has_due_date": {"type": ["boolean", "null"]},
		"query": {"type": "string"},
		"max_results": {"type": "integer", "minimum": 0}
	},
	"additionalProperties": false
}`

// GetAllTasksTool is the single tool of the simple server variant: one
// generic entry point composing every filter conjunctively.
type GetAllTasksTool struct {
	engine *query.Engine
	log    zerolog.Logger
	schema *jsonschema.Schema
}

// NewGetAllTasksTool compiles the argument schema once up front.
func NewGetAllTasksTool(engine *query.Engine, log zerolog.Logger) (*GetAllTasksTool, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("get_all_tasks.json", strings.NewReader(getAllTasksSchema)); err != nil {
		return nil, fmt.Errorf("add get_all_tasks schema: %w", err)
	}
	schema, err := compiler.Compile("get_all_tasks.json")
	if err != nil {
		return nil, fmt.Errorf("compile get_all_tasks schema: %w", err)
	}
	return &GetAllTasksTool{engine: engine, log: log, schema: schema}, nil
}

func (t *GetAllTasksTool) Definition() mcp.Tool {
	return mcp.NewTool("get_all_tasks",
		mcp.WithDescription("Get tasks from the todo.txt file with optional filtering. All supplied filters compose conjunctively. Returns complete task data plus a summary block."),
		mcp.WithBoolean("include_completed",
			mcp.Description("Whether to include completed tasks (default: false)"),
		),
		mcp.WithArray("include_contexts",
			mcp.Description("Keep only tasks carrying at least one of these contexts"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithArray("exclude_contexts",
			mcp.Description("Drop tasks carrying any of these contexts (e.g. ['waiting'])"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithArray("include_projects",
			mcp.Description("Keep only tasks carrying at least one of these projects"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithArray("exclude_projects",
			mcp.Description("Drop tasks carrying any of these projects (e.g. ['in'])"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithString("energy_level",
			mcp.Description("Keep only tasks with this derived energy level"),
			mcp.Enum("high", "low"),
		),
		mcp.WithString("time_estimate",
			mcp.Description("Keep only tasks with this derived time estimate"),
			mcp.Enum("quick", "medium", "deep"),
		),
		mcp.WithBoolean("offline",
			mcp.Description("Drop tasks that require connectivity"),
		),
		mcp.WithBoolean("has_due_date",
			mcp.Description("Keep only tasks that have (true) or lack (false) a due date; omit for both"),
		),
		mcp.WithString("query",
			mcp.Description("Case-insensitive text search over description, raw text, projects, and contexts"),
		),
		mcp.WithNumber("max_results",
			mcp.Description("Maximum number of tasks to return (default: 100)"),
		),
	)
}

func (t *GetAllTasksTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	if args == nil {
		args = map[string]any{}
	}
	if err := t.schema.Validate(args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %s", schemaErrorDetail(err))), nil
	}

	f := query.Filter{
		IncludeCompleted: req.GetBool("include_completed", false),
		IncludeContexts:  req.GetStringSlice("include_contexts", nil),
		ExcludeContexts:  req.GetStringSlice("exclude_contexts", nil),
		IncludeProjects:  req.GetStringSlice("include_projects", nil),
		ExcludeProjects:  req.GetStringSlice("exclude_projects", nil),
		Energy:           todotxt.EnergyLevel(req.GetString("energy_level", "")),
		Time:             todotxt.TimeEstimate(req.GetString("time_estimate", "")),
		Offline:          req.GetBool("offline", false),
		Keyword:          req.GetString("query", ""),
		MaxResults:       req.GetInt("max_results", 100),
	}
	if v, ok := args["has_due_date"].(bool); ok {
		f.HasDueDate = &v
	}

	result, err := t.engine.AllTasks(f)
	if err != nil {
		t.log.Error().Err(err).Msg("get_all_tasks failed")
		return errorResult(err), nil
	}
	return jsonResult(result)
}

// schemaErrorDetail digs out the most specific message from a jsonschema
// validation error, including which argument failed.
func schemaErrorDetail(err error) string {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err.Error()
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	loc := strings.TrimPrefix(ve.InstanceLocation, "/")
	if loc == "" {
		return ve.Message
	}
	return fmt.Sprintf("%s: %s", loc, ve.Message)
}
