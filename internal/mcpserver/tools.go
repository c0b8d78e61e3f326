package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog"

	"github.com/vojtapolasek/todo-mcp-server/internal/query"
	"github.com/vojtapolasek/todo-mcp-server/internal/todotxt"
)

// --- get_task_overview -------------------------------------------------------

// OverviewTool reports aggregate counts over the whole task list.
type OverviewTool struct {
	engine *query.Engine
	log    zerolog.Logger
}

func (t *OverviewTool) Definition() mcp.Tool {
	return mcp.NewTool("get_task_overview",
		mcp.WithDescription("Get a comprehensive overview of all tasks: totals, priority distribution, top projects, waiting and inbox counts, and due-date pressure (overdue, due today, due soon)."),
	)
}

func (t *OverviewTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ov, err := t.engine.Overview()
	if err != nil {
		t.log.Error().Err(err).Msg("get_task_overview failed")
		return errorResult(err), nil
	}
	return jsonResult(ov)
}

// --- suggest_next_task -------------------------------------------------------

// SuggestTool picks the best next tasks given the caller's constraints.
type SuggestTool struct {
	engine *query.Engine
	log    zerolog.Logger
}

func (t *SuggestTool) Definition() mcp.Tool {
	return mcp.NewTool("suggest_next_task",
		mcp.WithDescription("Suggest the next task to work on based on priorities, due dates, and the caller's constraints. Completed and waiting tasks are never suggested."),
		mcp.WithString("energy_level",
			mcp.Description("Current energy level"),
			mcp.Enum("high", "low"),
		),
		mcp.WithString("time_estimate",
			mcp.Description("Preferred task duration bucket"),
			mcp.Enum("quick", "medium", "deep"),
		),
		mcp.WithNumber("time_available_minutes",
			mcp.Description("How many minutes are available for work; maps to a duration bucket when time_estimate is not given"),
		),
		mcp.WithString("context_filter",
			mcp.Description("Only suggest tasks carrying this @context (without the @ prefix)"),
		),
		mcp.WithString("project",
			mcp.Description("Only suggest tasks carrying this +project (without the + prefix)"),
		),
		mcp.WithBoolean("offline",
			mcp.Description("Exclude tasks that require connectivity"),
		),
	)
}

func (t *SuggestTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := query.SuggestParams{
		Energy:               todotxt.EnergyLevel(req.GetString("energy_level", "")),
		Time:                 todotxt.TimeEstimate(req.GetString("time_estimate", "")),
		TimeAvailableMinutes: req.GetInt("time_available_minutes", 0),
		Context:              req.GetString("context_filter", ""),
		Project:              req.GetString("project", ""),
		Offline:              req.GetBool("offline", false),
	}

	suggestion, err := t.engine.SuggestNext(params)
	if err != nil {
		t.log.Error().Err(err).Msg("suggest_next_task failed")
		return errorResult(err), nil
	}
	return jsonResult(suggestion)
}

// --- show_project_tasks ------------------------------------------------------

// ProjectTool lists the active and waiting tasks of one project.
type ProjectTool struct {
	engine *query.Engine
	log    zerolog.Logger
}

func (t *ProjectTool) Definition() mcp.Tool {
	return mcp.NewTool("show_project_tasks",
		mcp.WithDescription("Show all tasks for a specific project, split into active and waiting. An unknown project yields empty lists."),
		mcp.WithString("project_name",
			mcp.Required(),
			mcp.Description("Name of the project (without the + prefix)"),
		),
	)
}

func (t *ProjectTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("project_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := t.engine.ByProject(name)
	if err != nil {
		t.log.Error().Err(err).Str("project", name).Msg("show_project_tasks failed")
		return errorResult(err), nil
	}
	return jsonResult(result)
}

// --- show_waiting_tasks ------------------------------------------------------

// WaitingTool lists blocked tasks, grouped by project.
type WaitingTool struct {
	engine *query.Engine
	log    zerolog.Logger
}

func (t *WaitingTool) Definition() mcp.Tool {
	return mcp.NewTool("show_waiting_tasks",
		mcp.WithDescription("Show all tasks that are waiting on someone else, organized by project."),
	)
}

func (t *WaitingTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := t.engine.Waiting()
	if err != nil {
		t.log.Error().Err(err).Msg("show_waiting_tasks failed")
		return errorResult(err), nil
	}
	return jsonResult(result)
}

// --- show_inbox_tasks --------------------------------------------------------

// InboxTool lists unprocessed tasks.
type InboxTool struct {
	engine *query.Engine
	log    zerolog.Logger
}

func (t *InboxTool) Definition() mcp.Tool {
	return mcp.NewTool("show_inbox_tasks",
		mcp.WithDescription("Show all inbox tasks that still need to be processed."),
	)
}

func (t *InboxTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := t.engine.Inbox()
	if err != nil {
		t.log.Error().Err(err).Msg("show_inbox_tasks failed")
		return errorResult(err), nil
	}
	return jsonResult(result)
}

// --- show_context_tasks ------------------------------------------------------

// ContextTool lists the active tasks of one context.
type ContextTool struct {
	engine *query.Engine
	log    zerolog.Logger
}

func (t *ContextTool) Definition() mcp.Tool {
	return mcp.NewTool("show_context_tasks",
		mcp.WithDescription("Show active tasks filtered by a specific context. An unknown context yields an empty list."),
		mcp.WithString("context",
			mcp.Required(),
			mcp.Description("Context to filter by (without the @ prefix)"),
		),
	)
}

func (t *ContextTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("context")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := t.engine.ByContext(name)
	if err != nil {
		t.log.Error().Err(err).Str("context", name).Msg("show_context_tasks failed")
		return errorResult(err), nil
	}
	return jsonResult(result)
}
