package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskgrid/backend/api/transport"
	"github.com/taskgrid/backend/domain"
	"github.com/taskgrid/backend/pkg/httpcontext"
	dashboardUC "github.com/taskgrid/backend/usecase/dashboard"
	taskUC "github.com/taskgrid/backend/usecase/task"
)

type TaskHandler struct {
	baseHandler
	uc        *taskUC.UseCase
	dashboard *dashboardUC.UseCase
}

func NewTaskHandler(uc *taskUC.UseCase, dashboard *dashboardUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
		dashboard:   dashboard,
	}
}

// @Summary List visible tasks with a status summary
// @Tags tasks
// @Router /api/v1/tasks [get]
func (h *TaskHandler) GetTasks(ctx *fasthttp.RequestCtx) {
	actor, ok := h.actor(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	result, err := h.uc.Query(stdCtx, actor, string(ctx.QueryArgs().Peek("status")))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, result)
}

// @Summary Get a task by id
// @Tags tasks
// @Router /api/v1/tasks/{id} [get]
func (h *TaskHandler) GetTask(ctx *fasthttp.RequestCtx) {
	if _, ok := h.actor(ctx); !ok {
		return
	}
	id, ok := h.taskID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	view, err := h.uc.Get(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, view)
}

// @Summary Create a task
// @Tags tasks
// @Router /api/v1/tasks [post]
func (h *TaskHandler) CreateTask(ctx *fasthttp.RequestCtx) {
	actor, ok := h.actor(ctx)
	if !ok {
		return
	}

	req, ok := h.parseTask(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	view, err := h.uc.Create(stdCtx, actor, taskUC.CreateInput{
		Title:         req.title,
		Description:   req.description,
		Priority:      req.priority,
		DueDate:       req.dueDate,
		AssignedTo:    req.assignedTo,
		Attachments:   req.attachments,
		TodoChecklist: req.checklist,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, view)
}

// @Summary Update a task
// @Tags tasks
// @Router /api/v1/tasks/{id} [put]
func (h *TaskHandler) UpdateTask(ctx *fasthttp.RequestCtx) {
	actor, ok := h.actor(ctx)
	if !ok {
		return
	}
	id, ok := h.taskID(ctx)
	if !ok {
		return
	}

	req, ok := h.parseTask(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	view, err := h.uc.Update(stdCtx, actor, id, taskUC.UpdateInput{
		Title:         req.title,
		Description:   req.description,
		Priority:      req.priority,
		DueDate:       req.dueDate,
		AssignedTo:    req.assignedTo,
		Attachments:   req.attachments,
		TodoChecklist: req.checklist,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, view)
}

// @Summary Delete a task
// @Tags tasks
// @Router /api/v1/tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(ctx *fasthttp.RequestCtx) {
	actor, ok := h.actor(ctx)
	if !ok {
		return
	}
	id, ok := h.taskID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.Delete(stdCtx, actor, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, map[string]string{"message": "task deleted successfully"})
}

// @Summary Set task status
// @Tags tasks
// @Router /api/v1/tasks/{id}/status [put]
func (h *TaskHandler) UpdateTaskStatus(ctx *fasthttp.RequestCtx) {
	actor, ok := h.actor(ctx)
	if !ok {
		return
	}
	id, ok := h.taskID(ctx)
	if !ok {
		return
	}

	var req transport.StatusUpdateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	view, err := h.uc.UpdateStatus(stdCtx, actor, id, domain.Status(req.Status))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, view)
}

// @Summary Replace the task checklist
// @Tags tasks
// @Router /api/v1/tasks/{id}/todo [put]
func (h *TaskHandler) UpdateTaskChecklist(ctx *fasthttp.RequestCtx) {
	actor, ok := h.actor(ctx)
	if !ok {
		return
	}
	id, ok := h.taskID(ctx)
	if !ok {
		return
	}

	var req transport.ChecklistUpdateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	view, err := h.uc.UpdateChecklist(stdCtx, actor, id, checklistItems(req.TodoChecklist))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, view)
}

// @Summary Admin dashboard aggregates
// @Tags tasks
// @Router /api/v1/tasks/dashboard-data [get]
func (h *TaskHandler) GetDashboardData(ctx *fasthttp.RequestCtx) {
	actor, ok := h.actor(ctx)
	if !ok {
		return
	}
	if !actor.IsAdmin() {
		h.respondError(ctx, domain.ErrForbidden)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	data, err := h.dashboard.Overview(stdCtx, actor)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, data)
}

// @Summary Personal dashboard aggregates
// @Tags tasks
// @Router /api/v1/tasks/user-dashboard-data [get]
func (h *TaskHandler) GetUserDashboardData(ctx *fasthttp.RequestCtx) {
	actor, ok := h.actor(ctx)
	if !ok {
		return
	}

	// Scope to the caller even for admins.
	scoped := domain.Actor{ID: actor.ID, Role: domain.RoleUser}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	data, err := h.dashboard.Overview(stdCtx, scoped)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, data)
}

type parsedTask struct {
	title       string
	description string
	priority    domain.Priority
	dueDate     time.Time
	assignedTo  []string
	attachments []string
	checklist   []domain.TodoItem
}

func (h *TaskHandler) parseTask(ctx *fasthttp.RequestCtx) (parsedTask, bool) {
	var req transport.TaskRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return parsedTask{}, false
	}

	parsed := parsedTask{
		title:       req.Title,
		description: req.Description,
		priority:    domain.Priority(req.Priority),
		assignedTo:  req.AssignedTo,
		attachments: req.Attachments,
		checklist:   checklistItems(req.TodoChecklist),
	}

	if req.DueDate != "" {
		due, err := parseDate(req.DueDate)
		if err != nil {
			h.respondInvalid(ctx, "invalid dueDate")
			return parsedTask{}, false
		}
		parsed.dueDate = due
	}

	return parsed, true
}

func (h *TaskHandler) taskID(ctx *fasthttp.RequestCtx) (string, bool) {
	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondInvalid(ctx, "missing task id")
		return "", false
	}
	return id, true
}

// checklistItems keeps nil-ness: a null wire array stays nil so updates can
// tell "omitted" from "empty".
func checklistItems(items []transport.TodoItemRequest) []domain.TodoItem {
	if items == nil {
		return nil
	}
	out := make([]domain.TodoItem, 0, len(items))
	for _, item := range items {
		out = append(out, domain.TodoItem{Text: item.Text, Completed: item.Completed})
	}
	return out
}

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
