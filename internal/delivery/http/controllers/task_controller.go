package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"eventplanner/internal/delivery/http/helpers"
	"eventplanner/internal/domain"
)

// CreateTaskRequest is the body of POST /events/{event_id}/tasks/
type CreateTaskRequest struct {
	Role        string    `json:"role"`
	Description string    `json:"description"`
	Count       int       `json:"count"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
}

type TaskController struct {
	base
	Service domain.TaskService
}

func NewTaskController(logger *slog.Logger, svc domain.TaskService) *TaskController {
	return &TaskController{base: base{Logger: logger}, Service: svc}
}

// ListTasks godoc
// @Summary List tasks
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param event_id path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse{data=[]domain.TaskAssignment}
// @Failure 403 {object} helpers.APIError
// @Router /events/{event_id}/tasks/ [get]
func (c *TaskController) ListTasks(w http.ResponseWriter, r *http.Request) {
	eventID, userID, ok := eventActor(w, r)
	if !ok {
		return
	}
	tasks, err := c.Service.ListTasks(r.Context(), eventID, userID)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	if tasks == nil {
		tasks = []*domain.TaskAssignment{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, tasks)
}

// CreateTask godoc
// @Summary Create a task
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event_id path string true "Event ID (UUID)"
// @Param body body CreateTaskRequest true "Task"
// @Success 201 {object} helpers.APIResponse{data=domain.TaskAssignment}
// @Failure 400 {object} helpers.APIError
// @Failure 403 {object} helpers.APIError
// @Router /events/{event_id}/tasks/ [post]
func (c *TaskController) CreateTask(w http.ResponseWriter, r *http.Request) {
	eventID, userID, ok := eventActor(w, r)
	if !ok {
		return
	}
	var req CreateTaskRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	task, err := c.Service.CreateTask(r.Context(), eventID, userID, &domain.TaskAssignment{
		Role:        req.Role,
		Description: req.Description,
		Count:       req.Count,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
	})
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, task)
}

// GetTask godoc
// @Summary Get a task
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param event_id path string true "Event ID (UUID)"
// @Param task_id path string true "Task ID (UUID)"
// @Success 200 {object} helpers.APIResponse{data=domain.TaskAssignment}
// @Failure 404 {object} helpers.APIError
// @Router /events/{event_id}/tasks/{task_id}/ [get]
func (c *TaskController) GetTask(w http.ResponseWriter, r *http.Request) {
	eventID, taskID, userID, ok := childActor(w, r, ParamTaskID)
	if !ok {
		return
	}
	task, err := c.Service.GetTask(r.Context(), eventID, taskID, userID)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, task)
}

// UpdateTask godoc
// @Summary Update a task
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event_id path string true "Event ID (UUID)"
// @Param task_id path string true "Task ID (UUID)"
// @Param body body domain.TaskPatch true "Fields to change"
// @Success 200 {object} helpers.APIResponse{data=domain.TaskAssignment}
// @Failure 400 {object} helpers.APIError
// @Failure 404 {object} helpers.APIError
// @Router /events/{event_id}/tasks/{task_id}/ [patch]
func (c *TaskController) UpdateTask(w http.ResponseWriter, r *http.Request) {
	eventID, taskID, userID, ok := childActor(w, r, ParamTaskID)
	if !ok {
		return
	}
	var patch domain.TaskPatch
	if !helpers.DecodeAndValidate(w, r, &patch) {
		return
	}
	task, err := c.Service.UpdateTask(r.Context(), eventID, taskID, userID, patch)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, task)
}

// DeleteTask godoc
// @Summary Delete a task
// @Tags tasks
// @Security BearerAuth
// @Param event_id path string true "Event ID (UUID)"
// @Param task_id path string true "Task ID (UUID)"
// @Success 204
// @Failure 403 {object} helpers.APIError
// @Failure 404 {object} helpers.APIError
// @Router /events/{event_id}/tasks/{task_id}/ [delete]
func (c *TaskController) DeleteTask(w http.ResponseWriter, r *http.Request) {
	eventID, taskID, userID, ok := childActor(w, r, ParamTaskID)
	if !ok {
		return
	}
	if err := c.Service.DeleteTask(r.Context(), eventID, taskID, userID); err != nil {
		c.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GenerateTasks godoc
// @Summary Generate the task roster
// @Description Replaces every task of the event with a drafted roster.
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param event_id path string true "Event ID (UUID)"
// @Success 201 {object} helpers.APIResponse{data=[]domain.TaskAssignment}
// @Failure 403 {object} helpers.APIError
// @Failure 502 {object} helpers.APIError
// @Router /events/{event_id}/tasks/generate/ [post]
func (c *TaskController) GenerateTasks(w http.ResponseWriter, r *http.Request) {
	eventID, userID, ok := eventActor(w, r)
	if !ok {
		return
	}
	tasks, err := c.Service.GenerateTasks(r.Context(), eventID, userID)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, tasks)
}
