package http

import (
	"net/http"

	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/service"
	"github.com/taskdeck/taskdeck/pkg/api"
	"github.com/taskdeck/taskdeck/pkg/httpx"
)

// handleCreateTask godoc
//
//	@Summary		Create a task
//	@Description	All assignees must belong to the caller's organization. Managers may only assign members.
//	@Tags			tasks
//	@Accept			json
//	@Produce		json
//	@Param			request	body		api.CreateTaskRequest	true	"task details"
//	@Success		201		{object}	api.TaskResponse
//	@Failure		400		{object}	api.MessageResponse
//	@Failure		403		{object}	api.MessageResponse
//	@Security		SessionCookie
//	@Router			/tasks [post]
func (rt *Router) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req api.CreateTaskRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	principal := principalFromContext(r.Context())
	task, assignees, err := rt.Tasks.Create(r.Context(), principal, service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
		Priority:    domain.TaskPriority(req.Priority),
		Category:    domain.TaskCategory(req.Category),
		DueDate:     req.DueDate,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, api.TaskResponse{
		Message: "Task created successfully",
		Task:    toAPITask(task, usersAsLookup(assignees)),
	})
}

// handleListTasks godoc
//
//	@Summary	List the organization's tasks
//	@Tags		tasks
//	@Produce	json
//	@Success	200	{array}		api.Task
//	@Failure	401	{object}	api.MessageResponse
//	@Failure	403	{object}	api.MessageResponse
//	@Security	SessionCookie
//	@Router		/tasks [get]
func (rt *Router) handleListTasks(w http.ResponseWriter, r *http.Request) {
	principal := principalFromContext(r.Context())

	tasks, membersByID, err := rt.Tasks.List(r.Context(), principal)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]api.Task, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toAPITask(t, membersByID))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// handleUpdateTaskStatus godoc
//
//	@Summary		Update a task's status
//	@Description	Members may only update tasks they are assigned to.
//	@Tags			tasks
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"task id"
//	@Param			request	body		api.UpdateTaskStatusRequest	true	"new status"
//	@Success		200		{object}	api.TaskResponse
//	@Failure		400		{object}	api.MessageResponse
//	@Failure		403		{object}	api.MessageResponse
//	@Failure		404		{object}	api.MessageResponse
//	@Security		SessionCookie
//	@Router			/tasks/{id}/status [patch]
func (rt *Router) handleUpdateTaskStatus(w http.ResponseWriter, r *http.Request) {
	var req api.UpdateTaskStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	principal := principalFromContext(r.Context())
	task, assignees, err := rt.Tasks.UpdateStatus(
		r.Context(),
		principal,
		r.PathValue("id"),
		domain.TaskStatus(req.Status),
	)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, api.TaskResponse{
		Message: "Task status updated successfully",
		Task:    toAPITask(task, usersAsLookup(assignees)),
	})
}

// handleDeleteTask godoc
//
//	@Summary	Delete a task
//	@Tags		tasks
//	@Produce	json
//	@Param		id	path		string	true	"task id"
//	@Success	200	{object}	api.MessageResponse
//	@Failure	403	{object}	api.MessageResponse
//	@Failure	404	{object}	api.MessageResponse
//	@Security	SessionCookie
//	@Router		/tasks/{id} [delete]
func (rt *Router) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	principal := principalFromContext(r.Context())

	if err := rt.Tasks.Delete(r.Context(), principal, r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteMessage(w, http.StatusOK, "Task deleted successfully")
}
