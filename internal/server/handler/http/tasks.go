// Package http provides HTTP handlers for the task resource.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/atinyakov/taskboard/internal/middleware"
	"github.com/atinyakov/taskboard/internal/models"
	"github.com/atinyakov/taskboard/internal/shared"
	"github.com/go-chi/chi/v5"
)

// TaskService defines the interface for task operations
// required by the TaskHandler. Every operation is scoped to the
// authenticated author.
type TaskService interface {
	// List returns all tasks owned by the author.
	List(ctx context.Context, authorID string) ([]models.Task, error)
	// Create validates and persists a new task owned by the author.
	Create(ctx context.Context, authorID string, draft models.TaskDraft) (*models.Task, error)
	// Update applies a partial patch to the author's task with the given id.
	Update(ctx context.Context, authorID, id string, patch models.TaskPatch) (*models.Task, error)
	// Delete removes the author's task with the given id and returns it.
	Delete(ctx context.Context, authorID, id string) (*models.Task, error)
}

// TaskHandler handles HTTP requests for the task resource.
type TaskHandler struct {
	TaskService TaskService
}

// writeTaskError maps service errors to response codes:
// validation failures to 400, id/ownership misses to 404,
// everything else to 500.
func writeTaskError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrValidation):
		writeMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, shared.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "task not found")
	default:
		writeMessage(w, http.StatusInternalServerError, "internal server error")
	}
}

// List handles GET /tasks requests, returning the caller's tasks.
// An empty board yields an empty JSON array, not null.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	tasks, err := h.TaskService.List(r.Context(), user.ID)
	if err != nil {
		writeTaskError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tasks)
}

// Create handles POST /tasks requests.
// The body is decoded as a draft without an author field, so any
// client-supplied author value is discarded; the task is always owned
// by the authenticated caller.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	var draft models.TaskDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request")
		return
	}

	task, err := h.TaskService.Create(r.Context(), user.ID, draft)
	if err != nil {
		writeTaskError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, task)
}

// Update handles PATCH /tasks/{id} requests with a partial body.
// A task owned by a different user is indistinguishable from a missing
// one: both produce 404.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	id := chi.URLParam(r, "id")

	var patch models.TaskPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request")
		return
	}

	task, err := h.TaskService.Update(r.Context(), user.ID, id, patch)
	if err != nil {
		writeTaskError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, task)
}

// Delete handles DELETE /tasks/{id} requests, responding with the
// deleted task.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	id := chi.URLParam(r, "id")

	task, err := h.TaskService.Delete(r.Context(), user.ID, id)
	if err != nil {
		writeTaskError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, task)
}
