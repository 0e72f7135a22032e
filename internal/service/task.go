// Package service provides business-logic services for authentication and
// task management, delegating persistence to repository interfaces.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/atinyakov/taskboard/internal/models"
	"github.com/atinyakov/taskboard/internal/shared"
	"github.com/google/uuid"
)

// TaskRepository defines the persistence operations needed by the TaskService.
// Implementations must scope every operation to the given author.
type TaskRepository interface {
	// ListByAuthor retrieves all tasks owned by the given user.
	ListByAuthor(ctx context.Context, authorID string) ([]models.Task, error)
	// Create persists a new task and assigns its timestamps.
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	// Update applies a partial patch to the task matching id and author,
	// or returns shared.ErrNotFound.
	Update(ctx context.Context, authorID, id string, patch models.TaskPatch) (*models.Task, error)
	// Delete removes the task matching id and author and returns it,
	// or returns shared.ErrNotFound.
	Delete(ctx context.Context, authorID, id string) (*models.Task, error)
}

// TaskService implements task management business logic.
type TaskService struct {
	// repo is the underlying persistence repository.
	repo TaskRepository
}

// NewTaskService constructs a TaskService with the provided TaskRepository.
func NewTaskService(repo TaskRepository) *TaskService {
	return &TaskService{repo: repo}
}

// List returns all tasks owned by the given user.
func (s *TaskService) List(ctx context.Context, authorID string) ([]models.Task, error) {
	return s.repo.ListByAuthor(ctx, authorID)
}

// Create validates the draft, fills in defaults, and persists a new task
// owned by authorID. Any author value supplied by the client never
// reaches this point: drafts carry no author field.
func (s *TaskService) Create(ctx context.Context, authorID string, draft models.TaskDraft) (*models.Task, error) {
	if strings.TrimSpace(draft.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", shared.ErrValidation)
	}

	if draft.Status == "" {
		draft.Status = models.StatusTodo
	}
	if !draft.Status.Valid() {
		return nil, fmt.Errorf("%w: invalid status %q", shared.ErrValidation, draft.Status)
	}

	if draft.Priority == "" {
		draft.Priority = models.PriorityLow
	}
	if !draft.Priority.Valid() {
		return nil, fmt.Errorf("%w: invalid priority %q", shared.ErrValidation, draft.Priority)
	}

	if draft.Metadata == nil {
		draft.Metadata = models.Metadata{}
	}

	task := &models.Task{
		ID:          uuid.NewString(),
		Title:       draft.Title,
		Description: draft.Description,
		Status:      draft.Status,
		Priority:    draft.Priority,
		Deadline:    draft.Deadline,
		Metadata:    draft.Metadata,
		Author:      authorID,
	}

	return s.repo.Create(ctx, task)
}

// Update validates any enum fields present in the patch and applies it
// to the task matching both id and authorID.
func (s *TaskService) Update(ctx context.Context, authorID, id string, patch models.TaskPatch) (*models.Task, error) {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", shared.ErrValidation)
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, fmt.Errorf("%w: invalid status %q", shared.ErrValidation, *patch.Status)
	}
	if patch.Priority != nil && !patch.Priority.Valid() {
		return nil, fmt.Errorf("%w: invalid priority %q", shared.ErrValidation, *patch.Priority)
	}

	return s.repo.Update(ctx, authorID, id, patch)
}

// Delete removes the task matching both id and authorID and returns the
// deleted record.
func (s *TaskService) Delete(ctx context.Context, authorID, id string) (*models.Task, error) {
	return s.repo.Delete(ctx, authorID, id)
}
