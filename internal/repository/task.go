// Package repository provides persistence implementations for the task store
// using a PostgreSQL database.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/atinyakov/taskboard/internal/models"
	"github.com/atinyakov/taskboard/internal/shared"
)

// PostgresTaskRepository implements task storage operations against a PostgreSQL database.
// Every query predicate includes the author: a task is invisible to any
// identity other than its owner.
type PostgresTaskRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresTaskRepository creates a new PostgresTaskRepository using the provided *sql.DB.
// db must be a valid connection to a PostgreSQL instance.
func NewPostgresTaskRepository(db *sql.DB) *PostgresTaskRepository {
	return &PostgresTaskRepository{DB: db}
}

func scanTask(row interface{ Scan(...any) error }, t *models.Task) error {
	return row.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.Priority,
		&t.Deadline, &t.Metadata, &t.Author, &t.CreatedAt, &t.UpdatedAt)
}

// ListByAuthor fetches all tasks owned by the given user.
//
//	ctx:      context for cancellation and deadlines
//	authorID: identifier of the owning user
//
// Returns a slice of models.Task (empty, never nil) or an error if the
// query or scanning fails.
func (s *PostgresTaskRepository) ListByAuthor(ctx context.Context, authorID string) ([]models.Task, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, title, description, status, priority, deadline, metadata, author, created_at, updated_at
		FROM tasks WHERE author = $1
	`, authorID)
	if err != nil {
		return nil, fmt.Errorf("ListByAuthor: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var t models.Task
		if err := scanTask(rows, &t); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return tasks, nil
}

// Create persists a new task and fills in the server-assigned timestamps.
func (s *PostgresTaskRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	err := s.DB.QueryRowContext(ctx, `
		INSERT INTO tasks (id, title, description, status, priority, deadline, metadata, author)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`, task.ID, task.Title, task.Description, task.Status, task.Priority,
		task.Deadline, task.Metadata, task.Author,
	).Scan(&task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

// Update applies a partial patch to the task matching both id and author.
// Absent patch fields keep their stored values; updated_at is refreshed.
// Returns the updated row, or shared.ErrNotFound when no task matches
// the id/author pair.
func (s *PostgresTaskRepository) Update(ctx context.Context, authorID, id string, patch models.TaskPatch) (*models.Task, error) {
	var task models.Task
	row := s.DB.QueryRowContext(ctx, `
		UPDATE tasks SET
			title       = COALESCE($1, title),
			description = COALESCE($2, description),
			status      = COALESCE($3, status),
			priority    = COALESCE($4, priority),
			deadline    = COALESCE($5, deadline),
			metadata    = COALESCE($6, metadata),
			updated_at  = now()
		WHERE id = $7 AND author = $8
		RETURNING id, title, description, status, priority, deadline, metadata, author, created_at, updated_at
	`, textArg(patch.Title), textArg(patch.Description), enumArg(patch.Status),
		enumArg(patch.Priority), textArg(patch.Deadline), metaArg(patch.Metadata),
		id, authorID)
	if err := scanTask(row, &task); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("update task: %w", err)
	}
	return &task, nil
}

// Delete removes the task matching both id and author and returns the
// deleted row, or shared.ErrNotFound when no task matches.
func (s *PostgresTaskRepository) Delete(ctx context.Context, authorID, id string) (*models.Task, error) {
	var task models.Task
	row := s.DB.QueryRowContext(ctx, `
		DELETE FROM tasks WHERE id = $1 AND author = $2
		RETURNING id, title, description, status, priority, deadline, metadata, author, created_at, updated_at
	`, id, authorID)
	if err := scanTask(row, &task); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("delete task: %w", err)
	}
	return &task, nil
}

// textArg converts an optional patch field to a driver argument,
// mapping an absent field to SQL NULL so COALESCE keeps the stored value.
func textArg(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func enumArg[T ~string](v *T) any {
	if v == nil {
		return nil
	}
	return string(*v)
}

func metaArg(m models.Metadata) any {
	if m == nil {
		return nil
	}
	return m
}
