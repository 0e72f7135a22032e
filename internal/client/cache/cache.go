// Package cache keeps the client's local copy of the task collection
// and implements the optimistic mutation protocol: snapshot the prior
// state, apply the change locally, then either confirm with the
// server-returned record or restore the snapshot.
package cache

import (
	"sync"

	"github.com/atinyakov/taskboard/internal/models"
)

// Cache is a mutex-guarded task collection.
type Cache struct {
	mu    sync.Mutex
	tasks []models.Task
}

// Snapshot is an immutable copy of the collection taken before an
// optimistic mutation, used to roll back on failure.
type Snapshot struct {
	tasks []models.Task
}

// New returns an empty Cache.
func New() *Cache {
	return &Cache{tasks: []models.Task{}}
}

func copyTasks(tasks []models.Task) []models.Task {
	out := make([]models.Task, len(tasks))
	copy(out, tasks)
	for i := range out {
		if out[i].Metadata != nil {
			m := make(models.Metadata, len(out[i].Metadata))
			for k, v := range out[i].Metadata {
				m[k] = v
			}
			out[i].Metadata = m
		}
	}
	return out
}

// Replace swaps the whole collection for the server's view.
func (c *Cache) Replace(tasks []models.Task) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tasks = copyTasks(tasks)
}

// List returns a copy of the cached collection.
func (c *Cache) List() []models.Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	return copyTasks(c.tasks)
}

// Get returns the cached task with the given id, or nil.
func (c *Cache) Get(id string) *models.Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.tasks {
		if c.tasks[i].ID == id {
			t := copyTasks(c.tasks[i : i+1])[0]
			return &t
		}
	}
	return nil
}

// Take captures the current collection for a later Restore.
func (c *Cache) Take() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{tasks: copyTasks(c.tasks)}
}

// Restore rolls the collection back to a previously taken snapshot.
func (c *Cache) Restore(snap Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tasks = copyTasks(snap.tasks)
}

// Add appends a task optimistically, before server confirmation.
func (c *Cache) Add(t models.Task) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tasks = append(c.tasks, t)
}

// Patch merges the given partial update into the cached task with the
// given id, mirroring the server's merge semantics. Returns false when
// the id is not cached.
func (c *Cache) Patch(id string, patch models.TaskPatch) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.tasks {
		if c.tasks[i].ID != id {
			continue
		}
		t := &c.tasks[i]
		if patch.Title != nil {
			t.Title = *patch.Title
		}
		if patch.Description != nil {
			t.Description = *patch.Description
		}
		if patch.Status != nil {
			t.Status = *patch.Status
		}
		if patch.Priority != nil {
			t.Priority = *patch.Priority
		}
		if patch.Deadline != nil {
			t.Deadline = *patch.Deadline
		}
		if patch.Metadata != nil {
			t.Metadata = patch.Metadata
		}
		return true
	}
	return false
}

// Remove drops the task with the given id optimistically.
// Returns false when the id is not cached.
func (c *Cache) Remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.tasks {
		if c.tasks[i].ID == id {
			c.tasks = append(c.tasks[:i], c.tasks[i+1:]...)
			return true
		}
	}
	return false
}

// Confirm reconciles an optimistic entry with the record the server
// returned: the cached task with the given id is replaced wholesale.
// Unknown ids are appended, so a confirm after a concurrent Replace
// still lands.
func (c *Cache) Confirm(id string, server models.Task) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.tasks {
		if c.tasks[i].ID == id {
			c.tasks[i] = server
			return
		}
	}
	c.tasks = append(c.tasks, server)
}
