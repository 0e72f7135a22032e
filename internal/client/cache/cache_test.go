package cache

import (
	"testing"

	"github.com/atinyakov/taskboard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed() *Cache {
	c := New()
	c.Replace([]models.Task{
		{ID: "t1", Title: "Write report", Status: models.StatusTodo, Priority: models.PriorityLow,
			Metadata: models.Metadata{"k": "v"}},
		{ID: "t2", Title: "Review PR", Status: models.StatusReview, Priority: models.PriorityUrgent},
	})
	return c
}

func TestListReturnsCopy(t *testing.T) {
	c := seed()

	got := c.List()
	got[0].Title = "mutated"
	got[0].Metadata["k"] = "mutated"

	fresh := c.List()
	assert.Equal(t, "Write report", fresh[0].Title)
	assert.Equal(t, "v", fresh[0].Metadata["k"])
}

func TestOptimisticAdd_ConfirmReplacesPlaceholder(t *testing.T) {
	c := seed()

	c.Add(models.Task{ID: "temp", Title: "New task", Status: models.StatusTodo})

	// server assigned the real record
	c.Remove("temp")
	c.Confirm("srv-1", models.Task{ID: "srv-1", Title: "New task", Status: models.StatusTodo})

	tasks := c.List()
	require.Len(t, tasks, 3)
	assert.Nil(t, c.Get("temp"))
	assert.NotNil(t, c.Get("srv-1"))
}

func TestOptimisticAdd_RollbackOnFailure(t *testing.T) {
	c := seed()

	snap := c.Take()
	c.Add(models.Task{ID: "temp", Title: "New task"})
	require.Len(t, c.List(), 3)

	// the server rejected the create
	c.Restore(snap)
	assert.Len(t, c.List(), 2)
	assert.Nil(t, c.Get("temp"))
}

func TestOptimisticPatch_RollbackRestoresPriorState(t *testing.T) {
	c := seed()

	snap := c.Take()
	status := models.StatusProgress
	require.True(t, c.Patch("t1", models.TaskPatch{Status: &status}))
	assert.Equal(t, models.StatusProgress, c.Get("t1").Status)

	c.Restore(snap)
	restored := c.Get("t1")
	assert.Equal(t, models.StatusTodo, restored.Status)
	assert.Equal(t, "Write report", restored.Title)
	assert.Equal(t, models.Metadata{"k": "v"}, restored.Metadata)
}

func TestPatch_MergesOnlySuppliedFields(t *testing.T) {
	c := seed()

	title := "Rewritten"
	require.True(t, c.Patch("t1", models.TaskPatch{Title: &title}))

	got := c.Get("t1")
	assert.Equal(t, "Rewritten", got.Title)
	assert.Equal(t, models.StatusTodo, got.Status)
	assert.Equal(t, models.PriorityLow, got.Priority)
	assert.Equal(t, models.Metadata{"k": "v"}, got.Metadata)
}

func TestPatch_UnknownID(t *testing.T) {
	c := seed()
	title := "x"
	assert.False(t, c.Patch("ghost", models.TaskPatch{Title: &title}))
}

func TestOptimisticRemove_RollbackOnFailure(t *testing.T) {
	c := seed()

	snap := c.Take()
	require.True(t, c.Remove("t2"))
	assert.Len(t, c.List(), 1)

	// the server said 404 or 500; put it back
	c.Restore(snap)
	assert.Len(t, c.List(), 2)
	assert.NotNil(t, c.Get("t2"))
}

func TestConfirm_ReconcilesServerRecord(t *testing.T) {
	c := seed()

	// the server's record carries refreshed fields
	c.Confirm("t1", models.Task{ID: "t1", Title: "Write report", Status: models.StatusProgress,
		Priority: models.PriorityLow, Metadata: models.Metadata{"k": "v"}})

	assert.Equal(t, models.StatusProgress, c.Get("t1").Status)
	assert.Len(t, c.List(), 2)
}
