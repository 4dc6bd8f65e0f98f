// internal/planner/validation/stage2_test.go
package validation

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planflow/internal/common/errors"
	"planflow/internal/common/logger"
	"planflow/internal/models"
)

func planWithGraph(tasks []models.GanttTask, links []models.GanttLink) *models.ProjectPlan {
	return &models.ProjectPlan{
		ProjectName:         "Graph Test",
		ExecutiveSummary:    "Plan used to exercise graph invariants.",
		KeyMilestones:       []string{"Done"},
		TechnologyStack:     []models.TechnologyStackItem{{Component: "Backend", Technology: "Go", Rationale: "test"}},
		ResourceSuggestions: []string{"1x Developer"},
		GanttData:           models.GanttData{Data: tasks, Links: links},
	}
}

func task(id int, start string, duration int) models.GanttTask {
	return models.GanttTask{
		ID:        id,
		Text:      fmt.Sprintf("Task %d", id),
		StartDate: start,
		Duration:  duration,
		Progress:  0,
		Owner:     "Unassigned",
	}
}

func fsLink(id, source, target int) models.GanttLink {
	return models.GanttLink{ID: id, Source: source, Target: target, Type: models.LinkFinishToStart}
}

func TestStage2_ValidGraph(t *testing.T) {
	v := New(logger.NewNoOpLogger())

	plan := planWithGraph(
		[]models.GanttTask{
			task(1, "2026-09-01", 3),
			task(2, "2026-09-04", 5),
			task(3, "2026-09-04", 5),
			task(4, "2026-09-09", 2),
		},
		[]models.GanttLink{
			fsLink(1, 1, 2),
			fsLink(2, 1, 3),
			fsLink(3, 2, 4),
			fsLink(4, 3, 4),
		},
	)

	assert.NoError(t, v.Stage2(plan))
}

func TestStage2_DanglingLinkTarget(t *testing.T) {
	v := New(logger.NewNoOpLogger())

	plan := planWithGraph(
		[]models.GanttTask{
			task(1, "2026-09-01", 3),
			task(2, "2026-09-04", 5),
		},
		[]models.GanttLink{fsLink(1, 1, 3)},
	)

	err := v.Stage2(plan)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeSemanticInvalid, errors.CodeOf(err))

	var se *errors.StandardError
	require.ErrorAs(t, err, &se)
	assert.Contains(t, se.Details, "target task 3")
}

func TestStage2_SelfLink(t *testing.T) {
	v := New(logger.NewNoOpLogger())

	plan := planWithGraph(
		[]models.GanttTask{task(1, "2026-09-01", 3)},
		[]models.GanttLink{fsLink(1, 1, 1)},
	)

	err := v.Stage2(plan)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeSemanticInvalid, errors.CodeOf(err))
}

func TestStage2_Cycle(t *testing.T) {
	v := New(logger.NewNoOpLogger())

	plan := planWithGraph(
		[]models.GanttTask{
			task(4, "2026-09-01", 2),
			task(7, "2026-09-03", 2),
		},
		[]models.GanttLink{
			fsLink(1, 4, 7),
			fsLink(2, 7, 4),
		},
	)

	err := v.Stage2(plan)
	require.Error(t, err)

	var se *errors.StandardError
	require.ErrorAs(t, err, &se)
	assert.Contains(t, se.Details, "cycle:")
	assert.Contains(t, se.Details, "->")
}

func TestStage2_DuplicateIDs(t *testing.T) {
	v := New(logger.NewNoOpLogger())

	t.Run("task", func(t *testing.T) {
		plan := planWithGraph(
			[]models.GanttTask{
				task(1, "2026-09-01", 3),
				task(1, "2026-09-04", 3),
			},
			nil,
		)
		err := v.Stage2(plan)
		require.Error(t, err)
		assert.Equal(t, errors.ErrCodeSemanticInvalid, errors.CodeOf(err))
	})

	t.Run("link", func(t *testing.T) {
		plan := planWithGraph(
			[]models.GanttTask{
				task(1, "2026-09-01", 3),
				task(2, "2026-09-04", 3),
				task(3, "2026-09-07", 3),
			},
			[]models.GanttLink{
				fsLink(1, 1, 2),
				fsLink(1, 2, 3),
			},
		)
		err := v.Stage2(plan)
		require.Error(t, err)
		assert.Equal(t, errors.ErrCodeSemanticInvalid, errors.CodeOf(err))
	})
}

func TestStage2_FinishToStartDates(t *testing.T) {
	v := New(logger.NewNoOpLogger())

	// Task 2 starts before task 1's recomputed finish (Sep 1 + 3 days = Sep 4).
	plan := planWithGraph(
		[]models.GanttTask{
			task(1, "2026-09-01", 3),
			task(2, "2026-09-02", 5),
		},
		[]models.GanttLink{fsLink(1, 1, 2)},
	)

	err := v.Stage2(plan)
	require.Error(t, err)

	var se *errors.StandardError
	require.ErrorAs(t, err, &se)
	assert.Contains(t, se.Details, "before task 1 finishes")
}

func TestStage2_StartToStartIgnoresFinish(t *testing.T) {
	v := New(logger.NewNoOpLogger())

	// A start-to-start successor may overlap its predecessor.
	plan := planWithGraph(
		[]models.GanttTask{
			task(1, "2026-09-01", 10),
			task(2, "2026-09-01", 5),
		},
		[]models.GanttLink{
			{ID: 1, Source: 1, Target: 2, Type: models.LinkStartToStart},
		},
	)

	assert.NoError(t, v.Stage2(plan))
}

func TestStage2_InvalidCalendarDate(t *testing.T) {
	v := New(logger.NewNoOpLogger())

	// Passes the Stage 1 pattern but is not a real date.
	plan := planWithGraph(
		[]models.GanttTask{task(1, "2026-02-31", 3)},
		nil,
	)

	err := v.Stage2(plan)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeSemanticInvalid, errors.CodeOf(err))
}

// TestStage2_RandomGraphs generates random task/link sets and asserts the
// validator rejects exactly the graphs with dangling endpoints or cycles.
func TestStage2_RandomGraphs(t *testing.T) {
	v := New(logger.NewNoOpLogger())
	rng := rand.New(rand.NewSource(42))

	base := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 200; i++ {
		n := 2 + rng.Intn(6)
		tasks := make([]models.GanttTask, n)
		for j := range tasks {
			// A generous shared duration keeps forward edges date-consistent,
			// so only graph-shape violations can fail.
			tasks[j] = task(j+1, base.AddDate(0, 0, j*30).Format(models.DateLayout), 10)
		}

		var links []models.GanttLink
		expectValid := true
		for j := 0; j < rng.Intn(6); j++ {
			source := 1 + rng.Intn(n)
			target := 1 + rng.Intn(n+1) // may dangle at n+1
			if target > n || target <= source {
				expectValid = false // dangling, self-link, or a back edge that may close a cycle
			}
			links = append(links, fsLink(j+1, source, target))
		}

		err := v.Stage2(planWithGraph(tasks, links))
		if expectValid {
			assert.NoError(t, err, "forward-only graph %d must validate", i)
		} else {
			require.Error(t, err, "graph %d with dangling/self/back edges must be rejected", i)
			assert.Equal(t, errors.ErrCodeSemanticInvalid, errors.CodeOf(err))
		}
	}
}
