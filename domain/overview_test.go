package domain

import (
	"testing"
	"time"
)

func TestSummarize(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("counts statuses and urgency", func(t *testing.T) {
		tasks := []Task{
			{Status: StatusDone, DueDate: now.Add(-time.Hour)},
			{Status: StatusTodo, DueDate: now.Add(-time.Hour), IsUrgent: true},
			{Status: StatusInProgress, DueDate: now.Add(time.Hour)},
		}

		ov := Summarize(tasks, nil, now)
		if ov.Total != 3 {
			t.Errorf("Total = %d, want 3", ov.Total)
		}
		if ov.ByStatus[StatusDone] != 1 || ov.ByStatus[StatusTodo] != 1 || ov.ByStatus[StatusInProgress] != 1 {
			t.Errorf("unexpected status counts: %+v", ov.ByStatus)
		}
		if ov.Urgent != 1 {
			t.Errorf("Urgent = %d, want 1", ov.Urgent)
		}
		if ov.DaysToEvent != nil {
			t.Error("DaysToEvent should be nil without an event date")
		}
	})

	t.Run("completion percentage rounds to nearest", func(t *testing.T) {
		tasks := []Task{
			{Status: StatusDone},
			{Status: StatusTodo},
			{Status: StatusTodo},
		}
		// 1/3 = 33.33..., rounds to 33.
		if ov := Summarize(tasks, nil, now); ov.Completion != 33 {
			t.Errorf("Completion = %d, want 33", ov.Completion)
		}

		tasks = append(tasks, Task{Status: StatusDone})
		// 2/4 = 50.
		if ov := Summarize(tasks, nil, now); ov.Completion != 50 {
			t.Errorf("Completion = %d, want 50", ov.Completion)
		}
	})

	t.Run("empty board has zero completion", func(t *testing.T) {
		if ov := Summarize(nil, nil, now); ov.Completion != 0 || ov.Total != 0 {
			t.Errorf("unexpected overview for empty board: %+v", ov)
		}
	})

	t.Run("days to event rounds up a partial day", func(t *testing.T) {
		eventDate := now.Add(36 * time.Hour)
		ov := Summarize(nil, &eventDate, now)
		if ov.DaysToEvent == nil || *ov.DaysToEvent != 2 {
			t.Errorf("DaysToEvent = %v, want 2", ov.DaysToEvent)
		}
	})

	t.Run("past event date goes negative", func(t *testing.T) {
		eventDate := now.Add(-48 * time.Hour)
		ov := Summarize(nil, &eventDate, now)
		if ov.DaysToEvent == nil || *ov.DaysToEvent != -2 {
			t.Errorf("DaysToEvent = %v, want -2", ov.DaysToEvent)
		}
	})
}
