package domain

import (
	"math"
	"time"
)

// Overview carries the aggregate numbers shown on the dashboard header.
type Overview struct {
	Total       int            `json:"total"`
	ByStatus    map[Status]int `json:"by_status"`
	Urgent      int            `json:"urgent"`
	Completion  int            `json:"completion_percent"`
	DaysToEvent *int           `json:"days_to_event,omitempty"`
}

// Summarize computes the overview for a task list. DaysToEvent is populated
// only when an event date is known; it rounds up, so a partially elapsed day
// still counts.
func Summarize(tasks []Task, eventDate *time.Time, now time.Time) Overview {
	ov := Overview{
		Total: len(tasks),
		ByStatus: map[Status]int{
			StatusTodo:       0,
			StatusInProgress: 0,
			StatusDone:       0,
		},
	}
	for _, task := range tasks {
		ov.ByStatus[task.Status]++
		if task.IsUrgent {
			ov.Urgent++
		}
	}
	if ov.Total > 0 {
		ov.Completion = int(math.Round(float64(ov.ByStatus[StatusDone]) / float64(ov.Total) * 100))
	}
	if eventDate != nil {
		days := int(math.Ceil(eventDate.Sub(now).Hours() / 24))
		ov.DaysToEvent = &days
	}
	return ov
}
