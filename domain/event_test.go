package domain

import (
	"testing"
	"time"
)

func TestInstantiateTemplates_OffsetsFromEventDate(t *testing.T) {
	event := Event{
		ID:        "e1",
		EventDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	now := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	templates := []TaskTemplate{
		{ID: "tpl1", Title: "Confirmar local", DefaultOwner: "Coordenação", DueInDays: -10},
		{ID: "tpl2", Title: "Lista de presença", DefaultOwner: "Secretaria", DueInDays: -2},
		{ID: "tpl3", Title: "Relatório pós-evento", DefaultOwner: "Coordenação", DueInDays: 3},
	}

	tasks := InstantiateTemplates(templates, event, now)
	if len(tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(tasks))
	}

	wantDue := []time.Time{
		time.Date(2025, 5, 22, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 5, 30, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC),
	}
	for i, task := range tasks {
		if !task.DueDate.Equal(wantDue[i]) {
			t.Errorf("task %d: expected due %s, got %s", i, wantDue[i], task.DueDate)
		}
		if task.Status != StatusTodo {
			t.Errorf("task %d: generated tasks must start in todo, got %s", i, task.Status)
		}
		if task.EventID != event.ID {
			t.Errorf("task %d: expected event id %s, got %s", i, event.ID, task.EventID)
		}
		if task.Owner != templates[i].DefaultOwner {
			t.Errorf("task %d: expected owner %q, got %q", i, templates[i].DefaultOwner, task.Owner)
		}
		if task.ID == "" {
			t.Errorf("task %d: generated task must have an id", i)
		}
	}
}

func TestInstantiateTemplates_EmptySet(t *testing.T) {
	event := Event{ID: "e1", EventDate: time.Now()}
	tasks := InstantiateTemplates(nil, event, time.Now())
	if len(tasks) != 0 {
		t.Fatalf("expected no tasks, got %d", len(tasks))
	}
}
