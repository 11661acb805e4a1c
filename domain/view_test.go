package domain

import (
	"testing"
	"time"
)

func day(n int) time.Time {
	return time.Date(2025, 6, n, 0, 0, 0, 0, time.UTC)
}

func boardTask(id, title, owner string, status Status, due time.Time, now time.Time) Task {
	task := Task{
		ID:      id,
		Title:   title,
		Owner:   owner,
		Status:  status,
		DueDate: due,
	}
	task.Refresh(now)
	return task
}

func TestVisibleTasks_NoFiltersReturnsAllSorted(t *testing.T) {
	now := day(4)
	// A and C are overdue and open, B is due later.
	a := boardTask("a", "Confirmar palestrantes", "Dr. Silva", StatusTodo, day(5), now)
	b := boardTask("b", "Enviar convites", "Ana", StatusDone, day(3), now)
	c := boardTask("c", "Coffee break", "Carlos", StatusInProgress, day(1), now)

	got := VisibleTasks([]Task{a, b, c}, Filter{})
	if len(got) != 3 {
		t.Fatalf("expected all 3 tasks, got %d", len(got))
	}
	// Urgent group first (c), then non-urgent ascending by due date (b, a).
	wantOrder := []string{"c", "b", "a"}
	for i, id := range wantOrder {
		if got[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, got[i].ID)
		}
	}
}

func TestVisibleTasks_UrgentGroupOrdering(t *testing.T) {
	// Scenario from the board: A(due day 5, urgent), B(due day 3, not
	// urgent), C(due day 1, urgent) must display as C, A, B.
	now := day(6)
	a := boardTask("A", "a", "", StatusTodo, day(5), now)
	b := boardTask("B", "b", "", StatusDone, day(3), now)
	c := boardTask("C", "c", "", StatusTodo, day(1), now)

	got := VisibleTasks([]Task{a, b, c}, Filter{})
	wantOrder := []string{"C", "A", "B"}
	for i, id := range wantOrder {
		if got[i].ID != id {
			t.Fatalf("expected order C, A, B; got %s at position %d", got[i].ID, i)
		}
	}
}

func TestVisibleTasks_SearchIsCaseInsensitive(t *testing.T) {
	now := day(1)
	tasks := []Task{
		boardTask("1", "Imprimir lista de presença", "Ana", StatusTodo, day(2), now),
		boardTask("2", "Testar equipamentos", "Carlos", StatusTodo, day(2), now),
	}
	tasks[1].Description = "Verificar projetores e LISTA de som"

	got := VisibleTasks(tasks, Filter{Search: "lista"})
	if len(got) != 2 {
		t.Fatalf("search should match title and description case-insensitively, got %d tasks", len(got))
	}

	got = VisibleTasks(tasks, Filter{Search: "IMPRIMIR"})
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("expected only task 1, got %d tasks", len(got))
	}
}

func TestVisibleTasks_OwnerFilterIsExact(t *testing.T) {
	now := day(1)
	tasks := []Task{
		boardTask("1", "x", "Ana", StatusTodo, day(2), now),
		boardTask("2", "y", "ana", StatusTodo, day(2), now),
	}

	got := VisibleTasks(tasks, Filter{Owner: "Ana"})
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("owner filter must be case-sensitive, got %d tasks", len(got))
	}
}

func TestVisibleTasks_FilterOrderIndependence(t *testing.T) {
	now := day(10)
	tasks := []Task{
		boardTask("1", "Banner do evento", "Ana", StatusTodo, day(2), now),
		boardTask("2", "Banner reserva", "Ana", StatusDone, day(3), now),
		boardTask("3", "Banner extra", "Carlos", StatusTodo, day(4), now),
		boardTask("4", "Lista de presença", "Ana", StatusTodo, day(5), now),
	}

	combined := VisibleTasks(tasks, Filter{Search: "banner", Owner: "Ana", Status: StatusTodo})

	// Applying the dimensions one at a time must select the same set.
	step := VisibleTasks(tasks, Filter{Status: StatusTodo})
	step = VisibleTasks(step, Filter{Owner: "Ana"})
	step = VisibleTasks(step, Filter{Search: "banner"})

	if len(combined) != 1 || len(step) != 1 || combined[0].ID != step[0].ID || combined[0].ID != "1" {
		t.Fatalf("filter dimensions are not order independent: combined=%v stepwise=%v", ids(combined), ids(step))
	}
}

func TestVisibleTasks_EqualDueDatesTieBreakByID(t *testing.T) {
	now := day(1)
	tasks := []Task{
		boardTask("z", "z", "", StatusTodo, day(3), now),
		boardTask("a", "a", "", StatusTodo, day(3), now),
		boardTask("m", "m", "", StatusTodo, day(3), now),
	}

	got := VisibleTasks(tasks, Filter{})
	wantOrder := []string{"a", "m", "z"}
	for i, id := range wantOrder {
		if got[i].ID != id {
			t.Fatalf("expected id tie-break order %v, got %v", wantOrder, ids(got))
		}
	}
}

func TestVisibleTasks_DoesNotMutateInput(t *testing.T) {
	now := day(4)
	tasks := []Task{
		boardTask("1", "x", "", StatusTodo, day(3), now),
		boardTask("2", "y", "", StatusTodo, day(1), now),
	}

	_ = VisibleTasks(tasks, Filter{})
	if tasks[0].ID != "1" || tasks[1].ID != "2" {
		t.Error("input slice order must be preserved")
	}
}

func TestOwners_UniqueInFirstAppearanceOrder(t *testing.T) {
	now := day(1)
	tasks := []Task{
		boardTask("1", "a", "Dr. Silva", StatusTodo, day(2), now),
		boardTask("2", "b", "Ana", StatusTodo, day(2), now),
		boardTask("3", "c", "Dr. Silva", StatusTodo, day(2), now),
		boardTask("4", "d", "", StatusTodo, day(2), now),
		boardTask("5", "e", "Carlos", StatusTodo, day(2), now),
	}

	got := Owners(tasks)
	want := []string{"Dr. Silva", "Ana", "Carlos"}
	if len(got) != len(want) {
		t.Fatalf("expected %d owners, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func ids(tasks []Task) []string {
	out := make([]string, len(tasks))
	for i, task := range tasks {
		out[i] = task.ID
	}
	return out
}
