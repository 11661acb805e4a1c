package domain

import "time"

// Urgent reports whether a task is overdue and still open.
//
// The comparison is strict: a task due exactly at the reference instant is
// not urgent. Completed tasks are never urgent, no matter how old their due
// date is.
func Urgent(dueDate time.Time, status Status, now time.Time) bool {
	return dueDate.Before(now) && status != StatusDone
}
