package model

// Todo is the domain model for a single to-do entry.
// ID and Text never change after creation; only Completed is mutable.
type Todo struct {
	ID        string
	Text      string
	Completed bool
}
