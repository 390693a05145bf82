package model

// Classroom is identified by its ID. A capacity of zero or less marks the
// room as unusable; the engine skips such rooms when seating students.
type Classroom struct {
	ID       string
	Capacity int
}

func NewClassroom(id string, capacity int) *Classroom {
	return &Classroom{ID: id, Capacity: capacity}
}
