package model

import "github.com/samber/lo"

// Course is identified by its code. Enrollment is kept in insertion order
// with duplicates (by student ID) suppressed; the course->students direction
// is the one scheduling reads, the student side is maintained as a back
// reference.
type Course struct {
	Code   string
	Name   string
	Credit int

	students []*Student
}

func NewCourse(code, name string, credit int) *Course {
	return &Course{Code: code, Name: name, Credit: credit}
}

// Students returns the enrolled students in enrollment order.
func (c *Course) Students() []*Student {
	out := make([]*Student, len(c.students))
	copy(out, c.students)
	return out
}

func (c *Course) StudentCount() int {
	return len(c.students)
}

// AddStudent enrolls a student, keeping both sides of the relationship in
// sync. Enrolling the same student twice is a no-op.
func (c *Course) AddStudent(s *Student) {
	if s == nil {
		return
	}
	if lo.ContainsBy(c.students, func(e *Student) bool { return e.ID == s.ID }) {
		return
	}
	c.students = append(c.students, s)
	s.enroll(c)
}

func (c *Course) RemoveStudent(s *Student) {
	if s == nil {
		return
	}
	c.students = lo.Reject(c.students, func(e *Student, _ int) bool {
		return e.ID == s.ID
	})
	s.drop(c)
}
