package model

import "github.com/samber/lo"

// Student is identified by its ID; two students with the same ID are the
// same student regardless of display name.
type Student struct {
	ID   string
	Name string

	enrolledCourses []*Course
}

func NewStudent(id, name string) *Student {
	return &Student{ID: id, Name: name}
}

// EnrolledCourses returns the courses this student is enrolled in, in
// enrollment order.
func (s *Student) EnrolledCourses() []*Course {
	out := make([]*Course, len(s.enrolledCourses))
	copy(out, s.enrolledCourses)
	return out
}

func (s *Student) enroll(course *Course) {
	if course == nil {
		return
	}
	if !lo.ContainsBy(s.enrolledCourses, func(c *Course) bool { return c.Code == course.Code }) {
		s.enrolledCourses = append(s.enrolledCourses, course)
	}
}

func (s *Student) drop(course *Course) {
	if course == nil {
		return
	}
	s.enrolledCourses = lo.Reject(s.enrolledCourses, func(c *Course, _ int) bool {
		return c.Code == course.Code
	})
}
