package model

import (
	"time"

	"github.com/samber/lo"
)

// ExamRoomAssignment pairs a room with the subset of a session's students
// seated there. Whether the students actually fit is a soft invariant: the
// detector reports violations, construction does not prevent them.
type ExamRoomAssignment struct {
	Room     *Classroom
	Students []*Student
}

func NewExamRoomAssignment(room *Classroom, students []*Student) *ExamRoomAssignment {
	return &ExamRoomAssignment{Room: room, Students: students}
}

func (a *ExamRoomAssignment) StudentCount() int {
	return len(a.Students)
}

func (a *ExamRoomAssignment) OverCapacity() bool {
	if a.Room == nil {
		return false
	}
	return a.StudentCount() > a.Room.Capacity
}

// ExamSession is one course's single exam occurrence: a start, a duration
// and the rooms used to seat all enrolled students.
type ExamSession struct {
	Course          *Course
	Start           time.Time
	DurationMinutes int
	RoomAssignments []*ExamRoomAssignment
}

func NewExamSession(course *Course, start time.Time, durationMinutes int) *ExamSession {
	return &ExamSession{Course: course, Start: start, DurationMinutes: durationMinutes}
}

func (s *ExamSession) End() time.Time {
	return s.Start.Add(time.Duration(s.DurationMinutes) * time.Minute)
}

func (s *ExamSession) AddRoomAssignment(a *ExamRoomAssignment) {
	if a == nil {
		return
	}
	s.RoomAssignments = append(s.RoomAssignments, a)
}

// AllStudents returns the deduplicated union of every assignment's students,
// in seating order.
func (s *ExamSession) AllStudents() []*Student {
	students := make([]*Student, 0)
	for _, a := range s.RoomAssignments {
		if a == nil {
			continue
		}
		for _, st := range a.Students {
			if st != nil {
				students = append(students, st)
			}
		}
	}
	return lo.UniqBy(students, func(st *Student) string { return st.ID })
}

func (s *ExamSession) TotalStudentCount() int {
	return len(s.AllStudents())
}

// Rooms returns the distinct rooms used by this session, in assignment order.
func (s *ExamSession) Rooms() []*Classroom {
	rooms := make([]*Classroom, 0, len(s.RoomAssignments))
	for _, a := range s.RoomAssignments {
		if a != nil && a.Room != nil {
			rooms = append(rooms, a.Room)
		}
	}
	return lo.UniqBy(rooms, func(r *Classroom) string { return r.ID })
}

func (s *ExamSession) UsesRoom(room *Classroom) bool {
	if room == nil {
		return false
	}
	return lo.ContainsBy(s.Rooms(), func(r *Classroom) bool { return r.ID == room.ID })
}

func (s *ExamSession) HasStudent(st *Student) bool {
	if st == nil {
		return false
	}
	return lo.ContainsBy(s.AllStudents(), func(e *Student) bool { return e.ID == st.ID })
}

func (s *ExamSession) CourseCode() string {
	if s.Course == nil {
		return ""
	}
	return s.Course.Code
}
