package model

import "time"

// Calendar is an ordered collection of exam sessions. Insertion order is
// preserved; sessions are not sorted by time. The calendar enforces no
// business rules: those live in the engine and the detector.
type Calendar struct {
	sessions []*ExamSession
}

func NewCalendar() *Calendar {
	return &Calendar{}
}

// Sessions returns the sessions in insertion order. The returned slice is a
// copy; mutating it does not affect the calendar.
func (c *Calendar) Sessions() []*ExamSession {
	out := make([]*ExamSession, len(c.sessions))
	copy(out, c.sessions)
	return out
}

func (c *Calendar) Len() int {
	return len(c.sessions)
}

func (c *Calendar) Add(s *ExamSession) {
	if s == nil {
		return
	}
	c.sessions = append(c.sessions, s)
}

// Remove drops the first session equal (by pointer) to s. Removal is an
// external, rarely-used mutation; generation only ever appends.
func (c *Calendar) Remove(s *ExamSession) {
	for i, e := range c.sessions {
		if e == s {
			c.sessions = append(c.sessions[:i], c.sessions[i+1:]...)
			return
		}
	}
}

// SessionsOn returns the sessions starting on the given calendar date.
func (c *Calendar) SessionsOn(date time.Time) []*ExamSession {
	out := make([]*ExamSession, 0)
	for _, s := range c.sessions {
		if SameDate(s.Start, date) {
			out = append(out, s)
		}
	}
	return out
}

// SessionsInRoom returns the sessions with at least one assignment in the
// given room.
func (c *Calendar) SessionsInRoom(room *Classroom) []*ExamSession {
	out := make([]*ExamSession, 0)
	if room == nil {
		return out
	}
	for _, s := range c.sessions {
		if s.UsesRoom(room) {
			out = append(out, s)
		}
	}
	return out
}

// SessionsFor returns the sessions the given student attends.
func (c *Calendar) SessionsFor(st *Student) []*ExamSession {
	out := make([]*ExamSession, 0)
	if st == nil {
		return out
	}
	for _, s := range c.sessions {
		if s.HasStudent(st) {
			out = append(out, s)
		}
	}
	return out
}

// SameDate reports whether two instants fall on the same calendar date.
func SameDate(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
