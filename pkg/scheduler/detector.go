package scheduler

import (
	"fmt"
	"time"

	"exam-scheduler/pkg/model"

	"github.com/samber/lo"
)

// sessionInfo is the enriched per-session view the detector scans: resolved
// interval, distinct rooms and the deduplicated student set.
type sessionInfo struct {
	session  *model.ExamSession
	start    time.Time
	end      time.Time
	rooms    []*model.Classroom
	students []*model.Student
}

// DetectConflicts checks a finished calendar for capacity, room-overlap and
// student-collision violations. It never mutates its input and never fails:
// a nil or empty calendar yields an empty list, and an empty list means "no
// violations found". Findings are ordered capacity first, then room
// overlaps, then student collisions, each pass following session list order.
func DetectConflicts(calendar *model.Calendar) []model.Conflict {
	if calendar == nil {
		return []model.Conflict{}
	}

	info := lo.Map(calendar.Sessions(), func(s *model.ExamSession, _ int) sessionInfo {
		return sessionInfo{
			session:  s,
			start:    s.Start,
			end:      s.End(),
			rooms:    s.Rooms(),
			students: s.AllStudents(),
		}
	})

	out := make([]model.Conflict, 0)
	out = append(out, detectCapacityConflicts(info)...)
	out = append(out, detectRoomOverlaps(info)...)
	out = append(out, detectStudentCollisions(info)...)
	return out
}

// HasConflicts reports whether the calendar has any violation.
func HasConflicts(calendar *model.Calendar) bool {
	return len(DetectConflicts(calendar)) > 0
}

func detectCapacityConflicts(sessions []sessionInfo) []model.Conflict {
	out := make([]model.Conflict, 0)
	for _, si := range sessions {
		for _, assignment := range si.session.RoomAssignments {
			if assignment == nil || assignment.Room == nil {
				continue
			}

			assigned := assignment.StudentCount()
			capacity := assignment.Room.Capacity
			if assigned <= capacity {
				continue
			}

			out = append(out, model.Conflict{
				Type:     model.RoomCapacity,
				Sessions: []*model.ExamSession{si.session},
				Description: fmt.Sprintf("Room capacity exceeded: %s (assigned=%d, capacity=%d)",
					assignment.Room.ID, assigned, capacity),
			})
		}
	}
	return out
}

func detectRoomOverlaps(sessions []sessionInfo) []model.Conflict {
	out := make([]model.Conflict, 0)
	for i := 0; i < len(sessions); i++ {
		for j := i + 1; j < len(sessions); j++ {
			a, b := sessions[i], sessions[j]
			if !intervalsOverlap(a, b) {
				continue
			}

			bRooms := lo.SliceToMap(b.rooms, func(r *model.Classroom) (string, bool) { return r.ID, true })
			common := lo.Filter(a.rooms, func(r *model.Classroom, _ int) bool { return bRooms[r.ID] })

			for _, room := range common {
				out = append(out, model.Conflict{
					Type:        model.RoomOverlap,
					Sessions:    []*model.ExamSession{a.session, b.session},
					Description: fmt.Sprintf("Room overlap: %s", room.ID),
				})
			}
		}
	}
	return out
}

func detectStudentCollisions(sessions []sessionInfo) []model.Conflict {
	out := make([]model.Conflict, 0)
	for i := 0; i < len(sessions); i++ {
		for j := i + 1; j < len(sessions); j++ {
			a, b := sessions[i], sessions[j]
			if !intervalsOverlap(a, b) {
				continue
			}

			bStudents := lo.SliceToMap(b.students, func(s *model.Student) (string, bool) { return s.ID, true })
			common := lo.Filter(a.students, func(s *model.Student, _ int) bool { return bStudents[s.ID] })

			for _, st := range common {
				out = append(out, model.Conflict{
					Type:        model.StudentCollision,
					Sessions:    []*model.ExamSession{a.session, b.session},
					Description: fmt.Sprintf("Student collision: %s", st.ID),
				})
			}
		}
	}
	return out
}

func intervalsOverlap(a, b sessionInfo) bool {
	return a.start.Before(b.end) && b.start.Before(a.end)
}
