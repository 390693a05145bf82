// Package scheduler holds the greedy placement engine and the standalone
// conflict detector. The engine is a deterministic earliest-fit constructor:
// largest courses first, no backtracking, no repair phase. The detector
// re-checks a finished calendar independently so it stays usable against
// schedules built or edited elsewhere.
package scheduler

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"exam-scheduler/pkg/model"

	"github.com/samber/lo"
)

// maxSearchDays caps the placement horizon when no exam week end date is
// configured, guaranteeing termination under constant rejection.
const maxSearchDays = 90

// Engine assigns exams to calendar slots and rooms. It carries no state
// between runs; every Generate call is a fresh computation over its inputs.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// Generate places every course with at least one enrolled student into a new
// calendar. It fails if courses or classrooms is nil, if the exam week range
// is inverted, or if any course cannot be placed within the search horizon;
// no partial calendar is returned on failure.
func (e *Engine) Generate(courses []*model.Course, classrooms []*model.Classroom, constraints *model.Constraints) (*model.Calendar, error) {
	if courses == nil || classrooms == nil {
		return nil, errors.New("courses and classrooms must not be nil")
	}
	if constraints == nil {
		constraints = model.NewConstraints()
	}

	remaining := lo.Filter(courses, func(c *model.Course, _ int) bool {
		return c != nil && c.StudentCount() > 0
	})

	// Larger courses first so small ones cannot starve them of capacity;
	// course code breaks ties for reproducibility.
	slices.SortFunc(remaining, func(a, b *model.Course) int {
		if d := b.StudentCount() - a.StudentCount(); d != 0 {
			return d
		}
		return strings.Compare(a.Code, b.Code)
	})

	orderedRooms := orderRooms(classrooms)

	startDate := constraints.ExamWeekStartDate()
	if startDate.IsZero() {
		now := time.Now()
		startDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	}

	endDate := constraints.ExamWeekEndDate()
	if !endDate.IsZero() && endDate.Before(startDate) {
		return nil, errors.New("examWeekEndDate cannot be before examWeekStartDate")
	}

	maxDaysToTry := maxSearchDays
	if !endDate.IsZero() {
		span := int(endDate.Sub(startDate).Hours()/24) + 1
		if span < maxDaysToTry {
			maxDaysToTry = span
		}
	}

	turnover := constraints.RoomTurnoverMinutes()
	calendar := model.NewCalendar()

	// Course-by-course earliest fit: each course restarts scanning from the
	// beginning of the horizon, and a placed course is never revisited.
	for _, course := range remaining {
		duration := estimateDurationMinutes(course, constraints)
		enrolled := course.Students()

		placed := false
		for dayOffset := 0; dayOffset < maxDaysToTry && !placed; dayOffset++ {
			day := startDate.AddDate(0, 0, dayOffset)
			if !endDate.IsZero() && day.After(endDate) {
				break
			}
			if !constraints.IsDayAllowed(day.Weekday()) {
				continue
			}

			for _, slotStart := range candidateStartsForDate(day, constraints) {
				if !fitsTimeRanges(slotStart, duration, constraints) {
					continue
				}

				free := availableRoomsAt(calendar, orderedRooms, slotStart, duration, turnover)
				if len(free) == 0 {
					continue
				}

				candidate := buildSession(course, slotStart, duration, enrolled, free)
				if candidate == nil {
					continue
				}

				if conflictsWithExisting(calendar, candidate, turnover) {
					continue
				}
				if violatesStudentConstraints(calendar, candidate, constraints) {
					continue
				}

				calendar.Add(candidate)
				placed = true
				break
			}
		}

		if !placed {
			return nil, fmt.Errorf("could not schedule course: %s", course.Code)
		}
	}

	return calendar, nil
}

// orderRooms sorts classrooms by block letters, then room number, then raw
// ID, yielding a stable human-readable order (A101, A102, ..., M101, M116).
func orderRooms(classrooms []*model.Classroom) []*model.Classroom {
	ordered := lo.Filter(classrooms, func(r *model.Classroom, _ int) bool { return r != nil })
	slices.SortFunc(ordered, func(a, b *model.Classroom) int {
		if d := strings.Compare(roomBlock(a.ID), roomBlock(b.ID)); d != 0 {
			return d
		}
		if d := roomNumber(a.ID) - roomNumber(b.ID); d != 0 {
			return d
		}
		return strings.Compare(a.ID, b.ID)
	})
	return ordered
}

func roomBlock(id string) string {
	var sb strings.Builder
	for _, r := range id {
		if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func roomNumber(id string) int {
	var sb strings.Builder
	for _, r := range id {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	if sb.Len() == 0 {
		return math.MaxInt
	}
	n, err := strconv.Atoi(sb.String())
	if err != nil {
		return math.MaxInt
	}
	return n
}

// estimateDurationMinutes computes the exam duration: base plus credit times
// the coefficient, rounded up to the configured multiple, floored at the
// minimum duration. Unknown or non-positive credit falls back to the base.
func estimateDurationMinutes(c *model.Course, constraints *model.Constraints) int {
	base := constraints.BaseExamDurationMinutes()
	coefficient := constraints.CreditDurationCoefficientMinutes()

	raw := base
	if c.Credit > 0 {
		raw = base + c.Credit*coefficient
	}

	if roundTo := constraints.DurationRoundingMinutes(); roundTo > 1 {
		raw = (raw + roundTo - 1) / roundTo * roundTo
	}

	if minDuration := constraints.MinExamDurationMinutes(); raw < minDuration {
		raw = minDuration
	}
	return raw
}

// candidateStartsForDate enumerates candidate start times: each allowed
// range stepped from its start to its end inclusive. Slot generation ignores
// exam durations; duration fit is checked afterwards per candidate.
func candidateStartsForDate(date time.Time, constraints *model.Constraints) []time.Time {
	ranges := constraints.AllowedTimeRanges()
	if len(ranges) == 0 {
		ranges = []model.TimeRange{{Start: 9 * 60, End: 17 * 60}}
	}

	step := constraints.SlotStepMinutes()
	out := make([]time.Time, 0)
	for _, tr := range ranges {
		for t := tr.Start; t <= tr.End; t += step {
			out = append(out, date.Add(time.Duration(t)*time.Minute))
		}
	}
	return out
}

// fitsTimeRanges reports whether [start, start+duration) lies entirely
// inside at least one allowed window. An empty window list allows anything.
func fitsTimeRanges(start time.Time, durationMinutes int, constraints *model.Constraints) bool {
	ranges := constraints.AllowedTimeRanges()
	if len(ranges) == 0 {
		return true
	}

	s := minuteOfDay(start)
	e := s + durationMinutes
	return lo.SomeBy(ranges, func(tr model.TimeRange) bool {
		return s >= tr.Start && e <= tr.End
	})
}

// availableRoomsAt returns the rooms free at the given slot, preserving the
// sorted room order. A room is busy if any existing session uses it with an
// interval overlapping [start, end+turnover).
func availableRoomsAt(calendar *model.Calendar, rooms []*model.Classroom, start time.Time, durationMinutes, turnoverMinutes int) []*model.Classroom {
	end := start.Add(time.Duration(durationMinutes) * time.Minute)
	endWithTurnover := end.Add(time.Duration(turnoverMinutes) * time.Minute)

	sessions := calendar.Sessions()
	free := make([]*model.Classroom, 0, len(rooms))
	for _, room := range rooms {
		busy := lo.SomeBy(sessions, func(existing *model.ExamSession) bool {
			if !existing.UsesRoom(room) {
				return false
			}
			existingEnd := existing.End().Add(time.Duration(turnoverMinutes) * time.Minute)
			return start.Before(existingEnd) && existing.Start.Before(endWithTurnover)
		})
		if !busy {
			free = append(free, room)
		}
	}
	return free
}

// buildSession seats the enrolled students into the free rooms greedily, in
// room order, skipping unusable rooms. Returns nil if the slot's capacity
// cannot seat everyone.
func buildSession(course *model.Course, start time.Time, durationMinutes int, enrolled []*model.Student, rooms []*model.Classroom) *model.ExamSession {
	session := model.NewExamSession(course, start, durationMinutes)

	remaining := make([]*model.Student, len(enrolled))
	copy(remaining, enrolled)

	for _, room := range rooms {
		if len(remaining) == 0 {
			break
		}
		if room.Capacity <= 0 {
			continue
		}

		take := min(room.Capacity, len(remaining))
		chunk := make([]*model.Student, take)
		copy(chunk, remaining[:take])
		remaining = remaining[take:]

		session.AddRoomAssignment(model.NewExamRoomAssignment(room, chunk))
	}

	if len(remaining) > 0 {
		return nil
	}
	return session
}

// conflictsWithExisting checks the candidate against every placed session:
// shared rooms are compared with the turnover buffer on both intervals,
// shared students with the raw intervals only.
func conflictsWithExisting(calendar *model.Calendar, candidate *model.ExamSession, turnoverMinutes int) bool {
	start := candidate.Start
	end := candidate.End()
	buffer := time.Duration(turnoverMinutes) * time.Minute

	candidateRooms := lo.SliceToMap(candidate.Rooms(), func(r *model.Classroom) (string, bool) {
		return r.ID, true
	})
	candidateStudents := lo.SliceToMap(candidate.AllStudents(), func(s *model.Student) (string, bool) {
		return s.ID, true
	})

	for _, existing := range calendar.Sessions() {
		existingStart := existing.Start
		existingEnd := existing.End()

		sharesRoom := lo.SomeBy(existing.Rooms(), func(r *model.Classroom) bool {
			return candidateRooms[r.ID]
		})
		if sharesRoom {
			overlapWithBuffer := start.Before(existingEnd.Add(buffer)) && existingStart.Before(end.Add(buffer))
			if overlapWithBuffer {
				return true
			}
		}

		overlap := start.Before(existingEnd) && existingStart.Before(end)
		if overlap {
			sharesStudent := lo.SomeBy(existing.AllStudents(), func(s *model.Student) bool {
				return candidateStudents[s.ID]
			})
			if sharesStudent {
				return true
			}
		}
	}
	return false
}

// violatesStudentConstraints applies the per-student rules against each
// student's already placed sessions: the daily cap, a direct overlap safety
// net, and the minimum gap between consecutive exams in either order.
func violatesStudentConstraints(calendar *model.Calendar, candidate *model.ExamSession, constraints *model.Constraints) bool {
	minGap := constraints.MinMinutesBetweenExams()
	maxPerDay := constraints.MaxExamsPerDay()

	start := candidate.Start
	end := candidate.End()

	perStudent := indexSessionsByStudent(calendar)

	for _, st := range candidate.AllStudents() {
		already := perStudent[st.ID]

		dayCount := lo.CountBy(already, func(s *model.ExamSession) bool {
			return model.SameDate(s.Start, start)
		})
		if dayCount >= maxPerDay {
			return true
		}

		for _, existing := range already {
			existingEnd := existing.End()

			if start.Before(existingEnd) && existing.Start.Before(end) {
				return true
			}

			gap1 := int(start.Sub(existingEnd) / time.Minute)
			gap2 := int(existing.Start.Sub(end) / time.Minute)
			gap := max(gap1, gap2)
			if gap >= 0 && gap < minGap {
				return true
			}
		}
	}
	return false
}

func indexSessionsByStudent(calendar *model.Calendar) map[string][]*model.ExamSession {
	index := make(map[string][]*model.ExamSession)
	for _, s := range calendar.Sessions() {
		for _, st := range s.AllStudents() {
			index[st.ID] = append(index[st.ID], s)
		}
	}
	return index
}

func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
