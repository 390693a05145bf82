package csvio

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"exam-scheduler/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exampleCalendar() *model.Calendar {
	start := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)

	session := model.NewExamSession(model.NewCourse("CS101", "Intro to CS", 4), start, 120)
	session.AddRoomAssignment(model.NewExamRoomAssignment(
		model.NewClassroom("A101", 2),
		[]*model.Student{model.NewStudent("1001", "Alice"), model.NewStudent("1002", "Bob")},
	))
	session.AddRoomAssignment(model.NewExamRoomAssignment(
		model.NewClassroom("A102", 2),
		[]*model.Student{model.NewStudent("1003", "Carol")},
	))

	cal := model.NewCalendar()
	cal.Add(session)
	return cal
}

func TestScheduleString(t *testing.T) {
	out, err := ScheduleString(exampleCalendar())

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3, "header plus one row per room assignment")
	assert.Equal(t, "courseCode,startDateTime,durationMinutes,roomId,studentIds", lines[0])
	assert.Equal(t, "CS101,2026-01-05T09:00:00Z,120,A101,1001;1002", lines[1])
	assert.Equal(t, "CS101,2026-01-05T09:00:00Z,120,A102,1003", lines[2])
}

func TestExportSchedule(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.csv")

	require.NoError(t, ExportSchedule(exampleCalendar(), path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "CS101,2026-01-05T09:00:00Z,120,A101,1001;1002")
}

func TestConflictsString(t *testing.T) {
	cal := exampleCalendar()
	session := cal.Sessions()[0]
	conflicts := []model.Conflict{
		{
			Type:        model.RoomCapacity,
			Sessions:    []*model.ExamSession{session},
			Description: "Room capacity exceeded: A101 (assigned=12, capacity=10)",
		},
		{
			Type:        model.StudentCollision,
			Sessions:    []*model.ExamSession{session, session},
			Description: "Student collision: 1001",
		},
	}

	out, err := ConflictsString(conflicts)

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "type,courses,description", lines[0])
	assert.Contains(t, lines[1], "ROOM_CAPACITY,CS101,")
	assert.Contains(t, lines[2], "STUDENT_COLLISION,CS101;CS101,")
}

func TestScheduleStringEmptyCalendar(t *testing.T) {
	out, err := ScheduleString(model.NewCalendar())

	require.NoError(t, err)
	assert.Equal(t, "courseCode,startDateTime,durationMinutes,roomId,studentIds", strings.TrimSpace(out))
}
