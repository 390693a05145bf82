package csvio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadStudents(t *testing.T) {
	path := writeFile(t, "students.csv", "studentId,name\n1001,Alice\n1002,Bob\n")

	students, err := LoadStudents(path, ',')

	require.NoError(t, err)
	require.Len(t, students, 2)
	assert.Equal(t, "1001", students[0].ID, "numeric-looking ids stay strings")
	assert.Equal(t, "Alice", students[0].Name)
	assert.Equal(t, "1002", students[1].ID)
}

func TestLoadCourses(t *testing.T) {
	path := writeFile(t, "courses.csv", "courseCode,name,credit\nCS101,Intro to CS,4\nMATH201,Calculus,6\n")

	courses, err := LoadCourses(path, ',')

	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, "CS101", courses[0].Code)
	assert.Equal(t, "Intro to CS", courses[0].Name)
	assert.Equal(t, 4, courses[0].Credit)
	assert.Equal(t, 6, courses[1].Credit)
	assert.Zero(t, courses[0].StudentCount(), "enrollment comes from attendance")
}

func TestLoadClassroomsWithSemicolonDelimiter(t *testing.T) {
	path := writeFile(t, "classrooms.csv", "classroomId;capacity\nA101;40\nM116;25\n")

	classrooms, err := LoadClassrooms(path, ';')

	require.NoError(t, err)
	require.Len(t, classrooms, 2)
	assert.Equal(t, "A101", classrooms[0].ID)
	assert.Equal(t, 40, classrooms[0].Capacity)
}

func TestLoadAttendanceLinksEnrollments(t *testing.T) {
	students, err := LoadStudents(writeFile(t, "students.csv",
		"studentId,name\n1001,Alice\n1002,Bob\n"), ',')
	require.NoError(t, err)
	courses, err := LoadCourses(writeFile(t, "courses.csv",
		"courseCode,name,credit\nCS101,Intro to CS,4\n"), ',')
	require.NoError(t, err)

	path := writeFile(t, "attendance.csv",
		"studentId,courseCode\n1001,CS101\n1002,CS101\n1001,CS101\n")
	require.NoError(t, LoadAttendance(path, ',', courses, students))

	assert.Equal(t, 2, courses[0].StudentCount(), "duplicate pair suppressed")
	assert.Equal(t, "1001", courses[0].Students()[0].ID)
}

func TestLoadAttendanceRejectsUnknownReferences(t *testing.T) {
	students, err := LoadStudents(writeFile(t, "students.csv", "studentId,name\n1001,Alice\n"), ',')
	require.NoError(t, err)
	courses, err := LoadCourses(writeFile(t, "courses.csv", "courseCode,name,credit\nCS101,Intro,4\n"), ',')
	require.NoError(t, err)

	badCourse := writeFile(t, "attendance.csv", "studentId,courseCode\n1001,NOPE\n")
	assert.ErrorContains(t, LoadAttendance(badCourse, ',', courses, students), "unknown course code")

	badStudent := writeFile(t, "attendance2.csv", "studentId,courseCode\n9999,CS101\n")
	assert.ErrorContains(t, LoadAttendance(badStudent, ',', courses, students), "unknown student id")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := LoadStudents(filepath.Join(t.TempDir(), "absent.csv"), ',')
	assert.Error(t, err)
}
