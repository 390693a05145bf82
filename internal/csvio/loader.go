// Package csvio is the tabular import/export boundary. Column names map to
// typed records through gocsv tags; the core packages never see CSV.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"exam-scheduler/pkg/model"

	"github.com/gocarina/gocsv"
)

// StudentRecord mirrors one row of students.csv.
type StudentRecord struct {
	ID   string `csv:"studentId"`
	Name string `csv:"name"`
}

// CourseRecord mirrors one row of courses.csv.
type CourseRecord struct {
	Code   string `csv:"courseCode"`
	Name   string `csv:"name"`
	Credit int    `csv:"credit"`
}

// ClassroomRecord mirrors one row of classrooms.csv. Room IDs stay strings
// even when they look numeric.
type ClassroomRecord struct {
	ID       string `csv:"classroomId"`
	Capacity int    `csv:"capacity"`
}

// AttendanceRecord mirrors one row of attendance.csv, linking a student to a
// course.
type AttendanceRecord struct {
	StudentID  string `csv:"studentId"`
	CourseCode string `csv:"courseCode"`
}

func setDelimiter(delim rune) {
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.Comma = delim
		return r
	})
}

func unmarshalFile[T any](path string, delim rune) ([]*T, error) {
	setDelimiter(delim)

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	records := []*T{}
	if err := gocsv.UnmarshalFile(file, &records); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return records, nil
}

// LoadStudents reads and parses the given csv file for student data.
func LoadStudents(path string, delim rune) ([]*model.Student, error) {
	records, err := unmarshalFile[StudentRecord](path, delim)
	if err != nil {
		return nil, err
	}

	students := make([]*model.Student, 0, len(records))
	for _, r := range records {
		students = append(students, model.NewStudent(r.ID, r.Name))
	}
	return students, nil
}

// LoadCourses reads and parses the given csv file for course data.
// Enrollment comes separately from the attendance file.
func LoadCourses(path string, delim rune) ([]*model.Course, error) {
	records, err := unmarshalFile[CourseRecord](path, delim)
	if err != nil {
		return nil, err
	}

	courses := make([]*model.Course, 0, len(records))
	for _, r := range records {
		courses = append(courses, model.NewCourse(r.Code, r.Name, r.Credit))
	}
	return courses, nil
}

// LoadClassrooms reads and parses the given csv file for classroom data.
func LoadClassrooms(path string, delim rune) ([]*model.Classroom, error) {
	records, err := unmarshalFile[ClassroomRecord](path, delim)
	if err != nil {
		return nil, err
	}

	classrooms := make([]*model.Classroom, 0, len(records))
	for _, r := range records {
		classrooms = append(classrooms, model.NewClassroom(r.ID, r.Capacity))
	}
	return classrooms, nil
}

// LoadAttendance reads the student/course pairs and links enrollments onto
// the given courses. Rows referencing an unknown student or course fail the
// load; duplicate pairs are suppressed by Course.AddStudent.
func LoadAttendance(path string, delim rune, courses []*model.Course, students []*model.Student) error {
	records, err := unmarshalFile[AttendanceRecord](path, delim)
	if err != nil {
		return err
	}

	courseByCode := make(map[string]*model.Course, len(courses))
	for _, c := range courses {
		courseByCode[c.Code] = c
	}
	studentByID := make(map[string]*model.Student, len(students))
	for _, s := range students {
		studentByID[s.ID] = s
	}

	for _, r := range records {
		course, ok := courseByCode[r.CourseCode]
		if !ok {
			return fmt.Errorf("%s: unknown course code %q", path, r.CourseCode)
		}
		student, ok := studentByID[r.StudentID]
		if !ok {
			return fmt.Errorf("%s: unknown student id %q", path, r.StudentID)
		}
		course.AddStudent(student)
	}
	return nil
}
