package csvio

import (
	"fmt"
	"os"
	"strings"
	"time"

	"exam-scheduler/pkg/model"

	"github.com/gocarina/gocsv"
	"github.com/samber/lo"
)

// ScheduleRow is one exported schedule line: one row per room assignment,
// session order preserved.
type ScheduleRow struct {
	CourseCode      string `csv:"courseCode"`
	StartDateTime   string `csv:"startDateTime"`
	DurationMinutes int    `csv:"durationMinutes"`
	RoomID          string `csv:"roomId"`
	StudentIDs      string `csv:"studentIds"`
}

// ConflictRow is one exported detector finding.
type ConflictRow struct {
	Type        string `csv:"type"`
	Courses     string `csv:"courses"`
	Description string `csv:"description"`
}

// ExportSchedule formats the calendar into schedule rows and writes them to
// the CSV file at the given path.
func ExportSchedule(calendar *model.Calendar, path string) error {
	rows := formatSchedule(calendar)

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer out.Close()

	if err := gocsv.MarshalFile(&rows, out); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ScheduleString renders the schedule rows as a CSV string.
func ScheduleString(calendar *model.Calendar) (string, error) {
	rows := formatSchedule(calendar)
	return gocsv.MarshalString(&rows)
}

// ExportConflicts writes detector findings to the CSV file at the given path.
func ExportConflicts(conflicts []model.Conflict, path string) error {
	rows := formatConflicts(conflicts)

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer out.Close()

	if err := gocsv.MarshalFile(&rows, out); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ConflictsString renders the detector findings as a CSV string.
func ConflictsString(conflicts []model.Conflict) (string, error) {
	rows := formatConflicts(conflicts)
	return gocsv.MarshalString(&rows)
}

func formatSchedule(calendar *model.Calendar) []*ScheduleRow {
	rows := make([]*ScheduleRow, 0)
	if calendar == nil {
		return rows
	}

	for _, session := range calendar.Sessions() {
		for _, assignment := range session.RoomAssignments {
			if assignment == nil || assignment.Room == nil {
				continue
			}

			ids := lo.Map(assignment.Students, func(s *model.Student, _ int) string { return s.ID })
			rows = append(rows, &ScheduleRow{
				CourseCode:      session.CourseCode(),
				StartDateTime:   session.Start.Format(time.RFC3339),
				DurationMinutes: session.DurationMinutes,
				RoomID:          assignment.Room.ID,
				StudentIDs:      strings.Join(ids, ";"),
			})
		}
	}
	return rows
}

func formatConflicts(conflicts []model.Conflict) []*ConflictRow {
	rows := make([]*ConflictRow, 0, len(conflicts))
	for _, c := range conflicts {
		codes := lo.Map(c.Sessions, func(s *model.ExamSession, _ int) string { return s.CourseCode() })
		rows = append(rows, &ConflictRow{
			Type:        c.Type.String(),
			Courses:     strings.Join(codes, ";"),
			Description: c.Description,
		})
	}
	return rows
}
