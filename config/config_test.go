package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"exam-scheduler/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
data:
  students: res/students.csv
  courses: res/courses.csv
  attendance: res/attendance.csv
  classrooms: res/classrooms.csv
  delimiter: ";"
output:
  schedule: out/schedule.csv
  conflicts: out/conflicts.csv
constraints:
  minMinutesBetweenExams: 90
  maxExamsPerDay: 1
  allowedDays: [Monday, Wednesday]
  allowedTimeRanges: ["08:30-12:00", "13:00-18:00"]
  examWeekStartDate: "2026-01-05"
  examWeekEndDate: "2026-01-16"
  roomTurnoverMinutes: 15
  slotStepMinutes: 30
  baseExamDurationMinutes: 60
  creditDurationCoefficientMinutes: 20
  durationRoundingMinutes: 10
  minExamDurationMinutes: 90
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "res/students.csv", cfg.Data.Students)
	assert.Equal(t, ';', cfg.Data.DelimiterRune())
	assert.Equal(t, "out/schedule.csv", cfg.Output.Schedule)
	assert.Equal(t, "out/conflicts.csv", cfg.Output.Conflicts)

	constraints, err := cfg.BuildConstraints()
	require.NoError(t, err)

	assert.Equal(t, 90, constraints.MinMinutesBetweenExams())
	assert.Equal(t, 1, constraints.MaxExamsPerDay())
	assert.Equal(t, []time.Weekday{time.Monday, time.Wednesday}, constraints.AllowedDays())
	assert.Equal(t, []model.TimeRange{
		{Start: 8*60 + 30, End: 12 * 60},
		{Start: 13 * 60, End: 18 * 60},
	}, constraints.AllowedTimeRanges())
	assert.Equal(t, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), constraints.ExamWeekStartDate())
	assert.Equal(t, time.Date(2026, 1, 16, 0, 0, 0, 0, time.UTC), constraints.ExamWeekEndDate())
	assert.Equal(t, 15, constraints.RoomTurnoverMinutes())
	assert.Equal(t, 30, constraints.SlotStepMinutes())
	assert.Equal(t, 60, constraints.BaseExamDurationMinutes())
	assert.Equal(t, 20, constraints.CreditDurationCoefficientMinutes())
	assert.Equal(t, 10, constraints.DurationRoundingMinutes())
	assert.Equal(t, 90, constraints.MinExamDurationMinutes())
}

func TestBuildConstraintsKeepsDefaultsForAbsentKeys(t *testing.T) {
	path := writeConfig(t, `
data:
  students: res/students.csv
constraints:
  maxExamsPerDay: 3
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	constraints, err := cfg.BuildConstraints()
	require.NoError(t, err)

	assert.Equal(t, 3, constraints.MaxExamsPerDay())
	assert.Equal(t, 60, constraints.MinMinutesBetweenExams(), "default kept")
	assert.Equal(t, 10, constraints.RoomTurnoverMinutes(), "default kept")
	assert.Equal(t, ',', cfg.Data.DelimiterRune(), "default delimiter")
}

func TestBuildConstraintsWithoutBlock(t *testing.T) {
	path := writeConfig(t, "data:\n  students: res/students.csv\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	constraints, err := cfg.BuildConstraints()
	require.NoError(t, err)

	assert.Equal(t, 2, constraints.MaxExamsPerDay())
}

func TestBuildConstraintsFailsFast(t *testing.T) {
	cases := map[string]string{
		"negative gap":     "constraints:\n  minMinutesBetweenExams: -1\n",
		"zero per day":     "constraints:\n  maxExamsPerDay: 0\n",
		"bad weekday":      "constraints:\n  allowedDays: [Funday]\n",
		"bad range":        "constraints:\n  allowedTimeRanges: [\"12:00-09:00\"]\n",
		"bad range format": "constraints:\n  allowedTimeRanges: [\"nine to five\"]\n",
		"bad date":         "constraints:\n  examWeekStartDate: \"05.01.2026\"\n",
		"inverted week":    "constraints:\n  examWeekStartDate: \"2026-01-16\"\n  examWeekEndDate: \"2026-01-05\"\n",
		"zero step":        "constraints:\n  slotStepMinutes: 0\n",
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, content))
			require.NoError(t, err)

			_, err = cfg.BuildConstraints()
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingOrMalformedFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "data: [not, a, mapping\n"))
	assert.Error(t, err)
}
