// Package config reads the run configuration: input/output file locations
// and the constraints block. Constraint keys are loosely typed in the file
// and are decoded into a typed raw form before the validating setters run,
// so the first invalid value aborts the load with a precise error.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"exam-scheduler/pkg/model"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Config represents the overall run configuration.
type Config struct {
	Data        DataConfig     `yaml:"data"`
	Output      OutputConfig   `yaml:"output"`
	Constraints map[string]any `yaml:"constraints"`
}

// DataConfig locates the input CSV files.
type DataConfig struct {
	Students   string `yaml:"students"`
	Courses    string `yaml:"courses"`
	Attendance string `yaml:"attendance"`
	Classrooms string `yaml:"classrooms"`
	Delimiter  string `yaml:"delimiter"`
}

// OutputConfig locates the export targets.
type OutputConfig struct {
	Schedule  string `yaml:"schedule"`
	Conflicts string `yaml:"conflicts"`
}

// rawConstraints is the loosely-typed shape of the constraints block.
// Pointer fields distinguish "absent" from an explicit zero.
type rawConstraints struct {
	MinMinutesBetweenExams           *int
	MaxExamsPerDay                   *int
	AllowedDays                      []string
	AllowedTimeRanges                []string
	ExamWeekStartDate                string
	ExamWeekEndDate                  string
	RoomTurnoverMinutes              *int
	SlotStepMinutes                  *int
	BaseExamDurationMinutes          *int
	CreditDurationCoefficientMinutes *int
	DurationRoundingMinutes          *int
	MinExamDurationMinutes           *int
}

// Load reads the configuration from the given path.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config %s: %w", path, err)
	}
	defer file.Close()

	var cfg Config
	if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// DelimiterRune returns the configured CSV delimiter, defaulting to a comma.
func (d DataConfig) DelimiterRune() rune {
	if d.Delimiter == "" {
		return ','
	}
	return []rune(d.Delimiter)[0]
}

// BuildConstraints turns the constraints block into a validated Constraints
// value. Absent keys keep their defaults.
func (c *Config) BuildConstraints() (*model.Constraints, error) {
	constraints := model.NewConstraints()
	if c.Constraints == nil {
		return constraints, nil
	}

	var raw rawConstraints
	if err := mapstructure.Decode(c.Constraints, &raw); err != nil {
		return nil, fmt.Errorf("decode constraints: %w", err)
	}

	if raw.MinMinutesBetweenExams != nil {
		if err := constraints.SetMinMinutesBetweenExams(*raw.MinMinutesBetweenExams); err != nil {
			return nil, err
		}
	}
	if raw.MaxExamsPerDay != nil {
		if err := constraints.SetMaxExamsPerDay(*raw.MaxExamsPerDay); err != nil {
			return nil, err
		}
	}
	if raw.AllowedDays != nil {
		days := make([]time.Weekday, 0, len(raw.AllowedDays))
		for _, name := range raw.AllowedDays {
			day, err := parseWeekday(name)
			if err != nil {
				return nil, err
			}
			days = append(days, day)
		}
		constraints.SetAllowedDays(days)
	}
	if raw.AllowedTimeRanges != nil {
		ranges := make([]model.TimeRange, 0, len(raw.AllowedTimeRanges))
		for _, spec := range raw.AllowedTimeRanges {
			tr, err := parseTimeRange(spec)
			if err != nil {
				return nil, err
			}
			ranges = append(ranges, tr)
		}
		constraints.SetAllowedTimeRanges(ranges)
	}
	if raw.ExamWeekStartDate != "" {
		date, err := parseDate(raw.ExamWeekStartDate)
		if err != nil {
			return nil, err
		}
		if err := constraints.SetExamWeekStartDate(date); err != nil {
			return nil, err
		}
	}
	if raw.ExamWeekEndDate != "" {
		date, err := parseDate(raw.ExamWeekEndDate)
		if err != nil {
			return nil, err
		}
		if err := constraints.SetExamWeekEndDate(date); err != nil {
			return nil, err
		}
	}
	if raw.RoomTurnoverMinutes != nil {
		if err := constraints.SetRoomTurnoverMinutes(*raw.RoomTurnoverMinutes); err != nil {
			return nil, err
		}
	}
	if raw.SlotStepMinutes != nil {
		if err := constraints.SetSlotStepMinutes(*raw.SlotStepMinutes); err != nil {
			return nil, err
		}
	}
	if raw.BaseExamDurationMinutes != nil {
		if err := constraints.SetBaseExamDurationMinutes(*raw.BaseExamDurationMinutes); err != nil {
			return nil, err
		}
	}
	if raw.CreditDurationCoefficientMinutes != nil {
		if err := constraints.SetCreditDurationCoefficientMinutes(*raw.CreditDurationCoefficientMinutes); err != nil {
			return nil, err
		}
	}
	if raw.DurationRoundingMinutes != nil {
		if err := constraints.SetDurationRoundingMinutes(*raw.DurationRoundingMinutes); err != nil {
			return nil, err
		}
	}
	if raw.MinExamDurationMinutes != nil {
		if err := constraints.SetMinExamDurationMinutes(*raw.MinExamDurationMinutes); err != nil {
			return nil, err
		}
	}

	return constraints, nil
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func parseWeekday(name string) (time.Weekday, error) {
	day, ok := weekdays[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("unknown weekday %q", name)
	}
	return day, nil
}

// parseTimeRange parses "HH:MM-HH:MM" into a half-open window.
func parseTimeRange(spec string) (model.TimeRange, error) {
	parts := strings.Split(spec, "-")
	if len(parts) != 2 {
		return model.TimeRange{}, fmt.Errorf("time range %q must be HH:MM-HH:MM", spec)
	}
	start, err := parseMinuteOfDay(parts[0])
	if err != nil {
		return model.TimeRange{}, fmt.Errorf("time range %q: %w", spec, err)
	}
	end, err := parseMinuteOfDay(parts[1])
	if err != nil {
		return model.TimeRange{}, fmt.Errorf("time range %q: %w", spec, err)
	}
	return model.NewTimeRange(start, end)
}

func parseMinuteOfDay(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("time %q must be HH:MM", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("time %q must be HH:MM", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("time %q must be HH:MM", s)
	}
	if hour < 0 || hour > 24 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("time %q is outside the day", s)
	}
	return hour*60 + minute, nil
}

func parseDate(s string) (time.Time, error) {
	date, err := time.Parse(time.DateOnly, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q must be YYYY-MM-DD", s)
	}
	return date, nil
}
