package model

import (
	"fmt"
	"time"

	"github.com/samber/lo"
)

// TimeRange is a half-open [Start, End) daily window, in minutes since
// midnight.
type TimeRange struct {
	Start int
	End   int
}

func NewTimeRange(start, end int) (TimeRange, error) {
	if start < 0 || end > 24*60 {
		return TimeRange{}, fmt.Errorf("time range [%d, %d) is outside the day", start, end)
	}
	if start >= end {
		return TimeRange{}, fmt.Errorf("time range start %d must be before end %d", start, end)
	}
	return TimeRange{Start: start, End: end}, nil
}

// Contains reports whether the given minute-of-day falls inside the window.
func (tr TimeRange) Contains(minuteOfDay int) bool {
	return minuteOfDay >= tr.Start && minuteOfDay < tr.End
}

func (tr TimeRange) String() string {
	return fmt.Sprintf("%02d:%02d-%02d:%02d", tr.Start/60, tr.Start%60, tr.End/60, tr.End%60)
}

// Constraints is the scheduling configuration bag. Every setter validates
// eagerly and rejects invalid values with an error; nothing is silently
// clamped. The zero value is not usable, construct with NewConstraints.
type Constraints struct {
	minMinutesBetweenExams int
	maxExamsPerDay         int
	allowedDays            []time.Weekday
	allowedTimeRanges      []TimeRange

	examWeekStartDate time.Time // zero = unset
	examWeekEndDate   time.Time // zero = unset

	roomTurnoverMinutes              int
	slotStepMinutes                  int
	baseExamDurationMinutes          int
	creditDurationCoefficientMinutes int
	durationRoundingMinutes          int
	minExamDurationMinutes           int
}

// NewConstraints returns the default configuration: 60 minute gap, two exams
// per student per day, Monday through Friday, one 09:00-17:00 window, 10
// minute room turnover, 5 minute slot step, 90 minute base duration plus 15
// minutes per credit, rounded up to 5 minutes with a 120 minute floor.
func NewConstraints() *Constraints {
	return &Constraints{
		minMinutesBetweenExams: 60,
		maxExamsPerDay:         2,
		allowedDays: []time.Weekday{
			time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday,
		},
		allowedTimeRanges:                []TimeRange{{Start: 9 * 60, End: 17 * 60}},
		roomTurnoverMinutes:              10,
		slotStepMinutes:                  5,
		baseExamDurationMinutes:          90,
		creditDurationCoefficientMinutes: 15,
		durationRoundingMinutes:          5,
		minExamDurationMinutes:           120,
	}
}

func (c *Constraints) MinMinutesBetweenExams() int { return c.minMinutesBetweenExams }

func (c *Constraints) SetMinMinutesBetweenExams(v int) error {
	if v < 0 {
		return fmt.Errorf("minMinutesBetweenExams cannot be negative: %d", v)
	}
	c.minMinutesBetweenExams = v
	return nil
}

func (c *Constraints) MaxExamsPerDay() int { return c.maxExamsPerDay }

func (c *Constraints) SetMaxExamsPerDay(v int) error {
	if v < 1 {
		return fmt.Errorf("maxExamsPerDay must be at least 1: %d", v)
	}
	c.maxExamsPerDay = v
	return nil
}

// AllowedDays returns the weekdays eligible for exams. An empty set means
// every day is allowed.
func (c *Constraints) AllowedDays() []time.Weekday {
	out := make([]time.Weekday, len(c.allowedDays))
	copy(out, c.allowedDays)
	return out
}

func (c *Constraints) SetAllowedDays(days []time.Weekday) {
	c.allowedDays = make([]time.Weekday, len(days))
	copy(c.allowedDays, days)
}

// IsDayAllowed reports whether exams may be placed on the given weekday.
func (c *Constraints) IsDayAllowed(day time.Weekday) bool {
	if len(c.allowedDays) == 0 {
		return true
	}
	return lo.Contains(c.allowedDays, day)
}

// AllowedTimeRanges returns the ordered daily windows. An empty list means
// any time of day is allowed.
func (c *Constraints) AllowedTimeRanges() []TimeRange {
	out := make([]TimeRange, len(c.allowedTimeRanges))
	copy(out, c.allowedTimeRanges)
	return out
}

func (c *Constraints) SetAllowedTimeRanges(ranges []TimeRange) {
	c.allowedTimeRanges = make([]TimeRange, len(ranges))
	copy(c.allowedTimeRanges, ranges)
}

func (c *Constraints) AddAllowedTimeRange(tr TimeRange) {
	c.allowedTimeRanges = append(c.allowedTimeRanges, tr)
}

// IsTimeAllowed reports whether the given minute-of-day falls inside any
// allowed window.
func (c *Constraints) IsTimeAllowed(minuteOfDay int) bool {
	if len(c.allowedTimeRanges) == 0 {
		return true
	}
	return lo.SomeBy(c.allowedTimeRanges, func(tr TimeRange) bool {
		return tr.Contains(minuteOfDay)
	})
}

func (c *Constraints) ExamWeekStartDate() time.Time { return c.examWeekStartDate }

func (c *Constraints) SetExamWeekStartDate(d time.Time) error {
	previous := c.examWeekStartDate
	c.examWeekStartDate = d
	if err := c.validateExamWeek(); err != nil {
		c.examWeekStartDate = previous
		return err
	}
	return nil
}

func (c *Constraints) ExamWeekEndDate() time.Time { return c.examWeekEndDate }

func (c *Constraints) SetExamWeekEndDate(d time.Time) error {
	previous := c.examWeekEndDate
	c.examWeekEndDate = d
	if err := c.validateExamWeek(); err != nil {
		c.examWeekEndDate = previous
		return err
	}
	return nil
}

func (c *Constraints) validateExamWeek() error {
	if c.examWeekStartDate.IsZero() || c.examWeekEndDate.IsZero() {
		return nil
	}
	if c.examWeekStartDate.After(c.examWeekEndDate) {
		return fmt.Errorf("examWeekStartDate %v cannot be after examWeekEndDate %v",
			c.examWeekStartDate.Format(time.DateOnly), c.examWeekEndDate.Format(time.DateOnly))
	}
	return nil
}

// IsWithinExamWeek reports whether the date falls inside the bounding window.
// An unset window allows every date.
func (c *Constraints) IsWithinExamWeek(date time.Time) bool {
	if c.examWeekStartDate.IsZero() || c.examWeekEndDate.IsZero() {
		return true
	}
	return !date.Before(c.examWeekStartDate) && !date.After(c.examWeekEndDate)
}

func (c *Constraints) RoomTurnoverMinutes() int { return c.roomTurnoverMinutes }

func (c *Constraints) SetRoomTurnoverMinutes(v int) error {
	if v < 0 {
		return fmt.Errorf("roomTurnoverMinutes cannot be negative: %d", v)
	}
	c.roomTurnoverMinutes = v
	return nil
}

func (c *Constraints) SlotStepMinutes() int { return c.slotStepMinutes }

func (c *Constraints) SetSlotStepMinutes(v int) error {
	if v < 1 {
		return fmt.Errorf("slotStepMinutes must be at least 1: %d", v)
	}
	c.slotStepMinutes = v
	return nil
}

func (c *Constraints) BaseExamDurationMinutes() int { return c.baseExamDurationMinutes }

func (c *Constraints) SetBaseExamDurationMinutes(v int) error {
	if v < 1 {
		return fmt.Errorf("baseExamDurationMinutes must be at least 1: %d", v)
	}
	c.baseExamDurationMinutes = v
	return nil
}

func (c *Constraints) CreditDurationCoefficientMinutes() int {
	return c.creditDurationCoefficientMinutes
}

func (c *Constraints) SetCreditDurationCoefficientMinutes(v int) error {
	if v < 0 {
		return fmt.Errorf("creditDurationCoefficientMinutes cannot be negative: %d", v)
	}
	c.creditDurationCoefficientMinutes = v
	return nil
}

func (c *Constraints) DurationRoundingMinutes() int { return c.durationRoundingMinutes }

func (c *Constraints) SetDurationRoundingMinutes(v int) error {
	if v < 1 {
		return fmt.Errorf("durationRoundingMinutes must be at least 1: %d", v)
	}
	c.durationRoundingMinutes = v
	return nil
}

func (c *Constraints) MinExamDurationMinutes() int { return c.minExamDurationMinutes }

func (c *Constraints) SetMinExamDurationMinutes(v int) error {
	if v < 1 {
		return fmt.Errorf("minExamDurationMinutes must be at least 1: %d", v)
	}
	c.minExamDurationMinutes = v
	return nil
}

// Copy returns an independent copy of the constraints.
func (c *Constraints) Copy() *Constraints {
	out := *c
	out.allowedDays = c.AllowedDays()
	out.allowedTimeRanges = c.AllowedTimeRanges()
	return &out
}
