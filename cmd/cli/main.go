package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"exam-scheduler/config"
	"exam-scheduler/internal/csvio"
	"exam-scheduler/pkg/scheduler"
)

func main() {
	// Define arguments
	configPtr := flag.String("config", "", "Path to the YAML run configuration")
	outPtr := flag.String("out", "", "Schedule CSV output path; overrides the configured one")
	conflictsPtr := flag.String("conflicts", "", "Conflict report CSV output path; overrides the configured one")
	flag.Parse()

	if *configPtr == "" {
		log.Fatal("a configuration file must be specified")
	}

	cfg, err := config.Load(*configPtr)
	if err != nil {
		log.Fatalf("cannot load configuration: %v", err)
	}

	schedulePath := cfg.Output.Schedule
	if *outPtr != "" {
		schedulePath = *outPtr
	}
	conflictsPath := cfg.Output.Conflicts
	if *conflictsPtr != "" {
		conflictsPath = *conflictsPtr
	}
	if schedulePath == "" {
		log.Fatal("a schedule output path must be specified")
	}

	constraints, err := cfg.BuildConstraints()
	if err != nil {
		log.Fatalf("invalid constraints: %v", err)
	}

	// Extract input
	delim := cfg.Data.DelimiterRune()
	students, err := csvio.LoadStudents(cfg.Data.Students, delim)
	if err != nil {
		log.Fatalf("cannot load students: %v", err)
	}
	courses, err := csvio.LoadCourses(cfg.Data.Courses, delim)
	if err != nil {
		log.Fatalf("cannot load courses: %v", err)
	}
	classrooms, err := csvio.LoadClassrooms(cfg.Data.Classrooms, delim)
	if err != nil {
		log.Fatalf("cannot load classrooms: %v", err)
	}
	if err := csvio.LoadAttendance(cfg.Data.Attendance, delim, courses, students); err != nil {
		log.Fatalf("cannot load attendance: %v", err)
	}

	// Build schedule
	engine := scheduler.NewEngine()
	started := time.Now()
	calendar, err := engine.Generate(courses, classrooms, constraints)
	if err != nil {
		log.Fatalf("an error occurred during schedule generation: %v", err)
	}
	elapsed := time.Since(started)

	// Re-check the finished schedule independently
	conflicts := scheduler.DetectConflicts(calendar)

	if err := csvio.ExportSchedule(calendar, schedulePath); err != nil {
		log.Fatalf("cannot export schedule: %v", err)
	}
	if conflictsPath != "" {
		if err := csvio.ExportConflicts(conflicts, conflictsPath); err != nil {
			log.Fatalf("cannot export conflicts: %v", err)
		}
	}

	fmt.Printf("Sessions: %v\n", calendar.Len())
	fmt.Printf("Conflicts: %v\n", len(conflicts))
	fmt.Printf("Elapsed: %v\n", elapsed)
	fmt.Printf("Schedule written to %v\n", schedulePath)
	if conflictsPath != "" {
		fmt.Printf("Conflict report written to %v\n", conflictsPath)
	}
}
