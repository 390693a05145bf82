package model

// ConflictType classifies a detector finding.
type ConflictType int

const (
	// RoomCapacity: a room assignment seats more students than the room holds.
	RoomCapacity ConflictType = iota
	// RoomOverlap: two sessions use the same room with overlapping intervals.
	RoomOverlap
	// StudentCollision: a student sits in two overlapping sessions.
	StudentCollision
)

func (t ConflictType) String() string {
	switch t {
	case RoomCapacity:
		return "ROOM_CAPACITY"
	case RoomOverlap:
		return "ROOM_OVERLAP"
	case StudentCollision:
		return "STUDENT_COLLISION"
	}
	return "UNKNOWN"
}

// Conflict describes one violation found in a finished schedule: one session
// for capacity findings, the two involved sessions otherwise. Conflicts are
// immutable once constructed by the detector.
type Conflict struct {
	Type        ConflictType
	Sessions    []*ExamSession
	Description string
}
