package models

// CounterDelta is a signed change to a subject's present/absent counters.
// totalClasses always moves by Present + Absent.
type CounterDelta struct {
	Present int
	Absent  int
}

// DeltaFor returns the delta for inserting (sign > 0) or deleting (sign < 0)
// one record with the given status.
func DeltaFor(status AttendanceStatus, sign int) CounterDelta {
	if sign < 0 {
		sign = -1
	} else {
		sign = 1
	}
	switch status {
	case AttendanceStatusPresent:
		return CounterDelta{Present: sign}
	case AttendanceStatusAbsent:
		return CounterDelta{Absent: sign}
	default:
		return CounterDelta{}
	}
}

// Total is the change applied to totalClasses.
func (d CounterDelta) Total() int {
	return d.Present + d.Absent
}

// Add combines two deltas.
func (d CounterDelta) Add(other CounterDelta) CounterDelta {
	return CounterDelta{Present: d.Present + other.Present, Absent: d.Absent + other.Absent}
}

// IsZero reports whether applying the delta would change nothing.
func (d CounterDelta) IsZero() bool {
	return d.Present == 0 && d.Absent == 0
}

// Apply returns counters after the delta with every field floored at zero,
// mirroring the statement the store executes.
func (d CounterDelta) Apply(c SubjectCounters) SubjectCounters {
	return SubjectCounters{
		TotalClasses: floorZero(c.TotalClasses + d.Total()),
		Present:      floorZero(c.Present + d.Present),
		Absent:       floorZero(c.Absent + d.Absent),
	}
}

func floorZero(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
