package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeltaFor(t *testing.T) {
	assert.Equal(t, CounterDelta{Present: 1}, DeltaFor(AttendanceStatusPresent, 1))
	assert.Equal(t, CounterDelta{Absent: 1}, DeltaFor(AttendanceStatusAbsent, 1))
	assert.Equal(t, CounterDelta{Present: -1}, DeltaFor(AttendanceStatusPresent, -3))
	assert.Equal(t, CounterDelta{Absent: -1}, DeltaFor(AttendanceStatusAbsent, -1))
	assert.True(t, DeltaFor("late", 1).IsZero())
}

func TestCounterDeltaApplyClampsAtZero(t *testing.T) {
	start := SubjectCounters{TotalClasses: 1, Present: 0, Absent: 1}
	got := CounterDelta{Present: -2, Absent: -2}.Apply(start)
	assert.Equal(t, SubjectCounters{}, got)
}

func TestBatchDeltaEqualsRepeatedSingleDeltas(t *testing.T) {
	statuses := []AttendanceStatus{AttendanceStatusPresent, AttendanceStatusAbsent, AttendanceStatusPresent}

	var batch CounterDelta
	single := SubjectCounters{}
	for _, s := range statuses {
		batch = batch.Add(DeltaFor(s, 1))
		single = DeltaFor(s, 1).Apply(single)
	}

	assert.Equal(t, single, batch.Apply(SubjectCounters{}))
	assert.Equal(t, 3, batch.Total())
}

func TestPresentPercentage(t *testing.T) {
	assert.Equal(t, 0.0, SubjectCounters{}.PresentPercentage())
	assert.Equal(t, 66.66, SubjectCounters{TotalClasses: 3, Present: 2, Absent: 1}.PresentPercentage())
	assert.Equal(t, 50.0, StudentSubjectSummary{Total: 4, Present: 2}.WithPercentage().Percentage)
}

func TestAttendanceStatusValid(t *testing.T) {
	assert.True(t, AttendanceStatusPresent.Valid())
	assert.True(t, AttendanceStatusAbsent.Valid())
	assert.False(t, AttendanceStatus("PRESENT").Valid())
	assert.False(t, AttendanceStatus("").Valid())
}

func TestAttendanceTally(t *testing.T) {
	var tally AttendanceTally
	for _, s := range []AttendanceStatus{AttendanceStatusPresent, AttendanceStatusAbsent, AttendanceStatusPresent, "late"} {
		tally.Count(s)
	}
	assert.Equal(t, 3, tally.Total())
	assert.Equal(t, CounterDelta{Present: 2, Absent: 1}, tally.Delta(1))
	assert.Equal(t, CounterDelta{Present: -2, Absent: -1}, tally.Delta(-1))
}
