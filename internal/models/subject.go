package models

// Subject carries the aggregate attendance counters for every record in it.
// The counters are derived state: TotalClasses = Present + Absent = number of records.
type Subject struct {
	ID           int64  `db:"id" json:"id"`
	Name         string `db:"name" json:"name"`
	TotalClasses int    `db:"total_classes" json:"totalClasses"`
	Present      int    `db:"present" json:"present"`
	Absent       int    `db:"absent" json:"absent"`
}

// Counters returns the subject's stored aggregate counters.
func (s Subject) Counters() SubjectCounters {
	return SubjectCounters{TotalClasses: s.TotalClasses, Present: s.Present, Absent: s.Absent}
}

// SubjectCounters is the totalClasses/present/absent triple.
type SubjectCounters struct {
	TotalClasses int `db:"total_classes" json:"totalClasses"`
	Present      int `db:"present" json:"present"`
	Absent       int `db:"absent" json:"absent"`
}

// PresentPercentage is present/totalClasses*100 rounded to two decimals, 0 when empty.
func (c SubjectCounters) PresentPercentage() float64 {
	return percentage(c.Present, c.TotalClasses)
}

func percentage(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}
	return float64(part*10000/whole) / 100
}
