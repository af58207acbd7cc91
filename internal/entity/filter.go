package entity

import "time"

// DateLayout is the wire and display layout of filter dates.
const DateLayout = "2006-01-02"

// FilterParams is the applied query of the analytics dashboard.
// A zero field means the dimension is unconstrained.
type FilterParams struct {
	StartDate  time.Time
	EndDate    time.Time
	CategoryID int
}

func (f FilterParams) IsEmpty() bool {
	return f.StartDate.IsZero() && f.EndDate.IsZero() && f.CategoryID == 0
}

// HasInvertedRange reports a start date later than the end date.
// Such a range is still sent to the server as is.
func (f FilterParams) HasInvertedRange() bool {
	return !f.StartDate.IsZero() && !f.EndDate.IsZero() && f.StartDate.After(f.EndDate)
}

func (f FilterParams) String() string {
	s := "start=" + formatDate(f.StartDate) + " end=" + formatDate(f.EndDate)
	if f.CategoryID != 0 {
		return s + " category=" + itoa(f.CategoryID)
	}
	return s + " category=any"
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "any"
	}
	return t.Format(DateLayout)
}
