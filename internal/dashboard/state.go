package dashboard

import (
	"time"

	"github.com/jekabolt/store-console/internal/entity"
)

type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Snapshot is what the dashboard displays. Analysis and Filter always come
// from the same committed response; a failed fetch leaves them untouched.
type Snapshot struct {
	Status   Status
	Filter   entity.FilterParams
	Analysis *entity.Analysis
	Err      error

	Categories    []entity.Category
	CategoriesErr error

	// Issued is the sequence of the last request, Committed of the last
	// response that was displayed.
	Issued    uint64
	Committed uint64
	UpdatedAt time.Time
}

// Metrics returns zero metrics until the first response is committed.
func (s Snapshot) Metrics() entity.Metrics {
	if s.Analysis == nil {
		return entity.Metrics{}
	}
	return s.Analysis.Metrics
}

func (s Snapshot) Performance() entity.PerformanceRows {
	if s.Analysis == nil {
		return nil
	}
	return s.Analysis.Performance
}
