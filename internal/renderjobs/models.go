package renderjobs

import "time"

// Status represents the lifecycle of a render job.
type Status string

const (
	StatusPending     Status = "pending"
	StatusCompositing Status = "compositing"
	StatusEncoding    Status = "encoding"
	StatusCompleted   Status = "completed"
	StatusFailed      Status = "failed"
)

var allStatuses = []Status{
	StatusPending,
	StatusCompositing,
	StatusEncoding,
	StatusCompleted,
	StatusFailed,
}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

// Valid reports whether the status is one of the known lifecycle states.
func (s Status) Valid() bool {
	_, ok := statusSet[s]
	return ok
}

// Terminal reports whether the job can no longer progress.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

var allowedTransitions = map[Status][]Status{
	StatusPending:     {StatusCompositing, StatusFailed},
	StatusCompositing: {StatusEncoding, StatusFailed},
	StatusEncoding:    {StatusCompleted, StatusFailed},
}

func transitionAllowed(from, to Status) bool {
	for _, candidate := range allowedTransitions[from] {
		if candidate == to {
			return true
		}
	}
	return false
}

// Job is one batch export run persisted in SQLite.
type Job struct {
	ID              int64
	ManifestPath    string
	OutputPath      string
	Status          Status
	FrameRate       int
	TotalFrames     int
	FramesDone      int
	ProgressPercent float64
	ProgressMessage string
	ErrorMessage    string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
