package monitoring

import (
	"time"
)

// A ProgressBar is a tracker of the progress. The monitor updates it after
// every advance.
type ProgressBar struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	StartTime  time.Time `json:"start_time"`
	Total      uint64    `json:"total"`
	Finished   uint64    `json:"finished"`
	InProgress uint64    `json:"in_progress"`
}

// update sets the simulated seconds passed and the events still pending.
// Finished never exceeds Total.
func (b *ProgressBar) update(finished, inProgress uint64) {
	if b.Total > 0 && finished > b.Total {
		finished = b.Total
	}

	b.Finished = finished
	b.InProgress = inProgress
}

func (b *ProgressBar) copy() ProgressBar {
	return *b
}
