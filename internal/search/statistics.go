package search

import "time"

// Statistics accumulates the counters the driver reports at the end of a
// run: how much of the space was explored, how many tests actually ran,
// how many timed out, and the total non-timeout execution time.
type Statistics struct {
	ExplorationCounter int
	ExecutionCounter   int
	TimeoutCounter     int
	ExecutionTime      time.Duration
}

func (s *Statistics) recordExecution(d time.Duration, timedOut bool) {
	s.ExecutionCounter++
	if timedOut {
		s.TimeoutCounter++
		return
	}
	s.ExecutionTime += d
}
