package dispatch

import (
	"time"

	"airdispatch/airtime"
)

// Kind tags an update's variant: a departure or an arrival check.
type Kind int

const (
	CheckDepart Kind = iota
	CheckArrive
)

// update is one entry in the dispatcher's priority queue: a flight to
// re-examine, at what time, for what kind of check.
type update struct {
	Time   time.Time
	Flight airtime.FlightID
	Kind   Kind
}

// updateQueue is a container/heap priority queue ordered by time ascending,
// mirroring the teacher's own event-priority-queue pattern (see the bus
// arrival eventPQ in driver/batch.go).
type updateQueue []update

func (q updateQueue) Len() int            { return len(q) }
func (q updateQueue) Less(i, j int) bool  { return q[i].Time.Before(q[j].Time) }
func (q updateQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *updateQueue) Push(x any)         { *q = append(*q, x.(update)) }
func (q *updateQueue) Pop() any {
	old := *q
	n := len(old)
	v := old[n-1]
	*q = old[:n-1]
	return v
}
