package disruption

import "time"

// Kind tags a Clearance's variant.
type Kind int

const (
	// Cleared means the action may proceed immediately.
	Cleared Kind = iota
	// EDCT is an expected release time that is unlikely to slip further.
	EDCT
	// Deferred means the caller should retry no earlier than Time.
	Deferred
)

// Clearance is the outcome of a disruption's readiness check for a flight
// action at a proposed time. Cleared carries no time; EDCT and Deferred
// carry the time they apply to.
type Clearance struct {
	Kind Kind
	Time time.Time
}

// ClearedNow is the zero-time Cleared clearance.
var ClearedNow = Clearance{Kind: Cleared}

// NewEDCT builds an EDCT clearance for t.
func NewEDCT(t time.Time) Clearance { return Clearance{Kind: EDCT, Time: t} }

// NewDeferred builds a Deferred clearance for t.
func NewDeferred(t time.Time) Clearance { return Clearance{Kind: Deferred, Time: t} }

// TimeOrNil returns the clearance's time, or nil if it is Cleared.
func (c Clearance) TimeOrNil() *time.Time {
	if c.Kind == Cleared {
		return nil
	}
	t := c.Time
	return &t
}

// Less implements the clearance total order: Cleared < any timed value;
// timed values order by time, ties broken EDCT < Deferred.
func (c Clearance) Less(other Clearance) bool {
	if c.Kind == Cleared {
		return other.Kind != Cleared
	}
	if other.Kind == Cleared {
		return false
	}
	if !c.Time.Equal(other.Time) {
		return c.Time.Before(other.Time)
	}
	return c.Kind == EDCT && other.Kind == Deferred
}
