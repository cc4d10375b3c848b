// Package slotmgr implements the hourly-bucket slot reservation scheme used
// by rate-limiting disruptions (ground delay programs, departure rate
// limits). A SlotManager partitions a fixed [start, end) window into
// whole-hour buckets, each holding at most maxSlotSize items.
package slotmgr

import "time"

// Manager reserves slots for comparable item values across a fixed window of
// whole-hour buckets, each bounded to maxSlotSize items.
type Manager[T comparable] struct {
	start       time.Time
	end         time.Time
	maxSlotSize int
	buckets     [][]T
}

// New builds a Manager over [start, start+len(hourlyCapacity)*1h), where
// hourlyCapacity[i] is the capacity of the i-th hourly bucket. maxSlotSize
// bounds how many items may occupy a single bucket.
func New[T comparable](start time.Time, hourlyCapacity []int) *Manager[T] {
	buckets := make([][]T, len(hourlyCapacity))
	maxSize := 0
	for i, cap := range hourlyCapacity {
		if cap > maxSize {
			maxSize = cap
		}
		buckets[i] = make([]T, 0, cap)
	}
	return &Manager[T]{
		start:       start,
		end:         start.Add(time.Duration(len(hourlyCapacity)) * time.Hour),
		maxSlotSize: maxSize,
		buckets:     buckets,
	}
}

// NewUniform builds a Manager over [start, end) with every hourly bucket
// capped at the same maxSlotSize.
func NewUniform[T comparable](start, end time.Time, maxSlotSize int) *Manager[T] {
	hours := int(end.Sub(start) / time.Hour)
	if hours < 0 {
		hours = 0
	}
	caps := make([]int, hours)
	for i := range caps {
		caps[i] = maxSlotSize
	}
	m := New[T](start, caps)
	m.maxSlotSize = maxSlotSize
	return m
}

// Start returns the window's opening time.
func (m *Manager[T]) Start() time.Time { return m.start }

// End returns the window's closing time (exclusive).
func (m *Manager[T]) End() time.Time { return m.end }

// Contains reports whether t falls within [start, end).
func (m *Manager[T]) Contains(t time.Time) bool {
	return !t.Before(m.start) && t.Before(m.end)
}

func (m *Manager[T]) bucketIndex(t time.Time) int {
	return int(t.Sub(m.start) / time.Hour)
}

// SlottedAt reports whether item already occupies the bucket containing t.
func (m *Manager[T]) SlottedAt(t time.Time, item T) bool {
	if !m.Contains(t) {
		return false
	}
	idx := m.bucketIndex(t)
	for _, it := range m.buckets[idx] {
		if it == item {
			return true
		}
	}
	return false
}

// minuteStep is the per-item spacing within an hourly bucket used to turn an
// ordinal position into a minute-offset estimate.
func (m *Manager[T]) minuteStep() float64 {
	step := 60.0 / float64(m.maxSlotSize)
	if step > 3 {
		step = 3
	}
	return step
}

// AllocateSlot places item in the earliest bucket at or after earliest that
// has room, and returns the estimated time within that bucket. If item
// already occupies an earlier bucket, that bucket's estimated time is
// returned unchanged (idempotent). Returns false if no bucket through the
// end of the window has room.
func (m *Manager[T]) AllocateSlot(earliest time.Time, item T) (time.Time, bool) {
	// Idempotence: if already slotted anywhere, return that slot's estimate
	// unchanged, scanning from the start of the window.
	for idx := 0; idx < len(m.buckets); idx++ {
		for si, it := range m.buckets[idx] {
			if it == item {
				return m.estimate(idx, si), true
			}
		}
	}

	start := m.bucketIndex(earliest)
	if start < 0 {
		start = 0
	}
	for idx := start; idx < len(m.buckets); idx++ {
		if cap(m.buckets[idx]) == 0 {
			continue
		}
		if len(m.buckets[idx]) < cap(m.buckets[idx]) {
			m.buckets[idx] = append(m.buckets[idx], item)
			return m.estimate(idx, len(m.buckets[idx])-1), true
		}
	}
	return time.Time{}, false
}

func (m *Manager[T]) estimate(bucketIdx, ordinal int) time.Time {
	minuteOffset := time.Duration(round(float64(ordinal)*m.minuteStep())) * time.Minute
	t := m.start.Add(time.Duration(bucketIdx) * time.Hour).Add(minuteOffset)
	if !t.Before(m.end) {
		t = m.end.Add(-time.Second)
	}
	return t
}

func round(f float64) int64 {
	if f < 0 {
		return int64(f - 0.5)
	}
	return int64(f + 0.5)
}

// DropSlot removes one matching item from the bucket containing t. Returns
// whether an item was removed.
func (m *Manager[T]) DropSlot(t time.Time, item T) bool {
	if !m.Contains(t) {
		return false
	}
	idx := m.bucketIndex(t)
	bucket := m.buckets[idx]
	for i, it := range bucket {
		if it == item {
			m.buckets[idx] = append(bucket[:i], bucket[i+1:]...)
			return true
		}
	}
	return false
}

// BucketLen reports how many items occupy the bucket containing t (for
// tests).
func (m *Manager[T]) BucketLen(t time.Time) int {
	if !m.Contains(t) {
		return 0
	}
	return len(m.buckets[m.bucketIndex(t)])
}

// IsFinalBucket reports whether t falls in the window's last hourly bucket,
// i.e. there is no later bucket to retry an allocation in.
func (m *Manager[T]) IsFinalBucket(t time.Time) bool {
	if !m.Contains(t) {
		return false
	}
	return m.bucketIndex(t) == len(m.buckets)-1
}
