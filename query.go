package studybuddy

import (
	"math"
	"slices"
	"time"
)

// Filter selects sessions by status and priority. A zero field matches every
// session.
type Filter struct {
	Status   Status
	Priority Priority
}

// Match reports whether sess satisfies both criteria.
func (f Filter) Match(sess Session) bool {
	if f.Status != "" && sess.Status != f.Status {
		return false
	}
	if f.Priority != "" && sess.Priority != f.Priority {
		return false
	}
	return true
}

// Apply returns the sessions matching f, preserving their order.
func (f Filter) Apply(sessions []Session) []Session {
	out := make([]Session, 0, len(sessions))
	for _, sess := range sessions {
		if f.Match(sess) {
			out = append(out, sess)
		}
	}
	return out
}

// Sort returns a copy of sessions ordered for display: overdue sessions
// first, then by ascending due date, then by priority rank. Sessions that
// compare equal keep their relative order.
func Sort(sessions []Session, now time.Time) []Session {
	today := DateOf(now)
	out := slices.Clone(sessions)
	slices.SortStableFunc(out, func(a, b Session) int {
		ao, bo := a.Overdue(today), b.Overdue(today)
		switch {
		case ao && !bo:
			return -1
		case !ao && bo:
			return 1
		}
		if c := a.DueDate.Compare(b.DueDate); c != 0 {
			return c
		}
		return a.Priority.Rank() - b.Priority.Rank()
	})
	return out
}

// View filters and sorts sessions in one step, as shown in a session list.
func View(sessions []Session, f Filter, now time.Time) []Session {
	return Sort(f.Apply(sessions), now)
}

// Stats summarizes a session collection.
type Stats struct {
	Total      int
	Completed  int
	InProgress int
	Pending    int
	TotalHours float64
	// CompletionRate is the rounded percentage of completed sessions, 0 for
	// an empty collection.
	CompletionRate int
}

// Progress returns the unrounded completion ratio in [0, 1].
func (s Stats) Progress() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Completed) / float64(s.Total)
}

// ComputeStats counts sessions by status and sums their durations.
func ComputeStats(sessions []Session) Stats {
	var st Stats
	for _, sess := range sessions {
		st.Total++
		st.TotalHours += sess.DurationHours
		switch sess.Status {
		case StatusCompleted:
			st.Completed++
		case StatusInProgress:
			st.InProgress++
		case StatusPending:
			st.Pending++
		}
	}
	st.CompletionRate = int(math.Round(st.Progress() * 100))
	return st
}
