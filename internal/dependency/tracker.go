// Package dependency implements the Dependency Tracker: it watches each
// upstream process's status and decides when to restart, or make wait,
// its downstream processes.
package dependency

import "github.com/mwilliamson/mintaka/internal/process"

// Action is the downstream action emitted for one upstream transition.
type Action int

const (
	// Restart means the downstream process should be restarted: the
	// upstream just became (freshly) successful.
	Restart Action = iota
	// WaitForUpstream means the downstream process should wait: the
	// upstream is no longer successful.
	WaitForUpstream
)

// entry is one upstream's tracked state: its index, the downstream indices
// depending on it, and the last observed status used to suppress
// redundant actions.
type entry struct {
	upstreamIndex int
	downstream    []int
	lastStatus    process.Status
	initialized   bool
}

// Tracker maps each upstream process index to its downstream indices. Built
// once at startup from the process names and `after` references, then
// immutable in shape.
type Tracker struct {
	entries []entry
}

// Unresolved is one `after` reference that named no known process; callers
// log these as a start-time diagnostic, per the spec's edge policy.
type Unresolved struct {
	DownstreamIndex int
	UpstreamName    string
}

// Build constructs the tracker from the ordered list of (name, after)
// pairs taken from the process configs. An `after` naming an unknown
// process is silently ignored for tracking purposes and reported back via
// the returned Unresolved list.
func Build(names []string, after []string) (*Tracker, []Unresolved) {
	nameToIndex := make(map[string]int, len(names))
	for i, name := range names {
		nameToIndex[name] = i
	}

	downstreamByUpstream := make(map[int][]int)
	var unresolved []Unresolved

	for downstreamIndex, upstreamName := range after {
		if upstreamName == "" {
			continue
		}
		upstreamIndex, ok := nameToIndex[upstreamName]
		if !ok {
			unresolved = append(unresolved, Unresolved{DownstreamIndex: downstreamIndex, UpstreamName: upstreamName})
			continue
		}
		downstreamByUpstream[upstreamIndex] = append(downstreamByUpstream[upstreamIndex], downstreamIndex)
	}

	t := &Tracker{}
	for upstreamIndex := 0; upstreamIndex < len(names); upstreamIndex++ {
		downstream, ok := downstreamByUpstream[upstreamIndex]
		if !ok {
			continue
		}
		t.entries = append(t.entries, entry{upstreamIndex: upstreamIndex, downstream: downstream})
	}

	return t, unresolved
}

// DownstreamAction pairs a downstream process index with the action to
// apply to it.
type DownstreamAction struct {
	DownstreamIndex int
	Action          Action
}

// Tick reads the current status of every tracked upstream (via
// currentStatus), compares it against the last observed status by value
// equality (Success comparisons include the SuccessID, so a fresh success
// is always a distinct transition), and emits actions for entries whose
// status changed. Unchanged entries emit nothing.
func (t *Tracker) Tick(currentStatus func(index int) process.Status) []DownstreamAction {
	var actions []DownstreamAction

	for i := range t.entries {
		e := &t.entries[i]
		status := currentStatus(e.upstreamIndex)

		if e.initialized && status.Equal(e.lastStatus) {
			continue
		}
		e.lastStatus = status
		e.initialized = true

		action := WaitForUpstream
		if status.IsSuccess() {
			action = Restart
		}
		for _, downstreamIndex := range e.downstream {
			actions = append(actions, DownstreamAction{DownstreamIndex: downstreamIndex, Action: action})
		}
	}

	return actions
}
