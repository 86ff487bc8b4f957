package dependency

import (
	"testing"

	"github.com/mwilliamson/mintaka/internal/process"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_UnknownAfterIsReportedUnresolved(t *testing.T) {
	names := []string{"build"}
	after := []string{"", ""}
	_, unresolved := Build(names, []string{"nonexistent"})
	_ = after
	require.Len(t, unresolved, 1)
	assert.Equal(t, "nonexistent", unresolved[0].UpstreamName)
}

func TestTick_FirstObservationAlwaysEmitsAnAction(t *testing.T) {
	names := []string{"build", "serve"}
	after := []string{"", "build"}
	tracker, unresolved := Build(names, after)
	require.Empty(t, unresolved)

	actions := tracker.Tick(func(i int) process.Status {
		return process.NotStartedStatus()
	})

	require.Len(t, actions, 1)
	assert.Equal(t, 1, actions[0].DownstreamIndex)
	assert.Equal(t, WaitForUpstream, actions[0].Action)
}

func TestTick_UnchangedStatusEmitsNothing(t *testing.T) {
	names := []string{"build", "serve"}
	after := []string{"", "build"}
	tracker, _ := Build(names, after)

	statusFn := func(i int) process.Status { return process.RunningStatus() }
	first := tracker.Tick(statusFn)
	require.Len(t, first, 1)

	second := tracker.Tick(statusFn)
	assert.Empty(t, second)
}

func TestTick_SuccessEmitsRestart(t *testing.T) {
	names := []string{"build", "serve"}
	after := []string{"", "build"}
	tracker, _ := Build(names, after)

	_ = tracker.Tick(func(i int) process.Status { return process.RunningStatus() })

	actions := tracker.Tick(func(i int) process.Status {
		return process.SuccessStatus(process.SuccessID{Instance: 0, Index: 0})
	})

	require.Len(t, actions, 1)
	assert.Equal(t, Restart, actions[0].Action)
}

func TestTick_TwoDistinctSuccessesEachRestartDownstream(t *testing.T) {
	names := []string{"build", "serve"}
	after := []string{"", "build"}
	tracker, _ := Build(names, after)

	_ = tracker.Tick(func(i int) process.Status { return process.RunningStatus() })

	first := tracker.Tick(func(i int) process.Status {
		return process.SuccessStatus(process.SuccessID{Instance: 0, Index: 0})
	})
	require.Len(t, first, 1)
	assert.Equal(t, Restart, first[0].Action)

	second := tracker.Tick(func(i int) process.Status {
		return process.SuccessStatus(process.SuccessID{Instance: 0, Index: 1})
	})
	require.Len(t, second, 1)
	assert.Equal(t, Restart, second[0].Action)
}

func TestTick_MultipleDownstreamsOfSameUpstreamAllReceiveAction(t *testing.T) {
	names := []string{"build", "serve", "docs"}
	after := []string{"", "build", "build"}
	tracker, _ := Build(names, after)

	actions := tracker.Tick(func(i int) process.Status { return process.RunningStatus() })
	require.Len(t, actions, 2)
	indices := []int{actions[0].DownstreamIndex, actions[1].DownstreamIndex}
	assert.Contains(t, indices, 1)
	assert.Contains(t, indices, 2)
}
