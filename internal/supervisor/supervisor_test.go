package supervisor

import (
	"testing"
	"time"

	"github.com/mwilliamson/mintaka/internal/process"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitForCondition(t *testing.T, timeout time.Duration, check func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if check() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	require.True(t, check(), "condition not met within %s", timeout)
}

func newTestSupervisor(t *testing.T, specs []ProcessSpec) *Supervisor {
	t.Helper()
	return New(specs, t.TempDir(), process.Size{Cols: 80, Rows: 24}, func() {}, nil)
}

func TestDoWork_AfterCascadeRestartsDownstreamOnUpstreamSuccess(t *testing.T) {
	build := process.NewConfig([]string{"/bin/echo", "built"}, "build", "", "", true, "", nil, nil)
	serve := process.NewConfig([]string{"/bin/sleep", "30"}, "serve", "", "build", true, "", nil, nil)

	sup := newTestSupervisor(t, []ProcessSpec{
		{Config: build},
		{Config: serve, After: "build"},
	})

	sup.DoWork()
	assert.Equal(t, "build", sup.Processes()[0].Name)

	waitForCondition(t, 2*time.Second, func() bool {
		sup.DoWork()
		return sup.Processes()[1].Status.IsRunning()
	})

	assert.True(t, sup.Processes()[1].Status.IsRunning())
}

func TestScroll_EntersHistoryAndClampsLineIndex(t *testing.T) {
	cfg := process.NewConfig([]string{"/bin/sleep", "30"}, "proc", "", "", true, "", nil, nil)
	sup := newTestSupervisor(t, []ProcessSpec{{Config: cfg}})
	sup.DoWork()

	assert.Equal(t, ModeMain, sup.Mode())
	sup.Scroll(process.ScrollPageUp)
	assert.Equal(t, ModeHistory, sup.Mode())
	assert.GreaterOrEqual(t, sup.snapshot.LineIndex(), 0)

	sup.LeaveHistory()
	assert.Equal(t, ModeMain, sup.Mode())
}

func TestStopAll_SettlesEveryProcessIntoStopped(t *testing.T) {
	a := process.NewConfig([]string{"/bin/sleep", "30"}, "a", "", "", true, "", nil, nil)
	b := process.NewConfig([]string{"/bin/sleep", "30"}, "b", "", "", true, "", nil, nil)
	sup := newTestSupervisor(t, []ProcessSpec{{Config: a}, {Config: b}})
	sup.DoWork()

	sup.StopAll()

	waitForCondition(t, 6*time.Second, func() bool {
		sup.DoWork()
		return sup.IsStopped()
	})

	assert.True(t, sup.IsStopped())
}

func TestMoveFocus_WrapsAroundAndDisablesAutofocus(t *testing.T) {
	a := process.NewConfig([]string{"/bin/sleep", "30"}, "a", "", "", true, "", nil, nil)
	b := process.NewConfig([]string{"/bin/sleep", "30"}, "b", "", "", true, "", nil, nil)
	sup := newTestSupervisor(t, []ProcessSpec{{Config: a}, {Config: b}})

	assert.True(t, sup.AutofocusEnabled())
	sup.MoveFocusUp()
	assert.False(t, sup.AutofocusEnabled())
	assert.Equal(t, 1, sup.FocusedProcessIndex())

	sup.MoveFocusDown()
	assert.Equal(t, 0, sup.FocusedProcessIndex())

	sup.StopAll()
}
