package process

import (
	"testing"
	"time"

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

func testSize() Size { return Size{Cols: 80, Rows: 24} }

func TestNewProcess_AutostartTrueStartsPending(t *testing.T) {
	cfg := NewConfig([]string{"/bin/echo", "hi"}, "", "", "", true, "", nil, nil)
	p := NewProcess(cfg, testSize(), "/tmp", func() {})
	assert.Equal(t, statePendingRestart, p.kind)
	assert.True(t, p.Status().IsRunning() || p.kind == statePendingRestart)
}

func TestNewProcess_AutostartFalseStaysNotStarted(t *testing.T) {
	cfg := NewConfig([]string{"/bin/echo", "hi"}, "", "", "", false, "", nil, nil)
	p := NewProcess(cfg, testSize(), "/tmp", func() {})
	assert.Equal(t, stateNotStarted, p.kind)
	assert.Equal(t, NotStartedStatus(), p.Status())
}

func TestStart_EmptyCommandFailsToStart(t *testing.T) {
	cfg := NewConfig(nil, "", "", "", true, "", nil, nil)
	p := NewProcess(cfg, testSize(), "/tmp", func() {})
	p.Start()
	assert.Equal(t, stateFailedToStart, p.kind)
	assert.True(t, p.Status().IsFailure())
	assert.NotEmpty(t, p.SpawnErrorDetail())
}

func TestStart_SpawnFailureSetsFailedToStart(t *testing.T) {
	cfg := NewConfig([]string{"/no/such/binary-mintaka-test"}, "", "", "", true, "", nil, nil)
	p := NewProcess(cfg, testSize(), "/tmp", func() {})
	p.Start()
	assert.Equal(t, stateFailedToStart, p.kind)
	assert.True(t, p.Status().IsFailure())
}

func TestLifecycle_SuccessfulSpawnReachesExited(t *testing.T) {
	woke := make(chan struct{}, 16)
	wake := func() {
		select {
		case woke <- struct{}{}:
		default:
		}
	}

	cfg := NewConfig([]string{"/bin/echo", "hello"}, "", "", "", true, "", nil, nil)
	p := NewProcess(cfg, testSize(), "/tmp", wake)
	p.DoWork()
	require.Equal(t, stateRunning, p.kind)

	waitForCondition(t, 2*time.Second, func() bool {
		p.SynchronizeStatus()
		_, exited := p.Status().ExitCode()
		return exited
	})

	code, ok := p.Status().ExitCode()
	require.True(t, ok)
	assert.Equal(t, 0, code)
}

func TestStop_TransitionsThroughTerminatingToStopped(t *testing.T) {
	woke := make(chan struct{}, 16)
	wake := func() {
		select {
		case woke <- struct{}{}:
		default:
		}
	}

	cfg := NewConfig([]string{"/bin/sleep", "30"}, "", "", "", true, "", nil, nil)
	p := NewProcess(cfg, testSize(), "/tmp", wake)
	p.DoWork()
	require.Equal(t, stateRunning, p.kind)

	p.Stop()
	assert.Equal(t, stateTerminating, p.kind)
	assert.Equal(t, stateStopped, p.nextKind)

	waitForCondition(t, 6*time.Second, func() bool {
		p.SynchronizeStatus()
		return p.IsStopped()
	})

	assert.True(t, p.IsStopped())
	assert.False(t, p.Status().IsFailure())
}

func TestStop_NeverAutoRestartedByDoWork(t *testing.T) {
	cfg := NewConfig([]string{"/bin/echo", "hi"}, "", "", "", false, "", nil, nil)
	p := NewProcess(cfg, testSize(), "/tmp", func() {})
	p.kind = stateStopped
	p.DoWork()
	assert.Equal(t, stateStopped, p.kind)
}
