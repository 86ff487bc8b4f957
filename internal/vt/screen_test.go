package vt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite_CompletesLineOnLineFeed(t *testing.T) {
	s := NewScreen(80, 24, nil)
	completed, n, err := s.Write([]byte("hello world\n"))
	require.NoError(t, err)
	assert.Equal(t, 12, n)
	require.Len(t, completed, 1)
	assert.Equal(t, "hello world", completed[0])
}

func TestWrite_CarriageReturnOverwritesInPlaceLine(t *testing.T) {
	s := NewScreen(80, 24, nil)
	_, _, err := s.Write([]byte("progress: 10%\rprogress: 90%\n"))
	require.NoError(t, err)
	lines := s.Lines(0, 1)
	assert.Equal(t, "progress: 90%", lines[0].Text)
}

func TestWrite_StripsAnsiColorCodesFromCompletedLine(t *testing.T) {
	s := NewScreen(80, 24, nil)
	completed, _, err := s.Write([]byte("\x1b[32mok\x1b[0m\n"))
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, "ok", completed[0])
}

func TestWrite_FullResetClearsScreen(t *testing.T) {
	s := NewScreen(80, 24, nil)
	_, _, _ = s.Write([]byte("line one\nline two\n"))
	_, _, err := s.Write([]byte("\x1bc"))
	require.NoError(t, err)
	assert.Equal(t, 0, s.PhysRow0())
	lines := s.Lines(0, 1)
	assert.Equal(t, "", lines[0].Text)
}

func TestWrite_MultipleLinesInOneChunk(t *testing.T) {
	s := NewScreen(80, 24, nil)
	completed, _, err := s.Write([]byte("a\nb\nc\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, completed)
}

func TestClone_IsIndependentOfLiveScreen(t *testing.T) {
	s := NewScreen(80, 24, nil)
	_, _, _ = s.Write([]byte("before\n"))
	clone := s.Clone()
	_, _, _ = s.Write([]byte("after\n"))

	cloneLines := clone.Lines(0, 2)
	assert.Equal(t, "before", cloneLines[0].Text)
	assert.NotEqual(t, "after", cloneLines[1].Text)
}
