package statusanalyzer

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCompile(pattern string) *regexp.Regexp {
	return regexp.MustCompile(pattern)
}

func TestAnalyzeLine_EmptyLineCarriesNoSignal(t *testing.T) {
	a := ForPreset(TscWatch)
	result := a.AnalyzeLine("   \t  ")
	assert.False(t, result.Classified)
}

func TestAnalyzeLine_TscWatchZeroErrorsIsSuccess(t *testing.T) {
	a := ForPreset(TscWatch)
	result := a.AnalyzeLine(" Found 0 errors. Watching for file changes.")
	require.True(t, result.Classified)
	assert.Equal(t, Success, result.Verdict)
}

func TestAnalyzeLine_TscWatchNonZeroErrorsReportsCount(t *testing.T) {
	a := ForPreset(TscWatch)
	result := a.AnalyzeLine(" Found 7 errors. Watching for file changes.")
	require.True(t, result.Classified)
	assert.Equal(t, Errors, result.Verdict)
	require.NotNil(t, result.ErrorCount)
	assert.Equal(t, uint64(7), *result.ErrorCount)
}

func TestAnalyzeLine_NoRegexesAlwaysRunning(t *testing.T) {
	a := Analyzer{}
	result := a.AnalyzeLine("anything at all")
	require.True(t, result.Classified)
	assert.Equal(t, Running, result.Verdict)
}

func TestAnalyzeLine_SuccessRegexTakesEffectWithoutErrorMatch(t *testing.T) {
	a := Analyzer{SuccessRegex: mustCompile(`build complete`)}
	result := a.AnalyzeLine("build complete in 2.3s")
	require.True(t, result.Classified)
	assert.Equal(t, Success, result.Verdict)
}

func TestAnalyzeLine_ErrorRegexTakesPrecedenceOverSuccessRegex(t *testing.T) {
	a := Analyzer{
		SuccessRegex: mustCompile(`build complete`),
		ErrorRegex:   mustCompile(`([0-9]+) problems`),
	}
	result := a.AnalyzeLine("build complete, 3 problems")
	require.True(t, result.Classified)
	assert.Equal(t, Errors, result.Verdict)
	require.NotNil(t, result.ErrorCount)
	assert.Equal(t, uint64(3), *result.ErrorCount)
}

func TestAnalyzeLine_UnparsableErrorCaptureStillClassifiesAsErrors(t *testing.T) {
	a := Analyzer{ErrorRegex: mustCompile(`problem: (\w+)`)}
	result := a.AnalyzeLine("problem: timeout")
	require.True(t, result.Classified)
	assert.Equal(t, Errors, result.Verdict)
	assert.Nil(t, result.ErrorCount)
}

func TestForPreset_UnknownPresetAlwaysRunning(t *testing.T) {
	a := ForPreset("some-unknown-preset")
	result := a.AnalyzeLine("hello")
	require.True(t, result.Classified)
	assert.Equal(t, Running, result.Verdict)
}
