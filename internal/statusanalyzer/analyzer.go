// Package statusanalyzer classifies a single completed output line from a
// supervised process into a running/success/error verdict.
package statusanalyzer

import (
	"regexp"
	"strconv"
	"strings"
)

// Verdict is the classification of one completed line. It carries no
// process identity: the caller (the process instance's reader loop) is
// responsible for attaching a SuccessId to Success verdicts.
type Verdict int

const (
	// Running means the process printed something but gave no success or
	// error signal.
	Running Verdict = iota
	// Success means the line matched the configured success criteria.
	Success
	// Errors means the line matched the configured error criteria.
	// Result.ErrorCount is the parsed error count, if the regex captured a numeric group.
	Errors
)

// Result is the outcome of analyzing one line. Classified is false when the
// line carried no signal (analyze_line returning None in the original
// design) — the caller should leave the status untouched.
type Result struct {
	Classified bool
	Verdict    Verdict
	ErrorCount *uint64
}

var noResult = Result{}

// Analyzer holds the compiled regex pair used to classify lines. Both
// fields are optional; an Analyzer with neither set always reports Running
// for any non-empty line.
type Analyzer struct {
	SuccessRegex *regexp.Regexp
	ErrorRegex   *regexp.Regexp
}

// AnalyzeLine classifies the most recently completed output line.
//
// Contract: an empty-after-trim line carries no signal. If an error regex
// is configured and matches, capture group 1 is parsed as the error count;
// a parsed value of zero is treated as a success sentinel (some watchers
// print "Found 0 errors" to signal success). Otherwise, if a success regex
// is configured and matches, the line is a success. Otherwise the line
// means the process is still running.
func (a Analyzer) AnalyzeLine(lastLine string) Result {
	if strings.TrimSpace(lastLine) == "" {
		return noResult
	}

	if a.ErrorRegex != nil {
		if m := a.ErrorRegex.FindStringSubmatch(lastLine); m != nil {
			if len(m) > 1 {
				if n, err := strconv.ParseUint(m[1], 10, 64); err == nil {
					if n == 0 {
						return Result{Classified: true, Verdict: Success}
					}
					count := n
					return Result{Classified: true, Verdict: Errors, ErrorCount: &count}
				}
			}
			return Result{Classified: true, Verdict: Errors}
		}
	}

	if a.SuccessRegex != nil && a.SuccessRegex.MatchString(lastLine) {
		return Result{Classified: true, Verdict: Success}
	}

	return Result{Classified: true, Verdict: Running}
}

// Preset names a built-in process-type regex pair, selected in config via
// the `type` field.
type Preset string

// TscWatch is the built-in preset for `tsc --watch`-style TypeScript
// compilers: it signals success by printing a zero error count through the
// same "Found N errors" banner used for failure counts.
const TscWatch Preset = "tsc-watch"

var tscWatchErrorRegex = regexp.MustCompile(` Found ([0-9]+) error[s]?\. Watching for file changes\.`)

// ForPreset returns the Analyzer a built-in preset configures. Unknown
// presets return a zero-value Analyzer (always Running), matching the
// original's "Unknown" process type fallback.
func ForPreset(preset Preset) Analyzer {
	switch preset {
	case TscWatch:
		return Analyzer{ErrorRegex: tscWatchErrorRegex}
	default:
		return Analyzer{}
	}
}
