package process

import (
	"regexp"

	"github.com/mwilliamson/mintaka/internal/statusanalyzer"
)

// Config is the immutable, collaborator-supplied description of one
// process. It never changes after being built by the config loader.
type Config struct {
	// Command is the argument vector; Command[0] is the executable.
	Command []string
	// Name defaults to Command joined by spaces when empty.
	Name string
	// WorkingDirectory, if set, is resolved against the supervisor's
	// startup CWD.
	WorkingDirectory string
	// After names an upstream process by display name, or is empty.
	After string
	// Autostart defaults to (After == "") when unset by the loader;
	// the loader always resolves this before constructing Config.
	Autostart bool

	analyzer statusanalyzer.Analyzer
}

// NewConfig builds a Config, resolving the process-type preset and any
// explicit regex overrides into a single Analyzer. Explicit regexes always
// win over the preset's regexes, letting a config entry refine a preset
// without abandoning it.
func NewConfig(command []string, name, workingDirectory, after string, autostart bool, preset statusanalyzer.Preset, successRegex, errorRegex *regexp.Regexp) Config {
	analyzer := statusanalyzer.ForPreset(preset)
	if successRegex != nil {
		analyzer.SuccessRegex = successRegex
	}
	if errorRegex != nil {
		analyzer.ErrorRegex = errorRegex
	}
	return Config{
		Command:          command,
		Name:             name,
		WorkingDirectory: workingDirectory,
		After:            after,
		Autostart:        autostart,
		analyzer:         analyzer,
	}
}

// DisplayName returns Name if set, else Command joined by spaces.
func (c Config) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	joined := ""
	for i, arg := range c.Command {
		if i > 0 {
			joined += " "
		}
		joined += arg
	}
	return joined
}
