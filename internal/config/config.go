// Package config loads and validates the TOML document describing the set
// of processes Mintaka should supervise.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/BurntSushi/toml"
	"github.com/mwilliamson/mintaka/internal/process"
	"github.com/mwilliamson/mintaka/internal/statusanalyzer"
	"github.com/mwilliamson/mintaka/internal/supervisor"
)

// Kind distinguishes config-time error cases, so main can pick an exit
// code without string-matching.
type Kind int

const (
	KindUnreadable Kind = iota
	KindMalformed
	KindInvalidProcess
)

// Error is a config-time error: missing file, unreadable file, malformed
// document, or a process entry that fails validation.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

// rawDocument mirrors the TOML schema exactly (field names matter for
// BurntSushi/toml's key matching).
type rawDocument struct {
	Processes []rawProcess `toml:"processes"`
}

type rawProcess struct {
	Command          []string `toml:"command"`
	Name             string   `toml:"name"`
	WorkingDirectory string   `toml:"working_directory"`
	Type             string   `toml:"type"`
	After            string   `toml:"after"`
	Autostart        *bool    `toml:"autostart"`
	SuccessRegex     string   `toml:"success_regex"`
	ErrorRegex       string   `toml:"error_regex"`
}

// Load reads and validates the configuration document at path, returning
// the ordered ProcessSpecs ready to hand to supervisor.New.
func Load(path string) ([]supervisor.ProcessSpec, error) {
	var doc rawDocument
	if _, err := toml.DecodeFile(path, &doc); err != nil {
		if isNotExistLike(err) {
			return nil, &Error{Kind: KindUnreadable, Message: "could not read config file " + path, Cause: err}
		}
		return nil, &Error{Kind: KindMalformed, Message: "could not parse config file " + path, Cause: err}
	}

	specs := make([]supervisor.ProcessSpec, 0, len(doc.Processes))
	for i, raw := range doc.Processes {
		spec, err := raw.toSpec()
		if err != nil {
			return nil, &Error{Kind: KindInvalidProcess, Message: fmt.Sprintf("processes[%d] is invalid", i), Cause: err}
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func (raw rawProcess) toSpec() (supervisor.ProcessSpec, error) {
	if len(raw.Command) == 0 {
		return supervisor.ProcessSpec{}, fmt.Errorf("command must be a non-empty array")
	}

	var successRegex, errorRegex *regexp.Regexp
	if raw.SuccessRegex != "" {
		re, err := regexp.Compile(raw.SuccessRegex)
		if err != nil {
			return supervisor.ProcessSpec{}, fmt.Errorf("invalid success_regex: %w", err)
		}
		successRegex = re
	}
	if raw.ErrorRegex != "" {
		re, err := regexp.Compile(raw.ErrorRegex)
		if err != nil {
			return supervisor.ProcessSpec{}, fmt.Errorf("invalid error_regex: %w", err)
		}
		errorRegex = re
	}

	autostart := raw.After == ""
	if raw.Autostart != nil {
		autostart = *raw.Autostart
	}

	cfg := process.NewConfig(
		raw.Command,
		raw.Name,
		raw.WorkingDirectory,
		raw.After,
		autostart,
		statusanalyzer.Preset(raw.Type),
		successRegex,
		errorRegex,
	)

	return supervisor.ProcessSpec{Config: cfg, After: raw.After}, nil
}

func isNotExistLike(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}
