package process

import "path/filepath"

// resolveWorkingDirectory resolves a process's configured working
// directory against the supervisor's startup CWD. An empty configured
// directory resolves to baseDir itself; a relative configured directory is
// joined onto baseDir; an absolute one is used as-is.
func resolveWorkingDirectory(baseDir, configured string) (string, error) {
	if configured == "" {
		return baseDir, nil
	}
	if filepath.IsAbs(configured) {
		return configured, nil
	}
	return filepath.Join(baseDir, configured), nil
}
