//go:build unix

package ui

import (
	"os"
	"os/signal"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// watchResize notifies driver of every SIGWINCH by re-reading the
// controlling terminal's size, matching the original's resize-on-layout
// behavior. It runs until the process exits; there is no corresponding
// stop since the program always tears down via process exit.
func watchResize(fd int, driver *Driver) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, unix.SIGWINCH)
	go func() {
		for range sigCh {
			cols, rows, err := term.GetSize(fd)
			if err == nil {
				driver.Resize(cols, rows)
			}
		}
	}()
}
