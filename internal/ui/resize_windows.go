//go:build windows

package ui

// watchResize is a no-op on Windows: there is no SIGWINCH equivalent wired
// here, so a terminal resize requires restarting Mintaka.
func watchResize(fd int, driver *Driver) {}
