//go:build !windows

package sysinfo

import "os"

// Elevated reports whether the process runs with root privileges.
func Elevated() bool {
	return os.Geteuid() == 0
}
