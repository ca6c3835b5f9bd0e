//go:build windows

package sysinfo

import "golang.org/x/sys/windows"

// Elevated reports whether the current process token carries
// administrator rights. Errors read as not elevated; the scan then
// simply marks privileged metrics Unknown.
func Elevated() bool {
	var token windows.Token
	if err := windows.OpenProcessToken(windows.CurrentProcess(), windows.TOKEN_QUERY, &token); err != nil {
		return false
	}
	defer token.Close()
	return token.IsElevated()
}
