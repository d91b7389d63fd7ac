//go:build !windows

package driveinfo

import "fmt"

// resolvePlatform has no drive-letter concept outside Windows; it is
// kept so cmd/mftfind can call driveinfo.Resolve uniformly, returning
// a clear error rather than silently misinterpreting the argument.
func resolvePlatform(letter byte) (*Info, error) {
	return nil, fmt.Errorf("driveinfo: drive letter %c: is a Windows-only concept", letter)
}
