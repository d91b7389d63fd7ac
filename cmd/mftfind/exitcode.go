package main

import (
	"errors"

	"github.com/landenlabs/mftfind/internal/bootsector"
	"github.com/landenlabs/mftfind/internal/device"
	"github.com/landenlabs/mftfind/internal/filters"
	"github.com/landenlabs/mftfind/internal/mft"
	"github.com/landenlabs/mftfind/internal/runlist"
)

// Exit codes per spec §6/§7. Aborted is negative so it is visibly
// distinct from an OS/errno-derived code; everything else is a small
// positive sentinel assigned in the order its failure mode appears in
// the read path: device, volume, MFT bootstrap, then per-record.
const (
	exitOK            = 0
	exitDeviceError   = 1
	exitNotNtfs       = 2
	exitNoMft         = 3
	exitBadRecord     = 4
	exitBadRunList    = 5
	exitBadExtent     = 6
	exitFilterInvalid = 7
	exitAborted       = -2
)

// exitCodeFor maps a scanDrive failure to a process exit code. Errors
// are matched most-specific first; anything unrecognised is reported
// as a device error.
func exitCodeFor(err error) int {
	switch {
	case errors.Is(err, mft.ErrAborted):
		return exitAborted
	case errors.Is(err, filters.ErrFilterInvalid):
		return exitFilterInvalid
	case errors.Is(err, mft.ErrNoMFT):
		return exitNoMft
	case errors.Is(err, bootsector.NotNtfs):
		return exitNotNtfs
	case errors.Is(err, mft.ErrBadExtent):
		return exitBadExtent
	case errors.Is(err, runlist.ErrBadRunList):
		return exitBadRunList
	case errors.Is(err, mft.ErrBadRecord), errors.Is(err, mft.ErrRecordTooShort), errors.Is(err, mft.ErrNoName):
		return exitBadRecord
	case isDeviceError(err):
		return exitDeviceError
	default:
		return exitDeviceError
	}
}

func isDeviceError(err error) bool {
	var de *device.DeviceError
	return errors.As(err, &de) || errors.Is(err, mft.ErrDeviceRead) || errors.Is(err, device.ErrUnaligned)
}
