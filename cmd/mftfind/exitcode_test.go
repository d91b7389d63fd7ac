package main

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/landenlabs/mftfind/internal/bootsector"
	"github.com/landenlabs/mftfind/internal/filters"
	"github.com/landenlabs/mftfind/internal/mft"
	"github.com/landenlabs/mftfind/internal/runlist"
)

func TestExitCodeForKnownSentinels(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{mft.ErrAborted, exitAborted},
		{filters.ErrFilterInvalid, exitFilterInvalid},
		{mft.ErrNoMFT, exitNoMft},
		{bootsector.NotNtfs, exitNotNtfs},
		{mft.ErrBadExtent, exitBadExtent},
		{runlist.ErrBadRunList, exitBadRunList},
		{mft.ErrBadRecord, exitBadRecord},
		{mft.ErrDeviceRead, exitDeviceError},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, exitCodeFor(c.err), c.err.Error())
	}
}

func TestExitCodeForWrappedError(t *testing.T) {
	wrapped := fmt.Errorf("scanning C:: %w", mft.ErrNoMFT)
	assert.Equal(t, exitNoMft, exitCodeFor(wrapped))
}

func TestExitCodeForUnknownErrorDefaultsToDeviceError(t *testing.T) {
	assert.Equal(t, exitDeviceError, exitCodeFor(fmt.Errorf("some opaque failure")))
}
