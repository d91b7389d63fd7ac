package mft

import (
	"testing"
	"time"

	"github.com/alecthomas/assert"
)

func TestFileTimeRoundTrip(t *testing.T) {
	want := time.Date(2023, 1, 15, 12, 0, 0, 0, time.UTC)
	ft := TimeToFileTime(want)
	got := FileTimeToTime(ft)
	assert.Equal(t, want, got)
}

func TestFileTimeToTimeKnownEpoch(t *testing.T) {
	// 1601-01-01 00:00:00 UTC is FILETIME zero.
	got := FileTimeToTime(0)
	assert.Equal(t, 1601, got.Year())
	assert.Equal(t, time.January, got.Month())
	assert.Equal(t, 1, got.Day())
}
