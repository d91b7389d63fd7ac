package mft

import "time"

// filetimeEpochOffset100ns is the number of 100ns intervals between
// the Windows FILETIME epoch (1601-01-01) and the Unix epoch.
const filetimeEpochOffset100ns = 116444736000000000

// FileTimeToTime converts a Windows FILETIME (100-ns intervals since
// 1601-01-01 UTC) to a time.Time.
func FileTimeToTime(ft uint64) time.Time {
	unix100ns := int64(ft) - filetimeEpochOffset100ns
	return time.Unix(unix100ns/10000000, (unix100ns%10000000)*100).UTC()
}

// TimeToFileTime is the inverse of FileTimeToTime, used by the CLI
// layer to translate "-t" relative-day filters into a reference
// filetime for DateMatch.
func TimeToFileTime(t time.Time) uint64 {
	return uint64(t.UnixNano()/100 + filetimeEpochOffset100ns)
}
