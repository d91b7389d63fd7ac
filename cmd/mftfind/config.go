package main

import (
	"strings"
	"time"

	"github.com/landenlabs/mftfind/internal/filters"
	"github.com/landenlabs/mftfind/internal/mft"
	"github.com/landenlabs/mftfind/internal/report"
)

// buildPipeline assembles one immutable filters.Pipeline from the
// flags in effect for this run, plus extraPattern: a name/directory
// glob embedded in one drive argument (see splitDriveAndEmbeddedPattern).
// This mirrors NTFSfastFind.cpp's drive loop, which pushes the
// drive-embedded pattern onto the shared filter list before scanning
// that drive and pops it straight back off afterwards — here that
// push/pop is just a fresh call to buildPipeline per drive, since the
// pipeline is an immutable value built once rather than a mutable
// stack shared across drives (per SPEC_FULL's redesign of
// ReportConfig's PushFilter/PopFilter and the pAnyNamefilters
// singleton). The global -f pattern and the drive-embedded one are
// still grouped the way AddFileFilter's pAnyNamefilters did it:
// multiple name patterns OR together, multiple directory patterns OR
// together, and that combined name/directory match ANDs against the
// other filter kinds (date, size, streams, attributes).
func buildPipeline(extraPattern string) (*filters.Pipeline, error) {
	var readFilters []filters.Match
	var nameMatches []filters.Match
	var dirMatches []filters.Match

	addNamePattern := func(pattern string) {
		namePattern, dirPattern := splitNameAndDirectoryPattern(pattern)
		if namePattern != "" && namePattern != "*" {
			m := filters.NameMatch(namePattern)
			if invertFilter {
				m = filters.Not(m)
			}
			nameMatches = append(nameMatches, m)
		}
		if dirPattern != "" {
			m := filters.DirectoryMatch(dirPattern)
			if invertFilter {
				m = filters.Not(m)
			}
			dirMatches = append(dirMatches, m)
		}
	}

	if *flagNamePattern != "" {
		addNamePattern(*flagNamePattern)
	}
	if extraPattern != "" {
		addNamePattern(extraPattern)
	}

	if len(nameMatches) > 0 {
		combined, err := filters.Any(nameMatches)
		if err != nil {
			return nil, err
		}
		readFilters = append(readFilters, combined)
	}

	var postFilter filters.Match
	if len(dirMatches) > 0 {
		combined, err := filters.Any(dirMatches)
		if err != nil {
			return nil, err
		}
		postFilter = combined
	}

	if *flagDays != 0 {
		reference := relativeDayFiletime(*flagDays)
		// Positive DAYS means "older than DAYS days" (modified before
		// the cutoff); negative means "newer than |DAYS| days ago"
		// (modified after the cutoff).
		cmp := filters.Greater
		if *flagDays > 0 {
			cmp = filters.Less
		}
		m := filters.DateMatch(reference, cmp)
		if invertDays {
			m = filters.Not(m)
		}
		readFilters = append(readFilters, m)
	}

	if *flagSize != 0 {
		m := filters.SizeMatchFromSigned(*flagSize)
		if invertSize {
			m = filters.Not(m)
		}
		readFilters = append(readFilters, m)
	}

	if *flagStreams != 0 {
		m := filters.StreamCountMatch(*flagStreams, filters.Equal)
		if invertStreams {
			m = filters.Not(m)
		}
		readFilters = append(readFilters, m)
	}

	if *flagAttrMask != "" {
		mask, err := filters.ParseAttributeMask(*flagAttrMask)
		if err != nil {
			return nil, err
		}
		readFilters = append(readFilters, filters.AttributeMaskMatch(mask))
	}

	var readFilter filters.Match
	if len(readFilters) > 0 {
		combined, err := filters.All(readFilters)
		if err != nil {
			return nil, err
		}
		readFilter = combined
	}

	return &filters.Pipeline{
		ReadFilter:  readFilter,
		PostFilter:  postFilter,
		DeletedOnly: *flagDeletedOnly,
	}, nil
}

// splitDriveAndEmbeddedPattern splits a positional drive argument that
// embeds its own filter pattern after a Windows-style "C:" prefix, e.g.
// "C:\*.docx" or "C:*.docx", the way NTFSfastFind.cpp's drive loop does
// (arg[1] == ':' and len(arg) > 3): the first two characters are the
// bare drive, everything after an optional separator is an extra -f
// pattern layered onto this drive's scan only. A drive argument with no
// embedded pattern (the common case) returns it unchanged with "".
func splitDriveAndEmbeddedPattern(arg string) (drive, pattern string) {
	if len(arg) > 3 && arg[1] == ':' {
		if arg[2] == '\\' || arg[2] == '/' {
			return arg[:2], arg[3:]
		}
		return arg[:2], arg[2:]
	}
	return arg, ""
}

// splitNameAndDirectoryPattern splits a -f argument into its name
// glob and directory glob halves, the way AddFileFilter in
// NTFSfastFind.cpp does: everything after the last slash is the name
// pattern, everything before it is the directory pattern. A pattern
// with no slash at all is name-only.
func splitNameAndDirectoryPattern(pattern string) (name, dir string) {
	i := strings.LastIndexAny(pattern, `\/`)
	if i < 0 {
		return pattern, ""
	}
	return pattern[i+1:], pattern[:i]
}

// relativeDayFiletime translates the "-t DAYS" CLI convention
// (negative = newer-than, positive = older-than, both relative to
// now) into an absolute Windows filetime for DateMatch, ported from
// NtfsUtil.cpp's relative-day handling.
func relativeDayFiletime(days float64) uint64 {
	magnitude := days
	if magnitude < 0 {
		magnitude = -magnitude
	}
	offset := time.Duration(magnitude * 24 * float64(time.Hour))
	return mft.TimeToFileTime(time.Now().UTC().Add(-offset))
}

// buildReportConfig maps the report column flags onto report.Config.
func buildReportConfig() report.Config {
	var cols []report.Column
	if *flagColIndex {
		cols = append(cols, report.ColumnMFTIndex)
	}
	if *flagColTime {
		cols = append(cols, report.ColumnModifyTime)
	}
	if *flagColSize {
		cols = append(cols, report.ColumnDiskSize, report.ColumnFileSize)
	}
	cols = append(cols, report.ColumnAttributeFlags)
	if *flagColDirectory {
		cols = append(cols, report.ColumnDirectory)
	}
	cols = append(cols, report.ColumnFileName)
	if *flagColCounts {
		cols = append(cols, report.ColumnStreamCount, report.ColumnNameCount)
	}
	if *flagColExtents {
		cols = append(cols, report.ColumnExtents)
	}

	return report.Config{Columns: cols, Separator: *flagSeparator}
}
