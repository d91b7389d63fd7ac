package main

import (
	"fmt"
	"os"

	kingpin "gopkg.in/alecthomas/kingpin.v2"
)

var (
	app = kingpin.New("mftfind",
		"Enumerate files on an NTFS volume by reading the MFT directly from the raw device.")

	flagNamePattern = app.Flag("filter", "Name glob, e.g. *.docx; optionally prefixed with a directory glob. Prefix with -! to invert, e.g. -!f").
		Short('f').String()

	flagDays = app.Flag("days", "Modified-time filter: negative N means newer than |N| days, positive means older than N days. Prefix with -! to invert, e.g. -!t").
		Short('t').Float64()

	flagSize = app.Flag("size", "Signed size filter in bytes: positive means greater-than, negative means less-than. Prefix with -! to invert, e.g. -!s").
		Short('s').Int64()

	flagStreams = app.Flag("streams", "Stream-count filter. Prefix with -! to invert, e.g. -!d").
		Short('d').Int()

	flagAttrMask = app.Flag("attr", "Attribute mask characters: any of s h r d f c.").
		Short('A').String()
	flagColDirectory = app.Flag("dir-column", "Include the resolved directory column.").Short('D').Bool()
	flagColIndex     = app.Flag("index-column", "Include the MFT-index column.").Short('I').Bool()
	flagColSize      = app.Flag("size-column", "Include the size columns.").Short('S').Bool()
	flagColTime      = app.Flag("time-column", "Include the modified-time column.").Short('T').Bool()
	flagColExtents   = app.Flag("extents-column", "Include the extent-list column.").Short('V').Bool()
	flagColCounts    = app.Flag("count-columns", "Include the stream/name count columns.").Short('#').Bool()
	flagDeletedOnly  = app.Flag("deleted-only", "Report only deleted (not-in-use) records.").Short('X').Bool()
	flagQuery        = app.Flag("query", "Run QueryReporter instead of the per-file report.").Short('Q').Bool()
	flagVerbose      = app.Flag("verbose", "With -Q, dump each in-use record's decoded entry.").Short('v').Bool()
	flagSlow         = app.Flag("slow", "Force the OS directory-walk collaborator instead of reading the MFT.").Short('z').Bool()
	flagSeparator    = app.Flag("separator", "Column separator for the per-file report.").Default(" ").String()

	argDrives = app.Arg("drive", "One or more drive letters or paths to scan.").Required().Strings()
)

// invertFilter, invertDays, invertSize and invertStreams record a "-!"
// prefix against the filter flag it immediately precedes, ported from
// NTFSfastFind.cpp's matchOn/'!' getopt case: the prefix inverts only
// the one filter flag that follows it, then resets, rather than a
// standing invert switch.
var (
	invertFilter  bool
	invertDays    bool
	invertSize    bool
	invertStreams bool
)

// stripInvertPrefixes rewrites "-!f", "-!t", "-!s" and "-!d" (and
// their bundled-value forms, e.g. "-!f*.txt") into the plain flag
// token kingpin understands, recording the inversion in the
// package-level invert* vars as it goes.
func stripInvertPrefixes(args []string) []string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		if len(a) < 3 || a[0] != '-' || a[1] != '!' {
			out = append(out, a)
			continue
		}
		switch a[2] {
		case 'f':
			invertFilter = true
		case 't':
			invertDays = true
		case 's':
			invertSize = true
		case 'd':
			invertStreams = true
		default:
			out = append(out, a)
			continue
		}
		out = append(out, "-"+a[2:])
	}
	return out
}

func main() {
	app.HelpFlag.Short('h')
	app.UsageTemplate(kingpin.CompactUsageTemplate)
	kingpin.MustParse(app.Parse(stripInvertPrefixes(os.Args[1:])))

	code := 0
	for _, arg := range *argDrives {
		drive, pattern := splitDriveAndEmbeddedPattern(arg)
		if err := scanDrive(drive, pattern, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "mftfind: %s: %v\n", drive, err)
			code = exitCodeFor(err)
		}
	}
	os.Exit(code)
}
