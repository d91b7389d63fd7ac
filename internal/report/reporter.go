// Package report implements the columnar text emitter (Reporter) and
// the full-volume statistics emitter (QueryReporter) described in
// spec §4.10-4.11.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/landenlabs/mftfind/internal/mft"
	"github.com/landenlabs/mftfind/internal/runlist"
)

// Column identifies one reportable field. Order in a Config.Columns
// slice is the order columns are emitted.
type Column int

const (
	ColumnMFTIndex Column = iota
	ColumnModifyTime
	ColumnDiskSize
	ColumnFileSize
	ColumnAttributeFlags
	ColumnDirectory
	ColumnFileName
	ColumnStreamCount
	ColumnNameCount
	ColumnExtents
)

func (c Column) header() string {
	switch c {
	case ColumnMFTIndex:
		return "MFT_INDEX"
	case ColumnModifyTime:
		return "MODIFIED"
	case ColumnDiskSize:
		return "DISK_SIZE"
	case ColumnFileSize:
		return "FILE_SIZE"
	case ColumnAttributeFlags:
		return "ATTR"
	case ColumnDirectory:
		return "DIRECTORY"
	case ColumnFileName:
		return "NAME"
	case ColumnStreamCount:
		return "STREAMS"
	case ColumnNameCount:
		return "NAMES"
	case ColumnExtents:
		return "EXTENTS"
	default:
		return "?"
	}
}

// Config carries the reportable column set and formatting knobs for
// Reporter, mirroring the CLI's report flags (-D -I -S -T -V -#).
type Config struct {
	Columns   []Column
	Separator string
}

// Reporter emits one header row, then one row per matched entry, to
// sink. It never resolves directories itself — callers populate
// entry.Directory before calling Emit if ColumnDirectory is in use.
type Reporter struct {
	cfg         Config
	sink        io.Writer
	wroteHeader bool
}

// NewReporter constructs a Reporter writing to sink. An empty
// Columns slice defaults to name + size + modify-time, a reasonable
// minimal report.
func NewReporter(sink io.Writer, cfg Config) *Reporter {
	if len(cfg.Columns) == 0 {
		cfg.Columns = []Column{ColumnFileName, ColumnFileSize, ColumnModifyTime}
	}
	if cfg.Separator == "" {
		cfg.Separator = " "
	}
	return &Reporter{cfg: cfg, sink: sink}
}

// Emit writes one row for entry, writing the header row first if this
// is the first call.
func (r *Reporter) Emit(entry *mft.FileEntry) error {
	if !r.wroteHeader {
		headers := make([]string, len(r.cfg.Columns))
		for i, c := range r.cfg.Columns {
			headers[i] = c.header()
		}
		if _, err := fmt.Fprintln(r.sink, strings.Join(headers, r.cfg.Separator)); err != nil {
			return err
		}
		r.wroteHeader = true
	}

	values := make([]string, len(r.cfg.Columns))
	for i, c := range r.cfg.Columns {
		values[i] = r.format(c, entry)
	}
	_, err := fmt.Fprintln(r.sink, strings.Join(values, r.cfg.Separator))
	return err
}

func (r *Reporter) format(c Column, entry *mft.FileEntry) string {
	switch c {
	case ColumnMFTIndex:
		return fmt.Sprintf("%d", entry.RecordIndex)
	case ColumnModifyTime:
		return entry.Modified.Format("2006-01-02T15:04:05Z")
	case ColumnDiskSize:
		return fmt.Sprintf("%d", entry.DiskSize)
	case ColumnFileSize:
		return fmt.Sprintf("%d", entry.FileSize)
	case ColumnAttributeFlags:
		return formatAttributeFlags(entry.AttributeFlags)
	case ColumnDirectory:
		return entry.Directory
	case ColumnFileName:
		return entry.Name
	case ColumnStreamCount:
		return fmt.Sprintf("%d", entry.StreamCount)
	case ColumnNameCount:
		return fmt.Sprintf("%d", entry.NameCount)
	case ColumnExtents:
		return formatExtents(entry.Extents)
	default:
		return ""
	}
}

func formatAttributeFlags(flags uint32) string {
	var b strings.Builder
	if flags&mft.AttrReadOnly != 0 {
		b.WriteByte('r')
	}
	if flags&mft.AttrHidden != 0 {
		b.WriteByte('h')
	}
	if flags&mft.AttrSystem != 0 {
		b.WriteByte('s')
	}
	if flags&mft.AttrDirectory != 0 {
		b.WriteByte('d')
	}
	if flags&mft.AttrArchive != 0 {
		b.WriteByte('a')
	}
	if flags&mft.AttrCompressed != 0 {
		b.WriteByte('c')
	}
	if b.Len() == 0 {
		return "-"
	}
	return b.String()
}

func formatExtents(extents []runlist.Extent) string {
	parts := make([]string, len(extents))
	for i, e := range extents {
		if e.LCN == runlist.SparseLCN {
			parts[i] = fmt.Sprintf("sparse:%d", e.Clusters)
		} else {
			parts[i] = fmt.Sprintf("%d:%d", e.LCN, e.Clusters)
		}
	}
	return strings.Join(parts, ",")
}
