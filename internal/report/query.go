package report

import (
	"fmt"
	"io"

	"github.com/Velocidex/ordereddict"
	"github.com/davecgh/go-spew/spew"
	"github.com/olekukonko/tablewriter"

	"github.com/landenlabs/mftfind/internal/mft"
)

// QueryReporter accumulates the full-volume histograms described in
// spec §4.11 as RecordIterator hands it every record, then renders
// them as a tabular summary.
type QueryReporter struct {
	ShowDetail bool
	detailSink io.Writer

	attributeHistogram  *ordereddict.Dict // key: "in_use:" or "deleted:" + "r h s d a c" combo string -> count
	namespaceHistogram  *ordereddict.Dict
	recordTypeHistogram *ordereddict.Dict

	fileCount    int64 // active (in-use) files
	dirCount     int64 // active (in-use) directories
	freeCount    int64 // deleted/free records, file or directory
	corruptCount int64 // records RecordIterator flagged Corrupt

	totalDiskSize int64
	totalFileSize int64
}

// NewQueryReporter constructs an empty accumulator. detailSink
// receives the per-record entry dump when ShowDetail is set; it may be
// nil when ShowDetail is false.
func NewQueryReporter(showDetail bool, detailSink io.Writer) *QueryReporter {
	return &QueryReporter{
		ShowDetail:          showDetail,
		detailSink:          detailSink,
		attributeHistogram:  ordereddict.NewDict(),
		namespaceHistogram:  ordereddict.NewDict(),
		recordTypeHistogram: ordereddict.NewDict(),
	}
}

// Observe folds one decoded record into the running histograms. It
// is meant to be called for every record RecordIterator yields,
// in-use or not, since the deleted/in-use split is itself one of the
// tracked buckets.
func (q *QueryReporter) Observe(entry *mft.FileEntry, attrTypesPresent []mft.AttributeType) {
	bucket := "in_use"
	if entry.Deleted {
		bucket = "deleted"
	}
	key := fmt.Sprintf("%s:%s", bucket, formatAttributeFlags(entry.AttributeFlags))
	incrementInt(q.attributeHistogram, key)

	switch {
	case entry.Corrupt:
		q.corruptCount++
	case entry.Deleted:
		q.freeCount++
	case entry.IsDirectory:
		q.dirCount++
	default:
		q.fileCount++
	}

	q.totalDiskSize += entry.DiskSize
	q.totalFileSize += entry.FileSize

	for _, t := range attrTypesPresent {
		incrementInt(q.recordTypeHistogram, t.String())
	}

	if q.ShowDetail && entry.InUse && q.detailSink != nil {
		q.dumpDetail(entry)
	}
}

// ObserveNamespace records one decoded $FILE_NAME's namespace tag,
// separate from Observe since a record can carry more than one name.
func (q *QueryReporter) ObserveNamespace(ns mft.Namespace) {
	incrementInt(q.namespaceHistogram, ns.String())
}

func incrementInt(d *ordereddict.Dict, key string) {
	v, ok := d.Get(key)
	if !ok {
		d.Set(key, int64(1))
		return
	}
	d.Set(key, v.(int64)+1)
}

func (q *QueryReporter) dumpDetail(entry *mft.FileEntry) {
	fmt.Fprintf(q.detailSink, "record %d (%s):\n", entry.RecordIndex, entry.Name)
	spew.Fdump(q.detailSink, entry)
}

// Render writes the tabular summary to sink.
func (q *QueryReporter) Render(sink io.Writer) {
	table := tablewriter.NewWriter(sink)
	table.SetHeader([]string{"Metric", "Value"})
	table.SetCaption(true, "MFT volume summary")

	table.Append([]string{"Files", fmt.Sprintf("%d", q.fileCount)})
	table.Append([]string{"Directories", fmt.Sprintf("%d", q.dirCount)})
	table.Append([]string{"Free", fmt.Sprintf("%d", q.freeCount)})
	table.Append([]string{"Corrupt", fmt.Sprintf("%d", q.corruptCount)})
	table.Append([]string{"Total disk size", fmt.Sprintf("%d", q.totalDiskSize)})
	table.Append([]string{"Total file size", fmt.Sprintf("%d", q.totalFileSize)})

	for _, key := range q.attributeHistogram.Keys() {
		v, _ := q.attributeHistogram.Get(key)
		table.Append([]string{"Attr " + key, fmt.Sprintf("%d", v)})
	}
	for _, key := range q.namespaceHistogram.Keys() {
		v, _ := q.namespaceHistogram.Get(key)
		table.Append([]string{"Namespace " + key, fmt.Sprintf("%d", v)})
	}
	for _, key := range q.recordTypeHistogram.Keys() {
		v, _ := q.recordTypeHistogram.Get(key)
		table.Append([]string{"Attribute type " + key, fmt.Sprintf("%d", v)})
	}

	table.Render()
}
