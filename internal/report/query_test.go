package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/landenlabs/mftfind/internal/mft"
)

func TestQueryReporterCountsFilesAndDirectories(t *testing.T) {
	q := NewQueryReporter(false, nil)

	q.Observe(&mft.FileEntry{IsDirectory: true, DiskSize: 0}, nil)
	q.Observe(&mft.FileEntry{IsDirectory: false, DiskSize: 4096, FileSize: 100}, nil)
	q.Observe(&mft.FileEntry{IsDirectory: false, DiskSize: 8192, FileSize: 200}, nil)

	assert.EqualValues(t, 1, q.dirCount)
	assert.EqualValues(t, 2, q.fileCount)
	assert.EqualValues(t, 0, q.freeCount)
	assert.EqualValues(t, 12288, q.totalDiskSize)
	assert.EqualValues(t, 300, q.totalFileSize)
}

func TestQueryReporterCountsFreeRecordsSeparatelyFromActive(t *testing.T) {
	q := NewQueryReporter(false, nil)

	for i := 0; i < 960; i++ {
		q.Observe(&mft.FileEntry{IsDirectory: false}, nil)
	}
	for i := 0; i < 40; i++ {
		q.Observe(&mft.FileEntry{IsDirectory: true}, nil)
	}
	for i := 0; i < 50; i++ {
		q.Observe(&mft.FileEntry{Deleted: true, IsDirectory: i%2 == 0}, nil)
	}

	assert.EqualValues(t, 960, q.fileCount)
	assert.EqualValues(t, 40, q.dirCount)
	assert.EqualValues(t, 50, q.freeCount)

	var out bytes.Buffer
	q.Render(&out)
	assert.Contains(t, out.String(), "Free")
}

func TestQueryReporterCountsCorruptRecordsSeparately(t *testing.T) {
	q := NewQueryReporter(false, nil)

	for i := 0; i < 16; i++ {
		q.Observe(&mft.FileEntry{IsDirectory: false}, nil)
	}
	q.Observe(&mft.FileEntry{Corrupt: true}, nil)

	assert.EqualValues(t, 16, q.fileCount)
	assert.EqualValues(t, 1, q.corruptCount)

	var out bytes.Buffer
	q.Render(&out)
	assert.Contains(t, out.String(), "Corrupt")
}

func TestQueryReporterBucketsInUseVsDeleted(t *testing.T) {
	q := NewQueryReporter(false, nil)

	q.Observe(&mft.FileEntry{Deleted: false}, nil)
	q.Observe(&mft.FileEntry{Deleted: true}, nil)

	v, ok := q.attributeHistogram.Get("in_use:-")
	assert.True(t, ok)
	assert.EqualValues(t, 1, v)

	v, ok = q.attributeHistogram.Get("deleted:-")
	assert.True(t, ok)
	assert.EqualValues(t, 1, v)
}

func TestQueryReporterDumpsDetailOnlyWhenShowDetailSet(t *testing.T) {
	var detail bytes.Buffer
	q := NewQueryReporter(true, &detail)

	q.Observe(&mft.FileEntry{InUse: true, Name: "foo.txt"}, nil)
	assert.Contains(t, detail.String(), "foo.txt")

	detail.Reset()
	q2 := NewQueryReporter(false, &detail)
	q2.Observe(&mft.FileEntry{InUse: true, Name: "bar.txt"}, nil)
	assert.Empty(t, detail.String())
}

func TestQueryReporterBucketsRecordTypesAndNamespaces(t *testing.T) {
	q := NewQueryReporter(false, nil)

	q.Observe(&mft.FileEntry{}, []mft.AttributeType{mft.AttrStandardInformation, mft.AttrFileName})
	q.Observe(&mft.FileEntry{}, []mft.AttributeType{mft.AttrStandardInformation, mft.AttrFileName, mft.AttrData})
	q.ObserveNamespace(mft.NamespaceWin32)
	q.ObserveNamespace(mft.NamespaceDOS)

	v, ok := q.recordTypeHistogram.Get(mft.AttrFileName.String())
	assert.True(t, ok)
	assert.EqualValues(t, 2, v)

	v, ok = q.recordTypeHistogram.Get(mft.AttrData.String())
	assert.True(t, ok)
	assert.EqualValues(t, 1, v)

	v, ok = q.namespaceHistogram.Get(mft.NamespaceWin32.String())
	assert.True(t, ok)
	assert.EqualValues(t, 1, v)
}

func TestQueryReporterRendersSummaryTable(t *testing.T) {
	q := NewQueryReporter(false, nil)
	q.Observe(&mft.FileEntry{IsDirectory: false, DiskSize: 4096}, nil)

	var out bytes.Buffer
	q.Render(&out)

	assert.Contains(t, out.String(), "Files")
	assert.Contains(t, out.String(), "Total disk size")
}
