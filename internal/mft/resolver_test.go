package mft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildHierarchyMFT lays out: record1=dir "docs" (parent=root),
// record2=dir "reports" (parent=1), record3=file "q1.txt" (parent=2).
func buildHierarchyMFT(t *testing.T) *MFT {
	docs := buildSyntheticRecord(recordOpts{
		name: "docs", inUse: true, isDirectory: true, sequenceNumber: 1, parentIndex: rootRecordIndex,
	})
	reports := buildSyntheticRecord(recordOpts{
		name: "reports", inUse: true, isDirectory: true, sequenceNumber: 1, parentIndex: 1,
	})
	q1 := buildSyntheticRecord(recordOpts{
		name: "q1.txt", inUse: true, sequenceNumber: 1, parentIndex: 2,
	})
	device, mftStart := buildFakeVolume(20, [][]byte{docs, reports, q1})
	m, err := Load(device, mftStart, testRecordSize, testClusterSize, nil)
	require.NoError(t, err)
	return m
}

func TestDirectoryResolverWalksParentChain(t *testing.T) {
	m := buildHierarchyMFT(t)
	r := NewDirectoryResolver(m, nil)

	path, truncated, err := r.Resolve(3) // q1.txt's own index is 3; its directory is "docs/reports"
	require.NoError(t, err)
	assert.False(t, truncated)
	assert.Equal(t, "docs/reports", path)
}

func TestDirectoryResolverCachesIntermediateSegments(t *testing.T) {
	m := buildHierarchyMFT(t)
	r := NewDirectoryResolver(m, nil)

	_, _, err := r.Resolve(2)
	require.NoError(t, err)
	_, ok := r.cache[1]
	assert.True(t, ok, "resolving record 2 should memoise its parent (record 1) along the way")

	path, _, err := r.Resolve(3)
	require.NoError(t, err)
	assert.Equal(t, "docs/reports", path)
}

func TestDirectoryResolverRootIsEmptyPath(t *testing.T) {
	m := buildHierarchyMFT(t)
	r := NewDirectoryResolver(m, nil)

	path, truncated, err := r.Resolve(rootRecordIndex)
	require.NoError(t, err)
	assert.False(t, truncated)
	assert.Equal(t, "", path)
}

func TestDirectoryResolverBreaksCycles(t *testing.T) {
	// record1 claims record2 as parent, record2 claims record1 as
	// parent: a cycle that must terminate rather than loop forever.
	a := buildSyntheticRecord(recordOpts{name: "a", inUse: true, isDirectory: true, sequenceNumber: 1, parentIndex: 2})
	b := buildSyntheticRecord(recordOpts{name: "b", inUse: true, isDirectory: true, sequenceNumber: 1, parentIndex: 1})
	device, mftStart := buildFakeVolume(20, [][]byte{a, b})
	m, err := Load(device, mftStart, testRecordSize, testClusterSize, nil)
	require.NoError(t, err)

	r := NewDirectoryResolver(m, nil)
	path, truncated, err := r.Resolve(1) // must return rather than loop forever
	require.NoError(t, err)
	assert.True(t, truncated, "a cyclic parent chain must mark the result truncated")
	assert.NotEmpty(t, path, "the ancestors resolved before the cycle was detected should still be returned")
}

// rejectIndexFilter prunes (zeroes) exactly one record index, the way
// a real RetentionFilter might drop a record DirectoryResolver still
// needs to walk through as an ancestor.
type rejectIndexFilter struct{ index uint32 }

func (f rejectIndexFilter) AcceptForRetention(si *StandardInformation, name *FileName, i uint32) bool {
	return i != f.index
}

func TestDirectoryResolverFallsBackToDiskForPrunedAncestor(t *testing.T) {
	docs := buildSyntheticRecord(recordOpts{
		name: "docs", inUse: true, isDirectory: true, sequenceNumber: 1, parentIndex: rootRecordIndex,
	})
	reports := buildSyntheticRecord(recordOpts{
		name: "reports", inUse: true, isDirectory: true, sequenceNumber: 1, parentIndex: 1,
	})
	q1 := buildSyntheticRecord(recordOpts{
		name: "q1.txt", inUse: true, sequenceNumber: 1, parentIndex: 2,
	})
	device, mftStart := buildFakeVolume(20, [][]byte{docs, reports, q1})

	m, err := Load(device, mftStart, testRecordSize, testClusterSize, rejectIndexFilter{index: 2})
	require.NoError(t, err)

	raw, ok := m.RawRecord(2)
	require.True(t, ok)
	require.True(t, m.isZeroed(raw), "record 2 should have been pruned to zero in the loaded buffer")

	r := NewDirectoryResolver(m, device)
	path, truncated, err := r.Resolve(3)
	require.NoError(t, err)
	assert.False(t, truncated)
	assert.Equal(t, "docs/reports", path, "the pruned ancestor's name should still be recovered via a raw disk read")
}

func TestDirectoryResolverErrorsOnPrunedAncestorWithoutDevice(t *testing.T) {
	docs := buildSyntheticRecord(recordOpts{
		name: "docs", inUse: true, isDirectory: true, sequenceNumber: 1, parentIndex: rootRecordIndex,
	})
	reports := buildSyntheticRecord(recordOpts{
		name: "reports", inUse: true, isDirectory: true, sequenceNumber: 1, parentIndex: 1,
	})
	q1 := buildSyntheticRecord(recordOpts{
		name: "q1.txt", inUse: true, sequenceNumber: 1, parentIndex: 2,
	})
	device, mftStart := buildFakeVolume(20, [][]byte{docs, reports, q1})

	m, err := Load(device, mftStart, testRecordSize, testClusterSize, rejectIndexFilter{index: 2})
	require.NoError(t, err)

	r := NewDirectoryResolver(m, nil)
	_, _, err = r.Resolve(3)
	assert.ErrorIs(t, err, ErrBadExtent)
}
