package runlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeGoldenSparseRunFromSpec(t *testing.T) {
	// 0x21 0x10 0x00 0x02 -> extent (0x0200, 16)
	// 0x01 0x20           -> sparse extent of 32 clusters
	// 0x00                -> terminator
	data := []byte{0x21, 0x10, 0x00, 0x02, 0x01, 0x20, 0x00}

	extents, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, extents, 2)
	assert.Equal(t, Extent{LCN: 0x0200, Clusters: 16}, extents[0])
	assert.Equal(t, Extent{LCN: SparseLCN, Clusters: 32}, extents[1])
}

func TestDecodeFailsOnTruncatedHeader(t *testing.T) {
	// Header claims 2 length bytes and 2 LCN bytes but only 1 byte follows.
	data := []byte{0x22, 0x10}

	_, err := Decode(data)
	assert.ErrorIs(t, err, ErrBadRunList)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := [][]Extent{
		{{LCN: 100, Clusters: 5}},
		{{LCN: 0, Clusters: 1}, {LCN: 50, Clusters: 10}},
		{{LCN: 1000, Clusters: 3}, {LCN: SparseLCN, Clusters: 20}, {LCN: 1100, Clusters: 7}},
		{{LCN: -1 * (1 << 20), Clusters: 4}}, // never legal on disk but round-trips
		{{LCN: 1 << 30, Clusters: 1 << 16}},
	}

	for _, extents := range cases {
		encoded := Encode(extents)
		decoded, err := Decode(encoded)
		require.NoError(t, err)
		assert.Equal(t, extents, decoded)
	}
}

func TestDecodeTerminatesAtZeroHeader(t *testing.T) {
	data := []byte{0x00, 0xFF, 0xFF, 0xFF}

	extents, err := Decode(data)
	require.NoError(t, err)
	assert.Empty(t, extents)
}

func TestRunListPreservesConsecutiveSparseRuns(t *testing.T) {
	extents := []Extent{
		{LCN: SparseLCN, Clusters: 5},
		{LCN: SparseLCN, Clusters: 5},
	}

	encoded := Encode(extents)
	decoded, err := Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, extents, decoded)
}
