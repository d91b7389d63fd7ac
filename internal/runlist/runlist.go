// Package runlist decodes and encodes NTFS data-run byte streams: the
// compact (length, LCN-delta) encoding non-resident attributes use to
// describe their on-disk extents.
package runlist

import "errors"

// SparseLCN marks an extent as a sparse hole: allocated but backed by
// no cluster, reads as zeros.
const SparseLCN = int64(-1)

// ErrBadRunList is returned when a run header advertises more bytes
// than remain in the input.
var ErrBadRunList = errors.New("runlist: malformed run header")

// Extent is one (disk-LCN, cluster-count) run. Consecutive extents may
// be logically non-contiguous; sparse runs keep LCN == SparseLCN so
// they are never merged away.
type Extent struct {
	LCN      int64
	Clusters int64
}

// Decode walks a run-list byte stream starting at the first run
// header, with an implicit starting LCN of 0, and returns the ordered
// extents it describes.
func Decode(data []byte) ([]Extent, error) {
	var result []Extent

	current_lcn := int64(0)
	offset := 0

	for offset < len(data) {
		header := data[offset]
		if header == 0x00 {
			break
		}
		offset++

		length_size := int(header & 0x0F)
		lcn_size := int(header >> 4)

		if offset+length_size+lcn_size > len(data) {
			return nil, ErrBadRunList
		}

		length := decodeUnsigned(data[offset : offset+length_size])
		offset += length_size

		if lcn_size == 0 {
			// Sparse run: no LCN delta, cursor unchanged.
			result = append(result, Extent{LCN: SparseLCN, Clusters: length})
			continue
		}

		delta := decodeSigned(data[offset : offset+lcn_size])
		offset += lcn_size

		current_lcn += delta
		result = append(result, Extent{LCN: current_lcn, Clusters: length})
	}

	return result, nil
}

// Encode is the inverse of Decode: given an ordered extent list it
// produces a run-list byte stream that Decode will read back
// unchanged (decode(encode(extents)) == extents).
func Encode(extents []Extent) []byte {
	var result []byte

	current_lcn := int64(0)
	for _, e := range extents {
		length_bytes := minimalUnsigned(e.Clusters)

		if e.LCN == SparseLCN {
			header := byte(len(length_bytes))
			result = append(result, header)
			result = append(result, length_bytes...)
			continue
		}

		delta := e.LCN - current_lcn
		current_lcn = e.LCN

		delta_bytes := minimalSigned(delta)
		header := byte(len(length_bytes)) | byte(len(delta_bytes)<<4)
		result = append(result, header)
		result = append(result, length_bytes...)
		result = append(result, delta_bytes...)
	}

	result = append(result, 0x00)
	return result
}

func decodeUnsigned(b []byte) int64 {
	var v uint64
	for i := len(b) - 1; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return int64(v)
}

func decodeSigned(b []byte) int64 {
	if len(b) == 0 {
		return 0
	}

	var sign byte
	if b[len(b)-1]&0x80 != 0 {
		sign = 0xFF
	}

	padded := make([]byte, 8)
	for i := range padded {
		if i < len(b) {
			padded[i] = b[i]
		} else {
			padded[i] = sign
		}
	}

	var v uint64
	for i := 7; i >= 0; i-- {
		v = v<<8 | uint64(padded[i])
	}
	return int64(v)
}

// minimalUnsigned returns the smallest little-endian byte encoding of
// a non-negative value (0 encodes as zero bytes).
func minimalUnsigned(v int64) []byte {
	if v == 0 {
		return nil
	}
	var b []byte
	u := uint64(v)
	for u != 0 {
		b = append(b, byte(u))
		u >>= 8
	}
	return b
}

// minimalSigned returns the smallest little-endian two's-complement
// encoding of v such that sign-extending the last byte reproduces v.
func minimalSigned(v int64) []byte {
	if v == 0 {
		return []byte{0x00}
	}

	var b []byte
	u := uint64(v)
	for {
		b = append(b, byte(u))
		// Sign-extend what's left and see if the byte we just wrote
		// already captures the full signed value.
		shifted := int64(u) >> 8
		u = uint64(shifted)

		last := b[len(b)-1]
		if (shifted == 0 && last&0x80 == 0) ||
			(shifted == -1 && last&0x80 != 0) {
			break
		}
	}
	return b
}
