package mft

import "errors"

// ErrBadRecord is returned when a record's per-sector fix-up sentinel
// does not match the update-sequence array, marking the record as
// corrupt.
var ErrBadRecord = errors.New("mft: fixup sentinel mismatch, record is corrupt")

const sectorSize = 512

// ApplyFixup rewrites the last two bytes of every 512-byte sector in
// buf (a copy of one raw MFT record) using the record's
// update-sequence array, after checking each sector's sentinel. buf
// is modified in place and also returned for convenience.
//
// The update-sequence array lives at FixupOffset() within the same
// buffer: a 2-byte sentinel followed by FixupCount()-1 replacement
// 2-byte values, one per 512-byte sector.
func ApplyFixup(buf []byte, header *RecordHeader) ([]byte, error) {
	fixupCount := int(header.FixupCount())
	if fixupCount == 0 {
		return buf, nil
	}

	fixupOffset := int(header.FixupOffset())
	tableLen := fixupCount * 2
	if fixupOffset+tableLen > len(buf) {
		return nil, ErrBadRecord
	}
	table := buf[fixupOffset : fixupOffset+tableLen]

	sentinel := [2]byte{table[0], table[1]}

	for sectorIdx := 0; sectorIdx*sectorSize+sectorSize <= len(buf) &&
		(sectorIdx+1) < fixupCount; sectorIdx++ {

		tail := (sectorIdx+1)*sectorSize - 2
		if buf[tail] != sentinel[0] || buf[tail+1] != sentinel[1] {
			return nil, ErrBadRecord
		}

		replacement := table[(sectorIdx+1)*2 : (sectorIdx+1)*2+2]
		buf[tail] = replacement[0]
		buf[tail+1] = replacement[1]
	}

	return buf, nil
}
