package mft

import (
	"encoding/binary"
	"unicode/utf16"
)

// recordOpts describes one synthetic MFT record for test construction.
// It builds a buffer that still needs ApplyFixup, exactly like a raw
// sector read off a real device would.
type recordOpts struct {
	recordSize     int
	inUse          bool
	isDirectory    bool
	name           string
	namespace      Namespace
	parentIndex    uint64
	parentSequence uint16
	sequenceNumber uint16
	created        uint64
	modified       uint64
	dataRun        []byte // raw run-list bytes for an unnamed non-resident $DATA, nil to omit
}

// buildSyntheticRecord lays out a record header, a resident
// $STANDARD_INFORMATION, a resident $FILE_NAME, and an optional
// non-resident $DATA, then installs a fix-up array with a fixed
// sentinel so ApplyFixup succeeds. Byte layout mirrors record.go,
// attribute.go and filename.go's accessors exactly.
func buildSyntheticRecord(o recordOpts) []byte {
	if o.recordSize == 0 {
		o.recordSize = 1024
	}
	buf := make([]byte, o.recordSize)

	copy(buf[0:4], Magic)
	binary.LittleEndian.PutUint16(buf[4:6], 48) // fixup offset
	sectors := o.recordSize / sectorSize
	binary.LittleEndian.PutUint16(buf[6:8], uint16(sectors+1)) // fixup count

	binary.LittleEndian.PutUint64(buf[8:16], 1) // LSN
	binary.LittleEndian.PutUint16(buf[16:18], o.sequenceNumber)
	binary.LittleEndian.PutUint16(buf[18:20], 1) // link count

	flags := uint16(0)
	if o.inUse {
		flags |= flagInUse
	}
	if o.isDirectory {
		flags |= flagDirectory
	}
	binary.LittleEndian.PutUint16(buf[22:24], flags)

	// fix-up table: sentinel + one replacement per sector, 2 bytes each.
	fixupOffset := 48
	tableLen := (sectors + 1) * 2
	sentinel := [2]byte{0xAB, 0xCD}
	copy(buf[fixupOffset:fixupOffset+2], sentinel[:])
	for s := 0; s < sectors; s++ {
		tail := (s+1)*sectorSize - 2
		replacement := [2]byte{byte(0x10 + s), byte(0x20 + s)}
		copy(buf[fixupOffset+2+s*2:fixupOffset+4+s*2], replacement[:])
		buf[tail] = sentinel[0]
		buf[tail+1] = sentinel[1]
	}

	attrStart := fixupOffset + tableLen
	if attrStart%8 != 0 {
		attrStart += 8 - attrStart%8
	}
	binary.LittleEndian.PutUint16(buf[20:22], uint16(attrStart))

	offset := attrStart

	// $STANDARD_INFORMATION (resident)
	siValue := make([]byte, 48)
	binary.LittleEndian.PutUint64(siValue[0:8], o.created)
	binary.LittleEndian.PutUint64(siValue[8:16], o.modified)
	binary.LittleEndian.PutUint64(siValue[16:24], o.modified)
	binary.LittleEndian.PutUint64(siValue[24:32], o.modified)
	offset = writeResidentAttr(buf, offset, uint32(AttrStandardInformation), siValue)

	// $FILE_NAME (resident)
	if o.name != "" {
		nameUTF16 := utf16.Encode([]rune(o.name))
		fnValue := make([]byte, 66+len(nameUTF16)*2)
		parentRef := (uint64(o.parentSequence) << 48) | (o.parentIndex & 0x0000FFFFFFFFFFFF)
		binary.LittleEndian.PutUint64(fnValue[0:8], parentRef)
		binary.LittleEndian.PutUint64(fnValue[8:16], o.created)
		binary.LittleEndian.PutUint64(fnValue[16:24], o.modified)
		binary.LittleEndian.PutUint64(fnValue[24:32], o.modified)
		binary.LittleEndian.PutUint64(fnValue[32:40], o.modified)
		binary.LittleEndian.PutUint64(fnValue[40:48], 4096)
		binary.LittleEndian.PutUint64(fnValue[48:56], 4096)
		fnValue[64] = byte(len(nameUTF16))
		fnValue[65] = byte(o.namespace)
		for i, c := range nameUTF16 {
			binary.LittleEndian.PutUint16(fnValue[66+i*2:68+i*2], c)
		}
		offset = writeResidentAttr(buf, offset, uint32(AttrFileName), fnValue)
	}

	if o.dataRun != nil {
		offset = writeNonResidentDataAttr(buf, offset, o.dataRun)
	}

	binary.LittleEndian.PutUint32(buf[offset:offset+4], uint32(attrListEnd))

	binary.LittleEndian.PutUint32(buf[24:28], uint32(offset+8)) // used size
	binary.LittleEndian.PutUint32(buf[28:32], uint32(o.recordSize))
	binary.LittleEndian.PutUint32(buf[44:48], 0) // record number, position-derived is authoritative

	return buf
}

func writeResidentAttr(buf []byte, offset int, typ uint32, value []byte) int {
	headerLen := 24
	valueOffset := headerLen
	length := valueOffset + len(value)
	if length%8 != 0 {
		length += 8 - length%8
	}

	binary.LittleEndian.PutUint32(buf[offset:offset+4], typ)
	binary.LittleEndian.PutUint32(buf[offset+4:offset+8], uint32(length))
	buf[offset+8] = 0 // resident
	buf[offset+9] = 0
	binary.LittleEndian.PutUint16(buf[offset+10:offset+12], 0)
	binary.LittleEndian.PutUint16(buf[offset+12:offset+14], 0)
	binary.LittleEndian.PutUint16(buf[offset+14:offset+16], 0)
	binary.LittleEndian.PutUint32(buf[offset+16:offset+20], uint32(len(value)))
	binary.LittleEndian.PutUint16(buf[offset+20:offset+22], uint16(valueOffset))
	copy(buf[offset+valueOffset:offset+valueOffset+len(value)], value)

	return offset + length
}

func writeNonResidentDataAttr(buf []byte, offset int, runListBytes []byte) int {
	headerLen := 64
	runOffset := headerLen
	length := runOffset + len(runListBytes)
	if length%8 != 0 {
		length += 8 - length%8
	}

	binary.LittleEndian.PutUint32(buf[offset:offset+4], uint32(AttrData))
	binary.LittleEndian.PutUint32(buf[offset+4:offset+8], uint32(length))
	buf[offset+8] = 1 // non-resident
	buf[offset+9] = 0
	binary.LittleEndian.PutUint16(buf[offset+10:offset+12], 0)
	binary.LittleEndian.PutUint16(buf[offset+12:offset+14], 0)
	binary.LittleEndian.PutUint16(buf[offset+14:offset+16], 0)
	binary.LittleEndian.PutUint64(buf[offset+16:offset+24], 0) // start VCN
	binary.LittleEndian.PutUint16(buf[offset+32:offset+34], uint16(runOffset))
	copy(buf[offset+runOffset:offset+runOffset+len(runListBytes)], runListBytes)

	return offset + length
}
