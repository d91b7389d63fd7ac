package mft

import (
	"encoding/binary"
	"unicode/utf16"

	"github.com/landenlabs/mftfind/internal/runlist"
)

// AttributeType identifies the kind of attribute a record slot holds.
type AttributeType uint32

const (
	AttrStandardInformation AttributeType = 0x10
	AttrAttributeList       AttributeType = 0x20
	AttrFileName            AttributeType = 0x30
	AttrObjectID            AttributeType = 0x40
	AttrSecurityDescriptor  AttributeType = 0x50
	AttrVolumeName          AttributeType = 0x60
	AttrVolumeInformation   AttributeType = 0x70
	AttrData                AttributeType = 0x80
	AttrIndexRoot           AttributeType = 0x90
	AttrIndexAllocation     AttributeType = 0xA0
	AttrBitmap              AttributeType = 0xB0
	AttrReparsePoint        AttributeType = 0xC0
	AttrEAInformation       AttributeType = 0xD0
	AttrEA                  AttributeType = 0xE0
	AttrLoggedUtilityStream AttributeType = 0x100
	attrListEnd             AttributeType = 0xFFFFFFFF
)

func (t AttributeType) String() string {
	switch t {
	case AttrStandardInformation:
		return "$STANDARD_INFORMATION"
	case AttrAttributeList:
		return "$ATTRIBUTE_LIST"
	case AttrFileName:
		return "$FILE_NAME"
	case AttrObjectID:
		return "$OBJECT_ID"
	case AttrSecurityDescriptor:
		return "$SECURITY_DESCRIPTOR"
	case AttrVolumeName:
		return "$VOLUME_NAME"
	case AttrVolumeInformation:
		return "$VOLUME_INFORMATION"
	case AttrData:
		return "$DATA"
	case AttrIndexRoot:
		return "$INDEX_ROOT"
	case AttrIndexAllocation:
		return "$INDEX_ALLOCATION"
	case AttrBitmap:
		return "$BITMAP"
	case AttrReparsePoint:
		return "$REPARSE_POINT"
	case AttrEAInformation:
		return "$EA_INFORMATION"
	case AttrEA:
		return "$EA"
	case AttrLoggedUtilityStream:
		return "$LOGGED_UTILITY_STREAM"
	default:
		return "$UNKNOWN"
	}
}

const sparseFlag = 0x8000

// Attribute is a view over one attribute slot inside a fixed-up MFT
// record buffer; it never copies the underlying bytes.
type Attribute struct {
	buf []byte
}

func newAttribute(buf []byte) *Attribute {
	return &Attribute{buf: buf}
}

func (a *Attribute) Type() AttributeType {
	return AttributeType(binary.LittleEndian.Uint32(a.buf[0:4]))
}
func (a *Attribute) Length() uint32     { return binary.LittleEndian.Uint32(a.buf[4:8]) }
func (a *Attribute) NonResident() bool  { return a.buf[8] != 0 }
func (a *Attribute) nameLength() uint8  { return a.buf[9] }
func (a *Attribute) nameOffset() uint16 { return binary.LittleEndian.Uint16(a.buf[10:12]) }
func (a *Attribute) FlagsRaw() uint16   { return binary.LittleEndian.Uint16(a.buf[12:14]) }
func (a *Attribute) AttributeID() uint16 {
	return binary.LittleEndian.Uint16(a.buf[14:16])
}

// Name is the stream identifier for a named attribute (e.g. an
// alternate data stream); empty for the unnamed/default attribute.
func (a *Attribute) Name() string {
	n := int(a.nameLength())
	if n == 0 {
		return ""
	}
	off := int(a.nameOffset())
	end := off + n*2
	if end > len(a.buf) {
		return ""
	}
	u16s := make([]uint16, n)
	for i := 0; i < n; i++ {
		u16s[i] = binary.LittleEndian.Uint16(a.buf[off+i*2 : off+i*2+2])
	}
	return string(utf16.Decode(u16s))
}

// Resident attribute fields.
func (a *Attribute) ValueLength() uint32 { return binary.LittleEndian.Uint32(a.buf[16:20]) }
func (a *Attribute) ValueOffset() uint16 { return binary.LittleEndian.Uint16(a.buf[20:22]) }

// ResidentValue returns the inline bytes of a resident attribute.
func (a *Attribute) ResidentValue() []byte {
	off := int(a.ValueOffset())
	n := int(a.ValueLength())
	if off+n > len(a.buf) || off < 0 || n < 0 {
		return nil
	}
	return a.buf[off : off+n]
}

// Non-resident attribute fields.
func (a *Attribute) StartVCN() uint64       { return binary.LittleEndian.Uint64(a.buf[16:24]) }
func (a *Attribute) EndVCN() uint64         { return binary.LittleEndian.Uint64(a.buf[24:32]) }
func (a *Attribute) RunListOffset() uint16  { return binary.LittleEndian.Uint16(a.buf[32:34]) }
func (a *Attribute) CompressionUnit() uint16 {
	return binary.LittleEndian.Uint16(a.buf[34:36])
}
func (a *Attribute) AllocatedSize() uint64 { return binary.LittleEndian.Uint64(a.buf[40:48]) }
func (a *Attribute) RealSize() uint64      { return binary.LittleEndian.Uint64(a.buf[48:56]) }
func (a *Attribute) StreamSize() uint64    { return binary.LittleEndian.Uint64(a.buf[56:64]) }

// IsSparse reports whether this non-resident attribute's data-run
// flags include the sparse bit.
func (a *Attribute) IsSparse() bool {
	return a.NonResident() && a.FlagsRaw()&sparseFlag != 0
}

// RunList decodes the attribute's data-run byte stream into extents.
// Returns nil for resident attributes.
func (a *Attribute) RunList() ([]runlist.Extent, error) {
	if !a.NonResident() {
		return nil, nil
	}
	off := int(a.RunListOffset())
	length := int(a.Length())
	if off > length || off > len(a.buf) {
		return nil, runlist.ErrBadRunList
	}
	end := length
	if end > len(a.buf) {
		end = len(a.buf)
	}
	return runlist.Decode(a.buf[off:end])
}

// DataSize is the logical size of the attribute's stream: real size
// for non-resident data, value length for resident data.
func (a *Attribute) DataSize() int64 {
	if a.NonResident() {
		return int64(a.RealSize())
	}
	return int64(a.ValueLength())
}

// EnumerateAttributes walks the attribute list of one fixed-up MFT
// record, starting at firstAttrOffset, stopping at a zero-length
// attribute, the 0xFFFFFFFF end marker, or the edge of the buffer.
// It does not expand $ATTRIBUTE_LIST entries that point outside this
// record; attributes stored in other records are not returned.
func EnumerateAttributes(buf []byte, firstAttrOffset uint16) []*Attribute {
	var result []*Attribute

	offset := int(firstAttrOffset)
	for offset+8 <= len(buf) {
		typ := AttributeType(binary.LittleEndian.Uint32(buf[offset : offset+4]))
		length := binary.LittleEndian.Uint32(buf[offset+4 : offset+8])
		if length == 0 || typ == attrListEnd {
			break
		}
		if int64(offset)+int64(length) > int64(len(buf)) {
			break
		}

		result = append(result, newAttribute(buf[offset:offset+int(length)]))
		offset += int(length)
	}

	return result
}
