package mft

import (
	"encoding/binary"
	"unicode/utf16"
)

// Namespace is the FILE_NAME attribute's filename-namespace tag.
type Namespace uint8

const (
	NamespacePOSIX Namespace = 0
	NamespaceWin32 Namespace = 1
	NamespaceDOS   Namespace = 2
	NamespaceBoth  Namespace = 3 // DOS+Win32: a Win32 name already 8.3-compatible
)

func (n Namespace) String() string {
	switch n {
	case NamespacePOSIX:
		return "POSIX"
	case NamespaceWin32:
		return "Win32"
	case NamespaceDOS:
		return "DOS"
	case NamespaceBoth:
		return "DOS+Win32"
	default:
		return "Unknown"
	}
}

// namespacePriority ranks namespaces for primary-name selection:
// Unicode (Win32) > Both > POSIX > DOS, ties break by first-encountered.
func namespacePriority(n Namespace) int {
	switch n {
	case NamespaceWin32:
		return 3
	case NamespaceBoth:
		return 2
	case NamespacePOSIX:
		return 1
	case NamespaceDOS:
		return 0
	default:
		return -1
	}
}

// FileName is a decoded $FILE_NAME (type 0x30) attribute value.
type FileName struct {
	ParentIndex       uint64 // low 48 bits of the parent MFT reference
	ParentSequence    uint16
	Created           uint64 // 100ns filetime since 1601 UTC
	Modified          uint64
	MFTModified       uint64
	Accessed          uint64
	AllocatedSize     uint64
	RealSize          uint64
	FlagsRaw          uint32
	Namespace         Namespace
	Name              string
}

// ParseFileName decodes a resident $FILE_NAME attribute value.
func ParseFileName(value []byte) *FileName {
	if len(value) < 66 {
		return nil
	}

	parentRef := binary.LittleEndian.Uint64(value[0:8])
	nameLenChars := int(value[64])
	ns := Namespace(value[65])

	nameStart := 66
	nameEnd := nameStart + nameLenChars*2
	var name string
	if nameEnd <= len(value) {
		u16s := make([]uint16, nameLenChars)
		for i := 0; i < nameLenChars; i++ {
			u16s[i] = binary.LittleEndian.Uint16(value[nameStart+i*2 : nameStart+i*2+2])
		}
		name = string(utf16.Decode(u16s))
	}

	return &FileName{
		ParentIndex:    parentRef & 0x0000FFFFFFFFFFFF,
		ParentSequence: uint16(parentRef >> 48),
		Created:        binary.LittleEndian.Uint64(value[8:16]),
		Modified:       binary.LittleEndian.Uint64(value[16:24]),
		MFTModified:    binary.LittleEndian.Uint64(value[24:32]),
		Accessed:       binary.LittleEndian.Uint64(value[32:40]),
		AllocatedSize:  binary.LittleEndian.Uint64(value[40:48]),
		RealSize:       binary.LittleEndian.Uint64(value[48:56]),
		FlagsRaw:       binary.LittleEndian.Uint32(value[56:60]),
		Namespace:      ns,
		Name:           name,
	}
}

// DOS attribute bits, shared with STANDARD_INFORMATION.flags.
const (
	AttrReadOnly   uint32 = 1 << 0
	AttrHidden     uint32 = 1 << 1
	AttrSystem     uint32 = 1 << 2
	AttrDirectory  uint32 = 1 << 4 // only meaningful via the record header in practice
	AttrArchive    uint32 = 1 << 5
	AttrCompressed uint32 = 1 << 11
)

// StandardInformation is a decoded $STANDARD_INFORMATION (type 0x10)
// attribute value.
type StandardInformation struct {
	Created     uint64
	Modified    uint64
	MFTModified uint64
	Accessed    uint64
	FlagsRaw    uint32
}

// ParseStandardInformation decodes a resident $STANDARD_INFORMATION
// attribute value. Only the first 36 bytes (timestamps + flags) are
// required; older/shorter records are accepted.
func ParseStandardInformation(value []byte) *StandardInformation {
	if len(value) < 36 {
		return nil
	}
	return &StandardInformation{
		Created:     binary.LittleEndian.Uint64(value[0:8]),
		Modified:    binary.LittleEndian.Uint64(value[8:16]),
		MFTModified: binary.LittleEndian.Uint64(value[16:24]),
		Accessed:    binary.LittleEndian.Uint64(value[24:32]),
		FlagsRaw:    binary.LittleEndian.Uint32(value[32:36]),
	}
}

// chooseBestName implements the §4.5 primary-name selection rule:
// namespace preference order Unicode (Win32) > Both > POSIX > DOS,
// ties break by first-encountered.
func chooseBestName(names []*FileName) *FileName {
	var best *FileName
	bestPriority := -2
	for _, n := range names {
		p := namespacePriority(n.Namespace)
		if p > bestPriority {
			best = n
			bestPriority = p
		}
	}
	return best
}
