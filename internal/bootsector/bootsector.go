// Package bootsector decodes an NTFS volume boot record into the
// geometry values every other component needs: sector size, cluster
// size, the MFT's starting cluster, and the MFT record size.
package bootsector

import (
	"encoding/binary"
	"errors"
	"fmt"
)

var (
	// NotNtfs is returned when the OEM id does not identify an NTFS
	// volume, including the BitLocker-locked and FAT/exFAT cases.
	NotNtfs = errors.New("bootsector: not an NTFS volume")

	ErrShortRead = errors.New("bootsector: short read of boot sector")
)

const (
	bootSectorSize = 512
	ntfsOEMId      = "NTFS    "
	bitlockerOEMId = "-FVE-FS-"
)

// Geometry captures the fields of the NTFS boot sector needed to
// locate and size the $MFT.
type Geometry struct {
	BytesPerSector    uint16
	SectorsPerCluster int64 // always positive; the signed encoding is resolved here
	MFTStartCluster   int64
	mftRecordSizeRaw  int8

	// Warn is set by RecordSize when the computed MFT record size looks
	// implausible and the 1024-byte fallback was used instead, or when
	// a plausible computed size differs from 1024; callers can surface
	// this as a diagnostic once RecordSize has been called.
	Warn string
}

// Decode parses the 512-byte boot sector held in buf (buf[0] is byte
// offset 0 of the volume).
func Decode(buf []byte) (*Geometry, error) {
	if len(buf) < bootSectorSize {
		return nil, ErrShortRead
	}

	oem := string(buf[3:11])
	switch {
	case oem == ntfsOEMId:
		// fall through
	case oem == bitlockerOEMId:
		return nil, NotNtfs
	case len(oem) >= 5 && oem[:5] == "MSDOS":
		return nil, NotNtfs
	default:
		return nil, NotNtfs
	}

	g := &Geometry{
		BytesPerSector:   binary.LittleEndian.Uint16(buf[11:13]),
		MFTStartCluster:  int64(binary.LittleEndian.Uint64(buf[48:56])),
		mftRecordSizeRaw: int8(buf[64]),
	}

	g.SectorsPerCluster = decodeSectorsPerCluster(buf[13])

	return g, nil
}

// decodeSectorsPerCluster honors the NTFS convention that a value
// above 0x7F encodes a negative exponent: the real sectors-per-cluster
// is 2^(256-v).
func decodeSectorsPerCluster(v byte) int64 {
	if v <= 0x7F {
		return int64(v)
	}
	return int64(1) << uint(256-int(v))
}

// ClusterSize returns bytes-per-cluster.
func (g *Geometry) ClusterSize() int64 {
	return int64(g.BytesPerSector) * g.SectorsPerCluster
}

// RecordSize returns the MFT record size in bytes, honoring the
// signed clustersPerFileRecord encoding: non-negative values count
// clusters, negative values v mean 1 << (-v) bytes. The computed value
// is returned whenever it is a positive power of two; otherwise 1024
// is returned instead. Warn is populated in that fallback case, and
// also when a plausible computed value differs from 1024, so the
// caller can log it.
func (g *Geometry) RecordSize() int64 {
	v := int64(g.mftRecordSizeRaw)
	var size int64
	if v >= 0 {
		size = v * g.ClusterSize()
	} else {
		size = 1 << uint(-v)
	}

	if size <= 0 || size&(size-1) != 0 {
		g.Warn = fmt.Sprintf(
			"computed MFT record size %d is not a positive power of two; falling back to 1024", size)
		return 1024
	}
	if size != 1024 {
		g.Warn = fmt.Sprintf("computed MFT record size %d differs from 1024; using the computed size", size)
	}
	return size
}
