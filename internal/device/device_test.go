package device

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadAtRejectsUnalignedOffset(t *testing.T) {
	d := New(bytes.NewReader(make([]byte, 4096)), 512)

	_, err := d.ReadAt(make([]byte, 512), 100)
	assert.ErrorIs(t, err, ErrUnaligned)
}

func TestReadAtRejectsUnalignedLength(t *testing.T) {
	d := New(bytes.NewReader(make([]byte, 4096)), 512)

	_, err := d.ReadAt(make([]byte, 100), 0)
	assert.ErrorIs(t, err, ErrUnaligned)
}

func TestReadSectors(t *testing.T) {
	data := make([]byte, 4096)
	for i := range data {
		data[i] = byte(i)
	}
	d := New(bytes.NewReader(data), 512)

	got, err := d.ReadSectors(2, 1)
	require.NoError(t, err)
	assert.Equal(t, data[1024:1536], got)
}

func TestSetSectorSize(t *testing.T) {
	d := New(bytes.NewReader(make([]byte, 8192)), 512)
	d.SetSectorSize(4096)
	assert.Equal(t, int64(4096), d.SectorSize())

	_, err := d.ReadAt(make([]byte, 512), 0)
	assert.ErrorIs(t, err, ErrUnaligned)
}
