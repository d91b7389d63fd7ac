package driveinfo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseArgRecognizesDriveLetter(t *testing.T) {
	letter, ok := ParseArg("C:")
	assert.True(t, ok)
	assert.Equal(t, byte('C'), letter)

	letter, ok = ParseArg(`d:\some\path`)
	assert.True(t, ok)
	assert.Equal(t, byte('D'), letter)
}

func TestParseArgRejectsNonDriveArgument(t *testing.T) {
	_, ok := ParseArg("/mnt/data")
	assert.False(t, ok)

	_, ok = ParseArg(`\\.\PhysicalDrive0`)
	assert.False(t, ok)
}

func TestVolumePathFormatsWin32DeviceNamespace(t *testing.T) {
	assert.Equal(t, `\\.\C:`, volumePath('C'))
}
