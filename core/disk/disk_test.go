package disk

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/josephlewis42/mithlsh/core/kshell"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBootImage(t *testing.T) {
	img := NewBootImage(4)
	assert.EqualValues(t, 4, img.Sectors())

	var sector [kshell.SectorSize]byte
	require.NoError(t, img.ReadSector(0, &sector))
	assert.True(t, kshell.HasBootSignature(&sector))

	require.NoError(t, img.ReadSector(3, &sector))
	assert.False(t, kshell.HasBootSignature(&sector))
}

func TestImage_ReadSector_errors(t *testing.T) {
	t.Run("out-of-range", func(t *testing.T) {
		img := NewBootImage(1)
		var sector [kshell.SectorSize]byte
		err := img.ReadSector(1, &sector)
		assert.True(t, errors.Is(err, ErrOutOfRange), "got %v", err)
	})

	t.Run("empty", func(t *testing.T) {
		img := NewImage(bytes.NewReader(nil), 0)
		var sector [kshell.SectorSize]byte
		assert.Error(t, img.ReadSector(0, &sector))
	})

	t.Run("short", func(t *testing.T) {
		// Claim a full sector but back it with less.
		img := NewImage(bytes.NewReader(make([]byte, 100)), kshell.SectorSize)
		var sector [kshell.SectorSize]byte
		err := img.ReadSector(0, &sector)
		assert.True(t, errors.Is(err, ErrShortRead), "got %v", err)
	})

	t.Run("io", func(t *testing.T) {
		img := NewImage(failingReaderAt{}, kshell.SectorSize)
		var sector [kshell.SectorSize]byte
		err := img.ReadSector(0, &sector)
		assert.True(t, errors.Is(err, io.ErrClosedPipe), "got %v", err)
	})
}

type failingReaderAt struct{}

func (failingReaderAt) ReadAt([]byte, int64) (int, error) {
	return 0, io.ErrClosedPipe
}

func TestFormat(t *testing.T) {
	fs := afero.NewMemMapFs()
	fd, err := fs.Create("/disk.img")
	require.NoError(t, err)
	defer fd.Close()

	require.NoError(t, Format(fd, 8))

	fi, err := fd.Stat()
	require.NoError(t, err)
	assert.EqualValues(t, 8*kshell.SectorSize, fi.Size())

	img := NewImage(fd, fi.Size())
	var sector [kshell.SectorSize]byte
	require.NoError(t, img.ReadSector(0, &sector))
	assert.True(t, kshell.HasBootSignature(&sector))
}

func TestFormat_noSectors(t *testing.T) {
	fs := afero.NewMemMapFs()
	fd, err := fs.Create("/disk.img")
	require.NoError(t, err)
	defer fd.Close()

	assert.Error(t, Format(fd, 0))
}
