// Package disk implements the shell's sector service over a disk image.
package disk

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/josephlewis42/mithlsh/core/kshell"
)

var (
	// ErrOutOfRange is returned for reads past the end of the image.
	ErrOutOfRange = errors.New("lba out of range")
	// ErrShortRead is returned when the image ends part way through a sector.
	ErrShortRead = errors.New("short sector read")
)

// Image reads sectors from a raw disk image.
type Image struct {
	r       io.ReaderAt
	sectors int64
}

var _ kshell.SectorReader = (*Image)(nil)

// NewImage creates an Image over r holding size bytes. Trailing bytes that
// don't make a whole sector are unreachable.
func NewImage(r io.ReaderAt, size int64) *Image {
	return &Image{r: r, sectors: size / kshell.SectorSize}
}

// NewBootImage creates an in-memory image of the given number of sectors
// whose first sector carries an MBR boot signature.
func NewBootImage(sectors int) *Image {
	if sectors < 1 {
		sectors = 1
	}
	raw := make([]byte, sectors*kshell.SectorSize)
	raw[kshell.BootSigOffset] = kshell.BootSig0
	raw[kshell.BootSigOffset+1] = kshell.BootSig1

	return NewImage(bytes.NewReader(raw), int64(len(raw)))
}

// Sectors returns the number of whole sectors in the image.
func (img *Image) Sectors() int64 {
	return img.sectors
}

// ReadSector fills sector with the contents at lba.
func (img *Image) ReadSector(lba uint32, sector *[kshell.SectorSize]byte) error {
	if int64(lba) >= img.sectors {
		return fmt.Errorf("read sector %d of %d: %w", lba, img.sectors, ErrOutOfRange)
	}

	n, err := img.r.ReadAt(sector[:], int64(lba)*kshell.SectorSize)
	switch {
	case n == kshell.SectorSize:
		return nil
	case err == nil, errors.Is(err, io.EOF):
		return fmt.Errorf("read sector %d: got %d bytes: %w", lba, n, ErrShortRead)
	default:
		return fmt.Errorf("read sector %d: %w", lba, err)
	}
}

// Format writes a zeroed image of the given number of sectors to w with a
// boot signature at the end of sector 0.
func Format(w io.WriterAt, sectors int) error {
	if sectors < 1 {
		return fmt.Errorf("format: need at least 1 sector, got %d", sectors)
	}

	var blank [kshell.SectorSize]byte
	for lba := 0; lba < sectors; lba++ {
		sector := blank
		if lba == 0 {
			sector[kshell.BootSigOffset] = kshell.BootSig0
			sector[kshell.BootSigOffset+1] = kshell.BootSig1
		}
		if _, err := w.WriteAt(sector[:], int64(lba)*kshell.SectorSize); err != nil {
			return fmt.Errorf("format sector %d: %w", lba, err)
		}
	}
	return nil
}
