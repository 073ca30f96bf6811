package kshell

const (
	// SectorSize is the size of one disk sector in bytes.
	SectorSize = 512

	// MaxFilenameLen is the longest filename that fits the 64 byte name buffer
	// handed to the filesystem along with its terminator.
	MaxFilenameLen = 62
)

// Offsets and values of the MBR boot signature within a sector.
const (
	BootSigOffset = 510
	BootSig0      = 0x55
	BootSig1      = 0xAA
)

// SectorReader reads whole sectors from a disk.
//
// ReadSector fills sector completely or returns an error, there are no partial
// reads.
type SectorReader interface {
	ReadSector(lba uint32, sector *[SectorSize]byte) error
}

// DirectoryLister writes a pre-formatted listing of the current directory.
//
// ListFiles returns the number of bytes placed in buf, it must never write
// past len(buf).
type DirectoryLister interface {
	ListFiles(buf []byte) (int, error)
}

// FileReader reads the contents of a named file.
//
// ReadFile returns the number of bytes placed in buf, it must never write
// past len(buf).
type FileReader interface {
	ReadFile(name string, buf []byte) (int, error)
}

// FileStore is the filesystem as the shell sees it.
type FileStore interface {
	DirectoryLister
	FileReader
}

// HasBootSignature reports whether a sector ends in 0x55 0xAA.
func HasBootSignature(sector *[SectorSize]byte) bool {
	return sector[BootSigOffset] == BootSig0 && sector[BootSigOffset+1] == BootSig1
}
