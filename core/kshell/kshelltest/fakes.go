// Package kshelltest provides in-memory collaborators for testing the shell
// without a disk or filesystem.
package kshelltest

import (
	"errors"
	"io/fs"
	"sort"
	"sync"

	"github.com/josephlewis42/mithlsh/core/kshell"
)

// ErrInjected is returned by fakes configured to fail.
var ErrInjected = errors.New("injected failure")

// Disk is a fake SectorReader backed by a map of sectors.
type Disk struct {
	mu      sync.Mutex
	Sectors map[uint32][kshell.SectorSize]byte
	// Err, if set, is returned from every read.
	Err error

	Reads []uint32
}

var _ kshell.SectorReader = (*Disk)(nil)

// NewBootDisk returns a disk whose sector 0 carries a boot signature.
func NewBootDisk() *Disk {
	var sector [kshell.SectorSize]byte
	sector[kshell.BootSigOffset] = kshell.BootSig0
	sector[kshell.BootSigOffset+1] = kshell.BootSig1

	return &Disk{Sectors: map[uint32][kshell.SectorSize]byte{0: sector}}
}

func (d *Disk) ReadSector(lba uint32, sector *[kshell.SectorSize]byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.Reads = append(d.Reads, lba)
	if d.Err != nil {
		return d.Err
	}

	*sector = d.Sectors[lba]
	return nil
}

// ReadCount returns the number of ReadSector calls.
func (d *Disk) ReadCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.Reads)
}

// Files is a fake FileStore. The listing is the sorted file names, one per
// line.
type Files struct {
	mu      sync.Mutex
	Entries map[string]string
	// ListErr and ReadErr, if set, are returned from the matching calls.
	ListErr error
	ReadErr error
	// Listing, if non-nil, overrides the generated listing.
	Listing []byte

	Lists int
	Opens []string
}

var _ kshell.FileStore = (*Files)(nil)

// NewFiles creates a fake filesystem holding entries.
func NewFiles(entries map[string]string) *Files {
	if entries == nil {
		entries = make(map[string]string)
	}
	return &Files{Entries: entries}
}

func (f *Files) ListFiles(buf []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Lists++
	if f.ListErr != nil {
		return -1, f.ListErr
	}

	listing := f.Listing
	if listing == nil {
		var names []string
		for name := range f.Entries {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			listing = append(listing, name...)
			listing = append(listing, '\n')
		}
	}

	return copy(buf, listing), nil
}

func (f *Files) ReadFile(name string, buf []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Opens = append(f.Opens, name)
	if f.ReadErr != nil {
		return -1, f.ReadErr
	}

	contents, ok := f.Entries[name]
	if !ok {
		return -1, fs.ErrNotExist
	}
	return copy(buf, contents), nil
}

// Calls returns the total number of calls into the fake.
func (f *Files) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Lists + len(f.Opens)
}
