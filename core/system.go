package core

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"

	"github.com/josephlewis42/mithlsh/commands"
	"github.com/josephlewis42/mithlsh/core/config"
	"github.com/josephlewis42/mithlsh/core/disk"
	"github.com/josephlewis42/mithlsh/core/fsys"
)

type listCloser []io.Closer

func (lc listCloser) Close() error {
	var firstErr error
	for _, c := range lc {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// System holds the collaborators shared by every session and the Interpreter
// built on them.
type System struct {
	Interpreter *commands.Interpreter
	toClose     listCloser
}

// NewSystem builds the disk and filesystem described by the configuration.
func NewSystem(configuration *config.Configuration) (*System, error) {
	sys := &System{}

	image, err := openDisk(configuration, &sys.toClose)
	if err != nil {
		sys.Close()
		return nil, fmt.Errorf("opening disk image: %w", err)
	}

	store, err := openFilesystem(configuration)
	if err != nil {
		sys.Close()
		return nil, fmt.Errorf("opening filesystem: %w", err)
	}

	sys.Interpreter = &commands.Interpreter{
		Disk:  image,
		Files: store,
		Identity: commands.Identity{
			User:          configuration.Shell.User,
			OSName:        configuration.Shell.OSName,
			Date:          configuration.Shell.Date,
			NormalizeEcho: configuration.Shell.NormalizeEcho,
		},
	}

	return sys, nil
}

func openDisk(configuration *config.Configuration, toClose *listCloser) (*disk.Image, error) {
	fd, err := configuration.OpenDiskImage()
	switch {
	case configuration.Disk.Image == "" && errors.Is(err, fs.ErrNotExist):
		return disk.NewBootImage(configuration.Disk.Sectors), nil
	case err != nil:
		return nil, err
	}
	*toClose = append(*toClose, fd)

	info, err := fd.Stat()
	if err != nil {
		return nil, err
	}

	image := disk.NewImage(fd, info.Size())
	log.Printf("- Loaded disk image %q with %d sectors", configuration.Disk.Image, image.Sectors())
	return image, nil
}

func openFilesystem(configuration *config.Configuration) (*fsys.Store, error) {
	fd, err := configuration.OpenRootFs()
	switch {
	case configuration.Filesystem.RootFs == "" && errors.Is(err, fs.ErrNotExist):
		return fsys.NewMemStore(configuration.Filesystem.Files)
	case err != nil:
		return nil, err
	}
	// The archive is read into memory up front.
	defer fd.Close()

	return fsys.NewTarStore(fd, configuration.Filesystem.Files)
}

// Close releases the disk image.
func (s *System) Close() error {
	return s.toClose.Close()
}
