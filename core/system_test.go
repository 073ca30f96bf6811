package core

import (
	"archive/tar"
	"bytes"
	"io/ioutil"
	"log"
	"testing"

	"github.com/josephlewis42/mithlsh/commands"
	"github.com/josephlewis42/mithlsh/core/config"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig(t *testing.T) (*config.Configuration, afero.Fs) {
	t.Helper()

	configFs := afero.NewMemMapFs()
	require.NoError(t, config.InitializeFs(configFs, log.New(ioutil.Discard, "", 0)))

	cfg, err := config.LoadFs(configFs)
	require.NoError(t, err)
	return cfg, configFs
}

func TestNewSystem_default(t *testing.T) {
	sys, err := NewSystem(config.Default())
	require.NoError(t, err)
	defer sys.Close()

	in := sys.Interpreter
	assert.Equal(t, "root", in.Run("whoami", 2048))
	assert.Equal(t, commands.ReadBootSig, in.Run("read", 2048))
	assert.Contains(t, in.Run("ls", 2048), "README.txt")
	assert.Contains(t, in.Run("cat welcome.txt", 2048), "Hello and welcome to Mithl OS!")
}

func TestNewSystem_initialized(t *testing.T) {
	cfg, _ := newTestConfig(t)
	cfg.Shell.User = "kernel"

	sys, err := NewSystem(cfg)
	require.NoError(t, err)
	defer sys.Close()

	assert.Equal(t, "kernel", sys.Interpreter.Run("whoami", 2048))
	assert.Equal(t, commands.ReadBootSig, sys.Interpreter.Run("read", 2048))
}

func TestNewSystem_missingDisk(t *testing.T) {
	cfg, _ := newTestConfig(t)
	cfg.Disk.Image = "missing.img"

	_, err := NewSystem(cfg)
	assert.Error(t, err)
}

func TestNewSystem_rootFs(t *testing.T) {
	cfg, configFs := newTestConfig(t)

	var archive bytes.Buffer
	tw := tar.NewWriter(&archive)
	contents := []byte("kernel notes")
	require.NoError(t, tw.WriteHeader(&tar.Header{Name: "notes.md", Mode: 0644, Size: int64(len(contents))}))
	_, err := tw.Write(contents)
	require.NoError(t, err)
	require.NoError(t, tw.Close())
	require.NoError(t, afero.WriteFile(configFs, "rootfs.tar", archive.Bytes(), 0600))

	cfg.Filesystem.RootFs = "rootfs.tar"
	sys, err := NewSystem(cfg)
	require.NoError(t, err)
	defer sys.Close()

	assert.Equal(t, "kernel notes", sys.Interpreter.Run("cat notes.md", 2048))
	assert.Contains(t, sys.Interpreter.Run("cat README.txt", 2048), "Welcome to Mithl OS!")
}
