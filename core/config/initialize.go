package config

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"log"
	"os"

	"github.com/josephlewis42/mithlsh/core/disk"
	"github.com/spf13/afero"
)

// Initialize sets up a configuration directory at dir, files that already
// exist are left alone.
func Initialize(dir string, logger *log.Logger) (*Configuration, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}

	if err := InitializeFs(afero.NewBasePathFs(afero.NewOsFs(), dir), logger); err != nil {
		return nil, err
	}

	return Load(dir)
}

// InitializeFs writes the default configuration and its supporting files into
// configFs.
func InitializeFs(configFs afero.Fs, logger *log.Logger) error {
	if err := writeIfMissing(configFs, ConfigurationName, logger, func() ([]byte, error) {
		return defaultConfigData, nil
	}); err != nil {
		return err
	}

	logger.Printf("Creating %s directory", LogsDirName)
	if err := configFs.MkdirAll(LogsDirName, 0700); err != nil {
		return err
	}

	if err := writeIfMissing(configFs, PrivateKeyName, logger, generatePrivateKeyPem); err != nil {
		return err
	}

	cfg, err := LoadFs(configFs)
	if err != nil {
		return err
	}

	if cfg.Disk.Image == "" {
		return nil
	}
	if exists, err := afero.Exists(configFs, cfg.Disk.Image); err != nil || exists {
		return err
	}

	logger.Printf("Formatting %s with %d sectors", cfg.Disk.Image, cfg.Disk.Sectors)
	fd, err := configFs.Create(cfg.Disk.Image)
	if err != nil {
		return err
	}
	defer fd.Close()

	return disk.Format(fd, cfg.Disk.Sectors)
}

func writeIfMissing(configFs afero.Fs, name string, logger *log.Logger, contents func() ([]byte, error)) error {
	exists, err := afero.Exists(configFs, name)
	if err != nil {
		return err
	}
	if exists {
		logger.Printf("Keeping existing %s", name)
		return nil
	}

	data, err := contents()
	if err != nil {
		return fmt.Errorf("creating %s: %w", name, err)
	}

	logger.Printf("Writing %s", name)
	return afero.WriteFile(configFs, name, data, 0600)
}

func generatePrivateKeyPem() ([]byte, error) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, err
	}

	return pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	}), nil
}
