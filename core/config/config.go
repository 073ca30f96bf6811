package config

import (
	_ "embed"
	"os"
	"path"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

var (
	//go:embed default/config.yaml
	defaultConfigData []byte
)

const (
	ConfigurationName = "config.yaml"
	LogsDirName       = "session_logs"
	PrivateKeyName    = "private_key"
	AppLogName        = "app.log"
)

type Configuration struct {
	configFs afero.Fs

	Motd             string `json:"motd"`
	SSHPort          int    `json:"ssh_port" validate:"gte=0,lte=65535"`
	SSHBanner        string `json:"ssh_banner"`
	AllowAnyPassword bool   `json:"allow_any_password"`

	GlobalPasswords []string `json:"global_passwords"`

	Users []User `json:"users" validate:"unique=Username,dive"`

	Shell      Shell      `json:"shell"`
	Console    Console    `json:"console"`
	Disk       Disk       `json:"disk"`
	Filesystem Filesystem `json:"filesystem"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

type User struct {
	Username  string   `json:"username" validate:"required"`
	Passwords []string `json:"passwords" validate:"unique"`
}

// Shell holds what the kernel shell reports about the machine.
type Shell struct {
	User           string `json:"user" validate:"required"`
	OSName         string `json:"os_name" validate:"required"`
	Date           string `json:"date" validate:"required"`
	OutputCapacity int    `json:"output_capacity" validate:"gte=1,lte=65536"`
	NormalizeEcho  bool   `json:"normalize_echo"`
}

// Console holds terminal settings.
type Console struct {
	Prompt   string `json:"prompt" validate:"required"`
	BaudRate int    `json:"baud_rate" validate:"gte=0"`
}

// Disk describes the disk image read by the shell.
type Disk struct {
	Image   string `json:"image"`
	Sectors int    `json:"sectors" validate:"gte=1"`
}

// Filesystem describes the files visible to the shell.
type Filesystem struct {
	RootFs string            `json:"root_fs"`
	Files  map[string]string `json:"files"`
}

func (c *Configuration) fs() afero.Fs {
	return c.configFs
}

// CreateSessionLog creates a terminal recording with the given name.
func (c *Configuration) CreateSessionLog(name string) (afero.File, error) {
	toCreate := path.Join(LogsDirName, name)
	return c.fs().Create(toCreate)
}

// PrivateKeyPem returns the bytes of the private key.
func (c *Configuration) PrivateKeyPem() ([]byte, error) {
	return afero.ReadFile(c.fs(), PrivateKeyName)
}

// OpenAppLog opens the application log in an append only state.
func (c *Configuration) OpenAppLog() (afero.File, error) {
	return c.fs().OpenFile(AppLogName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
}

func (c *Configuration) ReadAppLog() (afero.File, error) {
	return c.fs().OpenFile(AppLogName, os.O_RDONLY, 0600)
}

// OpenDiskImage opens the configured disk image read only. It returns
// os.ErrNotExist if no image is configured.
func (c *Configuration) OpenDiskImage() (afero.File, error) {
	if c.Disk.Image == "" {
		return nil, &os.PathError{Op: "open", Path: "disk image", Err: os.ErrNotExist}
	}
	return c.fs().Open(c.Disk.Image)
}

// OpenRootFs opens the backing filesystem archive. It returns os.ErrNotExist
// if no archive is configured.
func (c *Configuration) OpenRootFs() (afero.File, error) {
	if c.Filesystem.RootFs == "" {
		return nil, &os.PathError{Op: "open", Path: "root fs", Err: os.ErrNotExist}
	}
	return c.fs().Open(c.Filesystem.RootFs)
}

// GetPasswords returns allowable passwords for the given username.
func (c *Configuration) GetPasswords(username string) []string {
	var out []string
	for _, v := range c.Users {
		if v.Username == username {
			out = append(out, v.Passwords...)
		}
	}

	out = append(out, c.GlobalPasswords...)
	return out
}

func defaultConfig() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}

// Default returns the built-in configuration backed by an in-memory
// directory with no disk image.
func Default() *Configuration {
	out := defaultConfig()
	out.configFs = afero.NewMemMapFs()
	out.Disk.Image = ""
	return out
}
