package config

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v2"
)

func TestBuiltinConfig(t *testing.T) {
	rawConfig := make(map[string]interface{})
	assert.Nil(t, yaml.Unmarshal(defaultConfigData, &rawConfig))

	knownFields := make(map[string]bool)
	rt := reflect.TypeOf(Configuration{})
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}

		jsonTag := field.Tag.Get("json")
		assert.NotEmpty(t, jsonTag)
		jsonField := strings.Split(jsonTag, ",")[0]
		knownFields[jsonField] = true

		if _, ok := rawConfig[jsonField]; !ok {
			assert.False(t, true, "default config missing field: %q", jsonField)
		}
	}

	for k := range rawConfig {
		_, ok := knownFields[k]
		assert.True(t, ok, "default config contains invalid field: %q", k)
	}
}

func TestDefaultConfig(t *testing.T) {
	// Will panic() on load failure because it should never happen at runtime.
	cfg := defaultConfig()
	assert.NotNil(t, cfg)
	assert.Nil(t, cfg.Validate())

	assert.Equal(t, "root", cfg.Shell.User)
	assert.Equal(t, 2048, cfg.Shell.OutputCapacity)
	assert.Contains(t, cfg.Filesystem.Files, "README.txt")
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Empty(t, cfg.Disk.Image)

	_, err := cfg.OpenDiskImage()
	assert.Error(t, err)

	_, err = cfg.OpenRootFs()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(c *Configuration){
		"bad-port":       func(c *Configuration) { c.SSHPort = 70000 },
		"no-user":        func(c *Configuration) { c.Shell.User = "" },
		"zero-capacity":  func(c *Configuration) { c.Shell.OutputCapacity = 0 },
		"negative-baud":  func(c *Configuration) { c.Console.BaudRate = -1 },
		"no-sectors":     func(c *Configuration) { c.Disk.Sectors = 0 },
		"duplicate-user": func(c *Configuration) { c.Users = append(c.Users, c.Users[0]) },
		"blank-username": func(c *Configuration) { c.Users = append(c.Users, User{}) },
	}

	for tn, mutate := range cases {
		t.Run(tn, func(t *testing.T) {
			cfg := defaultConfig()
			mutate(cfg)

			assert.NotNil(t, cfg.Validate())
		})
	}
}

func TestGetPasswords(t *testing.T) {
	cfg := defaultConfig()
	cfg.GlobalPasswords = []string{"global"}

	assert.Equal(t, []string{"root", "toor", "global"}, cfg.GetPasswords("root"))
	assert.Equal(t, []string{"global"}, cfg.GetPasswords("nobody"))
}
