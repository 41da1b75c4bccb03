package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"reflect"
	"strings"

	"search-schema/core/database"
	"search-schema/core/logger"
	"search-schema/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DotEnv is the file LoadConfig reads from the config directory.
const DotEnv = ".env"

// Config is the tool's configuration: one section per subsystem.
type Config struct {
	Store   database.Config `mapstructure:"store"`
	Storage storage.Config  `mapstructure:"storage"`
	Log     logger.Config   `mapstructure:"log"`
}

// LoadConfig reads dir/.env into the environment, then resolves every key from the
// environment over the tag defaults. The .env file is optional; a malformed one is
// an error. Values in .env take precedence over the inherited environment.
func LoadConfig(dir string) (*Config, error) {
	envPath := filepath.Join(dir, DotEnv)
	if err := godotenv.Overload(envPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read %s: %w", envPath, err)
	}

	v := viper.New()
	registerDefaults(v, reflect.TypeOf(Config{}), "")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	return &cfg, nil
}

// registerDefaults walks t and sets a default for every mapstructure key, nesting
// struct sections under their tag. Untagged fields are skipped. Every leaf key is
// registered, even without a default tag, since AutomaticEnv only resolves keys
// viper already knows.
func registerDefaults(v *viper.Viper, t reflect.Type, prefix string) {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name := f.Tag.Get("mapstructure")
		if name == "" {
			continue
		}
		if prefix != "" {
			name = prefix + "." + name
		}
		if f.Type.Kind() == reflect.Struct {
			registerDefaults(v, f.Type, name)
			continue
		}
		v.SetDefault(name, f.Tag.Get("default"))
	}
}
