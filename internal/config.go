package internal

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

type Config struct {
	Storage      StorageConfig      `mapstructure:"storage"`
	Notification NotificationConfig `mapstructure:"notification"`
	Logging      LoggingConfig      `mapstructure:"logging"`
	Reference    ReferenceConfig    `mapstructure:"reference"`
	Report       ReportConfig       `mapstructure:"report"`
}

type StorageConfig struct {
	Backend string `mapstructure:"backend" validate:"required,oneof=memory file sqlite"`
	Path    string `mapstructure:"path" validate:"required_unless=Backend memory"`
}

type NotificationConfig struct {
	DefaultDuration time.Duration `mapstructure:"default_duration" validate:"min=0"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=json text"`
}

type ReferenceConfig struct {
	Teams      []string `mapstructure:"teams" validate:"dive,required"`
	Categories []string `mapstructure:"categories" validate:"dive,required"`
}

type ReportConfig struct {
	Locale string `mapstructure:"locale" validate:"required,bcp47_language_tag"`
}

const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ----------------- VALIDATION -----------------

func (c *Config) Validate() error {
	var errs []string

	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				errs = append(errs, fmt.Sprintf("%s: failed %q", strings.ToLower(fe.Namespace()), fe.Tag()))
			}
		} else {
			errs = append(errs, err.Error())
		}
	}

	if err := c.Storage.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("storage config: %v", err))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

func (c *StorageConfig) Validate() error {
	if c.Backend == BackendSQLite && c.Path != ":memory:" && filepath.Ext(c.Path) == "" {
		return errors.New("sqlite path must name a database file")
	}
	return nil
}
