package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
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

	EventLogNone   = "none"
	EventLogJSONL  = "jsonl"
	EventLogSQLite = "sqlite"

	ColorAlways = "always"
	ColorAuto   = "auto"
	ColorNever  = "never"
)

type Configuration struct {
	configFs         afero.Fs
	configurationDir string

	Prompt       string `json:"prompt"`
	MaxLineBytes int    `json:"max_line_bytes" validate:"gte=2,lte=65536"`
	RedirectMode string `json:"redirect_mode" validate:"required,octalmode"`
	NullDevice   string `json:"null_device" validate:"required"`
	Color        string `json:"color" validate:"oneof=always auto never"`

	LineEditing LineEditing `json:"line_editing"`
	EventLog    EventLog    `json:"event_log"`
}

type LineEditing struct {
	Enabled     bool   `json:"enabled"`
	HistoryFile string `json:"history_file"`
}

type EventLog struct {
	Driver string `json:"driver" validate:"oneof=none jsonl sqlite"`
	Path   string `json:"path" validate:"required_unless=Driver none"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})
	if err := validate.RegisterValidation("octalmode", func(fl validator.FieldLevel) bool {
		_, err := parseMode(fl.Field().String())
		return err == nil
	}); err != nil {
		return err
	}

	return validate.Struct(c)
}

func (c *Configuration) fs() afero.Fs {
	if c.configFs == nil {
		c.configFs = afero.NewMemMapFs()
	}
	return c.configFs
}

// Dir is the directory the configuration was loaded from, empty for the
// built-in defaults.
func (c *Configuration) Dir() string {
	return c.configurationDir
}

// RedirectFileMode returns the permission bits for files created by output
// redirection.
func (c *Configuration) RedirectFileMode() os.FileMode {
	mode, err := parseMode(c.RedirectMode)
	if err != nil {
		return 0744
	}
	return mode
}

// OpenEventLog opens the JSON lines event log in an append only state.
func (c *Configuration) OpenEventLog() (afero.File, error) {
	return c.fs().OpenFile(c.EventLog.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
}

// ReadEventLog opens the JSON lines event log for reading.
func (c *Configuration) ReadEventLog() (afero.File, error) {
	return c.fs().OpenFile(c.EventLog.Path, os.O_RDONLY, 0600)
}

// ResolvePath returns the on-disk location of a path relative to the
// configuration directory. Used for files that need a real path such as the
// SQLite event log and the line editor history.
func (c *Configuration) ResolvePath(name string) string {
	if name == "" || filepath.IsAbs(name) || c.configurationDir == "" {
		return name
	}
	return filepath.Join(c.configurationDir, name)
}

// Default returns the built-in configuration. Nothing is persisted.
func Default() *Configuration {
	cfg := defaultConfig()
	cfg.EventLog.Driver = EventLogNone
	cfg.configFs = afero.NewMemMapFs()
	return cfg
}

func defaultConfig() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}

func parseMode(mode string) (os.FileMode, error) {
	parsed, err := strconv.ParseUint(mode, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid file mode %q: %w", mode, err)
	}
	if parsed > 0777 {
		return 0, fmt.Errorf("invalid file mode %q: only permission bits are allowed", mode)
	}
	return os.FileMode(parsed), nil
}
