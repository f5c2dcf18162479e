package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rgehrsitz/mawc/internal/calculation"
)

// DefaultSettingsFile is read from the working directory when --settings is not given.
const DefaultSettingsFile = "mawc.toml"

// Settings holds CLI defaults that individual flags override.
type Settings struct {
	RatesFile string `toml:"rates_file"`
	Format    string `toml:"format"`
	WeekMode  string `toml:"week_mode"`
	Addr      string `toml:"addr"`
}

// DefaultSettings returns the settings used when no file is present.
func DefaultSettings() Settings {
	return Settings{
		RatesFile: "rates.json",
		Format:    "console",
		WeekMode:  "days",
		Addr:      ":8080",
	}
}

// LoadSettings reads a TOML settings file over the defaults. Keys absent from
// the file keep their default. A missing file is an error only when required.
func LoadSettings(path string, required bool) (Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("failed to read settings %s: %w", path, err)
	}

	md, err := toml.Decode(string(data), &settings)
	if err != nil {
		return settings, fmt.Errorf("failed to parse settings %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return settings, fmt.Errorf("unknown settings keys in %s: %s", path, strings.Join(keys, ", "))
	}

	if err := settings.Validate(); err != nil {
		return settings, fmt.Errorf("invalid settings %s: %w", path, err)
	}
	return settings, nil
}

// Validate checks the week mode. The format is checked by the formatter lookup.
func (s Settings) Validate() error {
	if _, err := calculation.ParseWeekMode(s.WeekMode); err != nil {
		return err
	}
	if strings.TrimSpace(s.Format) == "" {
		return fmt.Errorf("format cannot be empty")
	}
	return nil
}
