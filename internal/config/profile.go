// Package config loads the bartint profile and writes generated settings.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/bartint/internal/autotheme"
	"github.com/jmylchreest/bartint/internal/colour"
)

// Environment variables read by Loader.WithEnv.
const (
	EnvProfile     = "BARTINT_PROFILE"
	EnvColorScheme = "BARTINT_COLOR_SCHEME"
)

// Profile holds the user's theme preferences. Colours are 0-1 channel
// triples, matching how the shell stores them.
type Profile struct {
	DarkTheme   string `toml:"dark-theme"`
	LightTheme  string `toml:"light-theme"`
	ColorScheme string `toml:"color-scheme"`

	AccentOverride  bool       `toml:"accent-override"`
	AccentColor     [3]float64 `toml:"accent-color"`
	SubMenuOverride bool       `toml:"smbg-override"`
	SubMenuColor    [3]float64 `toml:"smbg-color"`

	Neon          bool    `toml:"neon"`
	AutoAlpha     bool    `toml:"auto-alpha"`
	HeaderbarHint float64 `toml:"headerbar-hint"`
	BarType       string  `toml:"bar-type"`
	PaletteSize   int     `toml:"palette-size"`
}

// Default returns the profile used when no file exists.
func Default() Profile {
	return Profile{
		DarkTheme:    string(autotheme.ThemeDark),
		LightTheme:   string(autotheme.ThemeLight),
		ColorScheme:  "prefer-dark",
		AccentColor:  [3]float64{0.5, 0.5, 0.5},
		SubMenuColor: [3]float64{0.2, 0.2, 0.2},
		BarType:      string(autotheme.BarMainland),
		PaletteSize:  autotheme.PaletteSize,
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/bartint/profile.toml, falling back to
// the platform config directory.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "bartint", "profile.toml"), nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine config directory: %w", err)
	}
	return filepath.Join(dir, "bartint", "profile.toml"), nil
}

// Validate checks enum values and ranges.
func (p Profile) Validate() error {
	var errs []error
	for _, f := range []struct{ name, v string }{
		{"dark-theme", p.DarkTheme},
		{"light-theme", p.LightTheme},
	} {
		if _, err := autotheme.ParseTheme(f.v); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", f.name, err))
		}
	}
	if _, err := autotheme.ParseBarType(p.BarType); err != nil {
		errs = append(errs, fmt.Errorf("bar-type: %w", err))
	}
	if p.HeaderbarHint < 0 || p.HeaderbarHint > 100 {
		errs = append(errs, fmt.Errorf("headerbar-hint must be between 0 and 100, got %v", p.HeaderbarHint))
	}
	if p.PaletteSize < 5 || p.PaletteSize > 32 {
		errs = append(errs, fmt.Errorf("palette-size must be between 5 and 32, got %d", p.PaletteSize))
	}
	for _, f := range []struct {
		name string
		c    [3]float64
	}{
		{"accent-color", p.AccentColor},
		{"smbg-color", p.SubMenuColor},
	} {
		for _, v := range f.c {
			if v < 0 || v > 1 {
				errs = append(errs, fmt.Errorf("%s channels must be between 0 and 1, got %v", f.name, f.c))
				break
			}
		}
	}
	return errors.Join(errs...)
}

// Scheme returns the shell colour scheme the profile selects.
func (p Profile) Scheme() autotheme.Scheme {
	return autotheme.ParseScheme(p.ColorScheme)
}

// ThemeFor returns the theme configured for a scheme. ThemeNone means the
// scheme is not auto-themed.
func (p Profile) ThemeFor(s autotheme.Scheme) (autotheme.Theme, error) {
	if s == autotheme.SchemeLight {
		return autotheme.ParseTheme(p.LightTheme)
	}
	return autotheme.ParseTheme(p.DarkTheme)
}

// Input builds the pipeline input for one scheme.
func (p Profile) Input(palette []colour.WeightedColour, s autotheme.Scheme) (autotheme.Input, error) {
	theme, err := p.ThemeFor(s)
	if err != nil {
		return autotheme.Input{}, err
	}
	bar, err := autotheme.ParseBarType(p.BarType)
	if err != nil {
		return autotheme.Input{}, err
	}
	return autotheme.Input{
		Palette: palette,
		Theme:   theme,
		Scheme:  s,
		Accent: autotheme.Override{
			Enabled: p.AccentOverride,
			Colour:  colour.FromUnit(p.AccentColor[0], p.AccentColor[1], p.AccentColor[2]),
		},
		SubMenu: autotheme.Override{
			Enabled: p.SubMenuOverride,
			Colour:  colour.FromUnit(p.SubMenuColor[0], p.SubMenuColor[1], p.SubMenuColor[2]),
		},
		Neon:          p.Neon,
		HeaderbarHint: p.HeaderbarHint,
		BarType:       bar,
		AutoAlpha:     p.AutoAlpha,
	}, nil
}

// LoadProfile reads a profile file over the defaults. A missing file yields
// the defaults.
func LoadProfile(path string) (Profile, error) {
	p := Default()
	data, err := os.ReadFile(path) // #nosec G304 - User-specified profile path, intended to be read
	if errors.Is(err, fs.ErrNotExist) {
		return p, nil
	}
	if err != nil {
		return Profile{}, fmt.Errorf("failed to read profile: %w", err)
	}
	if err := toml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("failed to parse profile %s: %w", path, err)
	}
	return p, nil
}

// SaveProfile writes a profile file, creating parent directories.
func SaveProfile(path string, p Profile) error {
	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil { // #nosec G301 - Config directory needs standard permissions
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { // #nosec G306 - Profile is not secret
		return fmt.Errorf("failed to write profile: %w", err)
	}
	return nil
}

// Loader resolves the profile from a file and the environment.
type Loader struct {
	path   string
	useEnv bool
}

// NewLoader creates a loader for the default profile path.
func NewLoader() *Loader {
	return &Loader{}
}

// WithFile sets an explicit profile path. It takes precedence over
// BARTINT_PROFILE.
func (l *Loader) WithFile(path string) *Loader {
	l.path = path
	return l
}

// WithEnv enables BARTINT_PROFILE and BARTINT_COLOR_SCHEME.
func (l *Loader) WithEnv() *Loader {
	l.useEnv = true
	return l
}

// Path returns the profile path the loader will read.
func (l *Loader) Path() (string, error) {
	if l.path != "" {
		return l.path, nil
	}
	if l.useEnv {
		if p := os.Getenv(EnvProfile); p != "" {
			return p, nil
		}
	}
	return DefaultPath()
}

// Load reads the profile, applies environment overrides and validates it.
func (l *Loader) Load() (Profile, error) {
	path, err := l.Path()
	if err != nil {
		return Profile{}, err
	}
	p, err := LoadProfile(path)
	if err != nil {
		return Profile{}, err
	}
	if l.useEnv {
		if s := os.Getenv(EnvColorScheme); s != "" {
			p.ColorScheme = s
		}
	}
	if err := p.Validate(); err != nil {
		return Profile{}, fmt.Errorf("invalid profile %s: %w", path, err)
	}
	return p, nil
}
