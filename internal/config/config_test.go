package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jmylchreest/bartint/internal/autotheme"
	"github.com/jmylchreest/bartint/internal/colour"
)

func TestLoadProfileMissingFileGivesDefaults(t *testing.T) {
	p, err := LoadProfile(filepath.Join(t.TempDir(), "profile.toml"))
	if err != nil {
		t.Fatalf("LoadProfile() error: %v", err)
	}
	if p != Default() {
		t.Errorf("LoadProfile() = %+v, want defaults", p)
	}
	if err := p.Validate(); err != nil {
		t.Errorf("default profile is invalid: %v", err)
	}
}

func TestLoadProfileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.toml")
	data := `
dark-theme = "Pastel"
light-theme = ""
color-scheme = "default"
accent-override = true
accent-color = [0.784, 0.196, 0.196]
neon = true
headerbar-hint = 25.0
bar-type = "Islands"
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	p, err := LoadProfile(path)
	if err != nil {
		t.Fatalf("LoadProfile() error: %v", err)
	}
	if p.DarkTheme != "Pastel" || p.LightTheme != "" || !p.Neon || p.BarType != "Islands" {
		t.Errorf("unexpected profile: %+v", p)
	}
	if p.PaletteSize != autotheme.PaletteSize {
		t.Errorf("unset palette-size should keep its default, got %d", p.PaletteSize)
	}
	if p.Scheme() != autotheme.SchemeLight {
		t.Errorf("color-scheme default should select the light scheme")
	}

	th, err := p.ThemeFor(autotheme.SchemeLight)
	if err != nil || th != autotheme.ThemeNone {
		t.Errorf("ThemeFor(light) = %q, %v; want none", th, err)
	}
}

func TestLoadProfileInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.toml")
	if err := os.WriteFile(path, []byte("dark-theme = [unterminated"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadProfile(path); err == nil || !strings.Contains(err.Error(), "failed to parse profile") {
		t.Errorf("LoadProfile() error = %v", err)
	}
}

func TestSaveProfileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "profile.toml")
	want := Default()
	want.DarkTheme = "Color"
	want.HeaderbarHint = 40
	want.SubMenuOverride = true

	if err := SaveProfile(path, want); err != nil {
		t.Fatalf("SaveProfile() error: %v", err)
	}
	got, err := LoadProfile(path)
	if err != nil {
		t.Fatalf("LoadProfile() error: %v", err)
	}
	if got != want {
		t.Errorf("round trip = %+v, want %+v", got, want)
	}
}

func TestProfileValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Profile)
		want   string
	}{
		{"bad theme", func(p *Profile) { p.DarkTheme = "Sepia" }, "dark-theme"},
		{"bad bar", func(p *Profile) { p.BarType = "Archipelago" }, "bar-type"},
		{"hint range", func(p *Profile) { p.HeaderbarHint = 150 }, "headerbar-hint"},
		{"palette size", func(p *Profile) { p.PaletteSize = 3 }, "palette-size"},
		{"colour range", func(p *Profile) { p.AccentColor = [3]float64{2, 0, 0} }, "accent-color"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Default()
			tt.modify(&p)
			err := p.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() error = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestProfileValidateErrorOrder(t *testing.T) {
	p := Default()
	p.DarkTheme = "Sepia"
	p.LightTheme = "Umber"
	p.AccentColor = [3]float64{2, 0, 0}
	p.SubMenuColor = [3]float64{0, -1, 0}

	want := []string{"dark-theme:", "light-theme:", "accent-color", "smbg-color"}
	for range 20 {
		err := p.Validate()
		if err == nil {
			t.Fatal("Validate() returned nil")
		}
		lines := strings.Split(err.Error(), "\n")
		if len(lines) != len(want) {
			t.Fatalf("Validate() gave %d errors, want %d: %v", len(lines), len(want), err)
		}
		for i, prefix := range want {
			if !strings.HasPrefix(lines[i], prefix) {
				t.Fatalf("error %d = %q, want prefix %q", i, lines[i], prefix)
			}
		}
	}
}

func TestLoaderEnv(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, "env.toml")
	if err := os.WriteFile(envPath, []byte(`dark-theme = "Color"`), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvProfile, envPath)
	t.Setenv(EnvColorScheme, "prefer-light")

	p, err := NewLoader().WithEnv().Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if p.DarkTheme != "Color" {
		t.Errorf("BARTINT_PROFILE not honoured: dark-theme = %q", p.DarkTheme)
	}
	if p.Scheme() != autotheme.SchemeLight {
		t.Errorf("BARTINT_COLOR_SCHEME not honoured: %q", p.ColorScheme)
	}

	explicit := filepath.Join(dir, "explicit.toml")
	if err := os.WriteFile(explicit, []byte(`dark-theme = "Pastel"`), 0o600); err != nil {
		t.Fatal(err)
	}
	p, err = NewLoader().WithFile(explicit).WithEnv().Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if p.DarkTheme != "Pastel" {
		t.Errorf("explicit file should win over BARTINT_PROFILE, got %q", p.DarkTheme)
	}

	t.Setenv("XDG_CONFIG_HOME", dir)
	if got, _ := NewLoader().Path(); got != filepath.Join(dir, "bartint", "profile.toml") {
		t.Errorf("Path() without env = %s", got)
	}
}

func TestProfileInput(t *testing.T) {
	p := Default()
	p.AccentOverride = true
	p.AccentColor = [3]float64{200.0 / 255, 50.0 / 255, 50.0 / 255}
	p.BarType = "floating"
	p.AutoAlpha = true

	pal := []colour.WeightedColour{{Colour: colour.Grey(10), Weight: 100}}
	in, err := p.Input(pal, autotheme.SchemeDark)
	if err != nil {
		t.Fatalf("Input() error: %v", err)
	}
	if in.Theme != autotheme.ThemeDark || in.Scheme != autotheme.SchemeDark {
		t.Errorf("Input() theme/scheme = %q/%s", in.Theme, in.Scheme)
	}
	if in.BarType != autotheme.BarFloating || !in.AutoAlpha {
		t.Errorf("Input() bar = %q, auto-alpha %v", in.BarType, in.AutoAlpha)
	}
	if !in.Accent.Enabled || in.Accent.Colour.Round() != colour.NewRGB64(200, 50, 50) {
		t.Errorf("Input() accent = %+v", in.Accent)
	}
	if in.SubMenu.Enabled {
		t.Error("sub-menu override should be off by default")
	}
}

func testSettings() autotheme.Settings {
	return autotheme.Settings{
		Scheme: autotheme.SchemeDark,
		Colours: map[string][3]string{
			"dark-bgcolor":  {"0.078", "0.094", "0.149"},
			"dark-bgcolor2": {"0.784", "0.196", "0.196"},
		},
		Alphas: map[string]float64{"dark-bgalpha": 0.95},
	}
}

func TestWriteSettings(t *testing.T) {
	st := testSettings()

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		if err := WriteSettings(&buf, st, FormatText); err != nil {
			t.Fatal(err)
		}
		want := "dark-bgcolor 0.078 0.094 0.149\ndark-bgcolor2 0.784 0.196 0.196\ndark-bgalpha 0.95\n"
		if buf.String() != want {
			t.Errorf("text output:\n%s\nwant:\n%s", buf.String(), want)
		}
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		if err := WriteSettings(&buf, st, FormatJSON); err != nil {
			t.Fatal(err)
		}
		var got map[string]any
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if got["dark-bgalpha"] != 0.95 {
			t.Errorf("dark-bgalpha = %v", got["dark-bgalpha"])
		}
		if arr, ok := got["dark-bgcolor2"].([]any); !ok || arr[0] != "0.784" {
			t.Errorf("dark-bgcolor2 = %v", got["dark-bgcolor2"])
		}
	})

	t.Run("toml", func(t *testing.T) {
		var buf bytes.Buffer
		if err := WriteSettings(&buf, st, FormatTOML); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(buf.String(), "dark-bgcolor2") {
			t.Errorf("toml output missing key:\n%s", buf.String())
		}
	})

	if err := WriteSettings(&bytes.Buffer{}, st, "yaml"); err == nil {
		t.Error("expected an error for an unknown format")
	}
}

func TestMergeSettingsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "settings.toml")

	if err := MergeSettingsFile(path, testSettings()); err != nil {
		t.Fatalf("MergeSettingsFile() error: %v", err)
	}
	light := autotheme.Settings{
		Scheme:  autotheme.SchemeLight,
		Colours: map[string][3]string{"light-bgcolor": {"0.900", "0.900", "0.900"}},
	}
	if err := MergeSettingsFile(path, light); err != nil {
		t.Fatalf("second MergeSettingsFile() error: %v", err)
	}

	got, err := ReadSettingsFile(path)
	if err != nil {
		t.Fatalf("ReadSettingsFile() error: %v", err)
	}
	if got["dark-bgcolor2"] != [3]string{"0.784", "0.196", "0.196"} {
		t.Errorf("dark key lost after merge: %v", got)
	}
	if got["light-bgcolor"] != [3]string{"0.900", "0.900", "0.900"} {
		t.Errorf("light key missing: %v", got)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file left behind")
	}
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"toml", "JSON", "text"} {
		if _, err := ParseFormat(s); err != nil {
			t.Errorf("ParseFormat(%q) error: %v", s, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml) should fail")
	}
}
