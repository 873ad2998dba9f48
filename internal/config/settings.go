package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/bartint/internal/autotheme"
)

// Format is a settings output encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatTOML, FormatJSON, FormatText:
		return f, nil
	}
	return "", fmt.Errorf("invalid format %q (valid: toml, json, text)", s)
}

// settingsValues flattens settings into one key/value map. Colours are
// string triples, alphas plain numbers.
func settingsValues(st autotheme.Settings) map[string]any {
	out := make(map[string]any, len(st.Colours)+len(st.Alphas))
	for k, v := range st.Colours {
		out[k] = v[:]
	}
	for k, v := range st.Alphas {
		out[k] = v
	}
	return out
}

// WriteSettings encodes settings to w.
func WriteSettings(w io.Writer, st autotheme.Settings, f Format) error {
	switch f {
	case FormatTOML:
		enc := toml.NewEncoder(w)
		if err := enc.Encode(settingsValues(st)); err != nil {
			return fmt.Errorf("failed to encode settings: %w", err)
		}
		return nil

	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(settingsValues(st)); err != nil {
			return fmt.Errorf("failed to encode settings: %w", err)
		}
		return nil

	case FormatText:
		for _, k := range st.Keys() {
			var line string
			if v, ok := st.Colours[k]; ok {
				line = fmt.Sprintf("%s %s %s %s\n", k, v[0], v[1], v[2])
			} else {
				line = fmt.Sprintf("%s %s\n", k, strconv.FormatFloat(st.Alphas[k], 'f', -1, 64))
			}
			if _, err := io.WriteString(w, line); err != nil {
				return fmt.Errorf("failed to write settings: %w", err)
			}
		}
		return nil
	}
	return fmt.Errorf("invalid format %q", f)
}

// MergeSettingsFile writes settings into a TOML file, keeping any keys
// already there. Dark and light runs share one file this way.
func MergeSettingsFile(path string, st autotheme.Settings) error {
	merged := map[string]any{}
	data, err := os.ReadFile(path) // #nosec G304 - User-specified output path
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return fmt.Errorf("failed to read settings file: %w", err)
	default:
		if err := toml.Unmarshal(data, &merged); err != nil {
			return fmt.Errorf("failed to parse settings file %s: %w", path, err)
		}
	}

	for k, v := range settingsValues(st) {
		merged[k] = v
	}

	out, err := toml.Marshal(merged)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil { // #nosec G301 - Output directory needs standard permissions
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	// Write through a temp file so a watcher never reads a partial file.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, out, 0o644); err != nil { // #nosec G306 - Settings are not secret
		return fmt.Errorf("failed to write settings: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace settings file: %w", err)
	}
	return nil
}

// ReadSettingsFile reads the colour keys of a settings file written by
// MergeSettingsFile.
func ReadSettingsFile(path string) (map[string][3]string, error) {
	data, err := os.ReadFile(path) // #nosec G304 - User-specified settings path
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}
	raw := map[string]any{}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse settings file %s: %w", path, err)
	}

	out := map[string][3]string{}
	for k, v := range raw {
		arr, ok := v.([]any)
		if !ok || len(arr) != 3 {
			continue
		}
		var triple [3]string
		for i, e := range arr {
			s, ok := e.(string)
			if !ok {
				break
			}
			triple[i] = s
		}
		if triple[2] != "" {
			out[k] = triple
		}
	}
	return out, nil
}
