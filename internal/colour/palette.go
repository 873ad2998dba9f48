// Package colour provides palette extraction and colour-science primitives.
package colour

import (
	"encoding/json"
	"fmt"
	"image/color"
	"os"
	"strings"
)

// Palette represents a collection of colours extracted from an image.
// Weights, when present, holds the fraction (0-1) of sampled pixels that
// quantized to each colour.
type Palette struct {
	Colors  []color.Color
	Weights []float64
}

// NewPalette creates a new Palette with the given colours and no weights.
func NewPalette(colors []color.Color) *Palette {
	return &Palette{
		Colors: colors,
	}
}

// NewPaletteWithWeights creates a new Palette with per-colour weights.
func NewPaletteWithWeights(colors []color.Color, weights []float64) *Palette {
	return &Palette{
		Colors:  colors,
		Weights: weights,
	}
}

// Len returns the number of colours in the palette.
func (p *Palette) Len() int {
	return len(p.Colors)
}

// RGB represents a colour in 8-bit RGB format.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB colour as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB colour as a hex string (e.g., "#1a2b3c").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// Float returns the colour as an RGB64.
func (rgb RGB) Float() RGB64 {
	return RGB64{R: float64(rgb.R), G: float64(rgb.G), B: float64(rgb.B)}
}

// ToRGB converts a color.Color to RGB.
func ToRGB(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	// RGBA returns values in the range [0, 65535], convert to [0, 255]
	return RGB{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
	}
}

// ParseHex parses "#rrggbb" or "rrggbb".
func ParseHex(s string) (RGB, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return RGB{}, fmt.Errorf("invalid hex colour %q: expected 6 hex digits", s)
	}
	var v [3]uint8
	for i := range 3 {
		hi, ok1 := hexNibble(s[i*2])
		lo, ok2 := hexNibble(s[i*2+1])
		if !ok1 || !ok2 {
			return RGB{}, fmt.Errorf("invalid hex colour %q", s)
		}
		v[i] = hi<<4 | lo
	}
	return RGB{R: v[0], G: v[1], B: v[2]}, nil
}

func hexNibble(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// ToHex converts the palette colours to hex strings.
func (p *Palette) ToHex() []string {
	hexColors := make([]string, len(p.Colors))
	for i, c := range p.Colors {
		hexColors[i] = ToRGB(c).Hex()
	}
	return hexColors
}

// ToRGBSlice converts the palette colours to RGB structs.
func (p *Palette) ToRGBSlice() []RGB {
	rgbColors := make([]RGB, len(p.Colors))
	for i, c := range p.Colors {
		rgbColors[i] = ToRGB(c)
	}
	return rgbColors
}

// WeightedColour is a palette colour paired with the percentage (0-100) of
// image pixels it represents.
type WeightedColour struct {
	Colour RGB64
	Weight float64
}

// Weighted returns the palette as weighted colours in palette order, with
// weights scaled to percentages summing to 100. A palette without weights is
// treated as uniformly weighted.
func (p *Palette) Weighted() []WeightedColour {
	out := make([]WeightedColour, len(p.Colors))
	if len(out) == 0 {
		return out
	}

	total := 0.0
	for i := range p.Colors {
		if i < len(p.Weights) {
			total += p.Weights[i]
		}
	}

	for i, c := range p.Colors {
		w := 100.0 / float64(len(p.Colors))
		if total > 0 && i < len(p.Weights) {
			w = p.Weights[i] / total * 100
		}
		out[i] = WeightedColour{Colour: ToRGB(c).Float(), Weight: w}
	}
	return out
}

// ColorJSON represents a colour in JSON output format.
type ColorJSON struct {
	Hex    string  `json:"hex"`
	RGB    RGB     `json:"rgb"`
	Weight float64 `json:"weight,omitempty"`
}

// PaletteJSON represents the palette in JSON format.
type PaletteJSON struct {
	Count  int         `json:"count"`
	Colors []ColorJSON `json:"colors"`
}

// ToJSON converts the palette to JSON format.
func (p *Palette) ToJSON() ([]byte, error) {
	colors := make([]ColorJSON, len(p.Colors))
	for i, c := range p.Colors {
		rgb := ToRGB(c)
		colors[i] = ColorJSON{
			Hex: rgb.Hex(),
			RGB: rgb,
		}
		if i < len(p.Weights) {
			colors[i].Weight = p.Weights[i]
		}
	}

	return json.MarshalIndent(PaletteJSON{
		Count:  len(p.Colors),
		Colors: colors,
	}, "", "  ")
}

// PaletteFromJSON decodes a palette written by ToJSON. Entries may give either
// a hex string or an rgb object; weights are optional.
func PaletteFromJSON(data []byte) (*Palette, error) {
	var pj PaletteJSON
	if err := json.Unmarshal(data, &pj); err != nil {
		return nil, fmt.Errorf("failed to parse palette JSON: %w", err)
	}
	if len(pj.Colors) == 0 {
		return nil, fmt.Errorf("palette contains no colours")
	}

	colors := make([]color.Color, len(pj.Colors))
	weights := make([]float64, len(pj.Colors))
	hasWeights := false
	for i, cj := range pj.Colors {
		rgb := cj.RGB
		if cj.Hex != "" {
			parsed, err := ParseHex(cj.Hex)
			if err != nil {
				return nil, fmt.Errorf("colour %d: %w", i, err)
			}
			rgb = parsed
		}
		colors[i] = RGBToColor(rgb)
		weights[i] = cj.Weight
		if cj.Weight > 0 {
			hasWeights = true
		}
	}

	if !hasWeights {
		return NewPalette(colors), nil
	}
	return NewPaletteWithWeights(colors, weights), nil
}

// LoadPaletteFile reads a JSON palette from disk.
func LoadPaletteFile(path string) (*Palette, error) {
	data, err := os.ReadFile(path) // #nosec G304 - User-specified palette path, intended to be read
	if err != nil {
		return nil, fmt.Errorf("failed to read palette file: %w", err)
	}
	return PaletteFromJSON(data)
}

// String returns a human-readable string representation of the palette.
func (p *Palette) String() string {
	if len(p.Colors) == 0 {
		return "Empty palette"
	}

	result := fmt.Sprintf("Palette with %d colors:\n", len(p.Colors))
	for i, c := range p.Colors {
		rgb := ToRGB(c)
		if i < len(p.Weights) {
			result += fmt.Sprintf("  %2d: %s (%s) %5.1f%%\n", i+1, rgb.Hex(), rgb.String(), p.Weights[i]*100)
			continue
		}
		result += fmt.Sprintf("  %2d: %s (%s)\n", i+1, rgb.Hex(), rgb.String())
	}
	return result
}

// Get returns the colour at the specified index.
func (p *Palette) Get(index int) (color.Color, error) {
	if index < 0 || index >= len(p.Colors) {
		return nil, fmt.Errorf("index out of bounds: %d (palette has %d colors)", index, len(p.Colors))
	}
	return p.Colors[index], nil
}

// RGBToColor converts an RGB value to a color.Color (RGBA).
func RGBToColor(rgb RGB) color.Color {
	return color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}
}
