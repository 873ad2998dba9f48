package colour

import (
	"image"
	"image/color"
	"math"
	"testing"
)

// blockImage paints horizontal bands whose heights are proportional to shares.
func blockImage(width int, bands []color.RGBA, shares []int) *image.RGBA {
	height := 0
	for _, s := range shares {
		height += s
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	y := 0
	for i, band := range bands {
		for range shares[i] {
			for x := range width {
				img.Set(x, y, band)
			}
			y++
		}
	}
	return img
}

func gradientImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.RGBA{R: uint8(x * 255 / w), G: uint8(y * 255 / h), B: uint8((x + y) % 256), A: 255})
		}
	}
	return img
}

func TestKMeansExtractFewColoursPads(t *testing.T) {
	img := blockImage(10, []color.RGBA{
		{R: 200, A: 255},
		{G: 200, A: 255},
		{B: 200, A: 255},
	}, []int{6, 3, 1})

	palette, err := NewKMeansExtractor(0).Extract(img, 12)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if palette.Len() != 12 || len(palette.Weights) != 12 {
		t.Fatalf("palette has %d colours, %d weights; want 12", palette.Len(), len(palette.Weights))
	}
	if got := ToRGB(palette.Colors[0]); got != (RGB{R: 200}) {
		t.Errorf("heaviest colour = %+v, want red", got)
	}
	if math.Abs(palette.Weights[0]-0.6) > 1e-9 {
		t.Errorf("heaviest weight = %v, want 0.6", palette.Weights[0])
	}
	for i := 3; i < 12; i++ {
		if palette.Weights[i] != 0 {
			t.Errorf("padding weight %d = %v, want 0", i, palette.Weights[i])
		}
	}
}

func TestKMeansExtractGradient(t *testing.T) {
	img := gradientImage(120, 90)

	first, err := NewKMeansExtractor(42).Extract(img, 12)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	second, err := NewKMeansExtractor(42).Extract(img, 12)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	sum := 0.0
	for i, w := range first.Weights {
		sum += w
		if i > 0 && w > first.Weights[i-1] {
			t.Errorf("weights not descending at %d: %v > %v", i, w, first.Weights[i-1])
		}
		if ToRGB(first.Colors[i]) != ToRGB(second.Colors[i]) {
			t.Errorf("same seed produced different colour at %d", i)
		}
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("weights sum to %v, want 1", sum)
	}
}

func TestKMeansExtractErrors(t *testing.T) {
	e := NewKMeansExtractor(0)
	if _, err := e.Extract(nil, 12); err == nil {
		t.Error("expected error for nil image")
	}
	img := gradientImage(4, 4)
	if _, err := e.Extract(img, 0); err == nil {
		t.Error("expected error for zero count")
	}
	if _, err := e.Extract(img, 300); err == nil {
		t.Error("expected error for oversized count")
	}
	if _, err := e.Extract(image.NewRGBA(image.Rect(0, 0, 3, 3)), 12); err == nil {
		t.Error("expected error for fully transparent image")
	}
}

func TestExtractorConfigValidate(t *testing.T) {
	if err := DefaultExtractorConfig().Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
	bad := DefaultExtractorConfig()
	bad.Algorithm = "mediancut"
	if err := bad.Validate(); err == nil {
		t.Error("expected error for unknown algorithm")
	}
	if _, err := NewExtractor(bad); err == nil {
		t.Error("NewExtractor should reject unknown algorithm")
	}
}
