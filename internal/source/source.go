// Package source provides the palettes the theme pipeline runs on: extracted
// from a wallpaper image, or read from a palette file written by an earlier
// extraction.
package source

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/bartint/internal/colour"
	"github.com/jmylchreest/bartint/internal/image"
	"github.com/jmylchreest/bartint/internal/palettecache"
)

// Source produces a raw palette.
type Source interface {
	// Name identifies the source in logs ("image" or "file").
	Name() string

	// Palette loads or extracts the palette.
	Palette(ctx context.Context) (*colour.Palette, error)
}

// Image extracts a palette from a wallpaper with k-means. The seed is derived
// from the image content, so the same wallpaper always yields the same palette.
type Image struct {
	Path    string
	Colours int
	// Seed overrides the content seed when non-zero.
	Seed uint64
	// Cache, when set, is consulted before extraction and filled after it.
	Cache  *palettecache.Cache
	Logger hclog.Logger
}

// Name returns "image".
func (s *Image) Name() string {
	return "image"
}

// Palette resolves the wallpaper path, then returns the cached palette for its
// content or extracts a new one.
func (s *Image) Palette(ctx context.Context) (*colour.Palette, error) {
	logger := s.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	count := s.Colours
	if count == 0 {
		count = colour.DefaultColourCount
	}

	path, err := image.ResolveImagePath(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve image: %w", err)
	}
	data, err := image.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load image: %w", err)
	}

	key := palettecache.Key(data)
	if s.Cache != nil {
		p, ok, err := s.Cache.Get(ctx, key, count)
		if err != nil {
			logger.Warn("palette cache unavailable", "error", err)
		} else if ok {
			return p, nil
		}
	}

	img, err := image.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load image: %w", err)
	}

	seed := s.Seed
	if seed == 0 {
		seed = image.ContentSeed(img)
	}
	logger.Debug("extracting palette", "path", path, "colours", count, "seed", seed)

	cfg := colour.DefaultExtractorConfig()
	cfg.ColorCount = count
	cfg.Seed = seed
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid extractor config: %w", err)
	}
	extractor, err := colour.NewExtractor(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create extractor: %w", err)
	}

	p, err := extractor.Extract(img, count)
	if err != nil {
		return nil, fmt.Errorf("failed to extract palette: %w", err)
	}

	if s.Cache != nil {
		if err := s.Cache.Put(ctx, key, p); err != nil {
			logger.Warn("failed to cache palette", "error", err)
		}
	}
	return p, nil
}

// File reads a JSON palette written by "bartint extract --format json".
type File struct {
	Path string
}

// Name returns "file".
func (s *File) Name() string {
	return "file"
}

// Palette reads and decodes the palette file.
func (s *File) Palette(_ context.Context) (*colour.Palette, error) {
	if s.Path == "" {
		return nil, fmt.Errorf("palette file path cannot be empty")
	}
	return colour.LoadPaletteFile(s.Path)
}
