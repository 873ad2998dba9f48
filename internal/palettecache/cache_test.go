package palettecache

import (
	"context"
	"image/color"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmylchreest/bartint/internal/colour"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(context.Background(), filepath.Join(t.TempDir(), "nested", "palettes.db"), nil)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func testPalette() *colour.Palette {
	return colour.NewPaletteWithWeights(
		[]color.Color{
			color.RGBA{R: 200, G: 50, B: 50, A: 255},
			color.RGBA{R: 20, G: 24, B: 38, A: 255},
			color.RGBA{R: 240, G: 240, B: 235, A: 255},
		},
		[]float64{0.5, 0.3, 0.2},
	)
}

func TestCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := openTestCache(t)
	key := Key([]byte("wallpaper bytes"))

	if _, ok, err := c.Get(ctx, key, 3); err != nil || ok {
		t.Fatalf("Get() on empty cache = ok %v, err %v", ok, err)
	}

	want := testPalette()
	if err := c.Put(ctx, key, want); err != nil {
		t.Fatalf("Put() error: %v", err)
	}

	got, ok, err := c.Get(ctx, key, 3)
	if err != nil || !ok {
		t.Fatalf("Get() = ok %v, err %v", ok, err)
	}
	if got.Len() != want.Len() {
		t.Fatalf("cached palette has %d colours, want %d", got.Len(), want.Len())
	}
	for i := range want.Colors {
		if colour.ToRGB(got.Colors[i]) != colour.ToRGB(want.Colors[i]) {
			t.Errorf("colour %d = %v, want %v", i, colour.ToRGB(got.Colors[i]), colour.ToRGB(want.Colors[i]))
		}
		if got.Weights[i] != want.Weights[i] {
			t.Errorf("weight %d = %v, want %v", i, got.Weights[i], want.Weights[i])
		}
	}

	if _, ok, _ := c.Get(ctx, key, 12); ok {
		t.Error("a palette of a different size should miss")
	}
}

func TestCachePutReplaces(t *testing.T) {
	ctx := context.Background()
	c := openTestCache(t)
	key := Key([]byte("a"))

	if err := c.Put(ctx, key, testPalette()); err != nil {
		t.Fatal(err)
	}
	if err := c.Put(ctx, key, testPalette()); err != nil {
		t.Fatal(err)
	}
	if n, err := c.Len(ctx); err != nil || n != 1 {
		t.Errorf("Len() = %d, %v; want 1", n, err)
	}
}

func TestCachePrune(t *testing.T) {
	ctx := context.Background()
	c := openTestCache(t)
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	c.now = func() time.Time { return base }
	if err := c.Put(ctx, Key([]byte("old")), testPalette()); err != nil {
		t.Fatal(err)
	}
	c.now = func() time.Time { return base.Add(48 * time.Hour) }
	if err := c.Put(ctx, Key([]byte("new")), testPalette()); err != nil {
		t.Fatal(err)
	}

	n, err := c.Prune(ctx, 24*time.Hour)
	if err != nil {
		t.Fatalf("Prune() error: %v", err)
	}
	if n != 1 {
		t.Errorf("Prune() removed %d entries, want 1", n)
	}
	if _, ok, _ := c.Get(ctx, Key([]byte("new")), 3); !ok {
		t.Error("recent entry was pruned")
	}
}

func TestKey(t *testing.T) {
	if Key([]byte("a")) == Key([]byte("b")) {
		t.Error("different content produced the same key")
	}
	if len(Key(nil)) != 64 {
		t.Errorf("Key() length = %d, want 64", len(Key(nil)))
	}
}
