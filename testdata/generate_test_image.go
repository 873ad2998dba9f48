// Sample wallpaper generator for trying bartint by hand:
//
//	go run ./testdata/generate_test_image.go
//	bartint apply --preview --mode both testdata/night.png
package main

import (
	"image"
	"image/color"
	"image/png"
	"log"
	"os"
)

// band is a horizontal stripe of one colour covering share percent of the image.
type band struct {
	c     color.RGBA
	share int
}

var wallpapers = map[string][]band{
	// A dark city skyline: navy sky, a red sign, warm windows.
	"testdata/night.png": {
		{color.RGBA{R: 20, G: 24, B: 38, A: 255}, 30},
		{color.RGBA{R: 40, G: 48, B: 70, A: 255}, 20},
		{color.RGBA{R: 200, G: 60, B: 50, A: 255}, 12},
		{color.RGBA{R: 90, G: 110, B: 140, A: 255}, 10},
		{color.RGBA{R: 230, G: 200, B: 120, A: 255}, 8},
		{color.RGBA{R: 15, G: 15, B: 15, A: 255}, 6},
		{color.RGBA{R: 60, G: 140, B: 90, A: 255}, 5},
		{color.RGBA{R: 240, G: 240, B: 235, A: 255}, 3},
		{color.RGBA{R: 120, G: 80, B: 160, A: 255}, 2},
		{color.RGBA{R: 180, G: 180, B: 190, A: 255}, 2},
		{color.RGBA{R: 30, G: 90, B: 160, A: 255}, 1},
		{color.RGBA{R: 250, G: 130, B: 30, A: 255}, 1},
	},
	// A bright beach: sand, sky, surf.
	"testdata/beach.png": {
		{color.RGBA{R: 235, G: 225, B: 205, A: 255}, 28},
		{color.RGBA{R: 140, G: 200, B: 230, A: 255}, 22},
		{color.RGBA{R: 250, G: 250, B: 248, A: 255}, 14},
		{color.RGBA{R: 60, G: 140, B: 190, A: 255}, 10},
		{color.RGBA{R: 200, G: 170, B: 120, A: 255}, 8},
		{color.RGBA{R: 240, G: 120, B: 90, A: 255}, 6},
		{color.RGBA{R: 30, G: 70, B: 100, A: 255}, 5},
		{color.RGBA{R: 90, G: 160, B: 100, A: 255}, 3},
		{color.RGBA{R: 250, G: 210, B: 80, A: 255}, 2},
		{color.RGBA{R: 120, G: 100, B: 90, A: 255}, 2},
	},
}

func main() {
	const width, height = 400, 400
	for path, bands := range wallpapers {
		img := image.NewRGBA(image.Rect(0, 0, width, height))
		y := 0
		for i, b := range bands {
			rows := height * b.share / 100
			if i == len(bands)-1 {
				rows = height - y
			}
			for ; rows > 0; rows-- {
				for x := range width {
					img.Set(x, y, b.c)
				}
				y++
			}
		}

		f, err := os.Create(path)
		if err != nil {
			log.Fatalf("create %s: %v", path, err)
		}
		if err := png.Encode(f, img); err != nil {
			f.Close()
			log.Fatalf("encode %s: %v", path, err)
		}
		if err := f.Close(); err != nil {
			log.Fatalf("close %s: %v", path, err)
		}
	}
}
