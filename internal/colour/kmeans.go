package colour

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"math/rand/v2"
	"sort"
)

// defaultSeed keeps extraction reproducible when no seed is configured, so
// the same wallpaper always yields the same theme.
const defaultSeed uint64 = 0x5eed

// KMeansExtractor implements colour extraction using k-means clustering.
type KMeansExtractor struct {
	maxIterations int
	convergence   float64
	maxSamples    int
	seed          uint64
}

// NewKMeansExtractor creates a new KMeansExtractor with default settings.
func NewKMeansExtractor(seed uint64) *KMeansExtractor {
	if seed == 0 {
		seed = defaultSeed
	}
	return &KMeansExtractor{
		maxIterations: 20,
		convergence:   2.0,
		maxSamples:    4000,
		seed:          seed,
	}
}

// Extract extracts colours from an image using k-means clustering.
// The returned palette always has exactly count entries, ordered by
// descending weight; weights are cluster sizes normalised to sum to 1.
func (e *KMeansExtractor) Extract(img image.Image, count int) (*Palette, error) {
	if img == nil {
		return nil, fmt.Errorf("image cannot be nil")
	}
	if count < 1 {
		return nil, fmt.Errorf("color count must be at least 1, got %d", count)
	}
	if count > 256 {
		return nil, fmt.Errorf("color count too large: %d (maximum: 256)", count)
	}

	pixels := e.samplePixels(img)
	if len(pixels) == 0 {
		return nil, fmt.Errorf("no pixels found in image")
	}

	// Count unique colours; a flat image cannot support count clusters.
	freq := make(map[point3D]int)
	order := make([]point3D, 0)
	for _, p := range pixels {
		if _, ok := freq[p]; !ok {
			order = append(order, p)
		}
		freq[p]++
	}

	var centroids []point3D
	var weights []float64
	if len(order) <= count {
		centroids = order
		weights = make([]float64, len(order))
		for i, p := range order {
			weights[i] = float64(freq[p]) / float64(len(pixels))
		}
	} else {
		rng := rand.New(rand.NewPCG(e.seed, uint64(len(pixels))))
		centroids, weights = e.kmeans(rng, pixels, count)
	}

	return buildPalette(centroids, weights, count), nil
}

// buildPalette orders clusters by weight and pads to count entries with
// zero-weight copies of the lightest-weighted cluster.
func buildPalette(centroids []point3D, weights []float64, count int) *Palette {
	idx := make([]int, len(centroids))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return weights[idx[a]] > weights[idx[b]]
	})

	colors := make([]color.Color, 0, count)
	ws := make([]float64, 0, count)
	for _, i := range idx {
		c := centroids[i]
		colors = append(colors, color.RGBA{
			R: uint8(math.Round(c.R)),
			G: uint8(math.Round(c.G)),
			B: uint8(math.Round(c.B)),
			A: 255,
		})
		ws = append(ws, weights[i])
	}
	for len(colors) < count {
		colors = append(colors, colors[len(colors)-1])
		ws = append(ws, 0)
	}

	return NewPaletteWithWeights(colors, ws)
}

// point3D represents a point in 3D RGB colour space.
type point3D struct {
	R, G, B float64
}

// distance calculates the Euclidean distance between two points in RGB space.
func (p point3D) distance(other point3D) float64 {
	dr := p.R - other.R
	dg := p.G - other.G
	db := p.B - other.B
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// samplePixels samples opaque pixels from the image.
// Large images are sampled on a grid to bound the work.
func (e *KMeansExtractor) samplePixels(img image.Image) []point3D {
	bounds := img.Bounds()
	totalPixels := bounds.Dx() * bounds.Dy()

	step := 1
	if totalPixels > e.maxSamples {
		step = max(int(math.Sqrt(float64(totalPixels)/float64(e.maxSamples))), 1)
	}

	pixels := make([]point3D, 0, min(totalPixels, e.maxSamples))
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			r, g, b, a := img.At(x, y).RGBA()
			if a == 0 {
				continue
			}
			pixels = append(pixels, point3D{
				R: float64(r >> 8),
				G: float64(g >> 8),
				B: float64(b >> 8),
			})
		}
	}

	return pixels
}

// kmeans performs k-means clustering on the pixel data.
// Returns centroids and their weights (relative cluster sizes).
func (e *KMeansExtractor) kmeans(rng *rand.Rand, points []point3D, k int) ([]point3D, []float64) {
	centroids := e.initializeCentroidsKMeansPlusPlus(rng, points, k)
	assignments := make([]int, len(points))

	for iter := 0; iter < e.maxIterations; iter++ {
		changed := 0
		for i, point := range points {
			nearest := findNearestCentroid(point, centroids)
			if assignments[i] != nearest {
				assignments[i] = nearest
				changed++
			}
		}

		// Fewer than 1% of assignments moved.
		if iter > 0 && float64(changed)/float64(len(points)) < 0.01 {
			break
		}

		newCentroids := recalculateCentroids(rng, points, assignments, k)

		totalMovement := 0.0
		for i := range centroids {
			totalMovement += centroids[i].distance(newCentroids[i])
		}
		centroids = newCentroids

		if totalMovement/float64(k) < e.convergence {
			break
		}
	}

	// Final assignment against the settled centroids.
	for i, point := range points {
		assignments[i] = findNearestCentroid(point, centroids)
	}

	weights := make([]float64, k)
	for _, assignment := range assignments {
		weights[assignment]++
	}
	for i := range weights {
		weights[i] /= float64(len(assignments))
	}

	return centroids, weights
}

// initializeCentroidsKMeansPlusPlus initializes centroids using k-means++.
func (e *KMeansExtractor) initializeCentroidsKMeansPlusPlus(rng *rand.Rand, points []point3D, k int) []point3D {
	if len(points) == 0 || k == 0 {
		return []point3D{}
	}

	centroids := make([]point3D, 0, k)
	centroids = append(centroids, points[rng.IntN(len(points))])

	distances := make([]float64, len(points))
	for len(centroids) < k {
		totalDistance := 0.0
		for i, point := range points {
			minDist := math.MaxFloat64
			for _, centroid := range centroids {
				minDist = math.Min(minDist, point.distance(centroid))
			}
			distances[i] = minDist * minDist
			totalDistance += distances[i]
		}

		if totalDistance == 0 {
			last := centroids[len(centroids)-1]
			centroids = append(centroids, point3D{R: last.R + 0.1, G: last.G + 0.1, B: last.B + 0.1})
			continue
		}

		target := rng.Float64() * totalDistance
		cumulative := 0.0
		chosen := len(points) - 1
		for i, dist := range distances {
			cumulative += dist
			if cumulative >= target {
				chosen = i
				break
			}
		}
		centroids = append(centroids, points[chosen])
	}

	return centroids
}

// findNearestCentroid finds the index of the nearest centroid to a point.
func findNearestCentroid(point point3D, centroids []point3D) int {
	minDist := math.MaxFloat64
	nearest := 0

	for i, centroid := range centroids {
		dist := point.distance(centroid)
		if dist < minDist {
			minDist = dist
			nearest = i
		}
	}

	return nearest
}

// recalculateCentroids recalculates centroid positions based on assigned points.
func recalculateCentroids(rng *rand.Rand, points []point3D, assignments []int, k int) []point3D {
	sums := make([]point3D, k)
	counts := make([]int, k)

	for i, point := range points {
		cluster := assignments[i]
		sums[cluster].R += point.R
		sums[cluster].G += point.G
		sums[cluster].B += point.B
		counts[cluster]++
	}

	centroids := make([]point3D, k)
	for i := range k {
		if counts[i] > 0 {
			n := float64(counts[i])
			centroids[i] = point3D{R: sums[i].R / n, G: sums[i].G / n, B: sums[i].B / n}
		} else {
			// Empty cluster - reseed from a random point.
			centroids[i] = points[rng.IntN(len(points))]
		}
	}

	return centroids
}
