package loader

import (
	"Globe3D/internal/logger"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/aquilax/go-perlin"
	"github.com/lucasb-eyer/go-colorful"
	"go.uber.org/zap"
)

const (
	DefaultSeed            = 42
	DefaultProceduralWidth = 1024

	noiseAlpha     = 2.0
	noiseBeta      = 2.0
	noiseOctaves   = 6
	noiseFrequency = 1.6
	polarCap       = 0.88 // |cos(colatitude)| above which land and sea freeze
)

// Palette stops for the earth map, keyed by normalized height in [-1, 1].
var earthStops = []struct {
	height float64
	hex    string
}{
	{-1.0, "#061a40"},
	{-0.15, "#0b3d91"},
	{0.0, "#2a6fbb"},
	{0.02, "#d8c690"},
	{0.12, "#4f7d3a"},
	{0.35, "#2f5a2a"},
	{0.6, "#7a6a58"},
	{0.8, "#f2f2f2"},
}

// Procedural synthesises an equirectangular map on the sphere so it wraps
// without seams. "earth" is a color map, "terrain" the matching height map for
// the same seed.
func Procedural(kind string, seed int64, width, height int) (image.Image, error) {
	if width < 2 || height < 1 {
		return nil, fmt.Errorf("procedural %s: invalid size %dx%d", kind, width, height)
	}
	switch kind {
	case "earth", "terrain":
	default:
		return nil, fmt.Errorf("unknown procedural texture %q", kind)
	}

	heights := heightField(seed, width, height)

	var img image.Image
	if kind == "earth" {
		rgba, err := colorize(heights, width, height)
		if err != nil {
			return nil, fmt.Errorf("procedural %s: %w", kind, err)
		}
		img = rgba
	} else {
		img = grayscale(heights, width, height)
	}
	logger.Log.Debug("Procedural texture generated",
		zap.String("kind", kind),
		zap.Int64("seed", seed),
		zap.Int("width", width),
		zap.Int("height", height))
	return img, nil
}

// heightField samples 3D noise at the sphere point under each texel center,
// using the same parameterization as the globe mesh.
func heightField(seed int64, width, height int) []float64 {
	p := perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctaves, seed)
	out := make([]float64, width*height)
	for y := 0; y < height; y++ {
		theta := (float64(y) + 0.5) / float64(height) * math.Pi
		sinT, cosT := math.Sin(theta), math.Cos(theta)
		for x := 0; x < width; x++ {
			phi := (float64(x) + 0.5) / float64(width) * 2 * math.Pi
			dx := -math.Cos(phi) * sinT
			dz := math.Sin(phi) * sinT

			h := p.Noise3D(dx*noiseFrequency, cosT*noiseFrequency, dz*noiseFrequency) * 1.8
			h = math.Max(-1, math.Min(1, h))
			if math.Abs(cosT) > polarCap {
				h = math.Max(h, 0.8)
			}
			out[y*width+x] = h
		}
	}
	return out
}

func grayscale(heights []float64, width, height int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for i, h := range heights {
		// Sea floor is flat, only land carries relief
		img.Pix[i] = uint8(math.Round(math.Max(0, h) * 255))
	}
	return img
}

func colorize(heights []float64, width, height int) (*image.RGBA, error) {
	lut, err := earthPalette()
	if err != nil {
		return nil, err
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i, h := range heights {
		c := lut[int(math.Round((h+1)/2*255))]
		img.Pix[i*4+0] = c.R
		img.Pix[i*4+1] = c.G
		img.Pix[i*4+2] = c.B
		img.Pix[i*4+3] = 255
	}
	return img, nil
}

// earthPalette expands the stops into a 256 entry lookup table blended in Lab.
func earthPalette() ([256]color.RGBA, error) {
	var lut [256]color.RGBA
	stops := make([]colorful.Color, len(earthStops))
	for i, s := range earthStops {
		c, err := colorful.Hex(s.hex)
		if err != nil {
			return lut, fmt.Errorf("palette stop %q: %w", s.hex, err)
		}
		stops[i] = c
	}

	for i := range lut {
		h := float64(i)/255*2 - 1
		j := 1
		for j < len(earthStops)-1 && earthStops[j].height < h {
			j++
		}
		lo, hi := earthStops[j-1], earthStops[j]
		t := (h - lo.height) / (hi.height - lo.height)
		t = math.Max(0, math.Min(1, t))
		r, g, b := stops[j-1].BlendLab(stops[j], t).Clamped().RGB255()
		lut[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return lut, nil
}
