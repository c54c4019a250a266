package loader

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 200
	}
	path := filepath.Join(t.TempDir(), "badge.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func pngServer(t *testing.T) *httptest.Server {
	t.Helper()
	data, err := os.ReadFile(writePNG(t, 8, 4))
	require.NoError(t, err)

	mux := http.NewServeMux()
	mux.HandleFunc("/earth.png", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(data)
	})
	mux.HandleFunc("/page.html", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html><body>not an image</body></html>"))
	})
	mux.HandleFunc("/slow.png", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestLoadImageFromFile(t *testing.T) {
	path := writePNG(t, 16, 8)

	img, err := LoadImage(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 16, 8), img.Bounds())

	img, err = LoadImage(context.Background(), "file://"+path)
	require.NoError(t, err)
	assert.Equal(t, 16, img.Bounds().Dx())
}

func TestLoadImageMissingFile(t *testing.T) {
	_, err := LoadImage(context.Background(), filepath.Join(t.TempDir(), "missing.png"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadImageEmptySource(t *testing.T) {
	_, err := LoadImage(context.Background(), "")
	assert.Error(t, err)
}

func TestLoadImageUnsupportedScheme(t *testing.T) {
	_, err := LoadImage(context.Background(), "ftp://example.com/earth.png")
	assert.ErrorContains(t, err, "unsupported image source scheme")
}

func TestLoadImageFromURL(t *testing.T) {
	srv := pngServer(t)

	img, err := LoadImage(context.Background(), srv.URL+"/earth.png")
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 8, 4), img.Bounds())
}

func TestLoadImageHTTPStatus(t *testing.T) {
	srv := pngServer(t)

	_, err := LoadImage(context.Background(), srv.URL+"/nope.png")
	assert.ErrorContains(t, err, "404")
}

func TestLoadImageRejectsNonImage(t *testing.T) {
	srv := pngServer(t)

	_, err := LoadImage(context.Background(), srv.URL+"/page.html")
	assert.ErrorIs(t, err, ErrNotImage)
}

func TestLoadImageProceduralSource(t *testing.T) {
	img, err := LoadImage(context.Background(), "procedural:terrain?seed=7&width=32")
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 32, 16), img.Bounds())
	assert.IsType(t, &image.Gray{}, img)

	_, err = LoadImage(context.Background(), "procedural:terrain?seed=abc")
	assert.Error(t, err)

	_, err = LoadImage(context.Background(), "procedural:earth?width=1")
	assert.Error(t, err)
}

func TestFitImage(t *testing.T) {
	wide := image.NewRGBA(image.Rect(0, 0, 200, 100))
	fitted := FitImage(wide, 64)
	assert.Equal(t, 64, fitted.Bounds().Dx())
	assert.Equal(t, 32, fitted.Bounds().Dy())

	tall := image.NewRGBA(image.Rect(0, 0, 50, 400))
	fitted = FitImage(tall, 100)
	assert.Equal(t, 12, fitted.Bounds().Dx())
	assert.Equal(t, 100, fitted.Bounds().Dy())

	small := image.NewRGBA(image.Rect(0, 0, 10, 10))
	assert.Same(t, small, FitImage(small, 64))
}

func TestLoadPair(t *testing.T) {
	path := writePNG(t, 4, 2)

	select {
	case pair := <-LoadPair(context.Background(), path, "procedural:terrain?width=16"):
		require.NoError(t, pair.Err)
		assert.NotNil(t, pair.Color)
		assert.NotNil(t, pair.Bump)
	case <-time.After(5 * time.Second):
		t.Fatal("LoadPair did not deliver a result")
	}
}

func TestLoadPairFailsWhenEitherMapFails(t *testing.T) {
	path := writePNG(t, 4, 2)
	missing := filepath.Join(t.TempDir(), "missing.png")

	pair := <-LoadPair(context.Background(), path, missing)
	require.Error(t, pair.Err)
	assert.Contains(t, pair.Err.Error(), "bump map")
	assert.Nil(t, pair.Color)

	pair = <-LoadPair(context.Background(), missing, path)
	require.Error(t, pair.Err)
	assert.Contains(t, pair.Err.Error(), "color map")
}

func TestLoadPairOptionalMaps(t *testing.T) {
	path := writePNG(t, 4, 2)

	pair := <-LoadPair(context.Background(), path, "")
	require.NoError(t, pair.Err)
	assert.NotNil(t, pair.Color)
	assert.Nil(t, pair.Bump)

	pair = <-LoadPair(context.Background(), "", path)
	require.NoError(t, pair.Err)
	assert.Nil(t, pair.Color)
	assert.NotNil(t, pair.Bump)

	pair = <-LoadPair(context.Background(), "", "")
	require.NoError(t, pair.Err)
	assert.Nil(t, pair.Color)
	assert.Nil(t, pair.Bump)
}

func TestLoadPairCancelled(t *testing.T) {
	srv := pngServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	results := LoadPair(ctx, srv.URL+"/slow.png", srv.URL+"/earth.png")
	cancel()

	select {
	case pair := <-results:
		assert.Error(t, pair.Err)
	case <-time.After(5 * time.Second):
		t.Fatal("cancelled load did not finish")
	}
}

func TestLoadImagesDeduplicates(t *testing.T) {
	path := writePNG(t, 300, 150)
	missing := filepath.Join(t.TempDir(), "missing.png")

	var results []ImageResult
	for r := range LoadImages(context.Background(), []string{path, missing, path}, 128) {
		results = append(results, r)
	}
	require.Len(t, results, 2)

	for _, r := range results {
		switch r.Src {
		case path:
			require.NoError(t, r.Err)
			assert.Equal(t, 128, r.Image.Bounds().Dx())
		case missing:
			assert.Error(t, r.Err)
		default:
			t.Fatalf("unexpected source %s", r.Src)
		}
	}
}

func TestProcedural(t *testing.T) {
	earth, err := Procedural("earth", 3, 64, 32)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 64, 32), earth.Bounds())

	again, err := Procedural("earth", 3, 64, 32)
	require.NoError(t, err)
	assert.Equal(t, earth, again, "same seed must give the same map")

	// Polar rows are ice
	r, g, b, _ := earth.At(10, 0).RGBA()
	assert.Greater(t, r>>8, uint32(200))
	assert.Greater(t, g>>8, uint32(200))
	assert.Greater(t, b>>8, uint32(200))

	terrain, err := Procedural("terrain", 3, 64, 32)
	require.NoError(t, err)
	gray := terrain.(*image.Gray)
	assert.GreaterOrEqual(t, gray.GrayAt(10, 0).Y, uint8(204))
	assert.Equal(t, color.GrayModel, gray.ColorModel())
}

func TestEarthPalette(t *testing.T) {
	lut, err := earthPalette()
	require.NoError(t, err)

	near := func(want, got color.RGBA) {
		t.Helper()
		assert.InDelta(t, want.R, got.R, 1)
		assert.InDelta(t, want.G, got.G, 1)
		assert.InDelta(t, want.B, got.B, 1)
		assert.Equal(t, uint8(255), got.A)
	}
	// The deepest and highest entries are the first and last stops.
	near(color.RGBA{R: 0x06, G: 0x1a, B: 0x40, A: 255}, lut[0])
	near(color.RGBA{R: 0xf2, G: 0xf2, B: 0xf2, A: 255}, lut[255])
}

func TestProceduralRejectsBadInput(t *testing.T) {
	_, err := Procedural("mars", 1, 64, 32)
	assert.ErrorContains(t, err, "unknown procedural texture")

	_, err = Procedural("earth", 1, 0, 0)
	assert.Error(t, err)
}
