package loader

import (
	"Globe3D/internal/logger"
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/anthonynsimon/bild/transform"
	"github.com/h2non/filetype"
	"go.uber.org/zap"
	_ "golang.org/x/image/webp"
)

// MaxImageBytes caps a single downloaded or read image.
const MaxImageBytes = 64 << 20

var ErrNotImage = errors.New("source is not an image")

// HTTPClient is used for http(s) sources.
var HTTPClient = &http.Client{Timeout: 30 * time.Second}

// LoadImage resolves src and decodes it. Supported sources are http(s) URLs,
// file:// URLs, plain file paths and procedural:<kind>?seed=N&width=W.
func LoadImage(ctx context.Context, src string) (image.Image, error) {
	if src == "" {
		return nil, errors.New("empty image source")
	}
	u, err := url.Parse(src)
	// Single letter schemes are Windows drive letters
	if err != nil || len(u.Scheme) <= 1 {
		return loadFile(src)
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return loadURL(ctx, u.String())
	case "file":
		return loadFile(u.Path)
	case "procedural":
		return loadProcedural(u)
	default:
		return nil, fmt.Errorf("unsupported image source scheme %q", u.Scheme)
	}
}

func loadURL(ctx context.Context, src string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", src, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", src, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", src, err)
	}
	logger.Log.Debug("Image downloaded", zap.String("url", src), zap.Int("bytes", len(data)))
	return decode(src, data)
}

func loadFile(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, MaxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return decode(path, data)
}

func decode(src string, data []byte) (image.Image, error) {
	if len(data) > MaxImageBytes {
		return nil, fmt.Errorf("%s: image larger than %d bytes", src, MaxImageBytes)
	}
	if !filetype.IsImage(data) {
		kind, _ := filetype.Match(data)
		return nil, fmt.Errorf("%s (%s): %w", src, kind.MIME.Value, ErrNotImage)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", src, err)
	}
	logger.Log.Debug("Image decoded",
		zap.String("source", src),
		zap.String("format", format),
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()))
	return img, nil
}

func loadProcedural(u *url.URL) (image.Image, error) {
	kind := u.Opaque
	if kind == "" {
		kind = strings.TrimPrefix(u.Host+u.Path, "/")
	}
	q := u.Query()

	seed := int64(DefaultSeed)
	if s := q.Get("seed"); s != "" {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("procedural seed %q: %w", s, err)
		}
		seed = v
	}
	width := DefaultProceduralWidth
	if s := q.Get("width"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 2 {
			return nil, fmt.Errorf("procedural width %q: must be an integer >= 2", s)
		}
		width = v
	}

	return Procedural(kind, seed, width, width/2)
}

// FitImage scales img down so neither side exceeds maxSide. Smaller images
// are returned unchanged.
func FitImage(img image.Image, maxSide int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSide <= 0 || (w <= maxSide && h <= maxSide) {
		return img
	}
	if w >= h {
		h = max(1, h*maxSide/w)
		w = maxSide
	} else {
		w = max(1, w*maxSide/h)
		h = maxSide
	}
	return transform.Resize(img, w, h, transform.Linear)
}
