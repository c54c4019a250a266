package loader

import (
	"Globe3D/internal/logger"
	"context"
	"fmt"
	"image"
	"sync"

	"go.uber.org/zap"
)

// TexturePair is the result of a color/bump map load.
type TexturePair struct {
	Color image.Image
	Bump  image.Image
	Err   error
}

// ImageResult is one entry of a LoadImages batch.
type ImageResult struct {
	Src   string
	Image image.Image
	Err   error
}

// LoadPair fetches both maps concurrently. An empty source is not provided
// and leaves its image nil. The returned channel is buffered and receives
// exactly one value, so an abandoned receiver never blocks the loader. Either
// provided map failing fails the pair.
func LoadPair(ctx context.Context, colorSrc, bumpSrc string) <-chan TexturePair {
	out := make(chan TexturePair, 1)
	go func() {
		var pair TexturePair
		var colorErr, bumpErr error
		var wg sync.WaitGroup
		if colorSrc != "" {
			wg.Add(1)
			go func() {
				defer wg.Done()
				pair.Color, colorErr = LoadImage(ctx, colorSrc)
			}()
		}
		if bumpSrc != "" {
			wg.Add(1)
			go func() {
				defer wg.Done()
				pair.Bump, bumpErr = LoadImage(ctx, bumpSrc)
			}()
		}
		wg.Wait()

		switch {
		case colorErr != nil:
			pair = TexturePair{Err: fmt.Errorf("color map: %w", colorErr)}
		case bumpErr != nil:
			pair = TexturePair{Err: fmt.Errorf("bump map: %w", bumpErr)}
		case ctx.Err() != nil:
			pair = TexturePair{Err: ctx.Err()}
		default:
			logger.Log.Info("Globe textures loaded",
				zap.String("color", colorSrc),
				zap.String("bump", bumpSrc))
		}
		out <- pair
	}()
	return out
}

// LoadImages fetches every distinct source, scaling each to at most maxSide
// pixels. Results arrive as they complete and the channel is closed once all
// sources are done.
func LoadImages(ctx context.Context, srcs []string, maxSide int) <-chan ImageResult {
	seen := make(map[string]struct{}, len(srcs))
	unique := make([]string, 0, len(srcs))
	for _, src := range srcs {
		if _, ok := seen[src]; ok {
			continue
		}
		seen[src] = struct{}{}
		unique = append(unique, src)
	}

	out := make(chan ImageResult, len(unique))
	var wg sync.WaitGroup
	for _, src := range unique {
		wg.Add(1)
		go func(src string) {
			defer wg.Done()
			img, err := LoadImage(ctx, src)
			if err != nil {
				logger.Log.Warn("Marker image failed to load", zap.String("src", src), zap.Error(err))
				out <- ImageResult{Src: src, Err: err}
				return
			}
			out <- ImageResult{Src: src, Image: FitImage(img, maxSide)}
		}(src)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Async loads images with LoadPair and LoadImages.
type Async struct{}

func (Async) LoadPair(ctx context.Context, colorSrc, bumpSrc string) <-chan TexturePair {
	return LoadPair(ctx, colorSrc, bumpSrc)
}

func (Async) LoadImages(ctx context.Context, srcs []string, maxSide int) <-chan ImageResult {
	return LoadImages(ctx, srcs, maxSide)
}
