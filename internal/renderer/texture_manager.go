package renderer

import (
	"Globe3D/internal/logger"
	"image"
	"image/draw"
	"sync"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"
)

// EXT_texture_filter_anisotropic, core since GL 4.6
const (
	textureMaxAnisotropy    = 0x84FE
	maxTextureMaxAnisotropy = 0x84FF
)

// TextureOptions controls how an image is uploaded.
type TextureOptions struct {
	SRGB       bool    // Color data, decoded to linear when sampled
	Anisotropy float32 // Requested anisotropic filtering level, clamped to the driver maximum
	Repeat     bool    // Wrap with REPEAT instead of CLAMP_TO_EDGE
}

// TextureStats provides debugging and profiling information
type TextureStats struct {
	TotalTextures  int
	CacheHits      int
	CacheMisses    int
	ActiveTextures int
}

// TextureManager manages texture caching and lifecycle by name
type TextureManager struct {
	textureCache    map[string]uint32 // name -> OpenGL texture ID
	textureRefCount map[uint32]int    // texture ID -> reference count
	textureNames    map[uint32]string // texture ID -> name (for debugging)
	mu              sync.RWMutex
	stats           TextureStats
	maxAnisotropy   float32
}

// NewTextureManager creates a new texture manager instance
func NewTextureManager() *TextureManager {
	return &TextureManager{
		textureCache:    make(map[string]uint32),
		textureRefCount: make(map[uint32]int),
		textureNames:    make(map[uint32]string),
	}
}

// lookup returns a cached texture and bumps its reference count.
func (tm *TextureManager) lookup(name string) (uint32, bool) {
	textureID, exists := tm.textureCache[name]
	if !exists {
		tm.stats.CacheMisses++
		return 0, false
	}
	tm.textureRefCount[textureID]++
	tm.stats.CacheHits++
	logger.Log.Debug("Texture cache hit",
		zap.String("name", name),
		zap.Uint32("textureID", textureID),
		zap.Int("refCount", tm.textureRefCount[textureID]))
	return textureID, true
}

func (tm *TextureManager) track(name string, textureID uint32) {
	tm.textureCache[name] = textureID
	tm.textureRefCount[textureID] = 1
	tm.textureNames[textureID] = name
	tm.stats.TotalTextures++
	tm.stats.ActiveTextures++
}

// CreateTexture uploads img under name, or returns the cached texture with
// the same name. Must be called on the thread owning the GL context.
func (tm *TextureManager) CreateTexture(img image.Image, name string, opts TextureOptions) (uint32, error) {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if textureID, ok := tm.lookup(name); ok {
		return textureID, nil
	}

	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != rgba.Rect.Dx()*4 {
		b := img.Bounds()
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	}

	internalFormat := int32(gl.RGBA8)
	if opts.SRGB {
		internalFormat = gl.SRGB8_ALPHA8
	}
	wrap := int32(gl.CLAMP_TO_EDGE)
	if opts.Repeat {
		wrap = gl.REPEAT
	}

	var textureID uint32
	gl.GenTextures(1, &textureID)
	gl.BindTexture(gl.TEXTURE_2D, textureID)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, internalFormat,
		int32(rgba.Rect.Dx()), int32(rgba.Rect.Dy()),
		0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba.Pix))
	gl.GenerateMipmap(gl.TEXTURE_2D)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrap)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	if opts.Anisotropy > 1 {
		gl.TexParameterf(gl.TEXTURE_2D, textureMaxAnisotropy, tm.clampAnisotropy(opts.Anisotropy))
	}

	tm.track(name, textureID)

	logger.Log.Info("Texture uploaded",
		zap.String("name", name),
		zap.Uint32("textureID", textureID),
		zap.Int("width", rgba.Rect.Dx()),
		zap.Int("height", rgba.Rect.Dy()),
		zap.Bool("srgb", opts.SRGB))

	return textureID, nil
}

func (tm *TextureManager) clampAnisotropy(requested float32) float32 {
	if tm.maxAnisotropy == 0 {
		gl.GetFloatv(maxTextureMaxAnisotropy, &tm.maxAnisotropy)
		if tm.maxAnisotropy < 1 {
			tm.maxAnisotropy = 1
		}
	}
	if requested > tm.maxAnisotropy {
		return tm.maxAnisotropy
	}
	return requested
}

// AddReference increments the reference count for a texture
func (tm *TextureManager) AddReference(textureID uint32) {
	if textureID == 0 {
		return
	}

	tm.mu.Lock()
	defer tm.mu.Unlock()

	tm.textureRefCount[textureID]++
}

// ReleaseTexture decrements reference count and frees texture if count reaches 0
func (tm *TextureManager) ReleaseTexture(textureID uint32) {
	if textureID == 0 {
		return
	}

	tm.mu.Lock()
	defer tm.mu.Unlock()

	refCount, exists := tm.textureRefCount[textureID]
	if !exists {
		logger.Log.Warn("Attempted to release unknown texture",
			zap.Uint32("textureID", textureID))
		return
	}

	refCount--
	tm.textureRefCount[textureID] = refCount
	if refCount > 0 {
		return
	}

	gl.DeleteTextures(1, &textureID)

	name := tm.textureNames[textureID]
	delete(tm.textureCache, name)
	delete(tm.textureRefCount, textureID)
	delete(tm.textureNames, textureID)
	tm.stats.ActiveTextures--

	logger.Log.Debug("Texture freed",
		zap.Uint32("textureID", textureID),
		zap.String("name", name))
}

// GetStats returns current texture manager statistics
func (tm *TextureManager) GetStats() TextureStats {
	tm.mu.RLock()
	defer tm.mu.RUnlock()

	stats := tm.stats
	stats.ActiveTextures = len(tm.textureRefCount)
	return stats
}

// Clear frees every texture regardless of reference counts.
func (tm *TextureManager) Clear() {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	for textureID := range tm.textureRefCount {
		gl.DeleteTextures(1, &textureID)
	}

	tm.textureCache = make(map[string]uint32)
	tm.textureRefCount = make(map[uint32]int)
	tm.textureNames = make(map[uint32]string)
	tm.stats.ActiveTextures = 0
}
