package globe

import (
	"Globe3D/internal/loader"
	"Globe3D/internal/logger"
	"Globe3D/internal/renderer"
	"context"
	"errors"

	"go.uber.org/zap"
)

var ErrAlreadyMounted = errors.New("globe is already mounted")

const (
	defaultViewportWidth  = 1024
	defaultViewportHeight = 500

	colorMapAnisotropy = 16
	bumpMapAnisotropy  = 8
)

// TextureLoader fetches images off the render thread. loader.Async is the
// default implementation.
type TextureLoader interface {
	LoadPair(ctx context.Context, colorSrc, bumpSrc string) <-chan loader.TexturePair
	LoadImages(ctx context.Context, srcs []string, maxSide int) <-chan loader.ImageResult
}

type Option func(*Globe)

// OnMarkerHover is called with the marker under the pointer, and with nil
// when the pointer leaves it.
func OnMarkerHover(fn func(*Marker)) Option {
	return func(g *Globe) { g.onHover = fn }
}

func OnMarkerClick(fn func(Marker)) Option {
	return func(g *Globe) { g.onClick = fn }
}

// WithViewport sets the initial viewport size in window coordinates.
func WithViewport(width, height int32) Option {
	return func(g *Globe) {
		g.width, g.height = width, height
	}
}

// Globe is an interactive textured globe with pinned marker badges. All
// methods must be called from the render thread.
type Globe struct {
	Config  Config
	markers []Marker
	onHover func(*Marker)
	onClick func(Marker)
	width   int32
	height  int32

	scene *scene

	// Mount state
	mounted    bool
	rend       renderer.Render
	cancel     context.CancelFunc
	pairCh     <-chan loader.TexturePair
	imageCh    <-chan loader.ImageResult
	body       *body
	atmosphere *renderer.Model
	badges     []*badge
	models     []*renderer.Model
	textures   []uint32
	shaders    []*renderer.Shader
	hovered    *badge
	ready      bool

	// Last pointer position, re-picked when the camera moves under it
	pointerX, pointerY float32
	pointerIn          bool
}

// New merges opts over the defaults. The scene is only built on Mount.
func New(markers []Marker, opts Options, options ...Option) *Globe {
	g := &Globe{
		Config:  Merge(Defaults(), opts),
		markers: append([]Marker(nil), markers...),
		width:   defaultViewportWidth,
		height:  defaultViewportHeight,
	}
	for _, o := range options {
		o(g)
	}
	g.scene = newScene(g.Config, g.width, g.height)
	return g
}

// Mount builds the scene on rend and starts loading textures. A nil textures
// loader uses loader.Async. Until both globe maps have loaded only a
// placeholder sphere is drawn and pointer input is ignored; if loading fails
// the placeholder stays. An empty TextureURL or BumpMapURL skips that map.
func (g *Globe) Mount(ctx context.Context, rend renderer.Render, textures TextureLoader) error {
	if g.mounted {
		return ErrAlreadyMounted
	}
	if textures == nil {
		textures = loader.Async{}
	}

	cfg := g.Config
	col := resolveColors(cfg)
	standard := renderer.NewStandardShader()
	basic := renderer.NewBasicShader()

	g.rend = rend
	g.scene = newScene(cfg, g.width, g.height)
	g.body = newBody(cfg, col, standard, basic)
	g.models = append(g.models[:0], g.body.models()...)
	g.shaders = append(g.shaders[:0], standard, basic)

	if cfg.ShowAtmosphere {
		atmosphere := renderer.NewAtmosphereShader()
		g.shaders = append(g.shaders, atmosphere)
		g.atmosphere = newAtmosphere(cfg, col, atmosphere)
		g.atmosphere.Visible = false
		g.models = append(g.models, g.atmosphere)
	}

	g.badges = g.badges[:0]
	srcs := make([]string, 0, len(g.markers))
	for _, m := range g.markers {
		b := newBadge(m, cfg, basic)
		g.body.group.AddChild(b.node)
		g.badges = append(g.badges, b)
		g.models = append(g.models, b.models()...)
		if m.Src != "" {
			srcs = append(srcs, m.Src)
		}
	}
	g.body.group.Sync()
	g.updateBadges()

	if col.background != nil {
		bg := *col.background
		rend.SetClearColor(bg[0], bg[1], bg[2], 1)
	} else {
		rend.SetClearColor(0, 0, 0, 0)
	}
	for _, m := range g.models {
		rend.AddModel(m)
	}

	loadCtx, cancel := context.WithCancel(ctx)
	g.cancel = cancel
	g.pairCh = textures.LoadPair(loadCtx, cfg.TextureURL, cfg.BumpMapURL)
	if len(srcs) > 0 {
		g.imageCh = textures.LoadImages(loadCtx, srcs, badgeImageSize)
	}
	g.mounted = true

	logger.Log.Info("Loading globe...",
		zap.Float32("radius", cfg.Radius),
		zap.Int("markers", len(g.badges)),
		zap.String("texture", cfg.TextureURL))
	return nil
}

// Unmount cancels pending loads and releases every model, texture and
// shader. Loads that finish afterwards are discarded.
func (g *Globe) Unmount() {
	if !g.mounted {
		return
	}
	g.cancel()
	for _, m := range g.models {
		g.rend.RemoveModel(m)
	}
	for _, id := range g.textures {
		g.rend.ReleaseTexture(id)
	}
	for _, s := range g.shaders {
		g.rend.ReleaseShader(s)
	}

	g.mounted = false
	g.ready = false
	g.hovered = nil
	g.pointerIn = false
	g.cancel = nil
	g.pairCh = nil
	g.imageCh = nil
	g.body = nil
	g.atmosphere = nil
	g.badges = nil
	g.models = nil
	g.textures = nil
	g.shaders = nil
	g.rend = nil
	logger.Log.Info("Globe unmounted")
}

func (g *Globe) Start() {}

// Update implements behaviour.Behaviour.
func (g *Globe) Update(dt float32) {
	g.Frame(dt)
}

// Frame advances the globe by dt seconds: it applies loaded textures, steps
// the orbit controls and refreshes every badge against the new camera.
func (g *Globe) Frame(dt float32) {
	if !g.mounted {
		return
	}
	g.pollTextures()
	g.pollImages()
	if !g.ready {
		return
	}
	moved := g.scene.orbit.Update(dt)
	g.updateBadges()
	if moved && g.pointerIn {
		g.setHovered(g.pick(g.pointerX, g.pointerY))
	}
}

func (g *Globe) updateBadges() {
	for _, b := range g.badges {
		if b.update(g.body.group, g.scene.camera, g.ready) && b == g.hovered {
			g.setHovered(nil)
		}
	}
}

// pollTextures is the one-shot gate between the placeholder and the scene.
func (g *Globe) pollTextures() {
	if g.pairCh == nil {
		return
	}
	var pair loader.TexturePair
	select {
	case pair = <-g.pairCh:
		g.pairCh = nil
	default:
		return
	}

	if pair.Err != nil {
		logger.Log.Error("Globe textures failed to load", zap.Error(pair.Err))
		return
	}

	// A map that was not configured arrives nil and is left unbound
	cfg := g.Config
	var colorID, bumpID uint32
	if pair.Color != nil {
		id, err := g.rend.CreateTexture(pair.Color, "globe:"+cfg.TextureURL, renderer.TextureOptions{
			SRGB:       true,
			Anisotropy: colorMapAnisotropy,
			Repeat:     true,
		})
		if err != nil {
			logger.Log.Error("Could not upload globe texture", zap.Error(err))
			return
		}
		g.textures = append(g.textures, id)
		colorID = id
	}
	if pair.Bump != nil {
		id, err := g.rend.CreateTexture(pair.Bump, "bump:"+cfg.BumpMapURL, renderer.TextureOptions{
			Anisotropy: bumpMapAnisotropy,
			Repeat:     true,
		})
		if err != nil {
			logger.Log.Error("Could not upload bump map", zap.Error(err))
			return
		}
		g.textures = append(g.textures, id)
		bumpID = id
	}

	g.body.reveal(colorID, bumpID)
	if g.atmosphere != nil {
		g.atmosphere.Visible = true
	}
	g.ready = true
	g.updateBadges()
	logger.Log.Info("Globe ready")
}

func (g *Globe) pollImages() {
	for g.imageCh != nil {
		select {
		case res, ok := <-g.imageCh:
			if !ok {
				g.imageCh = nil
				return
			}
			if res.Err != nil {
				continue
			}
			id, err := g.rend.CreateTexture(res.Image, "marker:"+res.Src, renderer.TextureOptions{SRGB: true})
			if err != nil {
				logger.Log.Warn("Could not upload marker image", zap.String("src", res.Src), zap.Error(err))
				continue
			}
			g.textures = append(g.textures, id)
			for _, b := range g.badges {
				if b.marker.Src == res.Src {
					b.setTexture(id)
				}
			}
		default:
			return
		}
	}
}

// Camera implements engine.Scene.
func (g *Globe) Camera() *renderer.Camera {
	return g.scene.camera
}

func (g *Globe) Lights() []*renderer.Light {
	return g.scene.lights
}

func (g *Globe) Markers() []Marker {
	return g.markers
}

// Ready reports whether the globe textures have loaded.
func (g *Globe) Ready() bool {
	return g.ready
}

// Hovered returns the marker under the pointer, if any.
func (g *Globe) Hovered() *Marker {
	if g.hovered == nil {
		return nil
	}
	m := g.hovered.marker
	return &m
}

// pick returns the nearest interactive badge under the window point x, y.
func (g *Globe) pick(x, y float32) *badge {
	if !g.ready || g.width <= 0 || g.height <= 0 {
		return nil
	}
	ray := renderer.ScreenToRay(g.scene.camera, x, y, int(g.width), int(g.height))

	var best *badge
	var bestDist float32
	for _, b := range g.badges {
		if ok, dist := b.hit(ray); ok && (best == nil || dist < bestDist) {
			best, bestDist = b, dist
		}
	}
	return best
}

func (g *Globe) setHovered(b *badge) {
	if b == g.hovered {
		return
	}
	if g.hovered != nil {
		g.hovered.setHovered(false)
		g.hovered = nil
		if g.onHover != nil {
			g.onHover(nil)
		}
	}
	if b != nil {
		b.setHovered(true)
		g.hovered = b
		if g.onHover != nil {
			m := b.marker
			g.onHover(&m)
		}
	}
}

func (g *Globe) PointerMove(x, y float32) {
	g.pointerX, g.pointerY, g.pointerIn = x, y, true
	g.setHovered(g.pick(x, y))
}

func (g *Globe) PointerLeave() {
	g.pointerIn = false
	g.setHovered(nil)
}

func (g *Globe) PointerClick(x, y float32) {
	b := g.pick(x, y)
	if b == nil {
		return
	}
	logger.Log.Debug("Marker clicked", zap.String("marker", b.marker.String()))
	if g.onClick != nil {
		g.onClick(b.marker)
	}
}

func (g *Globe) DragStart() {
	if g.ready {
		g.scene.orbit.BeginDrag()
	}
}

// Drag rotates the view, or pans it when pan is set and panning is enabled.
func (g *Globe) Drag(dx, dy float32, pan bool) {
	if !g.ready {
		return
	}
	if pan {
		g.scene.orbit.Pan(dx, dy)
	} else {
		g.scene.orbit.Rotate(dx, dy)
	}
}

func (g *Globe) DragEnd() {
	g.scene.orbit.EndDrag()
}

// Scroll zooms by wheel steps when zoom is enabled.
func (g *Globe) Scroll(delta float32) {
	if g.ready {
		g.scene.orbit.Zoom(delta)
	}
}

// Resize updates the viewport, in window coordinates.
func (g *Globe) Resize(width, height int32) {
	g.width, g.height = width, height
	g.scene.camera.SetViewport(width, height)
	g.scene.orbit.SetViewportHeight(float32(height))
}
