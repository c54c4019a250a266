package globe

import (
	"Globe3D/internal/logger"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"
	"go.uber.org/zap"
)

const (
	DefaultTextureURL = "https://unpkg.com/three-globe@2.31.0/example/img/earth-blue-marble.jpg"
	DefaultBumpMapURL = "https://unpkg.com/three-globe@2.31.0/example/img/earth-topology.png"
)

// Rotation is an Euler rotation in radians, applied X then Y.
type Rotation struct {
	X float32 `mapstructure:"x"`
	Y float32 `mapstructure:"y"`
}

// Config is the fully populated globe configuration. Build one with Merge.
type Config struct {
	Radius              float32
	GlobeColor          string
	TextureURL          string
	BumpMapURL          string
	ShowAtmosphere      bool
	AtmosphereColor     string
	AtmosphereIntensity float32
	AtmosphereBlur      float32
	BumpScale           float32
	AutoRotateSpeed     float32 // <= 0 disables auto rotation
	EnableZoom          bool
	EnablePan           bool
	MinDistance         float32
	MaxDistance         float32
	InitialRotation     Rotation
	MarkerSize          float32
	ShowWireframe       bool
	WireframeColor      string
	AmbientIntensity    float32
	PointLightIntensity float32
	BackgroundColor     *string // nil keeps the framebuffer transparent
}

// Options is a partial Config. Nil fields keep their default.
type Options struct {
	Radius              *float32  `mapstructure:"radius"`
	GlobeColor          *string   `mapstructure:"globeColor"`
	TextureURL          *string   `mapstructure:"textureUrl"`
	BumpMapURL          *string   `mapstructure:"bumpMapUrl"`
	ShowAtmosphere      *bool     `mapstructure:"showAtmosphere"`
	AtmosphereColor     *string   `mapstructure:"atmosphereColor"`
	AtmosphereIntensity *float32  `mapstructure:"atmosphereIntensity"`
	AtmosphereBlur      *float32  `mapstructure:"atmosphereBlur"`
	BumpScale           *float32  `mapstructure:"bumpScale"`
	AutoRotateSpeed     *float32  `mapstructure:"autoRotateSpeed"`
	EnableZoom          *bool     `mapstructure:"enableZoom"`
	EnablePan           *bool     `mapstructure:"enablePan"`
	MinDistance         *float32  `mapstructure:"minDistance"`
	MaxDistance         *float32  `mapstructure:"maxDistance"`
	InitialRotation     *Rotation `mapstructure:"initialRotation"`
	MarkerSize          *float32  `mapstructure:"markerSize"`
	ShowWireframe       *bool     `mapstructure:"showWireframe"`
	WireframeColor      *string   `mapstructure:"wireframeColor"`
	AmbientIntensity    *float32  `mapstructure:"ambientIntensity"`
	PointLightIntensity *float32  `mapstructure:"pointLightIntensity"`
	BackgroundColor     *string   `mapstructure:"backgroundColor"`
}

func Defaults() Config {
	return Config{
		Radius:              2,
		GlobeColor:          "#1a1a2e",
		TextureURL:          DefaultTextureURL,
		BumpMapURL:          DefaultBumpMapURL,
		ShowAtmosphere:      false,
		AtmosphereColor:     "#4da6ff",
		AtmosphereIntensity: 0.5,
		AtmosphereBlur:      2,
		BumpScale:           1,
		AutoRotateSpeed:     0.3,
		EnableZoom:          false,
		EnablePan:           false,
		MinDistance:         5,
		MaxDistance:         15,
		InitialRotation:     Rotation{X: 0, Y: 0},
		MarkerSize:          0.06,
		ShowWireframe:       false,
		WireframeColor:      "#4a9eff",
		AmbientIntensity:    0.6,
		PointLightIntensity: 1.5,
		BackgroundColor:     nil,
	}
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// Merge overlays every non-nil option onto base. Values are not validated.
func Merge(base Config, opts Options) Config {
	cfg := base
	set(&cfg.Radius, opts.Radius)
	set(&cfg.GlobeColor, opts.GlobeColor)
	set(&cfg.TextureURL, opts.TextureURL)
	set(&cfg.BumpMapURL, opts.BumpMapURL)
	set(&cfg.ShowAtmosphere, opts.ShowAtmosphere)
	set(&cfg.AtmosphereColor, opts.AtmosphereColor)
	set(&cfg.AtmosphereIntensity, opts.AtmosphereIntensity)
	set(&cfg.AtmosphereBlur, opts.AtmosphereBlur)
	set(&cfg.BumpScale, opts.BumpScale)
	set(&cfg.AutoRotateSpeed, opts.AutoRotateSpeed)
	set(&cfg.EnableZoom, opts.EnableZoom)
	set(&cfg.EnablePan, opts.EnablePan)
	set(&cfg.MinDistance, opts.MinDistance)
	set(&cfg.MaxDistance, opts.MaxDistance)
	set(&cfg.InitialRotation, opts.InitialRotation)
	set(&cfg.MarkerSize, opts.MarkerSize)
	set(&cfg.ShowWireframe, opts.ShowWireframe)
	set(&cfg.WireframeColor, opts.WireframeColor)
	set(&cfg.AmbientIntensity, opts.AmbientIntensity)
	set(&cfg.PointLightIntensity, opts.PointLightIntensity)
	if opts.BackgroundColor != nil {
		bg := *opts.BackgroundColor
		cfg.BackgroundColor = &bg
	}
	return cfg
}

func parseHex(hex string) (mgl32.Vec3, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return mgl32.Vec3{}, err
	}
	r, g, b := c.LinearRgb()
	return mgl32.Vec3{float32(r), float32(g), float32(b)}, nil
}

// Color parses a CSS hex color ("#rgb" or "#rrggbb") into linear RGB. A
// malformed value falls back to fallback, which must be valid.
func Color(hex, fallback string) mgl32.Vec3 {
	v, err := parseHex(hex)
	if err != nil {
		logger.Log.Warn("Invalid color, using default",
			zap.String("color", hex),
			zap.String("default", fallback),
			zap.Error(err))
		v, _ = parseHex(fallback)
	}
	return v
}

// colors resolves every color field of cfg once per mount.
type colors struct {
	globe      mgl32.Vec3
	atmosphere mgl32.Vec3
	wireframe  mgl32.Vec3
	background *mgl32.Vec3
}

func resolveColors(cfg Config) colors {
	def := Defaults()
	c := colors{
		globe:      Color(cfg.GlobeColor, def.GlobeColor),
		atmosphere: Color(cfg.AtmosphereColor, def.AtmosphereColor),
		wireframe:  Color(cfg.WireframeColor, def.WireframeColor),
	}
	if cfg.BackgroundColor != nil && *cfg.BackgroundColor != "" {
		bg, err := parseHex(*cfg.BackgroundColor)
		if err != nil {
			logger.Log.Warn("Invalid background color, keeping transparent",
				zap.String("color", *cfg.BackgroundColor), zap.Error(err))
		} else {
			c.background = &bg
		}
	}
	return c
}
