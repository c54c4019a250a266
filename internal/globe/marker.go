package globe

import "fmt"

// Marker is a point of interest drawn as a pinned badge.
type Marker struct {
	Lat   float32 `mapstructure:"lat"`
	Lng   float32 `mapstructure:"lng"`
	Src   string  `mapstructure:"src"`   // Badge image source, see loader.LoadImage
	Label string  `mapstructure:"label"` // Optional
	Size  float32 `mapstructure:"size"`  // Badge diameter, 0 uses Config.MarkerSize
}

// Key is the structural identity of a marker.
func (m Marker) Key() string {
	return fmt.Sprintf("%g,%g,%s", m.Lat, m.Lng, m.Src)
}

func (m Marker) String() string {
	if m.Label != "" {
		return m.Label
	}
	return fmt.Sprintf("(%.4f, %.4f)", m.Lat, m.Lng)
}

func (m Marker) size(def float32) float32 {
	if m.Size > 0 {
		return m.Size
	}
	return def
}
