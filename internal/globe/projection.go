package globe

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// LatLngToVec3 maps geographic degrees to a point on a sphere of the given
// radius centered on the origin. The north pole is +Y and longitude 0 lies on
// +X, which lines up with the sphere mesh UVs of an equirectangular map.
// Inputs are not validated.
func LatLngToVec3(lat, lng, radius float32) mgl32.Vec3 {
	phi := (90 - lat) * (math32.Pi / 180)
	theta := (lng + 180) * (math32.Pi / 180)

	x := -(radius * math32.Sin(phi) * math32.Cos(theta))
	z := radius * math32.Sin(phi) * math32.Sin(theta)
	y := radius * math32.Cos(phi)

	return mgl32.Vec3{x, y, z}
}
