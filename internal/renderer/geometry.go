package renderer

import (
	"math"
)

// Geometry holds interleaved vertex data (position, uv, normal) and triangle
// indices ready to be uploaded by AddModel.
type Geometry struct {
	Name            string
	InterleavedData []float32
	Faces           []int32
	// Radius of the smallest origin-centered sphere containing every vertex.
	BoundingRadius float32
}

const floatsPerVertex = 8

func (g *Geometry) VertexCount() int {
	return len(g.InterleavedData) / floatsPerVertex
}

func (g *Geometry) addVertex(x, y, z, u, v, nx, ny, nz float32) {
	g.InterleavedData = append(g.InterleavedData, x, y, z, u, v, nx, ny, nz)
	r := float32(math.Sqrt(float64(x*x + y*y + z*z)))
	if r > g.BoundingRadius {
		g.BoundingRadius = r
	}
}

// SphereGeometry builds a UV sphere. Vertex layout matches LatLngToVec3: u runs
// from longitude -180 to 180, v from the north to the south pole, so an
// equirectangular map wraps without further transformation.
func SphereGeometry(radius float32, widthSegments, heightSegments int) *Geometry {
	if widthSegments < 3 {
		widthSegments = 3
	}
	if heightSegments < 2 {
		heightSegments = 2
	}
	g := &Geometry{Name: "Sphere"}

	for iy := 0; iy <= heightSegments; iy++ {
		v := float32(iy) / float32(heightSegments)
		theta := float64(v) * math.Pi
		for ix := 0; ix <= widthSegments; ix++ {
			u := float32(ix) / float32(widthSegments)
			phi := float64(u) * 2 * math.Pi

			nx := float32(-math.Cos(phi) * math.Sin(theta))
			ny := float32(math.Cos(theta))
			nz := float32(math.Sin(phi) * math.Sin(theta))

			g.addVertex(nx*radius, ny*radius, nz*radius, u, v, nx, ny, nz)
		}
	}

	stride := widthSegments + 1
	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := int32(iy*stride + ix + 1)
			b := int32(iy*stride + ix)
			c := int32((iy+1)*stride + ix)
			d := int32((iy+1)*stride + ix + 1)

			// Pole rows collapse to a single triangle per quad
			if iy != 0 {
				g.Faces = append(g.Faces, a, b, d)
			}
			if iy != heightSegments-1 {
				g.Faces = append(g.Faces, b, c, d)
			}
		}
	}
	return g
}

// CylinderGeometry builds a capped cylinder along the Y axis, centered on the
// origin. A zero top radius gives a cone with its apex at +height/2.
func CylinderGeometry(radiusTop, radiusBottom, height float32, radialSegments int) *Geometry {
	if radialSegments < 3 {
		radialSegments = 3
	}
	g := &Geometry{Name: "Cylinder"}
	half := height / 2
	slope := (radiusBottom - radiusTop) / height

	// Side wall
	for iy := 0; iy <= 1; iy++ {
		v := float32(iy)
		r := radiusTop + v*(radiusBottom-radiusTop)
		y := half - v*height
		for ix := 0; ix <= radialSegments; ix++ {
			u := float32(ix) / float32(radialSegments)
			a := float64(u) * 2 * math.Pi
			sin, cos := float32(math.Sin(a)), float32(math.Cos(a))
			n := normalize3(sin, slope, cos)
			g.addVertex(r*sin, y, r*cos, u, 1-v, n[0], n[1], n[2])
		}
	}
	stride := int32(radialSegments + 1)
	for ix := int32(0); ix < int32(radialSegments); ix++ {
		a := ix
		b := stride + ix
		c := stride + ix + 1
		d := ix + 1
		g.Faces = append(g.Faces, a, b, d, b, c, d)
	}

	if radiusTop > 0 {
		g.addCap(radiusTop, half, 1, radialSegments)
	}
	if radiusBottom > 0 {
		g.addCap(radiusBottom, -half, -1, radialSegments)
	}
	return g
}

func (g *Geometry) addCap(radius, y, sign float32, segments int) {
	center := int32(g.VertexCount())
	g.addVertex(0, y, 0, 0.5, 0.5, 0, sign, 0)
	for ix := 0; ix <= segments; ix++ {
		a := float64(ix) / float64(segments) * 2 * math.Pi
		sin, cos := float32(math.Sin(a)), float32(math.Cos(a))
		g.addVertex(radius*sin, y, radius*cos, cos*0.5+0.5, sin*0.5*sign+0.5, 0, sign, 0)
	}
	for ix := int32(1); ix <= int32(segments); ix++ {
		if sign > 0 {
			g.Faces = append(g.Faces, center+ix, center+ix+1, center)
		} else {
			g.Faces = append(g.Faces, center+ix+1, center+ix, center)
		}
	}
}

// ConeGeometry builds a cone along +Y, centered on the origin.
func ConeGeometry(radius, height float32, radialSegments int) *Geometry {
	g := CylinderGeometry(0, radius, height, radialSegments)
	g.Name = "Cone"
	return g
}

// QuadGeometry builds a unit square in the XY plane facing +Z.
func QuadGeometry() *Geometry {
	g := &Geometry{Name: "Quad"}
	g.addVertex(-0.5, -0.5, 0, 0, 1, 0, 0, 1)
	g.addVertex(0.5, -0.5, 0, 1, 1, 0, 0, 1)
	g.addVertex(0.5, 0.5, 0, 1, 0, 0, 0, 1)
	g.addVertex(-0.5, 0.5, 0, 0, 0, 0, 0, 1)
	g.Faces = []int32{0, 1, 2, 0, 2, 3}
	return g
}

func normalize3(x, y, z float32) [3]float32 {
	l := float32(math.Sqrt(float64(x*x + y*y + z*z)))
	if l == 0 {
		return [3]float32{0, 1, 0}
	}
	return [3]float32{x / l, y / l, z / l}
}
