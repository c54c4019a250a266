package globe

import "github.com/go-gl/mathgl/mgl32"

// VisibilityThreshold is the minimum cosine between the marker and camera
// directions, seen from the globe center, for a marker to count as facing the
// viewer. It hides markers slightly before they reach the limb.
const VisibilityThreshold = 0.1

// IsVisible reports whether a marker at anchor faces a camera at cameraPos.
// Both are world positions relative to the globe center. Degenerate inputs
// are never visible.
func IsVisible(anchor, cameraPos mgl32.Vec3) bool {
	return facing(anchor, cameraPos) > VisibilityThreshold
}

func facing(anchor, cameraPos mgl32.Vec3) float32 {
	if anchor.Len() == 0 || cameraPos.Len() == 0 {
		return -1
	}
	return anchor.Normalize().Dot(cameraPos.Normalize())
}
