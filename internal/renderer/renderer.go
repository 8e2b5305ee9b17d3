package renderer

import "github.com/go-gl/mathgl/mgl32"

var FrustumCullingEnabled bool = true
var FaceCullingEnabled bool = true
var Debug bool = false
var DepthTestEnabled bool = true
var ClearColor = mgl32.Vec3{0.55, 0.75, 0.95} // Sky colour, also used for fog

// Light is a single directional sun light.
type Light struct {
	Direction       mgl32.Vec3
	Color           mgl32.Vec3
	AmbientStrength float32
}

// CreateSunlight creates a daylight sun shining from the given direction.
func CreateSunlight(direction mgl32.Vec3) *Light {
	return &Light{
		Direction:       direction.Normalize(),
		Color:           mgl32.Vec3{1.0, 0.95, 0.85},
		AmbientStrength: 0.45,
	}
}
