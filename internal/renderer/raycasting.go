package renderer

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Ray represents a ray in 3D space
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// VoxelHit is the first solid voxel along a ray and the empty voxel just before it,
// which is where a placed block would go.
type VoxelHit struct {
	X, Y, Z             int32
	PrevX, PrevY, PrevZ int32
	Distance            float32
}

// RaycastVoxels walks the voxel grid along the ray (Amanatides & Woo) up to maxDistance
// and reports the first voxel for which solid is true.
func RaycastVoxels(ray Ray, maxDistance float32, solid func(x, y, z int32) bool) (VoxelHit, bool) {
	dir := ray.Direction
	if dir.Len() == 0 {
		return VoxelHit{}, false
	}
	dir = dir.Normalize()

	pos := [3]int32{
		int32(math.Floor(float64(ray.Origin.X()))),
		int32(math.Floor(float64(ray.Origin.Y()))),
		int32(math.Floor(float64(ray.Origin.Z()))),
	}
	var step [3]int32
	var tMax, tDelta [3]float32
	for i := 0; i < 3; i++ {
		d := dir[i]
		switch {
		case d > 0:
			step[i] = 1
			tMax[i] = (float32(pos[i]) + 1 - ray.Origin[i]) / d
			tDelta[i] = 1 / d
		case d < 0:
			step[i] = -1
			tMax[i] = (ray.Origin[i] - float32(pos[i])) / -d
			tDelta[i] = -1 / d
		default:
			tMax[i] = float32(math.Inf(1))
			tDelta[i] = float32(math.Inf(1))
		}
	}

	prev := pos
	t := float32(0)
	for t <= maxDistance {
		if solid(pos[0], pos[1], pos[2]) {
			return VoxelHit{
				X: pos[0], Y: pos[1], Z: pos[2],
				PrevX: prev[0], PrevY: prev[1], PrevZ: prev[2],
				Distance: t,
			}, true
		}
		prev = pos
		axis := 0
		if tMax[1] < tMax[axis] {
			axis = 1
		}
		if tMax[2] < tMax[axis] {
			axis = 2
		}
		t = tMax[axis]
		pos[axis] += step[axis]
		tMax[axis] += tDelta[axis]
	}
	return VoxelHit{}, false
}

// ScreenToRay converts a screen position to a world space ray
func ScreenToRay(camera Camera, screenX, screenY float32, windowWidth, windowHeight int) Ray {
	ndcX := 2.0*screenX/float32(windowWidth) - 1.0
	ndcY := 1.0 - 2.0*screenY/float32(windowHeight)

	clipCoords := mgl32.Vec4{ndcX, ndcY, -1.0, 1.0}

	invProjection := camera.Projection.Inv()
	eyeCoords := invProjection.Mul4x1(clipCoords)
	eyeCoords = mgl32.Vec4{eyeCoords.X(), eyeCoords.Y(), -1.0, 0.0}

	invView := camera.GetViewMatrix().Inv()
	worldDir := invView.Mul4x1(eyeCoords).Vec3().Normalize()

	return Ray{
		Origin:    camera.Position,
		Direction: worldDir,
	}
}
