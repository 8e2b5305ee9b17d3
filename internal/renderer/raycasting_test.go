package renderer

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestRaycastVoxelsHitsFirstSolid(t *testing.T) {
	solid := func(x, y, z int32) bool {
		return x == 5 && y == 0 && z == 0
	}
	ray := Ray{Origin: mgl32.Vec3{0.5, 0.5, 0.5}, Direction: mgl32.Vec3{1, 0, 0}}

	hit, ok := RaycastVoxels(ray, 10, solid)
	if !ok {
		t.Fatal("Expected a hit")
	}
	if hit.X != 5 || hit.Y != 0 || hit.Z != 0 {
		t.Errorf("Expected hit at (5,0,0), got (%d,%d,%d)", hit.X, hit.Y, hit.Z)
	}
	if hit.PrevX != 4 || hit.PrevY != 0 || hit.PrevZ != 0 {
		t.Errorf("Expected previous voxel (4,0,0), got (%d,%d,%d)", hit.PrevX, hit.PrevY, hit.PrevZ)
	}
}

func TestRaycastVoxelsNegativeDirection(t *testing.T) {
	solid := func(x, y, z int32) bool {
		return y == -3
	}
	ray := Ray{Origin: mgl32.Vec3{-0.5, 2.5, -7.5}, Direction: mgl32.Vec3{0, -1, 0}}

	hit, ok := RaycastVoxels(ray, 10, solid)
	if !ok {
		t.Fatal("Expected a hit")
	}
	if hit.X != -1 || hit.Y != -3 || hit.Z != -8 {
		t.Errorf("Expected hit at (-1,-3,-8), got (%d,%d,%d)", hit.X, hit.Y, hit.Z)
	}
	if hit.PrevY != -2 {
		t.Errorf("Expected previous voxel at y=-2, got %d", hit.PrevY)
	}
}

func TestRaycastVoxelsRespectsDistance(t *testing.T) {
	solid := func(x, y, z int32) bool {
		return z == -20
	}
	ray := Ray{Origin: mgl32.Vec3{0.5, 0.5, 0.5}, Direction: mgl32.Vec3{0, 0, -1}}

	if _, ok := RaycastVoxels(ray, 8, solid); ok {
		t.Error("Expected no hit beyond max distance")
	}
	if _, ok := RaycastVoxels(Ray{Origin: ray.Origin}, 8, solid); ok {
		t.Error("Expected no hit for a zero direction")
	}
}

func TestScreenToRayCenterFollowsFront(t *testing.T) {
	cam := NewDefaultCamera(800, 600)
	ray := ScreenToRay(*cam, 400, 300, 800, 600)

	if ray.Direction.Sub(cam.Front).Len() > 0.01 {
		t.Errorf("Center ray should match the camera front, got %v want %v", ray.Direction, cam.Front)
	}
}
