package renderer

import (
	"testing"
)

func TestNewUniformCache(t *testing.T) {
	cache := NewUniformCache(0)

	if cache == nil {
		t.Fatal("NewUniformCache returned nil")
	}

	if cache.locations == nil {
		t.Error("locations map should be initialized")
	}
}

func TestUniformCacheReturnsCachedLocation(t *testing.T) {
	cache := NewUniformCache(0)
	cache.locations["viewProjection"] = 3

	if loc := cache.GetLocation("viewProjection"); loc != 3 {
		t.Errorf("Expected cached location 3, got %d", loc)
	}
}

func TestUniformCacheClear(t *testing.T) {
	cache := NewUniformCache(0)
	cache.locations["usingAlpha"] = 5

	cache.Clear()

	if len(cache.locations) != 0 {
		t.Error("Clear should empty the cache")
	}
}

func TestVoxelShaderSources(t *testing.T) {
	shader := InitVoxelShader()

	if shader.vertexSource == "" || shader.fragmentSource == "" {
		t.Fatal("Voxel shader sources should not be empty")
	}
	if shader.vertexSource[len(shader.vertexSource)-1] != 0 {
		t.Error("Shader source must be NUL terminated for gl.Strs")
	}
}
