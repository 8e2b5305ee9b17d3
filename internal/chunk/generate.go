package chunk

import (
	"math"

	"Craftmine/internal/voxel"

	perlin "github.com/aquilax/go-perlin"
)

// Generator fills a freshly allocated chunk. Implementations run on worker goroutines
// and must be safe for concurrent use.
type Generator interface {
	Generate(c *Chunk)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(c *Chunk)

func (f GeneratorFunc) Generate(c *Chunk) {
	f(c)
}

// TerrainSettings shapes the heightmap.
type TerrainSettings struct {
	BaseHeight float64
	Amplitude  float64
	Scale      float64
	Octaves    int
	SeaLevel   int
	TreeChance float64
}

func DefaultTerrainSettings() TerrainSettings {
	return TerrainSettings{
		BaseHeight: 24,
		Amplitude:  20,
		Scale:      0.01,
		Octaves:    3,
		SeaLevel:   16,
		TreeChance: 0.01,
	}
}

// TerrainGenerator produces layered perlin terrain with water, beaches, snow caps, ores
// and trees. Trees crossing the chunk border end up in Chunk.OutOfBounds.
type TerrainGenerator struct {
	seed     int64
	settings TerrainSettings
	height   *perlin.Perlin
	detail   *perlin.Perlin
}

func NewTerrainGenerator(seed int64, settings TerrainSettings) *TerrainGenerator {
	octaves := settings.Octaves
	if octaves < 1 {
		octaves = 1
	}
	return &TerrainGenerator{
		seed:     seed,
		settings: settings,
		height:   perlin.NewPerlin(2, 2, int32(octaves), seed),
		detail:   perlin.NewPerlin(2, 2, 2, seed+1),
	}
}

// HeightAt is the world Y of the first air voxel above the surface of a column.
func (g *TerrainGenerator) HeightAt(wx, wz int32) int32 {
	s := g.settings
	n := g.height.Noise2D(float64(wx)*s.Scale, float64(wz)*s.Scale)
	return int32(math.Floor(s.BaseHeight + n*s.Amplitude))
}

func (g *TerrainGenerator) Generate(c *Chunk) {
	size := int32(c.size)
	ox, oy, oz := c.Position.Origin(size)
	sea := int32(g.settings.SeaLevel)
	snowLine := int32(g.settings.BaseHeight + g.settings.Amplitude*0.6)

	for lz := int32(0); lz < size; lz++ {
		for lx := int32(0); lx < size; lx++ {
			wx, wz := ox+lx, oz+lz
			h := g.HeightAt(wx, wz)
			if oy >= h && oy >= sea {
				continue
			}
			for ly := int32(0); ly < size; ly++ {
				wy := oy + ly
				t := g.columnVoxel(wx, wy, wz, h, sea, snowLine)
				if t != voxel.Air {
					c.set(int(lx), int(ly), int(lz), t)
				}
			}
			surface := h - 1
			if surface >= oy && surface < oy+size && surface > sea && c.GetVoxel(int(lx), int(surface-oy), int(lz)) == voxel.Grass {
				g.maybeTree(c, wx, h, wz)
			}
		}
	}
}

func (g *TerrainGenerator) columnVoxel(wx, wy, wz, h, sea, snowLine int32) voxel.Type {
	switch {
	case wy >= h:
		if wy < sea {
			return voxel.Water
		}
		return voxel.Air
	case wy == h-1:
		switch {
		case h-1 <= sea+1:
			return voxel.Sand
		case h > snowLine:
			return voxel.Snow
		default:
			return voxel.Grass
		}
	case wy >= h-4:
		if h-1 <= sea+1 {
			return voxel.Sandstone
		}
		return voxel.Dirt
	default:
		ore := g.detail.Noise3D(float64(wx)*0.1, float64(wy)*0.1, float64(wz)*0.1)
		switch {
		case ore > 0.45 && wy < h-12:
			return voxel.AmethystOre
		case ore > 0.35:
			return voxel.CopperOre
		case ore < -0.4:
			return voxel.Gravel
		}
		return voxel.Stone
	}
}

func (g *TerrainGenerator) maybeTree(c *Chunk, wx, wy, wz int32) {
	chance := g.settings.TreeChance
	if chance <= 0 {
		return
	}
	h := hash2(g.seed, wx, wz)
	if float64(h)/float64(math.MaxUint32) >= chance {
		return
	}
	kind := TreeKind(hash32(h) % uint32(treeKindCount))
	for _, e := range Tree(kind, wx, wy, wz, int64(h)) {
		c.Place(e)
	}
}
