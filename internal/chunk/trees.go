package chunk

import (
	"math"
	"math/rand"

	"Craftmine/internal/voxel"
)

type TreeKind int

const (
	Walnut TreeKind = iota
	Spruce
	Mahogany

	treeKindCount
)

type treeShape struct {
	wood, leaves   voxel.Type
	trunkHeight    [2]int // half-open range
	branchLength   [2]int
	leafRadius     [2]int
	crownRadius    [2]int
	trunkThickness [2]int
}

var treeShapes = [treeKindCount]treeShape{
	Walnut: {
		wood: voxel.WalnutWood, leaves: voxel.WalnutLeaves,
		trunkHeight: [2]int{3, 7}, branchLength: [2]int{2, 5},
		leafRadius: [2]int{1, 3}, crownRadius: [2]int{2, 4}, trunkThickness: [2]int{2, 3},
	},
	Spruce: {
		wood: voxel.SpruceWood, leaves: voxel.SpruceLeaves,
		trunkHeight: [2]int{14, 22}, branchLength: [2]int{3, 6},
		leafRadius: [2]int{1, 3}, crownRadius: [2]int{2, 4}, trunkThickness: [2]int{1, 2},
	},
	Mahogany: {
		wood: voxel.MahoganyWood, leaves: voxel.MahoganyLeaves,
		trunkHeight: [2]int{18, 32}, branchLength: [2]int{7, 12},
		leafRadius: [2]int{2, 4}, crownRadius: [2]int{3, 5}, trunkThickness: [2]int{2, 4},
	},
}

type treeBuilder struct {
	rng   *rand.Rand
	edits []voxel.Edit
	seen  map[[3]int32]struct{}
}

func (b *treeBuilder) between(r [2]int) int {
	if r[1] <= r[0] {
		return r[0]
	}
	return r[0] + b.rng.Intn(r[1]-r[0])
}

func (b *treeBuilder) put(x, y, z int32, t voxel.Type, overwrite bool) {
	key := [3]int32{x, y, z}
	if _, ok := b.seen[key]; ok && !overwrite {
		return
	}
	b.seen[key] = struct{}{}
	b.edits = append(b.edits, voxel.Edit{X: x, Y: y, Z: z, Type: t})
}

// Tree returns the absolute edits of one tree whose trunk starts at (x, y, z).
// The same seed always yields the same tree.
func Tree(kind TreeKind, x, y, z int32, seed int64) []voxel.Edit {
	if kind < 0 || kind >= treeKindCount {
		kind = Walnut
	}
	shape := treeShapes[kind]
	b := &treeBuilder{
		rng:  rand.New(rand.NewSource(seed)),
		seen: make(map[[3]int32]struct{}),
	}

	height := int32(b.between(shape.trunkHeight))
	thickness := int32(b.between(shape.trunkThickness))

	for dx := int32(0); dx < thickness; dx++ {
		for dz := int32(0); dz < thickness; dz++ {
			for dy := int32(0); dy < height; dy++ {
				b.put(x+dx, y+dy, z+dz, shape.wood, true)
				if dy > 5 && dy < height-5 && b.rng.Float64() < 0.2 {
					b.branch(shape, [3]int32{x + dx, y + dy, z + dz})
				}
			}
		}
	}
	b.crown(shape, [3]int32{x, y + height, z})
	return b.edits
}

func (b *treeBuilder) branch(shape treeShape, start [3]int32) {
	length := b.between(shape.branchLength)
	end := [3]int32{
		start[0] + int32(b.rng.Intn(2*length)-length),
		start[1] + int32(1+b.rng.Intn(3)),
		start[2] + int32(b.rng.Intn(2*length)-length),
	}
	steps := length * 2
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		b.put(
			int32(math.Round(lerp(start[0], end[0], t))),
			int32(math.Round(lerp(start[1], end[1], t))),
			int32(math.Round(lerp(start[2], end[2], t))),
			shape.wood, true,
		)
	}

	r := int32(b.between(shape.leafRadius))
	for dx := -r; dx <= r; dx++ {
		for dy := int32(-1); dy <= 1; dy++ {
			for dz := -r; dz <= r; dz++ {
				if dx*dx+dy*dy+dz*dz <= r*r {
					b.put(end[0]+dx, end[1]+dy, end[2]+dz, shape.leaves, false)
				}
			}
		}
	}
}

func (b *treeBuilder) crown(shape treeShape, center [3]int32) {
	r := int32(b.between(shape.crownRadius))
	rf := float64(r)
	for dx := -r; dx <= r; dx++ {
		for dy := int32(0); dy < r; dy++ {
			for dz := -r; dz <= r; dz++ {
				nx := float64(dx) / rf
				ny := float64(dy) / (rf * 0.8)
				nz := float64(dz) / rf
				if nx*nx+ny*ny+nz*nz <= 1 {
					b.put(center[0]+dx, center[1]+dy, center[2]+dz, shape.leaves, false)
				}
			}
		}
	}
}

func lerp(a, b int32, t float64) float64 {
	return float64(a) + (float64(b)-float64(a))*t
}
