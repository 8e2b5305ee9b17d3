package voxel

import "github.com/go-gl/mathgl/mgl32"

// Type identifies the material of a single voxel. Air is the zero value and doubles as
// the answer for every query into unloaded space.
type Type uint8

const (
	Air Type = iota
	Dirt
	Gravel
	Sand
	Sandstone
	Snow
	Water
	Ice
	Grass
	Stone
	WalnutWood
	WalnutPlanks
	WalnutLeaves
	SpruceWood
	SprucePlanks
	SpruceLeaves
	MahoganyWood
	MahoganyPlanks
	MahoganyLeaves
	Cobblestone
	CopperOre
	AmethystOre
	Stonebrick
	Glass

	typeCount
)

type properties struct {
	Name        string
	Color       mgl32.Vec3
	Transparent bool
}

var registry = [typeCount]properties{
	Air:            {Name: "Air", Transparent: true},
	Dirt:           {Name: "Dirt", Color: mgl32.Vec3{0.5, 0.3, 0.1}},
	Gravel:         {Name: "Gravel", Color: mgl32.Vec3{0.55, 0.52, 0.5}},
	Sand:           {Name: "Sand", Color: mgl32.Vec3{0.9, 0.8, 0.6}},
	Sandstone:      {Name: "Sandstone", Color: mgl32.Vec3{0.85, 0.75, 0.5}},
	Snow:           {Name: "Snow", Color: mgl32.Vec3{0.95, 0.97, 1.0}},
	Water:          {Name: "Water", Color: mgl32.Vec3{0.2, 0.4, 0.8}, Transparent: true},
	Ice:            {Name: "Ice", Color: mgl32.Vec3{0.7, 0.85, 1.0}, Transparent: true},
	Grass:          {Name: "Grass Block", Color: mgl32.Vec3{0.3, 0.7, 0.2}},
	Stone:          {Name: "Stone", Color: mgl32.Vec3{0.6, 0.6, 0.6}},
	WalnutWood:     {Name: "Walnut Wood", Color: mgl32.Vec3{0.35, 0.25, 0.15}},
	WalnutPlanks:   {Name: "Walnut Planks", Color: mgl32.Vec3{0.5, 0.37, 0.22}},
	WalnutLeaves:   {Name: "Walnut Leaves", Color: mgl32.Vec3{0.25, 0.5, 0.15}, Transparent: true},
	SpruceWood:     {Name: "Spruce Wood", Color: mgl32.Vec3{0.3, 0.2, 0.12}},
	SprucePlanks:   {Name: "Spruce Planks", Color: mgl32.Vec3{0.45, 0.32, 0.2}},
	SpruceLeaves:   {Name: "Spruce Leaves", Color: mgl32.Vec3{0.15, 0.35, 0.2}, Transparent: true},
	MahoganyWood:   {Name: "Mahogany Wood", Color: mgl32.Vec3{0.4, 0.18, 0.12}},
	MahoganyPlanks: {Name: "Mahogany Planks", Color: mgl32.Vec3{0.55, 0.25, 0.18}},
	MahoganyLeaves: {Name: "Mahogany Leaves", Color: mgl32.Vec3{0.3, 0.45, 0.1}, Transparent: true},
	Cobblestone:    {Name: "Cobblestone", Color: mgl32.Vec3{0.45, 0.45, 0.45}},
	CopperOre:      {Name: "Copper Ore", Color: mgl32.Vec3{0.7, 0.45, 0.3}},
	AmethystOre:    {Name: "Amethyst Ore", Color: mgl32.Vec3{0.6, 0.4, 0.75}},
	Stonebrick:     {Name: "Stone Brick", Color: mgl32.Vec3{0.5, 0.5, 0.52}},
	Glass:          {Name: "Glass", Color: mgl32.Vec3{0.85, 0.95, 1.0}, Transparent: true},
}

func (t Type) valid() bool {
	return t < typeCount
}

// IsTransparent reports whether faces behind this voxel stay visible.
// Unknown types are treated as air.
func (t Type) IsTransparent() bool {
	if !t.valid() {
		return true
	}
	return registry[t].Transparent
}

// IsSolid is false only for air.
func (t Type) IsSolid() bool {
	return t != Air && t.valid()
}

func (t Type) Name() string {
	if !t.valid() {
		return "Unknown"
	}
	return registry[t].Name
}

func (t Type) String() string {
	return t.Name()
}

// Color is the flat vertex colour used by the mesher.
func (t Type) Color() mgl32.Vec3 {
	if !t.valid() {
		return mgl32.Vec3{}
	}
	return registry[t].Color
}

// All returns every placeable type, air excluded.
func All() []Type {
	types := make([]Type, 0, typeCount-1)
	for t := Air + 1; t < typeCount; t++ {
		types = append(types, t)
	}
	return types
}

// Edit is a single voxel change. Depending on the caller X/Y/Z are absolute world
// coordinates or relative to a batch offset.
type Edit struct {
	X, Y, Z int32
	Type    Type
}
