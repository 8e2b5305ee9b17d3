package chunk

// hash32 is a murmur-style finalizer used for stable per-column decisions.
func hash32(x uint32) uint32 {
	x ^= x >> 16
	x *= 0x7feb352d
	x ^= x >> 15
	x *= 0x846ca68b
	x ^= x >> 16
	return x
}

// hash2 mixes a seed with a 2D integer position.
func hash2(seed int64, x, z int32) uint32 {
	h := uint32(seed) ^ uint32(seed>>32)
	h ^= uint32(x) * 0x9e3779b1
	h ^= uint32(z) * 0x85ebca6b
	return hash32(h)
}
