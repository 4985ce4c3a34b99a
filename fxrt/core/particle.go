package core

// PointInstance matches the WGSL instance layout in points.wgsl
// struct { pos: vec3<f32>, size: f32, color: vec4<f32> }
type PointInstance struct {
	Pos   [3]float32
	Size  float32
	Color [4]float32
}

// PackInstances writes one instance per slot into dst, growing it if needed,
// and clears the pool's dirty flags. Inactive slots keep their parked
// position and zero size so the buffer layout never changes.
func PackInstances(dst []PointInstance, pool *Pool) []PointInstance {
	n := pool.Len()
	if cap(dst) < n {
		dst = make([]PointInstance, n)
	}
	dst = dst[:n]

	for i := 0; i < n; i++ {
		p := pool.Pos[i]
		c := pool.Color[i]
		dst[i] = PointInstance{
			Pos:   [3]float32{p[0], p[1], p[2]},
			Size:  pool.Size[i],
			Color: [4]float32{c[0], c[1], c[2], 1},
		}
	}
	pool.PositionsDirty = false
	pool.SizesDirty = false
	return dst
}
