package compute

import (
	"sync"

	"github.com/san-kum/pairforce/internal/md"
)

// forcePool recycles the per-worker force arrays the parallel path would
// otherwise allocate every pass. Arrays come back zeroed, ready to
// accumulate into.
type forcePool struct {
	pool sync.Pool
	size int
}

func newForcePool(n int) *forcePool {
	return &forcePool{
		size: n,
		pool: sync.Pool{
			New: func() interface{} {
				return make([]md.Vec3, n)
			},
		},
	}
}

func (p *forcePool) get() []md.Vec3 {
	return p.pool.Get().([]md.Vec3)
}

func (p *forcePool) put(f []md.Vec3) {
	if len(f) != p.size {
		return
	}
	for i := range f {
		f[i] = md.Vec3{}
	}
	p.pool.Put(f)
}
