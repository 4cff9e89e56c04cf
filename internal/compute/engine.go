package compute

import (
	"fmt"
	"math"
	"runtime"
	"sync"

	"github.com/san-kum/pairforce/internal/md"
	"github.com/san-kum/pairforce/internal/potential"
)

// Below this many pairs the parallel split costs more than it saves.
const serialCutover = 256

// Result holds one full evaluation pass: per-particle forces plus the
// potential-energy and scalar-virial sums over all contributing pairs.
type Result struct {
	Forces []md.Vec3
	Energy float64
	Virial float64
}

// Engine runs attached pair potentials over their neighbor sources. An
// engine is not safe for concurrent use; give each goroutine its own.
type Engine struct {
	workers int
	pool    *forcePool
}

func NewEngine() *Engine {
	return &Engine{workers: runtime.NumCPU()}
}

// SetWorkers overrides the worker count; values below 1 clamp to 1.
func (e *Engine) SetWorkers(n int) {
	if n < 1 {
		n = 1
	}
	e.workers = n
}

func (e *Engine) Workers() int { return e.workers }

// Compute evaluates every pair the potential's neighbor source yields and
// accumulates forces, energy, and virial. The potential must be attached.
func (e *Engine) Compute(f potential.Force) (*Result, error) {
	if !f.Attached() {
		return nil, fmt.Errorf("%w: %s", md.ErrNotAttached, f.Name())
	}
	pairs, err := f.Source().Pairs()
	if err != nil {
		return nil, err
	}
	sys := f.System()
	res := &Result{Forces: make([]md.Vec3, sys.N())}
	if len(pairs) < serialCutover || e.workers < 2 {
		res.Energy, res.Virial = accumulate(f, sys, pairs, res.Forces)
		return res, nil
	}
	e.parallel(f, sys, pairs, res)
	return res, nil
}

// accumulate walks one chunk of the pair list, adding forces in place and
// returning the chunk's energy and virial partial sums. Coincident
// particles carry no direction and are skipped.
func accumulate(f potential.Force, sys *md.System, pairs []md.NeighborPair, forces []md.Vec3) (energy, virial float64) {
	for _, pr := range pairs {
		d := pr.Delta
		r2 := d.Norm2()
		if r2 == 0 {
			continue
		}
		r := math.Sqrt(r2)
		v, fr := f.EvalPair(sys.TypeID[pr.I], sys.TypeID[pr.J], potential.Input{
			R:       r,
			DiamI:   sys.Diameter[pr.I],
			DiamJ:   sys.Diameter[pr.J],
			ChargeI: sys.Charge[pr.I],
			ChargeJ: sys.Charge[pr.J],
		})
		energy += v
		virial += fr * r

		scale := fr / r
		forces[pr.I].X += scale * d.X
		forces[pr.I].Y += scale * d.Y
		forces[pr.I].Z += scale * d.Z
		forces[pr.J].X -= scale * d.X
		forces[pr.J].Y -= scale * d.Y
		forces[pr.J].Z -= scale * d.Z
	}
	return energy, virial
}

// parallel splits the pair list across workers. Each worker owns whole
// pairs and writes both ends of every pair into a private force array, so
// the hot path takes no locks; partials merge after all workers finish.
func (e *Engine) parallel(f potential.Force, sys *md.System, pairs []md.NeighborPair, res *Result) {
	n := sys.N()
	if e.pool == nil || e.pool.size != n {
		e.pool = newForcePool(n)
	}
	localF := make([][]md.Vec3, e.workers)
	localE := make([]float64, e.workers)
	localW := make([]float64, e.workers)
	for w := 0; w < e.workers; w++ {
		localF[w] = e.pool.get()
	}

	var wg sync.WaitGroup
	chunkSize := (len(pairs) + e.workers - 1) / e.workers

	for w := 0; w < e.workers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()

			start := worker * chunkSize
			if start >= len(pairs) {
				return
			}
			end := start + chunkSize
			if end > len(pairs) {
				end = len(pairs)
			}

			localE[worker], localW[worker] = accumulate(f, sys, pairs[start:end], localF[worker])
		}(w)
	}

	wg.Wait()

	for w := 0; w < e.workers; w++ {
		res.Energy += localE[w]
		res.Virial += localW[w]
		for i := 0; i < n; i++ {
			res.Forces[i].X += localF[w][i].X
			res.Forces[i].Y += localF[w][i].Y
			res.Forces[i].Z += localF[w][i].Z
		}
		e.pool.put(localF[w])
	}
}

// EnergyBetweenSets sums shaped pair energy over pairs with one endpoint in
// each tag set; pairs inside a single set do not contribute. The sets are
// particle indices and must be disjoint and duplicate-free.
func (e *Engine) EnergyBetweenSets(f potential.Force, tags1, tags2 []int) (float64, error) {
	if !f.Attached() {
		return 0, fmt.Errorf("%w: %s", md.ErrNotAttached, f.Name())
	}
	pairs, err := f.Source().Pairs()
	if err != nil {
		return 0, err
	}
	sys := f.System()
	in1 := make(map[int]bool, len(tags1))
	for _, tag := range tags1 {
		in1[tag] = true
	}
	in2 := make(map[int]bool, len(tags2))
	for _, tag := range tags2 {
		in2[tag] = true
	}

	var energy float64
	for _, pr := range pairs {
		if !(in1[pr.I] && in2[pr.J]) && !(in1[pr.J] && in2[pr.I]) {
			continue
		}
		r2 := pr.Delta.Norm2()
		if r2 == 0 {
			continue
		}
		r := math.Sqrt(r2)
		v, _ := f.EvalPair(sys.TypeID[pr.I], sys.TypeID[pr.J], potential.Input{
			R:       r,
			DiamI:   sys.Diameter[pr.I],
			DiamJ:   sys.Diameter[pr.J],
			ChargeI: sys.Charge[pr.I],
			ChargeJ: sys.Charge[pr.J],
		})
		energy += v
	}
	return energy, nil
}
