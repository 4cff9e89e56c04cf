package potential

import (
	"fmt"

	"github.com/san-kum/pairforce/internal/md"
	"github.com/san-kum/pairforce/internal/pairtable"
	"github.com/san-kum/pairforce/internal/shape"
)

// Input carries the per-pair quantities a kernel may read besides its own
// parameter record. R is the center-center distance, RCut the applied
// cutoff for this pair (including any diameter-derived extension).
type Input struct {
	R       float64
	RCut    float64
	DiamI   float64
	DiamJ   float64
	ChargeI float64
	ChargeJ float64
}

// Kernel is one closed-form family: raw pair energy V(r) and radial force
// F(r) = -dV/dr from the pair's parameter record. Kernels are pure and are
// never called at or beyond the cutoff.
type Kernel[P any] func(in Input, p P) (v, f float64)

// Caps describes what a family supports and which per-particle inputs it
// consumes.
type Caps struct {
	// Smoothing permits the XPLOR taper. Families whose cutoff geometry
	// moves with particle diameters cannot honor it.
	Smoothing bool
	// Diameter and Charge mark kernels that read those per-particle values.
	Diameter bool
	Charge   bool
	// CutoffShift extends a pair's cutoff by a distance derived from the
	// two diameters. Nil means no extension.
	CutoffShift func(di, dj float64) float64
}

// Force is the non-generic surface the evaluation loop consumes. Every
// catalog family is a [Pair] instantiation behind this interface.
type Force interface {
	Name() string
	Mode() shape.Mode
	Supports(mode shape.Mode) bool
	NeedsDiameter() bool
	NeedsCharge() bool

	System() *md.System
	Source() md.NeighborSource
	Attached() bool
	Attach(src md.NeighborSource) error
	Detach() error

	// MaxCutoff is the largest applied cutoff over all active pairs,
	// including the diameter extension; valid after Attach. Neighbor
	// sources size their search radius from it.
	MaxCutoff() float64

	// EvalPair returns the applied (V', F') for one candidate pair,
	// exactly zero at and beyond the pair's cutoff; valid after Attach.
	EvalPair(ti, tj int, in Input) (float64, float64)
}

// CutoffConfigurable is implemented by potentials whose cutoffs are set
// explicitly per pair. The tabulated potential is the exception: it derives
// each pair's cutoff from its grid and does not implement this.
type CutoffConfigurable interface {
	SetRCut(listA, listB []string, rcut float64) error
	SetRCutDefault(rcut float64) error
	SetROn(listA, listB []string, ron float64) error
	SetROnDefault(ron float64) error
}

// Pair is one potential instance: a kernel plus its per-type-pair parameter,
// cutoff, and onset tables, bound to a system's type set. Configuration
// happens through the Set methods while detached; Attach freezes the tables
// into dense arrays for evaluation.
type Pair[P any] struct {
	name   string
	mode   shape.Mode
	caps   Caps
	kernel Kernel[P]
	sys    *md.System

	paramTab *pairtable.Table[P]
	rcutTab  *pairtable.Table[float64]
	ronTab   *pairtable.Table[float64]

	src    md.NeighborSource
	nTypes int
	params []P
	rcut   []float64
	ron    []float64
	maxCut float64
}

// NewPair builds a detached potential instance for the system's type set.
// Requesting XPLOR for a family without smoothing support fails here, before
// any table state exists.
func NewPair[P any](name string, sys *md.System, mode shape.Mode, caps Caps, kernel Kernel[P]) (*Pair[P], error) {
	if mode == shape.XPLOR && !caps.Smoothing {
		return nil, fmt.Errorf("%w: %s cannot taper a moving cutoff", md.ErrUnsupportedMode, name)
	}
	return &Pair[P]{
		name:     name,
		mode:     mode,
		caps:     caps,
		kernel:   kernel,
		sys:      sys,
		paramTab: pairtable.New[P](name + " parameters"),
		rcutTab:  pairtable.New[float64]("r_cut"),
		ronTab:   pairtable.NewWithDefault("r_on", 0.0),
	}, nil
}

func (p *Pair[P]) Name() string        { return p.name }
func (p *Pair[P]) Mode() shape.Mode    { return p.mode }
func (p *Pair[P]) System() *md.System  { return p.sys }
func (p *Pair[P]) NeedsDiameter() bool { return p.caps.Diameter }
func (p *Pair[P]) NeedsCharge() bool   { return p.caps.Charge }
func (p *Pair[P]) Attached() bool      { return p.src != nil }

func (p *Pair[P]) Supports(mode shape.Mode) bool {
	return mode != shape.XPLOR || p.caps.Smoothing
}

func (p *Pair[P]) Source() md.NeighborSource { return p.src }

// SetParams assigns one parameter record to every unordered pair in the
// Cartesian product of two type-name lists.
func (p *Pair[P]) SetParams(listA, listB []string, params P) error {
	if p.Attached() {
		return fmt.Errorf("%w: set %s", md.ErrAttached, p.paramTab.Label())
	}
	return p.paramTab.SetList(p.sys.Types, listA, listB, params)
}

func (p *Pair[P]) SetRCut(listA, listB []string, rcut float64) error {
	if p.Attached() {
		return fmt.Errorf("%w: set r_cut", md.ErrAttached)
	}
	if rcut <= 0 {
		return fmt.Errorf("potential %s: r_cut must be positive, got %v", p.name, rcut)
	}
	return p.rcutTab.SetList(p.sys.Types, listA, listB, rcut)
}

// SetRCutDefault sets the cutoff used by every pair without an explicit one.
func (p *Pair[P]) SetRCutDefault(rcut float64) error {
	if p.Attached() {
		return fmt.Errorf("%w: set r_cut", md.ErrAttached)
	}
	if rcut <= 0 {
		return fmt.Errorf("potential %s: r_cut must be positive, got %v", p.name, rcut)
	}
	p.rcutTab.SetDefault(rcut)
	return nil
}

func (p *Pair[P]) SetROn(listA, listB []string, ron float64) error {
	if p.Attached() {
		return fmt.Errorf("%w: set r_on", md.ErrAttached)
	}
	if ron < 0 {
		return fmt.Errorf("potential %s: r_on must be non-negative, got %v", p.name, ron)
	}
	return p.ronTab.SetList(p.sys.Types, listA, listB, ron)
}

func (p *Pair[P]) SetROnDefault(ron float64) error {
	if p.Attached() {
		return fmt.Errorf("%w: set r_on", md.ErrAttached)
	}
	if ron < 0 {
		return fmt.Errorf("potential %s: r_on must be non-negative, got %v", p.name, ron)
	}
	p.ronTab.SetDefault(ron)
	return nil
}

// Verify checks that every active type pair resolves in the parameter and
// cutoff tables, aggregating all gaps into one report.
func (p *Pair[P]) Verify() error {
	if err := p.paramTab.Verify(p.sys.Types); err != nil {
		return err
	}
	return p.rcutTab.Verify(p.sys.Types)
}

// Attach binds the potential to a neighbor source and freezes the tables
// into dense per-pair arrays. The source must enumerate pairs of the same
// system this potential was built for.
func (p *Pair[P]) Attach(src md.NeighborSource) error {
	if p.Attached() {
		return fmt.Errorf("%w: %s", md.ErrAttached, p.name)
	}
	if src.System() != p.sys {
		return fmt.Errorf("%w: potential %s", md.ErrCrossContext, p.name)
	}
	params, err := p.paramTab.Flatten(p.sys.Types)
	if err != nil {
		return err
	}
	rcut, err := p.rcutTab.Flatten(p.sys.Types)
	if err != nil {
		return err
	}
	ron, err := p.ronTab.Flatten(p.sys.Types)
	if err != nil {
		return err
	}
	p.params = params
	p.rcut = rcut
	p.ron = ron
	p.nTypes = p.sys.Types.Len()
	p.maxCut = 0
	for _, rc := range rcut {
		if rc > p.maxCut {
			p.maxCut = rc
		}
	}
	if p.caps.CutoffShift != nil {
		maxD := 0.0
		for _, d := range p.sys.Diameter {
			if d > maxD {
				maxD = d
			}
		}
		if s := p.caps.CutoffShift(maxD, maxD); s > 0 {
			p.maxCut += s
		}
	}
	p.src = src
	return nil
}

// Detach unbinds the neighbor source and re-enables configuration.
func (p *Pair[P]) Detach() error {
	if !p.Attached() {
		return fmt.Errorf("%w: %s", md.ErrNotAttached, p.name)
	}
	p.src = nil
	p.params = nil
	p.rcut = nil
	p.ron = nil
	return nil
}

func (p *Pair[P]) MaxCutoff() float64 { return p.maxCut }

// EvalPair resolves the dense pair state, rejects beyond the applied
// cutoff, evaluates the kernel, and applies the continuity treatment.
func (p *Pair[P]) EvalPair(ti, tj int, in Input) (float64, float64) {
	idx := pairtable.MakeKey(ti, tj).Index(p.nTypes)
	rcut := p.rcut[idx]
	if p.caps.CutoffShift != nil {
		rcut += p.caps.CutoffShift(in.DiamI, in.DiamJ)
	}
	if in.R >= rcut {
		return 0, 0
	}
	in.RCut = rcut
	ron := p.ron[idx]
	v, f := p.kernel(in, p.params[idx])
	var vcut float64
	if p.mode.NeedsCutoffEnergy(rcut, ron) {
		cin := in
		cin.R = rcut
		vcut, _ = p.kernel(cin, p.params[idx])
	}
	return shape.Apply(p.mode, in.R, rcut, ron, v, f, vcut)
}
