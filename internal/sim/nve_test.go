package sim_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/pairforce/internal/md"
	"github.com/san-kum/pairforce/internal/neighbor"
	"github.com/san-kum/pairforce/internal/potential"
	"github.com/san-kum/pairforce/internal/shape"
	"github.com/san-kum/pairforce/internal/sim"
)

// newCrystal builds an 8-particle Lennard-Jones cube near its minimum
// spacing, attached through a brute-force source.
func newCrystal(mode shape.Mode) *sim.Runner {
	types, err := md.NewTypeSet("A")
	Expect(err).NotTo(HaveOccurred())
	sys := md.NewSystem(types)
	for i := 0; i < 8; i++ {
		sys.AddParticle(0)
	}
	sys.Lattice(1.12, 0, nil)

	f, err := potential.NewLJ(sys, mode)
	Expect(err).NotTo(HaveOccurred())
	Expect(f.SetParams([]string{"A"}, []string{"A"}, potential.LJParams{Epsilon: 1, Sigma: 1})).To(Succeed())
	Expect(f.SetRCutDefault(2.5)).To(Succeed())
	if mode == shape.XPLOR {
		Expect(f.SetROnDefault(2.0)).To(Succeed())
	}

	src := neighbor.NewBruteForce(sys, 0.4)
	Expect(f.Attach(src)).To(Succeed())
	src.SetCutoff(f.MaxCutoff())

	runner, err := sim.NewRunner(f)
	Expect(err).NotTo(HaveOccurred())
	return runner
}

var _ = Describe("Velocity Verlet", func() {
	It("conserves energy with a shifted cutoff", func() {
		runner := newCrystal(shape.Shift)
		res, err := runner.Run(context.Background(), sim.Config{
			Dt: 0.001, Duration: 0.5, SampleEvery: 50, ValidateState: true,
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.StepsTaken).To(Equal(500))
		Expect(res.Errors).To(BeEmpty())
		Expect(res.EnergyDrift).To(BeNumerically("<", 1e-4))
	})

	It("conserves energy with xplor smoothing", func() {
		runner := newCrystal(shape.XPLOR)
		res, err := runner.Run(context.Background(), sim.Config{
			Dt: 0.001, Duration: 0.5, SampleEvery: 50, ValidateState: true,
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.EnergyDrift).To(BeNumerically("<", 1e-4))
	})

	It("keeps total energy flat across the sampled series", func() {
		runner := newCrystal(shape.Shift)
		res, err := runner.Run(context.Background(), sim.Config{
			Dt: 0.001, Duration: 0.2, SampleEvery: 20,
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Total).NotTo(BeEmpty())
		first := res.Total[0]
		Expect(first).NotTo(BeZero())
		for _, e := range res.Total {
			Expect(e).To(BeNumerically("~", first, 1e-3))
		}
	})

	It("samples t=0 plus every stride", func() {
		runner := newCrystal(shape.Shift)
		res, err := runner.Run(context.Background(), sim.Config{
			Dt: 0.001, Duration: 0.1, SampleEvery: 10,
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.StepsTaken).To(Equal(100))
		Expect(res.Times).To(HaveLen(11))
		Expect(res.Temperature).To(HaveLen(11))
		Expect(res.Times[0]).To(BeZero())
	})

	It("stops between steps when the context is cancelled", func() {
		runner := newCrystal(shape.Shift)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		res, err := runner.Run(ctx, sim.Config{Dt: 0.001, Duration: 0.5})
		Expect(err).To(MatchError(context.Canceled))
		Expect(res.StepsTaken).To(BeZero())
	})

	It("rejects a non-positive timestep", func() {
		runner := newCrystal(shape.Shift)
		_, err := runner.Run(context.Background(), sim.Config{Dt: 0, Duration: 1})
		Expect(err).To(HaveOccurred())
	})

	It("refuses a detached potential", func() {
		types, err := md.NewTypeSet("A")
		Expect(err).NotTo(HaveOccurred())
		sys := md.NewSystem(types)
		f, err := potential.NewLJ(sys, shape.None)
		Expect(err).NotTo(HaveOccurred())
		_, err = sim.NewRunner(f)
		Expect(err).To(MatchError(md.ErrNotAttached))
	})

	It("reports neighbor list rebuilds", func() {
		runner := newCrystal(shape.Shift)
		res, err := runner.Run(context.Background(), sim.Config{
			Dt: 0.001, Duration: 0.05,
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.ListRebuilds).To(BeNumerically(">=", 1))
	})

	It("notifies observers after every step", func() {
		runner := newCrystal(shape.Shift)
		var calls int
		runner.AddObserver(observerFunc(func(s *md.System, step int, t, pot, kin float64) {
			calls++
			Expect(s.N()).To(Equal(8))
		}))
		res, err := runner.Run(context.Background(), sim.Config{
			Dt: 0.001, Duration: 0.02,
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(calls).To(Equal(res.StepsTaken))
	})
})

var _ = Describe("Ensemble", func() {
	It("gives each member its own seed", func() {
		build := func() (*sim.Runner, error) {
			return newCrystal(shape.Shift), nil
		}
		ens := sim.NewEnsemble(build, 3, 100)
		results, err := ens.Run(context.Background(), sim.Config{
			Dt: 0.001, Duration: 0.05, Temp: 0.2,
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(3))
		for _, res := range results {
			Expect(res.StepsTaken).To(Equal(50))
		}
		k0 := results[0].Kinetic[len(results[0].Kinetic)-1]
		k1 := results[1].Kinetic[len(results[1].Kinetic)-1]
		Expect(k0).NotTo(Equal(k1))
	})
})

type observerFunc func(sys *md.System, step int, t, pot, kin float64)

func (f observerFunc) OnStep(sys *md.System, step int, t, pot, kin float64) {
	f(sys, step, t, pot, kin)
}
