package sim_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/pairforce/internal/shape"
	"github.com/san-kum/pairforce/internal/sim"
)

var _ = Describe("Stepper", func() {
	It("reproduces the batch driver step for step", func() {
		batch := newCrystal(shape.Shift)
		_, err := batch.Run(context.Background(), sim.Config{Dt: 0.001, Duration: 0.05})
		Expect(err).NotTo(HaveOccurred())

		manual := newCrystal(shape.Shift)
		stepper, err := manual.Stepper(0.001)
		Expect(err).NotTo(HaveOccurred())
		for i := 0; i < 50; i++ {
			Expect(stepper.Step()).To(Succeed())
		}

		Expect(stepper.Steps()).To(Equal(50))
		for i := range batch.System().Pos {
			Expect(manual.System().Pos[i]).To(Equal(batch.System().Pos[i]))
			Expect(manual.System().Vel[i]).To(Equal(batch.System().Vel[i]))
		}
	})

	It("keeps drift small over many steps", func() {
		stepper, err := newCrystal(shape.Shift).Stepper(0.001)
		Expect(err).NotTo(HaveOccurred())
		for i := 0; i < 500; i++ {
			Expect(stepper.Step()).To(Succeed())
		}
		Expect(stepper.Drift()).To(BeNumerically("<", 1e-4))
		Expect(stepper.Rebuilds()).To(BeNumerically(">=", 1))
	})

	It("restores the reset point", func() {
		runner := newCrystal(shape.Shift)
		stepper, err := runner.Stepper(0.001)
		Expect(err).NotTo(HaveOccurred())

		before := append([]float64(nil),
			runner.System().Pos[0].X, runner.System().Pos[0].Y, runner.System().Pos[0].Z)
		for i := 0; i < 100; i++ {
			Expect(stepper.Step()).To(Succeed())
		}
		Expect(stepper.Reset()).To(Succeed())

		Expect(stepper.Time()).To(BeZero())
		Expect(stepper.Steps()).To(BeZero())
		Expect(runner.System().Pos[0].X).To(Equal(before[0]))
		Expect(runner.System().Pos[0].Y).To(Equal(before[1]))
		Expect(runner.System().Pos[0].Z).To(Equal(before[2]))
	})

	It("rejects a non-positive dt", func() {
		_, err := newCrystal(shape.Shift).Stepper(0)
		Expect(err).To(HaveOccurred())
	})
})
