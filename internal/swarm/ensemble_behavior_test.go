package swarm_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/firesync/internal/swarm"
)

var _ = Describe("Ensemble", func() {
	Describe("construction", func() {
		It("rejects non-positive sizes", func() {
			_, err := swarm.New(swarm.Params{Size: 0, FreqMin: 1, FreqMax: 2})
			Expect(err).To(MatchError(swarm.ErrInvalidSize))
		})

		It("rejects inverted frequency ranges", func() {
			_, err := swarm.New(swarm.Params{Size: 3, FreqMin: 5, FreqMax: 1})
			Expect(err).To(MatchError(swarm.ErrInvalidFrequencyRange))
		})

		It("places every oscillator at the origin point", func() {
			origin := swarm.Vec2{X: 200, Y: 150}
			e, err := swarm.New(swarm.Params{Size: 13, Coupling: 1, FreqMin: 1, FreqMax: 3, Origin: origin, Seed: 42})
			Expect(err).NotTo(HaveOccurred())
			for _, o := range e.Oscillators() {
				Expect(o.Position).To(Equal(origin))
			}
		})
	})

	Describe("dynamics", func() {
		It("keeps a lone oscillator at its natural frequency regardless of coupling", func() {
			e, err := swarm.New(swarm.Params{Size: 1, Coupling: 10, FreqMin: 2, FreqMax: 2, Seed: 1})
			Expect(err).NotTo(HaveOccurred())

			p0 := e.Oscillators()[0].Phase
			for i := 0; i < 100; i++ {
				e.Synchronize()
				e.Advance(0.01)
			}
			Expect(e.Oscillators()[0].Phase).To(BeNumerically("~", p0+2.0, 1e-9))
		})

		It("moves each oscillator exactly one unit per tick", func() {
			e, err := swarm.New(swarm.Params{Size: 4, Coupling: 2, FreqMin: 1, FreqMax: 2, Seed: 6})
			Expect(err).NotTo(HaveOccurred())

			before := e.Oscillators()
			e.Synchronize()
			e.Advance(0.1)
			after := e.Oscillators()

			for i := range after {
				dx := after[i].Position.X - before[i].Position.X
				dy := after[i].Position.Y - before[i].Position.Y
				Expect(math.Hypot(dx, dy)).To(BeNumerically("~", 1.0, 1e-12))
			}
		})

		It("reports a fully coherent single oscillator", func() {
			e, err := swarm.New(swarm.Params{Size: 1, FreqMin: 1, FreqMax: 1, Seed: 2})
			Expect(err).NotTo(HaveOccurred())

			r, _ := e.OrderParameter()
			Expect(r).To(BeNumerically("~", 1.0, 1e-12))
		})
	})
})
