package quantum

import (
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

// sequenceSource replays a fixed list of draws, repeating the last one.
type sequenceSource struct {
	values []float64
	next   int
}

func (s *sequenceSource) Float64() float64 {
	if len(s.values) == 0 {
		return 0
	}
	if s.next >= len(s.values) {
		return s.values[len(s.values)-1]
	}
	v := s.values[s.next]
	s.next++
	return v
}

func draws(values ...float64) *sequenceSource {
	return &sequenceSource{values: values}
}

func TestQubit(t *testing.T) {
	Convey("Given a new qubit", t, func() {
		q := NewQubit()

		Convey("It starts in |0⟩", func() {
			So(q.StateVector(), ShouldResemble, Amplitudes{Alpha: 1, Beta: 0})
		})

		Convey("PauliX twice restores the amplitudes", func() {
			q.ApplyHadamard()
			q.ApplyPauliY()
			before := q.StateVector()
			q.ApplyPauliX()
			q.ApplyPauliX()
			So(q.StateVector(), ShouldResemble, before)
		})

		Convey("PauliX swaps the amplitudes", func() {
			q.ApplyPauliX()
			So(q.StateVector(), ShouldResemble, Amplitudes{Alpha: 0, Beta: 1})
		})

		Convey("PauliY maps (a, b) to (-b, a)", func() {
			q.ApplyPauliX()
			q.ApplyPauliY()
			So(q.StateVector(), ShouldResemble, Amplitudes{Alpha: -1, Beta: 0})
		})

		Convey("PauliZ negates beta only", func() {
			q.ApplyHadamard()
			q.ApplyPauliZ()
			state := q.StateVector()
			So(state.Alpha, ShouldAlmostEqual, 1/math.Sqrt(2), 1e-12)
			So(state.Beta, ShouldAlmostEqual, -1/math.Sqrt(2), 1e-12)
		})

		Convey("Hadamard twice returns to |0⟩", func() {
			q.ApplyHadamard()
			q.ApplyHadamard()
			state := q.StateVector()
			So(state.Alpha, ShouldAlmostEqual, 1, 1e-12)
			So(state.Beta, ShouldAlmostEqual, 0, 1e-12)
		})

		Convey("Swap exchanges amplitude pairs", func() {
			other := NewQubit()
			other.ApplyPauliX()
			q.ApplySwap(&other)
			So(q.StateVector(), ShouldResemble, Amplitudes{Alpha: 0, Beta: 1})
			So(other.StateVector(), ShouldResemble, Amplitudes{Alpha: 1, Beta: 0})
		})
	})
}

func TestMeasure(t *testing.T) {
	Convey("Given a qubit in superposition", t, func() {
		q := NewQubit()
		q.ApplyHadamard()

		Convey("A low draw collapses to |0⟩", func() {
			So(q.Measure(draws(0.25)), ShouldEqual, 0)
			So(q.StateVector(), ShouldResemble, Amplitudes{Alpha: 1, Beta: 0})
		})

		Convey("A high draw collapses to |1⟩", func() {
			So(q.Measure(draws(0.75)), ShouldEqual, 1)
			So(q.StateVector(), ShouldResemble, Amplitudes{Alpha: 0, Beta: 1})
		})
	})

	Convey("Measurement always agrees with the collapsed state", t, func() {
		src := NewSeededSource(7)
		for i := 0; i < 200; i++ {
			q := NewQubit()
			q.ApplyHadamard()
			if i%3 == 0 {
				q.ApplyPauliZ()
			}
			got := q.Measure(src)
			So(got, ShouldBeIn, 0, 1)
			if got == 0 {
				So(q.StateVector(), ShouldResemble, Amplitudes{Alpha: 1, Beta: 0})
			} else {
				So(q.StateVector(), ShouldResemble, Amplitudes{Alpha: 0, Beta: 1})
			}
		}
	})

	Convey("A definite state measures deterministically", t, func() {
		q := NewQubit()
		q.ApplyPauliX()
		So(q.Measure(draws(0)), ShouldEqual, 1)
		So(q.Measure(draws(0.999)), ShouldEqual, 1)
	})
}

func TestControlledGates(t *testing.T) {
	Convey("Given a control in superposition", t, func() {
		control := NewQubit()
		control.ApplyHadamard()
		target := NewQubit()

		Convey("CNOT collapses the control even when the target is untouched", func() {
			target.ApplyCNOT(&control, draws(0.1))
			So(control.StateVector(), ShouldResemble, Amplitudes{Alpha: 1, Beta: 0})
			So(target.StateVector(), ShouldResemble, Amplitudes{Alpha: 1, Beta: 0})
		})

		Convey("CNOT flips the target when the control reads 1", func() {
			target.ApplyCNOT(&control, draws(0.9))
			So(control.StateVector(), ShouldResemble, Amplitudes{Alpha: 0, Beta: 1})
			So(target.StateVector(), ShouldResemble, Amplitudes{Alpha: 0, Beta: 1})
		})
	})

	Convey("Given two controls", t, func() {
		c1 := NewQubit()
		c2 := NewQubit()
		c1.ApplyHadamard()
		c2.ApplyHadamard()
		target := NewQubit()

		Convey("Toffoli collapses both controls when the first reads 0", func() {
			target.ApplyToffoli(&c1, &c2, draws(0.1, 0.9))
			So(c1.StateVector(), ShouldResemble, Amplitudes{Alpha: 1, Beta: 0})
			So(c2.StateVector(), ShouldResemble, Amplitudes{Alpha: 0, Beta: 1})
			So(target.StateVector(), ShouldResemble, Amplitudes{Alpha: 1, Beta: 0})
		})

		Convey("Toffoli flips the target when both read 1", func() {
			target.ApplyToffoli(&c1, &c2, draws(0.9, 0.9))
			So(target.StateVector(), ShouldResemble, Amplitudes{Alpha: 0, Beta: 1})
		})
	})
}
