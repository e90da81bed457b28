package quantum

import "fmt"

// ClassicalRegister stores measurement outcomes as plain integers.
type ClassicalRegister struct {
	bits []int
}

func NewClassicalRegister(size int) *ClassicalRegister {
	if size < 0 {
		size = 0
	}
	return &ClassicalRegister{bits: make([]int, size)}
}

func (r *ClassicalRegister) Size() int {
	return len(r.bits)
}

func (r *ClassicalRegister) check(index int) error {
	if index < 0 || index >= len(r.bits) {
		return fmt.Errorf("%w: bit %d (register has %d)", ErrIndexOutOfRange, index, len(r.bits))
	}
	return nil
}

func (r *ClassicalRegister) Store(index, value int) error {
	if err := r.check(index); err != nil {
		return err
	}
	r.bits[index] = value
	return nil
}

func (r *ClassicalRegister) Result(index int) (int, error) {
	if err := r.check(index); err != nil {
		return 0, err
	}
	return r.bits[index], nil
}

// Bits returns a copy of the register contents.
func (r *ClassicalRegister) Bits() []int {
	out := make([]int, len(r.bits))
	copy(out, r.bits)
	return out
}
