package property

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/dxacore/geom"
)

// DataType enumerates the element types a Property can store, per spec.md
// §3's "Variants by element type (int, int64, double)".
type DataType int

const (
	// Int32 stores 32-bit signed integers (structure types, cluster ids,
	// symmetry permutation indices, -1-padded neighbor lists).
	Int32 DataType = iota
	// Int64 stores 64-bit integers (correspondences codes).
	Int64
	// Float64 stores double-precision floats (positions, orientations,
	// RMSD, lattice vectors).
	Float64
)

// Sentinel errors for Property access.
var (
	ErrIndexOutOfRange     = errors.New("property: atom index out of range")
	ErrComponentOutOfRange = errors.New("property: component index out of range")
	ErrWrongDataType       = errors.New("property: wrong data type for accessor")
	ErrArityMismatch       = errors.New("property: arity mismatch")
)

// Property is a contiguous typed array keyed by atom index, with a fixed
// per-atom component count ("arity": 1, 3, 4, 6 or 9 per spec.md §3).
//
// Storage is row-major: component c of atom i lives at flat index
// i*Components + c. Released (Release) arrays are nil and any further
// access panics, since accessing a released property is a programmer error
// matching the teacher's "queries on an unprepared index panic" policy
// (spec.md §4.1's failure model, generalized here to all properties).
type Property struct {
	Name       string
	Type       DataType
	Components int
	count      int
	ints       []int32
	int64s     []int64
	floats     []float64
}

// New allocates a zero-valued Property for n atoms with the given arity and
// data type.
func New(name string, dt DataType, components, n int) *Property {
	p := &Property{Name: name, Type: dt, Components: components, count: n}
	switch dt {
	case Int32:
		p.ints = make([]int32, n*components)
	case Int64:
		p.int64s = make([]int64, n*components)
	case Float64:
		p.floats = make([]float64, n*components)
	}
	return p
}

// Len returns the number of atoms (rows) this property covers.
func (p *Property) Len() int { return p.count }

// Release drops the backing array, allowing it to be garbage collected
// before the Property itself goes out of scope, e.g. for neighbor lists and
// PTM auxiliary arrays once cluster construction no longer needs them
// (spec.md §5). pipeline.Analyze does not call it.
func (p *Property) Release() {
	p.ints = nil
	p.int64s = nil
	p.floats = nil
	p.count = 0
}

func (p *Property) checkIndex(i, c int) error {
	if i < 0 || i >= p.count {
		return fmt.Errorf("%w: %d (len=%d)", ErrIndexOutOfRange, i, p.count)
	}
	if c < 0 || c >= p.Components {
		return fmt.Errorf("%w: %d (arity=%d)", ErrComponentOutOfRange, c, p.Components)
	}
	return nil
}

// Int returns component c of atom i as an int32. Panics (programmer error,
// matching the spatial index's "unprepared index" policy) if the indices
// are out of range or the Property is not Int32-typed.
func (p *Property) Int(i, c int) int32 {
	if err := p.checkIndex(i, c); err != nil {
		panic(err)
	}
	if p.Type != Int32 {
		panic(ErrWrongDataType)
	}
	return p.ints[i*p.Components+c]
}

// SetInt sets component c of atom i to v.
func (p *Property) SetInt(i, c int, v int32) {
	if err := p.checkIndex(i, c); err != nil {
		panic(err)
	}
	if p.Type != Int32 {
		panic(ErrWrongDataType)
	}
	p.ints[i*p.Components+c] = v
}

// Int64 returns component c of atom i as an int64.
func (p *Property) Int64(i, c int) int64 {
	if err := p.checkIndex(i, c); err != nil {
		panic(err)
	}
	if p.Type != Int64 {
		panic(ErrWrongDataType)
	}
	return p.int64s[i*p.Components+c]
}

// SetInt64 sets component c of atom i to v.
func (p *Property) SetInt64(i, c int, v int64) {
	if err := p.checkIndex(i, c); err != nil {
		panic(err)
	}
	if p.Type != Int64 {
		panic(ErrWrongDataType)
	}
	p.int64s[i*p.Components+c] = v
}

// Float returns component c of atom i as a float64.
func (p *Property) Float(i, c int) float64 {
	if err := p.checkIndex(i, c); err != nil {
		panic(err)
	}
	if p.Type != Float64 {
		panic(ErrWrongDataType)
	}
	return p.floats[i*p.Components+c]
}

// SetFloat sets component c of atom i to v.
func (p *Property) SetFloat(i, c int, v float64) {
	if err := p.checkIndex(i, c); err != nil {
		panic(err)
	}
	if p.Type != Float64 {
		panic(ErrWrongDataType)
	}
	p.floats[i*p.Components+c] = v
}

// Vector3At reads atom i's first three float64 components as a geom.Vector3.
// Panics via ErrArityMismatch if Components < 3.
func (p *Property) Vector3At(i int) geom.Vector3 {
	if p.Components < 3 {
		panic(ErrArityMismatch)
	}
	return geom.Vector3{X: p.Float(i, 0), Y: p.Float(i, 1), Z: p.Float(i, 2)}
}

// SetVector3At writes v into atom i's first three float64 components.
func (p *Property) SetVector3At(i int, v geom.Vector3) {
	if p.Components < 3 {
		panic(ErrArityMismatch)
	}
	p.SetFloat(i, 0, v.X)
	p.SetFloat(i, 1, v.Y)
	p.SetFloat(i, 2, v.Z)
}

// QuaternionAt reads atom i's four float64 components as a geom.Quaternion
// in x,y,z,w (API) order, per spec.md §4.2.2.
func (p *Property) QuaternionAt(i int) geom.Quaternion {
	if p.Components < 4 {
		panic(ErrArityMismatch)
	}
	return geom.NewQuaternion(p.Float(i, 0), p.Float(i, 1), p.Float(i, 2), p.Float(i, 3))
}

// SetQuaternionAt writes q into atom i's first four float64 components in
// x,y,z,w (API) order.
func (p *Property) SetQuaternionAt(i int, q geom.Quaternion) {
	if p.Components < 4 {
		panic(ErrArityMismatch)
	}
	xyzw := q.XYZW()
	for c, v := range xyzw {
		p.SetFloat(i, c, v)
	}
}

// NewNeighborListProperty allocates an Int32 property of arity maxNeighbors
// for n atoms, pre-filled with -1 in every slot, per spec.md §4.2's "entries
// filled with -1 beyond the actual count".
func NewNeighborListProperty(n, maxNeighbors int) *Property {
	p := New("neighbors", Int32, maxNeighbors, n)
	for i := 0; i < n*maxNeighbors; i++ {
		p.ints[i] = -1
	}
	return p
}
