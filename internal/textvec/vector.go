package textvec

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Vector is a sparse row of term weights. Indices are strictly increasing
// column positions in the fitted vocabulary.
type Vector struct {
	Indices []int
	Values  []float64
}

// Len returns the number of non-zero entries.
func (v Vector) Len() int {
	return len(v.Indices)
}

// IsZero reports whether the vector has no non-zero weight.
func (v Vector) IsZero() bool {
	for _, w := range v.Values {
		if w != 0 {
			return false
		}
	}
	return true
}

// Norm is the Euclidean length of the vector.
func (v Vector) Norm() float64 {
	if len(v.Values) == 0 {
		return 0
	}
	return floats.Norm(v.Values, 2)
}

// Dense expands the vector to a slice of the given width.
func (v Vector) Dense(width int) []float64 {
	out := make([]float64, width)
	for k, idx := range v.Indices {
		if idx < width {
			out[idx] = v.Values[k]
		}
	}
	return out
}

// Dot is the inner product of two sparse vectors.
func Dot(a, b Vector) float64 {
	var (
		sum  float64
		i, j int
	)
	for i < len(a.Indices) && j < len(b.Indices) {
		switch {
		case a.Indices[i] == b.Indices[j]:
			sum += a.Values[i] * b.Values[j]
			i++
			j++
		case a.Indices[i] < b.Indices[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// Cosine returns the cosine of the angle between a and b. A zero vector has
// similarity 0 with everything.
func Cosine(a, b Vector) float64 {
	na, nb := a.Norm(), b.Norm()
	if na == 0 || nb == 0 {
		return 0
	}
	sim := Dot(a, b) / (na * nb)
	// rounding can push identical unit vectors just past 1
	return math.Max(-1, math.Min(1, sim))
}

func normalize(v Vector) Vector {
	n := v.Norm()
	if n == 0 {
		return v
	}
	floats.Scale(1/n, v.Values)
	return v
}
