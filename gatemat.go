// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package mdd

import "math"

// Gate matrices are row-major flattenings of d×d unitaries, ready to be
// passed to MakeGateDD. The named variables cover the gates used by the test
// harnesses and benchmarks; the generators cover every local dimension.

const _SQRT2_2 float64 = 0.7071067811865476  // √2/2
const _SQRT3_3 float64 = 0.5773502691896258  // √3/3

// Qubit gates.
var (
	Xmat = []complex128{0, 1, 1, 0}
	Ymat = []complex128{0, complex(0, -1), complex(0, 1), 0}
	Zmat = []complex128{1, 0, 0, -1}
	Hmat = []complex128{complex(_SQRT2_2, 0), complex(_SQRT2_2, 0), complex(_SQRT2_2, 0), complex(-_SQRT2_2, 0)}
)

// Qutrit gates. X3 is the cyclic shift |k⟩ → |k+1 mod 3⟩ and X3dag its
// inverse. X01 and Z01 act on the {0, 1} subspace; PI02 is the signed
// permutation of the {0, 2} subspace.
var (
	H3 = []complex128{
		complex(_SQRT3_3, 0), complex(_SQRT3_3, 0), complex(_SQRT3_3, 0),
		complex(_SQRT3_3, 0), complex(-0.5*_SQRT3_3, 0.5), complex(-0.5*_SQRT3_3, -0.5),
		complex(_SQRT3_3, 0), complex(-0.5*_SQRT3_3, -0.5), complex(-0.5*_SQRT3_3, 0.5),
	}
	X3    = ShiftMat(3)
	X3dag = ShiftInvMat(3)
	X01   = SwapMat(3, 0, 1)
	Z01   = []complex128{1, 0, 0, 0, -1, 0, 0, 0, 1}
	PI02  = []complex128{0, 0, -1, 0, 1, 0, 1, 0, 0}
)

// Ququart and ququint gates.
var (
	H4 = HadamardMat(4)
	X4 = ShiftMat(4)
	H5 = HadamardMat(5)
	X5 = ShiftMat(5)
)

// HadamardMat returns the d-dimensional Fourier gate with entries
// ω^(j·k)/√d, ω = exp(2πi/d).
func HadamardMat(d int) []complex128 {
	m := make([]complex128, d*d)
	s := 1 / math.Sqrt(float64(d))
	for j := 0; j < d; j++ {
		for k := 0; k < d; k++ {
			phase := 2 * math.Pi * float64(j*k) / float64(d)
			m[j*d+k] = complex(s*math.Cos(phase), s*math.Sin(phase))
		}
	}
	return m
}

// ShiftMat returns the cyclic shift |k⟩ → |k+1 mod d⟩.
func ShiftMat(d int) []complex128 {
	m := make([]complex128, d*d)
	for k := 0; k < d; k++ {
		m[((k+1)%d)*d+k] = 1
	}
	return m
}

// ShiftInvMat returns the inverse cyclic shift |k⟩ → |k-1 mod d⟩.
func ShiftInvMat(d int) []complex128 {
	m := make([]complex128, d*d)
	for k := 0; k < d; k++ {
		m[((k+d-1)%d)*d+k] = 1
	}
	return m
}

// SwapMat returns the permutation exchanging levels a and b of a
// d-dimensional register.
func SwapMat(d, a, b int) []complex128 {
	m := make([]complex128, d*d)
	for k := 0; k < d; k++ {
		switch k {
		case a:
			m[b*d+a] = 1
		case b:
			m[a*d+b] = 1
		default:
			m[k*d+k] = 1
		}
	}
	return m
}

// GivensMat returns the two-level XY rotation acting on levels a < b of a
// d-dimensional register, identity elsewhere.
func GivensMat(d, a, b int, theta, phi float64) []complex128 {
	m := make([]complex128, d*d)
	for k := 0; k < d; k++ {
		m[k*d+k] = 1
	}
	c := math.Cos(theta / 2)
	s := math.Sin(theta / 2)
	m[a*d+a] = complex(c, 0)
	m[b*d+b] = complex(c, 0)
	m[a*d+b] = complex(0, -1) * complex(math.Cos(phi)*s, -math.Sin(phi)*s)
	m[b*d+a] = complex(0, -1) * complex(math.Cos(phi)*s, math.Sin(phi)*s)
	return m
}

// U3mat returns the generic single-qubit rotation with Euler angles
// (lambda, phi, theta).
func U3mat(lambda, phi, theta float64) []complex128 {
	c := math.Cos(theta / 2)
	s := math.Sin(theta / 2)
	return []complex128{
		complex(c, 0),
		complex(-math.Cos(lambda)*s, -math.Sin(lambda)*s),
		complex(math.Cos(phi)*s, math.Sin(phi)*s),
		complex(math.Cos(lambda+phi)*c, math.Sin(lambda+phi)*c),
	}
}

// U2mat returns U3mat(lambda, phi, π/2).
func U2mat(lambda, phi float64) []complex128 {
	return []complex128{
		complex(_SQRT2_2, 0),
		complex(-math.Cos(lambda)*_SQRT2_2, -math.Sin(lambda)*_SQRT2_2),
		complex(math.Cos(phi)*_SQRT2_2, math.Sin(phi)*_SQRT2_2),
		complex(math.Cos(lambda+phi)*_SQRT2_2, math.Sin(lambda+phi)*_SQRT2_2),
	}
}

// Phasemat returns the qubit phase gate diag(1, exp(iλ)).
func Phasemat(lambda float64) []complex128 {
	return []complex128{1, 0, 0, complex(math.Cos(lambda), math.Sin(lambda))}
}

// RXmat, RYmat and RZmat return the qubit rotations around the three axes.
func RXmat(lambda float64) []complex128 {
	c := math.Cos(lambda / 2)
	s := math.Sin(lambda / 2)
	return []complex128{complex(c, 0), complex(0, -s), complex(0, -s), complex(c, 0)}
}

func RYmat(lambda float64) []complex128 {
	c := math.Cos(lambda / 2)
	s := math.Sin(lambda / 2)
	return []complex128{complex(c, 0), complex(-s, 0), complex(s, 0), complex(c, 0)}
}

func RZmat(lambda float64) []complex128 {
	c := math.Cos(lambda / 2)
	s := math.Sin(lambda / 2)
	return []complex128{complex(c, -s), 0, 0, complex(c, s)}
}
