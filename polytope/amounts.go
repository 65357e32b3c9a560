// SPDX-License-Identifier: MIT

package polytope

import (
	"math"
	"strconv"
	"strings"
)

// Amount is one entry of the given-amounts vector: either a known fraction
// of the whole recipe or an unknown slot to be sampled.
type Amount struct {
	Value float64 // meaningful only when Known is true
	Known bool
}

// Known returns a known amount with fraction v.
func Known(v float64) Amount { return Amount{Value: v, Known: true} }

// Unknown returns an unspecified amount.
func Unknown() Amount { return Amount{} }

// Amounts is the ordered given-amounts vector, one entry per ingredient slot.
type Amounts []Amount

// FromPointers converts a nil-means-unknown slice (the shape produced by
// YAML/JSON decoders) into Amounts.
func FromPointers(p []*float64) Amounts {
	out := make(Amounts, len(p))
	for i, v := range p {
		if v != nil {
			out[i] = Known(*v)
		}
	}

	return out
}

// CountUnknown returns the number of unspecified slots.
func (g Amounts) CountUnknown() int {
	n := 0
	for _, am := range g {
		if !am.Known {
			n++
		}
	}

	return n
}

// CountKnown returns the number of given slots.
func (g Amounts) CountKnown() int { return len(g) - g.CountUnknown() }

// KnownSum returns the sum of all known fractions.
func (g Amounts) KnownSum() float64 {
	var s float64
	for _, am := range g {
		if am.Known {
			s += am.Value
		}
	}

	return s
}

// Values returns the amounts as a dense vector with NaN for unknown slots.
func (g Amounts) Values() []float64 {
	out := make([]float64, len(g))
	for i, am := range g {
		if am.Known {
			out[i] = am.Value
		} else {
			out[i] = math.NaN()
		}
	}

	return out
}

// Clone returns an independent copy.
func (g Amounts) Clone() Amounts {
	out := make(Amounts, len(g))
	copy(out, g)

	return out
}

// String renders the vector as "[0.63 ? ? 0.016]".
func (g Amounts) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, am := range g {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if am.Known {
			sb.WriteString(strconv.FormatFloat(am.Value, 'g', -1, 64))
		} else {
			sb.WriteByte('?')
		}
	}
	sb.WriteByte(']')

	return sb.String()
}
