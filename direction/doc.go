// SPDX-License-Identifier: MIT

// Package direction draws random unit vectors confined to the null space of
// an equality matrix B.
//
// 🚀 Why a dedicated sampler?
//
//	Hit-and-run must never leave the hyperplane B·x = Eq. Drawing from a
//	multivariate normal with the null-space projector as covariance looks
//	natural, but the usual implementations add a tiny "nugget" to the
//	diagonal for stability, and that nugget leaks a component along B's row
//	space into every draw. After thousands of steps the equalities drift.
//
// ✨ What New does instead:
//
//  1. thin SVD of B; the right singular vectors with non-zero singular value
//     span B's row space (Vt);
//  2. P = I − Vtᵀ·Vt projects onto the null space; a second SVD of P gives an
//     orthonormal basis Q and singular values S;
//  3. S < 1e-12 is snapped to 0 and |Q_ij| < 1e-12 is snapped to 0;
//  4. the columns of Q with non-zero S form R (D×K, K = D − rank B).
//
// Sample then draws z ~ N(0, I_K), forms u = R·(√S ⊙ z) and rescales u to
// unit length. Every u satisfies B·u = 0 to floating precision, so stepping a
// feasible point along u preserves every equality.
//
// The Sampler is immutable after New. Randomness is supplied per call
// (math/rand/v2 Source), so one Sampler can serve any number of chains, each
// owning its own generator.
//
// Complexity:
//
//   - New:    O(m·D² + D³) (two SVDs)
//   - Sample: O(D·K)
package direction
