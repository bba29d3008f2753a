// Package pwq provides floating-point, tolerance-aware algebra over univariate
// piecewise-quadratic functions, aimed at convex analysis and first-order
// optimization.
//
// # Core types
//
// [BoundedQuadratic] is a single quadratic piece p·x² + q·x + r on a closed
// interval [Lb, Ub]. [PiecewiseQuadratic] is an ordered sequence of pieces,
// evaluated with first-match-wins semantics: f(x) is the value of the first
// piece (in order) whose domain contains x.
//
// [Interval] is the closed, possibly unbounded scalar domain shared by both.
//
// # Tolerance
//
// Every approximate comparison in this package routes through [Epsilon] via
// [Approx], [Lesseq], and [Gtreq], so floating-point boundary effects (two
// pieces that should join exactly but differ in the fifteenth decimal digit)
// don't cause spurious gaps or overlaps.
//
// # Algebra and structural ops
//
// [PiecewiseQuadratic.Simplify] canonicalizes a sequence by dropping empty
// pieces, collapsing redundant point pieces, and fusing coefficient-identical
// adjacent pieces. [Sum] merge-sums any number of piecewise quadratics over
// their joint domain via a k-way breakpoint sweep (see sum.go).
//
// # Convex envelope
//
// [Envelope] computes the greatest convex piecewise quadratic lying at or
// below a given (not necessarily convex) piecewise quadratic, its convex
// envelope, or greatest convex minorant. It works by appending pieces one at
// a time into a scratch buffer, back-popping and re-bridging whenever the
// newest piece's supporting line turns out to require revisiting an earlier
// one (see envelope.go).
//
// # Optimization
//
// [PiecewiseQuadratic.Minimize] finds the global minimum over all pieces.
// [Prox] evaluates the proximal operator of a (typically convex, typically
// pre-enveloped) piecewise quadratic at a point, for use as a building block
// in proximal-gradient and ADMM-style first-order solvers.
package pwq
