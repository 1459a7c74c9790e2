// Package scale provides the two mapping functions the trunnel layout is
// built from: a continuous [Linear] scale and an ordinal [Point] scale.
//
// Both are plain values. They are safe to copy and to use from several
// goroutines, and they never panic on degenerate input:
//
//   - A Linear scale with an empty domain (d0 == d1) maps every value to
//     the start of its range.
//   - A Point scale with no labels maps nothing; Map reports ok=false.
//   - A Point scale with one label places it in the middle of the range.
//
// [Linear.Ticks] produces human-friendly tick values (multiples of 1, 2
// or 5 times a power of ten) for axis rendering.
package scale
