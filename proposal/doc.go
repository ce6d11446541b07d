// Package proposal defines the normalized commercial proposal record that the
// layout engine renders.
//
// A [Document] is produced by a data service (see internal/normalize for the
// reference normalizer) and is treated as immutable for the duration of one
// render. All monetary values are carried twice: as a number, used for
// arithmetic, and as a pre-formatted currency string, used for display.
package proposal
