// Package boulder converts between typed argument records and primer3's
// boulder-I/O text protocol: KEY=VALUE lines ending with a lone "=" line.
//
// Formatting is driven by a TagTable that classifies keys (intervals,
// size ranges, quadruple lists, paths) and marks keys that may repeat.
// Parsing is split in two passes: Parse keeps raw strings, UnwrapRecord
// applies the type-guessing cascade.
//
// This package has no app/engine deps.
package boulder
