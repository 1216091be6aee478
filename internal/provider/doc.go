// Package provider loads language engines and hands out shared, reference
// counted libraries.
//
// A Library is loaded at most once per registered name and is immutable
// afterwards. Each engine program keeps its own counted reference and drops
// it only after its own state is gone, so a library never outlives nobody
// and is never released under a live program.
package provider
